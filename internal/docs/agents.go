package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/orchestkit/orchestkit/internal/frontmatter"
)

var modelBadges = map[string]string{
	"haiku":  `<span className="badge badge-green">haiku</span>`,
	"sonnet": `<span className="badge badge-blue">sonnet</span>`,
	"opus":   `<span className="badge badge-purple">opus</span>`,
}

var (
	activatesForRe  = regexp.MustCompile(`[Aa]ctivates for (.+)`)
	useWhenRe       = regexp.MustCompile(`[Uu]se when (.+)`)
	descSplitRe     = regexp.MustCompile(`\s*[Aa]ctivates for\s*|\s*[Uu]se when\s*`)
	shortDescTrimRe = regexp.MustCompile(`[. ]+$`)
)

// GenerateAgents renders one MDX page per agent definition file, plus the
// agents index and navigation manifest. Returns the agent count.
func (g *Generator) GenerateAgents() (int, error) {
	entries, err := os.ReadDir(g.cfg.AgentsSrc)
	if err != nil {
		return 0, fmt.Errorf("failed to read agents source: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	hooksByAgent, err := agentHooksMap(g.cfg.ProjectRoot)
	if err != nil {
		return 0, fmt.Errorf("failed to scan agent hook sources: %w", err)
	}

	var indexRows []string
	var slugs []string

	for _, name := range names {
		slug := strings.TrimSuffix(name, ".md")
		slugs = append(slugs, slug)

		content, err := os.ReadFile(filepath.Join(g.cfg.AgentsSrc, name))
		if err != nil {
			return 0, fmt.Errorf("failed to read agent %s: %w", name, err)
		}
		meta, body := frontmatter.Parse(content)

		page := buildAgentPage(slug, meta, body, hooksByAgent[slug])
		if err := writeFile(filepath.Join(g.cfg.AgentsOut, slug+".mdx"), []byte(page)); err != nil {
			return 0, err
		}

		model := meta.GetString("model")
		if model == "" {
			model = "—"
		}
		indexRows = append(indexRows, fmt.Sprintf("| [%s](/docs/reference/agents/%s) | %s | %s |",
			TitleCase(slug), slug, model, escapeTableCell(shortDescription(meta.GetString("description")))))
	}

	count := len(names)
	if err := g.writeAgentsIndex(count, indexRows); err != nil {
		return 0, err
	}
	if err := writeMeta(filepath.Join(g.cfg.AgentsOut, "meta.json"), "Agents", append([]string{"index"}, slugs...)); err != nil {
		return 0, err
	}

	return count, nil
}

// shortDescription is the part of an agent description before its
// activation-keyword clause, without the trailing period.
func shortDescription(description string) string {
	parts := descSplitRe.Split(description, 2)
	return shortDescTrimRe.ReplaceAllString(parts[0], "")
}

// activationKeywords extracts the "Activates for ..." or "Use when ..."
// clause from an agent description.
func activationKeywords(description string) string {
	if m := activatesForRe.FindStringSubmatch(description); m != nil {
		return m[1]
	}
	if m := useWhenRe.FindStringSubmatch(description); m != nil {
		return m[1]
	}
	return ""
}

// buildAgentPage renders the MDX page for one agent.
func buildAgentPage(slug string, meta frontmatter.Fields, body string, hooks []hookInfo) string {
	description := meta.GetString("description")
	model := meta.GetString("model")
	category := meta.GetString("category")
	tools := meta.GetStringList("tools")
	skills := meta.GetStringList("skills")
	shortDesc := shortDescription(description)
	keywords := activationKeywords(description)

	modelBadge, ok := modelBadges[model]
	if !ok {
		label := model
		if label == "" {
			label = "unknown"
		}
		modelBadge = fmt.Sprintf(`<span className="badge badge-gray">%s</span>`, label)
	}

	lines := []string{
		"---",
		"title: " + frontmatter.Quote(TitleCase(slug)),
		"description: " + frontmatter.Quote(shortDesc),
		"---",
		"",
		modelBadge,
	}
	if category != "" {
		lines = append(lines, fmt.Sprintf(` <span className="badge badge-gray">%s</span>`, category))
	}
	lines = append(lines, "", "> "+shortDesc, "")

	if keywords != "" {
		lines = append(lines, "## Activation Keywords", "",
			"This agent activates for: "+keywords, "")
	}

	if len(tools) > 0 {
		lines = append(lines, "## Tools Available", "")
		for _, tool := range tools {
			tool = strings.TrimSpace(tool)
			if tool != "" {
				lines = append(lines, "- `"+tool+"`")
			}
		}
		lines = append(lines, "")
	}

	if len(skills) > 0 {
		lines = append(lines, "## Skills Used", "")
		for _, sk := range skills {
			sk = strings.TrimSpace(sk)
			if sk != "" {
				lines = append(lines, fmt.Sprintf("- [%s](/docs/reference/skills/%s)", sk, sk))
			}
		}
		lines = append(lines, "")
	}

	if len(hooks) > 0 {
		lines = append(lines,
			"## Agent-Scoped Hooks",
			"",
			"These hooks activate exclusively when this agent runs, enforcing safety and compliance boundaries.",
			"",
			"| Hook | Behavior | Description |",
			"|------|----------|-------------|")
		for _, h := range hooks {
			desc := h.Description
			if desc == "" {
				desc = "—"
			}
			lines = append(lines, fmt.Sprintf("| `%s` | %s | %s |", h.Hook, behaviorBadge(h.Behavior), desc))
		}
		lines = append(lines, "")
	}

	lines = append(lines, SanitizeBody(body))

	return strings.Join(lines, "\n")
}

func (g *Generator) writeAgentsIndex(count int, rows []string) error {
	lines := []string{
		"---",
		"title: Agents Reference",
		fmt.Sprintf(`description: "Complete reference for all %d OrchestKit agents."`, count),
		"---",
		"",
		"# Agents Reference",
		"",
		fmt.Sprintf("OrchestKit includes **%d specialized agents** — AI personas with curated tools, skills, and behavioral directives.", count),
		"",
		"| Agent | Model | Description |",
		"|-------|-------|-------------|",
	}
	lines = append(lines, rows...)
	return writeFile(filepath.Join(g.cfg.AgentsOut, "index.mdx"),
		[]byte(strings.Join(lines, "\n")+"\n"))
}
