package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/orchestkit/orchestkit/internal/frontmatter"
)

// skillSubdirs are the skill subdirectory types surfaced on skill pages,
// in display order.
var skillSubdirs = []string{"rules", "references", "checklists", "examples"}

var complexityBadges = map[string]string{
	"low":    `<span className="badge badge-green">low</span>`,
	"medium": `<span className="badge badge-yellow">medium</span>`,
	"high":   `<span className="badge badge-orange">high</span>`,
	"max":    `<span className="badge badge-red">max</span>`,
}

// GenerateSkills renders one MDX page per skill directory containing a
// SKILL.md, plus the skills index and navigation manifest. Returns the
// number of skill directories scanned.
func (g *Generator) GenerateSkills() (int, error) {
	entries, err := os.ReadDir(g.cfg.SkillsSrc)
	if err != nil {
		return 0, fmt.Errorf("failed to read skills source: %w", err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}
	sort.Strings(dirs)

	var indexRows []string
	var slugs []string

	for _, slug := range dirs {
		skillDir := filepath.Join(g.cfg.SkillsSrc, slug)
		content, err := os.ReadFile(filepath.Join(skillDir, "SKILL.md"))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return 0, fmt.Errorf("failed to read skill %s: %w", slug, err)
		}

		slugs = append(slugs, slug)
		meta, body := frontmatter.Parse(content)

		subdirLines, err := subdirSections(skillDir)
		if err != nil {
			return 0, err
		}

		page := buildSkillPage(slug, meta, body, subdirLines)
		if err := writeFile(filepath.Join(g.cfg.SkillsOut, slug+".mdx"), []byte(page)); err != nil {
			return 0, err
		}

		indexRows = append(indexRows, skillIndexRow(slug, meta))
	}

	count := len(dirs)
	if err := g.writeSkillsIndex(count, indexRows); err != nil {
		return 0, err
	}
	if err := writeMeta(filepath.Join(g.cfg.SkillsOut, "meta.json"), "Skills", append([]string{"index"}, slugs...)); err != nil {
		return 0, err
	}

	return count, nil
}

// buildSkillPage renders the MDX page for one skill.
func buildSkillPage(slug string, meta frontmatter.Fields, body string, subdirLines []string) string {
	description := meta.GetString("description")
	complexity := meta.GetString("complexity")
	agent := meta.GetString("agent")
	skills := meta.GetStringList("skills")
	title := TitleCase(slug)

	typeBadge := `<span className="badge badge-gray">Reference</span>`
	if meta.GetBool("user-invocable") {
		typeBadge = `<span className="badge badge-blue">Command</span>`
	}

	badges := typeBadge
	if b, ok := complexityBadges[complexity]; ok {
		badges += " " + b
	} else {
		badges += " "
	}

	lines := []string{
		"---",
		"title: " + frontmatter.Quote(title),
		"description: " + frontmatter.Quote(description),
		"---",
		"",
		badges,
		"",
	}

	if agent != "" {
		lines = append(lines,
			fmt.Sprintf("**Primary Agent:** [%s](/docs/reference/agents/%s)", agent, agent),
			"")
	}

	if len(skills) > 0 {
		lines = append(lines, "## Related Skills", "")
		for _, sk := range skills {
			sk = strings.TrimSpace(sk)
			if sk != "" {
				lines = append(lines, fmt.Sprintf("- [%s](/docs/reference/skills/%s)", sk, sk))
			}
		}
		lines = append(lines, "")
	}

	lines = append(lines, SanitizeBody(body))
	lines = append(lines, subdirLines...)

	return strings.Join(lines, "\n")
}

func skillIndexRow(slug string, meta frontmatter.Fields) string {
	title := TitleCase(slug)
	typeLabel := "Reference"
	if meta.GetBool("user-invocable") {
		typeLabel = "Command"
	}
	complexity := meta.GetString("complexity")
	if complexity == "" {
		complexity = "—"
	}
	return fmt.Sprintf("| [%s](/docs/reference/skills/%s) | %s | %s | %s |",
		title, slug, typeLabel, complexity, escapeTableCell(meta.GetString("description")))
}

func (g *Generator) writeSkillsIndex(count int, rows []string) error {
	lines := []string{
		"---",
		"title: Skills Reference",
		fmt.Sprintf(`description: "Complete reference for all %d OrchestKit skills."`, count),
		"---",
		"",
		"# Skills Reference",
		"",
		fmt.Sprintf("OrchestKit includes **%d skills** — reusable knowledge modules that provide patterns, frameworks, and workflows.", count),
		"",
		"| Skill | Type | Complexity | Description |",
		"|-------|------|------------|-------------|",
	}
	lines = append(lines, rows...)
	return writeFile(filepath.Join(g.cfg.SkillsOut, "index.mdx"),
		[]byte(strings.Join(lines, "\n")+"\n"))
}

// subdirFile is one markdown file surfaced from a skill subdirectory.
type subdirFile struct {
	Title  string
	Impact string
	Body   string
}

// subdirSections renders the "## Rules (3)" style sections for a skill's
// rules, references, checklists, and examples subdirectories.
func subdirSections(skillDir string) ([]string, error) {
	var lines []string

	for _, name := range skillSubdirs {
		files, err := readSubdirFiles(filepath.Join(skillDir, name))
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			continue
		}

		lines = append(lines, "", "---", "", fmt.Sprintf("## %s (%d)", TitleCase(name), len(files)), "")
		for _, f := range files {
			sectionTitle := f.Title
			if f.Impact != "" {
				sectionTitle = sectionTitle + " — " + f.Impact
			}
			lines = append(lines, "### "+sectionTitle, "", SanitizeBody(f.Body), "")
		}
	}

	return lines, nil
}

// readSubdirFiles reads the .md files of one skill subdirectory, sorted.
// Files with a leading underscore (e.g. _sections.md) are internal and skipped.
func readSubdirFiles(dir string) ([]subdirFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read subdirectory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") || strings.HasPrefix(name, "_") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var files []subdirFile
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		meta, body := frontmatter.Parse(content)
		title := meta.GetString("title")
		if title == "" {
			title = TitleCase(strings.TrimSuffix(name, ".md"))
		}
		files = append(files, subdirFile{
			Title:  title,
			Impact: meta.GetString("impact"),
			Body:   body,
		})
	}
	return files, nil
}
