package docs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// hookMatcher is one matcher entry in the hooks registry.
type hookMatcher struct {
	Matcher string `json:"matcher"`
	Hooks   []struct {
		Command string `json:"command"`
	} `json:"hooks"`
}

// hookCategory is one lifecycle event category (e.g. PreToolUse) with its
// matchers, in registry order.
type hookCategory struct {
	Name     string
	Matchers []hookMatcher
}

// hookRow is one rendered table row on a category page.
type hookRow struct {
	Name        string
	Path        string
	Matcher     string
	Scope       string
	Behavior    string
	Description string
}

var pascalBoundaryRe = regexp.MustCompile(`([A-Z])`)

// categorySlug converts a PascalCase category to kebab-case:
// PreToolUse -> pre-tool-use.
func categorySlug(category string) string {
	return strings.ToLower(strings.Trim(pascalBoundaryRe.ReplaceAllString(category, "-$1"), "-"))
}

// hookNameFromCommand extracts the hook path and short name from a
// registry command string. Commands dispatch through run-hook.mjs or
// run-hook-silent.mjs followed by the hook path.
func hookNameFromCommand(command string) (path, name string) {
	for _, splitter := range []string{"run-hook.mjs ", "run-hook-silent.mjs "} {
		if _, after, found := strings.Cut(command, splitter); found {
			path = strings.TrimSpace(after)
			parts := strings.Split(path, "/")
			return path, parts[len(parts)-1]
		}
	}
	if idx := strings.LastIndex(command, "/"); idx != -1 {
		name = command[idx+1:]
	} else {
		name = command
	}
	return name, name
}

// hookScope classifies a hook path by its prefix.
func hookScope(hookPath string) string {
	switch {
	case strings.HasPrefix(hookPath, "agent/"):
		return "Agent"
	case strings.HasPrefix(hookPath, "skill/"):
		return "Skill"
	default:
		return "Global"
	}
}

// loadHookRegistry decodes the hooks.json registry, preserving the
// category order of the file. A plain map would shuffle categories between
// runs and churn the generated pages.
func loadHookRegistry(path string) ([]hookCategory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open hooks registry: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)

	// {
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse hooks registry: %w", err)
	}

	var categories []hookCategory
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse hooks registry: %w", err)
		}
		key, _ := keyTok.(string)

		if key != "hooks" {
			// Skip unrelated top-level values.
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("failed to parse hooks registry: %w", err)
			}
			continue
		}

		// { category: [matchers...] ... }
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("failed to parse hooks registry: %w", err)
		}
		for dec.More() {
			catTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("failed to parse hooks registry: %w", err)
			}
			name, _ := catTok.(string)

			var matchers []hookMatcher
			if err := dec.Decode(&matchers); err != nil {
				return nil, fmt.Errorf("failed to parse category %s: %w", name, err)
			}
			categories = append(categories, hookCategory{Name: name, Matchers: matchers})
		}
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("failed to parse hooks registry: %w", err)
		}
	}

	return categories, nil
}

// GenerateHooks renders one MDX page per hook category from the hooks.json
// registry, plus the hooks index, spotlights scaffold, and navigation
// manifest. Returns the total number of hook entries.
func (g *Generator) GenerateHooks() (int, error) {
	categories, err := loadHookRegistry(g.cfg.HooksJSON)
	if err != nil {
		return 0, err
	}

	hooksSrcDir := ""
	if g.cfg.ProjectRoot != "" {
		candidate := filepath.Join(g.cfg.ProjectRoot, "src", "hooks", "src")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			hooksSrcDir = candidate
		}
	}

	totalHooks := 0
	type catPage struct {
		Slug  string
		Name  string
		Count int
	}
	var catPages []catPage

	for _, cat := range categories {
		var rows []hookRow
		for _, m := range cat.Matchers {
			matcher := m.Matcher
			if matcher == "" {
				matcher = "*"
			}
			for _, h := range m.Hooks {
				hookPath, hookName := hookNameFromCommand(h.Command)
				info := hookSourceMetadata(hooksSrcDir, hookPath, h.Command)
				rows = append(rows, hookRow{
					Name:        hookName,
					Path:        hookPath,
					Matcher:     matcher,
					Scope:       hookScope(hookPath),
					Behavior:    info.Behavior,
					Description: info.Description,
				})
				totalHooks++
			}
		}

		slug := categorySlug(cat.Name)
		catPages = append(catPages, catPage{Slug: slug, Name: cat.Name, Count: len(rows)})

		if err := g.writeHookCategoryPage(slug, cat.Name, rows); err != nil {
			return 0, err
		}
	}

	// Index page.
	indexLines := []string{
		"---",
		"title: Hooks Reference",
		fmt.Sprintf(`description: "Complete reference for all %d OrchestKit hooks across %d event categories."`,
			totalHooks, len(categories)),
		"---",
		"",
		"# Hooks Reference",
		"",
		fmt.Sprintf("OrchestKit includes **%d hook entries** across **%d lifecycle event categories**.",
			totalHooks, len(categories)),
		"",
		"| Category | Hooks | Description |",
		"|----------|-------|-------------|",
	}
	for _, cp := range catPages {
		indexLines = append(indexLines, fmt.Sprintf("| [%s](/docs/reference/hooks/%s) | %d | Hooks for `%s` events |",
			cp.Name, cp.Slug, cp.Count, cp.Name))
	}
	if err := writeFile(filepath.Join(g.cfg.HooksOut, "index.mdx"),
		[]byte(strings.Join(indexLines, "\n")+"\n")); err != nil {
		return 0, err
	}

	// Spotlights scaffold for hand-written deep dives.
	if err := writeMeta(filepath.Join(g.cfg.HooksOut, "spotlights", "meta.json"), "Spotlights", []string{}); err != nil {
		return 0, err
	}

	pages := []string{"index"}
	for _, cp := range catPages {
		pages = append(pages, cp.Slug)
	}
	pages = append(pages, "spotlights")
	if err := writeMeta(filepath.Join(g.cfg.HooksOut, "meta.json"), "Hooks", pages); err != nil {
		return 0, err
	}

	return totalHooks, nil
}

func (g *Generator) writeHookCategoryPage(slug, category string, rows []hookRow) error {
	lines := []string{
		"---",
		fmt.Sprintf(`title: "%s"`, category),
		fmt.Sprintf(`description: "Hooks triggered on %s events (%d hooks)."`, category, len(rows)),
		"---",
		"",
		fmt.Sprintf("# %s Hooks", category),
		"",
		fmt.Sprintf("**%d hooks** registered for the `%s` lifecycle event.", len(rows), category),
		"",
	}

	if len(rows) > 0 {
		lines = append(lines,
			"| Hook | Matcher | Behavior | Description |",
			"|------|---------|----------|-------------|")
		for _, r := range rows {
			desc := r.Description
			if desc == "" {
				desc = "—"
			} else {
				desc = escapeTableCell(desc)
			}
			lines = append(lines, fmt.Sprintf("| `%s` | `%s` | %s | %s |",
				r.Name, escapeTableCell(r.Matcher), behaviorBadge(r.Behavior), desc))
		}
	} else {
		lines = append(lines, "*No hooks registered for this event.*")
	}
	lines = append(lines, "")

	return writeFile(filepath.Join(g.cfg.HooksOut, slug+".mdx"),
		[]byte(strings.Join(lines, "\n")))
}
