// Package migrate rewrites agent definition frontmatter from the legacy
// layout to the current one.
//
// The legacy files carry model_preference instead of model, a max_tokens
// field that is no longer recognized, and comma-separated tools/skills
// scalars instead of block lists. The nested hooks block is valid in both
// layouts and passes through untouched.
package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Agent holds the frontmatter of a legacy agent definition file. Scalar
// fields are kept as written; the hooks block is captured verbatim because
// its nested structure is opaque to the migration.
type Agent struct {
	Scalars map[string]string
	Hooks   string
	Body    string
}

// Result summarizes one migrated file.
type Result struct {
	File       string
	Name       string
	Model      string
	ToolCount  int
	SkillCount int
	Skipped    bool
}

// ParseAgent extracts frontmatter scalars, the raw hooks block, and the
// body from an agent file. ok is false when the file has no frontmatter.
func ParseAgent(content string) (*Agent, bool) {
	if !strings.HasPrefix(content, "---\n") {
		return nil, false
	}
	rest := content[4:]
	idx := strings.Index(rest, "\n---")
	if idx == -1 {
		return nil, false
	}
	block := rest[:idx]
	body := rest[idx+4:]
	body = strings.TrimPrefix(body, "\n")

	agent := &Agent{Scalars: map[string]string{}, Body: body}
	var hookLines []string
	inHooks := false

	for _, line := range strings.Split(block, "\n") {
		if strings.HasPrefix(line, "hooks:") {
			inHooks = true
			hookLines = []string{line}
			continue
		}
		if inHooks {
			if strings.HasPrefix(line, "  ") || strings.HasPrefix(line, "\t") {
				hookLines = append(hookLines, line)
				continue
			}
			agent.Hooks = strings.Join(hookLines, "\n")
			inHooks = false
		}

		if strings.HasPrefix(line, " ") {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		agent.Scalars[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if inHooks && len(hookLines) > 0 {
		agent.Hooks = strings.Join(hookLines, "\n")
	}

	return agent, true
}

// splitCommaList turns "a, b, c" into its non-empty trimmed items.
func splitCommaList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Render produces the migrated file content for a parsed agent.
//
// Field order is fixed: name, description, model, color, tools, skills,
// hooks. model_preference wins over model; max_tokens is dropped.
func Render(agent *Agent) (string, Result) {
	name := agent.Scalars["name"]
	description := agent.Scalars["description"]
	model := agent.Scalars["model_preference"]
	if model == "" {
		model = agent.Scalars["model"]
	}
	if model == "" {
		model = "inherit"
	}
	color := agent.Scalars["color"]
	if color == "" {
		color = "blue"
	}
	tools := splitCommaList(agent.Scalars["tools"])
	skills := splitCommaList(agent.Scalars["skills"])

	lines := []string{
		"---",
		"name: " + name,
		"description: " + description,
		"model: " + model,
		"color: " + color,
	}
	if len(tools) > 0 {
		lines = append(lines, "tools:")
		for _, t := range tools {
			lines = append(lines, "  - "+t)
		}
	}
	if len(skills) > 0 {
		lines = append(lines, "skills:")
		for _, s := range skills {
			lines = append(lines, "  - "+s)
		}
	}
	if agent.Hooks != "" {
		lines = append(lines, agent.Hooks)
	}
	lines = append(lines, "---")

	content := strings.Join(lines, "\n") + "\n" + strings.TrimLeft(agent.Body, "\n")

	return content, Result{
		Name:       name,
		Model:      model,
		ToolCount:  len(tools),
		SkillCount: len(skills),
	}
}

// File migrates a single agent file in place. When dryRun is set the file
// is left untouched and only the result is reported.
func File(path string, dryRun bool) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	agent, ok := ParseAgent(string(data))
	if !ok {
		return Result{File: path, Skipped: true}, nil
	}

	content, res := Render(agent)
	res.File = path

	if dryRun {
		return res, nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return Result{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return res, nil
}

// Dir migrates every *.md file in dir, sorted by name.
func Dir(dir string, dryRun bool) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".md") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	var results []Result
	for _, file := range files {
		res, err := File(file, dryRun)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
