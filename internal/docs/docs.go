// Package docs generates Fumadocs MDX reference pages from the toolkit's
// source tree: skill directories, agent definition files, and the hooks
// registry. Each generator writes per-entry pages, an index page with a
// summary table, and a meta.json navigation manifest.
package docs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the source and output locations for a generation run.
type Config struct {
	// ProjectRoot enables TypeScript hook source scanning when set.
	ProjectRoot string

	SkillsSrc string
	AgentsSrc string
	HooksJSON string

	DocsOut   string
	SkillsOut string
	AgentsOut string
	HooksOut  string
}

// Generator renders reference pages for one toolkit source tree.
type Generator struct {
	cfg Config
}

// New creates a Generator for the given config.
func New(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// Run generates all reference sections and the parent navigation manifest.
// Returns the skill, agent, and hook counts.
func (g *Generator) Run() (skills, agents, hooks int, err error) {
	skills, err = g.GenerateSkills()
	if err != nil {
		return
	}
	agents, err = g.GenerateAgents()
	if err != nil {
		return
	}
	hooks, err = g.GenerateHooks()
	if err != nil {
		return
	}
	err = g.WriteReferenceMeta()
	return
}

// WriteReferenceMeta writes the top-level reference navigation manifest.
func (g *Generator) WriteReferenceMeta() error {
	return writeMeta(filepath.Join(g.cfg.DocsOut, "meta.json"), "Reference",
		[]string{"index", "skills", "agents", "hooks"})
}

// navMeta is the shape of a Fumadocs meta.json manifest.
type navMeta struct {
	Title string   `json:"title"`
	Pages []string `json:"pages"`
}

func writeMeta(path, title string, pages []string) error {
	data, err := json.MarshalIndent(navMeta{Title: title, Pages: pages}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return writeFile(path, append(data, '\n'))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
