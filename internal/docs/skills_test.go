package docs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testSkillMD = `---
name: api-design
description: REST and RPC API design patterns
user-invocable: true
complexity: medium
agent: backend-architect
skills:
  - error-handling
  - pagination
---

# API Design

Start from the resource model.
`

func writeSkillTree(t *testing.T) (src, out string) {
	t.Helper()
	src = t.TempDir()
	out = t.TempDir()

	dir := filepath.Join(src, "api-design")
	if err := os.MkdirAll(filepath.Join(dir, "rules"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(testSkillMD), 0644); err != nil {
		t.Fatal(err)
	}
	rule := "---\ntitle: Version Everything\nimpact: HIGH\n---\n\nAlways version public endpoints.\n"
	if err := os.WriteFile(filepath.Join(dir, "rules", "versioning.md"), []byte(rule), 0644); err != nil {
		t.Fatal(err)
	}
	// Internal files are skipped.
	if err := os.WriteFile(filepath.Join(dir, "rules", "_sections.md"), []byte("internal"), 0644); err != nil {
		t.Fatal(err)
	}

	// A directory without SKILL.md is counted but gets no page.
	if err := os.MkdirAll(filepath.Join(src, "empty-dir"), 0755); err != nil {
		t.Fatal(err)
	}

	return src, out
}

func TestGenerateSkills(t *testing.T) {
	src, out := writeSkillTree(t)
	g := New(Config{SkillsSrc: src, SkillsOut: out})

	count, err := g.GenerateSkills()
	if err != nil {
		t.Fatalf("GenerateSkills() error: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	page, err := os.ReadFile(filepath.Join(out, "api-design.mdx"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(page)

	for _, want := range []string{
		`title: "Api Design"`,
		`description: "REST and RPC API design patterns"`,
		`<span className="badge badge-blue">Command</span>`,
		`<span className="badge badge-yellow">medium</span>`,
		"**Primary Agent:** [backend-architect](/docs/reference/agents/backend-architect)",
		"- [error-handling](/docs/reference/skills/error-handling)",
		"- [pagination](/docs/reference/skills/pagination)",
		"Start from the resource model.",
		"## Rules (1)",
		"### Version Everything — HIGH",
		"Always version public endpoints.",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("page missing %q:\n%s", want, content)
		}
	}
	if strings.Contains(content, "internal") {
		t.Error("underscore-prefixed subdir file should be skipped")
	}

	if _, err := os.Stat(filepath.Join(out, "empty-dir.mdx")); !os.IsNotExist(err) {
		t.Error("directory without SKILL.md should not get a page")
	}

	index, err := os.ReadFile(filepath.Join(out, "index.mdx"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), "OrchestKit includes **2 skills**") {
		t.Errorf("index count wrong:\n%s", index)
	}
	if !strings.Contains(string(index), "| [Api Design](/docs/reference/skills/api-design) | Command | medium |") {
		t.Errorf("index row wrong:\n%s", index)
	}

	var meta navMeta
	data, err := os.ReadFile(filepath.Join(out, "meta.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		t.Fatal(err)
	}
	if meta.Title != "Skills" {
		t.Errorf("meta title = %q", meta.Title)
	}
	want := []string{"index", "api-design"}
	if len(meta.Pages) != len(want) || meta.Pages[0] != want[0] || meta.Pages[1] != want[1] {
		t.Errorf("meta pages = %v, want %v", meta.Pages, want)
	}
}

func TestBuildSkillPageReferenceType(t *testing.T) {
	meta, body := map[string]interface{}{
		"description": "background knowledge",
	}, "Body text."

	page := buildSkillPage("notes", meta, body, nil)
	if !strings.Contains(page, `<span className="badge badge-gray">Reference</span>`) {
		t.Errorf("non-invocable skill should get Reference badge:\n%s", page)
	}
	if strings.Contains(page, "Primary Agent") {
		t.Error("no agent field should mean no Primary Agent line")
	}
}

func TestSkillIndexRowEmptyComplexity(t *testing.T) {
	row := skillIndexRow("notes", map[string]interface{}{"description": "a | b"})
	if !strings.Contains(row, "| Reference | — |") {
		t.Errorf("empty complexity should render an em dash: %q", row)
	}
	if !strings.Contains(row, `a \| b`) {
		t.Errorf("description pipes should be escaped: %q", row)
	}
}
