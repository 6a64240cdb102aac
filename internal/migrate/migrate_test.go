package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const legacyAgent = `---
name: debug-investigator
description: Investigates test failures and regressions
model_preference: opus
max_tokens: 8192
color: red
tools: Read, Grep, Bash
skills: root-cause-analysis, bisection
---

# Debug Investigator

Finds the commit that broke things.
`

const migratedAgent = `---
name: debug-investigator
description: Investigates test failures and regressions
model: opus
color: red
tools:
  - Read
  - Grep
  - Bash
skills:
  - root-cause-analysis
  - bisection
---
# Debug Investigator

Finds the commit that broke things.
`

func TestParseAgent(t *testing.T) {
	agent, ok := ParseAgent(legacyAgent)
	if !ok {
		t.Fatal("ParseAgent() ok = false, want true")
	}

	if got := agent.Scalars["model_preference"]; got != "opus" {
		t.Errorf("model_preference = %q, want opus", got)
	}
	if got := agent.Scalars["tools"]; got != "Read, Grep, Bash" {
		t.Errorf("tools = %q", got)
	}
	if agent.Hooks != "" {
		t.Errorf("hooks = %q, want empty", agent.Hooks)
	}
	if !strings.HasPrefix(agent.Body, "\n# Debug Investigator") && !strings.HasPrefix(agent.Body, "# Debug Investigator") {
		t.Errorf("body = %q", agent.Body)
	}
}

func TestParseAgentHooksBlock(t *testing.T) {
	content := `---
name: guarded
description: An agent with hooks
model: sonnet
hooks:
  PreToolUse:
    - matcher: Write
      command: block-writes
tools: Read
---
Body
`
	agent, ok := ParseAgent(content)
	if !ok {
		t.Fatal("ParseAgent() ok = false")
	}

	wantHooks := "hooks:\n  PreToolUse:\n    - matcher: Write\n      command: block-writes"
	if agent.Hooks != wantHooks {
		t.Errorf("hooks = %q, want %q", agent.Hooks, wantHooks)
	}
	// The key following the hooks block is still parsed.
	if got := agent.Scalars["tools"]; got != "Read" {
		t.Errorf("tools = %q, want Read", got)
	}
}

func TestParseAgentNoFrontmatter(t *testing.T) {
	if _, ok := ParseAgent("# Plain markdown\n"); ok {
		t.Error("ParseAgent() ok = true for plain markdown")
	}
	if _, ok := ParseAgent("---\nname: x\nnever closed"); ok {
		t.Error("ParseAgent() ok = true for unclosed frontmatter")
	}
}

func TestRender(t *testing.T) {
	agent, ok := ParseAgent(legacyAgent)
	if !ok {
		t.Fatal("ParseAgent() failed")
	}

	content, res := Render(agent)
	if content != migratedAgent {
		t.Errorf("Render() = %q, want %q", content, migratedAgent)
	}
	if res.Name != "debug-investigator" {
		t.Errorf("Name = %q", res.Name)
	}
	if res.Model != "opus" {
		t.Errorf("Model = %q, want opus (from model_preference)", res.Model)
	}
	if res.ToolCount != 3 || res.SkillCount != 2 {
		t.Errorf("counts = %d tools, %d skills; want 3, 2", res.ToolCount, res.SkillCount)
	}
	if strings.Contains(content, "max_tokens") {
		t.Error("max_tokens survived migration")
	}
}

func TestRenderDefaults(t *testing.T) {
	agent := &Agent{
		Scalars: map[string]string{
			"name":        "minimal",
			"description": "Bare agent",
		},
		Body: "Body\n",
	}

	content, res := Render(agent)
	if res.Model != "inherit" {
		t.Errorf("Model = %q, want inherit", res.Model)
	}
	if !strings.Contains(content, "color: blue") {
		t.Error("missing default color")
	}
	if strings.Contains(content, "tools:") || strings.Contains(content, "skills:") {
		t.Error("empty list fields should be omitted")
	}
}

func TestRenderPreservesHooks(t *testing.T) {
	agent := &Agent{
		Scalars: map[string]string{"name": "guarded", "description": "d", "model": "haiku"},
		Hooks:   "hooks:\n  PreToolUse:\n    - matcher: Write\n      command: block-writes",
		Body:    "Body\n",
	}

	content, _ := Render(agent)
	if !strings.Contains(content, "      command: block-writes\n---\n") {
		t.Errorf("hooks block not preserved verbatim:\n%s", content)
	}
}

func TestDir(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "b-agent.md"), legacyAgent)
	writeFile(t, filepath.Join(dir, "a-agent.md"), legacyAgent)
	writeFile(t, filepath.Join(dir, "notes.md"), "# No frontmatter\n")
	writeFile(t, filepath.Join(dir, "README.txt"), "ignored")

	results, err := Dir(dir, false)
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Dir() returned %d results, want 3", len(results))
	}

	// Sorted order.
	if filepath.Base(results[0].File) != "a-agent.md" {
		t.Errorf("first file = %s, want a-agent.md", results[0].File)
	}
	if !results[2].Skipped {
		t.Error("notes.md should be skipped")
	}

	migrated, err := os.ReadFile(filepath.Join(dir, "a-agent.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(migrated) != migratedAgent {
		t.Errorf("migrated content = %q, want %q", string(migrated), migratedAgent)
	}
}

func TestDirDryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agent.md")
	writeFile(t, path, legacyAgent)

	results, err := Dir(dir, true)
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}
	if len(results) != 1 || results[0].ToolCount != 3 {
		t.Errorf("unexpected results: %+v", results)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != legacyAgent {
		t.Error("dry run modified the file")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
