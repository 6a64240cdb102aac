package docs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testAgentMD = `---
name: backend-architect
description: Designs service boundaries and data flows. Activates for API design, schema reviews, and scaling questions.
model: opus
category: architecture
tools:
  - Read
  - Grep
  - Glob
skills:
  - api-design
---

Detailed operating instructions.
`

func TestShortDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{
			name:        "activates for clause removed",
			description: "Designs services. Activates for API design.",
			want:        "Designs services",
		},
		{
			name:        "use when clause removed",
			description: "Reviews code. Use when a PR is ready.",
			want:        "Reviews code",
		},
		{
			name:        "no clause keeps text minus trailing period",
			description: "Writes tests.",
			want:        "Writes tests",
		},
		{
			name:        "empty",
			description: "",
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shortDescription(tt.description); got != tt.want {
				t.Errorf("shortDescription(%q) = %q, want %q", tt.description, got, tt.want)
			}
		})
	}
}

func TestActivationKeywords(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"Designs services. Activates for API design, scaling.", "API design, scaling."},
		{"Reviews code. Use when a PR is ready.", "a PR is ready."},
		{"No clause here.", ""},
	}

	for _, tt := range tests {
		if got := activationKeywords(tt.description); got != tt.want {
			t.Errorf("activationKeywords(%q) = %q, want %q", tt.description, got, tt.want)
		}
	}
}

func TestGenerateAgents(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "backend-architect.md"), []byte(testAgentMD), 0644); err != nil {
		t.Fatal(err)
	}

	g := New(Config{AgentsSrc: src, AgentsOut: out})
	count, err := g.GenerateAgents()
	if err != nil {
		t.Fatalf("GenerateAgents() error: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	page, err := os.ReadFile(filepath.Join(out, "backend-architect.mdx"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(page)

	for _, want := range []string{
		`title: "Backend Architect"`,
		`<span className="badge badge-purple">opus</span>`,
		` <span className="badge badge-gray">architecture</span>`,
		"> Designs service boundaries and data flows",
		"## Activation Keywords",
		"This agent activates for: API design, schema reviews, and scaling questions.",
		"## Tools Available",
		"- `Read`",
		"- `Grep`",
		"- `Glob`",
		"## Skills Used",
		"- [api-design](/docs/reference/skills/api-design)",
		"Detailed operating instructions.",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("page missing %q:\n%s", want, content)
		}
	}
	if strings.Contains(content, "Agent-Scoped Hooks") {
		t.Error("no project root should mean no hooks section")
	}

	index, err := os.ReadFile(filepath.Join(out, "index.mdx"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index),
		"| [Backend Architect](/docs/reference/agents/backend-architect) | opus | Designs service boundaries and data flows |") {
		t.Errorf("index row wrong:\n%s", index)
	}
}

func TestBuildAgentPageUnknownModel(t *testing.T) {
	page := buildAgentPage("helper", map[string]interface{}{
		"description": "Does things.",
	}, "Body.", nil)

	if !strings.Contains(page, `<span className="badge badge-gray">unknown</span>`) {
		t.Errorf("missing model should render unknown badge:\n%s", page)
	}
}

func TestBuildAgentPageHooksTable(t *testing.T) {
	hooks := []hookInfo{
		{Hook: "dangerous-command-guard", Description: "Blocks destructive commands", Behavior: "blocks"},
		{Hook: "quiet-logger", Behavior: "silent"},
	}
	page := buildAgentPage("devops", map[string]interface{}{
		"description": "Operates infra.",
		"model":       "sonnet",
	}, "Body.", hooks)

	for _, want := range []string{
		"## Agent-Scoped Hooks",
		"| `dangerous-command-guard` | \U0001F6D1 Blocks | Blocks destructive commands |",
		"| `quiet-logger` | \U0001F507 Silent | — |",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q:\n%s", want, page)
		}
	}
}
