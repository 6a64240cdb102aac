package docs

import (
	"strings"
	"testing"
)

func TestSanitizeBody(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "escapes curly braces",
			input: "render {value} inline",
			want:  `render \{value\} inline`,
		},
		{
			name:  "safe html tag passes through",
			input: "line break <br> here",
			want:  "line break <br> here",
		},
		{
			name:  "safe mdx component passes through",
			input: "<Callout>note</Callout>",
			want:  "<Callout>note</Callout>",
		},
		{
			name:  "unsafe tag escaped",
			input: "generic <T> parameter",
			want:  "generic &lt;T&gt; parameter",
		},
		{
			name:  "closing unsafe tag escaped",
			input: "ends with </T>",
			want:  "ends with &lt;/T&gt;",
		},
		{
			name:  "bare less-than escaped",
			input: "when x < 5",
			want:  "when x &lt; 5",
		},
		{
			name:  "less-than before letter left alone",
			input: "a <b without close",
			want:  "a <b without close",
		},
		{
			name:  "code fence content untouched",
			input: "```go\nm := map[string]int{\"a\": 1}\n```",
			want:  "```go\nm := map[string]int{\"a\": 1}\n```",
		},
		{
			name:  "unsupported fence language becomes text",
			input: "```env\nFOO=1\n```",
			want:  "```text\nFOO=1\n```",
		},
		{
			name:  "unsupported language case insensitive",
			input: "```INI\nkey=val\n```",
			want:  "```text\nkey=val\n```",
		},
		{
			name:  "supported language kept",
			input: "```python\nprint(1)\n```",
			want:  "```python\nprint(1)\n```",
		},
		{
			name:  "unclosed trailing fence gets closed",
			input: "intro\n```go\ncode",
			want:  "intro\n```go\n```\ncode",
		},
		{
			name:  "braces inside fence then outside",
			input: "```json\n{\"a\": 1}\n```\nafter {x}",
			want:  "```json\n{\"a\": 1}\n```\nafter \\{x\\}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeBody(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeBody(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeBodyMixedTags(t *testing.T) {
	got := SanitizeBody("a <div>ok</div> and <Weird> tag")
	if !strings.Contains(got, "<div>ok</div>") {
		t.Errorf("safe tags should survive, got %q", got)
	}
	if !strings.Contains(got, "&lt;Weird&gt;") {
		t.Errorf("unsafe tags should be escaped, got %q", got)
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"api-design", "Api Design"},
		{"tdd", "Tdd"},
		{"multi-part-slug-name", "Multi Part Slug Name"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TitleCase(tt.slug); got != tt.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.slug, got, tt.want)
		}
	}
}

func TestEscapeTableCell(t *testing.T) {
	got := escapeTableCell("a | b")
	if got != `a \| b` {
		t.Errorf("escapeTableCell() = %q", got)
	}
}
