// Package frontmatter parses the delimited metadata block at the top of
// markdown artifact files (agents, skills, rule files).
//
// Artifact frontmatter is a narrow YAML subset: string scalars, booleans,
// and string lists (inline or block style). Parse handles that subset with
// plain line scanning so it stays tolerant of the slightly irregular files
// found in real agent collections. ParseTyped and Serialize use yaml.v3 for
// well-formed inputs where a struct schema is known.
package frontmatter

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter marks the start and end of a frontmatter block.
const Delimiter = "---"

// Fields holds parsed frontmatter. Values are string, bool, or []string.
type Fields map[string]interface{}

var (
	listItemRe = regexp.MustCompile(`^(\s+)-\s+(.+)$`)
	keyValueRe = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_-]*):\s*(.*)$`)
)

// Split separates a frontmatter block from the body. ok is false when the
// content has no opening delimiter or the block is never closed; callers
// then treat the whole content as body.
func Split(content string) (block string, body string, ok bool) {
	if !strings.HasPrefix(content, Delimiter) {
		return "", content, false
	}

	lines := strings.Split(content, "\n")
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == Delimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return "", content, false
	}

	block = strings.Join(lines[1:end], "\n")
	body = strings.Join(lines[end+1:], "\n")
	return block, body, true
}

// Parse extracts frontmatter fields and the body from markdown content.
// Malformed lines are skipped rather than reported: the parser is used on
// loosely curated collections where a bad line should not sink the page.
func Parse(content []byte) (Fields, string) {
	fields := Fields{}
	block, body, ok := Split(string(content))
	if !ok {
		return fields, body
	}

	var currentKey string
	var currentList []string
	inList := false

	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		// Indented "- item" continues the list opened by the previous key.
		if m := listItemRe.FindStringSubmatch(line); m != nil && currentKey != "" && inList {
			currentList = append(currentList, trimQuotes(strings.TrimSpace(m[2])))
			fields[currentKey] = currentList
			continue
		}

		m := keyValueRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key := m[1]
		raw := strings.TrimSpace(m[2])

		switch {
		case strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]"):
			// Inline list: [a, b, c]
			var items []string
			for _, item := range strings.Split(raw[1:len(raw)-1], ",") {
				item = strings.TrimSpace(item)
				if item != "" {
					items = append(items, trimQuotes(item))
				}
			}
			if items == nil {
				items = []string{}
			}
			fields[key] = items
			currentKey, currentList, inList = key, nil, false

		case raw == "" || raw == "[]":
			// Empty value: a block list may follow.
			currentKey, currentList, inList = key, []string{}, true
			fields[key] = currentList

		case strings.EqualFold(raw, "true") || strings.EqualFold(raw, "false"):
			fields[key] = strings.EqualFold(raw, "true")
			currentKey, currentList, inList = key, nil, false

		default:
			fields[key] = trimQuotes(raw)
			currentKey, currentList, inList = key, nil, false
		}
	}

	return fields, body
}

// ParseTyped extracts frontmatter into a typed struct using yaml.v3.
// Returns the body content and any error.
func ParseTyped[T any](content []byte, target *T) (string, error) {
	block, body, ok := Split(string(content))
	if !ok {
		return body, nil
	}

	if err := yaml.Unmarshal([]byte(block), target); err != nil {
		return "", fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	return body, nil
}

// Serialize creates content with YAML frontmatter and body.
func Serialize(fm interface{}, body string) ([]byte, error) {
	yamlBytes, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize frontmatter: %w", err)
	}

	var result strings.Builder
	result.WriteString(Delimiter + "\n")
	result.Write(yamlBytes)
	result.WriteString(Delimiter + "\n")
	if body != "" {
		result.WriteString("\n")
		result.WriteString(body)
	}

	return []byte(result.String()), nil
}

// GetString returns the string value for key, or "" when absent or not a string.
func (f Fields) GetString(key string) string {
	if v, ok := f[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetBool returns the boolean value for key, or false when absent or not a bool.
func (f Fields) GetBool(key string) bool {
	if v, ok := f[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// GetStringList returns the list value for key. A scalar string is coerced
// to a single-element list, matching how authors write one-item fields.
func (f Fields) GetStringList(key string) []string {
	switch v := f[key].(type) {
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}

// Quote wraps a string in double quotes for emission into YAML frontmatter,
// escaping embedded quotes.
func Quote(val string) string {
	return `"` + strings.ReplaceAll(val, `"`, `\"`) + `"`
}

func trimQuotes(s string) string {
	return strings.Trim(s, `"'`)
}
