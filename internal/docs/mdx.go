package docs

import (
	"regexp"
	"strings"
)

// unsupportedLangs are code-fence languages outside Shiki's default bundle.
// Fences using them are rewritten to plain text so the site build does not
// fail on an unknown highlighter.
var unsupportedLangs = map[string]bool{
	"colang": true, "tape": true, "redis": true, "env": true, "dotenv": true,
	"properties": true, "conf": true, "cfg": true, "ini": true,
}

// safeTags are HTML elements and MDX components allowed through unescaped.
// Anything else in angle brackets would be interpreted as JSX.
var safeTags = map[string]bool{
	"br": true, "hr": true, "img": true, "a": true, "div": true, "span": true,
	"p": true, "ul": true, "ol": true, "li": true,
	"table": true, "thead": true, "tbody": true, "tr": true, "td": true, "th": true,
	"strong": true, "em": true, "code": true, "pre": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"sup": true, "sub": true, "details": true, "summary": true,
	"Callout": true, "Card": true, "Tab": true, "Tabs": true, "Steps": true, "Step": true,
}

var (
	anglePairRe = regexp.MustCompile(`<[^>]*>`)
	tagNameRe   = regexp.MustCompile(`^</?([a-zA-Z]\w*)`)
)

// SanitizeBody escapes MDX-incompatible content in raw markdown.
//
// Outside code fences it escapes curly braces, escapes HTML-like tags that
// are not on the safe list, and escapes bare < characters. Code fences pass
// through untouched except that unsupported languages become "text". An
// unclosed trailing fence gets closed so the page still renders.
func SanitizeBody(body string) string {
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))
	inCodeBlock := false

	for _, line := range lines {
		stripped := strings.TrimSpace(line)

		if strings.HasPrefix(stripped, "```") {
			if !inCodeBlock {
				inCodeBlock = true
				if lang := fenceLang(stripped); lang != "" && unsupportedLangs[strings.ToLower(lang)] {
					line = strings.Replace(line, "```"+lang, "```text", 1)
				}
			} else {
				inCodeBlock = false
			}
			out = append(out, line)
			continue
		}

		if inCodeBlock {
			out = append(out, line)
			continue
		}

		line = strings.ReplaceAll(line, "{", `\{`)
		line = strings.ReplaceAll(line, "}", `\}`)

		line = anglePairRe.ReplaceAllStringFunc(line, func(full string) string {
			if m := tagNameRe.FindStringSubmatch(full); m != nil && safeTags[m[1]] {
				return full
			}
			escaped := strings.ReplaceAll(full, "<", "&lt;")
			return strings.ReplaceAll(escaped, ">", "&gt;")
		})
		line = escapeBareLT(line)

		out = append(out, line)
	}

	if inCodeBlock {
		lastFence := -1
		for i, ln := range out {
			if strings.HasPrefix(strings.TrimSpace(ln), "```") && i > 0 {
				lastFence = i
			}
		}
		if lastFence >= 0 {
			out[lastFence] = out[lastFence] + "\n```"
		}
	}

	return strings.Join(out, "\n")
}

// fenceLang extracts the language token from a stripped fence line.
func fenceLang(stripped string) string {
	rest := strings.TrimPrefix(stripped, "```")
	if rest == "" {
		return ""
	}
	return strings.Fields(rest)[0]
}

// escapeBareLT escapes < characters that could open a JSX expression:
// any < not followed by a letter, /, ! or &.
func escapeBareLT(line string) string {
	if !strings.Contains(line, "<") {
		return line
	}
	var b strings.Builder
	b.Grow(len(line))
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '<' && !safeAfterLT(line, i+1) {
			b.WriteString("&lt;")
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func safeAfterLT(line string, i int) bool {
	if i >= len(line) {
		return false
	}
	c := line[i]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '/' || c == '!' || c == '&'
}

// TitleCase converts a kebab-case slug to Title Case.
func TitleCase(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// escapeTableCell escapes pipes so a description is safe inside a markdown table.
func escapeTableCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
