package docs

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// hookInfo is the metadata extracted for one hook: its registry name plus
// what the TypeScript source reveals about it.
type hookInfo struct {
	Hook        string
	Description string
	Behavior    string
}

// behaviorBadges label the four hook behavior classes on generated pages.
var behaviorBadges = map[string]string{
	"blocks":          "\U0001F6D1 Blocks",
	"injects":         "\U0001F4A1 Injects",
	"silent":          "\U0001F507 Silent",
	"fire-and-forget": "\U0001F525 Fire-and-forget",
}

func behaviorBadge(behavior string) string {
	if b, ok := behaviorBadges[behavior]; ok {
		return b
	}
	return behavior
}

var (
	tsdocBlockRe  = regexp.MustCompile(`(?s)^/\*\*(.*?)\*/`)
	usedByRe      = regexp.MustCompile(`(?s)Used by:\s*(.+?)(?:\n\s*\*\s*\n|\n\s*\*\s*[A-Z]|\*/)`)
	usedByContRe  = regexp.MustCompile(`\n\s*\*\s*`)
	agentSuffixRe = regexp.MustCompile(`\s+agents?\s*$`)
	commaSplitRe  = regexp.MustCompile(`,\s*`)

	titleWithTypeRe = regexp.MustCompile(`(?i).+ - .+(Hook|Dispatcher)$`)
	bareTitleRe     = regexp.MustCompile(`.+(Hook|Dispatcher)$`)
	titleDescRe     = regexp.MustCompile(`.+ - (.+)`)
	skipLineRe      = regexp.MustCompile(`^(CC \d|Hook:|Version:|Issue #\d+|(SECURITY|Purpose|Hooks consolidated|NOT consolidated|Created):|- |\d+\.)`)

	blocksRe = regexp.MustCompile(`continue\s*:\s*false`)
)

// agentHooksMap scans the agent-scoped hook sources under
// <projectRoot>/src/hooks/src/agent and maps each agent slug to the hooks
// that name it in a "Used by:" TSDoc line.
func agentHooksMap(projectRoot string) (map[string][]hookInfo, error) {
	if projectRoot == "" {
		return nil, nil
	}
	dir := filepath.Join(projectRoot, "src", "hooks", "src", "agent")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".ts") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	agentMap := map[string][]hookInfo{}
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		source := string(data)

		m := usedByRe.FindStringSubmatch(source)
		if m == nil {
			continue
		}
		// Collapse " * " continuation markers into spaces, then split on commas.
		usedBy := strings.TrimSpace(usedByContRe.ReplaceAllString(m[1], " "))
		var agents []string
		for _, part := range commaSplitRe.Split(usedBy, -1) {
			agent := agentSuffixRe.ReplaceAllString(strings.TrimSpace(part), "")
			if agent != "" {
				agents = append(agents, agent)
			}
		}

		info := hookInfo{
			Hook:        strings.TrimSuffix(name, ".ts"),
			Description: tsdocDescription(source),
			Behavior:    detectBehavior(source, ""),
		}
		for _, agent := range agents {
			agentMap[agent] = append(agentMap[agent], info)
		}
	}

	return agentMap, nil
}

// tsdocDescription extracts the first meaningful description line from the
// leading TSDoc comment block, skipping title lines, compliance notes,
// version stamps, and list items. A "Name - description" title line yields
// the part after the dash.
func tsdocDescription(source string) string {
	m := tsdocBlockRe.FindStringSubmatch(source)
	if m == nil {
		return ""
	}

	var lines []string
	for _, line := range strings.Split(m[1], "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "* "))
		if line != "" {
			lines = append(lines, line)
		}
	}

	for i, line := range lines {
		if titleWithTypeRe.MatchString(line) {
			continue
		}
		if i == 0 && bareTitleRe.MatchString(line) {
			continue
		}
		if i == 0 {
			if td := titleDescRe.FindStringSubmatch(line); td != nil {
				return td[1]
			}
		}
		if skipLineRe.MatchString(line) {
			continue
		}
		return line
	}
	return ""
}

// detectBehavior classifies a hook from its source and registry command.
func detectBehavior(source, command string) string {
	switch {
	case strings.Contains(command, "run-hook-silent.mjs"):
		return "fire-and-forget"
	case blocksRe.MatchString(source) || strings.Contains(source, "outputDeny"):
		return "blocks"
	case strings.Contains(source, "additionalContext") || strings.Contains(source, "outputAllowWithContext"):
		return "injects"
	default:
		return "silent"
	}
}

// hookSourceMetadata resolves a hook path to its TypeScript source and
// extracts description and behavior. Missing sources fall back to
// command-only behavior detection.
func hookSourceMetadata(hooksSrcDir, hookPath, command string) hookInfo {
	info := hookInfo{Hook: hookPath, Behavior: detectBehavior("", command)}
	if hooksSrcDir == "" {
		return info
	}
	data, err := os.ReadFile(filepath.Join(hooksSrcDir, hookPath+".ts"))
	if err != nil {
		return info
	}
	source := string(data)
	info.Description = tsdocDescription(source)
	info.Behavior = detectBehavior(source, command)
	return info
}
