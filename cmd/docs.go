package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orchestkit/orchestkit/internal/docs"
	"github.com/orchestkit/orchestkit/internal/remote"
	"github.com/orchestkit/orchestkit/internal/ui"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate MDX reference pages",
	Long: `Generate Fumadocs MDX reference pages for skills, agents, and hooks.

Every path flag falls back to the environment variable of the same name,
so the command slots into the existing build-docs.sh pipeline unchanged.

With --repo, skill pages are generated from a GitHub repository's skills/
directory instead of a local tree (token resolution: GITHUB_TOKEN,
GH_TOKEN, gh CLI config, unauthenticated).

Examples:
  orchestkit docs --skills-src src/skills --agents-src agents \
    --hooks-json hooks/hooks.json --docs-out docs/content/reference \
    --skills-out docs/content/reference/skills \
    --agents-out docs/content/reference/agents \
    --hooks-out docs/content/reference/hooks
  orchestkit docs --repo acme/skill-library --skills-out out/skills`,
	Run: runDocs,
}

var (
	docsProjectRoot string
	docsSkillsSrc   string
	docsAgentsSrc   string
	docsHooksJSON   string
	docsDocsOut     string
	docsSkillsOut   string
	docsAgentsOut   string
	docsHooksOut    string
	docsRepo        string
)

func init() {
	docsCmd.Flags().StringVar(&docsProjectRoot, "project-root", "", "Project root for hook source scanning (env: PROJECT_ROOT)")
	docsCmd.Flags().StringVar(&docsSkillsSrc, "skills-src", "", "Skills source directory (env: SKILLS_SRC)")
	docsCmd.Flags().StringVar(&docsAgentsSrc, "agents-src", "", "Agents source directory (env: AGENTS_SRC)")
	docsCmd.Flags().StringVar(&docsHooksJSON, "hooks-json", "", "Hooks registry file (env: HOOKS_JSON)")
	docsCmd.Flags().StringVar(&docsDocsOut, "docs-out", "", "Reference output directory (env: DOCS_OUT)")
	docsCmd.Flags().StringVar(&docsSkillsOut, "skills-out", "", "Skill pages output directory (env: SKILLS_OUT)")
	docsCmd.Flags().StringVar(&docsAgentsOut, "agents-out", "", "Agent pages output directory (env: AGENTS_OUT)")
	docsCmd.Flags().StringVar(&docsHooksOut, "hooks-out", "", "Hook pages output directory (env: HOOKS_OUT)")
	docsCmd.Flags().StringVar(&docsRepo, "repo", "", "Generate skill pages from a GitHub repository (owner/repo)")

	rootCmd.AddCommand(docsCmd)
}

func runDocs(cmd *cobra.Command, args []string) {
	cfg := docs.Config{
		ProjectRoot: envOr(docsProjectRoot, "PROJECT_ROOT"),
		SkillsSrc:   envOr(docsSkillsSrc, "SKILLS_SRC"),
		AgentsSrc:   envOr(docsAgentsSrc, "AGENTS_SRC"),
		HooksJSON:   envOr(docsHooksJSON, "HOOKS_JSON"),
		DocsOut:     envOr(docsDocsOut, "DOCS_OUT"),
		SkillsOut:   envOr(docsSkillsOut, "SKILLS_OUT"),
		AgentsOut:   envOr(docsAgentsOut, "AGENTS_OUT"),
		HooksOut:    envOr(docsHooksOut, "HOOKS_OUT"),
	}

	fmt.Println()
	fmt.Println(ui.SectionHeader("Generating Reference Docs"))
	fmt.Println()

	if docsRepo != "" {
		runDocsRemote(cfg)
		return
	}

	for name, val := range map[string]string{
		"--skills-src / SKILLS_SRC": cfg.SkillsSrc,
		"--agents-src / AGENTS_SRC": cfg.AgentsSrc,
		"--hooks-json / HOOKS_JSON": cfg.HooksJSON,
		"--docs-out / DOCS_OUT":     cfg.DocsOut,
		"--skills-out / SKILLS_OUT": cfg.SkillsOut,
		"--agents-out / AGENTS_OUT": cfg.AgentsOut,
		"--hooks-out / HOOKS_OUT":   cfg.HooksOut,
	} {
		if val == "" {
			exitWithError(name + " is required")
		}
	}

	gen := docs.New(cfg)

	skills, err := gen.GenerateSkills()
	if err != nil {
		exitWithError(err.Error())
	}
	fmt.Println(ui.SuccessLine(fmt.Sprintf("%d skill pages -> %s", skills, cfg.SkillsOut)))

	agents, err := gen.GenerateAgents()
	if err != nil {
		exitWithError(err.Error())
	}
	fmt.Println(ui.SuccessLine(fmt.Sprintf("%d agent pages -> %s", agents, cfg.AgentsOut)))

	hooks, err := gen.GenerateHooks()
	if err != nil {
		exitWithError(err.Error())
	}
	fmt.Println(ui.SuccessLine(fmt.Sprintf("%d hook entries -> %s", hooks, cfg.HooksOut)))

	if err := gen.WriteReferenceMeta(); err != nil {
		exitWithError(err.Error())
	}
	fmt.Println(ui.SuccessLine("reference meta.json updated"))
	fmt.Println()
}

func runDocsRemote(cfg docs.Config) {
	if cfg.SkillsOut == "" {
		exitWithError("--skills-out / SKILLS_OUT is required")
	}

	owner, repo, err := remote.SplitRepo(docsRepo)
	if err != nil {
		exitWithError(err.Error())
	}

	client := remote.New()
	if !client.IsAuthenticated() {
		fmt.Println(ui.WarningLine("no GitHub token found, using unauthenticated API (60 req/hr)"))
	}
	fmt.Println(ui.InfoLine("Scanning " + docsRepo + "..."))

	skills, err := client.FindSkills(context.Background(), owner, repo)
	if err != nil {
		exitWithError(err.Error())
	}

	count, err := docs.New(cfg).GenerateSkillsFromRemote(skills)
	if err != nil {
		exitWithError(err.Error())
	}
	fmt.Println(ui.SuccessLine(fmt.Sprintf("%d skill pages -> %s", count, cfg.SkillsOut)))
	fmt.Println()
}
