package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/orchestkit/orchestkit/internal/migrate"
	"github.com/orchestkit/orchestkit/internal/ui"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [agents-dir]",
	Short: "Migrate agent frontmatter to the current layout",
	Long: `Rewrite agent definition files from the legacy frontmatter layout.

Changes:
  - model_preference: X  ->  model: X
  - max_tokens removed
  - tools/skills comma lists  ->  block lists
  - hooks blocks preserved verbatim

Files are rewritten in place. Files without frontmatter are skipped.

Examples:
  orchestkit migrate
  orchestkit migrate plugins/ork/agents --dry-run`,
	Args: cobra.MaximumNArgs(1),
	Run:  runMigrate,
}

var migrateDryRun bool

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "Show what would change without writing")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) {
	dir := "agents"
	if len(args) == 1 {
		dir = args[0]
	}

	fmt.Println()
	fmt.Println(ui.SectionHeader("Migrating Agents"))
	fmt.Println()
	fmt.Println(ui.InfoLine("Directory: " + dir))
	fmt.Println()

	results, err := migrate.Dir(dir, migrateDryRun)
	if err != nil {
		exitWithError(err.Error())
	}

	var migrated, skipped int
	for _, res := range results {
		if res.Skipped {
			skipped++
			fmt.Println(ui.Muted.Render(fmt.Sprintf("  - skipped (no frontmatter): %s", filepath.Base(res.File))))
			continue
		}
		migrated++
		fmt.Println(ui.SuccessLine(fmt.Sprintf("%s (model: %s, %d tools, %d skills)",
			res.Name, res.Model, res.ToolCount, res.SkillCount)))
	}

	fmt.Println()
	if migrateDryRun {
		fmt.Println(ui.SuccessLine(fmt.Sprintf("Would migrate %d file(s)", migrated)))
	} else {
		fmt.Println(ui.SuccessLine(fmt.Sprintf("Migrated %d file(s)", migrated)))
	}
	if skipped > 0 {
		fmt.Println(ui.WarningLine(fmt.Sprintf("%d file(s) skipped", skipped)))
	}
}
