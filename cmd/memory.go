package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/orchestkit/orchestkit/internal/mem0"
)

// The memory subcommands are wrappers meant to be called from hooks and
// scripts, so their contract is JSON on stdout for success and JSON on
// stderr for failure. No ui styling here.

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Store and export memories via the mem0 API",
	Long: `Store and export memories via the mem0 hosted API.

Output is machine-readable: success JSON on stdout, error JSON on
stderr with exit code 1. Credentials come from flags or the
MEM0_API_KEY, MEM0_ORG_ID, and MEM0_PROJECT_ID environment variables.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var (
	memoryAPIKey    string
	memoryOrgID     string
	memoryProjectID string
)

var memoryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a memory",
	Long: `Add a memory to the mem0 store.

With inference on (the default) the platform extracts salient facts from
the text; --no-infer stores the text verbatim. Prints
{"success": true, "memory_id": ..., "result": ...} on stdout.

Examples:
  orchestkit memory add --text "prefer tabs" --user-id project-decisions
  orchestkit memory add --text "raw note" --user-id scratch --no-infer`,
	Run: runMemoryAdd,
}

var (
	addText        string
	addUserID      string
	addAgentID     string
	addMetadata    string
	addEnableGraph bool
	addNoInfer     bool
)

var memoryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Create a structured memory export",
	Long: `Create a structured export of memories matching the given filters.

The export runs as an async job on the platform; the response carries
the job ID. Filters are ANDed together and must scope the export to at
least one of user_id, agent_id, run_id, app_id, or memory_export_id.

Examples:
  orchestkit memory export --user-id project-decisions
  orchestkit memory export --filters '{"agent_id": "planner"}' \
    --schema '{"format": "json"}'`,
	Run: runMemoryExport,
}

var (
	exportUserID  string
	exportFilters string
	exportSchema  string
)

func init() {
	memoryCmd.PersistentFlags().StringVar(&memoryAPIKey, "api-key", "", "mem0 API key (env: MEM0_API_KEY)")
	memoryCmd.PersistentFlags().StringVar(&memoryOrgID, "org-id", "", "mem0 organization ID (env: MEM0_ORG_ID)")
	memoryCmd.PersistentFlags().StringVar(&memoryProjectID, "project-id", "", "mem0 project ID (env: MEM0_PROJECT_ID)")

	memoryAddCmd.Flags().StringVar(&addText, "text", "", "Memory text (required)")
	memoryAddCmd.Flags().StringVar(&addUserID, "user-id", "", "User ID to file the memory under (required)")
	memoryAddCmd.Flags().StringVar(&addAgentID, "agent-id", "", "Agent ID to attribute the memory to")
	memoryAddCmd.Flags().StringVar(&addMetadata, "metadata", "", "Metadata as a JSON object")
	memoryAddCmd.Flags().BoolVar(&addEnableGraph, "enable-graph", false, "Enable graph memory")
	memoryAddCmd.Flags().BoolVar(&addNoInfer, "no-infer", false, "Store the text verbatim without inference")

	memoryExportCmd.Flags().StringVar(&exportUserID, "user-id", "", "User ID to scope the export to")
	memoryExportCmd.Flags().StringVar(&exportFilters, "filters", "", "Additional filters as a JSON object")
	memoryExportCmd.Flags().StringVar(&exportSchema, "schema", `{"format": "json"}`, "Export schema as a JSON object")

	memoryCmd.AddCommand(memoryAddCmd)
	memoryCmd.AddCommand(memoryExportCmd)
	rootCmd.AddCommand(memoryCmd)
}

func runMemoryAdd(cmd *cobra.Command, args []string) {
	if addText == "" {
		memoryFail("--text is required", "invalid_input")
	}
	if addUserID == "" {
		memoryFail("--user-id is required", "invalid_input")
	}

	var metadata map[string]interface{}
	if addMetadata != "" {
		if err := json.Unmarshal([]byte(addMetadata), &metadata); err != nil {
			memoryFail("invalid --metadata JSON: "+err.Error(), "invalid_input")
		}
	}

	client, err := mem0.NewClient(mem0.WithCredentials(memoryAPIKey, memoryOrgID, memoryProjectID))
	if err != nil {
		memoryFail(err.Error(), memoryErrKind(err))
	}

	ctx := context.Background()
	result, err := client.Add(ctx, mem0.AddRequest{
		Text:        addText,
		UserID:      addUserID,
		AgentID:     addAgentID,
		Metadata:    metadata,
		EnableGraph: addEnableGraph,
		Infer:       !addNoInfer,
	})
	if err != nil {
		memoryFail(err.Error(), memoryErrKind(err))
	}

	memoryID := mem0.ExtractMemoryID(result)

	// With inference on, the sync response sometimes omits the new ID
	// while the platform finishes processing. Give it a moment and look
	// the memory up; a failed lookup is not fatal.
	if memoryID == "" && addUserID != "" && !addNoInfer {
		time.Sleep(1 * time.Second)
		if recent, lookupErr := client.GetAll(ctx, map[string]interface{}{"user_id": addUserID}); lookupErr == nil {
			memoryID = mem0.ExtractMemoryID(recent)
		}
	}

	memorySucceed(map[string]interface{}{
		"success":   true,
		"memory_id": nullableString(memoryID),
		"result":    result,
	})
}

func runMemoryExport(cmd *cobra.Command, args []string) {
	var extra map[string]interface{}
	if exportFilters != "" {
		if err := json.Unmarshal([]byte(exportFilters), &extra); err != nil {
			memoryFail("invalid --filters JSON: "+err.Error(), "invalid_input")
		}
	}

	filters, err := mem0.BuildExportFilters(exportUserID, extra)
	if err != nil {
		memoryFail(err.Error(), "invalid_input")
	}

	schema := parseExportSchema(exportSchema)

	client, err := mem0.NewClient(mem0.WithCredentials(memoryAPIKey, memoryOrgID, memoryProjectID))
	if err != nil {
		memoryFail(err.Error(), memoryErrKind(err))
	}

	result, err := client.CreateExport(context.Background(), schema, filters)
	if err != nil {
		memoryFail(err.Error(), memoryErrKind(err))
	}

	memorySucceed(map[string]interface{}{
		"success":   true,
		"export_id": nullableString(mem0.ExtractExportID(result)),
		"result":    result,
	})
}

// parseExportSchema decodes the schema flag. A bare string that is not a
// JSON object is treated as a format name.
func parseExportSchema(raw string) map[string]interface{} {
	var schema map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &schema); err != nil {
		return map[string]interface{}{"format": raw}
	}
	return schema
}

// memoryErrKind classifies an error for the JSON error contract. Missing
// credentials are a config problem; everything past client construction is
// an API failure.
func memoryErrKind(err error) string {
	if errors.Is(err, mem0.ErrMissingAPIKey) {
		return "config"
	}
	return "api"
}

func memorySucceed(payload map[string]interface{}) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		memoryFail("failed to encode response: "+err.Error(), "api")
	}
	fmt.Println(string(data))
}

func memoryFail(msg, kind string) {
	data, _ := json.MarshalIndent(map[string]string{"error": msg, "type": kind}, "", "  ")
	fmt.Fprintln(os.Stderr, string(data))
	os.Exit(1)
}

// nullableString maps an empty string to JSON null.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
