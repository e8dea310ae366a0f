package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/console-client/internal/domain"
)

// printResult writes r as indented JSON and turns a failure into the
// command's error.
func printResult[T any](cmd *cobra.Command, r domain.Result[T]) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	if err := r.Err(); err != nil {
		return fmt.Errorf("%s: %w", cmd.CommandPath(), err)
	}

	return nil
}

// addBodyFlags registers --data and --file on a command that sends a body.
func addBodyFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("data", "d", "", "request body as JSON")
	cmd.Flags().StringP("file", "f", "", "read the request body from a file, - for stdin")
	cmd.MarkFlagsMutuallyExclusive("data", "file")
}

// readBody returns the raw body given by --data or --file, or nil when
// neither is set. The façade validates it as JSON before sending.
func readBody(cmd *cobra.Command) (any, error) {
	if cmd.Flags().Changed("data") {
		data, _ := cmd.Flags().GetString("data")
		return data, nil
	}

	path, _ := cmd.Flags().GetString("file")

	switch path {
	case "":
		return nil, nil
	case "-":
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}

		return raw, nil
	default:
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading body file: %w", err)
		}

		return raw, nil
	}
}

// addListFlags registers the pagination and name filter flags.
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 0, "page number (default from pagination.page)")
	cmd.Flags().Int("page-size", 0, "page size (default from pagination.page_size)")
	cmd.Flags().String("name", "", "filter by name")
}

// listParams returns only the list flags the user set, so unset ones fall
// back to the configured pagination defaults.
func listParams(cmd *cobra.Command) map[string]any {
	params := map[string]any{}

	if cmd.Flags().Changed("page") {
		page, _ := cmd.Flags().GetInt("page")
		params["page"] = page
	}

	if cmd.Flags().Changed("page-size") {
		size, _ := cmd.Flags().GetInt("page-size")
		params["pageSize"] = size
	}

	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		params["name"] = name
	}

	if len(params) == 0 {
		return nil
	}

	return params
}

// addIDFlag registers a repeatable --id flag for delete commands.
func addIDFlag(cmd *cobra.Command) {
	cmd.Flags().Int64Slice("id", nil, "id to delete, repeat or comma-separate for several")
	_ = cmd.MarkFlagRequired("id")
}

func idParams(cmd *cobra.Command) map[string]any {
	ids, _ := cmd.Flags().GetInt64Slice("id")
	if len(ids) == 1 {
		return map[string]any{"id": ids[0]}
	}

	return map[string]any{"ids": ids}
}
