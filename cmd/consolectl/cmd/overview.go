package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/console-client/internal/app"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Fetch the signed-in user, departments and roles at once",
	Long: `Fetch the signed-in user, the department tree and the roles concurrently.
Each part is printed with its own result; the command fails if any part failed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc := app.NewOverviewService(app.OverviewServiceConfig{
			Users:       console.users,
			Departments: console.departments,
			Roles:       console.roles,
			Logger:      console.logger,
		})

		overview := svc.Fetch(cmd.Context())

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)

		if err := enc.Encode(overview); err != nil {
			return fmt.Errorf("writing overview: %w", err)
		}

		if err := overview.Err(); err != nil {
			return fmt.Errorf("overview: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}
