package cmd

import (
	"github.com/spf13/cobra"
)

var departmentCmd = &cobra.Command{
	Use:     "department",
	Aliases: []string{"dept"},
	Short:   "Manage the department tree",
}

var departmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List departments as a tree, or flat when filtered by name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printResult(cmd, console.departments.List(cmd.Context(), listParams(cmd)))
	},
}

var departmentAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Create a department",
	Example: `  consolectl department add -d '{"name":"测试部","parentId":1,"status":1}'`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		body, err := readBody(cmd)
		if err != nil {
			return err
		}

		return printResult(cmd, console.departments.Add(cmd.Context(), body))
	},
}

var departmentUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a department",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		body, err := readBody(cmd)
		if err != nil {
			return err
		}

		return printResult(cmd, console.departments.Update(cmd.Context(), body))
	},
}

var departmentTopCmd = &cobra.Command{
	Use:   "top",
	Short: "List the departments that may be chosen as a parent",
	Long: `List the departments that may be chosen as a parent. With --exclude the
department and its descendants are left out, as when editing it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		body, err := readBody(cmd)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("exclude") {
			id, _ := cmd.Flags().GetInt64("exclude")
			body = map[string]any{"id": id}
		}

		return printResult(cmd, console.departments.Top(cmd.Context(), body))
	},
}

var departmentDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete departments by id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printResult(cmd, console.departments.Delete(cmd.Context(), idParams(cmd)))
	},
}

func init() {
	rootCmd.AddCommand(departmentCmd)
	departmentCmd.AddCommand(departmentListCmd, departmentAddCmd, departmentUpdateCmd, departmentTopCmd, departmentDeleteCmd)

	addListFlags(departmentListCmd)
	addBodyFlags(departmentAddCmd)
	addBodyFlags(departmentUpdateCmd)
	addBodyFlags(departmentTopCmd)
	addIDFlag(departmentDeleteCmd)

	departmentTopCmd.Flags().Int64("exclude", 0, "department id to leave out with its descendants")
	departmentTopCmd.MarkFlagsMutuallyExclusive("exclude", "data")
	departmentTopCmd.MarkFlagsMutuallyExclusive("exclude", "file")
}
