package cmd

import (
	"github.com/spf13/cobra"
)

var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "Manage roles",
}

var roleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roles one page at a time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printResult(cmd, console.roles.List(cmd.Context(), listParams(cmd)))
	},
}

var roleAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Create a role",
	Example: `  consolectl role add -d '{"roleName":"运营","roleCode":"R_OPS","status":1}'`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		body, err := readBody(cmd)
		if err != nil {
			return err
		}

		return printResult(cmd, console.roles.Add(cmd.Context(), body))
	},
}

var roleUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a role",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		body, err := readBody(cmd)
		if err != nil {
			return err
		}

		return printResult(cmd, console.roles.Update(cmd.Context(), body))
	},
}

var roleDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete roles by id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printResult(cmd, console.roles.Delete(cmd.Context(), idParams(cmd)))
	},
}

func init() {
	rootCmd.AddCommand(roleCmd)
	roleCmd.AddCommand(roleListCmd, roleAddCmd, roleUpdateCmd, roleDeleteCmd)

	addListFlags(roleListCmd)
	addBodyFlags(roleAddCmd)
	addBodyFlags(roleUpdateCmd)
	addIDFlag(roleDeleteCmd)
}
