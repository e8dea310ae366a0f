package cmd

import (
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage console users",
}

var userInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printResult(cmd, console.users.Info(cmd.Context()))
	},
}

var userAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Create a user",
	Example: `  consolectl user add -d '{"userName":"carol","roles":["R_AUDIT"]}'`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		body, err := readBody(cmd)
		if err != nil {
			return err
		}

		return printResult(cmd, console.users.Add(cmd.Context(), body))
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users one page at a time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printResult(cmd, console.users.List(cmd.Context(), listParams(cmd)))
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userInfoCmd, userAddCmd, userListCmd)

	addBodyFlags(userAddCmd)
	addListFlags(userListCmd)
}
