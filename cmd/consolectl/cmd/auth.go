package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/console-client/internal/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and print the issued tokens",
	Long: `Sign in with a user name and password. The token in the result can be
passed to later commands with --token or APP_AUTH__TOKEN.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		return printResult(cmd, console.auth.Login(cmd.Context(), domain.LoginParams{
			Username: username,
			Password: password,
		}))
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringP("username", "u", "", "user name")
	loginCmd.Flags().StringP("password", "p", "", "password")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
}
