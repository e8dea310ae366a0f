package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/console-client/internal/adapters/clients/acl"
	"github.com/jsamuelsen/console-client/internal/ports"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the console answers its liveness probe",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		timeout, _ := cmd.Flags().GetDuration("timeout")

		registry := ports.NewHealthRegistry()
		registry.CheckTimeout = timeout

		services := console.cfg.Services

		if err := registry.Register(acl.NewConsoleHealth(services.Console.Name, services.Console.HealthPath, console.transport)); err != nil {
			return fmt.Errorf("registering console check: %w", err)
		}

		result := registry.CheckAll(cmd.Context())

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")

		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("writing health: %w", err)
		}

		if !result.Healthy() {
			return fmt.Errorf("%s is %s", services.Console.Name, result.Status)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)

	pingCmd.Flags().Duration("timeout", 3*time.Second, "per-check timeout")
}
