// Package cmd holds the consolectl commands. Every console command prints the
// Result envelope as JSON on stdout and exits non-zero when it is a failure.
package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/console-client/internal/adapters/clients"
	"github.com/jsamuelsen/console-client/internal/adapters/clients/acl"
	"github.com/jsamuelsen/console-client/internal/adapters/http/middleware"
	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/platform/config"
	"github.com/jsamuelsen/console-client/internal/platform/logging"
)

var (
	profile   string
	configDir string
	token     string
	baseURL   string
	logLevel  string
)

// console is built once per invocation by the root command.
var console *environment

var rootCmd = &cobra.Command{
	Use:   "consolectl",
	Short: "Call the admin console API from the command line",
	Long: `consolectl sends one console request per command and prints the
normalized {code, message, data} result.

Configuration is read from <config-dir>/base.yaml, <config-dir>/<profile>.yaml
and APP_ environment variables, e.g. APP_SERVICES__CONSOLE__BASE_URL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		env, err := newEnvironment()
		if err != nil {
			return err
		}

		console = env

		// One correlation ID ties together every call of this invocation.
		id := uuid.NewString()
		ctx := middleware.ContextWithCorrelationID(cmd.Context(), id)
		cmd.SetContext(logging.WithCorrelationID(logging.WithContext(ctx, env.logger), id))

		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaultProfile := os.Getenv("APP_ENVIRONMENT")
	if defaultProfile == "" {
		defaultProfile = "local"
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&profile, "profile", defaultProfile, "configuration profile")
	flags.StringVar(&configDir, "config-dir", config.DefaultConfigDir, "directory holding base.yaml and profile files")
	flags.StringVarP(&token, "token", "t", "", "bearer token (overrides auth.token)")
	flags.StringVar(&baseURL, "base-url", "", "console base URL (overrides services.console.base_url)")
	flags.StringVar(&logLevel, "log-level", "", "log level (overrides log.level)")
}

// environment wires the façades from configuration.
type environment struct {
	cfg       *config.Config
	logger    *slog.Logger
	transport *clients.Client

	auth        *acl.AuthClient
	users       *acl.UserClient
	roles       *acl.RoleClient
	departments *acl.DepartmentClient
}

func newEnvironment() (*environment, error) {
	cfg, err := config.LoadDir(configDir, profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if token != "" {
		cfg.Auth.Token = token
	}

	if baseURL != "" {
		cfg.Services.Console.BaseURL = baseURL
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "consolectl",
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			Level:      cfg.Log.File.Level,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	transport, err := newTransport(cfg, cfg.Services.Console.BaseURL, cfg.Services.Console.Name, logger)
	if err != nil {
		return nil, err
	}

	normalizer, err := acl.NewNormalizer(acl.NormalizerConfig{Transport: transport, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("creating normalizer: %w", err)
	}

	base := acl.NewBaseAdapter(normalizer, domain.PaginationParams{
		Page:     cfg.Pagination.Page,
		PageSize: cfg.Pagination.PageSize,
	})

	authOpts := []acl.AuthClientOption{acl.WithAuthLogger(logger)}

	if cfg.Services.Identity.Enabled() {
		identity, err := newTransport(cfg, cfg.Services.Identity.BaseURL, cfg.Services.Identity.Name, logger)
		if err != nil {
			return nil, err
		}

		authOpts = append(authOpts, acl.WithIdentityTransport(identity))
	}

	return &environment{
		cfg:         cfg,
		logger:      logger,
		transport:   transport,
		auth:        acl.NewAuthClient(base, authOpts...),
		users:       acl.NewUserClient(base),
		roles:       acl.NewRoleClient(base),
		departments: acl.NewDepartmentClient(base),
	}, nil
}

func newTransport(cfg *config.Config, url, name string, logger *slog.Logger) (*clients.Client, error) {
	bearer := cfg.Auth.Token

	client, err := clients.New(&clients.Config{
		BaseURL:       url,
		ServiceName:   name,
		Timeout:       cfg.Client.Timeout,
		Retry:         cfg.Client.Retry,
		Circuit:       cfg.Client.CircuitBreaker,
		Transport:     cfg.Client.Transport,
		StatusAsError: cfg.Client.StatusAsError,
		AuthFunc: func(req *http.Request) {
			if bearer != "" {
				req.Header.Set("Authorization", "Bearer "+bearer)
			}
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", name, err)
	}

	return client, nil
}
