package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/codecovctl/codecov"
	"github.com/s0up4200/codecovctl/config"
	"github.com/s0up4200/codecovctl/filter"
	"github.com/s0up4200/codecovctl/format"
	"github.com/s0up4200/codecovctl/schema"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *codecov.Client
	filters *filter.Manager

	// Global flags
	serviceFlag string
	ownerFlag   string
	jsonOutput  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "codecovctl",
	Short: "Query coverage data from the Codecov API",
	Long: `codecovctl is a CLI for the Codecov API v2. It lists owners, repositories,
branches, commits and pull requests, and prints coverage totals, reports,
trends and comparisons.`,
	PersistentPreRunE: initializeApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if client != nil {
			client.Close()
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&serviceFlag, "service", "s", "", "git hosting service (github, gitlab, bitbucket, ...)")
	rootCmd.PersistentFlags().StringVarP(&ownerFlag, "owner", "o", "", "owner username")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

// initializeApp loads the configuration and creates the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if cmd.Flags().Changed("service") {
		cfg.Codecov.Service = serviceFlag
	}
	if cmd.Flags().Changed("owner") {
		cfg.Codecov.Owner = ownerFlag
	}

	client, err = codecov.NewClient(cfg.Codecov.Token,
		codecov.WithBaseURL(cfg.Codecov.URL),
		codecov.WithTimeout(cfg.Codecov.Timeout),
		codecov.WithUserAgent("codecovctl/"+version),
		codecov.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create Codecov client: %w", err)
	}

	filters = filter.NewManager(filter.WithEvaluator(filter.NewEvaluator(filter.WithLogger(logger))))
	if err := filters.RegisterPresets(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	if cfg.Codecov.Token == "" {
		logger.Debug().Msg("No API token configured, only public data is available")
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// commandContext returns a context cancelled on interrupt.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt)
}

// newPrinter builds a printer for the command's output stream.
func newPrinter(cmd *cobra.Command) *format.Printer {
	out := cmd.OutOrStdout()
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = isTerminal(f)
	}
	return format.New(out, format.Options{
		TTY:       tty,
		Color:     tty && cfg.Output.Color,
		WarnBelow: cfg.Output.WarnBelow,
		GoodAbove: cfg.Output.GoodAbove,
	})
}

// service returns the configured git hosting service.
func service() (schema.Service, error) {
	svc, err := schema.ParseService(cfg.Codecov.Service)
	if err != nil {
		return "", fmt.Errorf("invalid service %q (use --service)", cfg.Codecov.Service)
	}
	return svc, nil
}

// owner returns the owner from args[0] when present, else the configured owner.
func owner(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.Codecov.Owner == "" {
		return "", errors.New("no owner specified (use --owner or set codecov.owner)")
	}
	return cfg.Codecov.Owner, nil
}

// repo returns an API-bound repository for the configured service and owner.
func repo(name string) (*codecov.Repo, error) {
	svc, err := service()
	if err != nil {
		return nil, err
	}
	o, err := owner(nil)
	if err != nil {
		return nil, err
	}
	return client.Repo(svc, o, name), nil
}

// describeError turns API errors into a readable line.
func describeError(err error) string {
	var apiErr *codecov.APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	switch {
	case apiErr.IsUnauthorized():
		return fmt.Sprintf("%s (check codecov.token or %s)", apiErr.Message(), config.TokenEnv)
	case apiErr.IsNotFound():
		return "not found: " + apiErr.Message()
	default:
		return err.Error()
	}
}
