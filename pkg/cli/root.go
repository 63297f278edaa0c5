package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/getmockd/reqparam/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands
	logLevel   string
	logFormat  string
	jsonOutput bool

	// logger is configured in the root PersistentPreRun
	logger = logging.Nop()

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reqparam",
	Short: "reqparam validates and coerces request parameters against route contracts",
	Long: `reqparam checks raw query, path, header and cookie values against the
parameter contract declared for a route, and prints the coerced parameters.

Route contracts are loaded from YAML or JSON files given with --routes or the
REQPARAM_ROUTES environment variable. A glob (** supported) loads several files.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Main()
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := logging.FromEnv()
		if cmd.Flags().Changed("log-level") {
			cfg.Level = logging.ParseLevel(logLevel)
		}
		if cmd.Flags().Changed("log-format") {
			cfg.Format = logging.ParseFormat(logFormat)
		}
		cfg.Output = cmd.ErrOrStderr()
		logger = logging.New(cfg)
		slog.SetDefault(logger)
	},
}

// Main runs the root command and returns the process exit code.
func Main() int {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrValidationFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	os.Exit(Main())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error); overrides "+logging.EnvLevel)
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json); overrides "+logging.EnvFormat)
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}
