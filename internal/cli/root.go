// Package cli provides the command-line interface for colorsort.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/colorsort/internal/config"
	"github.com/jmylchreest/colorsort/internal/version"
)

var (
	// Global flags
	globalVerbose   bool
	globalQuiet     bool
	globalLogFormat = logFormatText

	// settings is bound to the command flags. Execute seeds it from the
	// environment before flags are parsed, so flags win over env values.
	settings = config.Defaults()

	// logger is built from the global flags before any command runs.
	logger hclog.Logger = hclog.NewNullLogger()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "colorsort",
		Short: "Sort images by their dominant colours",
		Long: `colorsort analyses a collection of images, finds each image's dominant
colours and orders the collection by hue, saturation or value.

It can save the sorted sequence, per-image dominant colour panels, a spectrum
of the whole collection and a collage. Everything runs offline.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	settings = loaded

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, "quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().Var(&globalLogFormat, "log-format", "log format (text, json)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(archiveCmd)
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	logger = newLogger(cmd.ErrOrStderr(), globalVerbose, globalQuiet, globalLogFormat)
	return nil
}

// logFormat is the --log-format flag value.
type logFormat string

const (
	logFormatText logFormat = "text"
	logFormatJSON logFormat = "json"
)

func (f *logFormat) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

func (f *logFormat) Set(s string) error {
	switch v := logFormat(strings.ToLower(s)); v {
	case logFormatText, logFormatJSON:
		*f = v
		return nil
	default:
		return fmt.Errorf("invalid log format %q (valid: text, json)", s)
	}
}

func (f *logFormat) Type() string { return "format" }

// newLogger builds the root logger. Quiet takes precedence over verbose.
func newLogger(w io.Writer, verbose, quiet bool, format logFormat) hclog.Logger {
	level := hclog.Info
	switch {
	case quiet:
		level = hclog.Error
	case verbose:
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "colorsort",
		Output:     w,
		Level:      level,
		JSONFormat: format == logFormatJSON,
	})
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}
