package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tmplfill [scan-directory] [template-suffix]",
	Short: "tmplfill - expand {resource#query} tokens in template files",
	Long: `tmplfill scans a directory for template files and replaces every
{resource-file#query} token with the value the query selects from the
resource file. XPath queries are evaluated against XML resources and
JSONPath queries against JSON resources. Each template is written next to
itself with the template suffix removed.`,
	Args:              cobra.MaximumNArgs(2),
	TraverseChildren:  true, // Prioritize subcommands
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
	// Format: tmplfill [dir [suffix]] => behaves like the run subcommand
	RunE: runExpand,
}

// Execute runs the command line. Errors are returned to the caller, which
// owns reporting them and choosing the exit status.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file (default: "+defaultConfigHint+" in the working directory, if present)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Abort the run after this duration (0 disables the timeout)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	addRunFlags(rootCmd.Flags())

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(watchCmd)
}

func setupLogger(cmd *cobra.Command, _ []string) error {
	var (
		l   *zap.Logger
		err error
	)
	if verbose {
		l, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.Encoding = "console"
		l, err = cfg.Build()
	}
	if err != nil {
		return err
	}
	logger = l
	return nil
}
