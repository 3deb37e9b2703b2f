package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/gnolang/tmplfill/expand"
	"github.com/gnolang/tmplfill/formatter"
)

const defaultConfigHint = expand.DefaultConfigFile

// variables for flags
var (
	jobs          int
	keepGoing     bool
	dryRun        bool
	showProgress  bool
	excludes      []string
	resolverNames []string
)

var runCmd = &cobra.Command{
	Use:   "run [scan-directory] [template-suffix]",
	Short: "Expand every template in a directory",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runExpand,
}

func init() {
	addRunFlags(runCmd.Flags())
}

func addRunFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&jobs, "jobs", "j", 1, "Number of templates to expand concurrently")
	fs.BoolVar(&keepGoing, "keep-going", false, "Expand the remaining templates when one fails, then report every failure")
	fs.BoolVar(&dryRun, "dry-run", false, "Print a diff of each output instead of writing it")
	fs.BoolVar(&showProgress, "progress", false, "Show a progress bar")
	fs.StringSliceVar(&excludes, "exclude", nil, "Glob patterns of template names to skip")
	fs.StringSliceVar(&resolverNames, "resolvers", nil, "Ordered resolver list (default: xml,json)")
}

func runExpand(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	engine, err := expand.New(config)
	if err != nil {
		return err
	}

	results, err := expand.ProcessDir(ctx, logger, engine, config, expand.Options{
		DryRun:   dryRun,
		Progress: showProgress,
	})
	if perr := printResults(cmd.OutOrStdout(), results, dryRun); perr != nil {
		logger.Error("Error printing results", zap.Error(perr))
	}
	return err
}

func printResults(w io.Writer, results []expand.Result, dryRun bool) error {
	for _, res := range results {
		if dryRun {
			diff, err := formatter.UnifiedDiff(res.Output, res.Previous, res.Content)
			if err != nil {
				return err
			}
			if _, err := io.WriteString(w, diff); err != nil {
				return err
			}
			continue
		}
		status := "unchanged"
		if res.Changed() {
			status = "written"
		}
		if _, err := fmt.Fprintf(w, "%s: %s (%d tokens)\n", res.Output, status, len(res.Substitutions)); err != nil {
			return err
		}
	}
	return nil
}

// loadConfig merges, in increasing priority, the defaults, the configuration
// file, the positional arguments and explicitly set flags.
func loadConfig(cmd *cobra.Command, args []string) (expand.Config, error) {
	dir := ""
	if len(args) > 0 {
		dir = args[0]
	}

	path := cfgFile
	if path == "" {
		candidate := filepath.Join(dir, expand.DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	config := expand.DefaultConfig()
	if path != "" {
		var err error
		config, err = expand.LoadConfig(path)
		if err != nil {
			return config, fmt.Errorf("loading configuration: %w", err)
		}
		if logger != nil {
			logger.Debug("Loaded configuration", zap.String("path", path))
		}
	}

	if len(args) > 0 {
		config.Dir = args[0]
	}
	if len(args) > 1 {
		config.Suffix = args[1]
	}

	flags := cmd.Flags()
	if flags.Changed("jobs") {
		config.Jobs = jobs
	}
	if flags.Changed("keep-going") {
		config.KeepGoing = keepGoing
	}
	if flags.Changed("exclude") {
		config.Exclude = excludes
	}
	if flags.Changed("resolvers") {
		config.Resolvers = resolverNames
	}

	if err := config.Normalize(); err != nil {
		return config, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}
