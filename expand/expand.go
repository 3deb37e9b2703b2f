package expand

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	tt "github.com/gnolang/tmplfill/internal/types"
	"github.com/gnolang/tmplfill/scanner"
)

// ExpandEngine expands the tokens of a template's text.
type ExpandEngine interface {
	Expand(text string) (string, []tt.Substitution, error)
}

// Options control how ProcessDir reports and persists its work.
type Options struct {
	// DryRun computes every output without writing it.
	DryRun bool
	// Progress draws a progress bar on ProgressWriter, or stderr if nil.
	Progress       bool
	ProgressWriter io.Writer
}

// Result describes one expanded template.
type Result struct {
	Template      string
	Output        string
	Substitutions []tt.Substitution
	// Previous holds the output file's content before this run, empty if it
	// did not exist.
	Previous string
	Content  string
}

// Changed reports whether the run altered (or would alter) the output file.
func (r Result) Changed() bool {
	return r.Previous != r.Content
}

// ProcessDir expands every template in config.Dir.
//
// By default the first failure cancels the remaining templates and is
// returned; outputs already written stay on disk. With config.KeepGoing the
// failures are collected and joined, and every other template is still
// written. The returned results are in template name order.
func ProcessDir(
	ctx context.Context,
	logger *zap.Logger,
	engine ExpandEngine,
	config Config,
	opts Options,
) ([]Result, error) {
	files, err := scanner.New(config.Dir, config.Suffix, config.Exclude...).Scan()
	if err != nil {
		return nil, &DirectoryReadError{Dir: config.Dir, Err: err}
	}
	if logger != nil {
		logger.Debug("Found templates", zap.String("dir", config.Dir), zap.Int("count", len(files)))
	}

	bar := newProgressBar(len(files), config.Dir, opts)

	var (
		results = make([]Result, len(files))
		done    = make([]bool, len(files))
		errMu   sync.Mutex
		errs    []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(config.Jobs, 1))

	for i, file := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			defer bar.Add(1)

			res, err := ProcessFile(gctx, engine, file, opts.DryRun)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing template", zap.String("file", file.Path), zap.Error(err))
				}
				if config.KeepGoing && ctx.Err() == nil {
					errMu.Lock()
					errs = append(errs, err)
					errMu.Unlock()
					return nil
				}
				return err
			}

			if logger != nil {
				logger.Debug("Expanded template",
					zap.String("file", file.Path),
					zap.String("output", file.Output),
					zap.Int("tokens", len(res.Substitutions)),
					zap.Bool("changed", res.Changed()),
				)
			}
			results[i] = res
			done[i] = true
			return nil
		})
	}

	err = g.Wait()
	_ = bar.Finish()

	var finished []Result
	for i, res := range results {
		if done[i] {
			finished = append(finished, res)
		}
	}

	if err != nil {
		return finished, err
	}
	if err := ctx.Err(); err != nil {
		return finished, err
	}
	return finished, errors.Join(errs...)
}

// ProcessFile expands a single template and, unless dryRun is set, writes
// the result next to it. Nothing is written when expansion fails.
func ProcessFile(ctx context.Context, engine ExpandEngine, file scanner.FileInfo, dryRun bool) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	content, err := os.ReadFile(file.Path)
	if err != nil {
		return Result{}, &TemplateReadError{Path: file.Path, Err: err}
	}

	expanded, subs, err := engine.Expand(string(content))
	if err != nil {
		return Result{}, &TemplateError{Path: file.Path, Err: err}
	}

	res := Result{
		Template:      file.Path,
		Output:        file.Output,
		Substitutions: subs,
		Content:       expanded,
	}
	if previous, err := os.ReadFile(file.Output); err == nil {
		res.Previous = string(previous)
	}

	if dryRun {
		return res, nil
	}
	if err := os.WriteFile(file.Output, []byte(expanded), 0o644); err != nil {
		return Result{}, &FileWriteError{Path: file.Output, Err: err}
	}
	return res, nil
}

func newProgressBar(total int, description string, opts Options) *progressbar.ProgressBar {
	w := opts.ProgressWriter
	switch {
	case !opts.Progress:
		w = io.Discard
	case w == nil:
		w = os.Stderr
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
