package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gnolang/tmplfill/expand"
	"github.com/gnolang/tmplfill/scanner"
)

var checkCmd = &cobra.Command{
	Use:   "check [scan-directory] [template-suffix]",
	Short: "List the tokens of each template and the resolver that claims them",
	Long: `Lists every token found in the templates without reading any resource
file and without writing outputs. Tokens appear under the resolver that
would expand them, in resolver order.

The listing is static: tokens that only appear after an earlier resolver
has inserted its value (for example the outer token of
{a.json#{x.xml#/p}}) are not shown.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		engine, err := expand.New(config)
		if err != nil {
			return err
		}

		files, err := scanner.New(config.Dir, config.Suffix, config.Exclude...).Scan()
		if err != nil {
			return &expand.DirectoryReadError{Dir: config.Dir, Err: err}
		}

		out := cmd.OutOrStdout()
		for _, file := range files {
			content, err := os.ReadFile(file.Path)
			if err != nil {
				return &expand.TemplateReadError{Path: file.Path, Err: err}
			}
			tokens := engine.Tokens(string(content))
			fmt.Fprintf(out, "%s -> %s (%d tokens)\n", filepath.Base(file.Path), filepath.Base(file.Output), len(tokens))
			for _, tok := range tokens {
				fmt.Fprintf(out, "  %-5s %6d  %s\n", tok.Resolver, tok.Token.Start, tok.Token.Text)
			}
		}
		return nil
	},
}
