package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/safemama/site/content"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate pages: front matter, slugs and table-of-contents anchors",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lib, err := content.Load(content.Source(cfg.ContentDir))
		if err != nil {
			return err
		}
		problems := content.Validate(lib)
		out := cmd.OutOrStdout()
		for _, p := range problems {
			fmt.Fprintln(out, p)
		}
		if len(problems) > 0 {
			return fmt.Errorf("%d content problem(s)", len(problems))
		}
		fmt.Fprintf(out, "%d pages ok\n", len(lib.All()))
		return nil
	},
}
