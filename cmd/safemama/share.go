package main

import (
	"fmt"

	"github.com/spf13/cobra"

	site "github.com/safemama/site"
	"github.com/safemama/site/content"
	"github.com/safemama/site/share"
)

var sharePlatform string

var shareCmd = &cobra.Command{
	Use:   "share <path>",
	Short: "Print the share links of a page",
	Long: `Prints where each share button of a page leads, e.g.

  safemama share /blog/foods-to-avoid-during-pregnancy/ --platform twitter`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lib, err := content.Load(content.Source(cfg.ContentDir))
		if err != nil {
			return err
		}
		art, ok := lib.Find(args[0])
		if !ok {
			return fmt.Errorf("no published page at %s", args[0])
		}

		platforms := share.Platforms
		if sharePlatform != "" {
			p, err := share.ParsePlatform(sharePlatform)
			if err != nil {
				return err
			}
			platforms = []share.Platform{p}
		}

		pageURL := site.BuildURL(cfg.URL, art.Path())
		out := cmd.OutOrStdout()
		for _, p := range platforms {
			if !p.Social() {
				fmt.Fprintf(out, "%-9s %s\n", p, pageURL)
				continue
			}
			target, err := share.Target(share.Request{Platform: p, PageURL: pageURL, PageTitle: art.Title})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-9s %s\n", p, target)
		}
		return nil
	},
}

func init() {
	shareCmd.Flags().StringVarP(&sharePlatform, "platform", "p", "", "only print this platform (facebook, twitter, linkedin, copy)")
}
