package main

import (
	"github.com/spf13/cobra"

	"github.com/mdwit/sitecfg/internal/generator"
)

func newLLMsCmd() *cobra.Command {
	var (
		docsDir     string
		docsBaseURL string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "llms [source]",
		Short: "Generate llms.txt from the site configuration",
		Long: `llms writes llms.txt listing the documentation pages in sidebar order.
With --docs, page titles are read from the markdown files.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("docs") {
				cfg.DocsDir = docsDir
			}
			if cmd.Flags().Changed("docs-base-url") {
				cfg.DocsBaseURL = docsBaseURL
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			s, err := loadSite(cmd.Context(), cfg)
			if err != nil {
				return reportValidation(err)
			}

			pages, err := resolvePages(cfg, s)
			if err != nil {
				return err
			}

			_, err = generator.New(cfg, s, pages).WriteLLMs()
			return err
		},
	}

	cmd.Flags().StringVarP(&docsDir, "docs", "d", "", "docs directory to read page titles from")
	cmd.Flags().StringVarP(&docsBaseURL, "docs-base-url", "b", "", "site origin for absolute links (e.g. https://example.github.io)")
	cmd.Flags().StringVarP(&output, "output", "o", "docs/.vuepress", "output directory")
	return cmd
}
