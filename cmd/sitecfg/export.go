package main

import (
	"github.com/spf13/cobra"

	"github.com/mdwit/sitecfg/internal/generator"
)

func newExportCmd() *cobra.Command {
	var (
		format string
		output string
		stdout bool
		llms   bool
	)

	cmd := &cobra.Command{
		Use:   "export [source]",
		Short: "Write the site configuration for the site generator",
		Long: `export writes the site configuration as config.js, config.yml or config.json
into the output directory (default docs/.vuepress), or to stdout with --stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = format
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}
			if cmd.Flags().Changed("llms") {
				cfg.LLMs = llms
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			s, err := loadSite(cmd.Context(), cfg)
			if err != nil {
				return reportValidation(err)
			}

			if stdout {
				f, err := cfg.SiteFormat()
				if err != nil {
					return err
				}
				data, err := generator.Render(*s, f)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			pages, err := resolvePages(cfg, s)
			if err != nil {
				return err
			}
			return generator.New(cfg, s, pages).Generate()
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "js", "output format (js, json, yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "docs/.vuepress", "output directory")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print to stdout instead of writing a file")
	cmd.Flags().BoolVar(&llms, "llms", false, "also write llms.txt")
	return cmd
}
