package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/mdwit/sitecfg/internal/config"
	"github.com/mdwit/sitecfg/internal/content"
	"github.com/mdwit/sitecfg/internal/log"
	"github.com/mdwit/sitecfg/internal/site"
	"github.com/mdwit/sitecfg/internal/validate"
	"github.com/mdwit/sitecfg/internal/watch"
)

func newCheckCmd() *cobra.Command {
	var (
		docsDir   string
		watchMode bool
	)

	cmd := &cobra.Command{
		Use:   "check [source]",
		Short: "Validate the site configuration",
		Long: `check parses the site configuration (built-in when no source is given),
validates it against the schema and its invariants and, with --docs, verifies
that every sidebar entry has a markdown page. With --watch it re-runs on changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("docs") {
				cfg.DocsDir = docsDir
			}

			ctx := cmd.Context()
			err = runCheck(ctx, cfg)
			if !watchMode {
				return err
			}
			if err != nil {
				logger := log.Base()
				logger.Error().Err(err).Msg("check failed")
			}
			return watchAndCheck(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&docsDir, "docs", "d", "", "docs directory to resolve sidebar pages against")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "re-run the check when the source or docs change")
	return cmd
}

func runCheck(ctx context.Context, cfg *config.Config) error {
	logger := log.WithComponent("check")

	s, err := loadSite(ctx, cfg)
	if err != nil {
		return reportValidation(err)
	}

	if cfg.DocsDir != "" {
		pages, err := content.Resolve(cfg.DocsDir, *s)
		if err != nil {
			return reportValidation(err)
		}
		logger.Info().Str("docs", cfg.DocsDir).Int("pages", len(pages)).Msg("all sidebar pages found")
	}

	logger.Info().Str("title", s.Title).Str("base", s.Base).Msg("site config is valid")
	return nil
}

// reportValidation логирует каждую ошибку валидации отдельно
func reportValidation(err error) error {
	var verr validate.ValidationError
	if !errors.As(err, &verr) {
		return err
	}

	logger := log.WithComponent("check")
	for _, e := range verr.Errors() {
		logger.Error().Str("field", e.Field).Interface("value", e.Value).Msg(e.Message)
	}
	return fmt.Errorf("%d problem(s) found", len(verr.Errors()))
}

func watchAndCheck(ctx context.Context, cfg *config.Config) error {
	var paths []string
	if cfg.Source != "" && !strings.Contains(cfg.Source, "://") {
		paths = append(paths, cfg.Source)
	}
	if cfg.DocsDir != "" {
		paths = append(paths, cfg.DocsDir)
	}
	if len(paths) == 0 {
		return fmt.Errorf("nothing to watch: pass a local source file or --docs")
	}

	logger := log.WithComponent("watch")
	logger.Info().Strs("paths", paths).Msg("watching for changes, press Ctrl+C to stop")

	w := &watch.Watcher{
		Paths: paths,
		OnChange: func(ev fsnotify.Event) {
			logger.Info().Str("path", ev.Name).Msg("re-checking")
			if err := runCheck(ctx, cfg); err != nil {
				logger.Error().Err(err).Msg("check failed")
			}
		},
	}
	return w.Run(ctx)
}

// resolvePages находит страницы сайдбара, если задан каталог документации
func resolvePages(cfg *config.Config, s *site.Config) ([]content.Page, error) {
	if cfg.DocsDir == "" {
		return nil, nil
	}
	pages, err := content.Resolve(cfg.DocsDir, *s)
	if err != nil {
		return nil, reportValidation(err)
	}
	return pages, nil
}
