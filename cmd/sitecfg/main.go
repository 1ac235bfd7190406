package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mdwit/sitecfg/internal/config"
	"github.com/mdwit/sitecfg/internal/log"
	"github.com/mdwit/sitecfg/internal/parser"
	"github.com/mdwit/sitecfg/internal/site"
	"github.com/mdwit/sitecfg/internal/validate"
)

var (
	version = "dev"

	cfgFile        string
	logLevel       string
	skipValidation bool

	// builtinSite отдаёт конфигурацию сайта, когда источник не задан
	builtinSite = site.Default
)

func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger := log.Base()
		logger.Error().Err(err).Msg("sitecfg failed")
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sitecfg",
		Short: "Check and export the documentation site configuration",
		Long: `sitecfg validates the configuration of the static documentation site
(title, base path, locales, navigation and sidebar) and writes it in the
format the site generator loads (.vuepress/config.js, config.yml or JSON).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "tool settings file (default ./sitecfg.{json,yaml})")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&skipValidation, "skip-validation", false, "skip schema and invariant checks")

	rootCmd.AddCommand(newCheckCmd(), newExportCmd(), newLLMsCmd())
	return rootCmd
}

// loadConfig читает настройки инструмента; флаги переопределяют файл и окружение
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if len(args) > 0 {
		cfg.Source = args[0]
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if skipValidation {
		cfg.SkipValidation = true
	}

	log.Configure(log.Config{Level: cfg.LogLevel, Pretty: true})
	return cfg, nil
}

// loadSite парсит конфигурацию сайта из cfg.Source или возвращает встроенную
func loadSite(ctx context.Context, cfg *config.Config) (*site.Config, error) {
	logger := log.WithComponent("parser")

	if cfg.Source == "" {
		s := builtinSite()
		logger.Debug().Msg("no source given, using built-in site config")
		// встроенная конфигурация не проходит через парсер
		if !cfg.SkipValidation {
			if err := validate.Site(s); err != nil {
				return nil, err
			}
		}
		return &s, nil
	}

	logger.Debug().Str("source", cfg.Source).Msg("parsing site config")
	s, err := parser.Parse(ctx, cfg.Source, &parser.ParseOptions{
		SkipValidation: cfg.SkipValidation,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse site config: %w", err)
	}

	logger.Info().
		Str("source", cfg.Source).
		Int("nav", len(s.ThemeConfig.Nav)).
		Int("sidebar", len(s.ThemeConfig.Sidebar)).
		Msg("parsed site config")
	return s, nil
}
