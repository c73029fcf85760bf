package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/liliang-cn/askdoc-console/internal/client"
	"github.com/liliang-cn/askdoc-console/internal/config"
	"github.com/liliang-cn/askdoc-console/internal/console"
	"github.com/liliang-cn/askdoc-console/internal/logging"
	"github.com/liliang-cn/askdoc-console/internal/render"
	"github.com/liliang-cn/askdoc-console/internal/terminal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is built once per invocation before any subcommand runs
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	backend *client.Client
	console *console.Console
	term    *terminal.Terminal
}

// shownError is an error the terminal has already displayed
type shownError struct{ error }

func (e shownError) Unwrap() error { return e.error }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}
	var shown shownError
	if !errors.As(err, &shown) {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
	}
	stop()
	os.Exit(1)
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath  string
		logLevel string
		a        = &app{}
	)

	root := &cobra.Command{
		Use:           "askdoc",
		Short:         "Manage and query the AskDoc document knowledge base",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cfgPath, logLevel, cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./config.yaml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level for this invocation")

	root.AddCommand(
		docsCmd(a),
		rmCmd(a),
		uploadCmd(a),
		askCmd(a),
		healthCmd(a),
	)
	return root
}

func (a *app) init(cfgPath, logLevel string, cmd *cobra.Command) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	cfg.Log.Level = logLevel

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	renderer := render.New(cfg.UI.Locale)
	backend := client.New(client.Options{
		BaseURL: cfg.Backend.BaseURL,
		Paths: client.Paths{
			Documents: cfg.Backend.DocumentsPath,
			Upload:    cfg.Backend.UploadPath,
			QA:        cfg.Backend.QAPath,
			Health:    cfg.Backend.HealthPath,
		},
		TopK:   cfg.Backend.TopK,
		Logger: logger,
	})

	a.cfg = cfg
	a.logger = logger
	a.backend = backend
	a.console = console.New(backend, renderer, logger)
	a.term = terminal.New(cmd.InOrStdin(), cmd.OutOrStdout(), renderer)
	return nil
}
