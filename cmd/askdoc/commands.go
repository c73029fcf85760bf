package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/liliang-cn/askdoc-console/internal/console"
	"github.com/liliang-cn/askdoc-console/internal/domain"
	"github.com/liliang-cn/askdoc-console/internal/render"
	"github.com/spf13/cobra"
)

func docsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "docs",
		Aliases: []string{"ls"},
		Short:   "List indexed documents",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.console.Inventory.Refresh(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load documents: %w", err)
			}
			a.term.Inventory(view)
			return nil
		},
	}
}

func rmCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <filename>",
		Short: "Delete an indexed document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var confirm console.Confirmer = a.term
			if yes {
				confirm = console.ConfirmFunc(func(_ context.Context, _ string) bool { return true })
			}

			view, err := a.console.Inventory.DeleteDocument(cmd.Context(), args[0], confirm, a.term)
			switch {
			case errors.Is(err, domain.ErrCancelled):
				return nil
			case err != nil:
				return shownError{err}
			}
			a.term.Inventory(view)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking for confirmation")
	return cmd
}

func uploadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a document for indexing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			a.term.Status(console.StatusInfo, render.UploadInProgress)
			view, err := a.console.Upload.Submit(cmd.Context(), &console.Selection{
				Filename: filepath.Base(args[0]),
				Content:  f,
			})
			a.term.Upload(view)
			if err != nil {
				return shownError{err}
			}
			a.term.Inventory(a.console.Inventory.Snapshot())
			return nil
		},
	}
}

func askCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask a question and compare the RAG answer with the baseline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			if strings.TrimSpace(question) != "" {
				a.term.Status(console.StatusInfo, render.QuestionInProgress)
			}

			view, err := a.console.QA.Ask(cmd.Context(), question)
			a.term.Answer(view)
			if err != nil {
				return shownError{err}
			}
			return nil
		},
	}
}

func healthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.backend.Health(cmd.Context())
			if err != nil {
				return err
			}
			if !status.OK() {
				return fmt.Errorf("backend at %s reports status %q", a.cfg.Backend.BaseURL, status.Status)
			}
			a.term.Status(console.StatusSuccess, "Backend at "+a.cfg.Backend.BaseURL+" is healthy")
			return nil
		},
	}
}
