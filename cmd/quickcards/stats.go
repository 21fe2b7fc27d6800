package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/quickcards/internal/cli"
	"github.com/at-ishikawa/quickcards/internal/config"
	"github.com/at-ishikawa/quickcards/internal/flashcard"
	"github.com/at-ishikawa/quickcards/internal/report"
	"github.com/at-ishikawa/quickcards/internal/statistics"
	"github.com/at-ishikawa/quickcards/internal/storage"
)

func newStatsCommand() *cobra.Command {
	var deckID string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(_ context.Context, _ *config.Config, _ *storage.Repository, snapshot storage.Snapshot) error {
				overview, err := overviewFor(snapshot, deckID)
				if err != nil {
					return err
				}
				cli.NewPrinter(cmd.OutOrStdout()).PrintOverview(overview)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&deckID, "deck", "", "Show the progress of a single deck")
	cmd.AddCommand(newStatsReportCommand())
	return cmd
}

func newStatsReportCommand() *cobra.Command {
	var output string
	var pdf bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a markdown progress report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(_ context.Context, cfg *config.Config, _ *storage.Repository, snapshot storage.Snapshot) error {
				tmpl, err := report.ParseTemplate(cfg.Report.Template)
				if err != nil {
					return err
				}

				current := now()
				if output == "" {
					output = filepath.Join(cfg.Report.OutputDirectory, fmt.Sprintf("progress-report-%s.md", current.Format("2006-01-02")))
				}
				overview := statistics.CalculateOverview(snapshot.Decks, snapshot.Sessions, snapshot.Settings, current)
				content, err := report.WriteMarkdown(output, tmpl, report.NewData(overview, snapshot.Sessions, current))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", output)

				if !pdf {
					return nil
				}
				pdfPath := report.PDFPath(output)
				if err := report.WritePDF(content, pdfPath); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "PDF written to %s\n", pdfPath)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Markdown file to write, defaults to the configured report directory")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "Also convert the report to PDF")
	return cmd
}

// overviewFor limits the overview to one deck and its own sessions when deckID is set.
func overviewFor(snapshot storage.Snapshot, deckID string) (statistics.Overview, error) {
	if deckID == "" {
		return statistics.CalculateOverview(snapshot.Decks, snapshot.Sessions, snapshot.Settings, now()), nil
	}

	deck, err := findDeck(snapshot.Decks, deckID)
	if err != nil {
		return statistics.Overview{}, err
	}
	var sessions []flashcard.StudySession
	for _, session := range snapshot.Sessions {
		if session.DeckID == deckID {
			sessions = append(sessions, session)
		}
	}
	return statistics.CalculateOverview(flashcard.Decks{deck}, sessions, snapshot.Settings, now()), nil
}
