package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/quickcards/internal/cli"
	"github.com/at-ishikawa/quickcards/internal/config"
	"github.com/at-ishikawa/quickcards/internal/storage"
	"github.com/at-ishikawa/quickcards/internal/study"
)

func newStudyCommand() *cobra.Command {
	var deckID string

	cmd := &cobra.Command{
		Use:   "study",
		Short: "Review the cards that are due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, _ *config.Config, store *storage.Repository, snapshot storage.Snapshot) error {
				var session *study.Session
				var err error
				if deckID != "" {
					session, err = study.StartDeck(snapshot.Decks, deckID, now())
				} else {
					session, err = study.Start(snapshot.Decks, now())
				}
				if errors.Is(err, study.ErrNothingDue) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No cards to review! All cards are up to date. Come back later!")
					return nil
				}
				if err != nil {
					return err
				}

				interactive := cli.NewInteractiveCLI(cmd.InOrStdin(), cmd.OutOrStdout())
				studyCLI := cli.NewStudyCLI(interactive, store, snapshot.Decks, session, now)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Starting a study session with %d cards\n\n", session.Total())
				if err := interactive.Run(ctx, studyCLI); err != nil {
					return err
				}
				// An interrupted session is recorded with the answers given so far.
				if _, err := studyCLI.Finish(ctx); err != nil {
					return err
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&deckID, "deck", "", "Study only the cards of this deck")
	return cmd
}
