package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/quickcards/internal/cli"
	"github.com/at-ishikawa/quickcards/internal/config"
	"github.com/at-ishikawa/quickcards/internal/flashcard"
	"github.com/at-ishikawa/quickcards/internal/storage"
)

const cardSeparator = "::"

func newDeckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Manage decks",
	}
	cmd.AddCommand(
		newDeckListCommand(),
		newDeckShowCommand(),
		newDeckCreateCommand(),
		newDeckEditCommand(),
		newDeckDeleteCommand(),
	)
	return cmd
}

func newDeckListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List decks with their due cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(_ context.Context, _ *config.Config, _ *storage.Repository, snapshot storage.Snapshot) error {
				cli.NewPrinter(cmd.OutOrStdout()).PrintDecks(snapshot.Decks, now())
				return nil
			})
		},
	}
}

func newDeckShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <deck-id>",
		Short: "Show a deck and its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(_ context.Context, _ *config.Config, _ *storage.Repository, snapshot storage.Snapshot) error {
				deck, err := findDeck(snapshot.Decks, args[0])
				if err != nil {
					return err
				}
				cli.NewPrinter(cmd.OutOrStdout()).PrintDeck(deck, now())
				return nil
			})
		},
	}
}

func newDeckCreateCommand() *cobra.Command {
	var name, description, color string
	var cards []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts, err := parseCards(cards)
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), func(ctx context.Context, _ *config.Config, store *storage.Repository, snapshot storage.Snapshot) error {
				deck, err := flashcard.NewDeck(name, description, color, drafts, now())
				if err != nil {
					return err
				}
				if err := store.SaveDecks(ctx, snapshot.Decks.Add(deck)); err != nil {
					return fmt.Errorf("store.SaveDecks() > %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created deck %s (%s) with %d cards\n", deck.Name, deck.ID, len(deck.Cards))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Deck name")
	cmd.Flags().StringVar(&description, "description", "", "Deck description")
	cmd.Flags().StringVar(&color, "color", flashcard.DefaultDeckColor, "Deck color")
	cmd.Flags().StringArrayVar(&cards, "card", nil, "Card as front"+cardSeparator+"back, can be repeated")
	return cmd
}

func newDeckEditCommand() *cobra.Command {
	var name, description, color string
	var addCards, removeCards []string

	cmd := &cobra.Command{
		Use:   "edit <deck-id>",
		Short: "Edit a deck's name, description, color or cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts, err := parseCards(addCards)
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), func(ctx context.Context, _ *config.Config, store *storage.Repository, snapshot storage.Snapshot) error {
				deck, err := findDeck(snapshot.Decks, args[0])
				if err != nil {
					return err
				}

				edit := flashcard.DeckEdit{
					Name:        deck.Name,
					Description: deck.Description,
					Color:       deck.Color,
				}
				if cmd.Flags().Changed("name") {
					edit.Name = name
				}
				if cmd.Flags().Changed("description") {
					edit.Description = description
				}
				if cmd.Flags().Changed("color") {
					edit.Color = color
				}
				for _, card := range deck.Cards {
					if !slices.Contains(removeCards, card.ID) {
						edit.Cards = append(edit.Cards, card)
					}
				}
				edit.Cards = append(edit.Cards, drafts...)

				edited, err := deck.Edit(edit)
				if err != nil {
					return err
				}
				decks, err := snapshot.Decks.Replace(edited)
				if err != nil {
					return err
				}
				if err := store.SaveDecks(ctx, decks); err != nil {
					return fmt.Errorf("store.SaveDecks() > %w", err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Deck updated successfully!")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New deck name")
	cmd.Flags().StringVar(&description, "description", "", "New deck description")
	cmd.Flags().StringVar(&color, "color", "", "New deck color")
	cmd.Flags().StringArrayVar(&addCards, "card", nil, "Card to add as front"+cardSeparator+"back, can be repeated")
	cmd.Flags().StringArrayVar(&removeCards, "remove-card", nil, "ID of a card to remove, can be repeated")
	return cmd
}

func newDeckDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <deck-id>",
		Short: "Delete a deck and its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, _ *config.Config, store *storage.Repository, snapshot storage.Snapshot) error {
				decks, err := snapshot.Decks.Remove(args[0])
				if err != nil {
					return err
				}
				if !yes {
					interactive := cli.NewInteractiveCLI(cmd.InOrStdin(), cmd.OutOrStdout())
					confirmed, err := interactive.Confirm("Are you sure you want to delete this deck? This action cannot be undone.")
					if err != nil {
						return err
					}
					if !confirmed {
						return nil
					}
				}
				if err := store.SaveDecks(ctx, decks); err != nil {
					return fmt.Errorf("store.SaveDecks() > %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted deck %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation")
	return cmd
}

func newCardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards",
	}
	cmd.AddCommand(
		newCardAddCommand(),
		newCardEditCommand(),
	)
	return cmd
}

func newCardAddCommand() *cobra.Command {
	var front, back string

	cmd := &cobra.Command{
		Use:   "add <deck-id>",
		Short: "Add a card to a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, _ *config.Config, store *storage.Repository, snapshot storage.Snapshot) error {
				deck, err := findDeck(snapshot.Decks, args[0])
				if err != nil {
					return err
				}
				card, err := flashcard.NewCard(front, back, now())
				if err != nil {
					return err
				}
				decks, err := snapshot.Decks.Replace(deck.WithCard(card))
				if err != nil {
					return err
				}
				if err := store.SaveDecks(ctx, decks); err != nil {
					return fmt.Errorf("store.SaveDecks() > %w", err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Card added successfully!")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&front, "front", "", "Question side")
	cmd.Flags().StringVar(&back, "back", "", "Answer side")
	return cmd
}

func newCardEditCommand() *cobra.Command {
	var front, back string

	cmd := &cobra.Command{
		Use:   "edit <deck-id> <card-id>",
		Short: "Change the front or back of a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("front") && !cmd.Flags().Changed("back") {
				return fmt.Errorf("specify --front or --back")
			}
			return withStore(cmd.Context(), func(ctx context.Context, _ *config.Config, store *storage.Repository, snapshot storage.Snapshot) error {
				deck, err := findDeck(snapshot.Decks, args[0])
				if err != nil {
					return err
				}
				card, ok := deck.FindCard(args[1])
				if !ok {
					return fmt.Errorf("card %s in deck %s: %w", args[1], args[0], flashcard.ErrCardNotFound)
				}
				if cmd.Flags().Changed("front") {
					card.Front = front
				}
				if cmd.Flags().Changed("back") {
					card.Back = back
				}

				edited, err := deck.EditCard(card.ID, card.Front, card.Back)
				if err != nil {
					return err
				}
				decks, err := snapshot.Decks.Replace(edited)
				if err != nil {
					return err
				}
				if err := store.SaveDecks(ctx, decks); err != nil {
					return fmt.Errorf("store.SaveDecks() > %w", err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Card updated successfully!")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&front, "front", "", "New question side")
	cmd.Flags().StringVar(&back, "back", "", "New answer side")
	return cmd
}

func findDeck(decks flashcard.Decks, id string) (flashcard.Deck, error) {
	deck, ok := decks.Find(id)
	if !ok {
		return flashcard.Deck{}, fmt.Errorf("deck %s: %w", id, flashcard.ErrDeckNotFound)
	}
	return deck, nil
}

// parseCards converts front::back flag values into draft cards.
func parseCards(values []string) ([]flashcard.Card, error) {
	cards := make([]flashcard.Card, 0, len(values))
	for _, value := range values {
		front, back, ok := strings.Cut(value, cardSeparator)
		if !ok {
			return nil, fmt.Errorf("invalid card %q: expected front%sback", value, cardSeparator)
		}
		card := flashcard.NewDraftCard(now())
		card.Front = front
		card.Back = back
		cards = append(cards, card)
	}
	return cards, nil
}
