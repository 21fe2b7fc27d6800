package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/quickcards/internal/config"
	"github.com/at-ishikawa/quickcards/internal/datasync"
	"github.com/at-ishikawa/quickcards/internal/storage"
)

func newSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy data between the configured store and a YAML data directory",
	}
	cmd.AddCommand(
		newSyncImportCommand(),
		newSyncExportCommand(),
	)
	return cmd
}

func newSyncImportCommand() *cobra.Command {
	var from string
	var dryRun bool
	var updateExisting bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Merge decks and sessions from a YAML data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, _ *config.Config, store *storage.Repository, snapshot storage.Snapshot) error {
				source, err := yamlRepository(from).Read(ctx)
				if err != nil {
					return fmt.Errorf("source.Read() > %w", err)
				}

				out := cmd.OutOrStdout()
				importer := datasync.NewImporter(store, out)
				opts := datasync.ImportOptions{
					DryRun:         dryRun,
					UpdateExisting: updateExisting,
				}
				result, err := importer.Import(ctx, snapshot, source, opts)
				if err != nil {
					return fmt.Errorf("importer.Import() > %w", err)
				}

				_, _ = fmt.Fprintln(out, "\nImport Summary:")
				if opts.DryRun {
					_, _ = fmt.Fprintln(out, "  (dry-run mode, no changes made)")
				}
				_, _ = fmt.Fprintf(out, "  Decks:    %d new, %d skipped, %d updated\n", result.DecksNew, result.DecksSkipped, result.DecksUpdated)
				_, _ = fmt.Fprintf(out, "  Cards:    %d new\n", result.CardsNew)
				_, _ = fmt.Fprintf(out, "  Sessions: %d new, %d skipped\n", result.SessionsNew, result.SessionsSkipped)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "YAML data directory to read")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the store")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Replace decks that already exist")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func newSyncExportCommand() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every deck, session and setting into a YAML data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, _ *config.Config, _ *storage.Repository, snapshot storage.Snapshot) error {
				if err := datasync.NewExporter(yamlRepository(to)).Export(ctx, snapshot); err != nil {
					return fmt.Errorf("exporter.Export() > %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d decks and %d sessions to %s\n", len(snapshot.Decks), len(snapshot.Sessions), to)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "YAML data directory to write")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func yamlRepository(directory string) *storage.Repository {
	return storage.NewRepository(storage.NewFileStore(directory), storage.YAMLCodec{}, storage.WithClock(now))
}
