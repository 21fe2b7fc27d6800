package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/quickcards/internal/backup"
	"github.com/at-ishikawa/quickcards/internal/cli"
	"github.com/at-ishikawa/quickcards/internal/config"
	"github.com/at-ishikawa/quickcards/internal/storage"
)

const stdoutPath = "-"

func newBackupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import all decks, sessions and settings",
	}
	cmd.AddCommand(
		newBackupExportCommand(),
		newBackupImportCommand(),
	)
	return cmd
}

func newBackupExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON backup file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(_ context.Context, cfg *config.Config, _ *storage.Repository, snapshot storage.Snapshot) error {
				current := now()
				data, err := backup.Encode(backup.Export(snapshot.Decks, snapshot.Sessions, snapshot.Settings, current))
				if err != nil {
					return err
				}

				if output == stdoutPath {
					_, err := cmd.OutOrStdout().Write(append(data, '\n'))
					return err
				}
				if output == "" {
					output = filepath.Join(cfg.Backup.Directory, fmt.Sprintf("quickcards-backup-%s.json", current.UTC().Format("2006-01-02")))
				}
				if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
					return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(output), err)
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("os.WriteFile(%s) > %w", output, err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d decks and %d sessions to %s\n", len(snapshot.Decks), len(snapshot.Sessions), output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Backup file to write, - for stdout")
	return cmd
}

func newBackupImportCommand() *cobra.Command {
	var url string
	var strict, yes bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace all data with a JSON backup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (url == "") {
				return fmt.Errorf("specify either a backup file or --url")
			}

			return withStore(cmd.Context(), func(ctx context.Context, cfg *config.Config, store *storage.Repository, _ storage.Snapshot) error {
				data, err := readBackup(ctx, cfg, args, url)
				if err != nil {
					return err
				}

				var options []backup.ImportOption
				if strict {
					options = append(options, backup.WithStrictValidation())
				}
				doc, err := backup.Import(data, now(), options...)
				if err != nil {
					return err
				}

				if !yes {
					interactive := cli.NewInteractiveCLI(cmd.InOrStdin(), cmd.OutOrStdout())
					confirmed, err := interactive.Confirm("This will replace all your current data. Are you sure?")
					if err != nil {
						return err
					}
					if !confirmed {
						return nil
					}
				}

				if err := store.Replace(ctx, storage.Snapshot{
					Decks:    doc.Decks,
					Sessions: doc.Sessions,
					Settings: doc.Settings,
				}); err != nil {
					return fmt.Errorf("store.Replace() > %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Data imported successfully! %d decks and %d sessions\n", len(doc.Decks), len(doc.Sessions))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Download the backup from an http or https URL")
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject documents with missing or invalid fields")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Import without asking for confirmation")
	return cmd
}

func readBackup(ctx context.Context, cfg *config.Config, args []string, url string) ([]byte, error) {
	if url != "" {
		fetcher := backup.NewFetcher(time.Duration(cfg.Backup.FetchTimeoutSeconds) * time.Second)
		return fetcher.Fetch(ctx, url)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", args[0], err)
	}
	return data, nil
}
