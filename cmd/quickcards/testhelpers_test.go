package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/quickcards/internal/flashcard"
	"github.com/at-ishikawa/quickcards/internal/storage"
	"github.com/at-ishikawa/quickcards/internal/testutil"
)

var testNow = time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

// setConfigFile sets the global configFile variable and registers a cleanup to restore it.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

// setNow fixes the clock used by the commands.
func setNow(t *testing.T, at time.Time) {
	t.Helper()
	oldNow := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = oldNow })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// setupTestData writes a config and two decks: spanish has two due cards
// and math has one card due tomorrow. Returns the data directory.
func setupTestData(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))
	setNow(t, testNow)

	dataDir := filepath.Join(tmpDir, "data")
	created := testNow.Add(-time.Hour)
	testutil.WriteSnapshot(t, dataDir, storage.Snapshot{
		Decks: flashcard.Decks{
			testutil.NewDeck(t, "spanish", "Spanish Basics", created,
				[][2]string{{"Hello", "Hola"}, {"Thank you", "Gracias"}},
				testutil.WithDifficulties(0, 3),
			),
			testutil.NewDeck(t, "math", "Math Formulas", created,
				[][2]string{{"Area of a circle", "π × r²"}},
				testutil.WithNextReview(testNow.AddDate(0, 0, 1)),
			),
		},
		Settings: flashcard.DefaultSettings(),
	})
	return dataDir
}

// execute runs cmd with args and stdin, returning what it printed.
func execute(cmd *cobra.Command, stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// captureStdout returns everything written to os.Stdout while fn runs.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	original := os.Stdout
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = original })

	read := make(chan []byte)
	go func() {
		data, _ := io.ReadAll(r)
		read <- data
	}()

	fn()
	os.Stdout = original
	require.NoError(t, w.Close())
	return string(<-read)
}
