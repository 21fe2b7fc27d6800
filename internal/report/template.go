// Package report renders the progress report as markdown and converts it to PDF.
package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"text/template"
	"time"

	"github.com/at-ishikawa/quickcards/internal/flashcard"
	"github.com/at-ishikawa/quickcards/internal/statistics"
)

const embeddedTemplateName = "progress-report.md.go.tmpl"

// RecentSessionsLimit is the number of sessions listed in a report.
const RecentSessionsLimit = 10

//go:embed templates/progress-report.md.go.tmpl
var fallbackReportTemplate string

// Data is passed to the report template.
type Data struct {
	GeneratedAt time.Time
	Overview    statistics.Overview
	Sessions    []flashcard.StudySession
}

// NewData keeps the most recent sessions, newest first.
func NewData(overview statistics.Overview, sessions []flashcard.StudySession, now time.Time) Data {
	recent := slices.Clone(sessions)
	slices.SortStableFunc(recent, func(a, b flashcard.StudySession) int {
		return b.StartTime.Compare(a.StartTime.Time)
	})
	if len(recent) > RecentSessionsLimit {
		recent = recent[:RecentSessionsLimit]
	}
	return Data{
		GeneratedAt: now,
		Overview:    overview,
		Sessions:    recent,
	}
}

var funcMap = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
	"day": func(t time.Time) string {
		return t.Format("Mon 2006-01-02")
	},
	"percent": func(value float64) string {
		return fmt.Sprintf("%.0f%%", value)
	},
	"duration": func(d time.Duration) string {
		return d.Round(time.Second).String()
	},
}

// ParseTemplate parses the template at templatePath, falling back to the
// embedded template when the path is empty or cannot be parsed.
func ParseTemplate(templatePath string) (*template.Template, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a report template",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(embeddedTemplateName).
		Funcs(funcMap).
		Parse(fallbackReportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

func Render(w io.Writer, tmpl *template.Template, data Data) error {
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

// WriteMarkdown renders the report into path, creating its directory, and
// returns the rendered markdown.
func WriteMarkdown(path string, tmpl *template.Template, data Data) ([]byte, error) {
	var content bytes.Buffer
	if err := Render(&content, tmpl, data); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return content.Bytes(), nil
}
