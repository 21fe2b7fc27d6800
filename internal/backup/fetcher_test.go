package backup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/backup.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"decks":[],"sessions":[],"settings":{}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr string
	}{
		{name: "downloads the document", url: server.URL + "/backup.json", want: `{"decks":[],"sessions":[],"settings":{}}`},
		{name: "error status", url: server.URL + "/missing.json", wantErr: "unexpected status"},
		{name: "unsupported scheme", url: "file:///etc/passwd", wantErr: "unsupported backup URL scheme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := NewFetcher(5 * time.Second)
			got, err := fetcher.Fetch(context.Background(), tt.url)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))

			doc, err := Import(got, time.Now())
			require.NoError(t, err)
			assert.Empty(t, doc.Decks)
		})
	}
}
