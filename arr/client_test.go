package arr

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		baseURL string
		apiKey  string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			baseURL: "http://localhost:7878/",
			apiKey:  "test-key",
		},
		{
			name:    "missing URL",
			baseURL: "",
			apiKey:  "test-key",
			wantErr: true,
			errMsg:  "URL is required",
		},
		{
			name:    "missing API key",
			baseURL: "http://localhost:7878",
			apiKey:  "",
			wantErr: true,
			errMsg:  "API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, tt.apiKey, logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "http://localhost:7878", client.baseURL)
			assert.NotNil(t, client.httpClient)
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("http://localhost:8989", "test-key", logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Same(t, customClient, client.httpClient)
	})

	t.Run("with user agent", func(t *testing.T) {
		client, err := NewClient("http://localhost:8989", "test-key", logger, WithUserAgent("arrsync/test"))
		require.NoError(t, err)
		assert.Equal(t, "arrsync/test", client.userAgent)
	})
}

func TestGetManualImport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v3/manualimport", r.URL.Path)
		assert.Equal(t, "/downloads/complete", r.URL.Query().Get("folder"))
		assert.Equal(t, "false", r.URL.Query().Get("filterExistingFiles"))
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{
				"path": "/downloads/complete/Show.S01E01/show.s01e01.mkv",
				"folderName": "Show.S01E01",
				"quality": {"quality": {"id": 7, "name": "Bluray-1080p"}},
				"languages": [{"id": 1, "name": "English"}],
				"rejections": [],
				"series": {"id": 12, "title": "Show"},
				"episodes": [{"id": 101}, {"id": 102}]
			},
			{
				"path": "/downloads/complete/Other/other.mkv",
				"folderName": "Other",
				"rejections": [{"reason": "Unknown Series", "type": "permanent"}]
			}
		]`)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "test-key", zerolog.Nop())
	require.NoError(t, err)

	candidates, err := client.GetManualImport(context.Background(), "/downloads/complete", false)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	first := candidates[0]
	assert.Equal(t, "Show.S01E01", first.FolderName)
	assert.JSONEq(t, `{"quality": {"id": 7, "name": "Bluray-1080p"}}`, string(first.Quality))
	require.NotNil(t, first.Series)
	assert.Equal(t, int64(12), first.Series.ID)
	assert.Equal(t, []Reference{{ID: 101}, {ID: 102}}, first.Episodes)
	assert.Empty(t, first.Rejections)

	second := candidates[1]
	assert.Equal(t, "Unknown Series (permanent)", second.RejectionSummary())
}

func TestGetManualImport_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "database is locked")
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "test-key", zerolog.Nop())
	require.NoError(t, err)

	candidates, err := client.GetManualImport(context.Background(), "/downloads", true)
	require.Error(t, err)
	assert.Nil(t, candidates)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "database is locked", apiErr.Body)
	assert.Contains(t, err.Error(), "500")
	assert.False(t, apiErr.IsUnauthorized())
}

func TestSendManualImport(t *testing.T) {
	var received map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v3/command", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id": 55, "name": "ManualImport", "status": "queued"}`)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "test-key", zerolog.Nop())
	require.NoError(t, err)

	req := NewImportRequest([]FileEntry{
		MovieFileEntry{
			FileFields: FileFields{
				Path:       "/downloads/Movie/movie.mkv",
				FolderName: "Movie",
				Quality:    json.RawMessage(`{"quality":{"id":7}}`),
				Languages:  json.RawMessage(`[{"id":1}]`),
			},
			MovieID: 42,
		},
	})

	resp, err := client.SendManualImport(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(55), resp.ID)
	assert.Equal(t, "queued", resp.Status)

	assert.Equal(t, "ManualImport", received["name"])
	assert.Equal(t, "move", received["importMode"])
	files, ok := received["files"].([]any)
	require.True(t, ok)
	require.Len(t, files, 1)
	file := files[0].(map[string]any)
	assert.Equal(t, float64(42), file["movieId"])
	assert.Equal(t, "Movie", file["folderName"])
	assert.NotContains(t, file, "episodeIds")
	assert.NotContains(t, file, "seriesId")
}

func TestSendManualImport_RequiresCreated(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "ok is not created", status: http.StatusOK},
		{name: "bad request", status: http.StatusBadRequest},
		{name: "unauthorized", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, `{"message": "nope"}`)
			}))
			defer server.Close()

			client, err := NewClient(server.URL, "test-key", zerolog.Nop())
			require.NoError(t, err)

			_, err = client.SendManualImport(context.Background(), NewImportRequest(nil))
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.status == http.StatusUnauthorized, apiErr.IsUnauthorized())
		})
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		input   string
		want    Variant
		wantErr bool
	}{
		{input: "radarr", want: Radarr},
		{input: "sonarr", want: Sonarr},
		{input: "Sonarr", want: Sonarr},
		{input: " RADARR ", want: Radarr},
		{input: "plex", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVariant(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownVariant)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.ToLower(strings.TrimSpace(tt.input)), got.String())
		})
	}
}
