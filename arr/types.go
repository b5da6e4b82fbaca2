package arr

import (
	"encoding/json"
	"strings"
)

const (
	// CommandManualImport is the command name the server expects for manual imports.
	CommandManualImport = "ManualImport"
	// ImportModeMove moves files out of the download folder into the library.
	ImportModeMove = "move"
)

// Rejection explains why the server will not import a candidate automatically.
type Rejection struct {
	Reason string `json:"reason"`
	Type   string `json:"type"`
}

func (r Rejection) String() string {
	return r.Reason + " (" + r.Type + ")"
}

// Reference points at a library item (series, episode or movie).
type Reference struct {
	ID    int64  `json:"id"`
	Title string `json:"title,omitempty"`
}

// ImportCandidate is one file returned by the manual import scan.
type ImportCandidate struct {
	Path       string          `json:"path"`
	Name       string          `json:"name"`
	FolderName string          `json:"folderName"`
	Size       int64           `json:"size"`
	Quality    json.RawMessage `json:"quality"`
	Languages  json.RawMessage `json:"languages"`
	Rejections []Rejection     `json:"rejections"`

	// Sonarr
	Series   *Reference  `json:"series,omitempty"`
	Episodes []Reference `json:"episodes,omitempty"`

	// Radarr
	Movie *Reference `json:"movie,omitempty"`
}

// RejectionSummary formats all rejections as "<reason> (<type>)" joined by "; ".
func (c ImportCandidate) RejectionSummary() string {
	parts := make([]string, 0, len(c.Rejections))
	for _, r := range c.Rejections {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, "; ")
}

// FileEntry is one file in a ManualImport command. It is implemented by
// SeriesFileEntry and MovieFileEntry.
type FileEntry interface {
	FilePath() string
}

// FileFields holds the fields every file entry carries.
type FileFields struct {
	Path       string          `json:"path"`
	FolderName string          `json:"folderName"`
	Quality    json.RawMessage `json:"quality"`
	Languages  json.RawMessage `json:"languages"`
}

// FilePath returns the server-side path of the file.
func (f FileFields) FilePath() string {
	return f.Path
}

// SeriesFileEntry is a Sonarr file entry.
type SeriesFileEntry struct {
	FileFields
	SeriesID   int64   `json:"seriesId"`
	EpisodeIDs []int64 `json:"episodeIds"`
}

// MovieFileEntry is a Radarr file entry.
type MovieFileEntry struct {
	FileFields
	MovieID int64 `json:"movieId"`
}

// ImportRequest is the body of a ManualImport command.
type ImportRequest struct {
	Name       string      `json:"name"`
	ImportMode string      `json:"importMode"`
	Files      []FileEntry `json:"files"`
}

// NewImportRequest wraps files in a ManualImport command using move mode.
func NewImportRequest(files []FileEntry) *ImportRequest {
	return &ImportRequest{
		Name:       CommandManualImport,
		ImportMode: ImportModeMove,
		Files:      files,
	}
}

// CommandResponse is the server's view of a queued command.
type CommandResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}
