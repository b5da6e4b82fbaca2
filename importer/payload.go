package importer

import (
	"errors"
	"fmt"

	"github.com/s0up4200/arrsync/arr"
)

var (
	// ErrMissingSeries is returned when a Sonarr candidate has no series.
	ErrMissingSeries = errors.New("candidate has no series")
	// ErrMissingEpisodes is returned when a Sonarr candidate carries no episode list.
	ErrMissingEpisodes = errors.New("candidate has no episodes")
	// ErrMissingMovie is returned when a Radarr candidate has no movie.
	ErrMissingMovie = errors.New("candidate has no movie")
)

// BuildFunc turns an accepted candidate into a file entry for the import command.
type BuildFunc func(candidate arr.ImportCandidate) (arr.FileEntry, error)

// BuilderFor returns the file entry builder for variant.
func BuilderFor(variant arr.Variant) (BuildFunc, error) {
	switch variant {
	case arr.Sonarr:
		return buildSeriesEntry, nil
	case arr.Radarr:
		return buildMovieEntry, nil
	default:
		return nil, fmt.Errorf("%w: %s", arr.ErrUnknownVariant, variant)
	}
}

func fileFields(candidate arr.ImportCandidate) arr.FileFields {
	return arr.FileFields{
		Path:       candidate.Path,
		FolderName: candidate.FolderName,
		Quality:    candidate.Quality,
		Languages:  candidate.Languages,
	}
}

func buildSeriesEntry(candidate arr.ImportCandidate) (arr.FileEntry, error) {
	if candidate.Series == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingSeries, candidate.Path)
	}
	// A present but empty list is sent as is.
	if candidate.Episodes == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingEpisodes, candidate.Path)
	}

	// Episode order and duplicates are kept as the server sent them.
	episodeIDs := make([]int64, 0, len(candidate.Episodes))
	for _, episode := range candidate.Episodes {
		episodeIDs = append(episodeIDs, episode.ID)
	}

	return arr.SeriesFileEntry{
		FileFields: fileFields(candidate),
		SeriesID:   candidate.Series.ID,
		EpisodeIDs: episodeIDs,
	}, nil
}

func buildMovieEntry(candidate arr.ImportCandidate) (arr.FileEntry, error) {
	if candidate.Movie == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingMovie, candidate.Path)
	}

	return arr.MovieFileEntry{
		FileFields: fileFields(candidate),
		MovieID:    candidate.Movie.ID,
	}, nil
}
