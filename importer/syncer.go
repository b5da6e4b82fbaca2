// Package importer reconciles the manual import candidates of an arr server
// with its download folder: accepted files are sent for import in one command,
// rejected files are optionally removed.
package importer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/s0up4200/arrsync/arr"
)

// Options configures a sync run
type Options struct {
	Variant             arr.Variant
	ImportPath          string
	FilterExistingFiles bool
	DryRun              bool
	Cleanup             CleanupOptions
}

// ItemResult records the handling of one candidate
type ItemResult struct {
	Candidate arr.ImportCandidate
	Decision  Decision
	// Detail holds the referenced library ids for accepted items and the
	// rejection reasons for rejected ones.
	Detail  string
	Cleanup CleanupResult
	Err     error
}

// Result summarises a sync run
type Result struct {
	Items          []ItemResult
	Accepted       int
	Rejected       int
	BuildFailed    int
	FilesDeleted   int
	FoldersRemoved int
	Submitted      bool
	Command        *arr.CommandResponse
	SubmitErr      error
}

// Syncer runs one manual import pass against an arr server
type Syncer struct {
	api     arr.API
	opts    Options
	build   BuildFunc
	cleaner *Cleaner
	logger  zerolog.Logger
}

// New creates a Syncer for the configured variant.
func New(api arr.API, opts Options, logger zerolog.Logger) (*Syncer, error) {
	build, err := BuilderFor(opts.Variant)
	if err != nil {
		return nil, err
	}

	cleanup := opts.Cleanup
	cleanup.DryRun = cleanup.DryRun || opts.DryRun
	if opts.ImportPath != "" {
		// The watched folder itself must survive even when it runs empty.
		cleanup.ProtectedDirs = append(cleanup.ProtectedDirs, filepath.Join(cleanup.DownloadPrefix, opts.ImportPath))
	}

	return &Syncer{
		api:     api,
		opts:    opts,
		build:   build,
		cleaner: NewCleaner(cleanup, logger),
		logger:  logger,
	}, nil
}

// Run fetches the candidates, handles each one in server order and submits the
// accepted files. Only a failed fetch is returned as an error; everything after
// that is logged and recorded in the result.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	candidates, err := s.api.GetManualImport(ctx, s.opts.ImportPath, s.opts.FilterExistingFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manual import items: %w", err)
	}

	s.logger.Debug().
		Str("folder", s.opts.ImportPath).
		Int("count", len(candidates)).
		Msg("Fetched manual import items")

	result := &Result{Items: make([]ItemResult, 0, len(candidates))}
	var files []arr.FileEntry

	for _, candidate := range candidates {
		item := ItemResult{
			Candidate: candidate,
			Decision:  Classify(candidate),
		}

		switch item.Decision {
		case Accepted:
			entry, err := s.build(candidate)
			if err != nil {
				item.Err = err
				result.BuildFailed++
				s.logger.Error().Err(err).Str("folder", candidate.FolderName).Msg("Could not build manual import entry")
				break
			}
			files = append(files, entry)
			result.Accepted++
			item.Detail = describeEntry(entry)
			s.logger.Info().Str("folder", candidate.FolderName).Msg("Added item for manual import")

		case Rejected:
			result.Rejected++
			item.Detail = candidate.RejectionSummary()
			s.logger.Info().
				Str("folder", candidate.FolderName).
				Str("reasons", item.Detail).
				Msg("Rejected item for manual import")

			item.Cleanup = s.cleaner.Clean(candidate)
			if item.Cleanup.Action == ActionDeleted {
				result.FilesDeleted++
			}
			if item.Cleanup.Folder == FolderRemoved {
				result.FoldersRemoved++
			}
		}

		result.Items = append(result.Items, item)
	}

	s.submit(ctx, files, result)

	s.logger.Info().
		Int("accepted", result.Accepted).
		Int("rejected", result.Rejected).
		Int("build_failed", result.BuildFailed).
		Int("files_deleted", result.FilesDeleted).
		Int("folders_removed", result.FoldersRemoved).
		Bool("import_submitted", result.Submitted).
		Msg("Manual import sync complete")

	return result, nil
}

// submit sends all accepted files as a single ManualImport command.
func (s *Syncer) submit(ctx context.Context, files []arr.FileEntry, result *Result) {
	if len(files) == 0 {
		s.logger.Debug().Msg("No items to import")
		return
	}

	s.logger.Info().Int("files", len(files)).Msg("Requesting manual import")

	if s.opts.DryRun {
		s.logger.Info().Msg("DRY RUN - manual import request not sent")
		return
	}

	resp, err := s.api.SendManualImport(ctx, arr.NewImportRequest(files))
	if err != nil {
		result.SubmitErr = err

		event := s.logger.Error().Err(err)
		var apiErr *arr.APIError
		if errors.As(err, &apiErr) {
			event = event.Int("status", apiErr.StatusCode).Str("body", apiErr.Body)
		}
		event.Msg("Error during manual import request")
		return
	}

	result.Submitted = true
	result.Command = resp

	s.logger.Info().
		Int64("command_id", resp.ID).
		Str("status", resp.Status).
		Msg("Manual import request was successful")
}
