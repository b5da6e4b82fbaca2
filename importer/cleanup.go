package importer

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/s0up4200/arrsync/arr"
	"github.com/s0up4200/arrsync/filter"
	"github.com/s0up4200/arrsync/hardlink"
)

// CleanupAction describes what happened to a rejected file.
type CleanupAction string

const (
	ActionKept         CleanupAction = "kept"
	ActionFiltered     CleanupAction = "kept by filter"
	ActionMissing      CleanupAction = "file not found"
	ActionDeleted      CleanupAction = "deleted"
	ActionDeleteFailed CleanupAction = "delete failed"
	ActionWouldDelete  CleanupAction = "would delete"
)

// FolderAction describes what happened to the parent folder of a rejected file.
type FolderAction string

const (
	FolderUntouched    FolderAction = ""
	FolderRemoved      FolderAction = "folder removed"
	FolderWouldRemove  FolderAction = "would remove folder"
	FolderRemoveFailed FolderAction = "folder remove failed"
)

// CleanupOptions controls deletion of rejected files.
type CleanupOptions struct {
	DeleteFiles        bool
	DeleteEmptyFolders bool
	// DownloadPrefix is joined with the server path of a candidate to find
	// the file on the local filesystem.
	DownloadPrefix string
	// Filter restricts deletion to matching candidates; nil matches all.
	Filter *filter.Expression
	// ProtectedDirs are never removed, even when empty.
	ProtectedDirs []string
	DryRun        bool
}

// CleanupResult is the outcome of cleaning up one rejected candidate.
type CleanupResult struct {
	Path   string
	Action CleanupAction
	Folder FolderAction
}

// Cleaner deletes rejected files and the folders they leave empty
type Cleaner struct {
	opts      CleanupOptions
	protected map[string]bool
	logger    zerolog.Logger
}

// NewCleaner creates a Cleaner. The download prefix itself is always protected.
func NewCleaner(opts CleanupOptions, logger zerolog.Logger) *Cleaner {
	protected := make(map[string]bool, len(opts.ProtectedDirs)+1)
	if opts.DownloadPrefix != "" {
		protected[filepath.Clean(opts.DownloadPrefix)] = true
	}
	for _, dir := range opts.ProtectedDirs {
		protected[filepath.Clean(dir)] = true
	}

	return &Cleaner{
		opts:      opts,
		protected: protected,
		logger:    logger,
	}
}

// LocalPath maps a server-side path onto the local filesystem.
func (c *Cleaner) LocalPath(serverPath string) string {
	return filepath.Join(c.opts.DownloadPrefix, serverPath)
}

// Clean deletes the file behind a rejected candidate when enabled. Failures are
// logged and reflected in the result, never returned.
func (c *Cleaner) Clean(candidate arr.ImportCandidate) CleanupResult {
	location := c.LocalPath(candidate.Path)
	result := CleanupResult{Path: location, Action: ActionKept}

	if !c.opts.DeleteFiles {
		return result
	}

	if c.opts.Filter != nil {
		matched, err := c.opts.Filter.Match(candidate)
		if err != nil {
			c.logger.Error().Err(err).Str("folder", candidate.FolderName).Msg("Failed to evaluate delete filter, keeping rejected item")
			return result
		}
		if !matched {
			c.logger.Debug().
				Str("folder", candidate.FolderName).
				Str("filter", c.opts.Filter.String()).
				Msg("Rejected item does not match delete filter")
			result.Action = ActionFiltered
			return result
		}
	}

	c.logger.Info().
		Str("folder", candidate.FolderName).
		Str("path", location).
		Msg("Trying to delete rejected item")

	result.Action = c.deleteFile(location)

	if c.opts.DeleteEmptyFolders {
		result.Folder = c.removeEmptyParent(location)
	}

	return result
}

func (c *Cleaner) deleteFile(location string) CleanupAction {
	info, err := os.Stat(location)
	if err != nil || !info.Mode().IsRegular() {
		c.logger.Error().Err(err).Str("path", location).Msg("Could not find downloaded file")
		return ActionMissing
	}

	if shared, err := hardlink.IsShared(location); err == nil && shared {
		c.logger.Warn().Str("path", location).Msg("Rejected file has other hardlinks, deleting it will not free space")
	}

	if c.opts.DryRun {
		c.logger.Info().Str("path", location).Msg("DRY RUN - would delete rejected file")
		return ActionWouldDelete
	}

	if err := os.Remove(location); err != nil {
		c.logger.Error().Err(err).Str("path", location).Msg("Could not delete downloaded file")
		return ActionDeleteFailed
	}

	c.logger.Info().Str("path", location).Msg("Deleted rejected file")
	return ActionDeleted
}

// removeEmptyParent removes the folder containing location when nothing is left in it.
func (c *Cleaner) removeEmptyParent(location string) FolderAction {
	parent := filepath.Dir(location)
	if c.protected[parent] || parent == "." || parent == filepath.Dir(parent) {
		c.logger.Debug().Str("folder", parent).Msg("Not removing protected folder")
		return FolderUntouched
	}

	entries, err := os.ReadDir(parent)
	if err != nil {
		c.logger.Debug().Err(err).Str("folder", parent).Msg("Could not list parent folder")
		return FolderUntouched
	}

	if c.opts.DryRun {
		// The file is still present in a dry run.
		if len(entries) == 0 || (len(entries) == 1 && entries[0].Name() == filepath.Base(location)) {
			c.logger.Info().Str("folder", parent).Msg("DRY RUN - would remove empty folder")
			return FolderWouldRemove
		}
		return FolderUntouched
	}

	if len(entries) > 0 {
		c.logger.Debug().Str("folder", parent).Int("entries", len(entries)).Msg("Parent folder not empty, keeping it")
		return FolderUntouched
	}

	if err := os.RemoveAll(parent); err != nil {
		c.logger.Error().Err(err).Str("folder", parent).Msg("Could not remove empty folder")
		return FolderRemoveFailed
	}

	c.logger.Info().Str("folder", parent).Msg("Removed empty folder")
	return FolderRemoved
}
