package arr

import (
	"context"
)

// API defines the manual import operations used by the synchroniser
type API interface {
	// GetManualImport scans folder for import candidates
	GetManualImport(ctx context.Context, folder string, filterExistingFiles bool) ([]ImportCandidate, error)

	// SendManualImport submits a ManualImport command
	SendManualImport(ctx context.Context, req *ImportRequest) (*CommandResponse, error)
}
