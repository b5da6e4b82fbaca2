package arr

import (
	"context"
	"fmt"
	"time"

	"golift.io/starr"
	"golift.io/starr/radarr"
	"golift.io/starr/sonarr"
)

// SystemStatus contains the server details reported by the status endpoint
type SystemStatus struct {
	AppName string
	Version string
}

// GetSystemStatus connects to the server with the starr client for variant and
// returns its application name and version.
func GetSystemStatus(ctx context.Context, variant Variant, baseURL, apiKey string, timeout time.Duration) (*SystemStatus, error) {
	config := starr.New(apiKey, baseURL, timeout)

	switch variant {
	case Sonarr:
		status, err := sonarr.New(config).GetSystemStatusContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Sonarr: %w", err)
		}
		return &SystemStatus{AppName: status.AppName, Version: status.Version}, nil
	case Radarr:
		status, err := radarr.New(config).GetSystemStatusContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Radarr: %w", err)
		}
		return &SystemStatus{AppName: status.AppName, Version: status.Version}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
	}
}
