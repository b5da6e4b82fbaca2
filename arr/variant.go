package arr

import (
	"fmt"
	"strings"
)

// Variant identifies the flavour of arr server being synchronised.
type Variant int

const (
	// Radarr manages movies; candidates reference a movie.
	Radarr Variant = iota + 1
	// Sonarr manages series; candidates reference a series and its episodes.
	Sonarr
)

// ParseVariant converts a configured software name into a Variant.
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "radarr":
		return Radarr, nil
	case "sonarr":
		return Sonarr, nil
	default:
		return 0, fmt.Errorf("%w: %q (must be 'sonarr' or 'radarr')", ErrUnknownVariant, name)
	}
}

func (v Variant) String() string {
	switch v {
	case Radarr:
		return "radarr"
	case Sonarr:
		return "sonarr"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}
