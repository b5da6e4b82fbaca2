package importer

import "github.com/s0up4200/arrsync/arr"

// Decision is the outcome of classifying an import candidate.
type Decision int

const (
	// Accepted candidates have no rejections and are sent for import.
	Accepted Decision = iota
	// Rejected candidates carry at least one rejection and are eligible for cleanup.
	Rejected
)

func (d Decision) String() string {
	if d == Accepted {
		return "accepted"
	}
	return "rejected"
}

// Classify accepts a candidate exactly when the server attached no rejections.
// The variant association is not checked here; a candidate without one fails
// when its file entry is built.
func Classify(candidate arr.ImportCandidate) Decision {
	if len(candidate.Rejections) == 0 {
		return Accepted
	}
	return Rejected
}
