package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s0up4200/arrsync/arr"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		candidate arr.ImportCandidate
		expected  Decision
	}{
		{
			name:      "no rejections",
			candidate: arr.ImportCandidate{Movie: &arr.Reference{ID: 1}},
			expected:  Accepted,
		},
		{
			name:      "empty rejection list",
			candidate: arr.ImportCandidate{Rejections: []arr.Rejection{}},
			expected:  Accepted,
		},
		{
			name:      "no association is still accepted",
			candidate: arr.ImportCandidate{Path: "/downloads/unknown.mkv"},
			expected:  Accepted,
		},
		{
			name: "single rejection",
			candidate: arr.ImportCandidate{
				Rejections: []arr.Rejection{{Reason: "Unknown Movie", Type: "permanent"}},
			},
			expected: Rejected,
		},
		{
			name: "multiple rejections",
			candidate: arr.ImportCandidate{
				Rejections: []arr.Rejection{
					{Reason: "Not an upgrade", Type: "permanent"},
					{Reason: "Sample", Type: "temporary"},
				},
			},
			expected: Rejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.candidate))
		})
	}
}

func TestRejectionSummary(t *testing.T) {
	candidate := arr.ImportCandidate{
		Rejections: []arr.Rejection{
			{Reason: "Not an upgrade", Type: "permanent"},
			{Reason: "Sample", Type: "temporary"},
		},
	}

	assert.Equal(t, "Not an upgrade (permanent); Sample (temporary)", candidate.RejectionSummary())
	assert.Equal(t, "", arr.ImportCandidate{}.RejectionSummary())
}
