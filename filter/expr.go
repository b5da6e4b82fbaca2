// Package filter compiles expressions that select which rejected import
// candidates may be deleted.
//
// Expressions use the expr language and see the candidate as variables:
//
//	Path, FolderName, Name   string
//	Size                     int64
//	Reasons, Types           []string
//
// along with the helpers hasReason(substr), hasType(type), includes(str, substr)
// and lower(str). Examples:
//
//	hasType("permanent") and not hasReason("sample")
//	includes(FolderName, "sample") or lower(Name) contains "sample"
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/arrsync/arr"
)

// Expression is a compiled delete filter
type Expression struct {
	program *vm.Program
	source  string
}

// Compile compiles source into an Expression that must evaluate to a bool.
func Compile(source string) (*Expression, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptyExpression
	}

	program, err := expr.Compile(source,
		expr.Env(candidateEnv(arr.ImportCandidate{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: source, Err: err}
	}

	return &Expression{
		program: program,
		source:  source,
	}, nil
}

// Match evaluates the expression against a candidate.
func (e *Expression) Match(candidate arr.ImportCandidate) (bool, error) {
	output, err := expr.Run(e.program, candidateEnv(candidate))
	if err != nil {
		return false, &EvaluationError{
			Expression: e.source,
			Path:       candidate.Path,
			Reason:     "runtime error",
			Err:        err,
		}
	}

	matched, ok := output.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: e.source,
			Path:       candidate.Path,
			Reason:     fmt.Sprintf("expression returned %T, not bool", output),
		}
	}
	return matched, nil
}

func (e *Expression) String() string {
	return e.source
}

func candidateEnv(candidate arr.ImportCandidate) map[string]any {
	reasons := make([]string, 0, len(candidate.Rejections))
	types := make([]string, 0, len(candidate.Rejections))
	for _, r := range candidate.Rejections {
		reasons = append(reasons, r.Reason)
		types = append(types, r.Type)
	}

	return map[string]any{
		"Path":       candidate.Path,
		"FolderName": candidate.FolderName,
		"Name":       candidate.Name,
		"Size":       candidate.Size,
		"Reasons":    reasons,
		"Types":      types,

		"hasReason": func(substr string) bool {
			for _, reason := range reasons {
				if strings.Contains(strings.ToLower(reason), strings.ToLower(substr)) {
					return true
				}
			}
			return false
		},
		"hasType": func(rejectionType string) bool {
			for _, t := range types {
				if strings.EqualFold(t, rejectionType) {
					return true
				}
			}
			return false
		},
		// contains is an expr operator and cannot be used as a function name.
		"includes": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"lower": strings.ToLower,
	}
}
