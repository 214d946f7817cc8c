package history

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"mvdan.cc/sh/v3/syntax"
)

// SelfInvocationFilter rejects history lines that merely reflect the
// current process's own command-line execution. It is a substring
// check against the reconstructed argument vector, the program
// basename, and the program stem; deliberately not a structural parse
// of the line.
type SelfInvocationFilter struct {
	patterns []string
}

// NewSelfInvocationFilter builds the filter from an explicit argument
// vector, typically os.Args. A nil or empty argv yields a filter that
// matches nothing.
func NewSelfInvocationFilter(argv []string) *SelfInvocationFilter {
	if len(argv) == 0 {
		return &SelfInvocationFilter{}
	}

	base := filepath.Base(argv[0])
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	patterns := []string{quoteArgv(argv), base, stem}
	return &SelfInvocationFilter{
		patterns: lo.Uniq(lo.Compact(patterns)),
	}
}

// Matches reports whether the candidate history line looks like an
// invocation of this very tool.
func (f *SelfInvocationFilter) Matches(line string) bool {
	for _, pattern := range f.patterns {
		if strings.Contains(line, pattern) {
			return true
		}
	}
	return false
}

// quoteArgv reconstructs the argument vector the way a shell history
// line would record it, quoting arguments that need it.
func quoteArgv(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			q = arg
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}
