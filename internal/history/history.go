// Package history recovers recently executed commands from an
// interactive shell. It first asks the shell itself to report its last
// history line, then falls back to scanning likely history files,
// filtering out noise and tnm's own invocation.
package history

import (
	"context"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/i7mada249/tnm/internal/core"
)

// DefaultShellTimeout bounds the interactive shell history query so a
// misconfigured shell cannot hang the whole operation.
const DefaultShellTimeout = 3 * time.Second

// zsh extended history lines carry a ": <epoch>:<elapsed>;" prefix
// before the actual command.
var zshTimestampPrefix = regexp.MustCompile(`^:\s*\d+:\d+;`)

type Extractor struct {
	shell            string
	histFileOverride string
	filter           *SelfInvocationFilter
	timeout          time.Duration
	logger           *zap.Logger
}

type Options struct {
	// Shell is the user's interactive shell. Defaults to $SHELL, then
	// "bash".
	Shell string
	// HistFile overrides candidate history file discovery. When set it
	// is tried before the shell-specific default path.
	HistFile string
	// Argv is the current process's argument vector, used to reject
	// history lines that merely reflect tnm's own invocation.
	Argv []string
	// Timeout bounds the interactive shell query. Defaults to
	// DefaultShellTimeout.
	Timeout time.Duration
	Logger  *zap.Logger
}

func NewExtractor(opts Options) *Extractor {
	shell := opts.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "bash"
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultShellTimeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{
		shell:            shell,
		histFileOverride: opts.HistFile,
		filter:           NewSelfInvocationFilter(opts.Argv),
		timeout:          timeout,
		logger:           logger,
	}
}

// LastCommand returns the most recent command from the user's shell.
// It tries the interactive shell query first and falls back to history
// file scanning. The second return value is false when every strategy
// is exhausted; the caller must then prompt for manual entry rather
// than inventing a command.
func (e *Extractor) LastCommand(ctx context.Context) (string, bool) {
	if command, ok := e.lastFromShell(ctx); ok {
		return command, true
	}
	return e.lastFromFiles()
}

// LastN returns up to n recently executed commands in chronological
// order (oldest first), scanned from candidate history files. Only one
// file's results are ever used per call: a candidate that yields zero
// accepted lines falls through to the next, but partial results are
// never aggregated across files. An empty slice means no candidate
// yielded anything; that is not an error.
func (e *Extractor) LastN(n int) []string {
	if n <= 0 {
		return nil
	}

	for _, path := range e.candidateFiles() {
		accepted := e.scanFile(path, n)
		if len(accepted) > 0 {
			return lo.Reverse(accepted)
		}
	}

	return nil
}

func (e *Extractor) lastFromFiles() (string, bool) {
	for _, path := range e.candidateFiles() {
		if accepted := e.scanFile(path, 1); len(accepted) > 0 {
			return accepted[0], true
		}
	}
	return "", false
}

// candidateFiles returns history files in priority order: the explicit
// override first, then the default path for the configured shell. The
// first file yielding an accepted line wins, so this ordering decides
// which shell's history is used when several exist.
func (e *Extractor) candidateFiles() []string {
	var candidates []string
	if e.histFileOverride != "" {
		candidates = append(candidates, core.ExpandUser(e.histFileOverride))
	}
	if strings.HasSuffix(e.shell, "zsh") {
		candidates = append(candidates, core.ExpandUser("~/.zsh_history"))
	} else {
		candidates = append(candidates, core.ExpandUser("~/.bash_history"))
	}
	return candidates
}

// scanFile reads a history file from the end backward and collects up
// to limit accepted commands, newest first.
func (e *Extractor) scanFile(path string, limit int) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		e.logger.Debug("history file not readable", zap.String("path", path), zap.Error(err))
		return nil
	}

	var accepted []string
	lines := strings.Split(string(data), "\n")
	for i := len(lines) - 1; i >= 0 && len(accepted) < limit; i-- {
		if command, ok := e.acceptLine(lines[i]); ok {
			accepted = append(accepted, command)
		}
	}
	return accepted
}

// acceptLine applies the shared line filters: blank lines, lines of
// trimmed length <= 1, and self-invocations are rejected. A zsh
// extended-history timestamp prefix is stripped before the checks run
// against the command itself.
func (e *Extractor) acceptLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}

	trimmed = strings.TrimSpace(zshTimestampPrefix.ReplaceAllString(trimmed, ""))
	if len(trimmed) <= 1 {
		return "", false
	}
	if e.filter.Matches(trimmed) {
		return "", false
	}
	return trimmed, true
}
