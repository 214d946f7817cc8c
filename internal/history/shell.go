package history

import (
	"context"
	"os/exec"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// lastFromShell spawns the configured shell in interactive mode and
// asks its history built-in for the most recent entry. The query is
// bounded by the extractor timeout; a timeout counts as a failed
// strategy, not an error.
func (e *Extractor) lastFromShell(ctx context.Context) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	// fc -ln -1 prints the last history line without its number.
	out, err := exec.CommandContext(ctx, e.shell, "-i", "-c", "fc -ln -1").Output()
	if err != nil {
		e.logger.Debug("shell history query failed", zap.String("shell", e.shell), zap.Error(err))
		return "", false
	}

	line := strings.TrimSpace(string(out))
	if line == "" || !isPrintable(line) {
		return "", false
	}

	// The shell may have already logged tnm's own invocation by the
	// time we query it, producing a false "last command."
	if e.filter.Matches(line) {
		e.logger.Debug("shell reported tnm's own invocation, falling back", zap.String("line", line))
		return "", false
	}

	return line, true
}

func isPrintable(line string) bool {
	for _, r := range line {
		if r != '\t' && !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
