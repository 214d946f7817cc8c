// Package session drives one append operation: resolve the group
// path, obtain the command(s), collect metadata, render the entry, and
// either display it or append it to the group file.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/i7mada249/tnm/internal/entry"
	"github.com/i7mada249/tnm/internal/history"
	"github.com/i7mada249/tnm/internal/registry"
	"github.com/i7mada249/tnm/internal/styles"
)

// ErrCancelled marks a user cancellation: empty required input, a
// declined confirmation, or an interrupt during a prompt. Callers
// treat it as a clean, silent return, never as a failure.
var ErrCancelled = errors.New("cancelled")

type Session struct {
	Registry  *registry.Registry
	Extractor *history.Extractor
	Prompter  Prompter
	Out       io.Writer
	Styles    styles.Styles
	Logger    *zap.Logger
	// NotesDir is where unmapped group names get their auto-created
	// default file, <NotesDir>/<name>.md.
	NotesDir string
}

// AddOptions selects how the command(s) for the new entry are
// acquired.
type AddOptions struct {
	Group string
	// Command, when non-empty, skips history extraction entirely.
	Command string
	// LastN > 0 imports the last N commands as one session entry.
	// Zero or negative means no import was requested.
	LastN int
	// DryRun renders the entry and displays it without writing.
	DryRun bool
}

// Add appends one entry to the resolved group file. Cancellations
// return ErrCancelled; file I/O failures come back as ordinary errors
// for the caller to report. Nothing in here panics.
func (s *Session) Add(ctx context.Context, opts AddOptions) error {
	target, err := s.resolveGroup(opts.Group)
	if err != nil {
		return err
	}

	commands, err := s.acquireCommands(ctx, opts)
	if err != nil {
		return err
	}

	title, err := s.Prompter.Input("Title: ")
	if err != nil {
		return err
	}
	description, err := s.Prompter.Input("Description: ")
	if err != nil {
		return err
	}
	if title == "" {
		title = fmt.Sprintf("(no title - %s)", opts.Group)
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}

	var ent entry.Entry
	if opts.LastN > 0 {
		ent = entry.NewSession(title, commands, description, cwd)
	} else {
		ent = entry.New(title, commands[0], description, cwd)
	}

	if opts.DryRun {
		fmt.Fprintln(s.Out, s.Styles.Notice("\n--- dry-run output ---\n"))
		fmt.Fprintln(s.Out, ent.Render())
		return nil
	}

	if err := appendToFile(target, ent.Render()); err != nil {
		s.Logger.Warn("failed to append entry", zap.String("path", target), zap.Error(err))
		return fmt.Errorf("failed to write to %s: %w", target, err)
	}

	fmt.Fprintln(s.Out, s.Styles.Success("Saved to "+target))
	return nil
}

// resolveGroup returns the target file for a group name, auto-creating
// a default mapping under NotesDir for unmapped names. A mapping saved
// here is not rolled back if the append later fails; retrying the add
// recovers.
func (s *Session) resolveGroup(name string) (string, error) {
	if path, ok := s.Registry.Resolve(name); ok {
		return path, nil
	}

	defaultPath := filepath.Join(s.NotesDir, name+".md")
	if err := s.Registry.Create(name, defaultPath, false); err != nil {
		return "", fmt.Errorf("group %q is not mapped and a default mapping could not be created: %w", name, err)
	}

	fmt.Fprintln(s.Out, s.Styles.Notice(fmt.Sprintf("Group %q was not mapped yet. Using default path: %s", name, defaultPath)))
	return defaultPath, nil
}

func (s *Session) acquireCommands(ctx context.Context, opts AddOptions) ([]string, error) {
	if opts.Command != "" {
		return []string{opts.Command}, nil
	}

	if opts.LastN > 0 {
		commands := s.Extractor.LastN(opts.LastN)
		if len(commands) == 0 {
			return nil, fmt.Errorf("no history commands survived filtering; nothing to import")
		}
		fmt.Fprintln(s.Out, s.Styles.Dim(fmt.Sprintf("Importing %d command(s) from history.", len(commands))))
		return commands, nil
	}

	if command, ok := s.Extractor.LastCommand(ctx); ok {
		fmt.Fprintln(s.Out, "Last command: "+s.Styles.GroupName(command))
		return []string{command}, nil
	}

	// Extraction exhausted. The operator types the command; an empty
	// answer cancels the whole operation.
	fmt.Fprintln(s.Out, s.Styles.Notice("Couldn't fetch the last command from your shell."))
	command, err := s.Prompter.Input("Enter the command manually (empty cancels): ")
	if err != nil {
		return nil, err
	}
	if command == "" {
		return nil, ErrCancelled
	}
	return []string{command}, nil
}

// appendToFile opens the target in append-or-create mode so existing
// entries are never truncated.
func appendToFile(path string, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(text)
	return err
}
