package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/i7mada249/tnm/internal/config"
	"github.com/i7mada249/tnm/internal/core"
	"github.com/i7mada249/tnm/internal/registry"
	"github.com/i7mada249/tnm/internal/session"
	"github.com/i7mada249/tnm/internal/styles"
)

// captureStdout captures stdout during the execution of fn and returns the captured output
func captureStdout(fn func()) string {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func newTestApp(t *testing.T) *app {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	core.ResetPaths()
	t.Cleanup(core.ResetPaths)

	return &app{
		settings: config.Default(),
		logger:   zap.NewNop(),
		styles:   styles.New(false),
		registry: registry.New(core.GroupsFile(), zap.NewNop()),
		prompter: session.NewStdPrompter(strings.NewReader(""), os.Stderr),
	}
}

func execute(t *testing.T, app *app, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd(app)
	root.SetArgs(args)
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	var err error
	out := captureStdout(func() {
		err = root.Execute()
	})
	return out, err
}

func TestNewThenListCommand(t *testing.T) {
	app := newTestApp(t)
	target := filepath.Join(t.TempDir(), "notes.md")

	out, err := execute(t, app, "new", "work", target)
	require.NoError(t, err)
	assert.Contains(t, out, "saved.")

	out, err = execute(t, app, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "work")
	assert.Contains(t, out, target)
}

func TestListWithoutGroups(t *testing.T) {
	app := newTestApp(t)

	out, err := execute(t, app, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No groups defined yet.")
}

func TestNewExistingGroupWithYesOverwrites(t *testing.T) {
	app := newTestApp(t)
	first := filepath.Join(t.TempDir(), "first.md")
	second := filepath.Join(t.TempDir(), "second.md")

	_, err := execute(t, app, "new", "work", first)
	require.NoError(t, err)
	_, err = execute(t, app, "new", "work", second, "--yes")
	require.NoError(t, err)

	path, ok := app.registry.Resolve("work")
	require.True(t, ok)
	assert.Equal(t, second, path)
}

func TestNewExistingGroupDeclinedKeepsMapping(t *testing.T) {
	app := newTestApp(t)
	first := filepath.Join(t.TempDir(), "first.md")

	_, err := execute(t, app, "new", "work", first)
	require.NoError(t, err)

	// The exhausted prompter cancels the overwrite confirmation.
	out, err := execute(t, app, "new", "work", filepath.Join(t.TempDir(), "second.md"))
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")

	path, _ := app.registry.Resolve("work")
	assert.Equal(t, first, path)
}

func TestDeleteCommand(t *testing.T) {
	app := newTestApp(t)
	target := filepath.Join(t.TempDir(), "notes.md")

	_, err := execute(t, app, "new", "work", target)
	require.NoError(t, err)

	out, err := execute(t, app, "delete", "work", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "removed.")

	_, ok := app.registry.Resolve("work")
	assert.False(t, ok)
}

func TestDeleteUnknownGroupSuggests(t *testing.T) {
	app := newTestApp(t)
	_, err := execute(t, app, "new", "notes", filepath.Join(t.TempDir(), "n.md"))
	require.NoError(t, err)

	out, err := execute(t, app, "delete", "ntoes", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "not found")
	assert.Contains(t, out, "Did you mean 'notes'?")
}

func TestAddDryRunWithExplicitCommand(t *testing.T) {
	app := newTestApp(t)
	app.prompter = session.NewStdPrompter(strings.NewReader("my title\nmy description\n"), os.Stderr)

	target := filepath.Join(t.TempDir(), "notes.md")
	_, err := execute(t, app, "new", "work", target)
	require.NoError(t, err)

	out, err := execute(t, app, "add", "work", "--command", "make test", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "--- dry-run output ---")
	assert.Contains(t, out, "```bash\nmake test\n```")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Empty(t, data, "dry-run must never write to the target file")
}

func TestAddCancelledIsSilentSuccess(t *testing.T) {
	app := newTestApp(t)

	// Exhausted prompter cancels at the title prompt.
	_, err := execute(t, app, "add", "work", "--command", "ls")
	assert.NoError(t, err)
}

func TestGatedPrompterSkipsConfirmations(t *testing.T) {
	app := newTestApp(t)

	ok, err := app.gatedPrompter(true).Confirm("really? ")
	require.NoError(t, err)
	assert.True(t, ok)
}
