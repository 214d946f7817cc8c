package menu

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/i7mada249/tnm/internal/core"
	"github.com/i7mada249/tnm/internal/entry"
	"github.com/i7mada249/tnm/internal/registry"
	"github.com/i7mada249/tnm/internal/session"
	"github.com/i7mada249/tnm/internal/styles"
)

// scriptPrompter replays canned answers; once exhausted every prompt
// cancels, mirroring end-of-input.
type scriptPrompter struct {
	answers []string
}

func (p *scriptPrompter) next() (string, bool) {
	if len(p.answers) == 0 {
		return "", false
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, true
}

func (p *scriptPrompter) Input(prompt string) (string, error) {
	answer, ok := p.next()
	if !ok {
		return "", session.ErrCancelled
	}
	return answer, nil
}

func (p *scriptPrompter) Confirm(prompt string) (bool, error) {
	answer, ok := p.next()
	if !ok {
		return false, session.ErrCancelled
	}
	return answer == "y" || answer == "yes", nil
}

func newTestMenu(t *testing.T, answers ...string) (*Menu, *bytes.Buffer) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	core.ResetPaths()
	t.Cleanup(core.ResetPaths)

	out := &bytes.Buffer{}
	return &Menu{
		Registry: registry.New(core.GroupsFile(), zap.NewNop()),
		Prompter: &scriptPrompter{answers: answers},
		Out:      out,
		Styles:   styles.New(false),
		Logger:   zap.NewNop(),
		Version:  "dev",
	}, out
}

func TestRunQuits(t *testing.T) {
	m, out := newTestMenu(t, "q")
	require.NoError(t, m.Run(context.Background()))
	assert.Contains(t, out.String(), "Goodbye.")
}

func TestRunEndOfInputQuitsCleanly(t *testing.T) {
	m, out := newTestMenu(t)
	require.NoError(t, m.Run(context.Background()))
	assert.Contains(t, out.String(), "Goodbye.")
}

func TestAddGroupWithDefaultPath(t *testing.T) {
	m, out := newTestMenu(t, "notes", "")
	m.addGroup()

	assert.Contains(t, out.String(), "Using default path: ~/tnm/notes.md")
	path, ok := m.Registry.Resolve("notes")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(core.HomeDir(), "tnm", "notes.md"), path)
}

func TestAddGroupExistingDeclinedOverwrite(t *testing.T) {
	m, out := newTestMenu(t, "notes", "/tmp/other.md", "n")
	require.NoError(t, m.Registry.Create("notes", "/tmp/original.md", false))

	m.addGroup()

	assert.Contains(t, out.String(), "Cancelled.")
	path, _ := m.Registry.Resolve("notes")
	assert.Equal(t, "/tmp/original.md", path)
}

func TestAddGroupEmptyNameCancels(t *testing.T) {
	m, out := newTestMenu(t, "")
	m.addGroup()
	assert.Contains(t, out.String(), "Cancelled - empty name.")
	assert.Empty(t, m.Registry.Names())
}

func TestDeleteGroup(t *testing.T) {
	m, out := newTestMenu(t, "notes", "y")
	require.NoError(t, m.Registry.Create("notes", "/tmp/notes.md", false))

	m.deleteGroup()

	assert.Contains(t, out.String(), "Group 'notes' removed.")
	_, ok := m.Registry.Resolve("notes")
	assert.False(t, ok)
}

func TestDeleteGroupSuggestsCloseName(t *testing.T) {
	m, out := newTestMenu(t, "ntoes")
	require.NoError(t, m.Registry.Create("notes", "/tmp/notes.md", false))

	m.deleteGroup()

	assert.Contains(t, out.String(), "Group 'ntoes' not found.")
	assert.Contains(t, out.String(), "Did you mean 'notes'?")
}

func TestSuggest(t *testing.T) {
	names := []string{"notes", "work", "scratch"}
	assert.Equal(t, "notes", Suggest(names, "nots"))
	assert.Equal(t, "", Suggest(names, "zzz"))
	assert.Equal(t, "", Suggest(nil, "anything"))
}

func writeEntries(t *testing.T, path string, count int) {
	t.Helper()
	var b strings.Builder
	for i := 1; i <= count; i++ {
		e := entry.Entry{
			Title:     fmt.Sprintf("entry-%02d", i),
			Timestamp: time.Now().Add(time.Duration(i-count) * time.Minute),
			Dir:       "/tmp",
			Commands:  []string{fmt.Sprintf("cmd-%02d", i)},
		}
		b.WriteString(e.Render())
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
}

func TestViewHistoryShowsMetadataForEveryRecentEntry(t *testing.T) {
	m, out := newTestMenu(t, "1", "")
	target := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, m.Registry.Create("notes", target, false))
	writeEntries(t, target, 12)

	m.viewHistory()

	text := out.String()
	assert.Contains(t, text, "Last 10 entries for group 'notes':")

	// Oldest two fall outside the window.
	assert.NotContains(t, text, "entry-01")
	assert.NotContains(t, text, "entry-02")

	// Newest first, and every listed entry carries its saved time.
	first := strings.Index(text, "entry-12")
	last := strings.Index(text, "entry-03")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, last, first)
	assert.Equal(t, 10, strings.Count(text, "(saved "))
}

func TestViewHistoryEmptyFile(t *testing.T) {
	m, out := newTestMenu(t, "1", "")
	target := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, m.Registry.Create("notes", target, false))

	m.viewHistory()

	assert.Contains(t, out.String(), "No entries found in the file.")
}

func TestViewHistoryMissingFile(t *testing.T) {
	m, out := newTestMenu(t, "1")
	require.NoError(t, m.Registry.Save(map[string]string{"notes": filepath.Join(t.TempDir(), "gone.md")}))

	m.viewHistory()

	assert.Contains(t, out.String(), "does not exist or has no entries")
}

func TestViewHistoryInvalidSelection(t *testing.T) {
	m, out := newTestMenu(t, "99")
	target := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, m.Registry.Create("notes", target, false))

	m.viewHistory()

	assert.Contains(t, out.String(), "Invalid selection.")
}

func TestViewHistoryDrillDown(t *testing.T) {
	m, out := newTestMenu(t, "1", "1", "", "")
	target := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, m.Registry.Create("notes", target, false))
	writeEntries(t, target, 2)

	m.viewHistory()

	// Entry 1 in the newest-first listing is entry-02.
	assert.Contains(t, out.String(), "```bash\ncmd-02\n```")
}
