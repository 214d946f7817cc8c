// Package entry renders timestamped markdown blocks for captured shell
// commands. Rendering is pure; appending to group files happens in the
// session package.
package entry

import (
	"strings"
	"time"
)

// Separator delimits entries inside a group file. Every rendered entry
// ends with it, so splitting a file on the separator losslessly
// recovers entry boundaries.
const Separator = "\n---\n"

// TimestampLayout is the local datetime format used in the metadata
// line, second precision.
const TimestampLayout = "2006-01-02 15:04:05"

// Entry is one record of one or more shell commands. It only exists as
// a value until rendered; group files store the rendered text.
type Entry struct {
	Title       string
	Timestamp   time.Time
	Dir         string
	Commands    []string
	Description string
	// Session marks a batch import; it labels the command block even
	// when the batch happened to contain a single command.
	Session bool
}

// New builds a single-command entry stamped with the current time.
func New(title string, command string, description string, dir string) Entry {
	return Entry{
		Title:       title,
		Timestamp:   time.Now(),
		Dir:         dir,
		Commands:    []string{command},
		Description: description,
	}
}

// NewSession builds an entry holding a batch of imported commands in
// chronological order.
func NewSession(title string, commands []string, description string, dir string) Entry {
	return Entry{
		Title:       title,
		Timestamp:   time.Now(),
		Dir:         dir,
		Commands:    commands,
		Description: description,
		Session:     true,
	}
}

// Render produces the markdown block for the entry. Sections are
// separated by a blank line and the output always ends with the
// separator followed by a single trailing newline. An empty
// description still renders as its own (empty) line.
func (e Entry) Render() string {
	var b strings.Builder

	b.WriteString("# " + e.Title + "\n")
	b.WriteString("\n")
	b.WriteString("*Saved: " + e.Timestamp.Format(TimestampLayout) + " — cwd: " + e.Dir + "*\n")
	b.WriteString("\n")
	if e.Session {
		b.WriteString("Session commands:\n")
	}
	b.WriteString("```bash\n")
	for _, command := range e.Commands {
		b.WriteString(command + "\n")
	}
	b.WriteString("```\n")
	b.WriteString("\n")
	b.WriteString(e.Description + "\n")
	b.WriteString("\n")
	b.WriteString("---\n")

	return b.String()
}

// Split recovers entry fragments from a group file's contents.
// Fragments are trimmed and empty leading/trailing pieces discarded.
func Split(text string) []string {
	var fragments []string
	for _, part := range strings.Split(text, Separator) {
		part = strings.TrimSpace(part)
		if part != "" {
			fragments = append(fragments, part)
		}
	}
	return fragments
}

// Meta is the displayable summary of a stored entry fragment.
type Meta struct {
	Title   string
	SavedAt time.Time
	HasTime bool
	Command string
}

// ParseMeta extracts the title, saved timestamp, and first command from
// a fragment produced by Split. Fragments written by other tools
// degrade gracefully: missing pieces stay zero-valued.
func ParseMeta(fragment string) Meta {
	meta := Meta{Title: "(no title)"}

	lines := strings.Split(fragment, "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			meta.Title = strings.TrimSpace(strings.TrimPrefix(trimmed, "#"))
			break
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "*Saved: ") {
			stamp := strings.TrimPrefix(trimmed, "*Saved: ")
			if idx := strings.Index(stamp, " — "); idx >= 0 {
				stamp = stamp[:idx]
			}
			if at, err := time.ParseInLocation(TimestampLayout, stamp, time.Local); err == nil {
				meta.SavedAt = at
				meta.HasTime = true
			}
			break
		}
	}

	inFence := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inFence {
				break
			}
			inFence = true
			continue
		}
		if inFence && trimmed != "" && trimmed != "Session commands:" {
			meta.Command = trimmed
			break
		}
	}

	return meta
}
