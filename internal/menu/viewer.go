package menu

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/i7mada249/tnm/internal/core"
	"github.com/i7mada249/tnm/internal/entry"
)

// recentEntryLimit caps how many entries the viewer lists per group.
const recentEntryLimit = 10

// viewHistory lets the operator pick a group, lists its most recent
// entries newest-first with title and metadata for every entry, and
// drills into a full entry on request.
func (m *Menu) viewHistory() {
	names := m.Registry.Names()
	if len(names) == 0 {
		fmt.Fprintln(m.Out, "No groups defined yet.")
		return
	}

	groups := m.Registry.Load()
	fmt.Fprintln(m.Out, m.Styles.Heading("Choose a group to view history:"))
	for i, name := range names {
		fmt.Fprintf(m.Out, "  %d. %s -> %s\n", i+1, m.Styles.GroupName(name), m.Styles.Path(groups[name]))
	}

	selection, err := m.Prompter.Input("\nEnter number (or blank to cancel): ")
	if err != nil || selection == "" {
		return
	}
	index, err := strconv.Atoi(selection)
	if err != nil {
		fmt.Fprintln(m.Out, "Invalid input.")
		return
	}
	if index < 1 || index > len(names) {
		fmt.Fprintln(m.Out, "Invalid selection.")
		return
	}

	name := names[index-1]
	path := core.ExpandUser(groups[name])

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(m.Out, "History file '%s' does not exist or has no entries.\n", path)
		} else {
			fmt.Fprintln(m.Out, m.Styles.Error(fmt.Sprintf("Failed to read %s: %v", path, err)))
		}
		return
	}

	fragments := entry.Split(string(data))
	if len(fragments) == 0 {
		fmt.Fprintln(m.Out, "No entries found in the file.")
		return
	}

	// Newest entries sit at the end of the file; display newest first.
	if len(fragments) > recentEntryLimit {
		fragments = fragments[len(fragments)-recentEntryLimit:]
	}
	recent := lo.Reverse(fragments)

	fmt.Fprintf(m.Out, "\nLast %d entries for group '%s':\n\n", len(recent), name)
	for i, fragment := range recent {
		meta := entry.ParseMeta(fragment)
		saved := ""
		if meta.HasTime {
			saved = m.Styles.Dim(fmt.Sprintf("(saved %s)", humanize.Time(meta.SavedAt)))
		}
		fmt.Fprintf(m.Out, "  %d. %s %s\n", i+1, meta.Title, saved)
	}

	m.browseEntries(recent)
}

func (m *Menu) browseEntries(recent []string) {
	for {
		choice, err := m.Prompter.Input("\nEnter entry number to view (or blank to return): ")
		if err != nil || choice == "" {
			return
		}

		index, err := strconv.Atoi(choice)
		if err != nil {
			fmt.Fprintln(m.Out, "Invalid input")
			continue
		}
		if index < 1 || index > len(recent) {
			fmt.Fprintln(m.Out, "Invalid number")
			continue
		}

		fragment := recent[index-1]
		divider := strings.Repeat("=", 40)
		fmt.Fprintln(m.Out, "\n"+m.Styles.Dim(divider)+"\n")
		fmt.Fprintln(m.Out, fragment)
		fmt.Fprintln(m.Out, "\n"+m.Styles.Dim(divider)+"\n")

		answer, err := m.Prompter.Input("Press Enter to continue (or 'c' to copy the command): ")
		if err != nil {
			return
		}
		if strings.EqualFold(answer, "c") {
			m.copyCommand(fragment)
		}
	}
}

func (m *Menu) copyCommand(fragment string) {
	meta := entry.ParseMeta(fragment)
	if meta.Command == "" {
		fmt.Fprintln(m.Out, "No command found in this entry.")
		return
	}
	if err := clipboard.WriteAll(meta.Command); err != nil {
		fmt.Fprintln(m.Out, m.Styles.Error("Failed to copy to clipboard: "+err.Error()))
		return
	}
	fmt.Fprintln(m.Out, m.Styles.Success("Command copied to clipboard."))
}
