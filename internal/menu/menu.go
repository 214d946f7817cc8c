// Package menu implements the interactive terminal loop: it lists
// groups and dispatches add/delete/view/update/uninstall actions,
// calling the registry and history packages directly.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"github.com/i7mada249/tnm/internal/appupdate"
	"github.com/i7mada249/tnm/internal/registry"
	"github.com/i7mada249/tnm/internal/session"
	"github.com/i7mada249/tnm/internal/styles"
)

const banner = `
░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░
░░░████████╗███╗░░██╗███╗░░░███╗░░░░
░░░╚══██╔══╝████╗░██║████╗░████║░░░░
░░░░░░██║░░░██╔██╗██║██╔████╔██║░░░░
░░░░░░██║░░░██║╚████║██║╚██╔╝██║░░░░
░░░░░░██║░░░██║░╚███║██║░╚═╝░██║░░░░
░░░░░░╚═╝░░░╚═╝░░╚══╝╚═╝░░░░░╚═╝░░░░
░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░
░░░░░  Terminal Notes Manager ░░░░░░
░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░
`

const helpText = `Main commands:
  tnm new NAME PATH      Create a new group mapping
  tnm add NAME           Add the last command to a group
  tnm add NAME --last N  Import the last N commands as one entry
  tnm list               List groups
  tnm delete NAME        Remove a group mapping
  tnm shell              This interactive menu
  --dry-run              Show what would be written without writing
  --yes                  Skip confirmations where applicable
`

type Menu struct {
	Registry *registry.Registry
	Prompter session.Prompter
	Out      io.Writer
	Styles   styles.Styles
	Logger   *zap.Logger
	Version  string
	Updater  appupdate.Updater
}

// Run drives the menu loop until the operator quits or input ends.
// Cancellations inside an action return to the menu; they are never
// reported as failures.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.clear()
		fmt.Fprintln(m.Out, m.Styles.Banner(banner))
		m.listGroups()

		fmt.Fprintln(m.Out, "\nOptions:")
		fmt.Fprintln(m.Out, "  [a] Add group")
		fmt.Fprintln(m.Out, "  [d] Delete group")
		fmt.Fprintln(m.Out, "  [l] List groups")
		fmt.Fprintln(m.Out, "  [v] View group history")
		fmt.Fprintln(m.Out, "  [r] Update tnm from repo")
		fmt.Fprintln(m.Out, "  [u] Uninstall tnm")
		fmt.Fprintln(m.Out, "  [h] Help (show main commands)")
		fmt.Fprintln(m.Out, "  [q] Quit")

		choice, err := m.Prompter.Input(m.Styles.Prompt("\nChoose an option: "))
		if err != nil {
			fmt.Fprintln(m.Out, "Goodbye.")
			return nil
		}

		switch choice {
		case "a":
			m.addGroup()
			m.pause()
		case "d":
			m.deleteGroup()
			m.pause()
		case "l":
			m.clear()
			m.listGroups()
			m.pause()
		case "v":
			m.clear()
			m.viewHistory()
			m.pause()
		case "r":
			m.clear()
			if err := UpdateFlow(ctx, m.Version, m.Updater, m.Prompter, m.Out, m.Styles, m.Logger); err != nil && !errors.Is(err, session.ErrCancelled) {
				fmt.Fprintln(m.Out, m.Styles.Error(err.Error()))
			}
			m.pause()
		case "u":
			m.clear()
			if err := UninstallFlow(m.Prompter, m.Out, m.Styles); err != nil && !errors.Is(err, session.ErrCancelled) {
				fmt.Fprintln(m.Out, m.Styles.Error(err.Error()))
			}
			m.pause()
		case "h":
			m.clear()
			fmt.Fprint(m.Out, helpText)
			m.pause()
		case "q":
			fmt.Fprintln(m.Out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(m.Out, "Unknown option.")
			m.pause()
		}
	}
}

func (m *Menu) clear() {
	fmt.Fprint(m.Out, "\033c")
}

func (m *Menu) pause() {
	_, _ = m.Prompter.Input("\nPress Enter to continue...")
}

func (m *Menu) listGroups() {
	names := m.Registry.Names()
	if len(names) == 0 {
		fmt.Fprintln(m.Out, "No groups defined yet.")
		return
	}

	groups := m.Registry.Load()
	fmt.Fprintln(m.Out, m.Styles.Heading("Defined groups:"))
	for _, name := range names {
		fmt.Fprintf(m.Out, "  - %s: %s\n", m.Styles.GroupName(name), m.Styles.Path(groups[name]))
	}
}

func (m *Menu) addGroup() {
	name, err := m.Prompter.Input("New group name: ")
	if err != nil || name == "" {
		fmt.Fprintln(m.Out, "Cancelled - empty name.")
		return
	}

	path, err := m.Prompter.Input("Path to markdown file (leave blank for default ~/tnm/<name>.md): ")
	if err != nil {
		return
	}
	if path == "" {
		path = "~/tnm/" + name + ".md"
		fmt.Fprintln(m.Out, "Using default path: "+path)
	}

	if _, exists := m.Registry.Resolve(name); exists {
		ok, err := m.Prompter.Confirm(fmt.Sprintf("Group '%s' exists. Overwrite mapping? [y/N]: ", name))
		if err != nil || !ok {
			fmt.Fprintln(m.Out, "Cancelled.")
			return
		}
	}

	if err := m.Registry.Create(name, path, true); err != nil {
		m.Logger.Warn("failed to save group", zap.String("name", name), zap.Error(err))
		fmt.Fprintln(m.Out, m.Styles.Error("Failed to save group configuration."))
		return
	}
	fmt.Fprintf(m.Out, "Group '%s' -> %s saved.\n", name, path)
}

func (m *Menu) deleteGroup() {
	name, err := m.Prompter.Input("Group name to delete: ")
	if err != nil || name == "" {
		fmt.Fprintln(m.Out, "Cancelled - empty name.")
		return
	}

	if _, exists := m.Registry.Resolve(name); !exists {
		fmt.Fprintf(m.Out, "Group '%s' not found.", name)
		if suggestion := Suggest(m.Registry.Names(), name); suggestion != "" {
			fmt.Fprintf(m.Out, " Did you mean '%s'?", suggestion)
		}
		fmt.Fprintln(m.Out)
		return
	}

	ok, err := m.Prompter.Confirm(fmt.Sprintf("Delete group '%s' (will not delete the file) ? [y/N]: ", name))
	if err != nil || !ok {
		fmt.Fprintln(m.Out, "Cancelled.")
		return
	}

	if err := m.Registry.Delete(name); err != nil {
		m.Logger.Warn("failed to delete group", zap.String("name", name), zap.Error(err))
		fmt.Fprintln(m.Out, m.Styles.Error("Failed to update groups file."))
		return
	}
	fmt.Fprintf(m.Out, "Group '%s' removed.\n", name)
}

// Suggest returns the closest existing group name for a miss, or the
// empty string when nothing matches.
func Suggest(names []string, input string) string {
	matches := fuzzy.Find(input, names)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
