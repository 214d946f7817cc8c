package menu

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/i7mada249/tnm/internal/appupdate"
	"github.com/i7mada249/tnm/internal/core"
	"github.com/i7mada249/tnm/internal/session"
	"github.com/i7mada249/tnm/internal/styles"
)

// UpdateFlow runs the gated self-update: confirm, detect the latest
// release, apply it. Shared by the menu's [r] action and `tnm update`.
func UpdateFlow(ctx context.Context, version string, updater appupdate.Updater, prompter session.Prompter, out io.Writer, st styles.Styles, logger *zap.Logger) error {
	fmt.Fprintf(out, "This will fetch the latest tnm release from https://github.com/%s and replace the running binary.\n", appupdate.Repo)
	ok, err := prompter.Confirm("Continue and update? [y/N]: ")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Cancelled.")
		return session.ErrCancelled
	}

	release, available, err := appupdate.CheckForUpdate(ctx, version, updater, logger)
	if err != nil {
		return err
	}
	if !available {
		fmt.Fprintln(out, "Already running the latest version.")
		return nil
	}

	fmt.Fprintln(out, st.Notice("Updating to "+release.Version()+"..."))
	if err := appupdate.Apply(ctx, release, updater, logger); err != nil {
		return err
	}
	fmt.Fprintln(out, st.Success("Update completed. Restart tnm to use the new version."))
	return nil
}

// UninstallFlow removes the default user install locations after a
// confirmation gate. Shared by the menu's [u] action and
// `tnm uninstall`.
func UninstallFlow(prompter session.Prompter, out io.Writer, st styles.Styles) error {
	home := core.HomeDir()
	targets := []string{
		filepath.Join(home, ".local", "share", "tnm"),
		filepath.Join(home, ".local", "bin", "tnm"),
		core.ConfigDir(),
	}

	fmt.Fprintln(out, "This will uninstall tnm from the default user locations:")
	for _, target := range targets {
		fmt.Fprintln(out, "  - "+target)
	}

	ok, err := prompter.Confirm("Are you sure you want to continue? [y/N]: ")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Cancelled.")
		return session.ErrCancelled
	}

	var failed bool
	for _, target := range targets {
		if err := os.RemoveAll(target); err != nil {
			failed = true
			fmt.Fprintln(out, st.Error(fmt.Sprintf("Failed to remove %s: %v", target, err)))
		}
	}
	if failed {
		return fmt.Errorf("uninstall finished with errors")
	}

	fmt.Fprintln(out, st.Success("Uninstall completed."))
	return nil
}
