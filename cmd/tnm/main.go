package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/i7mada249/tnm/internal/appupdate"
	"github.com/i7mada249/tnm/internal/config"
	"github.com/i7mada249/tnm/internal/core"
	"github.com/i7mada249/tnm/internal/history"
	"github.com/i7mada249/tnm/internal/menu"
	"github.com/i7mada249/tnm/internal/registry"
	"github.com/i7mada249/tnm/internal/session"
	"github.com/i7mada249/tnm/internal/styles"
)

var BUILD_VERSION = "dev"

func main() {
	settings, settingsErr := config.Load(core.SettingsFile())

	logger, err := initializeLogger(settings)
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync() // Flush any buffered log entries

	if settingsErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", settingsErr)
		logger.Warn("settings file unusable", zap.Error(settingsErr))
	}

	logger.Info("-------- new tnm invocation --------", zap.Any("args", os.Args))

	// An interrupt at any prompt is a clean cancellation, not a crash.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	go func() {
		<-interrupts
		fmt.Fprintln(os.Stderr)
		os.Exit(0)
	}()

	app := &app{
		settings: settings,
		logger:   logger,
		styles:   styles.New(styles.ColorEnabled(settings.Color)),
		registry: registry.New(core.GroupsFile(), logger),
		prompter: session.NewStdPrompter(os.Stdin, os.Stdout),
	}

	if err := newRootCmd(app).Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

type app struct {
	settings config.Settings
	logger   *zap.Logger
	styles   styles.Styles
	registry *registry.Registry
	prompter session.Prompter
}

// extractor builds the history extractor for this invocation. $HISTFILE
// takes priority over the settings override, and both are tried before
// the shell-specific default.
func (a *app) extractor() *history.Extractor {
	histFile := os.Getenv("HISTFILE")
	if histFile == "" {
		histFile = a.settings.HistFile
	}
	return history.NewExtractor(history.Options{
		Shell:    a.settings.Shell,
		HistFile: histFile,
		Argv:     os.Args,
		Logger:   a.logger,
	})
}

func (a *app) notesDir() string {
	if a.settings.NotesDir != "" {
		return core.ExpandUser(a.settings.NotesDir)
	}
	return core.NotesDir()
}

// reportErr prints a failure for the operator. Cancellations are
// silent and never count as failures.
func (a *app) reportErr(err error) error {
	if err == nil || errors.Is(err, session.ErrCancelled) {
		return nil
	}
	fmt.Fprintln(os.Stderr, a.styles.Error(err.Error()))
	return err
}

func initializeLogger(settings config.Settings) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(settings.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = zap.NewAtomicLevelAt(level)
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}

	return loggerConfig.Build()
}

func newRootCmd(app *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tnm",
		Short:         "tnm - append your last shell command to a markdown log",
		Version:       BUILD_VERSION,
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `tnm (Terminal Notes Manager) captures the most recently executed
shell command together with a title and description, and appends it as
a markdown entry to a named log file ("group").`,
	}

	rootCmd.AddCommand(newNewCmd(app))
	rootCmd.AddCommand(newAddCmd(app))
	rootCmd.AddCommand(newListCmd(app))
	rootCmd.AddCommand(newDeleteCmd(app))
	rootCmd.AddCommand(newShellCmd(app))
	rootCmd.AddCommand(newUpdateCmd(app))
	rootCmd.AddCommand(newUninstallCmd(app))

	return rootCmd
}

// autoYesPrompter skips confirmations while leaving free-form input
// prompts intact. Used by --yes.
type autoYesPrompter struct {
	session.Prompter
}

func (p autoYesPrompter) Confirm(prompt string) (bool, error) {
	return true, nil
}

func (a *app) gatedPrompter(assumeYes bool) session.Prompter {
	if assumeYes {
		return autoYesPrompter{a.prompter}
	}
	return a.prompter
}

func newNewCmd(app *app) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "new NAME PATH",
		Short: "Create a new group mapping",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]
			prompter := app.gatedPrompter(assumeYes)

			if _, exists := app.registry.Resolve(name); exists {
				ok, err := prompter.Confirm(fmt.Sprintf("Group '%s' already exists. Overwrite? [y/N]: ", name))
				if err != nil || !ok {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			if err := app.registry.Create(name, path, true); err != nil {
				return app.reportErr(fmt.Errorf("failed to save group configuration: %w", err))
			}
			fmt.Printf("Group '%s' -> %s saved.\n", app.styles.GroupName(name), path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "overwrite without asking")
	return cmd
}

func newAddCmd(app *app) *cobra.Command {
	var (
		lastN    int
		override string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Append the last command (or last N commands) to a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &session.Session{
				Registry:  app.registry,
				Extractor: app.extractor(),
				Prompter:  app.prompter,
				Out:       os.Stdout,
				Styles:    app.styles,
				Logger:    app.logger,
				NotesDir:  app.notesDir(),
			}

			err := s.Add(cmd.Context(), session.AddOptions{
				Group:   args[0],
				Command: override,
				LastN:   lastN,
				DryRun:  dryRun,
			})
			return app.reportErr(err)
		},
	}

	cmd.Flags().IntVar(&lastN, "last", 0, "import the last N commands as one session entry")
	cmd.Flags().StringVar(&override, "command", "", "record this command instead of querying history")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be written without writing")
	return cmd
}

func newListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			groups := app.registry.Load()
			if len(groups) == 0 {
				fmt.Println("No groups defined yet. Create one with: tnm new NAME PATH")
				return nil
			}

			fmt.Println(app.styles.Heading("Defined groups:"))
			for _, name := range app.registry.Names() {
				fmt.Printf("  %s -> %s\n", app.styles.GroupName(name), app.styles.Path(groups[name]))
			}
			return nil
		},
	}
}

func newDeleteCmd(app *app) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Remove a group mapping (never deletes the markdown file)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if _, exists := app.registry.Resolve(name); !exists {
				msg := fmt.Sprintf("Group '%s' not found.", name)
				if suggestion := menu.Suggest(app.registry.Names(), name); suggestion != "" {
					msg += fmt.Sprintf(" Did you mean '%s'?", suggestion)
				}
				fmt.Println(msg)
				return nil
			}

			prompter := app.gatedPrompter(assumeYes)
			ok, err := prompter.Confirm(fmt.Sprintf("Delete group '%s' (will not delete the file) ? [y/N]: ", name))
			if err != nil || !ok {
				fmt.Println("Cancelled.")
				return nil
			}

			if err := app.registry.Delete(name); err != nil {
				return app.reportErr(fmt.Errorf("failed to update groups file: %w", err))
			}
			fmt.Printf("Group '%s' removed.\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "delete without asking")
	return cmd
}

func newShellCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := &menu.Menu{
				Registry: app.registry,
				Prompter: app.prompter,
				Out:      os.Stdout,
				Styles:   app.styles,
				Logger:   app.logger,
				Version:  BUILD_VERSION,
				Updater:  appupdate.DefaultUpdater{},
			}
			return m.Run(cmd.Context())
		},
	}
}

func newUpdateCmd(app *app) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update tnm to the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := menu.UpdateFlow(
				cmd.Context(),
				BUILD_VERSION,
				appupdate.DefaultUpdater{},
				app.gatedPrompter(assumeYes),
				os.Stdout,
				app.styles,
				app.logger,
			)
			return app.reportErr(err)
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "update without asking")
	return cmd
}

func newUninstallCmd(app *app) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove tnm from the default user install locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := menu.UninstallFlow(app.gatedPrompter(assumeYes), os.Stdout, app.styles)
			return app.reportErr(err)
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "uninstall without asking")
	return cmd
}
