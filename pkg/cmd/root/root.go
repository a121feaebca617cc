package root

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Paintersrp/astromark/internal/config"
	"github.com/Paintersrp/astromark/internal/constants"
	"github.com/Paintersrp/astromark/internal/logging"
	"github.com/Paintersrp/astromark/internal/state"
	"github.com/Paintersrp/astromark/internal/tui/session"
)

// Options are the resolved command line settings.
type Options struct {
	ConfigPath  string
	LogPath     string
	ResetConfig bool
	Files       []string
}

// NewCmdRoot builds the astromark command. Flags can also be set through
// ASTROMARK_* environment variables.
func NewCmdRoot(v *viper.Viper) *cobra.Command {
	if v == nil {
		v = viper.New()
	}
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:     "astromark [files...]",
		Short:   "A terminal markdown editor with a live preview.",
		Version: constants.Version,
		Long: heredoc.Doc(`
			Edit markdown documents side by side with their rendered preview.

			Keybindings, colors and editor preferences are read from a Lua script
			(config.lua) in the per-user configuration directory. It is created with
			commented defaults on first run.

			  astromark                      open the landing view
			  astromark notes/todo.md        open a document
			  astromark -c ./dev.lua a.md    use another configuration script
		`),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to resolve working directory: %w", err)
			}
			files, err := ResolveFileArgs(wd, args)
			if err != nil {
				return err
			}
			return Run(Options{
				ConfigPath:  v.GetString("config"),
				LogPath:     v.GetString("log"),
				ResetConfig: v.GetBool("reset-config"),
				Files:       files,
			})
		},
	}

	cmd.Flags().StringP("config", "c", "", "configuration script (default is <config dir>/config.lua)")
	cmd.Flags().BoolP("reset-config", "r", false, "overwrite the configuration script with the defaults")
	cmd.Flags().String("log", "", "log file (default is <config dir>/astromark.log)")

	for _, name := range []string{"config", "reset-config", "log"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			cobra.CheckErr(err)
		}
	}

	return cmd
}

// Prepare resolves the configuration directory and log file and builds the
// session state. Only an unusable configuration directory is fatal.
func Prepare(opts Options) (*state.State, error) {
	dir, err := config.GetOrCreateDir()
	if err != nil {
		return nil, err
	}

	logPath := opts.LogPath
	if logPath == "" {
		logPath = config.GetLogPath(dir)
	}
	if err := logging.Configure(logPath); err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
	}

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.GetConfigPath(dir)
	}
	if opts.ResetConfig {
		if err := config.ResetConfig(cfgPath); err != nil {
			return nil, err
		}
		logging.Infof("configuration reset at %s", cfgPath)
	}

	return state.NewState(state.Options{Dir: dir, ConfigPath: cfgPath})
}

// Run starts the editor and blocks until it exits.
func Run(opts Options) error {
	st, err := Prepare(opts)
	if err != nil {
		var initErr *config.ConfigInitError
		if errors.As(err, &initErr) {
			logging.Errorf("%v", initErr)
		}
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Errorf("shutdown: %v", err)
		}
		_ = logging.Close()
	}()

	model := session.New(st, opts.Files)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		originalState, err := term.GetState(fd)
		if err != nil {
			return fmt.Errorf("failed to get terminal state: %w", err)
		}
		defer func() {
			if err := term.Restore(fd, originalState); err != nil {
				logging.Errorf("failed to restore terminal state: %v", err)
			}
		}()
	}

	if _, err := tea.NewProgram(model, tea.WithInput(os.Stdin), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
