package cmd

import (
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"coursereg/config"
	"coursereg/logging"
	"coursereg/registrar"
	"coursereg/service"
	"coursereg/store"
	"coursereg/tui"
)

const appName = "coursereg"

// env carries what every subcommand needs once flags and config are parsed.
type env struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
	client *service.Client
	app    *registrar.App
}

func (e *env) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(e.v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	e.cfg = cfg
	e.logger = logger.With(zap.String("command", cmd.CommandPath()))
	e.client = service.NewClient(
		&http.Client{Timeout: cfg.HTTPTimeout},
		service.WithBaseURL(cfg.APIBase),
		service.WithLogger(e.logger),
	)
	e.app = registrar.NewApp(e.client, store.CurrentEmail, e.logger)
	return nil
}

func (e *env) teardown(*cobra.Command, []string) {
	if e.logger != nil {
		_ = e.logger.Sync()
	}
}

func newRootCmd(version, commit string) *cobra.Command {
	e := &env{v: viper.New()}

	root := &cobra.Command{
		Use:   appName,
		Short: "Course registration client",
		Long: `Browse course sections, build your term schedule and confirm it, from the terminal.
Run without a subcommand to open the interactive client.`,
		SilenceUsage:      true,
		PersistentPreRunE: e.setup,
		PersistentPostRun: e.teardown,
		RunE: func(cmd *cobra.Command, args []string) error {
			model := tui.New(e.app, e.client, e.logger)
			if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
				return err
			}
			return nil
		},
	}

	root.PersistentFlags().String("api", "", "registration API base URL (env COURSEREG_API_BASE)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env COURSEREG_LOG_LEVEL)")
	_ = e.v.BindPFlag("API_BASE", root.PersistentFlags().Lookup("api"))
	_ = e.v.BindPFlag("LOG_LEVEL", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		newLoginCmd(e),
		newLogoutCmd(e),
		newWhoamiCmd(e),
		newCoursesCmd(e),
		newScheduleCmd(e),
		newAdminCmd(e),
		newVersionCmd(version, commit),
	)
	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute(version, commit string) {
	if err := newRootCmd(version, commit).Execute(); err != nil {
		os.Exit(1)
	}
}
