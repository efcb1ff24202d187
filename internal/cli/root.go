package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/akozyreva/somnus/internal/config"
	"github.com/akozyreva/somnus/internal/service"
)

// App holds references to the services and wiring used by CLI commands.
type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Profile service.ProfileService
	Sleep   service.SleepService
	Data    service.DataService

	// Serve builds and runs the bot plus the reminder scheduler; it is
	// injected from main so the cli package stays free of transport wiring.
	Serve func(app *App) error
}

// NewRootCmd creates the top-level "somnus" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "somnus",
		Short: "Sleep tracking Telegram bot with timezone-aware reminders",
	}

	root.AddCommand(
		newServeCmd(app),
		newUsersCmd(app),
		newExportCmd(app),
	)

	return root
}
