package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newBotCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Inicia el bot de Telegram que genera reportes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.RunBot == nil {
				return errors.New("bot is not configured")
			}
			return app.RunBot(cmd.Context(), app.reportService(false), app.snapshotProvider(false))
		},
	}
}
