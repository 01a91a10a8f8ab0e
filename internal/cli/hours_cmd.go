package cli

import (
	"errors"
	"fmt"
	"io"

	"checador-report/internal/models"
	"checador-report/internal/service"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newHoursCmd(app *App) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Muestra el estado de la tabla local de horas esperadas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := app.snapshotProvider(false)
			out := cmd.OutOrStdout()

			if refresh {
				_, changed, err := provider.Refresh(cmd.Context())
				if errors.Is(err, service.ErrRemoteDisabled) {
					return fmt.Errorf("%w: set NOCODB_API_URL and NOCODB_TABLE_NAME", err)
				}
				if err != nil {
					return fmt.Errorf("refreshing expected hours: %w", err)
				}
				if changed {
					fmt.Fprintln(out, "Tabla de horas esperadas actualizada.")
				} else {
					fmt.Fprintln(out, "Sin cambios en la tabla de horas esperadas.")
				}
			}

			snapshot, err := provider.Snapshot()
			if err != nil {
				return fmt.Errorf("reading snapshot: %w", err)
			}
			printSnapshot(out, snapshot)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "descargar la tabla desde NocoDB antes de mostrarla")
	return cmd
}

func printSnapshot(out io.Writer, snapshot *models.ExpectedHoursSnapshot) {
	if snapshot == nil {
		fmt.Fprintln(out, "No hay tabla local de horas esperadas.")
		return
	}

	fmt.Fprintf(out, "Empleados:   %d\n", snapshot.Employees)
	fmt.Fprintf(out, "Registros:   %d\n", snapshot.Rows)
	fmt.Fprintf(out, "Hash:        %s\n", snapshot.DataHash)
	fmt.Fprintf(out, "Origen:      %s\n", snapshot.Source)
	fmt.Fprintf(out, "Actualizada: %s (%s)\n",
		snapshot.LastUpdate.Format("2006-01-02 15:04:05"), humanize.Time(snapshot.LastUpdate))
}
