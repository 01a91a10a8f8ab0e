package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "report SRC DST",
		Short: "Genera el libro de Detalle y Resumen a partir de un archivo de checadas",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.reportService(offline).Generate(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, RenderSummary(report.Summary, app.styled()))
			if report.RowsDropped > 0 {
				fmt.Fprintf(out, "Filas descartadas: %d de %d\n", report.RowsDropped, report.RowsRead)
			}
			if report.Degraded() {
				fmt.Fprintln(out, warn(app.styled(), "Sin tabla de horas esperadas: todas las horas esperadas son 0."))
			}
			fmt.Fprintf(out, "Reporte guardado en %s\n", args[1])
			fmt.Fprintf(out, "Generado: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "usar solo la copia local de horas esperadas")
	return cmd
}
