package cli

import (
	"context"

	"checador-report/internal/handler"
	"checador-report/internal/repository"
	"checador-report/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// App - зависимости, общие для всех команд
type App struct {
	Logger *logrus.Logger
	Repo   repository.ExpectedHoursRepository
	// Remote - nil, если NocoDB не настроен
	Remote service.ExpectedHoursProvider
	Source string
	Reader service.TableReader
	Writer service.ReportWriter

	// RunBot запускает Telegram-бота до отмены ctx
	RunBot func(ctx context.Context, reports handler.ReportGenerator, hours handler.HoursSource) error
	// IsTerminal - выводить ли таблицы с цветами
	IsTerminal func() bool
}

// NewRootCmd создает команду "checador" со всеми подкомандами
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "checador",
		Short:         "Reportes de horas trabajadas a partir de checadas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newReportCmd(app),
		newHoursCmd(app),
		newBotCmd(app),
	)

	return root
}

func (a *App) snapshotProvider(offline bool) *service.SnapshotProvider {
	remote := a.Remote
	if offline {
		remote = nil
	}
	return service.NewSnapshotProvider(remote, a.Repo, a.Source, a.Logger)
}

func (a *App) reportService(offline bool) *service.ReportService {
	return service.NewReportService(a.snapshotProvider(offline), a.Reader, a.Writer, a.Logger)
}

func (a *App) styled() bool {
	return a.IsTerminal != nil && a.IsTerminal()
}
