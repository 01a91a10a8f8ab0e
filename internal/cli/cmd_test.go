package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"checador-report/internal/handler"
	"checador-report/internal/models"
	"checador-report/internal/repository"
	"checador-report/internal/service"
	"checador-report/internal/spreadsheet"
	"checador-report/pkg/weekdays"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const punchesCSV = `Employee,Employee Name,Time,Shift
101,Ana,1/1/2024 8:00,A1
101,Ana,1/1/2024 17:00,A1
102,Luis,1/2/2024 9:00,
102,Luis,1/2/2024 12:00,
102,Luis,not a date,
`

// testApp собирает App на настоящем sqlite и настоящих читателе/писателе
func testApp(t *testing.T, remote service.ExpectedHoursProvider) *App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "hours.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log := logrus.New()
	log.SetOutput(io.Discard)

	repo, err := repository.NewGormExpectedHoursRepository(db, log)
	require.NoError(t, err)

	return &App{
		Logger: log,
		Repo:   repo,
		Remote: remote,
		Source: "test",
		Reader: spreadsheet.NewReader(log),
		Writer: spreadsheet.NewWriter(log),
	}
}

// executeCmd запускает команду и возвращает весь вывод
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func writePunches(t *testing.T) (src, dst string) {
	t.Helper()
	dir := t.TempDir()
	src = filepath.Join(dir, "checadas.csv")
	require.NoError(t, os.WriteFile(src, []byte(punchesCSV), 0o600))
	return src, filepath.Join(dir, "reporte.xlsx")
}

func TestReportCmd(t *testing.T) {
	remote := service.StaticProvider{Table: models.ExpectedHoursTable{
		101: {weekdays.Monday: 28800},
		102: {weekdays.Tuesday: 14400},
	}}
	app := testApp(t, remote)
	src, dst := writePunches(t)

	out, err := executeCmd(t, app, "report", src, dst)
	require.NoError(t, err)

	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "01:00:00")
	assert.Contains(t, out, "-01:00:00")
	assert.Contains(t, out, "Filas descartadas: 1 de 5")
	assert.Contains(t, out, "Reporte guardado en "+dst)
	assert.Contains(t, out, "Generado: ")
	assert.NotContains(t, out, "Sin tabla de horas esperadas")
	assert.NotContains(t, out, "\x1b[", "plain output when not a terminal")

	file, err := excelize.OpenFile(dst)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	rows, err := file.GetRows(spreadsheet.SummarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"101", "Ana", "1", "1", "09:00:00", "32400", "28800", "3600", "01:00:00"}, rows[1])

	snapshot, err := app.Repo.GetSnapshot()
	require.NoError(t, err)
	require.NotNil(t, snapshot, "successful fetch is stored locally")
	assert.Equal(t, 2, snapshot.Employees)
}

func TestReportCmd_OfflineUsesSnapshot(t *testing.T) {
	app := testApp(t, service.StaticProvider{Table: models.ExpectedHoursTable{101: {weekdays.Monday: 3600}}})
	src, dst := writePunches(t)

	out, err := executeCmd(t, app, "report", "--offline", src, dst)
	require.NoError(t, err)
	assert.Contains(t, out, "Sin tabla de horas esperadas", "offline without snapshot is degraded")

	_, err = app.Repo.ReplaceSnapshot(models.ExpectedHoursTable{101: {weekdays.Monday: 28800}}, "abc", "test")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "report", "--offline", src, dst)
	require.NoError(t, err)
	assert.NotContains(t, out, "Sin tabla de horas esperadas")
	assert.Contains(t, out, "01:00:00")
}

func TestReportCmd_Errors(t *testing.T) {
	app := testApp(t, nil)

	_, err := executeCmd(t, app, "report", "only-one-arg")
	assert.Error(t, err)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("Name,When\nAna,1/1/2024 8:00\n"), 0o600))
	_, err = executeCmd(t, app, "report", bad, filepath.Join(dir, "out.xlsx"))
	assert.ErrorIs(t, err, models.ErrSchema)
	assert.NoFileExists(t, filepath.Join(dir, "out.xlsx"))

	_, err = executeCmd(t, app, "report", filepath.Join(dir, "in.pdf"), filepath.Join(dir, "out.xlsx"))
	assert.Error(t, err)
}

func TestHoursCmd(t *testing.T) {
	app := testApp(t, nil)

	out, err := executeCmd(t, app, "hours")
	require.NoError(t, err)
	assert.Contains(t, out, "No hay tabla local")

	_, err = executeCmd(t, app, "hours", "--refresh")
	assert.ErrorIs(t, err, service.ErrRemoteDisabled)

	app = testApp(t, service.StaticProvider{Table: models.ExpectedHoursTable{101: {weekdays.Monday: 28800, weekdays.Tuesday: 1}}})
	out, err = executeCmd(t, app, "hours", "--refresh")
	require.NoError(t, err)
	assert.Contains(t, out, "actualizada")
	assert.Contains(t, out, "Empleados:   1")
	assert.Contains(t, out, "Registros:   2")
	assert.Contains(t, out, "Actualizada:")

	out, err = executeCmd(t, app, "hours", "--refresh")
	require.NoError(t, err)
	assert.Contains(t, out, "Sin cambios")
}

func TestBotCmd(t *testing.T) {
	app := testApp(t, nil)

	_, err := executeCmd(t, app, "bot")
	assert.Error(t, err)

	var gotReports handler.ReportGenerator
	var gotHours handler.HoursSource
	app.RunBot = func(ctx context.Context, reports handler.ReportGenerator, hours handler.HoursSource) error {
		gotReports, gotHours = reports, hours
		return errors.New("stopped")
	}

	_, err = executeCmd(t, app, "bot")
	assert.EqualError(t, err, "stopped")
	assert.NotNil(t, gotReports)
	assert.NotNil(t, gotHours)
}

func TestRenderSummary(t *testing.T) {
	summary := []models.EmployeeSummary{
		{EmployeeID: models.NewEmployeeID("101"), Name: "Ana", DaysWorked: 2, PeriodDays: 3, TotalWorkedSeconds: 3600, TotalExpectedSeconds: 7200, VarianceSeconds: -3600},
		{Name: "Luis Fernández", DaysWorked: 1, PeriodDays: 1, TotalWorkedSeconds: 60, VarianceSeconds: 60},
	}

	out := RenderSummary(summary, false)
	lines := bytes.Split([]byte(out), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Equal(t, "ID   Nombre          Días  Trabajadas  Esperadas  Diferencia", string(lines[0]))
	assert.Equal(t, "101  Ana             2/3   01:00:00    02:00:00   -01:00:00", string(lines[2]))
	assert.Equal(t, "     Luis Fernández  1/1   00:01:00    00:00:00   00:01:00", string(lines[3]))
}
