package cli

import (
	"strconv"
	"strings"

	"checador-report/internal/models"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleHeader   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3498DB")).Bold(true)
	styleDim      = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	stylePositive = lipgloss.NewStyle().Foreground(lipgloss.Color("#1CC0EE"))
	styleNegative = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934"))
	styleWarn     = lipgloss.NewStyle().Foreground(lipgloss.Color("#fabd2f")).Bold(true)
)

var summaryColumns = []string{"ID", "Nombre", "Días", "Trabajadas", "Esperadas", "Diferencia"}

const colGap = 2

// RenderSummary печатает сводку в виде выровненной таблицы.
// styled=false - без ANSI-последовательностей (вывод в файл или пайп).
func RenderSummary(summary []models.EmployeeSummary, styled bool) string {
	rows := make([][]string, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, []string{
			s.EmployeeID.String(),
			s.Name,
			strconv.Itoa(s.DaysWorked) + "/" + strconv.Itoa(s.PeriodDays),
			models.FormatDuration(s.TotalWorkedSeconds),
			models.FormatDuration(s.TotalExpectedSeconds),
			models.FormatSignedDuration(s.VarianceSeconds),
		})
	}

	widths := make([]int, len(summaryColumns))
	for i, h := range summaryColumns {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	render := func(style lipgloss.Style, s string) string {
		if !styled {
			return s
		}
		return style.Render(s)
	}

	var b strings.Builder
	writeRow(&b, summaryColumns, widths, func(i int, cell string) string {
		return render(styleHeader, cell)
	})

	separators := make([]string, len(widths))
	for i, w := range widths {
		separators[i] = strings.Repeat("─", w)
	}
	writeRow(&b, separators, widths, func(i int, cell string) string {
		return render(styleDim, cell)
	})

	for r, row := range rows {
		variance := summary[r].VarianceSeconds
		writeRow(&b, row, widths, func(i int, cell string) string {
			if i != len(row)-1 {
				return cell
			}
			switch {
			case variance > 0:
				return render(stylePositive, cell)
			case variance < 0:
				return render(styleNegative, cell)
			}
			return cell
		})
	}

	return strings.TrimRight(b.String(), "\n")
}

// writeRow выравнивает по видимой ширине, последняя колонка без хвостовых пробелов
func writeRow(b *strings.Builder, cells []string, widths []int, decorate func(int, string) string) {
	for i, cell := range cells {
		b.WriteString(decorate(i, cell))
		if i < len(cells)-1 {
			pad := widths[i] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}
	b.WriteString("\n")
}

func warn(styled bool, text string) string {
	if !styled {
		return "! " + text
	}
	return styleWarn.Render("! " + text)
}
