package handler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"checador-report/internal/models"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

var supportedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xls":  true,
	".csv":  true,
}

// handleDocument строит отчет по присланной выгрузке и отправляет книгу обратно
func (h *Handler) handleDocument(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	doc := message.Document

	if !h.isAdmin(chatID) {
		h.logger.WithField("chat_id", chatID).Warn("Rejected document from non-admin chat")
		h.sendText(chatID, "❌ Solo el administrador puede generar reportes.")
		return
	}

	name := filepath.Base(doc.FileName)
	ext := strings.ToLower(filepath.Ext(name))
	if !supportedExtensions[ext] {
		h.sendText(chatID, "❌ Formato no soportado. Envíe un archivo .xlsx, .xls o .csv.")
		return
	}

	log := h.logger.WithFields(logrus.Fields{
		"chat_id": chatID,
		"file":    name,
		"size":    doc.FileSize,
	})

	data, err := h.bot.DownloadFile(ctx, doc.FileID)
	if err != nil {
		log.WithError(err).Error("Failed to download document")
		h.sendText(chatID, "❌ No se pudo descargar el archivo.")
		return
	}

	dir, err := os.MkdirTemp(h.workDir, "checador-")
	if err != nil {
		log.WithError(err).Error("Failed to create work directory")
		h.sendText(chatID, "❌ Error interno al preparar el reporte.")
		return
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, name)
	if err := os.WriteFile(src, data, 0o600); err != nil {
		log.WithError(err).Error("Failed to store document")
		h.sendText(chatID, "❌ Error interno al preparar el reporte.")
		return
	}

	dst := filepath.Join(dir, reportFileName(name))
	report, err := h.reports.Generate(ctx, src, dst)
	if err != nil {
		log.WithError(err).Error("Failed to generate report")
		h.sendText(chatID, reportErrorText(err))
		return
	}

	reply := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(dst))
	reply.Caption = reportCaption(report)
	if _, err := h.bot.Send(reply); err != nil {
		log.WithError(err).Error("Failed to send report")
		h.sendText(chatID, "❌ No se pudo enviar el reporte.")
		return
	}

	log.WithField("run_id", report.RunID).Info("Report sent")
}

// reportFileName: "checadas.xlsx" -> "reporte_checadas.xlsx"
func reportFileName(source string) string {
	base := strings.TrimSuffix(source, filepath.Ext(source))
	return "reporte_" + base + ".xlsx"
}

func reportCaption(report *models.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Reporte generado\nEmpleados: %d\nFilas leídas: %s",
		len(report.Summary), humanize.Comma(int64(report.RowsRead)))
	if report.RowsDropped > 0 {
		fmt.Fprintf(&b, "\nFilas descartadas: %s", humanize.Comma(int64(report.RowsDropped)))
	}
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "\nGenerado: %s", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	}
	if report.Degraded() {
		b.WriteString("\n⚠️ Sin tabla de horas esperadas: todas las horas esperadas son 0.")
	}
	return b.String()
}

func reportErrorText(err error) string {
	var schemaErr *models.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return "❌ Faltan columnas obligatorias: " + strings.Join(schemaErr.Missing, ", ")
	case errors.Is(err, models.ErrUnsupportedFormat):
		return "❌ Formato no soportado. Envíe un archivo .xlsx, .xls o .csv."
	case errors.Is(err, models.ErrEmptyWorkbook):
		return "❌ El archivo está vacío."
	default:
		return "❌ No se pudo generar el reporte: " + err.Error()
	}
}
