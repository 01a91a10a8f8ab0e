package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"checador-report/internal/models"
	"checador-report/internal/service"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = `📋 Comandos disponibles:

/start - Iniciar el bot
/help - Mostrar este mensaje
/hours - Actualizar y mostrar la tabla de horas esperadas

📎 Para generar el reporte envíe el archivo de checadas (.xlsx, .xls o .csv).
Recibirá un libro con las hojas "Detalle" y "Resumen".`

func (h *Handler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start", "help":
		h.sendText(message.Chat.ID, helpText)
	case "hours":
		h.showHours(ctx, message)
	default:
		h.sendText(message.Chat.ID, "❌ Comando desconocido. Use /help para ver la lista de comandos.")
	}
}

func (h *Handler) showHours(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if !h.isAdmin(chatID) {
		h.sendText(chatID, "❌ Solo el administrador puede usar este comando.")
		return
	}

	snapshot, changed, err := h.hours.Refresh(ctx)
	if err != nil {
		log := h.logger.WithError(err)
		if errors.Is(err, service.ErrRemoteDisabled) {
			log.Info("Remote expected hours disabled, showing local snapshot")
		} else {
			log.Warn("Failed to refresh expected hours")
		}

		snapshot, err = h.hours.Snapshot()
		if err != nil {
			h.logger.WithError(err).Error("Failed to read expected hours snapshot")
			h.sendText(chatID, "❌ Error al leer la tabla local de horas esperadas.")
			return
		}
		h.sendText(chatID, "⚠️ No se pudo actualizar desde NocoDB.\n\n"+hoursStatusText(snapshot))
		return
	}

	text := hoursStatusText(snapshot)
	if changed {
		text = "✅ Tabla de horas esperadas actualizada.\n\n" + text
	} else {
		text = "✅ Sin cambios en la tabla de horas esperadas.\n\n" + text
	}
	h.sendText(chatID, text)
}

func hoursStatusText(snapshot *models.ExpectedHoursSnapshot) string {
	if snapshot == nil {
		return "📭 No hay tabla local de horas esperadas."
	}

	var b strings.Builder
	b.WriteString("📊 Horas esperadas:\n")
	fmt.Fprintf(&b, "Empleados: %d\n", snapshot.Employees)
	fmt.Fprintf(&b, "Registros: %d\n", snapshot.Rows)
	fmt.Fprintf(&b, "Hash: %s\n", snapshot.DataHash)
	fmt.Fprintf(&b, "Actualizada: %s (%s)",
		snapshot.LastUpdate.Format("2006-01-02 15:04:05"), humanize.Time(snapshot.LastUpdate))
	return b.String()
}
