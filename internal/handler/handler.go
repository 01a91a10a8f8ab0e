package handler

import (
	"context"

	"checador-report/internal/config"
	"checador-report/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Bot - то, что обработчику нужно от Telegram
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

// ReportGenerator строит отчет из файла src в файл dst
type ReportGenerator interface {
	Generate(ctx context.Context, src, dst string) (*models.Report, error)
}

// HoursSource - локальный снимок ожидаемых часов и его обновление
type HoursSource interface {
	Refresh(ctx context.Context) (*models.ExpectedHoursSnapshot, bool, error)
	Snapshot() (*models.ExpectedHoursSnapshot, error)
}

type Handler struct {
	bot     Bot
	reports ReportGenerator
	hours   HoursSource
	config  *config.AppConfig
	logger  *logrus.Logger
	// workDir - каталог для временных файлов; пусто - системный
	workDir string
}

func NewHandler(
	bot Bot,
	reports ReportGenerator,
	hours HoursSource,
	cfg *config.AppConfig,
) *Handler {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(cfg.LogLevel)

	return &Handler{
		bot:     bot,
		reports: reports,
		hours:   hours,
		config:  cfg,
		logger:  logger,
	}
}

// HandleUpdates обрабатывает сообщения до закрытия канала или отмены ctx
func (h *Handler) HandleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			h.handleMessage(ctx, update.Message)
		}
	}
}

func (h *Handler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	fields := logrus.Fields{"chat_id": message.Chat.ID}
	if message.From != nil {
		fields["user"] = message.From.UserName
	}
	h.logger.WithFields(fields).Infof("%s", message.Text)

	if message.Document != nil {
		h.handleDocument(ctx, message)
		return
	}

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	h.sendText(message.Chat.ID, "Envíe el archivo de checadas (.xlsx, .xls o .csv) o use /help.")
}

func (h *Handler) isAdmin(chatID int64) bool {
	return h.config.BaseAdminChatID != 0 && chatID == h.config.BaseAdminChatID
}

func (h *Handler) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
	}
}
