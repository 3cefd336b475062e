package services

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"wedcms/internal/models"
	"wedcms/internal/providers"
	"wedcms/internal/store"
)

type TelegramServiceInterface interface {
	GetConfig() (models.TelegramConfig, error)
	SaveConfig(cfg models.TelegramConfig) error
	NotifyBlessing(b models.Blessing)
}

// TelegramService pushes new-blessing notifications to a configured
// chat. Delivery is best effort, a failure never propagates to the
// write that triggered it.
type TelegramService struct {
	store  *store.Store
	logger providers.Logger
	client *http.Client
}

func NewTelegramService(st *store.Store, logger providers.Logger) TelegramServiceInterface {
	return &TelegramService{
		store:  st,
		logger: logger,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (ts *TelegramService) GetConfig() (models.TelegramConfig, error) {
	return ts.store.GetTelegramConfig()
}

func (ts *TelegramService) SaveConfig(cfg models.TelegramConfig) error {
	return ts.store.PutTelegramConfig(cfg)
}

func (ts *TelegramService) NotifyBlessing(b models.Blessing) {
	cfg, err := ts.store.GetTelegramConfig()
	if err != nil {
		ts.logger.Warnf(providers.TypeApp, "Could not load telegram config: %s", err)
		return
	}
	if !cfg.Enabled || cfg.BotToken == "" || cfg.ChatID == "" {
		ts.logger.Debugf(providers.TypeApp, "Telegram notifications disabled, skipping")
		return
	}

	text := fmt.Sprintf(
		"New blessing received\n\nFrom: %s (%s)\n\n%s",
		b.Name, b.From, b.Content,
	)

	endpoint := "https://api.telegram.org/bot" + cfg.BotToken + "/sendMessage"
	resp, err := ts.client.PostForm(endpoint, url.Values{
		"chat_id": {cfg.ChatID},
		"text":    {text},
	})
	if err != nil {
		ts.logger.Warnf(providers.TypeApp, "Telegram notification failed: %s", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		ts.logger.Warnf(providers.TypeApp, "Telegram notification rejected with status %d", resp.StatusCode)
		return
	}
	ts.logger.Infof(providers.TypeApp, "Telegram notification sent for blessing %d", b.ID)
}
