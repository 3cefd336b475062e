package controllers

import (
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"

	"wedcms/internal/apperr"
	"wedcms/internal/models"
	"wedcms/internal/providers"
	"wedcms/internal/services"
)

type BlessingController struct {
	logger   providers.Logger
	service  services.BlessingServiceInterface
	telegram services.TelegramServiceInterface
}

func NewBlessingController(logger providers.Logger, service services.BlessingServiceInterface, telegram services.TelegramServiceInterface) *BlessingController {
	return &BlessingController{
		logger:   logger,
		service:  service,
		telegram: telegram,
	}
}

func (bc *BlessingController) Send(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var input services.BlessingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInvalidInput, "decode blessing", err))
		return
	}

	blessing, err := bc.service.Send(input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Blessing received", blessing)
}

// Latest is the public feed: approved blessings only, newest first.
func (bc *BlessingController) Latest(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	blessings, err := bc.service.Latest(limit, false)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", blessings)
}

func (bc *BlessingController) AdminList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	var approved *bool
	if v := q.Get("approved"); v != "" {
		parsed := v == "true" || v == "1"
		approved = &parsed
	}

	result, err := bc.service.AdminList(page, perPage, q.Get("search"), approved)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", result)
}

func (bc *BlessingController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := bc.service.Stats()
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", stats)
}

func (bc *BlessingController) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	payload := struct {
		IsApproved bool `json:"is_approved"`
	}{IsApproved: true}
	_ = json.NewDecoder(r.Body).Decode(&payload)

	if err := bc.service.Approve(id, payload.IsApproved); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Blessing updated", nil)
}

func (bc *BlessingController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := bc.service.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Blessing deleted", nil)
}

func (bc *BlessingController) GetTelegramConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := bc.telegram.GetConfig()
	if err != nil {
		writeError(w, err)
		return
	}

	// The token never leaves the server in full.
	masked := cfg
	if len(masked.BotToken) > 8 {
		masked.BotToken = masked.BotToken[:8] + "..."
	}
	writeSuccess(w, http.StatusOK, "", masked)
}

func (bc *BlessingController) SaveTelegramConfig(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var cfg models.TelegramConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInvalidInput, "decode telegram config", err))
		return
	}

	if err := bc.telegram.SaveConfig(cfg); err != nil {
		writeError(w, err)
		return
	}
	bc.logger.Infof(providers.TypeApp, "Telegram config updated, enabled=%t", cfg.Enabled)
	writeSuccess(w, http.StatusOK, "Telegram config saved", nil)
}
