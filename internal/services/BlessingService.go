package services

import (
	"time"

	"github.com/gookit/validate"

	"wedcms/internal/apperr"
	"wedcms/internal/models"
	"wedcms/internal/providers"
	"wedcms/internal/store"
)

const defaultBlessingLimit = 50

type BlessingInput struct {
	Name    string `json:"name" validate:"required"`
	From    string `json:"from" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// BlessingPage is one admin listing page with its pagination envelope.
type BlessingPage struct {
	Blessings []models.Blessing `json:"blessings"`
	Total     int               `json:"total"`
	Page      int               `json:"page"`
	PerPage   int               `json:"per_page"`
	Pages     int               `json:"pages"`
}

type BlessingServiceInterface interface {
	Send(input BlessingInput) (models.Blessing, error)
	Latest(limit int, includeUnapproved bool) ([]models.Blessing, error)
	AdminList(page, perPage int, search string, approved *bool) (BlessingPage, error)
	Stats() (models.BlessingStats, error)
	Approve(id int, approved bool) error
	Delete(id int) error
}

type BlessingService struct {
	store    *store.Store
	notifier TelegramServiceInterface
	logger   providers.Logger
}

func NewBlessingService(st *store.Store, notifier TelegramServiceInterface, logger providers.Logger) BlessingServiceInterface {
	return &BlessingService{
		store:    st,
		notifier: notifier,
		logger:   logger,
	}
}

// Send stores a visitor blessing and fires the telegram notification.
// New blessings are visible immediately; admins can pull one later by
// flipping its approval off.
func (bs *BlessingService) Send(input BlessingInput) (models.Blessing, error) {
	v := validate.Struct(input)
	if !v.Validate() {
		return models.Blessing{}, apperr.New(apperr.KindInvalidInput, v.Errors.One())
	}

	id, err := bs.store.InsertBlessing(input.Name, input.From, input.Content)
	if err != nil {
		return models.Blessing{}, err
	}

	blessing := models.Blessing{
		ID:         id,
		Name:       input.Name,
		From:       input.From,
		Content:    input.Content,
		CreatedAt:  time.Now().Format(time.RFC3339),
		IsApproved: true,
	}
	bs.logger.Infof(providers.TypeApp, "Blessing %d received from %s", id, input.Name)
	bs.notifier.NotifyBlessing(blessing)
	return blessing, nil
}

func (bs *BlessingService) Latest(limit int, includeUnapproved bool) ([]models.Blessing, error) {
	if limit <= 0 {
		limit = defaultBlessingLimit
	}
	blessings, err := bs.store.LatestBlessings(limit, !includeUnapproved)
	if err != nil {
		return nil, err
	}
	if blessings == nil {
		blessings = []models.Blessing{}
	}
	return blessings, nil
}

func (bs *BlessingService) AdminList(page, perPage int, search string, approved *bool) (BlessingPage, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}

	blessings, total, err := bs.store.SearchBlessings(page, perPage, search, approved)
	if err != nil {
		return BlessingPage{}, err
	}
	if blessings == nil {
		blessings = []models.Blessing{}
	}

	pages := (total + perPage - 1) / perPage
	return BlessingPage{
		Blessings: blessings,
		Total:     total,
		Page:      page,
		PerPage:   perPage,
		Pages:     pages,
	}, nil
}

func (bs *BlessingService) Stats() (models.BlessingStats, error) {
	return bs.store.BlessingStats()
}

func (bs *BlessingService) Approve(id int, approved bool) error {
	if err := bs.store.SetBlessingApproved(id, approved); err != nil {
		return err
	}
	bs.logger.Infof(providers.TypeApp, "Blessing %d approval set to %t", id, approved)
	return nil
}

func (bs *BlessingService) Delete(id int) error {
	if err := bs.store.DeleteBlessing(id); err != nil {
		return err
	}
	bs.logger.Infof(providers.TypeApp, "Blessing %d deleted", id)
	return nil
}
