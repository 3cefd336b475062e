package controllers

import (
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"wedcms/internal/apperr"
	"wedcms/internal/providers"
	"wedcms/internal/services"
)

type PaymentController struct {
	logger  providers.Logger
	service services.PaymentServiceInterface
	uploads services.UploadServiceInterface
	cache   providers.CacheProviderInterface
}

func NewPaymentController(logger providers.Logger, service services.PaymentServiceInterface, uploads services.UploadServiceInterface, cache providers.CacheProviderInterface) *PaymentController {
	return &PaymentController{
		logger:  logger,
		service: service,
		uploads: uploads,
		cache:   cache,
	}
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, apperr.New(apperr.KindInvalidInput, "id must be an integer")
	}
	return id, nil
}

// decodePaymentInput accepts either a JSON body or a multipart form.
// The multipart path also handles an attached qr_code_file, storing it
// and filling qr_code_url with the resulting public URL.
func (pc *PaymentController) decodePaymentInput(w http.ResponseWriter, r *http.Request) (services.PaymentInput, error) {
	var input services.PaymentInput

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxRequestBodySize); err != nil {
			return input, apperr.Wrap(apperr.KindInvalidInput, "parse form", err)
		}

		strField := func(name string) *string {
			if vs, ok := r.MultipartForm.Value[name]; ok && len(vs) > 0 {
				return &vs[0]
			}
			return nil
		}
		input.RecipientName = strField("recipient_name")
		input.BankName = strField("bank_name")
		input.AccountNumber = strField("account_number")
		input.Title = strField("title")
		input.Description = strField("description")
		input.QRCodeURL = strField("qr_code_url")
		if v := strField("is_active"); v != nil {
			active := *v == "true" || *v == "1"
			input.IsActive = &active
		}
		if v := strField("sort_order"); v != nil {
			order, err := strconv.Atoi(*v)
			if err != nil {
				return input, apperr.New(apperr.KindInvalidInput, "sort_order must be an integer")
			}
			input.SortOrder = &order
		}

		file, header, err := r.FormFile("qr_code_file")
		if err == nil {
			defer file.Close()
			url, err := pc.uploads.StoreQRCode(header.Filename, file)
			if err != nil {
				return input, err
			}
			input.QRCodeURL = &url
		}
		return input, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return input, apperr.Wrap(apperr.KindInvalidInput, "decode payment", err)
	}
	return input, nil
}

func (pc *PaymentController) List(w http.ResponseWriter, r *http.Request) {
	payments, err := pc.service.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", payments)
}

func (pc *PaymentController) Create(w http.ResponseWriter, r *http.Request) {
	input, err := pc.decodePaymentInput(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	payment, err := pc.service.Create(input)
	if err != nil {
		writeError(w, err)
		return
	}

	pc.cache.Del(siteDataCacheKey)
	pc.logger.Infof(providers.TypeApp, "Payment %d created", payment.ID)
	writeSuccess(w, http.StatusCreated, "Payment created", payment)
}

func (pc *PaymentController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	input, err := pc.decodePaymentInput(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	payment, err := pc.service.Update(id, input)
	if err != nil {
		writeError(w, err)
		return
	}

	pc.cache.Del(siteDataCacheKey)
	writeSuccess(w, http.StatusOK, "Payment updated", payment)
}

func (pc *PaymentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := pc.service.Delete(id); err != nil {
		writeError(w, err)
		return
	}

	pc.cache.Del(siteDataCacheKey)
	pc.logger.Infof(providers.TypeApp, "Payment %d deleted", id)
	writeSuccess(w, http.StatusOK, "Payment deleted", nil)
}

// FrontendView serves active payments in public ordering, with default
// QR codes resolved.
func (pc *PaymentController) FrontendView(w http.ResponseWriter, r *http.Request) {
	view, err := pc.service.FrontendView()
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", view)
}

func (pc *PaymentController) GetGlobalMessage(w http.ResponseWriter, r *http.Request) {
	message, err := pc.service.GlobalMessage()
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]string{"global_message": message})
}

func (pc *PaymentController) SetGlobalMessage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload struct {
		GlobalMessage string `json:"global_message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInvalidInput, "decode message", err))
		return
	}

	if err := pc.service.SetGlobalMessage(payload.GlobalMessage); err != nil {
		writeError(w, err)
		return
	}

	pc.cache.Del(siteDataCacheKey)
	writeSuccess(w, http.StatusOK, "Global message saved", nil)
}
