package internal

import (
	"net/http"

	"wedcms/internal/controllers"
	"wedcms/internal/providers"
	"wedcms/internal/structures"
)

func InitRoutes(
	apiController *controllers.ApiController,
	backupController *controllers.BackupController,
	paymentController *controllers.PaymentController,
	uploadController *controllers.UploadController,
	blessingController *controllers.BlessingController,
	conf *structures.Config,
) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/api/data", http.HandlerFunc(apiController.GetData))
	routers.Post("/api/data", http.HandlerFunc(apiController.SaveData))
	routers.Get("/api/data/{section}", http.HandlerFunc(apiController.GetSection))
	routers.Post("/api/data/{section}", http.HandlerFunc(apiController.SaveSection))
	routers.Get("/api/export", http.HandlerFunc(apiController.Export))
	routers.Post("/api/import", http.HandlerFunc(apiController.Import))

	routers.Get("/api/backups", http.HandlerFunc(backupController.List))
	routers.Post("/api/backup", http.HandlerFunc(backupController.Create))
	routers.Post("/api/backup/restore/{filename}", http.HandlerFunc(backupController.Restore))
	routers.Post("/api/backup/cleanup", http.HandlerFunc(backupController.Cleanup))
	routers.Get("/api/backup/stats", http.HandlerFunc(backupController.Stats))

	routers.Get("/api/payment/list", http.HandlerFunc(paymentController.List))
	routers.Post("/api/payment", http.HandlerFunc(paymentController.Create))
	routers.Put("/api/payment/{id}", http.HandlerFunc(paymentController.Update))
	routers.Delete("/api/payment/{id}", http.HandlerFunc(paymentController.Delete))
	routers.Get("/api/payment/frontend", http.HandlerFunc(paymentController.FrontendView))
	routers.Get("/api/payment/global-message", http.HandlerFunc(paymentController.GetGlobalMessage))
	routers.Post("/api/payment/global-message", http.HandlerFunc(paymentController.SetGlobalMessage))

	routers.Post("/api/upload", http.HandlerFunc(uploadController.Upload))
	routers.Post("/api/upload/background", http.HandlerFunc(uploadController.UploadBackground))
	routers.Delete("/api/upload/background", http.HandlerFunc(uploadController.DeleteBackground))
	routers.Get("/api/list-files", http.HandlerFunc(uploadController.ListFiles))
	routers.Post("/api/delete-file", http.HandlerFunc(uploadController.DeleteFile))
	routers.Post("/api/delete-image", http.HandlerFunc(uploadController.DeleteImage))

	routers.Post("/api/blessing/send", http.HandlerFunc(blessingController.Send))
	routers.Get("/api/blessing/latest", http.HandlerFunc(blessingController.Latest))
	routers.Get("/api/blessing/admin/list", http.HandlerFunc(blessingController.AdminList))
	routers.Get("/api/blessing/admin/stats", http.HandlerFunc(blessingController.Stats))
	routers.Post("/api/blessing/admin/{id}/approve", http.HandlerFunc(blessingController.Approve))
	routers.Delete("/api/blessing/admin/{id}", http.HandlerFunc(blessingController.Delete))
	routers.Get("/api/telegram/config", http.HandlerFunc(blessingController.GetTelegramConfig))
	routers.Post("/api/telegram/config", http.HandlerFunc(blessingController.SaveTelegramConfig))

	return routers
}
