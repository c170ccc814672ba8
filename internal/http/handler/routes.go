package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"medidocs/internal/http/middleware"
	"medidocs/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers
// stay thin; authorization and business rules live in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, catSvc service.CategoryService, adminSvc service.AdminService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api", middleware.RequireActor())

	docs := api.Group("/documents")
	docs.Post("/", UploadDocument(docSvc))
	docs.Get("/", ListDocuments(docSvc))
	docs.Get("/:id", GetDocument(docSvc))
	docs.Get("/:id/download", DownloadDocument(docSvc))
	docs.Put("/:id", UpdateDocument(docSvc))
	docs.Delete("/:id", DeleteDocument(docSvc))

	cats := api.Group("/categories")
	cats.Get("/", ListCategories(catSvc))
	cats.Post("/", CreateCategory(catSvc))
	cats.Get("/:id", GetCategory(catSvc))
	cats.Delete("/:id", DeleteCategory(catSvc))

	admin := api.Group("/admin")
	admin.Get("/stats", AdminStatistics(adminSvc))
	admin.Get("/stats/extended", AdminExtendedStatistics(adminSvc))
	admin.Get("/patients", AdminListPatients(adminSvc))
	admin.Get("/patients/:id/documents", AdminPatientDocuments(docSvc))
	admin.Get("/documents", AdminListDocuments(docSvc))
}
