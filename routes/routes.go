package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"facturation-backend/controllers"
	"facturation-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to the request TX)
	protected.Use(middlewares.Idempotency())

	// Then the per-request transaction (commits/rolls back around the handler)
	protected.Use(middlewares.Tx())

	// Référentiels (codes d'acte, médecins)
	protected.Post("/code", controllers.CreateCodes) // batch create
	protected.Get("/codes", controllers.GetCodes)
	protected.Get("/codes/metadata", controllers.GetCodesMetadata)
	protected.Get("/code/:code", controllers.GetCode)
	protected.Put("/code/:code", controllers.UpdateCode)
	protected.Post("/medecin", controllers.CreateMedecin)
	protected.Get("/medecins", controllers.GetMedecins)
	protected.Put("/medecin/:id", controllers.UpdateMedecin)

	// Facturations
	protected.Post("/facturation", controllers.CreateFacturation)
	protected.Get("/facturations", controllers.GetFacturations)
	protected.Get("/facturation/:id", controllers.GetFacturation)
	protected.Put("/facturation/:id", controllers.UpdateFacturation)
	protected.Patch("/facturation/:id", controllers.PatchFacturation)
	protected.Delete("/facturation/:id", controllers.DeleteFacturation)
	protected.Get("/facturation/:id/pdf", controllers.PrintFacture)
	protected.Post("/facturation/:id/numero", controllers.GenerateNumero)

	// Lookups for the entry form
	protected.Get("/lookup/dn", controllers.CheckDN)
	protected.Get("/lookup/acte", controllers.CheckActe)

	// Activity and summary screens
	protected.Get("/activity", controllers.GetActivity)
	protected.Get("/summary", controllers.GetSummary)

	// Bordereau (tiers payant)
	protected.Post("/bordereau", controllers.CreateBordereau)
	protected.Get("/bordereaux", controllers.ListBordereaux)
	protected.Get("/bordereau/:numero", controllers.GetBordereau)
	protected.Get("/bordereau/:numero/pdf", controllers.PrintBordereau)

	// Remise de chèques
	protected.Get("/cheques", controllers.GetCheques)
	protected.Post("/cheques/remise", controllers.PrintRemiseCheques)
	protected.Get("/remises", controllers.ListRemises)
}
