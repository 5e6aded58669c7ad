package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sparkcreatives/donations-api/app/controllers"
	"github.com/sparkcreatives/donations-api/app/models"
	"github.com/sparkcreatives/donations-api/internal/pkg/auth"
	"github.com/sparkcreatives/donations-api/internal/pkg/cache"
	"github.com/sparkcreatives/donations-api/internal/pkg/constants"
	"github.com/sparkcreatives/donations-api/internal/pkg/metrics/counter"
	"github.com/sparkcreatives/donations-api/internal/pkg/middleware"
	"github.com/sparkcreatives/donations-api/internal/pkg/receipts"
	"github.com/sparkcreatives/donations-api/internal/pkg/storage"
	"github.com/sparkcreatives/donations-api/internal/pkg/webhook"
)

// Dependencies carries the shared services the API routes are built from.
// Everything is injected so tests can wire fakes instead of live backends.
type Dependencies struct {
	Cache      *cache.Client
	Tokens     *auth.TokenService
	Directory  *auth.Directory
	Receipts   *receipts.Service
	Presigner  *storage.Presigner
	Counters   *counter.Counters
	WebhookCfg webhook.Config
	DataDir    string
}

type ApiRouter struct {
	deps *Dependencies
}

func NewApiRouter(deps *Dependencies) *ApiRouter {
	return &ApiRouter{deps: deps}
}

func (h *ApiRouter) InstallRouter(app *fiber.App) {
	deps := h.deps

	webhookCtl := controllers.NewWebhookController(deps.Cache, deps.WebhookCfg, deps.Counters)
	authCtl := controllers.NewAuthController(deps.Tokens, deps.Directory)
	receiptCtl := controllers.NewReceiptController(deps.Receipts)
	statementCtl := controllers.NewStatementController(deps.Receipts)
	reconCtl := controllers.NewReconciliationController(deps.DataDir, deps.Counters)
	dataRoomCtl := controllers.NewDataRoomController(deps.Presigner, deps.Counters)
	mainCtl := controllers.NewMainController(deps.Cache, deps.Counters)

	v1 := app.Group(constants.APIV1Prefix)

	v1.Get(constants.HealthRoute, mainCtl.HandleHealth)
	v1.Get(constants.MetricsRoute, mainCtl.HandleMetrics)

	// Webhooks authenticate by signature, not by bearer token.
	v1.Post(constants.SquareWebhookRoute, webhookCtl.HandleSquareWebhook)

	authGroup := v1.Group("/auth")
	authGroup.Post("/login", authCtl.HandleLogin)
	authGroup.Post("/refresh", authCtl.HandleRefresh)
	authGroup.Get("/status", authCtl.HandleStatus)

	requireAuth := middleware.RequireAuth(deps.Tokens, deps.Directory)
	authGroup.Get("/me", requireAuth, authCtl.HandleMe)
	authGroup.Post("/logout", requireAuth, authCtl.HandleLogout)

	staff := v1.Group("", requireAuth)
	staff.Get("/donations/:id/receipt.pdf", receiptCtl.HandleGetReceiptPDF)
	staff.Post("/donations/:id/receipt", receiptCtl.HandleSendReceipt)
	staff.Get("/donors/:id/statement/:year", statementCtl.HandleGetStatement)
	staff.Get("/data-room/documents", dataRoomCtl.HandleListDocuments)

	admin := v1.Group("", requireAuth, middleware.RequireAnyRole(models.RoleAdmin))
	admin.Post("/tasks/year-end-statements", statementCtl.HandleYearEndStatements)
	admin.Post("/reconciliation/run", reconCtl.HandleRun)
	admin.Get("/reconciliation/latest", reconCtl.HandleLatest)
}
