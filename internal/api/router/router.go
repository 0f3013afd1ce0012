package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"stockledger/internal/api/auth"
	"stockledger/internal/api/backup"
	"stockledger/internal/api/docs"
	"stockledger/internal/api/health"
	"stockledger/internal/api/product"
	"stockledger/internal/api/report"
	"stockledger/internal/api/settings"
	"stockledger/internal/api/supplier"
	"stockledger/internal/api/transaction"
	"stockledger/internal/pkg/cache"
	"stockledger/internal/pkg/logger"
	"stockledger/internal/pkg/middleware"
)

// Handlers are the initialized route groups.
type Handlers struct {
	Health       *health.Handler
	Auth         *auth.Handler
	Products     *product.Handler
	Suppliers    *supplier.Handler
	Transactions *transaction.Handler
	Reports      *report.Handler
	Settings     *settings.Handler
	Backups      *backup.Handler
}

// Options configure the global middleware. RateLimit <= 0 disables rate
// limiting; a disabled Auth leaves mutating routes open.
type Options struct {
	Auth       *middleware.Auth
	Cache      cache.Client
	RateLimit  int
	RateWindow time.Duration
	Logger     logger.Logger
}

// NewRouter registers every route on a ServeMux and wraps it with the
// request logger and the rate limiter.
func NewRouter(h Handlers, opts Options) http.Handler {
	mux := http.NewServeMux()
	admin := opts.Auth.RequireAdmin

	mux.HandleFunc("GET /ping", health.PingHandler)
	mux.HandleFunc("GET /v1/health", h.Health.HealthHandler)
	mux.HandleFunc("POST /v1/login", h.Auth.LoginHandler)

	mux.HandleFunc("GET /v1/products", h.Products.ListProductsHandler)
	mux.HandleFunc("POST /v1/products", admin(h.Products.CreateProductHandler))
	mux.HandleFunc("GET /v1/products/search", h.Products.SearchProductsHandler)
	mux.HandleFunc("GET /v1/products/lookup", h.Products.LookupProductHandler)
	mux.HandleFunc("GET /v1/products/{id}", h.Products.GetProductHandler)
	mux.HandleFunc("PATCH /v1/products/{id}", admin(h.Products.UpdateProductHandler))
	mux.HandleFunc("DELETE /v1/products/{id}", admin(h.Products.DeleteProductHandler))
	mux.HandleFunc("PUT /v1/products/{id}/stock", admin(h.Products.CorrectStockHandler))

	mux.HandleFunc("GET /v1/suppliers", h.Suppliers.ListSuppliersHandler)
	mux.HandleFunc("POST /v1/suppliers", admin(h.Suppliers.CreateSupplierHandler))
	mux.HandleFunc("GET /v1/suppliers/{id}", h.Suppliers.GetSupplierHandler)
	mux.HandleFunc("PATCH /v1/suppliers/{id}", admin(h.Suppliers.UpdateSupplierHandler))
	mux.HandleFunc("DELETE /v1/suppliers/{id}", admin(h.Suppliers.DeleteSupplierHandler))

	mux.HandleFunc("GET /v1/purchases", h.Transactions.ListPurchasesHandler)
	mux.HandleFunc("POST /v1/purchases", admin(h.Transactions.RecordPurchaseHandler))
	mux.HandleFunc("GET /v1/sales", h.Transactions.ListSalesHandler)
	mux.HandleFunc("POST /v1/sales", admin(h.Transactions.RecordSaleHandler))

	mux.HandleFunc("GET /v1/reports/{kind}", h.Reports.ReportHandler)

	mux.HandleFunc("GET /v1/settings", h.Settings.GetSettingsHandler)
	mux.HandleFunc("PUT /v1/settings", admin(h.Settings.UpdateSettingsHandler))

	mux.HandleFunc("POST /v1/backups", admin(h.Backups.CreateBackupHandler))

	mux.Handle("GET /openapi.json", docs.Handler())
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/openapi.json")))

	var handler http.Handler = mux
	if opts.RateLimit > 0 && opts.Cache != nil {
		handler = middleware.RateLimiter(opts.Cache, opts.RateLimit, opts.RateWindow, opts.Logger)(handler)
	}
	return middleware.RequestLogger(opts.Logger)(handler)
}
