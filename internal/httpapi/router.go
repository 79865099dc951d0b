package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sharveena123/paypals/internal/auth"
	"github.com/sharveena123/paypals/internal/middleware"
)

// New assembles the API router. Everything under /api/v1 except auth
// requires a Bearer token.
func New(
	authH *AuthHandler,
	groupH *GroupHandler,
	expenseH *ExpenseHandler,
	settlementH *SettlementHandler,
	balanceH *BalanceHandler,
	jwtManager *auth.JWTManager,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimw.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	router.Use(middleware.Metrics)
	router.Use(middleware.RequestLogger)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.AllowContentType("application/json"))

		r.Route("/auth", authH.Routes)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtManager))

			r.Route("/groups", func(r chi.Router) {
				groupH.Routes(r)
				r.Get("/{groupID}/expenses", expenseH.listGroup)
				r.Get("/{groupID}/settlements", settlementH.listGroup)
				r.Get("/{groupID}/balances", balanceH.group)
			})
			r.Route("/expenses", expenseH.Routes)
			r.Route("/settlements", settlementH.Routes)
			r.Route("/balances", balanceH.Routes)
			r.Get("/reports/categories", balanceH.categories)
		})
	})

	return router
}
