package www

import (
	"net/http"

	"zeroedge/engine"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	engine   *engine.Engine
	sessions *sessionStore
	eventHub *EventHub
}

// NewRouter creates the chi router and returns it along with a stop function.
func NewRouter(eng *engine.Engine) (http.Handler, func()) {
	h := &Handlers{
		engine:   eng,
		sessions: newSessionStore(eng.AppConfig().Web.SessionSecret),
		eventHub: NewEventHub(),
	}

	h.eventHub.Start()
	h.eventHub.SetupEngineListeners(eng)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// SSE (no auth — shop floor dashboards)
	r.Get("/events", h.eventHub.HandleSSE)

	// Login/logout
	r.Post("/api/login", h.apiLogin)
	r.Post("/api/logout", h.apiLogout)

	r.Route("/api", func(r chi.Router) {
		// Public API (shop floor reads and actions)
		r.Get("/machines", h.apiListMachines)
		r.Get("/machines/{id}", h.apiGetMachine)
		r.Get("/tools", h.apiListTools)
		r.Get("/work-orders", h.apiListWorkOrders)
		r.Post("/work-orders", h.apiCreateWorkOrder)
		r.Get("/fai-records", h.apiListFAIRecords)
		r.Get("/inventory", h.apiListInventory)
		r.Get("/quality-records", h.apiListQualityRecords)
		r.Get("/production-log", h.apiListProductionLog)

		r.Post("/production/start", h.apiStartProduction)
		r.Post("/production/stop", h.apiStopProduction)
		r.Post("/production/validate", h.apiValidateStart)

		// Admin API (simulation controls, config)
		r.Group(func(r chi.Router) {
			r.Use(h.adminMiddleware)

			r.Post("/sim/machines/{id}/force-error", h.apiForceError)
			r.Post("/sim/tools/{id}/expire", h.apiExpireTool)
			r.Post("/sim/quality-records", h.apiInjectQualityRecords)

			r.Put("/config/messaging", h.apiUpdateMessaging)
			r.Post("/config/password", h.apiChangePassword)
		})
	})

	return r, func() {
		h.eventHub.Stop()
	}
}

func (h *Handlers) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := h.sessions.getUser(r)
		if !ok || username == "" {
			writeError(w, http.StatusUnauthorized, "login required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
