package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	apiPrefix      = "/api/v1"
	requestTimeout = 30 * time.Second
)

// NewRouter constructs the chi router with shared middleware and all routes.
func NewRouter(h *Handlers) chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Timeout(requestTimeout),
		h.logRequests,
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(req.Context(), w, http.StatusNotFound, codeRouteNotFound, fmt.Sprintf("no route for %s", req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(req.Context(), w, http.StatusMethodNotAllowed, codeMethodNotAllowed,
			fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path))
	})

	r.Get("/healthz", h.health)

	r.Route(apiPrefix, func(api chi.Router) {
		api.Get("/categories", h.listCategories)
		api.Route("/places", func(pr chi.Router) {
			pr.Get("/", h.listPlaces)
			pr.Get("/{placeID}", h.getPlace)
		})
		api.Get("/picks", h.listPicks)
		api.Post("/compose", h.compose)
		api.Route("/experiences", func(er chi.Router) {
			er.Get("/", h.listExperiences)
			er.Get("/{experienceID}", h.getExperience)
			er.Delete("/{experienceID}", h.deleteExperience)
			er.Get("/{experienceID}/share", h.shareExperience)
		})
		api.Route("/favorites", func(fr chi.Router) {
			fr.Get("/", h.listFavorites)
			fr.Put("/{placeID}", h.addFavorite)
			fr.Delete("/{placeID}", h.removeFavorite)
		})
	})
	return r
}

// logRequests logs one line per request at debug level.
func (h *Handlers) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := h.now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", h.now().Sub(start)),
			zapRequestID(r.Context()),
		)
	})
}

func zapRequestID(ctx context.Context) zap.Field {
	return zap.String("request_id", middleware.GetReqID(ctx))
}
