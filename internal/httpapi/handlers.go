// Package httpapi serves the catalog, the composition engine and the
// experience store as a JSON API.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/curate/internal/catalog"
	"github.com/mesh-intelligence/curate/internal/compose"
	"github.com/mesh-intelligence/curate/internal/share"
	"github.com/mesh-intelligence/curate/internal/sqlite"
	"github.com/mesh-intelligence/curate/pkg/types"
)

// maxBodyBytes bounds compose request bodies.
const maxBodyBytes = 64 << 10

// Handlers implements the API endpoints. The store must be attached for
// the lifetime of the Handlers.
type Handlers struct {
	catalog     *catalog.Catalog
	composer    *compose.Composer
	store       types.Store
	logger      *zap.Logger
	now         func() time.Time
	defaultTime string
	started     time.Time
}

// Option customises Handlers.
type Option func(*Handlers)

// WithLogger sets the request and error logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handlers) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(h *Handlers) {
		if now != nil {
			h.now = now
		}
	}
}

// WithDefaultTime sets the start time given to composed experiences that
// do not name one.
func WithDefaultTime(hhmm string) Option {
	return func(h *Handlers) {
		h.defaultTime = hhmm
	}
}

// NewHandlers wires the API over a catalog, a composer bound to the same
// catalog, and an attached store.
func NewHandlers(cat *catalog.Catalog, composer *compose.Composer, store types.Store, opts ...Option) *Handlers {
	h := &Handlers{
		catalog:  cat,
		composer: composer,
		store:    store,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.started = h.now()
	return h
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"uptime":    h.now().Sub(h.started).String(),
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

type categoryPayload struct {
	Name   string `json:"name"`
	Places int    `json:"places"`
}

func (h *Handlers) listCategories(w http.ResponseWriter, r *http.Request) {
	names := h.catalog.Categories()
	payload := make([]categoryPayload, 0, len(names))
	for _, name := range names {
		payload = append(payload, categoryPayload{Name: name, Places: h.catalog.CategorySize(name)})
	}
	writeJSONResponse(w, http.StatusOK, payload)
}

func (h *Handlers) listPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := catalog.Query{
		Text:         strings.TrimSpace(q.Get("query")),
		Category:     strings.TrimSpace(q.Get("category")),
		Neighborhood: strings.TrimSpace(q.Get("neighborhood")),
	}
	if query.Category != "" && query.Category != types.CategoryAll && !h.catalog.HasCategory(query.Category) {
		writeError(r.Context(), w, http.StatusBadRequest, codeInvalidRequest, "unknown category "+strconv.Quote(query.Category))
		return
	}
	places := h.catalog.Filter(query)
	if places == nil {
		places = []types.Place{}
	}
	writeJSONResponse(w, http.StatusOK, places)
}

func (h *Handlers) getPlace(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "placeID"))
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, codeInvalidRequest, "place id must be a number")
		return
	}
	place, err := h.catalog.PlaceByID(id)
	if err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, place)
}

func (h *Handlers) listPicks(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.catalog.Picks())
}

// composeRequest seeds from PlaceID, else Prompt, else scratch.
type composeRequest struct {
	PlaceID     *int     `json:"place_id"`
	Prompt      *string  `json:"prompt"`
	Ops         []string `json:"ops"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Save        bool     `json:"save"`
}

type composeResponse struct {
	Steps      []compose.StepView `json:"steps"`
	Experience types.Experience   `json:"experience"`
	Itinerary  []types.Stop       `json:"itinerary"`
	Saved      bool               `json:"saved"`
}

func (h *Handlers) compose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req composeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, codeInvalidRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.PlaceID != nil && req.Prompt != nil {
		writeError(ctx, w, http.StatusBadRequest, codeInvalidRequest, "place_id and prompt are mutually exclusive")
		return
	}

	ops, err := compose.ParseScript(req.Ops)
	if err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}
	plan := compose.Plan{
		Entry: compose.Entry{Mode: compose.ModeScratch},
		Ops:   ops,
		Details: compose.Details{
			Title:       share.StripMarkup(req.Title),
			Description: share.StripMarkup(req.Description),
			Date:        share.StripMarkup(req.Date),
			Time:        share.StripMarkup(req.Time),
		},
	}
	switch {
	case req.PlaceID != nil:
		place, err := h.catalog.PlaceByID(*req.PlaceID)
		if err != nil {
			h.writeDomainError(ctx, w, err)
			return
		}
		plan.Entry = compose.Entry{Mode: compose.ModePlaceFirst, Place: place}
	case req.Prompt != nil:
		plan.Entry = compose.Entry{Mode: compose.ModePromptFirst, Prompt: *req.Prompt}
	}
	if plan.Details.Time == "" {
		plan.Details.Time = h.defaultTime
	}

	out, err := h.composer.Run(plan, h.catalog)
	if err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}

	exp := out.Experience
	status := http.StatusOK
	if req.Save {
		table, err := h.store.GetTable(types.TableExperiences)
		if err != nil {
			h.writeDomainError(ctx, w, err)
			return
		}
		if _, err := table.Set("", &exp); err != nil {
			h.writeDomainError(ctx, w, err)
			return
		}
		status = http.StatusCreated
	}

	writeJSONResponse(w, status, composeResponse{
		Steps:      h.composer.Views(out.Steps),
		Experience: exp,
		Itinerary:  exp.Itinerary(),
		Saved:      req.Save,
	})
}

func (h *Handlers) listExperiences(w http.ResponseWriter, r *http.Request) {
	table, err := h.store.GetTable(types.TableExperiences)
	if err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	filter := map[string]any{}
	if q := strings.TrimSpace(r.URL.Query().Get("query")); q != "" {
		filter[sqlite.FilterQuery] = q
	}
	entities, err := table.Fetch(filter)
	if err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	payload := make([]*types.Experience, 0, len(entities))
	for _, e := range entities {
		payload = append(payload, e.(*types.Experience))
	}
	writeJSONResponse(w, http.StatusOK, payload)
}

func (h *Handlers) experience(r *http.Request) (*types.Experience, error) {
	table, err := h.store.GetTable(types.TableExperiences)
	if err != nil {
		return nil, err
	}
	entity, err := table.Get(chi.URLParam(r, "experienceID"))
	if err != nil {
		return nil, err
	}
	return entity.(*types.Experience), nil
}

func (h *Handlers) getExperience(w http.ResponseWriter, r *http.Request) {
	exp, err := h.experience(r)
	if err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"experience": exp,
		"itinerary":  exp.Itinerary(),
	})
}

func (h *Handlers) deleteExperience(w http.ResponseWriter, r *http.Request) {
	table, err := h.store.GetTable(types.TableExperiences)
	if err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	if err := table.Delete(chi.URLParam(r, "experienceID")); err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// shareExperience renders HTML when the client accepts it, Markdown
// otherwise.
func (h *Handlers) shareExperience(w http.ResponseWriter, r *http.Request) {
	exp, err := h.experience(r)
	if err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}

	render, contentType := share.Markdown, "text/markdown; charset=utf-8"
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		render, contentType = share.HTML, "text/html; charset=utf-8"
	}
	body, err := render(exp)
	if err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

type favoritePayload struct {
	PlaceID int          `json:"place_id"`
	Place   *types.Place `json:"place"`
	LikedAt time.Time    `json:"liked_at"`
}

func (h *Handlers) listFavorites(w http.ResponseWriter, r *http.Request) {
	table, err := h.store.GetTable(types.TableFavorites)
	if err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	entities, err := table.Fetch(nil)
	if err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	payload := make([]favoritePayload, 0, len(entities))
	for _, e := range entities {
		f := e.(*types.Favorite)
		item := favoritePayload{PlaceID: f.PlaceID, LikedAt: f.CreatedAt}
		if p, err := h.catalog.PlaceByID(f.PlaceID); err == nil {
			item.Place = &p
		}
		payload = append(payload, item)
	}
	writeJSONResponse(w, http.StatusOK, payload)
}

func (h *Handlers) addFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "placeID"))
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, codeInvalidRequest, "place id must be a number")
		return
	}
	if _, err := h.catalog.PlaceByID(id); err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	table, err := h.store.GetTable(types.TableFavorites)
	if err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	if _, err := table.Set("", &types.Favorite{PlaceID: id}); err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) removeFavorite(w http.ResponseWriter, r *http.Request) {
	table, err := h.store.GetTable(types.TableFavorites)
	if err != nil {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	err = table.Delete(chi.URLParam(r, "placeID"))
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		h.writeDomainError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
