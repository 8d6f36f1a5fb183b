package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jwwisniewski/cashcard-spring-academy/internal/services"
	"github.com/jwwisniewski/cashcard-spring-academy/internal/store"
	"github.com/jwwisniewski/cashcard-spring-academy/types"
	"github.com/shopspring/decimal"
)

// CashCardService defines the use-cases the HTTP layer depends on.
type CashCardService interface {
	Get(ctx context.Context, id int64, owner string) (types.CashCard, error)
	Create(ctx context.Context, owner string, amount decimal.Decimal) (types.CashCard, error)
	List(ctx context.Context, owner string, page types.PageRequest) ([]types.CashCard, error)
	UpdateAmount(ctx context.Context, id int64, owner string, amount decimal.Decimal) error
	Delete(ctx context.Context, id int64, owner string) error
}

// CashCardHandler provides HTTP handlers for cash cards.
type CashCardHandler struct {
	service CashCardService
}

// NewCashCardHandler constructs a handler with the provided service.
func NewCashCardHandler(service CashCardService) *CashCardHandler {
	return &CashCardHandler{service: service}
}

// CashCardRouter registers cash card routes on the given router.
// Every route sits behind the card-owner middleware.
func CashCardRouter(r chi.Router, service CashCardService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewCashCardHandler(service)

	if authMiddleware != nil {
		r.Use(authMiddleware)
	}
	r.Get("/", handler.ListCashCards)
	r.Post("/", handler.CreateCashCard)
	r.Route("/{cardID}", func(r chi.Router) {
		r.Get("/", handler.GetCashCard)
		r.Put("/", handler.UpdateCashCard)
		r.Delete("/", handler.DeleteCashCard)
	})
}

func (h *CashCardHandler) GetCashCard(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseCardID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	card, err := h.service.Get(r.Context(), id, owner)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "cash card not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch cash card")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(card))
}

func (h *CashCardHandler) CreateCashCard(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CashCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.service.Create(r.Context(), owner, req.Amount)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create cash card")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/cashcards/%d", created.ID))
	w.WriteHeader(http.StatusCreated)
}

func (h *CashCardHandler) ListCashCards(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	page, err := parsePageRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cards, err := h.service.List(r.Context(), owner, page)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSort) {
			writeError(w, http.StatusBadRequest, "invalid sort")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to list cash cards")
		return
	}

	// Page content only, no envelope. An empty page is [] rather
	// than null.
	resp := make([]CashCardResponse, 0, len(cards))
	for _, card := range cards {
		resp = append(resp, toResponse(card))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CashCardHandler) UpdateCashCard(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseCardID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req CashCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.service.UpdateAmount(r.Context(), id, owner, req.Amount); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "cash card not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update cash card")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CashCardHandler) DeleteCashCard(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseCardID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Delete(r.Context(), id, owner); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "cash card not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete cash card")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CashCardRequest is the create/update payload. Only the amount is
// accepted; id and owner are never taken from the request.
type CashCardRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CashCardResponse is the card payload returned to clients. The
// amount goes out as a plain JSON number.
type CashCardResponse struct {
	ID     int64   `json:"id"`
	Amount float64 `json:"amount"`
	Owner  string  `json:"owner"`
}

func toResponse(card types.CashCard) CashCardResponse {
	return CashCardResponse{
		ID:     card.ID,
		Amount: card.Amount.InexactFloat64(),
		Owner:  card.Owner,
	}
}

func parseCardID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "cardID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid card id")
	}
	return id, nil
}

func parsePageRequest(r *http.Request) (types.PageRequest, error) {
	var page types.PageRequest

	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			return types.PageRequest{}, errors.New("invalid page")
		}
		page.Page = value
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("size")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			return types.PageRequest{}, errors.New("invalid size")
		}
		page.Size = value
	}

	sort, err := parseSort(r.URL.Query().Get("sort"))
	if err != nil {
		return types.PageRequest{}, err
	}
	page.Sort = sort

	return page, nil
}

// parseSort understands "field" and "field,direction" keys, e.g.
// "amount,desc". An empty key means the service default.
func parseSort(raw string) (types.Sort, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.Sort{}, nil
	}

	parts := strings.Split(raw, ",")
	if len(parts) > 2 {
		return types.Sort{}, errors.New("invalid sort")
	}

	sort := types.Sort{Field: strings.TrimSpace(parts[0])}
	if sort.Field == "" {
		return types.Sort{}, errors.New("invalid sort")
	}

	if len(parts) == 2 {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "asc":
		case "desc":
			sort.Desc = true
		default:
			return types.Sort{}, errors.New("invalid sort direction")
		}
	}

	return sort, nil
}
