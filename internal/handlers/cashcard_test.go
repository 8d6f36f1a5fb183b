package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jwwisniewski/cashcard-spring-academy/internal/services"
	"github.com/jwwisniewski/cashcard-spring-academy/internal/store"
	"github.com/jwwisniewski/cashcard-spring-academy/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCashCardService struct {
	getFunc    func(ctx context.Context, id int64, owner string) (types.CashCard, error)
	createFunc func(ctx context.Context, owner string, amount decimal.Decimal) (types.CashCard, error)
	listFunc   func(ctx context.Context, owner string, page types.PageRequest) ([]types.CashCard, error)
	updateFunc func(ctx context.Context, id int64, owner string, amount decimal.Decimal) error
	deleteFunc func(ctx context.Context, id int64, owner string) error
}

func (m *mockCashCardService) Get(ctx context.Context, id int64, owner string) (types.CashCard, error) {
	return m.getFunc(ctx, id, owner)
}

func (m *mockCashCardService) Create(ctx context.Context, owner string, amount decimal.Decimal) (types.CashCard, error) {
	return m.createFunc(ctx, owner, amount)
}

func (m *mockCashCardService) List(ctx context.Context, owner string, page types.PageRequest) ([]types.CashCard, error) {
	return m.listFunc(ctx, owner, page)
}

func (m *mockCashCardService) UpdateAmount(ctx context.Context, id int64, owner string, amount decimal.Decimal) error {
	return m.updateFunc(ctx, id, owner, amount)
}

func (m *mockCashCardService) Delete(ctx context.Context, id int64, owner string) error {
	return m.deleteFunc(ctx, id, owner)
}

// injectOwner stands in for the basic-auth middleware in handler tests.
func injectOwner(owner string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), contextOwnerKey, owner)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(service CashCardService, owner string) *chi.Mux {
	router := chi.NewRouter()
	router.Route("/cashcards", func(r chi.Router) {
		CashCardRouter(r, service, injectOwner(owner))
	})
	return router
}

func TestGetCashCard(t *testing.T) {
	card := types.CashCard{ID: 99, Amount: decimal.RequireFromString("123.45"), Owner: "sarah1"}

	tests := []struct {
		name           string
		target         string
		service        *mockCashCardService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "owned card",
			target: "/cashcards/99",
			service: &mockCashCardService{
				getFunc: func(ctx context.Context, id int64, owner string) (types.CashCard, error) {
					assert.Equal(t, int64(99), id)
					assert.Equal(t, "sarah1", owner)
					return card, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":99,"amount":123.45,"owner":"sarah1"}`,
		},
		{
			name:   "absent or not owned",
			target: "/cashcards/99",
			service: &mockCashCardService{
				getFunc: func(ctx context.Context, id int64, owner string) (types.CashCard, error) {
					return types.CashCard{}, store.ErrNotFound
				},
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "non-numeric id",
			target:         "/cashcards/abc",
			service:        &mockCashCardService{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(tt.service, "sarah1")
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			}
		})
	}
}

func TestCreateCashCard(t *testing.T) {
	t.Run("creates card for the authenticated owner", func(t *testing.T) {
		service := &mockCashCardService{
			createFunc: func(ctx context.Context, owner string, amount decimal.Decimal) (types.CashCard, error) {
				assert.Equal(t, "sarah1", owner)
				assert.True(t, amount.Equal(decimal.RequireFromString("123.45")))
				return types.CashCard{ID: 44, Amount: amount, Owner: owner}, nil
			},
		}
		router := newTestRouter(service, "sarah1")

		req := httptest.NewRequest(http.MethodPost, "/cashcards", strings.NewReader(`{"amount":123.45}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "/cashcards/44", rec.Header().Get("Location"))
		assert.Empty(t, rec.Body.String())
	})

	t.Run("owner in the body is ignored", func(t *testing.T) {
		service := &mockCashCardService{
			createFunc: func(ctx context.Context, owner string, amount decimal.Decimal) (types.CashCard, error) {
				assert.Equal(t, "sarah1", owner)
				return types.CashCard{ID: 45, Amount: amount, Owner: owner}, nil
			},
		}
		router := newTestRouter(service, "sarah1")

		req := httptest.NewRequest(http.MethodPost, "/cashcards", strings.NewReader(`{"amount":1.00,"owner":"hank1"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		router := newTestRouter(&mockCashCardService{}, "sarah1")

		req := httptest.NewRequest(http.MethodPost, "/cashcards", strings.NewReader(`{"amount":`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListCashCards(t *testing.T) {
	t.Run("passes parsed page request through", func(t *testing.T) {
		var gotPage types.PageRequest
		service := &mockCashCardService{
			listFunc: func(ctx context.Context, owner string, page types.PageRequest) ([]types.CashCard, error) {
				assert.Equal(t, "sarah1", owner)
				gotPage = page
				return []types.CashCard{
					{ID: 1, Amount: decimal.RequireFromString("1.00"), Owner: "sarah1"},
				}, nil
			},
		}
		router := newTestRouter(service, "sarah1")

		req := httptest.NewRequest(http.MethodGet, "/cashcards?page=2&size=3&sort=amount,desc", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, types.PageRequest{Page: 2, Size: 3, Sort: types.Sort{Field: "amount", Desc: true}}, gotPage)
		assert.JSONEq(t, `[{"id":1,"amount":1.00,"owner":"sarah1"}]`, rec.Body.String())
	})

	t.Run("empty page is an empty array", func(t *testing.T) {
		service := &mockCashCardService{
			listFunc: func(ctx context.Context, owner string, page types.PageRequest) ([]types.CashCard, error) {
				return nil, nil
			},
		}
		router := newTestRouter(service, "sarah1")

		req := httptest.NewRequest(http.MethodGet, "/cashcards?page=500", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("invalid params", func(t *testing.T) {
		for _, target := range []string{
			"/cashcards?page=-1",
			"/cashcards?page=abc",
			"/cashcards?size=0",
			"/cashcards?sort=amount,sideways",
			"/cashcards?sort=amount,desc,extra",
		} {
			req := httptest.NewRequest(http.MethodGet, target, nil)
			rec := httptest.NewRecorder()
			newTestRouter(&mockCashCardService{}, "sarah1").ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		}
	})

	t.Run("unknown sort field", func(t *testing.T) {
		service := &mockCashCardService{
			listFunc: func(ctx context.Context, owner string, page types.PageRequest) ([]types.CashCard, error) {
				return nil, services.ErrInvalidSort
			},
		}
		router := newTestRouter(service, "sarah1")

		req := httptest.NewRequest(http.MethodGet, "/cashcards?sort=color", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateCashCard(t *testing.T) {
	t.Run("owned card", func(t *testing.T) {
		service := &mockCashCardService{
			updateFunc: func(ctx context.Context, id int64, owner string, amount decimal.Decimal) error {
				assert.Equal(t, int64(99), id)
				assert.Equal(t, "sarah1", owner)
				assert.True(t, amount.Equal(decimal.RequireFromString("19.99")))
				return nil
			},
		}
		router := newTestRouter(service, "sarah1")

		req := httptest.NewRequest(http.MethodPut, "/cashcards/99", strings.NewReader(`{"amount":19.99}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("absent or not owned", func(t *testing.T) {
		service := &mockCashCardService{
			updateFunc: func(ctx context.Context, id int64, owner string, amount decimal.Decimal) error {
				return store.ErrNotFound
			},
		}
		router := newTestRouter(service, "sarah1")

		req := httptest.NewRequest(http.MethodPut, "/cashcards/99", strings.NewReader(`{"amount":19.99}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteCashCard(t *testing.T) {
	t.Run("owned card", func(t *testing.T) {
		service := &mockCashCardService{
			deleteFunc: func(ctx context.Context, id int64, owner string) error {
				assert.Equal(t, int64(99), id)
				assert.Equal(t, "sarah1", owner)
				return nil
			},
		}
		router := newTestRouter(service, "sarah1")

		req := httptest.NewRequest(http.MethodDelete, "/cashcards/99", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("absent or not owned", func(t *testing.T) {
		service := &mockCashCardService{
			deleteFunc: func(ctx context.Context, id int64, owner string) error {
				return store.ErrNotFound
			},
		}
		router := newTestRouter(service, "sarah1")

		req := httptest.NewRequest(http.MethodDelete, "/cashcards/99", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		raw      string
		expected types.Sort
		wantErr  bool
	}{
		{raw: "", expected: types.Sort{}},
		{raw: "amount", expected: types.Sort{Field: "amount"}},
		{raw: "amount,asc", expected: types.Sort{Field: "amount"}},
		{raw: "amount,desc", expected: types.Sort{Field: "amount", Desc: true}},
		{raw: "id,DESC", expected: types.Sort{Field: "id", Desc: true}},
		{raw: ",desc", wantErr: true},
		{raw: "amount,up", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			sort, err := parseSort(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sort)
		})
	}
}
