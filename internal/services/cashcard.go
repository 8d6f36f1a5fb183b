package services

import (
	"context"
	"errors"

	"github.com/jwwisniewski/cashcard-spring-academy/types"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize  = 20
	maxPageSize      = 100
	defaultSortField = "amount"
)

// ErrInvalidSort is returned when a list request names an unknown
// sort field.
var ErrInvalidSort = errors.New("invalid sort field")

var validSortFields = map[string]bool{
	"amount": true,
	"id":     true,
	"owner":  true,
}

// CashCardRepository defines persistence operations for cash cards.
type CashCardRepository interface {
	GetByIDAndOwner(ctx context.Context, id int64, owner string) (types.CashCard, error)
	Create(ctx context.Context, card types.CashCard) (types.CashCard, error)
	ListByOwner(ctx context.Context, owner string, page types.PageRequest) ([]types.CashCard, error)
	UpdateAmount(ctx context.Context, id int64, owner string, amount decimal.Decimal) error
	Delete(ctx context.Context, id int64, owner string) error
}

// CashCardService encapsulates cash card use-cases. Every operation
// is scoped to the owner resolved from the caller's credentials.
type CashCardService struct {
	repo CashCardRepository
}

func NewCashCardService(repo CashCardRepository) *CashCardService {
	return &CashCardService{repo: repo}
}

func (s *CashCardService) Get(ctx context.Context, id int64, owner string) (types.CashCard, error) {
	return s.repo.GetByIDAndOwner(ctx, id, owner)
}

func (s *CashCardService) Create(ctx context.Context, owner string, amount decimal.Decimal) (types.CashCard, error) {
	return s.repo.Create(ctx, types.CashCard{Amount: amount, Owner: owner})
}

// List returns one page of the owner's cards. Page defaults are
// applied here: zero-based page, window of 20 capped at 100, and
// ascending amount when no sort is requested.
func (s *CashCardService) List(ctx context.Context, owner string, page types.PageRequest) ([]types.CashCard, error) {
	if page.Page < 0 {
		page.Page = 0
	}
	if page.Size <= 0 {
		page.Size = defaultPageSize
	}
	if page.Size > maxPageSize {
		page.Size = maxPageSize
	}
	if page.Sort.Field == "" {
		page.Sort = types.Sort{Field: defaultSortField}
	}
	if !validSortFields[page.Sort.Field] {
		return nil, ErrInvalidSort
	}
	return s.repo.ListByOwner(ctx, owner, page)
}

func (s *CashCardService) UpdateAmount(ctx context.Context, id int64, owner string, amount decimal.Decimal) error {
	return s.repo.UpdateAmount(ctx, id, owner, amount)
}

func (s *CashCardService) Delete(ctx context.Context, id int64, owner string) error {
	return s.repo.Delete(ctx, id, owner)
}
