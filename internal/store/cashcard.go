package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jwwisniewski/cashcard-spring-academy/types"
	"github.com/shopspring/decimal"
)

// sortColumns whitelists the card attributes a list query may order
// by. Anything else never reaches the SQL builder.
var sortColumns = map[string]string{
	"amount": "amount",
	"id":     "id",
	"owner":  "owner",
}

// CashCardRepository handles persistence for cash cards.
type CashCardRepository struct {
	db *sql.DB
}

func NewCashCardRepository(db *sql.DB) *CashCardRepository {
	return &CashCardRepository{db: db}
}

// GetByIDAndOwner fetches a single card scoped to its owner.
func (r *CashCardRepository) GetByIDAndOwner(ctx context.Context, id int64, owner string) (types.CashCard, error) {
	const query = `
		SELECT id, amount, owner
		FROM cashcards
		WHERE id = $1 AND owner = $2`
	var card types.CashCard
	err := r.db.QueryRowContext(ctx, query, id, owner).Scan(
		&card.ID,
		&card.Amount,
		&card.Owner,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.CashCard{}, ErrNotFound
		}
		return types.CashCard{}, err
	}
	return card, nil
}

func (r *CashCardRepository) Create(ctx context.Context, card types.CashCard) (types.CashCard, error) {
	const query = `
		INSERT INTO cashcards (amount, owner)
		VALUES ($1, $2)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		card.Amount,
		card.Owner,
	).Scan(&card.ID); err != nil {
		return types.CashCard{}, err
	}
	return card, nil
}

// ListByOwner returns one page of the owner's cards, ordered by the
// requested sort key with id as a stable tie-breaker.
func (r *CashCardRepository) ListByOwner(ctx context.Context, owner string, page types.PageRequest) ([]types.CashCard, error) {
	column, ok := sortColumns[page.Sort.Field]
	if !ok {
		return nil, fmt.Errorf("unsupported sort field %q", page.Sort.Field)
	}
	direction := "ASC"
	if page.Sort.Desc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT id, amount, owner
		FROM cashcards
		WHERE owner = $1
		ORDER BY %s %s, id ASC
		OFFSET $2 LIMIT $3`, column, direction)
	rows, err := r.db.QueryContext(ctx, query, owner, page.Offset(), page.Size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := make([]types.CashCard, 0, page.Size)
	for rows.Next() {
		var card types.CashCard
		if err := rows.Scan(&card.ID, &card.Amount, &card.Owner); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

// UpdateAmount overwrites the amount of an owned card. The id and
// owner columns are never touched.
func (r *CashCardRepository) UpdateAmount(ctx context.Context, id int64, owner string, amount decimal.Decimal) error {
	const query = `
		UPDATE cashcards
		SET amount = $1
		WHERE id = $2 AND owner = $3`
	result, err := r.db.ExecContext(ctx, query, amount, id, owner)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an owned card. The owner predicate is part of the
// statement itself, so the ownership check and the removal cannot
// race against a concurrent request.
func (r *CashCardRepository) Delete(ctx context.Context, id int64, owner string) error {
	const query = `DELETE FROM cashcards WHERE id = $1 AND owner = $2`
	result, err := r.db.ExecContext(ctx, query, id, owner)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
