package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eaglebank/account-service/shared/models"
	sharedredis "github.com/eaglebank/account-service/shared/redis"
	goredis "github.com/redis/go-redis/v9"
)

const debitCardKeyPrefix = "debitcard:"

// DebitCardRepository persists debit cards in PostgreSQL and keeps a Redis copy
// of each card for reads.
type DebitCardRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.DebitCard]
}

func NewDebitCardRepository(db *sql.DB, redisClient goredis.Cmdable, ttl time.Duration) *DebitCardRepository {
	return &DebitCardRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.DebitCard](redisClient, debitCardKeyPrefix, ttl),
	}
}

func (r *DebitCardRepository) Create(ctx context.Context, card *models.DebitCard) error {
	associations, err := json.Marshal(card.Associations)
	if err != nil {
		return fmt.Errorf("failed to encode associations: %w", err)
	}

	query := `
		INSERT INTO debit_cards (id, card_number, customer_id, associations, created_at, version)
		VALUES ($1, $2, $3, $4, $5, 1)
	`
	if _, err := r.db.ExecContext(ctx, query, card.ID, card.CardNumber, card.CustomerID, associations, card.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("debit card number collision: %w", err)
		}
		return fmt.Errorf("failed to create debit card: %w", err)
	}
	card.Version = 1
	r.cache.Set(ctx, card.ID, card)
	return nil
}

// GetByID serves from Redis first and warms the cache on a PostgreSQL hit.
func (r *DebitCardRepository) GetByID(ctx context.Context, id string) (*models.DebitCard, error) {
	if card, ok := r.cache.Get(ctx, id); ok {
		return card, nil
	}

	query := `SELECT id, card_number, customer_id, associations, created_at, version FROM debit_cards WHERE id = $1`
	var (
		card         models.DebitCard
		associations []byte
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID, &card.CardNumber, &card.CustomerID, &associations, &card.CreatedAt, &card.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debit card: %w", err)
	}
	if err := json.Unmarshal(associations, &card.Associations); err != nil {
		return nil, fmt.Errorf("failed to decode associations of debit card %s: %w", id, err)
	}
	card.CreatedAt = card.CreatedAt.UTC()

	r.cache.Set(ctx, card.ID, &card)
	return &card, nil
}

// Update writes the association list when the stored version still matches.
func (r *DebitCardRepository) Update(ctx context.Context, card *models.DebitCard) error {
	associations, err := json.Marshal(card.Associations)
	if err != nil {
		return fmt.Errorf("failed to encode associations: %w", err)
	}

	query := `
		UPDATE debit_cards
		SET associations = $3, version = version + 1
		WHERE id = $1 AND version = $2
	`
	result, err := r.db.ExecContext(ctx, query, card.ID, card.Version, associations)
	if err != nil {
		return fmt.Errorf("failed to update debit card: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		// A cached copy may be behind the row; drop it so the retry reads PostgreSQL.
		r.cache.Delete(ctx, card.ID)
		return ErrStaleVersion
	}
	card.Version++
	r.cache.Set(ctx, card.ID, card)
	return nil
}
