package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"spicetracker/database"
	"spicetracker/models"
)

// SettingRepository implements the service.SettingRepository interface
type SettingRepository struct {
	q queryable
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *database.DB) *SettingRepository {
	return &SettingRepository{q: db.Pool}
}

// newSettingRepositoryWithTx creates a new setting repository with a transaction
func newSettingRepositoryWithTx(tx queryable) *SettingRepository {
	return &SettingRepository{q: tx}
}

// GetSandPerMelange returns the current conversion rate, falling back to the
// default if the setting row is missing
func (r *SettingRepository) GetSandPerMelange(ctx context.Context) (int64, error) {
	query := `SELECT value FROM settings WHERE key = $1`

	var value string
	err := r.q.QueryRow(ctx, query, models.SettingSandPerMelange).Scan(&value)
	if err == pgx.ErrNoRows {
		return models.DefaultSandPerMelange, nil
	}
	if err != nil {
		return 0, storageErr("get conversion rate", err)
	}

	rate, err := strconv.ParseInt(value, 10, 64)
	if err != nil || rate <= 0 {
		// A corrupt row shouldn't brick every command
		log.WithFields(log.Fields{
			"key":     models.SettingSandPerMelange,
			"value":   value,
			"default": models.DefaultSandPerMelange,
		}).Warn("Stored conversion rate is invalid, falling back to default")
		return models.DefaultSandPerMelange, nil
	}

	return rate, nil
}

// SetSandPerMelange updates the conversion rate
func (r *SettingRepository) SetSandPerMelange(ctx context.Context, rate int64) error {
	query := `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
	`

	_, err := r.q.Exec(ctx, query, models.SettingSandPerMelange, strconv.FormatInt(rate, 10))
	if err != nil {
		return storageErr("set conversion rate", err)
	}

	return nil
}
