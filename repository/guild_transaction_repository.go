package repository

import (
	"context"

	"spicetracker/database"
	"spicetracker/models"
)

// GuildTransactionRepository implements the service.GuildTransactionRepository interface
type GuildTransactionRepository struct {
	q queryable
}

// NewGuildTransactionRepository creates a new guild transaction repository
func NewGuildTransactionRepository(db *database.DB) *GuildTransactionRepository {
	return &GuildTransactionRepository{q: db.Pool}
}

// newGuildTransactionRepositoryWithTx creates a new guild transaction repository with a transaction
func newGuildTransactionRepositoryWithTx(tx queryable) *GuildTransactionRepository {
	return &GuildTransactionRepository{q: tx}
}

// Record appends one audit row for a treasury movement
func (r *GuildTransactionRepository) Record(ctx context.Context, txn *models.GuildTransaction) (*models.GuildTransaction, error) {
	query := `
		INSERT INTO guild_transactions (
			treasury_id, transaction_type, sand_amount, melange_amount,
			description, admin_id, admin_username, target_id,
			target_username, expedition_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	recorded := *txn
	err := r.q.QueryRow(ctx, query,
		txn.TreasuryID,
		txn.Type,
		txn.SandAmount,
		txn.MelangeAmount,
		txn.Description,
		txn.AdminID,
		txn.AdminUsername,
		txn.TargetID,
		txn.TargetUsername,
		txn.ExpeditionID,
	).Scan(&recorded.ID, &recorded.CreatedAt)

	if err != nil {
		return nil, storageErr("record guild transaction", err)
	}

	return &recorded, nil
}

// GetRecent returns the newest audit rows for a treasury
func (r *GuildTransactionRepository) GetRecent(ctx context.Context, treasuryID int64, limit int) ([]*models.GuildTransaction, error) {
	query := `
		SELECT id, treasury_id, transaction_type, sand_amount, melange_amount,
		       description, admin_id, admin_username, target_id,
		       target_username, expedition_id, created_at
		FROM guild_transactions
		WHERE treasury_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, treasuryID, limit)
	if err != nil {
		return nil, storageErr("get recent guild transactions", err)
	}
	defer rows.Close()

	var txns []*models.GuildTransaction
	for rows.Next() {
		var txn models.GuildTransaction
		err := rows.Scan(
			&txn.ID,
			&txn.TreasuryID,
			&txn.Type,
			&txn.SandAmount,
			&txn.MelangeAmount,
			&txn.Description,
			&txn.AdminID,
			&txn.AdminUsername,
			&txn.TargetID,
			&txn.TargetUsername,
			&txn.ExpeditionID,
			&txn.CreatedAt,
		)
		if err != nil {
			return nil, storageErr("scan guild transaction", err)
		}
		txns = append(txns, &txn)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate guild transactions", err)
	}

	return txns, nil
}

// NetTotal sums deposits minus withdrawals for a treasury. Used to check
// that the audit trail reconciles with the stored balance.
func (r *GuildTransactionRepository) NetTotal(ctx context.Context, treasuryID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE transaction_type
				WHEN 'deposit' THEN sand_amount
				ELSE -sand_amount
			END
		), 0)
		FROM guild_transactions
		WHERE treasury_id = $1
	`

	var net int64
	err := r.q.QueryRow(ctx, query, treasuryID).Scan(&net)
	if err != nil {
		return 0, storageErr("sum guild transactions", err)
	}

	return net, nil
}
