package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"spicetracker/database"
	"spicetracker/models"
)

// ExpeditionRepository implements the service.ExpeditionRepository interface
type ExpeditionRepository struct {
	q queryable
}

// NewExpeditionRepository creates a new expedition repository
func NewExpeditionRepository(db *database.DB) *ExpeditionRepository {
	return &ExpeditionRepository{q: db.Pool}
}

// newExpeditionRepositoryWithTx creates a new expedition repository with a transaction
func newExpeditionRepositoryWithTx(tx queryable) *ExpeditionRepository {
	return &ExpeditionRepository{q: tx}
}

// Create records an expedition and returns it with its assigned ID
func (r *ExpeditionRepository) Create(ctx context.Context, exp *models.Expedition) (*models.Expedition, error) {
	query := `
		INSERT INTO expeditions (
			harvester_id, total_sand, guild_sand, harvester_sand,
			sand_per_user, unallocated_sand, harvester_cut_pct, guild_cut_pct,
			sand_per_melange, participant_count
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	created := *exp
	err := r.q.QueryRow(ctx, query,
		exp.HarvesterID,
		exp.TotalSand,
		exp.GuildSand,
		exp.HarvesterSand,
		exp.SandPerUser,
		exp.UnallocatedSand,
		exp.HarvesterCutPct,
		exp.GuildCutPct,
		exp.SandPerMelange,
		exp.ParticipantCount,
	).Scan(&created.ID, &created.CreatedAt)

	if err != nil {
		return nil, storageErr("create expedition", err)
	}

	return &created, nil
}

// AddParticipant records one member's share of an expedition
func (r *ExpeditionRepository) AddParticipant(ctx context.Context, expeditionID, discordID, sandAmount int64, isHarvester bool) error {
	query := `
		INSERT INTO expedition_participants (expedition_id, discord_id, sand_amount, is_harvester)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.q.Exec(ctx, query, expeditionID, discordID, sandAmount, isHarvester)
	if err != nil {
		return storageErr("add expedition participant", err)
	}

	return nil
}

// GetByID retrieves an expedition by its ID
func (r *ExpeditionRepository) GetByID(ctx context.Context, id int64) (*models.Expedition, error) {
	query := `
		SELECT id, harvester_id, total_sand, guild_sand, harvester_sand,
		       sand_per_user, unallocated_sand, harvester_cut_pct, guild_cut_pct,
		       sand_per_melange, participant_count, created_at
		FROM expeditions
		WHERE id = $1
	`

	var exp models.Expedition
	err := r.q.QueryRow(ctx, query, id).Scan(
		&exp.ID,
		&exp.HarvesterID,
		&exp.TotalSand,
		&exp.GuildSand,
		&exp.HarvesterSand,
		&exp.SandPerUser,
		&exp.UnallocatedSand,
		&exp.HarvesterCutPct,
		&exp.GuildCutPct,
		&exp.SandPerMelange,
		&exp.ParticipantCount,
		&exp.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get expedition", err)
	}

	return &exp, nil
}

// GetParticipants returns all participant rows for an expedition
func (r *ExpeditionRepository) GetParticipants(ctx context.Context, expeditionID int64) ([]*models.ExpeditionParticipant, error) {
	query := `
		SELECT id, expedition_id, discord_id, sand_amount, is_harvester, created_at
		FROM expedition_participants
		WHERE expedition_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, expeditionID)
	if err != nil {
		return nil, storageErr("get expedition participants", err)
	}
	defer rows.Close()

	var participants []*models.ExpeditionParticipant
	for rows.Next() {
		var p models.ExpeditionParticipant
		err := rows.Scan(
			&p.ID,
			&p.ExpeditionID,
			&p.DiscordID,
			&p.SandAmount,
			&p.IsHarvester,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, storageErr("scan expedition participant", err)
		}
		participants = append(participants, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate expedition participants", err)
	}

	return participants, nil
}
