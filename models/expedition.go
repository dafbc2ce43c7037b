package models

import "time"

// Expedition represents one recorded harvest split
type Expedition struct {
	ID               int64     `db:"id"`
	HarvesterID      int64     `db:"harvester_id"`
	TotalSand        int64     `db:"total_sand"`
	GuildSand        int64     `db:"guild_sand"`
	HarvesterSand    int64     `db:"harvester_sand"`
	SandPerUser      int64     `db:"sand_per_user"`
	UnallocatedSand  int64     `db:"unallocated_sand"`
	HarvesterCutPct  float64   `db:"harvester_cut_pct"`
	GuildCutPct      float64   `db:"guild_cut_pct"`
	SandPerMelange   int64     `db:"sand_per_melange"`
	ParticipantCount int       `db:"participant_count"`
	CreatedAt        time.Time `db:"created_at"`
}

// ExpeditionParticipant represents one member's share of an expedition
type ExpeditionParticipant struct {
	ID           int64     `db:"id"`
	ExpeditionID int64     `db:"expedition_id"`
	DiscordID    int64     `db:"discord_id"`
	SandAmount   int64     `db:"sand_amount"`
	IsHarvester  bool      `db:"is_harvester"`
	CreatedAt    time.Time `db:"created_at"`
}
