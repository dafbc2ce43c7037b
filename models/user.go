package models

import (
	"time"
)

// User represents a Discord user with running harvest totals
type User struct {
	DiscordID    int64     `db:"discord_id"`
	Username     string    `db:"username"`
	TotalSand    int64     `db:"total_sand"`
	TotalMelange int64     `db:"total_melange"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
