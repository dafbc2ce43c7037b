package models

import "time"

// Setting keys stored in the settings table
const (
	SettingSandPerMelange = "sand_per_melange"
)

// DefaultSandPerMelange is the conversion rate seeded on first migration.
const DefaultSandPerMelange = int64(50)

// Setting represents a guild-wide configuration value
type Setting struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}
