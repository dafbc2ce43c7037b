package models

// DepositResult represents the outcome of a harvest deposit (returned to the user)
type DepositResult struct {
	SandDeposited  int64
	NewMelange     int64
	TotalSand      int64
	TotalMelange   int64
	LeftoverSand   int64
	SandPerMelange int64
}

// RefineryStatus represents a user's current refining progress
type RefineryStatus struct {
	Username       string
	TotalSand      int64
	TotalMelange   int64
	LeftoverSand   int64
	SandToNext     int64
	SandPerMelange int64
}

// LeaderboardEntry represents one row of the melange leaderboard
type LeaderboardEntry struct {
	Rank         int
	DiscordID    int64
	Username     string
	TotalSand    int64
	TotalMelange int64
}

// ExpeditionShare represents one member's credited share of an expedition
type ExpeditionShare struct {
	DiscordID   int64
	SandAmount  int64
	NewMelange  int64
	IsHarvester bool
}

// ExpeditionResult represents the full outcome of a recorded split
type ExpeditionResult struct {
	ExpeditionID    int64
	TotalSand       int64
	GuildSand       int64
	HarvesterSand   int64
	SandPerUser     int64
	UnallocatedSand int64
	SandPerMelange  int64
	Shares          []ExpeditionShare
}

// TreasuryStatus represents the treasury balance with recent activity
type TreasuryStatus struct {
	GuildName      string
	TotalSand      int64
	Melange        int64
	SandPerMelange int64
	Recent         []*GuildTransaction
}
