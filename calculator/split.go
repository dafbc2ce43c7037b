package calculator

import (
	"math"

	"spicetracker/apperr"
)

// SplitResult is the full breakdown of one expedition split. Sand amounts
// are the source of truth; the melange fields are display conversions at
// the rate the split was computed with.
type SplitResult struct {
	TotalSand          int64
	GuildSand          int64
	RemainingSand      int64 // total minus guild cut
	HarvesterSand      int64
	PerParticipantSand int64
	UnallocatedSand    int64 // integer remainder of the even split, never dropped
	ParticipantCount   int

	Rate                  int64
	GuildMelange          int64
	HarvesterMelange      int64
	PerParticipantMelange int64
}

// ComputeSplit divides totalSand for one expedition. The guild cut comes
// off the top, the harvester cut comes out of what remains, and the rest is
// split evenly among participants. Any remainder of the even division is
// reported as UnallocatedSand so that
//
//	GuildSand + HarvesterSand + PerParticipantSand*ParticipantCount + UnallocatedSand == TotalSand
//
// holds exactly. Percentages are validated to [0,100] and may not exceed
// 100 combined.
func ComputeSplit(totalSand int64, participantCount int, harvesterCutPct, guildCutPct float64, rate int64) (*SplitResult, error) {
	if totalSand < 0 {
		return nil, apperr.InvalidInputf("total sand must be non-negative, got %d", totalSand)
	}
	if participantCount <= 0 {
		return nil, apperr.InvalidInputf("participant count must be positive, got %d", participantCount)
	}
	if harvesterCutPct < 0 || harvesterCutPct > 100 {
		return nil, apperr.InvalidInputf("harvester cut must be between 0 and 100, got %g", harvesterCutPct)
	}
	if guildCutPct < 0 || guildCutPct > 100 {
		return nil, apperr.InvalidInputf("guild cut must be between 0 and 100, got %g", guildCutPct)
	}

	// Basis points keep the floor arithmetic in integers.
	harvesterBP := int64(math.Round(harvesterCutPct * 100))
	guildBP := int64(math.Round(guildCutPct * 100))
	if harvesterBP+guildBP > 10000 {
		return nil, apperr.InvalidInputf("harvester cut (%g%%) plus guild cut (%g%%) exceeds 100%%", harvesterCutPct, guildCutPct)
	}

	guildSand := totalSand * guildBP / 10000
	remaining := totalSand - guildSand
	harvesterSand := remaining * harvesterBP / 10000
	residual := remaining - harvesterSand
	perParticipant := residual / int64(participantCount)
	unallocated := residual - perParticipant*int64(participantCount)

	result := &SplitResult{
		TotalSand:          totalSand,
		GuildSand:          guildSand,
		RemainingSand:      remaining,
		HarvesterSand:      harvesterSand,
		PerParticipantSand: perParticipant,
		UnallocatedSand:    unallocated,
		ParticipantCount:   participantCount,
		Rate:               rate,
	}

	var err error
	if result.GuildMelange, _, err = Convert(guildSand, rate); err != nil {
		return nil, err
	}
	if result.HarvesterMelange, _, err = Convert(harvesterSand, rate); err != nil {
		return nil, err
	}
	if result.PerParticipantMelange, _, err = Convert(perParticipant, rate); err != nil {
		return nil, err
	}

	return result, nil
}

// Reconciles reports whether the split accounts for every grain of sand.
func (r *SplitResult) Reconciles() bool {
	allocated := r.GuildSand + r.HarvesterSand + r.PerParticipantSand*int64(r.ParticipantCount) + r.UnallocatedSand
	return allocated == r.TotalSand
}
