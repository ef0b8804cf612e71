package loyalty

import "github.com/vuminhngo/techstore-backend/pkg/enums"

// Thresholds holds the minimum points balance for each paid tier.
type Thresholds struct {
	Silver  int
	Gold    int
	Diamond int
}

// DefaultThresholds are used when the settings store has no override.
var DefaultThresholds = Thresholds{
	Silver:  1000,
	Gold:    5000,
	Diamond: 10000,
}

// ResolveTier maps a points balance to a tier, checking the highest
// threshold first.
func ResolveTier(points int, t Thresholds) enums.Tier {
	switch {
	case points >= t.Diamond:
		return enums.TierDiamond
	case points >= t.Gold:
		return enums.TierGold
	case points >= t.Silver:
		return enums.TierSilver
	default:
		return enums.TierMember
	}
}
