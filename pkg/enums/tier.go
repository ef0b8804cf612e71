package enums

import "fmt"

// Tier is the loyalty level derived from a user's points balance.
type Tier string

const (
	TierMember  Tier = "member"
	TierSilver  Tier = "silver"
	TierGold    Tier = "gold"
	TierDiamond Tier = "diamond"
)

var validTiers = []Tier{
	TierMember,
	TierSilver,
	TierGold,
	TierDiamond,
}

// String implements fmt.Stringer.
func (t Tier) String() string {
	return string(t)
}

// IsValid reports whether the value is a known Tier.
func (t Tier) IsValid() bool {
	for _, candidate := range validTiers {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTier converts raw input into a Tier.
func ParseTier(value string) (Tier, error) {
	for _, candidate := range validTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tier %q", value)
}
