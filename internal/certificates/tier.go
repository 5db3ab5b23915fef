package certificates

// Tier ranks a certificate by score.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// AllTiers returns the tiers from lowest to highest.
func AllTiers() []Tier {
	return []Tier{TierBronze, TierSilver, TierGold, TierPlatinum}
}

// TierFor maps a score to its tier.
func TierFor(score int) Tier {
	switch {
	case score >= 95:
		return TierPlatinum
	case score >= 85:
		return TierGold
	case score >= 75:
		return TierSilver
	default:
		return TierBronze
	}
}

// DisplayName returns a human-readable label for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierBronze:
		return "Bronze"
	case TierSilver:
		return "Silver"
	case TierGold:
		return "Gold"
	case TierPlatinum:
		return "Platinum"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the tier.
func (t Tier) Icon() string {
	switch t {
	case TierPlatinum:
		return "💠"
	case TierGold:
		return "🥇"
	case TierSilver:
		return "🥈"
	case TierBronze:
		return "🥉"
	default:
		return "✦"
	}
}
