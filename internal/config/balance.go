package config

// Balance holds gameplay balance configuration for the objective system.
type Balance struct {
	// Daily resolution deltas on the sanity resource.
	SanityReward  int `yaml:"sanity_reward" json:"sanity_reward"`
	SanityPenalty int `yaml:"sanity_penalty" json:"sanity_penalty"`

	// RitualRadius is how close (world units) a kill or rite must be to a
	// ritual site to count for site-linked objectives.
	RitualRadius float64 `yaml:"ritual_radius" json:"ritual_radius"`

	// SameRoofKills is the scoped-counter threshold for the same-building
	// kill objective.
	SameRoofKills int `yaml:"same_roof_kills" json:"same_roof_kills"`
}

// DefaultBalance returns the default balance configuration.
func DefaultBalance() Balance {
	return Balance{
		SanityReward:  1,
		SanityPenalty: 1,
		RitualRadius:  50,
		SameRoofKills: 3,
	}
}

func (b *Balance) clamp() {
	def := DefaultBalance()
	if b.SanityReward <= 0 {
		b.SanityReward = def.SanityReward
	}
	if b.SanityPenalty <= 0 {
		b.SanityPenalty = def.SanityPenalty
	}
	if b.RitualRadius <= 0 {
		b.RitualRadius = def.RitualRadius
	}
	if b.SameRoofKills <= 0 {
		b.SameRoofKills = def.SameRoofKills
	}
}
