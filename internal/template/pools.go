package template

import (
	"math/rand"

	"gloam/internal/being"
	"gloam/internal/world"
)

// Semantic pools the generators draw from. Selection is uniform over the
// (possibly filtered) pool.

var actionPool = []string{"pizzle", "bemoan", "anoint", "serenade", "measure"}

var personPool = []being.Category{
	being.CatAnyone,
	being.CatAdult,
	being.CatChild,
	being.CatVessel,
	being.CatHollow,
	being.CatPale,
	being.CatLawOfficer,
	being.CatCaptive,
}

var animalPool = []being.Category{being.CatSwine, being.CatHound}

var bodyPartPool = []string{"hand", "heart", "tongue", "femur", "ear"}

var coveringPool = []string{"mask", "mantle", "gloves"}

var regionPool = world.Regions()

func pickString(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

func pickRegion(rng *rand.Rand) world.RegionID {
	return regionPool[rng.Intn(len(regionPool))]
}

// pickCategory selects uniformly from pool minus the excluded categories.
func pickCategory(rng *rand.Rand, pool []being.Category, exclude ...being.Category) being.Category {
	filtered := make([]being.Category, 0, len(pool))
	for _, c := range pool {
		skip := false
		for _, ex := range exclude {
			if c == ex {
				skip = true
				break
			}
		}
		if !skip {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return being.CatAnyone
	}
	return filtered[rng.Intn(len(filtered))]
}

// describeTarget renders a category for objective text.
func describeTarget(c being.Category) string {
	switch c {
	case being.CatAnyone:
		return "anyone"
	case being.CatAdult:
		return "an adult"
	case being.CatChild:
		return "a child"
	case being.CatVessel:
		return "one of the vessel folk"
	case being.CatHollow:
		return "one of the hollow folk"
	case being.CatPale:
		return "one of the pale folk"
	case being.CatLawOfficer:
		return "a law officer"
	case being.CatCaptive:
		return "a captive"
	case being.CatSwine:
		return "a swine"
	case being.CatHound:
		return "a hound"
	}
	return string(c)
}

// describeRegion renders a region for objective text.
func describeRegion(r world.RegionID) string {
	switch r {
	case world.RegionChapel:
		return "the chapel"
	case world.RegionMill:
		return "the mill"
	case world.RegionSquare:
		return "the village square"
	case world.RegionBog:
		return "the bog"
	case world.RegionOrchard:
		return "the orchard"
	}
	return string(r)
}
