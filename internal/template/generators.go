package template

import (
	"fmt"
	"math/rand"

	"gloam/internal/being"
	"gloam/internal/config"
	"gloam/internal/objective"
	"gloam/internal/world"
)

func genKillTarget(rng *rand.Rand, _ config.Balance) objective.Content {
	target := pickCategory(rng, personPool)
	return objective.Content{
		Title:       fmt.Sprintf("Silence %s", describeTarget(target)),
		Description: fmt.Sprintf("The voices want %s gone before the day is out.", describeTarget(target)),
		XP:          25,
		Params:      objective.Params{TargetType: target},
	}
}

func genKillAnimal(rng *rand.Rand, _ config.Balance) objective.Content {
	target := pickCategory(rng, animalPool)
	return objective.Content{
		Title:       fmt.Sprintf("Cull %s", describeTarget(target)),
		Description: fmt.Sprintf("Put down %s. Quickly, before it speaks.", describeTarget(target)),
		XP:          15,
		Params:      objective.Params{TargetType: target},
	}
}

func genKillActionCorpseTheirHome(rng *rand.Rand, _ config.Balance) objective.Content {
	target := pickCategory(rng, personPool, being.CatCaptive)
	act := pickString(rng, actionPool)
	return objective.Content{
		Title:       "An intimate farewell",
		Description: fmt.Sprintf("Kill %s under a roof that is not yours, then %s the corpse.", describeTarget(target), act),
		XP:          40,
		Steps: []objective.Step{
			{ID: StepKill, Text: fmt.Sprintf("Kill %s in someone else's home", describeTarget(target))},
			{ID: StepAction, Text: fmt.Sprintf("%s the corpse", act)},
		},
		Params: objective.Params{TargetType: target, Action: act},
		Actions: []objective.ActionSpec{
			{Kind: "interact", ActionID: act, Constraint: world.EntityConstraint{Category: target, Dead: true}},
		},
	}
}

func genKillSameRoof(rng *rand.Rand, b config.Balance) objective.Content {
	target := pickCategory(rng, personPool)
	return objective.Content{
		Title:       "Keep it under one roof",
		Description: fmt.Sprintf("Kill %d in the same building. Leaving resets the tally.", b.SameRoofKills),
		XP:          60,
		Params:      objective.Params{TargetType: target},
		Counter:     &objective.ScopedCounter{Required: b.SameRoofKills},
	}
}

func genDetachCookGift(rng *rand.Rand, _ config.Balance) objective.Content {
	target := pickCategory(rng, personPool, being.CatAnyone)
	part := pickString(rng, bodyPartPool)
	return objective.Content{
		Title:       "A home-cooked present",
		Description: fmt.Sprintf("Take the %s of %s, cook it, and gift it back.", part, describeTarget(target)),
		XP:          50,
		Steps: []objective.Step{
			{ID: StepDetach, Text: fmt.Sprintf("Cut the %s from %s", part, describeTarget(target))},
			{ID: StepCook, Text: fmt.Sprintf("Cook the %s", part)},
			{ID: StepGift, Text: fmt.Sprintf("Gift the cooked %s to %s", part, describeTarget(target))},
		},
		Params: objective.Params{TargetType: target, BodyPart: part},
		Actions: []objective.ActionSpec{
			{Kind: "give", ActionID: "gift_part", WithObject: part, Constraint: world.EntityConstraint{Category: target}},
		},
	}
}

func genEatPart(rng *rand.Rand, _ config.Balance) objective.Content {
	target := pickCategory(rng, personPool)
	part := pickString(rng, bodyPartPool)
	return objective.Content{
		Title:       "Waste nothing",
		Description: fmt.Sprintf("Eat the %s of %s.", part, describeTarget(target)),
		XP:          35,
		Params:      objective.Params{TargetType: target, BodyPart: part},
	}
}

func genPlaceCorpseLocation(rng *rand.Rand, _ config.Balance) objective.Content {
	region := pickRegion(rng)
	return objective.Content{
		Title:       fmt.Sprintf("A delivery to %s", describeRegion(region)),
		Description: fmt.Sprintf("Leave a corpse in %s. Any corpse will do.", describeRegion(region)),
		XP:          30,
		Params: objective.Params{
			Location:          region,
			HighlightLocation: region,
		},
	}
}

func genLureToRitual(rng *rand.Rand, _ config.Balance) objective.Content {
	// Protected categories are filtered from lure targets.
	target := pickCategory(rng, personPool, being.CatLawOfficer, being.CatCaptive)
	return objective.Content{
		Title:       "Bring them to the stones",
		Description: fmt.Sprintf("Lure %s to a ritual site and give them to it.", describeTarget(target)),
		XP:          70,
		Steps: []objective.Step{
			{ID: StepLure, Text: fmt.Sprintf("Get %s to follow you to the stones", describeTarget(target))},
			{ID: StepOffer, Text: "Give them to the stones"},
		},
		Params: objective.Params{TargetType: target, HighlightRitualSite: true},
	}
}

func genTakeCaptive(rng *rand.Rand, _ config.Balance) objective.Content {
	target := pickCategory(rng, personPool, being.CatCaptive)
	return objective.Content{
		Title:       fmt.Sprintf("Room for %s", describeTarget(target)),
		Description: fmt.Sprintf("Take %s captive. The cellar is lonely.", describeTarget(target)),
		XP:          45,
		Params:      objective.Params{TargetType: target},
	}
}

func genPrisonerRite(_ *rand.Rand, _ config.Balance) objective.Content {
	return objective.Content{
		Title:       "The cellar has a purpose",
		Description: "Perform the rite over one of your captives.",
		XP:          55,
		Params:      objective.Params{TargetType: being.CatCaptive, HighlightRitualSite: true},
		Actions: []objective.ActionSpec{
			{Kind: "ritual", ActionID: "offer_captive", Constraint: world.EntityConstraint{Category: being.CatCaptive}},
		},
	}
}

func genWearCovering(rng *rand.Rand, _ config.Balance) objective.Content {
	target := pickCategory(rng, personPool, being.CatAnyone)
	covering := pickString(rng, coveringPool)
	return objective.Content{
		Title:       "Dress for the occasion",
		Description: fmt.Sprintf("Wear a %s made from %s.", covering, describeTarget(target)),
		XP:          45,
		Params:      objective.Params{TargetType: target, ObjectType: covering},
	}
}

func genShowAffection(rng *rand.Rand, _ config.Balance) objective.Content {
	pool := append(append([]being.Category{}, personPool...), animalPool...)
	target := pickCategory(rng, pool)
	return objective.Content{
		Title:       "A tender gesture",
		Description: fmt.Sprintf("Show some affection toward %s. Mean it.", describeTarget(target)),
		XP:          10,
		Params:      objective.Params{TargetType: target},
	}
}

// fallbackContent is installed when no template is eligible. Nothing advances
// it; it is simply replaced at the next day start.
func fallbackContent() objective.Content {
	return objective.Content{
		TemplateID:  TplQuietDay,
		Title:       "A quiet day",
		Description: "The voices are silent. Rest while you can.",
		XP:          0,
	}
}
