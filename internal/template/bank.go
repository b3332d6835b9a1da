// Package template holds the static catalog of daily objective templates and
// instantiates them with randomized parameters.
package template

import (
	"math/rand"
	"sync"

	"gloam/internal/config"
	"gloam/internal/objective"
	"gloam/internal/world"
)

// Template ids, stable across versions. The completion tracker keys its
// handler registry on these.
const (
	TplKillTarget                = "kill_target"
	TplKillAnimal                = "kill_animal"
	TplKillActionCorpseTheirHome = "kill_action_corpse_their_home"
	TplKillSameRoof              = "kill_same_roof"
	TplDetachCookGift            = "detach_cook_gift"
	TplEatPart                   = "eat_part"
	TplPlaceCorpseLocation       = "place_corpse_location"
	TplLureToRitual              = "lure_to_ritual"
	TplTakeCaptive               = "take_captive"
	TplPrisonerRite              = "prisoner_rite"
	TplWearCovering              = "wear_covering"
	TplShowAffection             = "show_affection"
	TplQuietDay                  = "quiet_day"
)

// Step ids used by the multi-step templates.
const (
	StepKill   = "kill"
	StepAction = "action"
	StepDetach = "detach"
	StepCook   = "cook"
	StepGift   = "gift"
	StepLure   = "lure"
	StepOffer  = "offer"
)

// GenerateFunc produces one parameterized content from a template.
type GenerateFunc func(rng *rand.Rand, balance config.Balance) objective.Content

// Template is one catalog entry: static metadata plus a pure generator.
type Template struct {
	ID               string
	RequiresPrisoner bool
	Generate         GenerateFunc
}

// Bank is the process-wide catalog. The catalog itself is immutable after
// construction; only the RNG state mutates.
type Bank struct {
	mu        sync.Mutex
	rng       *rand.Rand
	balance   config.Balance
	templates []Template
}

func NewBank(rng *rand.Rand, balance config.Balance) *Bank {
	return &Bank{
		rng:     rng,
		balance: balance,
		templates: []Template{
			{ID: TplKillTarget, Generate: genKillTarget},
			{ID: TplKillAnimal, Generate: genKillAnimal},
			{ID: TplKillActionCorpseTheirHome, Generate: genKillActionCorpseTheirHome},
			{ID: TplKillSameRoof, Generate: genKillSameRoof},
			{ID: TplDetachCookGift, Generate: genDetachCookGift},
			{ID: TplEatPart, Generate: genEatPart},
			{ID: TplPlaceCorpseLocation, Generate: genPlaceCorpseLocation},
			{ID: TplLureToRitual, Generate: genLureToRitual},
			{ID: TplTakeCaptive, Generate: genTakeCaptive},
			{ID: TplPrisonerRite, RequiresPrisoner: true, Generate: genPrisonerRite},
			{ID: TplWearCovering, Generate: genWearCovering},
			{ID: TplShowAffection, Generate: genShowAffection},
		},
	}
}

// Templates returns the full catalog in declaration order.
func (b *Bank) Templates() []Template {
	out := make([]Template, len(b.templates))
	copy(out, b.templates)
	return out
}

// Template looks a catalog entry up by id.
func (b *Bank) Template(id string) (Template, bool) {
	for _, t := range b.templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// ListEligible returns every template whose prerequisites the world state
// satisfies. The catalog is never mutated.
func (b *Bank) ListEligible(ws world.State) []Template {
	out := make([]Template, 0, len(b.templates))
	for _, t := range b.templates {
		if t.RequiresPrisoner && !ws.HasPrisoner {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Instantiate runs the template's generator with fresh random parameters.
func (b *Bank) Instantiate(t Template) objective.Content {
	b.mu.Lock()
	defer b.mu.Unlock()
	content := t.Generate(b.rng, b.balance)
	content.TemplateID = t.ID
	return content
}

// PickDaily selects one eligible template uniformly at random and
// instantiates it. An empty eligible set yields the fixed fallback content,
// so there is always a daily objective.
func (b *Bank) PickDaily(ws world.State) objective.Content {
	eligible := b.ListEligible(ws)
	if len(eligible) == 0 {
		return fallbackContent()
	}
	b.mu.Lock()
	t := eligible[b.rng.Intn(len(eligible))]
	b.mu.Unlock()
	return b.Instantiate(t)
}
