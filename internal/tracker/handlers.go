package tracker

import (
	"context"

	"gloam/internal/being"
	"gloam/internal/event"
	"gloam/internal/objective"
	"gloam/internal/template"
)

func (t *Tracker) registerDefaults() {
	t.register(template.TplKillTarget, event.KindSapientKilled, handleKillTarget)
	t.register(template.TplKillAnimal, event.KindAnimalKilled, handleKillAnimal)

	t.register(template.TplKillActionCorpseTheirHome, event.KindSapientKilled, handleHomeKill)
	t.register(template.TplKillActionCorpseTheirHome, event.KindVerbPerformed, handleCorpseVerb)

	t.register(template.TplKillSameRoof, event.KindSapientKilled, handleSameRoofKill)

	t.register(template.TplDetachCookGift, event.KindPartDetached, handlePartDetached)
	t.register(template.TplDetachCookGift, event.KindPartCooked, handlePartCooked)
	t.register(template.TplDetachCookGift, event.KindPartGifted, handlePartGifted)

	t.register(template.TplEatPart, event.KindPartConsumed, handlePartConsumed)

	t.register(template.TplPlaceCorpseLocation, event.KindCorpsePlaced, handleCorpsePlaced)

	t.register(template.TplLureToRitual, event.KindFollowStarted, handleFollowStarted)
	t.register(template.TplLureToRitual, event.KindSapientKilled, handleRitualDelivery)
	t.register(template.TplLureToRitual, event.KindCaptiveTaken, handleRitualDelivery)
	t.register(template.TplLureToRitual, event.KindRitualHeld, handleRitualDelivery)

	t.register(template.TplTakeCaptive, event.KindCaptiveTaken, handleTakeCaptive)

	t.register(template.TplPrisonerRite, event.KindRitualHeld, handlePrisonerRite)

	t.register(template.TplWearCovering, event.KindCoveringWorn, handleCoveringWorn)

	t.register(template.TplShowAffection, event.KindAffectionShown, handleAffectionShown)
}

func handleKillTarget(ctx context.Context, t *Tracker, o *objective.Objective, ev event.Event) {
	if ev.Subject == nil {
		return
	}
	t.completeObjective(ctx, o)
}

func handleKillAnimal(ctx context.Context, t *Tracker, o *objective.Objective, ev event.Event) {
	if ev.Subject == nil {
		return
	}
	t.completeObjective(ctx, o)
}

// handleHomeKill credits the kill step only when the kill happened inside a
// home that does not belong to the player.
func handleHomeKill(ctx context.Context, t *Tracker, o *objective.Objective, ev event.Event) {
	if ev.Subject == nil || !ev.HasPos {
		return
	}
	if t.deps.Locations == nil || !t.deps.Locations.InsideSomeoneElsesHome(ev.X, ev.Y) {
		return
	}
	t.completeStep(ctx, o, template.StepKill)
}

// handleCorpseVerb credits the follow-up action: the prescribed verb, on a
// corpse, after the kill step.
func handleCorpseVerb(ctx context.Context, t *Tracker, o *objective.Objective, ev event.Event) {
	if ev.Subject == nil || !ev.Subject.Corpse {
		return
	}
	if ev.Verb != o.Params.Action {
		return
	}
	if !o.StepComplete(template.StepKill) {
		return
	}
	t.completeStep(ctx, o, template.StepAction)
}

// handleSameRoofKill feeds the scoped counter keyed by building. Kills
// outside any building carry no key and do not count.
func handleSameRoofKill(ctx context.Context, t *Tracker, o *objective.Objective, ev event.Event) {
	if ev.Subject == nil || ev.BuildingID == "" || o.Counter == nil {
		return
	}
	o.Counter.Bump(ev.BuildingID)
	if o.Counter.Reached() {
		o.Counter = nil
		t.completeObjective(ctx, o)
	}
}

func handlePartDetached(ctx context.Context, t *Tracker, o *objective.Objective, ev event.Event) {
	if ev.Subject == nil || ev.BodyPart != o.Params.BodyPart {
		return
	}
	t.completeStep(ctx, o, template.StepDetach)
}

func handlePartCooked(ctx context.Context, t *Tracker, o *objective.Objective, ev event.Event) {
	if ev.BodyPart != o.Params.BodyPart {
		return
	}
	if !o.StepComplete(template.StepDetach) {
		return
	}
	t.completeStep(ctx, o, template.StepCook)
}

func handlePartGifted(ctx context.Context, t *Tracker, o *objective.Objective, ev event.Event) {
	if ev.Recipient == nil || ev.BodyPart != o.Params.BodyPart {
		return
	}
	if !o.StepComplete(template.StepCook) {
		return
	}
	if !being.MatchesGiftRecipient(*ev.Recipient, o.Params.TargetType) {
		return
	}
	t.completeStep(ctx, o, template.StepGift)
}

func handlePartConsumed(ctx context.Context, t *Tracker, o *objective.Objective, ev event.Event) {
	if ev.BodyPart != o.Params.BodyPart {
		return
	}
	t.completeObjective(ctx, o)
}

func handleCorpsePlaced(ctx context.Context, t *Tracker, o *objective.Objective, ev event.Event) {
	if ev.Subject == nil || !ev.Subject.Corpse {
		return
	}
	if t.deps.Locations == nil || !t.deps.Locations.PlayerInRegion(o.Params.Location) {
		return
	}
	t.completeObjective(ctx, o)
}

// handleFollowStarted only records the follower hint. No step completes
// until the follower is delivered at a ritual site.
func handleFollowStarted(ctx context.Context, t *Tracker, o *objective.Objective, ev event.Event) {
	if ev.Subject == nil {
		return
	}
	o.FollowerID = ev.Subject.ID
}

// handleRitualDelivery completes both steps when the recorded follower is
// killed, captured or offered within reach of a ritual site.
func handleRitualDelivery(ctx context.Context, t *Tracker, o *objective.Objective, ev event.Event) {
	if ev.Subject == nil || o.FollowerID == "" || ev.Subject.ID != o.FollowerID {
		return
	}
	if !t.nearRitualSite(ev) {
		return
	}
	t.completeStep(ctx, o, template.StepLure)
	t.completeStep(ctx, o, template.StepOffer)
}

func handleTakeCaptive(ctx context.Context, t *Tracker, o *objective.Objective, ev event.Event) {
	if ev.Subject == nil {
		return
	}
	t.completeObjective(ctx, o)
}

func handlePrisonerRite(ctx context.Context, t *Tracker, o *objective.Objective, ev event.Event) {
	if ev.Subject == nil || !ev.Subject.Captive {
		return
	}
	t.completeObjective(ctx, o)
}

func handleCoveringWorn(ctx context.Context, t *Tracker, o *objective.Objective, ev event.Event) {
	if ev.Object != o.Params.ObjectType {
		return
	}
	t.completeObjective(ctx, o)
}

func handleAffectionShown(ctx context.Context, t *Tracker, o *objective.Objective, ev event.Event) {
	if ev.Subject == nil {
		return
	}
	t.completeObjective(ctx, o)
}
