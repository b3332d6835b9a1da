// Package tracker advances the active daily objective from the stream of
// domain events. It owns no objective state of its own: every mutation routes
// through completeStep or the lifecycle manager's completion path.
package tracker

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"gloam/internal/being"
	"gloam/internal/event"
	"gloam/internal/objective"
	"gloam/internal/telemetry"
	"gloam/internal/world"
)

const toastDuration = 4 * time.Second

type Deps struct {
	Manager   *objective.Manager
	Locations world.LocationClassifier
	Sites     world.RitualSiteSource
	Notifier  world.Notifier
	Telemetry telemetry.Sink
	Logger    *log.Logger

	// RitualRadius is the site proximity threshold in world units.
	// Zero falls back to 50.
	RitualRadius float64
}

type handlerKey struct {
	templateID string
	kind       event.Kind
}

// handlerFunc is template-specific step logic for one (template, event kind)
// pair. Handlers run only after the subject gate has passed.
type handlerFunc func(ctx context.Context, t *Tracker, o *objective.Objective, ev event.Event)

// Tracker dispatches domain events against the active daily objective.
type Tracker struct {
	deps     Deps
	handlers map[handlerKey]handlerFunc
}

func New(deps Deps) *Tracker {
	if deps.RitualRadius <= 0 {
		deps.RitualRadius = 50
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	t := &Tracker{
		deps:     deps,
		handlers: make(map[handlerKey]handlerFunc),
	}
	t.registerDefaults()
	return t
}

// Attach subscribes the tracker to every tracked event kind. Closing the
// returned subscription detaches all of them.
func (t *Tracker) Attach(bus *event.Bus) *event.Subscription {
	return bus.Subscribe(t.HandleEvent, event.Kinds()...)
}

func (t *Tracker) register(templateID string, kind event.Kind, fn handlerFunc) {
	t.handlers[handlerKey{templateID: templateID, kind: kind}] = fn
}

// HandleEvent runs the full dispatch sequence for one event: fetch the
// active daily, gate on the declared target category, then hand off to the
// (template, kind) handler. Events that do not apply are discarded silently.
func (t *Tracker) HandleEvent(ctx context.Context, ev event.Event) {
	o := t.deps.Manager.CurrentDaily()
	if o == nil || o.Terminal() {
		return
	}
	if !subjectGate(o, ev) {
		return
	}
	fn, ok := t.handlers[handlerKey{templateID: o.TemplateID, kind: ev.Kind}]
	if !ok {
		return
	}
	fn(ctx, t, o, ev)
}

// subjectGate applies the objective's target-category constraint to the
// event's subject. A concrete target with no subject on the event is a
// non-match. Gift events pass through, recipient matching uses the
// gift-side predicate inside the handler; cooked parts carry no being,
// their origin was already checked at the detach step.
func subjectGate(o *objective.Objective, ev event.Event) bool {
	target := o.Params.TargetType
	if target == "" || target == being.CatAnyone {
		return true
	}
	switch ev.Kind {
	case event.KindPartGifted, event.KindPartCooked:
		return true
	}
	if ev.Subject == nil {
		return false
	}
	return being.MatchesTarget(*ev.Subject, target)
}

// completeStep is the sole mutator of step state. Unknown ids, terminal
// objectives and already-complete steps are no-ops. Completing the last step
// triggers the objective completion path exactly once.
func (t *Tracker) completeStep(ctx context.Context, o *objective.Objective, stepID string) {
	if o == nil || o.Terminal() || len(o.Steps) == 0 {
		return
	}
	step := o.Step(stepID)
	if step == nil || !o.MarkStep(stepID) {
		return
	}

	if t.deps.Telemetry != nil {
		_ = t.deps.Telemetry.RecordEvent(telemetry.EventStepCompleted, telemetry.EventMetadata{
			"objective_id": o.ID,
			"template_id":  o.TemplateID,
			"step_id":      stepID,
		})
	}
	if t.deps.Notifier != nil {
		t.deps.Notifier.Show(fmt.Sprintf("%s: %s", o.Title, step.Text), toastDuration)
	}
	t.deps.Logger.Printf("objective %d: step %q complete", o.ID, stepID)

	if o.AllStepsComplete() {
		t.deps.Manager.CompleteObjective(ctx, o.ID)
	}
}

// completeObjective is the direct completion path for step-less templates.
func (t *Tracker) completeObjective(ctx context.Context, o *objective.Objective) {
	t.deps.Manager.CompleteObjective(ctx, o.ID)
}

// nearRitualSite reports whether the event position is within the ritual
// radius of any known site. Events without a position never qualify.
func (t *Tracker) nearRitualSite(ev event.Event) bool {
	if !ev.HasPos || t.deps.Sites == nil {
		return false
	}
	for _, s := range t.deps.Sites.Sites() {
		if math.Hypot(ev.X-s.X, ev.Y-s.Y) <= t.deps.RitualRadius {
			return true
		}
	}
	return false
}
