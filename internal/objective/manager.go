package objective

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"gloam/internal/telemetry"
	"gloam/internal/world"
)

// Bank is the slice of the template bank the manager needs: one freshly
// generated daily content per day.
type Bank interface {
	PickDaily(ws world.State) Content
}

const toastDuration = 4 * time.Second

// Deps are the collaborators the manager is constructed with. Nothing is
// looked up dynamically at call time.
type Deps struct {
	Bank       Bank
	Ledger     world.RewardLedger
	Notifier   world.Notifier
	Highlights world.Highlighter
	Actions    world.ActionRegistry
	Sites      world.RitualSiteSource
	Telemetry  telemetry.Sink
	Clock      Clock
	Rand       *rand.Rand
	Logger     *log.Logger

	// SanityReward and SanityPenalty are the daily resolution deltas.
	// Zero values fall back to 1.
	SanityReward  int
	SanityPenalty int
}

// Manager owns the objective collection and enforces the single-active-daily
// invariant: at most one non-terminal daily objective exists at any time.
type Manager struct {
	mu        sync.Mutex
	deps      Deps
	items     []*Objective
	daily     *Objective
	nextID    int
	observers []func()
}

func NewManager(deps Deps) *Manager {
	if deps.Clock == nil {
		deps.Clock = RealClock{}
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.SanityReward <= 0 {
		deps.SanityReward = 1
	}
	if deps.SanityPenalty <= 0 {
		deps.SanityPenalty = 1
	}
	return &Manager{deps: deps, nextID: 1}
}

// OnChange registers an observer for "objective set changed".
func (m *Manager) OnChange(fn func()) {
	m.mu.Lock()
	m.observers = append(m.observers, fn)
	m.mu.Unlock()
}

// StartNewDay resolves the previous daily objective (failing it if it was
// still open), clears its highlights and context actions, then installs a
// freshly generated daily objective and configures the world for it.
func (m *Manager) StartNewDay(ctx context.Context, ws world.State) *Objective {
	m.mu.Lock()

	if m.daily != nil && !m.daily.Terminal() {
		m.resolveLocked(m.daily, false)
	}

	// Drop every daily (terminal or not) from the collection.
	kept := m.items[:0]
	for _, o := range m.items {
		if !o.Daily {
			kept = append(kept, o)
		}
	}
	m.items = kept
	m.daily = nil

	if m.deps.Highlights != nil {
		m.deps.Highlights.Clear()
	}

	content := m.deps.Bank.PickDaily(ws)
	o := m.installLocked(content, true)

	m.applyHighlightsLocked(o)
	m.registerActionsLocked(o, content.Actions)

	m.record(telemetry.EventDayStarted, telemetry.EventMetadata{"objective_id": o.ID, "template_id": o.TemplateID})
	m.deps.Logger.Printf("new day: objective %d (%s) %q", o.ID, o.TemplateID, o.Title)
	if m.deps.Notifier != nil {
		m.deps.Notifier.Show(fmt.Sprintf("The voices demand: %s", o.Title), toastDuration)
	}

	m.mu.Unlock()
	m.notifyObservers()
	return o
}

// Add creates a non-daily objective from content and returns it. Context
// actions the content carries are registered for the objective's lifetime,
// same as for dailies.
func (m *Manager) Add(ctx context.Context, content Content) *Objective {
	m.mu.Lock()
	o := m.installLocked(content, false)
	m.registerActionsLocked(o, content.Actions)
	m.mu.Unlock()
	m.notifyObservers()
	return o
}

// Remove deletes the objective with the given id. Unknown ids are a no-op.
func (m *Manager) Remove(ctx context.Context, id int) bool {
	m.mu.Lock()
	removed := false
	kept := m.items[:0]
	for _, o := range m.items {
		if o.ID == id {
			removed = true
			if m.daily == o {
				m.daily = nil
			}
			if m.deps.Actions != nil {
				m.deps.Actions.UnregisterAllFor(o.ID)
			}
			continue
		}
		kept = append(kept, o)
	}
	m.items = kept
	m.mu.Unlock()
	if removed {
		m.notifyObservers()
	}
	return removed
}

// CompleteObjective transitions the objective to complete and applies reward
// side effects. Absent or terminal objectives are a no-op.
func (m *Manager) CompleteObjective(ctx context.Context, id int) bool {
	return m.resolve(ctx, id, true)
}

// FailObjective transitions the objective to failed and applies penalty side
// effects. Absent or terminal objectives are a no-op.
func (m *Manager) FailObjective(ctx context.Context, id int) bool {
	return m.resolve(ctx, id, false)
}

func (m *Manager) resolve(ctx context.Context, id int, success bool) bool {
	m.mu.Lock()
	o := m.findLocked(id)
	if o == nil || o.Terminal() {
		m.mu.Unlock()
		return false
	}
	m.resolveLocked(o, success)
	m.mu.Unlock()
	m.notifyObservers()
	return true
}

// CurrentDaily returns the active daily objective, or nil once it has
// resolved. This is the single source of truth the tracker consults.
func (m *Manager) CurrentDaily() *Objective {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.daily
}

// Get returns the objective with the given id, or nil.
func (m *Manager) Get(id int) *Objective {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findLocked(id)
}

// Objectives returns the current collection in creation order.
func (m *Manager) Objectives() []*Objective {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Objective, len(m.items))
	copy(out, m.items)
	return out
}

// Incomplete returns every non-terminal objective.
func (m *Manager) Incomplete() []*Objective {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Objective, 0, len(m.items))
	for _, o := range m.items {
		if !o.Terminal() {
			out = append(out, o)
		}
	}
	return out
}

func (m *Manager) findLocked(id int) *Objective {
	for _, o := range m.items {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func (m *Manager) installLocked(content Content, daily bool) *Objective {
	steps := make([]Step, len(content.Steps))
	copy(steps, content.Steps)

	var counter *ScopedCounter
	if content.Counter != nil {
		c := *content.Counter
		counter = &c
	}

	o := &Objective{
		ID:          m.nextID,
		TemplateID:  content.TemplateID,
		Title:       content.Title,
		Description: content.Description,
		XP:          content.XP,
		Daily:       daily,
		Steps:       steps,
		Params:      content.Params,
		Counter:     counter,
		CreatedAt:   m.deps.Clock.Now(),
	}
	m.nextID++
	m.items = append(m.items, o)
	if daily {
		m.daily = o
	}
	m.record(telemetry.EventObjectiveInstalled, telemetry.EventMetadata{
		"objective_id": o.ID,
		"template_id":  o.TemplateID,
		"daily":        daily,
	})
	return o
}

func (m *Manager) applyHighlightsLocked(o *Objective) {
	if m.deps.Highlights == nil {
		return
	}
	if o.Params.HighlightLocation != "" {
		m.deps.Highlights.HighlightRegion(o.Params.HighlightLocation)
	}
	if o.Params.HighlightRitualSite && m.deps.Sites != nil {
		if sites := m.deps.Sites.Sites(); len(sites) > 0 {
			s := sites[m.deps.Rand.Intn(len(sites))]
			m.deps.Highlights.HighlightSite(s.X, s.Y)
		}
	}
}

func (m *Manager) registerActionsLocked(o *Objective, specs []ActionSpec) {
	if m.deps.Actions == nil {
		return
	}
	for _, spec := range specs {
		m.deps.Actions.Register(spec.Kind, world.ActionBinding{
			ObjectiveID: o.ID,
			ActionID:    spec.ActionID,
			WithObject:  spec.WithObject,
			Constraint:  spec.Constraint,
		})
	}
}

// resolveLocked applies the terminal transition. Whichever of complete/fail
// happens first wins; the caller has already checked Terminal.
func (m *Manager) resolveLocked(o *Objective, success bool) {
	if success {
		o.Complete = true
	} else {
		o.Failed = true
	}

	if m.deps.Notifier != nil {
		if success {
			m.deps.Notifier.Show(fmt.Sprintf("Objective complete: %s", o.Title), toastDuration)
		} else {
			m.deps.Notifier.Show(fmt.Sprintf("Objective failed: %s", o.Title), toastDuration)
		}
	}

	if success && o.XP > 0 && m.deps.Ledger != nil {
		m.deps.Ledger.AwardExperience(o.XP, o.Title)
	}

	if m.deps.Actions != nil {
		m.deps.Actions.UnregisterAllFor(o.ID)
	}

	if o.Daily {
		if m.deps.Ledger != nil {
			if success {
				m.deps.Ledger.IncreaseSanity(m.deps.SanityReward)
			} else {
				m.deps.Ledger.DecreaseSanity(m.deps.SanityPenalty)
			}
		}
		if m.deps.Highlights != nil {
			m.deps.Highlights.Clear()
		}
		if m.daily == o {
			m.daily = nil
		}
	}

	// Accumulator state dies with the objective.
	o.Counter = nil

	if success {
		m.record(telemetry.EventObjectiveCompleted, telemetry.EventMetadata{"objective_id": o.ID, "template_id": o.TemplateID})
	} else {
		m.record(telemetry.EventObjectiveFailed, telemetry.EventMetadata{"objective_id": o.ID, "template_id": o.TemplateID})
	}
	m.deps.Logger.Printf("objective %d resolved: complete=%t failed=%t", o.ID, o.Complete, o.Failed)
}

func (m *Manager) record(t telemetry.EventType, meta telemetry.EventMetadata) {
	if m.deps.Telemetry == nil {
		return
	}
	_ = m.deps.Telemetry.RecordEvent(t, meta)
}

func (m *Manager) notifyObservers() {
	m.mu.Lock()
	obs := make([]func(), len(m.observers))
	copy(obs, m.observers)
	m.mu.Unlock()
	for _, fn := range obs {
		fn()
	}
}
