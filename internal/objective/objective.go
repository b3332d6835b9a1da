package objective

import (
	"time"

	"gloam/internal/being"
	"gloam/internal/world"
)

// Step is one named stage of a multi-step objective. Steps belong to exactly
// one objective and are only ever mutated through MarkStep.
type Step struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Complete bool   `json:"complete"`
}

// ScopedCounter counts qualifying occurrences within one scope instance
// (e.g. kills under the same roof). Switching to a new scope key resets the
// count to 1 rather than accumulating across instances.
type ScopedCounter struct {
	ScopeKey string `json:"scope_key"`
	Count    int    `json:"count"`
	Required int    `json:"required"`
}

// Bump records one occurrence under key and returns the running count.
func (c *ScopedCounter) Bump(key string) int {
	if key == c.ScopeKey {
		c.Count++
	} else {
		c.ScopeKey = key
		c.Count = 1
	}
	return c.Count
}

// Reached reports whether the threshold has been met.
func (c *ScopedCounter) Reached() bool {
	return c.Required > 0 && c.Count >= c.Required
}

// Params are the template parameters bound at generation time and copied onto
// the objective instance verbatim.
type Params struct {
	Action              string         `json:"action,omitempty"`
	TargetType          being.Category `json:"target_type,omitempty"`
	BodyPart            string         `json:"body_part,omitempty"`
	ObjectType          string         `json:"object_type,omitempty"`
	Location            world.RegionID `json:"location,omitempty"`
	HighlightLocation   world.RegionID `json:"highlight_location,omitempty"`
	HighlightRitualSite bool           `json:"highlight_ritual_site,omitempty"`
}

// Content is the output of one template generation call: everything needed to
// build an objective instance.
type Content struct {
	TemplateID  string
	Title       string
	Description string
	XP          int
	Steps       []Step
	Params      Params
	Counter     *ScopedCounter
	Actions     []ActionSpec
}

// ActionSpec is a context action the objective enables for its lifetime.
type ActionSpec struct {
	Kind       string
	ActionID   string
	WithObject string
	Constraint world.EntityConstraint
}

// Objective is one live (or resolved) objective instance.
type Objective struct {
	ID          int    `json:"id"`
	TemplateID  string `json:"template_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	XP          int    `json:"xp"`

	Daily    bool `json:"daily"`
	Complete bool `json:"complete"`
	Failed   bool `json:"failed"`

	Steps  []Step `json:"steps,omitempty"`
	Params Params `json:"params"`

	// Counter is the optional accumulator variant. Nil means the template
	// does not accumulate.
	Counter *ScopedCounter `json:"counter,omitempty"`

	// FollowerID is the transient lure hint: the being currently following
	// the player because of this objective. It completes nothing by itself.
	FollowerID string `json:"follower_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Terminal reports whether the objective has reached a terminal state.
// Terminal objectives are never mutated again.
func (o *Objective) Terminal() bool {
	return o.Complete || o.Failed
}

// Step returns the step with the given id, or nil.
func (o *Objective) Step(id string) *Step {
	for i := range o.Steps {
		if o.Steps[i].ID == id {
			return &o.Steps[i]
		}
	}
	return nil
}

// StepComplete reports whether the named step exists and is complete.
func (o *Objective) StepComplete(id string) bool {
	s := o.Step(id)
	return s != nil && s.Complete
}

// AllStepsComplete reports whether every step is complete. Step-less
// objectives report false; they complete through their own direct path.
func (o *Objective) AllStepsComplete() bool {
	if len(o.Steps) == 0 {
		return false
	}
	for i := range o.Steps {
		if !o.Steps[i].Complete {
			return false
		}
	}
	return true
}

// MarkStep marks the named step complete. It reports whether anything
// changed: unknown ids, already-complete steps, terminal objectives and
// step-less objectives are all no-ops.
func (o *Objective) MarkStep(id string) bool {
	if o.Terminal() {
		return false
	}
	s := o.Step(id)
	if s == nil || s.Complete {
		return false
	}
	s.Complete = true
	return true
}
