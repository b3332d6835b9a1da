package event

import (
	"time"

	"github.com/google/uuid"

	"gloam/internal/being"
)

// Kind identifies a domain event. The completion tracker subscribes to this
// fixed set and nothing else.
type Kind string

const (
	KindSapientKilled  Kind = "sapient_killed"
	KindAnimalKilled   Kind = "animal_killed"
	KindAffectionShown Kind = "affection_shown"
	KindVerbPerformed  Kind = "verb_performed"
	KindPartDetached   Kind = "part_detached"
	KindPartCooked     Kind = "part_cooked"
	KindPartGifted     Kind = "part_gifted"
	KindPartConsumed   Kind = "part_consumed"
	KindCorpsePlaced   Kind = "corpse_placed"
	KindFollowStarted  Kind = "follow_started"
	KindCaptiveTaken   Kind = "captive_taken"
	KindRitualHeld     Kind = "ritual_held"
	KindCoveringWorn   Kind = "covering_worn"
)

// Kinds returns every tracked event kind, in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindSapientKilled,
		KindAnimalKilled,
		KindAffectionShown,
		KindVerbPerformed,
		KindPartDetached,
		KindPartCooked,
		KindPartGifted,
		KindPartConsumed,
		KindCorpsePlaced,
		KindFollowStarted,
		KindCaptiveTaken,
		KindRitualHeld,
		KindCoveringWorn,
	}
}

// Event is the canonical record of something that happened in the world.
// Fields beyond Kind are optional; a handler that needs a field the event
// does not carry treats the event as not matching, never as an error.
type Event struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`

	// Subject is the being the event happened to (victim, followee, captive,
	// origin of a body part or covering).
	Subject *being.Entity `json:"subject,omitempty"`
	// Recipient is the being on the receiving end of a gift.
	Recipient *being.Entity `json:"recipient,omitempty"`

	Verb     string `json:"verb,omitempty"`
	BodyPart string `json:"body_part,omitempty"`
	Object   string `json:"object,omitempty"`

	// BuildingID scopes events to one building instance.
	BuildingID string `json:"building_id,omitempty"`

	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	HasPos bool    `json:"has_pos,omitempty"`

	At time.Time `json:"at"`
}

// New returns an event of the given kind with a fresh id and timestamp.
func New(kind Kind) Event {
	return Event{
		ID:   uuid.NewString(),
		Kind: kind,
		At:   time.Now(),
	}
}

// WithPos returns a copy of the event carrying a world position.
func (e Event) WithPos(x, y float64) Event {
	e.X, e.Y, e.HasPos = x, y, true
	return e
}
