package world

import (
	"time"

	"gloam/internal/being"
)

// RegionID names one of the fixed set of map regions the objective system can
// reference. The classifier behind LocationClassifier owns the geometry.
type RegionID string

const (
	RegionChapel  RegionID = "chapel"
	RegionMill    RegionID = "mill"
	RegionSquare  RegionID = "square"
	RegionBog     RegionID = "bog"
	RegionOrchard RegionID = "orchard"
)

// Regions returns the full enumerated set.
func Regions() []RegionID {
	return []RegionID{RegionChapel, RegionMill, RegionSquare, RegionBog, RegionOrchard}
}

// State is the world snapshot the template bank filters eligibility against.
type State struct {
	HasPrisoner bool
}

// Site is a ritual site position in world units.
type Site struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LocationClassifier answers geometric membership queries. Implemented by the
// map layer, not by this module.
type LocationClassifier interface {
	PlayerInRegion(region RegionID) bool
	InsideSomeoneElsesHome(x, y float64) bool
}

// RitualSiteSource exposes all ritual site positions.
type RitualSiteSource interface {
	Sites() []Site
}

// RewardLedger accumulates experience and sanity.
type RewardLedger interface {
	AwardExperience(amount int, label string)
	IncreaseSanity(amount int)
	DecreaseSanity(amount int)
}

// Notifier is the toast surface. Show is fire-and-forget.
type Notifier interface {
	Show(message string, duration time.Duration)
}

// EntityConstraint restricts which in-world beings a context action may target.
type EntityConstraint struct {
	Category being.Category `json:"category,omitempty"`
	Dead     bool           `json:"dead,omitempty"`
}

// ActionBinding describes one objective-scoped context action.
type ActionBinding struct {
	ObjectiveID int              `json:"objective_id"`
	ActionID    string           `json:"action_id"`
	WithObject  string           `json:"with_object,omitempty"`
	Constraint  EntityConstraint `json:"constraint,omitempty"`
}

// ActionRegistry enables context-sensitive verbs for the duration of one
// objective.
type ActionRegistry interface {
	Register(kind string, binding ActionBinding)
	UnregisterAllFor(objectiveID int)
}

// Highlighter drives the minimap highlight layer.
type Highlighter interface {
	HighlightRegion(region RegionID)
	HighlightSite(x, y float64)
	Clear()
}
