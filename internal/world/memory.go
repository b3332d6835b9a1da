package world

import (
	"sync"
	"time"
)

// MemoryLedger is an in-memory RewardLedger (dev/test use).
type MemoryLedger struct {
	mu     sync.RWMutex
	xp     int
	sanity int
	awards []Award
}

// Award records one experience grant.
type Award struct {
	Amount int    `json:"amount"`
	Label  string `json:"label"`
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

func (l *MemoryLedger) AwardExperience(amount int, label string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.xp += amount
	l.awards = append(l.awards, Award{Amount: amount, Label: label})
}

func (l *MemoryLedger) IncreaseSanity(amount int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sanity += amount
}

func (l *MemoryLedger) DecreaseSanity(amount int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sanity -= amount
}

func (l *MemoryLedger) Experience() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.xp
}

func (l *MemoryLedger) Sanity() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sanity
}

func (l *MemoryLedger) Awards() []Award {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Award, len(l.awards))
	copy(out, l.awards)
	return out
}

// Toast is one captured notification.
type Toast struct {
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"`
}

// MemoryNotifier keeps the most recent toasts so the API and tests can
// inspect them.
type MemoryNotifier struct {
	mu     sync.RWMutex
	toasts []Toast
	keep   int
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{keep: 50}
}

func (n *MemoryNotifier) Show(message string, duration time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, Toast{Message: message, Duration: duration})
	if len(n.toasts) > n.keep {
		n.toasts = n.toasts[len(n.toasts)-n.keep:]
	}
}

func (n *MemoryNotifier) Toasts() []Toast {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}

// MemoryActionRegistry is an in-memory ActionRegistry.
type MemoryActionRegistry struct {
	mu       sync.RWMutex
	bindings map[string][]ActionBinding // kind -> bindings
}

func NewMemoryActionRegistry() *MemoryActionRegistry {
	return &MemoryActionRegistry{bindings: make(map[string][]ActionBinding)}
}

func (r *MemoryActionRegistry) Register(kind string, binding ActionBinding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[kind] = append(r.bindings[kind], binding)
}

func (r *MemoryActionRegistry) UnregisterAllFor(objectiveID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for kind, list := range r.bindings {
		kept := list[:0]
		for _, b := range list {
			if b.ObjectiveID != objectiveID {
				kept = append(kept, b)
			}
		}
		if len(kept) == 0 {
			delete(r.bindings, kind)
			continue
		}
		r.bindings[kind] = kept
	}
}

// Bindings returns all registrations for a kind.
func (r *MemoryActionRegistry) Bindings(kind string) []ActionBinding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ActionBinding, len(r.bindings[kind]))
	copy(out, r.bindings[kind])
	return out
}

// Count returns the total number of live registrations.
func (r *MemoryActionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, list := range r.bindings {
		total += len(list)
	}
	return total
}

// MemoryHighlighter records the current highlight state.
type MemoryHighlighter struct {
	mu     sync.RWMutex
	region *RegionID
	site   *Site
}

func NewMemoryHighlighter() *MemoryHighlighter {
	return &MemoryHighlighter{}
}

func (h *MemoryHighlighter) HighlightRegion(region RegionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.region = &region
}

func (h *MemoryHighlighter) HighlightSite(x, y float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.site = &Site{X: x, Y: y}
}

func (h *MemoryHighlighter) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.region = nil
	h.site = nil
}

func (h *MemoryHighlighter) Region() (RegionID, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.region == nil {
		return "", false
	}
	return *h.region, true
}

func (h *MemoryHighlighter) Site() (Site, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.site == nil {
		return Site{}, false
	}
	return *h.site, true
}

// Rect is an axis-aligned area in world units.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func (r Rect) contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// StubMap is a LocationClassifier stand-in with explicitly set answers. The
// real classifier lives in the map layer; this one backs wiring and tests.
type StubMap struct {
	mu           sync.RWMutex
	playerRegion RegionID
	foreignHomes []Rect
}

func NewStubMap() *StubMap {
	return &StubMap{}
}

func (m *StubMap) SetPlayerRegion(region RegionID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playerRegion = region
}

func (m *StubMap) AddForeignHome(r Rect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.foreignHomes = append(m.foreignHomes, r)
}

func (m *StubMap) PlayerInRegion(region RegionID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.playerRegion == region
}

func (m *StubMap) InsideSomeoneElsesHome(x, y float64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.foreignHomes {
		if r.contains(x, y) {
			return true
		}
	}
	return false
}

// StaticSites is a fixed RitualSiteSource.
type StaticSites []Site

func (s StaticSites) Sites() []Site {
	out := make([]Site, len(s))
	copy(out, s)
	return out
}
