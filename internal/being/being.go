package being

// Category classifies an in-world being for objective targeting.
type Category string

const (
	// CatAnyone is the wildcard category. It matches every being.
	CatAnyone Category = "anyone"

	CatAdult Category = "adult"
	CatChild Category = "child"

	// Appearance subcategories of the village folk.
	CatVessel Category = "vessel"
	CatHollow Category = "hollow"
	CatPale   Category = "pale"

	CatLawOfficer Category = "law_officer"
	CatCaptive    Category = "captive"

	// Animal kinds.
	CatSwine Category = "swine"
	CatHound Category = "hound"
)

// IsAnimal reports whether the category names an animal kind.
func (c Category) IsAnimal() bool {
	return c == CatSwine || c == CatHound
}

// Entity is a snapshot of a being as carried on a domain event. Flags are
// captured at the moment the event fired; the tracker never looks the being
// up again afterwards.
type Entity struct {
	ID       string   `json:"id"`
	Category Category `json:"category"` // concrete appearance category (adult, child, vessel, hollow, pale, swine, hound)

	Child           bool `json:"child,omitempty"`
	LawOfficer      bool `json:"law_officer,omitempty"`
	Captive         bool `json:"captive,omitempty"`
	Corpse          bool `json:"corpse,omitempty"`
	FollowingPlayer bool `json:"following_player,omitempty"`
}

// IsPerson reports whether the entity is a sapient being (not an animal).
func (e Entity) IsPerson() bool {
	return !e.Category.IsAnimal()
}

// categoryMatch is the shared predicate behind MatchesTarget and
// MatchesGiftRecipient. The second return value reports whether the target
// category was recognized; the callers disagree on what an unrecognized
// category means.
func categoryMatch(subject Entity, target Category) (matched, known bool) {
	switch target {
	case CatAnyone:
		return true, true
	case CatAdult:
		return subject.IsPerson() && !subject.Child, true
	case CatChild:
		return subject.IsPerson() && subject.Child, true
	case CatVessel, CatHollow, CatPale:
		return subject.Category == target, true
	case CatLawOfficer:
		return subject.LawOfficer, true
	case CatCaptive:
		return subject.Captive, true
	case CatSwine, CatHound:
		return subject.Category == target, true
	}
	return false, false
}

// MatchesTarget reports whether the subject satisfies the declared target
// category. Unrecognized categories fail closed.
func MatchesTarget(subject Entity, target Category) bool {
	matched, known := categoryMatch(subject, target)
	if !known {
		return false
	}
	return matched
}

// MatchesGiftRecipient is the recipient-side variant of MatchesTarget.
// Unrecognized categories fall back to "is this a generic adult person"
// instead of rejecting. Do not unify the two predicates; the fallback only
// applies on the gift side.
func MatchesGiftRecipient(recipient Entity, target Category) bool {
	matched, known := categoryMatch(recipient, target)
	if !known {
		return recipient.IsPerson() && !recipient.Child
	}
	return matched
}
