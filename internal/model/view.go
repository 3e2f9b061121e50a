package model

import "fmt"

// Tier selects how much of an entity is shown.
type Tier int

const (
	TierPlain  Tier = iota // id and created timestamp
	TierLong               // alias summary and counts
	TierDetail             // unified log of everything touching the entity
)

// TierFromVerbosity maps a repeated -v count onto a tier, saturating at TierDetail.
func TierFromVerbosity(v int) Tier {
	switch {
	case v <= 0:
		return TierPlain
	case v == 1:
		return TierLong
	default:
		return TierDetail
	}
}

func (t Tier) String() string {
	switch t {
	case TierPlain:
		return "plain"
	case TierLong:
		return "long"
	case TierDetail:
		return "detail"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// DetailKind tags a row of the tier-2 log. The declaration order is the sort order.
type DetailKind int

const (
	DetailEntity DetailKind = iota + 1
	DetailAlias
	DetailSnippet
	DetailRelation
	DetailRelationSnippet
)

func (k DetailKind) String() string {
	switch k {
	case DetailEntity:
		return "entity"
	case DetailAlias:
		return "alias"
	case DetailSnippet:
		return "snippet"
	case DetailRelation:
		return "relation"
	case DetailRelationSnippet:
		return "relation_snippet"
	default:
		return fmt.Sprintf("DetailKind(%d)", int(k))
	}
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k DetailKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// DetailRow is one row of the tier-2 log. Data holds the row's text, or
// "<a> | <b>" for relations, and is empty for the entity row.
type DetailRow struct {
	Kind    DetailKind `json:"type"`
	ID      int64      `json:"id"`
	Data    string     `json:"data"`
	Created Timestamp  `json:"created"`
	Updated Timestamp  `json:"updated"`
}

// EntityView is the result of showing one entity: exactly one of PlainView,
// LongView or DetailView.
type EntityView interface {
	Tier() Tier
	isEntityView()
}

// PlainView holds the tier-0 row, or nil when the entity does not exist.
type PlainView struct {
	Entity *Entity `json:"entity"`
}

// LongView holds the tier-1 row, or nil when the entity does not exist.
type LongView struct {
	Entity *EntityLong `json:"entity"`
}

// DetailView holds the tier-2 log. It is empty when the entity does not exist.
type DetailView struct {
	EntityID int64       `json:"entity_id"`
	Rows     []DetailRow `json:"rows"`
}

func (PlainView) Tier() Tier  { return TierPlain }
func (LongView) Tier() Tier   { return TierLong }
func (DetailView) Tier() Tier { return TierDetail }

func (PlainView) isEntityView()  {}
func (LongView) isEntityView()   {}
func (DetailView) isEntityView() {}
