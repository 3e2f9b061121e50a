package store

import (
	"fmt"
	"strings"
)

// Kind identifies one of the five tables.
type Kind int

const (
	KindEntity Kind = iota + 1
	KindAlias
	KindSnippet
	KindRelation
	KindRelationSnippet
)

// Kinds lists every kind in dependency order.
var Kinds = []Kind{KindEntity, KindAlias, KindSnippet, KindRelation, KindRelationSnippet}

// Table returns the table name backing the kind.
func (k Kind) Table() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindAlias:
		return "alias"
	case KindSnippet:
		return "snippet"
	case KindRelation:
		return "relation"
	case KindRelationSnippet:
		return "relation_snippet"
	default:
		return ""
	}
}

// String returns the user-facing name ("relation snippet" rather than the table name).
func (k Kind) String() string {
	if k == KindRelationSnippet {
		return "relation snippet"
	}
	if t := k.Table(); t != "" {
		return t
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// TextColumn returns the editable text column of the kind.
// Entities and relations carry no text and report false.
func (k Kind) TextColumn() (string, bool) {
	switch k {
	case KindAlias:
		return "name", true
	case KindSnippet, KindRelationSnippet:
		return "data", true
	default:
		return "", false
	}
}

// ParseKind accepts table names as well as the hyphenated CLI spelling
// ("relation-snippet").
func ParseKind(s string) (Kind, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, k := range Kinds {
		if k.Table() == norm {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

// MarshalText renders the kind by its user-facing name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
