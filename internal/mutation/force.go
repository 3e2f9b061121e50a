package mutation

import (
	"fmt"
	"log/slog"

	"github.com/aidanlsb/rtend/internal/store"
)

// Step is one stage of a cascading delete. Rows is the number of rows the
// stage would remove (in a plan) or did remove (after execution).
type Step struct {
	Kind  store.Kind `json:"kind"`
	Label string     `json:"label"`
	Rows  int64      `json:"rows"`
}

// Plan describes a cascading delete before it runs.
type Plan struct {
	Kind   store.Kind `json:"kind"`
	ID     int64      `json:"id"`
	Exists bool       `json:"exists"`
	Steps  []Step     `json:"steps"`
}

// Total is the number of rows the plan removes.
func (p *Plan) Total() int64 {
	var n int64
	for _, s := range p.Steps {
		n += s.Rows
	}
	return n
}

// Empty reports whether the cascade has nothing to remove. A plan whose row
// is already gone is not empty while dependents left by a plain delete
// remain.
func (p *Plan) Empty() bool {
	return p.Total() == 0
}

// stage is a step label plus the count and delete statements behind it.
type stage struct {
	kind   store.Kind
	label  string
	count  func(tx *store.Tx) (int64, error)
	delete func(tx *store.Tx) (int64, error)
}

func entityStages(id int64) []stage {
	var relationIDs []int64
	touching := func(tx *store.Tx) ([]int64, error) {
		if relationIDs != nil {
			return relationIDs, nil
		}
		ids, err := tx.RelationIDsTouching(id)
		if err != nil {
			return nil, err
		}
		if ids == nil {
			ids = []int64{}
		}
		relationIDs = ids
		return ids, nil
	}

	return []stage{
		{
			kind:  store.KindRelationSnippet,
			label: "relation snippets of relations touching the entity",
			count: func(tx *store.Tx) (int64, error) {
				ids, err := touching(tx)
				if err != nil {
					return 0, err
				}
				return tx.CountRelationSnippets(ids)
			},
			delete: func(tx *store.Tx) (int64, error) {
				ids, err := touching(tx)
				if err != nil {
					return 0, err
				}
				return tx.DeleteRelationSnippets(ids)
			},
		},
		{
			kind:  store.KindRelation,
			label: "relations touching the entity",
			count: func(tx *store.Tx) (int64, error) {
				ids, err := touching(tx)
				return int64(len(ids)), err
			},
			delete: func(tx *store.Tx) (int64, error) { return tx.DeleteRelationsTouching(id) },
		},
		{
			kind:   store.KindSnippet,
			label:  "snippets of the entity",
			count:  func(tx *store.Tx) (int64, error) { return tx.CountOwned(store.KindSnippet, id) },
			delete: func(tx *store.Tx) (int64, error) { return tx.DeleteOwned(store.KindSnippet, id) },
		},
		{
			kind:   store.KindAlias,
			label:  "aliases of the entity",
			count:  func(tx *store.Tx) (int64, error) { return tx.CountOwned(store.KindAlias, id) },
			delete: func(tx *store.Tx) (int64, error) { return tx.DeleteOwned(store.KindAlias, id) },
		},
		selfStage(store.KindEntity, id),
	}
}

func relationStages(id int64) []stage {
	return []stage{
		{
			kind:   store.KindRelationSnippet,
			label:  "relation snippets of the relation",
			count:  func(tx *store.Tx) (int64, error) { return tx.CountOwned(store.KindRelationSnippet, id) },
			delete: func(tx *store.Tx) (int64, error) { return tx.DeleteOwned(store.KindRelationSnippet, id) },
		},
		selfStage(store.KindRelation, id),
	}
}

func selfStage(kind store.Kind, id int64) stage {
	return stage{
		kind:  kind,
		label: fmt.Sprintf("the %s itself", kind),
		count: func(tx *store.Tx) (int64, error) {
			ok, err := tx.Exists(kind, id)
			if ok {
				return 1, err
			}
			return 0, err
		},
		delete: func(tx *store.Tx) (int64, error) { return tx.DeleteByID(kind, id) },
	}
}

func stagesFor(kind store.Kind, id int64) ([]stage, error) {
	switch kind {
	case store.KindEntity:
		return entityStages(id), nil
	case store.KindRelation:
		return relationStages(id), nil
	default:
		return nil, fmt.Errorf("%s: %w", kind, ErrForceUnsupported)
	}
}

// PlanForceDelete counts what a cascading delete of the entity or relation
// would remove. Nothing is modified.
func PlanForceDelete(db *store.Database, kind store.Kind, id int64) (*Plan, error) {
	stages, err := stagesFor(kind, id)
	if err != nil {
		return nil, err
	}
	plan := &Plan{Kind: kind, ID: id}
	err = db.WithTx(func(tx *store.Tx) error {
		exists, err := tx.Exists(kind, id)
		if err != nil {
			return err
		}
		plan.Exists = exists
		for _, s := range stages {
			n, err := s.count(tx)
			if err != nil {
				return fmt.Errorf("plan %s: %w", s.label, err)
			}
			plan.Steps = append(plan.Steps, Step{Kind: s.kind, Label: s.label, Rows: n})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// ForceDelete runs the cascading delete of an entity or relation in one
// transaction. Steps run in order (relation snippets, relations, snippets,
// aliases, then the row itself) and report to fn as each completes. The
// first failing step aborts the rest and rolls back.
func ForceDelete(db *store.Database, kind store.Kind, id int64, fn func(Step)) ([]Step, error) {
	stages, err := stagesFor(kind, id)
	if err != nil {
		return nil, err
	}
	var done []Step
	err = db.WithTx(func(tx *store.Tx) error {
		for _, s := range stages {
			n, err := s.delete(tx)
			if err != nil {
				return fmt.Errorf("delete %s: %w", s.label, err)
			}
			step := Step{Kind: s.kind, Label: s.label, Rows: n}
			slog.Debug("force delete step", "kind", s.kind.String(), "label", s.label, "rows", n)
			done = append(done, step)
			if fn != nil {
				fn(step)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return done, nil
}
