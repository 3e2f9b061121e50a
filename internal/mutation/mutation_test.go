package mutation

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/rtend/internal/query"
	"github.com/aidanlsb/rtend/internal/store"
)

func openTest(t *testing.T) *store.Database {
	t.Helper()
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func counts(t *testing.T, db *store.Database) map[store.Kind]int64 {
	t.Helper()
	out := make(map[store.Kind]int64)
	for _, k := range store.Kinds {
		n, err := db.Count(k)
		require.NoError(t, err)
		out[k] = n
	}
	return out
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{" 7 ", 7, false},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"1.5", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseID("entity_id", tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidID, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestReadContent(t *testing.T) {
	got, err := ReadContent(strings.NewReader("line one\nline two\r\n\n"))
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got)

	got, err = ReadContent(strings.NewReader("\n\n"))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ReadContent(failingReader{})
	assert.Error(t, err)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestAddEntity(t *testing.T) {
	db := openTest(t)
	first, err := AddEntity(db, "Alice")
	require.NoError(t, err)
	second, err := AddEntity(db, "Bob")
	require.NoError(t, err)
	assert.NotEqual(t, first.EntityID, second.EntityID)

	aliases, err := query.Aliases(db, first.EntityID)
	require.NoError(t, err)
	require.Len(t, aliases, 1)
	assert.Equal(t, "Alice", aliases[0].Name)
	assert.Equal(t, first.AliasID, aliases[0].ID)
}

func TestAddToMissingOwner(t *testing.T) {
	db := openTest(t)
	before := counts(t, db)

	_, err := AddAlias(db, 5, "x")
	assert.ErrorIs(t, err, store.ErrOwnerNotFound)
	_, err = AddSnippet(db, 5, "x")
	assert.ErrorIs(t, err, store.ErrOwnerNotFound)
	_, err = AddRelation(db, 5, 6)
	assert.ErrorIs(t, err, store.ErrOwnerNotFound)
	_, err = AddRelationSnippet(db, 5, "x")
	assert.ErrorIs(t, err, store.ErrOwnerNotFound)

	assert.Equal(t, before, counts(t, db))
}

func TestDeleteMissingLeavesCounts(t *testing.T) {
	db := openTest(t)
	e, err := AddEntity(db, "Alice")
	require.NoError(t, err)
	_, err = AddSnippet(db, e.EntityID, "note")
	require.NoError(t, err)
	before := counts(t, db)

	for _, k := range store.Kinds {
		deleted, err := Delete(db, k, 9999)
		require.NoError(t, err)
		assert.False(t, deleted, k.String())
	}
	assert.Equal(t, before, counts(t, db))
}

func TestDeleteRelationLeavesOrphanSnippets(t *testing.T) {
	db := openTest(t)
	a, err := AddEntity(db, "Alice")
	require.NoError(t, err)
	b, err := AddEntity(db, "Bob")
	require.NoError(t, err)
	rel, err := AddRelation(db, a.EntityID, b.EntityID)
	require.NoError(t, err)
	_, err = AddRelationSnippet(db, rel, "met at conference")
	require.NoError(t, err)

	deleted, err := Delete(db, store.KindRelation, rel)
	require.NoError(t, err)
	assert.True(t, deleted)

	orphans, err := query.RelationSnippets(db, rel)
	require.NoError(t, err)
	assert.Len(t, orphans, 1)
}

func seedGraph(t *testing.T, db *store.Database) (a, b, c int64) {
	t.Helper()
	ea, err := AddEntity(db, "Alice")
	require.NoError(t, err)
	eb, err := AddEntity(db, "Bob")
	require.NoError(t, err)
	ec, err := AddEntity(db, "Carol")
	require.NoError(t, err)
	a, b, c = ea.EntityID, eb.EntityID, ec.EntityID

	_, err = AddAlias(db, a, "Al")
	require.NoError(t, err)
	_, err = AddSnippet(db, a, "likes tea")
	require.NoError(t, err)
	r1, err := AddRelation(db, a, b)
	require.NoError(t, err)
	r2, err := AddRelation(db, c, a)
	require.NoError(t, err)
	r3, err := AddRelation(db, b, c)
	require.NoError(t, err)
	for _, r := range []int64{r1, r2, r3} {
		_, err := AddRelationSnippet(db, r, "note")
		require.NoError(t, err)
	}
	return a, b, c
}

func TestForceDeleteEntity(t *testing.T) {
	db := openTest(t)
	a, b, _ := seedGraph(t, db)

	plan, err := PlanForceDelete(db, store.KindEntity, a)
	require.NoError(t, err)
	assert.True(t, plan.Exists)
	var planned []int64
	for _, s := range plan.Steps {
		planned = append(planned, s.Rows)
	}
	assert.Equal(t, []int64{2, 2, 1, 2, 1}, planned)
	assert.EqualValues(t, 8, plan.Total())

	var reported []Step
	steps, err := ForceDelete(db, store.KindEntity, a, func(s Step) { reported = append(reported, s) })
	require.NoError(t, err)
	assert.Equal(t, steps, reported)

	var kinds []store.Kind
	for _, s := range steps {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []store.Kind{
		store.KindRelationSnippet,
		store.KindRelation,
		store.KindSnippet,
		store.KindAlias,
		store.KindEntity,
	}, kinds)
	for i, s := range steps {
		assert.Equal(t, planned[i], s.Rows, s.Label)
	}

	got := counts(t, db)
	assert.EqualValues(t, 2, got[store.KindEntity])
	assert.EqualValues(t, 1, got[store.KindRelation])
	assert.EqualValues(t, 1, got[store.KindRelationSnippet])
	assert.EqualValues(t, 0, got[store.KindSnippet])
	assert.EqualValues(t, 2, got[store.KindAlias])

	rels, err := query.FindRelations(db, b)
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.NotEqual(t, a, rels[0].EntityIDA)
	assert.NotEqual(t, a, rels[0].EntityIDB)

	again, err := ForceDelete(db, store.KindEntity, a, nil)
	require.NoError(t, err)
	for _, s := range again {
		assert.Zero(t, s.Rows, s.Label)
	}

	plan, err = PlanForceDelete(db, store.KindEntity, a)
	require.NoError(t, err)
	assert.False(t, plan.Exists)
	assert.Zero(t, plan.Total())
	assert.True(t, plan.Empty())
}

func TestForceDeleteAfterPlainDelete(t *testing.T) {
	db := openTest(t)
	a, _, _ := seedGraph(t, db)

	deleted, err := Delete(db, store.KindEntity, a)
	require.NoError(t, err)
	require.True(t, deleted)

	plan, err := PlanForceDelete(db, store.KindEntity, a)
	require.NoError(t, err)
	assert.False(t, plan.Exists)
	assert.False(t, plan.Empty(), "dependents of the deleted entity remain")
	assert.EqualValues(t, 7, plan.Total())

	steps, err := ForceDelete(db, store.KindEntity, a, nil)
	require.NoError(t, err)
	var removed []int64
	for _, s := range steps {
		removed = append(removed, s.Rows)
	}
	assert.Equal(t, []int64{2, 2, 1, 2, 0}, removed)

	got := counts(t, db)
	assert.EqualValues(t, 2, got[store.KindEntity])
	assert.EqualValues(t, 1, got[store.KindRelation])
	assert.EqualValues(t, 1, got[store.KindRelationSnippet])
	assert.EqualValues(t, 0, got[store.KindSnippet])
	assert.EqualValues(t, 2, got[store.KindAlias])
}

func TestForceDeleteRelation(t *testing.T) {
	db := openTest(t)
	a, b, _ := seedGraph(t, db)
	rels, err := query.FindRelations(db, a)
	require.NoError(t, err)
	var rel int64
	for _, r := range rels {
		if r.EntityIDB == b {
			rel = r.ID
		}
	}
	require.NotZero(t, rel)

	steps, err := ForceDelete(db, store.KindRelation, rel, nil)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, store.KindRelationSnippet, steps[0].Kind)
	assert.EqualValues(t, 1, steps[0].Rows)
	assert.Equal(t, store.KindRelation, steps[1].Kind)
	assert.EqualValues(t, 1, steps[1].Rows)

	left, err := query.RelationSnippets(db, rel)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestForceDeleteUnsupportedKind(t *testing.T) {
	db := openTest(t)
	_, err := PlanForceDelete(db, store.KindAlias, 1)
	assert.ErrorIs(t, err, ErrForceUnsupported)
	_, err = ForceDelete(db, store.KindSnippet, 1, nil)
	assert.ErrorIs(t, err, ErrForceUnsupported)
}

func TestEdit(t *testing.T) {
	db := openTest(t)
	e, err := AddEntity(db, "Alice")
	require.NoError(t, err)
	snippetID, err := AddSnippet(db, e.EntityID, "old text")
	require.NoError(t, err)
	otherID, err := AddSnippet(db, e.EntityID, "other")
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE snippet SET updated = '2000-01-01 00:00:00'`)
	require.NoError(t, err)

	updatedOf := func(id int64) string {
		var s string
		require.NoError(t, db.QueryRow(`SELECT updated FROM snippet WHERE id = ?`, id).Scan(&s))
		return s
	}

	t.Run("empty text cancels", func(t *testing.T) {
		_, err := Edit(db, store.KindSnippet, snippetID, EditorFunc(func(string) (string, error) {
			return "\n", nil
		}))
		assert.ErrorIs(t, err, ErrEditCancelled)
		text, err := db.Text(store.KindSnippet, snippetID)
		require.NoError(t, err)
		assert.Equal(t, "old text", text)
		assert.Contains(t, updatedOf(snippetID), "2000-01-01")
	})

	t.Run("editor failure", func(t *testing.T) {
		_, err := Edit(db, store.KindSnippet, snippetID, EditorFunc(func(string) (string, error) {
			return "", errors.New("editor crashed")
		}))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrEditCancelled)
	})

	t.Run("new text is stored", func(t *testing.T) {
		var seen string
		got, err := Edit(db, store.KindSnippet, snippetID, EditorFunc(func(cur string) (string, error) {
			seen = cur
			return "new text\n", nil
		}))
		require.NoError(t, err)
		assert.Equal(t, "old text", seen)
		assert.Equal(t, "new text", got)

		text, err := db.Text(store.KindSnippet, snippetID)
		require.NoError(t, err)
		assert.Equal(t, "new text", text)
		assert.NotContains(t, updatedOf(snippetID), "2000-01-01")

		other, err := db.Text(store.KindSnippet, otherID)
		require.NoError(t, err)
		assert.Equal(t, "other", other)
		assert.Contains(t, updatedOf(otherID), "2000-01-01")
	})

	t.Run("missing row", func(t *testing.T) {
		_, err := Edit(db, store.KindAlias, 999, EditorFunc(func(string) (string, error) {
			t.Fatal("editor must not run")
			return "", nil
		}))
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("kind without text", func(t *testing.T) {
		_, err := Edit(db, store.KindEntity, e.EntityID, EditorFunc(func(string) (string, error) {
			return "x", nil
		}))
		assert.Error(t, err)
	})
}
