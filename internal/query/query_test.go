package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/rtend/internal/model"
	"github.com/aidanlsb/rtend/internal/store"
)

func openTest(t *testing.T) *store.Database {
	t.Helper()
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newEntity(t *testing.T, db *store.Database, aliases ...string) int64 {
	t.Helper()
	id, err := db.InsertEntity()
	require.NoError(t, err)
	for _, a := range aliases {
		_, err := db.InsertAlias(id, a)
		require.NoError(t, err)
	}
	return id
}

func TestEntityViewTiers(t *testing.T) {
	db := openTest(t)
	id := newEntity(t, db, "Alice", "Al", "A.", "Ally", "Alicia")
	_, err := db.InsertSnippet(id, "likes tea")
	require.NoError(t, err)

	t.Run("plain", func(t *testing.T) {
		v, err := EntityView(db, id, model.TierPlain)
		require.NoError(t, err)
		plain, ok := v.(model.PlainView)
		require.True(t, ok)
		require.NotNil(t, plain.Entity)
		assert.Equal(t, id, plain.Entity.ID)
		assert.False(t, plain.Entity.Created.IsZero())
	})

	t.Run("long caps aliases at four in insertion order", func(t *testing.T) {
		v, err := EntityView(db, id, model.TierLong)
		require.NoError(t, err)
		long, ok := v.(model.LongView)
		require.True(t, ok)
		require.NotNil(t, long.Entity)
		assert.Equal(t, "Alice; Al; A.; Ally", long.Entity.Aliases)
		assert.EqualValues(t, 5, long.Entity.AliasCount)
		assert.EqualValues(t, 1, long.Entity.SnippetCount)
	})

	t.Run("missing entity", func(t *testing.T) {
		v, err := EntityView(db, 999, model.TierPlain)
		require.NoError(t, err)
		assert.Nil(t, v.(model.PlainView).Entity)

		v, err = EntityView(db, 999, model.TierLong)
		require.NoError(t, err)
		assert.Nil(t, v.(model.LongView).Entity)

		v, err = EntityView(db, 999, model.TierDetail)
		require.NoError(t, err)
		assert.Empty(t, v.(model.DetailView).Rows)
	})
}

func TestLongCountsMatchRows(t *testing.T) {
	db := openTest(t)
	a := newEntity(t, db, "Alice", "Al")
	b := newEntity(t, db)
	for i := 0; i < 3; i++ {
		_, err := db.InsertSnippet(a, "note")
		require.NoError(t, err)
	}

	all, err := AllEntitiesLong(db)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, e := range all {
		aliases, err := db.CountOwned(store.KindAlias, e.ID)
		require.NoError(t, err)
		snippets, err := db.CountOwned(store.KindSnippet, e.ID)
		require.NoError(t, err)
		assert.Equal(t, aliases, e.AliasCount)
		assert.Equal(t, snippets, e.SnippetCount)
	}
	assert.Equal(t, b, all[1].ID)
	assert.Empty(t, all[1].Aliases)
}

func TestEntityDetail(t *testing.T) {
	db := openTest(t)
	a := newEntity(t, db, "Alice")
	b := newEntity(t, db, "Bob")
	c := newEntity(t, db, "Carol")
	_, err := db.InsertSnippet(a, "likes tea")
	require.NoError(t, err)

	// Snippets of an unrelated relation take the ids the touching relation
	// will get, so matching snippet ids against relation ids would pick them.
	other, err := db.InsertRelation(b, c)
	require.NoError(t, err)
	for _, text := range []string{"unrelated", "also unrelated"} {
		_, err = db.InsertRelationSnippet(other, text)
		require.NoError(t, err)
	}

	rel, err := db.InsertRelation(a, b)
	require.NoError(t, err)
	_, err = db.InsertRelationSnippet(rel, "met at conference")
	require.NoError(t, err)

	rows, err := EntityDetail(db, a)
	require.NoError(t, err)

	var kinds []model.DetailKind
	for _, r := range rows {
		kinds = append(kinds, r.Kind)
	}
	assert.Equal(t, []model.DetailKind{
		model.DetailEntity,
		model.DetailAlias,
		model.DetailSnippet,
		model.DetailRelation,
		model.DetailRelationSnippet,
	}, kinds)

	assert.Equal(t, "1", rows[0].Data, "entity row carries its own id")
	assert.Equal(t, "Alice", rows[1].Data)
	assert.Equal(t, rel, rows[3].ID)
	assert.Equal(t, "1 | 2", rows[3].Data)
	assert.Equal(t, "met at conference", rows[4].Data)
}

func TestEntityDetailOrdersByKindThenID(t *testing.T) {
	db := openTest(t)
	a := newEntity(t, db, "Zed")
	_, err := db.InsertSnippet(a, "first")
	require.NoError(t, err)
	_, err = db.InsertAlias(a, "Alpha")
	require.NoError(t, err)

	rows, err := EntityDetail(db, a)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, model.DetailAlias, rows[1].Kind)
	assert.Equal(t, model.DetailAlias, rows[2].Kind)
	assert.Less(t, rows[1].ID, rows[2].ID)
	assert.Equal(t, model.DetailSnippet, rows[3].Kind)
}

func TestFindAliases(t *testing.T) {
	db := openTest(t)
	newEntity(t, db, "John Doe")
	newEntity(t, db, "johnny")

	got, err := FindAliases(db, "ohn")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = FindAliases(db, "John")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "John Doe", got[0].Name)

	got, err = FindAliases(db, "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = FindAliases(db, "%")
	require.NoError(t, err)
	assert.Empty(t, got, "wildcards are literal")
}

func TestFindAliasesLong(t *testing.T) {
	db := openTest(t)
	id := newEntity(t, db, "Alice")
	_, err := db.InsertAlias(id, "Al")
	require.NoError(t, err)

	got, err := FindAliasesLong(db, "Al")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Al", got[0].Name)
	assert.Equal(t, "Alice", got[0].OtherAliases)
	assert.Equal(t, "Alice", got[1].Name)
	assert.Equal(t, "Al", got[1].OtherAliases)

	solo := newEntity(t, db, "Solo")
	got, err = FindAliasesLong(db, "Solo")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, solo, got[0].EntityID)
	assert.Empty(t, got[0].OtherAliases)
}

func TestFindAliasesOrderByName(t *testing.T) {
	db := openTest(t)
	newEntity(t, db, "Zed Smith")
	newEntity(t, db, "Adam Smith")
	newEntity(t, db, "Mia Smith")

	names := func(n int, name func(int) string) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = name(i)
		}
		return out
	}
	want := []string{"Adam Smith", "Mia Smith", "Zed Smith"}

	plain, err := FindAliases(db, "Smith")
	require.NoError(t, err)
	assert.Equal(t, want, names(len(plain), func(i int) string { return plain[i].Name }))

	long, err := FindAliasesLong(db, "Smith")
	require.NoError(t, err)
	assert.Equal(t, want, names(len(long), func(i int) string { return long[i].Name }))
}

func TestFindRelations(t *testing.T) {
	db := openTest(t)
	a := newEntity(t, db, "Alice", "Al")
	b := newEntity(t, db, "Bob")
	c := newEntity(t, db)
	r1, err := db.InsertRelation(a, b)
	require.NoError(t, err)
	r2, err := db.InsertRelation(c, a)
	require.NoError(t, err)
	_, err = db.InsertRelation(b, c)
	require.NoError(t, err)

	rels, err := FindRelations(db, a)
	require.NoError(t, err)
	require.Len(t, rels, 2)
	assert.Equal(t, r1, rels[0].ID)
	assert.Equal(t, r2, rels[1].ID)

	long, err := FindRelationsLong(db, a)
	require.NoError(t, err)
	require.Len(t, long, 2)
	assert.Equal(t, "Alice; Al", long[0].AliasesA)
	assert.Equal(t, "Bob", long[0].AliasesB)
	assert.Empty(t, long[1].AliasesA)

	long, err = FindRelationsLong(db, 999)
	require.NoError(t, err)
	assert.Empty(t, long)
}

func TestFindSnippets(t *testing.T) {
	db := openTest(t)
	a := newEntity(t, db, "Alice")
	b := newEntity(t, db, "Bob")
	_, err := db.InsertSnippet(a, "Likes tea")
	require.NoError(t, err)
	rel, err := db.InsertRelation(a, b)
	require.NoError(t, err)
	_, err = db.InsertRelationSnippet(rel, "met at conference")
	require.NoError(t, err)

	got, err := FindSnippets(db, "tea")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a, got[0].EntityID)

	got, err = FindSnippets(db, "likes")
	require.NoError(t, err)
	assert.Empty(t, got)

	rs, err := FindRelationSnippets(db, "conference")
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, rel, rs[0].RelationID)
}

func TestListings(t *testing.T) {
	db := openTest(t)
	a := newEntity(t, db, "Zed", "Alpha")
	_, err := db.InsertSnippet(a, "one")
	require.NoError(t, err)
	_, err = db.InsertSnippet(a, "two")
	require.NoError(t, err)

	aliases, err := Aliases(db, a)
	require.NoError(t, err)
	require.Len(t, aliases, 2)
	assert.Equal(t, "Alpha", aliases[0].Name)

	snippets, err := Snippets(db, a)
	require.NoError(t, err)
	require.Len(t, snippets, 2)
	assert.Equal(t, "one", snippets[0].Data)

	stats, err := Stats(db)
	require.NoError(t, err)
	assert.Equal(t, []model.Stat{
		{Type: "entity", Count: 1},
		{Type: "alias", Count: 2},
		{Type: "snippet", Count: 2},
		{Type: "relation", Count: 0},
		{Type: "relation snippet", Count: 0},
	}, stats)
}
