package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/rtend/internal/store"
)

func TestBuild(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	a, _ := db.InsertEntity()
	b, _ := db.InsertEntity()
	_, err = db.InsertAlias(a, "Alice")
	require.NoError(t, err)
	_, err = db.InsertAlias(b, "Bob")
	require.NoError(t, err)
	_, err = db.InsertSnippet(a, "# Tea\n\nLikes green tea")
	require.NoError(t, err)
	rel, err := db.InsertRelation(b, a)
	require.NoError(t, err)
	_, err = db.InsertRelationSnippet(rel, "met at conference")
	require.NoError(t, err)

	doc, err := Build(db, a)
	require.NoError(t, err)
	assert.Equal(t, a, doc.Entity)
	assert.Equal(t, []string{"Alice"}, doc.Aliases)
	require.Len(t, doc.Snippets, 1)
	assert.Equal(t, "Tea", doc.Snippets[0].Title)
	require.Len(t, doc.Relations, 1)
	assert.Equal(t, b, doc.Relations[0].Other)
	assert.Equal(t, "Bob", doc.Relations[0].Aliases)
	require.Len(t, doc.Relations[0].Snippets, 1)
	assert.Equal(t, "met at conference", doc.Relations[0].Snippets[0].Data)

	path := filepath.Join(t.TempDir(), "alice.yaml")
	require.NoError(t, doc.WriteFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back Document
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, *doc, back)
}

func TestBuildMissingEntity(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	_, err = Build(db, 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
