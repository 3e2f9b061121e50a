// Package export writes one entity and its neighbourhood as a YAML document.
package export

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/rtend/internal/atomicfile"
	"github.com/aidanlsb/rtend/internal/markdown"
	"github.com/aidanlsb/rtend/internal/model"
	"github.com/aidanlsb/rtend/internal/query"
	"github.com/aidanlsb/rtend/internal/store"
)

// TitleLength caps snippet titles in the document.
const TitleLength = 60

// Document is the exported form of one entity.
type Document struct {
	Entity    int64      `json:"entity" yaml:"entity"`
	Created   string     `json:"created" yaml:"created"`
	Aliases   []string   `json:"aliases" yaml:"aliases"`
	Snippets  []Snippet  `json:"snippets,omitempty" yaml:"snippets,omitempty"`
	Relations []Relation `json:"relations,omitempty" yaml:"relations,omitempty"`
}

// Snippet is a snippet of the entity or of one of its relations.
type Snippet struct {
	ID      int64  `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Data    string `json:"data" yaml:"data"`
	Updated string `json:"updated" yaml:"updated"`
}

// Relation is a relation touching the entity, seen from the entity's side.
type Relation struct {
	ID       int64     `json:"id" yaml:"id"`
	Other    int64     `json:"other" yaml:"other"`
	Aliases  string    `json:"other_aliases,omitempty" yaml:"other_aliases,omitempty"`
	Snippets []Snippet `json:"snippets,omitempty" yaml:"snippets,omitempty"`
}

// Build collects the document for entityID. It returns store.ErrNotFound
// when the entity does not exist.
func Build(q store.Querier, entityID int64) (*Document, error) {
	view, err := query.EntityView(q, entityID, model.TierPlain)
	if err != nil {
		return nil, err
	}
	entity := view.(model.PlainView).Entity
	if entity == nil {
		return nil, fmt.Errorf("entity id %d: %w", entityID, store.ErrNotFound)
	}

	doc := &Document{Entity: entityID, Created: entity.Created.String(), Aliases: []string{}}

	aliases, err := query.Aliases(q, entityID)
	if err != nil {
		return nil, err
	}
	for _, a := range aliases {
		doc.Aliases = append(doc.Aliases, a.Name)
	}

	snippets, err := query.Snippets(q, entityID)
	if err != nil {
		return nil, err
	}
	for _, s := range snippets {
		doc.Snippets = append(doc.Snippets, newSnippet(s.ID, s.Data, s.Updated.String()))
	}

	rels, err := query.FindRelationsLong(q, entityID)
	if err != nil {
		return nil, err
	}
	for _, r := range rels {
		rel := Relation{ID: r.ID, Other: r.EntityIDB, Aliases: r.AliasesB}
		if r.EntityIDB == entityID && r.EntityIDA != entityID {
			rel.Other, rel.Aliases = r.EntityIDA, r.AliasesA
		}
		rs, err := query.RelationSnippets(q, r.ID)
		if err != nil {
			return nil, err
		}
		for _, s := range rs {
			rel.Snippets = append(rel.Snippets, newSnippet(s.ID, s.Data, s.Updated.String()))
		}
		doc.Relations = append(doc.Relations, rel)
	}
	return doc, nil
}

func newSnippet(id int64, data, updated string) Snippet {
	return Snippet{ID: id, Title: markdown.Title(data, TitleLength), Data: data, Updated: updated}
}

// Marshal encodes the document as YAML with two-space indentation.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes the document to path atomically.
func (d *Document) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(path, data, 0o644)
}
