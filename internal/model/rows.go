package model

// Entity is the tier-0 view of an entity.
type Entity struct {
	ID      int64     `json:"id"`
	Created Timestamp `json:"created"`
}

// EntityLong is the tier-1 summary of an entity.
type EntityLong struct {
	ID           int64     `json:"id"`
	Aliases      string    `json:"aliases"`
	AliasCount   int64     `json:"alias_count"`
	SnippetCount int64     `json:"snippet_count"`
	Created      Timestamp `json:"created"`
}

// Alias is a name bound to an entity.
type Alias struct {
	ID       int64     `json:"id"`
	EntityID int64     `json:"entity_id"`
	Name     string    `json:"name"`
	Created  Timestamp `json:"created"`
	Updated  Timestamp `json:"updated"`
}

// Snippet is free text attached to an entity.
type Snippet struct {
	ID       int64     `json:"id"`
	EntityID int64     `json:"entity_id"`
	Data     string    `json:"data"`
	Created  Timestamp `json:"created"`
	Updated  Timestamp `json:"updated"`
}

// Relation is an edge between two entities.
type Relation struct {
	ID        int64     `json:"id"`
	EntityIDA int64     `json:"entity_id_a"`
	EntityIDB int64     `json:"entity_id_b"`
	Created   Timestamp `json:"created"`
	Updated   Timestamp `json:"updated"`
}

// RelationLong is a relation with up to four alias names per endpoint.
type RelationLong struct {
	ID        int64     `json:"id"`
	EntityIDA int64     `json:"entity_id_a"`
	AliasesA  string    `json:"aliases_a"`
	EntityIDB int64     `json:"entity_id_b"`
	AliasesB  string    `json:"aliases_b"`
	Updated   Timestamp `json:"updated"`
}

// RelationSnippet is free text attached to a relation.
type RelationSnippet struct {
	ID         int64     `json:"id"`
	RelationID int64     `json:"relation_id"`
	Data       string    `json:"data"`
	Created    Timestamp `json:"created"`
	Updated    Timestamp `json:"updated"`
}

// AliasMatch is one hit of an alias substring search.
type AliasMatch struct {
	ID       int64     `json:"id"`
	EntityID int64     `json:"entity_id"`
	Name     string    `json:"name"`
	Updated  Timestamp `json:"updated"`
}

// AliasMatchLong adds the other aliases of the owning entity, joined with "; ".
type AliasMatchLong struct {
	AliasMatch
	OtherAliases string `json:"other_aliases"`
}

// SnippetMatch is one hit of a snippet substring search.
type SnippetMatch struct {
	ID       int64     `json:"id"`
	Data     string    `json:"data"`
	EntityID int64     `json:"entity_id"`
	Updated  Timestamp `json:"updated"`
}

// RelationSnippetMatch is one hit of a relation snippet substring search.
type RelationSnippetMatch struct {
	ID         int64     `json:"id"`
	Data       string    `json:"data"`
	RelationID int64     `json:"relation_id"`
	Updated    Timestamp `json:"updated"`
}

// Stat is the row count of one table.
type Stat struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}
