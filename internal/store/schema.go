package store

// Schema DDL. Owner columns reference their parent tables but foreign key
// enforcement stays off: plain deletes leave dependents in place and cascading
// cleanup is done explicitly by the mutation layer.
const (
	createEntity = `CREATE TABLE entity (
	id integer primary key autoincrement,
	created datetime not null default current_timestamp
)`

	createAlias = `CREATE TABLE alias (
	id integer primary key autoincrement,
	entity_id integer references entity(id),
	name varchar(255) not null,
	created datetime not null default current_timestamp,
	updated datetime not null default current_timestamp
)`

	createSnippet = `CREATE TABLE snippet (
	id integer primary key autoincrement,
	entity_id integer references entity(id),
	data text not null,
	created datetime not null default current_timestamp,
	updated datetime not null default current_timestamp
)`

	createRelation = `CREATE TABLE relation (
	id integer primary key autoincrement,
	entity_id_a integer not null references entity(id),
	entity_id_b integer not null references entity(id),
	created datetime not null default current_timestamp,
	updated datetime not null default current_timestamp
)`

	createRelationSnippet = `CREATE TABLE relation_snippet (
	id integer primary key autoincrement,
	relation_id integer not null references relation(id),
	data text not null,
	created datetime not null default current_timestamp,
	updated datetime not null default current_timestamp
)`
)

// Index DDL for the owner lookups every listing performs.
const (
	idxAliasEntity           = `CREATE INDEX idx_alias_entity ON alias(entity_id)`
	idxSnippetEntity         = `CREATE INDEX idx_snippet_entity ON snippet(entity_id)`
	idxRelationA             = `CREATE INDEX idx_relation_a ON relation(entity_id_a)`
	idxRelationB             = `CREATE INDEX idx_relation_b ON relation(entity_id_b)`
	idxRelationSnippetParent = `CREATE INDEX idx_relation_snippet_relation ON relation_snippet(relation_id)`
)

// schemaDDL lists all CREATE statements in dependency order.
var schemaDDL = []string{
	createEntity,
	createAlias,
	createSnippet,
	createRelation,
	createRelationSnippet,
	idxAliasEntity,
	idxSnippetEntity,
	idxRelationA,
	idxRelationB,
	idxRelationSnippetParent,
}
