package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestTypePredicates(t *testing.T) {
	schema, err := gqlparser.LoadSchema(&ast.Source{
		Name: "schema.graphqls",
		Input: `
			type Query { node: Node, item: Item, kind: Kind }
			interface Node { id: ID! }
			type Author implements Node { id: ID! }
			type Book { id: ID! }
			union Item = Author | Book
			enum Kind { AUTHOR BOOK }
		`,
	})
	require.NoError(t, err)

	author := schema.Types["Author"]
	book := schema.Types["Book"]

	assert.True(t, IsObjectType(author))
	assert.False(t, IsObjectType(schema.Types["Node"]))
	assert.True(t, IsAbstractType(schema.Types["Node"]))
	assert.True(t, IsAbstractType(schema.Types["Item"]))
	assert.True(t, IsLeafType(schema.Types["Kind"]))
	assert.True(t, IsLeafType(schema.Types["ID"]))
	assert.False(t, IsLeafType(author))

	assert.True(t, IsTypeDefSubTypeOf(schema, author, author))
	assert.True(t, IsTypeDefSubTypeOf(schema, author, schema.Types["Node"]))
	assert.False(t, IsTypeDefSubTypeOf(schema, book, schema.Types["Node"]))
	assert.True(t, IsTypeDefSubTypeOf(schema, book, schema.Types["Item"]))
	assert.False(t, IsTypeDefSubTypeOf(schema, book, author))

	assert.True(t, IsIntrospectionType("__Schema"))
	assert.False(t, IsIntrospectionType("Author"))

	assert.True(t, IsObjectLike(map[string]interface{}{}))
	assert.False(t, IsObjectLike("Author"))
}
