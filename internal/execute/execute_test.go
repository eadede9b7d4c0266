package execute

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/99designs/gqlgen/graphql"
	testlogr "github.com/go-logr/logr/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vvakame/bookshelf/internal/gqlfun"
	"github.com/vvakame/bookshelf/internal/log"
)

const testSchema = `
interface Character {
  id: ID!
  name: String!
}

type Human implements Character {
  id: ID!
  name: String!
  homePlanet: String
}

type Droid implements Character {
  id: ID!
  name: String!
  primaryFunction: String
}

union SearchResult = Human | Droid

type Query {
  hero: Character
  strict: Character!
  characters: [Character]!
  friends: [Character]
  search: [SearchResult!]!
}
`

func luke() map[string]interface{} {
	return map[string]interface{}{
		"__typename": "Human",
		"id":         "1000",
		"name":       "Luke Skywalker",
		"homePlanet": "Tatooine",
	}
}

func r2d2() map[string]interface{} {
	return map[string]interface{}{
		"__typename":      "Droid",
		"id":              "2001",
		"name":            "R2-D2",
		"primaryFunction": "Astromech",
	}
}

type testRun struct {
	query string
	root  map[string]interface{}
	setup func(oc *graphql.OperationContext)
}

func run(t *testing.T, tr testRun) (string, gqlerror.List) {
	t.Helper()

	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphqls", Input: testSchema})
	require.NoError(t, err)

	ctx := context.Background()
	ctx = log.WithLogger(ctx, testlogr.NewTestLogger(t))

	oc, gErrs := gqlfun.CreateOperationContext(ctx, schema, &gqlfun.Params{Query: tr.query})
	require.Empty(t, gErrs)
	if tr.setup != nil {
		tr.setup(oc)
	}

	ctx = graphql.WithOperationContext(ctx, oc)
	ctx = graphql.WithResponseContext(ctx, graphql.DefaultErrorPresenter, func(ctx context.Context, err interface{}) error {
		return errors.New("internal system error")
	})

	data := Execute(ctx, &ExecutionArgs{
		Schema:    schema,
		RootValue: tr.root,
	})

	var buf bytes.Buffer
	data.MarshalGQL(&buf)

	return buf.String(), graphql.GetErrors(ctx)
}

func TestExecute_AbstractTypes(t *testing.T) {
	data, errs := run(t, testRun{
		query: `{
			hero {
				__typename
				id
				name
				... on Droid {
					primaryFunction
				}
			}
			search {
				... on Human {
					name
					homePlanet
				}
				... on Droid {
					name
				}
			}
		}`,
		root: map[string]interface{}{
			"hero":   r2d2(),
			"search": []interface{}{luke(), r2d2()},
		},
	})
	require.Empty(t, errs)
	assert.JSONEq(t, `{
		"hero": {"__typename": "Droid", "id": "2001", "name": "R2-D2", "primaryFunction": "Astromech"},
		"search": [
			{"name": "Luke Skywalker", "homePlanet": "Tatooine"},
			{"name": "R2-D2"}
		]
	}`, data)
}

func TestExecute_NullPropagation(t *testing.T) {
	t.Run("nullable list item", func(t *testing.T) {
		broken := luke()
		broken["name"] = nil

		data, errs := run(t, testRun{
			query: `{ characters { id name } }`,
			root: map[string]interface{}{
				"characters": []interface{}{broken, r2d2()},
			},
		})
		assert.JSONEq(t, `{"characters": [null, {"id": "2001", "name": "R2-D2"}]}`, data)
		require.Len(t, errs, 1)
		assert.Equal(t, "cannot return null for non-nullable field Human.name", errs[0].Message)
		assert.Equal(t, ast.Path{ast.PathName("characters"), ast.PathIndex(0), ast.PathName("name")}, errs[0].Path)
	})

	t.Run("non-null list item", func(t *testing.T) {
		broken := r2d2()
		broken["id"] = nil

		data, errs := run(t, testRun{
			query: `{ search { ... on Droid { id } } }`,
			root: map[string]interface{}{
				"search": []interface{}{broken},
			},
		})
		assert.Equal(t, "null", data)
		require.Len(t, errs, 1)
		assert.Equal(t, "cannot return null for non-nullable field Droid.id", errs[0].Message)
	})

	t.Run("non-null root field", func(t *testing.T) {
		data, errs := run(t, testRun{
			query: `{ hero { id } strict { id } }`,
			root: map[string]interface{}{
				"hero": luke(),
			},
		})
		assert.Equal(t, "null", data)
		require.Len(t, errs, 1)
		assert.Equal(t, "cannot return null for non-nullable field Query.strict", errs[0].Message)
		assert.Equal(t, ast.Path{ast.PathName("strict")}, errs[0].Path)
	})
}

func TestExecute_NilSlices(t *testing.T) {
	data, errs := run(t, testRun{
		query: `{ characters { id } friends { id } }`,
		root: map[string]interface{}{
			"characters": []interface{}(nil),
			"friends":    []interface{}(nil),
		},
	})
	require.Empty(t, errs)
	assert.JSONEq(t, `{"characters": [], "friends": null}`, data)
}

func TestExecute_ResolverErrors(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		data, errs := run(t, testRun{
			query: `{ hero { id } characters { id } }`,
			root: map[string]interface{}{
				"hero": func() (interface{}, error) {
					return nil, errors.New("hero is away")
				},
				"characters": []interface{}{},
			},
		})
		assert.JSONEq(t, `{"hero": null, "characters": []}`, data)
		require.Len(t, errs, 1)
		assert.Equal(t, "hero is away", errs[0].Message)
		assert.Equal(t, ast.Path{ast.PathName("hero")}, errs[0].Path)
	})

	t.Run("panic", func(t *testing.T) {
		data, errs := run(t, testRun{
			query: `{ hero { id } }`,
			root: map[string]interface{}{
				"hero": func() (interface{}, error) {
					panic("boom")
				},
			},
		})
		assert.JSONEq(t, `{"hero": null}`, data)
		require.Len(t, errs, 1)
		assert.Equal(t, "internal system error", errs[0].Message)
	})

	t.Run("not a list", func(t *testing.T) {
		data, errs := run(t, testRun{
			query: `{ search { __typename } }`,
			root: map[string]interface{}{
				"search": "oops",
			},
		})
		assert.Equal(t, "null", data)
		require.Len(t, errs, 1)
		assert.Equal(t, `expected slice, but did not find one for field "Query.search"`, errs[0].Message)
	})

	t.Run("unresolvable abstract type", func(t *testing.T) {
		data, errs := run(t, testRun{
			query: `{ hero { id } }`,
			root: map[string]interface{}{
				"hero": map[string]interface{}{"id": "1"},
			},
		})
		assert.JSONEq(t, `{"hero": null}`, data)
		require.Len(t, errs, 1)
		assert.Equal(t, `abstract type "Character" must resolve to an Object type at runtime for field "hero"`, errs[0].Message)
	})
}

func TestExecute_ResolverMiddleware(t *testing.T) {
	var resolved []string
	data, errs := run(t, testRun{
		query: `{ hero { __typename id name } }`,
		root: map[string]interface{}{
			"hero": luke(),
		},
		setup: func(oc *graphql.OperationContext) {
			oc.ResolverMiddleware = func(ctx context.Context, next graphql.Resolver) (interface{}, error) {
				fc := graphql.GetFieldContext(ctx)
				resolved = append(resolved, fc.Object+"."+fc.Field.Name)
				return next(ctx)
			}
		},
	})
	require.Empty(t, errs)
	assert.JSONEq(t, `{"hero": {"__typename": "Human", "id": "1000", "name": "Luke Skywalker"}}`, data)
	assert.Equal(t, []string{"Query.hero", "Human.id", "Human.name"}, resolved)
}

func TestExecute_Introspection(t *testing.T) {
	query := `{
		__type(name: "SearchResult") {
			kind
			possibleTypes {
				name
			}
		}
	}`

	t.Run("enabled", func(t *testing.T) {
		data, errs := run(t, testRun{query: query})
		require.Empty(t, errs)
		assert.JSONEq(t, `{"__type": {"kind": "UNION", "possibleTypes": [{"name": "Human"}, {"name": "Droid"}]}}`, data)
	})

	t.Run("disabled", func(t *testing.T) {
		data, errs := run(t, testRun{
			query: query,
			setup: func(oc *graphql.OperationContext) {
				oc.DisableIntrospection = true
			},
		})
		assert.JSONEq(t, `{"__type": null}`, data)
		require.Len(t, errs, 1)
		assert.Equal(t, "introspection disabled", errs[0].Message)
	})
}
