package graph

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vvakame/bookshelf/internal/catalog"
	"github.com/vvakame/bookshelf/internal/execute"
)

//go:embed schema.graphqls
var sdl string

// SDL returns the schema served by the executable schema.
func SDL() string {
	return sdl
}

type ResolverRoot interface {
	Query() QueryResolver
	Author() AuthorResolver
	Book() BookResolver
}

type QueryResolver interface {
	Authors(ctx context.Context) ([]*catalog.Author, error)
	Author(ctx context.Context, id string) (*catalog.Author, error)
	Books(ctx context.Context) ([]*catalog.Book, error)
	Book(ctx context.Context, id string) (*catalog.Book, error)
	AuthorsCsv(ctx context.Context, fields []string) (string, error)
}

type AuthorResolver interface {
	Books(ctx context.Context, obj *catalog.Author) ([]*catalog.Book, error)
}

type BookResolver interface {
	Author(ctx context.Context, obj *catalog.Book) (*catalog.Author, error)
}

type Config struct {
	Resolvers ResolverRoot
}

// resolverFunc computes one field from its parent value and arguments.
type resolverFunc func(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error)

var _ graphql.ExecutableSchema = (*Executable)(nil)

type Executable struct {
	schema    *ast.Schema
	resolvers map[string]map[string]resolverFunc
}

func NewExecutableSchema(cfg Config) (*Executable, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{
		Name:  "schema.graphqls",
		Input: sdl,
	})
	if err != nil {
		return nil, err
	}

	es := &Executable{
		schema:    schema,
		resolvers: bindResolvers(cfg.Resolvers),
	}
	err = es.validate()
	if err != nil {
		return nil, err
	}

	return es, nil
}

// validate checks that every field declared on the object types has a resolver.
func (es *Executable) validate() error {
	for _, def := range es.schema.Types {
		if def.BuiltIn || def.Kind != ast.Object {
			continue
		}
		for _, field := range def.Fields {
			if field.Name == "__schema" || field.Name == "__type" {
				continue
			}
			if _, ok := es.resolvers[def.Name][field.Name]; !ok {
				return fmt.Errorf("no resolver bound to %s.%s", def.Name, field.Name)
			}
		}
	}
	return nil
}

func bindResolvers(root ResolverRoot) map[string]map[string]resolverFunc {
	return map[string]map[string]resolverFunc{
		"Query": {
			"authors": func(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
				return root.Query().Authors(ctx)
			},
			"author": func(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
				id, err := stringArg(args, "id")
				if err != nil {
					return nil, err
				}
				return root.Query().Author(ctx, id)
			},
			"books": func(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
				return root.Query().Books(ctx)
			},
			"book": func(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
				id, err := stringArg(args, "id")
				if err != nil {
					return nil, err
				}
				return root.Query().Book(ctx, id)
			},
			"authorsCSV": func(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
				fields, err := stringListArg(args, "fields")
				if err != nil {
					return nil, err
				}
				return root.Query().AuthorsCsv(ctx, fields)
			},
		},
		"Author": {
			"id":   authorField(func(author *catalog.Author) string { return author.ID }),
			"name": authorField(func(author *catalog.Author) string { return author.Name }),
			"books": func(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
				author, err := parentAs[*catalog.Author](parent)
				if err != nil {
					return nil, err
				}
				return root.Author().Books(ctx, author)
			},
		},
		"Book": {
			"id":    bookField(func(book *catalog.Book) string { return book.ID }),
			"title": bookField(func(book *catalog.Book) string { return book.Title }),
			"author": func(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
				book, err := parentAs[*catalog.Book](parent)
				if err != nil {
					return nil, err
				}
				return root.Book().Author(ctx, book)
			},
		},
	}
}

func authorField(get func(author *catalog.Author) string) resolverFunc {
	return func(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
		author, err := parentAs[*catalog.Author](parent)
		if err != nil {
			return nil, err
		}
		return get(author), nil
	}
}

func bookField(get func(book *catalog.Book) string) resolverFunc {
	return func(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
		book, err := parentAs[*catalog.Book](parent)
		if err != nil {
			return nil, err
		}
		return get(book), nil
	}
}

func parentAs[T any](parent interface{}) (T, error) {
	v, ok := parent.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("unexpected parent type %T, want %T", parent, zero)
	}
	return v, nil
}

func stringArg(args map[string]interface{}, name string) (string, error) {
	v, ok := args[name].(string)
	if !ok {
		return "", fmt.Errorf("argument %s: expected string, got %T", name, args[name])
	}
	return v, nil
}

func stringListArg(args map[string]interface{}, name string) ([]string, error) {
	switch v := args[name].(type) {
	case []string:
		return v, nil
	case []interface{}:
		ret := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("argument %s[%d]: expected string, got %T", name, i, item)
			}
			ret = append(ret, s)
		}
		return ret, nil
	default:
		return nil, fmt.Errorf("argument %s: expected list of strings, got %T", name, args[name])
	}
}

func (es *Executable) Schema() *ast.Schema {
	return es.schema
}

func (es *Executable) Complexity(typeName, fieldName string, childComplexity int, args map[string]interface{}) (int, bool) {
	return 0, false
}

func (es *Executable) Exec(ctx context.Context) graphql.ResponseHandler {
	oc := graphql.GetOperationContext(ctx)

	switch oc.Operation.Operation {
	case ast.Query:
		first := true
		return func(ctx context.Context) *graphql.Response {
			if !first {
				return nil
			}
			first = false

			data := execute.Execute(ctx, &execute.ExecutionArgs{
				Schema:        es.schema,
				FieldResolver: es.resolveField,
			})
			var buf bytes.Buffer
			data.MarshalGQL(&buf)

			return &graphql.Response{
				Data: buf.Bytes(),
			}
		}

	default:
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported GraphQL operation"))
	}
}

func (es *Executable) resolveField(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
	fc := graphql.GetFieldContext(ctx)

	resolve, ok := es.resolvers[fc.Object][fc.Field.Name]
	if !ok {
		return nil, fmt.Errorf("no resolver bound to %s.%s", fc.Object, fc.Field.Name)
	}

	return resolve(ctx, source, args)
}
