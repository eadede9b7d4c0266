package gqlfun

import (
	"context"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

// Params is a GraphQL request as it arrives over HTTP.
type Params struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

func CreateOperationContext(ctx context.Context, schema *ast.Schema, params *Params) (*graphql.OperationContext, gqlerror.List) {
	queryDoc, err := parser.ParseQuery(&ast.Source{
		Input:   params.Query,
		BuiltIn: false,
	})
	if err != nil {
		return nil, gqlerror.List{gqlerror.WrapIfUnwrapped(err)}
	}
	gErrs := validator.Validate(schema, queryDoc)
	if len(gErrs) != 0 {
		return nil, gErrs
	}

	operation := queryDoc.Operations.ForName(params.OperationName)
	if operation == nil {
		if params.OperationName != "" {
			return nil, gqlerror.List{gqlerror.Errorf(`unknown operation named "%s"`, params.OperationName)}
		}
		return nil, gqlerror.List{gqlerror.Errorf("must provide an operation")}
	}

	variables, err := validator.VariableValues(schema, operation, params.Variables)
	if err != nil {
		return nil, gqlerror.List{gqlerror.WrapIfUnwrapped(err)}
	}

	oc := &graphql.OperationContext{
		RawQuery:             params.Query,
		Variables:            variables,
		OperationName:        params.OperationName,
		Doc:                  queryDoc,
		Operation:            operation,
		DisableIntrospection: false,
		RecoverFunc:          graphql.DefaultRecover,
		ResolverMiddleware: func(ctx context.Context, next graphql.Resolver) (res interface{}, err error) {
			return next(ctx)
		},
		Stats: graphql.Stats{},
	}

	return oc, nil
}

// Execute runs a single request against es in-process.
// Unlike the HTTP handler it needs no transport; data and errors come back together.
func Execute(ctx context.Context, es graphql.ExecutableSchema, params *Params) *graphql.Response {
	oc, gErrs := CreateOperationContext(ctx, es.Schema(), params)
	if len(gErrs) != 0 {
		return &graphql.Response{Errors: gErrs}
	}
	ctx = graphql.WithOperationContext(ctx, oc)
	ctx = graphql.WithResponseContext(ctx, graphql.DefaultErrorPresenter, graphql.DefaultRecover)

	rh := es.Exec(ctx)
	resp := rh(ctx)
	if resp == nil {
		resp = &graphql.Response{}
	}
	resp.Errors = append(resp.Errors, graphql.GetErrors(ctx)...)
	return resp
}
