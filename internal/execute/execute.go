package execute

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/introspection"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vvakame/bookshelf/internal/utils"
)

// FieldResolver produces the value of a single field.
// source is the value of the enclosing object, or the root value for top level fields.
// The field being resolved is available from graphql.GetFieldContext(ctx).
type FieldResolver func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error)

// TypeResolver returns the name of the concrete object type of value.
type TypeResolver func(ctx context.Context, value interface{}, schema *ast.Schema, abstractType *ast.Definition) string

type ExecutionArgs struct {
	Schema        *ast.Schema
	RootValue     interface{}  // optional
	FieldResolver FieldResolver // optional
	TypeResolver  TypeResolver  // optional
}

type executionContext struct {
	schema        *ast.Schema
	oc            *graphql.OperationContext
	rootValue     interface{}
	fieldResolver FieldResolver
	typeResolver  TypeResolver
}

// errPropagatedNull is returned when a value became null because a non-null
// descendant failed. The descendant has already reported its own error.
var errPropagatedNull = errors.New("null propagated from non-null field")

var _ FieldResolver = DefaultFieldResolver
var _ TypeResolver = DefaultTypeResolver

// Execute runs the operation held by the OperationContext of ctx and returns the
// data part of the response.
// ctx must carry a response context; field errors are reported with graphql.AddError.
func Execute(ctx context.Context, args *ExecutionArgs) graphql.Marshaler {
	if !graphql.HasOperationContext(ctx) {
		panic("ctx doesn't have OperationContext")
	}

	ec := &executionContext{
		schema:        args.Schema,
		oc:            graphql.GetOperationContext(ctx),
		rootValue:     args.RootValue,
		fieldResolver: args.FieldResolver,
		typeResolver:  args.TypeResolver,
	}
	if ec.fieldResolver == nil {
		ec.fieldResolver = DefaultFieldResolver
	}
	if ec.typeResolver == nil {
		ec.typeResolver = DefaultTypeResolver
	}

	data, err := ec.executeOperation(ctx)
	if err != nil {
		graphql.AddError(ctx, err)
		return graphql.Null
	}
	return data
}

func (ec *executionContext) executeOperation(ctx context.Context) (graphql.Marshaler, error) {
	operation := ec.oc.Operation
	if operation == nil {
		return nil, gqlerror.Errorf("must provide an operation")
	}

	var typ *ast.Definition
	switch operation.Operation {
	case ast.Query:
		typ = ec.schema.Query
		if typ == nil {
			return nil, gqlerror.ErrorPosf(operation.Position, "schema does not define the required query root type")
		}
	case ast.Mutation:
		typ = ec.schema.Mutation
		if typ == nil {
			return nil, gqlerror.ErrorPosf(operation.Position, "schema is not configured for mutations")
		}
	case ast.Subscription:
		return nil, gqlerror.ErrorPosf(operation.Position, "subscriptions are not supported")
	default:
		return nil, gqlerror.ErrorPosf(operation.Position, "can only have query and mutation operations")
	}

	fields := graphql.CollectFields(ec.oc, operation.SelectionSet, []string{typ.Name})

	// Fields run one after another for both queries and mutations.
	// A non-null root field that fails nulls the whole data.
	data, invalid := ec.executeFields(ctx, typ, ec.rootValue, fields)
	if invalid {
		return graphql.Null, nil
	}
	return data, nil
}

// executeFields resolves every collected field of source.
// invalid reports that a non-null field resolved to null and the object must be nulled.
func (ec *executionContext) executeFields(ctx context.Context, parentType *ast.Definition, source interface{}, fields []graphql.CollectedField) (graphql.Marshaler, bool) {
	out := graphql.NewFieldSet(fields)
	invalid := false
	for i, field := range fields {
		fc := &graphql.FieldContext{
			Object:     parentType.Name,
			Field:      field,
			IsResolver: true,
		}
		ctx := graphql.WithFieldContext(ctx, fc)
		fc.Args = field.ArgumentMap(ec.oc.Variables)

		data := ec.executeField(ctx, parentType, source, field)
		if data == graphql.Null && field.Definition != nil && field.Definition.Type.NonNull {
			invalid = true
		}
		out.Values[i] = data
	}

	if invalid {
		return graphql.Null, true
	}
	return out, false
}

// executeField calls the resolver of the field, then completes the value it returned.
// Errors are reported against the field path and the field becomes null.
func (ec *executionContext) executeField(ctx context.Context, parentType *ast.Definition, source interface{}, field graphql.CollectedField) (ret graphql.Marshaler) {
	defer func() {
		if r := recover(); r != nil {
			if ec.oc.RecoverFunc == nil {
				panic(r)
			}
			graphql.AddError(ctx, ec.oc.Recover(ctx, r))
			ret = graphql.Null
		}
	}()

	if field.Name == "__typename" {
		return graphql.MarshalString(parentType.Name)
	}

	fieldDef := field.Definition
	if fieldDef == nil {
		graphql.AddError(ctx, gqlerror.Errorf("cannot query field %q on type %q", field.Name, parentType.Name))
		return graphql.Null
	}

	result, err := ec.resolveField(ctx, parentType, source, field)
	if err != nil {
		graphql.AddError(ctx, err)
		return graphql.Null
	}

	completed, err := ec.completeValue(ctx, parentType, fieldDef.Type, field, result)
	if err != nil {
		if !errors.Is(err, errPropagatedNull) {
			graphql.AddError(ctx, err)
		}
		return graphql.Null
	}

	return completed
}

func (ec *executionContext) resolveField(ctx context.Context, parentType *ast.Definition, source interface{}, field graphql.CollectedField) (interface{}, error) {
	fc := graphql.GetFieldContext(ctx)

	var resolve graphql.Resolver
	switch {
	case parentType == ec.schema.Query && field.Name == "__schema":
		resolve = func(ctx context.Context) (interface{}, error) {
			if ec.oc.DisableIntrospection {
				return nil, gqlerror.Errorf("introspection disabled")
			}
			return introspection.WrapSchema(ec.schema), nil
		}
	case parentType == ec.schema.Query && field.Name == "__type":
		resolve = func(ctx context.Context) (interface{}, error) {
			if ec.oc.DisableIntrospection {
				return nil, gqlerror.Errorf("introspection disabled")
			}
			name, _ := fc.Args["name"].(string)
			return introspection.WrapTypeFromDef(ec.schema, ec.schema.Types[name]), nil
		}
	case utils.IsIntrospectionType(parentType.Name):
		resolve = func(ctx context.Context) (interface{}, error) {
			return resolveByReflection(source, field, fc.Args)
		}
	default:
		resolve = func(ctx context.Context) (interface{}, error) {
			return ec.fieldResolver(ctx, source, fc.Args)
		}
	}

	if ec.oc.ResolverMiddleware == nil {
		return resolve(ctx)
	}
	return ec.oc.ResolverMiddleware(ctx, resolve)
}

// completeValue turns a resolved Go value into its response representation,
// following the return type of the field.
func (ec *executionContext) completeValue(ctx context.Context, parentType *ast.Definition, returnType *ast.Type, field graphql.CollectedField, result interface{}) (graphql.Marshaler, error) {
	if err, ok := result.(error); ok && err != nil {
		return graphql.Null, err
	}

	if returnType.NonNull {
		if returnType.Elem != nil && isNilSlice(result) {
			// typed nil slices, as held by the introspection structs, are empty lists
			return graphql.Array{}, nil
		}

		copied := *returnType
		copied.NonNull = false
		completed, err := ec.completeValue(ctx, parentType, &copied, field, result)
		if err != nil {
			return graphql.Null, err
		}
		if completed == graphql.Null {
			return graphql.Null, gqlerror.Errorf("cannot return null for non-nullable field %s.%s", parentType.Name, field.Name)
		}
		return completed, nil
	}

	if isNull(result) {
		return graphql.Null, nil
	}

	if returnType.Elem != nil {
		return ec.completeListValue(ctx, parentType, returnType, field, result)
	}

	def := ec.schema.Types[returnType.NamedType]
	if def == nil {
		return graphql.Null, gqlerror.Errorf("unknown type %q", returnType.NamedType)
	}

	switch {
	case utils.IsLeafType(def):
		return completeLeafValue(result)
	case utils.IsAbstractType(def):
		return ec.completeAbstractValue(ctx, def, field, result)
	case utils.IsObjectType(def):
		return ec.completeObjectValue(ctx, def, field, result)
	}

	return graphql.Null, gqlerror.Errorf("cannot complete value of unexpected output type: %s", returnType.String())
}

func (ec *executionContext) completeListValue(ctx context.Context, parentType *ast.Definition, returnType *ast.Type, field graphql.CollectedField, result interface{}) (graphql.Marshaler, error) {
	resultRV := reflect.ValueOf(result)
	if resultRV.Kind() != reflect.Slice && resultRV.Kind() != reflect.Array {
		return graphql.Null, gqlerror.Errorf(`expected slice, but did not find one for field "%s.%s"`, parentType.Name, field.Name)
	}

	itemType := returnType.Elem
	ret := make(graphql.Array, resultRV.Len())
	for index := 0; index < resultRV.Len(); index++ {
		index := index
		itemRV := resultRV.Index(index)
		if itemRV.Kind() == reflect.Struct && itemRV.CanAddr() {
			// keep pointer receivers reachable for the reflection resolver
			itemRV = itemRV.Addr()
		}
		item := itemRV.Interface()

		ctx := graphql.WithFieldContext(ctx, &graphql.FieldContext{
			Index:  &index,
			Result: item,
		})

		completed, err := ec.completeValue(ctx, parentType, itemType, field, item)
		if err != nil {
			if !errors.Is(err, errPropagatedNull) {
				graphql.AddError(ctx, err)
			}
			if itemType.NonNull {
				return graphql.Null, errPropagatedNull
			}
			completed = graphql.Null
		}
		ret[index] = completed
	}

	return ret, nil
}

func completeLeafValue(result interface{}) (graphql.Marshaler, error) {
	if m, ok := result.(graphql.Marshaler); ok {
		return m, nil
	}

	rv := reflect.ValueOf(result)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return graphql.Null, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return graphql.MarshalString(rv.String()), nil
	case reflect.Bool:
		return graphql.MarshalBoolean(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return graphql.MarshalInt(int(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return graphql.MarshalInt(int(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return graphql.MarshalFloat(rv.Float()), nil
	}

	if s, ok := result.(fmt.Stringer); ok {
		return graphql.MarshalString(s.String()), nil
	}

	return graphql.Null, gqlerror.Errorf("unsupported leaf type: %T", result)
}

func (ec *executionContext) completeAbstractValue(ctx context.Context, abstractType *ast.Definition, field graphql.CollectedField, result interface{}) (graphql.Marshaler, error) {
	runtimeTypeName := ec.typeResolver(ctx, result, ec.schema, abstractType)
	if runtimeTypeName == "" {
		return graphql.Null, gqlerror.Errorf(
			`abstract type "%s" must resolve to an Object type at runtime for field "%s"`,
			abstractType.Name,
			field.Name,
		)
	}

	runtimeType := ec.schema.Types[runtimeTypeName]
	if runtimeType == nil || runtimeType.Kind != ast.Object {
		return graphql.Null, gqlerror.Errorf(
			`abstract type "%s" was resolved to "%s" which is not an object type of the schema`,
			abstractType.Name,
			runtimeTypeName,
		)
	}

	if !utils.IsTypeDefSubTypeOf(ec.schema, runtimeType, abstractType) {
		return graphql.Null, gqlerror.Errorf(
			`runtime Object type "%s" is not a possible type for "%s"`,
			runtimeType.Name,
			abstractType.Name,
		)
	}

	return ec.completeObjectValue(ctx, runtimeType, field, result)
}

func (ec *executionContext) completeObjectValue(ctx context.Context, returnType *ast.Definition, field graphql.CollectedField, result interface{}) (graphql.Marshaler, error) {
	satisfies := []string{returnType.Name}
	satisfies = append(satisfies, returnType.Interfaces...)
	subFields := graphql.CollectFields(ec.oc, field.Selections, satisfies)

	data, invalid := ec.executeFields(ctx, returnType, result, subFields)
	if invalid {
		return graphql.Null, errPropagatedNull
	}
	return data, nil
}

// DefaultTypeResolver reads the concrete type name from a "__typename" key
// when the value is a map.
func DefaultTypeResolver(ctx context.Context, value interface{}, schema *ast.Schema, abstractType *ast.Definition) string {
	if utils.IsObjectLike(value) {
		typename, ok := value.(map[string]interface{})["__typename"].(string)
		if ok {
			return typename
		}
	}
	return ""
}

// DefaultFieldResolver takes the property named like the response key from a
// map source. A property holding a func() (interface{}, error) is called.
func DefaultFieldResolver(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
	fc := graphql.GetFieldContext(ctx)
	if fc == nil {
		panic("ctx doesn't have FieldContext")
	}

	if !utils.IsObjectLike(source) {
		return nil, nil
	}

	property := source.(map[string]interface{})[fc.Field.Alias]
	if f, ok := property.(func() (interface{}, error)); ok {
		return f()
	}
	return property, nil
}

func isNull(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

func isNilSlice(v interface{}) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Slice && rv.IsNil()
}
