package execute

import (
	"fmt"
	"reflect"
	"unicode"

	"github.com/99designs/gqlgen/graphql"
)

// resolveByReflection resolves a field of a Go value by calling the exported
// method named after the field, or by reading the exported struct field of that name.
// Method parameters receive the field arguments in declaration order.
// It backs the introspection types, which gqlgen exposes as plain Go structs.
func resolveByReflection(source interface{}, field graphql.CollectedField, args map[string]interface{}) (interface{}, error) {
	name := exportedName(field.Name)

	rv := reflect.ValueOf(source)
	if !rv.IsValid() {
		return nil, nil
	}
	if rv.Kind() != reflect.Ptr {
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		rv = ptr
	} else if rv.IsNil() {
		return nil, nil
	}

	if method := rv.MethodByName(name); method.IsValid() {
		mt := method.Type()
		if mt.NumOut() == 0 {
			return nil, fmt.Errorf("method %s of %T returns nothing", name, source)
		}

		var argDefs []string
		if field.Definition != nil {
			for _, argDef := range field.Definition.Arguments {
				argDefs = append(argDefs, argDef.Name)
			}
		}
		if mt.NumIn() != len(argDefs) {
			return nil, fmt.Errorf("method %s of %T takes %d arguments, field %s declares %d", name, source, mt.NumIn(), field.Name, len(argDefs))
		}

		in := make([]reflect.Value, mt.NumIn())
		for i, argName := range argDefs {
			v, err := argumentValue(args[argName], mt.In(i))
			if err != nil {
				return nil, fmt.Errorf("argument %s: %w", argName, err)
			}
			in[i] = v
		}

		out := method.Call(in)
		if len(out) == 2 {
			if err, ok := out[1].Interface().(error); ok && err != nil {
				return nil, err
			}
		}
		return out[0].Interface(), nil
	}

	elem := rv.Elem()
	if elem.Kind() == reflect.Struct {
		if f := elem.FieldByName(name); f.IsValid() && f.CanInterface() {
			if f.Kind() == reflect.Struct && f.CanAddr() {
				return f.Addr().Interface(), nil
			}
			return f.Interface(), nil
		}
	}

	return nil, fmt.Errorf("%T has no method or field for %s", source, field.Name)
}

func argumentValue(v interface{}, typ reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(typ), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(typ) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(typ) {
		return rv.Convert(typ), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", v, typ)
}

func exportedName(fieldName string) string {
	if fieldName == "" {
		return ""
	}
	r := []rune(fieldName)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
