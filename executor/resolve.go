package executor

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	eventbus "github.com/hanpama/graphexec/eventbus"
	events "github.com/hanpama/graphexec/events"
	schema "github.com/hanpama/graphexec/schema"
)

// resolveFieldValue invokes the field's resolver, or the default resolver
// when none is attached. A resolver panic is converted into a field error so
// it never takes down sibling goroutines.
func (state *executionState) resolveFieldValue(
	ctx context.Context,
	objectType *schema.Type,
	fieldDef *schema.Field,
	source any,
	args map[string]any,
	path Path,
) (value any, err error) {
	started := time.Now()
	eventbus.Publish(ctx, events.ResolveStart{
		TypeName:  objectType.Name,
		FieldName: fieldDef.Name,
		Path:      pathToString(path),
	})
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = fmt.Errorf("resolver for %s.%s panicked: %v", objectType.Name, fieldDef.Name, r)
		}
		var errMsg string
		if err != nil {
			errMsg = err.Error()
		}
		eventbus.Publish(ctx, events.ResolveFinish{
			TypeName:  objectType.Name,
			FieldName: fieldDef.Name,
			Path:      pathToString(path),
			Duration:  time.Since(started),
			Error:     errMsg,
		})
	}()

	if fieldDef.Resolve != nil {
		return fieldDef.Resolve(ctx, source, args)
	}
	return defaultResolve(fieldDef.Name, source)
}

// defaultResolve reads the field off the source value: a map key for
// map[string]any sources, or an exported struct field with a matching name.
func defaultResolve(fieldName string, source any) (any, error) {
	if source == nil {
		return nil, nil
	}
	if m, ok := source.(map[string]any); ok {
		return m[fieldName], nil
	}

	rv := reflect.ValueOf(source)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, nil
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		if strings.EqualFold(sf.Name, fieldName) {
			return rv.Field(i).Interface(), nil
		}
	}
	return nil, nil
}

// serializeScalarValue applies the scalar's Serialize function; a scalar
// without one passes the value through untouched.
func serializeScalarValue(scalarType *schema.Type, value any) (any, error) {
	if scalarType.Serialize == nil {
		return value, nil
	}
	serialized, err := scalarType.Serialize(value)
	if err != nil {
		return nil, fmt.Errorf("cannot serialize value as %s: %v", scalarType.Name, err)
	}
	return serialized, nil
}

// serializeEnumValue maps an internal value back to its symbol name. A string
// that already matches a symbol name passes through.
func serializeEnumValue(enumType *schema.Type, value any) (any, error) {
	for _, ev := range enumType.EnumValues {
		if reflect.DeepEqual(ev.Value, value) {
			return ev.Name, nil
		}
	}
	if name, ok := value.(string); ok {
		if enumType.EnumValue(name) != nil {
			return name, nil
		}
	}
	return nil, fmt.Errorf("enum %s cannot represent value %v", enumType.Name, value)
}

// resolveConcreteType determines the runtime Object type for a value of an
// Interface or Union type. An explicit ResolveType wins; otherwise the member
// types' IsTypeOf predicates are tried in declaration order and the first
// match is selected.
func (state *executionState) resolveConcreteType(ctx context.Context, abstractType *schema.Type, value any) (*schema.Type, error) {
	if abstractType.ResolveType != nil {
		name, err := abstractType.ResolveType(ctx, value)
		if err != nil {
			return nil, err
		}
		concrete, ok := state.schema.Lookup(name)
		if !ok || concrete.Kind != schema.TypeKindObject {
			return nil, fmt.Errorf("abstract type %s must resolve to an Object type, got %q", abstractType.Name, name)
		}
		if !isPossibleType(abstractType, name) {
			return nil, fmt.Errorf("runtime type %q is not a possible type for %q", name, abstractType.Name)
		}
		return concrete, nil
	}

	for _, name := range abstractType.PossibleTypes {
		candidate, ok := state.schema.Lookup(name)
		if !ok || candidate.IsTypeOf == nil {
			continue
		}
		if candidate.IsTypeOf(ctx, value) {
			return candidate, nil
		}
	}
	return nil, fmt.Errorf("could not determine runtime type for value of abstract type %s", abstractType.Name)
}

func isPossibleType(abstractType *schema.Type, name string) bool {
	for _, possible := range abstractType.PossibleTypes {
		if possible == name {
			return true
		}
	}
	return false
}
