package executor

import (
	"fmt"
	"strconv"
	"strings"

	language "github.com/hanpama/graphexec/language"
	schema "github.com/hanpama/graphexec/schema"
)

// CoercionError reports a raw literal, variable, or input value that cannot
// be converted into its declared type.
type CoercionError struct {
	Message string
}

func (e *CoercionError) Error() string { return e.Message }

func coercionErrorf(format string, args ...any) *CoercionError {
	return &CoercionError{Message: fmt.Sprintf(format, args...)}
}

// coercer applies input coercion rules against a built schema.
type coercer struct {
	schema *schema.Schema
	// reject input-object keys that match no declared field
	strict bool
}

// coerceVariableValues coerces the request's variable values against the
// operation's variable definitions. Any failure here is fatal to the request.
func coerceVariableValues(
	c coercer,
	operation *language.OperationDefinition,
	variableValues map[string]any,
) (map[string]any, error) {
	coerced := make(map[string]any)
	for _, varDef := range operation.VariableDefinitions {
		name := varDef.Variable
		t := varDef.Type
		val, ok := variableValues[name]
		if !ok {
			if varDef.DefaultValue != nil {
				val = astValueToGo(varDef.DefaultValue)
			} else if t.NonNull {
				return nil, coercionErrorf("variable $%s of required type %s was not provided", name, t.String())
			} else {
				continue
			}
		}
		if val == nil && t.NonNull {
			return nil, coercionErrorf("variable $%s of type %s cannot be null", name, t.String())
		}
		cv, err := c.coerceValue(val, typeRefFromAST(t))
		if err != nil {
			return nil, coercionErrorf("variable $%s of type %s cannot be coerced: %v", name, t.String(), err)
		}
		coerced[name] = cv
	}
	return coerced, nil
}

// coerceArgumentValues coerces every declared argument of fieldDef from the
// selection's literal and variable values. Failures are recorded as field
// errors; the second return is false when the field must not resolve.
func (state *executionState) coerceArgumentValues(
	fieldDef *schema.Field,
	arguments language.ArgumentList,
	path Path,
	pos *language.Position,
) (map[string]any, bool) {
	coerced := make(map[string]any)
	ok := true
	for _, arg := range arguments {
		argDef := fieldDef.Argument(arg.Name)
		if argDef == nil {
			continue
		}
		val, present := valueFromASTWithVars(arg.Value, state.variableValues)
		if !present {
			// Unbound variable: fall through to the defaults pass.
			continue
		}
		cv, err := state.coercer.coerceValue(val, argDef.Type)
		if err != nil {
			state.addError(GraphQLError{
				Message:   fmt.Sprintf("argument %q cannot be coerced: %v", arg.Name, err),
				Path:      path,
				Locations: locationOf(pos),
			})
			ok = false
			continue
		}
		coerced[arg.Name] = cv
	}
	for _, argDef := range fieldDef.Arguments {
		if _, have := coerced[argDef.Name]; have {
			continue
		}
		if argDef.HasDefault {
			coerced[argDef.Name] = argDef.DefaultValue
		} else if schema.IsNonNull(argDef.Type) {
			state.addError(GraphQLError{
				Message:   fmt.Sprintf("argument %q of required type %s was not provided", argDef.Name, argDef.Type),
				Path:      path,
				Locations: locationOf(pos),
			})
			ok = false
		}
	}
	return coerced, ok
}

// coerceValue converts a raw value into the internal value required by
// targetType.
func (c coercer) coerceValue(value any, targetType *schema.TypeRef) (any, error) {
	if schema.IsNonNull(targetType) {
		if value == nil {
			return nil, coercionErrorf("value required for type %s", targetType)
		}
		return c.coerceValue(value, schema.Unwrap(targetType))
	}
	if value == nil {
		return nil, nil
	}
	if schema.IsList(targetType) {
		return c.coerceListValue(value, targetType)
	}

	namedType := schema.GetNamedType(targetType)
	typeObj, ok := c.schema.Lookup(namedType)
	if !ok {
		return nil, coercionErrorf("unknown type %s", namedType)
	}
	switch typeObj.Kind {
	case schema.TypeKindScalar:
		if typeObj.ParseValue == nil {
			return value, nil
		}
		cv, err := typeObj.ParseValue(value)
		if err != nil {
			return nil, &CoercionError{Message: err.Error()}
		}
		return cv, nil
	case schema.TypeKindEnum:
		return coerceEnumValue(typeObj, value)
	case schema.TypeKindInputObject:
		return c.coerceInputObject(typeObj, value)
	default:
		return nil, coercionErrorf("type %s (%s) cannot be used as input", namedType, typeObj.Kind)
	}
}

// coerceListValue coerces each element independently against the inner type.
// A non-sequence raw value is coerced as a single-element sequence. Element
// failures are index-qualified and do not stop sibling coercion, but any
// failure fails the list as a whole.
func (c coercer) coerceListValue(value any, listType *schema.TypeRef) (any, error) {
	innerType := schema.Unwrap(listType)
	items, isList := value.([]any)
	if !isList {
		cv, err := c.coerceValue(value, innerType)
		if err != nil {
			return nil, err
		}
		return []any{cv}, nil
	}
	coerced := make([]any, len(items))
	var problems []string
	for i, item := range items {
		cv, err := c.coerceValue(item, innerType)
		if err != nil {
			problems = append(problems, fmt.Sprintf("[%d]: %v", i, err))
			continue
		}
		coerced[i] = cv
	}
	if len(problems) > 0 {
		return nil, &CoercionError{Message: strings.Join(problems, "; ")}
	}
	return coerced, nil
}

// coerceEnumValue maps a symbol name to the enum's internal value.
func coerceEnumValue(enumType *schema.Type, value any) (any, error) {
	name, ok := value.(string)
	if !ok {
		return nil, coercionErrorf("enum %s cannot represent non-string value %v (%T)", enumType.Name, value, value)
	}
	if ev := enumType.EnumValue(name); ev != nil {
		return ev.Value, nil
	}
	return nil, coercionErrorf("value %q does not appear in enum %s", name, enumType.Name)
}

// coerceInputObject coerces a keyed mapping field by field, applying
// declared defaults and requiring every Non-Null field without a default.
func (c coercer) coerceInputObject(inputType *schema.Type, value any) (any, error) {
	fields, ok := value.(map[string]any)
	if !ok {
		return nil, coercionErrorf("input object %s requires a keyed mapping, got %T", inputType.Name, value)
	}
	if c.strict {
		for key := range fields {
			if inputType.InputField(key) == nil {
				return nil, coercionErrorf("input object %s has no field %q", inputType.Name, key)
			}
		}
	}
	coerced := make(map[string]any, len(inputType.InputFields))
	var problems []string
	for _, fieldDef := range inputType.InputFields {
		raw, present := fields[fieldDef.Name]
		if !present {
			if fieldDef.HasDefault {
				coerced[fieldDef.Name] = fieldDef.DefaultValue
			} else if schema.IsNonNull(fieldDef.Type) {
				problems = append(problems, fmt.Sprintf("%s: field of required type %s was not provided", fieldDef.Name, fieldDef.Type))
			}
			continue
		}
		cv, err := c.coerceValue(raw, fieldDef.Type)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", fieldDef.Name, err))
			continue
		}
		coerced[fieldDef.Name] = cv
	}
	if len(problems) > 0 {
		return nil, &CoercionError{Message: strings.Join(problems, "; ")}
	}
	if inputType.OneOf {
		if len(coerced) != 1 {
			return nil, coercionErrorf("oneOf input object %s requires exactly one field, got %d", inputType.Name, len(coerced))
		}
		for _, v := range coerced {
			if v == nil {
				return nil, coercionErrorf("oneOf input object %s requires a non-null field value", inputType.Name)
			}
		}
	}
	return coerced, nil
}

// valueFromASTWithVars converts an AST value to a Go value, substituting
// variables. The second return is false when the value is an unbound
// variable reference.
func valueFromASTWithVars(value *language.Value, variableValues map[string]any) (any, bool) {
	if value == nil {
		return nil, false
	}
	switch value.Kind {
	case language.Variable:
		v, ok := variableValues[value.Raw]
		return v, ok
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, child := range value.Children {
			out[i], _ = valueFromASTWithVars(child.Value, variableValues)
		}
		return out, true
	case language.ObjectValue:
		m := make(map[string]any, len(value.Children))
		for _, child := range value.Children {
			cv, present := valueFromASTWithVars(child.Value, variableValues)
			if present {
				m[child.Name] = cv
			}
		}
		return m, true
	default:
		return astValueToGo(value), true
	}
}

// astValueToGo converts a constant AST value to a Go value.
func astValueToGo(value *language.Value) any {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case language.IntValue:
		iv, _ := strconv.Atoi(value.Raw)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue:
		return value.Raw
	case language.BooleanValue:
		return value.Raw == "true"
	case language.NullValue:
		return nil
	case language.EnumValue:
		return value.Raw
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = astValueToGo(c.Value)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any)
		for _, f := range value.Children {
			m[f.Name] = astValueToGo(f.Value)
		}
		return m
	default:
		return nil
	}
}

func typeRefFromAST(t *language.Type) *schema.TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return schema.NonNullType(typeRefFromAST(&language.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return schema.NamedType(t.NamedType)
	}
	if t.Elem != nil {
		return schema.ListType(typeRefFromAST(t.Elem))
	}
	return nil
}
