package introspection

import (
	"context"
	"fmt"
	"sort"
	"strings"

	schema "github.com/hanpama/graphexec/schema"
)

// schemaAttr adapts a function over the schema source into a ResolveFunc.
func schemaAttr(get func(*schema.Schema) any) schema.ResolveFunc {
	return func(ctx context.Context, source any, args map[string]any) (any, error) {
		s, ok := source.(*schema.Schema)
		if !ok {
			return nil, fmt.Errorf("__Schema field resolved against %T", source)
		}
		return get(s), nil
	}
}

// typeAttr resolves a __Type field. A __Type value is backed by either a
// named type definition or a structural wrapper reference, so the resolver
// dispatches on the source's dynamic type.
func typeAttr(sch *schema.Schema, field string) schema.ResolveFunc {
	return func(ctx context.Context, source any, args map[string]any) (any, error) {
		switch src := source.(type) {
		case *schema.Type:
			return namedTypeAttr(sch, src, field, args), nil
		case *schema.TypeRef:
			return typeRefAttr(sch, src, field, args), nil
		}
		return nil, fmt.Errorf("__Type field %q resolved against %T", field, source)
	}
}

func fieldAttr(get func(*schema.Field, map[string]any) any) schema.ResolveFunc {
	return func(ctx context.Context, source any, args map[string]any) (any, error) {
		f, ok := source.(*schema.Field)
		if !ok {
			return nil, fmt.Errorf("__Field field resolved against %T", source)
		}
		return get(f, args), nil
	}
}

func inputValueAttr(get func(*schema.InputValue) any) schema.ResolveFunc {
	return func(ctx context.Context, source any, args map[string]any) (any, error) {
		iv, ok := source.(*schema.InputValue)
		if !ok {
			return nil, fmt.Errorf("__InputValue field resolved against %T", source)
		}
		return get(iv), nil
	}
}

func enumValueAttr(get func(*schema.EnumValue) any) schema.ResolveFunc {
	return func(ctx context.Context, source any, args map[string]any) (any, error) {
		ev, ok := source.(*schema.EnumValue)
		if !ok {
			return nil, fmt.Errorf("__EnumValue field resolved against %T", source)
		}
		return get(ev), nil
	}
}

func directiveAttr(get func(*schema.Directive, map[string]any) any) schema.ResolveFunc {
	return func(ctx context.Context, source any, args map[string]any) (any, error) {
		d, ok := source.(*schema.Directive)
		if !ok {
			return nil, fmt.Errorf("__Directive field resolved against %T", source)
		}
		return get(d, args), nil
	}
}

func namedTypeAttr(sch *schema.Schema, t *schema.Type, field string, args map[string]any) any {
	switch field {
	case "kind":
		return string(t.Kind)
	case "name":
		return t.Name
	case "description":
		return t.Description
	case "specifiedByURL":
		if t.SpecifiedByURL == nil {
			return nil
		}
		return *t.SpecifiedByURL
	case "fields":
		return typeFields(t, args)
	case "interfaces":
		return typeInterfaces(sch, t)
	case "possibleTypes":
		return typePossibleTypes(sch, t)
	case "enumValues":
		return typeEnumValues(t, args)
	case "inputFields":
		return typeInputFields(t, args)
	case "isOneOf":
		return t.OneOf
	case "ofType":
		// Wrapper types are TypeRef nodes; named types never expose ofType.
		return nil
	}
	return nil
}

func typeRefAttr(sch *schema.Schema, tr *schema.TypeRef, field string, args map[string]any) any {
	if tr.Kind == schema.TypeRefKindNamed {
		if def, ok := sch.Lookup(tr.Named); ok {
			return namedTypeAttr(sch, def, field, args)
		}
		return nil
	}
	switch field {
	case "kind":
		if tr.Kind == schema.TypeRefKindNonNull {
			return "NON_NULL"
		}
		return "LIST"
	case "ofType":
		return tr.OfType
	}
	return nil
}

// nilableType avoids boxing a typed nil when the root type is absent.
func nilableType(t *schema.Type) any {
	if t == nil {
		return nil
	}
	return t
}

func sortedTypes(sch *schema.Schema) []*schema.Type {
	out := make([]*schema.Type, 0, len(sch.Types))
	for _, t := range sch.Types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sortedDirectives(sch *schema.Schema) []*schema.Directive {
	out := make([]*schema.Directive, 0, len(sch.Directives))
	for _, d := range sch.Directives {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sortedLocations(d *schema.Directive) []string {
	locs := append([]string(nil), d.Locations...)
	sort.Strings(locs)
	return locs
}

func typeFields(t *schema.Type, args map[string]any) any {
	if t.Kind != schema.TypeKindObject && t.Kind != schema.TypeKindInterface {
		return nil
	}
	includeDeprecated := boolArg(args, "includeDeprecated", false)
	out := []*schema.Field{}
	for _, f := range t.Fields {
		if strings.HasPrefix(f.Name, "__") {
			// Meta fields are queryable but never listed.
			continue
		}
		if !includeDeprecated && f.IsDeprecated {
			continue
		}
		out = append(out, f)
	}
	return out
}

func typeInterfaces(sch *schema.Schema, t *schema.Type) any {
	if t.Kind != schema.TypeKindObject && t.Kind != schema.TypeKindInterface {
		return nil
	}
	out := []*schema.Type{}
	for _, name := range t.Interfaces {
		if def, ok := sch.Lookup(name); ok {
			out = append(out, def)
		}
	}
	return out
}

func typePossibleTypes(sch *schema.Schema, t *schema.Type) any {
	if t.Kind != schema.TypeKindInterface && t.Kind != schema.TypeKindUnion {
		return nil
	}
	out := []*schema.Type{}
	for _, name := range t.PossibleTypes {
		if def, ok := sch.Lookup(name); ok {
			out = append(out, def)
		}
	}
	return out
}

func typeEnumValues(t *schema.Type, args map[string]any) any {
	if t.Kind != schema.TypeKindEnum {
		return nil
	}
	includeDeprecated := boolArg(args, "includeDeprecated", false)
	out := []*schema.EnumValue{}
	for _, ev := range t.EnumValues {
		if !includeDeprecated && ev.IsDeprecated {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func typeInputFields(t *schema.Type, args map[string]any) any {
	if t.Kind != schema.TypeKindInputObject {
		return nil
	}
	includeDeprecated := boolArg(args, "includeDeprecated", false)
	out := []*schema.InputValue{}
	for _, iv := range t.InputFields {
		if !includeDeprecated && iv.IsDeprecated {
			continue
		}
		out = append(out, iv)
	}
	return out
}

func filterInputValues(values []*schema.InputValue, includeDeprecated bool) []*schema.InputValue {
	out := []*schema.InputValue{}
	for _, v := range values {
		if !includeDeprecated && v.IsDeprecated {
			continue
		}
		out = append(out, v)
	}
	return out
}

func deprecationReason(deprecated bool, reason string) any {
	if !deprecated {
		return nil
	}
	return reason
}

func renderedDefault(iv *schema.InputValue) any {
	if !iv.HasDefault {
		return nil
	}
	return schema.RenderValue(iv.DefaultValue)
}

func boolArg(args map[string]any, name string, def bool) bool {
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}
