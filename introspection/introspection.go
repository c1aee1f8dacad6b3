// Package introspection extends a schema so it can answer queries about its
// own type system. The meta types (__Schema, __Type, __Field, ...) are plain
// schema types whose resolvers walk the live schema values, so introspection
// runs through the ordinary execution path.
package introspection

import (
	schema "github.com/hanpama/graphexec/schema"
)

// Extend returns a copy of sch with the introspection types registered and
// the __schema and __type fields appended to the query root. The original
// schema is not modified; the returned schema must be finalized with Build
// before execution.
func Extend(original *schema.Schema) *schema.Schema {
	extended := &schema.Schema{
		QueryType:        original.QueryType,
		MutationType:     original.MutationType,
		SubscriptionType: original.SubscriptionType,
		Types:            make(map[string]*schema.Type, len(original.Types)+8),
		Directives:       original.Directives,
		Description:      original.Description,
	}
	for name, typ := range original.Types {
		extended.Types[name] = typ
	}

	// The meta resolvers close over the extended schema so the meta types
	// themselves appear in the reported type list.
	extended.Types["__Schema"] = schemaType(extended)
	extended.Types["__Type"] = typeType(extended)
	extended.Types["__Field"] = fieldType()
	extended.Types["__InputValue"] = inputValueType()
	extended.Types["__EnumValue"] = enumValueType()
	extended.Types["__Directive"] = directiveType()
	extended.Types["__TypeKind"] = typeKindEnum()
	extended.Types["__DirectiveLocation"] = directiveLocationEnum()

	if queryType := extended.GetQueryType(); queryType != nil {
		queryCopy := &schema.Type{
			Name:        queryType.Name,
			Kind:        queryType.Kind,
			Description: queryType.Description,
			Fields:      make([]*schema.Field, len(queryType.Fields)),
			Interfaces:  queryType.Interfaces,
			IsTypeOf:    queryType.IsTypeOf,
		}
		copy(queryCopy.Fields, queryType.Fields)
		queryCopy.Fields = append(queryCopy.Fields, metaSchemaField(extended), metaTypeField(extended))
		extended.Types[queryType.Name] = queryCopy
	}

	return extended
}
