package introspection

import (
	"context"

	schema "github.com/hanpama/graphexec/schema"
)

func metaSchemaField(sch *schema.Schema) *schema.Field {
	return &schema.Field{
		Name:        "__schema",
		Description: "Access the current type schema of this server.",
		Type:        schema.NonNullType(schema.NamedType("__Schema")),
		Resolve: func(ctx context.Context, source any, args map[string]any) (any, error) {
			return sch, nil
		},
	}
}

func metaTypeField(sch *schema.Schema) *schema.Field {
	return &schema.Field{
		Name:        "__type",
		Description: "Request the type information of a single type.",
		Arguments: []*schema.InputValue{
			{
				Name:        "name",
				Description: "The name of the type to look up.",
				Type:        schema.NonNullType(schema.NamedType("String")),
			},
		},
		Type: schema.NamedType("__Type"),
		Resolve: func(ctx context.Context, source any, args map[string]any) (any, error) {
			name, _ := args["name"].(string)
			t, ok := sch.Lookup(name)
			if !ok {
				return nil, nil
			}
			return t, nil
		},
	}
}

func schemaType(sch *schema.Schema) *schema.Type {
	return &schema.Type{
		Name:        "__Schema",
		Kind:        schema.TypeKindObject,
		Description: "A GraphQL Schema defines the capabilities of a GraphQL server.",
		Fields: []*schema.Field{
			{
				Name:        "types",
				Description: "A list of all types supported by this server.",
				Type:        schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("__Type")))),
				Resolve:     schemaAttr(func(s *schema.Schema) any { return sortedTypes(s) }),
			},
			{
				Name:        "queryType",
				Description: "The type that query operations will be rooted at.",
				Type:        schema.NonNullType(schema.NamedType("__Type")),
				Resolve:     schemaAttr(func(s *schema.Schema) any { return s.GetQueryType() }),
			},
			{
				Name:        "mutationType",
				Description: "If this server supports mutation, the type that mutation operations will be rooted at.",
				Type:        schema.NamedType("__Type"),
				Resolve:     schemaAttr(func(s *schema.Schema) any { return nilableType(s.GetMutationType()) }),
			},
			{
				Name:        "subscriptionType",
				Description: "If this server supports subscription, the type that subscription operations will be rooted at.",
				Type:        schema.NamedType("__Type"),
				Resolve:     schemaAttr(func(s *schema.Schema) any { return nilableType(s.GetSubscriptionType()) }),
			},
			{
				Name:        "directives",
				Description: "A list of all directives supported by this server.",
				Type:        schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("__Directive")))),
				Resolve:     schemaAttr(func(s *schema.Schema) any { return sortedDirectives(s) }),
			},
			{
				Name:        "description",
				Description: "A description of the schema.",
				Type:        schema.NamedType("String"),
				Resolve:     schemaAttr(func(s *schema.Schema) any { return s.Description }),
			},
		},
	}
}

func typeType(sch *schema.Schema) *schema.Type {
	return &schema.Type{
		Name:        "__Type",
		Kind:        schema.TypeKindObject,
		Description: "The fundamental unit of any GraphQL Schema is the type.",
		Fields: []*schema.Field{
			{
				Name:        "kind",
				Description: "The kind of type.",
				Type:        schema.NonNullType(schema.NamedType("__TypeKind")),
				Resolve:     typeAttr(sch, "kind"),
			},
			{
				Name:        "name",
				Description: "The name of the type.",
				Type:        schema.NamedType("String"),
				Resolve:     typeAttr(sch, "name"),
			},
			{
				Name:        "description",
				Description: "The description of the type.",
				Type:        schema.NamedType("String"),
				Resolve:     typeAttr(sch, "description"),
			},
			{
				Name:      "fields",
				Arguments: includeDeprecatedArg(),
				Type:      schema.ListType(schema.NonNullType(schema.NamedType("__Field"))),
				Resolve:   typeAttr(sch, "fields"),
			},
			{
				Name:    "interfaces",
				Type:    schema.ListType(schema.NonNullType(schema.NamedType("__Type"))),
				Resolve: typeAttr(sch, "interfaces"),
			},
			{
				Name:    "possibleTypes",
				Type:    schema.ListType(schema.NonNullType(schema.NamedType("__Type"))),
				Resolve: typeAttr(sch, "possibleTypes"),
			},
			{
				Name:      "enumValues",
				Arguments: includeDeprecatedArg(),
				Type:      schema.ListType(schema.NonNullType(schema.NamedType("__EnumValue"))),
				Resolve:   typeAttr(sch, "enumValues"),
			},
			{
				Name:      "inputFields",
				Arguments: includeDeprecatedArg(),
				Type:      schema.ListType(schema.NonNullType(schema.NamedType("__InputValue"))),
				Resolve:   typeAttr(sch, "inputFields"),
			},
			{
				Name:    "ofType",
				Type:    schema.NamedType("__Type"),
				Resolve: typeAttr(sch, "ofType"),
			},
			{
				Name:    "specifiedByURL",
				Type:    schema.NamedType("String"),
				Resolve: typeAttr(sch, "specifiedByURL"),
			},
			{
				Name:    "isOneOf",
				Type:    schema.NamedType("Boolean"),
				Resolve: typeAttr(sch, "isOneOf"),
			},
		},
	}
}

func fieldType() *schema.Type {
	return &schema.Type{
		Name: "__Field",
		Kind: schema.TypeKindObject,
		Fields: []*schema.Field{
			{
				Name:    "name",
				Type:    schema.NonNullType(schema.NamedType("String")),
				Resolve: fieldAttr(func(f *schema.Field, _ map[string]any) any { return f.Name }),
			},
			{
				Name:    "description",
				Type:    schema.NamedType("String"),
				Resolve: fieldAttr(func(f *schema.Field, _ map[string]any) any { return f.Description }),
			},
			{
				Name:      "args",
				Arguments: includeDeprecatedArg(),
				Type:      schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("__InputValue")))),
				Resolve: fieldAttr(func(f *schema.Field, args map[string]any) any {
					return filterInputValues(f.Arguments, boolArg(args, "includeDeprecated", false))
				}),
			},
			{
				Name:    "type",
				Type:    schema.NonNullType(schema.NamedType("__Type")),
				Resolve: fieldAttr(func(f *schema.Field, _ map[string]any) any { return f.Type }),
			},
			{
				Name:    "isDeprecated",
				Type:    schema.NonNullType(schema.NamedType("Boolean")),
				Resolve: fieldAttr(func(f *schema.Field, _ map[string]any) any { return f.IsDeprecated }),
			},
			{
				Name:    "deprecationReason",
				Type:    schema.NamedType("String"),
				Resolve: fieldAttr(func(f *schema.Field, _ map[string]any) any {
					return deprecationReason(f.IsDeprecated, f.DeprecationReason)
				}),
			},
		},
	}
}

func inputValueType() *schema.Type {
	return &schema.Type{
		Name: "__InputValue",
		Kind: schema.TypeKindObject,
		Fields: []*schema.Field{
			{
				Name:    "name",
				Type:    schema.NonNullType(schema.NamedType("String")),
				Resolve: inputValueAttr(func(iv *schema.InputValue) any { return iv.Name }),
			},
			{
				Name:    "description",
				Type:    schema.NamedType("String"),
				Resolve: inputValueAttr(func(iv *schema.InputValue) any { return iv.Description }),
			},
			{
				Name:    "type",
				Type:    schema.NonNullType(schema.NamedType("__Type")),
				Resolve: inputValueAttr(func(iv *schema.InputValue) any { return iv.Type }),
			},
			{
				Name:    "defaultValue",
				Type:    schema.NamedType("String"),
				Resolve: inputValueAttr(func(iv *schema.InputValue) any { return renderedDefault(iv) }),
			},
			{
				Name:    "isDeprecated",
				Type:    schema.NonNullType(schema.NamedType("Boolean")),
				Resolve: inputValueAttr(func(iv *schema.InputValue) any { return iv.IsDeprecated }),
			},
			{
				Name:    "deprecationReason",
				Type:    schema.NamedType("String"),
				Resolve: inputValueAttr(func(iv *schema.InputValue) any {
					return deprecationReason(iv.IsDeprecated, iv.DeprecationReason)
				}),
			},
		},
	}
}

func enumValueType() *schema.Type {
	return &schema.Type{
		Name: "__EnumValue",
		Kind: schema.TypeKindObject,
		Fields: []*schema.Field{
			{
				Name:    "name",
				Type:    schema.NonNullType(schema.NamedType("String")),
				Resolve: enumValueAttr(func(ev *schema.EnumValue) any { return ev.Name }),
			},
			{
				Name:    "description",
				Type:    schema.NamedType("String"),
				Resolve: enumValueAttr(func(ev *schema.EnumValue) any { return ev.Description }),
			},
			{
				Name:    "isDeprecated",
				Type:    schema.NonNullType(schema.NamedType("Boolean")),
				Resolve: enumValueAttr(func(ev *schema.EnumValue) any { return ev.IsDeprecated }),
			},
			{
				Name:    "deprecationReason",
				Type:    schema.NamedType("String"),
				Resolve: enumValueAttr(func(ev *schema.EnumValue) any {
					return deprecationReason(ev.IsDeprecated, ev.DeprecationReason)
				}),
			},
		},
	}
}

func directiveType() *schema.Type {
	return &schema.Type{
		Name: "__Directive",
		Kind: schema.TypeKindObject,
		Fields: []*schema.Field{
			{
				Name:    "name",
				Type:    schema.NonNullType(schema.NamedType("String")),
				Resolve: directiveAttr(func(d *schema.Directive, _ map[string]any) any { return d.Name }),
			},
			{
				Name:    "description",
				Type:    schema.NamedType("String"),
				Resolve: directiveAttr(func(d *schema.Directive, _ map[string]any) any { return d.Description }),
			},
			{
				Name:    "isRepeatable",
				Type:    schema.NonNullType(schema.NamedType("Boolean")),
				Resolve: directiveAttr(func(d *schema.Directive, _ map[string]any) any { return d.IsRepeatable }),
			},
			{
				Name:    "locations",
				Type:    schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("__DirectiveLocation")))),
				Resolve: directiveAttr(func(d *schema.Directive, _ map[string]any) any { return sortedLocations(d) }),
			},
			{
				Name:      "args",
				Arguments: includeDeprecatedArg(),
				Type:      schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("__InputValue")))),
				Resolve: directiveAttr(func(d *schema.Directive, args map[string]any) any {
					return filterInputValues(d.Arguments, boolArg(args, "includeDeprecated", false))
				}),
			},
		},
	}
}

func typeKindEnum() *schema.Type {
	return &schema.Type{
		Name: "__TypeKind",
		Kind: schema.TypeKindEnum,
		EnumValues: []*schema.EnumValue{
			{Name: "SCALAR", Value: "SCALAR"},
			{Name: "OBJECT", Value: "OBJECT"},
			{Name: "INTERFACE", Value: "INTERFACE"},
			{Name: "UNION", Value: "UNION"},
			{Name: "ENUM", Value: "ENUM"},
			{Name: "INPUT_OBJECT", Value: "INPUT_OBJECT"},
			{Name: "LIST", Value: "LIST"},
			{Name: "NON_NULL", Value: "NON_NULL"},
		},
	}
}

func directiveLocationEnum() *schema.Type {
	names := []string{
		"QUERY", "MUTATION", "SUBSCRIPTION", "FIELD",
		"FRAGMENT_DEFINITION", "FRAGMENT_SPREAD", "INLINE_FRAGMENT",
		"VARIABLE_DEFINITION", "SCHEMA", "SCALAR", "OBJECT",
		"FIELD_DEFINITION", "ARGUMENT_DEFINITION", "INTERFACE", "UNION",
		"ENUM", "ENUM_VALUE", "INPUT_OBJECT", "INPUT_FIELD_DEFINITION",
	}
	values := make([]*schema.EnumValue, len(names))
	for i, name := range names {
		values[i] = &schema.EnumValue{Name: name, Value: name}
	}
	return &schema.Type{
		Name:       "__DirectiveLocation",
		Kind:       schema.TypeKindEnum,
		EnumValues: values,
	}
}

func includeDeprecatedArg() []*schema.InputValue {
	return []*schema.InputValue{
		{
			Name:         "includeDeprecated",
			Type:         schema.NamedType("Boolean"),
			DefaultValue: false,
			HasDefault:   true,
		},
	}
}
