package schema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	schema "github.com/hanpama/graphexec/schema"
)

func TestRender(t *testing.T) {
	sch := schema.New("").
		AddType(schema.NewType("Episode", schema.TypeKindEnum, "").
			AddEnumValue(schema.NewEnumValue("NEWHOPE", "")).
			AddEnumValue(schema.NewEnumValue("EMPIRE", "")).
			AddEnumValue(schema.NewEnumValue("JEDI", "").Deprecate("use NEWHOPE"))).
		AddType(schema.NewType("Character", schema.TypeKindInterface, "").
			AddField(schema.NewField("id", "", schema.NonNullType(schema.NamedType("ID")))).
			AddField(schema.NewField("name", "", schema.NamedType("String")))).
		AddType(schema.NewType("Human", schema.TypeKindObject, "").
			AddInterface("Character").
			AddField(schema.NewField("id", "", schema.NonNullType(schema.NamedType("ID")))).
			AddField(schema.NewField("name", "", schema.NamedType("String"))).
			AddField(schema.NewField("friends", "", schema.ListType(schema.NamedType("Character"))))).
		AddType(schema.NewType("ReviewInput", schema.TypeKindInputObject, "").
			AddInputField(schema.NewInputValue("stars", "", schema.NonNullType(schema.NamedType("Int")))).
			AddInputField(schema.NewInputValue("commentary", "", schema.NamedType("String")).SetDefault("n/a"))).
		AddType(schema.NewType("SearchResult", schema.TypeKindUnion, "").
			AddPossibleType("Human")).
		AddType(schema.NewType("Query", schema.TypeKindObject, "").
			AddField(schema.NewField("hero", "", schema.NamedType("Character")).
				AddArgument(schema.NewInputValue("episode", "", schema.NamedType("Episode")).SetDefault("NEWHOPE")))).
		SetQueryType("Query")
	require.NoError(t, sch.Build())

	want := `interface Character {
  id: ID!
  name: String
}

enum Episode {
  NEWHOPE
  EMPIRE
  JEDI @deprecated(reason: "use NEWHOPE")
}

type Human implements Character {
  id: ID!
  name: String
  friends: [Character]
}

type Query {
  hero(episode: Episode = "NEWHOPE"): Character
}

input ReviewInput {
  stars: Int!
  commentary: String = "n/a"
}

union SearchResult = Human
`
	if diff := cmp.Diff(want, schema.Render(sch)); diff != "" {
		t.Fatalf("SDL mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderValue(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{nil, "null"},
		{"hi", `"hi"`},
		{42, "42"},
		{1.5, "1.5"},
		{true, "true"},
		{[]any{1, "a"}, `[1, "a"]`},
		{map[string]any{"b": 2, "a": 1}, "{a: 1, b: 2}"},
	}
	for _, tc := range tests {
		if got := schema.RenderValue(tc.value); got != tc.want {
			t.Errorf("RenderValue(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
