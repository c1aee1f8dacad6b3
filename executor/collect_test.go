package executor_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	executor "github.com/hanpama/graphexec/executor"
	schema "github.com/hanpama/graphexec/schema"
)

func heroSchema() *schema.Schema {
	human := map[string]any{"kind": "human", "name": "Luke", "home": "Tatooine"}
	return schema.New("").
		AddType(schema.NewType("Character", schema.TypeKindInterface, "").
			AddField(schema.NewField("name", "", schema.NamedType("String")))).
		AddType(schema.NewType("Human", schema.TypeKindObject, "").
			AddInterface("Character").
			SetIsTypeOf(func(ctx context.Context, value any) bool {
				m, ok := value.(map[string]any)
				return ok && m["kind"] == "human"
			}).
			AddField(schema.NewField("name", "", schema.NamedType("String"))).
			AddField(schema.NewField("home", "", schema.NamedType("String")))).
		AddType(schema.NewType("Droid", schema.TypeKindObject, "").
			AddInterface("Character").
			SetIsTypeOf(func(ctx context.Context, value any) bool {
				m, ok := value.(map[string]any)
				return ok && m["kind"] == "droid"
			}).
			AddField(schema.NewField("name", "", schema.NamedType("String"))).
			AddField(schema.NewField("primaryFunction", "", schema.NamedType("String")))).
		AddType(schema.NewType("Query", schema.TypeKindObject, "").
			AddField(schema.NewField("hero", "", schema.NamedType("Character")).
				SetResolve(valueResolver(human)))).
		SetQueryType("Query")
}

func TestCollectFields_Fragments(t *testing.T) {
	sch := heroSchema()
	mustBuild(t, sch)
	exec := newExecutor(t, sch)

	t.Run("named fragment on interface", func(t *testing.T) {
		gotRes := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `
			{ hero { ...characterFields } }
			fragment characterFields on Character { name }
		`), "", nil, nil)
		wantRes := &executor.ExecutionResult{
			Data:   map[string]any{"hero": map[string]any{"name": "Luke"}},
			Errors: []executor.GraphQLError{},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("inline fragments select by concrete type", func(t *testing.T) {
		gotRes := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `
			{ hero {
				name
				... on Human { home }
				... on Droid { primaryFunction }
			} }
		`), "", nil, nil)
		wantRes := &executor.ExecutionResult{
			Data:   map[string]any{"hero": map[string]any{"name": "Luke", "home": "Tatooine"}},
			Errors: []executor.GraphQLError{},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("fragment cycles terminate", func(t *testing.T) {
		gotRes := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `
			{ hero { ...a } }
			fragment a on Character { name ...b }
			fragment b on Character { ...a }
		`), "", nil, nil)
		wantRes := &executor.ExecutionResult{
			Data:   map[string]any{"hero": map[string]any{"name": "Luke"}},
			Errors: []executor.GraphQLError{},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("duplicate response keys merge selection sets", func(t *testing.T) {
		gotRes := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `
			{ hero { name } hero { ... on Human { home } } }
		`), "", nil, nil)
		wantRes := &executor.ExecutionResult{
			Data:   map[string]any{"hero": map[string]any{"name": "Luke", "home": "Tatooine"}},
			Errors: []executor.GraphQLError{},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestCollectFields_SkipInclude(t *testing.T) {
	sch := schema.New("").
		AddType(schema.NewType("Query", schema.TypeKindObject, "").
			AddField(schema.NewField("a", "", schema.NamedType("String")).SetResolve(valueResolver("A"))).
			AddField(schema.NewField("b", "", schema.NamedType("String")).SetResolve(valueResolver("B")))).
		SetQueryType("Query")
	mustBuild(t, sch)
	exec := newExecutor(t, sch)

	t.Run("literal directives", func(t *testing.T) {
		gotRes := exec.ExecuteRequest(context.Background(), mustParseQuery(t,
			`{ a @skip(if: true) b @include(if: true) }`), "", nil, nil)
		wantRes := &executor.ExecutionResult{
			Data:   map[string]any{"b": "B"},
			Errors: []executor.GraphQLError{},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("variable directives", func(t *testing.T) {
		doc := mustParseQuery(t, `query Q($with: Boolean!) { a @include(if: $with) b }`)
		gotRes := exec.ExecuteRequest(context.Background(), doc, "", map[string]any{"with": false}, nil)
		wantRes := &executor.ExecutionResult{
			Data:   map[string]any{"b": "B"},
			Errors: []executor.GraphQLError{},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("skip on fragment spread", func(t *testing.T) {
		gotRes := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `
			{ b ...extras @skip(if: true) }
			fragment extras on Query { a }
		`), "", nil, nil)
		wantRes := &executor.ExecutionResult{
			Data:   map[string]any{"b": "B"},
			Errors: []executor.GraphQLError{},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestErrorPaths_NestedLists(t *testing.T) {
	items := []any{
		map[string]any{"name": "first"},
		map[string]any{},
	}
	sch := schema.New("").
		AddType(schema.NewType("Item", schema.TypeKindObject, "").
			AddField(schema.NewField("name", "", schema.NonNullType(schema.NamedType("String"))))).
		AddType(schema.NewType("Query", schema.TypeKindObject, "").
			AddField(schema.NewField("items", "", schema.ListType(schema.NamedType("Item"))).
				SetResolve(valueResolver(items)))).
		SetQueryType("Query")
	mustBuild(t, sch)

	gotRes := newExecutor(t, sch).ExecuteRequest(context.Background(),
		mustParseQuery(t, `{ items { name } }`), "", nil, nil)

	// The failing element is nulled in place; its sibling survives.
	wantRes := &executor.ExecutionResult{
		Data: map[string]any{"items": []any{map[string]any{"name": "first"}, nil}},
		Errors: []executor.GraphQLError{
			{Message: "Cannot return null for non-nullable field items[1].name", Path: executor.Path{"items", 1, "name"}},
		},
	}
	if diff := cmp.Diff(wantRes, gotRes, ignoreLocations); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorLocations(t *testing.T) {
	sch := schema.New("").
		AddType(schema.NewType("Query", schema.TypeKindObject, "").
			AddField(schema.NewField("a", "", schema.NamedType("String")).
				SetResolve(errorResolver(context.DeadlineExceeded)))).
		SetQueryType("Query")
	mustBuild(t, sch)

	gotRes := newExecutor(t, sch).ExecuteRequest(context.Background(),
		mustParseQuery(t, "{ a }"), "", nil, nil)

	if len(gotRes.Errors) != 1 {
		t.Fatalf("expected one error, got %v", gotRes.Errors)
	}
	wantLocs := []executor.Location{{Line: 1, Column: 3}}
	if diff := cmp.Diff(wantLocs, gotRes.Errors[0].Locations); diff != "" {
		t.Fatalf("Locations mismatch (-want +got):\n%s", diff)
	}
}
