package executor_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	executor "github.com/hanpama/graphexec/executor"
	language "github.com/hanpama/graphexec/language"
	schema "github.com/hanpama/graphexec/schema"
)

// ignoreLocations drops source locations from error comparisons so the wants
// stay readable.
var ignoreLocations = cmpopts.IgnoreFields(executor.GraphQLError{}, "Locations")

func mustParseQuery(t *testing.T, query string) *language.QueryDocument {
	t.Helper()
	doc, err := language.ParseQuery(query)
	require.NoError(t, err)
	return doc
}

func mustBuild(t *testing.T, sch *schema.Schema) *schema.Schema {
	t.Helper()
	require.NoError(t, sch.Build())
	return sch
}

func newExecutor(t *testing.T, sch *schema.Schema, opts ...executor.Option) *executor.Executor {
	t.Helper()
	exec, err := executor.New(sch, opts...)
	require.NoError(t, err)
	return exec
}

// valueResolver returns v for every invocation.
func valueResolver(v any) schema.ResolveFunc {
	return func(ctx context.Context, source any, args map[string]any) (any, error) {
		return v, nil
	}
}

func errorResolver(err error) schema.ResolveFunc {
	return func(ctx context.Context, source any, args map[string]any) (any, error) {
		return nil, err
	}
}

func TestExecuteRequest_Basic(t *testing.T) {
	sch := schema.New("").
		AddType(schema.NewType("Query", schema.TypeKindObject, "").
			AddField(schema.NewField("hello", "", schema.NamedType("String")).
				SetResolve(valueResolver("world")))).
		SetQueryType("Query")
	mustBuild(t, sch)
	exec := newExecutor(t, sch)

	gotRes := exec.ExecuteRequest(context.Background(), mustParseQuery(t, "{ hello }"), "", nil, nil)

	wantRes := &executor.ExecutionResult{
		Data:   map[string]any{"hello": "world"},
		Errors: []executor.GraphQLError{},
	}
	if diff := cmp.Diff(wantRes, gotRes); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteRequest_Typename(t *testing.T) {
	sch := schema.New("").
		AddType(schema.NewType("Query", schema.TypeKindObject, "").
			AddField(schema.NewField("hello", "", schema.NamedType("String")).
				SetResolve(valueResolver("world")))).
		SetQueryType("Query")
	mustBuild(t, sch)
	exec := newExecutor(t, sch)

	gotRes := exec.ExecuteRequest(context.Background(), mustParseQuery(t, "{ __typename alias: __typename hello }"), "", nil, nil)

	wantRes := &executor.ExecutionResult{
		Data: map[string]any{
			"__typename": "Query",
			"alias":      "Query",
			"hello":      "world",
		},
		Errors: []executor.GraphQLError{},
	}
	if diff := cmp.Diff(wantRes, gotRes); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteRequest_OperationSelection(t *testing.T) {
	sch := schema.New("").
		AddType(schema.NewType("Query", schema.TypeKindObject, "").
			AddField(schema.NewField("a", "", schema.NamedType("String")).SetResolve(valueResolver("A"))).
			AddField(schema.NewField("b", "", schema.NamedType("String")).SetResolve(valueResolver("B")))).
		SetQueryType("Query")
	mustBuild(t, sch)
	exec := newExecutor(t, sch)
	doc := mustParseQuery(t, "query First { a } query Second { b }")

	t.Run("by name", func(t *testing.T) {
		gotRes := exec.ExecuteRequest(context.Background(), doc, "Second", nil, nil)
		wantRes := &executor.ExecutionResult{
			Data:   map[string]any{"b": "B"},
			Errors: []executor.GraphQLError{},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ambiguous without name", func(t *testing.T) {
		gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)
		wantRes := &executor.ExecutionResult{
			Errors: []executor.GraphQLError{{Message: "operation not found"}},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		gotRes := exec.ExecuteRequest(context.Background(), doc, "Third", nil, nil)
		wantRes := &executor.ExecutionResult{
			Errors: []executor.GraphQLError{{Message: "operation not found"}},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestExecuteRequest_UnknownField(t *testing.T) {
	sch := schema.New("").
		AddType(schema.NewType("Query", schema.TypeKindObject, "").
			AddField(schema.NewField("hello", "", schema.NamedType("String")).
				SetResolve(valueResolver("world")))).
		SetQueryType("Query")
	mustBuild(t, sch)
	exec := newExecutor(t, sch)

	gotRes := exec.ExecuteRequest(context.Background(), mustParseQuery(t, "{ hello missing }"), "", nil, nil)

	wantRes := &executor.ExecutionResult{
		Data: map[string]any{"hello": "world"},
		Errors: []executor.GraphQLError{
			{Message: `Cannot query field "missing" on type "Query"`, Path: executor.Path{"missing"}},
		},
	}
	if diff := cmp.Diff(wantRes, gotRes, ignoreLocations); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultResolver(t *testing.T) {
	type pet struct {
		Name string
		Legs int
	}
	sch := schema.New("").
		AddType(schema.NewType("Pet", schema.TypeKindObject, "").
			AddField(schema.NewField("name", "", schema.NamedType("String"))).
			AddField(schema.NewField("legs", "", schema.NamedType("Int"))).
			AddField(schema.NewField("nickname", "", schema.NamedType("String")))).
		AddType(schema.NewType("Query", schema.TypeKindObject, "").
			AddField(schema.NewField("structPet", "", schema.NamedType("Pet")).
				SetResolve(valueResolver(&pet{Name: "Rex", Legs: 4}))).
			AddField(schema.NewField("mapPet", "", schema.NamedType("Pet")).
				SetResolve(valueResolver(map[string]any{"name": "Rolf", "legs": 3})))).
		SetQueryType("Query")
	mustBuild(t, sch)
	exec := newExecutor(t, sch)

	gotRes := exec.ExecuteRequest(context.Background(), mustParseQuery(t,
		"{ structPet { name legs nickname } mapPet { name legs } }"), "", nil, nil)

	wantRes := &executor.ExecutionResult{
		Data: map[string]any{
			"structPet": map[string]any{"name": "Rex", "legs": 4, "nickname": nil},
			"mapPet":    map[string]any{"name": "Rolf", "legs": 3},
		},
		Errors: []executor.GraphQLError{},
	}
	if diff := cmp.Diff(wantRes, gotRes); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteRequest_ResolverPanic(t *testing.T) {
	sch := schema.New("").
		AddType(schema.NewType("Query", schema.TypeKindObject, "").
			AddField(schema.NewField("boom", "", schema.NamedType("String")).
				SetResolve(func(ctx context.Context, source any, args map[string]any) (any, error) {
					panic("kaboom")
				})).
			AddField(schema.NewField("ok", "", schema.NamedType("String")).
				SetResolve(valueResolver("fine")))).
		SetQueryType("Query")
	mustBuild(t, sch)
	exec := newExecutor(t, sch)

	gotRes := exec.ExecuteRequest(context.Background(), mustParseQuery(t, "{ boom ok }"), "", nil, nil)

	wantRes := &executor.ExecutionResult{
		Data: map[string]any{"boom": nil, "ok": "fine"},
		Errors: []executor.GraphQLError{
			{Message: "resolver for Query.boom panicked: kaboom", Path: executor.Path{"boom"}},
		},
	}
	if diff := cmp.Diff(wantRes, gotRes, ignoreLocations); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

func TestExecutorNew_RequiresBuiltSchema(t *testing.T) {
	sch := schema.New("").
		AddType(schema.NewType("Query", schema.TypeKindObject, "").
			AddField(schema.NewField("hello", "", schema.NamedType("String")))).
		SetQueryType("Query")

	_, err := executor.New(sch)
	require.Error(t, err)

	mustBuild(t, sch)
	_, err = executor.New(sch)
	require.NoError(t, err)
}
