package executor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	executor "github.com/hanpama/graphexec/executor"
	schema "github.com/hanpama/graphexec/schema"
)

var errTestFailure = errors.New("mutation failed")

// Mutation root fields must run one at a time in selection order, even
// though the executor otherwise resolves siblings concurrently.
func TestExecuteRequest_MutationSerialOrder(t *testing.T) {
	var order []string
	record := func(name string) schema.ResolveFunc {
		return func(ctx context.Context, source any, args map[string]any) (any, error) {
			// No locking; ordering only holds because execution is serial.
			order = append(order, name)
			return name, nil
		}
	}
	sch := schema.New("").
		AddType(schema.NewType("Query", schema.TypeKindObject, "").
			AddField(schema.NewField("noop", "", schema.NamedType("String")))).
		AddType(schema.NewType("Mutation", schema.TypeKindObject, "").
			AddField(schema.NewField("stepA", "", schema.NamedType("String")).SetResolve(record("stepA"))).
			AddField(schema.NewField("stepB", "", schema.NamedType("String")).SetResolve(record("stepB"))).
			AddField(schema.NewField("stepC", "", schema.NamedType("String")).SetResolve(record("stepC")))).
		SetQueryType("Query").
		SetMutationType("Mutation")
	mustBuild(t, sch)
	exec := newExecutor(t, sch)

	gotRes := exec.ExecuteRequest(context.Background(),
		mustParseQuery(t, "mutation { stepC: stepA stepB stepA: stepC }"), "", nil, nil)

	wantRes := &executor.ExecutionResult{
		Data:   map[string]any{"stepC": "stepA", "stepB": "stepB", "stepA": "stepC"},
		Errors: []executor.GraphQLError{},
	}
	if diff := cmp.Diff(wantRes, gotRes); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
	wantOrder := []string{"stepA", "stepB", "stepC"}
	if diff := cmp.Diff(wantOrder, order); diff != "" {
		t.Fatalf("resolution order mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteRequest_MutationErrorContinues(t *testing.T) {
	sch := schema.New("").
		AddType(schema.NewType("Query", schema.TypeKindObject, "").
			AddField(schema.NewField("noop", "", schema.NamedType("String")))).
		AddType(schema.NewType("Mutation", schema.TypeKindObject, "").
			AddField(schema.NewField("fail", "", schema.NamedType("String")).
				SetResolve(errorResolver(errTestFailure))).
			AddField(schema.NewField("succeed", "", schema.NamedType("String")).
				SetResolve(valueResolver("done")))).
		SetQueryType("Query").
		SetMutationType("Mutation")
	mustBuild(t, sch)
	exec := newExecutor(t, sch)

	gotRes := exec.ExecuteRequest(context.Background(),
		mustParseQuery(t, "mutation { fail succeed }"), "", nil, nil)

	wantRes := &executor.ExecutionResult{
		Data: map[string]any{"fail": nil, "succeed": "done"},
		Errors: []executor.GraphQLError{
			{Message: "mutation failed", Path: executor.Path{"fail"}},
		},
	}
	if diff := cmp.Diff(wantRes, gotRes, ignoreLocations); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}
