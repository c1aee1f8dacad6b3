package executor

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	eventbus "github.com/hanpama/graphexec/eventbus"
	events "github.com/hanpama/graphexec/events"
	language "github.com/hanpama/graphexec/language"
	schema "github.com/hanpama/graphexec/schema"
)

// Executor evaluates parsed operations against a built schema. It is
// stateless across requests and safe for concurrent use; the only shared
// state is the immutable schema.
type Executor struct {
	schema            *schema.Schema
	concurrencyLimit  int
	serial            bool
	strictInputFields bool
	partialResults    bool
}

// New creates an Executor over a schema finalized with Build.
func New(sch *schema.Schema, opts ...Option) (*Executor, error) {
	if sch == nil {
		return nil, fmt.Errorf("executor: schema is nil")
	}
	if !sch.Built() {
		return nil, fmt.Errorf("executor: schema has not been built")
	}
	e := &Executor{schema: sch}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// executionState is the per-request bundle: the schema, document, coerced
// variables, and the concurrency-safe error collection. It is discarded when
// the request completes.
type executionState struct {
	exec           *Executor
	schema         *schema.Schema
	document       *language.QueryDocument
	variableValues map[string]any
	coercer        coercer

	mu     sync.Mutex
	errors []GraphQLError
}

func (state *executionState) addError(err GraphQLError) {
	state.mu.Lock()
	state.errors = append(state.errors, err)
	state.mu.Unlock()
}

// hasErrorAtPath reports whether an error with the given path already exists.
func (state *executionState) hasErrorAtPath(path Path) bool {
	state.mu.Lock()
	defer state.mu.Unlock()
	for _, err := range state.errors {
		if reflect.DeepEqual(err.Path, path) {
			return true
		}
	}
	return false
}

// ExecuteRequest executes one operation of document against rootValue and
// returns the assembled {data, errors} result. Field errors never abort the
// request; only a Non-Null violation bubbling to the operation root nulls
// data entirely.
func (e *Executor) ExecuteRequest(
	ctx context.Context,
	document *language.QueryDocument,
	operationName string,
	variableValues map[string]any,
	rootValue any,
) *ExecutionResult {
	operation := getOperation(document, operationName)
	if operation == nil {
		return &ExecutionResult{Errors: []GraphQLError{{Message: "operation not found"}}}
	}

	started := time.Now()
	eventbus.Publish(ctx, events.ExecutionStart{
		OperationName: operation.Name,
		OperationType: string(operation.Operation),
	})

	c := coercer{schema: e.schema, strict: e.strictInputFields}
	coercedVariableValues, err := coerceVariableValues(c, operation, variableValues)
	if err != nil {
		return e.finish(ctx, operation, started, &ExecutionResult{Errors: []GraphQLError{{Message: err.Error()}}})
	}

	var rootType *schema.Type
	serialRoot := e.serial
	switch operation.Operation {
	case language.Query:
		rootType = e.schema.GetQueryType()
	case language.Mutation:
		// Mutation root fields run serially in selection order.
		rootType = e.schema.GetMutationType()
		serialRoot = true
	case language.Subscription:
		rootType = e.schema.GetSubscriptionType()
	default:
		return e.finish(ctx, operation, started, &ExecutionResult{Errors: []GraphQLError{{Message: fmt.Sprintf("unsupported operation type: %s", operation.Operation)}}})
	}
	if rootType == nil {
		return e.finish(ctx, operation, started, &ExecutionResult{Errors: []GraphQLError{{Message: fmt.Sprintf("root type not found for %s operation", operation.Operation)}}})
	}

	state := &executionState{
		exec:           e,
		schema:         e.schema,
		document:       document,
		variableValues: coercedVariableValues,
		coercer:        c,
		errors:         []GraphQLError{},
	}

	data := executeSelectionSet(ctx, state, rootType, operation.SelectionSet, rootValue, Path{}, serialRoot)

	if ctx.Err() != nil && !e.partialResults {
		state.addError(GraphQLError{Message: ctx.Err().Error()})
		data = nil
	}

	// Error order across concurrent branches is otherwise nondeterministic;
	// sort by path so results are stable.
	sort.SliceStable(state.errors, func(i, j int) bool {
		return pathToString(state.errors[i].Path) < pathToString(state.errors[j].Path)
	})

	result := &ExecutionResult{Errors: state.errors}
	if data != nil {
		result.Data = data
	}
	return e.finish(ctx, operation, started, result)
}

func (e *Executor) finish(ctx context.Context, operation *language.OperationDefinition, started time.Time, result *ExecutionResult) *ExecutionResult {
	eventbus.Publish(ctx, events.ExecutionFinish{
		OperationName: operation.Name,
		OperationType: string(operation.Operation),
		ErrorCount:    len(result.Errors),
		Duration:      time.Since(started),
	})
	return result
}

// executeSelectionSet resolves every field group of the selection set against
// objectValue and assembles the result keyed by response name in selection
// order. Sibling fields resolve concurrently unless serial is set; each
// branch writes only its own slot, and the parent merges after all children
// complete. A nil return signals a Non-Null violation that the caller must
// propagate.
func executeSelectionSet(ctx context.Context, state *executionState, objectType *schema.Type, selectionSet language.SelectionSet, objectValue any, path Path, serial bool) map[string]any {
	groupedFields := collectFields(state, objectType, selectionSet)
	ordered := groupedFields.orderedFields()
	fieldResults := make([]any, len(ordered))

	if serial {
		for i, collected := range ordered {
			if ctx.Err() != nil {
				break
			}
			fieldResults[i] = executeFieldGroup(ctx, state, objectType, objectValue, collected.Fields, appendPath(path, collected.ResponseName))
		}
	} else {
		var group errgroup.Group
		if limit := state.exec.concurrencyLimit; limit > 0 {
			group.SetLimit(limit)
		}
		for i, collected := range ordered {
			if ctx.Err() != nil {
				break
			}
			group.Go(func() error {
				fieldResults[i] = executeFieldGroup(ctx, state, objectType, objectValue, collected.Fields, appendPath(path, collected.ResponseName))
				return nil
			})
		}
		group.Wait()
	}

	resultMap := make(map[string]any, len(ordered))
	for i, collected := range ordered {
		fieldResult := fieldResults[i]
		if collected.Fields[0].Name == "__typename" {
			resultMap[collected.ResponseName] = fieldResult
			continue
		}
		fieldDef := objectType.Field(collected.Fields[0].Name)
		if fieldDef == nil {
			// Unknown field; the error was recorded in executeFieldGroup.
			continue
		}
		if schema.IsNonNull(fieldDef.Type) && isNullish(fieldResult) {
			return nil
		}
		if isNullish(fieldResult) {
			resultMap[collected.ResponseName] = nil
		} else {
			resultMap[collected.ResponseName] = fieldResult
		}
	}
	return resultMap
}

// executeFieldGroup evaluates one response key: field lookup, argument
// coercion, resolver invocation, and value completion.
func executeFieldGroup(ctx context.Context, state *executionState, objectType *schema.Type, objectValue any, fields []*language.Field, path Path) any {
	field := fields[0]

	if field.Name == "__typename" {
		return objectType.Name
	}

	fieldDef := objectType.Field(field.Name)
	if fieldDef == nil {
		state.addError(GraphQLError{
			Message:   fmt.Sprintf("Cannot query field %q on type %q", field.Name, objectType.Name),
			Path:      path,
			Locations: locationOf(field.Position),
		})
		return nil
	}

	argumentValues, ok := state.coerceArgumentValues(fieldDef, field.Arguments, path, field.Position)
	if !ok {
		return nil
	}

	resolvedValue, err := state.resolveFieldValue(ctx, objectType, fieldDef, objectValue, argumentValues, path)
	if err != nil {
		state.addError(GraphQLError{
			Message:   err.Error(),
			Path:      path,
			Locations: locationOf(field.Position),
		})
		return nil
	}

	return completeValue(ctx, state, fieldDef.Type, fields, resolvedValue, path)
}

// completeValue completes a resolved value against its declared type.
func completeValue(ctx context.Context, state *executionState, fieldType *schema.TypeRef, fields []*language.Field, result any, path Path) any {
	if schema.IsNonNull(fieldType) {
		if isNullish(result) {
			if !state.hasErrorAtPath(path) {
				state.addError(GraphQLError{
					Message:   fmt.Sprintf("Cannot return null for non-nullable field %s", pathToString(path)),
					Path:      path,
					Locations: locationOf(fields[0].Position),
				})
			}
			return nil
		}
		completed := completeValue(ctx, state, schema.Unwrap(fieldType), fields, result, path)
		if isNullish(completed) {
			// Error already recorded at the originating path; propagate only.
			return nil
		}
		return completed
	}

	if isNullish(result) {
		return nil
	}

	if schema.IsList(fieldType) {
		return completeListValue(ctx, state, fieldType, fields, result, path)
	}

	namedType := schema.GetNamedType(fieldType)
	typeObj, ok := state.schema.Lookup(namedType)
	if !ok {
		state.addError(GraphQLError{Message: fmt.Sprintf("Unknown type: %s", namedType), Path: path})
		return nil
	}

	switch typeObj.Kind {
	case schema.TypeKindScalar:
		serialized, err := serializeScalarValue(typeObj, result)
		if err != nil {
			state.addError(GraphQLError{Message: err.Error(), Path: path, Locations: locationOf(fields[0].Position)})
			return nil
		}
		return serialized
	case schema.TypeKindEnum:
		serialized, err := serializeEnumValue(typeObj, result)
		if err != nil {
			state.addError(GraphQLError{Message: err.Error(), Path: path, Locations: locationOf(fields[0].Position)})
			return nil
		}
		return serialized
	case schema.TypeKindObject:
		return completeObjectValue(ctx, state, typeObj, fields, result, path)
	case schema.TypeKindInterface, schema.TypeKindUnion:
		concrete, err := state.resolveConcreteType(ctx, typeObj, result)
		if err != nil {
			state.addError(GraphQLError{Message: err.Error(), Path: path, Locations: locationOf(fields[0].Position)})
			return nil
		}
		return completeObjectValue(ctx, state, concrete, fields, result, path)
	default:
		state.addError(GraphQLError{Message: fmt.Sprintf("Cannot complete value of unexpected type: %s", typeObj.Kind), Path: path})
		return nil
	}
}

// completeListValue completes each element independently against the inner
// type with its index appended to the path. One element's failure never
// prevents completion of the others, but a nullish element under a Non-Null
// inner type nulls the whole list.
func completeListValue(ctx context.Context, state *executionState, listType *schema.TypeRef, fields []*language.Field, result any, path Path) any {
	items, ok := asSlice(result)
	if !ok {
		state.addError(GraphQLError{Message: fmt.Sprintf("Expected list value, got %T", result), Path: path})
		return nil
	}

	inner := schema.Unwrap(listType)
	completed := make([]any, len(items))

	if state.exec.serial {
		for i, item := range items {
			completed[i] = completeValue(ctx, state, inner, fields, item, appendPath(path, i))
		}
	} else {
		var group errgroup.Group
		if limit := state.exec.concurrencyLimit; limit > 0 {
			group.SetLimit(limit)
		}
		for i, item := range items {
			if ctx.Err() != nil {
				break
			}
			group.Go(func() error {
				completed[i] = completeValue(ctx, state, inner, fields, item, appendPath(path, i))
				return nil
			})
		}
		group.Wait()
	}

	if schema.IsNonNull(inner) {
		for _, v := range completed {
			if isNullish(v) {
				// Error already recorded by inner completion.
				return nil
			}
		}
	}
	for i, v := range completed {
		if isNullish(v) {
			completed[i] = nil
		}
	}
	return completed
}

func completeObjectValue(ctx context.Context, state *executionState, objectType *schema.Type, fields []*language.Field, result any, path Path) any {
	sub := mergeSelectionSets(fields)
	completed := executeSelectionSet(ctx, state, objectType, sub, result, path, state.exec.serial)
	if completed == nil {
		return nil
	}
	return completed
}

// asSlice normalizes any slice or array value into []any.
func asSlice(result any) ([]any, bool) {
	if direct, ok := result.([]any); ok {
		return direct, true
	}
	rv := reflect.ValueOf(result)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// getOperation retrieves the operation from the document.
func getOperation(document *language.QueryDocument, operationName string) *language.OperationDefinition {
	if operationName == "" && len(document.Operations) == 1 {
		for _, op := range document.Operations {
			return op
		}
	}
	for _, op := range document.Operations {
		if op.Name == operationName {
			return op
		}
	}
	return nil
}

// mergeSelectionSets merges selection sets from multiple fields sharing a
// response key.
func mergeSelectionSets(fields []*language.Field) language.SelectionSet {
	var merged language.SelectionSet
	for _, f := range fields {
		merged = append(merged, f.SelectionSet...)
	}
	return merged
}

// isNullish returns true for nil interfaces and typed nils (map, slice, ptr,
// interface).
func isNullish(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
