// Package executor evaluates parsed operations against a built schema.
//
// Execution walks the operation's selection sets recursively: each field of a
// selection set is resolved by its attached resolver (or the default
// source-value lookup), then the resolved value is completed against the
// field's declared type. Sibling fields resolve concurrently in their own
// goroutines and the parent assembles their results in selection order once
// all of them finish; mutation root fields run serially.
//
// Resolver failures never abort the request. Each failure becomes a
// GraphQLError carrying the exact result path and source location, the field
// is nulled, and execution continues. A null reaching a Non-Null position
// propagates upward to the nearest nullable ancestor, nulling that subtree;
// if no nullable ancestor exists the whole data payload is null.
package executor
