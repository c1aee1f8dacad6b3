package executor

// Option configures an Executor.
type Option func(*Executor)

// WithConcurrencyLimit bounds the number of resolver goroutines running at
// once per selection set or list. Zero means no limit.
func WithConcurrencyLimit(n int) Option {
	return func(e *Executor) { e.concurrencyLimit = n }
}

// Serial disables concurrent field resolution entirely. Mutation root fields
// are always executed serially regardless of this option.
func Serial() Option {
	return func(e *Executor) { e.serial = true }
}

// WithStrictInputFields makes input-object coercion reject keys that do not
// match any declared input field. The default is to ignore them.
func WithStrictInputFields() Option {
	return func(e *Executor) { e.strictInputFields = true }
}

// WithPartialResults keeps whatever data was assembled when the request
// context is cancelled. By default a cancelled execution discards partial
// data and reports only the cancellation error.
func WithPartialResults() Option {
	return func(e *Executor) { e.partialResults = true }
}
