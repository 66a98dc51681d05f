package query

// Result is the outcome of a use case that may fail softly. A failed Result
// is not an error: the caller inspects Success and surfaces Message/Errors.
type Result[T any] struct {
	Success bool
	Data    T
	Message string
	Errors  []string
}

// Ok wraps data in a successful result
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail builds a failed result with a message and optional detail lines
func Fail[T any](message string, errs ...string) Result[T] {
	if errs == nil {
		errs = []string{}
	}
	return Result[T]{Success: false, Message: message, Errors: errs}
}
