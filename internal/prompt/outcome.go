// Package prompt reads the interactive answers (input path, target size)
// from a line-oriented reader and reports the user's intent as a typed
// Outcome instead of sentinel strings.
package prompt

// Action is what the user asked for at a prompt.
type Action int

const (
	Proceed          Action = iota // Value holds the answer.
	ExitRequested                  // "exit" or end of input.
	RestartRequested               // "return": go back to the path prompt.
)

func (a Action) String() string {
	switch a {
	case Proceed:
		return "proceed"
	case ExitRequested:
		return "exit"
	case RestartRequested:
		return "restart"
	}
	return "unknown"
}

// Outcome is the result of one prompt. Value is only meaningful when
// Action is Proceed.
type Outcome[T any] struct {
	Action Action
	Value  T
}

// With returns a Proceed outcome carrying v.
func With[T any](v T) Outcome[T] { return Outcome[T]{Action: Proceed, Value: v} }

// Exit returns an ExitRequested outcome.
func Exit[T any]() Outcome[T] { return Outcome[T]{Action: ExitRequested} }

// Restart returns a RestartRequested outcome.
func Restart[T any]() Outcome[T] { return Outcome[T]{Action: RestartRequested} }
