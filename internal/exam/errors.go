package exam

import "errors"

var (
	// ErrInvalidConfig is returned by Start for an exam with no questions
	// or a non-positive duration.
	ErrInvalidConfig = errors.New("exam: invalid exam config")

	// ErrUnknownQuestion is returned when a question ID is not part of the session.
	ErrUnknownQuestion = errors.New("exam: unknown question")

	// ErrInvalidOption is returned for an option index outside the question's options.
	ErrInvalidOption = errors.New("exam: invalid option index")

	// ErrOutOfRange is returned by NavigateTo for an index outside the session.
	ErrOutOfRange = errors.New("exam: question index out of range")

	// ErrSessionClosed is returned by mutating calls once the session has
	// left the Active state.
	ErrSessionClosed = errors.New("exam: session is no longer active")

	// ErrExited is the outcome of a session the user abandoned.
	ErrExited = errors.New("exam: session exited without submitting")

	// ErrInProgress is the outcome of a session that has not finished yet.
	ErrInProgress = errors.New("exam: session still in progress")
)
