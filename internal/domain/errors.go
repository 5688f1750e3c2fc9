package domain

import "errors"

var (
	// ErrContentUnavailable is returned when no question file exists inside the lookback window.
	ErrContentUnavailable = errors.New("no question set available")
	// ErrQuestionSetNotFound indicates a source has nothing for the requested date.
	ErrQuestionSetNotFound = errors.New("question set not found")
	// ErrMalformedQuestionSet indicates a question payload failed validation.
	ErrMalformedQuestionSet = errors.New("malformed question set")
	// ErrSlotNotFound is returned by slot stores when a key has never been written.
	ErrSlotNotFound = errors.New("save slot not found")
	// ErrNotCurrentQuestion indicates an answer for a question other than the current one.
	ErrNotCurrentQuestion = errors.New("question is not the current question")
	// ErrAlreadyAnswered indicates a second answer for the same question.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrAnswerOutOfRange indicates a choice outside the question's answers.
	ErrAnswerOutOfRange = errors.New("answer index out of range")
)
