package domain

// AnswerMode labels how an answer was produced. The mode is always
// surfaced to the end user so grounded and ungrounded answers are never
// visually indistinguishable.
type AnswerMode string

const (
	// AnswerModeGrounded means the answer was constrained to retrieved
	// document context.
	AnswerModeGrounded AnswerMode = "GROUNDED"
	// AnswerModeFallback means no relevant context was found and the
	// answer comes from the model's general knowledge.
	AnswerModeFallback AnswerMode = "FALLBACK"
	// AnswerModeError means the generation call itself failed.
	AnswerModeError AnswerMode = "ERROR"
)

// Answer is the final result of the question pipeline.
type Answer struct {
	Text    string
	Mode    AnswerMode
	Matches []RetrievalMatch
}
