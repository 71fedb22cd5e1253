package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/nutriware/nutrirag/internal/domain"
)

// LLMClient defines the interface for answer generation
type LLMClient interface {
	GenerateText(ctx context.Context, systemInstruction, prompt string, temperature float32) (string, error)
}

const (
	groundedInstruction = "You are a specialized nutrition assistant called NutriRAG. " +
		"Answer the user's question using ONLY the context documents provided. " +
		"If the context does not contain enough information to answer, say: " +
		"'Sorry, I could not find relevant information in the provided documents.' " +
		"Keep the answer concise and professional, and cite the original source " +
		"in brackets [Source: file_name] at the end of the relevant sentence."

	fallbackInstruction = "You are a nutrition and health assistant. Document retrieval " +
		"returned no relevant context for this question. Answer directly from your " +
		"general knowledge, in an informative and professional tone, without " +
		"pretending to cite documents."

	// generationErrorText is the fixed user-visible message for a failed
	// LLM call. Never retried.
	generationErrorText = "Sorry, something went wrong while generating the answer. Please try again."

	groundedTemperature = 0.2
	fallbackTemperature = 0.4
)

// AnswerService produces the final answer text, grounded in retrieved
// context when there is any and falling back to the model's general
// knowledge when there is none.
type AnswerService struct {
	llm LLMClient
}

func NewAnswerService(llm LLMClient) *AnswerService {
	return &AnswerService{llm: llm}
}

// Answer generates an answer for the question. Mode is GROUNDED exactly
// when matches is non-empty, FALLBACK exactly when it is empty, and ERROR
// only when the generation call fails. The mode always travels with the
// answer so callers can render grounded and ungrounded answers distinctly.
func (s *AnswerService) Answer(ctx context.Context, question string, matches []domain.RetrievalMatch) *domain.Answer {
	var instruction, prompt string
	var temperature float32
	var mode domain.AnswerMode

	if len(matches) > 0 {
		instruction = groundedInstruction
		prompt = fmt.Sprintf("Document context:\n\n%s\n\n---\nUser question: %s",
			BuildContextBlock(matches), question)
		temperature = groundedTemperature
		mode = domain.AnswerModeGrounded
	} else {
		instruction = fallbackInstruction
		prompt = fmt.Sprintf("User question: %s", question)
		temperature = fallbackTemperature
		mode = domain.AnswerModeFallback
	}

	text, err := s.llm.GenerateText(ctx, instruction, prompt, temperature)
	if err != nil {
		log.Printf("answer: generation failed: %v", err)
		return &domain.Answer{
			Text:    generationErrorText,
			Mode:    domain.AnswerModeError,
			Matches: matches,
		}
	}

	return &domain.Answer{
		Text:    text,
		Mode:    mode,
		Matches: matches,
	}
}

// BuildContextBlock concatenates match contents, each prefixed with its
// source name and similarity score, separated by a divider line.
func BuildContextBlock(matches []domain.RetrievalMatch) string {
	entries := make([]string, 0, len(matches))
	for _, m := range matches {
		entries = append(entries, fmt.Sprintf("[Source: %s, Score: %.3f] %s", m.Source, m.Similarity, m.Content))
	}
	return strings.Join(entries, "\n---\n")
}
