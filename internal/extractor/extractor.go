package extractor

import (
	"context"
	"fmt"

	"github.com/medibook-ai/booking-assistant/pkg/logging"
)

// Extractor wraps an LLMClient with the task-specific prompts the dialogue
// controller relies on. Structured calls run at temperature zero; the
// conversational call is allowed some variety.
type Extractor struct {
	llm    LLMClient
	logger *logging.Logger
}

// New creates an Extractor on top of the supplied LLM client.
func New(llm LLMClient, logger *logging.Logger) *Extractor {
	if llm == nil {
		panic("extractor: llm client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Extractor{llm: llm, logger: logger}
}

// ClassifyDate asks the model to either pull the exact date phrase out of
// the user's message as a parse_date action or answer conversationally.
// hint carries task context such as the current dialogue state.
func (e *Extractor) ClassifyDate(ctx context.Context, userInput, hint string) (Outcome, error) {
	content := userInput
	if hint != "" {
		content = fmt.Sprintf("%s\nContext: %s", userInput, hint)
	}
	return e.structured(ctx, datePromptSystem, content)
}

// PlanSlotSearch asks the model to prepare find_free_slots_for_date
// parameters for the given resolved date. The controller validates and
// supplements whatever comes back.
func (e *Extractor) PlanSlotSearch(ctx context.Context, userInput, dateStr string) (Outcome, error) {
	content := fmt.Sprintf("%s\nParsed Date: %s", userInput, dateStr)
	return e.structured(ctx, slotFinderSystem, content)
}

// ExtractBookingDetails asks the model for the patient name (and optional
// visit description) as a create_appointment_event action.
func (e *Extractor) ExtractBookingDetails(ctx context.Context, userInput string) (Outcome, error) {
	return e.structured(ctx, bookingDetailsSystem, userInput)
}

// ConversationalReply generates a natural prose response. hint carries the
// situation to respond to, e.g. the discovered slots or a re-prompt reason.
func (e *Extractor) ConversationalReply(ctx context.Context, userInput, hint string) (string, error) {
	content := userInput
	if hint != "" {
		content = fmt.Sprintf("%s\n%s", userInput, hint)
	}

	resp, err := e.llm.Complete(ctx, LLMRequest{
		System:      []string{conversationalSystem},
		Messages:    []ChatMessage{{Role: ChatRoleUser, Content: content}},
		MaxTokens:   512,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("extractor: conversational reply failed: %w", err)
	}
	return resp.Text, nil
}

func (e *Extractor) structured(ctx context.Context, system, content string) (Outcome, error) {
	resp, err := e.llm.Complete(ctx, LLMRequest{
		System:      []string{system},
		Messages:    []ChatMessage{{Role: ChatRoleUser, Content: content}},
		MaxTokens:   256,
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("extractor: completion failed: %w", err)
	}

	e.logger.Debug("extractor raw reply", "text", resp.Text)
	return DecodeOutcome(resp.Text), nil
}
