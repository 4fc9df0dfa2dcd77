package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smartschedule/smartschedule/internal/domain/entity"
	"github.com/smartschedule/smartschedule/pkg/llm"
)

// ErrExtractionFailed covers transport failures and responses that do
// not decode into the declared schema. A decodable response with an
// empty events array is not a failure; callers surface that as "no
// events recognized".
var ErrExtractionFailed = errors.New("extraction failed")

const systemPrompt = `You are a scheduling assistant that converts natural language into calendar events.
Respond with STRICTLY one JSON object, no markdown, no code fences, no commentary.
Schema:
{"events":[{"title":string,"start":string,"end":string,"category":string,"location":string,"description":string,"attendees":string[]}]}
Rules:
- "title" is a concise name for the event.
- "start" and "end" are ISO 8601 local date-times (YYYY-MM-DDTHH:mm:ss), no timezone offset.
- Resolve relative expressions like "tomorrow" or "next tuesday" against the provided current date and timezone.
- If no duration is given, "end" is one hour after "start".
- "category" is exactly one of: work, personal, health, social, other.
- "location", "description" and "attendees" are optional; omit them when not mentioned.
- If the request contains no schedulable event, return {"events":[]}.`

// scheduleResponse is the declared response schema.
type scheduleResponse struct {
	Events []eventPayload `json:"events"`
}

type eventPayload struct {
	Title       string   `json:"title"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Attendees   []string `json:"attendees"`
	Category    string   `json:"category"`
}

// ScheduleExtractor turns free text into event drafts through a chat
// model.
type ScheduleExtractor struct {
	model llm.ChatModel
	now   func() time.Time
}

func New(model llm.ChatModel) *ScheduleExtractor {
	return &ScheduleExtractor{model: model, now: time.Now}
}

// NewWithClock is used by tests to pin the current instant embedded in
// the prompt.
func NewWithClock(model llm.ChatModel, now func() time.Time) *ScheduleExtractor {
	return &ScheduleExtractor{model: model, now: now}
}

// Extract asks the model for drafts. Transport errors propagate
// unchanged; undecodable payloads and payloads without an events field
// map to ErrExtractionFailed. An empty (but present) events array
// yields an empty slice and nil error.
func (e *ScheduleExtractor) Extract(ctx context.Context, text, timezone string) ([]entity.EventDraft, error) {
	now := e.now().Format(time.RFC3339)
	user := fmt.Sprintf("Current Date/Time: %s. Timezone: %s.\n\nExtract calendar events from this request: %q", now, timezone, text)

	raw, err := e.model.Ask(ctx, systemPrompt, user)
	if err != nil {
		return nil, err
	}

	payload, ok := decodeResponse(raw)
	if !ok || payload.Events == nil {
		return nil, ErrExtractionFailed
	}

	drafts := make([]entity.EventDraft, 0, len(payload.Events))
	for _, ev := range payload.Events {
		drafts = append(drafts, entity.EventDraft{
			Title:       ev.Title,
			Start:       ev.Start,
			End:         ev.End,
			Description: ev.Description,
			Location:    ev.Location,
			Attendees:   ev.Attendees,
			Category:    entity.ParseCategory(ev.Category),
		})
	}
	return drafts, nil
}

// decodeResponse parses the model reply, tolerating code fences and
// surrounding prose by falling back to the outermost JSON object.
func decodeResponse(raw string) (scheduleResponse, bool) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var resp scheduleResponse
	if err := json.Unmarshal([]byte(raw), &resp); err == nil {
		return resp, true
	}
	if i := strings.Index(raw, "{"); i >= 0 {
		if j := strings.LastIndex(raw, "}"); j > i {
			if err := json.Unmarshal([]byte(raw[i:j+1]), &resp); err == nil {
				return resp, true
			}
		}
	}
	return scheduleResponse{}, false
}
