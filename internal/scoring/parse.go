package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/amberin/jobradar/internal/model"
)

// Score is the validated two-field verdict from the scoring oracle.
type Score struct {
	Value  int
	Reason string
}

// ParseScore parses and validates the oracle's raw response text. Optional
// fenced code-block markers are stripped before parsing. Any parse or
// validation failure returns a ValidationError that preserves the raw text.
func ParseScore(raw string) (Score, error) {
	cleaned := stripFences(strings.TrimSpace(raw))

	var payload struct {
		Score  json.Number `json:"score"`
		Reason string      `json:"reason"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return Score{}, &model.ValidationError{Raw: raw, Err: fmt.Errorf("parse JSON: %w", err)}
	}

	val, err := payload.Score.Float64()
	if err != nil {
		return Score{}, &model.ValidationError{Raw: raw, Err: fmt.Errorf("score is not a number: %w", err)}
	}
	if val < 1 || val > 10 {
		return Score{}, &model.ValidationError{Raw: raw, Err: fmt.Errorf("score %v out of range 1-10", val)}
	}

	reason := strings.TrimSpace(payload.Reason)
	if reason == "" {
		return Score{}, &model.ValidationError{Raw: raw, Err: fmt.Errorf("reason is missing or blank")}
	}

	return Score{Value: int(math.Round(val)), Reason: reason}, nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag, e.g. "```json\n{...}\n```".
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		// Single-line fence like "```{...}```".
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
