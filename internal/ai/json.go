package ai

import (
	"encoding/json"
	"strings"

	"github.com/social-agent/internal/apperr"
)

// ExtractJSON strips markdown fences and prose around the first JSON object
// or array in a model response
func ExtractJSON(response string) string {
	response = strings.TrimSpace(response)

	start := strings.IndexAny(response, "{[")
	if start == -1 {
		return response
	}

	closer := "}"
	if response[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(response, closer)
	if end == -1 || end < start {
		return response
	}

	return response[start : end+1]
}

// DecodeJSON unmarshals a model response into v, reporting malformed output
// as a parse error
func DecodeJSON(op, response string, v any) error {
	if err := json.Unmarshal([]byte(ExtractJSON(response)), v); err != nil {
		return apperr.Parse(op, err)
	}
	return nil
}
