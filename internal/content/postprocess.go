package content

import (
	"strings"
	"unicode/utf8"

	"github.com/social-agent/internal/platform"
)

const (
	truncationMargin = 10
	ellipsis         = "..."
)

// Enforce shapes a raw completion to the platform's length and hashtag
// rules. Lengths are measured in runes. The result fits MaxLength unless the
// hashtags alone leave no room for the body.
func Enforce(raw string, spec platform.Spec) string {
	content := clampLength(raw, spec.MaxLength)

	tags := ExtractHashtags(content)
	switch {
	case len(tags) < spec.HashtagRange.Min:
		extra := SynthesizeHashtags(content, spec.ID, spec.HashtagRange.Min-len(tags))
		if len(extra) > 0 {
			content = strings.TrimSpace(content) + " " + strings.Join(extra, " ")
		}
	case len(tags) > spec.HashtagRange.Max:
		content = StripHashtags(content) + " " + strings.Join(tags[:spec.HashtagRange.Max], " ")
	}

	return strings.TrimSpace(clampLength(content, spec.MaxLength))
}

// clampLength truncates the body of content so that body, ellipsis and the
// original hashtags fit maxLength. Hashtags move to their own paragraph.
func clampLength(content string, maxLength int) string {
	if utf8.RuneCountInString(content) <= maxLength {
		return content
	}

	hashtags := strings.Join(ExtractHashtags(content), " ")
	body := strings.TrimSuffix(StripHashtags(content), ellipsis)

	available := maxLength - utf8.RuneCountInString(hashtags) - truncationMargin
	body = strings.TrimRight(truncateRunes(body, available), " \t\n") + ellipsis

	if hashtags == "" {
		return body
	}
	return body + "\n\n" + hashtags
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
