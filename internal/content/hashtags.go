package content

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/social-agent/internal/platform"
)

var (
	hashtagPattern     = regexp.MustCompile(`#\w+`)
	punctuationPattern = regexp.MustCompile(`[^\w\s]`)
	lettersOnly        = regexp.MustCompile(`^[a-z]+$`)
)

// stopwords are frequent words long enough to pass the length filter but
// too generic to make useful hashtags
var stopwords = map[string]struct{}{
	"this": {}, "that": {}, "with": {}, "from": {}, "have": {}, "been": {},
	"were": {}, "they": {}, "them": {}, "their": {}, "there": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "will": {}, "would": {},
	"could": {}, "should": {}, "about": {}, "into": {}, "just": {}, "more": {},
	"most": {}, "some": {}, "such": {}, "than": {}, "then": {}, "these": {},
	"those": {}, "your": {}, "very": {}, "over": {},
}

// ExtractHashtags returns every #tag in content in order of appearance
func ExtractHashtags(content string) []string {
	return hashtagPattern.FindAllString(content, -1)
}

// CountHashtags returns the number of #tag occurrences in content
func CountHashtags(content string) int {
	return len(ExtractHashtags(content))
}

// StripHashtags removes every #tag from content and trims the result
func StripHashtags(content string) string {
	return strings.TrimSpace(hashtagPattern.ReplaceAllString(content, ""))
}

// SynthesizeHashtags derives up to count hashtags from the words of content.
// Candidates are alphabetic words longer than three letters that are not
// stopwords. Words already used as hashtags in content and repeated words
// are skipped.
func SynthesizeHashtags(content string, _ platform.ID, count int) []string {
	if count <= 0 {
		return nil
	}

	seen := make(map[string]struct{})
	for _, tag := range ExtractHashtags(content) {
		seen[strings.ToLower(strings.TrimPrefix(tag, "#"))] = struct{}{}
	}

	cleaned := punctuationPattern.ReplaceAllString(strings.ToLower(content), "")

	tags := make([]string, 0, count)
	for _, word := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(word) <= 3 || !lettersOnly.MatchString(word) {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		tags = append(tags, "#"+strings.ToUpper(word[:1])+word[1:])
		if len(tags) == count {
			break
		}
	}
	return tags
}
