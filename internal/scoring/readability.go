package scoring

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

const (
	longSentenceWords = 20
	longWordChars     = 6
)

// Readability scores content from 0 to 100. Long sentences cost 20 points
// and long words cost 15. Content without words scores 100.
func Readability(content string) int {
	words := strings.Fields(content)
	sentences := 0
	for _, s := range sentenceSplit.Split(content, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	if len(words) == 0 || sentences == 0 {
		return 100
	}

	chars := utf8.RuneCountInString(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, content))

	avgWordsPerSentence := float64(len(words)) / float64(sentences)
	avgCharsPerWord := float64(chars) / float64(len(words))

	score := 100
	if avgWordsPerSentence > longSentenceWords {
		score -= 20
	}
	if avgCharsPerWord > longWordChars {
		score -= 15
	}
	return max(0, min(score, 100))
}
