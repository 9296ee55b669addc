package scraper

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/saulo-duarte/smart-quiz/internal/config"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// EstimateDifficulty buckets the Flesch-Kincaid grade of text, falling back to
// word and sentence length when no grade can be computed.
func EstimateDifficulty(text string) (d Difficulty) {
	defer func() {
		if r := recover(); r != nil {
			config.Log.WithField("panic", r).Warn("Difficulty estimation failed")
			d = Medium
		}
	}()

	if utf8.RuneCountInString(strings.TrimSpace(text)) < 50 {
		return Medium
	}
	words := strings.Fields(text)
	if len(words) < 100 {
		return Easy
	}

	if grade, ok := FleschKincaidGrade(text); ok {
		return BucketGrade(grade)
	}
	return heuristicDifficulty(text, words)
}

func BucketGrade(grade float64) Difficulty {
	switch {
	case grade < 6:
		return Easy
	case grade < 10:
		return Medium
	default:
		return Hard
	}
}

func heuristicDifficulty(text string, words []string) Difficulty {
	letters := 0
	for _, w := range words {
		letters += len([]rune(w))
	}
	avgWord := float64(letters) / float64(len(words))

	sentences := strings.Count(text, ".") + strings.Count(text, "!") + strings.Count(text, "?")
	avgSentence := float64(len(words)) / float64(max(sentences, 1))

	switch {
	case avgWord > 6 || avgSentence > 20:
		return Hard
	case avgWord > 5 || avgSentence > 15:
		return Medium
	default:
		return Easy
	}
}

// FleschKincaidGrade is 0.39*words/sentences + 11.8*syllables/words - 15.59.
// It reports false when the text has no sentence terminator or no words
// containing letters.
func FleschKincaidGrade(text string) (float64, bool) {
	sentences := countSentences(text)
	if sentences == 0 {
		return 0, false
	}

	words, syllables := 0, 0
	for _, raw := range strings.Fields(text) {
		w := strings.ToLower(strings.TrimFunc(raw, func(r rune) bool { return !unicode.IsLetter(r) }))
		if w == "" {
			continue
		}
		words++
		syllables += countSyllables(w)
	}
	if words == 0 {
		return 0, false
	}

	wps := float64(words) / float64(sentences)
	spw := float64(syllables) / float64(words)
	return 0.39*wps + 11.8*spw - 15.59, true
}

// countSentences counts runs of terminators so "?!" or "..." end one sentence.
func countSentences(text string) int {
	n := 0
	inTerm := false
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if !inTerm {
				n++
			}
			inTerm = true
			continue
		}
		inTerm = false
	}
	return n
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// countSyllables counts vowel groups, dropping a silent trailing "e".
func countSyllables(word string) int {
	runes := []rune(word)
	count := 0
	prevVowel := false
	for _, r := range runes {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if n := len(runes); n > 2 && runes[n-1] == 'e' && !isVowel(runes[n-2]) && runes[n-2] != 'l' && count > 1 {
		count--
	}
	return max(count, 1)
}
