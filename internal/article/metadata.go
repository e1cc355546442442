package article

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
)

const (
	wordsPerMinute = 200
	maxExcerpt     = 160
)

const rareLetters = "jqxzvkwy"

// Difficulty grades a five letter word by how awkward its letters are to find.
func Difficulty(word string) string {
	word = strings.ToLower(word)
	score := 0

	vowels := 0
	seen := make(map[rune]int)
	for _, r := range word {
		if strings.ContainsRune("aeiou", r) {
			vowels++
		}
		if strings.ContainsRune(rareLetters, r) {
			score++
		}
		seen[r]++
	}

	if vowels <= 1 {
		score += 2
	}
	for _, n := range seen {
		if n > 1 {
			score += 2
		}
	}

	switch {
	case score <= 1:
		return model.DifficultyEasy
	case score <= 3:
		return model.DifficultyMedium
	default:
		return model.DifficultyHard
	}
}

// QualityScore rates a draft from 0 to 100 on length, structure, summary and
// whether it keeps the answer out of spoiler-free categories.
func QualityScore(d *Draft, word, category string) int {
	score := 0

	words := len(strings.Fields(d.Content))
	switch {
	case words >= 300:
		score += 30
	case words >= 150:
		score += 20
	case words >= 60:
		score += 10
	}

	if strings.Count(d.Content, "\n## ")+boolInt(strings.HasPrefix(d.Content, "## ")) >= 2 {
		score += 20
	}

	mentions := strings.Contains(strings.ToLower(d.Content), strings.ToLower(word))
	if category == model.CategoryWordleHints {
		if !mentions {
			score += 20
		}
	} else if mentions {
		score += 20
	}

	if n := utf8.RuneCountInString(d.Title); n >= 20 && n <= 80 {
		score += 10
	}
	if n := utf8.RuneCountInString(d.Excerpt); n > 0 && n <= maxExcerpt {
		score += 10
	}
	if len(d.Tags) >= 3 {
		score += 10
	}

	return score
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func WordCount(content string) int {
	return len(strings.Fields(content))
}

func ReadingMinutes(words int) int {
	m := (words + wordsPerMinute - 1) / wordsPerMinute
	if m < 1 {
		return 1
	}
	return m
}

// Slug builds the public slug for an article of category about word on date.
func Slug(category, word string, number int, date time.Time) string {
	day := model.DateKey(date)
	switch category {
	case model.CategoryWordleAnswer:
		return fmt.Sprintf("wordle-%d-answer-%s", number, day)
	case model.CategoryWordAnalysis:
		return fmt.Sprintf("%s-word-analysis-%s", strings.ToLower(word), day)
	default:
		return fmt.Sprintf("wordle-%d-hints-%s", number, day)
	}
}

// Tags merges the fixed tags for a category with the writer's suggestions.
// Hint articles never carry the answer as a tag.
func Tags(category, word string, number int, suggested []string) []string {
	word = strings.ToLower(word)
	base := []string{"wordle", fmt.Sprintf("wordle-%d", number), category}
	if category != model.CategoryWordleHints {
		base = append(base, word)
	}

	seen := make(map[string]bool)
	var tags []string
	for _, t := range append(base, suggested...) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		if category == model.CategoryWordleHints && strings.Contains(t, word) {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

// Excerpt trims s to the excerpt length on a word boundary.
func Excerpt(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= maxExcerpt {
		return s
	}
	runes := []rune(s)[:maxExcerpt-3]
	cut := string(runes)
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
