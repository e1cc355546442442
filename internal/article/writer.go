package article

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
	"github.com/amosoni/Wordle-Hint-sub001/pkg/llm"
)

type Input struct {
	Word       string
	Number     int
	Date       time.Time
	Category   string
	Difficulty string
}

type Draft struct {
	Title   string
	Content string
	Excerpt string
	Tags    []string
	Writer  string
}

// Writer turns puzzle facts into article copy for one category.
type Writer interface {
	Write(ctx context.Context, in Input) (*Draft, error)
}

// TemplateWriter builds articles from fixed templates. It never fails and
// always produces the same text for the same input.
type TemplateWriter struct{}

func (TemplateWriter) Write(_ context.Context, in Input) (*Draft, error) {
	word := strings.ToLower(in.Word)
	upper := strings.ToUpper(word)
	day := in.Date.Format("January 2, 2006")
	facts := wordFacts(word)

	var d Draft
	var b strings.Builder

	switch in.Category {
	case model.CategoryWordleAnswer:
		d.Title = fmt.Sprintf("Wordle #%d Answer for %s", in.Number, day)
		d.Excerpt = fmt.Sprintf("Spoiler warning: the answer to Wordle #%d on %s, with a quick breakdown of the word.", in.Number, day)
		fmt.Fprintf(&b, "## Spoiler warning\n\nThis page reveals the answer to Wordle #%d for %s. If you still want to solve it yourself, try our hints page first.\n\n", in.Number, day)
		fmt.Fprintf(&b, "## Today's answer\n\nThe answer to Wordle #%d is **%s**.\n\n", in.Number, upper)
		b.WriteString("## How it breaks down\n\n")
		for _, f := range facts {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		fmt.Fprintf(&b, "\nWe rate today's puzzle as **%s**. ", in.Difficulty)
		b.WriteString(difficultyNote(in.Difficulty))
		b.WriteString("\n\n## Tomorrow\n\nA new puzzle unlocks at midnight. Come back for fresh hints before you make your first guess.\n")

	case model.CategoryWordAnalysis:
		d.Title = fmt.Sprintf("%s: Word Analysis and Letter Patterns", upper)
		d.Excerpt = fmt.Sprintf("A closer look at %s, the Wordle answer for %s: letters, patterns and how to find it faster.", upper, day)
		fmt.Fprintf(&b, "## About %s\n\n%s was the answer to Wordle #%d on %s. Here is what makes it tick as a puzzle word.\n\n", upper, upper, in.Number, day)
		b.WriteString("## Letter patterns\n\n")
		for _, f := range facts {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		b.WriteString("\n## Solving strategy\n\n")
		b.WriteString(strategyNote(word))
		fmt.Fprintf(&b, "\n\n## Difficulty\n\nWe rate %s as **%s**. %s\n", upper, in.Difficulty, difficultyNote(in.Difficulty))

	default:
		d.Title = fmt.Sprintf("Wordle #%d Hints for %s", in.Number, day)
		d.Excerpt = fmt.Sprintf("Stuck on Wordle #%d? Spoiler-free hints for %s, from gentle nudges to strong clues.", in.Number, day)
		fmt.Fprintf(&b, "## Wordle #%d hints\n\nNeed a nudge with the %s puzzle? The hints below get stronger as you go, and none of them give the answer away.\n\n", in.Number, day)
		b.WriteString("## Gentle hints\n\n")
		fmt.Fprintf(&b, "- %s\n", vowelSentence(word))
		fmt.Fprintf(&b, "- %s\n", repeatSentence(word))
		b.WriteString("\n## Stronger hints\n\n")
		fmt.Fprintf(&b, "- The word starts with the letter **%s**.\n", strings.ToUpper(word[:1]))
		fmt.Fprintf(&b, "- The word ends with the letter **%s**.\n", strings.ToUpper(word[len(word)-1:]))
		fmt.Fprintf(&b, "\n## Difficulty\n\nToday's puzzle is rated **%s**. %s\n", in.Difficulty, difficultyNote(in.Difficulty))
	}

	d.Content = b.String()
	d.Writer = "template"
	return &d, nil
}

func wordFacts(word string) []string {
	return []string{
		vowelSentence(word),
		repeatSentence(word),
		fmt.Sprintf("It starts with %s and ends with %s.", strings.ToUpper(word[:1]), strings.ToUpper(word[len(word)-1:])),
	}
}

func vowelSentence(word string) string {
	n := 0
	for _, r := range word {
		if strings.ContainsRune("aeiou", r) {
			n++
		}
	}
	if n == 1 {
		return "The word contains 1 vowel."
	}
	return fmt.Sprintf("The word contains %d vowels.", n)
}

func repeatSentence(word string) string {
	seen := make(map[rune]bool)
	for _, r := range word {
		if seen[r] {
			return "At least one letter appears twice."
		}
		seen[r] = true
	}
	return "Every letter is different."
}

func strategyNote(word string) string {
	if strings.ContainsAny(word, rareLetters) {
		return "It uses at least one uncommon letter, so openers built on common letters like E, A, R and T will leave gaps. Once the vowels are placed, try a guess that tests rarer consonants."
	}
	return "It is built from common letters, so a standard opener such as CRANE or SLATE uncovers most of it. Focus the second guess on confirming letter positions."
}

func difficultyNote(difficulty string) string {
	switch difficulty {
	case model.DifficultyEasy:
		return "Most players should get it in three or four guesses."
	case model.DifficultyHard:
		return "Expect to need most of your six guesses."
	default:
		return "A solid opener should get you there in four."
	}
}

// LLMWriter asks a language model for the article and falls back to another
// writer when the model fails.
type LLMWriter struct {
	client   llm.ArticleClient
	fallback Writer
}

func NewLLMWriter(client llm.ArticleClient, fallback Writer) *LLMWriter {
	if fallback == nil {
		fallback = TemplateWriter{}
	}
	return &LLMWriter{client: client, fallback: fallback}
}

func (w *LLMWriter) Write(ctx context.Context, in Input) (*Draft, error) {
	res, err := w.client.WriteArticle(ctx, llm.ArticleInput{
		Word:       in.Word,
		Number:     in.Number,
		Date:       in.Date,
		Category:   in.Category,
		Difficulty: in.Difficulty,
		Facts:      wordFacts(strings.ToLower(in.Word)),
	})
	if err != nil {
		slog.Warn("llm writer failed, using fallback", "provider", w.client.Name(), "category", in.Category, "error", err)
		return w.fallback.Write(ctx, in)
	}

	if in.Category == model.CategoryWordleHints && strings.Contains(strings.ToLower(res.Content), strings.ToLower(in.Word)) {
		slog.Warn("llm hints article leaked the answer, using fallback", "provider", w.client.Name())
		return w.fallback.Write(ctx, in)
	}

	excerpt := res.Excerpt
	if excerpt == "" {
		excerpt = res.Content
	}

	return &Draft{
		Title:   res.Title,
		Content: res.Content,
		Excerpt: Excerpt(excerpt),
		Tags:    res.Tags,
		Writer:  w.client.Name() + ":" + res.ModelUsed,
	}, nil
}
