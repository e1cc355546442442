package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

const promptVersion = "v1"

const systemPrompt = `You are an editor for a daily word-puzzle blog. You write helpful, spoiler-aware articles about the day's Wordle.

Rules:
1. Write in Markdown with "##" section headings
2. Between 300 and 600 words
3. Category "wordle-hints": never write the answer; give progressively stronger clues
4. Category "wordle-answer": state the answer clearly after a short spoiler warning
5. Category "word-analysis": discuss meaning, etymology, letter patterns and solving strategy
6. Use the facts provided; do not invent puzzle numbers or dates
7. No emojis, no clickbait

Output as JSON only, no other text:
{
  "title": "article title, 30 to 70 characters",
  "content": "markdown body",
  "excerpt": "one or two sentence summary, under 160 characters",
  "tags": ["3 to 6 lowercase tags"]
}`

func userPrompt(input ArticleInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Category: %s\n", input.Category)
	fmt.Fprintf(&b, "Wordle #%d for %s\n", input.Number, input.Date.Format("January 2, 2006"))
	fmt.Fprintf(&b, "Answer: %s\n", strings.ToUpper(input.Word))
	fmt.Fprintf(&b, "Difficulty: %s\n", input.Difficulty)
	if len(input.Facts) > 0 {
		b.WriteString("Facts:\n")
		for _, f := range input.Facts {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}
	return b.String()
}

func parseArticle(content string, modelName string) (*ArticleResult, error) {
	content = cleanJSONResponse(content)

	var parsed struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Excerpt string   `json:"excerpt"`
		Tags    []string `json:"tags"`
	}

	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	if parsed.Title == "" || parsed.Content == "" {
		return nil, fmt.Errorf("incomplete article in response: %s", content)
	}

	return &ArticleResult{
		Title:         parsed.Title,
		Content:       parsed.Content,
		Excerpt:       parsed.Excerpt,
		Tags:          parsed.Tags,
		PromptVersion: promptVersion,
		ModelUsed:     modelName,
	}, nil
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
