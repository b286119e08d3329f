package relay

import "fmt"

const noContent = "(No content - summarize based on URL)"

const promptTemplate = `Summarize this webpage in 2-3 sentences. Be concise and informative.

URL: %s

Page Content:
%s

Respond in JSON format:
{"title": "Page Title", "summary": "2-3 sentence summary of the page content."}`

// BuildPrompt returns the summarization prompt for url and its page text.
func BuildPrompt(url, content string) string {
	if content == "" {
		content = noContent
	}
	return fmt.Sprintf(promptTemplate, url, content)
}
