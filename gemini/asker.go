package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"siteask"
)

const model = "gemini-2.5-flash"

// Ensure Asker implements siteask.Asker at compile time.
var _ siteask.Asker = (*Asker)(nil)

// Asker implements siteask.Asker using Google Gemini.
type Asker struct {
	client *genai.Client
	docs   siteask.DocumentService
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, docs siteask.DocumentService) *Asker {
	return &Asker{client: client, docs: docs}
}

// Ask answers a natural language question about a project's collected pages.
func (a *Asker) Ask(ctx context.Context, projectID, question string) (string, error) {
	if projectID == "" {
		return "", siteask.Errorf(siteask.EINVALID, "project ID required")
	}
	if question == "" {
		return "", siteask.Errorf(siteask.EINVALID, "question required")
	}

	docs, err := a.docs.FindDocuments(ctx, siteask.DocumentFilter{
		ProjectID: &projectID,
		SortBy:    siteask.SortByPosition,
	})
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", siteask.Errorf(siteask.ENOTFOUND, "no documents found for project %q", projectID)
	}

	prompt := BuildUserPrompt(docs, question)
	config := BuildConfig()

	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", siteask.Errorf(siteask.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about the content of a website. Answer based only on the pages provided. If the answer is not in the pages, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing page content and the question.
// Markdown is preferred over plain text when a document has both.
func BuildUserPrompt(docs []*siteask.Document, question string) string {
	var sb strings.Builder
	sb.WriteString("<documents>\n")
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.SourceURL
		}
		content := doc.Markdown
		if content == "" {
			content = doc.Text
		}
		sb.WriteString("<document>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<title>%s</title>\n", title)
		fmt.Fprintf(&sb, "<source>%s</source>\n", doc.SourceURL)
		fmt.Fprintf(&sb, "<content>%s</content>\n", content)
		sb.WriteString("</document>\n")
	}
	sb.WriteString("</documents>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
