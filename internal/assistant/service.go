package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"claims-portal-api/internal/content"

	"google.golang.org/genai"
)

var ErrEmptyQuestion = errors.New("question is required")

var genaiGenerateContentHook = func(client *genai.Client, ctx context.Context, model string, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
	return client.Models.GenerateContent(ctx, model, contents, nil)
}

type AssistantService struct {
	Content *content.ContentService
	Client  *genai.Client
}

// Ask answers a claimant question grounded on the published FAQ and site
// copy. The model is told to stay inside that material so it cannot invent
// settlement terms.
func (as *AssistantService) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	faqs, err := as.Content.VisibleFAQs("")
	if err != nil {
		return "", fmt.Errorf("failed to load faqs: %w", err)
	}
	sections, err := as.Content.VisibleSections()
	if err != nil {
		return "", fmt.Errorf("failed to load content: %w", err)
	}

	var b strings.Builder
	b.WriteString("You help visitors of a class action settlement claims portal. ")
	b.WriteString("Answer only from the reference material below. ")
	b.WriteString("If the material does not cover the question, say so and suggest contacting the claims administrator. ")
	b.WriteString("Never give legal advice or estimate payment amounts.\n\n")

	b.WriteString("Reference material:\n")
	for _, s := range sections {
		fmt.Fprintf(&b, "# %s\n%s\n\n", s.Title, s.Body)
	}
	for _, f := range faqs {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n\n", f.Question, f.Answer)
	}

	fmt.Fprintf(&b, "Visitor question: %s\n", question)

	genResp, err := genaiGenerateContentHook(as.Client, ctx, "gemini-2.5-flash", []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: b.String()},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("generation error: %w", err)
	}

	var response string
	for _, candidate := range genResp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				response = part.Text
				break
			}
		}
		if response != "" {
			break
		}
	}

	if response == "" {
		return "", fmt.Errorf("no response from Gemini")
	}

	return response, nil
}
