package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"claims-portal-api/internal/content"

	"github.com/glebarez/sqlite"
	"google.golang.org/genai"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *AssistantService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&content.ContentSection{}, &content.FAQ{}, &content.ImportantDate{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return &AssistantService{
		Content: &content.ContentService{DB: db},
		Client:  &genai.Client{},
	}
}

func stubGenerate(t *testing.T, fn func(contents []*genai.Content) (*genai.GenerateContentResponse, error)) {
	t.Helper()

	old := genaiGenerateContentHook
	genaiGenerateContentHook = func(_ *genai.Client, _ context.Context, _ string, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
		return fn(contents)
	}
	t.Cleanup(func() { genaiGenerateContentHook = old })
}

func textResponse(t *testing.T, text string) *genai.GenerateContentResponse {
	t.Helper()

	var out genai.GenerateContentResponse
	raw := `{"candidates":[{"content":{"parts":[{"text":` + string(mustJSON(t, text)) + `}]}}]}`
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("build response: %v", err)
	}
	return &out
}

func mustJSON(t *testing.T, s string) []byte {
	t.Helper()
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestAsk_GroundsPromptOnPublishedContent(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Content.CreateFAQ(content.FAQInput{
		Question: "When is the claim deadline?",
		Answer:   "October 15, 2026.",
	}, 1); err != nil {
		t.Fatalf("CreateFAQ: %v", err)
	}
	hidden := false
	if _, err := svc.Content.CreateFAQ(content.FAQInput{
		Question: "Internal note",
		Answer:   "Draft answer, do not publish.",
		IsVisible: &hidden,
	}, 1); err != nil {
		t.Fatalf("CreateFAQ: %v", err)
	}

	stubGenerate(t, func(contents []*genai.Content) (*genai.GenerateContentResponse, error) {
		if len(contents) == 0 || len(contents[0].Parts) == 0 {
			t.Fatalf("expected prompt contents, got %#v", contents)
		}
		prompt := contents[0].Parts[0].Text
		if !strings.Contains(prompt, "October 15, 2026") {
			t.Fatalf("prompt missing faq answer:\n%s", prompt)
		}
		if strings.Contains(prompt, "do not publish") {
			t.Fatalf("hidden faq leaked into prompt:\n%s", prompt)
		}
		if !strings.Contains(prompt, "Visitor question: when is the deadline?") {
			t.Fatalf("prompt missing question:\n%s", prompt)
		}
		return textResponse(t, "The claim deadline is October 15, 2026."), nil
	})

	answer, err := svc.Ask(context.Background(), "when is the deadline?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !strings.Contains(answer, "October 15") {
		t.Fatalf("answer=%q", answer)
	}
}

func TestAsk_EmptyQuestion(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Ask(context.Background(), "   ")
	if !errors.Is(err, ErrEmptyQuestion) {
		t.Fatalf("err=%v", err)
	}
}

func TestAsk_GenerationError(t *testing.T) {
	svc := newTestService(t)

	stubGenerate(t, func(_ []*genai.Content) (*genai.GenerateContentResponse, error) {
		return nil, errors.New("quota exceeded")
	})

	_, err := svc.Ask(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("err=%v", err)
	}
}

func TestAsk_EmptyCandidates(t *testing.T) {
	svc := newTestService(t)

	stubGenerate(t, func(_ []*genai.Content) (*genai.GenerateContentResponse, error) {
		return &genai.GenerateContentResponse{}, nil
	})

	_, err := svc.Ask(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "no response") {
		t.Fatalf("err=%v", err)
	}
}
