package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Jamolkhon5/brd/internal/ai/brd/models"
)

// scriptedCompleter отдает ответы по порядку и запоминает промпты
type scriptedCompleter struct {
	responses []string
	err       error

	prompts []string
	calls   int
}

func (c *scriptedCompleter) Complete(_ context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return "", c.err
	}
	i := c.calls
	if i >= len(c.responses) {
		i = len(c.responses) - 1
	}
	c.calls++
	return c.responses[i], nil
}

func TestSummarizeValidJSON(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{`{"title": "Payment gateway", "description": "Notes about the integration."}`}}
	svc := NewService(completer)

	summary, err := svc.Summarize(context.Background(), "raw document text", "meeting notes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := models.DocumentSummary{Title: "Payment gateway", Description: "Notes about the integration."}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}
}

func TestSummarizeMalformedResponse(t *testing.T) {
	raw := "Here is a summary of the document: it describes the rollout plan."
	description := strings.Repeat("notes about the quarterly planning meeting ", 3)

	completer := &scriptedCompleter{responses: []string{raw}}
	svc := NewService(completer)

	summary, err := svc.Summarize(context.Background(), "content", description)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := string([]rune(description)[:50]); summary.Title != want {
		t.Errorf("title = %q, want %q", summary.Title, want)
	}
	if summary.Description != raw {
		t.Errorf("description = %q, want raw response", summary.Description)
	}
}

func TestSummarizeShortDescriptionFallback(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"not json"}}
	svc := NewService(completer)

	summary, err := svc.Summarize(context.Background(), "", "short")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Title != "short" {
		t.Errorf("title = %q, want %q", summary.Title, "short")
	}
}

func TestSummarizeBackendError(t *testing.T) {
	completer := &scriptedCompleter{err: errors.New("connection refused")}
	svc := NewService(completer)

	if _, err := svc.Summarize(context.Background(), "content", "description"); err == nil {
		t.Fatal("expected error for unavailable backend")
	}
}

func TestAssessCompletion(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     models.CompletionAssessment
	}{
		{
			name:     "not_need unchanged",
			response: `{"status": "not_need", "details": []}`,
			want:     models.CompletionAssessment{Status: models.StatusNotNeed, Details: []string{}},
		},
		{
			name:     "need with questions",
			response: `{"status": "need", "details": ["What is the budget?", "Who are the stakeholders?"]}`,
			want: models.CompletionAssessment{
				Status:  models.StatusNeed,
				Details: []string{"What is the budget?", "Who are the stakeholders?"},
			},
		},
		{
			name:     "not_need with details cleared",
			response: `{"status": "not_need", "details": ["leftover"]}`,
			want:     models.CompletionAssessment{Status: models.StatusNotNeed, Details: []string{}},
		},
		{
			name:     "need without details field",
			response: `{"status": "need"}`,
			want:     models.CompletionAssessment{Status: models.StatusNeed, Details: []string{}},
		},
		{
			name:     "plain text",
			response: "I think more details are needed.",
			want:     models.CompletionAssessment{Status: models.StatusError, Details: []string{"Failed to parse response"}},
		},
		{
			name:     "unknown status",
			response: `{"status": "maybe", "details": []}`,
			want:     models.CompletionAssessment{Status: models.StatusError, Details: []string{"Failed to parse response"}},
		},
		{
			name:     "json array",
			response: `["need"]`,
			want:     models.CompletionAssessment{Status: models.StatusError, Details: []string{"Failed to parse response"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&scriptedCompleter{responses: []string{tt.response}})
			got, err := svc.AssessCompletion(context.Background(), models.BRDInput{}, "summary")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("assessment = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAssessCompletionBackendError(t *testing.T) {
	svc := NewService(&scriptedCompleter{err: errors.New("timeout")})
	if _, err := svc.AssessCompletion(context.Background(), models.BRDInput{}, "summary"); err == nil {
		t.Fatal("expected error for unavailable backend")
	}
}

func TestCreateDraftTemplateEncoding(t *testing.T) {
	// Байты некорректны как UTF-8, но валидны в Windows-1252/Latin-1
	template := []byte{'T', 'e', 'm', 'p', 'l', 0xE9}

	completer := &scriptedCompleter{responses: []string{"draft"}}
	svc := NewService(completer)

	assessment := models.CompletionAssessment{Status: models.StatusNotNeed, Details: []string{}}
	if _, err := svc.CreateDraft(context.Background(), models.BRDInput{Template: template}, "summary", assessment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(completer.prompts) != 1 {
		t.Fatalf("expected 1 backend call, got %d", len(completer.prompts))
	}
	if !strings.Contains(completer.prompts[0], "Templé") {
		t.Errorf("prompt does not contain decoded template text:\n%s", completer.prompts[0])
	}
}

func TestCreateDraftHonorsForcedNotNeed(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"draft"}}
	svc := NewService(completer)

	assessment := models.CompletionAssessment{
		Status:  models.StatusNeed,
		Details: []string{"What is the deadline?"},
	}
	assessment.ForceNotNeed()

	if _, err := svc.CreateDraft(context.Background(), models.BRDInput{}, "summary", assessment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prompt := completer.prompts[0]
	if !strings.Contains(prompt, `"not_need"`) {
		t.Errorf("prompt does not carry not_need status:\n%s", prompt)
	}
	if strings.Contains(prompt, "What is the deadline?") {
		t.Errorf("prompt still contains cleared question:\n%s", prompt)
	}
}

func TestProcessBRDPassesRawReword(t *testing.T) {
	reword := "Structured writeup that is deliberately not JSON."
	completer := &scriptedCompleter{responses: []string{
		reword,
		`{"status": "need", "details": ["Clarify the scope"]}`,
	}}
	svc := NewService(completer)

	result, err := svc.ProcessBRD(context.Background(), models.BRDInput{Prompt: "build a CRM"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RewordedSummary != reword {
		t.Errorf("reworded summary = %q, want raw response", result.RewordedSummary)
	}
	want := models.CompletionAssessment{Status: models.StatusNeed, Details: []string{"Clarify the scope"}}
	if !reflect.DeepEqual(result.CompletionAssessment, want) {
		t.Errorf("assessment = %+v, want %+v", result.CompletionAssessment, want)
	}
	// Сводка первого этапа попадает в промпт второго как есть
	if !strings.Contains(completer.prompts[1], reword) {
		t.Errorf("assessment prompt does not embed the reworded summary")
	}
}

func TestProcessBRDIdempotent(t *testing.T) {
	responses := []string{
		`{"title": "CRM", "description": "Rollout"}`,
		`{"status": "not_need", "details": []}`,
	}
	input := models.BRDInput{Prompt: "build a CRM", Template: []byte("1. Scope")}

	first, err := NewService(&scriptedCompleter{responses: responses}).ProcessBRD(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := NewService(&scriptedCompleter{responses: responses}).ProcessBRD(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different results:\n%+v\n%+v", first, second)
	}
}

func TestGenerateFinalBRDQuestionsOnly(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"final document", "review feedback"}}
	svc := NewService(completer)

	answers := map[string]string{
		"What is the budget?":   "Around 100k",
		"Who signs the budget?": "The CFO",
	}
	result, err := svc.GenerateFinalBRD(context.Background(), models.BRDInput{}, answers, "summary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BRDDocument != "final document" || result.ReviewFeedback != "review feedback" {
		t.Errorf("unexpected result: %+v", result)
	}

	draftPrompt := completer.prompts[0]
	if !strings.Contains(draftPrompt, `"status": "need"`) {
		t.Errorf("draft prompt does not carry need status:\n%s", draftPrompt)
	}
	for question := range answers {
		if !strings.Contains(draftPrompt, question) {
			t.Errorf("draft prompt misses question %q", question)
		}
	}
	// В промпт уходят только формулировки вопросов, ответы не включаются
	for _, answer := range answers {
		if strings.Contains(draftPrompt, answer) {
			t.Errorf("draft prompt leaks answer %q", answer)
		}
	}
	// Рецензия строится поверх готового черновика
	if !strings.Contains(completer.prompts[1], "final document") {
		t.Errorf("review prompt does not embed the draft")
	}
}

func TestGenerateFinalBRDNoAnswers(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"final document", "review feedback"}}
	svc := NewService(completer)

	result, err := svc.GenerateFinalBRD(context.Background(), models.BRDInput{}, map[string]string{}, "summary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BRDDocument == "" || result.ReviewFeedback == "" {
		t.Errorf("expected non-empty document and feedback, got %+v", result)
	}
	if !strings.Contains(completer.prompts[0], `"not_need"`) {
		t.Errorf("draft prompt does not carry not_need status:\n%s", completer.prompts[0])
	}
}

func TestTwoPhaseRoundTrip(t *testing.T) {
	input := models.BRDInput{Prompt: "build a CRM", Template: []byte("1. Scope\n2. Stakeholders")}

	initial, err := NewService(&scriptedCompleter{responses: []string{
		"reworded summary",
		`{"status": "not_need", "details": []}`,
	}}).ProcessBRD(context.Background(), input)
	if err != nil {
		t.Fatalf("phase 1: %v", err)
	}

	final, err := NewService(&scriptedCompleter{responses: []string{
		"final document",
		"review feedback",
	}}).GenerateFinalBRD(context.Background(), input, map[string]string{}, initial.RewordedSummary)
	if err != nil {
		t.Fatalf("phase 2: %v", err)
	}
	if final.BRDDocument == "" || final.ReviewFeedback == "" {
		t.Errorf("expected non-empty phase 2 artifacts, got %+v", final)
	}
}

func TestReviewBackendError(t *testing.T) {
	svc := NewService(&scriptedCompleter{err: errors.New("503")})
	if _, err := svc.Review(context.Background(), "draft"); err == nil {
		t.Fatal("expected error for unavailable backend")
	}
}
