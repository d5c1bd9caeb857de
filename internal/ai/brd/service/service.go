package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Jamolkhon5/brd/internal/ai/brd/models"
	"github.com/Jamolkhon5/brd/internal/ai/brd/prompts"
	"github.com/Jamolkhon5/brd/internal/ai/llm"
	"github.com/Jamolkhon5/brd/internal/encoding"
)

// Service реализует конвейер генерации BRD: пересказ, оценка полноты,
// создание черновика и рецензия. Каждый этап — один синхронный вызов
// сервиса генерации текста без повторов; состояние между вызовами
// не хранится.
type Service struct {
	llm llm.Completer
}

func NewService(completer llm.Completer) *Service {
	return &Service{llm: completer}
}

// RewordSummary превращает свободный ввод в структурированный пересказ.
// Возвращается сырой текст ответа: следующий этап потребляет его как есть,
// даже если модель прислала не JSON.
func (s *Service) RewordSummary(ctx context.Context, input models.BRDInput) (string, error) {
	response, err := s.llm.Complete(ctx, prompts.Reword(input.Prompt))
	if err != nil {
		return "", fmt.Errorf("ошибка этапа пересказа: %w", err)
	}
	return response, nil
}

// Summarize строит сводку одного документа. При некорректном JSON в ответе
// сводка синтезируется из описания и сырого текста — ошибок разбора этот
// этап никогда не возвращает.
func (s *Service) Summarize(ctx context.Context, content, description string) (models.DocumentSummary, error) {
	prompt := prompts.SummarizeInstruction(description)
	if content != "" {
		prompt += "\n\n" + content
	}
	raw, err := s.RewordSummary(ctx, models.BRDInput{Prompt: prompt})
	if err != nil {
		return models.DocumentSummary{}, err
	}
	return parseSummary(raw, description), nil
}

// AssessCompletion решает, нужны ли уточнения по сводке. Некорректный
// ответ модели сворачивается в статус error, а не в ошибку вызова.
func (s *Service) AssessCompletion(ctx context.Context, input models.BRDInput, summary string) (models.CompletionAssessment, error) {
	template := encoding.DecodeBestEffort(input.Template)
	raw, err := s.llm.Complete(ctx, prompts.CompletionCheck(summary, template))
	if err != nil {
		return models.CompletionAssessment{}, fmt.Errorf("ошибка этапа оценки полноты: %w", err)
	}
	return parseAssessment(raw), nil
}

// CreateDraft собирает черновик BRD из сводки, оценки полноты и шаблона.
// Шаблон декодируется без ошибок независимо от кодировки байт.
func (s *Service) CreateDraft(ctx context.Context, input models.BRDInput, summary string, assessment models.CompletionAssessment) (string, error) {
	details, err := json.MarshalIndent(assessment, "", "  ")
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации уточнений: %w", err)
	}

	template := encoding.DecodeBestEffort(input.Template)
	response, err := s.llm.Complete(ctx, prompts.Creation(summary, string(details), template))
	if err != nil {
		return "", fmt.Errorf("ошибка этапа создания черновика: %w", err)
	}
	return response, nil
}

// Review возвращает свободный текст рецензии на черновик
func (s *Service) Review(ctx context.Context, document string) (string, error) {
	response, err := s.llm.Complete(ctx, prompts.Review(document))
	if err != nil {
		return "", fmt.Errorf("ошибка этапа рецензирования: %w", err)
	}
	return response, nil
}

// ProcessBRD — первая фаза: пересказ и оценка полноты. Вызывающая сторона
// сохраняет результат и собирает ответы на вопросы до второй фазы.
func (s *Service) ProcessBRD(ctx context.Context, input models.BRDInput) (*models.InitialResult, error) {
	summary, err := s.RewordSummary(ctx, input)
	if err != nil {
		return nil, err
	}
	assessment, err := s.AssessCompletion(ctx, input, summary)
	if err != nil {
		return nil, err
	}
	return &models.InitialResult{
		RewordedSummary:      summary,
		CompletionAssessment: assessment,
	}, nil
}

// GenerateFinalBRD — вторая фаза: черновик и рецензия. В промпт черновика
// попадают формулировки вопросов (ключи карты answers), но не сами ответы;
// статус определяется наличием хотя бы одного ответа.
func (s *Service) GenerateFinalBRD(ctx context.Context, input models.BRDInput, answers map[string]string, rewordedSummary string) (*models.FinalResult, error) {
	questions := make([]string, 0, len(answers))
	for q := range answers {
		questions = append(questions, q)
	}
	sort.Strings(questions)

	assessment := models.CompletionAssessment{Status: models.StatusNotNeed, Details: []string{}}
	if len(questions) > 0 {
		assessment = models.CompletionAssessment{Status: models.StatusNeed, Details: questions}
	}

	document, err := s.CreateDraft(ctx, input, rewordedSummary, assessment)
	if err != nil {
		return nil, err
	}
	feedback, err := s.Review(ctx, document)
	if err != nil {
		return nil, err
	}
	return &models.FinalResult{
		BRDDocument:    document,
		ReviewFeedback: feedback,
	}, nil
}
