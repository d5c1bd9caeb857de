package service

import (
	"encoding/json"

	"github.com/Jamolkhon5/brd/internal/ai/brd/models"
)

// Единственные точки разбора ответов модели: либо корректный JSON нужной
// формы, либо этапный запасной вариант. Исключения отсюда не выходят.

const summaryTitleLimit = 50

func parseSummary(raw, description string) models.DocumentSummary {
	var summary models.DocumentSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return models.DocumentSummary{
			Title:       truncateRunes(description, summaryTitleLimit),
			Description: raw,
		}
	}
	return summary
}

func parseAssessment(raw string) models.CompletionAssessment {
	var a models.CompletionAssessment
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return failedAssessment()
	}
	switch a.Status {
	case models.StatusNeed:
		if a.Details == nil {
			a.Details = []string{}
		}
	case models.StatusNotNeed:
		// Инвариант: при not_need список вопросов всегда пуст
		a.Details = []string{}
	default:
		return failedAssessment()
	}
	return a
}

func failedAssessment() models.CompletionAssessment {
	return models.CompletionAssessment{
		Status:  models.StatusError,
		Details: []string{"Failed to parse response"},
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
