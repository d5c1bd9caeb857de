package models

// SupportDocument — исходный документ, приложенный к запросу
type SupportDocument struct {
	FileContent  []byte `json:"-"`
	Description  string `json:"description"`
	DocumentType string `json:"document_type"`
}

// BRDInput — входные данные одного прогона конвейера. Prompt и Template
// кэшируются вызывающей стороной между двумя фазами генерации.
type BRDInput struct {
	Prompt           string
	Template         []byte
	SupportDocuments []SupportDocument
}

// DocumentSummary — структурированная сводка одного документа
type DocumentSummary struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AssessmentStatus — решение о необходимости уточнений
type AssessmentStatus string

const (
	StatusNeed    AssessmentStatus = "need"
	StatusNotNeed AssessmentStatus = "not_need"
	StatusError   AssessmentStatus = "error"
)

// CompletionAssessment содержит статус и список открытых вопросов.
// Для статусов not_need и error список Details пуст либо содержит
// диагностическое сообщение.
type CompletionAssessment struct {
	Status  AssessmentStatus `json:"status"`
	Details []string         `json:"details"`
}

// ForceNotNeed переводит оценку в not_need и очищает вопросы. Используется
// вызывающей стороной, чтобы пропустить интерактивный шаг уточнений;
// дальше по конвейеру такая оценка неотличима от настоящего not_need.
func (a *CompletionAssessment) ForceNotNeed() {
	a.Status = StatusNotNeed
	a.Details = []string{}
}

// InitialResult — результат первой фазы генерации
type InitialResult struct {
	RewordedSummary      string               `json:"reworded_summary"`
	CompletionAssessment CompletionAssessment `json:"completion_assessment"`
}

// FinalResult — результат второй фазы генерации
type FinalResult struct {
	BRDDocument    string `json:"brd_document"`
	ReviewFeedback string `json:"review_feedback"`
}
