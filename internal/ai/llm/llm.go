package llm

import "context"

// Completer абстрагирует сервис генерации текста, чтобы каждый этап
// конвейера получал клиент через конструктор и мог быть протестирован
// на заготовленных ответах.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Settings — базовая конфигурация для конкретной реализации.
type Settings struct {
	APIKey  string
	Model   string
	BaseURL string
}
