package llm

import (
	"context"
	"errors"
	"sync"
)

// Mock — заглушка без обращения к внешней модели. Отдает ответы по
// порядку вызовов; после исчерпания списка повторяет последний ответ.
type Mock struct {
	Responses []string
	Err       error

	mu    sync.Mutex
	calls int
}

func (m *Mock) Complete(_ context.Context, _ string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Responses) == 0 {
		return "", errors.New("mock: нет заготовленных ответов")
	}
	i := m.calls
	if i >= len(m.Responses) {
		i = len(m.Responses) - 1
	}
	m.calls++
	return m.Responses[i], nil
}
