package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local сохраняет загруженные файлы на локальном диске
type Local struct {
	baseDir string
}

func NewLocal(baseDir string) (*Local, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("ошибка создания каталога загрузок: %w", err)
	}
	return &Local{baseDir: baseDir}, nil
}

// Save записывает файл под уникальным именем и возвращает путь к нему
func (s *Local) Save(data []byte, originalName string) (string, error) {
	ext := filepath.Ext(originalName)
	name := strings.ReplaceAll(uuid.New().String(), "-", "") + ext
	path := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("ошибка записи файла: %w", err)
	}
	return path, nil
}

func (s *Local) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (s *Local) Delete(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(path)
}
