package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/Jamolkhon5/brd/internal/encoding"
)

// UnsupportedFormat возвращается для типов файлов, которые мы не разбираем.
// Это обычная строка: дальше по конвейеру она обрабатывается как текст.
const UnsupportedFormat = "Unsupported file format"

// Extract извлекает текст из загруженного файла по его content-type.
// Ошибки извлечения не пробрасываются — вместо текста возвращается
// диагностическая строка, чтобы обработка документа могла продолжиться.
func Extract(data []byte, contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "pdf"):
		text, err := pdfText(data)
		if err != nil {
			return fmt.Sprintf("Failed to extract text: %v", err)
		}
		return text
	case strings.Contains(ct, "wordprocessingml"):
		text, err := docxText(data)
		if err != nil {
			return fmt.Sprintf("Failed to extract text: %v", err)
		}
		return text
	case strings.HasPrefix(ct, "text/"):
		return encoding.DecodeBestEffort(data)
	default:
		return UnsupportedFormat
	}
}

func pdfText(data []byte) (string, error) {
	// Сначала валидируем файл: pdfcpu отсекает битые PDF до разбора
	if _, err := api.PageCount(bytes.NewReader(data), nil); err != nil {
		return "", err
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var doc io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc, err = f.Open()
			if err != nil {
				return "", err
			}
			break
		}
	}
	if doc == nil {
		return "", errors.New("word/document.xml не найден в архиве")
	}
	defer doc.Close()

	// Собираем содержимое <w:t>, абзацы разделяем переводом строки
	dec := xml.NewDecoder(doc)
	var sb strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
