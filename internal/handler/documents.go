package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/Jamolkhon5/brd/internal/auth"
	"github.com/Jamolkhon5/brd/internal/extract"
	"github.com/Jamolkhon5/brd/internal/models"
	"github.com/Jamolkhon5/brd/internal/repository"
	"github.com/Jamolkhon5/brd/internal/validator"
)

const maxUploadMemory = 32 << 20

// Пофайловая суммаризация независима между документами, поэтому пакетная
// загрузка обрабатывает файлы параллельно
const batchConcurrency = 4

func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	projectID, err := strconv.ParseInt(r.FormValue("project_id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid project ID", http.StatusBadRequest)
		return
	}
	if _, err := h.repo.GetProjectByID(projectID); errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Invalid project ID", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	description := r.FormValue("description")
	if err := validator.ValidateUploadDescription(description); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	doc, err := h.processUpload(r.Context(), data, header.Filename, header.Header.Get("Content-Type"), description, projectID, userID)
	if err != nil {
		log.Printf("Ошибка обработки документа %s: %v", header.Filename, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	saved, err := h.repo.CreateDocument(doc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(saved)
}

// UploadDocumentsBatch обрабатывает несколько файлов за один запрос.
// Извлечение текста и суммаризация выполняются параллельно, записи в базу
// создаются после завершения всех файлов в исходном порядке.
func (h *Handler) UploadDocumentsBatch(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	projectID, err := strconv.ParseInt(r.FormValue("project_id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid project ID", http.StatusBadRequest)
		return
	}
	if _, err := h.repo.GetProjectByID(projectID); errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Invalid project ID", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	files := r.MultipartForm.File["files"]
	descriptions := r.MultipartForm.Value["descriptions"]
	if len(files) == 0 {
		http.Error(w, "No files provided", http.StatusBadRequest)
		return
	}
	if len(descriptions) != len(files) {
		http.Error(w, "Each file requires a description", http.StatusBadRequest)
		return
	}
	for _, description := range descriptions {
		if err := validator.ValidateUploadDescription(description); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	docs := make([]*models.Document, len(files))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(batchConcurrency)
	for i := range files {
		i := i
		g.Go(func() error {
			data, contentType, err := readUpload(files[i])
			if err != nil {
				return err
			}
			doc, err := h.processUpload(ctx, data, files[i].Filename, contentType, descriptions[i], projectID, userID)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("Ошибка пакетной обработки документов: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	saved := make([]*models.Document, 0, len(docs))
	for _, doc := range docs {
		d, err := h.repo.CreateDocument(doc)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		saved = append(saved, d)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(saved)
}

func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.VerifyToken(r); err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	projectID, err := pathID(r, "projectID")
	if err != nil {
		http.Error(w, "Invalid project ID", http.StatusBadRequest)
		return
	}

	docs, err := h.repo.DocumentsByProject(projectID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(docs)
}

// processUpload сохраняет файл, извлекает текст и строит сводку.
// Нечитаемое содержимое не прерывает обработку: диагностическая строка
// от extract суммаризируется как обычный текст.
func (h *Handler) processUpload(ctx context.Context, data []byte, filename, contentType, description string, projectID, userID int64) (*models.Document, error) {
	path, err := h.storage.Save(data, filename)
	if err != nil {
		return nil, err
	}

	content := extract.Extract(data, contentType)
	summary, err := h.brd.Summarize(ctx, content, description)
	if err != nil {
		return nil, err
	}

	return &models.Document{
		Filename:           filename,
		Path:               path,
		Description:        description,
		SummaryTitle:       summary.Title,
		SummaryDescription: summary.Description,
		ProjectID:          projectID,
		UploadedBy:         userID,
	}, nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, string, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Header.Get("Content-Type"), nil
}
