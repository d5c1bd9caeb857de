package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	aimodels "github.com/Jamolkhon5/brd/internal/ai/brd/models"
	"github.com/Jamolkhon5/brd/internal/ai/brd/service"
	"github.com/Jamolkhon5/brd/internal/auth"
	"github.com/Jamolkhon5/brd/internal/export"
	"github.com/Jamolkhon5/brd/internal/models"
	"github.com/Jamolkhon5/brd/internal/repository"
)

const maxTemplateMemory = 32 << 20

// BRDHandler — HTTP-обертка над двухфазным конвейером генерации BRD.
// Все состояние между фазами (prompt, шаблон, сводки) живет в базе и
// в аргументах запросов; на сервере сессий нет.
type BRDHandler struct {
	repo    *repository.Repository
	service *service.Service
}

func NewBRDHandler(repo *repository.Repository, svc *service.Service) *BRDHandler {
	return &BRDHandler{
		repo:    repo,
		service: svc,
	}
}

// RegisterRoutes регистрирует маршруты генерации BRD
func (h *BRDHandler) RegisterRoutes(r chi.Router) {
	r.Post("/brd/generate-initial", h.GenerateInitial)
	r.Post("/brd/generate-final", h.GenerateFinal)
	r.Get("/brd/download", h.Download)
	r.Post("/brd/preview", h.Preview)
}

// GenerateInitial — первая фаза: пересказ и список уточняющих вопросов.
// Prompt и шаблон кэшируются на проекте для второй фазы.
func (h *BRDHandler) GenerateInitial(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxTemplateMemory); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	project, ok := h.projectForMember(w, r, userID)
	if !ok {
		return
	}

	prompt := r.FormValue("prompt")
	if prompt == "" {
		http.Error(w, "No prompt provided", http.StatusBadRequest)
		return
	}

	template, err := formFileBytes(r, "template")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	combined, err := h.combinedSummary(project.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Сохраняем вход первой фазы, чтобы вторая могла его переиспользовать
	if err := h.repo.SaveBRDContext(project.ID, prompt, template); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	input := aimodels.BRDInput{
		Prompt:   pipelinePrompt(prompt, combined),
		Template: template,
	}

	result, err := h.service.ProcessBRD(r.Context(), input)
	if err != nil {
		log.Printf("Ошибка первой фазы генерации BRD: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Неинтерактивный режим: вызывающая сторона отказывается от вопросов
	if r.FormValue("skip_questions") == "true" {
		result.CompletionAssessment.ForceNotNeed()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GenerateFinal — вторая фаза: итоговый документ и рецензия. Шаблон
// берется из запроса либо из кэша первой фазы.
func (h *BRDHandler) GenerateFinal(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxTemplateMemory); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	project, ok := h.projectForMember(w, r, userID)
	if !ok {
		return
	}

	prompt := r.FormValue("prompt")
	if prompt == "" {
		http.Error(w, "No prompt provided", http.StatusBadRequest)
		return
	}

	answersRaw := r.FormValue("completion_answers")
	if answersRaw == "" {
		answersRaw = "{}"
	}
	var answers map[string]string
	if err := json.Unmarshal([]byte(answersRaw), &answers); err != nil {
		http.Error(w, "Invalid completion answers", http.StatusBadRequest)
		return
	}

	template, err := formFileBytes(r, "template")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(template) == 0 {
		template = project.Template
	}

	combined, err := h.combinedSummary(project.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	input := aimodels.BRDInput{
		Prompt:   pipelinePrompt(prompt, combined),
		Template: template,
	}
	rewordedSummary := prompt + "\n\n" + combined

	result, err := h.service.GenerateFinalBRD(r.Context(), input, answers, rewordedSummary)
	if err != nil {
		log.Printf("Ошибка второй фазы генерации BRD: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// Download отдает .docx со сводками документов проекта
func (h *BRDHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	project, ok := h.projectForMember(w, r, userID)
	if !ok {
		return
	}

	combined, err := h.combinedSummary(project.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	text := fmt.Sprintf("Business Requirements Document for Project: %s\n\n%s", project.Name, combined)
	data, err := export.Docx(text)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("BRD_%s.docx", strings.ReplaceAll(project.Name, " ", "_"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// Preview преобразует markdown итогового документа в HTML
func (h *BRDHandler) Preview(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.VerifyToken(r); err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Markdown string `json:"markdown"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	html, err := export.MarkdownHTML(req.Markdown)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"html": html,
	})
}

// projectForMember загружает проект из запроса и проверяет членство
// пользователя в его группе
func (h *BRDHandler) projectForMember(w http.ResponseWriter, r *http.Request, userID int64) (*models.Project, bool) {
	raw := r.FormValue("project_id")
	if raw == "" {
		raw = r.URL.Query().Get("project_id")
	}
	projectID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		http.Error(w, "Invalid project ID", http.StatusBadRequest)
		return nil, false
	}

	project, err := h.repo.GetProjectByID(projectID)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}

	member, err := h.repo.IsGroupMember(userID, project.GroupID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	if !member {
		http.Error(w, "Access denied", http.StatusForbidden)
		return nil, false
	}
	return project, true
}

// combinedSummary склеивает сводки всех документов проекта в один блок
func (h *BRDHandler) combinedSummary(projectID int64) (string, error) {
	docs, err := h.repo.DocumentsByProject(projectID)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		title := doc.SummaryTitle
		if title == "" {
			title = doc.Filename
		}
		parts = append(parts, fmt.Sprintf("Document: %s\n%s", title, doc.SummaryDescription))
	}
	return strings.Join(parts, "\n\n"), nil
}

func pipelinePrompt(prompt, combined string) string {
	return fmt.Sprintf("%s\n\nAnalyze the following summaries:\n%s", prompt, combined)
}

func formFileBytes(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
