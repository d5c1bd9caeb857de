package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	brdservice "github.com/Jamolkhon5/brd/internal/ai/brd/service"
	"github.com/Jamolkhon5/brd/internal/auth"
	"github.com/Jamolkhon5/brd/internal/models"
	"github.com/Jamolkhon5/brd/internal/repository"
	"github.com/Jamolkhon5/brd/internal/storage"
	"github.com/Jamolkhon5/brd/internal/validator"
)

type Handler struct {
	repo    *repository.Repository
	storage *storage.Local
	brd     *brdservice.Service
}

func NewHandler(repo *repository.Repository, st *storage.Local, brd *brdservice.Service) *Handler {
	return &Handler{
		repo:    repo,
		storage: st,
		brd:     brd,
	}
}

// RegisterRoutes регистрирует маршруты пользователей, групп, проектов и документов
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/users/register", h.Register)
	r.Post("/users/login", h.Login)
	r.Get("/users/me", h.Me)

	r.Post("/groups", h.CreateGroup)
	r.Post("/groups/{groupID}/join", h.JoinGroup)
	r.Get("/groups/my", h.MyGroups)

	r.Post("/projects/group/{groupID}", h.CreateProject)
	r.Get("/projects/group/{groupID}", h.ListProjects)
	r.Delete("/projects/{projectID}", h.DeleteProject)

	r.Post("/documents/upload", h.UploadDocument)
	r.Post("/documents/upload/batch", h.UploadDocumentsBatch)
	r.Get("/documents/project/{projectID}", h.ListDocuments)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validator.ValidateRegister(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.repo.GetUserByEmail(req.Email); err == nil {
		http.Error(w, "Email already registered", http.StatusBadRequest)
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	user, err := h.repo.CreateUser(req.Email, hash, req.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.repo.GetUserByEmail(req.Email)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && !auth.CheckPassword(user.PasswordHash, req.Password)) {
		http.Error(w, "Invalid credentials", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	token, err := auth.CreateAccessToken(user.ID)
	if err != nil {
		log.Printf("Ошибка выпуска токена: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.repo.GetUserByID(userID)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "User not found", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validator.ValidateGroupName(req.Name); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	group, err := h.repo.CreateGroup(req.Name, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(group)
}

func (h *Handler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	groupID, err := pathID(r, "groupID")
	if err != nil {
		http.Error(w, "Invalid group ID", http.StatusBadRequest)
		return
	}

	if _, err := h.repo.GetGroupByID(groupID); errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Group not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	member, err := h.repo.IsGroupMember(userID, groupID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if member {
		http.Error(w, "Already a member", http.StatusBadRequest)
		return
	}

	if err := h.repo.AddGroupMember(userID, groupID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Joined group successfully",
	})
}

func (h *Handler) MyGroups(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	groups, err := h.repo.UserGroups(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(groups)
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	groupID, err := pathID(r, "groupID")
	if err != nil {
		http.Error(w, "Invalid group ID", http.StatusBadRequest)
		return
	}

	if ok := h.requireMembership(w, userID, groupID); !ok {
		return
	}

	var req models.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validator.ValidateProject(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	project, err := h.repo.CreateProject(req.Name, req.Description, groupID, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(project)
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	groupID, err := pathID(r, "groupID")
	if err != nil {
		http.Error(w, "Invalid group ID", http.StatusBadRequest)
		return
	}

	if ok := h.requireMembership(w, userID, groupID); !ok {
		return
	}

	projects, err := h.repo.ProjectsByGroup(groupID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(projects)
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	projectID, err := pathID(r, "projectID")
	if err != nil {
		http.Error(w, "Invalid project ID", http.StatusBadRequest)
		return
	}

	project, err := h.repo.GetProjectByID(projectID)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if project.CreatedBy != userID {
		http.Error(w, "Not authorized to delete this project", http.StatusForbidden)
		return
	}

	if err := h.repo.DeleteProject(projectID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Project deleted successfully",
	})
}

// requireMembership пишет ответ об ошибке и возвращает false, если
// пользователь не состоит в группе
func (h *Handler) requireMembership(w http.ResponseWriter, userID, groupID int64) bool {
	if _, err := h.repo.GetGroupByID(groupID); errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Group not found", http.StatusNotFound)
		return false
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return false
	}

	member, err := h.repo.IsGroupMember(userID, groupID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return false
	}
	if !member {
		http.Error(w, "Not a member of this group", http.StatusForbidden)
		return false
	}
	return true
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
