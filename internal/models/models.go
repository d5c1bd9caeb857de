package models

type User struct {
	ID           int64  `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	Name         string `json:"name" db:"name"`
	PasswordHash string `json:"-" db:"password_hash"`
}

type Group struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	CreatedBy int64  `json:"created_by" db:"created_by"`
}

// Project хранит prompt и template, переданные на первой фазе генерации
// BRD, чтобы вторая фаза могла не загружать шаблон повторно
type Project struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	GroupID     int64  `json:"group_id" db:"group_id"`
	CreatedBy   int64  `json:"created_by" db:"created_by"`
	Prompt      string `json:"-" db:"prompt"`
	Template    []byte `json:"-" db:"template"`
}

type Document struct {
	ID                 int64  `json:"id" db:"id"`
	Filename           string `json:"filename" db:"filename"`
	Path               string `json:"path" db:"path"`
	Description        string `json:"description" db:"description"`
	SummaryTitle       string `json:"summary_title" db:"summary_title"`
	SummaryDescription string `json:"summary_description" db:"summary_description"`
	ProjectID          int64  `json:"project_id" db:"project_id"`
	UploadedBy         int64  `json:"uploaded_by" db:"uploaded_by"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type GroupRequest struct {
	Name string `json:"name"`
}

type ProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
