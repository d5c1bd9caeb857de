package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Jamolkhon5/brd/internal/models"
)

// ErrNotFound возвращается, когда запрошенная запись отсутствует
var ErrNotFound = errors.New("запись не найдена")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateUser(email, passwordHash, name string) (*models.User, error) {
	query := `
        INSERT INTO users (email, password_hash, name)
        VALUES ($1, $2, $3)
        RETURNING id, email, name, password_hash`

	var user models.User
	if err := r.db.Get(&user, query, email, passwordHash, name); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Get(&user, `SELECT id, email, name, password_hash FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByID(id int64) (*models.User, error) {
	var user models.User
	err := r.db.Get(&user, `SELECT id, email, name, password_hash FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateGroup создает группу и сразу добавляет создателя в участники
func (r *Repository) CreateGroup(name string, createdBy int64) (*models.Group, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var group models.Group
	if err := tx.Get(&group, `
        INSERT INTO groups (name, created_by)
        VALUES ($1, $2)
        RETURNING id, name, created_by`, name, createdBy); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(`INSERT INTO group_members (user_id, group_id) VALUES ($1, $2)`, createdBy, group.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *Repository) GetGroupByID(id int64) (*models.Group, error) {
	var group models.Group
	err := r.db.Get(&group, `SELECT id, name, created_by FROM groups WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *Repository) IsGroupMember(userID, groupID int64) (bool, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(1) FROM group_members WHERE user_id = $1 AND group_id = $2`, userID, groupID)
	return count > 0, err
}

func (r *Repository) AddGroupMember(userID, groupID int64) error {
	_, err := r.db.Exec(`INSERT INTO group_members (user_id, group_id) VALUES ($1, $2)`, userID, groupID)
	return err
}

func (r *Repository) UserGroups(userID int64) ([]models.Group, error) {
	query := `
        SELECT g.id, g.name, g.created_by
        FROM groups g
        JOIN group_members gm ON gm.group_id = g.id
        WHERE gm.user_id = $1
        ORDER BY g.id`

	groups := make([]models.Group, 0)
	err := r.db.Select(&groups, query, userID)
	return groups, err
}

func (r *Repository) CreateProject(name, description string, groupID, createdBy int64) (*models.Project, error) {
	query := `
        INSERT INTO projects (name, description, group_id, created_by)
        VALUES ($1, $2, $3, $4)
        RETURNING id, name, description, group_id, created_by, prompt, template`

	var project models.Project
	if err := r.db.Get(&project, query, name, description, groupID, createdBy); err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *Repository) GetProjectByID(id int64) (*models.Project, error) {
	var project models.Project
	err := r.db.Get(&project, `
        SELECT id, name, description, group_id, created_by, prompt, template
        FROM projects WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *Repository) ProjectsByGroup(groupID int64) ([]models.Project, error) {
	projects := make([]models.Project, 0)
	err := r.db.Select(&projects, `
        SELECT id, name, description, group_id, created_by, prompt, template
        FROM projects WHERE group_id = $1
        ORDER BY id`, groupID)
	return projects, err
}

func (r *Repository) DeleteProject(id int64) error {
	_, err := r.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	return err
}

// SaveBRDContext кэширует prompt и шаблон на проекте между двумя фазами
// генерации BRD
func (r *Repository) SaveBRDContext(projectID int64, prompt string, template []byte) error {
	if template == nil {
		template = []byte{}
	}
	_, err := r.db.Exec(`UPDATE projects SET prompt = $1, template = $2 WHERE id = $3`, prompt, template, projectID)
	return err
}

func (r *Repository) CreateDocument(doc *models.Document) (*models.Document, error) {
	query := `
        INSERT INTO documents (filename, path, description, summary_title, summary_description, project_id, uploaded_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, filename, path, description, summary_title, summary_description, project_id, uploaded_by`

	var saved models.Document
	err := r.db.Get(&saved, query,
		doc.Filename, doc.Path, doc.Description, doc.SummaryTitle, doc.SummaryDescription, doc.ProjectID, doc.UploadedBy)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *Repository) DocumentsByProject(projectID int64) ([]models.Document, error) {
	docs := make([]models.Document, 0)
	err := r.db.Select(&docs, `
        SELECT id, filename, path, description, summary_title, summary_description, project_id, uploaded_by
        FROM documents WHERE project_id = $1
        ORDER BY id`, projectID)
	return docs, err
}
