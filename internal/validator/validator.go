package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Jamolkhon5/brd/internal/models"
)

var (
	nameRegex  = regexp.MustCompile(`^[а-яА-Яa-zA-Z0-9\s\-_.]+$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const (
	MinNameLength        = 3
	MaxNameLength        = 100
	MinPasswordLength    = 8
	MaxDescriptionLength = 3000
)

// ValidateRegister проверяет данные регистрации пользователя
func ValidateRegister(req *models.RegisterRequest) error {
	if !emailRegex.MatchString(req.Email) {
		return fmt.Errorf("некорректный email: %s", req.Email)
	}
	if len(req.Password) < MinPasswordLength {
		return fmt.Errorf("пароль должен содержать минимум %d символов", MinPasswordLength)
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("имя пользователя обязательно")
	}
	return nil
}

// ValidateGroupName проверяет название группы
func ValidateGroupName(name string) error {
	return validateName(name)
}

// ValidateProject проверяет данные нового проекта
func ValidateProject(req *models.ProjectRequest) error {
	if err := validateName(req.Name); err != nil {
		return err
	}
	if len(strings.TrimSpace(req.Description)) > MaxDescriptionLength {
		return fmt.Errorf("описание не может быть длиннее %d символов", MaxDescriptionLength)
	}
	return nil
}

// ValidateUploadDescription проверяет описание загружаемого документа
func ValidateUploadDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("описание документа обязательно")
	}
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("описание не может быть длиннее %d символов", MaxDescriptionLength)
	}
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < MinNameLength {
		return fmt.Errorf("название должно содержать минимум %d символа", MinNameLength)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("название не может быть длиннее %d символов", MaxNameLength)
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("название может содержать только буквы, цифры, пробелы, тире и подчеркивания")
	}
	return nil
}
