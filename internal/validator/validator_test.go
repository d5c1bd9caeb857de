package validator

import (
	"strings"
	"testing"

	"github.com/Jamolkhon5/brd/internal/models"
)

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name    string
		req     models.RegisterRequest
		wantErr bool
	}{
		{name: "valid", req: models.RegisterRequest{Email: "user@example.com", Password: "longenough", Name: "User"}},
		{name: "bad email", req: models.RegisterRequest{Email: "not-an-email", Password: "longenough", Name: "User"}, wantErr: true},
		{name: "short password", req: models.RegisterRequest{Email: "user@example.com", Password: "short", Name: "User"}, wantErr: true},
		{name: "empty name", req: models.RegisterRequest{Email: "user@example.com", Password: "longenough", Name: "  "}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegister(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateGroupName(t *testing.T) {
	if err := ValidateGroupName("Команда BRD"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateGroupName("ab"); err == nil {
		t.Error("expected error for short name")
	}
	if err := ValidateGroupName("bad{name}"); err == nil {
		t.Error("expected error for forbidden characters")
	}
}

func TestValidateProject(t *testing.T) {
	ok := models.ProjectRequest{Name: "CRM rollout", Description: "Integration project"}
	if err := ValidateProject(&ok); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	long := models.ProjectRequest{Name: "CRM rollout", Description: strings.Repeat("x", MaxDescriptionLength+1)}
	if err := ValidateProject(&long); err == nil {
		t.Error("expected error for oversized description")
	}
}

func TestValidateUploadDescription(t *testing.T) {
	if err := ValidateUploadDescription("market research notes"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateUploadDescription("   "); err == nil {
		t.Error("expected error for empty description")
	}
}
