package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/repository"
	apperrors "github.com/spec-kit/complaint-desk/pkg/util/errorutil"
)

// DepartmentService manages forwarding targets.
type DepartmentService struct {
	departments repository.DepartmentRepository
	complaints  repository.ComplaintRepository
	validate    *validator.Validate
	logger      *zap.Logger
}

// DepartmentDependencies bundles repositories for the department service.
type DepartmentDependencies struct {
	DepartmentRepo repository.DepartmentRepository
	ComplaintRepo  repository.ComplaintRepository
	Logger         *zap.Logger
}

// NewDepartmentService constructs the service.
func NewDepartmentService(deps DepartmentDependencies) *DepartmentService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepartmentService{
		departments: deps.DepartmentRepo,
		complaints:  deps.ComplaintRepo,
		validate:    validator.New(),
		logger:      logger,
	}
}

// List returns departments ordered by name.
func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.departments.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return depts, nil
}

// Get returns one department.
func (s *DepartmentService) Get(ctx context.Context, id int64) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "department", map[string]any{"department_id": id})
	}
	return dept, nil
}

// Add creates a department. Names are unique.
func (s *DepartmentService) Add(ctx context.Context, name, email, description string) (*domain.Department, error) {
	dept := &domain.Department{
		Name:        strings.TrimSpace(name),
		Email:       strings.TrimSpace(email),
		Description: strings.TrimSpace(description),
	}
	details := map[string]any{}
	if dept.Name == "" {
		details["name"] = "required"
	}
	if err := s.validate.Var(dept.Email, "required,email"); err != nil {
		details["email"] = "a valid email address is required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid department", details)
	}

	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, translate(err, "department", map[string]any{"name": dept.Name})
	}
	s.logger.Info("department created", zap.Int64("department_id", dept.ID), zap.String("name", dept.Name))
	return dept, nil
}

// Delete removes a department that no complaint references.
func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	count, err := s.complaints.CountByDepartment(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("department has assigned complaints",
			map[string]any{"department_id": id, "assigned_complaints": count})
	}
	if err := s.departments.Delete(ctx, id); err != nil {
		return translate(err, "department", map[string]any{"department_id": id})
	}
	s.logger.Info("department deleted", zap.Int64("department_id", id))
	return nil
}
