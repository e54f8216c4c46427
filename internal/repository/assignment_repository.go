package repository

import (
	"context"

	"github.com/yukikurage/resource-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAssignmentRepository is a GORM implementation of AssignmentRepository
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Create creates a new assignment
func (r *GormAssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	return translateGormError(r.db.WithContext(ctx).Omit(clause.Associations).Create(assignment).Error)
}

// FindByID finds an assignment by ID
func (r *GormAssignmentRepository) FindByID(ctx context.Context, id string, expand bool) (*models.Assignment, error) {
	var assignment models.Assignment
	query := r.db.WithContext(ctx)
	if expand {
		query = withReferences(query)
	}
	if err := query.Where("id = ?", id).First(&assignment).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &assignment, nil
}

// List retrieves assignments with filtering
func (r *GormAssignmentRepository) List(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, error) {
	query := r.db.WithContext(ctx).Model(&models.Assignment{})

	if filter.EngineerID != "" {
		query = query.Where("engineer_id = ?", filter.EngineerID)
	}
	if filter.ProjectID != "" {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Expand {
		query = withReferences(query)
	}

	var assignments []models.Assignment
	if err := query.Order("created_at ASC").Find(&assignments).Error; err != nil {
		return nil, translateGormError(err)
	}
	return assignments, nil
}

// Update updates an assignment
func (r *GormAssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	result := r.db.WithContext(ctx).
		Model(assignment).
		Select("*").
		Omit("created_at", clause.Associations).
		Updates(assignment)
	if result.Error != nil {
		return translateGormError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes an assignment
func (r *GormAssignmentRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Assignment{})
	if result.Error != nil {
		return translateGormError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// withReferences preloads the engineer summary and project summary columns.
func withReferences(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Engineer", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "skills")
		}).
		Preload("Project", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name")
		})
}
