package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
)

// CategoryDTO is the category read model, optionally carrying its children.
type CategoryDTO struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description *string       `json:"description,omitempty"`
	ImageURL    *string       `json:"imageUrl,omitempty"`
	ParentID    *int64        `json:"parentId,omitempty"`
	Children    []CategoryDTO `json:"children,omitempty"`
}

// CreateInput is the payload for a new category.
type CreateInput struct {
	Name        string
	Slug        string
	Description *string
	ImageURL    *string
	ParentID    *int64
}

// Service exposes category tree reads and admin writes.
type Service interface {
	Tree(ctx context.Context) ([]CategoryDTO, error)
	GetBySlug(ctx context.Context, slug string) (*CategoryDTO, error)
	Create(ctx context.Context, input CreateInput) (*CategoryDTO, error)
	Delete(ctx context.Context, id int64) error
}

type categoryRepo interface {
	ListAll(ctx context.Context) ([]models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo categoryRepo
}

// NewService builds a category service backed by the provided repository.
func NewService(repo categoryRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo}, nil
}

// Tree returns root categories with one level of children nested.
func (s *service) Tree(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}

	childrenByParent := make(map[int64][]CategoryDTO)
	var roots []CategoryDTO
	for _, row := range rows {
		dto := toDTO(&row)
		if row.ParentID != nil {
			childrenByParent[*row.ParentID] = append(childrenByParent[*row.ParentID], dto)
			continue
		}
		roots = append(roots, dto)
	}
	for i := range roots {
		roots[i].Children = childrenByParent[roots[i].ID]
	}
	return roots, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*CategoryDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category slug is required")
	}
	category, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading category")
	}
	dto := toDTO(category)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category slug is required")
	}

	created, err := s.repo.Create(ctx, &models.Category{
		Name:        name,
		Slug:        slug,
		Description: input.Description,
		Image:       input.ImageURL,
		ParentID:    input.ParentID,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a category with that slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating category")
	}
	dto := toDTO(created)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting category")
	}
	return nil
}

func toDTO(c *models.Category) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.Image,
		ParentID:    c.ParentID,
	}
}
