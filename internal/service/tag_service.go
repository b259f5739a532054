package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/smith-matt-7272/recipe-app-api/internal/errors"
	"github.com/smith-matt-7272/recipe-app-api/internal/model"
	"github.com/smith-matt-7272/recipe-app-api/internal/repository"
)

// TagService exposes list, rename and delete for the caller's tags.
// There is no direct create: tags come into existence through recipe
// writes only.
type TagService interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error)
	Rename(ctx context.Context, userID, id uint, name string) (*model.Tag, error)
	Delete(ctx context.Context, userID, id uint) error
}

type tagService struct {
	repo repository.TagRepository
}

// NewTagService creates a new tag service.
func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error) {
	return s.repo.ListForUser(ctx, userID, assignedOnly)
}

// Rename changes the tag's name. A tag owned by another user is
// reported as not found.
func (s *tagService) Rename(ctx context.Context, userID, id uint, name string) (*model.Tag, error) {
	tag, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	tag.Name = name
	if err := s.repo.Update(ctx, tag); err != nil {
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return tag, nil
}

// Delete removes the tag and detaches it from any recipes.
func (s *tagService) Delete(ctx context.Context, userID, id uint) error {
	tag, err := s.find(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tag); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

func (s *tagService) find(ctx context.Context, userID, id uint) (*model.Tag, error) {
	tag, err := s.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}
