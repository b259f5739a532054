package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/smith-matt-7272/recipe-app-api/internal/model"
)

// TagRepository defines tag persistence operations. Every query is
// scoped to a single owning user.
type TagRepository interface {
	FindOrCreateByName(ctx context.Context, userID uint, name string) (*model.Tag, error)
	FindByIDForUser(ctx context.Context, id, userID uint) (*model.Tag, error)
	ListForUser(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error)
	Update(ctx context.Context, tag *model.Tag) error
	Delete(ctx context.Context, tag *model.Tag) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// FindOrCreateByName looks up a tag by exact name for the given user,
// inserting one when absent. The BINARY cast keeps the match
// case-sensitive regardless of the column collation. Plain
// read-then-insert: concurrent identical calls may leave duplicate rows.
func (r *tagRepository) FindOrCreateByName(ctx context.Context, userID uint, name string) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = BINARY ?", userID, name).
		First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	tag = model.Tag{UserID: userID, Name: name}
	if err := r.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListForUser returns the user's tags ordered by name descending. With
// assignedOnly set, only tags referenced by at least one of the user's
// recipes are returned, each at most once.
func (r *tagRepository) ListForUser(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error) {
	q := r.db.WithContext(ctx).Model(&model.Tag{}).
		Where("tags.user_id = ?", userID)
	if assignedOnly {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").Distinct()
	}

	var tags []model.Tag
	if err := q.Order("tags.name DESC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) Update(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

// Delete removes the tag and any join rows pointing at it.
func (r *tagRepository) Delete(ctx context.Context, tag *model.Tag) error {
	if err := r.db.WithContext(ctx).
		Exec("DELETE FROM recipe_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(tag).Error
}
