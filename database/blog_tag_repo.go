package database

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/localized-blog-backend/errs"
	"github.com/rpupo63/localized-blog-backend/models"
	"gorm.io/gorm"
)

type BlogTagRepo struct {
	db *gorm.DB
}

func NewBlogTagRepo(db *gorm.DB) *BlogTagRepo {
	return &BlogTagRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *BlogTagRepo) GetDB() *gorm.DB {
	return r.db
}

// ListForBlogPost returns the tags of a post ordered by name
func (r *BlogTagRepo) ListForBlogPost(ctx context.Context, blogPostID uuid.UUID) ([]models.BlogTag, error) {
	return r.listForBlogPost(r.db.WithContext(ctx), blogPostID)
}

// Add inserts a new blog tag into the database
func (r *BlogTagRepo) Add(ctx context.Context, blogTag *models.BlogTag) error {
	blogTag.Name = strings.TrimSpace(blogTag.Name)
	if blogTag.Name == "" {
		return errs.NewValidationError("blog tag", []errs.FieldError{{Field: "name", Reason: models.ReasonBlank}})
	}
	return r.db.WithContext(ctx).Create(blogTag).Error
}

// Delete removes a blog tag from the database by blog post id and name
func (r *BlogTagRepo) Delete(ctx context.Context, blogPostID uuid.UUID, name string) error {
	result := r.db.WithContext(ctx).
		Where("blog_post_id = ? AND name = ?", blogPostID, name).
		Delete(&models.BlogTag{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("blog tag")
	}
	return nil
}

func (r *BlogTagRepo) listForBlogPost(tx *gorm.DB, blogPostID uuid.UUID) ([]models.BlogTag, error) {
	var blogTags []models.BlogTag
	err := tx.Where("blog_post_id = ?", blogPostID).Order("name ASC").Find(&blogTags).Error
	return blogTags, err
}

// replaceForBlogPost makes names the exact tag set of the post.
func (r *BlogTagRepo) replaceForBlogPost(tx *gorm.DB, blogPostID uuid.UUID, names []string) error {
	if err := r.deleteForBlogPost(tx, blogPostID); err != nil {
		return err
	}

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if err := tx.Create(&models.BlogTag{BlogPostID: blogPostID, Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *BlogTagRepo) deleteForBlogPost(tx *gorm.DB, blogPostID uuid.UUID) error {
	return tx.Where("blog_post_id = ?", blogPostID).Delete(&models.BlogTag{}).Error
}
