package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/localized-blog-backend/errs"
	"github.com/rpupo63/localized-blog-backend/models"
	"gorm.io/gorm"
)

type ImageRepo struct {
	db *gorm.DB
}

func NewImageRepo(db *gorm.DB) *ImageRepo {
	return &ImageRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ImageRepo) GetDB() *gorm.DB {
	return r.db
}

// ListForBlogPost returns the images of a post in display order
func (r *ImageRepo) ListForBlogPost(ctx context.Context, blogPostID uuid.UUID) ([]models.Image, error) {
	return r.listForBlogPost(r.db.WithContext(ctx), blogPostID)
}

// FindForBlogPost returns the image with imageID when it belongs to the post
func (r *ImageRepo) FindForBlogPost(ctx context.Context, blogPostID, imageID uuid.UUID) (*models.Image, error) {
	var image models.Image
	err := r.db.WithContext(ctx).
		Where("blog_post_id = ? AND id = ?", blogPostID, imageID).
		Take(&image).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("image")
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepo) listForBlogPost(tx *gorm.DB, blogPostID uuid.UUID) ([]models.Image, error) {
	var images []models.Image
	err := tx.Where("blog_post_id = ?", blogPostID).
		Order("position ASC, created_at ASC").
		Find(&images).Error
	return images, err
}

// applyAttributes creates, updates or destroys the post's images from nested
// input. Ids that do not belong to the post are rejected.
func (r *ImageRepo) applyAttributes(tx *gorm.DB, blogPostID uuid.UUID, attrs []models.ImageAttributes) error {
	var fields []errs.FieldError
	for i, attr := range attrs {
		if attr.ID == nil && !attr.Destroy && strings.TrimSpace(attr.URL) == "" {
			fields = append(fields, errs.FieldError{Field: fmt.Sprintf("images[%d].url", i), Reason: models.ReasonBlank})
		}
	}
	if len(fields) > 0 {
		return errs.NewValidationError("blog post", fields)
	}

	for _, attr := range attrs {
		if attr.ID == nil {
			if attr.Destroy {
				continue
			}
			image := models.Image{BlogPostID: blogPostID}
			attr.Apply(&image)
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
			continue
		}

		var image models.Image
		err := tx.Where("blog_post_id = ? AND id = ?", blogPostID, *attr.ID).Take(&image).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewNotFound("image")
		}
		if err != nil {
			return err
		}

		if attr.Destroy {
			if err := tx.Delete(&image).Error; err != nil {
				return err
			}
			continue
		}

		attr.Apply(&image)
		if err := tx.Save(&image).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *ImageRepo) deleteForBlogPost(tx *gorm.DB, blogPostID uuid.UUID) error {
	return tx.Where("blog_post_id = ?", blogPostID).Delete(&models.Image{}).Error
}
