package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Image is owned by a BlogPost and removed together with it. Only the
// reference to the stored asset lives here.
type Image struct {
	ID         uuid.UUID         `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	BlogPostID uuid.UUID         `json:"blogPostId" db:"blog_post_id" gorm:"type:uuid;not null;index:idx_images_blog_post_id"`
	URL        string            `json:"url" db:"url" gorm:"type:text;not null" validate:"present"`
	Caption    *string           `json:"caption,omitempty" db:"caption" gorm:"type:text"`
	Position   int               `json:"position" db:"position" gorm:"type:integer;not null;default:0"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty" db:"metadata"`
	CreatedAt  time.Time         `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// ImageAttributes is the nested input for bulk-assigning a post's images.
// Without an ID a new image is created; with an ID the matching image is
// updated, or removed when Destroy is set.
type ImageAttributes struct {
	ID       *uuid.UUID        `json:"id,omitempty"`
	URL      string            `json:"url"`
	Caption  *string           `json:"caption,omitempty"`
	Position *int              `json:"position,omitempty"`
	Metadata datatypes.JSONMap `json:"metadata,omitempty"`
	Destroy  bool              `json:"_destroy,omitempty"`
}

// Apply copies the attributes onto image.
func (a ImageAttributes) Apply(image *Image) {
	if a.URL != "" {
		image.URL = a.URL
	}
	if a.Caption != nil {
		image.Caption = a.Caption
	}
	if a.Position != nil {
		image.Position = *a.Position
	}
	if a.Metadata != nil {
		image.Metadata = a.Metadata
	}
}
