package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

const MaxTitleLength = 72

// BlogPost represents a localized blog post. Slug is derived from Title on
// every save and stays NULL while the title is empty.
type BlogPost struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string     `json:"title" db:"title" gorm:"type:varchar(72);not null;uniqueIndex:idx_blog_posts_title" validate:"present,max=72"`
	Body        string     `json:"body" db:"body" gorm:"type:text;not null" validate:"present"`
	Description string     `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	Slug        *string    `json:"slug" db:"slug" gorm:"type:varchar(255);uniqueIndex:idx_blog_posts_slug"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" db:"published_at" gorm:"type:timestamp;index:idx_blog_posts_published_at"`
	Language    string     `json:"language" db:"language" gorm:"type:varchar(35);not null;index:idx_blog_posts_language" validate:"locale"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null"`
	Images      []Image    `json:"images,omitempty" gorm:"foreignKey:BlogPostID;references:ID" validate:"dive"`
	Tags        []BlogTag  `json:"tags,omitempty" gorm:"foreignKey:BlogPostID;references:ID" validate:"dive"`
}

func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeSave derives the slug right before the row is written.
func (p *BlogPost) BeforeSave(tx *gorm.DB) error {
	p.Slug = Slugify(p.Title)
	return nil
}

// IsPublished reports whether the post has a publication date.
func (p BlogPost) IsPublished() bool {
	return p.PublishedAt != nil
}

// ToParam returns the public URL segment of the post.
func (p BlogPost) ToParam() string {
	if p.Slug == nil {
		return ""
	}
	return *p.Slug
}

// PrettyTitle capitalizes every word of the title regardless of how it was stored.
func (p BlogPost) PrettyTitle() string {
	return cases.Title(language.Und).String(p.Title)
}

// FindImageBy returns the first loaded image with the given id, or nil.
func (p BlogPost) FindImageBy(id uuid.UUID) *Image {
	for i := range p.Images {
		if p.Images[i].ID == id {
			return &p.Images[i]
		}
	}
	return nil
}

// TagNames lists the names of the loaded tags.
func (p BlogPost) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		names = append(names, tag.Name)
	}
	return names
}
