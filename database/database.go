package database

import (
	"github.com/rpupo63/localized-blog-backend/locale"
	"github.com/rpupo63/localized-blog-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db           *gorm.DB
	blogPostRepo *BlogPostRepo
	blogTagRepo  *BlogTagRepo
	imageRepo    *ImageRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance.
// Posts are stored only in the locales the resolver supports.
func New(db *gorm.DB, locales *locale.Resolver) Database {
	imageRepo := NewImageRepo(db)
	blogTagRepo := NewBlogTagRepo(db)

	return Database{
		db:           db,
		blogPostRepo: NewBlogPostRepo(db, imageRepo, blogTagRepo, locales),
		blogTagRepo:  blogTagRepo,
		imageRepo:    imageRepo,
	}
}

// Accessor methods for each repository

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) BlogTagRepo() *BlogTagRepo {
	return d.blogTagRepo
}

func (d Database) ImageRepo() *ImageRepo {
	return d.imageRepo
}

// Migrate creates or updates the tables of every entity.
func (d Database) Migrate() error {
	return models.AutoMigrate(d.db)
}
