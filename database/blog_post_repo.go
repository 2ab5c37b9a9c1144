package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/localized-blog-backend/errs"
	"github.com/rpupo63/localized-blog-backend/locale"
	"github.com/rpupo63/localized-blog-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Criteria maps blog_posts column names to the values a lookup must match.
type Criteria map[string]interface{}

type BlogPostRepo struct {
	db          *gorm.DB
	imageRepo   *ImageRepo
	blogTagRepo *BlogTagRepo
	locales     *locale.Resolver
}

// NewBlogPostRepo builds the repository. Posts are saved only in a language
// locales supports; an empty language becomes its default.
func NewBlogPostRepo(db *gorm.DB, imageRepo *ImageRepo, blogTagRepo *BlogTagRepo, locales *locale.Resolver) *BlogPostRepo {
	return &BlogPostRepo{
		db:          db,
		imageRepo:   imageRepo,
		blogTagRepo: blogTagRepo,
		locales:     locales,
	}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *BlogPostRepo) GetDB() *gorm.DB {
	return r.db
}

func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		})
}

// ListPublishedForLocale returns the posts readers of loc may see: published
// ones in that language, most recently published first.
func (r *BlogPostRepo) ListPublishedForLocale(ctx context.Context, loc string) ([]*models.BlogPost, error) {
	normalized, err := locale.Normalize(loc)
	if err != nil {
		return nil, errs.NewInvalidFieldError("locale", err.Error())
	}

	var blogPosts []*models.BlogPost
	err = withAssociations(r.db.WithContext(ctx)).
		Where("published_at IS NOT NULL").
		Where("language = ?", normalized).
		Order("published_at DESC").
		Order("created_at DESC").
		Find(&blogPosts).Error
	return blogPosts, err
}

// FindPublishedBySlug resolves a public URL segment under the same filters as
// ListPublishedForLocale.
func (r *BlogPostRepo) FindPublishedBySlug(ctx context.Context, loc, slug string) (*models.BlogPost, error) {
	normalized, err := locale.Normalize(loc)
	if err != nil {
		return nil, errs.NewInvalidFieldError("locale", err.Error())
	}

	var blogPost models.BlogPost
	err = withAssociations(r.db.WithContext(ctx)).
		Where("published_at IS NOT NULL").
		Where("language = ?", normalized).
		Where("slug = ?", slug).
		Order("published_at DESC").
		Take(&blogPost).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("blog post")
	}
	if err != nil {
		return nil, err
	}
	return &blogPost, nil
}

// UnscopedDesc returns every post, published or not and in any language,
// newest first.
func (r *BlogPostRepo) UnscopedDesc(ctx context.Context) ([]*models.BlogPost, error) {
	var blogPosts []*models.BlogPost
	err := withAssociations(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&blogPosts).Error
	return blogPosts, err
}

// UnscopedFindBy returns the single post matching criteria regardless of
// publication state or language. A missing post is an error, never a nil result.
func (r *BlogPostRepo) UnscopedFindBy(ctx context.Context, criteria Criteria) (*models.BlogPost, error) {
	if len(criteria) == 0 {
		return nil, errs.NewBadRequestError("lookup criteria cannot be empty")
	}

	columns, err := r.columns()
	if err != nil {
		return nil, err
	}
	for column := range criteria {
		if !columns[column] {
			return nil, errs.NewInvalidFieldError(column, "unknown blog post column")
		}
	}

	var blogPost models.BlogPost
	err = withAssociations(r.db.WithContext(ctx)).
		Where(map[string]interface{}(criteria)).
		Take(&blogPost).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("blog post")
	}
	if err != nil {
		return nil, err
	}
	return &blogPost, nil
}

// FindByID returns a blog post by its ID, published or not
func (r *BlogPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	return r.UnscopedFindBy(ctx, Criteria{"id": id})
}

func (r *BlogPostRepo) columns() (map[string]bool, error) {
	stmt := &gorm.Statement{DB: r.db}
	if err := stmt.Parse(&models.BlogPost{}); err != nil {
		return nil, fmt.Errorf("parsing blog post schema: %w", err)
	}

	columns := make(map[string]bool, len(stmt.Schema.DBNames))
	for _, name := range stmt.Schema.DBNames {
		columns[name] = true
	}
	return columns, nil
}

// FindTags returns the distinct tag names across all posts. A non-empty term
// keeps only names starting with it, compared case-sensitively.
func (r *BlogPostRepo) FindTags(ctx context.Context, term string) ([]string, error) {
	query := r.db.WithContext(ctx).
		Model(&models.BlogTag{}).
		Joins("JOIN blog_posts ON blog_posts.id = blog_tags.blog_post_id")
	if term != "" {
		query = query.Where("blog_tags.name LIKE ? ESCAPE '\\'", escapeLike(term)+"%")
	}

	var names []string
	if err := query.Distinct().Pluck("blog_tags.name", &names).Error; err != nil {
		return nil, err
	}

	// LIKE folds case on some dialects
	tags := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] || !strings.HasPrefix(name, term) {
			continue
		}
		seen[name] = true
		tags = append(tags, name)
	}
	sort.Strings(tags)
	return tags, nil
}

func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}

// Create validates the post and inserts it together with its nested images
// and tags.
func (r *BlogPostRepo) Create(ctx context.Context, blogPost *models.BlogPost) error {
	r.prepare(blogPost)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.validate(tx, blogPost); err != nil {
			return err
		}
		return tx.Create(blogPost).Error
	})
}

// Update validates and saves the post's own columns, then applies the nested
// image attributes. Tags are replaced when blogPost.Tags is non-nil.
func (r *BlogPostRepo) Update(ctx context.Context, blogPost *models.BlogPost, images []models.ImageAttributes) error {
	r.prepare(blogPost)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.BlogPost
		err := tx.Select("id", "created_at").Take(&existing, "id = ?", blogPost.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewNotFound("blog post")
		}
		if err != nil {
			return err
		}
		blogPost.CreatedAt = existing.CreatedAt

		tags := blogPost.Tags
		blogPost.Images = nil
		if err := r.validate(tx, blogPost); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Save(blogPost).Error; err != nil {
			return err
		}
		if err := r.imageRepo.applyAttributes(tx, blogPost.ID, images); err != nil {
			return err
		}
		if tags != nil {
			if err := r.blogTagRepo.replaceForBlogPost(tx, blogPost.ID, blogPost.TagNames()); err != nil {
				return err
			}
		}

		blogPost.Images, err = r.imageRepo.listForBlogPost(tx, blogPost.ID)
		if err != nil {
			return err
		}
		blogPost.Tags, err = r.blogTagRepo.listForBlogPost(tx, blogPost.ID)
		return err
	})
}

// Delete removes the post's images, then its tags, then the post itself, in
// one transaction.
func (r *BlogPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.imageRepo.deleteForBlogPost(tx, id); err != nil {
			return err
		}
		if err := r.blogTagRepo.deleteForBlogPost(tx, id); err != nil {
			return err
		}

		result := tx.Delete(&models.BlogPost{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewNotFound("blog post")
		}
		return nil
	})
}

// prepare defaults the language and normalizes what the store compares on.
func (r *BlogPostRepo) prepare(blogPost *models.BlogPost) {
	if strings.TrimSpace(blogPost.Language) == "" {
		blogPost.Language = r.locales.Default()
	}
	if normalized, err := locale.Normalize(blogPost.Language); err == nil {
		blogPost.Language = normalized
	}
	if blogPost.Tags == nil {
		return
	}
	seen := make(map[string]bool, len(blogPost.Tags))
	tags := make([]models.BlogTag, 0, len(blogPost.Tags))
	for _, tag := range blogPost.Tags {
		tag.Name = strings.TrimSpace(tag.Name)
		if tag.Name != "" && seen[tag.Name] {
			continue
		}
		seen[tag.Name] = true
		tags = append(tags, tag)
	}
	blogPost.Tags = tags
}

// validate runs the field rules, checks the language against the supported
// locales and checks title and slug against every other post.
func (r *BlogPostRepo) validate(tx *gorm.DB, blogPost *models.BlogPost) error {
	var fields []errs.FieldError
	if err := blogPost.Validate(); err != nil {
		if !errs.IsValidationError(err) {
			return err
		}
		fields = errs.FieldErrors(err)
	}

	if locale.IsValid(blogPost.Language) && !r.locales.IsSupported(blogPost.Language) {
		fields = append(fields, errs.FieldError{Field: "language", Reason: models.ReasonUnsupportedLocale})
	}

	if strings.TrimSpace(blogPost.Title) != "" {
		taken, err := r.taken(tx, blogPost, "title", blogPost.Title)
		if err != nil {
			return err
		}
		if taken {
			fields = append(fields, errs.FieldError{Field: "title", Reason: models.ReasonTaken})
		}
	}

	// BeforeSave has not run yet
	if slug := models.Slugify(blogPost.Title); slug != nil {
		taken, err := r.taken(tx, blogPost, "slug", *slug)
		if err != nil {
			return err
		}
		if taken {
			fields = append(fields, errs.FieldError{Field: "slug", Reason: models.ReasonTaken})
		}
	}

	if len(fields) > 0 {
		return errs.NewValidationError("blog post", fields)
	}
	return nil
}

// taken reports whether another post already stores value in column.
func (r *BlogPostRepo) taken(tx *gorm.DB, blogPost *models.BlogPost, column, value string) (bool, error) {
	var count int64
	err := tx.Model(&models.BlogPost{}).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Where("id <> ?", blogPost.ID).
		Count(&count).Error
	return count > 0, err
}
