package api

import (
	"time"

	"github.com/rpupo63/localized-blog-backend/errs"
	"github.com/rpupo63/localized-blog-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogPostHandler      blogPostHandler
	adminBlogPostHandler adminBlogPostHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string            `json:"error" example:"Internal Server Error"`
	Status  string            `json:"status" example:"error"`
	Field   string            `json:"field,omitempty" example:"title"`
	Fields  []errs.FieldError `json:"fields,omitempty"`
	Details string            `json:"details,omitempty" example:"Additional error details"`
	Cause   string            `json:"cause,omitempty" example:"Underlying error cause"`
}

// BlogPostResponse is a blog post with its derived read-only attributes
type BlogPostResponse struct {
	*models.BlogPost
	PrettyTitle string `json:"prettyTitle"`
	Published   bool   `json:"published"`
}

func newBlogPostResponse(blogPost *models.BlogPost) BlogPostResponse {
	return BlogPostResponse{
		BlogPost:    blogPost,
		PrettyTitle: blogPost.PrettyTitle(),
		Published:   blogPost.IsPublished(),
	}
}

// BlogPostCollection represents multiple blog posts
type BlogPostCollection struct {
	BlogPosts []BlogPostResponse `json:"blogPosts"`
	Total     int                `json:"total"`
	Locale    string             `json:"locale,omitempty"`
}

func newBlogPostCollection(blogPosts []*models.BlogPost, loc string) BlogPostCollection {
	responses := make([]BlogPostResponse, 0, len(blogPosts))
	for _, blogPost := range blogPosts {
		responses = append(responses, newBlogPostResponse(blogPost))
	}
	return BlogPostCollection{
		BlogPosts: responses,
		Total:     len(responses),
		Locale:    loc,
	}
}

// BlogTagCollection is the result of a tag search
type BlogTagCollection struct {
	Tags []string `json:"tags"`
}

// BlogPostRequest is the payload accepted when creating or updating a post.
// On update it replaces every scalar column, so an empty Language means the
// default locale and a nil PublishedAt unpublishes. A nil Tags leaves the
// stored tags untouched.
type BlogPostRequest struct {
	Title       string                   `json:"title"`
	Body        string                   `json:"body"`
	Description string                   `json:"description"`
	PublishedAt *time.Time               `json:"publishedAt"`
	Language    string                   `json:"language"`
	Tags        *[]string                `json:"tags"`
	Images      []models.ImageAttributes `json:"images"`
}

func (req BlogPostRequest) toBlogPost() *models.BlogPost {
	blogPost := &models.BlogPost{
		Title:       req.Title,
		Body:        req.Body,
		Description: req.Description,
		PublishedAt: req.PublishedAt,
		Language:    req.Language,
	}
	if req.Tags != nil {
		blogPost.Tags = make([]models.BlogTag, 0, len(*req.Tags))
		for _, name := range *req.Tags {
			blogPost.Tags = append(blogPost.Tags, models.BlogTag{Name: name})
		}
	}
	return blogPost
}
