package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/localized-blog-backend/database"
	"github.com/rpupo63/localized-blog-backend/errs"
	"github.com/rpupo63/localized-blog-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// adminBlogPostHandler manages posts regardless of publication state or locale
type adminBlogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
}

func newAdminBlogPostHandler(blogPostRepo *database.BlogPostRepo) adminBlogPostHandler {
	logger := log.With().Str("handlerName", "adminBlogPostHandler").Logger()

	return adminBlogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
	}
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewMissingRequiredFieldError(name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(name, "must be a UUID")
	}
	return id, nil
}

// getAllBlogPosts lists every post, newest first
// @Summary List all blog posts
// @Description Every post, published or not and in any locale, newest first
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} BlogPostCollection "All blog posts"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /admin/blog-posts [get]
func (h adminBlogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPosts, err := h.blogPostRepo.UnscopedDesc(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog posts", "blog_posts", err))
			return
		}

		h.responder.WriteJSON(w, newBlogPostCollection(blogPosts, ""))
	}
}

// getBlogPost retrieves any post by ID
// @Summary Get blog post
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} BlogPostResponse "Blog post"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blogPostID"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /admin/blog-post/{blogPostID} [get]
func (h adminBlogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := uuidParam(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost, err := h.blogPostRepo.UnscopedFindBy(r.Context(), database.Criteria{"id": blogPostID})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, newBlogPostResponse(blogPost))
	}
}

// getBlogPostImage retrieves one image of a post
// @Summary Get blog post image
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Param imageID path string true "Image ID" format(uuid)
// @Success 200 {object} models.Image "Image"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post or image not found"
// @Router /admin/blog-post/{blogPostID}/images/{imageID} [get]
func (h adminBlogPostHandler) getBlogPostImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := uuidParam(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		imageID, err := uuidParam(r, "imageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost, err := h.blogPostRepo.FindByID(r.Context(), blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}

		image := blogPost.FindImageBy(imageID)
		if image == nil {
			h.responder.WriteError(w, errs.NewNotFound("image"))
			return
		}

		h.responder.WriteJSON(w, image)
	}
}

// createBlogPost creates a post with its images and tags
// @Summary Create blog post
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param blogPost body BlogPostRequest true "Blog post data"
// @Success 201 {object} BlogPostResponse "Created blog post"
// @Failure 400 {object} ErrorResponse "Bad Request - Malformed payload"
// @Failure 422 {object} ErrorResponse "Unprocessable Entity - Validation failed"
// @Router /admin/blog-post [post]
func (h adminBlogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BlogPostRequest
		if err := decodeJSON(w, r, "blog post", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost := req.toBlogPost()
		for i, attrs := range req.Images {
			if attrs.ID != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError(fmt.Sprintf("images[%d].id", i), "cannot be set on a new blog post"))
				return
			}
			if attrs.Destroy {
				continue
			}
			var image models.Image
			attrs.Apply(&image)
			blogPost.Images = append(blogPost.Images, image)
		}

		if err := h.blogPostRepo.Create(r.Context(), blogPost); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create blog post", "blog_post", err))
			return
		}

		h.logger.Info().Str("blogPostID", blogPost.ID.String()).Str("slug", blogPost.ToParam()).Msg("blog post created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, newBlogPostResponse(blogPost))
	}
}

// updateBlogPost replaces a post's fields and applies nested image attributes
// @Summary Update blog post
// @Description The body replaces the post: an omitted language falls back to the default locale and an omitted publishedAt unpublishes it.
// @Description Tags are replaced only when tags is present. Images without an id are created, with an id updated, and removed when _destroy is set
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Param blogPost body BlogPostRequest true "Updated blog post data"
// @Success 200 {object} BlogPostResponse "Updated blog post"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post or image not found"
// @Failure 422 {object} ErrorResponse "Unprocessable Entity - Validation failed"
// @Router /admin/blog-post/{blogPostID} [put]
func (h adminBlogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := uuidParam(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req BlogPostRequest
		if err := decodeJSON(w, r, "blog post", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost := req.toBlogPost()
		blogPost.ID = blogPostID

		if err := h.blogPostRepo.Update(r.Context(), blogPost, req.Images); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update blog post", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, newBlogPostResponse(blogPost))
	}
}

// deleteBlogPost deletes a post with its images and tags
// @Summary Delete blog post
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /admin/blog-post/{blogPostID} [delete]
func (h adminBlogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := uuidParam(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blogPostRepo.Delete(r.Context(), blogPostID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete blog post", "blog_post", err))
			return
		}

		h.logger.Info().Str("blogPostID", blogPostID.String()).Msg("blog post deleted")
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "blog post deleted successfully",
		})
	}
}
