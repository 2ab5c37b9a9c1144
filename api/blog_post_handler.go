package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/localized-blog-backend/database"
	"github.com/rpupo63/localized-blog-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// blogPostHandler serves the public, published-only read side of the blog
type blogPostHandler struct {
	responder     Responder
	logger        zerolog.Logger
	blogPostRepo  *database.BlogPostRepo
	defaultLocale string
}

func newBlogPostHandler(blogPostRepo *database.BlogPostRepo, defaultLocale string) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		blogPostRepo:  blogPostRepo,
		defaultLocale: defaultLocale,
	}
}

// getPublishedBlogPosts lists the published posts of the request locale
// @Summary List published blog posts
// @Description Published posts in the requested locale, most recently published first
// @Tags Blog Posts
// @Produce json
// @Param locale query string false "Locale code, overrides Accept-Language"
// @Success 200 {object} BlogPostCollection "Published blog posts"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /blog-posts [get]
func (h blogPostHandler) getPublishedBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loc := ctxGetLocale(r.Context(), h.defaultLocale)

		blogPosts, err := h.blogPostRepo.ListPublishedForLocale(r.Context(), loc)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog posts", "blog_posts", err))
			return
		}

		h.responder.WriteJSON(w, newBlogPostCollection(blogPosts, loc))
	}
}

// getPublishedBlogPost resolves a published post of the request locale by slug
// @Summary Get published blog post
// @Tags Blog Posts
// @Produce json
// @Param slug path string true "Blog post slug"
// @Success 200 {object} BlogPostResponse "Blog post"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /blog-post/{slug} [get]
func (h blogPostHandler) getPublishedBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("slug"))
			return
		}

		loc := ctxGetLocale(r.Context(), h.defaultLocale)
		blogPost, err := h.blogPostRepo.FindPublishedBySlug(r.Context(), loc, slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, newBlogPostResponse(blogPost))
	}
}

// getBlogTags returns tag names starting with the term query parameter
// @Summary Search blog tags
// @Tags Blog Tags
// @Produce json
// @Param term query string false "Case-sensitive prefix; empty returns every tag"
// @Success 200 {object} BlogTagCollection "Matching tag names"
// @Router /blog-tags [get]
func (h blogPostHandler) getBlogTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.blogPostRepo.FindTags(r.Context(), r.URL.Query().Get("term"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog tags", "blog_tags", err))
			return
		}

		h.responder.WriteJSON(w, BlogTagCollection{Tags: tags})
	}
}
