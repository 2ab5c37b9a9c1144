package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/localized-blog-backend/locale"
)

// setupPublicRoutes serves published posts of the request locale
func setupPublicRoutes(r chi.Router, handlers *routeHandlers, resolver *locale.Resolver) {
	r.Group(func(r chi.Router) {
		r.Use(localeMiddleware(resolver))

		r.Get("/blog-posts", handlers.blogPostHandler.getPublishedBlogPosts())
		r.Get("/blog-post/{slug}", handlers.blogPostHandler.getPublishedBlogPost())
		r.Get("/blog-tags", handlers.blogPostHandler.getBlogTags())
	})
}

// setupAdminRoutes sets up the unscoped management routes behind the backend password
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		r.Get("/blog-posts", handlers.adminBlogPostHandler.getAllBlogPosts())
		r.Get("/blog-post/{blogPostID}", handlers.adminBlogPostHandler.getBlogPost())
		r.Get("/blog-post/{blogPostID}/images/{imageID}", handlers.adminBlogPostHandler.getBlogPostImage())
		r.Post("/blog-post", handlers.adminBlogPostHandler.createBlogPost())
		r.Put("/blog-post/{blogPostID}", handlers.adminBlogPostHandler.updateBlogPost())
		r.Delete("/blog-post/{blogPostID}", handlers.adminBlogPostHandler.deleteBlogPost())
	})
}
