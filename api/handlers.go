package api

import (
	"github.com/rpupo63/localized-blog-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, defaultLocale string) *routeHandlers {
	return &routeHandlers{
		blogPostHandler:      newBlogPostHandler(database.BlogPostRepo(), defaultLocale),
		adminBlogPostHandler: newAdminBlogPostHandler(database.BlogPostRepo()),
	}
}
