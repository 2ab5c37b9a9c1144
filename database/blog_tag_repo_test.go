package database_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/localized-blog-backend/errs"
	"github.com/rpupo63/localized-blog-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogTagRepoAddAndDelete(t *testing.T) {
	d, _ := newDatabase(t)
	ctx := context.Background()
	tags := d.BlogTagRepo()

	post := mustCreate(t, d.BlogPostRepo(), newPost("Tag target", withTags("existing")))

	require.NoError(t, tags.Add(ctx, &models.BlogTag{BlogPostID: post.ID, Name: "  added "}))

	stored, err := tags.ListForBlogPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "added", stored[0].Name)
	assert.Equal(t, "existing", stored[1].Name)

	found, err := d.BlogPostRepo().FindTags(ctx, "add")
	require.NoError(t, err)
	assert.Equal(t, []string{"added"}, found)

	require.NoError(t, tags.Delete(ctx, post.ID, "existing"))
	assert.True(t, errs.IsNotFound(tags.Delete(ctx, post.ID, "existing")))
	assert.True(t, errs.IsNotFound(tags.Delete(ctx, uuid.New(), "added")))

	stored, err = tags.ListForBlogPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestBlogTagRepoAddRejectsBlankName(t *testing.T) {
	d, db := newDatabase(t)
	post := mustCreate(t, d.BlogPostRepo(), newPost("Blank tag"))

	err := d.BlogTagRepo().Add(context.Background(), &models.BlogTag{BlogPostID: post.ID, Name: "   "})
	require.Error(t, err)
	assert.True(t, errs.HasFieldError(err, "name"))
	assert.Zero(t, countRows(t, db, &models.BlogTag{}))
	assert.Same(t, db, d.BlogTagRepo().GetDB())
	assert.Same(t, db, d.ImageRepo().GetDB())
}

func TestBlogTagRepoAddRejectsDuplicate(t *testing.T) {
	d, _ := newDatabase(t)
	post := mustCreate(t, d.BlogPostRepo(), newPost("Duplicate tag", withTags("go")))

	err := d.BlogTagRepo().Add(context.Background(), &models.BlogTag{BlogPostID: post.ID, Name: "go"})
	assert.Error(t, err)
}
