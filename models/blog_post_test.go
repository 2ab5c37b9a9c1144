package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/localized-blog-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPost() *BlogPost {
	publishedAt := time.Now().Add(-time.Hour)
	return &BlogPost{
		Title:       "A cool title",
		Body:        "Some body",
		Description: "Short description",
		PublishedAt: &publishedAt,
		Language:    "en",
	}
}

func TestBlogPostIsPublished(t *testing.T) {
	post := validPost()
	assert.True(t, post.IsPublished())

	post.PublishedAt = nil
	assert.False(t, post.IsPublished())
}

func TestBlogPostToParam(t *testing.T) {
	post := validPost()
	assert.Equal(t, "", post.ToParam())

	require.NoError(t, post.BeforeSave(nil))
	assert.Equal(t, "a-cool-title", post.ToParam())
}

func TestBlogPostBeforeSave(t *testing.T) {
	post := &BlogPost{Title: "Foo bar"}
	require.NoError(t, post.BeforeSave(nil))
	require.NotNil(t, post.Slug)
	assert.Equal(t, "foo-bar", *post.Slug)

	post.Title = "Foo baz"
	require.NoError(t, post.BeforeSave(nil))
	assert.Equal(t, "foo-baz", *post.Slug)

	post.Title = ""
	require.NoError(t, post.BeforeSave(nil))
	assert.Nil(t, post.Slug)
}

func TestBlogPostBeforeCreateAssignsID(t *testing.T) {
	post := &BlogPost{}
	require.NoError(t, post.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, post.ID)

	id := uuid.New()
	post = &BlogPost{ID: id}
	require.NoError(t, post.BeforeCreate(nil))
	assert.Equal(t, id, post.ID)
}

func TestBlogPostPrettyTitle(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"a cool title", "A Cool Title"},
		{"A COOL TITLE", "A Cool Title"},
		{"a Cool tItle", "A Cool Title"},
		{"", ""},
	}

	for _, tt := range tests {
		post := BlogPost{Title: tt.title}
		assert.Equal(t, tt.expected, post.PrettyTitle())
	}
}

func TestBlogPostFindImageBy(t *testing.T) {
	first := Image{ID: uuid.New(), URL: "https://cdn.example.com/1.png"}
	second := Image{ID: uuid.New(), URL: "https://cdn.example.com/2.png"}
	post := BlogPost{Images: []Image{first, second}}

	found := post.FindImageBy(second.ID)
	require.NotNil(t, found)
	assert.Equal(t, second.URL, found.URL)

	assert.Nil(t, post.FindImageBy(uuid.New()))
	assert.Nil(t, BlogPost{}.FindImageBy(first.ID))
}

func TestBlogPostTagNames(t *testing.T) {
	post := BlogPost{Tags: []BlogTag{{Name: "go"}, {Name: "gorm"}}}
	assert.Equal(t, []string{"go", "gorm"}, post.TagNames())
	assert.Empty(t, BlogPost{}.TagNames())
}

func TestBlogPostValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *BlogPost)
		fields []string
	}{
		{name: "valid", mutate: func(p *BlogPost) {}},
		{name: "valid unpublished without description", mutate: func(p *BlogPost) {
			p.PublishedAt = nil
			p.Description = ""
		}},
		{name: "title missing", mutate: func(p *BlogPost) { p.Title = "" }, fields: []string{"title"}},
		{name: "title blank", mutate: func(p *BlogPost) { p.Title = "   " }, fields: []string{"title"}},
		{name: "title at limit", mutate: func(p *BlogPost) { p.Title = strings.Repeat("a", 72) }},
		{name: "title too long", mutate: func(p *BlogPost) { p.Title = strings.Repeat("a", 73) }, fields: []string{"title"}},
		{name: "title length counts characters", mutate: func(p *BlogPost) { p.Title = strings.Repeat("ș", 72) }},
		{name: "body missing", mutate: func(p *BlogPost) { p.Body = "" }, fields: []string{"body"}},
		{name: "published without description", mutate: func(p *BlogPost) { p.Description = "" }, fields: []string{"description"}},
		{name: "published with blank description", mutate: func(p *BlogPost) { p.Description = " \n" }, fields: []string{"description"}},
		{name: "invalid language", mutate: func(p *BlogPost) { p.Language = "not a locale" }, fields: []string{"language"}},
		{name: "image without url", mutate: func(p *BlogPost) { p.Images = []Image{{URL: "ok"}, {URL: ""}} }, fields: []string{"images[1].url"}},
		{name: "blank tag", mutate: func(p *BlogPost) { p.Tags = []BlogTag{{Name: " "}} }, fields: []string{"tags[0].name"}},
		{name: "everything missing", mutate: func(p *BlogPost) {
			*p = BlogPost{Language: "en"}
		}, fields: []string{"title", "body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := validPost()
			tt.mutate(post)

			err := post.Validate()
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errs.IsValidationError(err))
			got := make([]string, 0)
			for _, fe := range errs.FieldErrors(err) {
				got = append(got, fe.Field)
			}
			assert.ElementsMatch(t, tt.fields, got)
		})
	}
}

func TestBlogPostValidateReasons(t *testing.T) {
	post := validPost()
	post.Title = strings.Repeat("x", 73)
	post.Body = ""

	fields := errs.FieldErrors(post.Validate())
	require.Len(t, fields, 2)
	assert.Contains(t, fields, errs.FieldError{Field: "title", Reason: "is too long (maximum is 72 characters)"})
	assert.Contains(t, fields, errs.FieldError{Field: "body", Reason: ReasonBlank})
}

func TestImageAttributesApply(t *testing.T) {
	caption := "new caption"
	position := 3
	image := Image{URL: "https://cdn.example.com/a.png"}

	ImageAttributes{Caption: &caption, Position: &position}.Apply(&image)
	assert.Equal(t, "https://cdn.example.com/a.png", image.URL)
	assert.Equal(t, &caption, image.Caption)
	assert.Equal(t, 3, image.Position)

	ImageAttributes{URL: "https://cdn.example.com/b.png"}.Apply(&image)
	assert.Equal(t, "https://cdn.example.com/b.png", image.URL)
}
