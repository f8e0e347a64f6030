//go:build integration
// +build integration

package gormviews

import (
	"html/template"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/genericviews/gin-generic-views/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Post is the model the view tests run against.
type Post struct {
	ID    string `gorm:"primaryKey" form:"-"`
	Title string `form:"title" binding:"required"`
	Slug  string `form:"slug" binding:"required"`
	Body  string `form:"body"`
}

// BeforeCreate assigns a fresh id when none is set.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

const postTemplates = `
{{define "post_detail.html"}}detail: {{.object.Title}}{{end}}
{{define "post_list.html"}}{{range .object_list}}{{.Title}};{{end}}{{if .is_paginated}} page {{.pagination.Page}} of {{.pagination.Pages}}{{end}}{{end}}
{{define "post_form.html"}}form: {{.form.Title}}{{range $field, $message := .errors}} {{$field}}: {{$message}}{{end}}{{end}}
{{define "post_delete.html"}}really delete {{.object.Title}}?{{end}}
`

// newPostEngine creates a gin engine with the post templates parsed from a
// single multi-define source.
func newPostEngine(t *testing.T) *gin.Engine {
	t.Helper()

	engine := gin.New()
	engine.SetHTMLTemplate(template.Must(template.New("test").Parse(postTemplates)))
	return engine
}

// newPostDB creates an in-memory database migrated for Post.
func newPostDB(t *testing.T) *gorm.DB {
	t.Helper()
	return SetupTestDB(t, config.SqliteDbType, &Post{})
}

// seedPosts persists the given posts and returns them with ids assigned.
func seedPosts(t *testing.T, db *gorm.DB, posts ...*Post) []*Post {
	t.Helper()

	for _, post := range posts {
		require.NoError(t, db.Create(post).Error)
	}
	return posts
}

// serveViews performs a request against the engine and returns the recorder.
func serveViews(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	engine.ServeHTTP(w, req)
	return w
}

// postViewsForm performs a urlencoded form submission against the engine.
func postViewsForm(engine *gin.Engine, method, target, form string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	engine.ServeHTTP(w, req)
	return w
}
