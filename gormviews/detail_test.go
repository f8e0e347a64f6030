//go:build integration
// +build integration

package gormviews

import (
	"net/http"
	"testing"

	"github.com/genericviews/gin-generic-views/views"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDetailView_ByPrimaryKey(t *testing.T) {
	db := newPostDB(t)
	posts := seedPosts(t, db, &Post{Title: "Hello", Slug: "hello"})

	view := DetailView[Post]{Lookup: Lookup[Post]{DB: db}}
	engine := newPostEngine(t)
	engine.GET("/posts/:pk", views.Must(view.Handler()))

	w := serveViews(engine, http.MethodGet, "/posts/"+posts[0].ID)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "detail: Hello", w.Body.String())
}

func TestDetailView_BySlug(t *testing.T) {
	db := newPostDB(t)
	seedPosts(t, db, &Post{Title: "Hello", Slug: "hello"})

	view := DetailView[Post]{Lookup: Lookup[Post]{DB: db}}
	engine := newPostEngine(t)
	engine.GET("/posts/by-slug/:slug", views.Must(view.Handler()))

	w := serveViews(engine, http.MethodGet, "/posts/by-slug/hello")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "detail: Hello", w.Body.String())
}

func TestDetailView_NotFound(t *testing.T) {
	db := newPostDB(t)

	view := DetailView[Post]{Lookup: Lookup[Post]{DB: db}}
	engine := newPostEngine(t)
	engine.GET("/posts/:pk", views.Must(view.Handler()))

	w := serveViews(engine, http.MethodGet, "/posts/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDetailView_QueryPKAndSlug(t *testing.T) {
	db := newPostDB(t)
	posts := seedPosts(t, db,
		&Post{Title: "Hello", Slug: "hello"},
		&Post{Title: "Other", Slug: "other"},
	)

	view := DetailView[Post]{
		Lookup: Lookup[Post]{DB: db, QueryPKAndSlug: true},
	}
	engine := newPostEngine(t)
	engine.GET("/posts/:pk/:slug", views.Must(view.Handler()))

	w := serveViews(engine, http.MethodGet, "/posts/"+posts[0].ID+"/hello")
	assert.Equal(t, http.StatusOK, w.Code)

	// Matching pk but a slug belonging to another row finds nothing.
	w = serveViews(engine, http.MethodGet, "/posts/"+posts[0].ID+"/other")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDetailView_ScopedQuery(t *testing.T) {
	db := newPostDB(t)
	posts := seedPosts(t, db,
		&Post{Title: "Published", Slug: "published", Body: "yes"},
		&Post{Title: "Draft", Slug: "draft"},
	)

	view := DetailView[Post]{
		Lookup: Lookup[Post]{
			DB: db,
			Query: func(tx *gorm.DB) *gorm.DB {
				return tx.Where("body <> ''")
			},
		},
	}
	engine := newPostEngine(t)
	engine.GET("/posts/:pk", views.Must(view.Handler()))

	w := serveViews(engine, http.MethodGet, "/posts/"+posts[0].ID)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serveViews(engine, http.MethodGet, "/posts/"+posts[1].ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDetailView_ContextObjectName(t *testing.T) {
	db := newPostDB(t)
	posts := seedPosts(t, db, &Post{Title: "Hello", Slug: "hello"})

	var seen views.Context
	view := DetailView[Post]{
		Lookup: Lookup[Post]{DB: db},
		ContextFunc: func(_ *gin.Context, ctx views.Context) error {
			seen = ctx
			return nil
		},
	}
	engine := newPostEngine(t)
	engine.GET("/posts/:pk", views.Must(view.Handler()))

	w := serveViews(engine, http.MethodGet, "/posts/"+posts[0].ID)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Same(t, seen["object"], seen["post"])
	obj, ok := seen["object"].(*Post)
	require.True(t, ok)
	assert.Equal(t, "Hello", obj.Title)
}

func TestDetailView_RequiresDB(t *testing.T) {
	view := DetailView[Post]{}
	_, err := view.Handler()
	require.Error(t, err)
}
