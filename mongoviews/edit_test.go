//go:build integration
// +build integration

package mongoviews

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/genericviews/gin-generic-views/views"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type articleForm struct {
	Title string `form:"title" bson:"title" binding:"required"`
	Slug  string `form:"slug" bson:"slug" binding:"required"`
}

func postArticleForm(engine *gin.Engine, target string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	engine.ServeHTTP(w, req)
	return w
}

func TestCreateView_RendersEmptyForm(t *testing.T) {
	collection := setupTestCollection(t)

	view := CreateView[articleForm]{Collection: collection, SuccessURL: "/articles"}
	engine := newArticleEngine(t)
	engine.Any("/articles/new", views.Must(view.Handler()))

	w := serveArticles(engine, http.MethodGet, "/articles/new")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "form: ", w.Body.String())
}

func TestCreateView_InsertsAndRedirects(t *testing.T) {
	collection := setupTestCollection(t)

	view := CreateView[articleForm]{
		Collection: collection,
		SuccessURL: "/articles/by-slug/{Slug}",
	}
	engine := newArticleEngine(t)
	engine.Any("/articles/new", views.Must(view.Handler()))

	w := postArticleForm(engine, "/articles/new", url.Values{
		"title": {"Hello"},
		"slug":  {"hello"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/articles/by-slug/hello", w.Header().Get("Location"))

	var doc bson.M
	err := collection.FindOne(context.Background(), bson.M{"slug": "hello"}).Decode(&doc)
	require.NoError(t, err)
	assert.Equal(t, "Hello", doc["title"])
}

func TestCreateView_GeneratedIDResolvesPlaceholder(t *testing.T) {
	collection := setupTestCollection(t)

	view := CreateView[articleForm]{
		Collection: collection,
		SuccessURL: "/articles/{ID}",
	}
	engine := newArticleEngine(t)
	engine.Any("/articles/new", views.Must(view.Handler()))

	w := postArticleForm(engine, "/articles/new", url.Values{
		"title": {"Hello"},
		"slug":  {"hello"},
	})
	assert.Equal(t, http.StatusFound, w.Code)

	var doc bson.M
	err := collection.FindOne(context.Background(), bson.M{"slug": "hello"}).Decode(&doc)
	require.NoError(t, err)
	oid := doc["_id"].(primitive.ObjectID)
	assert.Equal(t, "/articles/"+oid.Hex(), w.Header().Get("Location"))
}

func TestCreateView_InvalidFormRerendersWithErrors(t *testing.T) {
	collection := setupTestCollection(t)

	view := CreateView[articleForm]{Collection: collection, SuccessURL: "/articles"}
	engine := newArticleEngine(t)
	engine.Any("/articles/new", views.Must(view.Handler()))

	w := postArticleForm(engine, "/articles/new", url.Values{
		"title": {"Hello"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Slug:")

	count, err := collection.CountDocuments(context.Background(), bson.M{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateView_RequiresConfiguration(t *testing.T) {
	view := CreateView[articleForm]{SuccessURL: "/articles"}
	_, err := view.Handler()
	require.Error(t, err)

	collection := setupTestCollection(t)
	view = CreateView[articleForm]{Collection: collection}
	_, err = view.Handler()
	require.Error(t, err)
}

func TestUpdateView_PrefillsForm(t *testing.T) {
	collection := setupTestCollection(t)
	ids := seedArticles(t, collection, bson.M{"title": "Hello", "slug": "hello"})

	view := UpdateView[articleForm]{
		Lookup:     Lookup{Collection: collection},
		SuccessURL: "/articles/{ID}",
	}
	engine := newArticleEngine(t)
	engine.Any("/articles/:id/edit", views.Must(view.Handler()))

	w := serveArticles(engine, http.MethodGet, "/articles/"+ids[0].Hex()+"/edit")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "form: Hello", w.Body.String())
}

func TestUpdateView_UpdatesAndRedirects(t *testing.T) {
	collection := setupTestCollection(t)
	ids := seedArticles(t, collection, bson.M{"title": "Hello", "slug": "hello"})

	view := UpdateView[articleForm]{
		Lookup:     Lookup{Collection: collection},
		SuccessURL: "/articles/{ID}",
	}
	engine := newArticleEngine(t)
	engine.Any("/articles/:id/edit", views.Must(view.Handler()))

	w := postArticleForm(engine, "/articles/"+ids[0].Hex()+"/edit", url.Values{
		"title": {"Updated"},
		"slug":  {"updated"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/articles/"+ids[0].Hex(), w.Header().Get("Location"))

	var doc bson.M
	err := collection.FindOne(context.Background(), bson.M{"_id": ids[0]}).Decode(&doc)
	require.NoError(t, err)
	assert.Equal(t, "Updated", doc["title"])
	assert.Equal(t, "updated", doc["slug"])
}

func TestUpdateView_InvalidFormLeavesDocument(t *testing.T) {
	collection := setupTestCollection(t)
	ids := seedArticles(t, collection, bson.M{"title": "Hello", "slug": "hello"})

	view := UpdateView[articleForm]{
		Lookup:     Lookup{Collection: collection},
		SuccessURL: "/articles/{ID}",
	}
	engine := newArticleEngine(t)
	engine.Any("/articles/:id/edit", views.Must(view.Handler()))

	w := postArticleForm(engine, "/articles/"+ids[0].Hex()+"/edit", url.Values{
		"title": {"Updated"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Slug:")

	var doc bson.M
	err := collection.FindOne(context.Background(), bson.M{"_id": ids[0]}).Decode(&doc)
	require.NoError(t, err)
	assert.Equal(t, "Hello", doc["title"])
}

func TestUpdateView_MissingDocumentAnswers404(t *testing.T) {
	collection := setupTestCollection(t)

	view := UpdateView[articleForm]{
		Lookup:     Lookup{Collection: collection},
		SuccessURL: "/articles/{ID}",
	}
	engine := newArticleEngine(t)
	engine.Any("/articles/:id/edit", views.Must(view.Handler()))

	target := "/articles/" + primitive.NewObjectID().Hex() + "/edit"
	w := serveArticles(engine, http.MethodGet, target)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = postArticleForm(engine, target, url.Values{
		"title": {"Updated"},
		"slug":  {"updated"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
