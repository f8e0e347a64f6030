package mongoviews

import (
	"fmt"
	"net/http"

	"github.com/genericviews/gin-generic-views/internal/naming"
	"github.com/genericviews/gin-generic-views/views"

	"github.com/gin-gonic/gin"
)

// DetailView renders a template with the context containing a single
// document retrieved from a mongo collection.
//
//	view := mongoviews.DetailView{
//		Lookup: mongoviews.Lookup{Collection: db.Collection("articles")},
//	}
//	r.GET("/articles/:id", views.Must(view.Handler()))
//
// The example renders "articles_detail.html" with the document available as
// "object" and "articles".
type DetailView struct {
	Lookup

	TemplateName   string
	TemplatePrefix string
	StatusCode     int
	ContextFunc    views.ContextFunc
}

func (v *DetailView) templateName() string {
	if v.TemplateName != "" {
		return v.TemplateName
	}
	return v.TemplatePrefix + naming.Snake(v.Collection.Name()) + "_detail.html"
}

// Handler compiles the view to a gin handler. A missing Collection is a
// configuration error.
func (v *DetailView) Handler() (gin.HandlerFunc, error) {
	if v.Collection == nil {
		return nil, fmt.Errorf("DetailView requires a definition of Collection")
	}

	view := views.MethodView{Get: v.get}
	return view.Handler(), nil
}

func (v *DetailView) get(c *gin.Context) {
	doc, err := v.Object(c)
	if err != nil {
		abortLookup(c, err)
		return
	}

	ctx := views.TemplateContext(c, v)
	ctx["object"] = doc
	ctx[v.contextObjectName()] = doc

	if v.ContextFunc != nil {
		if err := v.ContextFunc(c, ctx); err != nil {
			abortError(c, err)
			return
		}
	}

	status := v.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	c.HTML(status, v.templateName(), ctx)
}

// JSONDetailView renders a single document from a mongo collection as a
// JSON response with the document under "object".
type JSONDetailView struct {
	Lookup

	StatusCode  int
	ContextFunc views.ContextFunc
}

// Handler compiles the view to a gin handler. A missing Collection is a
// configuration error.
func (v *JSONDetailView) Handler() (gin.HandlerFunc, error) {
	if v.Collection == nil {
		return nil, fmt.Errorf("JSONDetailView requires a definition of Collection")
	}

	view := views.MethodView{Get: v.get}
	return view.Handler(), nil
}

func (v *JSONDetailView) get(c *gin.Context) {
	doc, err := v.Object(c)
	if err != nil {
		abortLookup(c, err)
		return
	}

	ctx := views.Context{"object": doc}
	if v.ContextFunc != nil {
		if err := v.ContextFunc(c, ctx); err != nil {
			abortError(c, err)
			return
		}
	}

	status := v.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, ctx)
}
