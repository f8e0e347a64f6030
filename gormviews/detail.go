package gormviews

import (
	"fmt"
	"net/http"

	"github.com/genericviews/gin-generic-views/views"

	"github.com/gin-gonic/gin"
)

// DetailView renders a template with the context containing a single object
// retrieved from the database.
//
//	view := gormviews.DetailView[Post]{Lookup: gormviews.Lookup[Post]{DB: db}}
//	r.GET("/posts/:pk", views.Must(view.Handler()))
//
// The example renders "post_detail.html" with the object available as
// "object" and "post".
type DetailView[T any] struct {
	Lookup[T]

	TemplateName   string
	TemplatePrefix string
	StatusCode     int
	ContextFunc    views.ContextFunc
}

func (v *DetailView[T]) templateName() string {
	if v.TemplateName != "" {
		return v.TemplateName
	}
	return v.TemplatePrefix + modelName[T]() + "_detail.html"
}

// Handler compiles the view to a gin handler. A missing DB is a
// configuration error.
func (v *DetailView[T]) Handler() (gin.HandlerFunc, error) {
	if v.DB == nil {
		return nil, fmt.Errorf("DetailView requires a definition of DB")
	}

	view := views.MethodView{Get: v.get}
	return view.Handler(), nil
}

func (v *DetailView[T]) get(c *gin.Context) {
	obj, err := v.Object(c)
	if err != nil {
		abortLookup(c, err)
		return
	}

	ctx := views.TemplateContext(c, v)
	ctx["object"] = obj
	ctx[v.contextObjectName()] = obj

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
