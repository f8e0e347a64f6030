package views

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TemplateView renders a configured template with the context populated from
// the parameters captured by the URL rule.
//
//	about := views.TemplateView{TemplateName: "about.html"}
//	r.GET("/about", views.Must(about.Handler()))
//
// The context can be extended per request through ContextFunc:
//
//	about := views.TemplateView{
//		TemplateName: "about.html",
//		ContextFunc: func(c *gin.Context, ctx views.Context) error {
//			ctx["staff"] = []string{"John Smith", "Jane Doe"}
//			return nil
//		},
//	}
type TemplateView struct {
	TemplateName string `validate:"required"`
	StatusCode   int
	ContextFunc  ContextFunc
}

// Handler compiles the view to a gin handler. A missing template name is a
// configuration error.
func (v *TemplateView) Handler() (gin.HandlerFunc, error) {
	if err := validate.Struct(v); err != nil {
		return nil, fmt.Errorf("TemplateView requires a definition of TemplateName: %w", err)
	}

	status := v.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	handler := func(c *gin.Context) {
		ctx := TemplateContext(c, v)
		if !applyContextFunc(c, v.ContextFunc, ctx) {
			return
		}
		c.HTML(status, v.TemplateName, ctx)
	}

	view := MethodView{Get: handler}
	return view.Handler(), nil
}
