package views

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONView renders the view context as a JSON response. By default the
// context contains the parameters captured by the URL rule under "params";
// ContextFunc can replace or extend that.
//
//	view := views.JSONView{
//		ContextFunc: func(c *gin.Context, ctx views.Context) error {
//			ctx["healthy"] = true
//			return nil
//		},
//	}
//	r.GET("/status", view.Handler())
type JSONView struct {
	StatusCode  int
	ContextFunc ContextFunc
}

// Handler compiles the view to a gin handler.
func (v *JSONView) Handler() gin.HandlerFunc {
	status := v.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	handler := func(c *gin.Context) {
		params := Context{}
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}

		ctx := Context{"params": params}
		if !applyContextFunc(c, v.ContextFunc, ctx) {
			return
		}
		c.JSON(status, ctx)
	}

	view := MethodView{Get: handler}
	return view.Handler()
}
