package views

import (
	"github.com/gin-gonic/gin"
)

// Context holds the data passed to a template or JSON renderer.
type Context map[string]interface{}

// ContextFunc extends the context of a view before rendering. The hook may
// read the request from c and add or replace context entries. A returned
// error aborts the request with status 500.
type ContextFunc func(c *gin.Context, ctx Context) error

// ParamMap returns the parameters captured by the URL rule as a string map.
func ParamMap(c *gin.Context) map[string]string {
	params := make(map[string]string, len(c.Params))
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}
	return params
}

// TemplateContext builds the base context for template rendering: the
// captured URL parameters as top level entries plus a "view" entry pointing
// at the view value. Database-backed view packages build on it.
func TemplateContext(c *gin.Context, view interface{}) Context {
	ctx := Context{}
	for _, p := range c.Params {
		ctx[p.Key] = p.Value
	}
	ctx["view"] = view
	return ctx
}

// applyContextFunc runs fn over ctx when set and reports whether the request
// may proceed. On error the request is aborted with status 500.
func applyContextFunc(c *gin.Context, fn ContextFunc, ctx Context) bool {
	if fn == nil {
		return true
	}
	if err := fn(c, ctx); err != nil {
		abortError(c, err)
		return false
	}
	return true
}
