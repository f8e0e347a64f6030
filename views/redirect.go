package views

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RedirectView redirects to a given URL.
//
// The URL may contain {name} placeholders which are interpolated from the
// parameters captured by the URL rule:
//
//	view := views.RedirectView{URL: "/posts/{pk}"}
//	r.GET("/articles/:pk", view.Handler())
//
// Alternatively an Endpoint registered in a Registry may be given, which is
// resolved with the captured parameters:
//
//	view := views.RedirectView{Endpoint: "post-detail", QueryString: true}
//
// When no target URL can be resolved the request is answered with
// 410 Gone. Redirects are temporary (302) unless Permanent is set (301).
type RedirectView struct {
	URL         string
	Endpoint    string
	Registry    *Registry
	Permanent   bool
	QueryString bool
}

// RedirectURL resolves the target URL for the current request. An empty
// result means there is no target and the resource is gone.
func (v *RedirectView) RedirectURL(c *gin.Context) (string, error) {
	params := ParamMap(c)

	var target string
	switch {
	case v.URL != "":
		built, err := Interpolate(v.URL, params)
		if err != nil {
			return "", err
		}
		target = built
	case v.Endpoint != "":
		registry := v.Registry
		if registry == nil {
			registry = Routes
		}
		built, err := registry.URLFor(v.Endpoint, params)
		if err != nil {
			return "", nil
		}
		target = stripQuery(built)
	default:
		return "", nil
	}

	if v.QueryString {
		if query := c.Request.URL.RawQuery; query != "" {
			target = withQuery(target, query)
		}
	}

	return target, nil
}

// Handler compiles the view to a gin handler.
func (v *RedirectView) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		target, err := v.RedirectURL(c)
		if err != nil {
			abortError(c, err)
			return
		}

		if target == "" {
			c.AbortWithStatus(http.StatusGone)
			return
		}

		if v.Permanent {
			c.Redirect(http.StatusMovedPermanently, target)
			return
		}
		c.Redirect(http.StatusFound, target)
	}
}
