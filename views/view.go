package views

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for view configuration checks.
var validate = validator.New()

// Logger receives structured log records from view handlers. It matches the
// structured logger shipped in the logger package, but any slog-style
// implementation satisfies it.
type Logger interface {
	Error(msg string, args ...interface{})
}

var viewLogger Logger

// SetLogger installs a package-wide logger for view failures. Passing nil
// disables logging; handlers still record errors on the gin context either
// way.
func SetLogger(l Logger) {
	viewLogger = l
}

// Must panics when a view handler could not be built. It allows handler
// construction to be inlined into route registration:
//
//	r.GET("/about", views.Must(view.Handler()))
func Must(h gin.HandlerFunc, err error) gin.HandlerFunc {
	if err != nil {
		panic(err)
	}
	return h
}

// AbortServerError records err on the gin context, emits a structured log
// record for the failing request, and aborts with status 500.
func AbortServerError(c *gin.Context, err error) {
	_ = c.Error(err)
	if viewLogger != nil {
		viewLogger.Error("view request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err.Error(),
		)
	}
	c.AbortWithStatus(http.StatusInternalServerError)
}

func abortError(c *gin.Context, err error) {
	AbortServerError(c, err)
}

// MethodView routes a single URL rule to one handler per HTTP verb. Verbs
// without a handler are answered with 405 Method Not Allowed and an Allow
// header. HEAD falls back to the GET handler and OPTIONS is synthesized from
// the configured verbs when no explicit handler is set.
//
//	view := views.MethodView{
//		Get:  showForm,
//		Post: submitForm,
//	}
//	r.Any("/contact", view.Handler())
type MethodView struct {
	Get     gin.HandlerFunc
	Post    gin.HandlerFunc
	Put     gin.HandlerFunc
	Patch   gin.HandlerFunc
	Delete  gin.HandlerFunc
	Head    gin.HandlerFunc
	Options gin.HandlerFunc
}

// Methods returns the HTTP verbs this view responds to.
func (v *MethodView) Methods() []string {
	var methods []string
	if v.Get != nil {
		methods = append(methods, http.MethodGet, http.MethodHead)
	} else if v.Head != nil {
		methods = append(methods, http.MethodHead)
	}
	if v.Post != nil {
		methods = append(methods, http.MethodPost)
	}
	if v.Put != nil {
		methods = append(methods, http.MethodPut)
	}
	if v.Patch != nil {
		methods = append(methods, http.MethodPatch)
	}
	if v.Delete != nil {
		methods = append(methods, http.MethodDelete)
	}
	methods = append(methods, http.MethodOptions)
	return methods
}

// Handler compiles the view to a single gin handler dispatching on the
// request method.
func (v *MethodView) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h := v.handlerFor(c.Request.Method); h != nil {
			h(c)
			return
		}

		allow := strings.Join(v.Methods(), ", ")
		c.Header("Allow", allow)

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.AbortWithStatus(http.StatusMethodNotAllowed)
	}
}

func (v *MethodView) handlerFor(method string) gin.HandlerFunc {
	switch method {
	case http.MethodGet:
		return v.Get
	case http.MethodHead:
		if v.Head != nil {
			return v.Head
		}
		return v.Get
	case http.MethodPost:
		return v.Post
	case http.MethodPut:
		return v.Put
	case http.MethodPatch:
		return v.Patch
	case http.MethodDelete:
		return v.Delete
	case http.MethodOptions:
		return v.Options
	default:
		return nil
	}
}
