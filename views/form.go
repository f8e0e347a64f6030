package views

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FormView displays and processes a form bound to the struct type F. Form
// fields are declared with gin binding tags:
//
//	type ContactForm struct {
//		Email   string `form:"email" binding:"required,email"`
//		Message string `form:"message" binding:"required"`
//	}
//
//	view := views.FormView[ContactForm]{
//		TemplateName: "contact.html",
//		SuccessURL:   "/thanks",
//		OnValid: func(c *gin.Context, form *ContactForm) error {
//			return mailer.Send(form.Email, form.Message)
//		},
//	}
//	r.Any("/contact", views.Must(view.Handler()))
//
// GET renders the template with an unbound form. POST (and PUT) binds the
// request into F; on validation failure the template is rendered again with
// the field errors under "errors", on success OnValid runs and the request
// is redirected to SuccessURL.
type FormView[F any] struct {
	TemplateName string `validate:"required"`
	SuccessURL   string `validate:"required"`
	StatusCode   int
	ContextFunc  ContextFunc

	// Initial supplies the form value rendered on GET and bound on POST.
	// Defaults to the zero value of F.
	Initial func(c *gin.Context) (*F, error)

	// OnValid runs after a successful bind, before the redirect.
	OnValid func(c *gin.Context, form *F) error
}

// Handler compiles the view to a gin handler. Missing TemplateName or
// SuccessURL are configuration errors.
func (v *FormView[F]) Handler() (gin.HandlerFunc, error) {
	if err := validate.Struct(v); err != nil {
		return nil, fmt.Errorf("FormView requires a definition of TemplateName and SuccessURL: %w", err)
	}

	view := MethodView{
		Get:  v.get,
		Post: v.post,
		Put:  v.post,
	}
	return view.Handler(), nil
}

func (v *FormView[F]) get(c *gin.Context) {
	form, err := v.initial(c)
	if err != nil {
		abortError(c, err)
		return
	}
	v.render(c, form, nil)
}

func (v *FormView[F]) post(c *gin.Context) {
	form, err := v.initial(c)
	if err != nil {
		abortError(c, err)
		return
	}

	if err := c.ShouldBind(form); err != nil {
		if fieldErrors, ok := FieldErrors(err); ok {
			v.render(c, form, fieldErrors)
			return
		}
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if v.OnValid != nil {
		if err := v.OnValid(c, form); err != nil {
			abortError(c, err)
			return
		}
	}

	c.Redirect(http.StatusFound, v.SuccessURL)
}

func (v *FormView[F]) initial(c *gin.Context) (*F, error) {
	if v.Initial != nil {
		return v.Initial(c)
	}
	return new(F), nil
}

func (v *FormView[F]) render(c *gin.Context, form *F, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = map[string]string{}
	}

	ctx := TemplateContext(c, v)
	ctx["form"] = form
	ctx["errors"] = fieldErrors

	if !applyContextFunc(c, v.ContextFunc, ctx) {
		return
	}

	status := v.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	c.HTML(status, v.TemplateName, ctx)
}

// FieldErrors flattens validation errors from a failed bind into a
// field name to message map. The second return value reports whether err
// actually carries field level validation errors.
func FieldErrors(err error) (map[string]string, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	messages := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		messages[fieldError.Field()] = fmt.Sprintf("failed on the %s rule", fieldError.Tag())
	}
	return messages, true
}
