package gormviews

import (
	"fmt"
	"net/http"

	"github.com/genericviews/gin-generic-views/views"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// bindForm binds the request into obj and renders the form template again
// with field errors when validation fails. It returns true when obj is
// fully bound and the caller may persist it.
func bindForm[T any](c *gin.Context, obj *T, render func(c *gin.Context, form *T, fieldErrors map[string]string)) bool {
	if err := c.ShouldBind(obj); err != nil {
		if fieldErrors, ok := views.FieldErrors(err); ok {
			render(c, obj, fieldErrors)
			return false
		}
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusBadRequest)
		return false
	}
	return true
}

// CreateView displays a model form for creating an object. On an invalid
// POST the form is rendered again with the validation errors, on a valid
// one the object is saved and the request redirected to SuccessURL with
// {Field} placeholders filled from the saved object.
//
//	view := gormviews.CreateView[Post]{
//		DB:         db,
//		SuccessURL: "/posts/{ID}",
//	}
//	r.Any("/posts/new", views.Must(view.Handler()))
//
// The example renders "post_form.html" with the bound model as "form".
type CreateView[T any] struct {
	DB *gorm.DB

	SuccessURL     string
	TemplateName   string
	TemplatePrefix string
	StatusCode     int
	ContextFunc    views.ContextFunc
}

func (v *CreateView[T]) templateName() string {
	if v.TemplateName != "" {
		return v.TemplateName
	}
	return v.TemplatePrefix + modelName[T]() + "_form.html"
}

// Handler compiles the view to a gin handler. Missing DB or SuccessURL are
// configuration errors.
func (v *CreateView[T]) Handler() (gin.HandlerFunc, error) {
	if v.DB == nil {
		return nil, fmt.Errorf("CreateView requires a definition of DB")
	}
	if v.SuccessURL == "" {
		return nil, fmt.Errorf("CreateView requires a definition of SuccessURL")
	}

	view := views.MethodView{
		Get:  v.get,
		Post: v.post,
		Put:  v.post,
	}
	return view.Handler(), nil
}

func (v *CreateView[T]) get(c *gin.Context) {
	v.render(c, new(T), nil)
}

func (v *CreateView[T]) post(c *gin.Context) {
	obj := new(T)
	if !bindForm(c, obj, v.render) {
		return
	}

	if err := v.DB.WithContext(c.Request.Context()).Create(obj).Error; err != nil {
		abortError(c, err)
		return
	}

	target, err := views.InterpolateFields(v.SuccessURL, obj)
	if err != nil {
		abortError(c, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

func (v *CreateView[T]) render(c *gin.Context, form *T, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = map[string]string{}
	}

	ctx := views.TemplateContext(c, v)
	ctx["form"] = form
	ctx["errors"] = fieldErrors

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

// UpdateView displays a model form for updating an existing object. The
// object is located like in DetailView, the request is bound over it, and a
// valid POST saves it and redirects to the interpolated SuccessURL.
//
//	view := gormviews.UpdateView[Post]{
//		Lookup:     gormviews.Lookup[Post]{DB: db},
//		SuccessURL: "/posts/{ID}",
//	}
//	r.Any("/posts/:pk/edit", views.Must(view.Handler()))
type UpdateView[T any] struct {
	Lookup[T]

	SuccessURL     string
	TemplateName   string
	TemplatePrefix string
	StatusCode     int
	ContextFunc    views.ContextFunc
}

func (v *UpdateView[T]) templateName() string {
	if v.TemplateName != "" {
		return v.TemplateName
	}
	return v.TemplatePrefix + modelName[T]() + "_form.html"
}

// Handler compiles the view to a gin handler. Missing DB or SuccessURL are
// configuration errors.
func (v *UpdateView[T]) Handler() (gin.HandlerFunc, error) {
	if v.DB == nil {
		return nil, fmt.Errorf("UpdateView requires a definition of DB")
	}
	if v.SuccessURL == "" {
		return nil, fmt.Errorf("UpdateView requires a definition of SuccessURL")
	}

	view := views.MethodView{
		Get:  v.get,
		Post: v.post,
		Put:  v.post,
	}
	return view.Handler(), nil
}

func (v *UpdateView[T]) get(c *gin.Context) {
	obj, err := v.Object(c)
	if err != nil {
		abortLookup(c, err)
		return
	}
	v.render(c, obj, nil)
}

func (v *UpdateView[T]) post(c *gin.Context) {
	obj, err := v.Object(c)
	if err != nil {
		abortLookup(c, err)
		return
	}

	if !bindForm(c, obj, v.render) {
		return
	}

	if err := v.DB.WithContext(c.Request.Context()).Save(obj).Error; err != nil {
		abortError(c, err)
		return
	}

	target, err := views.InterpolateFields(v.SuccessURL, obj)
	if err != nil {
		abortError(c, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

func (v *UpdateView[T]) render(c *gin.Context, form *T, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = map[string]string{}
	}

	ctx := views.TemplateContext(c, v)
	ctx["form"] = form
	ctx["object"] = form
	ctx[v.contextObjectName()] = form
	ctx["errors"] = fieldErrors

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

// DeleteView displays a confirmation page and deletes an existing object.
// The object is removed on POST or DELETE; GET renders a confirmation
// template which should POST back to the same URL.
//
//	view := gormviews.DeleteView[Post]{
//		Lookup:     gormviews.Lookup[Post]{DB: db},
//		SuccessURL: "/posts",
//	}
//	r.Any("/posts/:pk/delete", views.Must(view.Handler()))
//
// The example renders "post_delete.html" on GET.
type DeleteView[T any] struct {
	Lookup[T]

	SuccessURL     string
	TemplateName   string
	TemplatePrefix string
	StatusCode     int
	ContextFunc    views.ContextFunc
}

func (v *DeleteView[T]) templateName() string {
	if v.TemplateName != "" {
		return v.TemplateName
	}
	return v.TemplatePrefix + modelName[T]() + "_delete.html"
}

// Handler compiles the view to a gin handler. Missing DB or SuccessURL are
// configuration errors.
func (v *DeleteView[T]) Handler() (gin.HandlerFunc, error) {
	if v.DB == nil {
		return nil, fmt.Errorf("DeleteView requires a definition of DB")
	}
	if v.SuccessURL == "" {
		return nil, fmt.Errorf("DeleteView requires a definition of SuccessURL")
	}

	view := views.MethodView{
		Get:    v.get,
		Post:   v.delete,
		Delete: v.delete,
	}
	return view.Handler(), nil
}

func (v *DeleteView[T]) get(c *gin.Context) {
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

func (v *DeleteView[T]) delete(c *gin.Context) {
	obj, err := v.Object(c)
	if err != nil {
		abortLookup(c, err)
		return
	}

	// Resolve the redirect before the row disappears.
	target, err := views.InterpolateFields(v.SuccessURL, obj)
	if err != nil {
		abortError(c, err)
		return
	}

	if err := v.DB.WithContext(c.Request.Context()).Delete(obj).Error; err != nil {
		abortError(c, err)
		return
	}

	c.Redirect(http.StatusFound, target)
}
