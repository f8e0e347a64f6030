package mongoviews

import (
	"fmt"
	"net/http"

	"github.com/genericviews/gin-generic-views/internal/naming"
	"github.com/genericviews/gin-generic-views/views"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// bindForm binds the request into form and renders the form template again
// with field errors when validation fails. It returns true when form is
// fully bound and the caller may persist it.
func bindForm[F any](c *gin.Context, form *F, render func(c *gin.Context, form *F, fieldErrors map[string]string)) bool {
	if err := c.ShouldBind(form); err != nil {
		if fieldErrors, ok := views.FieldErrors(err); ok {
			render(c, form, fieldErrors)
			return false
		}
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusBadRequest)
		return false
	}
	return true
}

// formTemplateName derives the default form template from the collection
// name, "articles" rendering "articles_form.html".
func formTemplateName(collection *mongo.Collection, name, prefix string) string {
	if name != "" {
		return name
	}
	return prefix + naming.Snake(collection.Name()) + "_form.html"
}

// CreateView displays a document form for inserting into a mongo
// collection. The form type F carries the form, bson and binding tags; on an
// invalid POST the form is rendered again with the validation errors, on a
// valid one the document is inserted and the request redirected to
// SuccessURL with {Field} placeholders filled from the form. {ID} resolves
// to the hex of the generated object id when F has no ID field of its own.
//
//	view := mongoviews.CreateView[ArticleForm]{
//		Collection: db.Collection("articles"),
//		SuccessURL: "/articles/{ID}",
//	}
//	r.Any("/articles/new", views.Must(view.Handler()))
//
// The example renders "articles_form.html" with the bound form as "form".
type CreateView[F any] struct {
	Collection *mongo.Collection

	SuccessURL     string
	TemplateName   string
	TemplatePrefix string
	StatusCode     int
	ContextFunc    views.ContextFunc
}

// Handler compiles the view to a gin handler. Missing Collection or
// SuccessURL are configuration errors.
func (v *CreateView[F]) Handler() (gin.HandlerFunc, error) {
	if v.Collection == nil {
		return nil, fmt.Errorf("CreateView requires a definition of Collection")
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

func (v *CreateView[F]) get(c *gin.Context) {
	v.render(c, new(F), nil)
}

func (v *CreateView[F]) post(c *gin.Context) {
	form := new(F)
	if !bindForm(c, form, v.render) {
		return
	}

	res, err := v.Collection.InsertOne(c.Request.Context(), form)
	if err != nil {
		abortError(c, err)
		return
	}

	vars := views.FieldVars(form)
	if _, ok := vars["ID"]; !ok {
		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			vars["ID"] = oid.Hex()
		}
	}

	target, err := views.Interpolate(v.SuccessURL, vars)
	if err != nil {
		abortError(c, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

func (v *CreateView[F]) render(c *gin.Context, form *F, fieldErrors map[string]string) {
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
	c.HTML(status, formTemplateName(v.Collection, v.TemplateName, v.TemplatePrefix), ctx)
}

// UpdateView displays a document form for updating an existing document.
// The document is located like in DetailView and decoded into the form type
// F for the initial GET; a valid POST writes the bound form back with a
// $set update and redirects to the interpolated SuccessURL, where {ID}
// falls back to the id URL rule parameter.
//
//	view := mongoviews.UpdateView[ArticleForm]{
//		Lookup:     mongoviews.Lookup{Collection: db.Collection("articles")},
//		SuccessURL: "/articles/{ID}",
//	}
//	r.Any("/articles/:id/edit", views.Must(view.Handler()))
type UpdateView[F any] struct {
	Lookup

	SuccessURL     string
	TemplateName   string
	TemplatePrefix string
	StatusCode     int
	ContextFunc    views.ContextFunc
}

// Handler compiles the view to a gin handler. Missing Collection or
// SuccessURL are configuration errors.
func (v *UpdateView[F]) Handler() (gin.HandlerFunc, error) {
	if v.Collection == nil {
		return nil, fmt.Errorf("UpdateView requires a definition of Collection")
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

func (v *UpdateView[F]) get(c *gin.Context) {
	filter, err := v.filter(c)
	if err != nil {
		abortLookup(c, err)
		return
	}

	form := new(F)
	if err := v.Collection.FindOne(c.Request.Context(), filter).Decode(form); err != nil {
		abortLookup(c, err)
		return
	}
	v.render(c, form, nil)
}

func (v *UpdateView[F]) post(c *gin.Context) {
	filter, err := v.filter(c)
	if err != nil {
		abortLookup(c, err)
		return
	}

	form := new(F)
	if !bindForm(c, form, v.render) {
		return
	}

	res, err := v.Collection.UpdateOne(c.Request.Context(), filter, bson.M{"$set": form})
	if err != nil {
		abortError(c, err)
		return
	}
	if res.MatchedCount == 0 {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	vars := views.FieldVars(form)
	if _, ok := vars["ID"]; !ok {
		vars["ID"] = c.Param(v.idParam())
	}

	target, err := views.Interpolate(v.SuccessURL, vars)
	if err != nil {
		abortError(c, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

func (v *UpdateView[F]) render(c *gin.Context, form *F, fieldErrors map[string]string) {
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
	c.HTML(status, formTemplateName(v.Collection, v.TemplateName, v.TemplatePrefix), ctx)
}
