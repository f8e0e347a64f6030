package mongoviews

import (
	"fmt"
	"net/http"

	"github.com/genericviews/gin-generic-views/internal/naming"
	"github.com/genericviews/gin-generic-views/views"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListView renders a template with the context containing the documents of
// a mongo collection.
//
//	view := mongoviews.ListView{
//		Collection: db.Collection("articles"),
//		Sort:       bson.D{{Key: "published_at", Value: -1}},
//		Limit:      50,
//	}
//	r.GET("/articles", views.Must(view.Handler()))
//
// The example renders "articles_list.html" with the documents available as
// "object_list" and "articles_list".
type ListView struct {
	Collection *mongo.Collection

	// Filter narrows the listed documents; nil lists everything.
	Filter bson.M

	Sort  bson.D
	Limit int64

	ContextObjectName string
	TemplateName      string
	TemplatePrefix    string
	StatusCode        int
	ContextFunc       views.ContextFunc
}

func (v *ListView) contextObjectName() string {
	if v.ContextObjectName != "" {
		return v.ContextObjectName
	}
	return naming.Snake(v.Collection.Name()) + "_list"
}

func (v *ListView) templateName() string {
	if v.TemplateName != "" {
		return v.TemplateName
	}
	return v.TemplatePrefix + naming.Snake(v.Collection.Name()) + "_list.html"
}

// Handler compiles the view to a gin handler. A missing Collection is a
// configuration error.
func (v *ListView) Handler() (gin.HandlerFunc, error) {
	if v.Collection == nil {
		return nil, fmt.Errorf("ListView requires a definition of Collection")
	}

	view := views.MethodView{Get: v.get}
	return view.Handler(), nil
}

func (v *ListView) get(c *gin.Context) {
	filter := v.Filter
	if filter == nil {
		filter = bson.M{}
	}

	findOptions := options.Find()
	if len(v.Sort) > 0 {
		findOptions.SetSort(v.Sort)
	}
	if v.Limit > 0 {
		findOptions.SetLimit(v.Limit)
	}

	cursor, err := v.Collection.Find(c.Request.Context(), filter, findOptions)
	if err != nil {
		abortError(c, err)
		return
	}

	docs := []bson.M{}
	if err := cursor.All(c.Request.Context(), &docs); err != nil {
		abortError(c, err)
		return
	}

	ctx := views.TemplateContext(c, v)
	ctx["object_list"] = docs
	ctx[v.contextObjectName()] = docs

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
