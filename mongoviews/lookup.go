package mongoviews

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/genericviews/gin-generic-views/internal/naming"
	"github.com/genericviews/gin-generic-views/views"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultIDParam is the URL rule parameter carrying the document object id.
const DefaultIDParam = "id"

// errNotFound marks lookups that must answer 404.
var errNotFound = errors.New("document not found")

// Lookup retrieves a single document based on the current request. By
// default the URL rule parameter IDParam is parsed as a hex object id and
// matched against "_id"; setting FilterField matches a document field
// against the FilterParam URL rule parameter instead.
type Lookup struct {
	Collection *mongo.Collection

	IDParam     string
	FilterField string
	FilterParam string

	// ContextObjectName overrides the derived context key for the object,
	// which defaults to the snake_case collection name.
	ContextObjectName string
}

func (l *Lookup) idParam() string {
	if l.IDParam != "" {
		return l.IDParam
	}
	return DefaultIDParam
}

func (l *Lookup) filterParam() string {
	if l.FilterParam != "" {
		return l.FilterParam
	}
	return l.FilterField
}

func (l *Lookup) contextObjectName() string {
	if l.ContextObjectName != "" {
		return l.ContextObjectName
	}
	return naming.Snake(l.Collection.Name())
}

func (l *Lookup) filter(c *gin.Context) (bson.M, error) {
	if l.FilterField != "" {
		value := c.Param(l.filterParam())
		if value == "" {
			return nil, fmt.Errorf("document view must be routed with a %s parameter", l.filterParam())
		}
		return bson.M{l.FilterField: value}, nil
	}

	raw := c.Param(l.idParam())
	if raw == "" {
		return nil, fmt.Errorf("document view must be routed with a %s parameter", l.idParam())
	}

	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		// Malformed ids cannot match any document.
		return nil, errNotFound
	}
	return bson.M{"_id": id}, nil
}

// Object fetches the document for the current request. errNotFound and
// mongo.ErrNoDocuments translate to 404 responses.
func (l *Lookup) Object(c *gin.Context) (bson.M, error) {
	filter, err := l.filter(c)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	if err := l.Collection.FindOne(c.Request.Context(), filter).Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func abortError(c *gin.Context, err error) {
	views.AbortServerError(c, err)
}

// abortLookup maps a document lookup failure to a response.
func abortLookup(c *gin.Context, err error) {
	if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, errNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	abortError(c, err)
}
