package gormviews

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sync"

	"github.com/genericviews/gin-generic-views/internal/naming"
	"github.com/genericviews/gin-generic-views/views"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// schemaCache caches parsed model schemas across views.
var schemaCache = &sync.Map{}

// modelName returns the snake_case name of the model type T.
func modelName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return naming.Snake(t.Name())
}

// primaryKeyColumn resolves the database column of the single primary key
// of T. Models without a primary key or with a composite one are rejected,
// mirroring what a by-primary-key lookup can support.
func primaryKeyColumn[T any]() (string, error) {
	s, err := schema.Parse(new(T), schemaCache, schema.NamingStrategy{})
	if err != nil {
		return "", fmt.Errorf("failed to parse model schema: %w", err)
	}

	if len(s.PrimaryFields) == 0 {
		return "", fmt.Errorf("model %s requires a primary key", s.Name)
	}
	if len(s.PrimaryFields) > 1 {
		return "", fmt.Errorf("model %s requires a non composite primary key", s.Name)
	}

	return s.PrimaryFields[0].DBName, nil
}

func abortError(c *gin.Context, err error) {
	views.AbortServerError(c, err)
}

// abortLookup maps an object lookup failure to a response: missing rows are
// 404, everything else is a server error.
func abortLookup(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	abortError(c, err)
}
