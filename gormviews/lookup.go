package gormviews

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Default URL rule parameter names for object lookups.
const (
	DefaultPKParam   = "pk"
	DefaultSlugParam = "slug"
	DefaultSlugField = "slug"
)

// Lookup retrieves a single object of type T based on the current request.
// It is embedded by the single-object views (DetailView, UpdateView,
// DeleteView).
//
// The primary key is taken from the URL rule parameter PKParam, the slug
// from SlugParam and matched against the database column SlugField. When
// both are captured, the primary key wins unless QueryPKAndSlug is set, in
// which case both filter the query.
type Lookup[T any] struct {
	DB *gorm.DB

	// Query narrows the base query, e.g. to scope rows to a tenant.
	Query func(tx *gorm.DB) *gorm.DB

	PKParam        string
	SlugParam      string
	SlugField      string
	QueryPKAndSlug bool

	// ContextObjectName overrides the derived context key for the object.
	ContextObjectName string
}

func (l *Lookup[T]) pkParam() string {
	if l.PKParam != "" {
		return l.PKParam
	}
	return DefaultPKParam
}

func (l *Lookup[T]) slugParam() string {
	if l.SlugParam != "" {
		return l.SlugParam
	}
	return DefaultSlugParam
}

func (l *Lookup[T]) slugField() string {
	if l.SlugField != "" {
		return l.SlugField
	}
	return DefaultSlugField
}

func (l *Lookup[T]) contextObjectName() string {
	if l.ContextObjectName != "" {
		return l.ContextObjectName
	}
	return modelName[T]()
}

func (l *Lookup[T]) baseQuery(c *gin.Context) *gorm.DB {
	tx := l.DB.WithContext(c.Request.Context())
	if l.Query != nil {
		tx = l.Query(tx)
	}
	return tx
}

// Object fetches the object for the current request. gorm.ErrRecordNotFound
// is returned when no row matches; a request captured without a primary key
// or slug parameter is a routing error.
func (l *Lookup[T]) Object(c *gin.Context) (*T, error) {
	pk := c.Param(l.pkParam())
	slug := c.Param(l.slugParam())

	if pk == "" && slug == "" {
		return nil, fmt.Errorf("object view must be routed with either a %s or %s parameter",
			l.pkParam(), l.slugParam())
	}

	tx := l.baseQuery(c)

	if pk != "" {
		column, err := primaryKeyColumn[T]()
		if err != nil {
			return nil, err
		}
		tx = tx.Where(fmt.Sprintf("%s = ?", column), pk)
	}

	if slug != "" && (pk == "" || l.QueryPKAndSlug) {
		tx = tx.Where(fmt.Sprintf("%s = ?", l.slugField()), slug)
	}

	var obj T
	if err := tx.First(&obj).Error; err != nil {
		return nil, err
	}
	return &obj, nil
}
