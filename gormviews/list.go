package gormviews

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/genericviews/gin-generic-views/views"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DefaultPageParam is the URL rule or query string parameter carrying the
// page number.
const DefaultPageParam = "page"

// ListView renders a template with the context containing a list of objects
// retrieved from the database.
//
//	view := gormviews.ListView[Post]{
//		DB:      db,
//		OrderBy: []string{"created_at desc"},
//		PerPage: 20,
//	}
//	r.GET("/posts", views.Must(view.Handler()))
//
// The example renders "post_list.html" with the objects available as
// "object_list" and "post_list". When PerPage is set the list is paginated;
// the page number is taken from the URL rule parameter PageParam, falling
// back to the query string and then to 1. With ErrorOut set, an invalid
// page number or an empty page beyond the first answers 404 instead of
// falling back to page 1.
type ListView[T any] struct {
	DB *gorm.DB

	// Query narrows the base query before ordering and pagination.
	Query func(tx *gorm.DB) *gorm.DB

	OrderBy   []string
	PerPage   int
	PageParam string
	ErrorOut  bool

	ContextObjectName string
	TemplateName      string
	TemplatePrefix    string
	StatusCode        int
	ContextFunc       views.ContextFunc
}

func (v *ListView[T]) pageParam() string {
	if v.PageParam != "" {
		return v.PageParam
	}
	return DefaultPageParam
}

func (v *ListView[T]) contextObjectName() string {
	if v.ContextObjectName != "" {
		return v.ContextObjectName
	}
	return modelName[T]() + "_list"
}

func (v *ListView[T]) templateName() string {
	if v.TemplateName != "" {
		return v.TemplateName
	}
	return v.TemplatePrefix + modelName[T]() + "_list.html"
}

// page resolves the requested page number. The second return value is false
// when the value is invalid and ErrorOut demands a 404.
func (v *ListView[T]) page(c *gin.Context) (int, bool) {
	raw := c.Param(v.pageParam())
	if raw == "" {
		raw = c.Query(v.pageParam())
	}
	if raw == "" {
		return 1, true
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		if v.ErrorOut {
			return 0, false
		}
		return 1, true
	}
	return page, true
}

// Handler compiles the view to a gin handler. A missing DB is a
// configuration error.
func (v *ListView[T]) Handler() (gin.HandlerFunc, error) {
	if v.DB == nil {
		return nil, fmt.Errorf("ListView requires a definition of DB")
	}

	view := views.MethodView{Get: v.get}
	return view.Handler(), nil
}

func (v *ListView[T]) baseQuery(c *gin.Context) *gorm.DB {
	tx := v.DB.WithContext(c.Request.Context())
	if v.Query != nil {
		tx = v.Query(tx)
	}
	return tx
}

func (v *ListView[T]) get(c *gin.Context) {
	var items []T
	var pagination *Pagination[T]
	isPaginated := false

	listQuery := v.baseQuery(c)
	for _, order := range v.OrderBy {
		listQuery = listQuery.Order(order)
	}

	if v.PerPage > 0 {
		page, ok := v.page(c)
		if !ok {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		var total int64
		if err := v.baseQuery(c).Model(new(T)).Count(&total).Error; err != nil {
			abortError(c, err)
			return
		}

		offset := (page - 1) * v.PerPage
		if err := listQuery.Offset(offset).Limit(v.PerPage).Find(&items).Error; err != nil {
			abortError(c, err)
			return
		}

		if len(items) == 0 && page != 1 && v.ErrorOut {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		pagination = &Pagination[T]{
			Page:    page,
			PerPage: v.PerPage,
			Total:   total,
			Items:   items,
		}
		isPaginated = pagination.Pages() > 1
	} else {
		if err := listQuery.Find(&items).Error; err != nil {
			abortError(c, err)
			return
		}
	}

	ctx := views.TemplateContext(c, v)
	ctx["object_list"] = items
	ctx["pagination"] = pagination
	ctx["is_paginated"] = isPaginated
	ctx[v.contextObjectName()] = items

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
