// Package gormviews provides GORM backed generic views for gin.
//
// The views are generic over a GORM model type and cover the usual
// read/write pages: DetailView fetches a single object by primary key or
// slug, ListView fetches an optionally paginated list, CreateView and
// UpdateView process model forms, and DeleteView shows a confirmation page
// before removing a row.
//
// Template and context names default to the snake_case model name, so a
// BlogPost detail page renders "blog_post_detail.html" with the object
// available as both "object" and "blog_post".
package gormviews
