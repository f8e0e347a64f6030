// Package views provides database independent generic views for gin.
//
// A generic view is a configurable value that compiles down to a
// gin.HandlerFunc. Instead of writing a handler per route, a route is wired
// from a view struct whose fields select the template, the redirect target or
// the form type, with optional hooks for extending the template context.
//
// The package covers method-based dispatch (MethodView), template rendering
// (TemplateView), redirects with reverse routing (RedirectView and Registry),
// JSON rendering (JSONView) and form processing (FormView). Database-backed
// views live in the gormviews and mongoviews packages.
package views
