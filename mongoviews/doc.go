// Package mongoviews provides MongoDB backed generic views for gin.
//
// The views operate on a mongo collection and render documents either
// through HTML templates (DetailView, ListView) or as JSON
// (JSONDetailView). Documents are located by the hex object id captured
// from the URL rule, or by a configured document field.
package mongoviews
