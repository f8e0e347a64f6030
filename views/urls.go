package views

import (
	"fmt"
	"reflect"
	"strings"
)

// Interpolate replaces {name} placeholders in a URL template with values
// from vars. A placeholder without a matching entry or an unclosed brace is
// an error.
func Interpolate(urlTemplate string, vars map[string]string) (string, error) {
	var b strings.Builder

	rest := urlTemplate
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}

		b.WriteString(rest[:open])
		rest = rest[open+1:]

		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return "", fmt.Errorf("unclosed placeholder in URL template %q", urlTemplate)
		}

		name := rest[:end]
		value, ok := vars[name]
		if !ok {
			return "", fmt.Errorf("no value for placeholder {%s} in URL template %q", name, urlTemplate)
		}

		b.WriteString(value)
		rest = rest[end+1:]
	}
}

// FieldVars flattens the exported fields of a struct value into a string
// map for URL interpolation. Embedded structs contribute their fields under
// their own names, so "{ID}" finds an embedded base model's ID as well.
func FieldVars(obj interface{}) map[string]string {
	vars := make(map[string]string)
	collectFieldVars(reflect.ValueOf(obj), vars)
	return vars
}

func collectFieldVars(v reflect.Value, vars map[string]string) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Anonymous {
			collectFieldVars(v.Field(i), vars)
			continue
		}
		if _, ok := vars[field.Name]; !ok {
			vars[field.Name] = fmt.Sprint(v.Field(i).Interface())
		}
	}
}

// InterpolateFields fills {Field} placeholders in a URL template with the
// exported field values of obj.
func InterpolateFields(urlTemplate string, obj interface{}) (string, error) {
	return Interpolate(urlTemplate, FieldVars(obj))
}

// stripQuery removes the query string from a URL.
func stripQuery(url string) string {
	if i := strings.IndexByte(url, '?'); i >= 0 {
		return url[:i]
	}
	return url
}

// withQuery replaces the query string of a URL.
func withQuery(url, query string) string {
	return stripQuery(url) + "?" + query
}
