package middleware

import (
	"mime"
	"net/http"
	"strings"
)

// overrideMemory caps the form memory used when sniffing the override field
const overrideMemory = 32 << 20

// MethodOverride rewrites POST requests that carry a _method form field
// into the verb the field names. Browsers cannot send PATCH from a
// multipart form, so admin console updates arrive as POST with
// _method=PATCH. The rewrite must happen before routing, hence a plain
// http.Handler wrapper rather than router middleware.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if override := overrideFrom(r); override != "" {
				r.Method = override
			}
		}
		next.ServeHTTP(w, r)
	})
}

func overrideFrom(r *http.Request) string {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}

	var value string
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return ""
		}
		value = r.PostForm.Get("_method")
	case "multipart/form-data":
		if err := r.ParseMultipartForm(overrideMemory); err != nil {
			return ""
		}
		value = r.PostForm.Get("_method")
	default:
		return ""
	}

	switch strings.ToUpper(value) {
	case http.MethodPut, http.MethodPatch, http.MethodDelete:
		return strings.ToUpper(value)
	}
	return ""
}
