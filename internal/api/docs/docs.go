// Package docs embeds the OpenAPI document served to the Swagger UI.
package docs

import (
	_ "embed"
	"net/http"
)

//go:embed openapi.json
var OpenAPI []byte

// Handler serves the document at /openapi.json.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(OpenAPI)
	})
}
