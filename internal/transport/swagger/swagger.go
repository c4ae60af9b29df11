package swagger

import (
	"context"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	httpSwagger "github.com/swaggo/http-swagger"
)

func Handler() http.Handler {
	// Serve the OpenAPI spec published at the server root
	return httpSwagger.Handler(
		httpSwagger.URL("/openapi.yml"),
	)
}

// ValidateSpec loads and validates the OpenAPI document at startup so a
// broken spec fails fast instead of serving garbage to the UI.
func ValidateSpec(ctx context.Context, path string) error {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return err
	}
	return doc.Validate(ctx)
}
