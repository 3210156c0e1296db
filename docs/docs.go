// Package docs registers the cafeteria OpenAPI document with swag, so that
// echo-swagger can serve it under /swagger/doc.json next to the Swagger UI.
//
// Import it for its side effect:
//
//	import _ "cafeteria/docs"
package docs

import (
	"encoding/json"
	"sync"

	"cafeteria/internal/generated/servers"

	"github.com/swaggo/swag"
)

type openAPIDoc struct {
	once sync.Once
	json string
}

// ReadDoc renders the embedded OpenAPI document as JSON once and caches it.
func (d *openAPIDoc) ReadDoc() string {
	d.once.Do(func() {
		swagger, err := servers.GetSwagger()
		if err != nil {
			d.json = "{}"
			return
		}
		raw, err := json.Marshal(swagger)
		if err != nil {
			d.json = "{}"
			return
		}
		d.json = string(raw)
	})
	return d.json
}

func init() {
	swag.Register(swag.Name, &openAPIDoc{})
}
