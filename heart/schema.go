package heart

import (
	"sync"

	"github.com/invopop/jsonschema"
)

func generateSchema[T any]() *jsonschema.Schema {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	var v T
	s := r.Reflect(v)
	s.Title = "HeartData"
	return s
}

var observationSchema = sync.OnceValue(generateSchema[Observation])

// Schema 返回请求校验用的JSON Schema，全局共享，调用方不得修改
func Schema() *jsonschema.Schema {
	return observationSchema()
}
