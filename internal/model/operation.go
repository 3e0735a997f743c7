package model

type Method string

const (
	MethodGet     Method = "GET"
	MethodPut     Method = "PUT"
	MethodPost    Method = "POST"
	MethodDelete  Method = "DELETE"
	MethodOptions Method = "OPTIONS"
	MethodHead    Method = "HEAD"
	MethodPatch   Method = "PATCH"
)

// OperationSchema describes one request descriptor to generate.
//
// PathParameter, QueryParameter and FormDataParameter are synthetic objects with one property
// per parameter of that location. BodyParameter is nil when the operation declares no body.
type OperationSchema struct {
	Name              string       `json:"name"`
	OperationID       string       `json:"operationId,omitempty"`
	Path              string       `json:"path"`
	Method            Method       `json:"method"`
	Summary           string       `json:"summary,omitempty"`
	Description       string       `json:"description,omitempty"`
	Tags              []string     `json:"tags,omitempty"`
	ContentType       string       `json:"contentType,omitempty"`
	PathParameter     TypedSchema  `json:"pathParameter"`
	QueryParameter    TypedSchema  `json:"queryParameter"`
	BodyParameter     *TypedSchema `json:"bodyParameter,omitempty"`
	FormDataParameter TypedSchema  `json:"formDataParameter"`
	Response          TypedSchema  `json:"response"`
}

// RefTypes returns every referenced type name used by the operation, in first-seen order.
func (o OperationSchema) RefTypes() []string {
	var names []string
	seen := make(map[string]bool)
	add := func(s TypedSchema) {
		for _, name := range s.RefTypes() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	add(o.PathParameter)
	add(o.QueryParameter)
	if o.BodyParameter != nil {
		add(*o.BodyParameter)
	}
	add(o.FormDataParameter)
	add(o.Response)
	return names
}

func collectRefs(s TypedSchema) []string {
	var names []string
	if s.IsRef {
		names = append(names, s.Type)
	}
	for _, p := range s.Properties {
		names = append(names, collectRefs(p.Schema)...)
	}
	return names
}
