package model

import (
	"encoding/json"
	"fmt"

	"github.com/batchwerk/spobatch/batchclient"
)

// JSONMapper implements batchclient.JsonMappingHelper for Entity-backed
// requests: it decodes a request's attached response JSON as a flat object
// and copies each field onto the bound Entity via SetValue.
//
// Requests bound to something other than *Entity are left untouched; a real
// consumer would dispatch on entityInfo to route to the right generated
// type's own unmarshalling instead.
type JSONMapper struct{}

// NewJSONMapper builds a JSONMapper.
func NewJSONMapper() *JSONMapper { return &JSONMapper{} }

// Map implements batchclient.JsonMappingHelper.
func (m *JSONMapper) Map(req *batchclient.Request) error {
	body, ok := req.ResponseJSON()
	if !ok {
		return nil
	}

	entity, ok := req.Model().(*Entity)
	if !ok {
		return nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return fmt.Errorf("model: decoding response body for order %d: %w", req.Order(), err)
	}

	for name, value := range fields {
		entity.SetValue(name, value)
	}
	return nil
}
