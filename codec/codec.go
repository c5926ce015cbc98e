// Package codec serializes typed requests to transport payloads and back.
//
// Decoding tolerates fields unknown to the current schema; encoding omits
// absent optional fields instead of emitting explicit nulls.
package codec

import (
	"fmt"

	"github.com/viant/venu/schema"
)

// Codec marshals typed messages.
type Codec interface {
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Registry maps content types to codecs.
type Registry struct{ byType map[string]Codec }

// NewRegistry returns a registry preloaded with JSON and CBOR.
func NewRegistry() *Registry {
	r := &Registry{byType: make(map[string]Codec)}
	r.Register(JSON())
	r.Register(CBOR())
	return r
}

// Register adds a codec.
func (r *Registry) Register(c Codec) { r.byType[c.ContentType()] = c }

// Get returns a codec by content type, or nil.
func (r *Registry) Get(contentType string) Codec { return r.byType[contentType] }

// Encode marshals v into a string payload.
func Encode(c Codec, v any) (string, error) {
	data, err := c.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %T: %w", v, err)
	}
	return string(data), nil
}

// Decode unmarshals payload into a new R; failures wrap schema.ErrDecode.
func Decode[R any](c Codec, payload string) (*R, error) {
	var result R
	if err := c.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("%w: %T: %v", schema.ErrDecode, result, err)
	}
	return &result, nil
}
