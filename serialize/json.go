package serialize

import (
	"encoding/json"
	"fmt"

	"github.com/katalvlaran/setexpr/core"
)

// EncodeJSON renders expr as textual JSON via its Snapshot projection.
func EncodeJSON[T comparable](expr *core.Expression[T]) ([]byte, error) {
	data, err := json.Marshal(ToSnapshot(expr))
	if err != nil {
		return nil, fmt.Errorf("serialize: encode json: %w", err)
	}
	return data, nil
}

// DecodeJSON rebuilds an Expression from JSON previously produced by
// EncodeJSON.
func DecodeJSON[T comparable](data []byte) (*core.Expression[T], error) {
	var snap Snapshot[T]
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("serialize: decode json: %w", err)
	}
	return FromSnapshot(snap), nil
}
