package serialize

import (
	"fmt"

	"github.com/katalvlaran/setexpr/core"
	msgpack "gopkg.in/vmihailenco/msgpack.v2"
)

// EncodeMsgpack renders expr as binary MessagePack via its Snapshot
// projection. Prefer this over EncodeJSON for large expressions or
// when T is not naturally textual.
func EncodeMsgpack[T comparable](expr *core.Expression[T]) ([]byte, error) {
	data, err := msgpack.Marshal(ToSnapshot(expr))
	if err != nil {
		return nil, fmt.Errorf("serialize: encode msgpack: %w", err)
	}
	return data, nil
}

// DecodeMsgpack rebuilds an Expression from MessagePack previously
// produced by EncodeMsgpack.
func DecodeMsgpack[T comparable](data []byte) (*core.Expression[T], error) {
	var snap Snapshot[T]
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("serialize: decode msgpack: %w", err)
	}
	return FromSnapshot(snap), nil
}
