package schema

import (
	"errors"
	"fmt"

	"github.com/hamba/avro/v2"
)

var ErrUnexpectedType = errors.New("unexpected value type")

// An AvroCodec encodes plain avro values of type T without
// the schema registry wire header.
//
// It satisfies goka.Codec and is meant for internal tables.
type AvroCodec[T any] struct {
	schema avro.Schema
}

func NewAvroCodec[T any](s avro.Schema) AvroCodec[T] {
	return AvroCodec[T]{s}
}

func (c AvroCodec[T]) Encode(v any) ([]byte, error) {
	const op = "AvroCodec.Encode"
	tv, ok := v.(T)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %T", op, ErrUnexpectedType, v)
	}
	return avro.Marshal(c.schema, tv)
}

func (c AvroCodec[T]) Decode(data []byte) (any, error) {
	const op = "AvroCodec.Decode"
	var v T
	if err := avro.Unmarshal(c.schema, data, &v); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}
