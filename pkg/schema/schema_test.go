package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvroCodec(t *testing.T) {
	codec := NewAvroCodec[ProductSalesV1](ProductSalesV1Avro())

	t.Run("EncodeDecode", func(t *testing.T) {
		v := ProductSalesV1{ProductID: "4", Name: "Starter Bundle", Quantity: 1, Revenue: 3500}
		data, err := codec.Encode(v)
		require.NoError(t, err)

		decoded, err := codec.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, v, decoded)
	})

	t.Run("WrongType", func(t *testing.T) {
		_, err := codec.Encode(OrderPlacedV1{})
		assert.ErrorIs(t, err, ErrUnexpectedType)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := codec.Decode([]byte{0xff})
		assert.Error(t, err)
	})
}
