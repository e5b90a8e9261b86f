package schema_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/bloomora/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeOrderPlacedV1(t *testing.T) {
	subject := schema.TopicValueSubject("orders.placed")

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeOrderPlacedV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeOrderPlacedV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		_, err := schema.NewSerdeOrderPlacedV1(
			t.Context(),
			schema.SubjectOpt(""),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
	})

	t.Run("IdentifierFails", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		registryErr := errors.New("registry is down")
		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.OrderPlacedSchemaTextV1,
		).Return(0, registryErr)

		_, err := schema.NewSerdeOrderPlacedV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		assert.ErrorIs(t, err, registryErr)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.OrderPlacedSchemaTextV1,
		).Return(7, nil)

		serde, err := schema.NewSerdeOrderPlacedV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)
		schemaIdentifier.AssertExpectations(t)

		order1 := schema.OrderPlacedV1{
			EventID: "testEventID",
			OrderID: "BLM-42",
			Lines: []schema.OrderLineV1{
				{ProductID: "3", Name: "Fiddle Leaf Fig", Quantity: 1, UnitPrice: 2500},
			},
			Total:    2500,
			Payment:  "upi",
			PlacedAt: time.UnixMilli(1760000000000).UTC(),
		}

		encodedData, err := serde.Encode(order1)
		require.NoError(t, err)
		// magic byte and big endian schema id
		require.Greater(t, len(encodedData), 5)
		assert.Equal(t, []byte{0, 0, 0, 0, 7}, encodedData[:5])

		var order2 schema.OrderPlacedV1
		err = serde.Decode(encodedData, &order2)
		require.NoError(t, err)

		assert.Equal(t, order1.OrderID, order2.OrderID)
		assert.Equal(t, order1.Lines, order2.Lines)
		assert.Equal(t, order1.Total, order2.Total)
		assert.Equal(t, order1.Payment, order2.Payment)
		assert.True(t, order1.PlacedAt.Equal(order2.PlacedAt))
	})
}
