package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const OrderPlacedSchemaTextV1 = `{
	"type": "record",
	"namespace": "bloomora.orders",
	"name": "order_placed",
	"fields": [
		{"name": "event_id", "type": "string"},
		{"name": "order_id", "type": "string"},
		{"name": "lines", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "order_line",
				"fields": [
					{"name": "product_id", "type": "string"},
					{"name": "name", "type": "string"},
					{"name": "quantity", "type": "int"},
					{"name": "unit_price", "type": "long"}
				]
			}
		}},
		{"name": "total", "type": "long"},
		{"name": "payment", "type": "string"},
		{"name": "placed_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

const ProductSalesSchemaTextV1 = `{
	"type": "record",
	"namespace": "bloomora.sales",
	"name": "product_sales",
	"fields": [
		{"name": "product_id", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "quantity", "type": "long"},
		{"name": "revenue", "type": "long"}
	]
}`

type (
	OrderPlacedV1 struct {
		EventID  string        `avro:"event_id"`
		OrderID  string        `avro:"order_id"`
		Lines    []OrderLineV1 `avro:"lines"`
		Total    int64         `avro:"total"`
		Payment  string        `avro:"payment"`
		PlacedAt time.Time     `avro:"placed_at"`
	}

	OrderLineV1 struct {
		ProductID string `avro:"product_id"`
		Name      string `avro:"name"`
		Quantity  int    `avro:"quantity"`
		UnitPrice int64  `avro:"unit_price"`
	}
)

// ProductSalesV1 is the running total kept per product.
type ProductSalesV1 struct {
	ProductID string `avro:"product_id"`
	Name      string `avro:"name"`
	Quantity  int64  `avro:"quantity"`
	Revenue   int64  `avro:"revenue"`
}

func OrderPlacedV1Avro() avro.Schema {
	return avro.MustParse(OrderPlacedSchemaTextV1)
}

func ProductSalesV1Avro() avro.Schema {
	return avro.MustParse(ProductSalesSchemaTextV1)
}
