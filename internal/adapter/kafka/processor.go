package kafka

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/bloomora/internal/core/port"
	"github.com/niksmo/bloomora/pkg/schema"
)

var _ port.SalesProcessor = (*SalesProcessor)(nil)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// An orderEventCodec used for serde [schema.OrderPlacedV1]
type orderEventCodec struct {
	serde Serde
}

func newOrderEventCodec(s Serde) orderEventCodec {
	return orderEventCodec{s}
}

func (c orderEventCodec) Encode(v any) ([]byte, error) {
	const op = "orderEventCodec.Encode"
	if _, ok := v.(schema.OrderPlacedV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c orderEventCodec) Decode(data []byte) (any, error) {
	const op = "orderEventCodec.Decode"
	var s schema.OrderPlacedV1
	if err := c.serde.Decode(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

func newSalesCodec() goka.Codec {
	return schema.NewAvroCodec[schema.ProductSalesV1](
		schema.ProductSalesV1Avro(),
	)
}

// A SalesProcessor splits placed orders into per-product deltas
// through the loopback topic and keeps running totals in the group table.
type SalesProcessor struct {
	opPrefix string
	proc     processor
}

func NewSalesProc(
	seedBrokers []string,
	ordersStream string,
	group string,
	orderSerde Serde,
) (*SalesProcessor, error) {
	const op = "NewSalesProc"

	p := SalesProcessor{opPrefix: "SalesProcessor"}

	gg := p.groupGraph(ordersStream, group, orderSerde)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{opPrefix: p.opPrefix, gp: gp}
	return &p, nil
}

func (p *SalesProcessor) groupGraph(
	ordersStream, group string, orderSerde Serde,
) *goka.GroupGraph {
	return goka.DefineGroup(goka.Group(group),
		goka.Input(
			goka.Stream(ordersStream),
			newOrderEventCodec(orderSerde),
			p.splitOrderFn,
		),
		goka.Loopback(newSalesCodec(), p.accumulateFn),
		goka.Persist(newSalesCodec()),
	)
}

func (p *SalesProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *SalesProcessor) Close() {
	p.proc.close()
}

func (p *SalesProcessor) splitOrderFn(ctx goka.Context, msg any) {
	const op = "splitOrderFn"

	order, ok := msg.(schema.OrderPlacedV1)
	if !ok {
		slog.Error("unexpected message", "op", makeOp(p.opPrefix, op))
		return
	}

	for _, d := range splitOrder(order) {
		ctx.Loopback(d.ProductID, d)
	}

	slog.Debug("order is split",
		"op", makeOp(p.opPrefix, op),
		"orderID", order.OrderID,
		"lines", len(order.Lines),
	)
}

func (p *SalesProcessor) accumulateFn(ctx goka.Context, msg any) {
	const op = "accumulateFn"

	delta, ok := msg.(schema.ProductSalesV1)
	if !ok {
		slog.Error("unexpected message", "op", makeOp(p.opPrefix, op))
		return
	}

	total, _ := ctx.Value().(schema.ProductSalesV1)
	ctx.SetValue(accumulate(total, delta))
}

// splitOrder returns one sales delta per order line.
func splitOrder(order schema.OrderPlacedV1) []schema.ProductSalesV1 {
	deltas := make([]schema.ProductSalesV1, 0, len(order.Lines))
	for _, l := range order.Lines {
		deltas = append(deltas, schema.ProductSalesV1{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  int64(l.Quantity),
			Revenue:   l.UnitPrice * int64(l.Quantity),
		})
	}
	return deltas
}

func accumulate(
	total, delta schema.ProductSalesV1,
) schema.ProductSalesV1 {
	total.ProductID = delta.ProductID
	total.Name = delta.Name
	total.Quantity += delta.Quantity
	total.Revenue += delta.Revenue
	return total
}
