package usecase

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"agency_configurator/internal/usecase/interfaces"
)

const orderIDSequenceSpan = 10000

// OrderIDGenerator builds ids like ORD-20240521-134501-0042 from the UTC
// clock and an in-process sequence. The sequence starts at a random point so
// two instances rarely produce the same id within one second.
type OrderIDGenerator struct {
	prefix string
	now    func() time.Time
	seq    atomic.Uint32
}

var _ interfaces.IOrderIDGenerator = (*OrderIDGenerator)(nil)

func NewOrderIDGenerator(prefix string) *OrderIDGenerator {
	return newOrderIDGenerator(prefix, time.Now, uint32(rand.IntN(orderIDSequenceSpan)))
}

func newOrderIDGenerator(prefix string, now func() time.Time, start uint32) *OrderIDGenerator {
	if prefix == "" {
		prefix = "ORD"
	}
	g := &OrderIDGenerator{prefix: prefix, now: now}
	g.seq.Store(start)
	return g
}

func (g *OrderIDGenerator) Next() string {
	n := g.seq.Add(1) % orderIDSequenceSpan
	return fmt.Sprintf("%s-%s-%04d", g.prefix, g.now().UTC().Format("20060102-150405"), n)
}
