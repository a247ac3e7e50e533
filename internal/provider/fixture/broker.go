package fixture

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal-engine/internal/provider"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
)

// Order is an order accepted by the paper broker.
type Order struct {
	ID       string
	Proposal types.TradeProposal
	FilledAt time.Time
}

// PaperBroker fills every valid limit order at its limit price into the fixture book.
type PaperBroker struct {
	fixture *Fixture

	mu     sync.Mutex
	orders []Order
	closed []string
}

var _ provider.Broker = (*PaperBroker)(nil)

// NewPaperBroker creates a broker that trades against the fixture's book.
func NewPaperBroker(f *Fixture) *PaperBroker {
	return &PaperBroker{fixture: f, mu: sync.Mutex{}, orders: nil, closed: nil}
}

// PlaceLimitOrder implements provider.Broker. Invalid proposals are not accepted.
func (b *PaperBroker) PlaceLimitOrder(ctx context.Context, proposal types.TradeProposal) (optional.Option[string], error) {
	if err := proposal.Validate(); err != nil {
		return optional.None[string](), err
	}

	order := Order{ID: uuid.NewString(), Proposal: proposal, FilledAt: b.fixture.Now()}

	b.mu.Lock()
	b.orders = append(b.orders, order)
	b.mu.Unlock()

	if proposal.Side == types.SideBuy {
		b.fixture.fill(types.Position{
			Symbol:         proposal.Symbol,
			AssetType:      proposal.AssetType,
			Quantity:       proposal.Quantity,
			AvgEntryPrice:  proposal.LimitPrice,
			CurrentPrice:   proposal.LimitPrice,
			MarketValue:    proposal.Notional(),
			UnrealizedPLPC: 0,
			Sector:         b.fixture.GetSector(ctx, proposal.Symbol).TakeOr(""),
		})
	}

	return optional.Some(order.ID), nil
}

// ClosePosition implements provider.Broker.
func (b *PaperBroker) ClosePosition(_ context.Context, symbol string) (bool, error) {
	if !b.fixture.close(symbol) {
		return false, nil
	}

	b.mu.Lock()
	b.closed = append(b.closed, symbol)
	b.mu.Unlock()

	return true, nil
}

// Orders returns the accepted orders in submission order.
func (b *PaperBroker) Orders() []Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]Order(nil), b.orders...)
}

// Closed returns the symbols closed so far in order.
func (b *PaperBroker) Closed() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]string(nil), b.closed...)
}
