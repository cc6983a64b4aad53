package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/arkanharyo/laundry-ledger/internal/domain"
)

// Engine computes order prices from the configured tariff. It is a pure
// calculator: it never validates the weight and has no failure modes;
// callers reject non-positive weights before asking for a price.
type Engine struct {
	fullServiceRate   decimal.Decimal
	standardRate      decimal.Decimal
	expressMultiplier decimal.Decimal
}

func NewEngine(fullServiceRate, standardRate, expressMultiplier float64) *Engine {
	return &Engine{
		fullServiceRate:   decimal.NewFromFloat(fullServiceRate),
		standardRate:      decimal.NewFromFloat(standardRate),
		expressMultiplier: decimal.NewFromFloat(expressMultiplier),
	}
}

// Price is rate × weight, times the express multiplier for express
// orders. Wash-only and ironed-only orders are priced at the same
// standard rate; only full service carries the higher rate.
func (e *Engine) Price(weight decimal.Decimal, service domain.ServiceType, txnType domain.TransactionType) decimal.Decimal {
	rate := e.standardRate
	if service == domain.ServiceFullService {
		rate = e.fullServiceRate
	}

	price := rate.Mul(weight)
	if txnType == domain.TypeExpress {
		price = price.Mul(e.expressMultiplier)
	}
	return price
}
