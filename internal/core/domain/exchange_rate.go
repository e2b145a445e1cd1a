package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ExchangeRate is an immutable value describing the relation
//
//	baseAmount * factor = termAmount
//
// between two currencies. It carries the ConversionContext it originated from
// and, when the rate was derived by triangulation, the ordered chain of
// constituent rates it was composed of. Instances are created exclusively via
// ExchangeRateBuilder.Build and are safe to share across goroutines.
type ExchangeRate struct {
	context   ConversionContext
	base      string
	term      string
	factor    decimal.Decimal
	rateChain []ExchangeRate
}

// ConversionContext returns the provenance context of this rate.
func (r ExchangeRate) ConversionContext() ConversionContext {
	return r.context
}

// BaseCurrency returns the currency code the rate converts from.
func (r ExchangeRate) BaseCurrency() string {
	return r.base
}

// TermCurrency returns the currency code the rate converts to.
func (r ExchangeRate) TermCurrency() string {
	return r.term
}

// Factor returns the conversion factor, such that base * factor = term.
func (r ExchangeRate) Factor() decimal.Decimal {
	return r.factor
}

// IsDerived reports whether this rate was composed from a chain of
// constituent rates rather than quoted directly.
func (r ExchangeRate) IsDerived() bool {
	return len(r.rateChain) > 0
}

// RateChain returns the ordered constituent rates this rate was composed of.
// The returned slice is a copy; mutating it does not affect the rate. An empty
// result means the rate is a direct (terminal) quotation.
func (r ExchangeRate) RateChain() []ExchangeRate {
	if len(r.rateChain) == 0 {
		return nil
	}
	out := make([]ExchangeRate, len(r.rateChain))
	copy(out, r.rateChain)
	return out
}

// Equal reports whether two rates agree on context, currencies, factor and
// constituent chain. Factors are compared by numeric value, so 1.2 and 1.20
// are considered equal.
func (r ExchangeRate) Equal(other ExchangeRate) bool {
	if r.base != other.base || r.term != other.term {
		return false
	}
	if !r.factor.Equal(other.factor) {
		return false
	}
	if !r.context.Equal(other.context) {
		return false
	}
	if len(r.rateChain) != len(other.rateChain) {
		return false
	}
	for i := range r.rateChain {
		if !r.rateChain[i].Equal(other.rateChain[i]) {
			return false
		}
	}
	return true
}

func (r ExchangeRate) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ExchangeRate[%s -> %s, factor=%s, %s", r.base, r.term, r.factor, r.context)
	if r.IsDerived() {
		path := make([]string, 0, len(r.rateChain)+1)
		path = append(path, r.base)
		for _, leg := range r.rateChain {
			path = append(path, leg.term)
		}
		fmt.Fprintf(&b, ", via %s", strings.Join(path, "->"))
	}
	b.WriteString("]")
	return b.String()
}
