// Package pricing holds the tax-inclusive total calculation shared by work
// orders, payments and the client-side display. Tax rates are whole
// percentages (8 means 8%) and are always divided by 100 before use.
//
// All arithmetic is exact decimal arithmetic; repeated sums never drift.
package pricing

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineItem is one quantity/price/tax-rate triple contributing to a total
type LineItem struct {
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	TaxRatePercent decimal.Decimal
}

// NewLineItem is a convenience constructor for tests and fixtures
func NewLineItem(quantity, unitPrice, taxRatePercent decimal.Decimal) LineItem {
	return LineItem{Quantity: quantity, UnitPrice: unitPrice, TaxRatePercent: taxRatePercent}
}

// DecimalFraction converts a whole-number percentage into a fraction
func DecimalFraction(ratePercent decimal.Decimal) decimal.Decimal {
	return ratePercent.Div(hundred)
}

// NetAmount returns quantity * unitPrice
func NetAmount(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// ItemTotal returns quantity * unitPrice * (1 + rate/100)
func ItemTotal(quantity, unitPrice, ratePercent decimal.Decimal) decimal.Decimal {
	return NetAmount(quantity, unitPrice).Mul(decimal.NewFromInt(1).Add(DecimalFraction(ratePercent)))
}

// TaxAmount returns quantity * unitPrice * rate/100
func TaxAmount(quantity, unitPrice, ratePercent decimal.Decimal) decimal.Decimal {
	return NetAmount(quantity, unitPrice).Mul(DecimalFraction(ratePercent))
}

// Total returns the tax-inclusive total of the item
func (i LineItem) Total() decimal.Decimal {
	return ItemTotal(i.Quantity, i.UnitPrice, i.TaxRatePercent)
}

// Tax returns the tax portion of the item
func (i LineItem) Tax() decimal.Decimal {
	return TaxAmount(i.Quantity, i.UnitPrice, i.TaxRatePercent)
}

// Net returns the pre-tax amount of the item
func (i LineItem) Net() decimal.Decimal {
	return NetAmount(i.Quantity, i.UnitPrice)
}

// AggregateTotal sums ItemTotal over items. With no items the precomputed
// stored total is returned instead of zero.
func AggregateTotal(items []LineItem, stored decimal.Decimal) decimal.Decimal {
	if len(items) == 0 {
		return stored
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total())
	}
	return total
}

// Subtotal sums the pre-tax amounts of items
func Subtotal(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Net())
	}
	return sum
}

// TotalTax sums the tax portions of items
func TotalTax(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Tax())
	}
	return sum
}

// Summary is the breakdown shown on work orders and invoices
type Summary struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Summarize returns subtotal, tax and total for items, falling back to the
// stored total when there are no items.
func Summarize(items []LineItem, stored decimal.Decimal) Summary {
	if len(items) == 0 {
		return Summary{Subtotal: stored, Tax: decimal.Zero, Total: stored}
	}
	return Summary{
		Subtotal: Subtotal(items),
		Tax:      TotalTax(items),
		Total:    AggregateTotal(items, stored),
	}
}
