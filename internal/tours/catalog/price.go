package catalog

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Label formats the amount for display: "$45" for dollars and
// "IDR 1.250.000" for rupiah.
func (p Price) Label() string {
	switch p.Currency {
	case CurrencyIDR:
		return "IDR " + message.NewPrinter(language.Indonesian).Sprintf("%d", p.Amount)
	default:
		return message.NewPrinter(language.AmericanEnglish).Sprintf("$%d", p.Amount)
	}
}

// Less orders prices with the same currency by amount. Prices in different
// currencies order by currency code.
func (p Price) Less(other Price) bool {
	if p.Currency != other.Currency {
		return p.Currency < other.Currency
	}
	return p.Amount < other.Amount
}
