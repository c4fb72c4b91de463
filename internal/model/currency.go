package model

// Currency is an ISO currency code carried by every amount.
type Currency string

const (
	CurrencyCAD Currency = "CAD"
	CurrencyUSD Currency = "USD"
)

// Currencies lists the supported currency codes.
func Currencies() []Currency {
	return []Currency{CurrencyCAD, CurrencyUSD}
}

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	return c == CurrencyCAD || c == CurrencyUSD
}
