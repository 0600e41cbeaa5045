package entity

// CurrencyCode identifies one of the currencies the shop trades in
type CurrencyCode string

const (
	// USD is the United States dollar
	USD CurrencyCode = "USD"
	// GBP is the British pound sterling
	GBP CurrencyCode = "GBP"
	// NGN is the Nigerian naira
	NGN CurrencyCode = "NGN"
)

// DefaultCurrency is assumed when a transaction is created without one
const DefaultCurrency = NGN

// Valid reports whether the code is one of the supported currencies
func (c CurrencyCode) Valid() bool {
	switch c {
	case USD, GBP, NGN:
		return true
	}
	return false
}
