package domain

// Currency is one of the three closed currency codes the platform supports.
type Currency string

const (
	MMK Currency = "MMK"
	USD Currency = "USD"
	CNY Currency = "CNY"
)

// Currencies returns all supported currency codes in canonical order.
func Currencies() []Currency {
	return []Currency{MMK, USD, CNY}
}

func (c Currency) Valid() bool {
	switch c {
	case MMK, USD, CNY:
		return true
	}
	return false
}

// Amounts is a per-currency money mapping. Modelling it as a struct keeps
// every document written back to the store with exactly the three expected
// keys; a missing key in a stored document decodes to zero.
type Amounts struct {
	MMK float64 `json:"MMK"`
	USD float64 `json:"USD"`
	CNY float64 `json:"CNY"`
}

func (a Amounts) Get(c Currency) float64 {
	switch c {
	case MMK:
		return a.MMK
	case USD:
		return a.USD
	case CNY:
		return a.CNY
	}
	return 0
}

func (a *Amounts) Add(c Currency, v float64) {
	switch c {
	case MMK:
		a.MMK += v
	case USD:
		a.USD += v
	case CNY:
		a.CNY += v
	}
}

// Sub subtracts v clamping the result at zero. Paths that must not go
// negative check sufficiency before calling.
func (a *Amounts) Sub(c Currency, v float64) {
	switch c {
	case MMK:
		a.MMK = max(0, a.MMK-v)
	case USD:
		a.USD = max(0, a.USD-v)
	case CNY:
		a.CNY = max(0, a.CNY-v)
	}
}

// Flags is a per-currency boolean mapping, same closed-key shape as Amounts.
type Flags struct {
	MMK bool `json:"MMK"`
	USD bool `json:"USD"`
	CNY bool `json:"CNY"`
}

func (f Flags) Get(c Currency) bool {
	switch c {
	case MMK:
		return f.MMK
	case USD:
		return f.USD
	case CNY:
		return f.CNY
	}
	return false
}

func (f *Flags) Set(c Currency, v bool) {
	switch c {
	case MMK:
		f.MMK = v
	case USD:
		f.USD = v
	case CNY:
		f.CNY = v
	}
}
