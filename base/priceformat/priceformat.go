package priceformat

import (
	"github.com/shopspring/decimal"
)

// Formatter renders integer amounts kept in minor currency units
// (e.g. cents) as display strings.
type Formatter interface {
	Format(amount int64) string
}

type FormatterCfg struct {
	// Currency symbol prepended to the rendered amount, e.g. "€"
	Symbol string
	// Exponent is the number of minor-unit digits, e.g. 2 for cents
	Exponent int32
}

type impl struct {
	symbol   string
	exponent int32
}

func NewFormatter(cfg *FormatterCfg) Formatter {
	return &impl{
		symbol:   cfg.Symbol,
		exponent: cfg.Exponent,
	}
}

func (im *impl) Format(amount int64) string {
	d := decimal.New(amount, -im.exponent)
	return im.symbol + d.StringFixed(im.exponent)
}
