package priceformat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	req := require.New(t)

	f := NewFormatter(&FormatterCfg{Symbol: "€", Exponent: 2})

	req.Equal("€1.00", f.Format(100))
	req.Equal("€0.05", f.Format(5))
	req.Equal("€12345.67", f.Format(1234567))
	req.Equal("€0.00", f.Format(0))

	plain := NewFormatter(&FormatterCfg{Exponent: 0})
	req.Equal("150", plain.Format(150))
}
