package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyMarshalsWithTwoPlaces(t *testing.T) {
	cases := map[string]string{
		"250":    `"250.00"`,
		"110.5":  `"110.50"`,
		"116.70": `"116.70"`,
		"0":      `"0.00"`,
	}
	for in, want := range cases {
		buf, err := json.Marshal(NewMoney(decimal.RequireFromString(in)))
		require.NoError(t, err)
		assert.Equal(t, want, string(buf), "input %s", in)
	}
}

func TestMoneyUnmarshal(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"250.00"`), &m))
	assert.True(t, m.Equal(decimal.RequireFromString("250")))
}
