package coin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr bool
	}{
		"valid coin":          {coin: NewCoin(1, 0, "IOV")},
		"valid zero":          {coin: NewCoin(0, 0, "IOV")},
		"valid fraction only": {coin: NewCoin(0, 5, "IOV")},
		"valid negative":      {coin: NewCoin(-10, -5, "IOV")},
		"missing ticker":      {coin: NewCoin(1, 0, ""), wantErr: true},
		"lowercase ticker":    {coin: NewCoin(1, 0, "iov"), wantErr: true},
		"too long ticker":     {coin: NewCoin(1, 0, "FIVER"), wantErr: true},
		"whole too large":     {coin: NewCoin(MaxInt+1, 0, "IOV"), wantErr: true},
		"fraction too large":  {coin: NewCoin(0, FracUnit, "IOV"), wantErr: true},
		"mismatched signs":    {coin: NewCoin(3, -2, "IOV"), wantErr: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coin.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCoinAdd(t *testing.T) {
	sum, err := NewCoin(1, 500000000, "IOV").Add(NewCoin(2, 600000000, "IOV"))
	require.NoError(t, err)
	assert.True(t, NewCoin(4, 100000000, "IOV").Equals(sum))

	// a zero coin adopts the other ticker
	sum, err = Coin{}.Add(NewCoin(3, 0, "IOV"))
	require.NoError(t, err)
	assert.Equal(t, "IOV", sum.Ticker)

	// mixing currencies fails
	_, err = NewCoin(1, 0, "IOV").Add(NewCoin(1, 0, "ETH"))
	assert.Error(t, err)

	// overflow fails
	_, err = NewCoin(MaxInt, 0, "IOV").Add(NewCoin(1, 0, "IOV"))
	assert.Error(t, err)
}

func TestCoinSubtract(t *testing.T) {
	diff, err := NewCoin(5, 0, "IOV").Subtract(NewCoin(2, 500000000, "IOV"))
	require.NoError(t, err)
	assert.True(t, NewCoin(2, 500000000, "IOV").Equals(diff))

	// negative results are allowed
	diff, err = NewCoin(1, 0, "IOV").Subtract(NewCoin(2, 0, "IOV"))
	require.NoError(t, err)
	assert.True(t, diff.Compare(Coin{Ticker: "IOV"}) < 0)

	// a value minus itself is zero
	diff, err = NewCoin(7, 8, "IOV").Subtract(NewCoin(7, 8, "IOV"))
	require.NoError(t, err)
	assert.True(t, diff.IsZero())
}

func TestCoinCompare(t *testing.T) {
	assert.Equal(t, 1, NewCoin(2, 0, "IOV").Compare(NewCoin(1, 0, "IOV")))
	assert.Equal(t, -1, NewCoin(1, 0, "IOV").Compare(NewCoin(1, 1, "IOV")))
	assert.Equal(t, 0, NewCoin(1, 2, "IOV").Compare(NewCoin(1, 2, "IOV")))
}

func TestCoinPredicates(t *testing.T) {
	assert.True(t, NewCoin(0, 1, "IOV").IsPositive())
	assert.False(t, NewCoin(0, 0, "IOV").IsPositive())
	assert.False(t, NewCoin(-1, 0, "IOV").IsPositive())

	assert.True(t, NewCoin(0, 0, "IOV").IsNonNegative())
	assert.False(t, NewCoin(0, -1, "IOV").IsNonNegative())

	assert.True(t, NewCoin(2, 0, "IOV").IsGTE(NewCoin(2, 0, "IOV")))
	assert.True(t, NewCoin(2, 1, "IOV").IsGTE(NewCoin(2, 0, "IOV")))
	assert.False(t, NewCoin(2, 0, "IOV").IsGTE(NewCoin(2, 1, "IOV")))
	assert.False(t, NewCoin(2, 0, "IOV").IsGTE(NewCoin(2, 0, "ETH")))
}

func TestCoinClone(t *testing.T) {
	orig := NewCoinp(1, 2, "IOV")
	clone := orig.Clone()
	clone.Whole = 99
	assert.Equal(t, int64(1), orig.Whole)

	var nilCoin *Coin
	assert.Nil(t, nilCoin.Clone())
}

func TestCoinString(t *testing.T) {
	assert.Equal(t, "5 IOV", NewCoin(5, 0, "IOV").String())
	assert.Equal(t, "1.000000002 IOV", NewCoin(1, 2, "IOV").String())
}
