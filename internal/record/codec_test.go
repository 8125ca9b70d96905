// internal/record/codec_test.go
//
// 編解碼測試：固定長度、round-trip、截斷與「任何位元組都能解碼」。
package record

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeMatchesLayout(t *testing.T) {
	assert.Equal(t, 220, Size)
	assert.Len(t, Encode(Account{}), Size)
}

func TestRoundTrip(t *testing.T) {
	cases := []Account{
		{},
		{Number: 1, Name: "Bank", Balance: 1_000_000_000, InterestRate: 0},
		{
			Number:       42,
			Name:         "Janusz",
			Surname:      "Kowalski",
			Address:      "ul. Marszałkowska 1, Warszawa",
			NationalID:   "90010112345",
			Balance:      DefaultLimits().MaxAccountValue(),
			Loan:         DefaultLimits().MaxLoanValue(),
			InterestRate: 0.1,
		},
		{Number: math.MaxUint32, Name: strings.Repeat("x", NameLen), InterestRate: 1},
	}
	for _, want := range cases {
		got := Decode(Encode(want))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestEncodeTruncatesText(t *testing.T) {
	a := Account{
		Number:     7,
		Name:       strings.Repeat("a", NameLen+10),
		Address:    strings.Repeat("b", AddressLen+1),
		NationalID: "123456789012345",
	}
	got := Decode(Encode(a))
	assert.Equal(t, strings.Repeat("a", NameLen), got.Name)
	assert.Equal(t, strings.Repeat("b", AddressLen), got.Address)
	assert.Equal(t, "123456789012", got.NationalID)
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	// 「ł」佔兩個位元組，截斷點落在中間時應退回到字元開頭
	s := strings.Repeat("a", NameLen-1) + "ł"
	got := Truncate(s, NameLen)
	assert.Equal(t, strings.Repeat("a", NameLen-1), got)

	assert.Equal(t, "ab", Truncate("ab\x00cd", 10))
	assert.Equal(t, "", Truncate("", 0))
}

func TestDecodeArbitraryBytes(t *testing.T) {
	buf := make([]byte, Size)
	for i := range buf {
		buf[i] = 0xff
	}
	a := Decode(buf)
	require.Equal(t, uint32(math.MaxUint32), a.Number)
	assert.Equal(t, int32(-1), a.Balance)
	assert.Equal(t, int32(-1), a.Loan)
	assert.True(t, math.IsNaN(float64(a.InterestRate)))
	assert.NotEqual(t, Valid, Validate(a, DefaultLimits()))
}

func TestNullRecordIsZeroValue(t *testing.T) {
	assert.Equal(t, make([]byte, Size), Encode(Account{}))
	assert.True(t, Decode(make([]byte, Size)).IsNull())
	assert.True(t, Account{Number: BankNumber}.IsBank())
}
