// internal/record/limits.go

package record

import (
	"errors"
	"fmt"
	"math"
)

// Limits 為單筆操作的金額上限。帳戶餘額與貸款餘額的上限由此推得，
// 保留一次最大存款（或借款）的空間，使 int32 永遠不會溢位。
type Limits struct {
	MaxDeposit  int32 `yaml:"max_deposit"`
	MaxWithdraw int32 `yaml:"max_withdraw"`
	MaxBorrow   int32 `yaml:"max_borrow"`
	MaxTransfer int32 `yaml:"max_transfer"`
}

// DefaultLimits returns the stock per-operation ceilings.
func DefaultLimits() Limits {
	return Limits{
		MaxDeposit:  1_000_000,
		MaxWithdraw: 1_000_000,
		MaxBorrow:   1_000_000,
		MaxTransfer: 1_000_000,
	}
}

// MaxAccountValue = INT32_MAX − MaxDeposit。
func (l Limits) MaxAccountValue() int32 {
	return math.MaxInt32 - l.MaxDeposit
}

// MaxLoanValue = INT32_MAX − MaxBorrow。
func (l Limits) MaxLoanValue() int32 {
	return math.MaxInt32 - l.MaxBorrow
}

// Validate 確認每個上限都落在 (0, INT32_MAX)。
func (l Limits) Validate() error {
	var errs []error
	check := func(name string, v int32) {
		if v <= 0 || v == math.MaxInt32 {
			errs = append(errs, fmt.Errorf("%s must be in (0, %d), got %d", name, int32(math.MaxInt32), v))
		}
	}
	check("max_deposit", l.MaxDeposit)
	check("max_withdraw", l.MaxWithdraw)
	check("max_borrow", l.MaxBorrow)
	check("max_transfer", l.MaxTransfer)
	return errors.Join(errs...)
}
