// internal/record/validate.go
//
// 記錄合法性檢查。新增帳戶、原地修改、啟動時的完整性掃描共用同一組規則。

package record

import "math"

// Outcome 為 Validate 的分類結果。
type Outcome int

const (
	Valid Outcome = iota
	NullAccount
	BalanceOutOfRange
	LoanOutOfRange
	RateOutOfRange
)

func (o Outcome) String() string {
	switch o {
	case Valid:
		return "valid"
	case NullAccount:
		return "null account"
	case BalanceOutOfRange:
		return "balance out of range"
	case LoanOutOfRange:
		return "loan out of range"
	case RateOutOfRange:
		return "interest rate out of range"
	default:
		return "unknown"
	}
}

// Validate 依序檢查帳號、餘額、貸款與利率，回傳第一個不符合的項目。
//   - 帳號 0 → NullAccount（不是錯誤，僅代表「沒有帳戶」）
//   - 餘額不在 [0, MaxAccountValue] → BalanceOutOfRange
//   - 貸款不在 [0, MaxLoanValue] → LoanOutOfRange
//   - 利率不在 [0, 1]（含 NaN）→ RateOutOfRange
func Validate(a Account, l Limits) Outcome {
	switch {
	case a.Number == NullNumber:
		return NullAccount
	case a.Balance < 0 || a.Balance > l.MaxAccountValue():
		return BalanceOutOfRange
	case a.Loan < 0 || a.Loan > l.MaxLoanValue():
		return LoanOutOfRange
	case math.IsNaN(float64(a.InterestRate)) || a.InterestRate < 0 || a.InterestRate > 1:
		return RateOutOfRange
	}
	return Valid
}
