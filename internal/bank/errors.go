// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 這些錯誤屬於商業邏輯層級，由上層命令列轉換成訊息與結束碼；
// 儲存層錯誤（storage.ErrIO、storage.ErrCorrupt）則原樣向上傳遞。

package bank

import (
	"errors"
	"fmt"

	"ledger/internal/record"
	"ledger/internal/storage"
)

var (
	// ErrNotFound 代表帳戶不存在（與 storage.ErrNotFound 為同一個值）。
	ErrNotFound = storage.ErrNotFound

	// ErrBadAmount 代表金額非法（<= 0）。
	ErrBadAmount error = &ValidationError{Reason: ReasonAmount}

	// ErrInsufficient 代表餘額不足，導致提款、轉帳或還款失敗。
	ErrInsufficient = errors.New("insufficient balance")

	// ErrNoLoan 代表帳戶沒有未償還的貸款。
	ErrNoLoan = errors.New("no outstanding loan")

	// ErrOverpayment 代表還款金額大於貸款餘額。
	ErrOverpayment = errors.New("repayment exceeds outstanding loan")

	// ErrReserveExhausted 代表銀行帳戶的準備金不足以放款。
	ErrReserveExhausted = errors.New("bank reserve exhausted")

	// ErrCapacityExceeded 代表單筆上限或帳戶/貸款上限會被突破。
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrSameAccount 代表轉帳來源與目標帳戶相同。
	ErrSameAccount = errors.New("from and to are same")

	// ErrReservedAccount 代表對銀行帳戶本身借款或還款。
	ErrReservedAccount = errors.New("operation not allowed on the bank account")
)

// Reason 為 ValidationError 的分類。
type Reason int

const (
	ReasonAmount  Reason = iota + 1 // 金額必須 > 0
	ReasonBalance                   // 餘額超出 [0, MaxAccountValue]
	ReasonLoan                      // 貸款超出 [0, MaxLoanValue]
	ReasonRate                      // 利率超出 [0, 1]
)

func (r Reason) String() string {
	switch r {
	case ReasonAmount:
		return "amount must be > 0"
	case ReasonBalance:
		return "balance out of range"
	case ReasonLoan:
		return "loan out of range"
	case ReasonRate:
		return "interest rate out of range"
	}
	return "invalid"
}

// ValidationError 代表參數或運算結果違反欄位範圍。
// errors.Is 只比對 Reason，Slot 僅供訊息使用。
type ValidationError struct {
	Reason Reason
	Slot   uint32
}

func (e *ValidationError) Error() string {
	if e.Slot == 0 {
		return e.Reason.String()
	}
	return fmt.Sprintf("account %d: %s", e.Slot, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Reason == e.Reason
}

func reasonFor(o record.Outcome) Reason {
	switch o {
	case record.BalanceOutOfRange:
		return ReasonBalance
	case record.LoanOutOfRange:
		return ReasonLoan
	case record.RateOutOfRange:
		return ReasonRate
	}
	return 0
}

// PartialWriteError 代表雙記錄操作只寫入了前半段。
// Written 為已落地的帳號，Failed 為寫入失敗的帳號；不會自動補償，
// 兩筆記錄間的總額守恆此時已被破壞，需由操作者處理。
type PartialWriteError struct {
	Op      string
	Written []uint32
	Failed  uint32
	Err     error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%s: accounts %v written, account %d not written: %v", e.Op, e.Written, e.Failed, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
