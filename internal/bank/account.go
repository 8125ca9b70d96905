// internal/bank/account.go
//
// 單筆帳戶的載入與合法性確認，不含任何檔案細節。

package bank

import (
	"fmt"

	"ledger/internal/record"
	"ledger/internal/storage"
)

// Account represents a ledger account.
type Account = record.Account

// load 讀取帳號 n 並確認存放的記錄可信：位置相符且通過合法性檢查。
// 不可信的記錄回傳 *storage.CorruptionError，不做任何修正。
func (b *Bank) load(n uint32) (Account, error) {
	a, err := b.store.Read(n)
	if err != nil {
		return Account{}, err
	}
	if a.Number != n {
		return Account{}, &storage.CorruptionError{
			Slot: n, Stored: a.Number, Record: a,
			Reason: fmt.Sprintf("slot holds account number %d", a.Number),
		}
	}
	if o := record.Validate(a, b.limits); o != record.Valid {
		return Account{}, &storage.CorruptionError{
			Slot: n, Stored: a.Number, Outcome: o, Record: a, Reason: o.String(),
		}
	}
	return a, nil
}

// check 以帳號 n 的身分驗證記錄，回傳 *ValidationError 或 nil。
func (b *Bank) check(n uint32, a Account) error {
	a.Number = n
	if o := record.Validate(a, b.limits); o != record.Valid {
		return &ValidationError{Reason: reasonFor(o), Slot: n}
	}
	return nil
}

// checkFixture 驗證 reset 用的銀行帳戶與種子帳戶。
func (b *Bank) checkFixture(bank Account, seed []Account) error {
	if err := b.check(record.BankNumber, bank); err != nil {
		return fmt.Errorf("bank account: %w", err)
	}
	for i, a := range seed {
		n := record.BankNumber + uint32(i) + 1
		if err := b.check(n, a); err != nil {
			return fmt.Errorf("seed account %d: %w", i, err)
		}
	}
	return nil
}
