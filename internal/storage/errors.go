// internal/storage/errors.go
//
// 儲存層錯誤。I/O 失敗一律包成 ErrIO（同時保留底層 os 錯誤），
// 資料不可信時回傳 *CorruptionError，交由操作者處理，本層絕不自動修復。

package storage

import (
	"errors"
	"fmt"

	"ledger/internal/record"
)

var (
	// ErrNotFound 代表帳號沒有對應的有效記錄（0 或超過目前帳戶數）。
	ErrNotFound = errors.New("account not found")

	// ErrNotInitialized 代表資料檔不存在或為空，需要先 reset。
	ErrNotInitialized = errors.New("ledger file not initialized")

	// ErrIO 代表開檔、定位、讀寫或 fsync 失敗。
	ErrIO = errors.New("ledger i/o failure")

	// ErrCorrupt 為所有 *CorruptionError 的比對目標。
	ErrCorrupt = errors.New("ledger corrupted")
)

// CorruptionError 描述第一筆不可信的記錄。
type CorruptionError struct {
	Slot    uint32         // 發現問題的位置
	Stored  uint32         // 該位置實際存放的帳號
	Outcome record.Outcome // 合法性檢查結果；位置不符時為 record.Valid
	Record  record.Account // 解出的原始記錄
	Reason  string
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("corrupt record at slot %d: %s", e.Slot, e.Reason)
}

// Is 讓 errors.Is(err, ErrCorrupt) 成立。
func (e *CorruptionError) Is(target error) bool {
	return target == ErrCorrupt
}

func positionMismatch(slot uint32, a record.Account) *CorruptionError {
	return &CorruptionError{
		Slot:   slot,
		Stored: a.Number,
		Record: a,
		Reason: fmt.Sprintf("slot holds account number %d", a.Number),
	}
}

func invalidRecord(slot uint32, a record.Account, o record.Outcome) *CorruptionError {
	return &CorruptionError{
		Slot:    slot,
		Stored:  a.Number,
		Outcome: o,
		Record:  a,
		Reason:  o.String(),
	}
}

func ioError(op string, slot uint32, err error) error {
	return fmt.Errorf("%s slot %d: %w: %w", op, slot, ErrIO, err)
}
