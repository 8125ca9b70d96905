// internal/storage/scan.go

package storage

import (
	"bufio"
	"io"
	"iter"
	"os"

	"ledger/internal/record"
)

// Scan 依帳號遞增順序逐筆回傳 slot 1..Live() 的記錄。
// 每次迭代都重新開檔、從頭讀起；讀取失敗時以 error 結束序列。
func (s *Store) Scan() iter.Seq2[record.Account, error] {
	return func(yield func(record.Account, error) bool) {
		s.each(record.BankNumber, func(_ uint32, a record.Account, err error) bool {
			return yield(a, err)
		})
	}
}

// Check 為啟動時的完整性掃描：
//   - slot 0 必須是空記錄
//   - 每個 slot 的帳號必須等於其位置
//   - 每筆非空記錄都必須通過 record.Validate
//   - 檔案長度必須與帳戶數一致
//
// 遇到第一筆問題即停止並回傳 *CorruptionError，不做任何修正。
func (s *Store) Check(limits record.Limits) error {
	slots, err := s.slots()
	if err != nil {
		return err
	}
	if slots != s.dir.Live()+1 {
		return &CorruptionError{
			Slot:   slots - 1,
			Reason: "file length disagrees with live account count",
		}
	}

	var bad error
	s.each(record.NullNumber, func(n uint32, a record.Account, err error) bool {
		switch {
		case err != nil:
			bad = err
		case n == record.NullNumber && a != (record.Account{}):
			bad = &CorruptionError{Slot: n, Stored: a.Number, Record: a, Reason: "null slot is not empty"}
		case n == record.NullNumber:
		case a.Number != n:
			bad = positionMismatch(n, a)
		default:
			if o := record.Validate(a, limits); o != record.Valid {
				bad = invalidRecord(n, a, o)
			}
		}
		return bad == nil
	})
	return bad
}

// each 自 first 起讀到 Live()，fn 回傳 false 即停止。
func (s *Store) each(first uint32, fn func(uint32, record.Account, error) bool) {
	f, err := os.Open(s.path)
	if err != nil {
		fn(first, record.Account{}, ioError("scan", first, err))
		return
	}
	defer f.Close()

	live := s.dir.Live()
	if first > live {
		return
	}
	count := int64(live-first) + 1
	r := bufio.NewReaderSize(io.NewSectionReader(f, offset(first), count*record.Size), 64*record.Size)
	buf := make([]byte, record.Size)
	for n := first; n <= live; n++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			fn(n, record.Account{}, ioError("scan", n, err))
			return
		}
		if !fn(n, record.Decode(buf), nil) {
			return
		}
	}
}
