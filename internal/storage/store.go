// internal/storage/store.go
//
// Store 為定位式儲存：單一資料檔由固定長度記錄組成，帳號 N 位於偏移 N*record.Size。
//
//	slot 0  空記錄（全為 0）
//	slot 1  銀行帳戶
//	slot 2… 使用者帳戶，依建立順序追加
//
// 每個操作都是「開檔 → 一次定位讀或寫 → 關檔」，不保留長期 file handle；
// 寫入後立即 fsync。單一寫入者，不提供任何鎖。
package storage

import (
	"errors"
	"io"
	"os"

	"ledger/internal/record"
)

const filePerm = 0o644

// Store 為帳戶資料檔的定位式存取層。
type Store struct {
	path string
	dir  Directory
}

// Open 開啟既有資料檔，並以最後一筆記錄恢復帳戶數。
// 檔案不存在或為空時回傳 ErrNotInitialized。
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	slots, err := s.slots()
	if err != nil {
		return nil, err
	}
	if slots < 2 {
		return nil, &CorruptionError{Slot: record.BankNumber, Reason: "bank account missing"}
	}
	last, err := s.readSlot(slots - 1)
	if err != nil {
		return nil, err
	}
	if last.Number != slots-1 {
		return nil, positionMismatch(slots-1, last)
	}
	s.dir.live = last.Number
	return s, nil
}

// Create 建立（或覆寫）資料檔，內容為空記錄、銀行帳戶與種子帳戶。
func Create(path string, bank record.Account, seed ...record.Account) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reset(bank, seed...); err != nil {
		return nil, err
	}
	return s, nil
}

// Path 回傳資料檔路徑。
func (s *Store) Path() string { return s.path }

// Directory 回傳帳戶目錄（唯讀使用）。
func (s *Store) Directory() *Directory { return &s.dir }

// Live 等同 s.Directory().Live()。
func (s *Store) Live() uint32 { return s.dir.Live() }

// Reset 截斷資料檔，只留下 slot 0 空記錄與 slot 1 銀行帳戶，再依序追加種子帳戶。
// 銀行帳戶的帳號一律改為 1，種子帳戶的帳號由 Append 分配。
func (s *Store) Reset(bank record.Account, seed ...record.Account) error {
	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return ioError("reset", 0, err)
	}
	bank.Number = record.BankNumber
	buf := make([]byte, 2*record.Size)
	record.EncodeTo(buf[record.Size:], bank)
	if _, err := f.WriteAt(buf, 0); err != nil {
		f.Close()
		return ioError("reset", 0, err)
	}
	if err := syncClose(f); err != nil {
		return ioError("reset", 0, err)
	}
	s.dir.reset()

	for _, a := range seed {
		if _, err := s.Append(a); err != nil {
			return err
		}
	}
	return nil
}

// Read 讀取帳號 n 的記錄。n 為 0 或大於目前帳戶數時回傳 ErrNotFound。
func (s *Store) Read(n uint32) (record.Account, error) {
	if !s.dir.Contains(n) {
		return record.Account{}, ErrNotFound
	}
	return s.readSlot(n)
}

// ReadLast 讀取檔尾最後一筆記錄；其帳號與目前帳戶數不符時回傳 *CorruptionError。
func (s *Store) ReadLast() (record.Account, error) {
	a, slot, err := s.readLast()
	if err != nil {
		return record.Account{}, err
	}
	if a.Number != s.dir.Live() || slot != s.dir.Live() {
		return a, positionMismatch(slot, a)
	}
	return a, nil
}

// Append 將記錄寫到檔尾（slot Live()+1），帳號強制設為該值（忽略呼叫端給的值），
// 寫入後以 ReadLast 確認，成功才更新帳戶數。
func (s *Store) Append(a record.Account) (uint32, error) {
	n := s.dir.Next()
	slots, err := s.slots()
	if err != nil {
		return 0, err
	}
	if slots != n {
		// 檔案長度與帳戶數已不一致，寫入只會覆蓋別人的記錄
		return 0, &CorruptionError{Slot: slots - 1, Reason: "file length disagrees with live account count"}
	}
	a.Number = n
	if err := s.writeSlot(n, a); err != nil {
		return 0, err
	}
	last, slot, err := s.readLast()
	if err != nil {
		return 0, err
	}
	if last.Number != n || slot != n {
		return 0, positionMismatch(slot, last)
	}
	s.dir.advance()
	return n, nil
}

// WriteAt 原地覆寫帳號 n 的記錄，帳號欄位一律改為 n（位置為準）。
// slot 0 只能由 Reset 寫入。
func (s *Store) WriteAt(n uint32, a record.Account) error {
	if !s.dir.Contains(n) {
		return ErrNotFound
	}
	a.Number = n
	return s.writeSlot(n, a)
}

// slots 回傳檔案目前容納的記錄數（含 slot 0）。
func (s *Store) slots() (uint32, error) {
	fi, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, ErrNotInitialized
	}
	if err != nil {
		return 0, ioError("stat", 0, err)
	}
	size := fi.Size()
	if size == 0 {
		return 0, ErrNotInitialized
	}
	if size%record.Size != 0 {
		return 0, &CorruptionError{
			Slot:   uint32(size / record.Size),
			Reason: "file size is not a whole number of records",
		}
	}
	return uint32(size / record.Size), nil
}

func (s *Store) readLast() (record.Account, uint32, error) {
	slots, err := s.slots()
	if err != nil {
		return record.Account{}, 0, err
	}
	a, err := s.readSlot(slots - 1)
	return a, slots - 1, err
}

func (s *Store) readSlot(n uint32) (record.Account, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return record.Account{}, ioError("read", n, err)
	}
	defer f.Close()

	buf := make([]byte, record.Size)
	if _, err := f.ReadAt(buf, offset(n)); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return record.Account{}, ioError("read", n, err)
	}
	return record.Decode(buf), nil
}

func (s *Store) writeSlot(n uint32, a record.Account) error {
	f, err := os.OpenFile(s.path, os.O_WRONLY, filePerm)
	if err != nil {
		return ioError("write", n, err)
	}
	if _, err := f.WriteAt(record.Encode(a), offset(n)); err != nil {
		f.Close()
		return ioError("write", n, err)
	}
	if err := syncClose(f); err != nil {
		return ioError("write", n, err)
	}
	return nil
}

func syncClose(f *os.File) error {
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func offset(n uint32) int64 {
	return int64(n) * record.Size
}
