// internal/storage/directory.go

package storage

import "ledger/internal/record"

// Directory 追蹤目前的帳戶數（含銀行帳戶、不含 slot 0），是合法帳號的上界。
// 由 Store 持有：開檔時由最後一筆記錄初始化，每次成功 Append 後加一。
// 若檔案已變長但計數未更新，即為 Store.Check 會回報的不一致。
type Directory struct {
	live uint32
}

// Live 回傳目前的帳戶數。
func (d *Directory) Live() uint32 { return d.live }

// Bank 回傳銀行帳戶的帳號（固定為 1）。
func (d *Directory) Bank() uint32 { return record.BankNumber }

// Contains 判斷 n 是否為現存帳號。
func (d *Directory) Contains(n uint32) bool {
	return n != record.NullNumber && n <= d.live
}

// Next 回傳下一個 Append 會分配的帳號。
func (d *Directory) Next() uint32 { return d.live + 1 }

func (d *Directory) reset()   { d.live = record.BankNumber }
func (d *Directory) advance() { d.live++ }
