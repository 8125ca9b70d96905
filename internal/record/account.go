// internal/record/account.go

// Package record 定義帳戶記錄的固定長度二進位格式、欄位上限與合法性檢查。
// 本套件不碰檔案 I/O，只負責「一筆記錄長什麼樣子」。
package record

// 文字欄位的最大位元組長度（不含結尾 0）。
const (
	NameLen       = 32
	SurnameLen    = 32
	AddressLen    = 128
	NationalIDLen = 12
)

// 保留的帳號。
const (
	NullNumber uint32 = 0 // slot 0：空記錄，代表「沒有帳戶」
	BankNumber uint32 = 1 // slot 1：銀行本身，所有貸款的對手帳戶
)

// Account represents one fixed-size ledger record.
type Account struct {
	Number       uint32  `json:"number"`
	Name         string  `json:"name"`
	Surname      string  `json:"surname"`
	Address      string  `json:"address"`
	NationalID   string  `json:"national_id"`
	Balance      int32   `json:"balance"`
	Loan         int32   `json:"loan"`
	InterestRate float32 `json:"interest_rate"`
}

// IsNull 回報是否為空記錄（帳號 0）。
func (a Account) IsNull() bool {
	return a.Number == NullNumber
}

// IsBank 回報是否為銀行帳戶。
func (a Account) IsBank() bool {
	return a.Number == BankNumber
}
