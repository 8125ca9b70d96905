// internal/search/search.go

// Package search 以線性掃描找出符合部分欄位樣式的帳戶。
// 不建索引，每次搜尋都從頭掃過整個資料檔，成本為 O(帳戶數)。
package search

import (
	"fmt"
	"iter"
	"strings"

	"ledger/internal/record"
)

// Scanner 為可依帳號順序逐筆列出記錄的來源，例如 *storage.Store。
type Scanner interface {
	Scan() iter.Seq2[record.Account, error]
}

// Pattern 為搜尋樣式。非空欄位以「前綴」比對，多個欄位以 AND 結合；空欄位視為萬用。
type Pattern struct {
	Name       string
	Surname    string
	Address    string
	NationalID string
}

// Empty 回報樣式是否沒有任何條件（會符合所有記錄）。
func (p Pattern) Empty() bool {
	return p == Pattern{}
}

// Match 判斷記錄是否符合樣式。樣式中輸入的每個字元都參與比對。
func (p Pattern) Match(a record.Account) bool {
	return prefix(a.Name, p.Name, record.NameLen) &&
		prefix(a.Surname, p.Surname, record.SurnameLen) &&
		prefix(a.Address, p.Address, record.AddressLen) &&
		prefix(a.NationalID, p.NationalID, record.NationalIDLen)
}

// 樣式先依欄位寬度截斷，與存檔時的截斷一致。
func prefix(field, pattern string, width int) bool {
	if pattern == "" {
		return true
	}
	return strings.HasPrefix(field, record.Truncate(pattern, width))
}

// Search 依儲存順序（帳號遞增）惰性回傳符合樣式的記錄。
// 每次 range 都會重新從頭掃描；來源回報錯誤時，錯誤會原樣交給呼叫端並結束序列。
func Search(src Scanner, p Pattern) iter.Seq2[record.Account, error] {
	return func(yield func(record.Account, error) bool) {
		for a, err := range src.Scan() {
			if err != nil {
				yield(record.Account{}, err)
				return
			}
			if !p.Match(a) {
				continue
			}
			if !yield(a, nil) {
				return
			}
		}
	}
}

// Field 為單一欄位搜尋時可選的欄位。
type Field string

const (
	FieldName       Field = "name"
	FieldSurname    Field = "surname"
	FieldAddress    Field = "address"
	FieldNationalID Field = "id"
)

// ByField 建立只比對單一欄位的樣式。
func ByField(f Field, value string) (Pattern, error) {
	switch f {
	case FieldName:
		return Pattern{Name: value}, nil
	case FieldSurname:
		return Pattern{Surname: value}, nil
	case FieldAddress:
		return Pattern{Address: value}, nil
	case FieldNationalID:
		return Pattern{NationalID: value}, nil
	}
	return Pattern{}, fmt.Errorf("unknown search field %q", f)
}
