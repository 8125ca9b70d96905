// internal/record/codec.go
//
// 固定長度記錄編解碼。每筆記錄恰為 Size 位元組，帳號 N 的記錄位於檔案偏移 N*Size，
// 因此不需要任何索引即可 O(1) 定位。
//
// 版面（little-endian）：
//
//	offset  size  field
//	     0     4  number        uint32
//	     4    32  name          text
//	    36    32  surname       text
//	    68   128  address       text
//	   196    12  national_id   text
//	   208     4  balance       int32
//	   212     4  loan          int32
//	   216     4  interest_rate float32 (IEEE-754 bits)
package record

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	offNumber     = 0
	offName       = offNumber + 4
	offSurname    = offName + NameLen
	offAddress    = offSurname + SurnameLen
	offNationalID = offAddress + AddressLen
	offBalance    = offNationalID + NationalIDLen
	offLoan       = offBalance + 4
	offRate       = offLoan + 4

	// Size 為單筆記錄的位元組數。
	Size = offRate + 4
)

var order = binary.LittleEndian

// Encode 將帳戶序列化為長度 Size 的新位元組切片。
func Encode(a Account) []byte {
	buf := make([]byte, Size)
	EncodeTo(buf, a)
	return buf
}

// EncodeTo 將帳戶寫入 buf[:Size]；buf 長度不足時 panic（屬於呼叫端程式錯誤）。
// 文字欄位超過上限時會被截斷，其餘位元組補 0。
func EncodeTo(buf []byte, a Account) {
	buf = buf[:Size]
	clear(buf)
	order.PutUint32(buf[offNumber:], a.Number)
	putText(buf[offName:offName+NameLen], a.Name)
	putText(buf[offSurname:offSurname+SurnameLen], a.Surname)
	putText(buf[offAddress:offAddress+AddressLen], a.Address)
	putText(buf[offNationalID:offNationalID+NationalIDLen], a.NationalID)
	order.PutUint32(buf[offBalance:], uint32(a.Balance))
	order.PutUint32(buf[offLoan:], uint32(a.Loan))
	order.PutUint32(buf[offRate:], math.Float32bits(a.InterestRate))
}

// Decode 解析 buf[:Size]。任何 Size 位元組都能解出「某筆」記錄，
// 內容是否合理交給 Validate 判斷。
func Decode(buf []byte) Account {
	buf = buf[:Size]
	return Account{
		Number:       order.Uint32(buf[offNumber:]),
		Name:         getText(buf[offName : offName+NameLen]),
		Surname:      getText(buf[offSurname : offSurname+SurnameLen]),
		Address:      getText(buf[offAddress : offAddress+AddressLen]),
		NationalID:   getText(buf[offNationalID : offNationalID+NationalIDLen]),
		Balance:      int32(order.Uint32(buf[offBalance:])),
		Loan:         int32(order.Uint32(buf[offLoan:])),
		InterestRate: math.Float32frombits(order.Uint32(buf[offRate:])),
	}
}

// Truncate 將字串截到 limit 位元組以內，且不會切在 UTF-8 字元中間；
// 同時去掉第一個 0 位元組之後的內容，與解碼結果一致。
func Truncate(s string, limit int) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func putText(dst []byte, s string) {
	copy(dst, Truncate(s, len(dst)))
}

func getText(src []byte) string {
	if i := bytes.IndexByte(src, 0); i >= 0 {
		src = src[:i]
	}
	return string(src)
}
