// cmd/ledger/output.go
//
// 統一輸出格式：每筆帳戶一行、欄位以 tab 分隔，方便交給 cut/awk 處理。
// 表格排版不在此處理。

package main

import (
	"fmt"
	"io"
	"strconv"

	"ledger/internal/bank"
)

func writeAccount(w io.Writer, a bank.Account) {
	fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\tbalance=%d\tloan=%d\trate=%s\n",
		a.Number, a.Name, a.Surname, a.Address, a.NationalID,
		a.Balance, a.Loan, strconv.FormatFloat(float64(a.InterestRate), 'g', -1, 32))
}

func parseNumber(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid account number %q", s)
	}
	return uint32(n), nil
}

// parseAmount 只檢查格式；正負與上限交給 bank 判斷。
func parseAmount(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return int32(n), nil
}
