// cmd/ledger/main.go

// ledger 為帳本資料檔的命令列介面：每次呼叫執行一個操作後即結束。
// 啟動時先載入 .env（可選），再讀取 ledger.yaml 與 LEDGER_* 環境變數。

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: .env: %v\n", err)
	}

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
