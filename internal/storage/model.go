// internal/storage/model.go
//
// 定義帳本匯出用的 JSON 快照格式。
// 定長資料檔是唯一的真實來源；快照只用於備份、人工檢視與重新匯入（import 會走 Reset）。
package storage

import (
	"time"

	"ledger/internal/record"
)

// Meta 為快照的中繼資料，記錄來源格式、版本與建立時間。
type Meta struct {
	Storage    string    `json:"storage"`     // 固定為 "json_snapshot"
	Version    int       `json:"version"`     // 結構版本號
	RecordSize int       `json:"record_size"` // 匯出時的定長記錄大小
	Timestamp  time.Time `json:"timestamp"`
	Note       string    `json:"note,omitempty"`
}

// Snapshot 為整本帳的完整快照。Accounts[0] 為銀行帳戶，其餘依帳號遞增。
type Snapshot struct {
	Meta     Meta             `json:"_meta"`
	Live     uint32           `json:"live"`
	Accounts []record.Account `json:"accounts"`
}

// SnapshotVersion 為目前快照格式版本。
const SnapshotVersion = 1
