// internal/storage/jsonstore.go
//
// JSON 快照的讀寫。寫入採「原子寫入」：先寫 path+".tmp" 並 fsync，再 rename 取代原檔，
// 中途失敗時原檔不受影響。

package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// LoadSnapshot 讀取並解析指定路徑的 JSON 快照。
func LoadSnapshot(path string) (Snapshot, error) {
	var snap Snapshot
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return snap, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	if snap.Meta.Version > SnapshotVersion {
		return snap, fmt.Errorf("snapshot %s: unsupported version %d", path, snap.Meta.Version)
	}
	return snap, nil
}

// SaveSnapshot 將快照以縮排 JSON 原子寫入 path。
func SaveSnapshot(path string, snap Snapshot) error {
	snap.Meta.Storage = "json_snapshot"
	snap.Meta.Version = SnapshotVersion
	snap.Meta.Timestamp = time.Now()
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := syncClose(f); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}
