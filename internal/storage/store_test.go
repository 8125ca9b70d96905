// internal/storage/store_test.go
//
// 定位式儲存測試：建立/開啟、帳號以位置為準、ReadLast 偵測不一致、完整性掃描與 Scan。
// 所有資料檔都放在 t.TempDir()。
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger/internal/record"
)

var testBank = record.Account{Name: "Bank", Balance: 1_000_000_000}

// newStore 建立含兩個種子帳戶的資料檔。
func newStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.dat")
	s, err := Create(path, testBank,
		record.Account{Name: "Jan", Surname: "Nowak", Balance: 100},
		record.Account{Name: "Janusz", Surname: "Kowalski", Balance: 200},
	)
	require.NoError(t, err)
	return s
}

// writeRaw 繞過 Store 直接改寫某個 slot，模擬外部損壞。
func writeRaw(t *testing.T, path string, slot uint32, a record.Account) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.WriteAt(record.Encode(a), offset(slot))
	require.NoError(t, err)
}

func TestCreateAndOpen(t *testing.T) {
	s := newStore(t)
	assert.Equal(t, uint32(3), s.Live())

	fi, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, int64(4*record.Size), fi.Size())

	reopened, err := Open(s.Path())
	require.NoError(t, err)
	assert.Equal(t, uint32(3), reopened.Live())
	assert.Equal(t, record.BankNumber, reopened.Directory().Bank())

	// 位置一致性：read(n).Number == n
	for n := uint32(1); n <= reopened.Live(); n++ {
		a, err := reopened.Read(n)
		require.NoError(t, err)
		assert.Equal(t, n, a.Number)
	}

	bank, err := reopened.Read(record.BankNumber)
	require.NoError(t, err)
	assert.Equal(t, "Bank", bank.Name)
	assert.Equal(t, int32(1_000_000_000), bank.Balance)
}

func TestReadOutOfRange(t *testing.T) {
	s := newStore(t)
	for _, n := range []uint32{0, 4, 1000} {
		a, err := s.Read(n)
		assert.ErrorIs(t, err, ErrNotFound, "slot %d", n)
		assert.True(t, a.IsNull())
	}
}

func TestOpenUninitialized(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.dat"))
	assert.ErrorIs(t, err, ErrNotInitialized)

	empty := filepath.Join(dir, "empty.dat")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = Open(empty)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestOpenRejectsPartialRecord(t *testing.T) {
	s := newStore(t)
	f, err := os.OpenFile(s.Path(), os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.Write([]byte("garbage"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = Open(s.Path())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestOpenRejectsMismatchedLastRecord(t *testing.T) {
	s := newStore(t)
	writeRaw(t, s.Path(), 3, record.Account{Number: 9, Name: "Janusz"})

	_, err := Open(s.Path())
	var ce *CorruptionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, uint32(3), ce.Slot)
	assert.Equal(t, uint32(9), ce.Stored)
}

func TestAppendAssignsNextNumber(t *testing.T) {
	s := newStore(t)
	n, err := s.Append(record.Account{Number: 99, Name: "Ola"})
	require.NoError(t, err)
	assert.Equal(t, uint32(4), n)
	assert.Equal(t, uint32(4), s.Live())

	last, err := s.ReadLast()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), last.Number)
	assert.Equal(t, "Ola", last.Name)
}

func TestWriteAtForcesPosition(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.WriteAt(2, record.Account{Number: 7, Name: "Jan", Balance: 555}))

	a, err := s.Read(2)
	require.NoError(t, err)
	want := record.Account{Number: 2, Name: "Jan", Balance: 555}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Fatalf("slot 2 (-want +got):\n%s", diff)
	}

	assert.ErrorIs(t, s.WriteAt(0, record.Account{}), ErrNotFound)
	assert.ErrorIs(t, s.WriteAt(4, record.Account{}), ErrNotFound)
}

func TestResetDropsAccounts(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Reset(record.Account{Number: 5, Name: "Reserve", Balance: 10}))
	assert.Equal(t, uint32(1), s.Live())

	bank, err := s.ReadLast()
	require.NoError(t, err)
	assert.Equal(t, record.BankNumber, bank.Number)
	assert.Equal(t, "Reserve", bank.Name)

	_, err = s.Read(2)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestDirectoryDrift 模擬兩個 Store 值指向同一檔案：其中一個追加後，
// 另一個的帳戶數落後於檔案長度，ReadLast 與 Check 都必須回報。
func TestDirectoryDrift(t *testing.T) {
	s := newStore(t)
	stale, err := Open(s.Path())
	require.NoError(t, err)

	_, err = s.Append(record.Account{Name: "Ola"})
	require.NoError(t, err)

	_, err = stale.ReadLast()
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.ErrorIs(t, stale.Check(record.DefaultLimits()), ErrCorrupt)

	_, err = stale.Append(record.Account{Name: "Ewa"})
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestCheck(t *testing.T) {
	limits := record.DefaultLimits()

	t.Run("clean", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Check(limits))
	})

	t.Run("out of range record", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.WriteAt(2, record.Account{Name: "Jan", Balance: -5}))
		err := s.Check(limits)
		var ce *CorruptionError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, uint32(2), ce.Slot)
		assert.Equal(t, record.BalanceOutOfRange, ce.Outcome)
		assert.Equal(t, int32(-5), ce.Record.Balance)
	})

	t.Run("position mismatch stops at first", func(t *testing.T) {
		s := newStore(t)
		writeRaw(t, s.Path(), 2, record.Account{Number: 3, Name: "Jan"})
		writeRaw(t, s.Path(), 3, record.Account{Number: 3, Balance: -1})
		var ce *CorruptionError
		require.ErrorAs(t, s.Check(limits), &ce)
		assert.Equal(t, uint32(2), ce.Slot)
		assert.Equal(t, uint32(3), ce.Stored)
	})

	t.Run("null slot overwritten", func(t *testing.T) {
		s := newStore(t)
		writeRaw(t, s.Path(), 0, record.Account{Name: "ghost"})
		var ce *CorruptionError
		require.ErrorAs(t, s.Check(limits), &ce)
		assert.Equal(t, uint32(0), ce.Slot)
	})
}

func TestScan(t *testing.T) {
	s := newStore(t)

	collect := func() []string {
		var names []string
		for a, err := range s.Scan() {
			require.NoError(t, err)
			names = append(names, a.Name)
		}
		return names
	}
	assert.Equal(t, []string{"Bank", "Jan", "Janusz"}, collect())
	// 可重複掃描
	assert.Equal(t, collect(), collect())

	var first record.Account
	for a := range s.Scan() {
		first = a
		break
	}
	assert.Equal(t, record.BankNumber, first.Number)
}

func TestIOFailure(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.Remove(s.Path()))

	_, err := s.Read(2)
	assert.ErrorIs(t, err, ErrIO)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	assert.ErrorIs(t, s.WriteAt(2, record.Account{}), ErrIO)

	for _, err := range s.Scan() {
		assert.ErrorIs(t, err, ErrIO)
	}
}
