// internal/bank/bank.go

// Package bank 定義核心商業邏輯：開戶、存款、提款、借款、還款、轉帳、計息與查詢。
// 每個操作分兩階段：先讀入並檢查所有運算元，再計算新值、重新驗證結果，
// 全部通過後才依固定順序寫回。雙記錄操作之間沒有交易日誌，寫入順序即為失敗分析的依據：
//
//	borrow / repay  先寫借款人，再寫銀行帳戶
//	transfer        先寫轉出帳戶，再寫轉入帳戶
//
// 第二筆寫入失敗時回傳 *PartialWriteError，不做補償。
// 金額與餘額皆為 int32 的最小貨幣單位；單一寫入者、循序呼叫，不加鎖。
package bank

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	"ledger/internal/record"
	"ledger/internal/search"
	"ledger/internal/storage"
)

// Ledger 為 Bank 需要的儲存操作，*storage.Store 為正式實作。
type Ledger interface {
	Path() string
	Live() uint32
	Directory() *storage.Directory
	Read(n uint32) (record.Account, error)
	ReadLast() (record.Account, error)
	Append(a record.Account) (uint32, error)
	WriteAt(n uint32, a record.Account) error
	Reset(bank record.Account, seed ...record.Account) error
	Check(limits record.Limits) error
	Scan() iter.Seq2[record.Account, error]
}

var _ Ledger = (*storage.Store)(nil)

// Bank 包裝定位式儲存與金額上限，提供所有會改變餘額的操作。
type Bank struct {
	store  Ledger
	limits record.Limits
	log    *zap.Logger
}

// Option 調整 Bank 的選用設定。
type Option func(*Bank)

// WithLogger 指定 logger；未指定時不輸出任何日誌。
func WithLogger(l *zap.Logger) Option {
	return func(b *Bank) {
		if l != nil {
			b.log = l
		}
	}
}

// New 以既有的儲存建立 Bank。
func New(store Ledger, limits record.Limits, opts ...Option) *Bank {
	b := &Bank{store: store, limits: limits, log: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Open 開啟既有資料檔並先做完整性掃描；任何一筆記錄不可信即回傳 *storage.CorruptionError，
// 不交出 Bank。損壞的資料檔只能以 Init 或 Import 重建。
func Open(path string, limits record.Limits, opts ...Option) (*Bank, error) {
	store, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	b := New(store, limits, opts...)
	if err := b.IntegrityCheck(); err != nil {
		return nil, err
	}
	return b, nil
}

// Init 建立全新資料檔：空記錄、銀行帳戶，以及依序追加的種子帳戶。
func Init(path string, limits record.Limits, bank Account, seed []Account, opts ...Option) (*Bank, error) {
	b := New(nil, limits, opts...)
	if err := b.checkFixture(bank, seed); err != nil {
		return nil, err
	}
	store, err := storage.Create(path, bank, seed...)
	if err != nil {
		return nil, err
	}
	b.store = store
	b.log.Info("ledger initialized", zap.String("path", path), zap.Int32("reserve", bank.Balance), zap.Int("seed", len(seed)))
	return b, nil
}

// Store 回傳底層儲存。
func (b *Bank) Store() Ledger { return b.store }

// Limits 回傳目前使用的金額上限。
func (b *Bank) Limits() record.Limits { return b.limits }

// Live 回傳目前帳戶數（含銀行帳戶）。
func (b *Bank) Live() uint32 { return b.store.Live() }

// Reset 清空帳本並重新寫入銀行帳戶與種子帳戶。所有帳戶先驗證，任何一筆不合法即不動檔案。
func (b *Bank) Reset(bank Account, seed ...Account) error {
	if err := b.checkFixture(bank, seed); err != nil {
		return err
	}
	if err := b.store.Reset(bank, seed...); err != nil {
		return err
	}
	b.log.Info("ledger reset",
		zap.String("path", b.store.Path()),
		zap.Int32("reserve", bank.Balance),
		zap.Int("seed", len(seed)))
	return nil
}

// IntegrityCheck 對整個資料檔做完整性掃描，回傳第一筆問題（*storage.CorruptionError）。
func (b *Bank) IntegrityCheck() error {
	if err := b.store.Check(b.limits); err != nil {
		b.log.Warn("integrity check failed", zap.Error(err))
		return err
	}
	b.log.Debug("integrity check passed", zap.Uint32("live", b.store.Live()))
	return nil
}

// Get 依帳號取得記錄；不存在時回傳 ErrNotFound。
// 回傳的是原始記錄，即使內容不合法也照樣交給呼叫端檢視。
func (b *Bank) Get(n uint32) (Account, error) {
	return b.store.Read(n)
}

// Last 回傳最後建立的帳戶。
func (b *Bank) Last() (Account, error) {
	return b.store.ReadLast()
}

// Create 開新帳戶並回傳分配到的帳號；呼叫端給的帳號會被忽略。
func (b *Bank) Create(a Account) (uint32, error) {
	next := b.store.Directory().Next()
	if err := b.check(next, a); err != nil {
		return 0, err
	}
	n, err := b.store.Append(a)
	if err != nil {
		return 0, err
	}
	b.log.Info("account created", zap.Uint32("account", n), zap.Int32("balance", a.Balance))
	return n, nil
}

// Deposit 存款：0 < amt <= MaxDeposit，且存入後餘額不得超過 MaxAccountValue。
func (b *Bank) Deposit(n uint32, amt int32) (Account, error) {
	if amt <= 0 {
		return Account{}, ErrBadAmount
	}
	if amt > b.limits.MaxDeposit {
		return Account{}, fmt.Errorf("%w: deposit %d above limit %d", ErrCapacityExceeded, amt, b.limits.MaxDeposit)
	}
	a, err := b.load(n)
	if err != nil {
		return Account{}, err
	}
	if a.Balance > b.limits.MaxAccountValue()-amt {
		return Account{}, fmt.Errorf("%w: balance would exceed %d", ErrCapacityExceeded, b.limits.MaxAccountValue())
	}

	a.Balance += amt
	if err := b.commit("deposit", a); err != nil {
		return Account{}, err
	}
	b.log.Info("deposit", zap.Uint32("account", n), zap.Int32("amount", amt), zap.Int32("balance", a.Balance))
	return a, nil
}

// Withdraw 提款：0 < amt <= MaxWithdraw，且不得超過餘額。
func (b *Bank) Withdraw(n uint32, amt int32) (Account, error) {
	if amt <= 0 {
		return Account{}, ErrBadAmount
	}
	if amt > b.limits.MaxWithdraw {
		return Account{}, fmt.Errorf("%w: withdrawal %d above limit %d", ErrCapacityExceeded, amt, b.limits.MaxWithdraw)
	}
	a, err := b.load(n)
	if err != nil {
		return Account{}, err
	}
	if amt > a.Balance {
		return Account{}, ErrInsufficient
	}

	a.Balance -= amt
	if err := b.commit("withdraw", a); err != nil {
		return Account{}, err
	}
	b.log.Info("withdraw", zap.Uint32("account", n), zap.Int32("amount", amt), zap.Int32("balance", a.Balance))
	return a, nil
}

// Borrow 借款：銀行準備金移到借款人的餘額，同時記入貸款。
// 條件：0 < amt <= MaxBorrow、借款後餘額與貸款都不超過上限、銀行餘額 >= amt。
// 寫入順序：借款人 → 銀行。
func (b *Bank) Borrow(n uint32, amt int32) (Account, error) {
	if amt <= 0 {
		return Account{}, ErrBadAmount
	}
	if amt > b.limits.MaxBorrow {
		return Account{}, fmt.Errorf("%w: loan %d above limit %d", ErrCapacityExceeded, amt, b.limits.MaxBorrow)
	}
	if n == record.BankNumber {
		return Account{}, ErrReservedAccount
	}
	a, err := b.load(n)
	if err != nil {
		return Account{}, err
	}
	reserve, err := b.load(record.BankNumber)
	if err != nil {
		return Account{}, err
	}
	switch {
	case a.Balance > b.limits.MaxAccountValue()-amt:
		return Account{}, fmt.Errorf("%w: balance would exceed %d", ErrCapacityExceeded, b.limits.MaxAccountValue())
	case a.Loan > b.limits.MaxLoanValue()-amt:
		return Account{}, fmt.Errorf("%w: loan would exceed %d", ErrCapacityExceeded, b.limits.MaxLoanValue())
	case reserve.Balance < amt:
		return Account{}, ErrReserveExhausted
	}

	reserve.Balance -= amt
	a.Loan += amt
	a.Balance += amt
	if err := b.commit("borrow", a, reserve); err != nil {
		return Account{}, err
	}
	b.log.Info("borrow",
		zap.Uint32("account", n),
		zap.Int32("amount", amt),
		zap.Int32("loan", a.Loan),
		zap.Int32("reserve", reserve.Balance))
	return a, nil
}

// Repay 還款：借款人的餘額與貸款同時減少，金額回到銀行準備金。
// 條件：amt > 0、有貸款、amt <= 餘額、amt <= 貸款、銀行餘額加回後不超過上限。
// 寫入順序：借款人 → 銀行。
func (b *Bank) Repay(n uint32, amt int32) (Account, error) {
	if amt <= 0 {
		return Account{}, ErrBadAmount
	}
	if n == record.BankNumber {
		return Account{}, ErrReservedAccount
	}
	a, err := b.load(n)
	if err != nil {
		return Account{}, err
	}
	reserve, err := b.load(record.BankNumber)
	if err != nil {
		return Account{}, err
	}
	switch {
	case a.Loan == 0:
		return Account{}, ErrNoLoan
	case amt > a.Balance:
		return Account{}, ErrInsufficient
	case amt > a.Loan:
		return Account{}, fmt.Errorf("%w: %d > %d", ErrOverpayment, amt, a.Loan)
	case reserve.Balance > b.limits.MaxAccountValue()-amt:
		return Account{}, fmt.Errorf("%w: bank balance would exceed %d", ErrCapacityExceeded, b.limits.MaxAccountValue())
	}

	a.Loan -= amt
	a.Balance -= amt
	reserve.Balance += amt
	if err := b.commit("repay", a, reserve); err != nil {
		return Account{}, err
	}
	b.log.Info("repay",
		zap.Uint32("account", n),
		zap.Int32("amount", amt),
		zap.Int32("loan", a.Loan),
		zap.Int32("reserve", reserve.Balance))
	return a, nil
}

// Transfer 轉帳：兩個使用者帳戶之間（銀行帳戶不可參與），兩帳戶皆存在且不同、0 < amt <= MaxTransfer、
// amt <= 轉出餘額、轉入後餘額不超過上限。寫入順序：轉出 → 轉入。
func (b *Bank) Transfer(fromID, toID uint32, amt int32) error {
	if amt <= 0 {
		return ErrBadAmount
	}
	if fromID == toID {
		return ErrSameAccount
	}
	if fromID == record.BankNumber || toID == record.BankNumber {
		return ErrReservedAccount
	}
	if amt > b.limits.MaxTransfer {
		return fmt.Errorf("%w: transfer %d above limit %d", ErrCapacityExceeded, amt, b.limits.MaxTransfer)
	}
	from, err := b.load(fromID)
	if err != nil {
		return err
	}
	to, err := b.load(toID)
	if err != nil {
		return err
	}
	if amt > from.Balance {
		return ErrInsufficient
	}
	if to.Balance > b.limits.MaxAccountValue()-amt {
		return fmt.Errorf("%w: balance of %d would exceed %d", ErrCapacityExceeded, toID, b.limits.MaxAccountValue())
	}

	from.Balance -= amt
	to.Balance += amt
	if err := b.commit("transfer", from, to); err != nil {
		return err
	}
	b.log.Info("transfer", zap.Uint32("from", fromID), zap.Uint32("to", toID), zap.Int32("amount", amt))
	return nil
}

// CollectInterest 計息：interest = floor(float32(loan) * rate)，加到貸款餘額並回傳利息。
// 沒有貸款時不寫檔、直接成功。利息沒有對應的扣款，會增加系統總額（應收而未收）。
func (b *Bank) CollectInterest(n uint32) (int32, error) {
	a, err := b.load(n)
	if err != nil {
		return 0, err
	}
	if a.Loan == 0 {
		return 0, nil
	}
	// 與記錄欄位同精度：float32 相乘後截斷
	interest := int64(float32(a.Loan) * a.InterestRate)
	if int64(a.Loan)+interest > int64(b.limits.MaxLoanValue()) {
		return 0, fmt.Errorf("%w: loan would exceed %d", ErrCapacityExceeded, b.limits.MaxLoanValue())
	}
	if interest == 0 {
		return 0, nil
	}

	a.Loan += int32(interest)
	if err := b.commit("interest", a); err != nil {
		return 0, err
	}
	b.log.Info("interest", zap.Uint32("account", n), zap.Int64("interest", interest), zap.Int32("loan", a.Loan))
	return int32(interest), nil
}

// Search 依樣式線性搜尋，結果依帳號遞增惰性產生。
func (b *Bank) Search(p search.Pattern) iter.Seq2[Account, error] {
	return search.Search(b.store, p)
}

// commit 先驗證所有結果記錄，全部合法才依序寫回。
// 第一筆寫入失敗時檔案未變動；之後任何一筆失敗都回傳 *PartialWriteError。
func (b *Bank) commit(op string, accts ...Account) error {
	for _, a := range accts {
		if err := b.check(a.Number, a); err != nil {
			return err
		}
	}
	written := make([]uint32, 0, len(accts))
	for _, a := range accts {
		if err := b.store.WriteAt(a.Number, a); err != nil {
			if len(written) == 0 {
				return err
			}
			pe := &PartialWriteError{Op: op, Written: written, Failed: a.Number, Err: err}
			b.log.Error("partial write", zap.String("op", op), zap.Uint32s("written", written),
				zap.Uint32("failed", a.Number), zap.Error(err))
			return pe
		}
		written = append(written, a.Number)
	}
	return nil
}

// Snapshot 匯出整本帳（不含 slot 0）為可持久化的 storage.Snapshot。
func (b *Bank) Snapshot() (storage.Snapshot, error) {
	snap := storage.Snapshot{
		Meta: storage.Meta{
			RecordSize: record.Size,
			Note:       "export of " + b.store.Path(),
		},
		Live: b.store.Live(),
	}
	for a, err := range b.store.Scan() {
		if err != nil {
			return storage.Snapshot{}, err
		}
		snap.Accounts = append(snap.Accounts, a)
	}
	return snap, nil
}

// Restore 以快照內容重建帳本：Accounts[0] 必須是銀行帳戶，其餘帳號必須連續遞增。
func (b *Bank) Restore(s storage.Snapshot) error {
	bank, seed, err := snapshotFixture(s)
	if err != nil {
		return err
	}
	return b.Reset(bank, seed...)
}

// Import 以快照建立全新資料檔；path 原本的內容（即使已損毀）會被覆寫。
func Import(path string, limits record.Limits, s storage.Snapshot, opts ...Option) (*Bank, error) {
	bank, seed, err := snapshotFixture(s)
	if err != nil {
		return nil, err
	}
	return Init(path, limits, bank, seed, opts...)
}

func snapshotFixture(s storage.Snapshot) (Account, []Account, error) {
	if len(s.Accounts) == 0 {
		return Account{}, nil, fmt.Errorf("snapshot has no accounts")
	}
	for i, a := range s.Accounts {
		if want := record.BankNumber + uint32(i); a.Number != want {
			return Account{}, nil, fmt.Errorf("snapshot account %d has number %d, want %d", i, a.Number, want)
		}
	}
	return s.Accounts[0], s.Accounts[1:], nil
}
