package library

import (
	"fmt"
	"sync"
	"time"
)

// firstTransactionID is where ledger ids start; ids grow monotonically from here.
const firstTransactionID = 3001

// Loan policy defaults, used when a caller passes a non-positive period or rate.
const (
	DefaultLoanPeriodDays = 14
	DefaultDailyFineRate  = 1.0
)

// Ledger is the append-only collection of loan transactions. Entries are
// never deleted; a transaction is created by Open and finalized exactly once
// by Close. Time is always an explicit parameter so that overdue and fine
// computations are deterministic under test.
type Ledger struct {
	mu     sync.RWMutex
	txs    map[int64]*Transaction
	order  []int64
	nextID int64
}

// NewLedger returns an empty loan ledger.
func NewLedger() *Ledger {
	return &Ledger{
		txs:    make(map[int64]*Transaction),
		nextID: firstTransactionID,
	}
}

// Open records a new loan issued at now, due loanPeriodDays later, and
// returns the transaction id. A non-positive period falls back to
// DefaultLoanPeriodDays.
func (l *Ledger) Open(memberID, bookID int64, now time.Time, loanPeriodDays int) int64 {
	if loanPeriodDays <= 0 {
		loanPeriodDays = DefaultLoanPeriodDays
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	l.txs[id] = &Transaction{
		ID:       id,
		MemberID: memberID,
		BookID:   bookID,
		IssuedAt: now,
		DueAt:    now.Add(time.Duration(loanPeriodDays) * 24 * time.Hour),
		Status:   StatusIssued,
	}
	l.order = append(l.order, id)
	return id
}

// Get returns a copy of the transaction, reporting absence via the bool.
func (l *Ledger) Get(id int64) (Transaction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tx, ok := l.txs[id]
	if !ok {
		return Transaction{}, false
	}
	return *tx, true
}

// IsOverdue reports whether the transaction is open and past due at now.
func (l *Ledger) IsOverdue(id int64, now time.Time) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tx, ok := l.txs[id]
	if !ok {
		return false, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	return tx.IsOverdue(now), nil
}

// EvaluateFine recomputes and stores the transaction's fine as of now at
// dailyRate per overdue day (non-positive rates fall back to
// DefaultDailyFineRate). For an open loan the fine grows with now; once the
// transaction is returned the comparison time is frozen at the return time,
// so re-evaluation is idempotent. The stored status is never touched here:
// the overdue label is derived by StatusAt, not written on reads.
func (l *Ledger) EvaluateFine(id int64, now time.Time, dailyRate float64) (float64, error) {
	if dailyRate <= 0 {
		dailyRate = DefaultDailyFineRate
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	tx, ok := l.txs[id]
	if !ok {
		return 0, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	tx.Fine = tx.FineAt(now, dailyRate)
	return tx.Fine, nil
}

// Close finalizes the loan: the return time is frozen at now, the status
// becomes StatusReturned, and the final fine is computed against the frozen
// return time and returned. Closing an already-returned transaction mutates
// nothing and reports ErrNoActiveLoan.
func (l *Ledger) Close(id int64, now time.Time, dailyRate float64) (float64, error) {
	if dailyRate <= 0 {
		dailyRate = DefaultDailyFineRate
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	tx, ok := l.txs[id]
	if !ok {
		return 0, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	if tx.Status == StatusReturned {
		return 0, fmt.Errorf("transaction %d already returned: %w", id, ErrNoActiveLoan)
	}

	returnedAt := now
	tx.ReturnedAt = &returnedAt
	tx.Status = StatusReturned
	tx.Fine = tx.FineAt(now, dailyRate)
	return tx.Fine, nil
}

// FindOpen returns the first open transaction for the member/book pair, in
// ledger insertion order. When a member holds several copies of the same
// title this resolves to the earliest open loan; which physical copy that
// corresponds to is not tracked.
func (l *Ledger) FindOpen(memberID, bookID int64) (Transaction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, id := range l.order {
		tx := l.txs[id]
		if tx.MemberID == memberID && tx.BookID == bookID && tx.IsOpen() {
			return *tx, true
		}
	}
	return Transaction{}, false
}

// MemberTransactions returns all of the member's transactions, open and
// closed, in insertion order.
func (l *Ledger) MemberTransactions(memberID int64) []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := []Transaction{}
	for _, id := range l.order {
		if tx := l.txs[id]; tx.MemberID == memberID {
			out = append(out, *tx)
		}
	}
	return out
}

// All returns every transaction in insertion order.
func (l *Ledger) All() []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Transaction, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.txs[id])
	}
	return out
}
