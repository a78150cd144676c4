package library

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// CirculationService orchestrates the catalog, registry and ledger to make
// "issue a copy" and "return a copy" atomic with respect to each other.
// Every mutating operation runs under a single coordinating mutex, so
// check-then-mutate sequences (quota, availability) cannot interleave.
type CirculationService struct {
	mu       sync.Mutex
	catalog  *Catalog
	registry *Registry
	ledger   *Ledger

	loanPeriodDays int
	dailyFineRate  float64
	logger         *slog.Logger
}

// NewCirculationService wires the three stores into a circulation service.
// Non-positive loan parameters fall back to the package defaults; a nil
// logger falls back to slog.Default.
func NewCirculationService(catalog *Catalog, registry *Registry, ledger *Ledger, loanPeriodDays int, dailyFineRate float64, logger *slog.Logger) *CirculationService {
	if loanPeriodDays <= 0 {
		loanPeriodDays = DefaultLoanPeriodDays
	}
	if dailyFineRate <= 0 {
		dailyFineRate = DefaultDailyFineRate
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CirculationService{
		catalog:        catalog,
		registry:       registry,
		ledger:         ledger,
		loanPeriodDays: loanPeriodDays,
		dailyFineRate:  dailyFineRate,
		logger:         logger,
	}
}

// IssueReceipt is what a successful issue hands back to the caller.
type IssueReceipt struct {
	TransactionID int64
	DueAt         time.Time
}

// OverdueEntry joins an overdue transaction with the current member and book
// records, for the staff overdue report.
type OverdueEntry struct {
	Transaction Transaction
	Member      Member
	Book        Book
}

// Issue lends one copy of the book to the session's member, issued at now.
//
// Checks run in a fixed order: login, member existence, quota, book
// existence, availability — so a member at quota hears about the quota even
// if the book is also unavailable. On success the copy count is decremented,
// a ledger transaction is opened, and the member's loan count is incremented,
// as one logical transaction under the service mutex.
func (s *CirculationService) Issue(sess *Session, bookID int64, now time.Time) (IssueReceipt, error) {
	if sess == nil {
		return IssueReceipt{}, ErrNotLoggedIn
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	member, ok := s.registry.Get(sess.MemberID)
	if !ok {
		return IssueReceipt{}, fmt.Errorf("member %d: %w", sess.MemberID, ErrNotFound)
	}
	if !member.CanBorrowMore() {
		return IssueReceipt{}, fmt.Errorf("member %d has %d of %d books: %w",
			member.ID, member.BorrowedBooks, member.MaxBooksAllowed, ErrOverQuota)
	}

	book, ok := s.catalog.Get(bookID)
	if !ok {
		return IssueReceipt{}, fmt.Errorf("book %d: %w", bookID, ErrNotFound)
	}
	if !book.IsAvailable() {
		return IssueReceipt{}, fmt.Errorf("book %d: %w", bookID, ErrNoCopiesAvailable)
	}

	// All checks passed under the lock; none of the mutations below can fail.
	if err := s.catalog.IssueCopy(bookID); err != nil {
		return IssueReceipt{}, err
	}
	txID := s.ledger.Open(member.ID, bookID, now, s.loanPeriodDays)
	if err := s.registry.RecordBorrow(member.ID); err != nil {
		return IssueReceipt{}, err
	}

	tx, _ := s.ledger.Get(txID)
	s.logger.Info("book issued",
		"member_id", member.ID, "book_id", bookID,
		"transaction_id", txID, "due_at", tx.DueAt)

	return IssueReceipt{TransactionID: txID, DueAt: tx.DueAt}, nil
}

// GiveBack returns the session member's copy of the book at now and reports
// the fine owed. The loan resolved is the member's earliest open transaction
// for that book; with no such transaction nothing is mutated and
// ErrNoActiveLoan is reported, even when other members hold copies.
func (s *CirculationService) GiveBack(sess *Session, bookID int64, now time.Time) (float64, error) {
	if sess == nil {
		return 0, ErrNotLoggedIn
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.ledger.FindOpen(sess.MemberID, bookID)
	if !ok {
		return 0, fmt.Errorf("member %d, book %d: %w", sess.MemberID, bookID, ErrNoActiveLoan)
	}

	if err := s.catalog.ReturnCopy(bookID); err != nil {
		return 0, err
	}
	fine, err := s.ledger.Close(tx.ID, now, s.dailyFineRate)
	if err != nil {
		return 0, err
	}
	if err := s.registry.RecordReturn(sess.MemberID); err != nil {
		return 0, err
	}

	s.logger.Info("book returned",
		"member_id", sess.MemberID, "book_id", bookID,
		"transaction_id", tx.ID, "fine", fine)

	return fine, nil
}

// ListOverdue reports every loan that is open and past due at now, joined
// with the current member and book records and carrying a freshly evaluated
// fine. Only librarian and admin sessions may call it.
func (s *CirculationService) ListOverdue(sess *Session, now time.Time) ([]OverdueEntry, error) {
	if sess == nil {
		return nil, ErrNotLoggedIn
	}
	if !sess.Role.IsStaff() {
		return nil, fmt.Errorf("role %q: %w", sess.Role, ErrForbidden)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := []OverdueEntry{}
	for _, tx := range s.ledger.All() {
		if !tx.IsOverdue(now) {
			continue
		}
		if _, err := s.ledger.EvaluateFine(tx.ID, now, s.dailyFineRate); err != nil {
			return nil, err
		}
		fresh, _ := s.ledger.Get(tx.ID)

		entry := OverdueEntry{Transaction: fresh}
		entry.Member, _ = s.registry.Get(tx.MemberID)
		entry.Book, _ = s.catalog.Get(tx.BookID)
		entries = append(entries, entry)
	}
	return entries, nil
}
