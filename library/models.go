package library

import "time"

// Book represents a title in the catalog together with its copy counts.
// Individual physical copies are not tracked; availability is the aggregate
// AvailableCopies, which only moves through IssueCopy and ReturnCopy.
type Book struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	ISBN            string  `json:"isbn"`
	Genre           string  `json:"genre"`
	TotalCopies     int     `json:"total_copies"`
	AvailableCopies int     `json:"available_copies"`
	Price           float64 `json:"price"`
	PublicationDate string  `json:"publication_date"`
}

// IsAvailable reports whether at least one copy is free to lend.
func (b *Book) IsAvailable() bool { return b.AvailableCopies > 0 }

// Member represents a registered library member.
type Member struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Role            Role   `json:"role"`
	MaxBooksAllowed int    `json:"max_books_allowed"`
	BorrowedBooks   int    `json:"borrowed_books"`
}

// CanBorrowMore reports whether the member is below their borrowing quota.
func (m *Member) CanBorrowMore() bool { return m.BorrowedBooks < m.MaxBooksAllowed }

// Role classifies a member and drives the default borrowing quota.
type Role string

// Member roles.
const (
	RoleStudent   Role = "student"
	RoleFaculty   Role = "faculty"
	RoleLibrarian Role = "librarian"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleLibrarian, RoleAdmin:
		return true
	}
	return false
}

// DefaultQuota returns the conventional borrowing limit for the role:
// 5 for students, 10 for everyone else. Callers may override it when
// registering a member; the registry itself does not enforce the convention.
func (r Role) DefaultQuota() int {
	if r == RoleStudent {
		return 5
	}
	return 10
}

// IsStaff reports whether the role may access library-wide reports
// such as the overdue listing.
func (r Role) IsStaff() bool { return r == RoleLibrarian || r == RoleAdmin }

// LoanStatus is the lifecycle state of a loan transaction.
//
// Only StatusIssued and StatusReturned are ever stored; StatusOverdue is a
// presentation of an issued transaction past its due date and is derived by
// StatusAt rather than written to the record.
type LoanStatus string

// Loan statuses.
const (
	StatusIssued   LoanStatus = "issued"
	StatusOverdue  LoanStatus = "overdue"
	StatusReturned LoanStatus = "returned"
)

// Transaction is a single loan of one copy of a book to a member.
// Transactions are append-only: after creation the only mutations are the
// one-time return (ReturnedAt, Status) and fine re-evaluation.
type Transaction struct {
	ID         int64      `json:"id"`
	MemberID   int64      `json:"member_id"`
	BookID     int64      `json:"book_id"`
	IssuedAt   time.Time  `json:"issued_at"`
	DueAt      time.Time  `json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Status     LoanStatus `json:"status"`
	Fine       float64    `json:"fine"`
}

// IsOpen reports whether the transaction has not been returned yet.
func (t *Transaction) IsOpen() bool { return t.Status != StatusReturned }

// IsOverdue reports whether the loan is open and past due at the given time.
// A returned transaction is never overdue, no matter how late the return was;
// lateness after the fact shows up only in the fine recorded at return time.
func (t *Transaction) IsOverdue(now time.Time) bool {
	return t.Status == StatusIssued && now.After(t.DueAt)
}

// StatusAt returns the status label to present at the given time,
// deriving StatusOverdue for open loans past their due date.
func (t *Transaction) StatusAt(now time.Time) LoanStatus {
	if t.IsOverdue(now) {
		return StatusOverdue
	}
	return t.Status
}

// FineAt computes the fine accrued by the given time at dailyRate per day.
// For a returned transaction the comparison time is frozen at ReturnedAt, so
// the result no longer depends on now. Day boundaries are whole elapsed
// 24-hour periods; there is no calendar or timezone handling.
func (t *Transaction) FineAt(now time.Time, dailyRate float64) float64 {
	compare := now
	if t.ReturnedAt != nil {
		compare = *t.ReturnedAt
	}
	if !compare.After(t.DueAt) {
		return 0
	}
	overdueDays := int64(compare.Sub(t.DueAt) / (24 * time.Hour))
	return float64(overdueDays) * dailyRate
}
