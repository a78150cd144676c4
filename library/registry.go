package library

import (
	"fmt"
	"sync"
)

// firstMemberID is where member ids start; ids grow monotonically from here.
const firstMemberID = 2001

// Registry owns the member records and their borrowing counters.
type Registry struct {
	mu      sync.RWMutex
	members map[int64]*Member
	order   []int64
	nextID  int64
}

// NewRegistry returns an empty membership registry.
func NewRegistry() *Registry {
	return &Registry{
		members: make(map[int64]*Member),
		nextID:  firstMemberID,
	}
}

// AddMember registers a member and returns their assigned id. The quota is
// taken as given; role-based defaults (Role.DefaultQuota) are the caller's
// policy, not enforced here.
func (r *Registry) AddMember(name, email, phone string, role Role, maxBooks int) (int64, error) {
	if !role.Valid() {
		return 0, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	if maxBooks < 0 {
		return 0, fmt.Errorf("%w: negative borrowing quota %d", ErrInvalidInput, maxBooks)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.members[id] = &Member{
		ID:              id,
		Name:            name,
		Email:           email,
		Phone:           phone,
		Role:            role,
		MaxBooksAllowed: maxBooks,
	}
	r.order = append(r.order, id)
	return id, nil
}

// Get returns a copy of the member record, reporting absence via the bool.
func (r *Registry) Get(id int64) (Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[id]
	if !ok {
		return Member{}, false
	}
	return *m, true
}

// Members returns all member records in registration order.
func (r *Registry) Members() []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Member, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.members[id])
	}
	return out
}

// CanBorrowMore reports whether the member is below their borrowing quota.
func (r *Registry) CanBorrowMore(id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[id]
	if !ok {
		return false, fmt.Errorf("member %d: %w", id, ErrNotFound)
	}
	return m.CanBorrowMore(), nil
}

// RecordBorrow bumps the member's active loan count. The quota check belongs
// to the caller (the circulation service does it before mutating anything).
func (r *Registry) RecordBorrow(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[id]
	if !ok {
		return fmt.Errorf("member %d: %w", id, ErrNotFound)
	}
	m.BorrowedBooks++
	return nil
}

// RecordReturn drops the member's active loan count, clamped at zero.
func (r *Registry) RecordReturn(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[id]
	if !ok {
		return fmt.Errorf("member %d: %w", id, ErrNotFound)
	}
	if m.BorrowedBooks > 0 {
		m.BorrowedBooks--
	}
	return nil
}
