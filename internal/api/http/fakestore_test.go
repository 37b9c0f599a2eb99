package http_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

// fakeStore is an in-memory repository.Store. Units of work are serialized
// by a single mutex; rollback is not modelled.
type fakeStore struct {
	mu       sync.Mutex
	pingErr  error
	nextID   int32
	users    map[int32]domain.User
	tools    map[int32]domain.Tool
	bookings map[int32]domain.Booking
	reviews  map[int32]domain.Review
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[int32]domain.User{},
		tools:    map[int32]domain.Tool{},
		bookings: map[int32]domain.Booking{},
		reviews:  map[int32]domain.Review{},
	}
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(fakeTx{s})
}

func (s *fakeStore) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pingErr
}

func (s *fakeStore) setPingErr(err error) {
	s.mu.Lock()
	s.pingErr = err
	s.mu.Unlock()
}

func (s *fakeStore) id() int32 {
	s.nextID++
	return s.nextID
}

type fakeTx struct{ s *fakeStore }

func (t fakeTx) Users() repository.UserRepository       { return fakeUsers{t.s} }
func (t fakeTx) Tools() repository.ToolRepository       { return fakeTools{t.s} }
func (t fakeTx) Bookings() repository.BookingRepository { return fakeBookings{t.s} }
func (t fakeTx) Reviews() repository.ReviewRepository   { return fakeReviews{t.s} }

func duplicate(constraint string) error {
	return &repository.ConstraintError{Sentinel: repository.ErrDuplicate, Constraint: constraint, Cause: errors.New("duplicate")}
}

type fakeUsers struct{ s *fakeStore }

func (r fakeUsers) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return duplicate("users_username_key")
		}
		if existing.Email == u.Email {
			return duplicate("users_email_key")
		}
	}
	u.ID = r.s.id()
	u.CreatedOn = time.Now()
	r.s.users[u.ID] = *u
	return nil
}

func (r fakeUsers) GetByID(_ context.Context, id int32) (*domain.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeTools struct{ s *fakeStore }

func (r fakeTools) Create(_ context.Context, t *domain.Tool) error {
	if _, ok := r.s.users[t.OwnerID]; !ok {
		return &repository.ConstraintError{Sentinel: repository.ErrForeignKey, Constraint: "tools_owner_id_fkey", Cause: errors.New("fk")}
	}
	t.ID = r.s.id()
	t.CreatedOn = time.Now()
	r.s.tools[t.ID] = *t
	return nil
}

func (r fakeTools) GetByID(_ context.Context, id int32) (*domain.Tool, error) {
	t, ok := r.s.tools[id]
	if !ok || t.DeletedOn != nil {
		return nil, repository.ErrNotFound
	}
	t.Owner = nil
	return &t, nil
}

func (r fakeTools) List(_ context.Context) ([]domain.Tool, error) {
	tools := []domain.Tool{}
	for _, t := range r.s.tools {
		if t.DeletedOn == nil {
			tools = append(tools, t)
		}
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].ID < tools[j].ID })
	return tools, nil
}

func (r fakeTools) ListByOwner(_ context.Context, ownerID int32) ([]domain.Tool, error) {
	tools := []domain.Tool{}
	for _, t := range r.s.tools {
		if t.OwnerID == ownerID && t.DeletedOn == nil {
			tools = append(tools, t)
		}
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].ID < tools[j].ID })
	return tools, nil
}

func (r fakeTools) Update(_ context.Context, t *domain.Tool) error {
	stored, ok := r.s.tools[t.ID]
	if !ok || stored.DeletedOn != nil {
		return repository.ErrNotFound
	}
	stored.Name, stored.Description, stored.ImageURL = t.Name, t.Description, t.ImageURL
	stored.DailyRateCents, stored.DepositCents, stored.Available = t.DailyRateCents, t.DepositCents, t.Available
	r.s.tools[t.ID] = stored
	return nil
}

func (r fakeTools) Delete(_ context.Context, id int32) error {
	stored, ok := r.s.tools[id]
	if !ok || stored.DeletedOn != nil {
		return repository.ErrNotFound
	}
	now := time.Now()
	stored.DeletedOn = &now
	r.s.tools[id] = stored
	return nil
}

type fakeBookings struct{ s *fakeStore }

// joined mirrors the tool and borrower joins of the SQL repository.
func (r fakeBookings) joined(b domain.Booking) domain.Booking {
	t := r.s.tools[b.ToolID]
	u := r.s.users[b.BorrowerID]
	b.Tool = &domain.Tool{ID: t.ID, OwnerID: t.OwnerID, Name: t.Name, DailyRateCents: t.DailyRateCents}
	b.Borrower = &domain.User{ID: u.ID, Username: u.Username}
	return b
}

func (r fakeBookings) Create(_ context.Context, b *domain.Booking) error {
	b.ID = r.s.id()
	b.CreatedOn = time.Now()
	stored := *b
	stored.Tool, stored.Borrower = nil, nil
	r.s.bookings[b.ID] = stored
	return nil
}

func (r fakeBookings) GetByID(_ context.Context, id int32) (*domain.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok || r.s.tools[b.ToolID].DeletedOn != nil {
		return nil, repository.ErrNotFound
	}
	b = r.joined(b)
	return &b, nil
}

func (r fakeBookings) ListByBorrower(_ context.Context, borrowerID int32) ([]domain.Booking, error) {
	bookings := []domain.Booking{}
	for _, b := range r.s.bookings {
		if b.BorrowerID == borrowerID {
			bookings = append(bookings, r.joined(b))
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })
	return bookings, nil
}

func (r fakeBookings) UpdateStatus(_ context.Context, id int32, status domain.BookingStatus) error {
	b, ok := r.s.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Status = status
	r.s.bookings[id] = b
	return nil
}

type fakeReviews struct{ s *fakeStore }

func (r fakeReviews) Create(_ context.Context, rv *domain.Review) error {
	rv.ID = r.s.id()
	rv.CreatedAt = time.Now()
	stored := *rv
	stored.Reviewer, stored.Tool = nil, nil
	r.s.reviews[rv.ID] = stored
	return nil
}

func (r fakeReviews) joined(rv domain.Review) domain.Review {
	u := r.s.users[rv.ReviewerID]
	t := r.s.tools[rv.ToolID]
	rv.Reviewer = &domain.User{ID: u.ID, Username: u.Username}
	rv.Tool = &domain.Tool{ID: t.ID, OwnerID: t.OwnerID, Name: t.Name, DailyRateCents: t.DailyRateCents}
	return rv
}

func (r fakeReviews) list(match func(domain.Review) bool) []domain.Review {
	reviews := []domain.Review{}
	for _, rv := range r.s.reviews {
		if match(rv) {
			reviews = append(reviews, r.joined(rv))
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID < reviews[j].ID })
	return reviews
}

func (r fakeReviews) ListByTool(_ context.Context, toolID int32) ([]domain.Review, error) {
	return r.list(func(rv domain.Review) bool { return rv.ToolID == toolID }), nil
}

func (r fakeReviews) ListByReviewer(_ context.Context, reviewerID int32) ([]domain.Review, error) {
	return r.list(func(rv domain.Review) bool { return rv.ReviewerID == reviewerID }), nil
}
