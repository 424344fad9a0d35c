package orchestrators

import (
	"context"
	"errors"
	"sync"
	"time"

	"usdh/internal/adapters/email"
	"usdh/internal/domain/account"
)

var testClock = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func testNow() time.Time { return testClock }

// fakeAccountStore is an in-memory account store with the same uniqueness rules as sqlite.
type fakeAccountStore struct {
	mu     sync.Mutex
	users  map[int64]account.User
	nextID int64
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{users: make(map[int64]account.User)}
}

// GetByID returns the user or account.ErrNotFound.
func (s *fakeAccountStore) GetByID(_ context.Context, id int64) (account.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return account.User{}, account.ErrNotFound
	}
	return u, nil
}

// GetByUsername returns the user or account.ErrNotFound.
func (s *fakeAccountStore) GetByUsername(_ context.Context, username string) (account.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return account.User{}, account.ErrNotFound
}

// Create inserts user after checking username and email.
func (s *fakeAccountStore) Create(_ context.Context, user account.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return 0, account.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return 0, account.ErrEmailTaken
		}
	}
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = user
	return user.ID, nil
}

// UpdateUsername renames id unless another user holds the name.
func (s *fakeAccountStore) UpdateUsername(_ context.Context, id int64, username string) error {
	return s.update(id, func(u *account.User) error {
		for _, o := range s.users {
			if o.ID != id && o.Username == username {
				return account.ErrUsernameTaken
			}
		}
		u.Username = username
		return nil
	})
}

// UpdateEmail changes the email unless another user holds it.
func (s *fakeAccountStore) UpdateEmail(_ context.Context, id int64, addr string) error {
	return s.update(id, func(u *account.User) error {
		for _, o := range s.users {
			if o.ID != id && o.Email == addr {
				return account.ErrEmailTaken
			}
		}
		u.Email = addr
		return nil
	})
}

// UpdatePassword stores a new hash.
func (s *fakeAccountStore) UpdatePassword(_ context.Context, id int64, hash string) error {
	return s.update(id, func(u *account.User) error {
		u.PasswordHash = hash
		return nil
	})
}

// CountByRole counts users with role.
func (s *fakeAccountStore) CountByRole(_ context.Context, role string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, u := range s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (s *fakeAccountStore) update(id int64, fn func(u *account.User) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return account.ErrNotFound
	}
	if err := fn(&u); err != nil {
		return err
	}
	s.users[id] = u
	return nil
}

// failingSender always fails to deliver.
type failingSender struct{}

// Send returns an error.
func (failingSender) Send(context.Context, email.Message) (email.Receipt, error) {
	return email.Receipt{}, errors.New("provider unavailable")
}

// mustRegister creates a user through the orchestrator.
func mustRegister(store *fakeAccountStore, username, addr, password, role string) account.User {
	u, err := ExecuteRegister(context.Background(), RegisterInput{
		Username: username,
		Email:    addr,
		Password: password,
		Confirm:  password,
		Role:     role,
	}, RegisterDeps{AccountStore: store, Now: testNow})
	if err != nil {
		panic(err)
	}
	return u
}
