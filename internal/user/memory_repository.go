package user

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu     sync.RWMutex
	users  map[int]User
	nextID int
}

// NewMemoryRepository builds an in-memory user store. It backs tests and
// dev mode and enforces the same uniqueness rules as the Postgres schema.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[int]User), nextID: 1}
}

func (r *memoryRepository) Create(_ context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUnique(u, 0); err != nil {
		return User{}, err
	}
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = u
	return u, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return User{}, NotFoundError{ID: id}
	}
	return u, nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return User{}, false, nil
}

func (r *memoryRepository) FindByPhone(_ context.Context, phoneNumber string) (User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.PhoneNumber == phoneNumber {
			return u, true, nil
		}
	}
	return User{}, false, nil
}

func (r *memoryRepository) ExistsByID(_ context.Context, id int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[id]
	return ok, nil
}

func (r *memoryRepository) Update(_ context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return NotFoundError{ID: u.ID}
	}
	if err := r.checkUnique(u, u.ID); err != nil {
		return err
	}
	r.users[u.ID] = u
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return NotFoundError{ID: id}
	}
	delete(r.users, id)
	return nil
}

func (r *memoryRepository) List(_ context.Context, page, size int) ([]User, error) {
	if page < 0 {
		page = 0
	}
	if size < 0 {
		size = 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].FirstName != all[j].FirstName {
			return all[i].FirstName < all[j].FirstName
		}
		return all[i].ID < all[j].ID
	})

	start := page * size
	if start >= len(all) {
		return nil, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

// checkUnique mirrors the unique indexes on email and phone_number. The
// record with selfID is excluded so updates do not conflict with themselves.
func (r *memoryRepository) checkUnique(u User, selfID int) error {
	for id, existing := range r.users {
		if id == selfID {
			continue
		}
		if existing.Email == u.Email {
			return EmailTakenError{Email: u.Email}
		}
		if existing.PhoneNumber == u.PhoneNumber {
			return PhoneTakenError{PhoneNumber: u.PhoneNumber}
		}
	}
	return nil
}
