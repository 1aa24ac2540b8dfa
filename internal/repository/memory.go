package repository

import (
	"context"
	"sync"
	"time"

	"passreset/internal/models"
)

// MemoryUserRepository: users в памяти процесса. Каждый вызов атомарен,
// как однострочный UPDATE в Postgres.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*models.User // email -> запись
}

func NewMemoryUserRepository(users ...models.User) *MemoryUserRepository {
	r := &MemoryUserRepository{users: make(map[string]*models.User)}
	for _, u := range users {
		r.Add(u)
	}
	return r
}

func (r *MemoryUserRepository) Add(u models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.Email] = cloneUser(&u)
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *MemoryUserRepository) GetByResetToken(_ context.Context, token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return cloneUser(u), nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepository) SetResetToken(_ context.Context, email, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return ErrNoRowsUpdated
	}
	exp := expiresAt.UTC()
	u.ResetToken = &token
	u.ResetTokenExpiresAt = &exp
	return nil
}

func (r *MemoryUserRepository) UpdatePassword(_ context.Context, email, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return ErrNoRowsUpdated
	}
	u.PasswordHash = passwordHash
	u.ResetToken = nil
	u.ResetTokenExpiresAt = nil
	return nil
}

func (r *MemoryUserRepository) Ping(context.Context) error {
	return nil
}

func cloneUser(u *models.User) *models.User {
	c := *u
	if u.ResetToken != nil {
		t := *u.ResetToken
		c.ResetToken = &t
	}
	if u.ResetTokenExpiresAt != nil {
		e := *u.ResetTokenExpiresAt
		c.ResetTokenExpiresAt = &e
	}
	return &c
}
