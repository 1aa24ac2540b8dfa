package models

import "time"

// User: строка таблицы users. Токен сброса и срок его действия
// либо оба заданы, либо оба NULL.
type User struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	ResetToken          *string    `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"reset_token_expires_at,omitempty"`
}

// HasActiveToken: токен выдан и ещё не истёк на момент now.
func (u *User) HasActiveToken(now time.Time) bool {
	if u.ResetToken == nil || u.ResetTokenExpiresAt == nil {
		return false
	}
	return !now.After(*u.ResetTokenExpiresAt)
}
