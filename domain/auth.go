package domain

import (
	"context"
	"time"
)

type Account struct {
	ID               int64      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Login            string     `gorm:"type:varchar(50);uniqueIndex:idx_accounts_login;not null;column:login" json:"login"`
	PasswordHash     string     `gorm:"type:varchar(255);not null;column:password_hash" json:"-"`
	Coins            int64      `gorm:"type:bigint;not null;check:chk_accounts_coins,coins >= 0;column:coins" json:"coins"`
	SessionID        *string    `gorm:"type:varchar(64);column:session_id" json:"-"`
	SessionExpiresAt *time.Time `gorm:"column:session_expires_at" json:"-"`
	CreatedAt        time.Time  `gorm:"autoCreateTime;column:created_at" json:"createdAt"`
}

type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AuthResult is returned by register and login. Token is empty when
// registration does not log the account in.
type AuthResult struct {
	Token string `json:"token,omitempty"`
	Coins int64  `json:"coins"`
}

type AuthRepository interface {
	FindByLogin(ctx context.Context, login string) (*Account, error)
	CreateAccount(ctx context.Context, login string, passwordHash string, coins int64) (*Account, error)
	UpdatePasswordHash(ctx context.Context, accountID int64, passwordHash string) error
	SaveSession(ctx context.Context, accountID int64, sessionID string, expiresAt time.Time) error
}
