package domain

import (
	"context"
	"time"
)

// Skin is a catalog item. A nil OwnerID means the skin is still for sale.
type Skin struct {
	ID      int64    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name    string   `gorm:"type:varchar(100);not null;column:name" json:"name"`
	Price   int64    `gorm:"type:bigint;not null;check:chk_skins_price,price >= 0;column:price" json:"price"`
	OwnerID *int64   `gorm:"index;column:owner_id" json:"ownerId"`
	Owner   *Account `gorm:"foreignKey:OwnerID;references:ID" json:"-"`
}

type LedgerEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	AccountID int64     `gorm:"not null;index;column:account_id" json:"accountId"`
	SkinID    int64     `gorm:"not null;column:skin_id" json:"itemId"`
	Price     int64     `gorm:"type:bigint;not null;column:price" json:"price"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"createdAt"`
	Account   Account   `gorm:"foreignKey:AccountID;references:ID" json:"-"`
	Skin      Skin      `gorm:"foreignKey:SkinID;references:ID" json:"-"`
}

type BalanceResponse struct {
	Coins int64 `json:"coins"`
}

// AccountSummary is a consistent snapshot of balance, owned skins and purchases.
type AccountSummary struct {
	Coins   int64         `json:"coins"`
	Items   []Skin        `json:"items"`
	History []LedgerEntry `json:"history"`
}

type GrantRequest struct {
	Amount int64 `json:"amount"`
}

type PurchaseRequest struct {
	ItemID int64 `json:"itemId"`
}

type EconomyRepository interface {
	GetBalance(ctx context.Context, accountID int64) (int64, error)
	GrantCoins(ctx context.Context, accountID int64, amount int64) (int64, error)
	PurchaseSkin(ctx context.Context, accountID int64, skinID int64) (*Skin, error)
	ListLedger(ctx context.Context, accountID int64) ([]LedgerEntry, error)
	GetSummary(ctx context.Context, accountID int64) (AccountSummary, error)
}

type CatalogRepository interface {
	ListAvailable(ctx context.Context) ([]Skin, error)
	ListOwned(ctx context.Context, accountID int64) ([]Skin, error)
}
