package models

import (
	"github.com/vendorhub/backend/internal/domain/identity"
)

// AccountModel is the persistence model for the Account aggregate
type AccountModel struct {
	AggregateModel
	Username     string            `gorm:"type:varchar(150);not null;uniqueIndex:idx_accounts_username"`
	Email        string            `gorm:"type:varchar(254);not null;default:''"`
	FirstName    string            `gorm:"type:varchar(150);not null;default:''"`
	LastName     string            `gorm:"type:varchar(150);not null;default:''"`
	PasswordHash string            `gorm:"type:varchar(255);not null"`
	Role         identity.RoleKind `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account
func (m *AccountModel) ToDomain() *identity.Account {
	return &identity.Account{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Username:          m.Username,
		Email:             m.Email,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		PasswordHash:      m.PasswordHash,
		Role:              m.Role,
	}
}

// FromDomain populates the persistence model from a domain Account
func (m *AccountModel) FromDomain(a *identity.Account) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Username = a.Username
	m.Email = a.Email
	m.FirstName = a.FirstName
	m.LastName = a.LastName
	m.PasswordHash = a.PasswordHash
	m.Role = a.Role
}

// AccountModelFromDomain creates a new persistence model from a domain Account
func AccountModelFromDomain(a *identity.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}
