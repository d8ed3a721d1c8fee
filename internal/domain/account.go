package domain

import "time"

// AccountStatus is the activation flag stored for an account.
type AccountStatus int32

const (
	AccountStatusSuspended AccountStatus = 0
	AccountStatusActive    AccountStatus = 1
)

// AccountAccess is the permission level stored for an account.
type AccountAccess int32

const (
	AccountAccessMember     AccountAccess = 0
	AccountAccessAdmin      AccountAccess = 1
	AccountAccessSuperAdmin AccountAccess = 2
)

// Account is a row of the users table. Idx is the surrogate key used as the
// token subject; ID is the login identifier chosen by the operator.
type Account struct {
	Idx          int64
	ID           string
	PasswordHash string
	Email        string
	Name         string
	Phone        string
	Status       AccountStatus
	Access       AccountAccess
	PresetIP     string
	// Expiry is zero when the account never expires.
	Expiry    int32
	CreatedAt time.Time
}
