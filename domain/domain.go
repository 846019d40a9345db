package domain

import "strings"

// Table is the mongo collection name
type Table string

const (
	TableItems         Table = "items"
	TableBids          Table = "bids"
	TableNotifications Table = "notifications"
	TableAccounts      Table = "accounts"
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

// UserId identifies an account. It is the account's email address.
type UserId string

func (u UserId) ToLower() UserId {
	return UserId(strings.ToLower(string(u)))
}

func (u UserId) ToLowerStr() string {
	return strings.ToLower(string(u))
}

func (u UserId) IsEmpty() bool {
	return len(u) == 0
}

func (u UserId) Equals(o UserId) bool {
	return u.ToLowerStr() == o.ToLowerStr()
}
