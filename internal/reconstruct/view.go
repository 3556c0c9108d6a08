package reconstruct

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
)

// Role is the relation of the active account to a record.
type Role int

const (
	RoleViewer Role = iota
	RoleSeller
	RoleOwner
)

func (r Role) String() string {
	switch r {
	case RoleSeller:
		return "seller"
	case RoleOwner:
		return "owner"
	default:
		return "viewer"
	}
}

// Addresses compare as bytes, so hex case never matters.
func IsOwner(rec ListingRecord, account ethcommon.Address) bool {
	return account != (ethcommon.Address{}) && rec.Owner == account
}

func IsSeller(rec ListingRecord, account ethcommon.Address) bool {
	return account != (ethcommon.Address{}) && rec.Seller == account
}

// RoleOf prefers owner over seller; a listed token is owned by the
// contract, so an account is rarely both.
func RoleOf(rec ListingRecord, account ethcommon.Address) Role {
	switch {
	case IsOwner(rec, account):
		return RoleOwner
	case IsSeller(rec, account):
		return RoleSeller
	default:
		return RoleViewer
	}
}

// Partition splits records by the account's role.
func Partition(records []ListingRecord, account ethcommon.Address) (owned, selling, others []ListingRecord) {
	groups := lo.GroupBy(records, func(rec ListingRecord) Role { return RoleOf(rec, account) })
	return groups[RoleOwner], groups[RoleSeller], groups[RoleViewer]
}
