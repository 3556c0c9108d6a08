package services

import (
	"context"
	"fmt"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"

	"github.com/dmitrijs2005/batiknft/internal/common"
	"github.com/dmitrijs2005/batiknft/internal/ledger"
	meta "github.com/dmitrijs2005/batiknft/internal/metadata"
	"github.com/dmitrijs2005/batiknft/internal/reconstruct"
)

// Action is something the active account may do with a token.
type Action string

const (
	ActionBuy    Action = "buy"
	ActionCancel Action = "cancel"
	ActionResell Action = "resell"
)

// DetailView is the token page. Certificate is set only for the owner.
type DetailView struct {
	Record      reconstruct.ListingRecord
	Role        reconstruct.Role
	Listed      bool
	Public      []meta.Attribute
	Certificate *meta.Certificate
	Actions     []Action
}

// Details looks the token up among the market, owned and listed items and
// builds its view for the active account.
func (s *marketService) Details(ctx context.Context, tokenID *big.Int) (*DetailView, error) {
	if tokenID == nil {
		return nil, fmt.Errorf("token id: %w", common.ErrNotFound)
	}

	raw, err := s.findRaw(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	rec, err := reconstruct.Reconstruct(ctx, raw, s.resolver())
	if err != nil {
		return nil, err
	}

	account, err := s.CurrentAccount(ctx)
	if err != nil {
		return nil, err
	}
	return buildView(rec, account), nil
}

func (s *marketService) findRaw(ctx context.Context, tokenID *big.Int) (ledger.RawRecord, error) {
	sameToken := func(r ledger.RawRecord) bool { return r.TokenID != nil && r.TokenID.Cmp(tokenID) == 0 }

	all, err := s.ledger.FetchAll(ctx)
	if err != nil {
		return ledger.RawRecord{}, err
	}
	if raw, ok := lo.Find(all, sameToken); ok {
		return raw, nil
	}

	account, err := s.CurrentAccount(ctx)
	if err != nil {
		return ledger.RawRecord{}, err
	}
	if account != (ethcommon.Address{}) {
		mine, err := s.ledger.FetchMine(ctx, account)
		if err != nil {
			return ledger.RawRecord{}, err
		}
		if raw, ok := lo.Find(mine, sameToken); ok {
			return raw, nil
		}

		listed, err := s.ledger.FetchListed(ctx, account)
		if err != nil {
			return ledger.RawRecord{}, err
		}
		if raw, ok := lo.Find(listed, sameToken); ok {
			return raw, nil
		}
	}

	return ledger.RawRecord{}, fmt.Errorf("token %s: %w", tokenID, common.ErrNotFound)
}

// buildView applies the visibility rules: public traits for everyone, the
// certificate for the owner, and actions by role and listing state.
func buildView(rec reconstruct.ListingRecord, account ethcommon.Address) *DetailView {
	role := reconstruct.RoleOf(rec, account)
	v := &DetailView{
		Record: rec,
		Role:   role,
		Listed: !rec.Sold && role != reconstruct.RoleOwner,
		Public: meta.PublicAttributes(rec.Attributes),
	}

	switch role {
	case reconstruct.RoleOwner:
		cert := meta.CertificateFromAttributes(rec.Attributes)
		v.Certificate = &cert
		v.Actions = []Action{ActionResell}
	case reconstruct.RoleSeller:
		if v.Listed {
			v.Actions = []Action{ActionCancel}
		}
	default:
		if v.Listed {
			v.Actions = []Action{ActionBuy}
		}
	}
	return v
}

func (v *DetailView) Can(a Action) bool {
	return lo.Contains(v.Actions, a)
}
