// Package session holds the explicit client session: the active account and
// the state of the write currently in flight.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/batiknft/internal/ledger"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

type State int

const (
	Idle State = iota
	Submitted
	Pending
	Confirmed
	Rejected
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitted:
		return "submitted"
	case Pending:
		return "pending"
	case Confirmed:
		return "confirmed"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrBusy is returned by Track while another write is in flight.
var ErrBusy = errors.New("another transaction is in progress")

// Observer is told about every state change.
type Observer func(state State, tx ethcommon.Hash)

type Session struct {
	mu       sync.RWMutex
	account  ethcommon.Address
	state    State
	lastTx   ethcommon.Hash
	lastErr  error
	observer Observer
}

func New() *Session {
	return &Session{}
}

func (s *Session) Account() ethcommon.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account
}

func (s *Session) SetAccount(a ethcommon.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = a
}

func (s *Session) Connected() bool {
	return s.Account() != (ethcommon.Address{})
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Busy is true while a write is submitted or pending.
func (s *Session) Busy() bool {
	st := s.State()
	return st == Submitted || st == Pending
}

// LastError is the failure of the most recent write, if any.
func (s *Session) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Session) Observe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = fn
}

func (s *Session) set(state State, tx ethcommon.Hash, err error) {
	s.mu.Lock()
	s.state = state
	if tx != (ethcommon.Hash{}) {
		s.lastTx = tx
	}
	s.lastErr = err
	obs := s.observer
	s.mu.Unlock()

	if obs != nil {
		obs(state, tx)
	}
}

// Track runs one write. submit broadcasts the transaction; Track then waits
// for it to be mined. The session always ends Confirmed or Rejected, so the
// busy flag is cleared on every path, including a panic in submit.
func (s *Session) Track(ctx context.Context, submit func(ctx context.Context) (*ledger.PendingTx, error)) (receipt *ledger.Receipt, err error) {
	s.mu.Lock()
	if s.state == Submitted || s.state == Pending {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.state = Submitted
	s.lastErr = nil
	obs := s.observer
	s.mu.Unlock()

	if obs != nil {
		obs(Submitted, ethcommon.Hash{})
	}

	var hash ethcommon.Hash
	defer func() {
		if p := recover(); p != nil {
			s.set(Rejected, hash, fmt.Errorf("panic: %v", p))
			panic(p)
		}
		if err != nil {
			s.set(Rejected, hash, err)
			return
		}
		s.set(Confirmed, hash, nil)
	}()

	tx, err := submit(ctx)
	if err != nil {
		return nil, err
	}

	hash = tx.Hash
	s.set(Pending, hash, nil)

	return tx.Wait(ctx)
}
