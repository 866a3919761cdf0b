// Package balancetest provides an in-memory balance.Store for service tests.
package balancetest

import (
	"context"
	"database/sql"
	"sync"

	"leavesync/internal/balance"
	balanceerrors "leavesync/internal/balance/errors"
	"leavesync/internal/domain"

	"github.com/shopspring/decimal"
)

type MemoryStore struct {
	mu       sync.Mutex
	balances map[uint]*balance.Snapshot
}

func NewMemoryStore(snapshots ...balance.Snapshot) *MemoryStore {
	s := &MemoryStore{balances: map[uint]*balance.Snapshot{}}
	for i := range snapshots {
		snap := snapshots[i]
		s.balances[snap.EmployeeID] = &snap
	}
	return s
}

func (s *MemoryStore) WithTx(*sql.Tx) balance.Store {
	return s
}

func (s *MemoryStore) Get(_ context.Context, employeeID uint) (balance.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.balances[employeeID]
	if !ok {
		return balance.Snapshot{}, balanceerrors.ErrEmployeeNotFound
	}
	return *snap, nil
}

// MustGet is Get for assertions.
func (s *MemoryStore) MustGet(employeeID uint) balance.Snapshot {
	snap, err := s.Get(context.Background(), employeeID)
	if err != nil {
		panic(err)
	}
	return snap
}

func (s *MemoryStore) Debit(_ context.Context, employeeID uint, leaveType domain.LeaveType, days decimal.Decimal) error {
	return s.apply(employeeID, leaveType, days.Neg(), false)
}

func (s *MemoryStore) ForceDebit(_ context.Context, employeeID uint, leaveType domain.LeaveType, days decimal.Decimal) error {
	return s.apply(employeeID, leaveType, days.Neg(), true)
}

func (s *MemoryStore) Credit(_ context.Context, employeeID uint, leaveType domain.LeaveType, days decimal.Decimal) error {
	return s.apply(employeeID, leaveType, days, true)
}

func (s *MemoryStore) Reset(_ context.Context, employeeID uint, sick, casual decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.balances[employeeID]
	if !ok {
		return balanceerrors.ErrEmployeeNotFound
	}
	snap.Sick = sick
	snap.Casual = casual
	return nil
}

func (s *MemoryStore) apply(employeeID uint, leaveType domain.LeaveType, delta decimal.Decimal, allowNegative bool) error {
	if delta.IsZero() {
		return balanceerrors.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.balances[employeeID]
	if !ok {
		return balanceerrors.ErrEmployeeNotFound
	}

	var field *decimal.Decimal
	switch leaveType {
	case domain.LeaveSick:
		field = &snap.Sick
	case domain.LeaveCasual:
		field = &snap.Casual
	case domain.LeaveMedical:
		field = &snap.Medical
	case domain.LeaveWorkFromHome:
		field = &snap.WorkFromHome
	default:
		return balanceerrors.ErrUnknownLeaveType
	}

	next := field.Add(delta)
	if !allowNegative && next.IsNegative() {
		return balanceerrors.InsufficientBalance(leaveType)
	}
	*field = next
	return nil
}
