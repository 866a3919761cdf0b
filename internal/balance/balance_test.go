package balance_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"leavesync/internal/balance"
	"leavesync/internal/balance/balancetest"
	balanceerrors "leavesync/internal/balance/errors"
	"leavesync/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestColumn(t *testing.T) {
	cases := map[domain.LeaveType]string{
		domain.LeaveSick:         "sick_leave_balance",
		domain.LeaveCasual:       "casual_leave_balance",
		domain.LeaveMedical:      "medical_leave_balance",
		domain.LeaveWorkFromHome: "work_from_home_balance",
	}
	for lt, want := range cases {
		got, ok := balance.Column(lt)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := balance.Column("annual")
	assert.False(t, ok)
}

func TestSnapshot_Of(t *testing.T) {
	snap := balance.Snapshot{Sick: d("7"), Casual: d("3.5"), Medical: d("2"), WorkFromHome: d("1")}

	v, ok := snap.Of(domain.LeaveCasual)
	assert.True(t, ok)
	assert.True(t, d("3.5").Equal(v))

	_, ok = snap.Of("unpaid")
	assert.False(t, ok)
}

func TestInsufficientBalanceMessage(t *testing.T) {
	err := balanceerrors.InsufficientBalance(domain.LeaveSick)
	assert.Equal(t, "Insufficient sick leave balance.", err.Message)
	assert.True(t, errors.Is(err, balanceerrors.InsufficientBalance(domain.LeaveSick)))
	assert.False(t, errors.Is(err, balanceerrors.InsufficientBalance(domain.LeaveCasual)))
}

func TestMemoryStore_DebitNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	store := balancetest.NewMemoryStore(balance.Snapshot{EmployeeID: 1, Casual: d("2")})

	assert.NoError(t, store.Debit(ctx, 1, domain.LeaveCasual, d("1.5")))
	err := store.Debit(ctx, 1, domain.LeaveCasual, d("1"))
	assert.ErrorIs(t, err, balanceerrors.InsufficientBalance(domain.LeaveCasual))
	assert.True(t, d("0.5").Equal(store.MustGet(1).Casual))

	assert.NoError(t, store.ForceDebit(ctx, 1, domain.LeaveCasual, d("1")))
	assert.True(t, d("-0.5").Equal(store.MustGet(1).Casual))
}

func TestMemoryStore_ConcurrentDebits(t *testing.T) {
	ctx := context.Background()
	store := balancetest.NewMemoryStore(balance.Snapshot{EmployeeID: 1, Sick: d("5")})

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.Debit(ctx, 1, domain.LeaveSick, d("1")) == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.True(t, store.MustGet(1).Sick.IsZero())
}

func TestMemoryStore_UnknownEmployee(t *testing.T) {
	store := balancetest.NewMemoryStore()
	_, err := store.Get(context.Background(), 9)
	assert.ErrorIs(t, err, balanceerrors.ErrEmployeeNotFound)
}
