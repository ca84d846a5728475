package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"quantfund-staking/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type mockWithdrawalRepo struct {
	mu          sync.Mutex
	nextID      uint
	withdrawals map[uint]*models.Withdrawal
}

func newMockWithdrawalRepo() *mockWithdrawalRepo {
	return &mockWithdrawalRepo{nextID: 1, withdrawals: make(map[uint]*models.Withdrawal)}
}

func (m *mockWithdrawalRepo) Create(_ context.Context, withdrawal *models.Withdrawal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	withdrawal.ID = m.nextID
	withdrawal.CreatedAt = time.Now()
	m.nextID++
	cp := *withdrawal
	m.withdrawals[withdrawal.ID] = &cp
	return nil
}

func (m *mockWithdrawalRepo) ListByAccount(_ context.Context, accountID uint, offset, limit int) ([]*models.Withdrawal, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var owned []*models.Withdrawal
	for id := m.nextID; id >= 1; id-- {
		if w, ok := m.withdrawals[id]; ok && w.AccountID == accountID {
			cp := *w
			owned = append(owned, &cp)
		}
	}
	total := int64(len(owned))
	if offset >= len(owned) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], total, nil
}

func (m *mockWithdrawalRepo) CancelPending(_ context.Context, accountID, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.withdrawals[id]
	if !ok || w.AccountID != accountID || w.Status != models.WithdrawalPending {
		return false, nil
	}
	w.Status = models.WithdrawalCancelled
	return true, nil
}

func (m *mockWithdrawalRepo) ExpireStale(_ context.Context, olderThan time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, w := range m.withdrawals {
		if w.Status == models.WithdrawalPending && w.CreatedAt.Before(olderThan) {
			w.Status = models.WithdrawalExpired
			n++
		}
	}
	return n, nil
}

func (m *mockWithdrawalRepo) CountPending(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, w := range m.withdrawals {
		if w.Status == models.WithdrawalPending {
			n++
		}
	}
	return n, nil
}

const testWalletAddress = "0x742d35cc6634c0532925a3b844bc454e4438f44e"

func TestWithdrawalRequest_CreatesPending(t *testing.T) {
	t.Parallel()

	repo := newMockWithdrawalRepo()
	svc := NewWithdrawalService(repo)

	w, err := svc.Request(context.Background(), 7, testWalletAddress, decimal.NewFromInt(50))
	require.NoError(t, err)
	require.NotZero(t, w.ID)
	require.Equal(t, models.WithdrawalPending, w.Status)
	require.Equal(t, testWalletAddress, w.ToAddress)
}

func TestWithdrawalRequest_NormalizesAddress(t *testing.T) {
	t.Parallel()

	svc := NewWithdrawalService(newMockWithdrawalRepo())

	w, err := svc.Request(context.Background(), 7, "0x742D35CC6634C0532925A3B844BC454E4438F44E", decimal.NewFromInt(1))
	require.NoError(t, err)
	require.Equal(t, testWalletAddress, w.ToAddress)
}

func TestWithdrawalRequest_Rejections(t *testing.T) {
	t.Parallel()

	svc := NewWithdrawalService(newMockWithdrawalRepo())

	_, err := svc.Request(context.Background(), 7, "not-an-address", decimal.NewFromInt(1))
	requireStatus(t, err, 400)

	_, err = svc.Request(context.Background(), 7, testWalletAddress, decimal.Zero)
	requireStatus(t, err, 400)

	_, err = svc.Request(context.Background(), 7, testWalletAddress, decimal.NewFromInt(-10))
	requireStatus(t, err, 400)

	_, err = svc.Request(context.Background(), 7, testWalletAddress, decimal.NewFromInt(2000000))
	requireStatus(t, err, 400)
}

func TestWithdrawalCancel_OnlyOwnPending(t *testing.T) {
	t.Parallel()

	repo := newMockWithdrawalRepo()
	svc := NewWithdrawalService(repo)

	w, err := svc.Request(context.Background(), 7, testWalletAddress, decimal.NewFromInt(50))
	require.NoError(t, err)

	// Another account cannot cancel it
	err = svc.Cancel(context.Background(), 8, w.ID)
	requireStatus(t, err, 404)

	require.NoError(t, svc.Cancel(context.Background(), 7, w.ID))

	// Cancelled is terminal
	err = svc.Cancel(context.Background(), 7, w.ID)
	requireStatus(t, err, 404)
}

func TestWithdrawalExpireStale_OnlyOldPending(t *testing.T) {
	t.Parallel()

	repo := newMockWithdrawalRepo()
	svc := NewWithdrawalService(repo)

	stale, err := svc.Request(context.Background(), 7, testWalletAddress, decimal.NewFromInt(5))
	require.NoError(t, err)
	fresh, err := svc.Request(context.Background(), 7, testWalletAddress, decimal.NewFromInt(5))
	require.NoError(t, err)

	repo.mu.Lock()
	repo.withdrawals[stale.ID].CreatedAt = time.Now().Add(-48 * time.Hour)
	repo.mu.Unlock()

	n, err := svc.ExpireStale(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	require.Equal(t, models.WithdrawalExpired, repo.withdrawals[stale.ID].Status)
	require.Equal(t, models.WithdrawalPending, repo.withdrawals[fresh.ID].Status)
}

func TestWithdrawalList_NewestFirst(t *testing.T) {
	t.Parallel()

	svc := NewWithdrawalService(newMockWithdrawalRepo())

	first, _ := svc.Request(context.Background(), 7, testWalletAddress, decimal.NewFromInt(1))
	second, _ := svc.Request(context.Background(), 7, testWalletAddress, decimal.NewFromInt(2))

	page, total, err := svc.List(context.Background(), 7, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, page, 2)
	require.Equal(t, second.ID, page[0].ID)
	require.Equal(t, first.ID, page[1].ID)
}
