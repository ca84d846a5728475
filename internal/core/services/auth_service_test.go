package services

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"strings"
	"sync"
	"testing"

	"quantfund-staking/internal/adapters/persistence/models"
	"quantfund-staking/internal/config"
	"quantfund-staking/internal/core/domain"
	"quantfund-staking/internal/pkg/signature"
	"quantfund-staking/internal/pkg/token"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ---------------------------------------------------------------------------
// In-memory mock for AccountRepository. Lets us test the real AuthService
// logic without a database; the address uniqueness constraint is emulated
// with gorm.ErrDuplicatedKey.
// ---------------------------------------------------------------------------

type mockAccountRepo struct {
	mu     sync.Mutex
	nextID uint
	byAddr map[string]*models.Account

	// when set, the next Create fails with a duplicate-key error after
	// inserting the racing account (simulates a lost first-login race)
	raceWith *models.Account
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{nextID: 1, byAddr: make(map[string]*models.Account)}
}

func (m *mockAccountRepo) Create(_ context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.raceWith != nil {
		racing := m.raceWith
		m.raceWith = nil
		racing.ID = m.nextID
		m.nextID++
		m.byAddr[racing.Address] = racing
		return gorm.ErrDuplicatedKey
	}

	if _, exists := m.byAddr[account.Address]; exists {
		return gorm.ErrDuplicatedKey
	}
	account.ID = m.nextID
	m.nextID++
	cp := *account
	m.byAddr[account.Address] = &cp
	return nil
}

func (m *mockAccountRepo) GetByID(_ context.Context, id uint) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byAddr {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) GetByAddress(_ context.Context, address string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byAddr[address]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockAccountRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.byAddr)), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type wallet struct {
	key     *ecdsa.PrivateKey
	address string
	sig     string
}

func newWallet(t *testing.T) *wallet {
	t.Helper()

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	sig, err := ethcrypto.Sign(signature.HashPersonalMessage([]byte(LoginMessage)), key)
	require.NoError(t, err)
	sig[64] += 27

	return &wallet{
		key:     key,
		address: ethcrypto.PubkeyToAddress(key.PublicKey).Hex(),
		sig:     "0x" + hex.EncodeToString(sig),
	}
}

func testConfig(blocked ...string) *config.Config {
	set := make(map[string]bool)
	for _, addr := range blocked {
		set[strings.ToLower(addr)] = true
	}
	return &config.Config{
		AppMode: "dev",
		Session: config.SessionConfig{Secret: "test-secret", ExpiresHours: 1},
		Blocked: config.BlocklistConfig{Addresses: set},
	}
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	require.Equal(t, status, appErr.StatusCode)
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestLoginWithSignature_FirstLoginCreatesAccount(t *testing.T) {
	t.Parallel()

	repo := newMockAccountRepo()
	svc := NewAuthService(repo, testConfig())
	w := newWallet(t)

	result, err := svc.LoginWithSignature(context.Background(), &LoginInput{
		Address:   w.address,
		Signature: w.sig,
	})
	require.NoError(t, err)

	require.NotZero(t, result.ID)
	require.Equal(t, strings.ToLower(w.address), result.Address)
	require.True(t, strings.HasPrefix(result.ReferralCode, "REF"))
	require.Len(t, result.ReferralCode, 8)
	require.False(t, result.IsAdmin)

	// Issued credential resolves back to the account identity
	claims, err := token.Validate(result.AuthToken, "test-secret")
	require.NoError(t, err)
	require.Equal(t, result.ID, claims.AccountID)
	require.Equal(t, result.Address, claims.Address)
	require.Equal(t, models.RoleUser, claims.Role)
}

func TestLoginWithSignature_SecondLoginResolvesFirst(t *testing.T) {
	t.Parallel()

	repo := newMockAccountRepo()
	svc := NewAuthService(repo, testConfig())
	w := newWallet(t)

	first, err := svc.LoginWithSignature(context.Background(), &LoginInput{Address: w.address, Signature: w.sig})
	require.NoError(t, err)

	second, err := svc.LoginWithSignature(context.Background(), &LoginInput{Address: w.address, Signature: w.sig})
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.ReferralCode, second.ReferralCode)

	count, _ := repo.Count(context.Background())
	require.EqualValues(t, 1, count)
}

func TestLoginWithSignature_AddressCaseInsensitive(t *testing.T) {
	t.Parallel()

	repo := newMockAccountRepo()
	svc := NewAuthService(repo, testConfig())
	w := newWallet(t)

	first, err := svc.LoginWithSignature(context.Background(), &LoginInput{
		Address:   strings.ToLower(w.address),
		Signature: w.sig,
	})
	require.NoError(t, err)

	second, err := svc.LoginWithSignature(context.Background(), &LoginInput{
		Address:   "0x" + strings.ToUpper(strings.TrimPrefix(w.address, "0x")),
		Signature: w.sig,
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	count, _ := repo.Count(context.Background())
	require.EqualValues(t, 1, count)
}

func TestLoginWithSignature_MissingFields(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(newMockAccountRepo(), testConfig())

	_, err := svc.LoginWithSignature(context.Background(), &LoginInput{Address: "", Signature: ""})
	requireStatus(t, err, 400)
	appErr, _ := domain.AsAppError(err)
	require.Len(t, appErr.Fields, 2)

	w := newWallet(t)
	_, err = svc.LoginWithSignature(context.Background(), &LoginInput{Address: w.address, Signature: ""})
	requireStatus(t, err, 400)
	appErr, _ = domain.AsAppError(err)
	require.Len(t, appErr.Fields, 1)
	require.Equal(t, "signature", appErr.Fields[0].Field)
}

func TestLoginWithSignature_BadAddressFormat(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(newMockAccountRepo(), testConfig())

	_, err := svc.LoginWithSignature(context.Background(), &LoginInput{
		Address:   "not-an-address",
		Signature: "0xdeadbeef",
	})
	requireStatus(t, err, 400)
}

func TestLoginWithSignature_BlockedAddress(t *testing.T) {
	t.Parallel()

	w := newWallet(t)
	repo := newMockAccountRepo()
	svc := NewAuthService(repo, testConfig(w.address))

	_, err := svc.LoginWithSignature(context.Background(), &LoginInput{Address: w.address, Signature: w.sig})
	requireStatus(t, err, 403)

	// Blocked before any account mutation
	count, _ := repo.Count(context.Background())
	require.EqualValues(t, 0, count)
}

func TestLoginWithSignature_InvalidSignature(t *testing.T) {
	t.Parallel()

	repo := newMockAccountRepo()
	svc := NewAuthService(repo, testConfig())
	w := newWallet(t)
	other := newWallet(t)

	// Signature from a different key
	_, err := svc.LoginWithSignature(context.Background(), &LoginInput{Address: w.address, Signature: other.sig})
	requireStatus(t, err, 401)

	// Garbage signature fails closed with the same kind
	_, err = svc.LoginWithSignature(context.Background(), &LoginInput{Address: w.address, Signature: "0x1234"})
	requireStatus(t, err, 401)

	// Verification failures never created an account
	count, _ := repo.Count(context.Background())
	require.EqualValues(t, 0, count)
}

func TestLoginWithSignature_ReferralLinksAccount(t *testing.T) {
	t.Parallel()

	repo := newMockAccountRepo()
	svc := NewAuthService(repo, testConfig())

	referrer := newWallet(t)
	refResult, err := svc.LoginWithSignature(context.Background(), &LoginInput{Address: referrer.address, Signature: referrer.sig})
	require.NoError(t, err)

	w := newWallet(t)
	result, err := svc.LoginWithSignature(context.Background(), &LoginInput{
		Address:         w.address,
		Signature:       w.sig,
		ReferralAddress: referrer.address,
	})
	require.NoError(t, err)

	account, err := repo.GetByAddress(context.Background(), result.Address)
	require.NoError(t, err)
	require.NotNil(t, account.ReferredBy)
	require.Equal(t, refResult.ID, *account.ReferredBy)
}

func TestLoginWithSignature_InvalidReferral(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(newMockAccountRepo(), testConfig())
	w := newWallet(t)

	// Malformed referral address
	_, err := svc.LoginWithSignature(context.Background(), &LoginInput{
		Address:         w.address,
		Signature:       w.sig,
		ReferralAddress: "nope",
	})
	requireStatus(t, err, 400)

	// Well-formed but unknown referral address
	unknown := newWallet(t)
	_, err = svc.LoginWithSignature(context.Background(), &LoginInput{
		Address:         w.address,
		Signature:       w.sig,
		ReferralAddress: unknown.address,
	})
	requireStatus(t, err, 400)
}

func TestLoginWithSignature_ReferralIgnoredForExistingAccount(t *testing.T) {
	t.Parallel()

	repo := newMockAccountRepo()
	svc := NewAuthService(repo, testConfig())
	w := newWallet(t)

	_, err := svc.LoginWithSignature(context.Background(), &LoginInput{Address: w.address, Signature: w.sig})
	require.NoError(t, err)

	// Referral linkage only happens at creation; a bogus referral on a
	// subsequent login is not even validated
	result, err := svc.LoginWithSignature(context.Background(), &LoginInput{
		Address:         w.address,
		Signature:       w.sig,
		ReferralAddress: "nope",
	})
	require.NoError(t, err)

	account, err := repo.GetByAddress(context.Background(), result.Address)
	require.NoError(t, err)
	require.Nil(t, account.ReferredBy)
}

func TestLoginWithSignature_DuplicateCreateRaceResolvesWinner(t *testing.T) {
	t.Parallel()

	repo := newMockAccountRepo()
	svc := NewAuthService(repo, testConfig())
	w := newWallet(t)

	// Another request wins the insert between our lookup and create
	repo.raceWith = &models.Account{
		Address:      strings.ToLower(w.address),
		ReferralCode: "REFWINNR",
	}

	result, err := svc.LoginWithSignature(context.Background(), &LoginInput{Address: w.address, Signature: w.sig})
	require.NoError(t, err)
	require.Equal(t, "REFWINNR", result.ReferralCode)

	count, _ := repo.Count(context.Background())
	require.EqualValues(t, 1, count)
}

func TestGetByID(t *testing.T) {
	t.Parallel()

	repo := newMockAccountRepo()
	svc := NewAuthService(repo, testConfig())
	w := newWallet(t)

	created, err := svc.LoginWithSignature(context.Background(), &LoginInput{Address: w.address, Signature: w.sig})
	require.NoError(t, err)

	account, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Address, account.Address)
	require.Equal(t, created.ReferralCode, account.ReferralCode)

	_, err = svc.GetByID(context.Background(), 9999)
	requireStatus(t, err, 404)
}

func TestGenerateReferralCode_Format(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := generateReferralCode()
		require.NoError(t, err)
		require.Len(t, code, 8)
		require.True(t, strings.HasPrefix(code, "REF"))
		for _, r := range code[3:] {
			require.Contains(t, base36Upper, string(r))
		}
		seen[code] = true
	}
	// Independent draws should not all collide
	require.Greater(t, len(seen), 1)
}
