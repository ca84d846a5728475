package services

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"log"

	"quantfund-staking/internal/adapters/persistence/models"
	"quantfund-staking/internal/adapters/persistence/repositories"
	"quantfund-staking/internal/config"
	"quantfund-staking/internal/core/domain"
	"quantfund-staking/internal/pkg/signature"
	"quantfund-staking/internal/pkg/token"
	"quantfund-staking/internal/pkg/validation"

	"gorm.io/gorm"
)

// LoginMessage is the fixed challenge every wallet signs to authenticate.
// It is an application constant, never user supplied.
const LoginMessage = "Login Quant Fund"

const (
	referralCodePrefix = "REF"
	referralCodeLength = 5
)

// AuthService handles wallet-signature authentication
type AuthService struct {
	accountRepo repositories.AccountRepository
	cfg         *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(accountRepo repositories.AccountRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		cfg:         cfg,
	}
}

// LoginInput represents login-with-signature input
type LoginInput struct {
	Address         string `json:"address"`
	Signature       string `json:"signature"`
	ReferralAddress string `json:"referral_address,omitempty"`
}

// LoginWithSignature authenticates a wallet by signature and returns the
// account summary with a session credential. Signature verification happens
// strictly before any account lookup, so an unauthenticated caller cannot
// probe for account existence.
func (s *AuthService) LoginWithSignature(ctx context.Context, input *LoginInput) (*models.AccountResponse, error) {
	// 1. Shape checks
	if input.Address == "" || input.Signature == "" {
		var fields []domain.FieldError
		if input.Address == "" {
			fields = append(fields, domain.FieldError{Field: "address", Message: "required"})
		}
		if input.Signature == "" {
			fields = append(fields, domain.FieldError{Field: "signature", Message: "required"})
		}
		return nil, domain.NewValidationError("Address and signature are required").WithFields(fields...)
	}
	if !validation.IsValidEthereumAddress(input.Address) {
		return nil, domain.NewValidationError("Invalid Ethereum address format")
	}

	address := validation.NormalizeAddress(input.Address)

	// 2. Blocklist
	if s.cfg.IsBlocked(address) {
		log.Printf("⚠️ Blocked address attempted login [address: %s]", address)
		return nil, domain.NewForbiddenError("This address is blocked from accessing the platform")
	}

	// 3. Signature verification
	if !signature.Verify(input.Address, input.Signature, LoginMessage) {
		log.Printf("⚠️ Invalid wallet signature [address: %s]", address)
		return nil, domain.NewUnauthorizedError("Wallet signature verification failed")
	}

	// 4. Resolve or create the account
	account, err := s.accountRepo.GetByAddress(ctx, address)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewInternalError(err)
		}
		account, err = s.register(ctx, address, input.ReferralAddress)
		if err != nil {
			return nil, err
		}
	}

	// 5. Issue the session credential
	authToken, err := token.Generate(
		account.ID,
		account.Address,
		account.Role(),
		s.cfg.Session.Secret,
		s.cfg.Session.ExpiresHours,
	)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	log.Printf("✅ Account logged in [id: %d, address: %s]", account.ID, account.Address)

	return &models.AccountResponse{
		ID:           account.ID,
		Address:      account.Address,
		ReferralCode: account.ReferralCode,
		AuthToken:    authToken,
		IsAdmin:      account.IsAdmin,
	}, nil
}

// GetByID gets an account by ID
func (s *AuthService) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Account not found")
		}
		return nil, domain.NewInternalError(err)
	}
	return account, nil
}

// register creates a new account on first login, linking the referrer when a
// referral address was supplied
func (s *AuthService) register(ctx context.Context, address, referralAddress string) (*models.Account, error) {
	var referredBy *uint

	if referralAddress != "" {
		if !validation.IsValidEthereumAddress(referralAddress) {
			return nil, domain.NewValidationError("Invalid referral address format")
		}
		referrer, err := s.accountRepo.GetByAddress(ctx, validation.NormalizeAddress(referralAddress))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.NewValidationError("Invalid referral code")
			}
			return nil, domain.NewInternalError(err)
		}
		referredBy = &referrer.ID
	}

	code, err := generateReferralCode()
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	account := &models.Account{
		Address:      address,
		ReferralCode: code,
		ReferredBy:   referredBy,
		IsAdmin:      false,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Concurrent first login: another request created the account
			// between our lookup and insert. Re-resolve to keep login
			// idempotent instead of surfacing the conflict.
			existing, getErr := s.accountRepo.GetByAddress(ctx, address)
			if getErr != nil {
				return nil, domain.NewInternalError(getErr)
			}
			return existing, nil
		}
		return nil, domain.NewInternalError(err)
	}

	log.Printf("✅ New account registered [id: %d, address: %s]", account.ID, account.Address)
	return account, nil
}

const base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateReferralCode returns a fixed prefix plus random base36 uppercase
// characters. Codes are independent random draws; the unique index on
// referral_code is what catches an actual collision.
func generateReferralCode() (string, error) {
	buf := make([]byte, referralCodeLength)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = base36Upper[int(b)%len(base36Upper)]
	}
	return referralCodePrefix + string(buf), nil
}
