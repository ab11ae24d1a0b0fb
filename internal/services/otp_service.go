package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/lib/pq"

	"blogsyte/internal/models"
	"blogsyte/internal/repositories"
	"blogsyte/internal/storage"
)

var (
	ErrDuplicateUser   = errors.New("user with this email already exists")
	ErrDeliveryFailed  = errors.New("failed to send OTP")
	ErrOTPNotFound     = errors.New("OTP expired or not found")
	ErrOTPExpired      = errors.New("OTP has expired")
	ErrTooManyAttempts = errors.New("too many failed attempts")
	ErrInvalidCode     = errors.New("invalid OTP")
	ErrPersistence     = errors.New("failed to create account")
)

const (
	otpTTL         = 5 * time.Minute
	maxOTPAttempts = 3
	sweepInterval  = 5 * time.Minute
)

// OTPService owns the signup verification flow: it issues challenges,
// validates attempts and hands off to account creation on success.
type OTPService struct {
	store    *storage.OtpStore
	users    repositories.UserRepository
	emails   EmailService
	auth     AuthService
	telegram *TelegramService

	now func() time.Time
}

func NewOTPService(
	store *storage.OtpStore,
	users repositories.UserRepository,
	emails EmailService,
	auth AuthService,
	telegram *TelegramService,
) *OTPService {
	return &OTPService{
		store:    store,
		users:    users,
		emails:   emails,
		auth:     auth,
		telegram: telegram,
		now:      time.Now,
	}
}

// generateCode draws uniformly from [100000, 999999], so the code is always
// six digits with no leading-zero truncation.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("otp generate: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Issue creates (or replaces) the challenge for email and delivers the code.
// When fullName and password are given, a pending registration rides along
// and Verify will materialize the account; without them this is a bare
// email-verification challenge.
//
// The challenge is stored before delivery and is deliberately kept when
// delivery fails: the caller gets ErrDeliveryFailed, and a redundant
// send-otp call is the only retry path.
func (s *OTPService) Issue(email, fullName, password string) error {
	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("otp issue lookup: %w", err)
	}
	if existing != nil {
		return ErrDuplicateUser
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	now := s.now()
	s.store.PutChallenge(email, &models.OtpChallenge{
		Code:     code,
		IssuedAt: now,
		Attempts: 0,
	})
	if password != "" {
		s.store.PutPending(email, &models.PendingRegistration{
			FullName:  fullName,
			Email:     email,
			Password:  password,
			CreatedAt: now,
		})
	}

	if err := s.emails.SendOTPEmail(email, code); err != nil {
		log.Printf("[otp][issue] delivery failed email=%q: %v", email, err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	log.Printf("[otp][issue] code sent email=%q", email)
	return nil
}

// Verify checks the submitted code against the stored challenge. On a match
// with an attached registration it creates the user and returns it; a bare
// challenge returns (nil, nil). The challenge is consumed on success, expiry
// and attempt exhaustion, so replaying a used code reports ErrOTPNotFound.
func (s *OTPService) Verify(email, submitted string) (*models.User, error) {
	ch, ok := s.store.GetChallenge(email)
	if !ok {
		return nil, ErrOTPNotFound
	}

	if s.now().Sub(ch.IssuedAt) > otpTTL {
		s.store.Delete(email)
		return nil, ErrOTPExpired
	}

	if ch.Attempts >= maxOTPAttempts {
		s.store.Delete(email)
		return nil, ErrTooManyAttempts
	}

	if submitted != ch.Code {
		attempts, _ := s.store.IncrementAttempts(email)
		if attempts >= maxOTPAttempts {
			s.store.Delete(email)
			return nil, ErrTooManyAttempts
		}
		return nil, ErrInvalidCode
	}

	pending, hasPending := s.store.GetPending(email)
	s.store.Delete(email)

	if !hasPending {
		log.Printf("[otp][verify] email verified (no registration) email=%q", email)
		return nil, nil
	}

	hash, err := s.auth.HashPassword(pending.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	user := &models.User{
		Name:         pending.FullName,
		Email:        pending.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(user); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	log.Printf("[otp][verify] account created user_id=%d email=%q", user.ID, user.Email)
	s.telegram.NotifyNewUser(user.Name, user.Email)
	return user, nil
}

// RunSweeper reclaims expired entries every 5 minutes until ctx is done.
// The in-request age check in Verify stays authoritative; this only keeps
// the maps from growing.
func (s *OTPService) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.Sweep(s.now(), otpTTL); n > 0 {
				log.Printf("[otp][sweep] removed %d expired entries", n)
			}
		}
	}
}
