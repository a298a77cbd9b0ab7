package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"family-records-go/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const mailTimeout = 10 * time.Second

// Mailer is the slice of the mail collaborator the service needs. Sending is
// fire-and-forget: failures are logged, never surfaced.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Service struct {
	repo     Repository
	mail     Mailer
	log      logger.Logger
	baseURL  string
	resetTTL time.Duration

	now func() time.Time
}

func NewService(repo Repository, mail Mailer, log logger.Logger, baseURL string, resetTTL time.Duration) *Service {
	if resetTTL <= 0 {
		resetTTL = 10 * time.Minute
	}
	return &Service{
		repo:     repo,
		mail:     mail,
		log:      log,
		baseURL:  strings.TrimRight(baseURL, "/"),
		resetTTL: resetTTL,
		now:      time.Now,
	}
}

// Login verifies credentials. An unknown email and a wrong password fail
// with distinct errors on purpose; the handlers attribute them to distinct
// form fields.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	if email == "" {
		return nil, invalidField("email", "Email is required.")
	}
	if password == "" {
		return nil, invalidField("password", "Password is required.")
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return user, nil
}

// ForgotPassword issues a reset token for a registered email and mails the
// reset link in the background.
func (s *Service) ForgotPassword(ctx context.Context, email string) (*PasswordReset, error) {
	if email == "" {
		return nil, invalidField("email", "Email is required.")
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	reset := PasswordReset{
		Token:  uuid.NewString(),
		UserID: user.ID,
	}
	if err := s.repo.CreateReset(ctx, &reset); err != nil {
		return nil, err
	}

	s.sendResetEmail(user.Email, reset.Token)
	return &reset, nil
}

// CheckReset reports whether a reset token is still usable. Expiry is lazy:
// an expired row is purged on first access and reported as expired.
func (s *Service) CheckReset(ctx context.Context, token string) error {
	_, err := s.liveReset(ctx, token)
	return err
}

// ResetPassword consumes a valid token: the new password is validated,
// hashed and stored, and the token row deleted in the same transaction so it
// can never be used twice.
func (s *Service) ResetPassword(ctx context.Context, token, password, confirm string) error {
	reset, err := s.liveReset(ctx, token)
	if err != nil {
		return err
	}

	if err := ValidatePassword(password); err != nil {
		return err
	}
	if err := ValidateConfirmation(password, confirm); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.UpdatePasswordHash(ctx, reset.UserID, string(hash)); err != nil {
			return err
		}
		return tx.DeleteReset(ctx, reset.ID)
	})
}

func (s *Service) liveReset(ctx context.Context, token string) (*PasswordReset, error) {
	reset, err := s.repo.GetReset(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.now().Sub(reset.CreatedAt) >= s.resetTTL {
		if err := s.repo.DeleteReset(ctx, reset.ID); err != nil && !errors.Is(err, ErrResetNotFound) {
			s.log.InternalError("accounts.reset: purge expired token failed", err, "reset_id", reset.ID)
		}
		return nil, ErrResetExpired
	}
	return reset, nil
}

func (s *Service) sendResetEmail(email, token string) {
	link := fmt.Sprintf("%s/reset-password/%s", s.baseURL, token)
	body := "Reset your password using the link below:\n\n" + link

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()

		if err := s.mail.Send(ctx, email, "Reset your password", body); err != nil {
			s.log.Warn("accounts.forgot: reset email failed", "err", err, "email", email)
		}
	}()
}
