package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"rickbags/internal/domain"
	"rickbags/internal/mailer"
	userrepo "rickbags/internal/repository/user"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers absent, mismatched and expired reset tokens
	// with one message so callers cannot probe which condition failed.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrEmailTaken is returned on registration with a known email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrPasswordMismatch is returned when password confirmation differs.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrValidation wraps field-level input problems.
	ErrValidation = errors.New("invalid input")
)

const resetTokenTTL = time.Hour

// Service handles registration, login and password reset flows.
type Service struct {
	repo        userrepo.Repository
	mail        mailer.Mailer
	logger      *log.Logger
	passwordMin int
	now         func() time.Time
}

func New(repo userrepo.Repository, mail mailer.Mailer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:        repo,
		mail:        mail,
		logger:      logger,
		passwordMin: 8,
		now:         time.Now,
	}
}

type RegisterInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
}

// Register creates a new customer account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email required", ErrValidation)
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if len(in.Password) < s.passwordMin {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, s.passwordMin)
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, fmt.Errorf("%w: first and last name required", ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

// Login verifies credentials and returns the user on success.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// UpdateProfile changes the user's name and phone.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, firstName, lastName, phone string) error {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return fmt.Errorf("%w: first and last name required", ErrValidation)
	}
	return s.repo.UpdateProfile(ctx, userID, strings.TrimSpace(firstName), strings.TrimSpace(lastName), strings.TrimSpace(phone))
}

// ForgotPassword issues a single-use reset token valid for one hour and
// mails the reset link. It reveals nothing about whether the email exists:
// unknown addresses return nil without side effects.
func (s *Service) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := randomToken(32)
	if err != nil {
		return err
	}
	expires := s.now().UTC().Add(resetTokenTTL)
	if err := s.repo.SetResetToken(ctx, u.ID, token, expires); err != nil {
		return err
	}

	body := fmt.Sprintf(`To reset your password, visit the following link:
%s/%s

If you did not request this change, ignore this email.

This link expires in 1 hour.
`, strings.TrimRight(resetURLBase, "/"), token)

	if err := s.mail.Send(ctx, []string{u.Email}, "Password Recovery - RickBags", body); err != nil {
		s.logger.Printf("auth: reset mail user=%d error=%v", u.ID, err)
	}
	return nil
}

// ResetPassword redeems a reset token. The token is single-use: a
// successful change clears it together with its expiry.
func (s *Service) ResetPassword(ctx context.Context, token, password, confirmPassword string) error {
	if strings.TrimSpace(token) == "" {
		return ErrInvalidToken
	}
	u, err := s.repo.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	if u.ResetToken == nil || *u.ResetToken != token {
		return ErrInvalidToken
	}
	if u.ResetTokenExpires == nil || s.now().UTC().After(*u.ResetTokenExpires) {
		return ErrInvalidToken
	}

	if password != confirmPassword {
		return ErrPasswordMismatch
	}
	if len(password) < s.passwordMin {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, s.passwordMin)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, u.ID, string(hashed))
}

func randomToken(bytes int) (string, error) {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
