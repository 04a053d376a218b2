package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"biceppump/backend/internal/domain"
	"biceppump/backend/internal/repository"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// --- Error Definitions ---
var (
	ErrMissingFields        = errors.New("all fields are required")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrPasswordTooShort     = errors.New("password is too short")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrEmailExists          = errors.New("email already exists")
	ErrPhoneExists          = errors.New("phone number already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrHashingFailed        = errors.New("failed to hash password")
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SignupInput is the registration form.
type SignupInput struct {
	Name            string
	Email           string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.User, TokenPair, error)
	// Authenticate resolves an access token to its user.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, profile domain.Profile) (*domain.User, error)
}

// SignupObserver is told about every new account.
type SignupObserver interface {
	UserSignedUp(userID string)
}

type AuthOption func(*authService)

func WithSignupObserver(o SignupObserver) AuthOption {
	return func(s *authService) { s.signupObserver = o }
}

// authService implements the AuthService interface.
type authService struct {
	userRepo       repository.UserRepository
	tokens         *TokenIssuer
	signupObserver SignupObserver
}

func NewAuthService(userRepo repository.UserRepository, tokens *TokenIssuer, opts ...AuthOption) AuthService {
	s := &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup validates the form, stores the user with a bcrypt hash and issues tokens.
func (s *authService) Signup(ctx context.Context, input SignupInput) (*domain.User, TokenPair, error) {
	if input.Name == "" || input.Email == "" || input.PhoneNumber == "" || input.Password == "" || input.ConfirmPassword == "" {
		return nil, TokenPair{}, ErrMissingFields
	}
	if input.Password != input.ConfirmPassword {
		return nil, TokenPair{}, ErrPasswordMismatch
	}
	if len(input.Password) < minPasswordLength {
		return nil, TokenPair{}, ErrPasswordTooShort
	}
	if !emailRegex.MatchString(input.Email) {
		return nil, TokenPair{}, ErrInvalidEmail
	}

	if err := s.checkUnique(ctx, input.Email, input.PhoneNumber); err != nil {
		return nil, TokenPair{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, TokenPair{}, ErrHashingFailed
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		PasswordHash: string(hashedPassword),
	}
	if _, err := s.userRepo.Create(ctx, user); err != nil {
		// unique index hit by a concurrent signup
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, TokenPair{}, ErrEmailExists
		}
		log.Errorf("signup: create user %s: %s", input.Email, err)
		return nil, TokenPair{}, err
	}
	if s.signupObserver != nil {
		s.signupObserver.UserSignedUp(user.ID)
	}

	tokens, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}

	user.PasswordHash = ""
	return user, tokens, nil
}

func (s *authService) checkUnique(ctx context.Context, email, phone string) error {
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return ErrEmailExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	_, err = s.userRepo.GetByPhoneNumber(ctx, phone)
	if err == nil {
		return ErrPhoneExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

// Login handles user authentication and token generation.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, TokenPair, error) {
	if email == "" || password == "" {
		return nil, TokenPair{}, ErrMissingFields
	}
	if !emailRegex.MatchString(email) {
		return nil, TokenPair{}, ErrInvalidEmail
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, TokenPair{}, ErrAuthenticationFailed
		}
		return nil, TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, TokenPair{}, ErrAuthenticationFailed
	}

	tokens, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}

	user.PasswordHash = ""
	return user, tokens, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile stores the profile and marks it completed.
func (s *authService) UpdateProfile(ctx context.Context, userID string, profile domain.Profile) (*domain.User, error) {
	profile.ProfileCompleted = true
	user, err := s.userRepo.UpdateProfile(ctx, userID, profile)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		log.Errorf("update profile of %s: %s", userID, err)
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}
