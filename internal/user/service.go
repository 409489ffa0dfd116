package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quizmaster-app/quizmaster/internal/auth"
	"github.com/quizmaster-app/quizmaster/internal/config"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

const tokenDuration = 24 * time.Hour

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

type UserService interface {
	Signup(ctx context.Context, dto SignupDTO) (*UserResponse, error)
	Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) (*UserResponse, error)
}

type userService struct {
	repo UserRepository
}

func NewService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Signup(ctx context.Context, dto SignupDTO) (*UserResponse, error) {
	log := config.WithContext(ctx)

	dto.Username = strings.TrimSpace(dto.Username)
	dto.Email = strings.TrimSpace(dto.Email)
	if dto.Role == "" {
		dto.Role = RoleStudent
	}

	if err := s.validateSignup(dto); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(dto.FirstName),
		LastName:     strings.TrimSpace(dto.LastName),
		Role:         dto.Role,
	}

	if err := s.repo.Create(u); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User account created")
	return toResponse(u), nil
}

func (s *userService) validateSignup(dto SignupDTO) error {
	if dto.Username == "" || dto.Email == "" || dto.Password == "" || dto.Password2 == "" {
		return fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if dto.Password != dto.Password2 {
		return fmt.Errorf("%w: passwords do not match", ErrValidation)
	}
	if len(dto.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, minPasswordLength)
	}
	if !dto.Role.Valid() {
		return fmt.Errorf("%w: role must be teacher or student", ErrValidation)
	}

	exists, err := s.repo.ExistsByUsername(dto.Username)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: username already exists", ErrValidation)
	}

	exists, err = s.repo.ExistsByEmail(dto.Email)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: email already registered", ErrValidation)
	}
	return nil
}

func (s *userService) Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error) {
	log := config.WithContext(ctx)

	if dto.Username == "" || dto.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	u, err := s.repo.FindByUsername(strings.TrimSpace(dto.Username))
	if err != nil {
		log.WithError(err).Error("Failed to look up user")
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(u.ID.String(), string(u.Role), tokenDuration)
	if err != nil {
		log.WithError(err).Error("Failed to issue token")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User logged in")
	return &LoginResponse{
		Success:  true,
		Token:    token,
		UserType: u.Role,
		Username: u.Username,
		Email:    u.Email,
		Message:  fmt.Sprintf("Welcome back, %s!", u.FullName()),
	}, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return toResponse(u), nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) (*UserResponse, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if dto.FirstName != nil {
		u.FirstName = strings.TrimSpace(*dto.FirstName)
	}
	if dto.LastName != nil {
		u.LastName = strings.TrimSpace(*dto.LastName)
	}
	if dto.Email != nil {
		u.Email = strings.TrimSpace(*dto.Email)
	}
	if dto.Phone != nil {
		u.Phone = strings.TrimSpace(*dto.Phone)
	}
	if dto.Bio != nil {
		u.Bio = strings.TrimSpace(*dto.Bio)
	}

	if err := s.repo.Update(u); err != nil {
		log.WithError(err).Error("Failed to update profile")
		return nil, err
	}

	return toResponse(u), nil
}

func toResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Phone:     u.Phone,
		Bio:       u.Bio,
	}
}
