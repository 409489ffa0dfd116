package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/quizmaster-app/quizmaster/internal/auth"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) UserService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return NewService(NewRepository(db))
}

func validSignup() SignupDTO {
	return SignupDTO{
		Username:  "ada",
		Email:     "ada@example.com",
		Password:  "correct-horse",
		Password2: "correct-horse",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      RoleTeacher,
	}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesAccount", func(t *testing.T) {
		service := newTestService(t)
		resp, err := service.Signup(ctx, validSignup())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Username != "ada" || resp.Role != RoleTeacher {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("DefaultsToStudentRole", func(t *testing.T) {
		service := newTestService(t)
		dto := validSignup()
		dto.Role = ""
		resp, err := service.Signup(ctx, dto)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Role != RoleStudent {
			t.Errorf("expected student role, got %s", resp.Role)
		}
	})

	t.Run("ValidationFailures", func(t *testing.T) {
		service := newTestService(t)
		cases := []struct {
			name   string
			mutate func(*SignupDTO)
		}{
			{"MissingUsername", func(d *SignupDTO) { d.Username = " " }},
			{"MissingEmail", func(d *SignupDTO) { d.Email = "" }},
			{"PasswordMismatch", func(d *SignupDTO) { d.Password2 = "something-else" }},
			{"ShortPassword", func(d *SignupDTO) { d.Password = "short"; d.Password2 = "short" }},
			{"UnknownRole", func(d *SignupDTO) { d.Role = "admin" }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				dto := validSignup()
				tc.mutate(&dto)
				if _, err := service.Signup(ctx, dto); !errors.Is(err, ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
			})
		}
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		service := newTestService(t)
		if _, err := service.Signup(ctx, validSignup()); err != nil {
			t.Fatalf("first signup failed: %v", err)
		}
		dto := validSignup()
		dto.Email = "other@example.com"
		_, err := service.Signup(ctx, dto)
		if !errors.Is(err, ErrValidation) || !strings.Contains(err.Error(), "username") {
			t.Errorf("expected a username conflict, got %v", err)
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		service := newTestService(t)
		if _, err := service.Signup(ctx, validSignup()); err != nil {
			t.Fatalf("first signup failed: %v", err)
		}
		dto := validSignup()
		dto.Username = "someone-else"
		_, err := service.Signup(ctx, dto)
		if !errors.Is(err, ErrValidation) || !strings.Contains(err.Error(), "email") {
			t.Errorf("expected an email conflict, got %v", err)
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "login-test-secret")
	auth.Init()

	t.Run("IssuesTokenWithRoleClaim", func(t *testing.T) {
		service := newTestService(t)
		if _, err := service.Signup(ctx, validSignup()); err != nil {
			t.Fatalf("signup failed: %v", err)
		}

		resp, err := service.Login(ctx, LoginDTO{Username: "ada", Password: "correct-horse"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !resp.Success || resp.UserType != RoleTeacher {
			t.Errorf("unexpected response: %+v", resp)
		}

		claims, err := auth.ValidateJWT(resp.Token)
		if err != nil {
			t.Fatalf("issued token failed validation: %v", err)
		}
		if claims.Role != string(RoleTeacher) {
			t.Errorf("expected teacher role claim, got %q", claims.Role)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		service := newTestService(t)
		if _, err := service.Signup(ctx, validSignup()); err != nil {
			t.Fatalf("signup failed: %v", err)
		}
		if _, err := service.Login(ctx, LoginDTO{Username: "ada", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		service := newTestService(t)
		if _, err := service.Login(ctx, LoginDTO{Username: "ghost", Password: "whatever"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("MissingFields", func(t *testing.T) {
		service := newTestService(t)
		if _, err := service.Login(ctx, LoginDTO{}); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	created, err := service.Signup(ctx, validSignup())
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	bio := "  Mathematician. "
	phone := "555-0100"
	resp, err := service.UpdateProfile(ctx, created.ID, UpdateProfileDTO{Bio: &bio, Phone: &phone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Bio != "Mathematician." || resp.Phone != "555-0100" {
		t.Errorf("update not applied: %+v", resp)
	}
	if resp.FirstName != "Ada" {
		t.Error("untouched fields must survive a partial update")
	}
}
