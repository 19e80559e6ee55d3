package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Izrekatel/Yatube/internal/model"
)

func TestUserService_Register_Success(t *testing.T) {
	mockRepo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			user.ID = 1
			user.CreatedAt = time.Now()
			return nil
		},
	}
	svc := NewUserService(mockRepo, nil)

	req := &model.RegisterRequest{
		Username:  "testuser",
		Email:     "testuser@example.com",
		Password:  "securepassword123",
		FirstName: "Test",
		LastName:  "User",
	}

	user, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}

	if user.Username != req.Username {
		t.Errorf("username = %q, want %q", user.Username, req.Username)
	}
	if user.FirstName == nil || *user.FirstName != req.FirstName {
		t.Errorf("first_name = %v, want %q", user.FirstName, req.FirstName)
	}

	// The stored credential must be a valid bcrypt hash, never the raw
	// password.
	if user.PasswordHashed == req.Password {
		t.Error("password should be hashed, not stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		t.Error("password hash should be valid bcrypt hash")
	}

	if mockRepo.createCalls != 1 {
		t.Errorf("Create called %d times, want 1", mockRepo.createCalls)
	}
}

func TestUserService_Register_UsernameExists(t *testing.T) {
	mockRepo := &mockUserRepository{
		existsByUsernameFn: func(ctx context.Context, username string) (bool, error) {
			return true, nil
		},
	}
	svc := NewUserService(mockRepo, nil)

	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "existinguser",
		Email:    "new@example.com",
		Password: "password123",
	})

	if !errors.Is(err, model.ErrUsernameExists) {
		t.Errorf("error = %v, want %v", err, model.ErrUsernameExists)
	}
	if user != nil {
		t.Error("user should be nil when registration fails")
	}
	if mockRepo.createCalls != 0 {
		t.Error("Create should not be called when username exists")
	}
}

func TestUserService_Register_EmailExists(t *testing.T) {
	mockRepo := &mockUserRepository{
		existsByEmailFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	svc := NewUserService(mockRepo, nil)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "newuser",
		Email:    "taken@example.com",
		Password: "password123",
	})

	if !errors.Is(err, model.ErrEmailExists) {
		t.Errorf("error = %v, want %v", err, model.ErrEmailExists)
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *model.RegisterRequest
	}{
		{"missing username", &model.RegisterRequest{Email: "a@b.com", Password: "x"}},
		{"missing email", &model.RegisterRequest{Username: "user", Password: "x"}},
		{"email without at sign", &model.RegisterRequest{Username: "user", Email: "nomail", Password: "x"}},
		{"missing password", &model.RegisterRequest{Username: "user", Email: "a@b.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockUserRepository{}
			svc := NewUserService(mockRepo, nil)

			if _, err := svc.Register(context.Background(), tt.req); err == nil {
				t.Error("expected validation error, got nil")
			}
			if mockRepo.createCalls != 0 {
				t.Error("Create should not be called on invalid input")
			}
		})
	}
}

// Authenticate accepts a username or an email as the identifier, and always
// fails with the same error so callers cannot probe for accounts.
func TestUserService_Authenticate(t *testing.T) {
	validPassword := "correctpassword"
	validHash, _ := bcrypt.GenerateFromPassword([]byte(validPassword), bcrypt.MinCost)

	testUser := &model.User{
		ID:             1,
		Username:       "testuser",
		Email:          "testuser@example.com",
		PasswordHashed: string(validHash),
	}

	tests := []struct {
		name           string
		identifier     string
		password       string
		byUsernameFn   func(ctx context.Context, username string) (*model.User, error)
		byEmailFn      func(ctx context.Context, email string) (*model.User, error)
		wantErr        error
		wantUser       bool
		wantEmailPath  bool
		emailCalled    *bool
		usernameCalled *bool
	}{
		{
			name:       "login by username",
			identifier: "testuser",
			password:   validPassword,
			byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
				return testUser, nil
			},
			wantUser: true,
		},
		{
			name:       "login by email",
			identifier: "testuser@example.com",
			password:   validPassword,
			byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
				return testUser, nil
			},
			wantUser:      true,
			wantEmailPath: true,
		},
		{
			name:       "unknown user",
			identifier: "nonexistent",
			password:   "anypassword",
			byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
				return nil, model.ErrUserNotFound
			},
			wantErr: model.ErrInvalidCredentials,
		},
		{
			name:       "wrong password",
			identifier: "testuser",
			password:   "wrongpassword",
			byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
				return testUser, nil
			},
			wantErr: model.ErrInvalidCredentials,
		},
		{
			name:       "database error is masked",
			identifier: "testuser",
			password:   validPassword,
			byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
				return nil, errors.New("database error")
			},
			wantErr: model.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var emailCalled, usernameCalled bool
			mockRepo := &mockUserRepository{
				getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
					usernameCalled = true
					if tt.byUsernameFn != nil {
						return tt.byUsernameFn(ctx, username)
					}
					return nil, model.ErrUserNotFound
				},
				getByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
					emailCalled = true
					if tt.byEmailFn != nil {
						return tt.byEmailFn(ctx, email)
					}
					return nil, model.ErrUserNotFound
				},
			}
			svc := NewUserService(mockRepo, nil)

			user, err := svc.Authenticate(context.Background(), tt.identifier, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if tt.wantUser && user == nil {
				t.Error("expected user, got nil")
			}
			if !tt.wantUser && user != nil {
				t.Error("expected nil user")
			}

			if tt.wantEmailPath && (!emailCalled || usernameCalled) {
				t.Error("identifier with @ must be looked up by email only")
			}
			if !tt.wantEmailPath && emailCalled {
				t.Error("identifier without @ must not hit the email lookup")
			}
		})
	}
}

func TestUserService_UpdateAccount(t *testing.T) {
	existing := &model.User{
		ID:       1,
		Username: "olduser",
		Email:    "old@example.com",
	}

	var updated *model.User
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			u := *existing
			return &u, nil
		},
		updateFn: func(ctx context.Context, user *model.User) error {
			updated = user
			return nil
		},
	}
	svc := NewUserService(mockRepo, nil)

	_, err := svc.UpdateAccount(context.Background(), 1, &model.UpdateAccountRequest{
		Username:  "newuser",
		Email:     "new@example.com",
		FirstName: "New",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated == nil {
		t.Fatal("Update was not called")
	}
	if updated.Username != "newuser" || updated.Email != "new@example.com" {
		t.Errorf("unexpected update: %+v", updated)
	}
	if updated.FirstName == nil || *updated.FirstName != "New" {
		t.Errorf("first_name = %v, want New", updated.FirstName)
	}
	if updated.LastName != nil {
		t.Error("last_name should be cleared when omitted")
	}
}
