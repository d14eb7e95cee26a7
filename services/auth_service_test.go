package services

import (
	"context"
	"sync"
	"testing"
	"ua-shop/models"
	"ua-shop/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserRepo struct {
	mu     sync.Mutex
	users  map[int]*models.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int]*models.User)}
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	user.ID = m.nextID
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int, hashedPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Password = hashedPassword
	return nil
}

func (m *mockUserRepo) SetAdmin(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.IsAdmin = true
	return nil
}

func validRegistration() models.RegisterRequest {
	return models.RegisterRequest{
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Email:     "juan@example.com",
		MobileNo:  "09171234567",
		Password:  "hunter2hunter2",
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.RegisterRequest)
		wantErr error
	}{
		{
			name:    "email without at sign",
			mutate:  func(r *models.RegisterRequest) { r.Email = "juan.example.com" },
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "mobile number too short",
			mutate:  func(r *models.RegisterRequest) { r.MobileNo = "0917123" },
			wantErr: ErrInvalidMobileNo,
		},
		{
			name:    "mobile number too long",
			mutate:  func(r *models.RegisterRequest) { r.MobileNo = "091712345678" },
			wantErr: ErrInvalidMobileNo,
		},
		{
			name:    "password too short",
			mutate:  func(r *models.RegisterRequest) { r.Password = "short" },
			wantErr: ErrPasswordTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(newMockUserRepo())
			req := validRegistration()
			tt.mutate(&req)

			_, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterAndLogin(t *testing.T) {
	users := newMockUserRepo()
	svc := NewAuthService(users)
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "hunter2hunter2", user.Password)
	assert.Equal(t, "customer", user.Role())

	// Duplicate email is rejected.
	_, err = svc.Register(ctx, validRegistration())
	assert.ErrorIs(t, err, ErrEmailTaken)

	resp, err := svc.Login(ctx, models.LoginRequest{Email: "juan@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Access)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "juan@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResetPassword(t *testing.T) {
	users := newMockUserRepo()
	svc := NewAuthService(users)
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ResetPassword(ctx, user.ID, "short"), ErrPasswordTooShort)

	require.NoError(t, svc.ResetPassword(ctx, user.ID, "newpassword123"))

	_, err = svc.Login(ctx, models.LoginRequest{Email: "juan@example.com", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := svc.Login(ctx, models.LoginRequest{Email: "juan@example.com", Password: "newpassword123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Access)
}

func TestSetAsAdmin(t *testing.T) {
	users := newMockUserRepo()
	svc := NewAuthService(users)
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	promoted, err := svc.SetAsAdmin(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)
	assert.Equal(t, "admin", promoted.Role())

	_, err = svc.SetAsAdmin(ctx, user.ID)
	assert.ErrorIs(t, err, ErrAlreadyAdmin)

	_, err = svc.SetAsAdmin(ctx, 999)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}
