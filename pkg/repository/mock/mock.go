package mock

import (
	"context"

	"github.com/wattshed/timesheet/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	UserRepo *mockUserRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		UserRepo: &mockUserRepo{},
	}
}

type mockUserRepo struct {
	Stored    *models.User
	CreateErr error
	LookupErr error
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.Stored = &models.User{ID: 1, Username: u.Username, PasswordHash: u.PasswordHash}
	return 1, nil
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if m.LookupErr != nil {
		return nil, m.LookupErr
	}
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.LookupErr != nil {
		return nil, m.LookupErr
	}
	if m.Stored != nil && m.Stored.Username == username {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockUserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.LookupErr != nil {
		return nil, m.LookupErr
	}
	if m.Stored == nil {
		return nil, nil
	}
	return []models.User{*m.Stored}, nil
}
