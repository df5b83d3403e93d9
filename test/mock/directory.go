// test/mock/directory.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pmb-ti/accountrenewal/model"
)

// MockDirectory is a mock implementation of directory.Service
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) FindAccount(ctx context.Context, login string, domain model.DomainID) (*model.Account, error) {
	args := m.Called(ctx, login, domain)
	account, _ := args.Get(0).(*model.Account)
	return account, args.Error(1)
}

func (m *MockDirectory) UpdateExpiration(ctx context.Context, login string, domain model.DomainID, expiration model.Expiration) error {
	args := m.Called(ctx, login, domain, expiration)
	return args.Error(0)
}
