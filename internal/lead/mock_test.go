package lead

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hackeyzlife02/elfsight-hcp-webhook/pkg/hcp"
)

// mockHCPClient mocks hcp.Client.
type mockHCPClient struct {
	mock.Mock
}

func (m *mockHCPClient) FindCustomersByPhone(ctx context.Context, phone string) ([]hcp.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hcp.Customer), args.Error(1)
}

func (m *mockHCPClient) FindCustomersByEmail(ctx context.Context, email string) ([]hcp.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hcp.Customer), args.Error(1)
}

func (m *mockHCPClient) GetCustomer(ctx context.Context, customerID string) (*hcp.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hcp.Customer), args.Error(1)
}

func (m *mockHCPClient) GetCustomerAddresses(ctx context.Context, customerID string) ([]hcp.Address, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hcp.Address), args.Error(1)
}

func (m *mockHCPClient) CreateCustomer(ctx context.Context, req hcp.CustomerRequest) (*hcp.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hcp.Customer), args.Error(1)
}

func (m *mockHCPClient) CreateAddress(ctx context.Context, customerID string, addr hcp.Address) (*hcp.Address, error) {
	args := m.Called(ctx, customerID, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hcp.Address), args.Error(1)
}

func (m *mockHCPClient) CreateLead(ctx context.Context, req hcp.LeadRequest) (*hcp.Lead, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hcp.Lead), args.Error(1)
}
