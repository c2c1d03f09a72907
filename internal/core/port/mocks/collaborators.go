// Package mocks provides testify mocks for the outbound ports. They
// are maintained by hand; keep the signatures in sync with the port
// package.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// Ledger mocks port.Ledger.
type Ledger struct {
	mock.Mock
}

func (m *Ledger) Collect(ctx context.Context, payer string, amount int64, currency string) (int64, error) {
	args := m.Called(ctx, payer, amount, currency)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Ledger) Transfer(ctx context.Context, to string, amount int64, currency string) (int64, error) {
	args := m.Called(ctx, to, amount, currency)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Ledger) Approve(ctx context.Context, spender string, amount int64, currency string) error {
	return m.Called(ctx, spender, amount, currency).Error(0)
}

func (m *Ledger) Reserve(ctx context.Context, spender string, amount int64, currency string) error {
	return m.Called(ctx, spender, amount, currency).Error(0)
}

func (m *Ledger) GetBalance(ctx context.Context, account string, currency string) (int64, error) {
	args := m.Called(ctx, account, currency)
	return args.Get(0).(int64), args.Error(1)
}

// AttestationProvider mocks port.AttestationProvider.
type AttestationProvider struct {
	mock.Mock
}

func (m *AttestationProvider) Attest(ctx context.Context, recipients []string, expiresAt time.Time, data []byte) ([]int64, error) {
	args := m.Called(ctx, recipients, expiresAt, data)
	var ids []int64
	if args.Get(0) != nil {
		ids = args.Get(0).([]int64)
	}
	return ids, args.Error(1)
}

func (m *AttestationProvider) Verify(ctx context.Context, id int64, recipient string) (bool, error) {
	args := m.Called(ctx, id, recipient)
	return args.Bool(0), args.Error(1)
}

func (m *AttestationProvider) GetName() string {
	return m.Called().String(0)
}

func (m *AttestationProvider) GetAddress() string {
	return m.Called().String(0)
}

// AssetOwnership mocks port.AssetOwnership.
type AssetOwnership struct {
	mock.Mock
}

func (m *AssetOwnership) OwnerOf(ctx context.Context, assetID int64) (string, error) {
	args := m.Called(ctx, assetID)
	return args.String(0), args.Error(1)
}
