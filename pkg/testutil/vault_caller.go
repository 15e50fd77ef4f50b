package testutil

import (
	"context"
	"sync"
)

// MockVaultCaller holds an in-memory token balance. Transfers subtract from
// the balance and are recorded for assertion.
type MockVaultCaller struct {
	BalanceOfFunc func(ctx context.Context, tokenAddress string) (uint64, error)
	TransferFunc  func(ctx context.Context, tokenAddress, toAddress string, amount uint64) error

	mutex   sync.Mutex
	Balance uint64
	Payouts []MockPayout
}

type MockPayout struct {
	TokenAddress string
	ToAddress    string
	Amount       uint64
}

func (m *MockVaultCaller) BalanceOf(ctx context.Context, tokenAddress string) (uint64, error) {
	if m.BalanceOfFunc != nil {
		return m.BalanceOfFunc(ctx, tokenAddress)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.Balance, nil
}

func (m *MockVaultCaller) Transfer(ctx context.Context, tokenAddress, toAddress string, amount uint64) error {
	if m.TransferFunc != nil {
		return m.TransferFunc(ctx, tokenAddress, toAddress, amount)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Balance -= amount
	m.Payouts = append(m.Payouts, MockPayout{
		TokenAddress: tokenAddress,
		ToAddress:    toAddress,
		Amount:       amount,
	})
	return nil
}

func (m *MockVaultCaller) Close() {}
