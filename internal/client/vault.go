package client

import (
	"context"
	"fmt"

	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
	"github.com/ethereum/go-ethereum/rpc"
)

// VaultCaller is the asset-transfer collaborator. The vault service owns the
// keys and the on-chain mechanics; the ledger only asks for its held balance
// and for a transfer, and treats a transfer error as total failure of the
// enclosing operation.
type VaultCaller interface {
	BalanceOf(ctx context.Context, tokenAddress string) (uint64, error)
	Transfer(ctx context.Context, tokenAddress, toAddress string, amount uint64) error
	Close()
}

type vaultCaller struct {
	client *rpc.Client
}

func NewVaultCaller(client *rpc.Client) *vaultCaller {
	return &vaultCaller{client: client}
}

func (c *vaultCaller) BalanceOf(ctx context.Context, tokenAddress string) (uint64, error) {
	var result uint64
	err := c.client.CallContext(ctx, &result, c.fname(ctx, "balanceOf"), tokenAddress)
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (c *vaultCaller) Transfer(ctx context.Context, tokenAddress, toAddress string, amount uint64) error {
	var success bool
	err := c.client.CallContext(ctx, &success, c.fname(ctx, "transfer"), tokenAddress, toAddress, amount)
	if err != nil {
		return err
	}

	if !success {
		return fmt.Errorf("vault refused the transfer of %d to %s", amount, toAddress)
	}

	return nil
}

func (c *vaultCaller) Close() {
	c.client.Close()
}

func (c *vaultCaller) fname(ctx context.Context, funcName string) string {
	return fmt.Sprintf("%s_%s", xcontext.Configs(ctx).Vault.RPCName, funcName)
}
