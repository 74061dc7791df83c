package wallet

import (
	"context"
	"encoding/base64"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/shopspring/decimal"

	"github.com/burrowHQ/burrowland-sub002/core"
)

type walletService struct {
	client *mixin.Client
	pin    string
}

// New new wallet service backed by the main wallet
func New(cfg core.MainWallet) (core.WalletService, error) {
	client, err := mixin.NewFromKeystore(&cfg.Keystore)
	if err != nil {
		return nil, err
	}

	return &walletService{
		client: client,
		pin:    cfg.Pin,
	}, nil
}

func (s *walletService) HandleTransfer(ctx context.Context, transfer *core.Transfer) error {
	memo := transfer.Memo
	if data, err := (core.TransferMemo{Action: transfer.Memo, TraceID: transfer.TraceID}).MarshalBinary(); err == nil {
		memo = base64.StdEncoding.EncodeToString(data)
	}

	input := &mixin.TransferInput{
		AssetID:    transfer.TokenID,
		OpponentID: transfer.AccountID,
		Amount:     decimal.NewFromBigInt(transfer.Amount.BigInt(), 0),
		TraceID:    transfer.TraceID,
		Memo:       memo,
	}

	if _, err := s.client.Transfer(ctx, input, s.pin); err != nil {
		return err
	}

	return nil
}
