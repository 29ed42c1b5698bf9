// Package wallets runs the two money-moving flows of the dashboard: settling
// a seller wallet and adjusting a whitelabel wallet balance. Both require a
// proof upload before the backend is asked to mutate anything.
package wallets

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/form"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/proof"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/upload"
)

// Backend is the slice of the Kamero API these flows use.
type Backend interface {
	GetSellerWallet(ctx context.Context, id string) (kameroapi.SellerWallet, error)
	SettleSellerWallet(ctx context.Context, walletID string, in kameroapi.SettlementRequest) (kameroapi.SettlementResult, error)
	GetWhitelabel(ctx context.Context, id string) (kameroapi.Whitelabel, error)
	UpdateWhitelabelWallet(ctx context.Context, id string, in kameroapi.WalletBalanceUpdate) (kameroapi.WalletBalanceResult, error)
}

type Service struct {
	api      Backend
	uploader proof.Uploader
}

func NewService(api Backend, u proof.Uploader) *Service {
	return &Service{api: api, uploader: u}
}

type SettleInput struct {
	WalletID   string       `form:"-"`
	Amount     string       `form:"amount" binding:"required,amount"`
	PaymentRef string       `form:"payment_ref" binding:"max=128"`
	Notes      string       `form:"notes" binding:"max=1000"`
	Proof      *upload.File `form:"-"`
	// IdempotencyKey is minted with the form so a double submit settles once.
	IdempotencyKey string `form:"idempotency_key" binding:"max=64"`
}

type SettleResult struct {
	Settlement kameroapi.Settlement
	ProofURL   string
	Message    string
}

// Settle validates the form, checks the amount against the wallet's
// available balance, uploads the proof and then records the settlement.
// Nothing is sent when validation fails.
func (s *Service) Settle(ctx context.Context, in SettleInput) (SettleResult, error) {
	fields := form.Validate(in)
	fields.File("proof", in.Proof, upload.ProofRules)
	if err := fields.Err(); err != nil {
		return SettleResult{}, err
	}
	amount, _ := form.ParseAmount(in.Amount)

	wallet, err := s.api.GetSellerWallet(ctx, in.WalletID)
	if err != nil {
		return SettleResult{}, apperr.FromAPI(err, "Failed to load wallet")
	}
	if amount > wallet.Balance {
		return SettleResult{}, apperr.InvalidErr("Amount exceeds the available balance.", map[string]string{
			"amount": "Available: " + wallet.Available().String(),
		})
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" {
		key = uuid.NewString()
	}

	var res kameroapi.SettlementResult
	fileURL, err := proof.Run(ctx, s.uploader, upload.WalletProof, upload.ProofRules, "settle wallet", *in.Proof,
		func(ctx context.Context, fileURL string) error {
			var err error
			res, err = s.api.SettleSellerWallet(ctx, in.WalletID, kameroapi.SettlementRequest{
				Amount:         amount,
				Currency:       wallet.Currency,
				ProofURL:       fileURL,
				PaymentRef:     strings.TrimSpace(in.PaymentRef),
				Notes:          strings.TrimSpace(in.Notes),
				IdempotencyKey: key,
			})
			return err
		})
	if err != nil {
		return SettleResult{}, err
	}

	msg := res.Message
	if msg == "" {
		msg = "Settled " + kameroapi.FormatAmount(amount, wallet.Currency) + "."
	}
	return SettleResult{Settlement: res.Settlement, ProofURL: fileURL, Message: msg}, nil
}

type BalanceInput struct {
	WhitelabelID string       `form:"-"`
	Operation    string       `form:"operation" binding:"required,oneof=credit debit"`
	Amount       string       `form:"amount" binding:"required,amount"`
	Reason       string       `form:"reason" binding:"notblank,max=500"`
	Proof        *upload.File `form:"-"`
}

type BalanceResult struct {
	Wallet  kameroapi.Money
	Message string
}

// UpdateBalance credits or debits a whitelabel wallet. A debit may not take
// the balance below zero.
func (s *Service) UpdateBalance(ctx context.Context, in BalanceInput) (BalanceResult, error) {
	in.Operation = strings.ToLower(strings.TrimSpace(in.Operation))
	fields := form.Validate(in)
	fields.File("proof", in.Proof, upload.ProofRules)
	if err := fields.Err(); err != nil {
		return BalanceResult{}, err
	}
	op := kameroapi.WalletOperation(in.Operation)
	amount, _ := form.ParseAmount(in.Amount)

	wl, err := s.api.GetWhitelabel(ctx, in.WhitelabelID)
	if err != nil {
		return BalanceResult{}, apperr.FromAPI(err, "Failed to load whitelabel")
	}
	current := wl.Wallet.Or(kameroapi.Money{Currency: "INR"})
	if op == kameroapi.WalletDebit && amount > current.Amount {
		return BalanceResult{}, apperr.InvalidErr("Amount exceeds the available balance.", map[string]string{
			"amount": "Available: " + current.String(),
		})
	}

	var res kameroapi.WalletBalanceResult
	_, err = proof.Run(ctx, s.uploader, upload.WalletProof, upload.ProofRules, "update wallet balance", *in.Proof,
		func(ctx context.Context, fileURL string) error {
			var err error
			res, err = s.api.UpdateWhitelabelWallet(ctx, in.WhitelabelID, kameroapi.WalletBalanceUpdate{
				Operation: op,
				Amount:    amount,
				Currency:  current.Currency,
				ProofURL:  fileURL,
				Reason:    strings.TrimSpace(in.Reason),
			})
			return err
		})
	if err != nil {
		return BalanceResult{}, err
	}

	msg := res.Message
	if msg == "" {
		msg = "Wallet balance updated."
	}
	return BalanceResult{Wallet: res.Wallet, Message: msg}, nil
}
