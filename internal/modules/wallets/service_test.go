package wallets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/proof"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/opt"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/upload"
)

type fakeBackend struct {
	wallet     kameroapi.SellerWallet
	whitelabel kameroapi.Whitelabel
	settleErr  error

	calls   []string
	settled []kameroapi.SettlementRequest
	updates []kameroapi.WalletBalanceUpdate
}

func (f *fakeBackend) GetSellerWallet(_ context.Context, id string) (kameroapi.SellerWallet, error) {
	f.calls = append(f.calls, "get_wallet:"+id)
	return f.wallet, nil
}

func (f *fakeBackend) SettleSellerWallet(_ context.Context, id string, in kameroapi.SettlementRequest) (kameroapi.SettlementResult, error) {
	f.calls = append(f.calls, "settle:"+id)
	f.settled = append(f.settled, in)
	if f.settleErr != nil {
		return kameroapi.SettlementResult{}, f.settleErr
	}
	return kameroapi.SettlementResult{Settlement: kameroapi.Settlement{ID: "s1", Amount: in.Amount}}, nil
}

func (f *fakeBackend) GetWhitelabel(_ context.Context, id string) (kameroapi.Whitelabel, error) {
	f.calls = append(f.calls, "get_whitelabel:"+id)
	return f.whitelabel, nil
}

func (f *fakeBackend) UpdateWhitelabelWallet(_ context.Context, id string, in kameroapi.WalletBalanceUpdate) (kameroapi.WalletBalanceResult, error) {
	f.calls = append(f.calls, "wallet:"+id)
	f.updates = append(f.updates, in)
	return kameroapi.WalletBalanceResult{Wallet: kameroapi.Money{Amount: 10, Currency: in.Currency}}, nil
}

type fakeStorage struct {
	presigns int
	puts     int
	putErr   error
}

func (s *fakeStorage) uploader() proof.Uploader {
	return proof.Uploader{
		Presigner: upload.PresignFunc(func(_ context.Context, req upload.PresignRequest) (upload.Presigned, error) {
			s.presigns++
			return upload.Presigned{UploadURL: "https://s3/put/" + req.FileName, FileURL: "https://cdn/" + req.FileName}, nil
		}),
		Putter: s,
	}
}

func (s *fakeStorage) Put(context.Context, string, upload.File) error {
	s.puts++
	return s.putErr
}

func proofFile() *upload.File {
	f := upload.FromBytes("proof.png", "image/png", []byte("png"))
	return &f
}

func TestSettleWithoutProofSendsNothing(t *testing.T) {
	api := &fakeBackend{wallet: kameroapi.SellerWallet{ID: "w1", Balance: 1000, Currency: "INR"}}
	st := &fakeStorage{}
	svc := NewService(api, st.uploader())

	_, err := svc.Settle(context.Background(), SettleInput{WalletID: "w1", Amount: "500"})

	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Invalid, ae.Kind)
	assert.Contains(t, ae.Fields, "proof")
	assert.Zero(t, st.presigns)
	assert.Zero(t, st.puts)
	assert.Empty(t, api.calls)
}

func TestSettleRejectsAmountAboveBalance(t *testing.T) {
	api := &fakeBackend{wallet: kameroapi.SellerWallet{ID: "w1", Balance: 400, Currency: "INR"}}
	st := &fakeStorage{}
	svc := NewService(api, st.uploader())

	_, err := svc.Settle(context.Background(), SettleInput{WalletID: "w1", Amount: "500", Proof: proofFile()})

	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "Amount exceeds the available balance.", ae.PublicMsg)
	assert.Equal(t, "Available: ₹400.00", ae.Fields["amount"])
	assert.Zero(t, st.presigns)
	assert.Equal(t, []string{"get_wallet:w1"}, api.calls)
}

func TestSettleHappyPath(t *testing.T) {
	api := &fakeBackend{wallet: kameroapi.SellerWallet{ID: "w1", Balance: 1000, Currency: "INR"}}
	st := &fakeStorage{}
	svc := NewService(api, st.uploader())

	res, err := svc.Settle(context.Background(), SettleInput{
		WalletID: "w1", Amount: "500", PaymentRef: " UTR123 ", Proof: proofFile(), IdempotencyKey: "idem-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn/proof.png", res.ProofURL)
	assert.Equal(t, "Settled ₹500.00.", res.Message)
	require.Len(t, api.settled, 1)
	got := api.settled[0]
	assert.Equal(t, 500.0, got.Amount)
	assert.Equal(t, "INR", got.Currency)
	assert.Equal(t, "https://cdn/proof.png", got.ProofURL)
	assert.Equal(t, "UTR123", got.PaymentRef)
	assert.Equal(t, "idem-1", got.IdempotencyKey)
	assert.Equal(t, 1, st.puts)
}

func TestSettleMutationFailureNamesAction(t *testing.T) {
	api := &fakeBackend{
		wallet:    kameroapi.SellerWallet{ID: "w1", Balance: 1000, Currency: "INR"},
		settleErr: errors.New("backend down"),
	}
	st := &fakeStorage{}
	svc := NewService(api, st.uploader())

	_, err := svc.Settle(context.Background(), SettleInput{WalletID: "w1", Amount: "100", Proof: proofFile()})

	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Upstream, ae.Kind)
	assert.Equal(t, "Failed to settle wallet: backend down", ae.PublicMsg)
	require.Len(t, api.settled, 1)
	assert.NotEmpty(t, api.settled[0].IdempotencyKey)
}

func TestSettleUploadFailureSkipsMutation(t *testing.T) {
	api := &fakeBackend{wallet: kameroapi.SellerWallet{ID: "w1", Balance: 1000, Currency: "INR"}}
	st := &fakeStorage{putErr: errors.New("403 Forbidden")}
	svc := NewService(api, st.uploader())

	_, err := svc.Settle(context.Background(), SettleInput{WalletID: "w1", Amount: "100", Proof: proofFile()})
	require.Error(t, err)
	assert.Equal(t, "Failed to upload proof.png: 403 Forbidden", apperr.PublicMessage(err))
	assert.Empty(t, api.settled)
}

func TestUpdateBalanceValidation(t *testing.T) {
	api := &fakeBackend{}
	st := &fakeStorage{}
	svc := NewService(api, st.uploader())

	_, err := svc.UpdateBalance(context.Background(), BalanceInput{WhitelabelID: "wl1", Operation: "transfer", Amount: "-1"})
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, ae.Fields, "operation")
	assert.Contains(t, ae.Fields, "amount")
	assert.Contains(t, ae.Fields, "reason")
	assert.Contains(t, ae.Fields, "proof")
	assert.Empty(t, api.calls)
}

func TestUpdateBalanceDebitBoundedByBalance(t *testing.T) {
	api := &fakeBackend{whitelabel: kameroapi.Whitelabel{ID: "wl1", Wallet: opt.Some(kameroapi.Money{Amount: 50, Currency: "INR"})}}
	st := &fakeStorage{}
	svc := NewService(api, st.uploader())

	_, err := svc.UpdateBalance(context.Background(), BalanceInput{WhitelabelID: "wl1", Operation: "debit", Amount: "60", Reason: "refund", Proof: proofFile()})
	require.Error(t, err)
	assert.Zero(t, st.puts)

	res, err := svc.UpdateBalance(context.Background(), BalanceInput{WhitelabelID: "wl1", Operation: "Credit", Amount: "60", Reason: "top-up", Proof: proofFile()})
	require.NoError(t, err)
	assert.Equal(t, "Wallet balance updated.", res.Message)
	require.Len(t, api.updates, 1)
	assert.Equal(t, kameroapi.WalletCredit, api.updates[0].Operation)
	assert.Equal(t, "top-up", api.updates[0].Reason)
}
