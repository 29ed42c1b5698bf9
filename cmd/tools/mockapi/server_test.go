package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/config"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/identity"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/storage"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/upload"
)

type staticToken string

func (t staticToken) Token(context.Context) (string, error) { return string(t), nil }

type fixture struct {
	srv  *httptest.Server
	dir  string
	idp  *identity.Client
	api  *kameroapi.Client
	mock *server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{dir: t.TempDir()}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// The server URL is only known after start, so routes are bound late.
	var handler http.Handler
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { handler.ServeHTTP(w, r) }))
	t.Cleanup(f.srv.Close)

	store, err := storage.FromConfig(context.Background(), config.StorageConfig{
		Driver: "local", LocalDir: f.dir, LocalURLPrefix: f.srv.URL + "/uploads",
	}, f.srv.URL+"/_uploads", []byte("secret"))
	require.NoError(t, err)

	f.mock = newServer(store, "kamero", []byte("secret"), logger)
	handler = f.mock.routes()

	f.idp = identity.NewClient(identity.Config{
		APIKey:   "k",
		AuthURL:  f.srv.URL + "/identity/v1",
		TokenURL: f.srv.URL + "/identity/v1",
		Timeout:  5 * time.Second,
	})
	f.api, err = kameroapi.NewClient(f.srv.URL, kameroapi.WithTimeout(5*time.Second))
	require.NoError(t, err)
	return f
}

func (f *fixture) as(t *testing.T, email string) *kameroapi.API {
	t.Helper()
	tok, err := f.idp.SignIn(context.Background(), email, "kamero")
	require.NoError(t, err)
	return f.api.As(staticToken(tok.IDToken))
}

func TestSignInAndRefresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.idp.SignIn(ctx, "ops@kamero.in", "wrong")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)

	_, err = f.idp.SignIn(ctx, "disabled@kamero.in", "kamero")
	assert.ErrorIs(t, err, identity.ErrUserDisabled)

	tok, err := f.idp.SignIn(ctx, "owner@kamero.in", "kamero")
	require.NoError(t, err)
	claims, err := identity.ParseClaims(tok.IDToken)
	require.NoError(t, err)
	assert.Equal(t, "op_owner", claims.UID)
	assert.True(t, claims.IsOwner)

	renewed, err := f.idp.Refresh(ctx, tok.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.IDToken)

	_, err = f.idp.Refresh(ctx, "unknown")
	assert.ErrorIs(t, err, identity.ErrRefreshRejected)
}

func TestAdminRoutesNeedToken(t *testing.T) {
	f := newFixture(t)
	_, err := f.api.As(staticToken("garbage")).ListOrders(context.Background(), nil)
	ae, ok := kameroapi.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, ae.StatusCode)
}

func TestListPaging(t *testing.T) {
	f := newFixture(t)
	api := f.as(t, "ops@kamero.in")
	ctx := context.Background()

	page, err := api.ListOrders(ctx, url.Values{"limit": {"25"}, "offset": {"50"}})
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.EqualValues(t, 60, page.Total)
	assert.False(t, page.HasMore)

	paid, err := api.ListOrders(ctx, url.Values{"limit": {"100"}, "status": {"PAID"}})
	require.NoError(t, err)
	for _, o := range paid.Items {
		assert.Equal(t, "PAID", o.Status)
	}

	leads, err := api.ListWebLeads(ctx, url.Values{"limit": {"30"}})
	require.NoError(t, err)
	assert.Len(t, leads.Items, 30)
	assert.True(t, leads.HasMore)
	assert.Equal(t, "30", leads.NextCursor)

	rest, err := api.ListWebLeads(ctx, url.Values{"limit": {"30"}, "cursor": {leads.NextCursor}})
	require.NoError(t, err)
	assert.Len(t, rest.Items, 15)
	assert.False(t, rest.HasMore)

	open, err := api.ListSupportTickets(ctx, url.Values{"statusIn": {"OPEN,IN_PROGRESS"}, "limit": {"100"}})
	require.NoError(t, err)
	assert.EqualValues(t, 12, open.Total)
}

func TestUploadThenMutateIsAudited(t *testing.T) {
	f := newFixture(t)
	api := f.as(t, "ops@kamero.in")
	ctx := context.Background()

	file := upload.FromBytes("proof.png", "image/png", []byte("png-bytes"))
	p, err := api.PresignUpload(ctx, kameroapi.PresignUploadRequest{FileName: file.Name, ContentType: file.DetectedType(), UploadType: "wallet_proof"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(p.FileURL, f.srv.URL+"/uploads/wallet_proof/"))
	require.NoError(t, upload.NewHTTPPutter(5*time.Second).Put(ctx, p.UploadURL, file))

	key := strings.TrimPrefix(p.FileURL, f.srv.URL+"/uploads/")
	stored, err := os.ReadFile(filepath.Join(f.dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(stored))

	res, err := api.UpdateWhitelabelWallet(ctx, "wl_lens", kameroapi.WalletBalanceUpdate{
		Operation: kameroapi.WalletCredit, Amount: 500, Currency: "INR", ProofURL: p.FileURL, Reason: "top-up",
	})
	require.NoError(t, err)
	assert.Equal(t, 12500.0, res.Wallet.Amount)

	_, err = api.UpdateWhitelabelWallet(ctx, "wl_shutter", kameroapi.WalletBalanceUpdate{
		Operation: kameroapi.WalletDebit, Amount: 1, Currency: "INR", ProofURL: p.FileURL,
	})
	ae, ok := kameroapi.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, ae.StatusCode)

	logs, err := api.ListAuditLogs(ctx, url.Values{"entityType": {"wallet"}, "skip": {"0"}})
	require.NoError(t, err)
	require.Len(t, logs.Items, 1)
	assert.Equal(t, "UPDATE_WALLET_BALANCE", logs.Items[0].OperationType)
	assert.Equal(t, "op_ops", logs.Items[0].ActorID)
	assert.Equal(t, "top-up", logs.Items[0].Reason.Or(""))
}

func TestUploadRejectsTamperedSignature(t *testing.T) {
	f := newFixture(t)
	api := f.as(t, "ops@kamero.in")
	ctx := context.Background()

	p, err := api.PresignUpload(ctx, kameroapi.PresignUploadRequest{FileName: "a.pdf", ContentType: "application/pdf", UploadType: "payment_proof"})
	require.NoError(t, err)

	err = upload.NewHTTPPutter(5*time.Second).Put(ctx, p.UploadURL, upload.FromBytes("a.png", "image/png", []byte("x")))
	assert.ErrorContains(t, err, "403")
}

func TestSettlementIsIdempotent(t *testing.T) {
	f := newFixture(t)
	api := f.as(t, "ops@kamero.in")
	ctx := context.Background()

	req := kameroapi.SettlementRequest{Amount: 1000, Currency: "INR", ProofURL: "https://x/p.png", IdempotencyKey: "key-1"}
	first, err := api.SettleSellerWallet(ctx, "sw_001", req)
	require.NoError(t, err)
	second, err := api.SettleSellerWallet(ctx, "sw_001", req)
	require.NoError(t, err)
	assert.Equal(t, first.Settlement.ID, second.Settlement.ID)

	w, err := api.GetSellerWallet(ctx, "sw_001")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, w.Balance)
}

func TestReportsAreOwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.as(t, "ops@kamero.in").GetAnalytics(ctx, kameroapi.ReportRevenue, "7d")
	ae, ok := kameroapi.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, ae.StatusCode)

	a, err := f.as(t, "owner@kamero.in").GetAnalytics(ctx, kameroapi.ReportRevenue, "7d")
	require.NoError(t, err)
	assert.Len(t, a.Series, 7)
	assert.Equal(t, "INR", a.Currency)

	dl, err := f.as(t, "owner@kamero.in").DownloadReport(ctx, kameroapi.ReportSignups, url.Values{"period": {"30d"}})
	require.NoError(t, err)
	defer dl.Body.Close()
	assert.Equal(t, "signups-30d.csv", dl.Filename)
	body, err := io.ReadAll(dl.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "label,value\n"))
}
