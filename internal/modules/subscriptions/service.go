// Package subscriptions records offline subscription payments: creating a
// subscription, buying an addon or upgrading a plan, each backed by a proof
// of payment.
package subscriptions

import (
	"context"
	"strconv"
	"strings"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/form"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/proof"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/upload"
)

type Backend interface {
	CreateSubscription(ctx context.Context, in kameroapi.SubscriptionCreate) (kameroapi.SubscriptionResult, error)
	AddSubscriptionAddon(ctx context.Context, subscriptionID string, in kameroapi.AddonPurchase) (kameroapi.SubscriptionResult, error)
	UpgradeSubscription(ctx context.Context, subscriptionID string, in kameroapi.SubscriptionUpgrade) (kameroapi.SubscriptionResult, error)
}

type Service struct {
	api      Backend
	uploader proof.Uploader
}

func NewService(api Backend, u proof.Uploader) *Service {
	return &Service{api: api, uploader: u}
}

type CreateInput struct {
	UserID     string       `form:"user_id" binding:"notblank"`
	PlanID     string       `form:"plan_id" binding:"notblank"`
	AmountPaid string       `form:"amount_paid" binding:"required,amount"`
	Currency   string       `form:"currency" binding:"omitempty,len=3"`
	PaymentRef string       `form:"payment_ref" binding:"max=128"`
	Reason     string       `form:"reason" binding:"max=500"`
	Proof      *upload.File `form:"-"`
}

type AddonInput struct {
	SubscriptionID string `form:"subscription_id" binding:"notblank"`
	AddonID        string `form:"addon_id" binding:"notblank"`
	// Quantity defaults to 1 when empty.
	Quantity   string       `form:"quantity" binding:"omitempty,number"`
	AmountPaid string       `form:"amount_paid" binding:"required,amount"`
	Reason     string       `form:"reason" binding:"max=500"`
	Proof      *upload.File `form:"-"`
}

type UpgradeInput struct {
	SubscriptionID string       `form:"subscription_id" binding:"notblank"`
	PlanID         string       `form:"plan_id" binding:"notblank"`
	AmountPaid     string       `form:"amount_paid" binding:"required,amount"`
	Reason         string       `form:"reason" binding:"max=500"`
	Proof          *upload.File `form:"-"`
}

type Result struct {
	Subscription kameroapi.Subscription
	Message      string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Result, error) {
	fields := form.Validate(in)
	fields.File("proof", in.Proof, upload.ProofRules)
	if err := fields.Err(); err != nil {
		return Result{}, err
	}
	amount, _ := form.ParseAmount(in.AmountPaid)
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "INR"
	}

	return s.run(ctx, upload.SubscriptionProof, "create subscription", in.Proof, "Subscription created.",
		func(ctx context.Context, fileURL string) (kameroapi.SubscriptionResult, error) {
			return s.api.CreateSubscription(ctx, kameroapi.SubscriptionCreate{
				UserID:     strings.TrimSpace(in.UserID),
				PlanID:     strings.TrimSpace(in.PlanID),
				AmountPaid: amount,
				Currency:   currency,
				PaymentRef: strings.TrimSpace(in.PaymentRef),
				ProofURL:   fileURL,
				Reason:     strings.TrimSpace(in.Reason),
			})
		})
}

func (s *Service) AddAddon(ctx context.Context, in AddonInput) (Result, error) {
	fields := form.Validate(in)
	qty := 1
	if raw := strings.TrimSpace(in.Quantity); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fields.Add("quantity", "Quantity must be a whole number of at least 1.")
		}
		qty = n
	}
	fields.File("proof", in.Proof, upload.ProofRules)
	if err := fields.Err(); err != nil {
		return Result{}, err
	}
	amount, _ := form.ParseAmount(in.AmountPaid)

	return s.run(ctx, upload.PaymentProof, "add addon", in.Proof, "Addon added.",
		func(ctx context.Context, fileURL string) (kameroapi.SubscriptionResult, error) {
			return s.api.AddSubscriptionAddon(ctx, in.SubscriptionID, kameroapi.AddonPurchase{
				AddonID:    strings.TrimSpace(in.AddonID),
				Quantity:   qty,
				AmountPaid: amount,
				ProofURL:   fileURL,
				Reason:     strings.TrimSpace(in.Reason),
			})
		})
}

func (s *Service) Upgrade(ctx context.Context, in UpgradeInput) (Result, error) {
	fields := form.Validate(in)
	fields.File("proof", in.Proof, upload.ProofRules)
	if err := fields.Err(); err != nil {
		return Result{}, err
	}
	amount, _ := form.ParseAmount(in.AmountPaid)

	return s.run(ctx, upload.SubscriptionProof, "upgrade subscription", in.Proof, "Subscription upgraded.",
		func(ctx context.Context, fileURL string) (kameroapi.SubscriptionResult, error) {
			return s.api.UpgradeSubscription(ctx, in.SubscriptionID, kameroapi.SubscriptionUpgrade{
				PlanID:     strings.TrimSpace(in.PlanID),
				AmountPaid: amount,
				ProofURL:   fileURL,
				Reason:     strings.TrimSpace(in.Reason),
			})
		})
}

func (s *Service) run(ctx context.Context, cat upload.Category, action string, file *upload.File, okMsg string,
	mutate func(ctx context.Context, fileURL string) (kameroapi.SubscriptionResult, error)) (Result, error) {
	if file == nil {
		return Result{}, apperr.InvalidErr("Please attach a proof file.", map[string]string{"proof": "Please attach a proof file."})
	}
	var res kameroapi.SubscriptionResult
	_, err := proof.Run(ctx, s.uploader, cat, upload.ProofRules, action, *file, func(ctx context.Context, fileURL string) error {
		var err error
		res, err = mutate(ctx, fileURL)
		return err
	})
	if err != nil {
		return Result{}, err
	}
	msg := res.Message
	if msg == "" {
		msg = okMsg
	}
	return Result{Subscription: res.Subscription, Message: msg}, nil
}
