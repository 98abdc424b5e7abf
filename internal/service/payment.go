package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
	"github.com/vikasdeshmukh63/ecom-backend/internal/repository"
)

// Currency is the ISO code payment intents are created in.
const Currency = "inr"

// PaymentGateway creates payment intents with an external provider.
type PaymentGateway interface {
	// CreateIntent returns the client secret of a new intent for amount in minor units.
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// PaymentService handles payment intents and discount coupons.
type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, amount float64) (string, error)
	NewCoupon(ctx context.Context, code string, amount float64) (*model.Coupon, error)
	ApplyDiscount(ctx context.Context, code string) (float64, error)
	AllCoupons(ctx context.Context) ([]model.Coupon, error)
	DeleteCoupon(ctx context.Context, id string) (*model.Coupon, error)
}

// PaymentServiceImpl implements PaymentService.
type PaymentServiceImpl struct {
	coupons repository.CouponRepositoryInterface
	gateway PaymentGateway
}

// NewPaymentService creates a new payment service. gateway may be nil, in which
// case payment intents fail with ErrPaymentUnavailable.
func NewPaymentService(coupons repository.CouponRepositoryInterface, gateway PaymentGateway) PaymentService {
	return &PaymentServiceImpl{coupons: coupons, gateway: gateway}
}

func (s *PaymentServiceImpl) CreatePaymentIntent(ctx context.Context, amount float64) (string, error) {
	if s.gateway == nil {
		return "", ErrPaymentUnavailable
	}
	return s.gateway.CreateIntent(ctx, int64(math.Round(amount*100)), Currency)
}

func (s *PaymentServiceImpl) NewCoupon(ctx context.Context, code string, amount float64) (*model.Coupon, error) {
	coupon := &model.Coupon{Code: strings.TrimSpace(code), Amount: amount}
	if err := s.coupons.Create(ctx, coupon); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.Join(ErrConflict, err)
		}
		return nil, err
	}
	return coupon, nil
}

func (s *PaymentServiceImpl) ApplyDiscount(ctx context.Context, code string) (float64, error) {
	coupon, err := s.coupons.FindByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return 0, err
	}
	if coupon == nil {
		return 0, ErrInvalidCoupon
	}
	return coupon.Amount, nil
}

func (s *PaymentServiceImpl) AllCoupons(ctx context.Context) ([]model.Coupon, error) {
	return s.coupons.FindAll(ctx)
}

func (s *PaymentServiceImpl) DeleteCoupon(ctx context.Context, id string) (*model.Coupon, error) {
	oid, err := parseObjectID("coupon", id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.coupons.Delete(ctx, oid)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, notFound("coupon")
	}
	return deleted, nil
}
