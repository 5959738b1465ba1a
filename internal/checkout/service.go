package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/ayoubseh/boutique-backend/internal/cart"
	"github.com/ayoubseh/boutique-backend/internal/orders"
	"github.com/ayoubseh/boutique-backend/pkg/config"
	"github.com/ayoubseh/boutique-backend/pkg/db/models"
	"github.com/ayoubseh/boutique-backend/pkg/enums"
	pkgerrors "github.com/ayoubseh/boutique-backend/pkg/errors"
	"github.com/ayoubseh/boutique-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Input captures the checkout form.
type Input struct {
	Email      string `json:"email" validate:"required,email"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// Result is returned once the simulated payment clears and the order is
// persisted.
type Result struct {
	Order      *orders.OrderDTO `json:"order"`
	PaymentRef string           `json:"payment_ref"`
	Totals     Totals           `json:"totals"`
}

// Service executes checkout: price the cart, run the simulated payment,
// persist the order, and clear the cart.
type Service interface {
	Execute(ctx context.Context, store *cart.Store, userID *uuid.UUID, input Input) (*Result, error)
}

type service struct {
	tx        txRunner
	orderRepo orders.Repository
	payment   PaymentProcessor
	cfg       config.CheckoutConfig
	logg      *logger.Logger
}

// NewService builds the checkout service.
func NewService(tx txRunner, orderRepo orders.Repository, payment PaymentProcessor, cfg config.CheckoutConfig, logg *logger.Logger) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if payment == nil {
		payment = SimulatedProcessor{Provider: cfg.PaymentProvider, Delay: cfg.ProcessingDelay}
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:        tx,
		orderRepo: orderRepo,
		payment:   payment,
		cfg:       cfg,
		logg:      logg,
	}, nil
}

func (s *service) Execute(ctx context.Context, store *cart.Store, userID *uuid.UUID, input Input) (*Result, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no cart for session")
	}

	lines := store.Lines()
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	country, err := enums.ParseShippingCountry(strings.TrimSpace(input.Country))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported shipping country").
			WithDetails(map[string]string{"country": input.Country})
	}

	totals := ComputeTotals(lines, s.cfg.VATRatePercent)

	paymentRef, err := s.payment.Authorize(ctx, totals.Total)
	if err != nil {
		if ctx.Err() != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "checkout abandoned")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment authorization")
	}

	order := &models.Order{
		UserID:         userID,
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		Address:        strings.TrimSpace(input.Address),
		City:           strings.TrimSpace(input.City),
		PostalCode:     strings.TrimSpace(input.PostalCode),
		Country:        country,
		SubtotalAmount: totals.Subtotal,
		VATAmount:      totals.VAT,
		TotalAmount:    totals.Total,
		Status:         enums.OrderStatusCompleted,
	}
	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.Product.Price,
			LineTotal:   line.Subtotal(),
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.orderRepo.WithTx(tx).Create(ctx, order); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist order")
	}

	// The cart only empties once the order is durably recorded.
	store.Clear()

	s.logg.Info(
		s.logg.WithFields(ctx, map[string]any{
			"order_id": order.ID.String(),
			"total":    totals.Total.String(),
			"items":    len(order.Items),
		}),
		"checkout completed",
	)

	return &Result{
		Order:      orders.FromModel(order),
		PaymentRef: paymentRef,
		Totals:     totals,
	}, nil
}
