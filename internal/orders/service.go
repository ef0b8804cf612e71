package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vuminhngo/techstore-backend/internal/loyalty"
	"github.com/vuminhngo/techstore-backend/internal/notifications"
	"github.com/vuminhngo/techstore-backend/internal/users"
	"github.com/vuminhngo/techstore-backend/pkg/db/models"
	"github.com/vuminhngo/techstore-backend/pkg/enums"
	pkgerrors "github.com/vuminhngo/techstore-backend/pkg/errors"
	"github.com/vuminhngo/techstore-backend/pkg/logger"
	"github.com/vuminhngo/techstore-backend/pkg/metrics"
)

// pointsUnit is the amount of spend that earns one loyalty point.
var pointsUnit = decimal.NewFromInt(1000)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type identifierMinter interface {
	NextID() (string, error)
}

// StockReserver decrements product stock inside the caller's transaction.
type StockReserver interface {
	Reserve(ctx context.Context, tx *gorm.DB, productID string, quantity int) error
}

type thresholdSource interface {
	Current(ctx context.Context) loyalty.Thresholds
}

// Notifier receives lifecycle events for best-effort delivery after commit.
type Notifier interface {
	OrderShipped(n notifications.OrderShipped)
	OrderCompleted(n notifications.OrderCompleted)
}

// Service defines the order lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Order, error)
	ConfirmReceipt(ctx context.Context, orderID, userID string) (*models.Order, error)
	ListMine(ctx context.Context, userID string) ([]OrderSummary, error)
	ListAll(ctx context.Context) ([]OrderSummary, error)
}

type service struct {
	repo       Repository
	users      *users.Repository
	tx         txRunner
	ids        identifierMinter
	inventory  StockReserver
	thresholds thresholdSource
	notifier   Notifier
	metrics    *metrics.LifecycleMetrics
	logg       *logger.Logger
}

// NewService builds the order lifecycle service with the required
// dependencies. The notifier, metrics, and logger are optional.
func NewService(
	repo Repository,
	userRepo *users.Repository,
	tx txRunner,
	ids identifierMinter,
	inventory StockReserver,
	thresholds thresholdSource,
	notifier Notifier,
	m *metrics.LifecycleMetrics,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ids == nil {
		return nil, fmt.Errorf("identifier generator required")
	}
	if inventory == nil {
		return nil, fmt.Errorf("stock reserver required")
	}
	if thresholds == nil {
		return nil, fmt.Errorf("threshold source required")
	}
	return &service{
		repo:       repo,
		users:      userRepo,
		tx:         tx,
		ids:        ids,
		inventory:  inventory,
		thresholds: thresholds,
		notifier:   notifier,
		metrics:    m,
		logg:       logg,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	if input.UserID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one item")
	}
	for _, item := range input.Items {
		if item.ProductID == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required on every item")
		}
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
	}
	if input.ShippingName == "" || input.ShippingPhone == "" || input.ShippingAddress == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping name, phone, and address are required")
	}

	var result *CreateOrderResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		userRepo := s.users.WithTx(tx)

		productIDs := make([]string, 0, len(input.Items))
		for _, item := range input.Items {
			productIDs = append(productIDs, item.ProductID)
		}
		products, err := repo.FindProductsByID(ctx, productIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
		}
		priceByID := make(map[string]decimal.Decimal, len(products))
		for _, p := range products {
			priceByID[p.ID] = p.Price
		}

		total := decimal.Zero
		for _, item := range input.Items {
			price, ok := priceByID[item.ProductID]
			if !ok {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
					WithDetails(map[string]any{"product_id": item.ProductID})
			}
			total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		discount := decimal.Zero
		final := total.Sub(discount)
		points := int(final.Div(pointsUnit).IntPart())

		orderID, err := s.mintID()
		if err != nil {
			return err
		}

		order := &models.Order{
			ID:              orderID,
			UserID:          input.UserID,
			TotalAmount:     total,
			DiscountAmount:  discount,
			FinalAmount:     final,
			PointsEarned:    points,
			Status:          enums.OrderStatusCreated,
			ShippingName:    input.ShippingName,
			ShippingPhone:   input.ShippingPhone,
			ShippingAddress: input.ShippingAddress,
			Note:            input.Note,
		}
		if err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert order")
		}

		items := make([]models.OrderItem, 0, len(input.Items))
		for _, item := range input.Items {
			itemID, err := s.mintID()
			if err != nil {
				return err
			}
			items = append(items, models.OrderItem{
				ID:        itemID,
				OrderID:   orderID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     priceByID[item.ProductID],
			})
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert order items")
		}

		for _, item := range input.Items {
			if err := s.inventory.Reserve(ctx, tx, item.ProductID, item.Quantity); err != nil {
				if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeConflict {
					s.metrics.IncReservationDenied()
				}
				return err
			}
		}

		if err := userRepo.UpdateContact(ctx, input.UserID, input.ShippingPhone, input.ShippingAddress); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user contact")
		}

		result = &CreateOrderResult{
			OrderID:      orderID,
			PointsEarned: points,
			FinalAmount:  final,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncOrdersCreated()
	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, result.OrderID), "order created")
	}
	return result, nil
}

// UpdateStatus applies an admin-driven transition to any valid target state.
func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Order, error) {
	if !input.Target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid target status")
	}
	return s.transition(ctx, input.OrderID, input.Target, transitionOpts{})
}

// ConfirmReceipt lets the order's owner move a shipping order to completed.
func (s *service) ConfirmReceipt(ctx context.Context, orderID, userID string) (*models.Order, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	return s.transition(ctx, orderID, enums.OrderStatusCompleted, transitionOpts{
		ownerID:         userID,
		requireShipping: true,
	})
}

type transitionOpts struct {
	ownerID         string
	requireShipping bool
}

func (s *service) transition(ctx context.Context, orderID string, target enums.OrderStatus, opts transitionOpts) (*models.Order, error) {
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var (
		updated *models.Order
		prev    enums.OrderStatus
		shipped *notifications.OrderShipped
		thanked *notifications.OrderCompleted
	)

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		userRepo := s.users.WithTx(tx)

		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if opts.ownerID != "" && order.UserID != opts.ownerID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}

		prev = order.Status
		if prev == target {
			updated = order
			return nil
		}
		if opts.requireShipping && prev != enums.OrderStatusShipping {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is not in shipping state")
		}

		user, err := userRepo.FindByID(ctx, order.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order owner not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order owner")
		}

		switch {
		case target == enums.OrderStatusCompleted:
			if err := s.applyPointsDelta(ctx, userRepo, order.UserID, order.PointsEarned); err != nil {
				return err
			}
			thanked = &notifications.OrderCompleted{
				To:      user.Email,
				OrderID: order.ID,
				Points:  order.PointsEarned,
			}
		case prev == enums.OrderStatusCompleted:
			if err := s.applyPointsDelta(ctx, userRepo, order.UserID, -order.PointsEarned); err != nil {
				return err
			}
		}

		if target == enums.OrderStatusShipping {
			n, err := s.buildShippedNotification(ctx, repo, order, user.Email)
			if err != nil {
				return err
			}
			shipped = n
		}

		if err := repo.UpdateStatus(ctx, order.ID, target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		order.Status = target
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if prev != updated.Status {
		s.metrics.IncTransition(string(updated.Status))
		if s.notifier != nil {
			if shipped != nil {
				s.notifier.OrderShipped(*shipped)
			}
			if thanked != nil {
				s.notifier.OrderCompleted(*thanked)
			}
		}
		if s.logg != nil {
			s.logg.Info(s.logg.WithOrderID(ctx, updated.ID), "order status updated")
		}
	}
	return updated, nil
}

// applyPointsDelta moves the balance and recomputes the tier from the
// resulting total against the thresholds in force right now.
func (s *service) applyPointsDelta(ctx context.Context, userRepo *users.Repository, userID string, delta int) error {
	if delta == 0 {
		return nil
	}
	balance, err := userRepo.AdjustPoints(ctx, userID, delta)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order owner not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjust points balance")
	}
	tier := loyalty.ResolveTier(balance, s.thresholds.Current(ctx))
	if err := userRepo.UpdateTier(ctx, userID, tier); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update loyalty tier")
	}
	return nil
}

func (s *service) buildShippedNotification(ctx context.Context, repo Repository, order *models.Order, email string) (*notifications.OrderShipped, error) {
	productIDs := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := repo.FindProductsByID(ctx, productIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products for notification")
	}
	nameByID := make(map[string]string, len(products))
	for _, p := range products {
		nameByID[p.ID] = p.Name
	}

	lines := make([]notifications.ShippedLineItem, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, notifications.ShippedLineItem{
			Name:      nameByID[item.ProductID],
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}
	return &notifications.OrderShipped{
		To:          email,
		OrderID:     order.ID,
		Items:       lines,
		FinalAmount: order.FinalAmount,
	}, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]OrderSummary, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return summarize(list), nil
}

func (s *service) ListAll(ctx context.Context) ([]OrderSummary, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return summarize(list), nil
}

func summarize(list []models.Order) []OrderSummary {
	out := make([]OrderSummary, 0, len(list))
	for _, order := range list {
		out = append(out, OrderSummary{
			ID:           order.ID,
			FinalAmount:  order.FinalAmount,
			Status:       order.Status,
			PointsEarned: order.PointsEarned,
			CreatedAt:    order.CreatedAt,
		})
	}
	return out
}

func (s *service) mintID() (string, error) {
	id, err := s.ids.NextID()
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting identifier")
	}
	s.metrics.IncIDsMinted()
	return id, nil
}
