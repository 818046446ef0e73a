package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chrisdamba/foodcart/internal/cart"
	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/chrisdamba/foodcart/internal/output"
	"github.com/chrisdamba/foodcart/internal/repositories"
	"github.com/lucsky/cuid"
	"go.uber.org/zap"
)

// Session is an open cart.
type Session struct {
	ID     string
	Cart   models.Cart
	Counts models.CartCounts
}

// Service keeps carts in a repository between visits and reconciles them with
// the live catalog whenever they are loaded or submitted.
type Service struct {
	catalog       repositories.CatalogRepository
	carts         repositories.CartRepository
	dest          output.Destination
	logger        *zap.Logger
	pointsEnabled bool
	soldOut       models.SoldOutSet
	now           func() time.Time
}

type Option func(*Service)

// WithPoints keeps loyalty points on cart lines.
func WithPoints(enabled bool) Option {
	return func(s *Service) { s.pointsEnabled = enabled }
}

// WithSoldOut adds ids that are sold out regardless of the catalog store.
func WithSoldOut(ids models.SoldOutSet) Option {
	return func(s *Service) { s.soldOut = ids }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(catalog repositories.CatalogRepository, carts repositories.CartRepository, dest output.Destination, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		catalog: catalog,
		carts:   carts,
		dest:    dest,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSession starts an empty cart with a fresh id.
func (s *Service) NewSession() *Session {
	return &Session{ID: cuid.New(), Cart: models.Cart{}, Counts: models.CartCounts{}}
}

// Catalog loads the live catalog and the combined sold-out set.
func (s *Service) Catalog(ctx context.Context) (*cart.Catalog, models.SoldOutSet, error) {
	items, err := s.catalog.GetAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading catalog: %w", err)
	}
	stored, err := s.catalog.SoldOut(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading sold out items: %w", err)
	}
	soldOut := models.NewSoldOutSet(append(stored.IDs(), s.soldOut.IDs()...)...)

	catalog := cart.NewCatalog(items)
	catalog.PointsEnabled = s.pointsEnabled
	return catalog, soldOut, nil
}

// BuildItem returns the default configuration of a catalog item, ready to be
// customised and added to a cart.
func (s *Service) BuildItem(ctx context.Context, itemID int) (models.OrderItem, error) {
	catalog, soldOut, err := s.Catalog(ctx)
	if err != nil {
		return models.OrderItem{}, err
	}
	item, ok := catalog.Item(itemID)
	if !ok || soldOut.Contains(itemID) {
		return models.OrderItem{}, fmt.Errorf("item %d: %w", itemID, repositories.ErrItemNotFound)
	}
	return cart.MakeOrderItem(item, cart.ItemOptions{SoldOut: soldOut, PointsEnabled: s.pointsEnabled}), nil
}

// SaveCart persists the simplified form of sess.
func (s *Service) SaveCart(ctx context.Context, sess *Session) error {
	stored := &models.StoredCart{
		ID:        sess.ID,
		Cart:      cart.MakeSimpleCart(sess.Cart),
		UpdatedAt: s.now(),
	}
	if err := s.carts.Save(ctx, stored); err != nil {
		return fmt.Errorf("error saving cart %s: %w", sess.ID, err)
	}
	return nil
}

// Open loads a stored cart, or starts an empty one under id when none exists.
func (s *Service) Open(ctx context.Context, id string) (*Session, *models.ValidationErrors, error) {
	sess, errs, err := s.LoadCart(ctx, id)
	if errors.Is(err, repositories.ErrCartNotFound) {
		return &Session{ID: id, Cart: models.Cart{}, Counts: models.CartCounts{}}, nil, nil
	}
	return sess, errs, err
}

// LoadCart rehydrates a stored cart and validates it against the live
// catalog. When lines were dropped the corrected cart is stored back. The
// drift report is nil when nothing was dropped.
func (s *Service) LoadCart(ctx context.Context, id string) (*Session, *models.ValidationErrors, error) {
	stored, err := s.carts.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	catalog, soldOut, err := s.Catalog(ctx)
	if err != nil {
		return nil, nil, err
	}

	rehydrated, _ := cart.RehydrateCart(catalog, stored.Cart)
	result := cart.ValidateCart(rehydrated, catalog, soldOut)
	unknown := unknownLines(catalog, stored.Cart)

	sess := &Session{ID: id, Cart: result.Cart, Counts: result.Counts}
	s.emitValidation(sess, result, unknown)

	if result.Errors != nil || len(unknown) > 0 {
		s.logger.Info("cart changed since it was saved",
			zap.String("cart_id", id),
			zap.Int("unknown", len(unknown)),
			zap.Stringer("errors", validationSummary{result.Errors}))
		if err := s.SaveCart(ctx, sess); err != nil {
			return nil, nil, err
		}
	}
	return sess, result.Errors, nil
}

// Add places item in the cart, merging it with an identical line.
func (s *Service) Add(ctx context.Context, sess *Session, item models.OrderItem) error {
	before := len(sess.Cart)
	sess.Cart, sess.Counts = cart.AddItem(sess.Cart, item)
	index := len(sess.Cart) - 1
	if len(sess.Cart) == before {
		// edited in place or merged into an existing line
		if item.Index != nil && *item.Index >= 0 && *item.Index < before {
			index = *item.Index
		} else if n, ok := findLine(sess.Cart, item); ok {
			index = n
		}
	}
	return s.afterMutation(ctx, sess, output.EventLineAdded, index)
}

func (s *Service) Increment(ctx context.Context, sess *Session, index int) error {
	sess.Cart, sess.Counts = cart.IncrementItem(sess.Cart, index)
	return s.afterMutation(ctx, sess, output.EventLineChanged, index)
}

// Decrement removes the line once it drops below its minimum quantity.
func (s *Service) Decrement(ctx context.Context, sess *Session, index int) error {
	before := len(sess.Cart)
	sess.Cart, sess.Counts = cart.DecrementItem(sess.Cart, index)
	if len(sess.Cart) < before {
		return s.afterRemoval(ctx, sess, index)
	}
	return s.afterMutation(ctx, sess, output.EventLineChanged, index)
}

func (s *Service) Remove(ctx context.Context, sess *Session, index int) error {
	if index < 0 || index >= len(sess.Cart) {
		return nil
	}
	sess.Cart, sess.Counts = cart.RemoveItem(sess.Cart, index)
	return s.afterRemoval(ctx, sess, index)
}

func (s *Service) afterMutation(ctx context.Context, sess *Session, eventType string, index int) error {
	if index >= 0 && index < len(sess.Cart) {
		s.emitLine(sess.ID, eventType, models.LineStatusValid, sess.Cart[index])
	}
	return s.SaveCart(ctx, sess)
}

func (s *Service) afterRemoval(ctx context.Context, sess *Session, index int) error {
	s.emit(models.TopicCartLines, output.CartLineEvent{
		Timestamp: s.now().Unix(),
		EventType: output.EventLineRemoved,
		CartID:    sess.ID,
		Index:     int32(index),
	})
	return s.SaveCart(ctx, sess)
}

// SubmitOrder revalidates and reprices the cart and builds the order payload.
// When lines were dropped the session is corrected and the drift report is
// returned as the error; the order is not submitted. A submitted cart is
// deleted.
func (s *Service) SubmitOrder(ctx context.Context, sess *Session, req models.OrderRequest) (models.OrderPayload, error) {
	if len(sess.Cart) == 0 {
		return models.OrderPayload{}, fmt.Errorf("cart %s is empty", sess.ID)
	}
	catalog, soldOut, err := s.Catalog(ctx)
	if err != nil {
		return models.OrderPayload{}, err
	}
	result := cart.ValidateCart(sess.Cart, catalog, soldOut)
	if result.Errors != nil {
		sess.Cart, sess.Counts = result.Cart, result.Counts
		s.emitValidation(sess, result, nil)
		if err := s.SaveCart(ctx, sess); err != nil {
			return models.OrderPayload{}, err
		}
		return models.OrderPayload{}, result.Errors
	}

	sess.Cart, sess.Counts = result.Cart, result.Counts
	req.Cart = result.Cart
	req.CartID = sess.ID
	payload := cart.PrepareOrder(req)

	quantity := 0
	for _, n := range result.Counts {
		quantity += n
	}
	s.emit(models.TopicOrdersSubmitted, output.OrderSubmittedEvent{
		Timestamp:   s.now().Unix(),
		EventType:   output.EventOrderSubmitted,
		CartID:      sess.ID,
		OrderID:     cuid.Slug(),
		ServiceType: payload.ServiceType,
		RequestedAt: payload.RequestedAt,
		Lines:       int32(len(payload.Cart)),
		Quantity:    int32(quantity),
		Total:       cart.DisplayPrice(cart.CartTotal(result.Cart)),
	})

	if err := s.carts.Delete(ctx, sess.ID); err != nil && !errors.Is(err, repositories.ErrCartNotFound) {
		return payload, fmt.Errorf("error deleting submitted cart %s: %w", sess.ID, err)
	}
	return payload, nil
}

// findLine returns the index of the line item was merged into.
func findLine(c models.Cart, item models.OrderItem) (int, bool) {
	signature := cart.CartItemSignature(item)
	for n, line := range c {
		if cart.CartItemSignature(line) == signature {
			return n, true
		}
	}
	return 0, false
}

// unknownLines returns stored lines whose item no longer exists at all.
func unknownLines(catalog *cart.Catalog, stored models.SimplifiedCart) []models.SimpleCartItem {
	var unknown []models.SimpleCartItem
	for _, line := range stored {
		if _, ok := catalog.Item(line.ID); !ok {
			unknown = append(unknown, line)
		}
	}
	return unknown
}

type validationSummary struct {
	errs *models.ValidationErrors
}

func (v validationSummary) String() string {
	if v.errs.Empty() {
		return ""
	}
	return v.errs.Error()
}
