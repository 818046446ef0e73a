package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/chrisdamba/foodcart/internal/cart"
	"github.com/chrisdamba/foodcart/internal/factories"
	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/chrisdamba/foodcart/internal/output"
	"github.com/chrisdamba/foodcart/internal/repositories"
	"github.com/chrisdamba/foodcart/internal/session"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	driftInterval = 4 * time.Hour
	driftHorizon  = 48 * time.Hour
)

// Shopper is a simulated customer building one cart.
type Shopper struct {
	Session *session.Session
	Owner   models.CartOwner
	Actions int
	Group   bool
}

// Stats counts what happened during a run.
type Stats struct {
	Sessions       int             `json:"sessions"`
	LinesAdded     int             `json:"lines_added"`
	Unavailable    int             `json:"unavailable"`
	Increments     int             `json:"increments"`
	Decrements     int             `json:"decrements"`
	Removals       int             `json:"removals"`
	Returns        int             `json:"returns"`
	DriftedCarts   int             `json:"drifted_carts"`
	MissingLines   int             `json:"missing_lines"`
	InvalidLines   int             `json:"invalid_lines"`
	CatalogChanges int             `json:"catalog_changes"`
	Orders         int             `json:"orders"`
	RejectedOrders int             `json:"rejected_orders"`
	Abandoned      int             `json:"abandoned"`
	Revenue        decimal.Decimal `json:"revenue"`
}

// Simulator drives shoppers through the cart engine while the catalog drifts
// underneath their saved carts.
type Simulator struct {
	cfg     models.SimulationConfig
	catalog repositories.CatalogRepository
	service *session.Service
	factory *factories.CatalogFactory
	rng     *rand.Rand
	queue   *EventQueue
	logger  *zap.Logger
	bar     *progressbar.ProgressBar

	progress    io.Writer
	CurrentTime time.Time
	Stats       Stats
}

type Option func(*Simulator)

// WithStart sets the simulated time of the first event window.
func WithStart(start time.Time) Option {
	return func(s *Simulator) { s.CurrentTime = start }
}

// WithProgress sets where the progress bar is drawn.
func WithProgress(w io.Writer) Option {
	return func(s *Simulator) { s.progress = w }
}

func NewSimulator(cfg *models.Config, catalog repositories.CatalogRepository, carts repositories.CartRepository, dest output.Destination, logger *zap.Logger, opts ...Option) *Simulator {
	s := &Simulator{
		cfg:         cfg.Simulation,
		catalog:     catalog,
		factory:     factories.NewCatalogFactory(cfg.Simulation.Seed),
		rng:         rand.New(rand.NewSource(cfg.Simulation.Seed)),
		queue:       NewEventQueue(),
		logger:      logger,
		progress:    os.Stderr,
		CurrentTime: time.Now().UTC().Truncate(time.Hour),
		Stats:       Stats{Revenue: decimal.Zero},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.service = session.NewService(catalog, carts, dest, logger,
		session.WithPoints(cfg.PointsEnabled),
		session.WithSoldOut(cfg.SoldOutSet()),
		session.WithClock(func() time.Time { return s.CurrentTime }),
	)
	return s
}

// Run seeds the catalog, plays every queued event in time order and returns
// the counts. It stops early when ctx is cancelled.
func (s *Simulator) Run(ctx context.Context) (Stats, error) {
	if err := s.initializeCatalog(ctx); err != nil {
		return s.Stats, err
	}
	s.scheduleSessions()
	s.scheduleDrift()

	s.bar = progressbar.NewOptions(s.cfg.Sessions,
		progressbar.OptionSetWriter(s.progress),
		progressbar.OptionSetDescription("simulating carts"),
		progressbar.OptionShowCount(),
	)
	s.logger.Info("simulation starts",
		zap.Time("start", s.CurrentTime),
		zap.Int("sessions", s.cfg.Sessions),
		zap.Int("items", s.cfg.Items))

	for event := s.queue.Dequeue(); event != nil; event = s.queue.Dequeue() {
		if err := ctx.Err(); err != nil {
			return s.Stats, err
		}
		s.CurrentTime = event.Time
		if err := s.processEvent(ctx, event); err != nil {
			return s.Stats, fmt.Errorf("%s at %s: %w", event.Type, event.Time.Format(time.RFC3339), err)
		}
	}
	_ = s.bar.Finish()

	s.logger.Info("simulation completed",
		zap.Time("end", s.CurrentTime),
		zap.Int("orders", s.Stats.Orders),
		zap.Int("drifted_carts", s.Stats.DriftedCarts))
	return s.Stats, nil
}

func (s *Simulator) initializeCatalog(ctx context.Context) error {
	menu := s.factory.CreateMenu(s.cfg.Items)
	if err := s.catalog.DeleteAll(ctx); err != nil {
		return fmt.Errorf("error clearing catalog: %w", err)
	}
	if err := s.catalog.BulkCreate(ctx, menu.Items()); err != nil {
		return fmt.Errorf("error seeding catalog: %w", err)
	}
	return nil
}

// scheduleSessions spreads session starts over the first eight hours.
func (s *Simulator) scheduleSessions() {
	for n := 0; n < s.cfg.Sessions; n++ {
		shopper := &Shopper{
			Session: s.service.NewSession(),
			Owner:   s.factory.CreateOwner(),
			Actions: s.cfg.ActionsMin + s.rng.Intn(s.cfg.ActionsMax-s.cfg.ActionsMin+1),
			Group:   s.rng.Float64() < 0.2,
		}
		start := s.CurrentTime.Add(time.Duration(s.rng.Intn(8*60)) * time.Minute)
		s.queue.Enqueue(&Event{Time: start, Type: EventAddItem, Shopper: shopper})
		s.Stats.Sessions++
	}
}

func (s *Simulator) scheduleDrift() {
	for at := driftInterval; at <= driftHorizon; at += driftInterval {
		s.queue.Enqueue(&Event{Time: s.CurrentTime.Add(at), Type: EventCatalogDrift})
	}
}

func (s *Simulator) processEvent(ctx context.Context, event *Event) error {
	shopper := event.Shopper
	switch event.Type {
	case EventAddItem:
		if err := s.addItem(ctx, shopper); err != nil {
			return err
		}
		s.next(shopper)
	case EventIncrement:
		s.Stats.Increments++
		if err := s.service.Increment(ctx, shopper.Session, s.pickLine(shopper)); err != nil {
			return err
		}
		s.next(shopper)
	case EventDecrement:
		s.Stats.Decrements++
		if err := s.service.Decrement(ctx, shopper.Session, s.pickLine(shopper)); err != nil {
			return err
		}
		s.next(shopper)
	case EventRemove:
		s.Stats.Removals++
		if err := s.service.Remove(ctx, shopper.Session, s.pickLine(shopper)); err != nil {
			return err
		}
		s.next(shopper)
	case EventLeave:
		if len(shopper.Session.Cart) == 0 {
			s.abandon()
			return nil
		}
		away := time.Duration(1+s.rng.Intn(36)) * time.Hour
		s.queue.Enqueue(&Event{Time: s.CurrentTime.Add(away), Type: EventReturn, Shopper: shopper})
	case EventReturn:
		return s.handleReturn(ctx, shopper)
	case EventCheckout:
		return s.handleCheckout(ctx, shopper)
	case EventCatalogDrift:
		return s.applyDrift(ctx)
	default:
		return fmt.Errorf("unknown event type %q", event.Type)
	}
	return nil
}

// next schedules the shopper's following action after some think time.
func (s *Simulator) next(shopper *Shopper) {
	shopper.Actions--
	eventType := EventLeave
	if shopper.Actions > 0 {
		eventType = s.pickAction(shopper)
	}
	s.queue.Enqueue(&Event{Time: s.CurrentTime.Add(s.think()), Type: eventType, Shopper: shopper})
}

func (s *Simulator) pickAction(shopper *Shopper) string {
	if len(shopper.Session.Cart) == 0 {
		return EventAddItem
	}
	switch r := s.rng.Float64(); {
	case r < 0.5:
		return EventAddItem
	case r < 0.7:
		return EventIncrement
	case r < 0.85:
		return EventDecrement
	default:
		return EventRemove
	}
}

func (s *Simulator) pickLine(shopper *Shopper) int {
	if len(shopper.Session.Cart) == 0 {
		return 0
	}
	return s.rng.Intn(len(shopper.Session.Cart))
}

func (s *Simulator) think() time.Duration {
	d := s.cfg.ThinkTime
	if d <= 0 {
		d = 45 * time.Second
	}
	return d/2 + time.Duration(s.rng.Int63n(int64(d)))
}

func (s *Simulator) addItem(ctx context.Context, shopper *Shopper) error {
	line, ok, err := s.randomLine(ctx)
	if err != nil || !ok {
		return err
	}
	if s.rng.Float64() < 0.1 {
		line.MadeFor = shopper.Owner.FirstName
		line.Notes = "no onions"
	}
	if err := s.service.Add(ctx, shopper.Session, line); err != nil {
		return err
	}
	s.Stats.LinesAdded++
	return nil
}

// randomLine builds a customised line for a random catalog item. ok is false
// when the chosen item cannot be ordered right now.
func (s *Simulator) randomLine(ctx context.Context) (models.OrderItem, bool, error) {
	items, err := s.catalog.GetAll(ctx)
	if err != nil {
		return models.OrderItem{}, false, err
	}
	if len(items) == 0 {
		s.Stats.Unavailable++
		return models.OrderItem{}, false, nil
	}
	line, err := s.service.BuildItem(ctx, items[s.rng.Intn(len(items))].ID)
	if errors.Is(err, repositories.ErrItemNotFound) {
		s.Stats.Unavailable++
		return models.OrderItem{}, false, nil
	}
	if err != nil {
		return models.OrderItem{}, false, err
	}
	return s.customise(line), true, nil
}

// customise picks extra options within the group and option limits. Size
// groups switch to another size instead.
func (s *Simulator) customise(line models.OrderItem) models.OrderItem {
	for g := range line.Groups {
		group := &line.Groups[g]
		if len(group.Options) == 0 || s.rng.Float64() >= 0.3 {
			continue
		}
		n := s.rng.Intn(len(group.Options))
		option := &group.Options[n]
		if option.IsSoldOut {
			continue
		}
		if group.IsSize || group.Max == 1 {
			for o := range group.Options {
				group.Options[o].Quantity = 0
			}
			option.Quantity = 1
			continue
		}
		if (group.Max == 0 || group.SelectedQuantity() < group.Max) && (option.Max == 0 || option.Quantity < option.Max) {
			option.Quantity++
		}
	}
	return cart.CalcPrices(line)
}

func (s *Simulator) handleReturn(ctx context.Context, shopper *Shopper) error {
	s.Stats.Returns++
	sess, errs, err := s.service.LoadCart(ctx, shopper.Session.ID)
	if err != nil {
		return err
	}
	shopper.Session = sess
	if errs != nil {
		s.Stats.DriftedCarts++
		s.Stats.MissingLines += len(errs.MissingItems)
		s.Stats.InvalidLines += len(errs.InvalidItems)
	}
	if len(sess.Cart) == 0 {
		s.abandon()
		return nil
	}
	s.queue.Enqueue(&Event{Time: s.CurrentTime.Add(s.think()), Type: EventCheckout, Shopper: shopper})
	return nil
}

func (s *Simulator) handleCheckout(ctx context.Context, shopper *Shopper) error {
	defer s.bar.Add(1)

	persons := 1
	if shopper.Group {
		guests := s.factory.CreateGuests(1 + s.rng.Intn(3))
		guestCart := make(models.Cart, 0, len(guests))
		for _, guest := range guests {
			line, ok, err := s.randomLine(ctx)
			if err != nil {
				return err
			}
			if ok {
				line.CartGuestID = guest.CartGuestID
				guestCart = append(guestCart, line)
			}
		}
		sess := shopper.Session
		sess.Cart = cart.CombineCarts(sess.Cart, guestCart, shopper.Owner, guests)
		sess.Counts = cart.CalcCartCounts(sess.Cart)
		persons += len(guests)
	}

	customer, err := json.Marshal(shopper.Owner)
	if err != nil {
		return err
	}
	serviceType := models.ServiceTypePickup
	if s.rng.Float64() < 0.4 {
		serviceType = models.ServiceTypeDelivery
	}
	_, err = s.service.SubmitOrder(ctx, shopper.Session, models.OrderRequest{
		ServiceType: serviceType,
		Customer:    customer,
		Details:     &models.OrderDetails{PersonCount: persons},
	})
	var drift *models.ValidationErrors
	switch {
	case errors.As(err, &drift):
		s.Stats.RejectedOrders++
		s.logger.Debug("order rejected", zap.String("cart_id", shopper.Session.ID), zap.Error(err))
	case err != nil:
		return err
	default:
		s.Stats.Orders++
		s.Stats.Revenue = s.Stats.Revenue.Add(cart.CartTotal(shopper.Session.Cart))
	}
	return nil
}

func (s *Simulator) abandon() {
	s.Stats.Abandoned++
	_ = s.bar.Add(1)
}
