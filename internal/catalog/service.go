package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Catalog is the contract shared by the in-process store and the HTTP client,
// so callers do not care which one backs them.
type Catalog interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, in ProductInput) (Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (Product, error)
}

var _ Catalog = (*Service)(nil)

// Service is the mock product store: a latency-simulating facade over a Storage backend.
// It does not log or retry; every error goes back to the caller unchanged.
type Service struct {
	storage Storage
	delay   Delayer
	clock   Clock
	newID   func() string
	seed    []Product
}

// Option customizes a Service.
type Option func(*Service)

// WithDelay sets the latency simulator. Defaults to FixedDelay(DefaultLatency).
func WithDelay(d Delayer) Option {
	return func(s *Service) { s.delay = d }
}

// WithClock sets the timestamp source. Defaults to SystemClock.
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithIDGenerator sets the product ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// WithSeed sets the products loaded by NewService and Reset. Defaults to DefaultSeed().
func WithSeed(products []Product) Option {
	return func(s *Service) {
		s.seed = make([]Product, len(products))
		copy(s.seed, products)
	}
}

// NewProductID returns a fresh "prod-" prefixed identifier.
func NewProductID() string {
	return "prod-" + uuid.NewString()
}

// NewService creates a new Service and loads the seed set into storage.
func NewService(storage Storage, opts ...Option) (*Service, error) {
	s := &Service{
		storage: storage,
		delay:   FixedDelay(DefaultLatency),
		clock:   SystemClock,
		newID:   NewProductID,
		seed:    DefaultSeed(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.loadSeed(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) loadSeed() error {
	if err := ValidateSeed(s.seed); err != nil {
		return fmt.Errorf("invalid seed: %w", err)
	}

	now := s.clock.Now()
	products := make([]Product, len(s.seed))
	for i, p := range s.seed {
		p.CreatedAt = now
		p.UpdatedAt = now
		products[i] = p
	}

	if err := s.storage.Replace(products); err != nil {
		return fmt.Errorf("failed to load seed: %w", err)
	}
	return nil
}

// List returns every product in insertion order.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	if err := s.delay.Delay(ctx); err != nil {
		return nil, err
	}

	products, err := s.storage.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Get returns a single product.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	if err := s.delay.Delay(ctx); err != nil {
		return Product{}, err
	}
	return s.storage.Read(id)
}

// Create validates in, assigns an ID and timestamps, and appends the product.
func (s *Service) Create(ctx context.Context, in ProductInput) (Product, error) {
	if err := s.delay.Delay(ctx); err != nil {
		return Product{}, err
	}

	if err := ValidateInput(in); err != nil {
		return Product{}, err
	}

	now := s.clock.Now()
	product := in.product()
	product.CreatedAt = now
	product.UpdatedAt = now

	// A colliding ID surfaces as a *ConflictError.
	product.ID = s.newID()
	if err := s.storage.Append(product); err != nil {
		return Product{}, fmt.Errorf("failed to save product: %w", err)
	}
	return product, nil
}

// Update merges patch into the product with the given id and refreshes UpdatedAt.
// Returns a *NotFoundError when no product matches.
func (s *Service) Update(ctx context.Context, id string, patch ProductPatch) (Product, error) {
	if err := s.delay.Delay(ctx); err != nil {
		return Product{}, err
	}

	if err := ValidatePatch(patch); err != nil {
		return Product{}, err
	}

	updated, err := s.storage.Modify(id, func(current Product) (Product, error) {
		next := patch.Apply(current)
		next.UpdatedAt = after(s.clock.Now(), current.UpdatedAt)
		return next, nil
	})
	if err != nil {
		return Product{}, err
	}
	return updated, nil
}

// Reset discards every change and restores the seed set.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.delay.Delay(ctx); err != nil {
		return err
	}
	return s.loadSeed()
}
