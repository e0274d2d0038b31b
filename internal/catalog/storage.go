package catalog

import "sync"

// Storage is the main interface for our product storage layer.
// Implementations keep insertion order and must never hand out
// references to their internal state.
type Storage interface {
	Append(p Product) error
	Read(id string) (Product, error)
	// Modify runs fn on the stored product and writes back its result
	// as a single step. The product keeps its position.
	Modify(id string, fn func(Product) (Product, error)) (Product, error)
	GetAll() ([]Product, error)
	// Replace swaps the whole collection.
	Replace(products []Product) error
}

// LocalStorage provides an in-memory implementation for storing products.
// The zero value is an empty store ready to use.
type LocalStorage struct {
	mu    sync.RWMutex
	items []Product
	index map[string]int
}

// NewLocalStorage instantiates a new LocalStorage with no products.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		index: map[string]int{},
	}
}

// Append adds p at the end of the collection.
// Returns ErrEmptyID if the product has an empty ID and a *ConflictError
// if the ID is already taken.
func (l *LocalStorage) Append(p Product) error {
	if p.ID == "" {
		return ErrEmptyID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.index[p.ID]; ok {
		return &ConflictError{ID: p.ID}
	}
	if l.index == nil {
		l.index = map[string]int{}
	}
	l.index[p.ID] = len(l.items)
	l.items = append(l.items, p)
	return nil
}

// Read retrieves a product by ID.
// Returns a *NotFoundError if the product is not found.
func (l *LocalStorage) Read(id string) (Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.index[id]
	if !ok {
		return Product{}, &NotFoundError{ID: id}
	}
	return l.items[i], nil
}

// Modify holds the write lock while fn runs, so concurrent updates of the
// same product never lose each other's changes. An error from fn leaves
// the product untouched. The ID returned by fn is ignored.
func (l *LocalStorage) Modify(id string, fn func(Product) (Product, error)) (Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[id]
	if !ok {
		return Product{}, &NotFoundError{ID: id}
	}

	next, err := fn(l.items[i])
	if err != nil {
		return Product{}, err
	}
	next.ID = id
	l.items[i] = next
	return next, nil
}

// GetAll returns a copy of every product in insertion order.
func (l *LocalStorage) GetAll() ([]Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	products := make([]Product, len(l.items))
	copy(products, l.items)
	return products, nil
}

// Replace swaps the collection for products. Nothing changes if any ID is
// empty or repeated.
func (l *LocalStorage) Replace(products []Product) error {
	items := make([]Product, 0, len(products))
	index := make(map[string]int, len(products))
	for _, p := range products {
		if p.ID == "" {
			return ErrEmptyID
		}
		if _, ok := index[p.ID]; ok {
			return &ConflictError{ID: p.ID}
		}
		index[p.ID] = len(items)
		items = append(items, p)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = items
	l.index = index
	return nil
}

// Len returns the number of stored products.
func (l *LocalStorage) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}
