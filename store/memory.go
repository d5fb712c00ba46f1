package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"krist-backend/models"
)

// Memory is a mutex-guarded in-memory implementation of the store contracts.
// It honors the same atomicity guarantees as Mongo (mutations hold the lock
// for their whole read-modify-write), which is what makes the concurrency
// properties assertable in tests.
type Memory struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]*models.User
	products map[primitive.ObjectID]models.Product
	orders   []models.Order
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:    make(map[primitive.ObjectID]*models.User),
		products: make(map[primitive.ObjectID]models.Product),
	}
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.Cart = append([]models.CartLine(nil), u.Cart...)
	c.Favourites = append([]primitive.ObjectID(nil), u.Favourites...)
	return &c
}

func (m *Memory) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return nil, ErrEmailInUse
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Cart == nil {
		user.Cart = []models.CartLine{}
	}
	if user.Favourites == nil {
		user.Favourites = []primitive.ObjectID{}
	}
	m.users[user.ID] = copyUser(&user)
	return copyUser(&user), nil
}

func (m *Memory) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *Memory) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return copyUser(u), nil
}

func (m *Memory) AddCartLine(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	if i := u.CartLineIndex(productID); i >= 0 {
		u.Cart[i].Quantity += quantity
	} else {
		u.Cart = append(u.Cart, models.CartLine{Product: productID, Quantity: quantity})
	}
	return copyUser(u), nil
}

func (m *Memory) RemoveCartLine(ctx context.Context, userID, productID primitive.ObjectID, quantity *int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	i := u.CartLineIndex(productID)
	if i < 0 {
		return nil, ErrProductNotInCart
	}
	if quantity != nil && u.Cart[i].Quantity > *quantity {
		u.Cart[i].Quantity -= *quantity
	} else {
		u.Cart = append(u.Cart[:i], u.Cart[i+1:]...)
	}
	return copyUser(u), nil
}

func (m *Memory) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.Cart = []models.CartLine{}
	return nil
}

func (m *Memory) ToggleFavourite(ctx context.Context, userID, productID primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	removed := false
	for i, id := range u.Favourites {
		if id == productID {
			u.Favourites = append(u.Favourites[:i], u.Favourites[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		u.Favourites = append(u.Favourites, productID)
	}
	return copyUser(u), nil
}

func (m *Memory) RemoveFavourite(ctx context.Context, userID, productID primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	for i, id := range u.Favourites {
		if id == productID {
			u.Favourites = append(u.Favourites[:i], u.Favourites[i+1:]...)
			break
		}
	}
	return copyUser(u), nil
}

func (m *Memory) CreateProducts(ctx context.Context, products []models.Product) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range products {
		if products[i].ID.IsZero() {
			products[i].ID = primitive.NewObjectID()
		}
		m.products[products[i].ID] = products[i]
	}
	return products, nil
}

func (m *Memory) ListProducts(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	products := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}
	return products, nil
}

func (m *Memory) FindProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (m *Memory) FindProductsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byID := make(map[primitive.ObjectID]models.Product, len(ids))
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			byID[id] = p
		}
	}
	return byID, nil
}

func (m *Memory) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	order.Products = append([]models.OrderItem(nil), order.Products...)
	m.orders = append(m.orders, order)
	return &order, nil
}

func (m *Memory) ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	orders := []models.Order{}
	// Newest first: orders are appended in creation order, so walk backwards.
	for i := len(m.orders) - 1; i >= 0; i-- {
		if m.orders[i].User == userID {
			orders = append(orders, m.orders[i])
		}
	}
	return orders, nil
}
