package controllers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"krist-backend/models"
)

func checkoutBody() map[string]interface{} {
	return map[string]interface{}{
		"deliveryDetails": map[string]string{
			"firstName":       "Asha",
			"lastName":        "Rao",
			"completeAddress": "12 MG Road, Bengaluru",
			"phoneNumber":     "+91 98765 43210",
			"emailAddress":    "asha@example.com",
		},
		"paymentDetails": map[string]string{
			"cardNumber":     "4111111111111111",
			"expiryDate":     "12/27",
			"cvv":            "123",
			"cardHolderName": "Asha Rao",
		},
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser("order@example.com")

	rec := env.do(http.MethodPost, "/api/user/order", token, checkoutBody())
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "EmptyCart", errorKind(t, rec))

	orders, err := env.mem.ListOrdersByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, orders, "a rejected submission must not persist an order")
}

func TestPlaceOrderIncompleteForms(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser("order@example.com")
	product := env.createProduct("Floral Kurti - Blue", 999)

	env.do(http.MethodPost, "/api/user/cart", token, map[string]interface{}{
		"productId": product.ID.Hex(),
	})

	body := checkoutBody()
	body["deliveryDetails"].(map[string]string)["phoneNumber"] = ""
	rec := env.do(http.MethodPost, "/api/user/order", token, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var deliveryErr struct {
		Message string `json:"message"`
		Kind    string `json:"kind"`
	}
	decodeBody(t, rec, &deliveryErr)
	assert.Equal(t, "IncompleteForm", deliveryErr.Kind)
	assert.Contains(t, deliveryErr.Message, "delivery")

	body = checkoutBody()
	body["paymentDetails"].(map[string]string)["cvv"] = ""
	rec = env.do(http.MethodPost, "/api/user/order", token, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var paymentErr struct {
		Message string `json:"message"`
		Kind    string `json:"kind"`
	}
	decodeBody(t, rec, &paymentErr)
	assert.Equal(t, "IncompleteForm", paymentErr.Kind)
	assert.Contains(t, paymentErr.Message, "payment")
}

func TestPlaceOrderSnapshotsCartAndClearsIt(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser("order@example.com")
	kurti := env.createProduct("Floral Kurti - Blue", 999)
	anarkali := env.createProduct("Anarkali Kurti", 599)

	env.do(http.MethodPost, "/api/user/cart", token, map[string]interface{}{
		"productId": kurti.ID.Hex(),
		"quantity":  2,
	})
	env.do(http.MethodPost, "/api/user/cart", token, map[string]interface{}{
		"productId": anarkali.ID.Hex(),
		"quantity":  1,
	})
	before := cartOf(t, env, user.ID)

	rec := env.do(http.MethodPost, "/api/user/order", token, checkoutBody())
	require.Equal(t, http.StatusOK, rec.Code)

	orders, err := env.mem.ListOrdersByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	order := orders[0]

	require.Len(t, order.Products, len(before))
	for i, line := range before {
		assert.Equal(t, line.Product, order.Products[i].Product)
		assert.Equal(t, line.Quantity, order.Products[i].Quantity)
	}
	assert.Equal(t, 2597.00, order.TotalAmount)
	assert.Equal(t, "Asha Rao, 12 MG Road, Bengaluru, +91 98765 43210, asha@example.com", order.Address)
	assert.Equal(t, "Placed", order.Status)
	assert.Equal(t, "4111111111111111", order.PaymentDetails.CardNumber)

	assert.Empty(t, cartOf(t, env, user.ID), "cart must be empty immediately after a successful order")
}

func TestPlaceOrderTotalImmuneToLaterPriceChange(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser("order@example.com")
	product := env.createProduct("Floral Kurti - Blue", 999)

	env.do(http.MethodPost, "/api/user/cart", token, map[string]interface{}{
		"productId": product.ID.Hex(),
	})
	rec := env.do(http.MethodPost, "/api/user/order", token, checkoutBody())
	require.Equal(t, http.StatusOK, rec.Code)

	// Reprice the catalog entry after the order is placed.
	product.Price.Org = 1299
	_, err := env.mem.CreateProducts(context.Background(), []models.Product{product})
	require.NoError(t, err)

	orders, err := env.mem.ListOrdersByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 999.00, orders[0].TotalAmount, "historical totals never track catalog changes")
}

// failingOrderStore simulates order persistence being down.
type failingOrderStore struct{}

func (failingOrderStore) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	return nil, errors.New("storage down")
}

func (failingOrderStore) ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return []models.Order{}, nil
}

func TestPlaceOrderPersistenceFailureKeepsCart(t *testing.T) {
	env := newTestEnvWithOrders(t, failingOrderStore{})
	user, token := env.createUser("order@example.com")
	product := env.createProduct("Floral Kurti - Blue", 999)

	env.do(http.MethodPost, "/api/user/cart", token, map[string]interface{}{
		"productId": product.ID.Hex(),
		"quantity":  2,
	})
	before := cartOf(t, env, user.ID)

	rec := env.do(http.MethodPost, "/api/user/order", token, checkoutBody())
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "OrderSubmissionFailed", errorKind(t, rec))

	assert.Equal(t, before, cartOf(t, env, user.ID), "a failed persistence must leave the cart intact for retry")
}

func TestPlaceOrderSurfacesDataIntegrityWarning(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser("order@example.com")
	product := env.createProduct("Floral Kurti - Blue", 999)

	env.do(http.MethodPost, "/api/user/cart", token, map[string]interface{}{
		"productId": product.ID.Hex(),
	})
	// A line whose product was removed from the catalog after being carted.
	_, err := env.mem.AddCartLine(context.Background(), user.ID, primitive.NewObjectID(), 1)
	require.NoError(t, err)

	rec := env.do(http.MethodPost, "/api/user/order", token, checkoutBody())
	require.Equal(t, http.StatusOK, rec.Code, "an unresolvable price must not abort checkout")

	var response struct {
		Order    models.Order             `json:"order"`
		Warnings []map[string]interface{} `json:"warnings"`
	}
	decodeBody(t, rec, &response)
	assert.Equal(t, 999.00, response.Order.TotalAmount, "unpriceable line contributes 0")
	assert.Len(t, response.Warnings, 1)
	assert.Len(t, response.Order.Products, 2, "the snapshot still records the full cart")
}

func TestGetOrdersNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser("order@example.com")
	kurti := env.createProduct("Floral Kurti - Blue", 999)
	anarkali := env.createProduct("Anarkali Kurti", 599)

	for _, p := range []models.Product{kurti, anarkali} {
		env.do(http.MethodPost, "/api/user/cart", token, map[string]interface{}{
			"productId": p.ID.Hex(),
		})
		rec := env.do(http.MethodPost, "/api/user/order", token, checkoutBody())
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := env.do(http.MethodGet, "/api/user/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []models.Order
	decodeBody(t, rec, &orders)
	require.Len(t, orders, 2)
	assert.Equal(t, user.ID, orders[0].User)
	assert.Equal(t, anarkali.ID, orders[0].Products[0].Product, "most recent order first")
	assert.Equal(t, kurti.ID, orders[1].Products[0].Product)
}
