package store

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"krist-backend/apperr"
	"krist-backend/models"
)

// Mongo implements UserStore, ProductStore and OrderStore on a MongoDB
// database. Cart and favourites mutations are single conditional updates so
// concurrent requests for the same user cannot lose a write.
type Mongo struct {
	users    *mongo.Collection
	products *mongo.Collection
	orders   *mongo.Collection
}

// NewMongo opens the named database on client.
func NewMongo(client *mongo.Client, dbName string) *Mongo {
	db := client.Database(dbName)
	return &Mongo{
		users:    db.Collection("users"),
		products: db.Collection("products"),
		orders:   db.Collection("orders"),
	}
}

func (m *Mongo) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	count, err := m.users.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailInUse
	}
	if user.Cart == nil {
		user.Cart = []models.CartLine{}
	}
	if user.Favourites == nil {
		user.Favourites = []primitive.ObjectID{}
	}
	result, err := m.users.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return &user, nil
}

func (m *Mongo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := m.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (m *Mongo) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := m.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (m *Mongo) AddCartLine(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.User, error) {
	// Increment the matching line, or push a new one when no line exists.
	// Both updates are conditional on the line's presence, so a concurrent
	// add can make both miss; in that case re-check the user and try again.
	for attempt := 0; attempt < 3; attempt++ {
		res, err := m.users.UpdateOne(ctx,
			bson.M{"_id": userID, "cart.product": productID},
			bson.M{"$inc": bson.M{"cart.$.quantity": quantity}})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount > 0 {
			return m.FindUserByID(ctx, userID)
		}

		res, err = m.users.UpdateOne(ctx,
			bson.M{"_id": userID, "cart.product": bson.M{"$ne": productID}},
			bson.M{"$push": bson.M{"cart": models.CartLine{Product: productID, Quantity: quantity}}})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount > 0 {
			return m.FindUserByID(ctx, userID)
		}

		if _, err := m.FindUserByID(ctx, userID); err != nil {
			return nil, err
		}
	}
	return nil, apperr.New(apperr.Internal, http.StatusInternalServerError, "Could not update cart")
}

func (m *Mongo) RemoveCartLine(ctx context.Context, userID, productID primitive.ObjectID, quantity *int) (*models.User, error) {
	if quantity != nil {
		// Decrement in place while more than *quantity is held; anything
		// else falls through to full removal of the line.
		res, err := m.users.UpdateOne(ctx,
			bson.M{"_id": userID, "cart": bson.M{"$elemMatch": bson.M{
				"product":  productID,
				"quantity": bson.M{"$gt": *quantity},
			}}},
			bson.M{"$inc": bson.M{"cart.$.quantity": -*quantity}})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount > 0 {
			return m.FindUserByID(ctx, userID)
		}
	}

	res, err := m.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"cart": bson.M{"product": productID}}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrUserNotFound
	}
	if res.ModifiedCount == 0 {
		return nil, ErrProductNotInCart
	}
	return m.FindUserByID(ctx, userID)
}

func (m *Mongo) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	res, err := m.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"cart": []models.CartLine{}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (m *Mongo) ToggleFavourite(ctx context.Context, userID, productID primitive.ObjectID) (*models.User, error) {
	res, err := m.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"favourites": productID}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrUserNotFound
	}
	if res.ModifiedCount == 0 {
		// Nothing was removed, so the product was absent: add it. $addToSet
		// keeps favourites a set even under a concurrent duplicate toggle.
		_, err = m.users.UpdateOne(ctx,
			bson.M{"_id": userID},
			bson.M{"$addToSet": bson.M{"favourites": productID}})
		if err != nil {
			return nil, err
		}
	}
	return m.FindUserByID(ctx, userID)
}

func (m *Mongo) RemoveFavourite(ctx context.Context, userID, productID primitive.ObjectID) (*models.User, error) {
	res, err := m.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"favourites": productID}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrUserNotFound
	}
	return m.FindUserByID(ctx, userID)
}

func (m *Mongo) CreateProducts(ctx context.Context, products []models.Product) ([]models.Product, error) {
	docs := make([]interface{}, len(products))
	for i := range products {
		docs[i] = products[i]
	}
	result, err := m.products.InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}
	for i, id := range result.InsertedIDs {
		products[i].ID = id.(primitive.ObjectID)
	}
	return products, nil
}

func (m *Mongo) ListProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := m.products.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (m *Mongo) FindProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := m.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (m *Mongo) FindProductsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	byID := make(map[primitive.ObjectID]models.Product, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	cursor, err := m.products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

func (m *Mongo) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	result, err := m.orders.InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}
	order.ID = result.InsertedID.(primitive.ObjectID)
	return &order, nil
}

func (m *Mongo) ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.orders.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
