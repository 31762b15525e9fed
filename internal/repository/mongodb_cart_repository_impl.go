package repository

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storehub/commerce-service/internal/domain"
	"github.com/storehub/commerce-service/pkg/errs"
)

// MongoDBCartRepositoryImpl relies on per-document update guarantees of the
// engine: $pull for line removal, the positional $set for quantity updates
// and a whole-array $set for replace and clear.
type MongoDBCartRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBCartRepository(db *mongo.Database) CartRepository {
	return &MongoDBCartRepositoryImpl{db: db}
}

func (r *MongoDBCartRepositoryImpl) CreateCart(ctx context.Context) (cart domain.Cart, err error) {
	cart = domain.Cart{
		ID:    primitive.NewObjectID().Hex(),
		Items: []domain.CartItem{},
	}

	_, err = r.db.Collection("carts").InsertOne(ctx, cart)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CreateCart").Msg("")
		return domain.Cart{}, err
	}

	return cart, nil
}

func (r *MongoDBCartRepositoryImpl) GetCartByID(ctx context.Context, id string) (cart domain.Cart, err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	err = r.db.Collection("carts").FindOne(ctx, filter).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return cart, errs.ErrNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetCartByID").Msg("")
		return cart, err
	}

	return cart, nil
}

// AddProductToCart applies the merge rule through a read-modify-write of the
// single cart document so the same domain logic drives both drivers.
func (r *MongoDBCartRepositoryImpl) AddProductToCart(ctx context.Context, cartID string, productID string, quantity int64) (cart domain.Cart, err error) {
	cart, err = r.GetCartByID(ctx, cartID)
	if err != nil {
		return
	}

	cart.AddItem(productID, quantity)

	return r.setItems(ctx, cartID, "AddProductToCart", cart.Items)
}

func (r *MongoDBCartRepositoryImpl) RemoveProductFromCart(ctx context.Context, cartID string, productID string) (cart domain.Cart, err error) {
	filter := bson.D{{Key: "_id", Value: cartID}}
	update := bson.D{{Key: "$pull", Value: bson.D{
		{Key: "products", Value: bson.D{{Key: "product", Value: productID}}},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err = r.db.Collection("carts").FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return cart, errs.ErrNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "RemoveProductFromCart").Msg("")
		return cart, err
	}

	return cart, nil
}

func (r *MongoDBCartRepositoryImpl) ReplaceCartItems(ctx context.Context, cartID string, items []domain.CartItem) (domain.Cart, error) {
	return r.setItems(ctx, cartID, "ReplaceCartItems", items)
}

func (r *MongoDBCartRepositoryImpl) SetCartItemQuantity(ctx context.Context, cartID string, productID string, quantity int64) (cart domain.Cart, err error) {
	filter := bson.D{
		{Key: "_id", Value: cartID},
		{Key: "products.product", Value: productID},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "products.$.quantity", Value: quantity},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err = r.db.Collection("carts").FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart)
	if err != nil {
		// Either the cart or the specific line is absent.
		if err == mongo.ErrNoDocuments {
			return cart, errs.ErrNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "SetCartItemQuantity").Msg("")
		return cart, err
	}

	return cart, nil
}

func (r *MongoDBCartRepositoryImpl) ClearCart(ctx context.Context, cartID string) (domain.Cart, error) {
	return r.setItems(ctx, cartID, "ClearCart", []domain.CartItem{})
}

func (r *MongoDBCartRepositoryImpl) DeleteCart(ctx context.Context, cartID string) (err error) {
	filter := bson.D{{Key: "_id", Value: cartID}}

	result, err := r.db.Collection("carts").DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteCart").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}

	return
}

func (r *MongoDBCartRepositoryImpl) setItems(ctx context.Context, cartID string, component string, items []domain.CartItem) (cart domain.Cart, err error) {
	if items == nil {
		items = []domain.CartItem{}
	}

	filter := bson.D{{Key: "_id", Value: cartID}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "products", Value: items}}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err = r.db.Collection("carts").FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return cart, errs.ErrNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return cart, err
	}

	return cart, nil
}
