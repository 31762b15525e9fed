package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storehub/commerce-service/internal/domain"
	pkgdto "github.com/storehub/commerce-service/pkg/dto"
	"github.com/storehub/commerce-service/pkg/errs"
	"github.com/storehub/commerce-service/pkg/pagination"
)

type MongoDBProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBProductRepository(db *mongo.Database) ProductRepository {
	return &MongoDBProductRepositoryImpl{db: db}
}

func buildProductFilter(param pkgdto.ProductFilter) bson.M {
	filter := bson.M{}
	if param.Category != "" {
		filter["category"] = param.Category
	}
	if param.Status != nil {
		filter["status"] = *param.Status
	}
	return filter
}

func (r *MongoDBProductRepositoryImpl) GetProducts(ctx context.Context, param pkgdto.ProductFilter) (page pagination.Page[domain.Product], err error) {
	pageNum, limit := pagination.Normalize(param.Page, param.Limit)
	filter := buildProductFilter(param)

	total, err := r.db.Collection("products").CountDocuments(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		// Listing degrades to an empty page on read failure.
		return pagination.Paginate([]domain.Product{}, pageNum, limit), nil
	}

	opts := options.Find().
		SetSkip(int64(pageNum-1) * int64(limit)).
		SetLimit(int64(limit))

	switch param.Sort {
	case "asc":
		opts.SetSort(bson.D{{Key: "price", Value: 1}})
	case "desc":
		opts.SetSort(bson.D{{Key: "price", Value: -1}})
	}

	cursor, err := r.db.Collection("products").Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return pagination.Paginate([]domain.Product{}, pageNum, limit), nil
	}

	var data []domain.Product
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return pagination.Paginate([]domain.Product{}, pageNum, limit), nil
	}

	return pagination.NewPage(data, int(total), pageNum, limit), nil
}

func (r *MongoDBProductRepositoryImpl) GetAllProducts(ctx context.Context) (data []domain.Product, err error) {
	cursor, err := r.db.Collection("products").Find(ctx, bson.M{})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetAllProducts").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetAllProducts").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	err = r.db.Collection("products").FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return product, errs.ErrNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return product, err
	}

	return product, nil
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (product domain.Product, err error) {
	count, err := r.db.Collection("products").CountDocuments(ctx, bson.D{{Key: "code", Value: data.Code}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	if count > 0 {
		return product, errs.ErrConflict
	}

	data.ID = primitive.NewObjectID().Hex()
	if data.Thumbnails == nil {
		data.Thumbnails = []string{}
	}

	now := time.Now().UTC()
	data.CreatedAt = now
	data.UpdatedAt = now

	_, err = r.db.Collection("products").InsertOne(ctx, data)
	if err != nil {
		// The unique index on code is the authority under concurrent
		// writers; the pre-check above only gives the common case a
		// cleaner path.
		if mongo.IsDuplicateKeyError(err) {
			return product, errs.ErrConflict
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (product domain.Product, err error) {
	if patch.Code != nil {
		count, countErr := r.db.Collection("products").CountDocuments(ctx, bson.M{
			"code": *patch.Code,
			"_id":  bson.M{"$ne": id},
		})
		if countErr != nil {
			log.Ctx(ctx).Error().Err(countErr).Str("component", "UpdateProduct").Msg("")
			return product, countErr
		}
		if count > 0 {
			return product, errs.ErrConflict
		}
	}

	set := bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}
	if patch.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *patch.Title})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *patch.Description})
	}
	if patch.Code != nil {
		set = append(set, bson.E{Key: "code", Value: *patch.Code})
	}
	if patch.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *patch.Price})
	}
	if patch.Status != nil {
		set = append(set, bson.E{Key: "status", Value: *patch.Status})
	}
	if patch.Stock != nil {
		set = append(set, bson.E{Key: "stock", Value: *patch.Stock})
	}
	if patch.Category != nil {
		set = append(set, bson.E{Key: "category", Value: *patch.Category})
	}
	if patch.Thumbnails != nil {
		set = append(set, bson.E{Key: "thumbnails", Value: *patch.Thumbnails})
	}

	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$set", Value: set}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err = r.db.Collection("products").FindOneAndUpdate(ctx, filter, update, opts).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return product, errs.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return product, errs.ErrConflict
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("")
		return
	}

	return product, nil
}

func (r *MongoDBProductRepositoryImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	result, err := r.db.Collection("products").DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}

	return
}
