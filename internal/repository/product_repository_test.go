package repository

import (
	"context"
	"testing"

	"ecommerce-api/internal/apperror"
	"ecommerce-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func productDoc(id primitive.ObjectID, name, category string, variants ...bson.D) bson.D {
	vs := bson.A{}
	for _, v := range variants {
		vs = append(vs, v)
	}
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "price", Value: 200.0},
		{Key: "category", Value: category},
		{Key: "variants", Value: vs},
	}
}

func variantDoc(color, size string, stock int32) bson.D {
	return bson.D{{Key: "color", Value: color}, {Key: "size", Value: size}, {Key: "stock", Value: stock}}
}

func TestProductRepository_Find(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("FindAll decodes every document", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		ns := mt.DB.Name() + "." + CollectionName
		jacketID, phoneID := primitive.NewObjectID(), primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			productDoc(jacketID, "Nike Jacket", "Apparel", variantDoc("Black", "M", 10)),
			productDoc(phoneID, "Smartphone", "Electronics"),
		))

		products, err := repo.FindAll(context.Background())
		require.NoError(mt, err)
		require.Len(mt, products, 2)
		assert.Equal(mt, jacketID, products[0].ID)
		assert.Equal(mt, []model.Variant{{Color: "Black", Size: "M", Stock: 10}}, products[0].Variants)
		assert.Equal(mt, "Smartphone", products[1].Name)
		assert.NotNil(mt, products[1].Variants)
		assert.Empty(mt, products[1].Variants)
	})

	mt.Run("FindByCategory with no match returns empty slice", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		ns := mt.DB.Name() + "." + CollectionName
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		products, err := repo.FindByCategory(context.Background(), "Toys")
		require.NoError(mt, err)
		assert.NotNil(mt, products)
		assert.Empty(mt, products)
	})

	mt.Run("FindByVariantColor filters on embedded color", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		ns := mt.DB.Name() + "." + CollectionName
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			productDoc(id, "Running Shoes", "Footwear", variantDoc("Red", "9", 7), variantDoc("Blue", "10", 4)),
		))

		products, err := repo.FindByVariantColor(context.Background(), "Red")
		require.NoError(mt, err)
		require.Len(mt, products, 1)
		assert.Equal(mt, id, products[0].ID)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
		filter := started.Command.Lookup("filter").Document()
		assert.Equal(mt, "Red", filter.Lookup("variants.color").StringValue())
	})

	mt.Run("command error is tagged as store error", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad query",
			Name:    "BadValue",
		}))

		_, err := repo.FindAll(context.Background())
		require.Error(mt, err)
		assert.Equal(mt, apperror.KindStore, apperror.KindOf(err))
	})
}

func TestProductRepository_Insert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("InsertOne assigns an id and empty variants", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		stored, err := repo.InsertOne(context.Background(), model.Product{Name: "Smartphone", Price: 600, Category: "Electronics"})
		require.NoError(mt, err)
		assert.False(mt, stored.ID.IsZero())
		assert.Equal(mt, []model.Variant{}, stored.Variants)
	})

	mt.Run("InsertOne failure is a store error", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := repo.InsertOne(context.Background(), model.Product{Name: "X", Category: "Y"})
		require.Error(mt, err)
		assert.Equal(mt, apperror.KindStore, apperror.KindOf(err))
	})

	mt.Run("InsertMany assigns distinct ids", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		stored, err := repo.InsertMany(context.Background(), sampleProductsForTest())
		require.NoError(mt, err)
		require.Len(mt, stored, 2)
		assert.NotEqual(mt, stored[0].ID, stored[1].ID)
	})

	mt.Run("CountAll reads aggregate result", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		ns := mt.DB.Name() + "." + CollectionName
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}))

		n, err := repo.CountAll(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), n)
	})
}

func TestProductRepository_DeleteByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns the removed document", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{
			Key:   "value",
			Value: productDoc(id, "Nike Jacket", "Apparel", variantDoc("Gray", "L", 5)),
		}))

		deleted, err := repo.DeleteByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id, deleted.ID)
		assert.Equal(mt, "Nike Jacket", deleted.Name)
	})

	mt.Run("missing document is not found", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.DeleteByID(context.Background(), primitive.NewObjectID().Hex())
		assert.Equal(mt, apperror.KindNotFound, apperror.KindOf(err))
	})

	mt.Run("malformed id is not found without a round trip", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)

		_, err := repo.DeleteByID(context.Background(), "not-an-object-id")
		assert.Equal(mt, apperror.KindNotFound, apperror.KindOf(err))
		assert.Nil(mt, mt.GetStartedEvent())
	})
}

func sampleProductsForTest() []model.Product {
	return []model.Product{
		{Name: "Test Jacket", Price: 10, Category: "Apparel", Variants: []model.Variant{{Color: "Black", Size: "S", Stock: 1}}},
		{Name: "Test Phone", Price: 20, Category: "Electronics"},
	}
}
