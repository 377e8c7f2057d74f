package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/savoraddis/cafe-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

type MenuRepository interface {
	ListMenus(ctx context.Context) ([]models.CafeMenu, error)
	InsertItem(ctx context.Context, item *models.MenuItem) error
	UpdateItem(ctx context.Context, id primitive.ObjectID, item *models.MenuItem) error
	DeleteItem(ctx context.Context, id primitive.ObjectID) error
	GetCafeSettings(ctx context.Context, cafe string) (*models.CafeSettings, error)
	UpsertCafeSettings(ctx context.Context, settings *models.CafeSettings) error
}

type MongoMenuRepository struct {
	items *mongo.Collection
	cafes *mongo.Collection
}

func NewMongoMenuRepository(db *mongo.Database) *MongoMenuRepository {
	return &MongoMenuRepository{
		items: db.Collection("menu_items"),
		cafes: db.Collection("cafes"),
	}
}

// ListMenus returns all menu items grouped per cafe, matching the shape the
// storefront consumes: [{cafe, items: [...]}].
func (r *MongoMenuRepository) ListMenus(ctx context.Context) ([]models.CafeMenu, error) {
	cursor, err := r.items.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.MenuItem)
	for _, item := range items {
		grouped[item.Cafe] = append(grouped[item.Cafe], item)
	}

	menus := make([]models.CafeMenu, 0, len(grouped))
	for cafe, cafeItems := range grouped {
		menus = append(menus, models.CafeMenu{Cafe: cafe, Items: cafeItems})
	}
	sort.Slice(menus, func(i, j int) bool { return menus[i].Cafe < menus[j].Cafe })
	return menus, nil
}

func (r *MongoMenuRepository) InsertItem(ctx context.Context, item *models.MenuItem) error {
	res, err := r.items.InsertOne(ctx, item)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	}
	return nil
}

func (r *MongoMenuRepository) UpdateItem(ctx context.Context, id primitive.ObjectID, item *models.MenuItem) error {
	update := bson.M{"$set": bson.M{
		"name":        item.Name,
		"price":       item.Price,
		"description": item.Description,
		"category":    item.Category,
		"photo":       item.Photo,
	}}
	res, err := r.items.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func (r *MongoMenuRepository) DeleteItem(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.items.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

// GetCafeSettings returns nil settings for cafes without an explicit record;
// those cafes do not require a grade.
func (r *MongoMenuRepository) GetCafeSettings(ctx context.Context, cafe string) (*models.CafeSettings, error) {
	var settings models.CafeSettings
	err := r.cafes.FindOne(ctx, bson.M{"name": cafe}).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *MongoMenuRepository) UpsertCafeSettings(ctx context.Context, settings *models.CafeSettings) error {
	_, err := r.cafes.UpdateOne(ctx,
		bson.M{"name": settings.Name},
		bson.M{"$set": bson.M{"requires_grade": settings.RequiresGrade}},
		options.Update().SetUpsert(true),
	)
	return err
}
