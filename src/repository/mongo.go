package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	app "kaviospix/src/app"
	cfg "kaviospix/src/configuration"
)

// Mongo bundles the document-store implementations of the three store
// interfaces over one client connection.
type Mongo struct {
	client *mongo.Client
	Users  *MongoUsers
	Albums *MongoAlbums
	Images *MongoImages
}

func NewMongo(ctx context.Context, config *cfg.Properties) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, config.Mongo.ConnTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(config.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo not responding: %w", err)
	}

	db := client.Database(config.Mongo.Database)
	return &Mongo{
		client: client,
		Users:  &MongoUsers{coll: db.Collection("users")},
		Albums: &MongoAlbums{coll: db.Collection("albums")},
		Images: &MongoImages{coll: db.Collection("images")},
	}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

type MongoUsers struct {
	coll *mongo.Collection
}

func (s *MongoUsers) Insert(ctx context.Context, user *app.User) error {
	_, err := s.coll.InsertOne(ctx, user)
	return err
}

func (s *MongoUsers) Update(ctx context.Context, user *app.User) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"userId": user.UserID}, user)
	return err
}

func (s *MongoUsers) FindByID(ctx context.Context, userID string) (*app.User, error) {
	return s.findOne(ctx, bson.M{"userId": userID})
}

func (s *MongoUsers) FindByEmail(ctx context.Context, email string) (*app.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoUsers) FindByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*app.User, error) {
	return s.findOne(ctx, bson.M{"$or": []bson.M{
		{"googleId": googleID},
		{"email": email},
	}})
}

func (s *MongoUsers) FindByEmails(ctx context.Context, emails []string) ([]app.User, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"email": bson.M{"$in": emails}})
	if err != nil {
		return nil, err
	}
	var users []app.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoUsers) findOne(ctx context.Context, filter bson.M) (*app.User, error) {
	var user app.User
	err := s.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type MongoAlbums struct {
	coll *mongo.Collection
}

func (s *MongoAlbums) Insert(ctx context.Context, album *app.Album) error {
	_, err := s.coll.InsertOne(ctx, album)
	return err
}

func (s *MongoAlbums) Update(ctx context.Context, album *app.Album) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"albumId": album.AlbumID}, album)
	return err
}

func (s *MongoAlbums) Delete(ctx context.Context, albumID string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"albumId": albumID})
	return err
}

func (s *MongoAlbums) FindByID(ctx context.Context, albumID string) (*app.Album, error) {
	var album app.Album
	err := s.coll.FindOne(ctx, bson.M{"albumId": albumID}).Decode(&album)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &album, nil
}

func (s *MongoAlbums) ListVisible(ctx context.Context, userID, email string) ([]app.Album, error) {
	filter := bson.M{
		"state": app.StateActive,
		"$or": []bson.M{
			{"ownerId": userID},
			{"sharedWith.email": email},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.findAll(ctx, filter, opts)
}

func (s *MongoAlbums) ListAccessibleIDs(ctx context.Context, userID, email string) ([]string, error) {
	filter := bson.M{"$or": []bson.M{
		{"ownerId": userID},
		{"sharedWith.email": email},
	}}
	opts := options.Find().SetProjection(bson.M{"albumId": 1})
	albums, err := s.findAll(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(albums))
	for _, album := range albums {
		ids = append(ids, album.AlbumID)
	}
	return ids, nil
}

func (s *MongoAlbums) ListTrashedOwned(ctx context.Context, userID string) ([]app.Album, error) {
	filter := bson.M{"state": app.StateTrashed, "ownerId": userID}
	opts := options.Find().SetSort(bson.D{{Key: "deletedAt", Value: -1}})
	return s.findAll(ctx, filter, opts)
}

func (s *MongoAlbums) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]app.Album, error) {
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var albums []app.Album
	if err := cursor.All(ctx, &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

type MongoImages struct {
	coll *mongo.Collection
}

func (s *MongoImages) Insert(ctx context.Context, image *app.Image) error {
	_, err := s.coll.InsertOne(ctx, image)
	return err
}

func (s *MongoImages) Update(ctx context.Context, image *app.Image) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"imageId": image.ImageID}, image)
	return err
}

func (s *MongoImages) Delete(ctx context.Context, imageID string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"imageId": imageID})
	return err
}

func (s *MongoImages) FindByID(ctx context.Context, imageID string) (*app.Image, error) {
	var image app.Image
	err := s.coll.FindOne(ctx, bson.M{"imageId": imageID}).Decode(&image)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (s *MongoImages) ListActive(ctx context.Context, albumID string, filter app.ImageFilter) ([]app.Image, error) {
	query := bson.M{"albumId": albumID, "state": app.StateActive}
	if filter.FavoritesOnly {
		query["isFavorite"] = true
	}
	if len(filter.Tags) > 0 {
		query["tags"] = bson.M{"$in": filter.Tags}
	}
	opts := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}})
	return s.findAll(ctx, query, opts)
}

func (s *MongoImages) TrashByAlbum(ctx context.Context, albumID, albumName string, at time.Time) (int64, error) {
	result, err := s.coll.UpdateMany(ctx,
		bson.M{"albumId": albumID, "state": app.StateActive},
		bson.M{"$set": bson.M{
			"state":             app.StateTrashed,
			"deletedAt":         at,
			"originalAlbumId":   albumID,
			"originalAlbumName": albumName,
		}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (s *MongoImages) RestoreByOriginalAlbum(ctx context.Context, albumID string) (int64, error) {
	result, err := s.coll.UpdateMany(ctx,
		bson.M{"originalAlbumId": albumID, "state": app.StateTrashed},
		bson.M{
			"$set": bson.M{
				"state":   app.StateActive,
				"albumId": albumID,
			},
			"$unset": bson.M{
				"deletedAt":         "",
				"originalAlbumId":   "",
				"originalAlbumName": "",
			},
		})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (s *MongoImages) ListTrashedByOriginalAlbum(ctx context.Context, albumID string) ([]app.Image, error) {
	return s.findAll(ctx, bson.M{"originalAlbumId": albumID, "state": app.StateTrashed}, options.Find())
}

func (s *MongoImages) ListTrashedVisible(ctx context.Context, userID string, albumIDs []string) ([]app.Image, error) {
	filter := bson.M{
		"state": app.StateTrashed,
		"$or": []bson.M{
			{"uploadedBy": userID},
			{"originalAlbumId": bson.M{"$in": albumIDs}},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "deletedAt", Value: -1}})
	return s.findAll(ctx, filter, opts)
}

func (s *MongoImages) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]app.Image, error) {
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var images []app.Image
	if err := cursor.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}
