package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"civicreport/config"
	"civicreport/internal/domain/entity"
	"civicreport/internal/domain/repository"
	"civicreport/internal/infra/persistence/model"
)

// mediaRepository implements repository.MediaRepository on the multimedia collection.
type mediaRepository struct {
	coll *mongo.Collection
	cfg  *config.Config
}

// NewMediaRepository is the constructor for mediaRepository.
func NewMediaRepository(db *mongo.Database, cfg *config.Config) repository.MediaRepository {
	return &mediaRepository{
		coll: db.Collection(mediaCollection),
		cfg:  cfg,
	}
}

// Create persists a new media record.
func (repo *mediaRepository) Create(ctx context.Context, media *entity.Media) error {
	ctx, cancel := opCtx(ctx, repo.cfg)
	defer cancel()

	issueOID, err := primitive.ObjectIDFromHex(media.IssueID)
	if err != nil {
		return repository.ErrIssueNotFound
	}

	now := time.Now().UTC()
	mediaM := &model.MediaModel{
		IssueID:   issueOID,
		FileType:  string(media.FileType),
		URL:       media.URL,
		Filename:  media.Filename,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := repo.coll.InsertOne(ctx, mediaM)
	if err != nil {
		return classifyStoreError(err, "create media")
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		media.ID = oid.Hex()
	}
	media.CreatedAt = now
	media.UpdatedAt = now

	return nil
}

// FindByIssueID lists the attachments of an issue in creation order.
func (repo *mediaRepository) FindByIssueID(ctx context.Context, issueID string) ([]*entity.Media, error) {
	issueOID, err := primitive.ObjectIDFromHex(issueID)
	if err != nil {
		return nil, repository.ErrIssueNotFound
	}

	return repo.find(ctx, bson.M{"issueID": issueOID})
}

// FindByIDs resolves a set of media ids.
func (repo *mediaRepository) FindByIDs(ctx context.Context, ids []string) ([]*entity.Media, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return nil, nil
	}

	return repo.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (repo *mediaRepository) find(ctx context.Context, filter bson.M) ([]*entity.Media, error) {
	ctx, cancel := opCtx(ctx, repo.cfg)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, classifyStoreError(err, "find media")
	}
	defer cursor.Close(ctx)

	var mediaModels []model.MediaModel
	if err := cursor.All(ctx, &mediaModels); err != nil {
		return nil, classifyStoreError(err, "decode media")
	}

	media := make([]*entity.Media, 0, len(mediaModels))
	for i := range mediaModels {
		media = append(media, toMediaDomain(&mediaModels[i]))
	}

	return media, nil
}

func toMediaDomain(data *model.MediaModel) *entity.Media {
	if data == nil {
		return nil
	}

	return &entity.Media{
		ID:        data.ID.Hex(),
		IssueID:   data.IssueID.Hex(),
		FileType:  entity.MediaType(data.FileType),
		URL:       data.URL,
		Filename:  data.Filename,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
