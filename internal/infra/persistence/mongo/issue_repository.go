package mongo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"civicreport/config"
	"civicreport/internal/domain/entity"
	"civicreport/internal/domain/repository"
	"civicreport/internal/infra/persistence/model"
)

// issueRepository implements repository.IssueRepository on the issues collection.
type issueRepository struct {
	coll *mongo.Collection
	cfg  *config.Config
}

// NewIssueRepository is the constructor for issueRepository.
func NewIssueRepository(db *mongo.Database, cfg *config.Config) repository.IssueRepository {
	return &issueRepository{
		coll: db.Collection(issuesCollection),
		cfg:  cfg,
	}
}

// FindByID retrieves a single issue by its store-assigned id.
func (repo *issueRepository) FindByID(ctx context.Context, id string) (*entity.Issue, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrIssueNotFound
	}

	return repo.findOne(ctx, bson.M{"_id": oid}, "find issue by id")
}

// FindByTitle retrieves a single issue by its exact title.
func (repo *issueRepository) FindByTitle(ctx context.Context, title string) (*entity.Issue, error) {
	return repo.findOne(ctx, bson.M{"title": title}, "find issue by title")
}

func (repo *issueRepository) findOne(ctx context.Context, filter bson.M, op string) (*entity.Issue, error) {
	ctx, cancel := opCtx(ctx, repo.cfg)
	defer cancel()

	var issueM model.IssueModel
	if err := repo.coll.FindOne(ctx, filter).Decode(&issueM); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrIssueNotFound
		}

		return nil, classifyStoreError(err, op)
	}

	return toIssueDomain(&issueM), nil
}

// FindAll lists every issue, newest first.
func (repo *issueRepository) FindAll(ctx context.Context) ([]*entity.Issue, error) {
	ctx, cancel := opCtx(ctx, repo.cfg)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, classifyStoreError(err, "list issues")
	}
	defer cursor.Close(ctx)

	var issueModels []model.IssueModel
	if err := cursor.All(ctx, &issueModels); err != nil {
		return nil, classifyStoreError(err, "decode issues")
	}

	issues := make([]*entity.Issue, 0, len(issueModels))
	for i := range issueModels {
		issues = append(issues, toIssueDomain(&issueModels[i]))
	}

	return issues, nil
}

// Create persists a new issue.
func (repo *issueRepository) Create(ctx context.Context, issue *entity.Issue) error {
	ctx, cancel := opCtx(ctx, repo.cfg)
	defer cancel()

	issueM, err := fromIssueDomain(issue)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	issueM.CreatedAt = now
	issueM.UpdatedAt = now

	res, err := repo.coll.InsertOne(ctx, issueM)
	if err != nil {
		return classifyStoreError(err, "create issue")
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		issue.ID = oid.Hex()
	}
	issue.CreatedAt = now
	issue.UpdatedAt = now

	return nil
}

// SetMediaIDs attaches stored media references to an issue.
func (repo *issueRepository) SetMediaIDs(ctx context.Context, issueID string, mediaIDs []string) error {
	oid, err := primitive.ObjectIDFromHex(issueID)
	if err != nil {
		return repository.ErrIssueNotFound
	}

	mediaOIDs := make([]primitive.ObjectID, 0, len(mediaIDs))
	for _, id := range mediaIDs {
		mediaOID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return errors.Errorf("invalid media id: %s", id)
		}
		mediaOIDs = append(mediaOIDs, mediaOID)
	}

	ctx, cancel := opCtx(ctx, repo.cfg)
	defer cancel()

	res, err := repo.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"media":     mediaOIDs,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return classifyStoreError(err, "set issue media")
	}
	if res.MatchedCount == 0 {
		return repository.ErrIssueNotFound
	}

	return nil
}

// Delete removes an issue by id.
func (repo *issueRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrIssueNotFound
	}

	ctx, cancel := opCtx(ctx, repo.cfg)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return classifyStoreError(err, "delete issue")
	}
	if res.DeletedCount == 0 {
		return repository.ErrIssueNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toIssueDomain(data *model.IssueModel) *entity.Issue {
	if data == nil {
		return nil
	}

	mediaIDs := make([]string, 0, len(data.Media))
	for _, oid := range data.Media {
		mediaIDs = append(mediaIDs, oid.Hex())
	}

	return &entity.Issue{
		ID:          data.ID.Hex(),
		CitizenID:   data.CitizenID,
		IssueType:   entity.IssueType(data.IssueType),
		Title:       data.Title,
		Description: data.Description,
		Status:      entity.IssueStatus(data.Status),
		Location: entity.Location{
			Latitude:  data.Location.Latitude,
			Longitude: data.Location.Longitude,
			Address:   data.Location.Address,
		},
		MediaIDs:  mediaIDs,
		HandledBy: data.HandledBy,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromIssueDomain(data *entity.Issue) (*model.IssueModel, error) {
	if data == nil {
		return nil, errors.New("nil issue")
	}

	mediaOIDs := make([]primitive.ObjectID, 0, len(data.MediaIDs))
	for _, id := range data.MediaIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, errors.Errorf("invalid media id: %s", id)
		}
		mediaOIDs = append(mediaOIDs, oid)
	}

	return &model.IssueModel{
		CitizenID:   data.CitizenID,
		IssueType:   string(data.IssueType),
		Title:       data.Title,
		Description: data.Description,
		Status:      string(data.Status),
		Location: model.LocationModel{
			Latitude:  data.Location.Latitude,
			Longitude: data.Location.Longitude,
			Address:   data.Location.Address,
		},
		Media:     mediaOIDs,
		HandledBy: data.HandledBy,
	}, nil
}
