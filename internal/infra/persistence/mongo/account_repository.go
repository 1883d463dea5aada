package mongo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"civicreport/config"
	"civicreport/internal/domain/entity"
	"civicreport/internal/domain/repository"
	"civicreport/internal/infra/persistence/model"
)

// accountRepository implements repository.AccountRepository on the citizens collection.
type accountRepository struct {
	coll *mongo.Collection
	cfg  *config.Config
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *mongo.Database, cfg *config.Config) repository.AccountRepository {
	return &accountRepository{
		coll: db.Collection(accountsCollection),
		cfg:  cfg,
	}
}

// FindByID retrieves a single account by its store-assigned id.
func (repo *accountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrAccountNotFound
	}

	return repo.findOne(ctx, bson.M{"_id": oid}, "find account by id")
}

// FindByEmail retrieves a single account by its email address.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return repo.findOne(ctx, bson.M{"email": email}, "find account by email")
}

// FindByExternalID retrieves a single account by its identity-provider subject.
func (repo *accountRepository) FindByExternalID(ctx context.Context, externalID string) (*entity.Account, error) {
	return repo.findOne(ctx, bson.M{"externalId": externalID}, "find account by external id")
}

func (repo *accountRepository) findOne(ctx context.Context, filter bson.M, op string) (*entity.Account, error) {
	ctx, cancel := opCtx(ctx, repo.cfg)
	defer cancel()

	var accountM model.AccountModel
	if err := repo.coll.FindOne(ctx, filter).Decode(&accountM); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, classifyStoreError(err, op)
	}

	return toAccountDomain(&accountM), nil
}

// Create persists a new account. Unique-index violations surface as
// *repository.ConflictError with the violating field.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	ctx, cancel := opCtx(ctx, repo.cfg)
	defer cancel()

	accountM := fromAccountDomain(account)
	now := time.Now().UTC()
	accountM.CreatedAt = now
	accountM.UpdatedAt = now

	res, err := repo.coll.InsertOne(ctx, accountM)
	if err != nil {
		return classifyStoreError(err, "create account")
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		account.ID = oid.Hex()
	}
	account.CreatedAt = now
	account.UpdatedAt = now

	return nil
}

// Update modifies an existing account by id.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	oid, err := primitive.ObjectIDFromHex(account.ID)
	if err != nil {
		return repository.ErrAccountNotFound
	}

	ctx, cancel := opCtx(ctx, repo.cfg)
	defer cancel()

	now := time.Now().UTC()
	set := bson.M{
		"fullName":   account.FullName,
		"isVerified": account.IsVerified,
		"updatedAt":  now,
	}
	if account.ExternalID != "" {
		set["externalId"] = account.ExternalID
	}
	if account.PhoneNumber != "" {
		set["phonenumber"] = account.PhoneNumber
	}

	res, err := repo.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return classifyStoreError(err, "update account")
	}
	if res.MatchedCount == 0 {
		return repository.ErrAccountNotFound
	}

	account.UpdatedAt = now

	return nil
}

// --- Mapper Functions ---

// toAccountDomain converts a stored document to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:           data.ID.Hex(),
		FullName:     data.FullName,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		PhoneNumber:  data.PhoneNumber,
		ExternalID:   data.ExternalID,
		IsVerified:   data.IsVerified,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromAccountDomain converts a domain Account entity to its stored form.
// The id is left for the store to assign.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		FullName:     data.FullName,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		PhoneNumber:  data.PhoneNumber,
		ExternalID:   data.ExternalID,
		IsVerified:   data.IsVerified,
	}
}
