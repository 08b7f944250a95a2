package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
)

const collectionDreams = "dreams"

// DreamRepository stores dreams with their reactions embedded as an array of
// subdocuments inside each dream document.
type DreamRepository struct {
	col *mongo.Collection
}

func NewDreamRepository(db *mongo.Database) *DreamRepository {
	return &DreamRepository{col: db.Collection(collectionDreams)}
}

type dreamDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	AuthorID    string             `bson:"author_id"`
	Title       string             `bson:"title"`
	Content     string             `bson:"content"`
	Tags        []string           `bson:"tags,omitempty"`
	Visibility  string             `bson:"visibility"`
	IsReposted  bool               `bson:"is_reposted"`
	Reactions   []domain.Reaction  `bson:"reactions"`
	CreatedAt   time.Time          `bson:"created_at"`
	LastUpdated time.Time          `bson:"last_updated"`
}

func toDreamDoc(d *domain.Dream) dreamDoc {
	reactions := d.Reactions
	if reactions == nil {
		reactions = []domain.Reaction{}
	}
	return dreamDoc{
		AuthorID:    d.AuthorID,
		Title:       d.Title,
		Content:     d.Content,
		Tags:        d.Tags,
		Visibility:  d.Visibility,
		IsReposted:  d.IsReposted,
		Reactions:   reactions,
		CreatedAt:   d.CreatedAt,
		LastUpdated: d.LastUpdated,
	}
}

func (d dreamDoc) toDomain() *domain.Dream {
	reactions := d.Reactions
	if reactions == nil {
		reactions = []domain.Reaction{}
	}
	return &domain.Dream{
		ID:          d.ID.Hex(),
		AuthorID:    d.AuthorID,
		Title:       d.Title,
		Content:     d.Content,
		Tags:        d.Tags,
		Visibility:  d.Visibility,
		IsReposted:  d.IsReposted,
		Reactions:   reactions,
		CreatedAt:   d.CreatedAt,
		LastUpdated: d.LastUpdated,
	}
}

func (r *DreamRepository) Create(ctx context.Context, dream *domain.Dream) (*domain.Dream, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toDreamDoc(dream))
	if err != nil {
		return nil, wrapErr("insert dream", err)
	}

	created := *dream
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *DreamRepository) FindByID(ctx context.Context, id string) (*domain.Dream, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDreamNotFound
	}

	var doc dreamDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDreamNotFound
		}
		return nil, wrapErr("find dream", err)
	}
	return doc.toDomain(), nil
}

func (r *DreamRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Dream, error) {
	return r.list(ctx, bson.M{"author_id": authorID})
}

func (r *DreamRepository) ListPublic(ctx context.Context) ([]*domain.Dream, error) {
	return r.list(ctx, bson.M{"visibility": domain.VisibilityPublic})
}

func (r *DreamRepository) list(ctx context.Context, filter bson.M) ([]*domain.Dream, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, wrapErr("list dreams", err)
	}
	defer cur.Close(ctx)

	var dreams []*domain.Dream
	for cur.Next(ctx) {
		var doc dreamDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, wrapErr("decode dream", err)
		}
		dreams = append(dreams, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, wrapErr("list dreams", err)
	}
	return dreams, nil
}

// Update replaces the dream's content fields. Reactions are not touched
// here; they go through SetReaction/RemoveReaction so concurrent reactions
// are never lost to a full-document write.
func (r *DreamRepository) Update(ctx context.Context, dream *domain.Dream) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(dream.ID)
	if err != nil {
		return domain.ErrDreamNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":        dream.Title,
		"content":      dream.Content,
		"tags":         dream.Tags,
		"visibility":   dream.Visibility,
		"last_updated": dream.LastUpdated,
	}})
	if err != nil {
		return wrapErr("update dream", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrDreamNotFound
	}
	return nil
}

func (r *DreamRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrDreamNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return wrapErr("delete dream", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDreamNotFound
	}
	return nil
}

// SetReaction stores the user's single current reaction without a
// check-then-act race. First a positional $set replaces an existing entry;
// when none matched, a $ne-guarded $push appends one; the guard makes the
// push atomic insert-if-absent, so a concurrent writer for the same
// (dream, user) pair forces another replace pass instead of a duplicate.
func (r *DreamRepository) SetReaction(ctx context.Context, dreamID, userID, kind string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(dreamID)
	if err != nil {
		return domain.ErrDreamNotFound
	}

	for attempt := 0; attempt < 2; attempt++ {
		res, err := r.col.UpdateOne(ctx,
			bson.M{"_id": oid, "reactions.user_id": userID},
			bson.M{"$set": bson.M{
				"reactions.$.kind":       kind,
				"reactions.$.reacted_at": at,
			}},
		)
		if err != nil {
			return wrapErr("replace reaction", err)
		}
		if res.MatchedCount == 1 {
			return nil
		}

		res, err = r.col.UpdateOne(ctx,
			bson.M{"_id": oid, "reactions.user_id": bson.M{"$ne": userID}},
			bson.M{"$push": bson.M{"reactions": domain.Reaction{
				UserID:    userID,
				Kind:      kind,
				ReactedAt: at,
			}}},
		)
		if err != nil {
			return wrapErr("insert reaction", err)
		}
		if res.MatchedCount == 1 {
			return nil
		}

		// Neither matched: the dream is gone, or a concurrent writer slipped
		// an entry in between the two updates. Distinguish and loop once.
		n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return wrapErr("check dream", err)
		}
		if n == 0 {
			return domain.ErrDreamNotFound
		}
	}

	return wrapErr("set reaction", errors.New("update did not converge"))
}

// RemoveReaction pulls the user's reaction. A user with no reaction is a
// no-op; a missing dream is ErrDreamNotFound.
func (r *DreamRepository) RemoveReaction(ctx context.Context, dreamID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(dreamID)
	if err != nil {
		return domain.ErrDreamNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"reactions": bson.M{"user_id": userID}}},
	)
	if err != nil {
		return wrapErr("remove reaction", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrDreamNotFound
	}
	return nil
}

// EnsureIndexes creates the author and visibility indexes.
func (r *DreamRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "visibility", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
