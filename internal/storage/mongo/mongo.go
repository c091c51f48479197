package mongo

import (
	"context"
	serrors "errors"
	"fmt"
	"regexp"
	"time"

	"talentbridge/internal/models/bid"
	"talentbridge/internal/models/job"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

var (
	ErrNotFound          = serrors.New("resource not found")
	ErrDuplicateBid      = serrors.New("bid already placed on this job")
	ErrForbidden         = serrors.New("caller is not a party to this bid")
	ErrIllegalTransition = serrors.New("illegal bid status transition")
)

type Storage struct {
	client *mongo.Client
	jobs   *mongo.Collection
	bids   *mongo.Collection
}

func New(ctx context.Context, uri, dbName string) (*Storage, error) {
	const op = "storage.mongo.New"

	opts := options.Client().ApplyURI(uri).
		SetWriteConcern(writeconcern.Majority())
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db := client.Database(dbName)
	s := &Storage{
		client: client,
		jobs:   db.Collection("jobs"),
		bids:   db.Collection("bids"),
	}

	// One bid per (email, jobId). The store enforces what an
	// application-level existence check cannot under concurrent submissions.
	_, err = s.bids.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}, {Key: "jobId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("bidder_job"),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) SaveJob(ctx context.Context, req job.JobRequest) (job.Job, error) {
	const op = "storage.mongo.SaveJob"

	doc := job.Job{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		Deadline:    req.Deadline,
		Buyer:       req.Buyer,
		BidCount:    0,
	}

	res, err := s.jobs.InsertOne(ctx, doc)
	if err != nil {
		return job.Job{}, fmt.Errorf("%s: %w", op, err)
	}
	doc.Id = res.InsertedID.(primitive.ObjectID)

	return doc, nil
}

func (s *Storage) ReadJobs(ctx context.Context) ([]job.Job, error) {
	const op = "storage.mongo.ReadJobs"

	cur, err := s.jobs.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]job.Job, 0)
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

func (s *Storage) ReadJobsByBuyer(ctx context.Context, email string) ([]job.Job, error) {
	const op = "storage.mongo.ReadJobsByBuyer"

	cur, err := s.jobs.Find(ctx, bson.M{"buyer.email": email})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]job.Job, 0)
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

func (s *Storage) ReadJob(ctx context.Context, id string) (job.Job, error) {
	const op = "storage.mongo.ReadJob"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return job.Job{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var j job.Job
	err = s.jobs.FindOne(ctx, bson.M{"_id": oid}).Decode(&j)
	if err != nil {
		if serrors.Is(err, mongo.ErrNoDocuments) {
			return job.Job{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return job.Job{}, fmt.Errorf("%s: %w", op, err)
	}

	return j, nil
}

func (s *Storage) DeleteJob(ctx context.Context, id string) error {
	const op = "storage.mongo.DeleteJob"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	// Bids referencing the job are kept; there is no cascade.
	res, err := s.jobs.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return nil
}

func (s *Storage) UpdateJob(ctx context.Context, id string, req job.JobRequest) (job.Job, error) {
	const op = "storage.mongo.UpdateJob"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return job.Job{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	update := bson.M{"$set": bson.M{
		"title":       req.Title,
		"description": req.Description,
		"category":    req.Category,
		"min_price":   req.MinPrice,
		"max_price":   req.MaxPrice,
		"deadline":    req.Deadline,
		"buyer":       req.Buyer,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var j job.Job
	err = s.jobs.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&j)
	if err != nil {
		return job.Job{}, fmt.Errorf("%s: %w", op, err)
	}

	return j, nil
}

func (s *Storage) ListJobs(ctx context.Context, q job.ListQuery) ([]job.Job, error) {
	const op = "storage.mongo.ListJobs"

	filter := bson.M{}
	if q.Search != "" {
		// Literal substring match, case-insensitive.
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}

	opts := options.Find()
	switch q.Sort {
	case "asc":
		opts.SetSort(bson.D{{Key: "deadline", Value: 1}, {Key: "_id", Value: 1}})
	case "dsc":
		opts.SetSort(bson.D{{Key: "deadline", Value: -1}, {Key: "_id", Value: 1}})
	}

	cur, err := s.jobs.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]job.Job, 0)
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// SaveBid validates the submission against the referenced job, then inserts
// the bid and increments the job's bid_count inside one transaction. The
// unique (email, jobId) index turns a concurrent duplicate submission into
// ErrDuplicateBid instead of a second document.
func (s *Storage) SaveBid(ctx context.Context, req bid.BidRequest) (bid.Bid, error) {
	const op = "storage.mongo.SaveBid"

	j, err := s.ReadJob(ctx, req.JobId)
	if err != nil {
		return bid.Bid{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := req.ValidateAgainstJob(j, time.Now()); err != nil {
		return bid.Bid{}, fmt.Errorf("%s: %w", op, err)
	}

	doc := bid.Bid{
		JobId:    req.JobId,
		Email:    req.Email,
		Buyer:    j.Buyer.Email,
		Price:    req.Price,
		Comment:  req.Comment,
		Deadline: req.Deadline,
		Status:   bid.StatusPending,
	}

	session, err := s.client.StartSession()
	if err != nil {
		return bid.Bid{}, fmt.Errorf("%s: %w", op, err)
	}
	defer session.EndSession(ctx)

	insertedID, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		ins, err := s.bids.InsertOne(sc, doc)
		if err != nil {
			return nil, err
		}
		_, err = s.jobs.UpdateOne(sc, bson.M{"_id": j.Id}, bson.M{"$inc": bson.M{"bid_count": 1}})
		if err != nil {
			return nil, err
		}
		return ins.InsertedID, nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bid.Bid{}, fmt.Errorf("%s: %w", op, ErrDuplicateBid)
		}
		return bid.Bid{}, fmt.Errorf("%s: %w", op, err)
	}
	doc.Id = insertedID.(primitive.ObjectID)

	return doc, nil
}

// ReadBids returns the bids authored by email, or the bids received on the
// caller's jobs when asBuyer is set.
func (s *Storage) ReadBids(ctx context.Context, email string, asBuyer bool) ([]bid.Bid, error) {
	const op = "storage.mongo.ReadBids"

	filter := bson.M{"email": email}
	if asBuyer {
		filter = bson.M{"buyer": email}
	}

	cur, err := s.bids.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]bid.Bid, 0)
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// ChangeBidStatus applies a lifecycle transition on behalf of callerEmail.
// The caller must be the job owner or the bid author; anything else is
// ErrForbidden. A disallowed transition is ErrIllegalTransition, and
// requesting the current status succeeds without touching the store.
func (s *Storage) ChangeBidStatus(ctx context.Context, id string, to bid.Status, callerEmail string) (bid.Bid, error) {
	const op = "storage.mongo.ChangeBidStatus"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return bid.Bid{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var b bid.Bid
	err = s.bids.FindOne(ctx, bson.M{"_id": oid}).Decode(&b)
	if err != nil {
		if serrors.Is(err, mongo.ErrNoDocuments) {
			return bid.Bid{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return bid.Bid{}, fmt.Errorf("%s: %w", op, err)
	}

	var role bid.Role
	switch callerEmail {
	case b.Buyer:
		role = bid.RoleBuyer
	case b.Email:
		role = bid.RoleBidder
	default:
		return bid.Bid{}, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	if b.Status == to {
		return b, nil
	}
	if !bid.CanTransition(b.Status, to, role) {
		return bid.Bid{}, fmt.Errorf("%s: %w", op, ErrIllegalTransition)
	}

	// Guard on the observed status so a concurrent transition is not
	// silently overwritten.
	res, err := s.bids.UpdateOne(ctx,
		bson.M{"_id": oid, "status": b.Status},
		bson.M{"$set": bson.M{"status": to}})
	if err != nil {
		return bid.Bid{}, fmt.Errorf("%s: %w", op, err)
	}
	if res.ModifiedCount == 0 {
		return bid.Bid{}, fmt.Errorf("%s: %w", op, ErrIllegalTransition)
	}
	b.Status = to

	return b, nil
}
