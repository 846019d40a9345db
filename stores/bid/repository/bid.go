package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/database/mongoclient"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/bid"
	"github.com/bidhaus/goapi/service/query"
)

// EnsureIndexes creates the compound index FindLeading sorts on, the
// highest amount first then the earliest placement.
func EnsureIndexes(c ctx.Ctx, client *mongoclient.Client) error {
	coll := client.Database(client.DbName).Collection(string(domain.TableBids))
	_, err := coll.Indexes().CreateMany(c, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "itemId", Value: 1}, {Key: "amount", Value: -1}, {Key: "createdAt", Value: 1}}},
	})
	return err
}

type bidRepoImpl struct {
	q query.Mongo
}

func NewBidRepo(q query.Mongo) bid.Repo {
	return &bidRepoImpl{q}
}

func (im *bidRepoImpl) makeQuery(opts ...bid.FindAllOptionsFunc) (bson.M, bid.FindAllOptions, error) {
	options, err := bid.GetFindAllOptions(opts...)
	if err != nil {
		return nil, options, err
	}
	query := bson.M{}

	if options.ItemId != nil {
		query["itemId"] = *options.ItemId
	}

	if options.Bidder != nil {
		query["bidder"] = *options.Bidder
	}

	if options.CreatedAtBefore != nil {
		query["createdAt"] = bson.M{"$lt": *options.CreatedAtBefore}
	}

	return query, options, nil
}

func (im *bidRepoImpl) FindAll(ctx ctx.Ctx, opts ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	query, options, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	offset := 0
	limit := 0
	sort := "_id"
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}
	if options.SortBy != nil {
		if options.SortDir != nil && *options.SortDir == domain.SortDirDesc {
			sort = "-" + *options.SortBy
		} else {
			sort = *options.SortBy
		}
	}

	res := []*bid.Bid{}
	err = im.q.Search(ctx, domain.TableBids, offset, limit, sort, query, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *bidRepoImpl) Count(ctx ctx.Ctx, opts ...bid.FindAllOptionsFunc) (int, error) {
	query, _, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return 0, err
	}

	cnt, err := im.q.Count(ctx, domain.TableBids, query)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}

func (im *bidRepoImpl) FindOne(ctx ctx.Ctx, id string) (*bid.Bid, error) {
	res := &bid.Bid{}
	if err := im.q.FindOne(ctx, domain.TableBids, bson.M{"id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return res, nil
}

func (im *bidRepoImpl) FindLeading(ctx ctx.Ctx, itemId string, cutoff time.Time) (*bid.Bid, error) {
	query := bson.M{
		"itemId":    itemId,
		"createdAt": bson.M{"$lt": cutoff},
	}
	// highest amount wins, earliest placement breaks the tie
	sorts := []string{"-amount", "createdAt"}

	res := []*bid.Bid{}
	if err := im.q.SearchNSorts(ctx, domain.TableBids, 0, 1, sorts, query, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"itemId": itemId,
		}).Error("failed to q.SearchNSorts")
		return nil, err
	}

	if len(res) == 0 {
		return nil, domain.ErrNotFound
	}
	return res[0], nil
}

func (im *bidRepoImpl) Create(ctx ctx.Ctx, b *bid.Bid) error {
	if err := im.q.Insert(ctx, domain.TableBids, b); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"bid": b,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}
