package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/database/mongoclient"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/item"
	"github.com/bidhaus/goapi/service/query"
)

// EnsureIndexes creates the indexes the item queries depend on. The
// sweep scans open items by deadline over (closed, closesAt), FindOne
// and MarkClosed hit the unique id.
func EnsureIndexes(c ctx.Ctx, client *mongoclient.Client) error {
	coll := client.Database(client.DbName).Collection(string(domain.TableItems))
	_, err := coll.Indexes().CreateMany(c, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "closed", Value: 1}, {Key: "closesAt", Value: 1}}},
	})
	return err
}

type itemRepoImpl struct {
	q query.Mongo
}

func NewItemRepo(q query.Mongo) item.Repo {
	return &itemRepoImpl{q}
}

func (im *itemRepoImpl) makeQuery(opts ...item.FindAllOptionsFunc) (bson.M, item.FindAllOptions, error) {
	options, err := item.GetFindAllOptions(opts...)
	if err != nil {
		return nil, options, err
	}
	query := bson.M{}

	if options.Seller != nil {
		query["seller"] = *options.Seller
	}

	if options.Closed != nil {
		if *options.Closed {
			query["closed"] = true
		} else {
			// unclosed items may predate the closed field
			query["closed"] = bson.M{"$ne": true}
		}
	}

	if options.ClosesAtBefore != nil {
		query["closesAt"] = bson.M{"$lt": *options.ClosesAtBefore}
	}

	return query, options, nil
}

func (im *itemRepoImpl) FindAll(ctx ctx.Ctx, opts ...item.FindAllOptionsFunc) ([]*item.Item, error) {
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

	res := []*item.Item{}
	err = im.q.Search(ctx, domain.TableItems, offset, limit, sort, query, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *itemRepoImpl) Count(ctx ctx.Ctx, opts ...item.FindAllOptionsFunc) (int, error) {
	query, _, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return 0, err
	}

	cnt, err := im.q.Count(ctx, domain.TableItems, query)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}

func (im *itemRepoImpl) FindOne(ctx ctx.Ctx, id string) (*item.Item, error) {
	res := &item.Item{}
	if err := im.q.FindOne(ctx, domain.TableItems, bson.M{"id": id}, res); err == query.ErrNotFound {
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

func (im *itemRepoImpl) Create(ctx ctx.Ctx, it *item.Item) error {
	if err := im.q.Insert(ctx, domain.TableItems, it); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":  err,
			"item": it,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *itemRepoImpl) Update(ctx ctx.Ctx, id string, patchable *item.Patchable) error {
	if err := im.q.Patch(ctx, domain.TableItems, bson.M{"id": id}, patchable); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.Patch")
		return err
	}
	return nil
}

func (im *itemRepoImpl) Delete(ctx ctx.Ctx, id string) error {
	if err := im.q.Remove(ctx, domain.TableItems, bson.M{"id": id}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.Remove")
		return err
	}
	return nil
}

func (im *itemRepoImpl) MarkClosed(ctx ctx.Ctx, id string, winningBid *string) error {
	// the selector only matches while the item is still open, losing the
	// race surfaces as ErrNotFound from the update
	selector := bson.M{
		"id":     id,
		"closed": bson.M{"$ne": true},
	}
	set := bson.M{"closed": true}
	if winningBid != nil {
		set["winningBid"] = *winningBid
	}
	update := bson.M{"$set": set}

	if err := im.q.CustomPatch(ctx, domain.TableItems, selector, update, false); err == query.ErrNotFound {
		return domain.ErrItemAlreadyClosed
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.CustomPatch")
		return err
	}
	return nil
}

func (im *itemRepoImpl) IncreaseViewed(ctx ctx.Ctx, id string) error {
	res := &item.Item{}
	if err := im.q.Increment(ctx, domain.TableItems, bson.M{"id": id}, res, "viewed", 1); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.Increment")
		return err
	}
	return nil
}
