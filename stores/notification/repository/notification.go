package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/notification"
	"github.com/bidhaus/goapi/service/query"
)

type notificationRepoImpl struct {
	q query.Mongo
}

func NewNotificationRepo(q query.Mongo) notification.Repo {
	return &notificationRepoImpl{q}
}

func (im *notificationRepoImpl) makeQuery(opts ...notification.FindAllOptionsFunc) (bson.M, notification.FindAllOptions, error) {
	options, err := notification.GetFindAllOptions(opts...)
	if err != nil {
		return nil, options, err
	}
	query := bson.M{}

	if options.Recipient != nil {
		query["recipient"] = *options.Recipient
	}

	if options.Read != nil {
		query["read"] = *options.Read
	}

	return query, options, nil
}

func (im *notificationRepoImpl) FindAll(ctx ctx.Ctx, opts ...notification.FindAllOptionsFunc) ([]*notification.Notification, error) {
	query, options, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	offset := 0
	limit := 0
	sort := "-createdAt"
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

	res := []*notification.Notification{}
	err = im.q.Search(ctx, domain.TableNotifications, offset, limit, sort, query, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *notificationRepoImpl) Create(ctx ctx.Ctx, n *notification.Notification) error {
	if err := im.q.Insert(ctx, domain.TableNotifications, n); err != nil {
		ctx.WithFields(log.Fields{
			"err":          err,
			"notification": n,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *notificationRepoImpl) MarkRead(ctx ctx.Ctx, recipient domain.UserId, id string) error {
	selector := bson.M{
		"id":        id,
		"recipient": recipient,
	}
	update := bson.M{"$set": bson.M{"read": true}}

	if err := im.q.CustomPatch(ctx, domain.TableNotifications, selector, update, false); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.CustomPatch")
		return err
	}
	return nil
}
