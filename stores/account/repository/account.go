package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/database/mongoclient"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/account"
	"github.com/bidhaus/goapi/service/query"
)

// EnsureIndexes backs the duplicate signup check with a unique index on
// the email
func EnsureIndexes(c ctx.Ctx, client *mongoclient.Client) error {
	coll := client.Database(client.DbName).Collection(string(domain.TableAccounts))
	_, err := coll.Indexes().CreateMany(c, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

type accountRepoImpl struct {
	q query.Mongo
}

func NewAccountRepo(q query.Mongo) account.Repo {
	return &accountRepoImpl{q}
}

func (im *accountRepoImpl) Get(ctx ctx.Ctx, email domain.UserId) (*account.Account, error) {
	res := &account.Account{}
	if err := im.q.FindOne(ctx, domain.TableAccounts, bson.M{"email": email.ToLower()}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"email": email,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return res, nil
}

func (im *accountRepoImpl) Insert(ctx ctx.Ctx, a *account.Account) error {
	if err := im.q.Insert(ctx, domain.TableAccounts, a); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"email": a.Email,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *accountRepoImpl) Update(ctx ctx.Ctx, email domain.UserId, updater *account.Updater) error {
	update, err := mongoclient.MakeBsonM(updater)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"email": email,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	if err := im.q.Patch(ctx, domain.TableAccounts, bson.M{"email": email.ToLower()}, update); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"email": email,
		}).Error("failed to q.Patch")
		return err
	}
	return nil
}
