package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/notification"
)

type notificationUseCaseImpl struct {
	repo notification.Repo
}

func NewNotificationUseCase(repo notification.Repo) notification.Usecase {
	return &notificationUseCaseImpl{repo}
}

func (im *notificationUseCaseImpl) FindAll(c ctx.Ctx, recipient domain.UserId, opts ...notification.FindAllOptionsFunc) ([]*notification.Notification, error) {
	opts = append(opts, notification.WithRecipient(recipient.ToLower()))
	return im.repo.FindAll(c, opts...)
}

func (im *notificationUseCaseImpl) Notify(c ctx.Ctx, recipient domain.UserId, kind notification.Kind, itemId string, message string) error {
	n := &notification.Notification{
		Id:        uuid.New().String(),
		Recipient: recipient.ToLower(),
		Kind:      kind,
		ItemId:    itemId,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := im.repo.Create(c, n); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"recipient": recipient,
			"itemId":    itemId,
		}).Error("repo.Create failed")
		return err
	}
	return nil
}

func (im *notificationUseCaseImpl) MarkRead(c ctx.Ctx, recipient domain.UserId, id string) error {
	if err := im.repo.MarkRead(c, recipient.ToLower(), id); err != nil {
		if err != domain.ErrNotFound {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("repo.MarkRead failed")
		}
		return err
	}
	return nil
}
