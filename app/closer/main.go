package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/bidhaus/goapi/base/backoff"
	bCtx "github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/database/mongoclient"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/base/metrics"
	"github.com/bidhaus/goapi/domain/item"
	mmiddleware "github.com/bidhaus/goapi/middleware"
	"github.com/bidhaus/goapi/service/query"
	"github.com/bidhaus/goapi/service/scheduler"
	auction_usecase "github.com/bidhaus/goapi/stores/auction/usecase"
	bid_repository "github.com/bidhaus/goapi/stores/bid/repository"
	item_repository "github.com/bidhaus/goapi/stores/item/repository"
	notification_repository "github.com/bidhaus/goapi/stores/notification/repository"
	notification_usecase "github.com/bidhaus/goapi/stores/notification/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/closer/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// start server to pass deployment health check
	startEchoServer()

	ctx, cancel := bCtx.WithCancel(bCtx.Background())
	defer cancel()

	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	if err := item_repository.EnsureIndexes(ctx, mongoClient); err != nil {
		ctx.WithField("err", err).Panic("ensure item indexes failed")
	}
	if err := bid_repository.EnsureIndexes(ctx, mongoClient); err != nil {
		ctx.WithField("err", err).Panic("ensure bid indexes failed")
	}

	itemRepo := item_repository.NewItemRepo(q)
	bidRepo := bid_repository.NewBidRepo(q)
	notificationRepo := notification_repository.NewNotificationRepo(q)
	notification := notification_usecase.NewNotificationUseCase(notificationRepo)

	sched := scheduler.New()
	sched.Start(ctx)
	defer sched.Stop()

	sweepInterval := viper.GetDuration("auction.sweepInterval")
	lookahead := viper.GetDuration("auction.sweepLookahead")

	auction := auction_usecase.NewAuctionUseCase(&auction_usecase.AuctionUseCaseCfg{
		ItemRepo:     itemRepo,
		BidRepo:      bidRepo,
		Notification: notification,
		Scheduler:    sched,
		Metrics:      metrics.New("auction"),
		Grace:        viper.GetDuration("auction.grace"),
		SweepWorkers: viper.GetInt("auction.sweepWorkers"),
	})

	// one shot registrations live in memory, re-register every open item
	// after a restart. Anything missed in between is caught by the sweep.
	bo := backoff.NewExponential(time.Second, 30*time.Second)
	var open []*item.Item
	for {
		var err error
		if open, err = itemRepo.FindAll(ctx, item.WithClosed(false)); err == nil {
			break
		}
		ctx.WithField("err", err).Error("load open items failed, backing off")
		if err := bo.Backoff(ctx); err != nil {
			ctx.WithField("err", err).Panic("load open items failed")
		}
	}
	for _, it := range open {
		if err := auction.ScheduleClosing(ctx, it.Id, it.ClosesAt); err != nil {
			ctx.WithFields(log.Fields{
				"err": err,
				"id":  it.Id,
			}).Error("auction.ScheduleClosing failed")
		}
	}
	ctx.WithField("count", len(open)).Info("rescheduled open items")

	sched.SchedulePeriodic(ctx, "auction-sweep", sweepInterval, func(c bCtx.Ctx) {
		res, err := auction.RunSweep(c, lookahead)
		if err != nil {
			c.WithField("err", err).Error("auction.RunSweep failed")
			return
		}
		c.WithFields(log.Fields{
			"scanned": res.Scanned,
			"closed":  res.Closed,
			"failed":  len(res.Failed),
		}).Info("sweep finished")
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
}

func startEchoServer() {
	context := bCtx.Background()

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"healthy": "ok"})
	})

	address := viper.GetString("server.address")
	context.WithField("address", address).Info("starting server")
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			context.Error("shutting down the server")
		}
	}()
}
