package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/database/mongoclient"
	"github.com/bidhaus/goapi/base/database/redisclient"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/base/metrics"
	"github.com/bidhaus/goapi/base/priceformat"
	bValidator "github.com/bidhaus/goapi/base/validator"
	"github.com/bidhaus/goapi/domain/keys"
	mmiddleware "github.com/bidhaus/goapi/middleware"
	"github.com/bidhaus/goapi/service/cache"
	cache_primitive "github.com/bidhaus/goapi/service/cache/provider/primitive"
	cache_redis "github.com/bidhaus/goapi/service/cache/provider/redis"
	"github.com/bidhaus/goapi/service/query"
	"github.com/bidhaus/goapi/service/redis"
	"github.com/bidhaus/goapi/service/scheduler"
	account_delivery "github.com/bidhaus/goapi/stores/account/delivery/http"
	account_repository "github.com/bidhaus/goapi/stores/account/repository"
	account_usecase "github.com/bidhaus/goapi/stores/account/usecase"
	auction_delivery "github.com/bidhaus/goapi/stores/auction/delivery/http"
	auction_usecase "github.com/bidhaus/goapi/stores/auction/usecase"
	auth_delivery "github.com/bidhaus/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/bidhaus/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/bidhaus/goapi/stores/auth/usecase"
	bid_delivery "github.com/bidhaus/goapi/stores/bid/delivery/http"
	bid_repository "github.com/bidhaus/goapi/stores/bid/repository"
	bid_usecase "github.com/bidhaus/goapi/stores/bid/usecase"
	hc_delivery "github.com/bidhaus/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/bidhaus/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/bidhaus/goapi/stores/healthcheck/usecase"
	item_delivery "github.com/bidhaus/goapi/stores/item/delivery/http"
	item_repository "github.com/bidhaus/goapi/stores/item/repository"
	item_usecase "github.com/bidhaus/goapi/stores/item/usecase"
	notification_delivery "github.com/bidhaus/goapi/stores/notification/delivery/http"
	notification_repository "github.com/bidhaus/goapi/stores/notification/repository"
	notification_usecase "github.com/bidhaus/goapi/stores/notification/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	if err := item_repository.EnsureIndexes(context, mongoClient); err != nil {
		context.WithField("err", err).Panic("ensure item indexes failed")
	}
	if err := bid_repository.EnsureIndexes(context, mongoClient); err != nil {
		context.WithField("err", err).Panic("ensure bid indexes failed")
	}
	if err := account_repository.EnsureIndexes(context, mongoClient); err != nil {
		context.WithField("err", err).Panic("ensure account indexes failed")
	}

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	// account profiles are shared between pods, item infos only need to
	// absorb read bursts so a per pod cache is enough
	accountCache := cache.New(cache.ServiceConfig{
		Ttl:   viper.GetDuration("cache.accountTtl"),
		Pfx:   keys.PfxAccount,
		Cache: cache_redis.NewRedis(redisCache),
	})
	itemInfoCache := cache.New(cache.ServiceConfig{
		Ttl:   viper.GetDuration("cache.itemInfoTtl"),
		Pfx:   keys.PfxItemPrice,
		Cache: cache_primitive.NewPrimitive("itemInfo", 64),
	})

	priceFormatter := priceformat.NewFormatter(&priceformat.FormatterCfg{
		Symbol:   viper.GetString("price.symbol"),
		Exponent: int32(viper.GetInt("price.exponent")),
	})

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	itemRepo := item_repository.NewItemRepo(q)
	bidRepo := bid_repository.NewBidRepo(q)
	notificationRepo := notification_repository.NewNotificationRepo(q)
	accountRepo := account_repository.NewAccountRepo(q)

	hc := hc_usecase.New(hcRepo)
	notification := notification_usecase.NewNotificationUseCase(notificationRepo)
	account := account_usecase.NewAccountUseCase(accountRepo, accountCache)
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), viper.GetDuration("auth.tokenTtl"))

	sched := scheduler.New()
	sched.Start(context)
	defer sched.Stop()

	minIncrement := viper.GetInt64("auction.minIncrement")
	auction := auction_usecase.NewAuctionUseCase(&auction_usecase.AuctionUseCaseCfg{
		ItemRepo:     itemRepo,
		BidRepo:      bidRepo,
		Notification: notification,
		Scheduler:    sched,
		Metrics:      metrics.New("auction"),
		Grace:        viper.GetDuration("auction.grace"),
		SweepWorkers: viper.GetInt("auction.sweepWorkers"),
	})
	item := item_usecase.NewItemUseCase(&item_usecase.ItemUseCaseCfg{
		ItemRepo:     itemRepo,
		BidRepo:      bidRepo,
		Formatter:    priceFormatter,
		Auction:      auction,
		InfoCache:    itemInfoCache,
		MinIncrement: minIncrement,
	})
	bid := bid_usecase.NewBidUseCase(&bid_usecase.BidUseCaseCfg{
		BidRepo:      bidRepo,
		ItemRepo:     itemRepo,
		MinIncrement: minIncrement,
	})

	adminEmails := viper.GetStringSlice("admin.emails")
	auth_middleware := auth_middleware.New(auth, adminEmails)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth, account)
	account_delivery.New(e, auth_middleware, account)
	item_delivery.New(e, auth_middleware, item)
	bid_delivery.New(e, auth_middleware, bid)
	notification_delivery.New(e, auth_middleware, notification)
	auction_delivery.New(e, auth_middleware, auction)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
