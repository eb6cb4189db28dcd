package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"rapid-pay-api/internal/cart"
	"rapid-pay-api/internal/config"
	"rapid-pay-api/internal/dal"
	"rapid-pay-api/internal/dao"
	"rapid-pay-api/internal/event"
	"rapid-pay-api/internal/handler"
	"rapid-pay-api/internal/idgen"
	"rapid-pay-api/internal/job"
	"rapid-pay-api/internal/logger"
	"rapid-pay-api/internal/middleware"
	"rapid-pay-api/internal/mq"
	"rapid-pay-api/internal/notify"
	"rapid-pay-api/internal/service"
	"rapid-pay-api/internal/system"
	"rapid-pay-api/internal/utils"
)

func main() {
	// load config env
	config.Init()
	logger.Setup(logger.Options{
		Dir:     config.C.Log.Dir,
		Level:   config.C.Log.Level,
		MaxAge:  time.Duration(config.C.Log.MaxAgeDays) * 24 * time.Hour,
		UseJSON: config.C.Log.JSON,
	})

	// init infra
	if err := idgen.Init(config.C.Project.NodeID); err != nil {
		log.Fatalf("idgen init failed: %v", err)
	}
	dal.InitMainDB()
	dal.InitRedis()
	defer dal.CloseRedis()
	if err := dal.InitRabbitMQ(); err != nil {
		log.Fatalf("rabbitmq init failed: %v", err)
	}
	defer dal.CloseRabbitMQ()

	// publisher stays a nil interface when MQ is disabled
	var pub event.Publisher
	var mqPub *mq.Publisher
	if dal.RabbitCh != nil {
		mqPub = mq.NewPublisher(dal.RabbitCh)
		pub = mqPub
	}

	orders := dao.NewHostOrderDao(dal.MainDB)
	records := dao.NewOrderRecordDao()
	settings := system.NewSettingsStore(dao.NewSysConfigDao(dal.MainDB), dal.RedisClient,
		config.C.Gateway.DefaultCurrency, time.Duration(config.C.Gateway.CacheTTLSec)*time.Second)
	telegram := notify.NewTelegram(config.C.Telegram.BotToken, config.C.Telegram.ChatID)

	reconcile := service.NewReconcileService(orders, records, pub)
	checkout := service.NewCheckoutService(orders, cart.NewRedisCart(dal.RedisClient, orders), reconcile, telegram)
	analytics := service.NewAnalyticsService(dao.NewAnalyticsDao(dal.MainDB))
	sweeper := service.NewExpirySweeper(records, reconcile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// start consumers
	if mqPub != nil {
		go func() {
			if err := mq.NewResyncConsumer(reconcile, mqPub).Start(ctx, dal.RabbitCh); err != nil {
				log.Printf("[MQ] resync consumer exited: %v", err)
			}
		}()
	}
	if config.C.Sweeper.Enabled {
		go job.NewExpiryJob(sweeper, settings, telegram, config.C.Sweeper.Interval).Run(ctx)
	}

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	utils.UseWireFieldNames()
	r := gin.New()
	if len(config.C.Server.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(config.C.Server.TrustedProxies); err != nil {
			log.Fatalf("trusted proxies: %v", err)
		}
	}
	r.Use(
		middleware.Recover(),
		middleware.TraceAudit(logger.NewAuditWriter(dao.NewAuditLogDao(dal.MainDB))),
		middleware.RequestLogger("/healthz"),
	)
	handler.RegisterRoutes(r, handler.Routes{
		Checkout:   handler.NewCheckoutHandler(settings, checkout),
		Orders:     handler.NewAdminOrderHandler(records, reconcile),
		Analytics:  handler.NewAnalyticsHandler(analytics),
		Settings:   handler.NewSettingsHandler(settings),
		Hooks:      handler.NewHookHandler(reconcile),
		Health:     handler.NewHealthHandler(dal.MainDB, dal.RedisClient),
		Authorizer: service.NewTokenAuthorizer(config.C.Security.AdminTokens),
		HookSecret: config.C.Security.HookSecret,
	})

	srv := &http.Server{Addr: ":" + config.C.Server.Port, Handler: r}
	go func() {
		log.Printf("listening %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
