// Command expire performs a single expiry sweep, for hosts that schedule it
// from cron instead of the API process.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"rapid-pay-api/internal/config"
	"rapid-pay-api/internal/dal"
	"rapid-pay-api/internal/dao"
	"rapid-pay-api/internal/event"
	"rapid-pay-api/internal/idgen"
	"rapid-pay-api/internal/job"
	"rapid-pay-api/internal/mq"
	"rapid-pay-api/internal/notify"
	"rapid-pay-api/internal/service"
	"rapid-pay-api/internal/system"
	"rapid-pay-api/internal/utils"
)

func main() {
	config.Init()

	if err := idgen.Init(config.C.Project.NodeID); err != nil {
		log.Fatalf("idgen init failed: %v", err)
	}
	dal.InitMainDB()
	dal.InitRedis()
	defer dal.CloseRedis()
	if err := dal.InitRabbitMQ(); err != nil {
		log.Printf("[Expire] rabbitmq unavailable, events disabled: %v", err)
	}
	defer dal.CloseRabbitMQ()

	var pub event.Publisher
	if dal.RabbitCh != nil {
		pub = mq.NewPublisher(dal.RabbitCh)
	}

	records := dao.NewOrderRecordDao()
	reconcile := service.NewReconcileService(dao.NewHostOrderDao(dal.MainDB), records, pub)
	settings := system.NewSettingsStore(dao.NewSysConfigDao(dal.MainDB), dal.RedisClient,
		config.C.Gateway.DefaultCurrency, time.Duration(config.C.Gateway.CacheTTLSec)*time.Second)
	telegram := notify.NewTelegram(config.C.Telegram.BotToken, config.C.Telegram.ChatID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	j := job.NewExpiryJob(service.NewExpirySweeper(records, reconcile), settings, telegram, 0)
	report, err := j.RunOnce(ctx)
	if err != nil {
		log.Printf("[Expire] sweep failed: %v", err)
		os.Exit(1)
	}
	log.Printf("[Expire] %s", utils.MapToJSON(report))

	// alerts are sent asynchronously
	if len(report.Failed) > 0 && telegram.Enabled() {
		time.Sleep(3 * time.Second)
	}
}
