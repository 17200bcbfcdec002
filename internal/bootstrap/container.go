package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/config"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/controller"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/handler"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/pkg/logger"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/pkg/mailer"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/implementation"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/memory"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/unitofwork"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/service"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/websocket"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/deadline"
	pktNats "github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/nats"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/store"
	workflowEvents "github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/workflow/events"
)

type Container struct {
	// Controllers
	MerchantController controller.IMerchantController
	AdminController    controller.IAdminController

	// Background Services (Exposed for main.go to run)
	CascadeService service.ICascadeService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Domain wiring
	policy := deadline.Policy{BasicDays: cfg.Workflow.BasicDays}
	caseCache := store.NewCaseCache(rdb, 60*time.Second)

	reasonRepo := memory.NewCachedReasonRepository(
		implementation.NewReasonRepository(db),
		time.Duration(cfg.Reference.ReasonCacheTTLSeconds)*time.Second,
	)
	merchantRepo := implementation.NewMerchantRepository(db)

	publisherService := service.NewPublisherService(pubSub, cfg.Workflow.RepairTopic)
	cascadeService := service.NewCascadeService(
		pubSub,
		cfg.Workflow.RepairTopic,
		uowFactory,
		sysLogger,
	)

	decisionPublisher := workflowEvents.NewNatsPublisher(natsPub, sysLogger)

	consistencyChecker := service.NewConsistencyChecker(uowFactory)
	eligibilityService := service.NewEligibilityService(uowFactory, reasonRepo, policy, caseCache, sysLogger)
	applicationService := service.NewApplicationService(uowFactory, eligibilityService, policy, caseCache, sysLogger)
	workflowService := service.NewWorkflowService(
		uowFactory,
		consistencyChecker,
		publisherService,
		decisionPublisher,
		caseCache,
		cfg.Workflow.HardBlockOnActive,
		sysLogger,
	)

	// 3.5 Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, merchantRepo, natsSub, wsHub, emailService, wsLogger)

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	// Handler
	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		MerchantController:  controller.NewMerchantController(applicationService, eligibilityService),
		AdminController:     controller.NewAdminController(workflowService),

		CascadeService: cascadeService,
	}
}
