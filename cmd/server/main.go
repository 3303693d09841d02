package main

import (
	"log"
	"os"
	"time"

	httpctl "canteen-service/internal/controllers/http"
	"canteen-service/internal/infra/estimator"
	mmysql "canteen-service/internal/infra/mysql"
	"canteen-service/internal/infra/rabbitmq"
	"canteen-service/internal/infra/token"
	"canteen-service/internal/notify"
	mysqlrepo "canteen-service/internal/repository/mysql"
	"canteen-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	orderRepo := mysqlrepo.NewOrderRepository(db)
	menuRepo := mysqlrepo.NewMenuRepository(db)
	receiptRepo := mysqlrepo.NewReceiptRepository(db)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST") + ":6379",
		DB:           0,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	allocator := token.NewRedisAllocator(redisClient)

	estimatorClient := estimator.NewClient(os.Getenv("ESTIMATOR_URL"), 2*time.Second)

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), "canteen.exchange")
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	hub := notify.NewHub(orderRepo)

	orderService := services.NewOrderService(orderRepo, receiptRepo, allocator, estimatorClient, publisher, hub)
	menuService := services.NewMenuService(menuRepo)
	menuService.SetRedisClient(redisClient)

	handler := httpctl.NewHandler(orderService, menuService, hub)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("starting canteen service on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
