package main

import (
	"context"
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	segkafka "github.com/segmentio/kafka-go"

	"github.com/storehub/commerce-service/config"
	"github.com/storehub/commerce-service/internal/controller"
	"github.com/storehub/commerce-service/internal/infrastructure/database/mongodb"
	"github.com/storehub/commerce-service/internal/infrastructure/message-queue/kafka"
	"github.com/storehub/commerce-service/internal/infrastructure/tracing"
	"github.com/storehub/commerce-service/internal/middleware"
	"github.com/storehub/commerce-service/internal/realtime"
	"github.com/storehub/commerce-service/internal/repository"
	"github.com/storehub/commerce-service/internal/service"
	pkgdto "github.com/storehub/commerce-service/pkg/dto"
)

func main() {
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	conf := config.CreateNewConfig()

	var productRepo repository.ProductRepository
	var cartRepo repository.CartRepository

	switch conf.StorageDriver {
	case "mongo":
		db, err := mongodb.ConnectToMongoDB(
			fmt.Sprintf("mongodb://%s:%s", conf.MongoDBConfig.DBHost, conf.MongoDBConfig.DBPort),
			conf.MongoDBConfig.DBName,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
		}
		defer db.Client().Disconnect(context.Background())

		productRepo = repository.CreateNewMongoDBProductRepository(db)
		cartRepo = repository.CreateNewMongoDBCartRepository(db)
	case "file":
		productRepo = repository.CreateNewFileProductRepository(conf.DataDir)
		cartRepo = repository.CreateNewFileCartRepository(conf.DataDir)
	default:
		log.Fatal().Msgf("unknown storage driver %q", conf.StorageDriver)
	}

	traceProvider, err := tracing.InitTracing(conf.TracingConfig.CollectorHost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize tracing")
	} else {
		defer func() {
			if err := traceProvider.Shutdown(context.Background()); err != nil {
				log.Error().Err(err).Msg("Failed to shutdown tracing")
			}
		}()
	}

	var publisher service.EventPublisher
	var kafkaReader *segkafka.Reader
	if conf.KafkaConfig.BrokerAddress != "" {
		conn, err := kafka.CreateKafkaProducer(conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Kafka")
		}
		publisher = kafka.CreateNewProducer(conn)
		kafkaReader = kafka.CreateKafkaReader(conf)
	}

	hub := realtime.CreateNewHub(productRepo.GetAllProducts)

	productSvc := service.CreateProductService(productRepo, *conf, hub, kafkaReader, publisher)
	cartSvc := service.CreateCartService(cartRepo, productRepo)

	e := echo.New()
	e.Use(middleware.Logger)

	if traceProvider != nil {
		tracer := traceProvider.Tracer("commerce-service")
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
				defer span.End()

				c.SetRequest(c.Request().WithContext(ctx))

				return next(c)
			}
		})
	}

	g := e.Group("/api/v1")
	controller.CreateController(g, productSvc, cartSvc, hub)

	g.GET("/ping", func(c echo.Context) error {
		return pkgdto.WriteSuccessResponse(c, "pong", nil)
	})

	if kafkaReader != nil {
		go productSvc.ConsumeEvents()
	}

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", conf.ServicePort)))
}
