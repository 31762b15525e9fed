package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/storehub/commerce-service/config"
	"github.com/storehub/commerce-service/internal/domain"
	"github.com/storehub/commerce-service/internal/dto"
	"github.com/storehub/commerce-service/internal/realtime"
	"github.com/storehub/commerce-service/internal/repository"
	pkgdto "github.com/storehub/commerce-service/pkg/dto"
	"github.com/storehub/commerce-service/pkg/errs"
	"github.com/storehub/commerce-service/pkg/pagination"
)

type ProductServiceImpl struct {
	repo        repository.ProductRepository
	config      config.Config
	hub         *realtime.Hub
	kafkaReader *kafka.Reader
	publisher   EventPublisher
}

func CreateProductService(repo repository.ProductRepository, config config.Config, hub *realtime.Hub, kafkaReader *kafka.Reader, publisher EventPublisher) ProductService {
	return &ProductServiceImpl{
		repo:        repo,
		config:      config,
		hub:         hub,
		kafkaReader: kafkaReader,
		publisher:   publisher,
	}
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context, param pkgdto.ProductFilter) (pagination.Page[domain.Product], error) {
	return s.repo.GetProducts(ctx, param)
}

func (s *ProductServiceImpl) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, data dto.ProductRequest) (product domain.Product, err error) {
	if data.Title == "" || data.Description == "" || data.Code == "" || data.Category == "" {
		return product, errs.ErrValidation
	}

	if data.Price <= 0 || data.Stock <= 0 {
		return product, errs.ErrValidation
	}

	status := true
	if data.Status != nil {
		status = *data.Status
	}

	thumbnails := data.Thumbnails
	if thumbnails == nil {
		thumbnails = []string{}
	}

	product, err = s.repo.AddProduct(ctx, domain.Product{
		Title:       data.Title,
		Description: data.Description,
		Code:        data.Code,
		Price:       data.Price,
		Status:      status,
		Stock:       data.Stock,
		Category:    data.Category,
		Thumbnails:  thumbnails,
	})
	if err != nil {
		return
	}

	s.publishEvent(ctx, dto.EventProductCreated, product)
	s.hub.Broadcast(ctx)

	return product, nil
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, id string, data dto.ProductUpdateRequest) (product domain.Product, err error) {
	if data.Title != nil && *data.Title == "" {
		return product, errs.ErrValidation
	}
	if data.Description != nil && *data.Description == "" {
		return product, errs.ErrValidation
	}
	if data.Code != nil && *data.Code == "" {
		return product, errs.ErrValidation
	}
	if data.Category != nil && *data.Category == "" {
		return product, errs.ErrValidation
	}
	if data.Price != nil && *data.Price < 0 {
		return product, errs.ErrValidation
	}
	if data.Stock != nil && *data.Stock < 0 {
		return product, errs.ErrValidation
	}

	product, err = s.repo.UpdateProduct(ctx, id, domain.ProductPatch{
		Title:       data.Title,
		Description: data.Description,
		Code:        data.Code,
		Price:       data.Price,
		Status:      data.Status,
		Stock:       data.Stock,
		Category:    data.Category,
		Thumbnails:  data.Thumbnails,
	})
	if err != nil {
		return
	}

	// Updates are published to the broker but do not trigger a viewer
	// broadcast; callers that need update visibility re-publish through
	// the hub themselves.
	s.publishEvent(ctx, dto.EventProductUpdated, product)

	return product, nil
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	err = s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return
	}

	s.publishEvent(ctx, dto.EventProductDeleted, domain.Product{ID: id})
	s.hub.Broadcast(ctx)

	return
}

// publishEvent sends a catalog event to the broker with bounded retries. The
// mutation has already committed by the time this runs, so failures are
// logged and swallowed rather than surfaced to the caller.
func (s *ProductServiceImpl) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}

	kafkaMsg := dto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	}

	jsonMsg, err := json.Marshal(kafkaMsg)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Msg("")
		return
	}

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		err = s.publisher.Publish(jsonMsg)
		if err == nil {
			return
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Msg("")
		time.Sleep(time.Second * time.Duration(i+1))
	}

	log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Msgf("dropping %s event after %d attempts", eventType, maxRetries)
}

// ConsumeEvents re-broadcasts the local listing when a peer instance
// mutates the catalog. Delivery to viewers is at-least-once, so consuming
// this instance's own events only produces an extra identical push.
func (s *ProductServiceImpl) ConsumeEvents() {
	if s.kafkaReader == nil {
		return
	}

	for {
		msg, err := s.kafkaReader.ReadMessage(context.Background())
		if err != nil {
			log.Error().Err(err).Str("component", "ConsumeEvents").Msg("")
			continue
		}

		var receivedMsg dto.KafkaMessage
		if err := json.Unmarshal(msg.Value, &receivedMsg); err != nil {
			log.Error().Err(err).Str("component", "ConsumeEvents").Msg("")
			continue
		}

		switch receivedMsg.EventType {
		case dto.EventProductCreated, dto.EventProductDeleted:
			s.hub.Broadcast(context.Background())
		}
	}
}
