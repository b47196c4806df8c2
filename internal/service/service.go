package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"supplychain-admin/internal/models"
	"supplychain-admin/internal/repository"
)

type Orders interface {
	CreateOrder(ctx context.Context, cmd models.CreateOrder) (int64, error)
	UpdateOrder(ctx context.Context, id int64, cmd models.UpdateOrder) error
	DeleteOrder(ctx context.Context, id int64) error
	GetOrder(ctx context.Context, id int64) (models.OrderView, error)
	ListOrders(ctx context.Context) ([]models.OrderView, error)
}

type Deliveries interface {
	CreateDelivery(ctx context.Context, cmd models.CreateDelivery) (int64, error)
	UpdateDelivery(ctx context.Context, id int64, cmd models.UpdateDelivery) error
	// DeleteDelivery returns the order the delivery was linked to, if any.
	DeleteDelivery(ctx context.Context, id int64) (*int64, error)
	GetDelivery(ctx context.Context, id int64) (models.DeliveryView, error)
	ListDeliveries(ctx context.Context) ([]models.DeliveryView, error)
}

type Integrity interface {
	CheckLinks(ctx context.Context) ([]models.LinkViolation, error)
}

type StatusHandler interface {
	HandleStatusMessage(ctx context.Context, payload []byte) error
}

type Supply interface {
	Orders
	Deliveries
	Integrity
	StatusHandler
}

type Service struct {
	store repository.Store
	tx    *Coordinator
	pub   Publisher
	v     *validator.Validate

	txTimeout time.Duration
}

var _ Supply = (*Service)(nil)

type Option func(*Service)

func WithPublisher(p Publisher) Option { return func(s *Service) { s.pub = p } }

func WithTxTimeout(d time.Duration) Option { return func(s *Service) { s.txTimeout = d } }

func NewService(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		v:         validator.New(validator.WithRequiredStructEnabled()),
		txTimeout: defaultTxTimeout,
	}
	for _, o := range opts {
		o(s)
	}
	s.tx = NewCoordinator(store, s.txTimeout)
	return s
}
