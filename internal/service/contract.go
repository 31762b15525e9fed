package service

import (
	"context"

	"github.com/storehub/commerce-service/internal/domain"
	"github.com/storehub/commerce-service/internal/dto"
	pkgdto "github.com/storehub/commerce-service/pkg/dto"
	"github.com/storehub/commerce-service/pkg/pagination"
)

type ProductService interface {
	GetProducts(ctx context.Context, param pkgdto.ProductFilter) (pagination.Page[domain.Product], error)
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	AddProduct(ctx context.Context, data dto.ProductRequest) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, data dto.ProductUpdateRequest) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) (err error)
	ConsumeEvents()
}

type CartService interface {
	CreateCart(ctx context.Context) (domain.Cart, error)
	GetCartByID(ctx context.Context, id string) (domain.Cart, error)
	GetCartDetail(ctx context.Context, id string) (dto.CartDetailResponse, error)
	AddProductToCart(ctx context.Context, cartID string, productID string, quantity int64) (domain.Cart, error)
	RemoveProductFromCart(ctx context.Context, cartID string, productID string) (domain.Cart, error)
	ReplaceCartItems(ctx context.Context, cartID string, items []dto.CartItemRequest) (domain.Cart, error)
	SetCartItemQuantity(ctx context.Context, cartID string, productID string, quantity int64) (domain.Cart, error)
	ClearCart(ctx context.Context, cartID string) (domain.Cart, error)
	DeleteCart(ctx context.Context, cartID string) (err error)
}

// EventPublisher pushes serialized catalog events to the message broker.
type EventPublisher interface {
	Publish(msg []byte) error
}
