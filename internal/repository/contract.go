package repository

import (
	"context"

	"github.com/storehub/commerce-service/internal/domain"
	pkgdto "github.com/storehub/commerce-service/pkg/dto"
	"github.com/storehub/commerce-service/pkg/pagination"
)

// ProductRepository is the catalog store contract. The file and mongo
// implementations are interchangeable: same errors, same page shape, same
// uniqueness rule on the product code.
type ProductRepository interface {
	GetProducts(ctx context.Context, param pkgdto.ProductFilter) (pagination.Page[domain.Product], error)
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	AddProduct(ctx context.Context, data domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) (err error)
}

// CartRepository is the cart store contract. Both implementations share the
// merge and idempotence rules of domain.Cart; only the durability mechanism
// differs.
type CartRepository interface {
	CreateCart(ctx context.Context) (domain.Cart, error)
	GetCartByID(ctx context.Context, id string) (domain.Cart, error)
	AddProductToCart(ctx context.Context, cartID string, productID string, quantity int64) (domain.Cart, error)
	RemoveProductFromCart(ctx context.Context, cartID string, productID string) (domain.Cart, error)
	ReplaceCartItems(ctx context.Context, cartID string, items []domain.CartItem) (domain.Cart, error)
	SetCartItemQuantity(ctx context.Context, cartID string, productID string, quantity int64) (domain.Cart, error)
	ClearCart(ctx context.Context, cartID string) (domain.Cart, error)
	DeleteCart(ctx context.Context, cartID string) (err error)
}
