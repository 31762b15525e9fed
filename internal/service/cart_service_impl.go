package service

import (
	"context"
	"errors"

	"github.com/storehub/commerce-service/internal/domain"
	"github.com/storehub/commerce-service/internal/dto"
	"github.com/storehub/commerce-service/internal/repository"
	"github.com/storehub/commerce-service/pkg/errs"
)

type CartServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func CreateCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &CartServiceImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *CartServiceImpl) CreateCart(ctx context.Context) (domain.Cart, error) {
	return s.cartRepo.CreateCart(ctx)
}

func (s *CartServiceImpl) GetCartByID(ctx context.Context, id string) (domain.Cart, error) {
	return s.cartRepo.GetCartByID(ctx, id)
}

// GetCartDetail is the opt-in expanded read: each line's product reference
// is resolved against the catalog at read time. A dangling reference turns
// into an unavailable line marker instead of failing the whole read.
func (s *CartServiceImpl) GetCartDetail(ctx context.Context, id string) (detail dto.CartDetailResponse, err error) {
	cart, err := s.cartRepo.GetCartByID(ctx, id)
	if err != nil {
		return
	}

	detail = dto.CartDetailResponse{
		ID:    cart.ID,
		Items: make([]dto.CartDetailItem, 0, len(cart.Items)),
	}

	for _, item := range cart.Items {
		line := dto.CartDetailItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}

		product, lookupErr := s.productRepo.GetProductByID(ctx, item.ProductID)
		if lookupErr != nil {
			if !errors.Is(lookupErr, errs.ErrNotFound) {
				return dto.CartDetailResponse{}, lookupErr
			}
		} else {
			line.Available = true
			line.Product = &dto.ProductSummary{
				ID:          product.ID,
				Title:       product.Title,
				Description: product.Description,
				Price:       product.Price,
			}
		}

		detail.Items = append(detail.Items, line)
	}

	return detail, nil
}

func (s *CartServiceImpl) AddProductToCart(ctx context.Context, cartID string, productID string, quantity int64) (cart domain.Cart, err error) {
	if productID == "" || quantity < 1 {
		return cart, errs.ErrValidation
	}

	return s.cartRepo.AddProductToCart(ctx, cartID, productID, quantity)
}

func (s *CartServiceImpl) RemoveProductFromCart(ctx context.Context, cartID string, productID string) (domain.Cart, error) {
	return s.cartRepo.RemoveProductFromCart(ctx, cartID, productID)
}

func (s *CartServiceImpl) ReplaceCartItems(ctx context.Context, cartID string, items []dto.CartItemRequest) (cart domain.Cart, err error) {
	replacement := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		replacement = append(replacement, domain.CartItem{
			ProductID: item.Product,
			Quantity:  item.Quantity,
		})
	}

	// All-or-nothing shape validation before anything is written.
	scratch := domain.Cart{}
	if err = scratch.ReplaceItems(replacement); err != nil {
		return
	}

	return s.cartRepo.ReplaceCartItems(ctx, cartID, replacement)
}

func (s *CartServiceImpl) SetCartItemQuantity(ctx context.Context, cartID string, productID string, quantity int64) (cart domain.Cart, err error) {
	if quantity < 1 {
		return cart, errs.ErrValidation
	}

	return s.cartRepo.SetCartItemQuantity(ctx, cartID, productID, quantity)
}

func (s *CartServiceImpl) ClearCart(ctx context.Context, cartID string) (domain.Cart, error) {
	return s.cartRepo.ClearCart(ctx, cartID)
}

func (s *CartServiceImpl) DeleteCart(ctx context.Context, cartID string) error {
	return s.cartRepo.DeleteCart(ctx, cartID)
}
