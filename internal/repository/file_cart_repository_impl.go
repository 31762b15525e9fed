package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/storehub/commerce-service/internal/domain"
	"github.com/storehub/commerce-service/pkg/errs"
)

// FileCartRepository stores all carts as one JSON array with the same
// whole-collection read-modify-write cycle and single-writer limitation as
// the file product driver.
type FileCartRepository struct {
	path string
	mu   sync.Mutex
}

func CreateNewFileCartRepository(dataDir string) CartRepository {
	return &FileCartRepository{path: filepath.Join(dataDir, "carts.json")}
}

func (r *FileCartRepository) readCarts(ctx context.Context) ([]domain.Cart, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Cart{}, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "readCarts").Msg("")
		return nil, err
	}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return []domain.Cart{}, nil
	}

	var carts []domain.Cart
	if err := json.Unmarshal([]byte(trimmed), &carts); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "readCarts").Msg("corrupt carts file, treating as empty")
		return []domain.Cart{}, nil
	}

	return carts, nil
}

func (r *FileCartRepository) saveCarts(ctx context.Context, carts []domain.Cart) error {
	data, err := json.MarshalIndent(carts, "", "  ")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "saveCarts").Msg("")
		return err
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "saveCarts").Msg("")
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "saveCarts").Msg("")
		return err
	}

	return os.Rename(tmp, r.path)
}

// mutateCart loads the collection, applies fn to the cart with the given id
// and rewrites the collection. fn sees a copy; the write happens only when
// fn succeeds.
func (r *FileCartRepository) mutateCart(ctx context.Context, cartID string, fn func(cart *domain.Cart) error) (cart domain.Cart, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	carts, err := r.readCarts(ctx)
	if err != nil {
		return
	}

	index := -1
	for i := range carts {
		if carts[i].ID == cartID {
			index = i
			break
		}
	}

	if index == -1 {
		return cart, errs.ErrNotFound
	}

	updated := carts[index]
	updated.Items = append([]domain.CartItem{}, carts[index].Items...)

	if err = fn(&updated); err != nil {
		return cart, err
	}

	carts[index] = updated
	if err = r.saveCarts(ctx, carts); err != nil {
		return
	}

	return updated, nil
}

func (r *FileCartRepository) CreateCart(ctx context.Context) (cart domain.Cart, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	carts, err := r.readCarts(ctx)
	if err != nil {
		return
	}

	cart = domain.Cart{
		ID:    uuid.NewString(),
		Items: []domain.CartItem{},
	}

	carts = append(carts, cart)
	if err = r.saveCarts(ctx, carts); err != nil {
		return domain.Cart{}, err
	}

	return cart, nil
}

func (r *FileCartRepository) GetCartByID(ctx context.Context, id string) (cart domain.Cart, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	carts, err := r.readCarts(ctx)
	if err != nil {
		return
	}

	for _, c := range carts {
		if c.ID == id {
			return c, nil
		}
	}

	return cart, errs.ErrNotFound
}

func (r *FileCartRepository) AddProductToCart(ctx context.Context, cartID string, productID string, quantity int64) (domain.Cart, error) {
	return r.mutateCart(ctx, cartID, func(cart *domain.Cart) error {
		cart.AddItem(productID, quantity)
		return nil
	})
}

func (r *FileCartRepository) RemoveProductFromCart(ctx context.Context, cartID string, productID string) (domain.Cart, error) {
	return r.mutateCart(ctx, cartID, func(cart *domain.Cart) error {
		cart.RemoveItem(productID)
		return nil
	})
}

func (r *FileCartRepository) ReplaceCartItems(ctx context.Context, cartID string, items []domain.CartItem) (domain.Cart, error) {
	return r.mutateCart(ctx, cartID, func(cart *domain.Cart) error {
		return cart.ReplaceItems(items)
	})
}

func (r *FileCartRepository) SetCartItemQuantity(ctx context.Context, cartID string, productID string, quantity int64) (domain.Cart, error) {
	return r.mutateCart(ctx, cartID, func(cart *domain.Cart) error {
		return cart.SetItemQuantity(productID, quantity)
	})
}

func (r *FileCartRepository) ClearCart(ctx context.Context, cartID string) (domain.Cart, error) {
	return r.mutateCart(ctx, cartID, func(cart *domain.Cart) error {
		cart.Clear()
		return nil
	})
}

func (r *FileCartRepository) DeleteCart(ctx context.Context, cartID string) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	carts, err := r.readCarts(ctx)
	if err != nil {
		return
	}

	remaining := carts[:0:0]
	for _, c := range carts {
		if c.ID != cartID {
			remaining = append(remaining, c)
		}
	}

	if len(remaining) == len(carts) {
		return errs.ErrNotFound
	}

	return r.saveCarts(ctx, remaining)
}
