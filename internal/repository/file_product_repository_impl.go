package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/storehub/commerce-service/internal/domain"
	pkgdto "github.com/storehub/commerce-service/pkg/dto"
	"github.com/storehub/commerce-service/pkg/errs"
	"github.com/storehub/commerce-service/pkg/pagination"
)

// FileProductRepository persists the whole catalog as one JSON array. Every
// mutation reads the full collection, applies the change in memory and
// rewrites the file through a rename, so a partially written file is never
// visible. The mutex serializes mutations inside this process only: the
// driver is not safe under multiple processes writing the same file, which
// is a documented limitation of the file driver, not something this type
// tries to fix.
type FileProductRepository struct {
	path string
	mu   sync.Mutex
}

func CreateNewFileProductRepository(dataDir string) ProductRepository {
	return &FileProductRepository{path: filepath.Join(dataDir, "products.json")}
}

func (r *FileProductRepository) readProducts(ctx context.Context) ([]domain.Product, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Product{}, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "readProducts").Msg("")
		return nil, err
	}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return []domain.Product{}, nil
	}

	var products []domain.Product
	if err := json.Unmarshal([]byte(trimmed), &products); err != nil {
		// Corrupt content degrades to an empty collection instead of
		// failing every caller.
		log.Ctx(ctx).Warn().Err(err).Str("component", "readProducts").Msg("corrupt products file, treating as empty")
		return []domain.Product{}, nil
	}

	return products, nil
}

func (r *FileProductRepository) saveProducts(ctx context.Context, products []domain.Product) error {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "saveProducts").Msg("")
		return err
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "saveProducts").Msg("")
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "saveProducts").Msg("")
		return err
	}

	return os.Rename(tmp, r.path)
}

func (r *FileProductRepository) GetProducts(ctx context.Context, param pkgdto.ProductFilter) (pagination.Page[domain.Product], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.readProducts(ctx)
	if err != nil {
		// Listing degrades to an empty page on read failure.
		return pagination.Paginate([]domain.Product{}, param.Page, param.Limit), nil
	}

	filtered := filterProducts(products, param)
	sortProducts(filtered, param.Sort)

	return pagination.Paginate(filtered, param.Page, param.Limit), nil
}

func (r *FileProductRepository) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.readProducts(ctx)
}

func (r *FileProductRepository) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.readProducts(ctx)
	if err != nil {
		return
	}

	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}

	return product, errs.ErrNotFound
}

func (r *FileProductRepository) AddProduct(ctx context.Context, data domain.Product) (product domain.Product, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.readProducts(ctx)
	if err != nil {
		return
	}

	for _, p := range products {
		if p.Code == data.Code {
			return product, errs.ErrConflict
		}
	}

	data.ID = uuid.NewString()
	if data.Thumbnails == nil {
		data.Thumbnails = []string{}
	}

	products = append(products, data)
	if err = r.saveProducts(ctx, products); err != nil {
		return
	}

	return data, nil
}

func (r *FileProductRepository) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (product domain.Product, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.readProducts(ctx)
	if err != nil {
		return
	}

	index := -1
	for i := range products {
		if products[i].ID == id {
			index = i
			break
		}
	}

	if index == -1 {
		return product, errs.ErrNotFound
	}

	if patch.Code != nil && *patch.Code != products[index].Code {
		for _, p := range products {
			if p.Code == *patch.Code {
				return product, errs.ErrConflict
			}
		}
	}

	updated := products[index]
	patch.Apply(&updated)
	products[index] = updated

	if err = r.saveProducts(ctx, products); err != nil {
		return
	}

	return updated, nil
}

func (r *FileProductRepository) DeleteProduct(ctx context.Context, id string) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.readProducts(ctx)
	if err != nil {
		return
	}

	remaining := products[:0:0]
	for _, p := range products {
		if p.ID != id {
			remaining = append(remaining, p)
		}
	}

	if len(remaining) == len(products) {
		return errs.ErrNotFound
	}

	return r.saveProducts(ctx, remaining)
}

func filterProducts(products []domain.Product, param pkgdto.ProductFilter) []domain.Product {
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if param.Category != "" && p.Category != param.Category {
			continue
		}
		if param.Status != nil && p.Status != *param.Status {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// sortProducts orders by price when asked. The sort is stable so equal
// prices keep their insertion order and repeated queries stay deterministic.
func sortProducts(products []domain.Product, sortOrder string) {
	switch sortOrder {
	case "asc":
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case "desc":
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	}
}
