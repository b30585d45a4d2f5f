// Package jsonfile persists products as a single JSON array on disk.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gestionstock/product-api/internal/core/domain"
	"github.com/gestionstock/product-api/internal/infrastructure/db/memory"
)

// Open loads path into an in-memory product repository that rewrites the
// file after every successful mutation. A missing file starts empty.
func Open(path string) (*memory.ProductRepository, error) {
	products, err := load(path)
	if err != nil {
		return nil, err
	}
	return memory.NewProductRepository(products...).WithPersist(writer(path)), nil
}

func load(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read products file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode products file %s: %w", path, err)
	}

	seen := make(map[int]struct{}, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("products file %s: duplicate id %d", path, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return products, nil
}

// writer replaces the file through a temp file and rename so readers never
// observe a partial write.
func writer(path string) memory.PersistFunc {
	return func(products []domain.Product) error {
		data, err := json.MarshalIndent(products, "", "  ")
		if err != nil {
			return fmt.Errorf("encode products: %w", err)
		}

		tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
		if err != nil {
			return fmt.Errorf("create temp file: %w", err)
		}
		defer os.Remove(tmp.Name())

		if _, err := tmp.Write(data); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("write temp file: %w", err)
		}
		if err := tmp.Sync(); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("sync temp file: %w", err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("close temp file: %w", err)
		}
		if err := os.Rename(tmp.Name(), path); err != nil {
			return fmt.Errorf("replace products file: %w", err)
		}
		return nil
	}
}
