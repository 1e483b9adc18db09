package catalog

import (
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/lavibaby/shop/internal/models"
)

// Catalog keeps the purchasable product list in durable local storage. Every
// mutation is written through; a store that cannot be read falls back to the
// built-in seed list instead of surfacing the corruption to callers.
type Catalog struct {
	db  *gorm.DB
	log *slog.Logger
}

func New(db *gorm.DB, log *slog.Logger) (*Catalog, error) {
	if log == nil {
		log = slog.Default()
	}
	c := &Catalog{db: db, log: log}

	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		c.log.Warn("catalog unreadable, reseeding", "err", err)
		if err := c.reseed(); err != nil {
			return nil, err
		}
		return c, nil
	}
	if count == 0 {
		if err := c.reseed(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) reseed() error {
	return c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.Product{}).Error; err != nil {
			return fmt.Errorf("catalog reset: %w", err)
		}
		if err := tx.Create(seedProducts()).Error; err != nil {
			return fmt.Errorf("catalog seed: %w", err)
		}
		return nil
	})
}

// Products returns the full listing. A corrupt store is reseeded and the seed
// list returned; callers never see the failure.
func (c *Catalog) Products() []models.Product {
	var items []models.Product
	if err := c.db.Order("id ASC").Find(&items).Error; err != nil {
		c.log.Warn("catalog read failed, falling back to seed", "err", err)
		if err := c.reseed(); err != nil {
			c.log.Error("catalog reseed failed", "err", err)
		}
		return seedProducts()
	}
	return items
}

// AddProduct assigns the next identifier (max existing + 1, or 1 on an empty
// catalog) and persists the product.
func (c *Catalog) AddProduct(p models.Product) (models.Product, error) {
	err := c.db.Transaction(func(tx *gorm.DB) error {
		var maxID int
		row := tx.Model(&models.Product{}).Select("COALESCE(MAX(id), 0)").Row()
		if err := row.Scan(&maxID); err != nil {
			return err
		}
		p.ID = maxID + 1
		return tx.Create(&p).Error
	})
	if err != nil {
		return models.Product{}, fmt.Errorf("catalog add: %w", err)
	}
	return p, nil
}

// ProductPatch carries the fields of a partial update; nil fields are left
// untouched.
type ProductPatch struct {
	Name          *string   `json:"name"`
	Price         *float64  `json:"price"`
	OriginalPrice *float64  `json:"originalPrice"`
	Image         *string   `json:"image"`
	Rating        *int      `json:"rating"`
	Badge         *string   `json:"badge"`
	BadgeColor    *string   `json:"badgeColor"`
	Description   *string   `json:"description"`
	Sizes         *[]string `json:"sizes"`
	Colors        *[]string `json:"colors"`
	Category      *string   `json:"category"`
	InStock       *bool     `json:"inStock"`
}

func (p *ProductPatch) apply(dst *models.Product) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.OriginalPrice != nil {
		dst.OriginalPrice = *p.OriginalPrice
	}
	if p.Image != nil {
		dst.Image = *p.Image
	}
	if p.Rating != nil {
		dst.Rating = *p.Rating
	}
	if p.Badge != nil {
		dst.Badge = *p.Badge
	}
	if p.BadgeColor != nil {
		dst.BadgeColor = *p.BadgeColor
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Sizes != nil {
		dst.Sizes = *p.Sizes
	}
	if p.Colors != nil {
		dst.Colors = *p.Colors
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.InStock != nil {
		dst.InStock = *p.InStock
	}
}

// UpdateProduct merges the patch into the matching product. Unknown ids are a
// no-op, mirroring the listing semantics.
func (c *Catalog) UpdateProduct(id int, patch ProductPatch) (*models.Product, error) {
	var prod models.Product
	if err := c.db.First(&prod, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog update: %w", err)
	}

	patch.apply(&prod)
	if err := c.db.Save(&prod).Error; err != nil {
		return nil, fmt.Errorf("catalog update: %w", err)
	}
	return &prod, nil
}

// DeleteProduct removes the matching product; unknown ids are a no-op.
func (c *Catalog) DeleteProduct(id int) error {
	if err := c.db.Delete(&models.Product{}, id).Error; err != nil {
		return fmt.Errorf("catalog delete: %w", err)
	}
	return nil
}

// ProductByID returns nil when the id is not in the catalog.
func (c *Catalog) ProductByID(id int) (*models.Product, error) {
	var prod models.Product
	if err := c.db.First(&prod, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog lookup: %w", err)
	}
	return &prod, nil
}

// ProductsByCategory matches the category key case-insensitively.
func (c *Catalog) ProductsByCategory(category string) ([]models.Product, error) {
	var items []models.Product
	if err := c.db.
		Where("LOWER(category) = LOWER(?)", category).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("catalog filter: %w", err)
	}
	return items, nil
}
