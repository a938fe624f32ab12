// Package importer loads shop price lists from YAML files. One file
// describes one shop: its categories and the goods it offers, with
// per-shop prices, stock and free-form parameters.
package importer

import (
	"context"
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Timons172/Orders-backend-app/internal/models"
	"github.com/Timons172/Orders-backend-app/internal/store"
)

// File mirrors the YAML price-list layout. Goods reference categories
// by the file-local category id.
type File struct {
	Shop       string         `yaml:"shop"`
	URL        string         `yaml:"url"`
	Categories []FileCategory `yaml:"categories"`
	Goods      []FileGood     `yaml:"goods"`
}

type FileCategory struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

type FileGood struct {
	ID         int64                  `yaml:"id"`
	Category   int64                  `yaml:"category"`
	Name       string                 `yaml:"name"`
	Image      string                 `yaml:"image"`
	Price      decimal.Decimal        `yaml:"price"`
	PriceRRC   decimal.Decimal        `yaml:"price_rrc"`
	Quantity   int                    `yaml:"quantity"`
	Parameters map[string]interface{} `yaml:"parameters"`
}

// Parse decodes one price-list file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse price list: %w", err)
	}
	if f.Shop == "" {
		return nil, fmt.Errorf("parse price list: missing shop name")
	}
	return &f, nil
}

// ThumbnailWarmer pre-renders images for imported products.
type ThumbnailWarmer interface {
	WarmThumbnails(entity string, id int64, field string)
}

// Importer validates parsed files and persists them through the
// store.
type Importer struct {
	store  store.CatalogStore
	warmer ThumbnailWarmer
	logger *zap.Logger
}

func New(st store.CatalogStore, warmer ThumbnailWarmer, logger *zap.Logger) *Importer {
	return &Importer{store: st, warmer: warmer, logger: logger}
}

// Run imports one file. Goods referencing a category id the file does
// not declare are skipped with a warning; everything else is applied
// atomically, updating listings that already exist for the shop.
func (im *Importer) Run(ctx context.Context, data []byte) (*models.ImportResult, error) {
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}

	categories := make(map[int64]string, len(f.Categories))
	names := make([]string, 0, len(f.Categories))
	for _, c := range f.Categories {
		categories[c.ID] = c.Name
		names = append(names, c.Name)
	}

	snap := &models.CatalogImport{
		ShopName:   f.Shop,
		ShopURL:    f.URL,
		Categories: names,
	}
	skipped := 0
	for _, g := range f.Goods {
		categoryName, ok := categories[g.Category]
		if !ok {
			skipped++
			im.logger.Warn("good references unknown category, skipping",
				zap.String("good", g.Name),
				zap.Int64("category", g.Category))
			continue
		}
		snap.Goods = append(snap.Goods, models.CatalogGood{
			ExternalID: g.ID,
			Category:   categoryName,
			Name:       g.Name,
			Image:      g.Image,
			Quantity:   g.Quantity,
			Price:      g.Price,
			PriceRRC:   g.PriceRRC,
			Parameters: parameters(g.Parameters),
		})
	}

	res, err := im.store.ImportCatalog(ctx, snap)
	if err != nil {
		return nil, err
	}

	// Thumbnails warm asynchronously for goods that brought an image.
	if im.warmer != nil {
		for _, productID := range res.ImageProducts {
			im.warmer.WarmThumbnails("product", productID, "image")
		}
	}

	im.logger.Info("price list imported",
		zap.String("shop", f.Shop),
		zap.Int64("shop_id", res.ShopID),
		zap.Int("categories", res.Categories),
		zap.Int("new_products", res.Products),
		zap.Int("listings", res.Listings),
		zap.Int("skipped", skipped))
	return res, nil
}

// parameters flattens the YAML map into sorted name/value pairs so
// imports are deterministic.
func parameters(raw map[string]interface{}) []models.ListingParameter {
	params := make([]models.ListingParameter, 0, len(raw))
	for name, value := range raw {
		params = append(params, models.ListingParameter{Name: name, Value: fmt.Sprint(value)})
	}
	sort.Slice(params, func(i, j int) bool { return params[i].Name < params[j].Name })
	return params
}
