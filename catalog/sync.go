package catalog

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bitloom-dev/storefront-api/models"
)

// Syncer refreshes the local catalog from the external feed, at most once
// per interval. Reads that land inside the interval serve the cached
// catalog without a network round trip.
type Syncer struct {
	db       *gorm.DB
	feed     *FeedClient
	interval time.Duration

	mu       sync.Mutex
	lastSync time.Time
}

// NewSyncer wires the refresh policy. A nil feed means the catalog is
// local-only and Refresh becomes a no-op.
func NewSyncer(db *gorm.DB, feed *FeedClient, interval time.Duration) *Syncer {
	return &Syncer{db: db, feed: feed, interval: interval}
}

// Refresh pulls the feed and upserts products by name, unless the last
// refresh is still fresh. A feed failure leaves the catalog unchanged.
func (s *Syncer) Refresh() error {
	if s == nil || s.feed == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lastSync.IsZero() && time.Since(s.lastSync) < s.interval {
		return nil
	}

	feedProducts, err := s.feed.ListProducts()
	if err != nil {
		return err
	}

	for _, fp := range feedProducts {
		if err := s.upsert(fp); err != nil {
			return err
		}
	}

	s.lastSync = time.Now()
	return nil
}

func (s *Syncer) upsert(fp FeedProduct) error {
	price := decimal.Zero
	if fp.DefaultPrice != nil && fp.DefaultPrice.UnitAmount != nil {
		// Feed prices are in cents
		price = decimal.New(*fp.DefaultPrice.UnitAmount, -2)
	}

	var imageURL *string
	if len(fp.Images) > 0 {
		imageURL = &fp.Images[0]
	}

	var existing models.Product
	err := s.db.Where("name = ?", fp.Name).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&models.Product{
			Name:        fp.Name,
			Price:       price,
			ImageURL:    imageURL,
			Available:   fp.Active,
			Description: fp.Description,
		}).Error
	}
	if err != nil {
		return err
	}

	return s.db.Model(&existing).Updates(map[string]interface{}{
		"price":       price,
		"available":   fp.Active,
		"image_url":   imageURL,
		"description": fp.Description,
	}).Error
}
