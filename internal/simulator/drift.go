package simulator

import (
	"context"
	"fmt"

	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	driftPrice = iota
	driftDropOption
	driftTightenQuantity
	driftRequiredGroup
	driftRemoveItem
	driftKinds
)

// applyDrift changes a share of the catalog the way a menu service would
// between two visits of the same customer and rolls the sold-out list.
func (s *Simulator) applyDrift(ctx context.Context) error {
	items, err := s.catalog.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("error loading catalog: %w", err)
	}

	changes := 0
	for _, item := range items {
		if s.rng.Float64() >= s.cfg.DriftRate {
			continue
		}
		kind := s.rng.Intn(driftKinds)
		if kind == driftRemoveItem {
			if err := s.catalog.Delete(ctx, item.ID); err != nil {
				return fmt.Errorf("error removing item %d: %w", item.ID, err)
			}
		} else if err := s.catalog.Update(ctx, s.driftItem(item, kind)); err != nil {
			return fmt.Errorf("error updating item %d: %w", item.ID, err)
		}
		changes++
	}

	var soldOut []int
	for _, item := range items {
		if s.rng.Float64() < s.cfg.SoldOutRate {
			soldOut = append(soldOut, item.ID)
		}
		for _, group := range item.OptionGroups {
			for _, option := range group.OptionItems {
				if s.rng.Float64() < s.cfg.SoldOutRate/2 {
					soldOut = append(soldOut, option.ID)
				}
			}
		}
	}
	if err := s.catalog.SetSoldOut(ctx, soldOut); err != nil {
		return fmt.Errorf("error updating sold out items: %w", err)
	}

	s.Stats.CatalogChanges += changes
	s.logger.Debug("catalog drifted",
		zap.Time("at", s.CurrentTime),
		zap.Int("changed", changes),
		zap.Int("sold_out", len(soldOut)))
	return nil
}

// driftItem returns a changed copy of item.
func (s *Simulator) driftItem(item models.CatalogItem, kind int) models.CatalogItem {
	changed := item.Clone()
	switch kind {
	case driftPrice:
		factor := decimal.NewFromFloat(0.9 + s.rng.Float64()*0.3)
		changed.Price = changed.Price.Mul(factor).Round(2)
	case driftDropOption:
		for g := range changed.OptionGroups {
			options := changed.OptionGroups[g].OptionItems
			if len(options) > 1 {
				changed.OptionGroups[g].OptionItems = options[:len(options)-1]
				return changed
			}
		}
		changed.Price = changed.Price.Add(decimal.New(50, -2))
	case driftTightenQuantity:
		changed.MaxQuantity = max(changed.MinQuantity, changed.Increment, 1)
	case driftRequiredGroup:
		changed.OptionGroups = append(changed.OptionGroups, s.factory.CreateRequiredGroup())
	}
	return changed
}
