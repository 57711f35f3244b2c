package repository

import (
	"context"

	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/pkg/sequence"
	"gorm.io/gorm"
)

const maxCounterRetries = 3

type counterRepository struct {
	db *gorm.DB
}

// NewCounterRepository creates a document number counter backed by the
// document_counters table
func NewCounterRepository(db *gorm.DB) domainRepo.CounterRepository {
	return &counterRepository{db: db}
}

func (r *counterRepository) Next(ctx context.Context, prefix string, source domainRepo.NumberSource) (string, error) {
	hotel, err := currentHotel(ctx)
	if err != nil {
		return "", err
	}

	var next int64
	for attempt := 0; attempt < maxCounterRetries; attempt++ {
		err = conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
			var counter entity.DocumentCounter
			res := tx.Clauses(forUpdate()).
				Where("hotel_id = ? AND prefix = ?", hotel, prefix).
				Limit(1).
				Find(&counter)
			if res.Error != nil {
				return res.Error
			}

			if res.RowsAffected == 0 {
				// First number under this prefix: continue from whatever was issued before.
				var issued []string
				if err := tx.Table(source.Table).
					Where("hotel_id = ? AND "+source.Column+" LIKE ?", hotel, prefix+"-%").
					Pluck(source.Column, &issued).Error; err != nil {
					return err
				}
				counter = entity.DocumentCounter{
					HotelID: hotel,
					Prefix:  prefix,
					Value:   sequence.Max(issued, prefix),
				}
				if err := tx.Create(&counter).Error; err != nil {
					return err
				}
			}

			next = counter.Value + 1
			return tx.Model(&entity.DocumentCounter{}).
				Where("hotel_id = ? AND prefix = ?", hotel, prefix).
				Update("value", next).Error
		})
		if err == nil {
			return sequence.Format(prefix, next), nil
		}
		// Two requests seeded the same counter; the loser retries and locks the winner's row.
		if !isUniqueViolation(err) {
			return "", err
		}
	}
	return "", err
}
