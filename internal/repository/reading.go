package repository

import (
	"context"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"gitee.com/aquaflow/purifier-notify/internal/repository/dao"
)

type TDSReadingRepository interface {
	Create(ctx context.Context, reading domain.TDSReading) (domain.TDSReading, error)
}

type tdsReadingRepository struct {
	dao dao.TDSReadingDAO
}

func NewTDSReadingRepository(d dao.TDSReadingDAO) TDSReadingRepository {
	return &tdsReadingRepository{dao: d}
}

func (r *tdsReadingRepository) Create(ctx context.Context, reading domain.TDSReading) (domain.TDSReading, error) {
	created, err := r.dao.Create(ctx, dao.TDSReading{
		ID:         reading.ID,
		UserID:     reading.UserID,
		DeviceID:   reading.DeviceID,
		Value:      reading.Value,
		RecordedAt: reading.RecordedAt.UnixMilli(),
	})
	if err != nil {
		return domain.TDSReading{}, err
	}
	reading.ID = created.ID
	reading.RecordedAt = time.UnixMilli(created.RecordedAt)
	return reading, nil
}
