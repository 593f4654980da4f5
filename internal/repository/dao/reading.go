package dao

import (
	"context"
	"time"

	"github.com/ego-component/egorm"
)

type TDSReadingDAO interface {
	Create(ctx context.Context, data TDSReading) (TDSReading, error)
}

// TDSReading TDS检测值表
type TDSReading struct {
	ID         uint64 `gorm:"primaryKey;comment:'雪花算法ID'"`
	UserID     int64  `gorm:"type:BIGINT;NOT NULL;index:idx_user_id;comment:'设备归属用户'"`
	DeviceID   string `gorm:"type:VARCHAR(64);NOT NULL;comment:'净水器设备编号'"`
	Value      int    `gorm:"type:INT;NOT NULL;comment:'TDS读数(ppm)'"`
	RecordedAt int64  `gorm:"NOT NULL;comment:'上报时间'"`
	Ctime      int64
}

func (TDSReading) TableName() string {
	return "tds_readings"
}

type tdsReadingDAO struct {
	db *egorm.Component
}

func NewTDSReadingDAO(db *egorm.Component) TDSReadingDAO {
	return &tdsReadingDAO{db: db}
}

func (d *tdsReadingDAO) Create(ctx context.Context, data TDSReading) (TDSReading, error) {
	data.Ctime = time.Now().UnixMilli()
	if err := d.db.WithContext(ctx).Create(&data).Error; err != nil {
		return TDSReading{}, err
	}
	return data, nil
}
