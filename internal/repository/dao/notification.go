package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/errs"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

type NotificationDAO interface {
	// Create 创建单条台账记录
	Create(ctx context.Context, data Notification) (Notification, error)
	// GetByID 根据ID查询台账
	GetByID(ctx context.Context, id uint64) (Notification, error)
	// ListByUserID 查询某用户的通知历史
	ListByUserID(ctx context.Context, userID int64, offset, limit int) ([]Notification, error)
	// MarkSent 标记投递成功并记录成功时间
	MarkSent(ctx context.Context, id uint64, sentAt int64) error
	// MarkFailed 标记终态失败
	MarkFailed(ctx context.Context, id uint64) error
}

// Notification 通知台账表
type Notification struct {
	ID      uint64        `gorm:"primaryKey;comment:'与投递任务相同的雪花ID'"`
	UserID  int64         `gorm:"type:BIGINT;NOT NULL;index:idx_user_id;comment:'接收者用户ID'"`
	Channel string        `gorm:"type:ENUM('PUSH','WHATSAPP','EMAIL');NOT NULL;comment:'渠道'"`
	Message string        `gorm:"type:TEXT;NOT NULL;comment:'正文'"`
	Status  string        `gorm:"type:ENUM('PENDING','SENT','FAILED');DEFAULT:'PENDING';comment:'台账状态'"`
	SentAt  sql.NullInt64 `gorm:"comment:'投递成功时间'"`
	Ctime   int64
	Utime   int64
}

type notificationDAO struct {
	db *egorm.Component
}

func NewNotificationDAO(db *egorm.Component) NotificationDAO {
	return &notificationDAO{db: db}
}

func (d *notificationDAO) Create(ctx context.Context, data Notification) (Notification, error) {
	now := time.Now().UnixMilli()
	data.Ctime, data.Utime = now, now
	if err := d.db.WithContext(ctx).Create(&data).Error; err != nil {
		return Notification{}, err
	}
	return data, nil
}

func (d *notificationDAO) GetByID(ctx context.Context, id uint64) (Notification, error) {
	var notification Notification
	err := d.db.WithContext(ctx).First(&notification, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Notification{}, fmt.Errorf("%w: id=%d", errs.ErrNotificationNotFound, id)
		}
		return Notification{}, err
	}
	return notification, nil
}

func (d *notificationDAO) ListByUserID(ctx context.Context, userID int64, offset, limit int) ([]Notification, error) {
	var notifications []Notification
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("ctime DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("查询通知历史失败: %w", err)
	}
	return notifications, nil
}

func (d *notificationDAO) MarkSent(ctx context.Context, id uint64, sentAt int64) error {
	return d.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":  "SENT",
			"sent_at": sentAt,
			"utime":   time.Now().UnixMilli(),
		}).Error
}

func (d *notificationDAO) MarkFailed(ctx context.Context, id uint64) error {
	return d.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": "FAILED",
			"utime":  time.Now().UnixMilli(),
		}).Error
}
