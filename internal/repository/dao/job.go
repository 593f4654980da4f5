package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/errs"
	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type DeliveryJobDAO interface {
	// Create 创建投递任务记录
	Create(ctx context.Context, data DeliveryJob) (DeliveryJob, error)
	// GetByID 根据ID查询任务
	GetByID(ctx context.Context, id uint64) (DeliveryJob, error)
	// ClaimReady 认领一条到期任务：PENDING/FAILED 且 next_attempt_at 已到，
	// CAS 置为 PROCESSING，保证同一任务同一时刻只被一个 worker 持有
	ClaimReady(ctx context.Context) (DeliveryJob, error)
	// MarkDelivered 标记投递成功
	MarkDelivered(ctx context.Context, id uint64) error
	// MarkFailedForRetry 记一次失败并排期下一次投递
	MarkFailedForRetry(ctx context.Context, id uint64, attempt int32, nextAttemptAt int64) error
	// MarkDead 标记终态失败
	MarkDead(ctx context.Context, id uint64, attempt int32) error
	// RequeueStuckProcessing 把认领后长时间未完成的任务重新置为 PENDING
	RequeueStuckProcessing(ctx context.Context, batchSize int, before int64) (int64, error)
}

// DeliveryJob 投递任务表，队列的持久化载体
type DeliveryJob struct {
	ID              uint64 `gorm:"primaryKey;comment:'雪花算法ID'"`
	Channel         string `gorm:"type:ENUM('PUSH','WHATSAPP','EMAIL');NOT NULL;comment:'投递渠道'"`
	RecipientUserID int64  `gorm:"type:BIGINT;NOT NULL;index:idx_recipient;comment:'接收者用户ID'"`
	Title           string `gorm:"type:VARCHAR(256);comment:'标题，PUSH/EMAIL 使用'"`
	Message         string `gorm:"type:TEXT;NOT NULL;comment:'正文'"`
	Attempt         int32  `gorm:"type:INT;NOT NULL;DEFAULT:0;comment:'已尝试次数'"`
	MaxAttempts     int32  `gorm:"type:INT;NOT NULL;DEFAULT:3;comment:'重试上限'"`
	Status          string `gorm:"type:ENUM('PENDING','PROCESSING','DELIVERED','FAILED','DEAD');DEFAULT:'PENDING';index:idx_status_next,priority:1;comment:'任务状态'"`
	NextAttemptAt   int64  `gorm:"index:idx_status_next,priority:2;comment:'下一次可投递时间'"`
	Version         int    `gorm:"type:INT;NOT NULL;DEFAULT:1;comment:'版本号，用于CAS认领'"`
	Ctime           int64
	Utime           int64
}

type deliveryJobDAO struct {
	db *egorm.Component
}

func NewDeliveryJobDAO(db *egorm.Component) DeliveryJobDAO {
	return &deliveryJobDAO{db: db}
}

func (d *deliveryJobDAO) Create(ctx context.Context, data DeliveryJob) (DeliveryJob, error) {
	now := time.Now().UnixMilli()
	data.Ctime, data.Utime = now, now
	data.Version = 1
	if err := d.db.WithContext(ctx).Create(&data).Error; err != nil {
		if d.isUniqueConstraintError(err) {
			return DeliveryJob{}, fmt.Errorf("%w: id = %d", errs.ErrInvalidParameter, data.ID)
		}
		return DeliveryJob{}, err
	}
	return data, nil
}

// isUniqueConstraintError 检查是否是唯一索引冲突错误
func (d *deliveryJobDAO) isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	me := new(mysql.MySQLError)
	if ok := errors.As(err, &me); ok {
		const uniqueIndexErrNo uint16 = 1062
		return me.Number == uniqueIndexErrNo
	}
	return false
}

func (d *deliveryJobDAO) GetByID(ctx context.Context, id uint64) (DeliveryJob, error) {
	var job DeliveryJob
	err := d.db.WithContext(ctx).First(&job, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeliveryJob{}, fmt.Errorf("%w: id=%d", errs.ErrJobNotFound, id)
		}
		return DeliveryJob{}, err
	}
	return job, nil
}

func (d *deliveryJobDAO) ClaimReady(ctx context.Context) (DeliveryJob, error) {
	// 一次取一小批候选，逐个 CAS，抢不到说明被其他 worker 拿走了
	const candidateSize = 8
	now := time.Now().UnixMilli()

	var candidates []DeliveryJob
	err := d.db.WithContext(ctx).
		Where("status IN ? AND next_attempt_at <= ?",
			[]string{"PENDING", "FAILED"}, now).
		Order("next_attempt_at ASC").
		Limit(candidateSize).
		Find(&candidates).Error
	if err != nil {
		return DeliveryJob{}, err
	}

	for i := range candidates {
		c := candidates[i]
		res := d.db.WithContext(ctx).Model(&DeliveryJob{}).
			Where("id = ? AND version = ?", c.ID, c.Version).
			Updates(map[string]any{
				"status":  "PROCESSING",
				"version": gorm.Expr("version + 1"),
				"utime":   now,
			})
		if res.Error != nil {
			return DeliveryJob{}, res.Error
		}
		if res.RowsAffected == 1 {
			c.Status = "PROCESSING"
			c.Version++
			return c, nil
		}
	}
	return DeliveryJob{}, fmt.Errorf("%w", errs.ErrNoPendingJob)
}

func (d *deliveryJobDAO) MarkDelivered(ctx context.Context, id uint64) error {
	return d.db.WithContext(ctx).Model(&DeliveryJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":  "DELIVERED",
			"version": gorm.Expr("version + 1"),
			"utime":   time.Now().UnixMilli(),
		}).Error
}

func (d *deliveryJobDAO) MarkFailedForRetry(ctx context.Context, id uint64, attempt int32, nextAttemptAt int64) error {
	return d.db.WithContext(ctx).Model(&DeliveryJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":          "FAILED",
			"attempt":         attempt,
			"next_attempt_at": nextAttemptAt,
			"version":         gorm.Expr("version + 1"),
			"utime":           time.Now().UnixMilli(),
		}).Error
}

func (d *deliveryJobDAO) MarkDead(ctx context.Context, id uint64, attempt int32) error {
	return d.db.WithContext(ctx).Model(&DeliveryJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":  "DEAD",
			"attempt": attempt,
			"version": gorm.Expr("version + 1"),
			"utime":   time.Now().UnixMilli(),
		}).Error
}

func (d *deliveryJobDAO) RequeueStuckProcessing(ctx context.Context, batchSize int, before int64) (int64, error) {
	// MySQL 不支持 IN 子查询里带 LIMIT，先取出ID再更新
	var ids []uint64
	err := d.db.WithContext(ctx).Model(&DeliveryJob{}).
		Where("status = ? AND utime <= ?", "PROCESSING", before).
		Limit(batchSize).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := d.db.WithContext(ctx).Model(&DeliveryJob{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"status":  "PENDING",
			"version": gorm.Expr("version + 1"),
			"utime":   time.Now().UnixMilli(),
		})
	return res.RowsAffected, res.Error
}
