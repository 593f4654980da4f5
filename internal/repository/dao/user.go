package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gitee.com/aquaflow/purifier-notify/internal/errs"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

type UserContactDAO interface {
	// GetByUserID 查询用户各渠道的联系方式
	GetByUserID(ctx context.Context, userID int64) (UserContact, error)
	// ListAllUserIDs 广播时拉取全量用户ID
	ListAllUserIDs(ctx context.Context) ([]int64, error)
}

// UserContact 用户联系方式表，由账号子系统写入，这里只读
type UserContact struct {
	UserID         int64          `gorm:"primaryKey;comment:'用户ID'"`
	DeviceToken    sql.NullString `gorm:"type:VARCHAR(512);comment:'推送设备token'"`
	WhatsAppNumber sql.NullString `gorm:"column:whatsapp_number;type:VARCHAR(32);comment:'WhatsApp号码'"`
	Email          sql.NullString `gorm:"type:VARCHAR(256);comment:'邮箱'"`
	Ctime          int64
	Utime          int64
}

func (UserContact) TableName() string {
	return "user_contacts"
}

type userContactDAO struct {
	db *egorm.Component
}

func NewUserContactDAO(db *egorm.Component) UserContactDAO {
	return &userContactDAO{db: db}
}

func (d *userContactDAO) GetByUserID(ctx context.Context, userID int64) (UserContact, error) {
	var contact UserContact
	err := d.db.WithContext(ctx).First(&contact, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserContact{}, fmt.Errorf("%w: userID=%d", errs.ErrRecipientNotFound, userID)
		}
		return UserContact{}, err
	}
	return contact, nil
}

func (d *userContactDAO) ListAllUserIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := d.db.WithContext(ctx).Model(&UserContact{}).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("查询用户列表失败: %w", err)
	}
	return ids, nil
}
