package repository

import (
	"context"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"gitee.com/aquaflow/purifier-notify/internal/repository/cache"
	"gitee.com/aquaflow/purifier-notify/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
)

// ContactRepository 联系方式读仓库，本地缓存 -> redis -> 数据库逐级回源
type ContactRepository interface {
	GetByUserID(ctx context.Context, userID int64) (domain.UserContact, error)
	// ListAllUserIDs 广播场景下拉取全量用户ID
	ListAllUserIDs(ctx context.Context) ([]int64, error)
}

type contactRepository struct {
	dao        dao.UserContactDAO
	redisCache cache.ContactCache
	localCache cache.ContactCache
	logger     *elog.Component
}

func NewContactRepository(d dao.UserContactDAO, redisCache, localCache cache.ContactCache) ContactRepository {
	return &contactRepository{
		dao:        d,
		redisCache: redisCache,
		localCache: localCache,
		logger:     elog.DefaultLogger,
	}
}

func (r *contactRepository) GetByUserID(ctx context.Context, userID int64) (domain.UserContact, error) {
	contact, err := r.localCache.Get(ctx, userID)
	if err == nil {
		return contact, nil
	}

	contact, err = r.redisCache.Get(ctx, userID)
	if err == nil {
		// 回种本地缓存失败不影响主流程
		if serr := r.localCache.Set(ctx, contact); serr != nil {
			r.logger.Warn("回种本地缓存失败", elog.Int64("userID", userID), elog.FieldErr(serr))
		}
		return contact, nil
	}

	entity, err := r.dao.GetByUserID(ctx, userID)
	if err != nil {
		return domain.UserContact{}, err
	}
	contact = r.toDomain(entity)

	if serr := r.redisCache.Set(ctx, contact); serr != nil {
		r.logger.Warn("回种redis缓存失败", elog.Int64("userID", userID), elog.FieldErr(serr))
	}
	if serr := r.localCache.Set(ctx, contact); serr != nil {
		r.logger.Warn("回种本地缓存失败", elog.Int64("userID", userID), elog.FieldErr(serr))
	}
	return contact, nil
}

func (r *contactRepository) ListAllUserIDs(ctx context.Context) ([]int64, error) {
	return r.dao.ListAllUserIDs(ctx)
}

func (r *contactRepository) toDomain(c dao.UserContact) domain.UserContact {
	return domain.UserContact{
		UserID:         c.UserID,
		DeviceToken:    c.DeviceToken.String,
		WhatsAppNumber: c.WhatsAppNumber.String,
		Email:          c.Email.String,
	}
}
