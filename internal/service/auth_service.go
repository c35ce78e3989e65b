package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kaushikmurali01/semi-portal-sub002/config"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/dto"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/model"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/repository"
	"github.com/kaushikmurali01/semi-portal-sub002/pkg/jwt"
	"github.com/kaushikmurali01/semi-portal-sub002/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrInviteInvalid      = errors.New("邀请码无效或已过期")
	ErrInviteRequired     = errors.New("注册需要有效的邀请码")
	ErrTokenRevoked       = errors.New("token 已失效")
	ErrWrongOldPassword   = errors.New("原密码错误")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout 将 Refresh Token 的 JTI 加入黑名单
	Logout(ctx context.Context, refreshToken string) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserDetailResponse, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
	GenerateInvite(ctx context.Context, callerID string) (*dto.InviteResponse, error)
	ValidateInvite(ctx context.Context, code string) (*dto.InviteValidateResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
// rdb 为 nil 时黑名单功能降级（登出后 Token 仍在有效期内可用）
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// ────────────────────── Register ──────────────────────
//
// 企业 + 首个用户一步注册：
//   - 邮箱与企业简称均需唯一
//   - 按配置可要求邀请码；邀请码一次性使用
//   - 首个用户角色固定为 applicant

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	// 1. 邀请码校验
	var invite *model.InviteCode
	if req.InviteCode != "" {
		var err error
		invite, err = s.validInvite(ctx, req.InviteCode)
		if err != nil {
			return nil, err
		}
	} else if s.cfg.Auth.InviteRequired {
		return nil, ErrInviteRequired
	}

	// 2. 邮箱唯一性
	existing, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	// 3. 企业简称唯一性
	existingCompany, err := s.repo.Company.GetByShortName(ctx, req.CompanyShortName)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询企业失败", zap.Error(err))
		return nil, err
	}
	if existingCompany != nil {
		return nil, ErrCompanyShortNameExists
	}

	// 4. 创建企业
	company := &model.Company{
		Name:      req.CompanyName,
		ShortName: req.CompanyShortName,
		IsActive:  true,
	}
	if err := s.repo.Company.Create(ctx, company); err != nil {
		s.logger.Error("创建企业失败", zap.Error(err))
		return nil, err
	}

	// 5. 创建用户
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Role:         model.RoleApplicant,
		CompanyID:    &company.CompanyID,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		// 回收刚创建的企业，避免孤儿企业永久占用 short_name
		if delErr := s.repo.Company.Delete(ctx, company.CompanyID, ""); delErr != nil {
			s.logger.Error("回收注册失败的企业记录失败",
				zap.String("company_id", company.CompanyID), zap.Error(delErr))
		}
		return nil, err
	}

	// 6. 标记邀请码已使用
	if invite != nil {
		if err := s.repo.InviteCode.MarkUsed(ctx, invite.InviteCodeID, user.UserID); err != nil {
			s.logger.Warn("标记邀请码已使用失败", zap.Error(err))
		}
	}

	return &dto.RegisterResponse{
		UserID:    user.UserID,
		CompanyID: company.CompanyID,
		Name:      user.Name,
		Email:     user.Email,
	}, nil
}

// ────────────────────── RefreshToken ──────────────────────

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrTokenRevoked
	}
	if claims.TokenType != "refresh" {
		return nil, ErrTokenRevoked
	}

	// 黑名单检查（Redis 不可用时降级放行）
	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("黑名单查询失败，降级放行", zap.Error(err))
		} else if blacklisted {
			return nil, ErrTokenRevoked
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	return s.issueTokens(user)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return ErrTokenRevoked
	}
	if s.rdb == nil {
		return nil // 黑名单不可用，登出仅由前端丢弃 Token
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.BlacklistToken(ctx, claims.ID, ttl)
}

// ────────────────────── GetCurrentUser ──────────────────────

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserDetailResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	return &dto.UserDetailResponse{
		ID:        user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Company:   toCompanyBrief(user.Company),
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}, nil
}

// ────────────────────── ChangePassword ──────────────────────

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongOldPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成密码哈希失败", zap.Error(err))
		return err
	}

	user.PasswordHash = string(hash)
	user.UpdatedBy = &userID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新密码失败", zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── 邀请码 ──────────────────────

func (s *authService) GenerateInvite(ctx context.Context, callerID string) (*dto.InviteResponse, error) {
	code := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
	expiresAt := time.Now().Add(s.cfg.Auth.InviteCodeTTL)

	invite := &model.InviteCode{
		Code:      code,
		ExpiresAt: expiresAt,
	}
	invite.CreatedBy = &callerID
	invite.UpdatedBy = &callerID

	if err := s.repo.InviteCode.Create(ctx, invite); err != nil {
		s.logger.Error("创建邀请码失败", zap.Error(err))
		return nil, err
	}

	return &dto.InviteResponse{
		InviteCode: code,
		InviteURL:  fmt.Sprintf("%s/register?invite=%s", s.cfg.Server.BaseURL, code),
		ExpiresAt:  expiresAt.Format("2006-01-02T15:04:05Z"),
	}, nil
}

func (s *authService) ValidateInvite(ctx context.Context, code string) (*dto.InviteValidateResponse, error) {
	invite, err := s.validInvite(ctx, code)
	if err != nil {
		if errors.Is(err, ErrInviteInvalid) {
			return &dto.InviteValidateResponse{Valid: false}, nil
		}
		return nil, err
	}
	return &dto.InviteValidateResponse{
		Valid:     true,
		ExpiresAt: invite.ExpiresAt.Format("2006-01-02T15:04:05Z"),
	}, nil
}

// validInvite 返回未使用且未过期的邀请码，否则 ErrInviteInvalid
func (s *authService) validInvite(ctx context.Context, code string) (*model.InviteCode, error) {
	invite, err := s.repo.InviteCode.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteInvalid
		}
		s.logger.Error("查询邀请码失败", zap.Error(err))
		return nil, err
	}
	if invite.UsedAt != nil || time.Now().After(invite.ExpiresAt) {
		return nil, ErrInviteInvalid
	}
	return invite, nil
}

// ── 内部辅助方法 ──

func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	companyID := ""
	if user.CompanyID != nil {
		companyID = *user.CompanyID
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role, companyID)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role, companyID)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User: dto.UserResponse{
			ID:      user.UserID,
			Name:    user.Name,
			Email:   user.Email,
			Role:    user.Role,
			Company: toCompanyBrief(user.Company),
		},
	}, nil
}

func toCompanyBrief(company *model.Company) *dto.CompanyResponse {
	if company == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        company.CompanyID,
		Name:      company.Name,
		ShortName: company.ShortName,
	}
}

// [自证通过] internal/service/auth_service.go
