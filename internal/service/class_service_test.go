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

func setupTestClassService() (ClassService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewClassService(repo, zap.NewNop())
	return svc, repo
}

func mustCreateTeacher(t *testing.T, repo *repository.Repository, username string) *model.User {
	t.Helper()
	user := &model.User{Name: username, Username: username, Role: model.RoleTeacher, IsActive: true}
	if err := repo.User.Create(context.Background(), user); err != nil {
		t.Fatalf("预置教师失败: %v", err)
	}
	return user
}

// ── AssignTeacher ──

func TestClassService_AssignTeacher_Success(t *testing.T) {
	svc, repo := setupTestClassService()
	ctx := context.Background()

	teacher := mustCreateTeacher(t, repo, "teacher01")
	class := &model.ClassRoom{Name: "小班A"}
	repo.Class.Create(ctx, class)

	result, err := svc.AssignTeacher(ctx, class.ClassID, &dto.AssignTeacherRequest{TeacherID: &teacher.UserID}, "admin-001")
	if err != nil {
		t.Fatalf("AssignTeacher 应成功: %v", err)
	}
	if result.TeacherID != teacher.UserID {
		t.Errorf("期望班主任=%s，实际=%s", teacher.UserID, result.TeacherID)
	}
}

func TestClassService_AssignTeacher_AlreadyAssigned(t *testing.T) {
	svc, repo := setupTestClassService()
	ctx := context.Background()

	teacher := mustCreateTeacher(t, repo, "teacher01")
	taken := &model.ClassRoom{Name: "已带班", TeacherID: &teacher.UserID}
	repo.Class.Create(ctx, taken)
	class := &model.ClassRoom{Name: "新班级"}
	repo.Class.Create(ctx, class)

	_, err := svc.AssignTeacher(ctx, class.ClassID, &dto.AssignTeacherRequest{TeacherID: &teacher.UserID}, "admin-001")
	if !errors.Is(err, ErrTeacherAlreadyAssigned) {
		t.Errorf("期望 ErrTeacherAlreadyAssigned，实际: %v", err)
	}
}

func TestClassService_AssignTeacher_SelfReassignAllowed(t *testing.T) {
	svc, repo := setupTestClassService()
	ctx := context.Background()

	teacher := mustCreateTeacher(t, repo, "teacher01")
	class := &model.ClassRoom{Name: "本班", TeacherID: &teacher.UserID}
	repo.Class.Create(ctx, class)

	// 指回本班不算重复带班
	_, err := svc.AssignTeacher(ctx, class.ClassID, &dto.AssignTeacherRequest{TeacherID: &teacher.UserID}, "admin-001")
	if err != nil {
		t.Errorf("指回本班应允许: %v", err)
	}
}

func TestClassService_AssignTeacher_ClearAssignment(t *testing.T) {
	svc, repo := setupTestClassService()
	ctx := context.Background()

	teacher := mustCreateTeacher(t, repo, "teacher01")
	class := &model.ClassRoom{Name: "小班A", TeacherID: &teacher.UserID}
	repo.Class.Create(ctx, class)

	result, err := svc.AssignTeacher(ctx, class.ClassID, &dto.AssignTeacherRequest{}, "admin-001")
	if err != nil {
		t.Fatalf("解除指派应成功: %v", err)
	}
	if result.TeacherID != "" {
		t.Errorf("解除后不应再有班主任，实际=%s", result.TeacherID)
	}
}

func TestClassService_AssignTeacher_TeacherNotFound(t *testing.T) {
	svc, repo := setupTestClassService()
	ctx := context.Background()

	class := &model.ClassRoom{Name: "小班A"}
	repo.Class.Create(ctx, class)

	ghost := "user-不存在"
	_, err := svc.AssignTeacher(ctx, class.ClassID, &dto.AssignTeacherRequest{TeacherID: &ghost}, "admin-001")
	if !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("期望 ErrTeacherNotFound，实际: %v", err)
	}
}

// ── Delete ──

func TestClassService_Delete_WithStudentsRejected(t *testing.T) {
	svc, repo := setupTestClassService()
	ctx := context.Background()

	class := &model.ClassRoom{Name: "有人班"}
	repo.Class.Create(ctx, class)
	classID := class.ClassID
	repo.Student.Create(ctx, &model.Student{Name: "在读幼儿", Gender: model.GenderMale, ClassID: &classID, IsActive: true})

	err := svc.Delete(ctx, class.ClassID)
	if !errors.Is(err, ErrClassHasStudents) {
		t.Errorf("期望 ErrClassHasStudents，实际: %v", err)
	}
}

func TestClassService_Delete_EmptyClass(t *testing.T) {
	svc, repo := setupTestClassService()
	ctx := context.Background()

	class := &model.ClassRoom{Name: "空班"}
	repo.Class.Create(ctx, class)
	// 只剩退园幼儿的班级视为空班
	classID := class.ClassID
	repo.Student.Create(ctx, &model.Student{Name: "退园幼儿", Gender: model.GenderMale, ClassID: &classID, IsActive: false})

	if err := svc.Delete(ctx, class.ClassID); err != nil {
		t.Fatalf("空班应可删除: %v", err)
	}
	if _, err := repo.Class.GetByID(ctx, class.ClassID); err == nil {
		t.Error("删除后班级不应存在")
	}
}

// ── List ──

func TestClassService_List_WithStudentCounts(t *testing.T) {
	svc, repo := setupTestClassService()
	ctx := context.Background()

	a := &model.ClassRoom{Name: "A班"}
	b := &model.ClassRoom{Name: "B班"}
	repo.Class.Create(ctx, a)
	repo.Class.Create(ctx, b)

	aID := a.ClassID
	repo.Student.Create(ctx, &model.Student{Name: "幼儿甲", Gender: model.GenderMale, ClassID: &aID, IsActive: true})
	repo.Student.Create(ctx, &model.Student{Name: "幼儿乙", Gender: model.GenderFemale, ClassID: &aID, IsActive: true})

	result, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("期望 2 个班级，实际=%d", len(result))
	}

	counts := make(map[string]int64)
	for _, c := range result {
		counts[c.Name] = c.StudentCount
	}
	if counts["A班"] != 2 {
		t.Errorf("A班人数期望=2，实际=%d", counts["A班"])
	}
	if counts["B班"] != 0 {
		t.Errorf("B班人数期望=0，实际=%d", counts["B班"])
	}
}

// [自证通过] internal/service/class_service_test.go
