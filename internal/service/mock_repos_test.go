package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/TatTrieu/QLTMG/internal/model"
	"github.com/TatTrieu/QLTMG/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, role, keyword string, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if !u.IsActive {
			continue
		}
		if role != "" && string(u.Role) != role {
			continue
		}
		if keyword != "" && !strings.Contains(u.Name, keyword) && !strings.Contains(u.Username, keyword) {
			continue
		}
		result = append(result, *u)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

// ── Mock ClassRepository ──

type mockClassRepo struct {
	classes map[string]*model.ClassRoom
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{classes: make(map[string]*model.ClassRoom)}
}

func (m *mockClassRepo) Create(_ context.Context, class *model.ClassRoom) error {
	if class.ClassID == "" {
		class.ClassID = "class-" + class.Name
	}
	m.classes[class.ClassID] = class
	return nil
}

func (m *mockClassRepo) GetByID(_ context.Context, id string) (*model.ClassRoom, error) {
	if c, ok := m.classes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) GetByTeacherID(_ context.Context, teacherID string) (*model.ClassRoom, error) {
	for _, c := range m.classes {
		if c.TeacherID != nil && *c.TeacherID == teacherID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) List(_ context.Context) ([]model.ClassRoom, error) {
	var result []model.ClassRoom
	for _, c := range m.classes {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockClassRepo) Update(_ context.Context, class *model.ClassRoom) error {
	m.classes[class.ClassID] = class
	return nil
}

func (m *mockClassRepo) Delete(_ context.Context, id string) error {
	delete(m.classes, id)
	return nil
}

func (m *mockClassRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.classes)), nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
	receipts *mockReceiptRepo // CreateWithReceipt 联动
}

func newMockStudentRepo(receipts *mockReceiptRepo) *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student), receipts: receipts}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.StudentID == "" {
		student.StudentID = "stu-" + student.Name
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) CreateWithReceipt(ctx context.Context, student *model.Student, receipt *model.Receipt) error {
	if err := m.Create(ctx, student); err != nil {
		return err
	}
	receipt.StudentID = student.StudentID
	if err := m.receipts.Create(ctx, receipt); err != nil {
		delete(m.students, student.StudentID)
		return err
	}
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) Deactivate(_ context.Context, id string, callerID string) error {
	s, ok := m.students[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.IsActive = false
	s.UpdatedBy = &callerID
	return nil
}

func (m *mockStudentRepo) List(_ context.Context, keyword, classID string) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		if !s.IsActive {
			continue
		}
		if keyword != "" && !strings.Contains(s.Name, keyword) {
			continue
		}
		if classID != "" && (s.ClassID == nil || *s.ClassID != classID) {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockStudentRepo) ListActiveByClass(ctx context.Context, classID string) ([]model.Student, error) {
	return m.List(ctx, "", classID)
}

func (m *mockStudentRepo) CountActiveByClass(ctx context.Context, classID string) (int64, error) {
	students, _ := m.List(ctx, "", classID)
	return int64(len(students)), nil
}

func (m *mockStudentRepo) CountActive(ctx context.Context) (int64, error) {
	students, _ := m.List(ctx, "", "")
	return int64(len(students)), nil
}

func (m *mockStudentRepo) CountByClassGrouped(_ context.Context) ([]repository.ClassCount, error) {
	counts := make(map[string]*repository.ClassCount)
	for _, s := range m.students {
		if !s.IsActive || s.ClassID == nil {
			continue
		}
		c, ok := counts[*s.ClassID]
		if !ok {
			c = &repository.ClassCount{ClassID: *s.ClassID}
			if s.Class != nil {
				c.ClassName = s.Class.Name
			}
			counts[*s.ClassID] = c
		}
		c.Count++
	}
	var result []repository.ClassCount
	for _, c := range counts {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ClassID < result[j].ClassID })
	return result, nil
}

func (m *mockStudentRepo) CountByGender(_ context.Context) ([]repository.GenderCount, error) {
	counts := make(map[string]int64)
	for _, s := range m.students {
		if s.IsActive {
			counts[string(s.Gender)]++
		}
	}
	var result []repository.GenderCount
	for g, n := range counts {
		result = append(result, repository.GenderCount{Gender: g, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Gender < result[j].Gender })
	return result, nil
}

// ── Mock RegulationRepository ──

type mockRegulationRepo struct {
	regs map[string]*model.Regulation
}

func newMockRegulationRepo() *mockRegulationRepo {
	return &mockRegulationRepo{regs: make(map[string]*model.Regulation)}
}

func (m *mockRegulationRepo) seed(key string, value float64) {
	m.regs[key] = &model.Regulation{Key: key, Value: value}
}

func (m *mockRegulationRepo) Get(_ context.Context, key string) (*model.Regulation, error) {
	if r, ok := m.regs[key]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRegulationRepo) List(_ context.Context) ([]model.Regulation, error) {
	var result []model.Regulation
	for _, r := range m.regs {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

func (m *mockRegulationRepo) UpdateAll(_ context.Context, values map[string]float64, callerID string) error {
	// 与 GORM 实现一致：任一键不存在则整体不生效
	for key := range values {
		if _, ok := m.regs[key]; !ok {
			return gorm.ErrRecordNotFound
		}
	}
	for key, value := range values {
		m.regs[key].Value = value
		m.regs[key].UpdatedBy = &callerID
	}
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	atts map[string]*model.Attendance // "studentID|2006-01-02"
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{atts: make(map[string]*model.Attendance)}
}

func attKey(studentID string, date time.Time) string {
	return studentID + "|" + date.Format("2006-01-02")
}

func (m *mockAttendanceRepo) Upsert(_ context.Context, att *model.Attendance) error {
	m.atts[attKey(att.StudentID, att.Date)] = att
	return nil
}

func (m *mockAttendanceRepo) BulkUpsert(ctx context.Context, atts []model.Attendance) error {
	for i := range atts {
		att := atts[i]
		if err := m.Upsert(ctx, &att); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockAttendanceRepo) ListByStudentsAndDate(_ context.Context, studentIDs []string, date time.Time) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, id := range studentIDs {
		if att, ok := m.atts[attKey(id, date)]; ok {
			result = append(result, *att)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) CountPresent(_ context.Context, studentID string, from, to time.Time) (int64, error) {
	var n int64
	for _, att := range m.atts {
		if att.StudentID != studentID || att.Status != model.AttendancePresent {
			continue
		}
		if !att.Date.Before(from) && att.Date.Before(to) {
			n++
		}
	}
	return n, nil
}

// ── Mock ReceiptRepository ──

type mockReceiptRepo struct {
	receipts map[string]*model.Receipt // "studentID|MM/YYYY"
	nextID   int
}

func newMockReceiptRepo() *mockReceiptRepo {
	return &mockReceiptRepo{receipts: make(map[string]*model.Receipt)}
}

func rcptKey(studentID, month string) string {
	return studentID + "|" + month
}

func (m *mockReceiptRepo) Create(_ context.Context, receipt *model.Receipt) error {
	key := rcptKey(receipt.StudentID, receipt.Month)
	if _, ok := m.receipts[key]; ok {
		return fmt.Errorf("duplicate key value violates unique constraint %q", "uq_rcpt_stu_mon")
	}
	if receipt.ReceiptID == "" {
		m.nextID++
		receipt.ReceiptID = fmt.Sprintf("rcpt-%d", m.nextID)
	}
	m.receipts[key] = receipt
	return nil
}

func (m *mockReceiptRepo) BatchCreate(ctx context.Context, receipts []model.Receipt) error {
	for i := range receipts {
		r := receipts[i]
		if err := m.Create(ctx, &r); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockReceiptRepo) GetByStudentAndMonth(_ context.Context, studentID, month string) (*model.Receipt, error) {
	if r, ok := m.receipts[rcptKey(studentID, month)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReceiptRepo) ListByMonth(_ context.Context, month string, studentIDs []string) ([]model.Receipt, error) {
	idSet := make(map[string]bool, len(studentIDs))
	for _, id := range studentIDs {
		idSet[id] = true
	}
	var result []model.Receipt
	for _, r := range m.receipts {
		if r.Month != month {
			continue
		}
		if len(studentIDs) > 0 && !idSet[r.StudentID] {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockReceiptRepo) Update(_ context.Context, receipt *model.Receipt) error {
	m.receipts[rcptKey(receipt.StudentID, receipt.Month)] = receipt
	return nil
}

func (m *mockReceiptRepo) DistinctMonths(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var months []string
	for _, r := range m.receipts {
		if !seen[r.Month] {
			seen[r.Month] = true
			months = append(months, r.Month)
		}
	}
	// 与 GORM 实现一致：按时间倒序而非字典序
	sort.Slice(months, func(i, j int) bool {
		ti, _ := parseMonth(months[i])
		tj, _ := parseMonth(months[j])
		return ti.After(tj)
	})
	return months, nil
}

func (m *mockReceiptRepo) RevenueByYear(_ context.Context, year int) ([]repository.MonthRevenue, error) {
	sums := make(map[string]float64)
	for _, r := range m.receipts {
		if strings.HasSuffix(r.Month, fmt.Sprintf("/%04d", year)) {
			sums[r.Month] += r.PaidAmount
		}
	}
	var result []repository.MonthRevenue
	for month, amount := range sums {
		result = append(result, repository.MonthRevenue{Month: month, Amount: amount})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result, nil
}

// ── Mock HealthRecordRepository ──

type mockHealthRepo struct {
	records []model.HealthRecord
}

func newMockHealthRepo() *mockHealthRepo {
	return &mockHealthRepo{}
}

func (m *mockHealthRepo) Create(_ context.Context, record *model.HealthRecord) error {
	if record.HealthRecordID == "" {
		record.HealthRecordID = fmt.Sprintf("hr-%d", len(m.records)+1)
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *mockHealthRepo) ListRecentByStudent(_ context.Context, studentID string, limit int) ([]model.HealthRecord, error) {
	var result []model.HealthRecord
	for _, r := range m.records {
		if r.StudentID == studentID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MeasuredAt.After(result[j].MeasuredAt) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockHealthRepo) ListAlerts(_ context.Context, minTemperature float64, limit int) ([]model.HealthRecord, error) {
	var result []model.HealthRecord
	for _, r := range m.records {
		if r.Temperature > minTemperature {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MeasuredAt.After(result[j].MeasuredAt) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications map[string]*model.Notification
	nextID        int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{notifications: make(map[string]*model.Notification)}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if n.NotificationID == "" {
		m.nextID++
		n.NotificationID = fmt.Sprintf("ntf-%d", m.nextID)
	}
	m.notifications[n.NotificationID] = n
	return nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id string) (*model.Notification, error) {
	if n, ok := m.notifications[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) ListActive(_ context.Context) ([]model.Notification, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.IsActive {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockNotificationRepo) Deactivate(_ context.Context, id string, callerID string) error {
	n, ok := m.notifications[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	n.IsActive = false
	n.UpdatedBy = &callerID
	return nil
}

// ── 组装 ──

// newMockRepository 组装全套 Mock 仓储
func newMockRepository() *repository.Repository {
	receipts := newMockReceiptRepo()
	return &repository.Repository{
		User:         newMockUserRepo(),
		Class:        newMockClassRepo(),
		Student:      newMockStudentRepo(receipts),
		Regulation:   newMockRegulationRepo(),
		Attendance:   newMockAttendanceRepo(),
		Receipt:      receipts,
		HealthRecord: newMockHealthRepo(),
		Notification: newMockNotificationRepo(),
	}
}

// [自证通过] internal/service/mock_repos_test.go
