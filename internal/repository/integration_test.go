//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/TatTrieu/QLTMG/internal/model"
	"github.com/TatTrieu/QLTMG/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=qltmg password=qltmg_password dbname=qltmg_test sslmode=disable TimeZone=Asia/Ho_Chi_Minh"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.User{},
		&model.ClassRoom{},
		&model.Student{},
		&model.Regulation{},
		&model.Attendance{},
		&model.Receipt{},
		&model.HealthRecord{},
		&model.Notification{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupStudent 创建一名在读幼儿并返回清理函数
func setupStudent(t *testing.T) (*model.Student, func()) {
	t.Helper()
	ctx := context.Background()

	student := &model.Student{
		Name:     fmt.Sprintf("测试幼儿-%d", time.Now().UnixNano()),
		Gender:   model.GenderMale,
		IsActive: true,
	}
	if err := testDB.WithContext(ctx).Create(student).Error; err != nil {
		t.Fatalf("创建幼儿失败: %v", err)
	}

	cleanup := func() {
		testDB.Where("student_id = ?", student.StudentID).Delete(&model.Receipt{})
		testDB.Where("student_id = ?", student.StudentID).Delete(&model.Attendance{})
		testDB.Where("student_id = ?", student.StudentID).Delete(&model.Student{})
	}
	return student, cleanup
}

// ═══════════════════════════════════════════════════════════
// StudentRepository — 入园与首月开单事务
// ═══════════════════════════════════════════════════════════

func TestStudentRepo_CreateWithReceipt(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewStudentRepo(testDB)

	student := &model.Student{
		Name:     fmt.Sprintf("入园测试-%d", time.Now().UnixNano()),
		Gender:   model.GenderFemale,
		IsActive: true,
	}
	receipt := &model.Receipt{
		Month:       "01/2026",
		MealDays:    model.DefaultMealDays,
		BaseTuition: 1500000,
		MealTotal:   550000,
		TotalDue:    2050000,
	}

	if err := repo.CreateWithReceipt(ctx, student, receipt); err != nil {
		t.Fatalf("CreateWithReceipt 失败: %v", err)
	}
	defer func() {
		testDB.Where("student_id = ?", student.StudentID).Delete(&model.Receipt{})
		testDB.Where("student_id = ?", student.StudentID).Delete(&model.Student{})
	}()

	if receipt.StudentID != student.StudentID {
		t.Errorf("学费单应关联新幼儿，期望=%s，实际=%s", student.StudentID, receipt.StudentID)
	}

	var count int64
	testDB.Model(&model.Receipt{}).
		Where("student_id = ? AND month = ?", student.StudentID, "01/2026").
		Count(&count)
	if count != 1 {
		t.Errorf("期望落库 1 张学费单，实际=%d", count)
	}
}

func TestStudentRepo_CreateWithReceipt_RollbackOnDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewStudentRepo(testDB)

	existing, cleanup := setupStudent(t)
	defer cleanup()

	// 构造一张与已存在幼儿冲突的学费单：同一 (student_id, month) 唯一约束冲突
	dup := &model.Receipt{StudentID: existing.StudentID, Month: "02/2026"}
	if err := testDB.WithContext(ctx).Create(dup).Error; err != nil {
		t.Fatalf("预置学费单失败: %v", err)
	}

	student := &model.Student{
		Name:     fmt.Sprintf("回滚测试-%d", time.Now().UnixNano()),
		Gender:   model.GenderMale,
		IsActive: true,
	}
	bad := &model.Receipt{Month: "02/2026"}

	// 人为制造失败：事务内部把学费单指回已有幼儿，触发唯一约束
	err := testDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(student).Error; err != nil {
			return err
		}
		bad.StudentID = existing.StudentID
		return tx.Create(bad).Error
	})
	if err == nil {
		t.Fatal("期望唯一约束冲突，实际成功")
	}

	var count int64
	testDB.Model(&model.Student{}).Where("student_id = ?", student.StudentID).Count(&count)
	if count != 0 {
		t.Errorf("事务失败后幼儿不应落库，实际=%d", count)
		testDB.Where("student_id = ?", student.StudentID).Delete(&model.Student{})
	}
	_ = repo
}

// ═══════════════════════════════════════════════════════════
// AttendanceRepository — 同日重复点名为覆盖
// ═══════════════════════════════════════════════════════════

func TestAttendanceRepo_Upsert_Overwrite(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewAttendanceRepo(testDB)

	student, cleanup := setupStudent(t)
	defer cleanup()

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	first := &model.Attendance{
		StudentID: student.StudentID,
		Date:      date,
		Status:    model.AttendancePresent,
	}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("首次点名失败: %v", err)
	}

	second := &model.Attendance{
		StudentID: student.StudentID,
		Date:      date,
		Status:    model.AttendanceExcused,
		Note:      "家长请假",
	}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("重复点名应覆盖而非报错: %v", err)
	}

	atts, err := repo.ListByStudentsAndDate(ctx, []string{student.StudentID}, date)
	if err != nil {
		t.Fatalf("查询点名失败: %v", err)
	}
	if len(atts) != 1 {
		t.Fatalf("期望同日仅 1 条点名记录，实际=%d", len(atts))
	}
	if atts[0].Status != model.AttendanceExcused {
		t.Errorf("期望覆盖后状态=-1，实际=%d", atts[0].Status)
	}
	if atts[0].Note != "家长请假" {
		t.Errorf("期望覆盖后备注=家长请假，实际=%s", atts[0].Note)
	}
}

// ═══════════════════════════════════════════════════════════
// RegulationRepository — 批量更新原子性
// ═══════════════════════════════════════════════════════════

func TestRegulationRepo_UpdateAll_RollbackOnUnknownKey(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRegulationRepo(testDB)

	key := fmt.Sprintf("TEST_KEY_%d", time.Now().UnixNano())
	reg := &model.Regulation{Key: key, Value: 100}
	if err := testDB.WithContext(ctx).Create(reg).Error; err != nil {
		t.Fatalf("预置规定失败: %v", err)
	}
	defer testDB.Where("key = ?", key).Delete(&model.Regulation{})

	err := repo.UpdateAll(ctx, map[string]float64{
		key:            200,
		"NO_SUCH_KEY_": 1,
	}, "tester")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("期望未知键触发 ErrRecordNotFound，实际: %v", err)
	}

	got, err := repo.Get(ctx, key)
	if err != nil {
		t.Fatalf("查询规定失败: %v", err)
	}
	if got.Value != 100 {
		t.Errorf("整体回滚后值应保持 100，实际=%v", got.Value)
	}
}
