package aigen

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LogRepository interface {
	Create(log *GenerationLog) error
	ListByTeacher(teacherID uuid.UUID, limit int) ([]GenerationLog, error)
}

type logRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{db: db}
}

func (r *logRepository) Create(log *GenerationLog) error {
	return r.db.Create(log).Error
}

func (r *logRepository) ListByTeacher(teacherID uuid.UUID, limit int) ([]GenerationLog, error) {
	var logs []GenerationLog
	err := r.db.
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).
		Error
	return logs, err
}
