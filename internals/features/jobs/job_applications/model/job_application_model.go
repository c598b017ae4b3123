package model

import (
	"time"

	"github.com/google/uuid"
)

type JobApplicationModel struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	JobID          uuid.UUID `gorm:"column:job_id;type:uuid;not null;index" json:"job_id"`
	FullName       string    `gorm:"column:full_name;type:varchar(100);not null" json:"full_name"`
	Mobile         string    `gorm:"column:mobile;type:varchar(15);not null" json:"mobile"`
	WhatsApp       string    `gorm:"column:whatsapp;type:varchar(15);not null" json:"whatsapp"`
	Email          string    `gorm:"column:email;type:varchar(150);not null;index" json:"email"`
	City           string    `gorm:"column:city;type:varchar(100);not null" json:"city"`
	Message        string    `gorm:"column:message;type:text" json:"message"`
	ResumeURL      string    `gorm:"column:resume_url;type:text" json:"resume_url"`
	ResumeFileName string    `gorm:"column:resume_file_name;type:varchar(255)" json:"resume_file_name"`
	Status         string    `gorm:"column:status;type:varchar(20);not null;default:'applied';index" json:"status"`
	Rating         *int      `gorm:"column:rating" json:"rating,omitempty"`
	Notes          *string   `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (JobApplicationModel) TableName() string {
	return "job_applications"
}
