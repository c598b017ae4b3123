package model

import (
	"time"

	"github.com/google/uuid"
)

type JobModel struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title            string     `gorm:"column:title;type:varchar(150);not null" json:"title"`
	Category         string     `gorm:"column:category;type:varchar(50);not null;index" json:"category"`
	JobType          string     `gorm:"column:job_type;type:varchar(30);not null" json:"job_type"`
	Location         string     `gorm:"column:location;type:varchar(150);not null" json:"location"`
	Salary           string     `gorm:"column:salary;type:varchar(100)" json:"salary"`
	Description      string     `gorm:"column:description;type:text;not null" json:"description"`
	Requirements     string     `gorm:"column:requirements;type:text" json:"requirements"`
	OrganizationName string     `gorm:"column:organization_name;type:varchar(150);not null" json:"organization_name"`
	ContactPerson    string     `gorm:"column:contact_person;type:varchar(100);not null" json:"contact_person"`
	Mobile           string     `gorm:"column:mobile;type:varchar(15);not null" json:"mobile"`
	WhatsApp         string     `gorm:"column:whatsapp;type:varchar(15);not null" json:"whatsapp"`
	Email            string     `gorm:"column:email;type:varchar(150)" json:"email"`
	Status           string     `gorm:"column:status;type:varchar(20);not null;default:'pending';index" json:"status"`
	IsFeatured       bool       `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	ViewsCount       int        `gorm:"column:views_count;not null;default:0" json:"views_count"`
	RejectionReason  *string    `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	PublishedAt      *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (JobModel) TableName() string {
	return "jobs"
}

type JobViewModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	JobID     uuid.UUID `gorm:"column:job_id;type:uuid;not null;index" json:"job_id"`
	ViewerIP  string    `gorm:"column:viewer_ip;type:varchar(64)" json:"viewer_ip"`
	UserAgent string    `gorm:"column:user_agent;type:text" json:"user_agent"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (JobViewModel) TableName() string {
	return "job_views"
}

type JobSaveModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	JobID     uuid.UUID `gorm:"column:job_id;type:uuid;not null;uniqueIndex:uq_job_saves_job_email" json:"job_id"`
	Email     string    `gorm:"column:email;type:varchar(150);not null;uniqueIndex:uq_job_saves_job_email" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (JobSaveModel) TableName() string {
	return "job_saves"
}
