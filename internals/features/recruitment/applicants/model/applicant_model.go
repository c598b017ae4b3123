package model

import (
	"time"

	"github.com/google/uuid"
)

type ApplicantModel struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName      string    `gorm:"column:full_name;type:varchar(100);not null" json:"full_name"`
	State         string    `gorm:"column:state;type:varchar(50);not null;index" json:"state"`
	District      string    `gorm:"column:district;type:varchar(100);not null" json:"district"`
	Position      string    `gorm:"column:position;type:varchar(50);not null;index" json:"position"`
	Qualification string    `gorm:"column:qualification;type:varchar(100);not null" json:"qualification"`
	Experience    int       `gorm:"column:experience;not null;default:0" json:"experience"`
	Mobile        string    `gorm:"column:mobile;type:varchar(15);not null" json:"mobile"`
	Email         string    `gorm:"column:email;type:varchar(150);not null" json:"email"`
	ResumeURL     string    `gorm:"column:resume_url;type:text" json:"resume_url"`
	AadhaarURL    string    `gorm:"column:aadhaar_url;type:text" json:"aadhaar_url"`
	PhotoURL      string    `gorm:"column:photo_url;type:text" json:"photo_url"`
	Status        string    `gorm:"column:status;type:varchar(20);not null;default:'Pending';index" json:"status"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (ApplicantModel) TableName() string {
	return "applicants"
}
