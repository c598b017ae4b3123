package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	auditModel "suryaghar_backend/internals/features/dashboard/audit_logs/model"
	galleryModel "suryaghar_backend/internals/features/home/gallery/model"
	legalModel "suryaghar_backend/internals/features/home/legal_documents/model"
	notificationModel "suryaghar_backend/internals/features/home/notifications/model"
	managerModel "suryaghar_backend/internals/features/home/state_managers/model"
	testimonialModel "suryaghar_backend/internals/features/home/testimonials/model"
	videoModel "suryaghar_backend/internals/features/home/videos/model"
	jobAppModel "suryaghar_backend/internals/features/jobs/job_applications/model"
	jobModel "suryaghar_backend/internals/features/jobs/jobs/model"
	applicantModel "suryaghar_backend/internals/features/recruitment/applicants/model"
	authModel "suryaghar_backend/internals/features/users/auth/model"
)

// Models lists every table the service owns, in creation order.
func Models() []any {
	return []any{
		&authModel.UserModel{},
		&authModel.AuthOTP{},
		&authModel.TokenBlacklist{},
		&applicantModel.ApplicantModel{},
		&jobModel.JobModel{},
		&jobModel.JobViewModel{},
		&jobModel.JobSaveModel{},
		&jobAppModel.JobApplicationModel{},
		&galleryModel.GalleryImageModel{},
		&legalModel.LegalDocumentModel{},
		&testimonialModel.TestimonialModel{},
		&managerModel.StateManagerModel{},
		&videoModel.VideoModel{},
		&notificationModel.NotificationModel{},
		&auditModel.AuditLogModel{},
	}
}

// jobForeignKeys removes a job's applications, views and saves with it.
var jobForeignKeys = map[string]string{
	"fk_job_applications_job": "job_applications",
	"fk_job_views_job":        "job_views",
	"fk_job_saves_job":        "job_saves",
}

const addJobForeignKey = `DO $$ BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%[1]s') THEN
		ALTER TABLE %[2]s ADD CONSTRAINT %[1]s FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE;
	END IF;
END $$;`

func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not configured")
	}
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("migrate %T: %w", m, err)
		}
		log.Printf("✅ migrated %T", m)
	}
	for name, table := range jobForeignKeys {
		if err := db.Exec(fmt.Sprintf(addJobForeignKey, name, table)).Error; err != nil {
			return fmt.Errorf("add %s: %w", name, err)
		}
	}
	log.Println("✅ job foreign keys in place")
	return nil
}
