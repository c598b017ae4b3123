package details

import (
	"gorm.io/gorm"

	"suryaghar_backend/internals/events"
	sectionService "suryaghar_backend/internals/features/home/sections/service"
	authService "suryaghar_backend/internals/features/users/auth/service"
	"suryaghar_backend/internals/features/users/auth/session"
	"suryaghar_backend/internals/helpers/storage"
)

// Deps is built once by the serve command and shared by every route group.
// A nil DB mounts the inert tables.
type Deps struct {
	DB       *gorm.DB
	Uploader *storage.Uploader
	Bus      *events.Bus
	Sessions *session.Manager
	Content  *sectionService.ContentService
	Mailer   authService.Mailer
}
