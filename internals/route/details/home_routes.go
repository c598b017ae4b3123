package details

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/datastore"
	galleryController "suryaghar_backend/internals/features/home/gallery/controller"
	galleryModel "suryaghar_backend/internals/features/home/gallery/model"
	galleryRoute "suryaghar_backend/internals/features/home/gallery/route"
	galleryService "suryaghar_backend/internals/features/home/gallery/service"
	legalController "suryaghar_backend/internals/features/home/legal_documents/controller"
	legalModel "suryaghar_backend/internals/features/home/legal_documents/model"
	legalRoute "suryaghar_backend/internals/features/home/legal_documents/route"
	legalService "suryaghar_backend/internals/features/home/legal_documents/service"
	notificationController "suryaghar_backend/internals/features/home/notifications/controller"
	notificationModel "suryaghar_backend/internals/features/home/notifications/model"
	notificationRoute "suryaghar_backend/internals/features/home/notifications/route"
	notificationService "suryaghar_backend/internals/features/home/notifications/service"
	sectionController "suryaghar_backend/internals/features/home/sections/controller"
	sectionRoute "suryaghar_backend/internals/features/home/sections/route"
	managerController "suryaghar_backend/internals/features/home/state_managers/controller"
	managerModel "suryaghar_backend/internals/features/home/state_managers/model"
	managerRoute "suryaghar_backend/internals/features/home/state_managers/route"
	managerService "suryaghar_backend/internals/features/home/state_managers/service"
	testimonialController "suryaghar_backend/internals/features/home/testimonials/controller"
	testimonialModel "suryaghar_backend/internals/features/home/testimonials/model"
	testimonialRoute "suryaghar_backend/internals/features/home/testimonials/route"
	testimonialService "suryaghar_backend/internals/features/home/testimonials/service"
	videoController "suryaghar_backend/internals/features/home/videos/controller"
	videoModel "suryaghar_backend/internals/features/home/videos/model"
	videoRoute "suryaghar_backend/internals/features/home/videos/route"
	videoService "suryaghar_backend/internals/features/home/videos/service"
)

type homeControllers struct {
	gallery      *galleryController.GalleryController
	legal        *legalController.LegalDocumentController
	testimonials *testimonialController.TestimonialController
	managers     *managerController.StateManagerController
	videos       *videoController.VideoController
	content      *sectionController.ContentController
}

func newHomeControllers(d *Deps) homeControllers {
	return homeControllers{
		gallery: galleryController.NewGalleryController(
			galleryService.NewGalleryService(datastore.Open[galleryModel.GalleryImageModel](d.DB), d.Uploader), d.Bus),
		legal: legalController.NewLegalDocumentController(
			legalService.NewLegalDocumentService(datastore.Open[legalModel.LegalDocumentModel](d.DB), d.Uploader), d.Bus),
		testimonials: testimonialController.NewTestimonialController(
			testimonialService.NewTestimonialService(datastore.Open[testimonialModel.TestimonialModel](d.DB)), d.Bus),
		managers: managerController.NewStateManagerController(
			managerService.NewStateManagerService(datastore.Open[managerModel.StateManagerModel](d.DB), d.Uploader), d.Bus),
		videos: videoController.NewVideoController(
			videoService.NewVideoService(datastore.Open[videoModel.VideoModel](d.DB)), d.Bus),
		content: sectionController.NewContentController(d.Content, d.Bus),
	}
}

// NotificationService is shared by the admin routes and the submission
// listener started in SetupRoutes.
func NotificationService(d *Deps) *notificationService.NotificationService {
	return notificationService.NewNotificationService(datastore.Open[notificationModel.NotificationModel](d.DB))
}

// ✅ e.g. /api/public/gallery
func HomePublicRoutes(api fiber.Router, d *Deps) {
	h := newHomeControllers(d)
	sectionRoute.AllContentRoutes(api, h.content)
	galleryRoute.AllGalleryRoutes(api, h.gallery)
	legalRoute.AllLegalDocumentRoutes(api, h.legal)
	testimonialRoute.AllTestimonialRoutes(api, h.testimonials)
	managerRoute.AllStateManagerRoutes(api, h.managers)
	videoRoute.AllVideoRoutes(api, h.videos)
}

// ✅ e.g. /api/admin/gallery
func HomeAdminRoutes(api fiber.Router, d *Deps, notifications *notificationService.NotificationService) {
	h := newHomeControllers(d)
	sectionRoute.ContentAdminRoutes(api, h.content)
	galleryRoute.GalleryAdminRoutes(api, h.gallery)
	legalRoute.LegalDocumentAdminRoutes(api, h.legal)
	testimonialRoute.TestimonialAdminRoutes(api, h.testimonials)
	managerRoute.StateManagerAdminRoutes(api, h.managers)
	videoRoute.VideoAdminRoutes(api, h.videos)
	notificationRoute.NotificationAdminRoutes(api, notificationController.NewNotificationController(notifications))
}
