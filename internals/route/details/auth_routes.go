package details

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/datastore"
	authController "suryaghar_backend/internals/features/users/auth/controller"
	authModel "suryaghar_backend/internals/features/users/auth/model"
	authRoute "suryaghar_backend/internals/features/users/auth/route"
	authService "suryaghar_backend/internals/features/users/auth/service"
)

func AuthRoutes(app *fiber.App, d *Deps) {
	svc := authService.NewAuthService(
		datastore.Open[authModel.UserModel](d.DB),
		datastore.Open[authModel.AuthOTP](d.DB),
		d.Sessions,
		d.Mailer,
	)
	authRoute.AuthRoutes(app, authController.NewAuthController(svc), d.Sessions)
}
