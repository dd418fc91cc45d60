package routes

import (
	"crm-app/config"
	"crm-app/controllers"
	"crm-app/middleware"
	"crm-app/repositories"
	"crm-app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services is every service the HTTP surface calls, built once per process.
type Services struct {
	Users     *services.UserService
	Customers *services.CustomerService
	Inquiries *services.InquiryService
	Status    *services.StatusService
	FollowUps *services.FollowUpService
	Imports   *services.ImportService
	Dashboard *services.DashboardService
	Reminders *services.ReminderService
}

func NewServices(db *gorm.DB, mailer services.Mailer, log *zap.Logger) *Services {
	userRepo := repositories.NewUserRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	inquiryRepo := repositories.NewInquiryRepository(db)
	statusRepo := repositories.NewInquiryStatusRepository(db)
	followUpRepo := repositories.NewFollowUpRepository(db)

	s := &Services{
		Users:     services.NewUserService(userRepo, log),
		Customers: services.NewCustomerService(customerRepo, userRepo, log),
		Inquiries: services.NewInquiryService(inquiryRepo, customerRepo, statusRepo, log),
		Status:    services.NewStatusService(inquiryRepo, statusRepo, customerRepo, log),
		FollowUps: services.NewFollowUpService(followUpRepo, inquiryRepo, log),
		Reminders: services.NewReminderService(followUpRepo, inquiryRepo, mailer, log),
	}
	s.Imports = services.NewImportService(s.Customers, s.Inquiries, s.Status, log)
	s.Dashboard = services.NewDashboardService(userRepo, customerRepo, inquiryRepo, statusRepo, s.FollowUps, log)
	return s
}

// SetupRoutes mounts every route under MAIN_ROUTES behind the auth gate.
func SetupRoutes(app *fiber.App, s *Services, log *zap.Logger) {
	api := app.Group(config.MAIN_ROUTES, middleware.NewAuthMiddleware(s.Users, log))

	SetupUserRoutes(api, controllers.NewUserController(s.Users, s.Dashboard))
	SetupCustomerRoutes(api, controllers.NewCustomerController(s.Customers, s.Inquiries, s.Status))
	SetupInquiryRoutes(api, controllers.NewInquiryController(s.Inquiries, s.Status, s.FollowUps))
	SetupImportRoutes(api, controllers.NewImportController(s.Imports))
	SetupDashboardRoutes(api, controllers.NewDashboardController(s.Dashboard))
	SetupReminderRoutes(api, controllers.NewReminderController(s.Reminders))
}
