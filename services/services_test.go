package services

import (
	"context"
	"crm-app/models"
	"crm-app/repositories"
	"crm-app/testutil"
	"crm-app/types"
	"crm-app/utils"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeMailer struct {
	sent    []utils.Mail
	failFor map[string]bool
}

func (m *fakeMailer) Send(mail utils.Mail) error {
	if m.failFor[mail.To[0]] {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, mail)
	return nil
}

type env struct {
	db     *gorm.DB
	mailer *fakeMailer

	userRepo     *repositories.UserRepository
	customerRepo *repositories.CustomerRepository
	inquiryRepo  *repositories.InquiryRepository
	statusRepo   *repositories.InquiryStatusRepository
	followUpRepo *repositories.FollowUpRepository

	users     *UserService
	customers *CustomerService
	inquiries *InquiryService
	status    *StatusService
	followUps *FollowUpService
	imports   *ImportService
	dashboard *DashboardService
	reminders *ReminderService
}

func newEnv(t *testing.T) *env {
	db := testutil.SetupTestDB(t)
	log := zap.NewNop()
	e := &env{
		db:           db,
		mailer:       &fakeMailer{failFor: map[string]bool{}},
		userRepo:     repositories.NewUserRepository(db),
		customerRepo: repositories.NewCustomerRepository(db),
		inquiryRepo:  repositories.NewInquiryRepository(db),
		statusRepo:   repositories.NewInquiryStatusRepository(db),
		followUpRepo: repositories.NewFollowUpRepository(db),
	}
	e.users = NewUserService(e.userRepo, log)
	e.customers = NewCustomerService(e.customerRepo, e.userRepo, log)
	e.inquiries = NewInquiryService(e.inquiryRepo, e.customerRepo, e.statusRepo, log)
	e.status = NewStatusService(e.inquiryRepo, e.statusRepo, e.customerRepo, log)
	e.followUps = NewFollowUpService(e.followUpRepo, e.inquiryRepo, log)
	e.imports = NewImportService(e.customers, e.inquiries, e.status, log)
	e.dashboard = NewDashboardService(e.userRepo, e.customerRepo, e.inquiryRepo, e.statusRepo, e.followUps, log)
	e.reminders = NewReminderService(e.followUpRepo, e.inquiryRepo, e.mailer, log)
	return e
}

func (e *env) user(t *testing.T, email string) *models.User {
	u, err := e.users.CreateUser(context.Background(), NewUser{Name: email, Email: email})
	require.NoError(t, err)
	return u
}

func (e *env) customer(t *testing.T, name string, owner *types.SnowflakeID) *models.Customer {
	c, err := e.customers.Create(context.Background(), NewCustomer{CompanyName: name, ContactName: name + " contact", Country: "CN", UserID: owner})
	require.NoError(t, err)
	return c
}

func (e *env) inquiry(t *testing.T, customerID types.SnowflakeID, product string, status *types.SnowflakeID) *models.Inquiry {
	i, err := e.inquiries.Create(context.Background(), NewInquiry{CustomerID: customerID, ProductName: product, StatusID: status})
	require.NoError(t, err)
	return i
}

func (e *env) statuses(t *testing.T) []models.InquiryStatus {
	list, err := e.status.ListStatuses(context.Background())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(list), 2)
	return list
}
