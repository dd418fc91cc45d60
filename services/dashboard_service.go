package services

import (
	"context"
	"crm-app/filters"
	"crm-app/models"
	"crm-app/repositories"
	"crm-app/types"

	"go.uber.org/zap"
)

// DashboardData is everything the dashboard renders, loaded in one pass of
// four queries.
type DashboardData struct {
	Users     []models.User          `json:"users"`
	Customers []models.Customer      `json:"customers"`
	Inquiries []models.Inquiry       `json:"inquiries"`
	Statuses  []models.InquiryStatus `json:"statuses"`
}

type StatusCount struct {
	StatusID *types.SnowflakeID `json:"status_id"`
	Name     string             `json:"name"`
	Color    string             `json:"color"`
	Count    int                `json:"count"`
}

// DashboardQuery drills down user → customers → inquiries → timeline.
type DashboardQuery struct {
	UserID     *types.SnowflakeID
	CustomerID *types.SnowflakeID
}

type DashboardView struct {
	DashboardData
	StatusCounts []StatusCount                             `json:"status_counts"`
	FollowUps    map[types.SnowflakeID][]models.FollowUp `json:"follow_ups,omitempty"`
}

type CustomerWithInquiries struct {
	models.Customer
	Inquiries []models.Inquiry `json:"inquiries"`
}

type DashboardService struct {
	users     *repositories.UserRepository
	customers *repositories.CustomerRepository
	inquiries *repositories.InquiryRepository
	statuses  *repositories.InquiryStatusRepository
	followUps *FollowUpService
	log       *zap.Logger
}

func NewDashboardService(
	users *repositories.UserRepository,
	customers *repositories.CustomerRepository,
	inquiries *repositories.InquiryRepository,
	statuses *repositories.InquiryStatusRepository,
	followUps *FollowUpService,
	log *zap.Logger,
) *DashboardService {
	return &DashboardService{
		users:     users,
		customers: customers,
		inquiries: inquiries,
		statuses:  statuses,
		followUps: followUps,
		log:       log,
	}
}

func (s *DashboardService) Load(ctx context.Context) (*DashboardData, error) {
	users, err := s.users.List(ctx, repositories.Criteria{}.OrderBy("name", false))
	if err != nil {
		return nil, err
	}
	customers, err := s.customers.List(ctx, repositories.Criteria{}.OrderBy("created_at", true))
	if err != nil {
		return nil, err
	}
	inquiries, err := s.inquiries.List(ctx, repositories.Criteria{}.OrderBy("created_at", true))
	if err != nil {
		return nil, err
	}
	statuses, err := s.statuses.List(ctx, repositories.Criteria{})
	if err != nil {
		return nil, err
	}
	return &DashboardData{
		Users:     users.Rows,
		Customers: customers.Rows,
		Inquiries: inquiries.Rows,
		Statuses:  statuses.Rows,
	}, nil
}

// View narrows a fresh load to the selected user and customer. The timeline
// is only loaded once a customer is selected.
func (s *DashboardService) View(ctx context.Context, q DashboardQuery) (*DashboardView, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	if q.UserID != nil {
		data.Customers = filters.CustomersOfUser(data.Customers, *q.UserID)
		data.Inquiries = inquiriesOf(data.Customers, data.Inquiries)
	}

	view := &DashboardView{DashboardData: *data}
	if q.CustomerID != nil {
		view.Inquiries = filters.InquiriesOfCustomer(data.Inquiries, *q.CustomerID)
		view.FollowUps, err = s.followUps.ListForInquiries(ctx, view.Inquiries)
		if err != nil {
			return nil, err
		}
	}
	view.StatusCounts = countByStatus(data.Statuses, view.Inquiries)
	return view, nil
}

// UserCustomers lists a user's customers with their inquiries attached,
// using one "in" query for the inquiries.
func (s *DashboardService) UserCustomers(ctx context.Context, userID types.SnowflakeID) ([]CustomerWithInquiries, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	customers, err := s.customers.List(ctx, repositories.Criteria{}.WithEq("user_id", userID).OrderBy("created_at", true))
	if err != nil {
		return nil, err
	}

	out := make([]CustomerWithInquiries, 0, len(customers.Rows))
	if len(customers.Rows) == 0 {
		return out, nil
	}

	inquiries, err := s.inquiries.List(ctx, repositories.Criteria{}.
		WithIn("customer_id", filters.CustomerIDs(customers.Rows)).
		OrderBy("created_at", true))
	if err != nil {
		return nil, err
	}

	grouped := filters.GroupInquiriesByCustomer(customers.Rows, inquiries.Rows)
	for _, c := range customers.Rows {
		out = append(out, CustomerWithInquiries{Customer: c, Inquiries: grouped[c.ID]})
	}
	return out, nil
}

func inquiriesOf(customers []models.Customer, inquiries []models.Inquiry) []models.Inquiry {
	grouped := filters.GroupInquiriesByCustomer(customers, inquiries)
	out := make([]models.Inquiry, 0, len(inquiries))
	for _, inq := range inquiries {
		if _, ok := grouped[inq.CustomerID]; ok {
			out = append(out, inq)
		}
	}
	return out
}

// countByStatus counts inquiries per status in display order. Inquiries
// without a status are counted last under an empty name.
func countByStatus(statuses []models.InquiryStatus, inquiries []models.Inquiry) []StatusCount {
	counts := make(map[types.SnowflakeID]int, len(statuses))
	unset := 0
	for _, inq := range inquiries {
		if inq.StatusID == nil {
			unset++
			continue
		}
		counts[*inq.StatusID]++
	}

	out := make([]StatusCount, 0, len(statuses)+1)
	for _, st := range statuses {
		id := st.ID
		out = append(out, StatusCount{StatusID: &id, Name: st.Name, Color: st.Color, Count: counts[st.ID]})
	}
	if unset > 0 {
		out = append(out, StatusCount{Count: unset})
	}
	return out
}
