package services

import (
	"context"
	"crm-app/filters"
	"crm-app/models"
	"crm-app/repositories"
	"crm-app/types"
	"strings"
	"time"

	"go.uber.org/zap"
)

type NewInquiry struct {
	CustomerID  types.SnowflakeID  `json:"customer_id" validate:"required"`
	ProductName string             `json:"product_name" validate:"required"`
	Quantity    string             `json:"quantity"`
	Message     string             `json:"message"`
	Channel     string             `json:"channel"`
	Subject     string             `json:"subject"`
	StatusID    *types.SnowflakeID `json:"status_id"`
	CreatedAt   time.Time          `json:"created_at"`
}

// InquiryQuery is the whole state of an inquiry list call. The month range
// is inclusive on both ends.
type InquiryQuery struct {
	CustomerID *types.SnowflakeID
	StatusID   *types.SnowflakeID
	Keyword    string
	FromMonth  *types.YearMonth
	ToMonth    *types.YearMonth
	Page       int
	Size       int
}

type InquiryService struct {
	inquiries *repositories.InquiryRepository
	customers *repositories.CustomerRepository
	statuses  *repositories.InquiryStatusRepository
	log       *zap.Logger
}

func NewInquiryService(
	inquiries *repositories.InquiryRepository,
	customers *repositories.CustomerRepository,
	statuses *repositories.InquiryStatusRepository,
	log *zap.Logger,
) *InquiryService {
	return &InquiryService{inquiries: inquiries, customers: customers, statuses: statuses, log: log}
}

// Create inserts an inquiry after resolving its customer and, when set, its
// status. The result carries the joined customer and status.
func (s *InquiryService) Create(ctx context.Context, in NewInquiry) (*models.Inquiry, error) {
	in.ProductName = strings.TrimSpace(in.ProductName)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	found, err := s.customers.Exists(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, types.NewNotFoundError("customer", in.CustomerID)
	}
	if in.StatusID != nil {
		found, err := s.statuses.Exists(ctx, *in.StatusID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, types.NewNotFoundError("inquiry_status", *in.StatusID)
		}
	}

	inquiry := models.Inquiry{
		CustomerID:  in.CustomerID,
		ProductName: in.ProductName,
		Quantity:    strings.TrimSpace(in.Quantity),
		Message:     optionalString(in.Message),
		Channel:     optionalString(in.Channel),
		Subject:     optionalString(in.Subject),
		StatusID:    in.StatusID,
		CreatedAt:   in.CreatedAt,
	}
	if err := s.inquiries.Insert(ctx, &inquiry); err != nil {
		s.log.Error("Failed to insert inquiry", zap.Stringer("customer_id", in.CustomerID), zap.Error(err))
		return nil, err
	}
	return s.inquiries.GetByID(ctx, inquiry.ID)
}

func (s *InquiryService) Get(ctx context.Context, id types.SnowflakeID) (*models.Inquiry, error) {
	return s.inquiries.GetByID(ctx, id)
}

func (s *InquiryService) List(ctx context.Context, q InquiryQuery) (repositories.Page[models.Inquiry], error) {
	if q.FromMonth != nil && q.ToMonth != nil && q.FromMonth.Compare(*q.ToMonth) > 0 {
		return repositories.Page[models.Inquiry]{}, types.NewValidationError("from_month", "must not be after to_month")
	}

	c := repositories.Criteria{}.OrderBy("created_at", true)
	if q.CustomerID != nil {
		c = c.WithEq("customer_id", *q.CustomerID)
	}
	if q.StatusID != nil {
		c = c.WithEq("status", *q.StatusID)
	}
	if q.FromMonth != nil || q.ToMonth != nil {
		r := repositories.Range{Column: "created_at"}
		if q.FromMonth != nil {
			r.From = monthRange("created_at", *q.FromMonth, *q.FromMonth).From
		}
		if q.ToMonth != nil {
			r.To = monthRange("created_at", *q.ToMonth, *q.ToMonth).To
		}
		c.Ranges = append(c.Ranges, r)
	}

	if strings.TrimSpace(q.Keyword) == "" {
		return s.inquiries.List(ctx, c.Paginate(q.Page, q.Size))
	}

	all, err := s.inquiries.List(ctx, c)
	if err != nil {
		return repositories.Page[models.Inquiry]{}, err
	}
	matched := filters.Inquiries(all.Rows, filters.InquiryFilter{Keyword: q.Keyword})
	return pageOf(matched, q.Page, q.Size)
}

// ListByCustomer returns the customer's inquiries, newest first.
func (s *InquiryService) ListByCustomer(ctx context.Context, customerID types.SnowflakeID) ([]models.Inquiry, error) {
	found, err := s.customers.Exists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, types.NewNotFoundError("customer", customerID)
	}
	page, err := s.List(ctx, InquiryQuery{CustomerID: &customerID})
	if err != nil {
		return nil, err
	}
	return page.Rows, nil
}
