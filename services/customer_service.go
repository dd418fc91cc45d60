package services

import (
	"context"
	"crm-app/filters"
	"crm-app/models"
	"crm-app/repositories"
	"crm-app/types"
	"crm-app/utils"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

type NewCustomer struct {
	CompanyName string             `json:"company_name" validate:"required"`
	ContactName string             `json:"contact_name"`
	Email       string             `json:"email" validate:"omitempty,email"`
	Phone       string             `json:"phone"`
	Country     string             `json:"country" validate:"required"`
	Source      string             `json:"source"`
	Status      string             `json:"status" validate:"omitempty,oneof=潜在 跟进中 报价中 样品中 成交 流失"`
	UserID      *types.SnowflakeID `json:"user_id"`
	CreatedAt   time.Time          `json:"created_at"`
}

func (in *NewCustomer) trim() {
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.ContactName = strings.TrimSpace(in.ContactName)
	in.Email = strings.TrimSpace(in.Email)
	in.Country = strings.TrimSpace(in.Country)
	in.Status = strings.TrimSpace(in.Status)
}

// CustomerQuery is the whole state of a customer list call. Owner and month
// are pushed to the store, the keyword is matched after fetch.
type CustomerQuery struct {
	OwnerID *types.SnowflakeID
	Keyword string
	Month   *types.YearMonth
	Page    int
	Size    int
}

type CustomerService struct {
	customers *repositories.CustomerRepository
	users     *repositories.UserRepository
	log       *zap.Logger
}

func NewCustomerService(customers *repositories.CustomerRepository, users *repositories.UserRepository, log *zap.Logger) *CustomerService {
	return &CustomerService{customers: customers, users: users, log: log}
}

func (s *CustomerService) Create(ctx context.Context, in NewCustomer) (*models.Customer, error) {
	in.trim()
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.UserID != nil {
		if _, err := s.users.GetByID(ctx, *in.UserID); err != nil {
			return nil, err
		}
	}

	customer := models.Customer{
		CompanyName: in.CompanyName,
		ContactName: in.ContactName,
		Email:       optionalString(in.Email),
		Phone:       optionalString(in.Phone),
		Country:     in.Country,
		Source:      optionalString(in.Source),
		Status:      in.Status,
		UserID:      in.UserID,
		CreatedAt:   in.CreatedAt,
	}
	if customer.Status == "" {
		customer.Status = models.CustomerStatusLead
	}
	if err := s.customers.Insert(ctx, &customer); err != nil {
		s.log.Error("Failed to insert customer", zap.String("company_name", in.CompanyName), zap.Error(err))
		return nil, err
	}
	return &customer, nil
}

func (s *CustomerService) Get(ctx context.Context, id types.SnowflakeID) (*models.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *CustomerService) List(ctx context.Context, q CustomerQuery) (repositories.Page[models.Customer], error) {
	c := repositories.Criteria{}.OrderBy("created_at", true)
	if q.OwnerID != nil {
		c = c.WithEq("user_id", *q.OwnerID)
	}
	if q.Month != nil {
		c.Ranges = append(c.Ranges, monthRange("created_at", *q.Month, *q.Month))
	}

	if strings.TrimSpace(q.Keyword) == "" {
		return s.customers.List(ctx, c.Paginate(q.Page, q.Size))
	}

	all, err := s.customers.List(ctx, c)
	if err != nil {
		return repositories.Page[models.Customer]{}, err
	}
	matched := filters.Customers(all.Rows, filters.CustomerFilter{Keyword: q.Keyword})
	return pageOf(matched, q.Page, q.Size)
}

var customerExportHeader = []string{
	"id", "company_name", "contact_name", "email", "phone", "country",
	"source", "status", "owner", "created_at",
}

// Export writes the customers, newest first, as an XLSX workbook. An empty
// ownerIDs exports every customer.
func (s *CustomerService) Export(ctx context.Context, w io.Writer, ownerIDs []types.SnowflakeID) error {
	c := repositories.Criteria{}.OrderBy("created_at", true)
	if len(ownerIDs) > 0 {
		c = c.WithIn("user_id", ownerIDs)
	}
	page, err := s.customers.List(ctx, c)
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(page.Rows))
	for _, cu := range page.Rows {
		owner := ""
		if cu.User != nil {
			owner = cu.User.Name
		}
		rows = append(rows, []interface{}{
			cu.ID.String(), cu.CompanyName, cu.ContactName, deref(cu.Email), deref(cu.Phone),
			cu.Country, deref(cu.Source), cu.Status, owner, cu.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	s.log.Info("Exporting customers", zap.Int("rows", len(rows)))
	return utils.WriteXLSX(w, customerExportHeader, rows)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// monthRange covers whole calendar months from..to inclusive as a half-open
// [start of from, start of the month after to) range.
func monthRange(column string, from, to types.YearMonth) repositories.Range {
	start := time.Date(from.Year, from.Month, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(to.Year, to.Month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, 0)
	return repositories.Range{Column: column, From: start, To: end}
}

// pageOf slices an already filtered result the way the store would.
func pageOf[T any](rows []T, page, size int) (repositories.Page[T], error) {
	if page < 0 || size < 0 {
		return repositories.Page[T]{}, types.NewValidationError("page", "page and size must not be negative")
	}
	out := repositories.Page[T]{Rows: rows, Total: int64(len(rows)), Page: page, Size: size}
	if size == 0 {
		return out, nil
	}
	if size > repositories.MaxPageSize {
		out.Size = repositories.MaxPageSize
	}
	if out.Page == 0 {
		out.Page = 1
	}
	start := (out.Page - 1) * out.Size
	if start >= len(rows) {
		out.Rows = []T{}
		return out, nil
	}
	end := start + out.Size
	if end > len(rows) {
		end = len(rows)
	}
	out.Rows = rows[start:end]
	return out, nil
}
