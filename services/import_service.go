package services

import (
	"context"
	"crm-app/types"
	"crm-app/utils"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ImportKind string

const (
	ImportCustomers              ImportKind = "customers"
	ImportInquiries              ImportKind = "inquiries"
	ImportCustomersWithInquiries ImportKind = "customers-with-inquiries"
)

var customerColumns = []string{
	"company_name", "contact_name", "email", "phone", "country", "source", "status", "user_id", "created_at",
}

var inquiryColumns = []string{
	"customer_id", "product_name", "quantity", "message", "channel", "subject", "status", "created_at",
}

// combined rows carry no customer status; "status" is the inquiry's, and
// the inquiry channel is taken from source
var combinedColumns = []string{
	"company_name", "contact_name", "email", "phone", "country", "source", "user_id",
	"product_name", "quantity", "message", "subject", "status", "created_at",
}

var requiredColumns = map[ImportKind][]string{
	ImportCustomers:              {"company_name", "country"},
	ImportInquiries:              {"customer_id", "product_name"},
	ImportCustomersWithInquiries: {"company_name", "country", "product_name"},
}

func ParseImportKind(raw string) (ImportKind, error) {
	switch kind := ImportKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case ImportCustomers, ImportInquiries, ImportCustomersWithInquiries:
		return kind, nil
	default:
		return "", types.NewValidationError("kind", "unknown import kind %q", raw)
	}
}

// TemplateColumns is the header row of the import template for kind.
func TemplateColumns(kind ImportKind) []string {
	switch kind {
	case ImportCustomers:
		return customerColumns
	case ImportInquiries:
		return inquiryColumns
	default:
		return combinedColumns
	}
}

// Stages a row error can come from.
const (
	StageParse    = "parse"
	StageCustomer = "customer"
	StageInquiry  = "inquiry"
)

type RowError struct {
	Row        int                `json:"row"`
	Stage      string             `json:"stage"`
	Message    string             `json:"message"`
	CustomerID *types.SnowflakeID `json:"customer_id,omitempty"`
}

type ImportResult struct {
	BatchID      string     `json:"batch_id"`
	Kind         ImportKind `json:"kind"`
	TotalRows    int        `json:"total_rows"`
	SuccessCount int        `json:"success_count"`
	ErrorCount   int        `json:"error_count"`
	Errors       []RowError `json:"errors"`
}

func (r *ImportResult) fail(e RowError) {
	r.ErrorCount++
	r.Errors = append(r.Errors, e)
}

// ImportService loads rows one at a time through the regular create paths.
// A failing row is recorded and never stops the batch.
type ImportService struct {
	customers *CustomerService
	inquiries *InquiryService
	statuses  *StatusService
	log       *zap.Logger
}

func NewImportService(customers *CustomerService, inquiries *InquiryService, statuses *StatusService, log *zap.Logger) *ImportService {
	return &ImportService{customers: customers, inquiries: inquiries, statuses: statuses, log: log}
}

func (s *ImportService) Import(ctx context.Context, kind ImportKind, sheet *utils.Sheet) (*ImportResult, error) {
	if err := sheet.HasColumns(requiredColumns[kind]...); err != nil {
		return nil, types.NewValidationError("file", "%s", err.Error())
	}

	statusByName, err := s.statusNames(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{BatchID: uuid.NewString(), Kind: kind, Errors: []RowError{}}
	log := s.log.With(zap.String("batch_id", result.BatchID), zap.String("kind", string(kind)))
	log.Info("Import started", zap.Int("rows", len(sheet.Rows)))

	for _, row := range sheet.Rows {
		if row.IsBlank() {
			continue
		}
		if err := ctx.Err(); err != nil {
			log.Warn("Import cancelled", zap.Int("processed", result.TotalRows))
			return result, err
		}
		result.TotalRows++

		var ok bool
		switch kind {
		case ImportCustomers:
			ok = s.importCustomer(ctx, row, result)
		case ImportInquiries:
			ok = s.importInquiry(ctx, row, statusByName, result)
		case ImportCustomersWithInquiries:
			ok = s.importCombined(ctx, row, statusByName, result)
		}
		if ok {
			result.SuccessCount++
		}
	}

	log.Info("Import finished",
		zap.Int("total", result.TotalRows),
		zap.Int("success", result.SuccessCount),
		zap.Int("errors", result.ErrorCount))
	return result, nil
}

func (s *ImportService) statusNames(ctx context.Context) (map[string]types.SnowflakeID, error) {
	statuses, err := s.statuses.ListStatuses(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]types.SnowflakeID, len(statuses))
	for _, st := range statuses {
		byName[st.Name] = st.ID
	}
	return byName, nil
}

func (s *ImportService) importCustomer(ctx context.Context, row utils.SheetRow, result *ImportResult) bool {
	in, err := customerFromRow(row)
	if err != nil {
		result.fail(RowError{Row: row.Line, Stage: StageParse, Message: err.Error()})
		return false
	}
	in.Status = row.Get("status")
	if _, err := s.customers.Create(ctx, in); err != nil {
		result.fail(RowError{Row: row.Line, Stage: StageCustomer, Message: err.Error()})
		return false
	}
	return true
}

func (s *ImportService) importInquiry(ctx context.Context, row utils.SheetRow, statusByName map[string]types.SnowflakeID, result *ImportResult) bool {
	customerID, err := types.ParseSnowflakeID(row.Get("customer_id"))
	if err != nil {
		result.fail(RowError{Row: row.Line, Stage: StageParse, Message: "customer_id: " + err.Error()})
		return false
	}
	in, err := inquiryFromRow(row, statusByName)
	if err != nil {
		result.fail(RowError{Row: row.Line, Stage: StageParse, Message: err.Error()})
		return false
	}
	in.CustomerID = customerID
	in.Channel = row.Get("channel")
	if _, err := s.inquiries.Create(ctx, in); err != nil {
		result.fail(RowError{Row: row.Line, Stage: StageInquiry, Message: err.Error(), CustomerID: &customerID})
		return false
	}
	return true
}

// importCombined writes the customer and then its inquiry as two separate
// inserts. A failed inquiry leaves the customer in place and the row error
// names it.
func (s *ImportService) importCombined(ctx context.Context, row utils.SheetRow, statusByName map[string]types.SnowflakeID, result *ImportResult) bool {
	custIn, err := customerFromRow(row)
	if err != nil {
		result.fail(RowError{Row: row.Line, Stage: StageParse, Message: err.Error()})
		return false
	}
	inqIn, err := inquiryFromRow(row, statusByName)
	if err != nil {
		result.fail(RowError{Row: row.Line, Stage: StageParse, Message: err.Error()})
		return false
	}

	customer, err := s.customers.Create(ctx, custIn)
	if err != nil {
		result.fail(RowError{Row: row.Line, Stage: StageCustomer, Message: err.Error()})
		return false
	}

	inqIn.CustomerID = customer.ID
	inqIn.Channel = custIn.Source
	if _, err := s.inquiries.Create(ctx, inqIn); err != nil {
		s.log.Warn("Customer imported without its inquiry",
			zap.Int("row", row.Line), zap.Stringer("customer_id", customer.ID), zap.Error(err))
		id := customer.ID
		result.fail(RowError{
			Row:        row.Line,
			Stage:      StageInquiry,
			Message:    fmt.Sprintf("customer created, inquiry failed: %s", err.Error()),
			CustomerID: &id,
		})
		return false
	}
	return true
}

func customerFromRow(row utils.SheetRow) (NewCustomer, error) {
	userID, err := types.ParseOptionalID(row.Get("user_id"))
	if err != nil {
		return NewCustomer{}, fmt.Errorf("user_id: %w", err)
	}
	createdAt, err := parseTimestamp(row.Get("created_at"))
	if err != nil {
		return NewCustomer{}, fmt.Errorf("created_at: %w", err)
	}
	return NewCustomer{
		CompanyName: row.Get("company_name"),
		ContactName: row.Get("contact_name"),
		Email:       row.Get("email"),
		Phone:       row.Get("phone"),
		Country:     row.Get("country"),
		Source:      row.Get("source"),
		UserID:      userID,
		CreatedAt:   createdAt,
	}, nil
}

// inquiryFromRow accepts the status either as an inquiry_status id or by
// its name.
func inquiryFromRow(row utils.SheetRow, statusByName map[string]types.SnowflakeID) (NewInquiry, error) {
	in := NewInquiry{
		ProductName: row.Get("product_name"),
		Quantity:    row.Get("quantity"),
		Message:     row.Get("message"),
		Subject:     row.Get("subject"),
	}

	if raw := row.Get("status"); raw != "" {
		if id, ok := statusByName[raw]; ok {
			in.StatusID = &id
		} else {
			id, err := types.ParseSnowflakeID(raw)
			if err != nil {
				return NewInquiry{}, fmt.Errorf("status: unknown status %q", raw)
			}
			in.StatusID = &id
		}
	}

	createdAt, err := parseTimestamp(row.Get("created_at"))
	if err != nil {
		return NewInquiry{}, fmt.Errorf("created_at: %w", err)
	}
	in.CreatedAt = createdAt
	return in, nil
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	types.DateLayout,
	"2006/01/02",
}

// parseTimestamp returns the zero time for blank input, which lets the
// store stamp the row.
func parseTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}
