package services

import (
	"context"
	"crm-app/models"
	"crm-app/repositories"
	"crm-app/types"

	"go.uber.org/zap"
)

type StatusService struct {
	inquiries *repositories.InquiryRepository
	statuses  *repositories.InquiryStatusRepository
	customers *repositories.CustomerRepository
	log       *zap.Logger
}

func NewStatusService(
	inquiries *repositories.InquiryRepository,
	statuses *repositories.InquiryStatusRepository,
	customers *repositories.CustomerRepository,
	log *zap.Logger,
) *StatusService {
	return &StatusService{inquiries: inquiries, statuses: statuses, customers: customers, log: log}
}

// SetStatus moves an inquiry to any status, the current one included. The
// inquiry is returned re-read with its status joined, so name and color
// always come from inquiry_status.
func (s *StatusService) SetStatus(ctx context.Context, inquiryID, statusID types.SnowflakeID) (*models.Inquiry, error) {
	found, err := s.inquiries.Exists(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, types.NewNotFoundError("inquiry", inquiryID)
	}

	found, err = s.statuses.Exists(ctx, statusID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, types.NewNotFoundError("inquiry_status", statusID)
	}

	if err := s.inquiries.UpdateStatus(ctx, inquiryID, statusID); err != nil {
		s.log.Error("Failed to update inquiry status",
			zap.Stringer("inquiry_id", inquiryID), zap.Stringer("status_id", statusID), zap.Error(err))
		return nil, err
	}
	s.log.Info("Inquiry status changed", zap.Stringer("inquiry_id", inquiryID), zap.Stringer("status_id", statusID))

	return s.inquiries.GetByID(ctx, inquiryID)
}

// SetCustomerStatus writes one of the fixed customer statuses.
func (s *StatusService) SetCustomerStatus(ctx context.Context, customerID types.SnowflakeID, status string) (*models.Customer, error) {
	if err := oneOf("status", status, models.CustomerStatuses); err != nil {
		return nil, err
	}

	if err := s.customers.UpdateStatus(ctx, customerID, status); err != nil {
		if !types.IsNotFound(err) {
			s.log.Error("Failed to update customer status", zap.Stringer("customer_id", customerID), zap.Error(err))
		}
		return nil, err
	}
	s.log.Info("Customer status changed", zap.Stringer("customer_id", customerID), zap.String("status", status))

	return s.customers.GetByID(ctx, customerID)
}

// ListStatuses returns the lookup table in display order.
func (s *StatusService) ListStatuses(ctx context.Context) ([]models.InquiryStatus, error) {
	page, err := s.statuses.List(ctx, repositories.Criteria{})
	if err != nil {
		return nil, err
	}
	return page.Rows, nil
}
