// Package filters narrows and groups collections that are already loaded.
// Nothing here touches the store.
package filters

import (
	"crm-app/models"
	"crm-app/types"
	"strings"
)

// CustomerFilter predicates are ANDed. A nil pointer or empty keyword
// disables that predicate.
type CustomerFilter struct {
	OwnerID *types.SnowflakeID
	Keyword string
	Month   *types.YearMonth
}

// MonthRange is inclusive on both ends. A nil bound is open.
type MonthRange struct {
	From *types.YearMonth
	To   *types.YearMonth
}

func (r MonthRange) contains(m types.YearMonth) bool {
	if r.From != nil && m.Compare(*r.From) < 0 {
		return false
	}
	if r.To != nil && m.Compare(*r.To) > 0 {
		return false
	}
	return true
}

type InquiryFilter struct {
	StatusID *types.SnowflakeID
	Keyword  string
	Months   *MonthRange
}

func containsFold(s, keyword string) bool {
	return strings.Contains(strings.ToLower(s), keyword)
}

func normalizeKeyword(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

// Customers returns the customers matching f, in input order.
func Customers(customers []models.Customer, f CustomerFilter) []models.Customer {
	keyword := normalizeKeyword(f.Keyword)
	out := make([]models.Customer, 0, len(customers))
	for _, c := range customers {
		if f.OwnerID != nil && (c.UserID == nil || *c.UserID != *f.OwnerID) {
			continue
		}
		if keyword != "" && !containsFold(c.CompanyName, keyword) && !containsFold(c.ContactName, keyword) {
			continue
		}
		if f.Month != nil && types.MonthOf(c.CreatedAt) != *f.Month {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Inquiries returns the inquiries matching f, in input order. The keyword is
// checked against the joined customer's names and the product name.
func Inquiries(inquiries []models.Inquiry, f InquiryFilter) []models.Inquiry {
	keyword := normalizeKeyword(f.Keyword)
	out := make([]models.Inquiry, 0, len(inquiries))
	for _, inq := range inquiries {
		if f.StatusID != nil && (inq.StatusID == nil || *inq.StatusID != *f.StatusID) {
			continue
		}
		if keyword != "" && !inquiryMatches(inq, keyword) {
			continue
		}
		if f.Months != nil && !f.Months.contains(types.MonthOf(inq.CreatedAt)) {
			continue
		}
		out = append(out, inq)
	}
	return out
}

func inquiryMatches(inq models.Inquiry, keyword string) bool {
	if containsFold(inq.ProductName, keyword) {
		return true
	}
	if inq.Customer == nil {
		return false
	}
	return containsFold(inq.Customer.CompanyName, keyword) || containsFold(inq.Customer.ContactName, keyword)
}

// GroupInquiriesByCustomer partitions inquiries by customer_id. Every
// customer gets a key; inquiries of customers not in the list are dropped.
func GroupInquiriesByCustomer(customers []models.Customer, inquiries []models.Inquiry) map[types.SnowflakeID][]models.Inquiry {
	groups := make(map[types.SnowflakeID][]models.Inquiry, len(customers))
	for _, c := range customers {
		groups[c.ID] = []models.Inquiry{}
	}
	for _, inq := range inquiries {
		if list, ok := groups[inq.CustomerID]; ok {
			groups[inq.CustomerID] = append(list, inq)
		}
	}
	return groups
}

// GroupFollowUpsByInquiry partitions follow-ups by inquiry_id, same rules as
// GroupInquiriesByCustomer.
func GroupFollowUpsByInquiry(inquiries []models.Inquiry, followUps []models.FollowUp) map[types.SnowflakeID][]models.FollowUp {
	groups := make(map[types.SnowflakeID][]models.FollowUp, len(inquiries))
	for _, inq := range inquiries {
		groups[inq.ID] = []models.FollowUp{}
	}
	for _, f := range followUps {
		if list, ok := groups[f.InquiryID]; ok {
			groups[f.InquiryID] = append(list, f)
		}
	}
	return groups
}

// CustomersOfUser and InquiriesOfCustomer drive the dashboard drill-down.
func CustomersOfUser(customers []models.Customer, userID types.SnowflakeID) []models.Customer {
	return Customers(customers, CustomerFilter{OwnerID: &userID})
}

func InquiriesOfCustomer(inquiries []models.Inquiry, customerID types.SnowflakeID) []models.Inquiry {
	out := make([]models.Inquiry, 0)
	for _, inq := range inquiries {
		if inq.CustomerID == customerID {
			out = append(out, inq)
		}
	}
	return out
}

// CustomerIDs collects ids in input order, for "in" lookups.
func CustomerIDs(customers []models.Customer) []types.SnowflakeID {
	ids := make([]types.SnowflakeID, 0, len(customers))
	for _, c := range customers {
		ids = append(ids, c.ID)
	}
	return ids
}

func InquiryIDs(inquiries []models.Inquiry) []types.SnowflakeID {
	ids := make([]types.SnowflakeID, 0, len(inquiries))
	for _, inq := range inquiries {
		ids = append(ids, inq.ID)
	}
	return ids
}
