package services

import (
	"context"
	"crm-app/repositories"
	"crm-app/types"
	"crm-app/utils"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, content string) *utils.Sheet {
	sheet, err := utils.ReadCSV(strings.NewReader(content))
	require.NoError(t, err)
	return sheet
}

func TestImportCustomersContinuesPastBadRow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sheet := readCSV(t, "company_name,contact_name,country,status\n"+
		"Acme,Li Wei,CN,\n"+
		",Nobody,US,\n"+
		"Globex,Anna,DE,跟进中\n")

	result, err := e.imports.Import(ctx, ImportCustomers, sheet)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, StageCustomer, result.Errors[0].Stage)
	assert.Contains(t, result.Errors[0].Message, "company_name")
	assert.NotEmpty(t, result.BatchID)

	page, err := e.customerRepo.List(ctx, repositories.Criteria{}.OrderBy("company_name", false))
	require.NoError(t, err)
	require.Len(t, page.Rows, 2)
	assert.Equal(t, "Acme", page.Rows[0].CompanyName)
	assert.Equal(t, "Globex", page.Rows[1].CompanyName)
	assert.Equal(t, "跟进中", page.Rows[1].Status)
}

func TestImportRejectsMissingColumns(t *testing.T) {
	e := newEnv(t)
	sheet := readCSV(t, "contact_name,phone\nLi,123\n")

	_, err := e.imports.Import(context.Background(), ImportCustomers, sheet)
	assert.True(t, types.IsValidation(err))
}

func TestImportInquiries(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	statuses := e.statuses(t)
	c := e.customer(t, "Acme", nil)

	sheet := readCSV(t, fmt.Sprintf("customer_id,product_name,quantity,status,created_at\n"+
		"%[1]s,Widget,100 pcs,%[2]s,2025-01-15\n"+
		"%[1]s,Gadget,,%[3]s,\n"+
		"999,Orphan,,,\n"+
		"%[1]s,Bolt,,no-such-status,\n",
		c.ID, statuses[0].Name, statuses[1].ID))

	result, err := e.imports.Import(ctx, ImportInquiries, sheet)
	require.NoError(t, err)
	assert.Equal(t, 4, result.TotalRows)
	assert.Equal(t, 2, result.SuccessCount)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, StageInquiry, result.Errors[0].Stage)
	assert.Equal(t, StageParse, result.Errors[1].Stage)

	inquiries, err := e.inquiries.ListByCustomer(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, inquiries, 2)
	byProduct := map[string]bool{}
	for _, inq := range inquiries {
		byProduct[inq.ProductName] = true
		require.NotNil(t, inq.Status)
		if inq.ProductName == "Widget" {
			assert.Equal(t, statuses[0].Name, inq.Status.Name)
			assert.Equal(t, "2025-01-15", inq.CreatedAt.Format("2006-01-02"))
		}
	}
	assert.True(t, byProduct["Widget"])
	assert.True(t, byProduct["Gadget"])
}

func TestImportCombinedReportsPartialSuccess(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sheet := readCSV(t, "company_name,contact_name,country,source,product_name,quantity\n"+
		"Acme,Li,CN,Alibaba,Widget,10\n"+
		"Globex,Anna,DE,Website,,5\n")

	result, err := e.imports.Import(ctx, ImportCustomersWithInquiries, sheet)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 1, result.SuccessCount)
	require.Len(t, result.Errors, 1)

	rowErr := result.Errors[0]
	assert.Equal(t, 3, rowErr.Row)
	assert.Equal(t, StageInquiry, rowErr.Stage)
	require.NotNil(t, rowErr.CustomerID)

	// the customer of the failed row stays
	globex, err := e.customers.Get(ctx, *rowErr.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, "Globex", globex.CompanyName)

	page, err := e.inquiryRepo.List(ctx, repositories.Criteria{})
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "Widget", page.Rows[0].ProductName)
	require.NotNil(t, page.Rows[0].Channel)
	assert.Equal(t, "Alibaba", *page.Rows[0].Channel)
}

func TestImportSkipsBlankRows(t *testing.T) {
	e := newEnv(t)
	sheet := readCSV(t, "company_name,country\nAcme,CN\n,\nGlobex,DE\n")

	result, err := e.imports.Import(context.Background(), ImportCustomers, sheet)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.SuccessCount)
}

func TestImportKindAndTemplates(t *testing.T) {
	kind, err := ParseImportKind(" Customers ")
	require.NoError(t, err)
	assert.Equal(t, ImportCustomers, kind)

	_, err = ParseImportKind("orders")
	assert.True(t, types.IsValidation(err))

	for _, k := range []ImportKind{ImportCustomers, ImportInquiries, ImportCustomersWithInquiries} {
		cols := TemplateColumns(k)
		for _, required := range requiredColumns[k] {
			assert.Contains(t, cols, required)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	for _, raw := range []string{"2025-01-02", "2025-01-02 10:30:00", "2025-01-02T10:30:00Z", "2025/01/02"} {
		ts, err := parseTimestamp(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, 2025, ts.Year())
		assert.Equal(t, 2, ts.Day())
	}
	ts, err := parseTimestamp("")
	require.NoError(t, err)
	assert.True(t, ts.IsZero())

	_, err = parseTimestamp("yesterday")
	assert.Error(t, err)
}
