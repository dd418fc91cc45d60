package services

import (
	"bytes"
	"context"
	"crm-app/models"
	"crm-app/types"
	"crm-app/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomerValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.customers.Create(ctx, NewCustomer{Country: "CN"})
	assert.True(t, types.IsValidation(err))

	_, err = e.customers.Create(ctx, NewCustomer{CompanyName: "Acme", Country: "CN", Email: "not-an-email"})
	assert.True(t, types.IsValidation(err))

	_, err = e.customers.Create(ctx, NewCustomer{CompanyName: "Acme", Country: "CN", Status: "won"})
	assert.True(t, types.IsValidation(err))

	ghost := types.SnowflakeID(123)
	_, err = e.customers.Create(ctx, NewCustomer{CompanyName: "Acme", Country: "CN", UserID: &ghost})
	assert.True(t, types.IsNotFoundOf(err, "user"))

	c, err := e.customers.Create(ctx, NewCustomer{CompanyName: " Acme ", Country: "CN", Email: "li@acme.test", Phone: " "})
	require.NoError(t, err)
	assert.Equal(t, "Acme", c.CompanyName)
	require.NotNil(t, c.Email)
	assert.Nil(t, c.Phone)
	assert.Equal(t, models.CustomerStatusLead, c.Status)
}

func TestListCustomersKeywordAndPaging(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice@example.com")
	for _, name := range []string{"Acme One", "Acme Two", "Acme Three", "Globex"} {
		e.customer(t, name, &alice.ID)
	}
	e.customer(t, "Acme Orphan", nil)

	page, err := e.customers.List(ctx, CustomerQuery{OwnerID: &alice.ID, Keyword: "acme", Page: 1, Size: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.Len(t, page.Rows, 2)

	page, err = e.customers.List(ctx, CustomerQuery{OwnerID: &alice.ID, Keyword: "acme", Page: 2, Size: 2})
	require.NoError(t, err)
	assert.Len(t, page.Rows, 1)

	page, err = e.customers.List(ctx, CustomerQuery{Keyword: "acme", Page: 9, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Rows)
	assert.EqualValues(t, 4, page.Total)

	month := types.MonthOf(time.Now())
	page, err = e.customers.List(ctx, CustomerQuery{Month: &month})
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)

	lastYear := types.YearMonth{Year: month.Year - 1, Month: month.Month}
	page, err = e.customers.List(ctx, CustomerQuery{Month: &lastYear})
	require.NoError(t, err)
	assert.Empty(t, page.Rows)
}

func TestExportCustomers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice@example.com")
	e.customer(t, "Acme", &alice.ID)
	e.customer(t, "Orphan", nil)

	var buf bytes.Buffer
	require.NoError(t, e.customers.Export(ctx, &buf, []types.SnowflakeID{alice.ID}))

	sheet, err := utils.ReadXLSX(&buf)
	require.NoError(t, err)
	assert.Equal(t, customerExportHeader, sheet.Header)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "Acme", sheet.Rows[0].Get("company_name"))
	assert.Equal(t, "alice@example.com", sheet.Rows[0].Get("owner"))
}

func TestInquiryListFilters(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	statuses := e.statuses(t)
	acme := e.customer(t, "Acme", nil)
	globex := e.customer(t, "Globex", nil)
	e.inquiry(t, acme.ID, "Widget", &statuses[0].ID)
	e.inquiry(t, acme.ID, "Gadget", &statuses[1].ID)
	e.inquiry(t, globex.ID, "Widget Pro", &statuses[1].ID)

	page, err := e.inquiries.List(ctx, InquiryQuery{Keyword: "widget"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	page, err = e.inquiries.List(ctx, InquiryQuery{Keyword: "acme"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	page, err = e.inquiries.List(ctx, InquiryQuery{StatusID: &statuses[1].ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	page, err = e.inquiries.List(ctx, InquiryQuery{CustomerID: &globex.ID, StatusID: &statuses[1].ID})
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "Widget Pro", page.Rows[0].ProductName)

	now := types.MonthOf(time.Now())
	page, err = e.inquiries.List(ctx, InquiryQuery{FromMonth: &now, ToMonth: &now})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)

	next := types.MonthOf(time.Now().AddDate(0, 1, 0))
	_, err = e.inquiries.List(ctx, InquiryQuery{FromMonth: &next, ToMonth: &now})
	assert.True(t, types.IsValidation(err))
}

func TestCreateInquiryResolvesReferences(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	acme := e.customer(t, "Acme", nil)

	_, err := e.inquiries.Create(ctx, NewInquiry{CustomerID: 42, ProductName: "Widget"})
	assert.True(t, types.IsNotFoundOf(err, "customer"))

	bogus := types.SnowflakeID(42)
	_, err = e.inquiries.Create(ctx, NewInquiry{CustomerID: acme.ID, ProductName: "Widget", StatusID: &bogus})
	assert.True(t, types.IsNotFoundOf(err, "inquiry_status"))

	_, err = e.inquiries.Create(ctx, NewInquiry{CustomerID: acme.ID})
	assert.True(t, types.IsValidation(err))

	_, err = e.inquiries.ListByCustomer(ctx, 42)
	assert.True(t, types.IsNotFoundOf(err, "customer"))
}

func TestUserService(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.users.CreateUser(ctx, NewUser{Name: "Li", Email: "bad"})
	assert.True(t, types.IsValidation(err))

	u, err := e.users.CreateUser(ctx, NewUser{Name: "Li", Email: " Li@Example.com "})
	require.NoError(t, err)
	assert.Equal(t, "li@example.com", u.Email)

	found, err := e.users.GetUserByEmail(ctx, "LI@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = e.users.GetUserByEmail(ctx, "nobody@example.com")
	assert.True(t, types.IsNotFound(err))

	updated, err := e.users.UpdateRole(ctx, u.ID, models.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, updated.Role)

	_, err = e.users.UpdateRole(ctx, u.ID, "root")
	assert.True(t, types.IsValidation(err))
}
