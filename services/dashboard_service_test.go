package services

import (
	"context"
	"crm-app/models"
	"crm-app/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardDrillDown(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	statuses := e.statuses(t)
	alice := e.user(t, "alice@example.com")
	bob := e.user(t, "bob@example.com")

	acme := e.customer(t, "Acme", &alice.ID)
	initech := e.customer(t, "Initech", &alice.ID)
	globex := e.customer(t, "Globex", &bob.ID)

	widget := e.inquiry(t, acme.ID, "Widget", &statuses[0].ID)
	e.inquiry(t, acme.ID, "Gadget", &statuses[1].ID)
	e.inquiry(t, initech.ID, "Bolt", nil)
	e.inquiry(t, globex.ID, "Nut", &statuses[0].ID)

	_, err := e.followUps.AddFollowUp(ctx, NewFollowUp{InquiryID: widget.ID, Method: models.MethodEmail, Content: "hello"})
	require.NoError(t, err)

	all, err := e.dashboard.View(ctx, DashboardQuery{})
	require.NoError(t, err)
	assert.Len(t, all.Users, 2)
	assert.Len(t, all.Customers, 3)
	assert.Len(t, all.Inquiries, 4)
	assert.Nil(t, all.FollowUps)
	assert.Equal(t, 2, all.StatusCounts[0].Count)

	mine, err := e.dashboard.View(ctx, DashboardQuery{UserID: &alice.ID})
	require.NoError(t, err)
	assert.Len(t, mine.Customers, 2)
	assert.Len(t, mine.Inquiries, 3)
	last := mine.StatusCounts[len(mine.StatusCounts)-1]
	assert.Nil(t, last.StatusID)
	assert.Equal(t, 1, last.Count)

	one, err := e.dashboard.View(ctx, DashboardQuery{UserID: &alice.ID, CustomerID: &acme.ID})
	require.NoError(t, err)
	assert.Len(t, one.Inquiries, 2)
	require.Contains(t, one.FollowUps, widget.ID)
	assert.Len(t, one.FollowUps[widget.ID], 1)
}

func TestUserCustomersGroupsInquiries(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice@example.com")
	acme := e.customer(t, "Acme", &alice.ID)
	empty := e.customer(t, "Empty Co", &alice.ID)
	e.inquiry(t, acme.ID, "Widget", nil)
	e.inquiry(t, acme.ID, "Gadget", nil)

	list, err := e.dashboard.UserCustomers(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	byID := map[types.SnowflakeID]CustomerWithInquiries{}
	for _, c := range list {
		byID[c.ID] = c
	}
	assert.Len(t, byID[acme.ID].Inquiries, 2)
	assert.NotNil(t, byID[empty.ID].Inquiries)
	assert.Empty(t, byID[empty.ID].Inquiries)

	_, err = e.dashboard.UserCustomers(ctx, types.SnowflakeID(5))
	assert.True(t, types.IsNotFoundOf(err, "user"))
}
