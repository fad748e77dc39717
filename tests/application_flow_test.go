package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solution-fragrance/portal/app/dto"
	businessflow "github.com/solution-fragrance/portal/business_flow"
	"github.com/solution-fragrance/portal/models"
	"github.com/solution-fragrance/portal/repository"
	testhelpers "github.com/solution-fragrance/portal/testing"
	"github.com/solution-fragrance/portal/utils"
)

func newApplicationFlow(db *testhelpers.TestDB) (businessflow.ApplicationFlow, repository.WholesaleApplicationRepository, repository.AuditLogRepository) {
	applicationRepo := repository.NewWholesaleApplicationRepository(db.DB)
	auditRepo := repository.NewAuditLogRepository(db.DB)
	// Captcha disabled: the public form accepts submissions without a challenge
	flow := businessflow.NewApplicationFlow(applicationRepo, auditRepo, nil, db.DB)
	return flow, applicationRepo, auditRepo
}

func TestSubmitApplication(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		flow, applicationRepo, auditRepo := newApplicationFlow(db)
		ctx := testhelpers.CreateTestContext()

		request := &dto.SubmitApplicationRequest{
			FullName: "  María Pérez ",
			Email:    "  Maria.Perez@Example.COM ",
			Phone:    utils.ToPtr("+5491155551234"),
			Answers: map[string]string{
				"business_type": "perfumery",
				"city":          "Córdoba",
			},
		}

		response, err := flow.Submit(ctx, request, businessflow.NewClientMetadata("198.51.100.4", "test-agent"))
		require.NoError(t, err)

		assert.True(t, response.Ok)
		assert.Equal(t, "pending", response.Status)
		assert.NotEmpty(t, response.ApplicationID)

		stored, err := applicationRepo.ByUUID(ctx, response.ApplicationID)
		require.NoError(t, err)
		require.NotNil(t, stored)

		// Email is lowercased and trimmed, the name trimmed, status forced pending
		assert.Equal(t, "maria.perez@example.com", stored.Email)
		assert.Equal(t, "María Pérez", stored.FullName)
		assert.Equal(t, models.ApplicationStatusPending, stored.Status)
		assert.Equal(t, "perfumery", stored.Answers["business_type"])
		assert.Nil(t, stored.ReviewedBy)
		assert.Nil(t, stored.WholesalePlan)

		// The submission is audited with the client address
		logs, err := auditRepo.ListByAction(ctx, models.AuditActionApplicationSubmitted, 10, 0)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		require.NotNil(t, logs[0].IPAddress)
		assert.Equal(t, "198.51.100.4", *logs[0].IPAddress)
		return nil
	})
	require.NoError(t, err)
}

func TestSubmitApplicationAllowsDuplicates(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		flow, applicationRepo, _ := newApplicationFlow(db)
		ctx := testhelpers.CreateTestContext()

		request := &dto.SubmitApplicationRequest{
			FullName: "Repeat Applicant",
			Email:    "repeat@example.com",
		}

		first, err := flow.Submit(ctx, request, nil)
		require.NoError(t, err)
		second, err := flow.Submit(ctx, request, nil)
		require.NoError(t, err)
		assert.NotEqual(t, first.ApplicationID, second.ApplicationID)

		email := "repeat@example.com"
		count, err := applicationRepo.Count(ctx, models.WholesaleApplicationFilter{Email: &email})
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
		return nil
	})
	require.NoError(t, err)
}
