package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/conformly/conformly/internal/organization/domain"
	orgrepo "github.com/conformly/conformly/internal/organization/repository"
	glebsqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupOrgService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()
	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(glebsqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Organization{}))

	node, err := snowflake.NewNode(6)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: orgrepo.Provide(),
	})
	return svc, db, node
}

func TestGetOrganization(t *testing.T) {
	svc, db, node := setupOrgService(t)

	org := &domain.Organization{
		ID:   node.Generate(),
		Name: "Ferma Apuseni SRL",
		Slug: "ferma-apuseni",
	}
	require.NoError(t, db.Create(org).Error)

	got, err := svc.Get(context.Background(), org.ID)
	require.NoError(t, err)
	assert.Equal(t, org.ID, got.ID)
	assert.Equal(t, "Ferma Apuseni SRL", got.Name)
	assert.Nil(t, got.PlanType)
	assert.Nil(t, got.SubscriptionStatus)
}

func TestGetOrganizationNotFound(t *testing.T) {
	svc, _, node := setupOrgService(t)

	_, err := svc.Get(context.Background(), node.Generate())
	assert.ErrorIs(t, err, domain.ErrOrganizationNotFound)
}

func TestGetOrganizationRejectsZeroID(t *testing.T) {
	svc, _, _ := setupOrgService(t)

	_, err := svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidOrganization)
}

func TestListOrganizationsOrderedByCreation(t *testing.T) {
	svc, db, node := setupOrgService(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		org := &domain.Organization{
			ID:        node.Generate(),
			Name:      fmt.Sprintf("Org %d", i),
			Slug:      fmt.Sprintf("org-%d", i),
			CreatedAt: base.AddDate(0, 0, i),
			UpdatedAt: base.AddDate(0, 0, i),
		}
		require.NoError(t, db.Create(org).Error)
	}

	orgs, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, orgs, 3)
	assert.Equal(t, "Org 0", orgs[0].Name)
	assert.Equal(t, "Org 2", orgs[2].Name)
}

func TestUpdateSubscriptionFields(t *testing.T) {
	_, db, node := setupOrgService(t)
	repo := orgrepo.Provide()

	org := &domain.Organization{
		ID:   node.Generate(),
		Name: "Service Auto SRL",
		Slug: "service-auto",
	}
	require.NoError(t, db.Create(org).Error)

	plan := domain.PlanEnterprise
	status := domain.SubscriptionStatusActive
	err := repo.UpdateSubscriptionFields(context.Background(), db, org.ID, map[string]any{
		"plan_type":              plan,
		"subscription_status":    status,
		"stripe_subscription_id": "sub_99",
	})
	require.NoError(t, err)

	reloaded, err := repo.FindByID(context.Background(), db, org.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.PlanType)
	assert.Equal(t, domain.PlanEnterprise, *reloaded.PlanType)
	require.NotNil(t, reloaded.StripeSubscriptionID)
	assert.Equal(t, "sub_99", *reloaded.StripeSubscriptionID)

	// Unknown target surfaces as not found, not as a silent no-op.
	err = repo.UpdateSubscriptionFields(context.Background(), db, node.Generate(), map[string]any{
		"subscription_status": status,
	})
	assert.ErrorIs(t, err, domain.ErrOrganizationNotFound)
}

func TestUpdateSubscriptionFieldsLeavesInputAlone(t *testing.T) {
	_, db, node := setupOrgService(t)
	repo := orgrepo.Provide()

	org := &domain.Organization{
		ID:   node.Generate(),
		Name: "Panificatie SRL",
		Slug: "panificatie",
	}
	require.NoError(t, db.Create(org).Error)

	status := domain.SubscriptionStatusActive
	fields := map[string]any{"subscription_status": status}
	require.NoError(t, repo.UpdateSubscriptionFields(context.Background(), db, org.ID, fields))

	// The caller's map is input only; the timestamp column stays internal.
	assert.NotContains(t, fields, "updated_at")
	assert.Len(t, fields, 1)

	reloaded, err := repo.FindByID(context.Background(), db, org.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.SubscriptionStatus)
	assert.Equal(t, status, *reloaded.SubscriptionStatus)
}

func TestFindByStripeSubscriptionID(t *testing.T) {
	_, db, node := setupOrgService(t)
	repo := orgrepo.Provide()

	subID := "sub_lookup"
	org := &domain.Organization{
		ID:                   node.Generate(),
		Name:                 "Cabinet Medical SRL",
		Slug:                 "cabinet-medical",
		StripeSubscriptionID: &subID,
	}
	require.NoError(t, db.Create(org).Error)

	found, err := repo.FindByStripeSubscriptionID(context.Background(), db, "sub_lookup")
	require.NoError(t, err)
	assert.Equal(t, org.ID, found.ID)

	_, err = repo.FindByStripeSubscriptionID(context.Background(), db, "")
	assert.ErrorIs(t, err, domain.ErrOrganizationNotFound)

	_, err = repo.FindByStripeSubscriptionID(context.Background(), db, "sub_unknown")
	assert.ErrorIs(t, err, domain.ErrOrganizationNotFound)
}
