package services

import (
	"context"
	"strings"
	"testing"

	"github.com/perpetual-help/egov-api/internal/config"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/models"
)

func setupApplicationServiceTest(t *testing.T) (*ApplicationService, func()) {
	logging.InitLogger()

	config.AppConfig.ApplicationsCollection = "test_applications"
	config.AppConfig.StatusAuditsCollection = "test_status_audits"

	ctx := context.Background()
	database := config.MongoDB

	audit := NewAuditService(logging.Logger)
	service := NewApplicationService(logging.Logger, audit)

	return service, func() {
		database.Collection(config.AppConfig.ApplicationsCollection).Drop(ctx)
		database.Collection(config.AppConfig.StatusAuditsCollection).Drop(ctx)
	}
}

func sampleApplication(t models.ApplicationType) *models.Application {
	return &models.Application{
		Type: t,
		Applicant: models.Applicant{
			Name:    "Juan Dela Cruz",
			Email:   "juan@example.com",
			Phone:   "+639171234567",
			Address: "123 Mabini Street",
		},
		Fields: map[string]interface{}{
			"fullName": "Juan Dela Cruz",
		},
	}
}

func TestCreate_AssignsReferenceAndPendingStatus(t *testing.T) {
	service, cleanup := setupApplicationServiceTest(t)
	defer cleanup()

	ctx := context.Background()

	resp, err := service.Create(ctx, sampleApplication(models.TypeCedula))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if resp.Status != models.StatusPending {
		t.Errorf("Create() status = %v, want pending", resp.Status)
	}
	if !strings.HasPrefix(resp.ReferenceNumber, "CED-") {
		t.Errorf("Create() reference = %v, want CED- prefix", resp.ReferenceNumber)
	}
	if resp.ID == "" {
		t.Error("Create() did not assign an id")
	}
}

func TestGetByReference_TrimsAndUppercases(t *testing.T) {
	service, cleanup := setupApplicationServiceTest(t)
	defer cleanup()

	ctx := context.Background()

	created, err := service.Create(ctx, sampleApplication(models.TypeBusinessPermit))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tracking, err := service.GetByReference(ctx, "  "+strings.ToLower(created.ReferenceNumber)+" ")
	if err != nil {
		t.Fatalf("GetByReference() error = %v", err)
	}
	if tracking.ReferenceNumber != created.ReferenceNumber {
		t.Errorf("GetByReference() reference = %v, want %v", tracking.ReferenceNumber, created.ReferenceNumber)
	}
	if tracking.Status != models.StatusPending {
		t.Errorf("GetByReference() status = %v, want pending", tracking.Status)
	}
}

func TestGetByReference_NotFound(t *testing.T) {
	service, cleanup := setupApplicationServiceTest(t)
	defer cleanup()

	_, err := service.GetByReference(context.Background(), "CED-2026-XXXXXX")
	if err != models.ErrReferenceNotFound {
		t.Errorf("GetByReference() error = %v, want ErrReferenceNotFound", err)
	}
}

func TestTransition_RejectRequiresReason(t *testing.T) {
	service, cleanup := setupApplicationServiceTest(t)
	defer cleanup()

	ctx := context.Background()

	created, err := service.Create(ctx, sampleApplication(models.TypeCedula))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = service.Transition(ctx, models.TypeCedula, created.ID,
		models.TransitionRequest{Status: models.StatusRejected}, "admin@test")
	if err != models.ErrReasonRequired {
		t.Errorf("Transition() error = %v, want ErrReasonRequired", err)
	}

	blank := "   "
	_, err = service.Transition(ctx, models.TypeCedula, created.ID,
		models.TransitionRequest{Status: models.StatusRejected, RejectionReason: &blank}, "admin@test")
	if err != models.ErrReasonRequired {
		t.Errorf("Transition() with blank reason error = %v, want ErrReasonRequired", err)
	}
}

func TestTransition_RejectedToApprovedRetainsReason(t *testing.T) {
	service, cleanup := setupApplicationServiceTest(t)
	defer cleanup()

	ctx := context.Background()

	created, err := service.Create(ctx, sampleApplication(models.TypeCedula))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	reason := "Missing proof of income"
	rejected, err := service.Transition(ctx, models.TypeCedula, created.ID,
		models.TransitionRequest{Status: models.StatusRejected, RejectionReason: &reason}, "admin@test")
	if err != nil {
		t.Fatalf("Transition() to rejected error = %v", err)
	}
	if rejected.RejectionReason != reason {
		t.Errorf("Transition() rejection reason = %v, want %v", rejected.RejectionReason, reason)
	}

	approved, err := service.Transition(ctx, models.TypeCedula, created.ID,
		models.TransitionRequest{Status: models.StatusApproved}, "admin@test")
	if err != nil {
		t.Fatalf("Transition() to approved error = %v", err)
	}
	if approved.Status != models.StatusApproved {
		t.Errorf("Transition() status = %v, want approved", approved.Status)
	}
	if approved.RejectionReason != reason {
		t.Errorf("Transition() dropped the prior rejection reason, got %q", approved.RejectionReason)
	}
}

func TestTransition_IllegalFromApproved(t *testing.T) {
	service, cleanup := setupApplicationServiceTest(t)
	defer cleanup()

	ctx := context.Background()

	created, err := service.Create(ctx, sampleApplication(models.TypeCedula))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := service.Transition(ctx, models.TypeCedula, created.ID,
		models.TransitionRequest{Status: models.StatusApproved}, "admin@test"); err != nil {
		t.Fatalf("Transition() to approved error = %v", err)
	}

	reason := "changed our minds"
	_, err = service.Transition(ctx, models.TypeCedula, created.ID,
		models.TransitionRequest{Status: models.StatusRejected, RejectionReason: &reason}, "admin@test")
	if err != models.ErrIllegalTransition {
		t.Errorf("Transition() approved->rejected error = %v, want ErrIllegalTransition", err)
	}
}

func TestTransition_RecordsAudit(t *testing.T) {
	service, cleanup := setupApplicationServiceTest(t)
	defer cleanup()

	ctx := context.Background()

	created, err := service.Create(ctx, sampleApplication(models.TypeGoodMoral))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := service.Transition(ctx, models.TypeGoodMoral, created.ID,
		models.TransitionRequest{Status: models.StatusApproved}, "reviewer@test"); err != nil {
		t.Fatalf("Transition() error = %v", err)
	}

	history, err := service.audit.History(ctx, "application", created.ID)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("History() len = %v, want 1", len(history))
	}
	if history[0].PreviousStatus != models.StatusPending || history[0].NewStatus != models.StatusApproved {
		t.Errorf("History() transition = %v -> %v, want pending -> approved",
			history[0].PreviousStatus, history[0].NewStatus)
	}
	if history[0].Actor != "reviewer@test" {
		t.Errorf("History() actor = %v, want reviewer@test", history[0].Actor)
	}
}

func TestDelete_OnlyLegitimacy(t *testing.T) {
	service, cleanup := setupApplicationServiceTest(t)
	defer cleanup()

	ctx := context.Background()

	cedula, err := service.Create(ctx, sampleApplication(models.TypeCedula))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := service.Delete(ctx, models.TypeCedula, cedula.ID); err != models.ErrIllegalTransition {
		t.Errorf("Delete() cedula error = %v, want ErrIllegalTransition", err)
	}

	legit, err := service.Create(ctx, sampleApplication(models.TypeLegitimacy))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := service.Delete(ctx, models.TypeLegitimacy, legit.ID); err != nil {
		t.Errorf("Delete() legitimacy error = %v", err)
	}
	if _, err := service.GetByID(ctx, models.TypeLegitimacy, legit.ID); err != models.ErrApplicationNotFound {
		t.Errorf("GetByID() after delete error = %v, want ErrApplicationNotFound", err)
	}
}

func TestList_FiltersByStatusAndSearch(t *testing.T) {
	service, cleanup := setupApplicationServiceTest(t)
	defer cleanup()

	ctx := context.Background()

	first, err := service.Create(ctx, sampleApplication(models.TypeCedula))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	other := sampleApplication(models.TypeCedula)
	other.Applicant.Name = "Maria Clara Santos"
	if _, err := service.Create(ctx, other); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	page, err := service.List(ctx, models.TypeCedula, 1, 10, "", "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.Total != 2 {
		t.Errorf("List() total = %v, want 2", page.Total)
	}

	page, err = service.List(ctx, models.TypeCedula, 1, 10, "", "dela cruz")
	if err != nil {
		t.Fatalf("List() with search error = %v", err)
	}
	if page.Total != 1 {
		t.Errorf("List() search total = %v, want 1", page.Total)
	}

	page, err = service.List(ctx, models.TypeCedula, 1, 10, models.StatusApproved, "")
	if err != nil {
		t.Fatalf("List() with status error = %v", err)
	}
	if page.Total != 0 {
		t.Errorf("List() approved total = %v, want 0", page.Total)
	}

	if _, err := service.List(ctx, models.TypeCedula, 1, 10, "bogus", ""); err != models.ErrInvalidStatus {
		t.Errorf("List() bogus status error = %v, want ErrInvalidStatus", err)
	}

	_ = first
}
