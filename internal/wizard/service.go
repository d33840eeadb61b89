// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wizard

import (
	stdctx "context"
	"log/slog"
	"time"

	"github.com/taibuivan/bhugol/internal/core/enrollment"
	"github.com/taibuivan/bhugol/internal/core/registry"
	"github.com/taibuivan/bhugol/internal/core/verification"
	"github.com/taibuivan/bhugol/internal/platform/apperr"
	"github.com/taibuivan/bhugol/internal/platform/validate"
	"github.com/taibuivan/bhugol/pkg/uuid"
)

// DraftStore persists drafts between actions. Implemented by
// [session.Store]; kept as an interface so machine-level tests can run on a
// map.
type DraftStore interface {
	Save(context stdctx.Context, draft Draft) error
	Get(context stdctx.Context, draftID string) (Draft, error)
	Delete(context stdctx.Context, draftID string) error
}

// Service owns the side-effectful edges of the wizard: draft persistence,
// the verification call, and the final submission. All state transitions go
// through the pure [Apply] reducer.
type Service struct {
	store    DraftStore
	verifier *verification.Service
	builder  *enrollment.Service
	logger   *slog.Logger

	now func() time.Time
}

// NewService constructs the wizard [Service].
func NewService(store DraftStore, verifier *verification.Service, builder *enrollment.Service, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		verifier: verifier,
		builder:  builder,
		logger:   logger,
		now:      time.Now,
	}
}

// Start opens a new wizard run and persists its initial draft.
func (service *Service) Start(context stdctx.Context) (Draft, error) {
	draft := NewDraft(uuid.New(), service.now().UTC())
	if err := service.store.Save(context, draft); err != nil {
		return Draft{}, err
	}

	service.logger.InfoContext(context, "wizard_started",
		slog.String("draft_id", draft.ID),
	)
	return draft, nil
}

// Get loads the current draft for a run.
func (service *Service) Get(context stdctx.Context, draftID string) (Draft, error) {
	return service.store.Get(context, draftID)
}

// Do applies one client action to the draft and persists the result.
// Result actions (verifyResult, submitResult) are service-internal and
// rejected here.
func (service *Service) Do(context stdctx.Context, draftID string, action Action) (Draft, error) {
	if action.Type == ActionVerifyResult || action.Type == ActionSubmitResult {
		return Draft{}, validate.RequiredError("type", "Unknown wizard action")
	}

	draft, err := service.store.Get(context, draftID)
	if err != nil {
		return Draft{}, err
	}

	next, err := Apply(draft, action, service.now().UTC())
	if err != nil {
		return Draft{}, err
	}

	if err := service.store.Save(context, next); err != nil {
		return Draft{}, err
	}
	return next, nil
}

/*
Verify runs the identity check for the draft's current identity fields and
folds the result back into the draft.

Description: The draft's sequence is captured before the verification call.
If the draft has moved on by the time the result arrives (another action was
applied, or the applicant left the identity check), the result is dropped by
the reducer and the stored draft is returned unchanged.

Parameters:
  - context: context.Context
  - draftID: string

Returns:
  - Draft: The draft after (possibly) folding in the result
  - *verification.Result: The verification snapshot
  - error: NOT_FOUND for expired drafts, VALIDATION_ERROR for bad identities
*/
func (service *Service) Verify(context stdctx.Context, draftID string) (Draft, *verification.Result, error) {
	draft, err := service.store.Get(context, draftID)
	if err != nil {
		return Draft{}, nil, err
	}
	issuedAt := draft.Sequence

	identity, err := registry.NewIdentity(draft.AadharNumber, draft.VoterID)
	if err != nil {
		return Draft{}, nil, err
	}

	result, err := service.verifier.Verify(context, identity)
	if err != nil {
		return Draft{}, nil, err
	}

	// Reload: other actions may have landed while the verification ran.
	current, err := service.store.Get(context, draftID)
	if err != nil {
		return Draft{}, nil, err
	}

	next, err := Apply(current, Action{
		Type:         ActionVerifyResult,
		Sequence:     issuedAt,
		VerifyResult: result,
	}, service.now().UTC())
	if err != nil {
		return Draft{}, nil, err
	}

	if err := service.store.Save(context, next); err != nil {
		return Draft{}, nil, err
	}
	return next, result, nil
}

/*
Submit hands the finished draft to the registration builder.

Description: Requires the draft to sit on the submit step. The builder's
answer is folded back through the reducer: success completes the run and
deletes the draft; DUPLICATE_IDENTITY sends the run back to the identity
check; CATALOG_CONFLICT returns to the conflicting step with the offending
ids surfaced. The builder error is returned alongside the updated draft so
the handler can present both.

Parameters:
  - context: context.Context
  - draftID: string
  - documents: map[string][]byte (slot → bytes; required in new mode only)

Returns:
  - Draft: The draft after folding in the outcome
  - *registry.Registration: The committed registration on success
  - error: The builder error, or nil on success
*/
func (service *Service) Submit(context stdctx.Context, draftID string, documents map[string][]byte) (Draft, *registry.Registration, error) {
	draft, err := service.store.Get(context, draftID)
	if err != nil {
		return Draft{}, nil, err
	}
	if draft.Step != StepSubmit {
		return Draft{}, nil, validate.RequiredError("step", "The wizard is not ready to submit")
	}
	issuedAt := draft.Sequence

	registration, submitErr := service.commit(context, draft, documents)

	outcome := Action{Type: ActionSubmitResult, Sequence: issuedAt}
	switch {
	case submitErr == nil:
		outcome.Outcome = SubmitSucceeded
	case apperr.IsCode(submitErr, "DUPLICATE_IDENTITY"):
		outcome.Outcome = SubmitDuplicateIdentity
	case apperr.IsCode(submitErr, "CATALOG_CONFLICT"):
		appError := apperr.As(submitErr)
		outcome.Outcome = SubmitCatalogConflict
		outcome.ConflictKind = appError.ConflictKind
		outcome.ConflictingIDs = appError.ConflictIDs
	default:
		// Validation and infrastructure errors leave the draft untouched.
		return draft, nil, submitErr
	}

	next, err := Apply(draft, outcome, service.now().UTC())
	if err != nil {
		return Draft{}, nil, err
	}

	if next.Step == StepDone {
		if err := service.store.Delete(context, draftID); err != nil {
			service.logger.WarnContext(context, "wizard_draft_delete_failed",
				slog.String("draft_id", draftID),
				slog.String("error", err.Error()),
			)
		}
		service.logger.InfoContext(context, "wizard_completed",
			slog.String("draft_id", draftID),
			slog.String("registration_id", registration.ID),
			slog.String("mode", string(draft.Mode)),
		)
		return next, registration, nil
	}

	if err := service.store.Save(context, next); err != nil {
		return Draft{}, nil, err
	}
	return next, nil, submitErr
}

// commit routes the draft to the builder path matching its mode.
func (service *Service) commit(context stdctx.Context, draft Draft, documents map[string][]byte) (*registry.Registration, error) {
	details := make([]registry.ProductionDetail, 0, len(draft.ExistingProductIDs))
	for _, productID := range draft.ExistingProductIDs {
		details = append(details, draft.ProductionDetails[productID])
	}

	if draft.Mode == ModeAdditional {
		return service.builder.CreateAdditional(context, enrollment.AdditionalRegistrationInput{
			BaseRegistrationID: draft.BaseRegistrationID,
			AadharNumber:       draft.AadharNumber,
			VoterID:            draft.VoterID,
			CategoryIDs:        draft.CategoryIDs,
			ExistingProductIDs: draft.ExistingProductIDs,
			SelectedProductIDs: draft.SelectedProductIDs,
			ProductionDetails:  details,
		})
	}

	return service.builder.CreateNew(context, enrollment.NewRegistrationInput{
		AadharNumber:       draft.AadharNumber,
		VoterID:            draft.VoterID,
		PersonalInfo:       draft.PersonalInfo,
		CategoryIDs:        draft.CategoryIDs,
		ExistingProductIDs: draft.ExistingProductIDs,
		SelectedProductIDs: draft.SelectedProductIDs,
		ProductionDetails:  details,
		Documents:          documents,
	})
}
