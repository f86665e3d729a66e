// internal/workers/submission/create-application-record/handler_test.go
package createapplicationrecord

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	commonErrors "boreal-workers/internal/common/errors"
	"boreal-workers/internal/common/logger"
	"boreal-workers/internal/common/staff"
	"boreal-workers/internal/engine/dedupe"
	"boreal-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	issuer := dedupe.NewKeyIssuer(dedupe.NewMemoryStore())
	return NewHandler(LoadConfig(), db, issuer, nil, logger.NewTestLogger(t)), mock
}

type stubSubmitter struct {
	record *staff.ApplicationRecord
	resp   *staff.CreateApplicationResponse
	err    error
}

func (s *stubSubmitter) CreateApplication(_ context.Context, record *staff.ApplicationRecord) (*staff.CreateApplicationResponse, error) {
	s.record = record
	return s.resp, s.err
}

func testInput() *Input {
	return &Input{
		ContactEmail: "jane@acme.com",
		ContactPhone: "+15551234567",
		Intake:       models.Intake{Country: models.CountryCA, AmountRequested: 40000},
		MatchedProducts: []models.Product{
			{ID: "lp-1", Active: true},
		},
		RequiredDocuments: []models.RequiredDocument{
			{ID: "bank_statements", Label: "Last 6 months of bank statements", Order: 10},
		},
	}
}

func TestExecute_CreatesRecord(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(`SELECT id, status, created_at FROM applications`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := h.Execute(context.Background(), testInput())

	require.NoError(t, err)
	assert.NotEmpty(t, output.ApplicationID)
	assert.NotEmpty(t, output.IdempotencyKey)
	assert.Equal(t, models.ApplicationStatusSubmitted, output.Status)
	assert.False(t, output.Duplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_DuplicateCollapsesToOriginal(t *testing.T) {
	h, mock := newTestHandler(t)

	rows := sqlmock.NewRows([]string{"id", "status", "created_at"}).
		AddRow("app-original", "submitted", "2026-08-29T10:00:00Z")
	mock.ExpectQuery(`SELECT id, status, created_at FROM applications`).
		WillReturnRows(rows)

	output, err := h.Execute(context.Background(), testInput())

	require.NoError(t, err)
	assert.True(t, output.Duplicate)
	assert.Equal(t, "app-original", output.ApplicationID)
	assert.Equal(t, models.ApplicationStatusDuplicate, output.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_SameContactReusesIdempotencyKey(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(`SELECT id, status, created_at FROM applications`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	first, err := h.Execute(context.Background(), testInput())
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "status", "created_at"}).
		AddRow(first.ApplicationID, "submitted", first.CreatedAt)
	mock.ExpectQuery(`SELECT id, status, created_at FROM applications`).
		WillReturnRows(rows)

	second, err := h.Execute(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, first.IdempotencyKey, second.IdempotencyKey)
	assert.True(t, second.Duplicate)
}

func TestExecute_MissingEmail(t *testing.T) {
	h, _ := newTestHandler(t)

	input := testInput()
	input.ContactEmail = ""

	_, err := h.Execute(context.Background(), input)
	assert.ErrorIs(t, err, ErrMissingContact)
}

func TestExecute_AuditFailureDoesNotBlock(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(`SELECT id, status, created_at FROM applications`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnError(assert.AnError)

	output, err := h.Execute(context.Background(), testInput())

	require.NoError(t, err)
	assert.False(t, output.Duplicate)
}

func TestExecute_InsertFailure(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(`SELECT id, status, created_at FROM applications`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnError(assert.AnError)

	_, err := h.Execute(context.Background(), testInput())
	assert.ErrorIs(t, err, ErrDatabaseInsertFailed)
}

func TestExecute_ForwardsToStaff(t *testing.T) {
	h, mock := newTestHandler(t)
	submitter := &stubSubmitter{resp: &staff.CreateApplicationResponse{ID: "staff-app-9", Status: "submitted"}}
	h.staff = submitter

	mock.ExpectQuery(`SELECT id, status, created_at FROM applications`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := h.Execute(context.Background(), testInput())

	require.NoError(t, err)
	assert.Equal(t, "staff-app-9", output.StaffApplicationID)

	require.NotNil(t, submitter.record)
	assert.Equal(t, output.IdempotencyKey, submitter.record.IdempotencyKey)
	assert.Equal(t, "jane@acme.com", submitter.record.ContactEmail)
	assert.Equal(t, []string{"lp-1"}, submitter.record.MatchedProductIDs)
	require.Len(t, submitter.record.RequiredDocuments, 1)
	assert.Equal(t, "bank_statements", submitter.record.RequiredDocuments[0].ID)
}

func TestExecute_StaffConflictYieldsOriginalID(t *testing.T) {
	h, mock := newTestHandler(t)
	h.staff = &stubSubmitter{
		resp: &staff.CreateApplicationResponse{ID: "staff-app-1", Duplicate: true},
		err:  commonErrors.NewDuplicateSubmissionError("staff-app-1"),
	}

	mock.ExpectQuery(`SELECT id, status, created_at FROM applications`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := h.Execute(context.Background(), testInput())

	require.NoError(t, err)
	assert.Equal(t, "staff-app-1", output.StaffApplicationID)
}

func TestExecute_StaffOutageDoesNotBlock(t *testing.T) {
	h, mock := newTestHandler(t)
	h.staff = &stubSubmitter{err: errors.New("connection refused")}

	mock.ExpectQuery(`SELECT id, status, created_at FROM applications`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := h.Execute(context.Background(), testInput())

	require.NoError(t, err)
	assert.NotEmpty(t, output.ApplicationID)
	assert.Empty(t, output.StaffApplicationID)
}
