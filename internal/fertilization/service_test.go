package fertilization

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroplan-erp/agroplan/internal/report"
)

type mockRepo struct {
	replaceErr   error
	replaced     int
	inserted     int
	updateErr    error
	deleteErr    error
	deletedCount int64
	listRecords  []Record
	listTotal    int
	listErr      error

	replaceCalls int
	lastTable    Table
	lastRecords  []Record
}

func (m *mockRepo) ReplaceBatch(ctx context.Context, table Table, records []Record) (int, int, error) {
	m.replaceCalls++
	m.lastTable = table
	m.lastRecords = records
	if m.replaceErr != nil {
		return 0, 0, m.replaceErr
	}
	return m.replaced, m.inserted, nil
}

func (m *mockRepo) Update(ctx context.Context, table Table, id int64, rec Record) error {
	m.lastTable = table
	return m.updateErr
}

func (m *mockRepo) Delete(ctx context.Context, table Table, id int64) error {
	m.lastTable = table
	return m.deleteErr
}

func (m *mockRepo) DeleteByPlantation(ctx context.Context, table Table, code string) (int64, error) {
	m.lastTable = table
	return m.deletedCount, m.deleteErr
}

func (m *mockRepo) DeleteAll(ctx context.Context, table Table) (int64, error) {
	m.lastTable = table
	return m.deletedCount, m.deleteErr
}

func (m *mockRepo) List(ctx context.Context, table Table, req ListRequest) ([]Record, int, error) {
	return m.listRecords, m.listTotal, m.listErr
}

type mockInvalidator struct {
	tags []string
	err  error
}

func (m *mockInvalidator) Invalidate(ctx context.Context, tag string) error {
	if m.err != nil {
		return m.err
	}
	m.tags = append(m.tags, tag)
	return nil
}

type mockEnqueuer struct {
	triggers []string
	err      error
}

func (m *mockEnqueuer) EnqueueReportWarmup(ctx context.Context, trigger string) error {
	m.triggers = append(m.triggers, trigger)
	return m.err
}

func validInput() RecordInput {
	return RecordInput{
		Category:         "TM",
		PlantationCode:   "SGH",
		PlantationName:   "Kebun Sei Garo Hulu",
		Date:             "2026-04-02",
		Division:         "AFD-1",
		FertilizerType:   "Urea",
		ApplicationRound: 1,
		MassKg:           120.5,
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestReplaceBatchInvalidatesCache(t *testing.T) {
	repo := &mockRepo{replaced: 2, inserted: 5}
	cache := &mockInvalidator{}
	enq := &mockEnqueuer{}
	svc := NewService(repo, cache, enq, newLogger())

	result, err := svc.ReplaceBatch(context.Background(), TableActuals, BatchRequest{Records: []RecordInput{validInput()}})
	require.NoError(t, err)

	assert.NotEmpty(t, result.BatchID)
	assert.Equal(t, 5, result.Inserted)
	assert.Equal(t, 2, result.Replaced)
	assert.Equal(t, TableActuals, repo.lastTable)
	require.Len(t, repo.lastRecords, 1)
	assert.Equal(t, report.CategoryTM, repo.lastRecords[0].Category)
	require.NotNil(t, repo.lastRecords[0].Date)

	assert.Equal(t, []string{report.TagActuals}, cache.tags)
	assert.Equal(t, []string{"batch"}, enq.triggers)
}

func TestReplaceBatchEmpty(t *testing.T) {
	repo := &mockRepo{}
	cache := &mockInvalidator{}
	svc := NewService(repo, cache, nil, newLogger())

	_, err := svc.ReplaceBatch(context.Background(), TablePlans, BatchRequest{})
	require.ErrorIs(t, err, ErrEmptyBatch)
	assert.Zero(t, repo.replaceCalls)
	assert.Empty(t, cache.tags)
}

func TestReplaceBatchRejectsInvalidRecord(t *testing.T) {
	repo := &mockRepo{}
	cache := &mockInvalidator{}
	svc := NewService(repo, cache, nil, newLogger())

	bad := validInput()
	bad.Category = "MATURE"
	_, err := svc.ReplaceBatch(context.Background(), TablePlans, BatchRequest{Records: []RecordInput{bad}})
	require.Error(t, err)
	var verr validator.ValidationErrors
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, repo.replaceCalls)
	assert.Empty(t, cache.tags)
}

func TestReplaceBatchRepoFailureSkipsInvalidation(t *testing.T) {
	repo := &mockRepo{replaceErr: errors.New("boom")}
	cache := &mockInvalidator{}
	svc := NewService(repo, cache, nil, newLogger())

	_, err := svc.ReplaceBatch(context.Background(), TablePlans, BatchRequest{Records: []RecordInput{validInput()}})
	require.Error(t, err)
	assert.Empty(t, cache.tags)
}

func TestReplaceBatchInvalidationFailureFailsWrite(t *testing.T) {
	repo := &mockRepo{inserted: 1}
	cache := &mockInvalidator{err: errors.New("redis down")}
	svc := NewService(repo, cache, nil, newLogger())

	_, err := svc.ReplaceBatch(context.Background(), TablePlans, BatchRequest{Records: []RecordInput{validInput()}})
	require.Error(t, err)
}

func TestReplaceBatchWarmupFailureIsBestEffort(t *testing.T) {
	repo := &mockRepo{inserted: 1}
	cache := &mockInvalidator{}
	enq := &mockEnqueuer{err: errors.New("queue full")}
	svc := NewService(repo, cache, enq, newLogger())

	_, err := svc.ReplaceBatch(context.Background(), TablePlans, BatchRequest{Records: []RecordInput{validInput()}})
	require.NoError(t, err)
	assert.Equal(t, []string{report.TagPlans}, cache.tags)
}

func TestUpdateRecordInvalidates(t *testing.T) {
	repo := &mockRepo{}
	cache := &mockInvalidator{}
	svc := NewService(repo, cache, nil, newLogger())

	require.NoError(t, svc.UpdateRecord(context.Background(), TablePlans, 7, validInput()))
	assert.Equal(t, []string{report.TagPlans}, cache.tags)
}

func TestUpdateRecordNotFound(t *testing.T) {
	repo := &mockRepo{updateErr: ErrNotFound}
	cache := &mockInvalidator{}
	svc := NewService(repo, cache, nil, newLogger())

	err := svc.UpdateRecord(context.Background(), TablePlans, 7, validInput())
	require.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, cache.tags)
}

func TestDeleteByPlantationSkipsInvalidationWhenNothingDeleted(t *testing.T) {
	repo := &mockRepo{deletedCount: 0}
	cache := &mockInvalidator{}
	svc := NewService(repo, cache, nil, newLogger())

	count, err := svc.DeleteByPlantation(context.Background(), TableActuals, "SGH")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, cache.tags)

	repo.deletedCount = 3
	count, err = svc.DeleteByPlantation(context.Background(), TableActuals, "SGH")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, []string{report.TagActuals}, cache.tags)
}

func TestDeleteAllInvalidates(t *testing.T) {
	repo := &mockRepo{deletedCount: 40}
	cache := &mockInvalidator{}
	svc := NewService(repo, cache, nil, newLogger())

	count, err := svc.DeleteAll(context.Background(), TablePlans)
	require.NoError(t, err)
	assert.Equal(t, int64(40), count)
	assert.Equal(t, []string{report.TagPlans}, cache.tags)
}

func TestListBuildsPagination(t *testing.T) {
	repo := &mockRepo{listRecords: []Record{{ID: 1}, {ID: 2}}, listTotal: 12}
	svc := NewService(repo, nil, nil, newLogger())

	records, page, err := svc.List(context.Background(), TablePlans, ListRequest{Page: 2, PerPage: 5})
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 2, page.Page)
}

func TestParseTable(t *testing.T) {
	table, ok := ParseTable("plans")
	require.True(t, ok)
	assert.Equal(t, TablePlans, table)

	table, ok = ParseTable("actuals")
	require.True(t, ok)
	assert.Equal(t, TableActuals, table)

	_, ok = ParseTable("forecasts")
	assert.False(t, ok)
}
