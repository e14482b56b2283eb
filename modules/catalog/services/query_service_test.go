package services_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/submission"
	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/usecase"
	"github.com/iota-uz/usecase-catalog/modules/catalog/services"
)

var useCaseColumns = []string{"id", "use_case", "product", "success_criterion", "measurement"}

func TestQueryService_Filters(t *testing.T) {
	f := newFixture(t)
	f.mock.MatchExpectationsInOrder(false)
	f.mock.ExpectQuery(q("SELECT DISTINCT use_case FROM use_cases ORDER BY use_case")).
		WillReturnRows(sqlmock.NewRows([]string{"use_case"}).AddRow("Checkout").AddRow("Onboarding"))
	f.mock.ExpectQuery(q("SELECT DISTINCT product FROM use_cases ORDER BY product")).
		WillReturnRows(sqlmock.NewRows([]string{"product"}).AddRow("App").AddRow("Wallet"))

	filters, err := f.query.Filters(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Checkout", "Onboarding"}, filters.UseCases)
	assert.Equal(t, []string{"App", "Wallet"}, filters.Products)
}

type stubUseCaseRepository struct {
	usecase.Repository
	names       []string
	productsErr error
}

func (s *stubUseCaseRepository) DistinctUseCases(context.Context) ([]string, error) {
	return s.names, nil
}

func (s *stubUseCaseRepository) DistinctProducts(context.Context) ([]string, error) {
	return nil, s.productsErr
}

func TestQueryService_FiltersFailure(t *testing.T) {
	repo := &stubUseCaseRepository{names: []string{"Checkout"}, productsErr: errors.New("timeout")}
	svc := services.NewQueryService(repo, nil)

	_, err := svc.Filters(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "distinct products")
	assert.Contains(t, err.Error(), "timeout")
}

func TestQueryService_AllSentinelMatchesNoFilter(t *testing.T) {
	f := newFixture(t)
	listSQL := "FROM use_cases ORDER BY use_case, product, id"
	for i := 0; i < 2; i++ {
		f.mock.ExpectQuery(q(listSQL)).
			WillReturnRows(sqlmock.NewRows(useCaseColumns).
				AddRow(int64(1), "Checkout", "App", "a", "m").
				AddRow(int64(2), "Checkout", "Wallet", "b", "m"))
	}

	all, err := f.query.ListUseCases(f.ctx, &usecase.FindParams{UseCase: "all", Product: "all"})
	require.NoError(t, err)
	none, err := f.query.ListUseCases(f.ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, none, all)
	assert.Len(t, all, 2)
}

func TestQueryService_ListPending(t *testing.T) {
	f := newFixture(t)
	cols := []string{"id", "use_case_id", "original_criterion", "suggested_criterion", "submitted_at",
		"catalog_use_case", "catalog_product", "catalog_measurement"}
	f.mock.ExpectQuery(q("ORDER BY p.submitted_at DESC")).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(2), int64(4), "", "new", time.Now(), "Checkout", "Wallet", "weekly").
			AddRow(int64(1), nil, "garbage", "garbage", time.Now().Add(-time.Hour), nil, nil, nil))

	views, err := f.query.ListPending(f.ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Checkout", *views[0].UseCase)
	assert.Nil(t, views[1].Submission)
	assert.Equal(t, submission.KindNew, views[1].Row.Kind())
}

func TestExportService_JSON(t *testing.T) {
	f := newFixture(t)
	f.mock.ExpectQuery(q("WHERE product = $1")).WithArgs("Wallet").
		WillReturnRows(sqlmock.NewRows(useCaseColumns).AddRow(int64(3), "Checkout", "Wallet", "95%", "weekly"))

	buf := &bytes.Buffer{}
	n, err := f.export.Export(f.ctx, buf, services.ExportJSON, &usecase.FindParams{Product: "Wallet"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.JSONEq(t, `[{"id":3,"UseCase":"Checkout","Product":"Wallet","SuccessCriterion":"95%","Measurement":"weekly"}]`, buf.String())
}

func TestExportService_XLSX(t *testing.T) {
	f := newFixture(t)
	f.mock.ExpectQuery(q("FROM use_cases ORDER BY")).
		WillReturnRows(sqlmock.NewRows(useCaseColumns).
			AddRow(int64(3), "Checkout", "Wallet", "95%", "weekly").
			AddRow(int64(4), "Onboarding", "App", "90%", "daily"))

	buf := &bytes.Buffer{}
	n, err := f.export.Export(f.ctx, buf, services.ExportXLSX, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	wb, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()
	rows, err := wb.GetRows("UseCases")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "UseCase", "Product", "SuccessCriterion", "Measurement"}, rows[0])
	assert.Equal(t, []string{"4", "Onboarding", "App", "90%", "daily"}, rows[2])
}

func TestExportService_UnknownFormat(t *testing.T) {
	f := newFixture(t)
	f.mock.ExpectQuery(q("FROM use_cases")).WillReturnRows(sqlmock.NewRows(useCaseColumns))

	_, err := f.export.Export(f.ctx, &bytes.Buffer{}, services.ExportFormat("csv"), nil)
	require.Error(t, err)
}
