package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"emptycup/internal/models"
	"emptycup/internal/repositories"
	"emptycup/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockDesignerRepository is a mock implementation of repositories.DesignerRepository
type MockDesignerRepository struct {
	mock.Mock
}

func (m *MockDesignerRepository) GetAll(ctx context.Context) ([]models.Designer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Designer), args.Error(1)
}

func (m *MockDesignerRepository) GetByID(ctx context.Context, id uint) (*models.Designer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Designer), args.Error(1)
}

func (m *MockDesignerRepository) Create(ctx context.Context, designer *models.Designer) error {
	args := m.Called(ctx, designer)
	return args.Error(0)
}

func (m *MockDesignerRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDesignerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDesignerRepository) GetRecent(ctx context.Context, limit int) ([]models.Designer, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Designer), args.Error(1)
}

func (m *MockDesignerRepository) GetNewest(ctx context.Context) ([]models.Designer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Designer), args.Error(1)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishEvent(eventType string, payload map[string]interface{}) error {
	args := m.Called(eventType, payload)
	return args.Error(0)
}

func designerRecord(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"rating":      4.5,
		"description": "Studio",
		"projects":    float64(20),
		"experience":  float64(6),
		"price_range": "$$",
		"phone1":      "+91 - 1",
		"phone2":      "+91 - 2",
		"location":    "Delhi",
		"specialties": []interface{}{"A", "B"},
		"portfolio":   []interface{}{"https://example.com/p.jpg"},
	}
}

func TestDesignerService_GetAllDesigners(t *testing.T) {
	mockRepo := new(MockDesignerRepository)
	service := services.NewDesignerService(mockRepo, nil, zap.NewNop())
	ctx := context.Background()

	expected := []models.Designer{{ID: 1, Name: "A", Experience: 8}, {ID: 2, Name: "B", Experience: 5}}
	mockRepo.On("GetAll", ctx).Return(expected, nil).Once()

	designers, err := service.GetAllDesigners(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expected, designers)
	mockRepo.AssertExpectations(t)
}

func TestDesignerService_GetDesignerByID(t *testing.T) {
	mockRepo := new(MockDesignerRepository)
	service := services.NewDesignerService(mockRepo, nil, zap.NewNop())
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, uint(1)).Return(&models.Designer{ID: 1, Name: "A"}, nil).Once()
	designer, err := service.GetDesignerByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, "A", designer.Name)

	mockRepo.On("GetByID", ctx, uint(99)).Return(nil, fmt.Errorf("designer with ID 99: %w", repositories.ErrNotFound)).Once()
	designer, err = service.GetDesignerByID(ctx, 99)
	assert.Nil(t, designer)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
	mockRepo.AssertExpectations(t)
}

func TestDesignerService_CreateDesigner(t *testing.T) {
	mockRepo := new(MockDesignerRepository)
	publisher := new(MockPublisher)
	service := services.NewDesignerService(mockRepo, publisher, zap.NewNop())
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Designer")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Designer).ID = 11
		}).
		Return(nil).Once()
	publisher.On("PublishEvent", services.EventDesignerCreated, map[string]interface{}{
		"designer_id": uint(11),
		"name":        "Fresh",
	}).Return(nil).Once()

	designer, err := service.CreateDesigner(ctx, designerRecord("Fresh"))
	require.NoError(t, err)
	assert.Equal(t, uint(11), designer.ID)
	assert.Equal(t, models.Rating(4.5), designer.Rating)
	assert.Equal(t, 20, designer.Projects)
	assert.Equal(t, 6, designer.Experience)
	assert.Equal(t, "$$", designer.PriceRange)
	assert.Equal(t, []string{"A", "B"}, []string(designer.Specialties))
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestDesignerService_CreateDesignerValidationError(t *testing.T) {
	mockRepo := new(MockDesignerRepository)
	service := services.NewDesignerService(mockRepo, nil, zap.NewNop())

	record := designerRecord("Bad")
	delete(record, "name")
	record["rating"] = 6.0

	designer, err := service.CreateDesigner(context.Background(), record)
	assert.Nil(t, designer)

	var verr *services.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Missing required field: name", "Rating must be between 1.0 and 5.0"}, verr.Errors)
	assert.Equal(t, "Missing required field: name, Rating must be between 1.0 and 5.0", err.Error())
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDesignerService_CreateDesignerUncastableCount(t *testing.T) {
	mockRepo := new(MockDesignerRepository)
	service := services.NewDesignerService(mockRepo, nil, zap.NewNop())

	record := designerRecord("Odd")
	record["projects"] = "lots"

	_, err := service.CreateDesigner(context.Background(), record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projects")

	var verr *services.ValidationError
	assert.False(t, errors.As(err, &verr))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDesignerService_CreateDesignerPublishFailureIgnored(t *testing.T) {
	mockRepo := new(MockDesignerRepository)
	publisher := new(MockPublisher)
	service := services.NewDesignerService(mockRepo, publisher, zap.NewNop())
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	publisher.On("PublishEvent", services.EventDesignerCreated, mock.Anything).Return(fmt.Errorf("broker down")).Once()

	_, err := service.CreateDesigner(ctx, designerRecord("Quiet"))
	assert.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestDesignerService_DeleteDesigner(t *testing.T) {
	mockRepo := new(MockDesignerRepository)
	publisher := new(MockPublisher)
	service := services.NewDesignerService(mockRepo, publisher, zap.NewNop())
	ctx := context.Background()

	mockRepo.On("Delete", ctx, uint(3)).Return(nil).Once()
	publisher.On("PublishEvent", services.EventDesignerDeleted, map[string]interface{}{"designer_id": uint(3)}).Return(nil).Once()
	assert.NoError(t, service.DeleteDesigner(ctx, 3))

	mockRepo.On("Delete", ctx, uint(4)).Return(fmt.Errorf("designer with ID 4: %w", repositories.ErrNotFound)).Once()
	err := service.DeleteDesigner(ctx, 4)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestDesignerService_Dashboard(t *testing.T) {
	mockRepo := new(MockDesignerRepository)
	service := services.NewDesignerService(mockRepo, nil, zap.NewNop())
	ctx := context.Background()

	recent := []models.Designer{{ID: 9, Name: "Newest"}}
	mockRepo.On("Count", ctx).Return(int64(9), nil).Once()
	mockRepo.On("GetRecent", ctx, services.RecentDesignersLimit).Return(recent, nil).Once()

	dashboard, err := service.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(9), dashboard.DesignerCount)
	assert.Equal(t, recent, dashboard.Recent)
	mockRepo.AssertExpectations(t)
}

func TestDesignerService_ImportDesigners(t *testing.T) {
	mockRepo := new(MockDesignerRepository)
	service := services.NewDesignerService(mockRepo, nil, zap.NewNop())
	ctx := context.Background()

	invalid := designerRecord("Invalid")
	invalid["price_range"] = "£"

	mockRepo.On("Create", ctx, mock.MatchedBy(func(d *models.Designer) bool { return d.Name == "Good" })).Return(nil).Once()
	mockRepo.On("Create", ctx, mock.MatchedBy(func(d *models.Designer) bool { return d.Name == "Broken" })).Return(fmt.Errorf("failed to create designer: disk full")).Once()

	result := service.ImportDesigners(ctx, []interface{}{
		designerRecord("Good"),
		invalid,
		"not an object",
		designerRecord("Broken"),
	})

	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 3, result.Failed)
	assert.Equal(t, []string{
		"Designer 2: Price range must be $, $$, or $$$",
		"Designer 3: entry must be a JSON object",
		"Designer 4 (Broken): failed to create designer: disk full",
	}, result.Errors)
	mockRepo.AssertExpectations(t)
}

func TestImportResult_SampleErrors(t *testing.T) {
	result := services.ImportResult{Errors: []string{"1", "2", "3", "4", "5", "6", "7"}}
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, result.SampleErrors(5))

	result = services.ImportResult{Errors: []string{"1"}}
	assert.Equal(t, []string{"1"}, result.SampleErrors(5))
}

func TestDesignerFromRecordCoercesValues(t *testing.T) {
	record := designerRecord("Coerced")
	record["rating"] = "3.5"
	record["projects"] = "14"
	record["phone1"] = float64(984532853)
	record["specialties"] = []string{"X"}

	designer, err := services.DesignerFromRecord(record)
	require.NoError(t, err)
	assert.Equal(t, models.Rating(3.5), designer.Rating)
	assert.Equal(t, 14, designer.Projects)
	assert.Equal(t, "984532853", designer.Phone1)
	assert.Equal(t, []string{"X"}, []string(designer.Specialties))
}

func TestDesignerFromRecordReadsCountsInBaseTen(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"010", 10, false},
		{"08", 8, false},
		{"0x1F", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			record := designerRecord("Counts")
			record["projects"] = tt.in
			record["experience"] = tt.in

			designer, err := services.DesignerFromRecord(record)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "projects")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, designer.Projects)
			assert.Equal(t, tt.want, designer.Experience)
		})
	}
}

func TestDesignerFromRecordRejectsNonStringArrayEntries(t *testing.T) {
	record := designerRecord("Mixed")
	record["specialties"] = []interface{}{"A", map[string]interface{}{"x": float64(1)}, nil}

	_, err := services.DesignerFromRecord(record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "specialties: element 2")

	record = designerRecord("Mixed")
	record["portfolio"] = []interface{}{"https://example.com/a.jpg", nil}
	_, err = services.DesignerFromRecord(record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "portfolio: element 2")
}

func TestDesignerService_ImportDesignersReportsNonStringEntries(t *testing.T) {
	mockRepo := new(MockDesignerRepository)
	service := services.NewDesignerService(mockRepo, nil, zap.NewNop())

	record := designerRecord("Mixed")
	record["specialties"] = []interface{}{"A", float64(3)}

	result := service.ImportDesigners(context.Background(), []interface{}{record})
	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Designer 1 (Mixed): specialties: element 2 is float64")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
