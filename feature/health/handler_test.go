package health

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"storage-manager/core/storage"
	"storage-manager/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client) {
	app := fiber.New()
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, storage.Config{DefaultBucket: "Bucket1"}, zap.NewNop(), nil)
	NewHandler(svc).RegisterRoutes(app)
	return app, mockClient
}

func TestHandleLiveness(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, Message, body["message"])
}

func TestHandleStorageCheck(t *testing.T) {
	app, mockClient := setupTestApp(t)
	mockClient.On("ListBuckets", mock.Anything).Return([]minio.BucketInfo{{Name: "Bucket1"}}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/storage", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "ok", body["status"])
}

func TestHandleStorageCheck_Fix(t *testing.T) {
	app, mockClient := setupTestApp(t)
	mockClient.On("ListBuckets", mock.Anything).Return([]minio.BucketInfo{}, nil).Once()
	mockClient.On("BucketExists", mock.Anything, "Bucket1").Return(false, nil)
	mockClient.On("MakeBucket", mock.Anything, "Bucket1", mock.Anything).Return(nil)
	mockClient.On("ListBuckets", mock.Anything).Return([]minio.BucketInfo{{Name: "Bucket1"}}, nil).Once()

	resp, err := app.Test(httptest.NewRequest("GET", "/health/storage?fix=true", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "ok", body["status"])
	mockClient.AssertExpectations(t)
}

func TestHandleStorageCheck_Unreachable(t *testing.T) {
	app, mockClient := setupTestApp(t)
	mockClient.On("ListBuckets", mock.Anything).Return(nil, assert.AnError)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/storage", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestHandleDatabaseCheck_Disabled(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/database", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "disabled", body["status"])
}
