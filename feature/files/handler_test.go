package files

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"storage-manager/core/storage"
	"storage-manager/core/storage/mocks"
	"storage-manager/feature/activity"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorderStub struct {
	mu     sync.Mutex
	events []activity.Event
}

func (r *recorderStub) Record(_ context.Context, e activity.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client, *recorderStub) {
	t.Helper()
	app := fiber.New()
	mockClient := new(mocks.Client)
	rec := &recorderStub{}
	svc := NewService(mockClient, storage.Config{DefaultBucket: "Bucket1", PresignExpirySeconds: 60}, zap.NewNop(), nil)
	NewHandler(svc, rec).RegisterRoutes(app)
	return app, mockClient, rec
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHandleListBuckets(t *testing.T) {
	app, mockClient, _ := setupTestApp(t)
	mockClient.On("ListBuckets", mock.Anything).Return([]minio.BucketInfo{{Name: "alpha"}}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/list_buckets", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decode(t, resp)
	buckets := body["buckets"].([]any)
	require.Len(t, buckets, 1)
	assert.Equal(t, "alpha", buckets[0].(map[string]any)["name"])
}

func TestHandleListBuckets_Error(t *testing.T) {
	app, mockClient, _ := setupTestApp(t)
	mockClient.On("ListBuckets", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "AccessDenied", Message: "Access Denied."})

	resp, err := app.Test(httptest.NewRequest("GET", "/list_buckets", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	detail := decode(t, resp)["detail"].(map[string]any)
	assert.Equal(t, "Access Denied.", detail["message"])
	assert.Equal(t, "AccessDenied", detail["error"])
	assert.EqualValues(t, 500, detail["status_code"])
}

func TestHandleList_DefaultBucket(t *testing.T) {
	app, mockClient, _ := setupTestApp(t)
	mockClient.On("ListObjects", mock.Anything, "Bucket1", minio.ListObjectsOptions{}).
		Return(mocks.ObjectChan(minio.ObjectInfo{Key: "docs/"}, minio.ObjectInfo{Key: "a.txt", Size: 3}))

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var items []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 2)
	assert.Equal(t, "folder", items[0]["type"])
	assert.Equal(t, "file", items[1]["type"])
	assert.EqualValues(t, 3, items[1]["size"])
}

func TestHandleList_MissingBucket(t *testing.T) {
	app, mockClient, _ := setupTestApp(t)
	mockClient.On("ListObjects", mock.Anything, "ghost", mock.Anything).
		Return(mocks.ObjectChan(minio.ObjectInfo{Err: minio.ErrorResponse{Code: "NoSuchBucket", Message: "The specified bucket does not exist"}}))

	resp, err := app.Test(httptest.NewRequest("GET", "/?bucket=ghost", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	detail := decode(t, resp)["detail"].(map[string]any)
	assert.Equal(t, "NoSuchBucket", detail["error"])
}

func TestHandleUpload(t *testing.T) {
	app, mockClient, rec := setupTestApp(t)
	mockClient.On("PutObject", mock.Anything, "my bucket", "docs/notes.txt", mock.Anything, int64(5), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, _ := w.CreateFormFile("file", "notes.txt")
	part.Write([]byte("hello"))
	w.WriteField("folder", "docs")
	w.Close()

	req := httptest.NewRequest("POST", "/upload/"+url.PathEscape("my bucket"), &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "File 'notes.txt' uploaded successfully", body["message"])
	assert.Equal(t, "docs/notes.txt", body["path"])

	require.Len(t, rec.events, 1)
	assert.Equal(t, activity.Event{Operation: "upload", Bucket: "my bucket", Path: "docs/notes.txt"}, rec.events[0])
}

func TestHandleUpload_NoFile(t *testing.T) {
	app, _, rec := setupTestApp(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("folder", "docs")
	w.Close()

	req := httptest.NewRequest("POST", "/upload/b", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "No file selected", decode(t, resp)["error"])
	assert.Empty(t, rec.events)
}

func TestHandleCreateFolder(t *testing.T) {
	app, mockClient, _ := setupTestApp(t)
	mockClient.On("PutObject", mock.Anything, "b", "x/new/.keep", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	form := url.Values{"folder_name": {"new"}, "parent_folder": {"x"}}
	req := httptest.NewRequest("POST", "/create_folder/b", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Folder 'new' created successfully", decode(t, resp)["message"])
}

func TestHandleDeleteFile(t *testing.T) {
	app, mockClient, _ := setupTestApp(t)
	mockClient.On("RemoveObject", mock.Anything, "b", "x/f.txt", mock.Anything).Return(nil)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/delete_file/b?path=x%2Ff.txt", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "File 'x/f.txt' deleted successfully", decode(t, resp)["message"])
}

func TestHandleDeleteFolder_NotFound(t *testing.T) {
	app, mockClient, _ := setupTestApp(t)
	mockClient.On("ListObjects", mock.Anything, "b", mock.Anything).Return(mocks.ObjectChan())

	resp, err := app.Test(httptest.NewRequest("DELETE", "/delete_folder/b?path=ghost", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "Folder is empty or does not exist", decode(t, resp)["error"])
}

func TestHandleMove_Warning(t *testing.T) {
	app, mockClient, rec := setupTestApp(t)
	mockClient.On("CopyObject", mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)
	mockClient.On("RemoveObject", mock.Anything, "b", "a.txt", mock.Anything).Return(assert.AnError)

	req := httptest.NewRequest("POST", "/move_file/b", strings.NewReader(`{"path":"a.txt","new_path":"d/a.txt"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "File moved to 'd/a.txt' successfully", body["message"])
	assert.Equal(t, "Failed to delete original", body["warning"])
	assert.Equal(t, assert.AnError.Error(), body["error"])

	require.Len(t, rec.events, 1)
	assert.Equal(t, "d/a.txt", rec.events[0].Target)
}

func TestHandleCopy_Folder(t *testing.T) {
	app, mockClient, _ := setupTestApp(t)
	mockClient.On("ListObjects", mock.Anything, "b", mock.Anything).Return(mocks.ObjectChan(minio.ObjectInfo{Key: "x/a.txt"}))
	mockClient.On("CopyObject", mock.Anything,
		minio.CopyDestOptions{Bucket: "b", Object: "x_copy/a.txt"},
		minio.CopySrcOptions{Bucket: "b", Object: "x/a.txt"},
	).Return(minio.UploadInfo{}, nil)

	req := httptest.NewRequest("POST", "/copy_file/b", strings.NewReader(`{"path":"x/","new_path":"x_copy"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Folder copied to 'x_copy' successfully", decode(t, resp)["message"])
}

func TestHandleCopy_BadInput(t *testing.T) {
	app, _, _ := setupTestApp(t)

	req := httptest.NewRequest("POST", "/copy_file/b", strings.NewReader(`{"path":"a.txt"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "Both path and new_path are required", decode(t, resp)["error"])
}

func TestHandleDownload(t *testing.T) {
	app, mockClient, _ := setupTestApp(t)
	signed, _ := url.Parse("https://s3.example/b/f.txt?sig=1")
	mockClient.On("PresignedGetObject", mock.Anything, "b", "f.txt", time.Minute, mock.Anything).Return(signed, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/download/b?path=f.txt", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, signed.String(), decode(t, resp)["download_url"])
}

func TestHandleBuckets(t *testing.T) {
	app, mockClient, rec := setupTestApp(t)
	mockClient.On("MakeBucket", mock.Anything, "fresh", mock.Anything).Return(nil)
	mockClient.On("ListObjects", mock.Anything, "fresh", mock.Anything).Return(mocks.ObjectChan())
	mockClient.On("RemoveBucket", mock.Anything, "fresh").Return(nil)

	req := httptest.NewRequest("POST", "/create_bucket", strings.NewReader("bucket_name=fresh"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Bucket 'fresh' created successfully", decode(t, resp)["message"])

	resp, err = app.Test(httptest.NewRequest("DELETE", "/delete_bucket/fresh", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Bucket 'fresh' deleted successfully", decode(t, resp)["message"])

	require.Len(t, rec.events, 2)
	assert.Equal(t, "create_bucket", rec.events[0].Operation)
	assert.Equal(t, "delete_bucket", rec.events[1].Operation)
}

func TestHandleCreateBucket_MissingName(t *testing.T) {
	app, _, _ := setupTestApp(t)

	req := httptest.NewRequest("POST", "/create_bucket", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	detail := decode(t, resp)["detail"].(map[string]any)
	assert.Equal(t, "Bucket name is required.", detail["message"])
	assert.EqualValues(t, 400, detail["status_code"])
}
