package files

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"storage-manager/core/api"
	"storage-manager/core/logger"
	"storage-manager/core/middleware/rayid"
	"storage-manager/core/storage"
	"storage-manager/feature/activity"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for buckets, folders and files.
type Handler struct {
	service  *Service
	recorder activity.Recorder
}

// NewHandler creates a new HTTP handler. A nil recorder discards activity.
func NewHandler(service *Service, recorder activity.Recorder) *Handler {
	if recorder == nil {
		recorder = activity.Nop{}
	}
	return &Handler{service: service, recorder: recorder}
}

// RegisterRoutes registers the storage routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/", h.HandleList)
	app.Get("/list_buckets", h.HandleListBuckets)
	app.Post("/create_bucket", h.HandleCreateBucket)
	app.Delete("/delete_bucket/:bucket", h.HandleDeleteBucket)
	app.Post("/upload/:bucket", h.HandleUpload)
	app.Post("/create_folder/:bucket", h.HandleCreateFolder)
	app.Delete("/delete_file/:bucket", h.HandleDeleteFile)
	app.Delete("/delete_folder/:bucket", h.HandleDeleteFolder)
	app.Post("/copy_file/:bucket", h.HandleCopy)
	app.Post("/move_file/:bucket", h.HandleMove)
	app.Get("/download/:bucket", h.HandleDownload)
}

// HandleList lists a folder.
// @Summary List Folder
// @Description Lists folders and files directly under a folder of a bucket.
// @Tags files
// @Produce json
// @Param bucket query string false "Bucket (defaults to the configured bucket)"
// @Param folder query string false "Folder path relative to the bucket root"
// @Success 200 {array} api.Item
// @Failure 500 {object} api.Result "Error with structured detail"
// @Router / [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	bucket := c.Query("bucket", h.service.DefaultBucket())
	items, err := h.service.List(c.Context(), bucket, c.Query("folder"))
	if err != nil {
		return h.detailError(c, "Error fetching contents", err)
	}
	return c.JSON(items)
}

// HandleListBuckets lists buckets.
// @Summary List Buckets
// @Tags buckets
// @Produce json
// @Success 200 {object} api.BucketList
// @Failure 500 {object} api.Result "Error with structured detail"
// @Router /list_buckets [get]
func (h *Handler) HandleListBuckets(c *fiber.Ctx) error {
	buckets, err := h.service.ListBuckets(c.Context())
	if err != nil {
		return h.detailError(c, "Error listing buckets", err)
	}
	return c.JSON(api.BucketList{Buckets: buckets})
}

// HandleCreateBucket creates a bucket.
// @Summary Create Bucket
// @Tags buckets
// @Accept x-www-form-urlencoded
// @Produce json
// @Param bucket_name formData string true "Bucket name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} api.Result
// @Failure 500 {object} api.Result
// @Router /create_bucket [post]
func (h *Handler) HandleCreateBucket(c *fiber.Ctx) error {
	name := c.FormValue("bucket_name")
	if err := h.service.CreateBucket(c.Context(), name); err != nil {
		return h.detailError(c, "Error creating bucket", err)
	}
	h.record(c, "create_bucket", name, "", "")
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Bucket '%s' created successfully", name),
		"bucket":  api.Bucket{Name: name},
	})
}

// HandleDeleteBucket empties and deletes a bucket.
// @Summary Delete Bucket
// @Tags buckets
// @Produce json
// @Param bucket path string true "Bucket name"
// @Success 200 {object} api.Result
// @Failure 400 {object} api.Result
// @Failure 500 {object} api.Result
// @Router /delete_bucket/{bucket} [delete]
func (h *Handler) HandleDeleteBucket(c *fiber.Ctx) error {
	bucket := bucketParam(c)
	if err := h.service.DeleteBucket(c.Context(), bucket); err != nil {
		return h.detailError(c, "Error deleting bucket", err)
	}
	h.record(c, "delete_bucket", bucket, "", "")
	return c.JSON(api.Result{Message: fmt.Sprintf("Bucket '%s' deleted successfully", bucket)})
}

// HandleUpload stores an uploaded file.
// @Summary Upload File
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param bucket path string true "Bucket name"
// @Param file formData file true "File content"
// @Param folder formData string false "Target folder"
// @Success 200 {object} api.Result
// @Failure 400 {object} api.Result
// @Failure 500 {object} api.Result
// @Router /upload/{bucket} [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	bucket := bucketParam(c)
	fh, err := c.FormFile("file")
	if err != nil || fh.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(api.Result{Error: "No file selected"})
	}

	f, err := fh.Open()
	if err != nil {
		return h.objectError(c, fmt.Errorf("failed to read upload: %w", err))
	}
	defer f.Close()

	key, err := h.service.Upload(c.Context(), bucket, c.FormValue("folder"), fh.Filename, f, fh.Size, fh.Header.Get("Content-Type"))
	if err != nil {
		return h.objectError(c, err)
	}
	h.record(c, "upload", bucket, key, "")
	return c.JSON(api.Result{
		Message: fmt.Sprintf("File '%s' uploaded successfully", fh.Filename),
		Path:    key,
	})
}

// HandleCreateFolder creates an empty folder.
// @Summary Create Folder
// @Tags files
// @Accept x-www-form-urlencoded
// @Produce json
// @Param bucket path string true "Bucket name"
// @Param folder_name formData string true "Folder name"
// @Param parent_folder formData string false "Parent folder"
// @Success 200 {object} api.Result
// @Failure 400 {object} api.Result
// @Failure 500 {object} api.Result
// @Router /create_folder/{bucket} [post]
func (h *Handler) HandleCreateFolder(c *fiber.Ctx) error {
	bucket := bucketParam(c)
	name := c.FormValue("folder_name")
	folder, err := h.service.CreateFolder(c.Context(), bucket, name, c.FormValue("parent_folder"))
	if err != nil {
		return h.objectError(c, err)
	}
	h.record(c, "create_folder", bucket, folder, "")
	return c.JSON(api.Result{
		Message: fmt.Sprintf("Folder '%s' created successfully", name),
		Path:    folder,
	})
}

// HandleDeleteFile deletes one file.
// @Summary Delete File
// @Tags files
// @Produce json
// @Param bucket path string true "Bucket name"
// @Param path query string true "File path"
// @Success 200 {object} api.Result
// @Failure 400 {object} api.Result
// @Failure 500 {object} api.Result
// @Router /delete_file/{bucket} [delete]
func (h *Handler) HandleDeleteFile(c *fiber.Ctx) error {
	bucket, path := bucketParam(c), c.Query("path")
	if err := h.service.DeleteFile(c.Context(), bucket, path); err != nil {
		return h.objectError(c, err)
	}
	h.record(c, "delete_file", bucket, path, "")
	return c.JSON(api.Result{Message: fmt.Sprintf("File '%s' deleted successfully", path)})
}

// HandleDeleteFolder deletes a folder and its contents.
// @Summary Delete Folder
// @Tags files
// @Produce json
// @Param bucket path string true "Bucket name"
// @Param path query string true "Folder path"
// @Success 200 {object} api.Result
// @Failure 400 {object} api.Result
// @Failure 404 {object} api.Result
// @Failure 500 {object} api.Result
// @Router /delete_folder/{bucket} [delete]
func (h *Handler) HandleDeleteFolder(c *fiber.Ctx) error {
	bucket, path := bucketParam(c), c.Query("path")
	if _, err := h.service.DeleteFolder(c.Context(), bucket, path); err != nil {
		return h.objectError(c, err)
	}
	h.record(c, "delete_folder", bucket, path, "")
	return c.JSON(api.Result{Message: fmt.Sprintf("Folder '%s' deleted successfully", path)})
}

// HandleCopy copies a file, or a folder when path ends with "/".
// @Summary Copy File
// @Tags files
// @Accept json
// @Produce json
// @Param bucket path string true "Bucket name"
// @Param request body api.MoveRequest true "Source and destination"
// @Success 200 {object} api.Result
// @Failure 400 {object} api.Result
// @Failure 500 {object} api.Result
// @Router /copy_file/{bucket} [post]
func (h *Handler) HandleCopy(c *fiber.Ctx) error {
	bucket := bucketParam(c)
	var req api.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(api.Result{Error: "Invalid request body"})
	}

	if err := h.service.Copy(c.Context(), bucket, req.Path, req.NewPath); err != nil {
		return h.objectError(c, err)
	}
	h.record(c, "copy", bucket, req.Path, req.NewPath)
	return c.JSON(api.Result{Message: fmt.Sprintf("%s copied to '%s' successfully", transferKind(req.Path), req.NewPath)})
}

// HandleMove moves a file, or a folder when path ends with "/".
// @Summary Move File
// @Description Copies the file, or every object of a folder when path ends with "/", to new_path and deletes the original. When the original cannot be deleted the response carries a warning.
// @Tags files
// @Accept json
// @Produce json
// @Param bucket path string true "Bucket name"
// @Param request body api.MoveRequest true "Source and destination"
// @Success 200 {object} api.Result
// @Failure 400 {object} api.Result
// @Failure 500 {object} api.Result
// @Router /move_file/{bucket} [post]
func (h *Handler) HandleMove(c *fiber.Ctx) error {
	bucket := bucketParam(c)
	var req api.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(api.Result{Error: "Invalid request body"})
	}

	warn, err := h.service.Move(c.Context(), bucket, req.Path, req.NewPath)
	if err != nil {
		return h.objectError(c, err)
	}
	h.record(c, "move", bucket, req.Path, req.NewPath)

	res := api.Result{Message: fmt.Sprintf("%s moved to '%s' successfully", transferKind(req.Path), req.NewPath)}
	if warn != nil {
		res.Warning = "Failed to delete original"
		res.Error = warn.Error()
	}
	return c.JSON(res)
}

// HandleDownload returns a temporary download link.
// @Summary Download File
// @Tags files
// @Produce json
// @Param bucket path string true "Bucket name"
// @Param path query string true "File path"
// @Success 200 {object} api.Result "download_url is set"
// @Failure 400 {object} api.Result
// @Failure 500 {object} api.Result
// @Router /download/{bucket} [get]
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	link, err := h.service.DownloadURL(c.Context(), bucketParam(c), c.Query("path"))
	if err != nil {
		return h.objectError(c, err)
	}
	return c.JSON(api.Result{DownloadURL: link})
}

func (h *Handler) record(c *fiber.Ctx, op, bucket, path, target string) {
	h.recorder.Record(c.UserContext(), activity.Event{
		Operation: op,
		Bucket:    bucket,
		Path:      path,
		Target:    target,
		RayID:     rayid.Get(c),
	})
}

// objectError answers object operations with {"error": "..."}.
func (h *Handler) objectError(c *fiber.Ctx, err error) error {
	status, msg := classify(err)
	if status >= fiber.StatusInternalServerError {
		logger.WithRayID(h.service.logger, c).Error("Storage operation failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(api.Result{Error: msg})
}

// detailError answers bucket and listing operations with a structured detail object.
func (h *Handler) detailError(c *fiber.Ctx, summary string, err error) error {
	status, msg := classify(err)
	if status >= fiber.StatusInternalServerError {
		logger.WithRayID(h.service.logger, c).Error(summary, zap.Error(err))
	}

	detail := api.ErrorDetail{Message: msg, Error: summary, StatusCode: status}
	var resp minio.ErrorResponse
	if errors.As(err, &resp) && resp.Code != "" {
		detail.Error = resp.Code
	}
	return c.Status(status).JSON(fiber.Map{"detail": detail})
}

// classify maps an error to a status code and the message shown to users.
func classify(err error) (int, string) {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return fiber.StatusBadRequest, inputErr.Reason
	}
	if errors.Is(err, ErrFolderNotFound) {
		return fiber.StatusNotFound, "Folder is empty or does not exist"
	}

	var resp minio.ErrorResponse
	if errors.As(err, &resp) && resp.Message != "" {
		if storage.IsNotFound(resp) {
			return fiber.StatusNotFound, resp.Message
		}
		return fiber.StatusInternalServerError, resp.Message
	}
	return fiber.StatusInternalServerError, err.Error()
}

func bucketParam(c *fiber.Ctx) string {
	raw := c.Params("bucket")
	if b, err := url.PathUnescape(raw); err == nil {
		return b
	}
	return raw
}

func transferKind(path string) string {
	if strings.HasSuffix(path, "/") {
		return "Folder"
	}
	return "File"
}
