package browser

import (
	"context"
	"fmt"
	"io"
	"strings"

	"storage-manager/core/api"

	"go.uber.org/zap"
)

// Upload sends content as name into the current folder.
func (c *Controller) Upload(ctx context.Context, name string, content io.Reader) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.InBucket() {
		return ErrNoBucket
	}

	res, err := c.api.Upload(ctx, c.state.Bucket, c.state.Folder, name, content)
	return c.finish(ctx, "upload", res, err, c.listFiles)
}

// CreateFolder asks for a name and creates it in the current folder.
func (c *Controller) CreateFolder(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.InBucket() {
		return ErrNoBucket
	}

	name, ok := c.ask("Enter folder name:", "")
	if !ok {
		return nil
	}
	res, err := c.api.CreateFolder(ctx, c.state.Bucket, name, c.state.Folder)
	return c.finish(ctx, "create_folder", res, err, c.listFiles)
}

// Delete removes a file or a folder after confirmation.
func (c *Controller) Delete(ctx context.Context, e Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.objectAction(e); err != nil {
		return err
	}
	if !c.prompt.Confirm(fmt.Sprintf("Delete %s: %s?", e.Kind, e.Path)) {
		return nil
	}

	var (
		res *api.Result
		err error
	)
	if e.Kind == KindFolder {
		res, err = c.api.DeleteFolder(ctx, c.state.Bucket, e.Path)
	} else {
		res, err = c.api.DeleteFile(ctx, c.state.Bucket, e.Path)
	}
	return c.finish(ctx, "delete", res, err, c.listFiles)
}

// Move asks for a destination, defaulting to the current path, and moves the entry.
func (c *Controller) Move(ctx context.Context, e Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.objectAction(e); err != nil {
		return err
	}

	dst, ok := c.ask("Enter new path:", e.Path)
	if !ok {
		return nil
	}
	res, err := c.api.Move(ctx, c.state.Bucket, transferPath(e), dst)
	return c.finish(ctx, "move", res, err, c.listFiles)
}

// Copy asks for a destination, defaulting to "<path>_copy", and copies the entry.
func (c *Controller) Copy(ctx context.Context, e Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.objectAction(e); err != nil {
		return err
	}

	dst, ok := c.ask("Enter copy path:", e.Path+"_copy")
	if !ok {
		return nil
	}
	res, err := c.api.Copy(ctx, c.state.Bucket, transferPath(e), dst)
	return c.finish(ctx, "copy", res, err, c.listFiles)
}

// Download fetches a signed URL for a file and opens it. Nothing is refreshed.
func (c *Controller) Download(ctx context.Context, e Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.objectAction(e); err != nil {
		return err
	}
	if e.Kind != KindFile {
		return fmt.Errorf("%w: %s on %s", ErrActionNotAllowed, ActionDownload, e.Kind)
	}

	res, err := c.api.DownloadURL(ctx, c.state.Bucket, e.Path)
	if err != nil {
		apiErr, ok := api.AsError(err)
		if !ok {
			c.prompt.Alert(api.DisplayMessage(nil, err))
			return err
		}
		res = apiErr.Result
	}
	if res.DownloadURL == "" {
		c.prompt.Alert("Error: " + res.Raw)
		return nil
	}
	return c.prompt.OpenURL(res.DownloadURL)
}

// DeleteBucket removes a bucket and its contents after confirmation, then
// shows the bucket list.
func (c *Controller) DeleteBucket(ctx context.Context, e Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e.Kind != KindBucket {
		return fmt.Errorf("%w: %s on %s", ErrActionNotAllowed, ActionDeleteBucket, e.Kind)
	}
	if !c.prompt.Confirm(fmt.Sprintf("Delete bucket: %s? This will remove all files in it.", e.Name)) {
		return nil
	}

	res, err := c.api.DeleteBucket(ctx, e.Name)
	return c.finish(ctx, "delete_bucket", res, err, c.init)
}

// CreateBucket asks for a name, creates the bucket and shows the bucket list.
func (c *Controller) CreateBucket(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	name, ok := c.ask("Enter bucket name:", "")
	if !ok {
		return nil
	}
	res, err := c.api.CreateBucket(ctx, name)
	return c.finish(ctx, "create_bucket", res, err, c.init)
}

// ask prompts the user. Cancelled or blank answers report false.
func (c *Controller) ask(msg, def string) (string, bool) {
	answer, ok := c.prompt.Prompt(msg, def)
	if !ok || strings.TrimSpace(answer) == "" {
		return "", false
	}
	return answer, true
}

// transferPath marks folders with a trailing slash for move and copy.
func transferPath(e Entry) string {
	if e.Kind == KindFolder {
		return e.Path + "/"
	}
	return e.Path
}

func (c *Controller) objectAction(e Entry) error {
	if !c.state.InBucket() {
		return ErrNoBucket
	}
	if e.Kind != KindFile && e.Kind != KindFolder {
		return fmt.Errorf("%w: object action on %s", ErrActionNotAllowed, e.Kind)
	}
	return nil
}

// finish shows the outcome and refreshes once. When the server did not
// answer at all the error is returned and nothing is refreshed.
func (c *Controller) finish(ctx context.Context, op string, res *api.Result, err error, refresh func(context.Context) error) error {
	msg := api.DisplayMessage(res, err)
	if err != nil {
		if _, answered := api.AsError(err); !answered {
			c.logger.Warn("Request failed", zap.String("operation", op), zap.Error(err))
			c.prompt.Alert(msg)
			return err
		}
		c.logger.Debug("Server rejected request", zap.String("operation", op), zap.Error(err))
	}

	c.prompt.Alert(msg)
	return refresh(ctx)
}
