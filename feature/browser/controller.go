package browser

import (
	"context"
	"errors"
	"io"
	"sync"

	"storage-manager/core/api"

	"go.uber.org/zap"
)

var (
	// ErrNoBucket is returned by operations that need a selected bucket.
	ErrNoBucket = errors.New("no bucket selected")
	// ErrActionNotAllowed is returned when an action does not apply to an entry kind.
	ErrActionNotAllowed = errors.New("action not allowed")
)

// API is the subset of the storage API the browser uses. *api.Client implements it.
type API interface {
	ListBuckets(ctx context.Context) ([]api.Bucket, error)
	ListEntries(ctx context.Context, bucket, folder string) ([]api.Item, error)
	Upload(ctx context.Context, bucket, folder, filename string, content io.Reader) (*api.Result, error)
	CreateFolder(ctx context.Context, bucket, name, parent string) (*api.Result, error)
	DeleteFile(ctx context.Context, bucket, path string) (*api.Result, error)
	DeleteFolder(ctx context.Context, bucket, path string) (*api.Result, error)
	Move(ctx context.Context, bucket, path, newPath string) (*api.Result, error)
	Copy(ctx context.Context, bucket, path, newPath string) (*api.Result, error)
	DownloadURL(ctx context.Context, bucket, path string) (*api.Result, error)
	CreateBucket(ctx context.Context, name string) (*api.Result, error)
	DeleteBucket(ctx context.Context, bucket string) (*api.Result, error)
}

// Controller owns the navigation state and renders listings into a View.
// Its methods are serialized: an action started while another is running
// waits for it to finish.
type Controller struct {
	mu     sync.Mutex
	api    API
	view   View
	prompt Prompter
	logger *zap.Logger

	state State
	grid  Grid
}

// NewController creates a controller positioned at the bucket list.
func NewController(client API, view View, prompter Prompter, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		api:    client,
		view:   view,
		prompt: prompter,
		logger: logger,
	}
}

// State returns the current navigation position.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Grid returns the last rendered grid.
func (c *Controller) Grid() Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid
}

// Init clears the bucket selection and shows the bucket list.
func (c *Controller) Init(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.navigate(ctx, State{})
}

// EnterBucket opens the root of a bucket.
func (c *Controller) EnterBucket(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.navigate(ctx, c.state.enterBucket(name))
}

// EnterFolder opens a folder of the current folder.
func (c *Controller) EnterFolder(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.InBucket() {
		return ErrNoBucket
	}
	return c.navigate(ctx, c.state.enterFolder(name))
}

// GoBack moves one level up: to the parent folder, or from a bucket root
// to the bucket list.
func (c *Controller) GoBack(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Folder != "" {
		return c.navigate(ctx, c.state.parent())
	}
	return c.navigate(ctx, State{})
}

// ListFiles re-fetches the current folder.
func (c *Controller) ListFiles(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listFiles(ctx)
}

// Refresh re-fetches whatever is displayed.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refresh(ctx)
}

// navigate moves to next and lists it. The position is kept when the
// listing fails so it always matches the grid on display.
func (c *Controller) navigate(ctx context.Context, next State) error {
	prev := c.state
	c.state = next
	if err := c.refresh(ctx); err != nil {
		c.state = prev
		return err
	}
	return nil
}

func (c *Controller) init(ctx context.Context) error {
	c.state = State{}
	buckets, err := c.api.ListBuckets(ctx)
	if err != nil {
		return err
	}
	c.render(bucketEntries(buckets))
	return nil
}

func (c *Controller) listFiles(ctx context.Context) error {
	if !c.state.InBucket() {
		return ErrNoBucket
	}
	items, err := c.api.ListEntries(ctx, c.state.Bucket, c.state.Folder)
	if err != nil {
		return err
	}
	c.render(folderEntries(c.state, items))
	return nil
}

func (c *Controller) refresh(ctx context.Context) error {
	if c.state.InBucket() {
		return c.listFiles(ctx)
	}
	return c.init(ctx)
}

// render replaces the whole grid.
func (c *Controller) render(entries []Entry) {
	cards := make([]Card, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, Card{Entry: e, Menu: MenuFor(e.Kind), ctrl: c})
	}
	c.grid = Grid{Path: c.state.Path(), Cards: cards}
	if c.view != nil {
		c.view.Render(c.grid)
	}
}
