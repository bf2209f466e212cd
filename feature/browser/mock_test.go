package browser

import (
	"context"
	"io"
	"sync"

	"storage-manager/core/api"

	"github.com/stretchr/testify/mock"
)

type mockAPI struct {
	mock.Mock
}

func result(args mock.Arguments) (*api.Result, error) {
	res, _ := args.Get(0).(*api.Result)
	return res, args.Error(1)
}

func (m *mockAPI) ListBuckets(ctx context.Context) ([]api.Bucket, error) {
	args := m.Called(ctx)
	buckets, _ := args.Get(0).([]api.Bucket)
	return buckets, args.Error(1)
}

func (m *mockAPI) ListEntries(ctx context.Context, bucket, folder string) ([]api.Item, error) {
	args := m.Called(ctx, bucket, folder)
	items, _ := args.Get(0).([]api.Item)
	return items, args.Error(1)
}

func (m *mockAPI) Upload(ctx context.Context, bucket, folder, filename string, content io.Reader) (*api.Result, error) {
	data, _ := io.ReadAll(content)
	return result(m.Called(ctx, bucket, folder, filename, string(data)))
}

func (m *mockAPI) CreateFolder(ctx context.Context, bucket, name, parent string) (*api.Result, error) {
	return result(m.Called(ctx, bucket, name, parent))
}

func (m *mockAPI) DeleteFile(ctx context.Context, bucket, path string) (*api.Result, error) {
	return result(m.Called(ctx, bucket, path))
}

func (m *mockAPI) DeleteFolder(ctx context.Context, bucket, path string) (*api.Result, error) {
	return result(m.Called(ctx, bucket, path))
}

func (m *mockAPI) Move(ctx context.Context, bucket, path, newPath string) (*api.Result, error) {
	return result(m.Called(ctx, bucket, path, newPath))
}

func (m *mockAPI) Copy(ctx context.Context, bucket, path, newPath string) (*api.Result, error) {
	return result(m.Called(ctx, bucket, path, newPath))
}

func (m *mockAPI) DownloadURL(ctx context.Context, bucket, path string) (*api.Result, error) {
	return result(m.Called(ctx, bucket, path))
}

func (m *mockAPI) CreateBucket(ctx context.Context, name string) (*api.Result, error) {
	return result(m.Called(ctx, name))
}

func (m *mockAPI) DeleteBucket(ctx context.Context, bucket string) (*api.Result, error) {
	return result(m.Called(ctx, bucket))
}

// scriptedPrompter answers prompts from a queue and records what it was asked.
type scriptedPrompter struct {
	mu       sync.Mutex
	answers  []answer
	confirm  bool
	prompts  []string
	defaults []string
	alerts   []string
	opened   []string
}

type answer struct {
	text string
	ok   bool
}

func (p *scriptedPrompter) Prompt(msg, def string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, msg)
	p.defaults = append(p.defaults, def)
	if len(p.answers) == 0 {
		return "", false
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a.text, a.ok
}

func (p *scriptedPrompter) Confirm(msg string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, msg)
	return p.confirm
}

func (p *scriptedPrompter) Alert(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, msg)
}

func (p *scriptedPrompter) OpenURL(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opened = append(p.opened, url)
	return nil
}

type recordingView struct {
	grids []Grid
}

func (v *recordingView) Render(g Grid) {
	v.grids = append(v.grids, g)
}

func (v *recordingView) last() Grid {
	if len(v.grids) == 0 {
		return Grid{}
	}
	return v.grids[len(v.grids)-1]
}
