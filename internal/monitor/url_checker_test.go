package monitor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aleister1102/urlchecker/internal/config"
	"github.com/aleister1102/urlchecker/internal/datastore"
	"github.com/aleister1102/urlchecker/internal/differ"
	"github.com/aleister1102/urlchecker/internal/models"
	"github.com/aleister1102/urlchecker/internal/notifier"
	"github.com/aleister1102/urlchecker/internal/reporter"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dispatchCall struct {
	message    string
	attachment *models.Attachment
}

type recordingDispatcher struct {
	mu    sync.Mutex
	calls []dispatchCall
	err   error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, message string, attachment *models.Attachment) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, dispatchCall{message: message, attachment: attachment})
	return d.err
}

// contentServer serves whatever body is currently set
type contentServer struct {
	mu     sync.Mutex
	body   string
	status int
	server *httptest.Server
}

func newContentServer(t *testing.T) *contentServer {
	cs := &contentServer{status: http.StatusOK}
	cs.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.mu.Lock()
		defer cs.mu.Unlock()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(cs.status)
		_, _ = w.Write([]byte(cs.body))
	}))
	t.Cleanup(cs.server.Close)
	return cs
}

func (cs *contentServer) set(status int, body string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.status = status
	cs.body = body
}

type checkerFixture struct {
	checker    *URLChecker
	store      datastore.CacheStore
	history    *datastore.ParquetCheckHistoryStore
	dispatcher *recordingDispatcher
	reportDir  string
	historyDir string
}

func newCheckerFixture(t *testing.T) *checkerFixture {
	t.Helper()
	dir := t.TempDir()
	logger := zerolog.Nop()

	store, err := datastore.NewFileCacheStore(filepath.Join(dir, "cache"), logger)
	require.NoError(t, err)
	historyDir := filepath.Join(dir, "history")
	history, err := datastore.NewParquetCheckHistoryStore(historyDir, 0, logger)
	require.NoError(t, err)

	renderer, err := reporter.NewHtmlDiffRenderer("", logger)
	require.NoError(t, err)
	engine, err := differ.NewDiffEngine(differ.DefaultDiffConfig(), renderer, logger)
	require.NoError(t, err)

	fetchCfg := config.NewDefaultFetchConfig()
	fetchCfg.MaxRetries = 0
	fetcher, err := NewFetcher(fetchCfg, logger)
	require.NoError(t, err)

	reportDir := filepath.Join(dir, "reports")
	reportWriter := reporter.NewDiffReportWriter(config.DiffReporterConfig{SaveReports: true, ReportDir: reportDir}, logger)

	dispatcher := &recordingDispatcher{}
	helper := notifier.NewNotificationHelper(dispatcher, config.NewDefaultNotificationConfig(), logger)

	checker := NewURLChecker(logger, fetcher, NewChangeDetector(store, engine, logger), helper, history, reportWriter)
	return &checkerFixture{checker: checker, store: store, history: history, dispatcher: dispatcher, reportDir: reportDir, historyDir: historyDir}
}

func TestURLChecker_ExampleScenario(t *testing.T) {
	fx := newCheckerFixture(t)
	cs := newContentServer(t)
	url := cs.server.URL + "/a"
	ctx := context.Background()

	cs.set(http.StatusOK, "v1")
	first, err := fx.checker.CheckURL(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeFirstObservation, first.Outcome.Kind)
	require.Len(t, fx.dispatcher.calls, 1)
	assert.Equal(t, "Monitoring started: "+url, fx.dispatcher.calls[0].message)
	assert.Nil(t, fx.dispatcher.calls[0].attachment)

	second, err := fx.checker.CheckURL(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeUnchanged, second.Outcome.Kind)
	assert.Len(t, fx.dispatcher.calls, 1, "unchanged sends nothing")

	cs.set(http.StatusOK, "v2")
	third, err := fx.checker.CheckURL(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeChanged, third.Outcome.Kind)
	require.Len(t, fx.dispatcher.calls, 2)

	call := fx.dispatcher.calls[1]
	assert.Equal(t, "URL changed: "+url, call.message)
	require.NotNil(t, call.attachment)
	assert.True(t, strings.HasPrefix(call.attachment.Filename, "diff_127.0.0.1_"))
	assert.True(t, strings.HasSuffix(call.attachment.Filename, "_a.html"))
	doc := string(call.attachment.Data)
	assert.Contains(t, doc, "<td>v1</td>")
	assert.Contains(t, doc, "<td>v2</td>")

	entry, err := fx.store.Load(ctx, datastore.DeriveKey(url))
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), entry.Content)

	require.NotEmpty(t, third.ReportPath)
	saved, err := os.ReadFile(third.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, call.attachment.Data, saved)

	records, err := fx.history.List(ctx, datastore.DeriveKey(url), 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "changed", records[0].Outcome)
	assert.Equal(t, "unchanged", records[1].Outcome)
	assert.Equal(t, "first_observation", records[2].Outcome)
	assert.Equal(t, int32(1), records[0].LinesAdded)
	assert.Equal(t, int32(1), records[0].LinesDeleted)
	assert.NotEqual(t, records[0].CycleID, records[1].CycleID)
}

func TestURLChecker_FetchFailure(t *testing.T) {
	fx := newCheckerFixture(t)
	cs := newContentServer(t)
	url := cs.server.URL + "/a"
	ctx := context.Background()

	cs.set(http.StatusOK, "v1")
	_, err := fx.checker.CheckURL(ctx, url)
	require.NoError(t, err)

	cs.set(http.StatusInternalServerError, "oops")
	result, err := fx.checker.CheckURL(ctx, url)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Len(t, fx.dispatcher.calls, 1, "failed cycle sends nothing")

	entry, err := fx.store.Load(ctx, datastore.DeriveKey(url))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), entry.Content)

	records, err := fx.history.List(ctx, datastore.DeriveKey(url), 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.OutcomeError, records[0].Outcome)
	assert.NotEmpty(t, records[0].Error)
}

func TestURLChecker_NotificationFailure(t *testing.T) {
	fx := newCheckerFixture(t)
	cs := newContentServer(t)
	url := cs.server.URL + "/a"
	fx.dispatcher.err = errBoom

	cs.set(http.StatusOK, "v1")
	result, err := fx.checker.CheckURL(context.Background(), url)

	var notifyErr *NotificationError
	require.ErrorAs(t, err, &notifyErr)
	assert.True(t, errors.Is(err, errBoom))
	require.NotNil(t, result)
	assert.True(t, result.Committed)

	// the content was committed, so the next identical fetch is unchanged
	fx.dispatcher.err = nil
	result, err = fx.checker.CheckURL(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeUnchanged, result.Outcome.Kind)
}

type stubFetcher struct {
	content []byte
	err     error
}

func (f *stubFetcher) Fetch(context.Context, string) (*FetchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &FetchResult{Content: f.content, StatusCode: http.StatusOK}, nil
}

func TestURLChecker_DetectionFailureSendsNothing(t *testing.T) {
	store := newMemoryCacheStore()
	store.loadErr = errBoom
	dispatcher := &recordingDispatcher{}
	helper := notifier.NewNotificationHelper(dispatcher, config.NewDefaultNotificationConfig(), zerolog.Nop())
	checker := NewURLChecker(zerolog.Nop(), &stubFetcher{content: []byte("v1")}, NewChangeDetector(store, &stubEngine{}, zerolog.Nop()), helper, nil, nil)

	result, err := checker.CheckURL(context.Background(), testURL)
	assert.Nil(t, result)
	var detectionErr *DetectionError
	require.ErrorAs(t, err, &detectionErr)
	assert.Equal(t, StageLoad, detectionErr.Stage)
	assert.Empty(t, dispatcher.calls)
}

func TestURLChecker_ConcurrentCyclesSameResource(t *testing.T) {
	store := newMemoryCacheStore()
	dispatcher := &recordingDispatcher{}
	helper := notifier.NewNotificationHelper(dispatcher, config.NewDefaultNotificationConfig(), zerolog.Nop())
	checker := NewURLChecker(zerolog.Nop(), &stubFetcher{content: []byte("v1")}, NewChangeDetector(store, &stubEngine{}, zerolog.Nop()), helper, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := checker.CheckURL(context.Background(), testURL)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, dispatcher.calls, 1, "only one cycle observes the resource first")
	assert.Equal(t, 1, store.saves)
}

type failingHistoryStore struct{}

func (failingHistoryStore) Append(context.Context, models.CheckHistoryRecord) error {
	return errBoom
}

func (failingHistoryStore) List(context.Context, models.ResourceKey, int) ([]models.CheckHistoryRecord, error) {
	return nil, errBoom
}

func TestURLChecker_CorruptHistoryFile(t *testing.T) {
	fx := newCheckerFixture(t)
	cs := newContentServer(t)
	url := cs.server.URL + "/a"
	ctx := context.Background()

	key := datastore.DeriveKey(url)
	historyPath := filepath.Join(fx.historyDir, key.String()+".parquet")
	require.NoError(t, os.WriteFile(historyPath, []byte("PAR1trunc"), 0644))

	cs.set(http.StatusOK, "v1")
	result, err := fx.checker.CheckURL(ctx, url)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Committed)
	assert.Len(t, fx.dispatcher.calls, 1)

	records, err := fx.history.List(ctx, key, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.OutcomeFirstObservation.String(), records[0].Outcome)
}

func TestURLChecker_HistoryFailureDoesNotFailCycle(t *testing.T) {
	fx := newCheckerFixture(t)
	fx.checker.historyStore = failingHistoryStore{}
	cs := newContentServer(t)
	url := cs.server.URL + "/a"

	cs.set(http.StatusOK, "v1")
	result, err := fx.checker.CheckURL(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeFirstObservation, result.Outcome.Kind)

	entry, err := fx.store.Load(context.Background(), datastore.DeriveKey(url))
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, []byte("v1"), entry.Content)
}

func TestURLChecker_TrailingNewlineOnlyChange(t *testing.T) {
	fx := newCheckerFixture(t)
	cs := newContentServer(t)
	url := cs.server.URL + "/a"
	ctx := context.Background()

	cs.set(http.StatusOK, "v1")
	_, err := fx.checker.CheckURL(ctx, url)
	require.NoError(t, err)

	cs.set(http.StatusOK, "v1\n")
	result, err := fx.checker.CheckURL(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeChanged, result.Outcome.Kind)
	require.NotNil(t, result.Artifact)
	assert.False(t, result.Artifact.HasDifferences())
	assert.True(t, result.Artifact.NewlineAtEOF)

	require.Len(t, fx.dispatcher.calls, 2)
	require.NotNil(t, fx.dispatcher.calls[1].attachment)
	doc := string(fx.dispatcher.calls[1].attachment.Data)
	assert.Contains(t, doc, "Newline at end of file added")
	assert.NotContains(t, doc, "No differences")
}
