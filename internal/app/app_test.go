package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rook-computer/promptcanvas/internal/generate"
	"github.com/rook-computer/promptcanvas/internal/render"
	"github.com/rook-computer/promptcanvas/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator blocks on "slow" prompts until its context ends.
type fakeGenerator struct {
	calls atomic.Int32
	err   error
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string, steps int) (*image.RGBA, error) {
	g.calls.Add(1)
	if prompt == "slow" {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if g.err != nil {
		return nil, g.err
	}
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: byte(len(prompt)), A: 0xFF})
	return img, nil
}

type phaseRecorder struct {
	mu     sync.Mutex
	phases []state.Phase
}

func record(store *state.Store) *phaseRecorder {
	r := &phaseRecorder{}
	store.Listen(func(s state.State) {
		r.mu.Lock()
		r.phases = append(r.phases, s.Phase)
		r.mu.Unlock()
	})
	return r
}

func (r *phaseRecorder) get() []state.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]state.Phase(nil), r.phases...)
}

func TestSubmitEmptyPromptFailsWithoutLoading(t *testing.T) {
	for _, prompt := range []string{"", "   ", "\t\n"} {
		gen := &fakeGenerator{}
		c := New(nil, gen, nil)
		phases := record(c.Store)

		start := time.Now()
		err := c.Submit(context.Background(), prompt, 10)

		var emptyErr *EmptyPromptError
		require.ErrorAs(t, err, &emptyErr)
		assert.Equal(t, "enter a description", err.Error())
		assert.Equal(t, []state.Phase{state.ERROR}, phases.get())
		assert.Zero(t, gen.calls.Load())
		assert.Less(t, time.Since(start), time.Second)

		message, ok := c.Store.Snapshot().Error()
		require.True(t, ok)
		assert.Equal(t, "enter a description", message)
	}
}

func TestSubmitProducesResult(t *testing.T) {
	c := New(nil, &fakeGenerator{}, nil)
	phases := record(c.Store)

	require.NoError(t, c.Submit(context.Background(), "  a tree  ", 25))

	assert.Equal(t, []state.Phase{state.LOADING, state.RESULT}, phases.get())
	snap := c.Store.Snapshot()
	img, ok := snap.Result()
	require.True(t, ok)
	assert.NotNil(t, img)
	assert.Equal(t, "a tree", snap.Prompt)
	assert.Equal(t, 25, snap.Steps)
}

func TestSubmitWithRealGenerator(t *testing.T) {
	renderer := render.NewKeywordRenderer(nil)
	c := New(nil, generate.New(renderer, 5*time.Millisecond), nil)

	require.NoError(t, c.Submit(context.Background(), "Night", 10))

	img, ok := c.Store.Snapshot().Result()
	require.True(t, ok)
	assert.Equal(t, render.NightSky, img.RGBAAt(120, 200))
}

func TestSubmitGenerationFailure(t *testing.T) {
	c := New(nil, &fakeGenerator{err: errors.New("brush broke")}, nil)
	phases := record(c.Store)

	err := c.Submit(context.Background(), "a sun", 10)

	var genErr *generate.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, []state.Phase{state.LOADING, state.ERROR}, phases.get())
	message, ok := c.Store.Snapshot().Error()
	require.True(t, ok)
	assert.Contains(t, message, "brush broke")
	assert.Equal(t, err.Error(), message)
}

func TestSubmitWithoutGenerator(t *testing.T) {
	c := New(nil, nil, nil)

	err := c.Submit(context.Background(), "a sun", 10)

	assert.ErrorIs(t, err, generate.ErrNotReady)
	message, _ := c.Store.Snapshot().Error()
	assert.Equal(t, "generation failed: model not loaded", message)
}

func waitForLoading(t *testing.T, store *state.Store, prompt string) {
	t.Helper()
	require.Eventually(t, func() bool {
		snap := store.Snapshot()
		return snap.Phase == state.LOADING && snap.Prompt == prompt
	}, time.Second, time.Millisecond)
}

func TestSubmitLastCallWins(t *testing.T) {
	c := New(nil, &fakeGenerator{}, nil)

	first := make(chan error, 1)
	go func() { first <- c.Submit(context.Background(), "slow", 10) }()
	waitForLoading(t, c.Store, "slow")

	require.NoError(t, c.Submit(context.Background(), "fast", 10))

	select {
	case err := <-first:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("superseded submit did not return")
	}

	snap := c.Store.Snapshot()
	assert.Equal(t, state.RESULT, snap.Phase)
	assert.Equal(t, "fast", snap.Prompt)
}

func TestResetClearsPayload(t *testing.T) {
	c := New(nil, &fakeGenerator{}, nil)
	require.NoError(t, c.Submit(context.Background(), "a tree", 10))

	c.Reset()

	snap := c.Store.Snapshot()
	assert.Equal(t, state.IDLE, snap.Phase)
	_, ok := snap.Result()
	assert.False(t, ok)
	_, ok = snap.Error()
	assert.False(t, ok)

	require.Error(t, c.Submit(context.Background(), "", 10))
	c.Reset()
	_, ok = c.Store.Snapshot().Error()
	assert.False(t, ok)
}

func TestResetSupersedesPending(t *testing.T) {
	c := New(nil, &fakeGenerator{}, nil)

	pending := make(chan error, 1)
	go func() { pending <- c.Submit(context.Background(), "slow", 10) }()
	waitForLoading(t, c.Store, "slow")

	c.Reset()

	select {
	case err := <-pending:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("pending submit did not return")
	}
	assert.Equal(t, state.IDLE, c.Store.Snapshot().Phase)
}

func TestSubmitAfterErrorStartsOver(t *testing.T) {
	c := New(nil, &fakeGenerator{}, nil)
	phases := record(c.Store)

	require.Error(t, c.Submit(context.Background(), " ", 10))
	require.NoError(t, c.Submit(context.Background(), "sun", 10))

	assert.Equal(t, []state.Phase{state.ERROR, state.LOADING, state.RESULT}, phases.get())
}

type fakeDisplay struct {
	started, stopped atomic.Bool
	looped           chan struct{}
}

func (d *fakeDisplay) Start(ctx context.Context) error { d.started.Store(true); return nil }
func (d *fakeDisplay) Stop() error                     { d.stopped.Store(true); return nil }
func (d *fakeDisplay) RunLoop(ctx context.Context, store *state.Store) {
	close(d.looped)
	<-ctx.Done()
}

func TestStartStopDrivesDisplay(t *testing.T) {
	out := &fakeDisplay{looped: make(chan struct{})}
	c := New(nil, &fakeGenerator{}, out)

	require.NoError(t, c.Start(context.Background()))
	select {
	case <-out.looped:
	case <-time.After(time.Second):
		t.Fatal("display loop did not start")
	}
	require.NoError(t, c.Stop())

	assert.True(t, out.started.Load())
	assert.True(t, out.stopped.Load())
}

func TestFileLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := NewFileLogger(buf)

	logger.Infof("app", "generation %d done", 3)
	logger.Errorf("app", "boom")

	out := buf.String()
	assert.Contains(t, out, "[INFO] app: generation 3 done\n")
	assert.Contains(t, out, "[ERROR] app: boom\n")
}
