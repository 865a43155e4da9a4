package grin

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageRegistryRefCount(t *testing.T) {
	rt := newTestRuntime(t)
	reg := rt.Images

	m1 := reg.Get("a.png")
	m2 := reg.Get("a.png")
	require.Same(t, m1, m2, "same name should give the same image")
	require.Equal(t, 1, reg.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(rt.Metrics.ImagesRegistered))

	reg.Unget(m1)
	_, ok := reg.Lookup("a.png")
	require.True(t, ok, "image unregistered while still referenced")

	reg.Unget(m2)
	_, ok = reg.Lookup("a.png")
	require.False(t, ok, "image still registered after last unget")
	assert.Equal(t, 0.0, testutil.ToFloat64(rt.Metrics.ImagesRegistered))

	expectPanic(t, "unregistered image", func() { reg.Unget(m2) })
}

func TestImageRegistryUngetPreparedPanics(t *testing.T) {
	reg := newTestRuntime(t).Images
	m := reg.Get("a.png")
	m.Prepare()
	expectPanic(t, "still prepared", func() { reg.Unget(m) })
}

func TestManagedImageLoadCycle(t *testing.T) {
	rt := newTestRuntime(t)
	m := rt.Images.Get("a.png")
	defer rt.Images.Unget(m)

	m.Load()
	require.False(t, m.IsLoaded(), "Load without Prepare should do nothing")

	m.Prepare()
	m.Load()
	require.True(t, m.IsLoaded())
	w, h := m.Size()
	assert.Equal(t, 8, w)
	assert.Equal(t, 6, h)
	assert.NotNil(t, m.Image())
	assert.Equal(t, 1.0, testutil.ToFloat64(rt.Metrics.ImagesLoaded))

	// A second Prepare shares the pixels; the last Unprepare releases them.
	m.Prepare()
	m.Unprepare()
	require.True(t, m.IsLoaded())
	m.Unprepare()
	require.False(t, m.IsLoaded())
	assert.Nil(t, m.Image())
	w, _ = m.Size()
	assert.Zero(t, w)
}

func TestManagedImageFailedLoad(t *testing.T) {
	rt := newTestRuntime(t)
	for _, name := range []string{"bad.png", "missing.png"} {
		m := rt.Images.Get(name)
		m.Prepare()
		m.Load()
		require.True(t, m.IsLoaded(), "%s: failed load should still finish", name)
		assert.Nil(t, m.Image())
		w, h := m.Size()
		assert.Zero(t, w*h)
		m.Unprepare()
		rt.Images.Unget(m)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(rt.Metrics.ImageLoadFailures))
}

func TestManagedImageLostInterestDuringLoad(t *testing.T) {
	rt := newTestRuntime(t)
	started := make(chan struct{})
	proceed := make(chan struct{})
	var released int
	var mu sync.Mutex
	rt.Images.SetCodec(func(r io.Reader) (*ebiten.Image, error) {
		close(started)
		<-proceed
		return fakeDecode(r)
	}, func(*ebiten.Image) {
		mu.Lock()
		released++
		mu.Unlock()
	})

	m := rt.Images.Get("a.png")
	m.Prepare()
	done := make(chan struct{})
	go func() {
		m.Load()
		close(done)
	}()
	<-started
	m.Unprepare() // abandons the decode in flight
	close(proceed)
	<-done

	require.False(t, m.IsLoaded(), "abandoned decode must not be published")
	mu.Lock()
	assert.Equal(t, 1, released, "abandoned result should be released")
	mu.Unlock()

	// Interest comes back: a fresh load succeeds.
	rt.Images.SetCodec(fakeDecode, nil)
	m.Prepare()
	m.Load()
	require.True(t, m.IsLoaded())
	m.Unprepare()
	rt.Images.Unget(m)
}

func TestManagedImageLoadWaitsForRelease(t *testing.T) {
	rt := newTestRuntime(t)
	m := rt.Images.Get("a.png")
	m.Prepare()
	m.Load()
	require.True(t, m.IsLoaded())

	releasing := make(chan struct{})
	proceed := make(chan struct{})
	var releaseDone, decodedEarly atomic.Bool
	var loadedDuringRelease bool
	rt.Images.SetCodec(func(r io.Reader) (*ebiten.Image, error) {
		if !releaseDone.Load() {
			decodedEarly.Store(true)
		}
		return fakeDecode(r)
	}, func(*ebiten.Image) {
		close(releasing)
		// The image lock is free while pixels are released.
		loadedDuringRelease = m.IsLoaded()
		<-proceed
		releaseDone.Store(true)
	})

	unprepared := make(chan struct{})
	go func() {
		m.Unprepare()
		close(unprepared)
	}()
	<-releasing

	m.Prepare()
	loaded := make(chan struct{})
	go func() {
		m.Load()
		close(loaded)
	}()
	// Give Load a chance to reach the flush wait before the release ends.
	time.Sleep(20 * time.Millisecond)
	select {
	case <-loaded:
		t.Fatal("Load finished while the release was still running")
	default:
	}
	close(proceed)
	<-unprepared
	<-loaded

	assert.False(t, loadedDuringRelease)
	assert.False(t, decodedEarly.Load(), "decode started before the release returned")
	assert.True(t, m.IsLoaded())
	rt.Images.SetCodec(fakeDecode, fakeRelease)
	m.Unprepare()
	rt.Images.Unget(m)
}

func TestManagedImageWaitLoaded(t *testing.T) {
	rt := newTestRuntime(t)
	m := rt.Images.Get("b.png")
	m.Prepare()
	go m.Load()
	m.WaitLoaded()
	require.True(t, m.IsLoaded())

	// Nothing to wait for once interest is gone.
	m.Unprepare()
	m.WaitLoaded()
	rt.Images.Unget(m)
}

func TestImageStateString(t *testing.T) {
	tests := map[imageState]string{
		imageUnloaded:    "unloaded",
		imageReadyToLoad: "readyToLoad",
		imageLoading:     "loading",
		imageLoaded:      "loaded",
		imageState(99):   "unknown",
	}
	for s, want := range tests {
		assert.Equal(t, want, s.String())
	}
}

func TestAssetSources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.png"), []byte("1x1"), 0o644))
	src := DirSource{filepath.Join(dir, "nowhere"), dir}

	rc, err := src.Open("x.png")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "1x1", string(data))

	_, err = src.Open("y.png")
	assert.True(t, errors.Is(err, ErrAssetNotFound), "got %v", err)

	_, err = FSSource{FS: testAssets}.Open("y.png")
	assert.True(t, errors.Is(err, ErrAssetNotFound), "got %v", err)
}
