package warnlog

import (
	"errors"
	"sync"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCapturesWarnings(t *testing.T) {
	rec := NewRecorder()
	log := rec.Logger()

	log.Info("first")
	log.Info("second", "details", []string{"a", "b"}, "count", 3)
	log.Error(errors.New("boom"), "failed", "path", "x.css")
	log.V(1).Info("debug only")

	assert.Equal(t, []Warning{
		{Args: []string{"first"}},
		{Args: []string{"second", "a", "b"}},
		{Args: []string{"failed", "x.css", "boom"}},
	}, rec.Warnings())

	rec.Reset()
	assert.Empty(t, rec.Warnings())
}

func TestRecorderForwardsVerbose(t *testing.T) {
	var lines []string
	rec := NewRecorder()
	rec.Forward = funcr.New(func(_, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 1})

	rec.Logger().V(1).Info("debug", "nodes", 2)
	rec.Logger().Info("warning")

	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"msg"="debug"`)
	assert.Len(t, rec.Warnings(), 1)
}

func TestRecorderZeroValue(t *testing.T) {
	var rec Recorder
	rec.Logger().V(2).Info("ignored")
	rec.Logger().Info("kept")
	assert.Len(t, rec.Warnings(), 1)
}

func TestRecorderConcurrent(t *testing.T) {
	rec := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.Logger().Info("warn")
		}()
	}
	wg.Wait()
	assert.Len(t, rec.Warnings(), 8)
}
