package provisioning

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// phaseFunc creates a Phase from a function for testing.
type phaseFuncImpl struct {
	name string
	fn   func(*Context) error
}

func phaseFunc(name string, fn func(*Context) error) Phase {
	return &phaseFuncImpl{name: name, fn: fn}
}

func (p *phaseFuncImpl) Name() string                 { return p.name }
func (p *phaseFuncImpl) Provision(ctx *Context) error { return p.fn(ctx) }

func TestRunPhases_Success(t *testing.T) {
	t.Parallel()
	executed := make([]string, 0)
	observer := &recordingObserver{}
	ctx := &Context{Context: context.Background(), Observer: observer}

	err := RunPhases(ctx, []Phase{
		phaseFunc("access", func(_ *Context) error { executed = append(executed, "access"); return nil }),
		phaseFunc("compute", func(_ *Context) error { executed = append(executed, "compute"); return nil }),
		phaseFunc("deploy", func(_ *Context) error { executed = append(executed, "deploy"); return nil }),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"access", "compute", "deploy"}, executed)
	assert.Len(t, observer.ofType(EventPhaseStarted), 3)
	assert.Len(t, observer.ofType(EventPhaseCompleted), 3)
	assert.Equal(t, "compute (2/3)", observer.ofType(EventPhaseStarted)[1].Phase)
}

func TestRunPhases_StopsOnError(t *testing.T) {
	t.Parallel()
	executed := make([]string, 0)
	observer := &recordingObserver{}
	ctx := &Context{Context: context.Background(), Observer: observer}

	err := RunPhases(ctx, []Phase{
		phaseFunc("access", func(_ *Context) error { executed = append(executed, "access"); return nil }),
		phaseFunc("compute", func(_ *Context) error { return fmt.Errorf("wrapped: %w", ErrQuotaExceeded) }),
		phaseFunc("deploy", func(_ *Context) error { executed = append(executed, "deploy"); return nil }),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "compute phase failed")
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, []string{"access"}, executed)
	assert.Len(t, observer.ofType(EventPhaseFailed), 1)
}

func TestRunPhases_Empty(t *testing.T) {
	t.Parallel()
	ctx := &Context{Context: context.Background(), Observer: &recordingObserver{}}

	require.NoError(t, RunPhases(ctx, nil))
}

func TestNewContext(t *testing.T) {
	ctx := NewContext(context.Background(), nil, nil)

	require.NotNil(t, ctx.State)
	require.NotNil(t, ctx.Tracker)
	require.NotNil(t, ctx.Metrics)
	require.NotNil(t, ctx.Timeouts)
	assert.Equal(t, StageRequested, ctx.Tracker.Stage())

	observer := &recordingObserver{}
	ctx.SetObserver(observer)
	require.NoError(t, ctx.Tracker.Advance(StageCreating))
	assert.Len(t, observer.ofType(EventStageChanged), 1)
}
