package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/ocp-advisor/filterstate/internal/filters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingOutput struct {
	errors   []string
	warnings []string
	infos    []string
	success  []string
}

func (r *recordingOutput) Error(msgs ...string)   { r.errors = append(r.errors, msgs...) }
func (r *recordingOutput) Warning(msgs ...string) { r.warnings = append(r.warnings, msgs...) }
func (r *recordingOutput) Info(msgs ...string)    { r.infos = append(r.infos, msgs...) }
func (r *recordingOutput) Success(msgs ...string) { r.success = append(r.success, msgs...) }

func TestNewCLIHandlerRequiresOutput(t *testing.T) {
	require.Panics(t, func() { NewCLIHandler(nil) })
}

func TestCLIHandlerForwardsMessages(t *testing.T) {
	out := &recordingOutput{}
	h := NewCLIHandler(out)

	h.Error("e")
	h.Warning("w")
	h.Info("i")
	h.Success("s")

	assert.Equal(t, []string{"e"}, out.errors)
	assert.Equal(t, []string{"w"}, out.warnings)
	assert.Equal(t, []string{"i"}, out.infos)
	assert.Equal(t, []string{"s"}, out.success)
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantHint bool
	}{
		{name: "nil", err: nil, wantCode: 0},
		{name: "generic", err: stderrors.New("disk full"), wantCode: 1},
		{name: "invalid view", err: fmt.Errorf("show: %w: dash", filters.ErrInvalidView), wantCode: 2, wantHint: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &recordingOutput{}
			code := NewCLIHandler(out).Handle(tt.err)
			assert.Equal(t, tt.wantCode, code)
			if tt.err == nil {
				assert.Empty(t, out.errors)
				return
			}
			assert.Equal(t, []string{tt.err.Error()}, out.errors)
			if tt.wantHint {
				require.Len(t, out.infos, 1)
				assert.Contains(t, out.infos[0], "recsList")
				assert.Contains(t, out.infos[0], "clusterRules")
			} else {
				assert.Empty(t, out.infos)
			}
		})
	}
}
