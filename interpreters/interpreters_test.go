package interpreters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Comcast/certres/wf"
)

func TestStandard(t *testing.T) {
	is := Standard()
	for _, name := range []string{wf.DefaultInterpreter, "ecmascript-ext", "noop"} {
		_, have := is[name]
		assert.True(t, have, name)
	}
}

func TestDisabled(t *testing.T) {
	s := &wf.Script{Name: "never", Source: `return false;`}
	require.NoError(t, s.Compile(context.Background(), Disabled()))
	exe, err := s.Exec(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, exe.Failed())
}
