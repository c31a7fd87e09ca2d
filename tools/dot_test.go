/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package tools

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Comcast/certres/arch"
	"github.com/Comcast/certres/util/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// closingBuffer is a bytes.Buffer that's an io.WriteCloser.
type closingBuffer struct {
	bytes.Buffer
	closed bool
}

func (b *closingBuffer) Close() error {
	b.closed = true
	return nil
}

func TestDot(t *testing.T) {
	r := testutil.NewRobot()
	var out closingBuffer

	err := Dot(r.G, &out, map[arch.ConnID]bool{r.ObstacleIn: true})
	require.NoError(t, err)
	assert.True(t, out.closed)

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "digraph G {\n"))
	assert.Contains(t, s, fmt.Sprintf("subgraph cluster_%d {", r.M))
	assert.Contains(t, s, fmt.Sprintf("subgraph cluster_%d {", r.C1))
	assert.Contains(t, s, fmt.Sprintf(`n%d -> n%d [ color="red"`, r.PRef, r.C1))
	assert.Contains(t, s, fmt.Sprintf(`n%d -> n%d [ color="black" dir="both"`, r.C1, r.C2Ref))
	// P's events as a YAML list.
	assert.Contains(t, s, `- obstacle<BR ALIGN="LEFT"/>- move<BR ALIGN="LEFT"/>- stop<BR ALIGN="LEFT"/>`)
	assert.Equal(t, r.G.NumConnections(), strings.Count(s, " -> "))
}

func TestDotFile(t *testing.T) {
	o := testutil.NewObstacle(true)
	filename := filepath.Join(t.TempDir(), "g.dot")

	out, err := os.Create(filename)
	require.NoError(t, err)
	require.NoError(t, Dot(o.G, out, nil))

	bs, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(bs), `dir="both"`)
}
