package testutil

import (
	"testing"

	"github.com/Comcast/certres/arch"
)

type Person struct {
	Name string
	Age  int
}

func TestJS(t *testing.T) {
	tests := []struct {
		name string
		arg  interface{}
		want string
	}{
		{
			name: "simple struct",
			arg:  Person{"John Doe", 30},
			want: `{"Name":"John Doe","Age":30}`,
		},
		{
			name: "nested struct",
			arg: struct {
				Person Person
				ID     int
			}{Person{"Jane Doe", 25}, 1},
			want: `{"Person":{"Name":"Jane Doe","Age":25},"ID":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JS(tt.arg); got != tt.want {
				t.Errorf("JS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestObstacleFixture(t *testing.T) {
	o := NewObstacle(true)
	c := o.G.Connection(o.Conn)
	if c == nil {
		t.Fatal("no connection")
	}
	if !c.Bidirectional {
		t.Fatal("expected a bidirectional connection")
	}
	if !o.G.SameEvent(c.FromEvent, c.ToEvent) {
		t.Fatal("both ends should declare the same event")
	}
}

func TestRobotFixture(t *testing.T) {
	r := NewRobot()
	if got := len(r.G.ConnectionsOf(r.M)); got != 4 {
		t.Fatalf("module has %d connections", got)
	}
	if got := len(r.G.ConnectionsOf(r.C1)); got != 5 {
		t.Fatalf("C1 has %d connections", got)
	}
	if n := r.G.Node(r.PRef); n.Ref != r.P || n.Kind != arch.KindPlatform {
		t.Fatalf("bad platform reference %#v", n)
	}
	if p := r.G.Platform(r.M); p != r.PRef {
		t.Fatalf("platform of M is %d", p)
	}
}
