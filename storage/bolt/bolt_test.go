package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Comcast/certres/report"
	"github.com/Comcast/certres/storage"
)

func TestImpl(t *testing.T) {
	// Just confirm that this code compiles.
	var _ storage.Storage = &Storage{}
}

func open(tb testing.TB) *Storage {
	s, err := NewStorage(filepath.Join(tb.TempDir(), "reports.db"))
	if err != nil {
		tb.Fatal(err)
	}
	ctx := context.Background()
	if err := s.Open(ctx); err != nil {
		tb.Fatal(err)
	}
	tb.Cleanup(func() {
		if err := s.Close(ctx); err != nil {
			tb.Fatal(err)
		}
	})
	return s
}

func TestBasics(t *testing.T) {
	storage.Exercise(t, open(t))
}

func TestEmpty(t *testing.T) {
	s := open(t)
	names, err := s.ListReports(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Fatal(names)
	}
}

// BenchmarkBolt is just for fun.  Bolt is slow.
func BenchmarkBolt(b *testing.B) {
	s := open(b)
	ctx := context.Background()
	rep := &report.Report{
		Name: "simpsons",
		Groups: []*report.Group{
			{Name: "homer", Target: "module springfield::Plant"},
			{Name: "marge", Target: "module springfield::House"},
		},
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var err error
		if i%2 == 0 {
			err = s.WriteReport(ctx, rep)
		} else {
			_, err = s.GetReport(ctx, rep.Name)
		}
		if err != nil {
			b.Fatal(err)
		}
	}
}
