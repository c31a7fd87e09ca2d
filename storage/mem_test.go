package storage

import "testing"

func TestMemStorage(t *testing.T) {
	var _ Storage = &MemStorage{}
	Exercise(t, NewMemStorage())
}
