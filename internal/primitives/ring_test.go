package primitives

import (
	"math"
	"reflect"
	"testing"
)

func TestRingPushUnderCapacity(t *testing.T) {
	r := NewRing[float64](3)
	r.Push(1)
	r.Push(2)
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if got, want := r.Values(), []float64{1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}
}

func TestRingEvictsOldest(t *testing.T) {
	r := NewRing[int](50)
	for i := range 51 {
		r.Push(i)
	}
	if r.Len() != 50 {
		t.Fatalf("Len() = %d, want 50", r.Len())
	}
	values := r.Values()
	if values[0] != 1 {
		t.Errorf("oldest = %d, want 1 (0 should be evicted)", values[0])
	}
	if values[49] != 50 {
		t.Errorf("newest = %d, want 50", values[49])
	}
}

func TestRingWrapsRepeatedly(t *testing.T) {
	r := NewRing[int](3)
	for i := range 10 {
		r.Push(i)
	}
	if got, want := r.Values(), []int{7, 8, 9}; !reflect.DeepEqual(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}
}

func TestRingMinimumCapacity(t *testing.T) {
	r := NewRing[int](0)
	if r.Cap() != 1 {
		t.Fatalf("Cap() = %d, want 1", r.Cap())
	}
	r.Push(4)
	r.Push(5)
	if got, want := r.Values(), []int{5}; !reflect.DeepEqual(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}
}

func TestRingValuesIsCopy(t *testing.T) {
	r := NewRing[int](2)
	r.Push(1)
	v := r.Values()
	v[0] = 99
	if r.Values()[0] != 1 {
		t.Error("Values() exposed internal buffer")
	}
}

func TestRingClear(t *testing.T) {
	r := NewRing[int](2)
	r.Push(1)
	r.Push(2)
	r.Clear()
	if r.Len() != 0 {
		t.Fatalf("Len() after Clear = %d", r.Len())
	}
	r.Push(3)
	if got, want := r.Values(), []int{3}; !reflect.DeepEqual(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}
}

func TestMean(t *testing.T) {
	if _, ok := Mean(nil); ok {
		t.Error("Mean(nil) should report false")
	}
	m, ok := Mean([]float64{1, 2, 3, 6})
	if !ok || math.Abs(m-3) > 1e-12 {
		t.Errorf("Mean = %v, %v; want 3, true", m, ok)
	}
}
