package animationpath

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestNumericBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := 0.0000008
	if !Is0(a) {
		t.Errorf("Expected a to be zero, is not")
	}
	if !FloatsEqual(0.5, 0.5+a) {
		t.Errorf("Expected 0.5 and 0.5+a to be equal")
	}
	if FloatsEqual(0.5, 0.501) {
		t.Errorf("Expected 0.5 and 0.501 to differ")
	}
}

func TestBeforeAgreesWithFloatsEqual(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// b-a rounds to just above ε while b ≤ a+ε still holds
	a, b := 0.60466028797961957, 0.6046612879796196
	if FloatsEqual(a, b) {
		t.Fatalf("Expected %v and %v to differ", a, b)
	}
	if !Before(a, b) {
		t.Errorf("Expected %v before %v", a, b)
	}
	if Before(b, a) {
		t.Errorf("Expected %v not before %v", b, a)
	}
	if Before(0.5, 0.5+Epsilon/2) || Before(0.5, 0.5) {
		t.Errorf("Expected equal timestamps to be unordered")
	}
}

func TestTimestampRange(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, ts := range []float64{0, 0.5, 1, 1 + Epsilon/2} {
		if !IsTimestamp(ts) {
			t.Errorf("Expected %g to be a valid timestamp", ts)
		}
	}
	for _, ts := range []float64{-0.1, 1.1, math.NaN()} {
		if IsTimestamp(ts) {
			t.Errorf("Expected %g to be rejected as timestamp", ts)
		}
	}
}

func TestIndexOf(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ts := []float64{0, 0.25, 0.5, 1}
	if i := IndexOf(ts, 0.5000001); i != 2 {
		t.Errorf("Expected index 2, got %d", i)
	}
	if i := IndexOf(ts, 0.3); i != NotFound {
		t.Errorf("Expected NotFound, got %d", i)
	}
}

func TestVectorBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := V(3, 2, 1)
	q := V(-3, -2, -1)
	if !VecEqual(p.Add(q), Origin) {
		t.Errorf("Expected p + q to be origin, is %s", VecString(p.Add(q)))
	}
	if d := Distance(V(0, 0, 0), V(1, 0, 1)); math.Abs(d-math.Sqrt2) > Epsilon {
		t.Errorf("Expected distance √2, got %g", d)
	}
	if s := VecString(V(1, 0.0000001, 2)); s != "(1,0,2)" {
		t.Errorf("unexpected vector string %q", s)
	}
}
