package buf

import "testing"

func TestU32BERoundTrip(t *testing.T) {
	b := make([]byte, 4)
	if !PutU32BE(b, 0xdeadbeef) {
		t.Fatalf("PutU32BE failed")
	}
	got, ok := U32BE(b)
	if !ok || got != 0xdeadbeef {
		t.Fatalf("U32BE = (%x, %v), want (deadbeef, true)", got, ok)
	}
}

func TestU32BEShort(t *testing.T) {
	if _, ok := U32BE([]byte{1, 2, 3}); ok {
		t.Fatalf("expected ok=false for short buffer")
	}
	if PutU32BE([]byte{1, 2, 3}, 1) {
		t.Fatalf("expected false for short destination")
	}
}

func TestSliceAndHas(t *testing.T) {
	b := []byte{0, 1, 2, 3, 4}
	if s, ok := Slice(b, 1, 3); !ok || string(s) != string([]byte{1, 2, 3}) {
		t.Fatalf("Slice(1,3) = (%v, %v)", s, ok)
	}
	if Has(b, 3, 3) {
		t.Fatalf("expected out-of-bounds Has to be false")
	}
	if _, ok := Slice(b, -1, 1); ok {
		t.Fatalf("expected negative offset to fail")
	}
}
