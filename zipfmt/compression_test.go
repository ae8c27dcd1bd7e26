package zipfmt

import "testing"

func TestCompressionMethodRoundTrip(t *testing.T) {
	for m := 0; m <= 65535; m++ {
		got := FromUint16(uint16(m)).Uint16()
		if got != uint16(m) {
			t.Fatalf("FromUint16(%d).Uint16() = %d, want %d", m, got, m)
		}
	}
}

func TestCompressionMethodPredicates(t *testing.T) {
	if !Stored.IsStored() || Stored.IsDeflate() {
		t.Fatalf("Stored predicates wrong")
	}
	if !Deflate.IsDeflate() || Deflate.IsStored() {
		t.Fatalf("Deflate predicates wrong")
	}
	if FromUint16(12).IsStored() || FromUint16(12).IsDeflate() {
		t.Fatalf("method 12 should be neither stored nor deflate")
	}
	if FromUint16(12).String() != "unknown(12)" {
		t.Fatalf("unexpected String(): %s", FromUint16(12).String())
	}
}
