// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

package masking

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/lightcrypt/lwcgo/internal/maskrand"
)

func testRng(tag byte) maskrand.Source {
	return maskrand.NewDeterministic([32]byte{tag})
}

func TestWord64RoundTrip(t *testing.T) {
	rng := testRng(1)
	for n := MinShares; n <= MaxShares; n++ {
		v := uint64(0x0123456789abcdef) ^ uint64(n)
		w := NewWord64(n, v, rng)
		qt.Assert(t, qt.Equals(w.Output(), v))
		qt.Assert(t, qt.Equals(w.Shares(), n))
	}
}

func TestWord64Linear(t *testing.T) {
	rng := testRng(2)
	var a, b = uint64(0xdeadbeefcafe1234), uint64(0x0f0f0f0f33335555)

	for n := MinShares; n <= MaxShares; n++ {
		x := NewWord64(n, a, rng)
		y := NewWord64(n, b, rng)

		z := x
		z.Xor(y)
		qt.Assert(t, qt.Equals(z.Output(), a^b))

		z = x
		z.XorConst(0xff00ff00ff00ff00)
		qt.Assert(t, qt.Equals(z.Output(), a^0xff00ff00ff00ff00))

		z = x
		z.Not()
		qt.Assert(t, qt.Equals(z.Output(), ^a))

		z.ShiftLeft(x, 7)
		qt.Assert(t, qt.Equals(z.Output(), a<<7))

		z.ShiftRight(x, 13)
		qt.Assert(t, qt.Equals(z.Output(), a>>13))

		z.RotateRight(x, 19)
		qt.Assert(t, qt.Equals(z.Output(), a>>19|a<<45))

		z.RotateLeft(x, 3)
		qt.Assert(t, qt.Equals(z.Output(), a<<3|a>>61))
	}
}

func TestWord64NonLinear(t *testing.T) {
	rng := testRng(3)
	const a, b, acc = uint64(0xdeadbeefcafe1234), uint64(0x0f0f0f0f33335555), uint64(0x1111222233334444)

	for n := MinShares; n <= MaxShares; n++ {
		x := NewWord64(n, a, rng)
		y := NewWord64(n, b, rng)

		z := NewWord64(n, acc, rng)
		z.And(x, y, rng)
		qt.Assert(t, qt.Equals(z.Output(), acc^(a&b)))

		z = NewWord64(n, acc, rng)
		z.AndNot(x, y, rng)
		qt.Assert(t, qt.Equals(z.Output(), acc^(^a&b)))

		z = NewWord64(n, acc, rng)
		z.Or(x, y, rng)
		qt.Assert(t, qt.Equals(z.Output(), acc^(a|b)))
	}
}

func TestWord64SwapMove(t *testing.T) {
	rng := testRng(4)
	const a, b = uint64(0xdeadbeefcafe1234), uint64(0x0f0f0f0f33335555)

	// Reference swap-move on plain words
	pa, pb := a, b
	tbits := (pb ^ (pa >> 16)) & 0x0000ffff0000ffff
	pb ^= tbits
	pa ^= tbits << 16

	for n := MinShares; n <= MaxShares; n++ {
		x := NewWord64(n, a, rng)
		y := NewWord64(n, b, rng)
		SwapMove64(&x, &y, 0x0000ffff0000ffff, 16)
		qt.Assert(t, qt.Equals(x.Output(), pa))
		qt.Assert(t, qt.Equals(y.Output(), pb))

		x = NewWord64(n, a, rng)
		y = NewWord64(n, b, rng)
		Swap64(&x, &y)
		qt.Assert(t, qt.Equals(x.Output(), b))
		qt.Assert(t, qt.Equals(y.Output(), a))
	}
}

func TestWord64Refresh(t *testing.T) {
	rng := testRng(5)
	const v = uint64(0xfeedfacefeedface)
	for n := MinShares; n <= MaxShares; n++ {
		w := NewWord64(n, v, rng)
		before := w
		w.Refresh(rng)
		qt.Assert(t, qt.Equals(w.Output(), v))
		if n > 1 && w == before {
			t.Errorf("shares=%d: refresh left the sharing unchanged", n)
		}
	}
}

func TestWord32Ops(t *testing.T) {
	rng := testRng(6)
	var a, b, acc = uint32(0xdeadbeef), uint32(0x0f0f3333), uint32(0x11112222)

	for n := MinShares; n <= MaxShares; n++ {
		x := NewWord32(n, a, rng)
		y := NewWord32(n, b, rng)

		z := x
		z.Xor(y)
		qt.Assert(t, qt.Equals(z.Output(), a^b))

		z = NewWord32(n, acc, rng)
		z.And(x, y, rng)
		qt.Assert(t, qt.Equals(z.Output(), acc^(a&b)))

		z = NewWord32(n, acc, rng)
		z.AndNot(x, y, rng)
		qt.Assert(t, qt.Equals(z.Output(), acc^(^a&b)))

		z = NewWord32(n, acc, rng)
		z.Or(x, y, rng)
		qt.Assert(t, qt.Equals(z.Output(), acc^(a|b)))

		z.RotateRight(x, 5)
		qt.Assert(t, qt.Equals(z.Output(), a>>5|a<<27))
	}
}

func TestWord16Ops(t *testing.T) {
	rng := testRng(7)
	const a, b, acc = uint16(0xbeef), uint16(0x0f33), uint16(0x1122)

	for n := MinShares; n <= MaxShares; n++ {
		x := NewWord16(n, a, rng)
		y := NewWord16(n, b, rng)

		z := x
		z.Xor(y)
		qt.Assert(t, qt.Equals(z.Output(), a^b))

		z = NewWord16(n, acc, rng)
		z.And(x, y, rng)
		qt.Assert(t, qt.Equals(z.Output(), acc^(a&b)))

		z = NewWord16(n, acc, rng)
		z.AndNot(x, y, rng)
		qt.Assert(t, qt.Equals(z.Output(), acc^(^a&b)))

		z = NewWord16(n, acc, rng)
		z.Or(x, y, rng)
		qt.Assert(t, qt.Equals(z.Output(), acc^(a|b)))
	}
}

// TestShareIndependence samples sharings of two fixed values and checks
// that the distribution of any single non-recombined share does not
// visibly depend on the masked value.
func TestShareIndependence(t *testing.T) {
	rng := testRng(8)
	const samples = 2000

	for n := MinShares; n <= MaxShares; n++ {
		for _, v := range []uint64{0, ^uint64(0)} {
			var ones int
			for i := 0; i < samples; i++ {
				w := NewWord64(n, v, rng)
				// Count bits of the last share; it is supposed to be
				// uniform regardless of v.
				s := w.Share(n - 1)
				for ; s != 0; s &= s - 1 {
					ones++
				}
			}
			mean := float64(ones) / float64(samples)
			if mean < 28 || mean > 36 {
				t.Errorf("shares=%d value=%#x: share bit mean %.2f outside [28, 36]",
					n, v, mean)
			}
		}
	}
}

func TestZeroize(t *testing.T) {
	rng := testRng(9)
	w := NewWord64(4, 0x1234, rng)
	w.Zero()
	for i := 0; i < MaxShares; i++ {
		qt.Assert(t, qt.Equals(w.Share(i), uint64(0)))
	}
}
