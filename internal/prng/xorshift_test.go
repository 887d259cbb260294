package prng

import (
	"fmt"
	"testing"
)

func TestSeedState(t *testing.T) {
	tests := []struct {
		name string
		seed string
		want [4]uint32
	}{
		{
			name: "empty",
			seed: "",
			want: [4]uint32{0, 0, 0, 0},
		},
		{
			name: "shorter than four characters",
			seed: "abc",
			want: [4]uint32{97, 98, 99, 0},
		},
		{
			name: "wraps over the four words",
			seed: "blockies",
			want: [4]uint32{3145, 3453, 3542, 3184},
		},
		{
			name: "hex address",
			seed: "0x1234567890abcdef",
			want: [4]uint32{45904312, 112428608, 1512558, 1543032},
		},
		{
			name: "non-ascii uses utf-16 code units",
			seed: "é☃",
			want: [4]uint32{233, 9731, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.seed).State()
			if got != tt.want {
				t.Errorf("State() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeedResetsState(t *testing.T) {
	x := New("something else entirely")
	x.Generate()
	x.Seed("abc")

	if got, want := x.State(), [4]uint32{97, 98, 99, 0}; got != want {
		t.Errorf("State() after reseed = %v, want %v", got, want)
	}
}

func TestSeedWrapsAt32Bits(t *testing.T) {
	// Long runs of the same character push every word well past 2^32.
	seed := ""
	for range 64 {
		seed += "z"
	}

	var want [4]uint32
	for i := range 64 {
		want[i%4] = want[i%4]*31 + 'z'
	}

	if got := New(seed).State(); got != want {
		t.Errorf("State() = %v, want %v", got, want)
	}
}

func TestGenerateKnownValues(t *testing.T) {
	tests := []struct {
		seed string
		want []float64
	}{
		{
			seed: "0x1234567890abcdef",
			want: []float64{
				0.2404493629001081,
				0.9676532060839236,
				0.4751224648207426,
				0.9931889423169196,
				0.7000370849855244,
				0.48163169994950294,
				0.9398341253399849,
				0.012227872386574745,
			},
		},
		{
			seed: "abc",
			want: []float64{
				9.29129309952259e-05,
				2.873595803976059e-06,
				9.195506572723389e-05,
				9.195506572723389e-05,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			x := New(tt.seed)
			for i, want := range tt.want {
				if got := x.Generate(); got != want {
					t.Errorf("Generate() #%d = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestGenerateEmptySeedIsFixedPoint(t *testing.T) {
	x := New("")
	for i := range 1000 {
		if got := x.Generate(); got != 0 {
			t.Fatalf("Generate() #%d = %v, want 0", i, got)
		}
	}
	if got := x.State(); got != ([4]uint32{}) {
		t.Errorf("State() = %v, want all zero", got)
	}
}

func TestZeroValueGenerator(t *testing.T) {
	var x Xorshift
	if got := x.Generate(); got != 0 {
		t.Errorf("Generate() on zero value = %v, want 0", got)
	}
}

func TestGenerateRange(t *testing.T) {
	for i := range 200 {
		seed := fmt.Sprintf("seed-%d", i)
		x := New(seed)
		for range 500 {
			v := x.Generate()
			if v < 0 || v >= 2 {
				t.Fatalf("seed %q: Generate() = %v, outside [0, 2)", seed, v)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := New("determinism")
	b := New("determinism")
	for i := range 100 {
		if va, vb := a.Generate(), b.Generate(); va != vb {
			t.Fatalf("Generate() #%d differs: %v != %v", i, va, vb)
		}
	}
}

func TestIndependentGenerators(t *testing.T) {
	a := New("shared")
	b := New("shared")

	a.Generate()
	a.Generate()

	if got, want := b.State(), New("shared").State(); got != want {
		t.Errorf("advancing one generator changed another: %v != %v", got, want)
	}
}
