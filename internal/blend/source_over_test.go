package blend

import "testing"

func TestMulDiv255(t *testing.T) {
	tests := []struct {
		a, b, want uint8
	}{
		{0, 0, 0},
		{255, 255, 255},
		{255, 128, 128},
		{128, 128, 64},
		{1, 255, 1},
		{0, 200, 0},
	}
	for _, tt := range tests {
		if got := MulDiv255(tt.a, tt.b); got != tt.want {
			t.Errorf("MulDiv255(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMulDiv255Exhaustive(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			want := uint8((a*b + 127) / 255)
			if got := MulDiv255(uint8(a), uint8(b)); got != want {
				t.Fatalf("MulDiv255(%d, %d) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestSourceOver(t *testing.T) {
	tests := []struct {
		name      string
		dst       [4]uint8
		src       [4]uint8
		coverage  uint8
		want      [4]uint8
		tolerance int
	}{
		{"opaque replaces", [4]uint8{10, 20, 30, 255}, [4]uint8{200, 100, 50, 255}, 255, [4]uint8{200, 100, 50, 255}, 0},
		{"zero coverage keeps", [4]uint8{10, 20, 30, 255}, [4]uint8{200, 100, 50, 255}, 0, [4]uint8{10, 20, 30, 255}, 0},
		{"transparent source keeps", [4]uint8{10, 20, 30, 40}, [4]uint8{200, 100, 50, 0}, 255, [4]uint8{10, 20, 30, 40}, 0},
		{"half over white", [4]uint8{255, 255, 255, 255}, [4]uint8{0, 0, 0, 255}, 128, [4]uint8{127, 127, 127, 255}, 1},
		{"onto transparent keeps color", [4]uint8{0, 0, 0, 0}, [4]uint8{255, 0, 0, 255}, 128, [4]uint8{255, 0, 0, 128}, 0},
		{"half alpha over half alpha", [4]uint8{0, 0, 255, 128}, [4]uint8{255, 0, 0, 128}, 255, [4]uint8{170, 0, 85, 192}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px := tt.dst[:]
			SourceOver(px, tt.src[0], tt.src[1], tt.src[2], tt.src[3], tt.coverage)
			for i := range 4 {
				d := int(px[i]) - int(tt.want[i])
				if d < -tt.tolerance || d > tt.tolerance {
					t.Errorf("SourceOver() = %v, want %v (±%d)", px, tt.want, tt.tolerance)
					break
				}
			}
		})
	}
}

func TestThreshold(t *testing.T) {
	for c := 0; c < 256; c++ {
		got := Threshold(uint8(c))
		want := uint8(0)
		if c >= 128 {
			want = 255
		}
		if got != want {
			t.Errorf("Threshold(%d) = %d, want %d", c, got, want)
		}
	}
}
