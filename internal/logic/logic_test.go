package logic

import (
	"errors"
	"strings"
	"testing"

	"github.com/MeKo-Tech/imagelab/internal/raster"
)

func row(t *testing.T, pix ...uint8) *raster.Image {
	t.Helper()
	img, err := raster.FromSamples(raster.Shape{Height: 1, Width: len(pix), Channels: 1}, pix)
	if err != nil {
		t.Fatalf("FromSamples: %v", err)
	}
	return img
}

func TestLogical(t *testing.T) {
	a := row(t, 0b1100, 0xff, 0, 0x0f)
	b := row(t, 0b1010, 0x0f, 0xff, 0xf0)

	tests := []struct {
		op   Op
		want []uint8
	}{
		{Not, []uint8{0xf3, 0x00, 0xff, 0xf0}},
		{And, []uint8{0b1000, 0x0f, 0, 0}},
		{Or, []uint8{0b1110, 0xff, 0xff, 0xff}},
		{Xor, []uint8{0b0110, 0xf0, 0xff, 0xff}},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			out, err := Logical(a, b, tt.op)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for i, v := range out.Pix() {
				if v != tt.want[i] {
					t.Fatalf("got %08b, want %08b", out.Pix(), tt.want)
				}
			}
		})
	}
}

func TestNotIgnoresSecondOperand(t *testing.T) {
	a := row(t, 1, 2)
	other, _ := raster.NewMulti(5, 5, 3)
	out, err := Logical(a, other, Not)
	if err != nil {
		t.Fatalf("not should ignore the second image, got %v", err)
	}
	if out.Pix()[0] != 254 {
		t.Fatalf("unexpected complement %d", out.Pix()[0])
	}
}

func TestLogicalErrors(t *testing.T) {
	a := row(t, 1, 2)

	if _, err := Logical(a, nil, And); !errors.Is(err, raster.ErrMissingOperand) {
		t.Errorf("expected ErrMissingOperand, got %v", err)
	}

	_, err := Logical(a, row(t, 1, 2, 3), Or)
	if !errors.Is(err, raster.ErrIncompatibleShape) {
		t.Fatalf("expected ErrIncompatibleShape, got %v", err)
	}
	if !strings.Contains(err.Error(), "(1, 2)") || !strings.Contains(err.Error(), "(1, 3)") {
		t.Errorf("error should name both shapes: %v", err)
	}

	if _, err := Logical(a, nil, Op(9)); !errors.Is(err, raster.ErrUnknownOperation) {
		t.Errorf("expected ErrUnknownOperation, got %v", err)
	}
}

func TestParseOp(t *testing.T) {
	for _, name := range []string{"not", "and", "or", "xor"} {
		op, err := ParseOp(strings.ToUpper(name))
		if err != nil {
			t.Fatalf("ParseOp(%q): %v", name, err)
		}
		if op.String() != name {
			t.Errorf("round trip %q -> %q", name, op)
		}
	}
	if _, err := ParseOp("nand"); !errors.Is(err, raster.ErrUnknownOperation) {
		t.Errorf("expected ErrUnknownOperation, got %v", err)
	}
}

func TestMaskRoundTrip(t *testing.T) {
	img := row(t, 0, 1, 7, 255, 0)

	bin := ToBinaryMask(img)
	want := []uint8{0, 1, 1, 1, 0}
	for i, v := range bin.Pix() {
		if v != want[i] {
			t.Fatalf("binary mask = %v, want %v", bin.Pix(), want)
		}
	}

	disp := ToDisplayMask(bin)
	for i, v := range disp.Pix() {
		if v != want[i]*255 {
			t.Fatalf("display mask = %v", disp.Pix())
		}
	}
	if !ToBinaryMask(disp).Equal(bin) {
		t.Fatal("binary -> display -> binary should be stable")
	}
}
