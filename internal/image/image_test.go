package image

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/colorsort/internal/colour"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestResizeDims(t *testing.T) {
	tests := []struct {
		name         string
		w, h, target int
		wantW, wantH int
	}{
		{name: "vertical", w: 100, h: 200, target: 100, wantW: 50, wantH: 100},
		{name: "horizontal upscale", w: 200, h: 100, target: 400, wantW: 400, wantH: 200},
		{name: "square", w: 300, h: 300, target: 100, wantW: 100, wantH: 100},
		{name: "truncates", w: 300, h: 700, target: 400, wantW: 171, wantH: 400},
		{name: "no resize", w: 123, h: 45, target: 0, wantW: 123, wantH: 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := ResizeDims(tt.w, tt.h, tt.target)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("ResizeDims() = (%d, %d), want (%d, %d)", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResize(t *testing.T) {
	src := Fill(100, 200, color.NRGBA{R: 10, G: 200, B: 30, A: 255})
	got := Resize(src, 100)
	if got.Bounds().Dx() != 50 || got.Bounds().Dy() != 100 {
		t.Errorf("Resize() bounds = %v, want 50x100", got.Bounds())
	}

	same := Resize(src, 0)
	if same.Bounds() != src.Bounds() {
		t.Errorf("Resize(0) bounds = %v, want %v", same.Bounds(), src.Bounds())
	}
}

func TestOrientationOf(t *testing.T) {
	tests := []struct {
		w, h int
		want Orientation
	}{
		{100, 200, Vertical},
		{200, 100, Horizontal},
		{100, 100, Horizontal},
	}

	for _, tt := range tests {
		if got := OrientationOf(tt.w, tt.h); got != tt.want {
			t.Errorf("OrientationOf(%d, %d) = %s, want %s", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestCropRect(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		fracY, fracX float64
		wantW, wantH int
	}{
		{name: "even dims 0.2", w: 10, h: 8, fracY: 0.2, fracX: 0.2, wantW: 6, wantH: 4},
		{name: "even dims 0.25", w: 10, h: 8, fracY: 0.25, fracX: 0.25, wantW: 4, wantH: 4},
		{name: "even dims mixed", w: 10, h: 8, fracY: 0.2, fracX: 0.3, wantW: 4, wantH: 4},
		{name: "odd dims 0.2", w: 9, h: 7, fracY: 0.2, fracX: 0.2, wantW: 5, wantH: 5},
		{name: "odd dims 0.25", w: 9, h: 7, fracY: 0.25, fracX: 0.25, wantW: 5, wantH: 3},
		{name: "x only", w: 9, h: 7, fracY: 0, fracX: 0.15, wantW: 7, wantH: 7},
		{name: "none", w: 9, h: 7, wantW: 9, wantH: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CropRect(image.Rect(0, 0, tt.w, tt.h), tt.fracY, tt.fracX)
			if r.Dx() != tt.wantW || r.Dy() != tt.wantH {
				t.Errorf("CropRect() = %dx%d, want %dx%d", r.Dx(), r.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestCropRectKeepsCentre(t *testing.T) {
	r := CropRect(image.Rect(0, 0, 10, 8), 0.2, 0.2)
	if r.Min != (image.Point{X: 2, Y: 2}) {
		t.Errorf("CropRect().Min = %v, want (2,2)", r.Min)
	}
}

func TestSamples(t *testing.T) {
	img := Fill(4, 4, color.NRGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})

	all := RGBSamples(img, img.Bounds())
	if len(all) != 16 {
		t.Fatalf("len(RGBSamples()) = %d, want 16", len(all))
	}
	if all[0] != (colour.RGB{R: 255}) {
		t.Errorf("RGBSamples()[0] = %v, want red", all[0])
	}

	inner := HSV8Samples(img, CropRect(img.Bounds(), 0.25, 0.25))
	if len(inner) != 4 {
		t.Fatalf("len(HSV8Samples()) = %d, want 4", len(inner))
	}
	for _, s := range inner {
		if s != (colour.HSV8{H: 85, S: 255, V: 255}) {
			t.Errorf("HSV8Samples() sample = %v, want green", s)
		}
	}
}

func TestCollectImages(t *testing.T) {
	dir := t.TempDir()
	px := Fill(2, 2, color.White)
	for _, name := range []string{"img10.png", "img2.png", "img1.png", "sub/img3.png"} {
		writePNG(t, filepath.Join(dir, name), px)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := CollectImages(dir)
	if err != nil {
		t.Fatalf("CollectImages() error = %v", err)
	}

	want := []string{"img1.png", "img2.png", "img10.png", "sub/img3.png"}
	if len(got) != len(want) {
		t.Fatalf("CollectImages() = %v, want %d files", got, len(want))
	}
	for i := range want {
		if rel, _ := filepath.Rel(dir, got[i]); filepath.ToSlash(rel) != want[i] {
			t.Errorf("CollectImages()[%d] = %s, want %s", i, rel, want[i])
		}
	}

	single, err := CollectImages(filepath.Join(dir, "img2.png"))
	if err != nil || len(single) != 1 {
		t.Errorf("CollectImages(file) = %v, %v", single, err)
	}
}

func TestCollectImagesErrors(t *testing.T) {
	empty := t.TempDir()
	if _, err := CollectImages(empty); err == nil {
		t.Error("CollectImages(empty dir) expected error")
	}
	if _, err := CollectImages(filepath.Join(empty, "missing")); err == nil {
		t.Error("CollectImages(missing) expected error")
	}
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	writePNG(t, good, Fill(3, 5, color.Black))
	bad := filepath.Join(dir, "bad.jpg")
	if err := os.WriteFile(bad, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}

	loader := NewFileLoader()

	img, err := loader.Load(good)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 5 {
		t.Errorf("Load() bounds = %v, want 3x5", img.Bounds())
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "missing", path: filepath.Join(dir, "missing.png")},
		{name: "directory", path: dir},
		{name: "corrupt", path: bad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Load(tt.path)
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if tt.path != "" && !strings.Contains(err.Error(), tt.path) && !strings.Contains(err.Error(), "directory") {
				t.Errorf("Load() error %q does not name the path", err)
			}
		})
	}
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.png")
	writePNG(t, good, Fill(1, 1, color.White))

	if err := ValidateImagePath(good); err != nil {
		t.Errorf("ValidateImagePath(file) error = %v", err)
	}
	if err := ValidateImagePath(dir); err != nil {
		t.Errorf("ValidateImagePath(dir) error = %v", err)
	}
	if err := ValidateImagePath(""); err == nil {
		t.Error("ValidateImagePath(\"\") expected error")
	}
}
