package board

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/sketchpad/internal/surface"
	"github.com/example/sketchpad/internal/tool"
)

type recorder struct {
	exported []string
	failed   []error
	cleared  int
}

func (r *recorder) Exported(path string)   { r.exported = append(r.exported, path) }
func (r *recorder) ExportFailed(err error) { r.failed = append(r.failed, err) }
func (r *recorder) Cleared()               { r.cleared++ }

var black = color.RGBA{0x1e, 0x1e, 0x1e, 0xff}

func pencil(width int) *tool.Config {
	return &tool.Config{Tool: tool.Pencil, Color: tool.DefaultColor, Width: width}
}

func newBoard(t *testing.T, opts ...Option) (*Board, *surface.Surface) {
	t.Helper()
	b := New(opts...)
	s := surface.New(image.Pt(100, 100), image.Point{})
	teardown := b.Init(s)
	t.Cleanup(teardown)
	return b, s
}

func stroke(b *Board, cfg *tool.Config, pts ...image.Point) {
	b.PointerDown(pts[0], cfg)
	for _, p := range pts[1:] {
		b.PointerMove(p)
	}
	b.PointerUp()
}

func isBlank(img *image.RGBA) bool {
	for _, v := range img.Pix {
		if v != 0 {
			return false
		}
	}
	return true
}

func TestInitCommitsBaseline(t *testing.T) {
	b, _ := newBoard(t)
	assert.Equal(t, 0, b.Cursor())
	assert.Equal(t, 1, b.HistoryLen())
	assert.False(t, b.CanUndo())
	assert.False(t, b.CanRedo())
}

func TestDrawUndoRedo(t *testing.T) {
	b, s := newBoard(t)
	stroke(b, pencil(2), image.Pt(10, 10), image.Pt(20, 20))

	assert.Equal(t, black, s.At(image.Pt(15, 15)))
	assert.Equal(t, 1, b.Cursor())
	assert.True(t, b.CanUndo())
	assert.False(t, b.CanRedo())

	b.Undo()
	assert.True(t, isBlank(s.Image()))
	assert.False(t, b.CanUndo())
	assert.True(t, b.CanRedo())

	b.Redo()
	assert.Equal(t, black, s.At(image.Pt(15, 15)))
	assert.True(t, b.CanUndo())
	assert.False(t, b.CanRedo())
}

func TestStrokeFollowsOrigin(t *testing.T) {
	b := New()
	s := surface.New(image.Pt(50, 50), image.Pt(100, 40))
	defer b.Init(s)()

	stroke(b, pencil(1), image.Pt(110, 50), image.Pt(120, 50))
	assert.Equal(t, black, s.At(image.Pt(15, 10)))
	assert.Equal(t, color.RGBA{}, s.At(image.Pt(15, 0)))
}

func TestPencilClickCommitsWithoutPaint(t *testing.T) {
	b, s := newBoard(t)
	stroke(b, pencil(4), image.Pt(30, 30))
	assert.True(t, isBlank(s.Image()))
	assert.Equal(t, 1, b.Cursor())
}

func TestCommitsThenUndosReturnToBaseline(t *testing.T) {
	b, s := newBoard(t)
	baseline := s.Pixels()
	for i := 0; i < 5; i++ {
		stroke(b, pencil(3), image.Pt(10*i, 5), image.Pt(10*i+5, 90))
	}
	require.Equal(t, 5, b.Cursor())
	for i := 0; i < 5; i++ {
		b.Undo()
	}
	assert.Equal(t, baseline.Pix, s.Image().Pix)
	assert.Equal(t, 0, b.Cursor())
}

func TestBoundariesAreIdempotent(t *testing.T) {
	b, s := newBoard(t)
	b.Undo()
	b.Undo()
	assert.Equal(t, 0, b.Cursor())
	assert.True(t, isBlank(s.Image()))

	stroke(b, pencil(2), image.Pt(1, 1), image.Pt(50, 50))
	before := s.Pixels()
	b.Redo()
	b.Redo()
	assert.Equal(t, 1, b.Cursor())
	assert.Equal(t, before.Pix, s.Image().Pix)
}

func TestNewCommitDropsRedo(t *testing.T) {
	b, s := newBoard(t)
	stroke(b, pencil(2), image.Pt(5, 5), image.Pt(5, 40))
	stroke(b, pencil(2), image.Pt(20, 5), image.Pt(20, 40))
	b.Undo()
	b.Undo()
	require.True(t, b.CanRedo())

	stroke(b, pencil(2), image.Pt(60, 5), image.Pt(60, 40))
	assert.False(t, b.CanRedo())
	assert.Equal(t, 2, b.HistoryLen())
	assert.Equal(t, color.RGBA{}, s.At(image.Pt(5, 20)))
	assert.Equal(t, black, s.At(image.Pt(60, 20)))

	b.Redo()
	assert.Equal(t, 1, b.Cursor())
}

func TestClearIsUndoable(t *testing.T) {
	rec := &recorder{}
	b, s := newBoard(t, WithNotifier(rec))
	stroke(b, pencil(2), image.Pt(10, 10), image.Pt(80, 10))
	drawn := s.Pixels()

	b.Clear()
	assert.True(t, isBlank(s.Image()))
	assert.Equal(t, 2, b.Cursor())
	assert.Equal(t, 1, rec.cleared)

	b.Undo()
	assert.Equal(t, drawn.Pix, s.Image().Pix)
}

func TestClearMidGestureEndsIt(t *testing.T) {
	b, s := newBoard(t)
	b.PointerDown(image.Pt(10, 10), pencil(2))
	b.PointerMove(image.Pt(30, 10))
	b.Clear()
	assert.False(t, b.Drawing())
	cursor := b.Cursor()

	b.PointerMove(image.Pt(40, 40))
	b.PointerUp()
	assert.True(t, isBlank(s.Image()))
	assert.Equal(t, cursor, b.Cursor())
}

func TestUninitialisedIsInert(t *testing.T) {
	rec := &recorder{}
	b := New(WithNotifier(rec))
	assert.NotPanics(t, func() {
		b.PointerDown(image.Pt(1, 1), pencil(2))
		b.PointerMove(image.Pt(5, 5))
		b.PointerUp()
		b.PointerLeave()
		b.TouchStart([]image.Point{{1, 1}}, nil)
		b.TouchMove(nil)
		b.TouchEnd()
		b.Undo()
		b.Redo()
		b.Clear()
		b.Resize(image.Pt(10, 10))
		path, err := b.Export(t.TempDir())
		assert.Empty(t, path)
		assert.NoError(t, err)
	})
	assert.Nil(t, b.Pixels())
	assert.Nil(t, b.Flatten())
	assert.Equal(t, -1, b.Cursor())
	assert.Zero(t, rec.cleared)
	assert.Empty(t, rec.exported)
	assert.Empty(t, rec.failed)
}

func TestInitNilSurface(t *testing.T) {
	b := New()
	teardown := b.Init(nil)
	require.NotNil(t, teardown)
	teardown()
	assert.False(t, b.Ready())
}

func TestTeardownUnbinds(t *testing.T) {
	b := New()
	s := surface.New(image.Pt(20, 20), image.Point{})
	teardown := b.Init(s)
	teardown()
	assert.False(t, b.Ready())

	stroke(b, pencil(2), image.Pt(1, 1), image.Pt(10, 10))
	assert.True(t, isBlank(s.Image()))
}

func TestStaleTeardownKeepsNewSurface(t *testing.T) {
	b := New()
	first := b.Init(surface.New(image.Pt(10, 10), image.Point{}))
	second := surface.New(image.Pt(10, 10), image.Point{})
	b.Init(second)
	first()
	assert.Same(t, second, b.Surface())
}

func TestRectanglePreviewDoesNotSmear(t *testing.T) {
	b, s := newBoard(t)
	cfg := &tool.Config{Tool: tool.Rectangle, Color: "#e03131", Width: 1}
	red := color.RGBA{0xe0, 0x31, 0x31, 0xff}

	b.PointerDown(image.Pt(50, 50), cfg)
	b.PointerMove(image.Pt(90, 90))
	assert.Equal(t, red, s.At(image.Pt(90, 70)))
	b.PointerMove(image.Pt(10, 10))
	b.PointerUp()

	assert.Equal(t, red, s.At(image.Pt(10, 30)))
	assert.Equal(t, red, s.At(image.Pt(30, 50)))
	assert.Equal(t, color.RGBA{}, s.At(image.Pt(90, 70)), "earlier preview must be gone")
	assert.Equal(t, color.RGBA{}, s.At(image.Pt(30, 30)), "outline only")
	assert.Equal(t, 1, b.Cursor())
}

func TestCirclePreview(t *testing.T) {
	b, s := newBoard(t)
	cfg := &tool.Config{Tool: tool.Circle, Color: "#4dabf7", Width: 1}
	blue := color.RGBA{0x4d, 0xab, 0xf7, 0xff}

	stroke(b, cfg, image.Pt(50, 50), image.Pt(70, 50), image.Pt(60, 50))
	assert.Equal(t, blue, s.At(image.Pt(60, 50)))
	assert.Equal(t, blue, s.At(image.Pt(50, 40)))
	assert.Equal(t, color.RGBA{}, s.At(image.Pt(70, 50)))
	assert.Equal(t, color.RGBA{}, s.At(image.Pt(50, 50)))
}

func TestShapeWithoutMoveCommits(t *testing.T) {
	b, s := newBoard(t)
	stroke(b, &tool.Config{Tool: tool.Rectangle, Color: "#000", Width: 2}, image.Pt(10, 10))
	assert.Equal(t, 1, b.Cursor())
	assert.True(t, isBlank(s.Image()))
}

func TestShapeKeepsEarlierStrokes(t *testing.T) {
	b, s := newBoard(t)
	stroke(b, pencil(1), image.Pt(0, 95), image.Pt(99, 95))
	b.PointerDown(image.Pt(10, 10), &tool.Config{Tool: tool.Circle, Color: "#000", Width: 1})
	b.PointerMove(image.Pt(80, 10))
	b.PointerMove(image.Pt(20, 10))
	b.PointerUp()
	assert.Equal(t, black, s.At(image.Pt(50, 95)))
}

func TestEraserPaintsBackground(t *testing.T) {
	bg := color.RGBA{0xf8, 0xf9, 0xfa, 0xff}
	b, s := newBoard(t)
	stroke(b, pencil(6), image.Pt(10, 50), image.Pt(90, 50))
	stroke(b, &tool.Config{Tool: tool.Eraser, Width: 6}, image.Pt(50, 10), image.Pt(50, 90))
	assert.Equal(t, bg, s.At(image.Pt(50, 50)))
	assert.Equal(t, black, s.At(image.Pt(20, 50)))
}

func TestTranslucentStrokeDrawsOverInk(t *testing.T) {
	b, s := newBoard(t)
	stroke(b, pencil(6), image.Pt(10, 50), image.Pt(90, 50))
	stroke(b, &tool.Config{Tool: tool.Pencil, Color: "#ff000080", Width: 6}, image.Pt(50, 10), image.Pt(50, 90))

	crossing := s.At(image.Pt(50, 50))
	assert.Equal(t, uint8(0xff), crossing.A, "ink underneath must not be cut through")
	assert.Greater(t, crossing.R, black.R)
	assert.Less(t, crossing.G, black.G)

	alone := s.At(image.Pt(50, 20))
	assert.Equal(t, uint8(0x80), alone.A)

	b.Undo()
	assert.Equal(t, black, s.At(image.Pt(50, 50)))
}

func TestBadColourFallsBack(t *testing.T) {
	b, s := newBoard(t)
	stroke(b, &tool.Config{Tool: tool.Pencil, Color: "nope", Width: 1}, image.Pt(1, 1), image.Pt(9, 1))
	assert.Equal(t, black, s.At(image.Pt(5, 1)))
}

func TestSelectGestureCommitsUnchangedCanvas(t *testing.T) {
	b, s := newBoard(t)
	stroke(b, &tool.Config{Tool: tool.Select}, image.Pt(5, 5), image.Pt(20, 20))
	assert.False(t, b.Drawing())
	assert.Equal(t, 1, b.Cursor())
	assert.Equal(t, 2, b.HistoryLen())
	assert.True(t, b.CanUndo())
	assert.True(t, isBlank(s.Image()))

	b.PointerDown(image.Pt(5, 5), &tool.Config{Tool: tool.Select})
	assert.True(t, b.Drawing())
	b.PointerLeave()
	assert.Equal(t, 2, b.Cursor())
}

func TestPointerLeaveCommits(t *testing.T) {
	b, s := newBoard(t)
	b.PointerDown(image.Pt(10, 10), pencil(2))
	b.PointerMove(image.Pt(99, 10))
	b.PointerLeave()
	assert.False(t, b.Drawing())
	assert.Equal(t, 1, b.Cursor())
	assert.Equal(t, black, s.At(image.Pt(50, 10)))
}

func TestToolChangeMidGestureIgnored(t *testing.T) {
	b, s := newBoard(t)
	cfg := pencil(1)
	b.PointerDown(image.Pt(10, 10), cfg)
	cfg.Tool = tool.Eraser
	cfg.Color = "#e03131"
	b.PointerMove(image.Pt(30, 10))
	b.PointerUp()
	assert.Equal(t, black, s.At(image.Pt(20, 10)))
}

func TestTouchUsesFirstPoint(t *testing.T) {
	b, s := newBoard(t)
	b.TouchStart([]image.Point{{10, 20}, {90, 90}}, pencil(1))
	b.TouchMove([]image.Point{{30, 20}, {90, 10}})
	b.TouchMove(nil)
	b.TouchEnd()
	assert.Equal(t, black, s.At(image.Pt(20, 20)))
	assert.Equal(t, color.RGBA{}, s.At(image.Pt(90, 50)))
	assert.Equal(t, 1, b.Cursor())
}

func TestChangeListener(t *testing.T) {
	var got [][2]bool
	b, _ := newBoard(t, WithChangeListener(func(u, r bool) { got = append(got, [2]bool{u, r}) }))
	stroke(b, pencil(1), image.Pt(1, 1), image.Pt(5, 5))
	b.Undo()
	b.Redo()
	assert.Equal(t, [][2]bool{{false, false}, {true, false}, {false, true}, {true, false}}, got)
}

func TestResizeKeepsHistory(t *testing.T) {
	b, s := newBoard(t)
	stroke(b, pencil(1), image.Pt(5, 5), image.Pt(90, 5))
	b.Resize(image.Pt(50, 20))
	assert.Equal(t, image.Pt(50, 20), s.Bounds().Size())
	assert.Equal(t, black, s.At(image.Pt(40, 5)))
	assert.Equal(t, 1, b.Cursor())

	b.Undo()
	assert.True(t, isBlank(s.Image()))
}

func TestExportFilename(t *testing.T) {
	ts := time.UnixMilli(1700000000123)
	assert.Equal(t, "sketchpad-1700000000123.png", ExportFilename("sketchpad", ts))
	assert.Equal(t, "excalidraw-1700000000123.png", ExportFilename("excalidraw", ts))
	assert.Equal(t, "sketchpad-1700000000123.png", ExportFilename("", ts))
}

func TestFlattenIsOpaqueAndNonMutating(t *testing.T) {
	b, s := newBoard(t)
	stroke(b, pencil(2), image.Pt(10, 10), image.Pt(20, 10))
	before := s.Pixels()

	out := b.Flatten()
	require.NotNil(t, out)
	assert.Equal(t, s.Bounds(), out.Bounds())
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, out.RGBAAt(90, 90))
	assert.Equal(t, black, out.RGBAAt(15, 10))
	for i := 3; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 0xff {
			t.Fatalf("pixel %d not opaque", i/4)
		}
	}
	assert.Equal(t, before.Pix, s.Image().Pix)
	assert.Equal(t, 1, b.Cursor())
}

func TestExportWritesPNG(t *testing.T) {
	rec := &recorder{}
	dir := t.TempDir()
	b, _ := newBoard(t,
		WithNotifier(rec),
		WithAppName("excalidraw"),
		WithExportBackground(color.RGBA{0, 0, 0xff, 0xff}),
		WithClock(func() time.Time { return time.UnixMilli(42) }),
	)
	stroke(b, pencil(2), image.Pt(10, 10), image.Pt(20, 10))

	path, err := b.Export(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "excalidraw-42.png"), path)
	assert.Equal(t, []string{path}, rec.exported)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	r, g, bl, a := img.At(90, 90).RGBA()
	assert.Equal(t, [4]uint32{0, 0, 0xffff, 0xffff}, [4]uint32{r, g, bl, a})
	assert.Equal(t, 1, b.Cursor())
}

func TestExportFailureNotifies(t *testing.T) {
	rec := &recorder{}
	b, s := newBoard(t, WithNotifier(rec))
	stroke(b, pencil(2), image.Pt(10, 10), image.Pt(20, 10))
	before := s.Pixels()

	path, err := b.Export(filepath.Join(t.TempDir(), "missing", "dir"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Empty(t, path)
	assert.Len(t, rec.failed, 1)
	assert.Empty(t, rec.exported)
	assert.Equal(t, before.Pix, s.Image().Pix)
	assert.Equal(t, 1, b.Cursor())
	assert.False(t, b.CanRedo())
}

func TestEncodePNG(t *testing.T) {
	b, _ := newBoard(t)
	var buf bytes.Buffer
	require.NoError(t, b.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())
}
