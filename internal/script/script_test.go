package script

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/sketchpad/internal/board"
	"github.com/example/sketchpad/internal/surface"
	"github.com/example/sketchpad/internal/tool"
)

func newRunner(t *testing.T, opts ...Option) (*Runner, *board.Board, *surface.Surface) {
	t.Helper()
	b := board.New(board.WithClock(func() time.Time { return time.UnixMilli(7) }))
	s := surface.New(image.Pt(100, 100), image.Point{})
	t.Cleanup(b.Init(s))
	return New(b, opts...), b, s
}

func TestRunScript(t *testing.T) {
	r, b, s := newRunner(t)
	src := `
# a red box and a stroke
tool rectangle
color #e03131
width 1
rect 60 60 20 20
stroke 5 90 95 90
undo
state
`
	require.NoError(t, r.Run(strings.NewReader(src)))
	assert.Equal(t, 1, b.Cursor())
	assert.True(t, b.CanRedo())
	red := color.RGBA{0xe0, 0x31, 0x31, 0xff}
	assert.Equal(t, red, s.At(image.Pt(20, 40)))
	assert.Equal(t, color.RGBA{}, s.At(image.Pt(50, 90)))
	assert.Equal(t, tool.Rectangle, r.Config().Tool)
}

func TestStrokeUsesEraser(t *testing.T) {
	r, _, s := newRunner(t)
	require.NoError(t, r.Run(strings.NewReader("width 4\nstroke 10 50 90 50\ntool eraser\nstroke 50 10 50 90\n")))
	assert.Equal(t, color.RGBA{0xf8, 0xf9, 0xfa, 0xff}, s.At(image.Pt(50, 50)))
}

func TestPointerCommands(t *testing.T) {
	var out bytes.Buffer
	r, b, s := newRunner(t, WithOutput(&out))
	require.NoError(t, r.Run(strings.NewReader("down 10 10\nmove 30 10\nleave\nmove 30 30\nup\nstate\n")))
	assert.Equal(t, 1, b.Cursor())
	assert.Equal(t, color.RGBA{0x1e, 0x1e, 0x1e, 0xff}, s.At(image.Pt(20, 10)))
	assert.Equal(t, color.RGBA{}, s.At(image.Pt(30, 20)))
	assert.Equal(t, "cursor=1 snapshots=2 undo=true redo=false tool=pencil color=#1e1e1e width=2\n", out.String())
}

func TestTouchCommands(t *testing.T) {
	r, b, s := newRunner(t)
	require.NoError(t, r.Run(strings.NewReader("touch 10 20 90 90\ntouchmove 30 20 90 10\ntouchend\n")))
	assert.Equal(t, 1, b.Cursor())
	assert.NotEqual(t, color.RGBA{}, s.At(image.Pt(20, 20)))
}

func TestCircleAndClear(t *testing.T) {
	r, b, s := newRunner(t)
	require.NoError(t, r.Run(strings.NewReader("width 1\ncircle 50 50 53 54\nclear\n")))
	assert.Equal(t, 2, b.Cursor())
	assert.Equal(t, color.RGBA{}, s.At(image.Pt(55, 50)))
	require.NoError(t, r.Exec("undo"))
	assert.NotEqual(t, color.RGBA{}, s.At(image.Pt(55, 50)))
	require.NoError(t, r.Exec("redo"))
	assert.Equal(t, color.RGBA{}, s.At(image.Pt(55, 50)))
}

func TestExportAndResize(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	r, _, s := newRunner(t, WithExportDir(dir), WithOutput(&out))
	require.NoError(t, r.Run(strings.NewReader("resize 40 30\nexport\n")))
	assert.Equal(t, image.Pt(40, 30), s.Bounds().Size())
	want := filepath.Join(dir, "sketchpad-7.png")
	assert.Equal(t, []string{want}, r.Exports())
	assert.Equal(t, "exported "+want+"\n", out.String())
}

func TestErrorsCarryLineNumbers(t *testing.T) {
	cases := map[string]string{
		"undo\nfoo 1 2\n": `line 2: unknown command "foo"`,
		"tool lasso\n":    `line 1: unknown tool "lasso"`,
		"width 0\n":       "line 1: width must be between 1 and 20",
		"stroke 1 2 3\n":  "line 1: stroke: coordinates must come in x y pairs",
		"rect 1 2 3\n":    "line 1: rect: want at least 4 arguments, got 3",
		"up now\n":        "line 1: up: want at most 0 arguments, got 1",
		"\n\nmove a b\n":  `line 3: invalid coordinate "a"`,
		"color nope\n":    `line 1: invalid color "nope"`,
		"resize 0 5\n":    "line 1: resize: size must be positive",
	}
	for src, want := range cases {
		r, _, _ := newRunner(t)
		err := r.Run(strings.NewReader(src))
		require.Error(t, err, src)
		assert.Equal(t, want, err.Error())
	}
}

func TestExportFailureStopsScript(t *testing.T) {
	r, b, _ := newRunner(t)
	err := r.Run(strings.NewReader("stroke 1 1 5 5\nexport " + filepath.Join(t.TempDir(), "missing") + "\nclear\n"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "line 2: export "))
	assert.Equal(t, 1, b.Cursor())
}

func TestQuitStops(t *testing.T) {
	r, b, _ := newRunner(t)
	require.NoError(t, r.Run(strings.NewReader("stroke 1 1 5 5\nquit\nclear\n")))
	assert.Equal(t, 1, b.Cursor())
}

func TestHelpListsCommands(t *testing.T) {
	var out bytes.Buffer
	r, _, _ := newRunner(t, WithOutput(&out))
	require.NoError(t, r.Exec("help"))
	for _, c := range Commands() {
		assert.Contains(t, out.String(), c[0])
	}
}

func TestUninitialisedBoard(t *testing.T) {
	r := New(board.New())
	assert.NoError(t, r.Run(strings.NewReader("stroke 1 1 5 5\nundo\nclear\nexport\n")))
	assert.Empty(t, r.Exports())
}
