package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"strings"

	"github.com/example/sketchpad/internal/board"
	"github.com/example/sketchpad/internal/script"
	"github.com/example/sketchpad/internal/surface"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, "; ")
}

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

// interactiveCmd is a prompt that feeds each line to a script runner.
type interactiveCmd struct {
	*root
	fs     *flag.FlagSet
	execs  commandList
	width  int
	height int
	prompt bool

	runner *script.Runner
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	r = r.subcommand("interactive")
	fs := flag.NewFlagSet("interactive", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	i := &interactiveCmd{root: r, fs: fs}
	fs.Usage = usageFunc(i)
	fs.Var(&i.execs, "e", "execute a command without reading stdin (may be specified multiple times)")
	fs.IntVar(&i.width, "width", 800, "canvas width in pixels")
	fs.IntVar(&i.height, "height", 600, "canvas height in pixels")
	fs.BoolVar(&i.prompt, "prompt", true, "print a prompt before each line")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: i}
	}
	if i.width <= 0 || i.height <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", i.width, i.height)
	}
	return i, nil
}

func (i *interactiveCmd) start() func() {
	b := board.New(i.boardOptions()...)
	teardown := b.Init(surface.New(image.Pt(i.width, i.height), image.Point{}))
	i.runner = script.New(b,
		script.WithOutput(i.stdout),
		script.WithToolConfig(i.toolConfig()),
		script.WithExportDir(i.exportDir),
	)
	return teardown
}

// executeLine runs one command. done reports that the session should end.
func (i *interactiveCmd) executeLine(line string) (done bool, err error) {
	err = i.runner.Exec(line)
	if errors.Is(err, script.ErrQuit) {
		return true, nil
	}
	return false, err
}

func (i *interactiveCmd) Run() error {
	defer i.start()()

	if len(i.execs) > 0 {
		for _, cmd := range i.execs {
			done, err := i.executeLine(cmd)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	sc := bufio.NewScanner(i.stdin)
	for {
		if i.prompt {
			fmt.Fprint(i.stdout, "> ")
		}
		if !sc.Scan() {
			break
		}
		done, err := i.executeLine(sc.Text())
		if err != nil {
			fmt.Fprintf(i.stderr, "error: %v\n", err)
			continue
		}
		if done {
			return nil
		}
	}
	if i.prompt {
		fmt.Fprintln(i.stdout)
	}
	return sc.Err()
}
