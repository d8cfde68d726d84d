package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/example/framer/internal/editor"
	"github.com/example/framer/internal/geom"
	"github.com/example/framer/internal/render"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// interactiveCmd is a line-oriented editor over one session. Lines that are
// not session commands run as framer subcommands.
type interactiveCmd struct {
	r       *root
	fs      *flag.FlagSet
	execs   commandList
	size    int
	catalog string
	stdin   io.Reader

	sess *editor.Session
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	cmd := &interactiveCmd{r: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.Var(&cmd.execs, "e", "execute a command and exit (may be specified multiple times)")
	fs.IntVar(&cmd.size, "size", 0, "side of the picture in pixels")
	fs.StringVar(&cmd.catalog, "catalog", "", "template catalog file or URL (default: built-in templates)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet { return i.fs }

func (i *interactiveCmd) Program() string { return i.r.Program() }

func (i *interactiveCmd) session() *editor.Session {
	if i.sess == nil {
		i.sess = editor.New(editor.WithCanvasSize(i.r.canvasSize(i.size)))
	}
	return i.sess
}

func (i *interactiveCmd) Run() error {
	defer func() {
		if i.sess != nil {
			i.sess.Close()
		}
	}()
	if len(i.execs) > 0 {
		for _, line := range i.execs {
			done, err := i.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	in := i.stdin
	if in == nil {
		in = os.Stdin
	}
	out := i.r.out()
	fmt.Fprintln(out, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := i.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(i.r.errOut(), err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

const interactiveHelp = `load <photo>            load a photo (path, URL or data: URL)
template <name|n|None>  select an overlay
layer photo|overlay     select the layer gestures act on
pan <dx> <dy>           move the active layer
zoom <factor>           multiply the active layer's scale
scale <s>               set the active layer's scale
reset                   reset the active layer
state                   print both transforms
save [path]             write the picture
copy                    copy the picture to the clipboard
preview <path>          write a thumbnail
exit                    leave
Other lines run as framer subcommands, e.g. "templates".`

// executeLine runs one command and reports whether the loop should end.
func (i *interactiveCmd) executeLine(line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()
	sess := i.session()
	out := i.r.out()

	verb := strings.ToLower(args[0])
	switch verb {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprintln(out, interactiveHelp)
	case "load":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: load <photo>")
		}
		if err := i.r.loadPhoto(ctx, sess, args[1]); err != nil {
			return false, err
		}
	case "template":
		if len(args) < 2 {
			return false, fmt.Errorf("usage: template <name|number|None>")
		}
		spec := overlaySpec{template: strings.Join(args[1:], " "), catalog: i.catalog}
		if err := i.r.applyOverlay(ctx, sess, spec); err != nil {
			return false, err
		}
	case "layer":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: layer photo|overlay")
		}
		l, err := editor.ParseLayer(args[1])
		if err != nil {
			return false, err
		}
		sess.SetActive(l)
	case "pan":
		v, err := floats(args[1:], 2)
		if err != nil {
			return false, fmt.Errorf("usage: pan <dx> <dy>: %w", err)
		}
		sess.Nudge(sess.Active(), v[0], v[1])
	case "zoom":
		v, err := floats(args[1:], 1)
		if err != nil || v[0] <= 0 {
			return false, fmt.Errorf("usage: zoom <factor>")
		}
		sess.Zoom(v[0])
	case "scale":
		v, err := floats(args[1:], 1)
		if err != nil || v[0] <= 0 {
			return false, fmt.Errorf("usage: scale <s>")
		}
		sess.SetScale(geom.ClampScale(v[0]))
	case "reset":
		sess.Reset(sess.Active())
	case "state":
		describe(out, sess)
	case "save", "copy", "preview":
		return false, i.export(sess, verb, args[1:])
	case "interactive":
	default:
		return false, i.r.Run(args)
	}
	return false, nil
}

func (i *interactiveCmd) export(sess *editor.Session, verb string, args []string) error {
	if !sess.HasPhoto() {
		return fmt.Errorf("%s: no photo loaded", verb)
	}
	img, _ := sess.Scene().Compose(render.DefaultOptions())
	var o output
	switch verb {
	case "save":
		if len(args) > 0 {
			o.path = args[0]
		}
	case "copy":
		o.toClipboard = true
	case "preview":
		if len(args) != 1 {
			return fmt.Errorf("usage: preview <path>")
		}
		pv := render.Preview(img, render.PreviewSize)
		return i.r.writeOutput(pv, output{path: args[0]})
	}
	return i.r.writeOutput(img, o)
}

func floats(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d numbers", n)
	}
	out := make([]float64, n)
	for k, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%q is not a finite number", a)
		}
		out[k] = v
	}
	return out, nil
}
