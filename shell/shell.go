// Package shell is the interactive REPL: load a tile file, tweak settings,
// and run solves without restarting the process.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/quadrille/config"
	"github.com/domino14/quadrille/render"
	"github.com/domino14/quadrille/runner"
	"github.com/domino14/quadrille/tiles"
)

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	tileFile string
	tiles    []tiles.Tile
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mquadrille>\033[0m ",
		HistoryFile:     "/tmp/quadrille_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold: true,
	})
	if err != nil {
		panic(err)
	}
	return &ShellController{l: l, cfg: cfg}
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "load <path/to/tiles> - load a tile file\n")
	io.WriteString(w, "solve - search until the first packing is found\n")
	io.WriteString(w, "count - enumerate every packing\n")
	io.WriteString(w, "set <option> <value> - change threads, color, blocks, flat, silent, progress\n")
	io.WriteString(w, "show - print the loaded tiles\n")
	io.WriteString(w, "help - this message\n")
	io.WriteString(w, "exit - leave the shell\n")
}

// Loop reads and executes commands until exit or EOF, then signals the
// main goroutine to shut down.
func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "bye" || line == "exit" {
			break
		}
		sc.Execute(line)
	}
	log.Debug().Msg("exiting shell loop")
	sig <- syscall.SIGINT
}

// Execute runs a single command line.
func (sc *ShellController) Execute(line string) {
	fields, err := shellquote.Split(line)
	if err != nil {
		sc.out("error: %v\n", err)
		return
	}
	if len(fields) == 0 {
		return
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		usage(sc.l.Stderr())
	case "load":
		sc.load(args)
	case "solve":
		sc.run(false)
	case "count":
		sc.run(true)
	case "set":
		sc.set(args)
	case "show":
		sc.show()
	default:
		sc.out("unknown command %q; try help\n", cmd)
	}
}

func (sc *ShellController) out(format string, args ...any) {
	fmt.Fprintf(sc.l.Stderr(), format, args...)
}

func (sc *ShellController) load(args []string) {
	if len(args) != 1 {
		sc.out("usage: load <path/to/tiles>\n")
		return
	}
	ts, err := tiles.ParseFile(args[0])
	if err != nil {
		sc.out("error loading %s: %v\n", args[0], err)
		return
	}
	sc.tileFile = args[0]
	sc.tiles = ts
	sc.out("loaded %d tiles covering %d cells\n", len(ts), tiles.TotalArea(ts))
}

func (sc *ShellController) run(all bool) {
	if len(sc.tiles) == 0 {
		sc.out("no tiles loaded; use load first\n")
		return
	}
	job := runner.Job{
		Tiles:        sc.tiles,
		AllSolutions: all,
		Silent:       sc.cfg.Silent(),
		Threads:      sc.cfg.Threads(),
		HSRGate:      sc.cfg.HSRGate(),
		Render: render.Config{
			Color:  sc.cfg.Color(),
			Blocks: sc.cfg.Blocks() && sc.cfg.Color(),
			Flat:   sc.cfg.Flat(),
		},
		SavePath: sc.cfg.SavePath(),
		Progress: sc.cfg.Progress(),
	}
	if _, err := runner.Run(context.Background(), job, os.Stdout); err != nil {
		sc.out("error: %v\n", err)
	}
}

func (sc *ShellController) set(args []string) {
	if len(args) != 2 {
		sc.out("usage: set <option> <value>\n")
		return
	}
	key, value := args[0], args[1]
	switch key {
	case "threads", "hsr-gate":
		n, err := strconv.Atoi(value)
		if err != nil {
			sc.out("%s needs a number: %v\n", key, err)
			return
		}
		sc.cfg.Set(key, n)
	case "color", "blocks", "flat", "silent", "progress", "all-solutions":
		b, err := strconv.ParseBool(value)
		if err != nil {
			sc.out("%s needs a boolean: %v\n", key, err)
			return
		}
		sc.cfg.Set(key, b)
	case "save":
		sc.cfg.Set(key, value)
	default:
		sc.out("unknown option %q\n", key)
		return
	}
	sc.out("%s = %s\n", key, value)
}

func (sc *ShellController) show() {
	if len(sc.tiles) == 0 {
		sc.out("no tiles loaded\n")
		return
	}
	sc.out("%s: %d tiles\n", sc.tileFile, len(sc.tiles))
	for i, t := range sc.tiles {
		sc.out("%2d: %016x  %d cells  %dx%d\n",
			i, uint64(t.Mask), t.Size(), t.Width+1, t.Height+1)
	}
}
