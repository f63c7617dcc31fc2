package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/gravitas-games/hexunits/internal/config"
	"github.com/gravitas-games/hexunits/internal/game"
	"github.com/gravitas-games/hexunits/internal/logging"
	"github.com/gravitas-games/hexunits/internal/store"
	"github.com/gravitas-games/hexunits/internal/telemetry"
	"github.com/gravitas-games/hexunits/pkg/hex"
)

const usage = `usage: hexunits <command> [arguments]

commands:
  init <name>                               build a game from the config and save it
  show <name>                               print the latest state of a game
  list                                      list stored games and their snapshot counts
  attack <name> <attacker> <defender> [ranged]
  move <name> <unit> <q> <r> <s>
  end-turn <name> <player>                  restore the movement of a player's units
  export <name> <file> [json|binary]

environment:
  HEXUNITS_CONFIG     config file (default hexunits.yaml)
  HEXUNITS_LOG_LEVEL  overrides log_level
  HEXUNITS_STORE      overrides store.path
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "hexunits:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		fmt.Fprint(stdout, usage)
		return nil
	}

	e, err := config.ParseEnv()
	if err != nil {
		return err
	}
	cfg, err := config.Load(e.ConfigPath)
	if err != nil {
		return err
	}
	e.Apply(cfg)

	log := logging.New(cfg.LogLevel, stderr)
	log.Debug().Str("config", e.ConfigPath).Str("store", cfg.Store.Path).Msg("configuration loaded")

	st, err := store.Open(cfg.Store.Path, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn().Err(err).Msg("closing snapshot store")
		}
	}()

	rec, err := telemetry.New(nil)
	if err != nil {
		return err
	}
	g, err := game.New(cfg, st, rec, log)
	if err != nil {
		return err
	}
	return dispatch(g, st, args, stdout, log)
}

func dispatch(g *game.Game, st *store.Store, args []string, stdout io.Writer, log zerolog.Logger) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "init":
		if err := arity(cmd, rest, 1, 1); err != nil {
			return err
		}
		status, err := g.Init(rest[0])
		if err != nil {
			return err
		}
		return printJSON(stdout, status)

	case "show":
		if err := arity(cmd, rest, 1, 1); err != nil {
			return err
		}
		status, err := g.Show(rest[0])
		if err != nil {
			return err
		}
		return printJSON(stdout, status)

	case "list":
		names, err := st.Names()
		if err != nil {
			return err
		}
		for _, n := range names {
			count, err := st.Count(n)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "%s\t%d snapshots\n", n, count)
		}
		return nil

	case "attack":
		if err := arity(cmd, rest, 3, 4); err != nil {
			return err
		}
		ids, err := ints(rest[1:3])
		if err != nil {
			return err
		}
		ranged := len(rest) == 4 && rest[3] == "ranged"
		res, err := g.Attack(rest[0], ids[0], ids[1], ranged)
		if err != nil {
			return err
		}
		return printJSON(stdout, res)

	case "move":
		if err := arity(cmd, rest, 5, 5); err != nil {
			return err
		}
		n, err := ints(rest[1:5])
		if err != nil {
			return err
		}
		target := hex.Cube{Q: n[1], R: n[2], S: n[3]}
		if !target.Valid() {
			return errors.Errorf("%s is not a cube coordinate", target)
		}
		res, err := g.Move(rest[0], n[0], target)
		if err != nil {
			return err
		}
		return printJSON(stdout, res)

	case "end-turn":
		if err := arity(cmd, rest, 2, 2); err != nil {
			return err
		}
		n, err := ints(rest[1:2])
		if err != nil {
			return err
		}
		count, err := g.EndTurn(rest[0], n[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%d units refreshed\n", count)
		return nil

	case "export":
		if err := arity(cmd, rest, 2, 3); err != nil {
			return err
		}
		format := config.FormatBinary
		if len(rest) == 3 {
			format = rest[2]
		}
		return export(g, rest[0], rest[1], format, log)

	default:
		return errors.Errorf("unknown command %q", cmd)
	}
}

func export(g *game.Game, name, path, format string, log zerolog.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create export file")
	}
	if err := g.Export(name, f, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close export file")
	}
	log.Info().Str("game", name).Str("file", path).Str("format", format).Msg("snapshot exported")
	return nil
}

func arity(cmd string, args []string, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		return errors.Errorf("%s: wrong number of arguments\n\n%s", cmd, usage)
	}
	return nil
}

func ints(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %q", a)
		}
		out[i] = n
	}
	return out, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "print result")
}
