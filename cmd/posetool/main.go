// posetool is a CLI utility for inspecting item pose catalogs and world fixtures.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/worlddrops/internal/config"
	"github.com/Faultbox/worlddrops/internal/drops"
	"github.com/Faultbox/worlddrops/internal/game/world"
	"github.com/Faultbox/worlddrops/internal/items"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "list", "ls":
		err = cmdList(os.Stdout, args)
	case "show":
		err = cmdShow(os.Stdout, args)
	case "stance":
		err = cmdStance(os.Stdout, args)
	case "validate":
		err = cmdValidate(os.Stdout, args)
	case "classify":
		err = cmdClassify(os.Stdout, args)
	case "config":
		err = cmdConfig(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `posetool - item pose catalog utility

Usage:
  posetool <command> [options]

Commands:
  list [-catalog file] [pattern]              List item types (optional glob pattern)
  show [-catalog file] <typeId>               Print an item's pose config as YAML
  stance [-catalog file] [-motion m] [-t s] <typeId> <stance>
                                              Print the offset for idle, hip or ads, plus
                                              the bob at time s while idle, walk or sprint
  validate <poses.yaml>                       Check a catalog against the pose schema
  classify <scene.yaml>                       Count a world fixture's drops per category
  config [-write | -o file]                   Print the default viewer config, or save it

Examples:
  posetool list "weapon_*"
  posetool show tool_scanner
  posetool stance -motion walk -t 0.25 weapon_makarov ads
  posetool classify levels/cellar.yaml`)
}

// registry parses the common -catalog flag plus any flags extra registers,
// and returns the remaining args.
func registry(name string, args []string, extra ...func(*flag.FlagSet)) (*items.Registry, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	catalog := fs.String("catalog", "", "Pose catalog to read instead of the built-in one")
	for _, fn := range extra {
		fn(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if *catalog == "" {
		return items.Default(), fs.Args(), nil
	}
	r, err := loadCatalog(*catalog)
	return r, fs.Args(), err
}

func loadCatalog(file string) (*items.Registry, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return items.Parse(data)
}

func cmdList(w io.Writer, args []string) error {
	r, rest, err := registry("list", args)
	if err != nil {
		return err
	}
	pattern := "*"
	if len(rest) > 0 {
		pattern = rest[0]
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tNAME\tHELD AS\tDROPS AS\tMODEL")
	count := 0
	for _, id := range r.TypeIDs() {
		if ok, _ := path.Match(pattern, id); !ok {
			continue
		}
		c := r.Lookup(id)
		drop := drops.CategoryOf(&drops.WorldItemDrop{TypeID: id})
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", id, c.Name, c.Category, drop, c.ModelPath)
		count++
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d item types\n", count)
	return nil
}

func cmdShow(w io.Writer, args []string) error {
	r, rest, err := registry("show", args)
	if err != nil {
		return err
	}
	if len(rest) < 1 {
		return fmt.Errorf("usage: posetool show <typeId>")
	}
	if !r.Has(rest[0]) {
		fmt.Fprintf(w, "# %s is not registered; showing the fallback\n", rest[0])
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.Lookup(rest[0])); err != nil {
		return err
	}
	return enc.Close()
}

var motions = map[string]items.Motion{
	"idle":   items.MotionIdle,
	"walk":   items.MotionWalk,
	"sprint": items.MotionSprint,
}

func cmdStance(w io.Writer, args []string) error {
	var (
		motionName string
		at         float64
	)
	r, rest, err := registry("stance", args, func(fs *flag.FlagSet) {
		fs.StringVar(&motionName, "motion", "idle", "Holder movement: idle, walk or sprint")
		fs.Float64Var(&at, "t", 0, "Time in seconds for the bob offset")
	})
	if err != nil {
		return err
	}
	motion, ok := motions[motionName]
	if !ok {
		return fmt.Errorf("unknown motion %q", motionName)
	}
	if len(rest) < 2 {
		return fmt.Errorf("usage: posetool stance <typeId> <idle|hip|ads>")
	}
	s, ok := items.ParseStance(rest[1])
	if !ok {
		return fmt.Errorf("unknown stance %q", rest[1])
	}

	c := r.Lookup(rest[0])
	pos, rot := c.Offset(s)
	out := struct {
		TypeID string     `yaml:"typeId"`
		Stance string     `yaml:"stance"`
		Pos    [3]float32 `yaml:"pos,flow"`
		Rot    [3]float32 `yaml:"rot,flow"`
		Motion string     `yaml:"motion"`
		Bob    [3]float32 `yaml:"bob,flow"`
	}{c.TypeID, s.String(), pos, rot, motionName, c.Bob(s, motion, at)}
	if s == items.StanceADS && !c.CanAim() {
		fmt.Fprintf(w, "# %s cannot aim; ads falls back to hip\n", c.TypeID)
	}
	return yaml.NewEncoder(w).Encode(out)
}

func cmdValidate(w io.Writer, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: posetool validate <poses.yaml>")
	}
	r, err := loadCatalog(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: ok, %d item types\n", args[0], r.Len())
	return nil
}

func cmdClassify(w io.Writer, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: posetool classify <scene.yaml>")
	}
	s, err := world.LoadFile(args[0])
	if err != nil {
		return err
	}

	b := drops.Classify(s.Drops)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tSTRATEGY\tDROPS\tIDS")
	for _, c := range drops.Categories() {
		in := b.Of(c)
		ids := make([]string, len(in))
		for i := range in {
			ids[i] = in[i].ID
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", c, c.Strategy(), len(in), strings.Join(ids, ","))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d drops, %d papers, %d sticks\n", b.Total(), len(s.Papers), len(s.Sticks))
	return nil
}

func cmdConfig(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	write := fs.Bool("write", false, "Save to the user config directory")
	out := fs.String("o", "", "Save to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	switch {
	case *out != "":
		if err := cfg.SaveTo(*out); err != nil {
			return err
		}
		fmt.Fprintf(w, "wrote %s\n", *out)
	case *write:
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(w, "wrote %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	default:
		return yaml.NewEncoder(w).Encode(cfg)
	}
	return nil
}
