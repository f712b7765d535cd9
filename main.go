package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	handler "github.com/bent101/wordle-entropy/api"
	"github.com/bent101/wordle-entropy/config"
	"github.com/bent101/wordle-entropy/hint"
	"github.com/bent101/wordle-entropy/history"
	"github.com/bent101/wordle-entropy/solver"
)

const usage = `usage: wordle <command> [flags]

commands:
  best        recommend the next guess
  hints       show how a guess splits the remaining answers
  history     list recently served recommendations
  precompute  rebuild the starter table from the full answer list
  serve       serve recommendations over HTTP at ` + handler.Path + `

run "wordle <command> -h" for the flags of a command`

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "best":
		err = runBest(ctx, args, os.Stdout)
	case "hints":
		err = runHints(ctx, args, os.Stdout)
	case "history":
		err = runHistory(ctx, args, os.Stdout)
	case "precompute":
		err = runPrecompute(ctx, args)
	case "serve":
		err = runServe(ctx, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s\n", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

// configFlags registers the flags every command shares and returns a func
// that resolves them against the config file once fs is parsed.
func configFlags(fs *flag.FlagSet) func() (config.Config, error) {
	path := fs.String("config", "", "Path to YAML config file")
	dataDir := fs.String("data", "", "Directory holding answerlist.json, usedlist.json and wordlist.json")
	sampleSize := fs.Int("sample-size", 0, "Maximum number of candidates scored per ranking")
	seed := fs.Uint64("seed", 0, "Random seed (0 = seed from the clock)")
	historyDB := fs.String("history-db", "", "SQLite file recording served words")
	starters := fs.String("starters", "", "Starter table written by precompute")

	return func() (config.Config, error) {
		cfg, err := config.Load(*path)
		if err != nil {
			return cfg, err
		}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "data":
				cfg.DataDir = *dataDir
			case "sample-size":
				cfg.SampleSize = *sampleSize
			case "seed":
				cfg.Seed = *seed
			case "history-db":
				cfg.HistoryDB = *historyDB
			case "starters":
				cfg.StartersFile = *starters
			}
		})
		return cfg, cfg.Validate()
	}
}

func runBest(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("best", flag.ExitOnError)
	resolve := configFlags(fs)
	asJSON := fs.Bool("json", false, "Print the result as JSON")
	fs.Parse(args)

	cfg, err := resolve()
	if err != nil {
		return err
	}
	s, closeFn, err := handler.New(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := s.BestWord(ctx)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	fmt.Fprintf(out, "%s (%.2f bits)\n", result.BestWord.Word, result.BestWord.Entropy)
	switch {
	case result.IsPrecalculated:
		fmt.Fprintln(out, "no words used yet, picked a precalculated starter")
	case result.Starter:
		fmt.Fprintln(out, "every answer is used, picked a precalculated starter")
	default:
		fmt.Fprintf(out, "scored up to %d of %d remaining answers\n", s.Ranker.SampleSize(), result.Remaining)
	}
	return nil
}

func runHints(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("hints", flag.ExitOnError)
	resolve := configFlags(fs)
	word := fs.String("word", "", "Guess to inspect")
	pattern := fs.String("pattern", "", "Only list the answers giving this hint (g/y/- per letter, e.g. -gg-y)")
	fs.Parse(args)

	if *word == "" {
		return errors.New("-word is required")
	}
	cfg, err := resolve()
	if err != nil {
		return err
	}
	src, store, err := handler.OpenSource(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}
	lists, err := src.Load(ctx)
	if err != nil {
		return err
	}

	remaining := solver.NewWordSet(lists.Answers...).Difference(solver.NewWordSet(lists.Used...))
	if remaining.Len() == 0 {
		return fmt.Errorf("%w: no remaining answers", solver.ErrInvalidInput)
	}
	p, err := solver.NewPartition(solver.NormalizeWord(*word), remaining.Sorted())
	if err != nil {
		return err
	}

	if *pattern == "" {
		printWordHints(out, p)
		return nil
	}
	h, err := hint.Parse(*pattern)
	if err != nil {
		return err
	}
	for _, g := range p.Sorted() {
		if g.Hint == h {
			fmt.Fprintln(out, strings.Join(g.Answers, " "))
			return nil
		}
	}
	fmt.Fprintf(out, "no remaining answer gives %s\n", h)
	return nil
}

func printWordHints(out io.Writer, p *solver.Partition) {
	for _, g := range p.Sorted() {
		line := fmt.Sprintf("%s %s %s %d", g.Hint.ColoredWord(p.Guess), g.Hint, g.Hint.Code(), len(g.Answers))
		if g.Hint.Solved() {
			line += " solved"
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "%d patterns over %d answers, %.2f bits\n", len(p.Groups), len(p.Answers), p.Entropy())
}

func runHistory(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	resolve := configFlags(fs)
	limit := fs.Int("limit", 20, "How many entries to show")
	fs.Parse(args)

	cfg, err := resolve()
	if err != nil {
		return err
	}
	if cfg.HistoryDB == "" {
		return errors.New("no history database configured (set history_db or -history-db)")
	}
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(ctx, *limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "nothing served yet")
		return nil
	}
	for _, e := range entries {
		kind := "ranked"
		if e.Starter {
			kind = "starter"
		}
		fmt.Fprintf(out, "%s  %s  %.2f bits  %s\n", e.ServedAt.Local().Format(time.DateTime), e.Word, e.Entropy, kind)
	}
	return nil
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	resolve := configFlags(fs)
	addr := fs.String("addr", "", "Listen address")
	fs.Parse(args)

	cfg, err := resolve()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	s, closeFn, err := handler.New(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	mux := http.NewServeMux()
	mux.Handle(handler.Path, s)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		fmt.Printf("Serving %s on %s (sample size %d)\n", handler.Path, cfg.Addr, cfg.SampleSize)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	fmt.Println("Shutting down")
	return srv.Shutdown(shutdownCtx)
}
