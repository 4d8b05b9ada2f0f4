// Command quotecard renders every background in a directory with quotes from
// a file or a quote API and writes the graphics to the output directory.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/youruser/quotecard/internal/batch"
	"github.com/youruser/quotecard/internal/config"
	imagepkg "github.com/youruser/quotecard/internal/image"
	"github.com/youruser/quotecard/internal/quotes"
	"github.com/youruser/quotecard/internal/util"
)

const wordLimit = 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}

	var (
		inDir     = flag.String("in", cfg.InputDir, "directory of background images")
		quoteFile = flag.String("quotes", cfg.QuotesFile, "quotes file, one per line (source=file)")
		source    = flag.String("source", "file", "quote source: file, forismatic or ninjas")
		author    = flag.String("author", "", "author to query (source=ninjas)")
		count     = flag.Int("n", 1, "number of quotes to fetch from an API source")
		all       = flag.Bool("all", false, "render every image with every quote")
		logo      = flag.Bool("logo", false, "stamp the logo")
		trademark = flag.Bool("trademark", false, "stamp the trademark text")
		ask       = flag.Bool("ask", false, "prompt for -all, -trademark and -logo on a terminal")
		workers   = flag.Int("workers", cfg.Workers, "parallel renders")
		outDir    = flag.String("out", cfg.Render.OutputDir, "output directory")
		logLevel  = flag.String("loglevel", cfg.LogLevel, "log level (debug, info, warn, error)")
	)
	flag.Parse()

	log, err := config.NewLogger(*logLevel)
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	images, err := util.ListImages(*inDir)
	if err != nil {
		log.WithError(err).Fatal("cannot read input directory")
	}
	if len(images) == 0 {
		log.WithField("dir", *inDir).Fatal("no image files found")
	}

	src, err := quoteSource(*source, *author, cfg.NinjasKey)
	if err != nil {
		log.WithError(err).Fatal("invalid -source")
	}
	qs, err := loadQuotes(ctx, src, *quoteFile, *count)
	if err != nil && len(qs) == 0 {
		log.WithError(err).Fatal("no quotes available")
	}
	if err != nil {
		log.WithError(err).Warn("some quotes could not be fetched")
	}

	if *ask && term.IsTerminal(int(os.Stdin.Fd())) {
		in := bufio.NewReader(os.Stdin)
		*all = prompt(in, os.Stdout, "Generate all combinations?")
		*trademark = prompt(in, os.Stdout, "Include trademark?")
		*logo = prompt(in, os.Stdout, "Include logo?")
	}

	opts := cfg.Render
	opts.OutputDir = *outDir
	renderer, err := imagepkg.NewRenderer(opts, log)
	if err != nil {
		log.WithError(err).Fatal("failed to set up renderer")
	}

	jobs := batch.Plan(images, qs, *all, batch.Flags{IncludeLogo: *logo, IncludeTrademark: *trademark})
	if !*all && len(images) > len(qs) {
		log.WithField("skipped", len(images)-len(qs)).Info("more images than quotes")
	}
	reports := batch.Run(ctx, renderer, jobs, *workers, log)

	failed := batch.Failed(reports)
	log.WithFields(logrus.Fields{"rendered": len(reports) - failed, "failed": failed}).Info("done")
	if failed > 0 {
		stop()
		os.Exit(1)
	}
}

// quoteSource maps the -source flag to a quote API. The file source has no
// API and yields nil.
func quoteSource(name, author, key string) (quotes.Source, error) {
	switch name {
	case "file":
		return nil, nil
	case "forismatic":
		return quotes.Forismatic{}, nil
	case "ninjas":
		if author == "" {
			return nil, errors.New("source ninjas needs -author")
		}
		return quotes.APINinjas{APIKey: key, Author: author}, nil
	}
	return nil, fmt.Errorf("unknown quote source %q", name)
}

// loadQuotes reads file when src is nil, otherwise fetches n quotes from src.
// API quotes are cut to wordLimit words; file quotes are used as written.
func loadQuotes(ctx context.Context, src quotes.Source, file string, n int) ([]string, error) {
	var (
		qs  []quotes.Quote
		err error
	)
	if src == nil {
		qs, err = quotes.LoadFile(file)
	} else {
		qs, err = quotes.FetchN(ctx, src, n)
	}
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		if src != nil {
			q = q.Limit(wordLimit)
		}
		out = append(out, q.String())
	}
	return out, err
}

func prompt(in *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s (y/n): ", question)
	line, _ := in.ReadString('\n')
	return strings.ToLower(strings.TrimSpace(line)) == "y"
}
