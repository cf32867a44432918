package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"higherlower-server/internal/config"
	"higherlower-server/internal/rng"
	"higherlower-server/internal/util"
	"higherlower-server/pkg/higherlower"
)

var (
	special   = flag.Bool("special", config.Instance().Game.SpecialEdition, "play the special edition with MJ and Rodman cards")
	trueSight = flag.Bool("truesight", config.Instance().Game.TrueSight, "show the next card before every guess")
	seed      = flag.Int64("seed", config.Instance().Game.Seed, "shuffle with a fixed seed, zero for a random deck")
	rules     = flag.Bool("rules", false, "print the rules and exit")
	logLevel  = flag.String("log-level", config.Instance().Log.Level, "level of the diagnostics written to stderr")
)

func main() {
	flag.Parse()
	if err := setupLogger(*logLevel); err != nil {
		logrus.WithError(err).Fatal("could not parse level")
	}

	out := os.Stdout
	if *rules {
		printRules(out, *special)
		return
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	reader := bufio.NewReader(os.Stdin)

	s := higherlower.NewSession(logrus.StandardLogger(), higherlower.Options{
		TrueSight: *trueSight,
		Generator: rng.New(*seed),
		Name:      util.GetRandomName(),
	})

	s.SetNotifier(newPopup(os.Stderr))
	source := newInputSource(reader, out, interactive)
	renderer := newScreen(out)

	for {
		s.Configure(*special)
		if err := s.Start(); err != nil {
			logrus.WithError(err).Fatal("could not start the game")
		}

		renderer.Welcome(s.State())
		score, err := s.Play(source, renderer)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintf(out, "\nLeaving the table with a score of %d\n", score)
				return
			}

			logrus.WithError(err).Fatal("could not play the game")
		}

		renderer.GameOver(s.State())
		if !interactive || !playAgain(reader, out) {
			return
		}
	}
}

func playAgain(reader *bufio.Reader, out io.Writer) bool {
	fmt.Fprint(out, "Play again? (y/N) ")
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer != "" && answer[0] == 'y'
}

func printRules(out io.Writer, specialEdition bool) {
	fmt.Fprintln(out, titleStyle.Render("How To Play"))
	for i, rule := range higherlower.Rules(specialEdition) {
		fmt.Fprintf(out, "%d. %s\n", i+1, rule)
	}
}

func setupLogger(lvl string) error {
	level, err := parseLevel(lvl)
	if err != nil {
		return err
	}

	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(level)
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	return nil
}

// parseLevel parses a logrus level, an empty level is info
func parseLevel(lvl string) (logrus.Level, error) {
	if lvl == "" {
		return logrus.InfoLevel, nil
	}

	return logrus.ParseLevel(lvl)
}
