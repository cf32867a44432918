package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"higherlower-server/pkg/deck"
	"higherlower-server/pkg/higherlower"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1, 0, 1).
			Background(lipgloss.Color("#CE1141")).
			Foreground(lipgloss.Color("#FFFFFF"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#CE1141")).
			Padding(0, 1, 0, 1)

	promptStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#006400"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
)

// screen renders the game state as a status panel
type screen struct {
	out io.Writer
}

func newScreen(out io.Writer) *screen {
	return &screen{out: out}
}

// Welcome renders the first card of a new game
func (s *screen) Welcome(state *higherlower.State) {
	title := "Higher Lower"
	if state.SpecialEdition {
		title += " Special Edition"
	}

	fmt.Fprintln(s.out, titleStyle.Render(title))
	fmt.Fprintln(s.out, panelStyle.Render(statusLines(state)))
}

func (s *screen) Render(state *higherlower.State, result *higherlower.Result) {
	fmt.Fprintln(s.out, resultLine(result))
	if !state.GameOver {
		fmt.Fprintln(s.out, panelStyle.Render(statusLines(state)))
	}
}

// GameOver renders the end screen
func (s *screen) GameOver(state *higherlower.State) {
	fmt.Fprintln(s.out, titleStyle.Render(fmt.Sprintf("Game over! Your final score is %d", state.Score)))
}

func statusLines(state *higherlower.State) string {
	lines := []string{
		fmt.Sprintf("Card:       %s", cardString(state.CurrentCard)),
		fmt.Sprintf("Score:      %d", state.Score),
		fmt.Sprintf("Cards left: %d", state.CardsRemaining),
	}

	if state.SpecialEdition {
		lines = append(lines, fmt.Sprintf("Charges:    %d", state.Charges))
		lines = append(lines, fmt.Sprintf("Wildcards:  %d of %d drawn", state.WildcardsDrawn, state.CardsDrawn))
		if state.Bonus.Active {
			lines = append(lines, fmt.Sprintf("Bonus:      %d/%d", state.Bonus.Round, state.Bonus.Rounds))
		}
	}

	if state.Preview != nil {
		lines = append(lines, fmt.Sprintf("Next card:  %s", cardString(state.Preview)))
	}

	return strings.Join(lines, "\n")
}

func resultLine(res *higherlower.Result) string {
	if res.Card == nil {
		return badStyle.Render("The deck ran out of cards")
	}

	drew := fmt.Sprintf("You guessed %s and drew %s", res.Guess, res.Card)
	switch res.Event {
	case higherlower.EventBonusCard, higherlower.EventForgivenessCard:
		return fmt.Sprintf("You drew %s, guess again", res.Card)
	case higherlower.EventWrong:
		return badStyle.Render(drew + ", wrong!")
	case higherlower.EventForgiven:
		return goodStyle.Render(drew + ", wrong but forgiven")
	case higherlower.EventBonusForfeit:
		return badStyle.Render(drew + ", the bonus round is over")
	case higherlower.EventBonusComplete:
		return goodStyle.Render(fmt.Sprintf("%s, bonus complete! +%d", drew, res.ScoreDelta))
	default:
		return goodStyle.Render(fmt.Sprintf("%s, +%d", drew, res.ScoreDelta))
	}
}

func cardString(card *deck.Card) string {
	if card == nil {
		return "-"
	}

	return card.String()
}

// popup tells the player what a wildcard does
type popup struct {
	logger *log.Logger
}

func newPopup(w io.Writer) *popup {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("SPECIAL").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("#CE1141")).
		Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	logger.SetStyles(styles)

	return &popup{logger: logger}
}

func (p *popup) SpecialCardDrawn(card *deck.Card) {
	p.logger.Info(card.String(), "description", card.Description())
}
