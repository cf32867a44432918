package higherlower

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"higherlower-server/internal/rng"
	"higherlower-server/pkg/deck"
)

func createTestRound(t *testing.T, specialEdition bool, cards string) *Round {
	t.Helper()

	d := deck.NewFromCards(deck.CardsFromString(cards))
	r := NewRound(logrus.StandardLogger(), d, specialEdition)
	if err := r.Start(); err != nil {
		t.Fatalf("could not start round: %v", err)
	}

	return r
}

// perfectGuess plays as if the player knew the next card and wanted every bonus
func perfectGuess(r *Round) Guess {
	next := r.deck.PeekTop()
	if next == nil || next.IsWild() {
		return GuessHigher
	}

	want := true
	if bonus, isBonus := r.mode.(*BonusMode); isBonus {
		want = BonusPattern[bonus.RoundIndex]
	}

	if next.Higher(r.referenceCard) == want {
		return GuessHigher
	}

	return GuessLower
}

func TestRound_Start(t *testing.T) {
	a := assert.New(t)

	r := NewRound(logrus.StandardLogger(), deck.NewFromCards(deck.CardsFromString("7d,9c")), false)
	res, err := r.Resolve(GuessHigher)
	a.Nil(res)
	a.Equal(ErrNotStarted, err)

	a.NoError(r.Start())
	a.Equal(ErrAlreadyStarted, r.Start())
	a.Equal("7d", deck.CardToString(r.ReferenceCard()))
	a.Equal(1, r.NormalCardsDrawn())
	a.Equal(1, r.CardsRemaining())
	a.True(r.IsStarted())

	r = NewRound(logrus.StandardLogger(), deck.NewFromCards(deck.CardsFromString("mj1,9c")), true)
	a.Equal(ErrNoNormalCard, r.Start())

	r = NewRound(logrus.StandardLogger(), deck.NewFromCards(nil), true)
	a.Equal(ErrNoNormalCard, r.Start())
}

func TestRound_invalidGuess(t *testing.T) {
	a := assert.New(t)
	r := createTestRound(t, false, "7d,9c,2c")

	res, err := r.Resolve(Guess(0))
	a.Nil(res)
	a.Equal(ErrInvalidGuess, err)
	a.Equal(2, r.deck.CardsLeft())
}

// a correct guess scores a point and replaces the reference card
func TestRound_correctGuess(t *testing.T) {
	a := assert.New(t)
	r := createTestRound(t, false, "7d,9c,2c")
	a.InDelta(7.5, r.ReferenceCard().Value(), 1e-9)

	res, err := r.Resolve(GuessHigher)
	a.NoError(err)
	a.Equal(OutcomeContinue, res.Outcome)
	a.Equal(EventCorrect, res.Event)
	a.Equal(1, res.ScoreDelta)
	a.Equal(1, r.Score())
	a.Equal("9c", deck.CardToString(r.ReferenceCard()))
	a.Equal(2, r.NormalCardsDrawn())
	a.Equal(1, r.CardsRemaining())

	res, err = r.Resolve(GuessLower)
	a.NoError(err)
	a.Equal(OutcomeGameOver, res.Outcome)
	a.Equal(ReasonAllCardsPlayed, res.Reason)
	a.Equal(EventCorrect, res.Event)
	a.Equal(2, r.Score())
	a.Equal(0, r.CardsRemaining())
	a.True(r.IsGameOver())

	res, err = r.Resolve(GuessLower)
	a.Nil(res)
	a.Equal(ErrGameIsOver, err)
}

// a wrong guess without a charge ends the game and keeps the score
func TestRound_wrongGuess(t *testing.T) {
	a := assert.New(t)
	r := createTestRound(t, false, "7d,9c,2c")

	res, err := r.Resolve(GuessLower)
	a.NoError(err)
	a.Equal(OutcomeGameOver, res.Outcome)
	a.Equal(EventWrong, res.Event)
	a.Equal(ReasonWrongGuess, res.Reason)
	a.Equal(0, r.Score())
	a.Equal("7d", deck.CardToString(r.ReferenceCard()))
	a.Equal("9c", deck.CardToString(r.LastDrawn()))
	a.True(r.IsGameOver())
}

// a charge saves a wrong guess and the next correct guess pays double
func TestRound_forgiveness(t *testing.T) {
	a := assert.New(t)
	r := createTestRound(t, true, "7d,rodman1,9c,2c,3c")

	res, err := r.Resolve(GuessHigher)
	a.NoError(err)
	a.Equal(OutcomeContinue, res.Outcome)
	a.Equal(EventForgivenessCard, res.Event)
	a.Equal(1, r.Charges())
	a.Equal("7d", deck.CardToString(r.ReferenceCard()))
	a.Equal(1, r.NormalCardsDrawn())

	// wrong, but forgiven
	res, err = r.Resolve(GuessLower)
	a.NoError(err)
	a.Equal(OutcomeContinue, res.Outcome)
	a.Equal(EventForgiven, res.Event)
	a.Equal(0, res.ScoreDelta)
	a.Equal(0, r.Charges())
	a.Equal(ForgivenessMode{}, r.Mode())
	a.True(r.ForgivenessPending())
	a.Equal("9c", deck.CardToString(r.ReferenceCard()))

	// correct after forgiveness pays double
	res, err = r.Resolve(GuessLower)
	a.NoError(err)
	a.Equal(EventForgivenessPayout, res.Event)
	a.Equal(ForgivenessPoints, res.ScoreDelta)
	a.Equal(2, r.Score())
	a.Equal(PlainMode{}, r.Mode())
	a.False(r.ForgivenessPending())

	res, err = r.Resolve(GuessHigher)
	a.NoError(err)
	a.Equal(OutcomeGameOver, res.Outcome)
	a.Equal(ReasonAllCardsPlayed, res.Reason)
	a.Equal(3, r.Score())
}

func TestRound_forgivenessThenWrong(t *testing.T) {
	a := assert.New(t)
	r := createTestRound(t, true, "7d,rodman1,rodman2,9c,2c,3c")

	_, _ = r.Resolve(GuessHigher)
	_, _ = r.Resolve(GuessHigher)
	a.Equal(2, r.Charges())

	res, _ := r.Resolve(GuessLower)
	a.Equal(EventForgiven, res.Event)
	a.Equal(1, r.Charges())

	// wrong again while pending uses the second charge
	res, _ = r.Resolve(GuessHigher)
	a.Equal(EventForgiven, res.Event)
	a.Equal(OutcomeContinue, res.Outcome)
	a.Equal(0, r.Charges())
	a.True(r.ForgivenessPending())
	a.Equal(0, r.Score())

	res, _ = r.Resolve(GuessHigher)
	a.Equal(EventForgivenessPayout, res.Event)
	a.Equal(OutcomeGameOver, res.Outcome)
	a.Equal(2, r.Score())
}

func TestRound_forgivenessNotUsedOnLastCard(t *testing.T) {
	a := assert.New(t)
	r := createTestRound(t, true, "7d,rodman1,9c")

	_, _ = r.Resolve(GuessHigher)
	a.Equal(1, r.Charges())

	res, err := r.Resolve(GuessLower)
	a.NoError(err)
	a.Equal(OutcomeGameOver, res.Outcome)
	a.Equal(ReasonWrongGuess, res.Reason)
	a.Equal(1, r.Charges())
}

func TestRound_forgivenessRequiresSpecialEdition(t *testing.T) {
	a := assert.New(t)
	r := createTestRound(t, false, "7d,rodman1,9c,2c")

	_, _ = r.Resolve(GuessHigher)
	a.Equal(1, r.Charges())

	res, _ := r.Resolve(GuessLower)
	a.Equal(OutcomeGameOver, res.Outcome)
	a.Equal(EventWrong, res.Event)
}

// matching the whole pattern pays the bonus on top of the round point
func TestRound_bonusComplete(t *testing.T) {
	a := assert.New(t)
	r := createTestRound(t, true, "2c,mj1,3c,4c,5c,6c,7c,8c,9c,10c,11c")

	res, err := r.Resolve(GuessLower)
	a.NoError(err)
	a.Equal(EventBonusCard, res.Event)
	a.True(r.BonusActive())
	a.Equal(0, r.BonusRound())
	a.Equal("2c", deck.CardToString(r.ReferenceCard()))
	a.Equal(1, r.NormalCardsDrawn())

	// every card is higher, so a lower guess is a deliberate miss
	guesses := []Guess{GuessHigher, GuessHigher, GuessHigher, GuessLower, GuessLower, GuessHigher, GuessHigher}
	for i, guess := range guesses {
		res, err := r.Resolve(guess)
		a.NoError(err)
		a.Equal(EventBonusStep, res.Event, "round %d", i)
		a.Equal(1, res.ScoreDelta)
		a.Equal(i+1, r.BonusRound())
	}

	a.Equal(7, r.BonusRound())
	a.Equal(BonusPattern[:7], r.BonusRecord())
	a.Equal(7, r.Score())

	res, err = r.Resolve(GuessHigher)
	a.NoError(err)
	a.Equal(OutcomeContinue, res.Outcome)
	a.Equal(EventBonusComplete, res.Event)
	a.Equal(1+BonusPoints, res.ScoreDelta)
	a.Equal(18, r.Score())
	a.False(r.BonusActive())
	a.Equal(0, r.BonusRound())
	a.Nil(r.BonusRecord())
	a.Equal(PlainMode{}, r.Mode())
	a.Equal("10c", deck.CardToString(r.ReferenceCard()))
}

// missing the pattern on the first round ends the attempt, not the game
func TestRound_bonusForfeit(t *testing.T) {
	a := assert.New(t)
	r := createTestRound(t, true, "2c,mj1,3c,4c")

	_, _ = r.Resolve(GuessHigher)
	a.True(r.BonusActive())

	res, err := r.Resolve(GuessLower)
	a.NoError(err)
	a.Equal(OutcomeContinue, res.Outcome)
	a.Equal(EventBonusForfeit, res.Event)
	a.Equal(0, res.ScoreDelta)
	a.Equal(0, r.Score())
	a.False(r.BonusActive())
	a.Equal(0, r.BonusRound())
	a.Equal("3c", deck.CardToString(r.ReferenceCard()))

	// the game goes on in plain mode
	res, _ = r.Resolve(GuessHigher)
	a.Equal(EventCorrect, res.Event)
	a.Equal(1, r.Score())
}

func TestRound_bonusForfeitOnCorrectGuess(t *testing.T) {
	a := assert.New(t)
	r := createTestRound(t, true, "2c,mj1,3c,4c,5c,6c,7c")

	_, _ = r.Resolve(GuessHigher)
	for i := 0; i < 3; i++ {
		res, _ := r.Resolve(GuessHigher)
		a.Equal(EventBonusStep, res.Event)
	}

	// the fourth round must be a miss
	res, _ := r.Resolve(GuessHigher)
	a.Equal(EventBonusForfeit, res.Event)
	a.Equal(3, r.Score())
	a.False(r.BonusActive())
	a.Equal(0, r.BonusRound())
}

func TestRound_wildcardsDuringBonus(t *testing.T) {
	a := assert.New(t)
	r := createTestRound(t, true, "2c,mj1,3c,rodman1,mj2,4c,5c,6c")

	_, _ = r.Resolve(GuessHigher)
	_, _ = r.Resolve(GuessHigher)
	a.Equal(1, r.BonusRound())

	res, _ := r.Resolve(GuessLower)
	a.Equal(EventForgivenessCard, res.Event)
	a.Equal(1, r.Charges())
	a.True(r.BonusActive())
	a.Equal(1, r.BonusRound())

	// a second bonus card leaves the running attempt alone
	res, _ = r.Resolve(GuessLower)
	a.Equal(EventBonusCard, res.Event)
	a.Equal(1, r.BonusRound())
	a.Equal([]bool{true}, r.BonusRecord())

	res, _ = r.Resolve(GuessHigher)
	a.Equal(EventBonusStep, res.Event)
	a.Equal(2, r.BonusRound())

	// misses in a bonus attempt never spend a charge
	res, _ = r.Resolve(GuessLower)
	a.Equal(EventBonusForfeit, res.Event)
	a.Equal(1, r.Charges())
	a.Equal(PlainMode{}, r.Mode())
}

func TestRound_forgivenessResumesAfterBonus(t *testing.T) {
	a := assert.New(t)
	r := createTestRound(t, true, "7d,rodman1,9c,mj1,2c,3c,4c")

	_, _ = r.Resolve(GuessHigher)
	res, _ := r.Resolve(GuessLower)
	a.Equal(EventForgiven, res.Event)

	res, _ = r.Resolve(GuessHigher)
	a.Equal(EventBonusCard, res.Event)
	a.True(r.BonusActive())
	a.True(r.ForgivenessPending())

	// bonus takes priority: 2c is lower than 9c, the first round needed a hit
	res, _ = r.Resolve(GuessHigher)
	a.Equal(EventBonusForfeit, res.Event)
	a.Equal(ForgivenessMode{}, r.Mode())

	res, _ = r.Resolve(GuessHigher)
	a.Equal(EventForgivenessPayout, res.Event)
	a.Equal(2, r.Score())

	res, _ = r.Resolve(GuessHigher)
	a.Equal(OutcomeGameOver, res.Outcome)
	a.Equal(ReasonAllCardsPlayed, res.Reason)
	a.Equal(3, r.Score())
}

func TestRound_bonusEndsWithLastCard(t *testing.T) {
	a := assert.New(t)
	r := createTestRound(t, true, "2c,mj1,3c")

	_, _ = r.Resolve(GuessHigher)
	res, err := r.Resolve(GuessHigher)
	a.NoError(err)
	a.Equal(EventBonusStep, res.Event)
	a.Equal(OutcomeGameOver, res.Outcome)
	a.Equal(ReasonAllCardsPlayed, res.Reason)
	a.Equal(1, r.Score())
}

func TestRound_deckExhausted(t *testing.T) {
	a := assert.New(t)
	r := createTestRound(t, true, "2c,mj1")

	res, err := r.Resolve(GuessHigher)
	a.NoError(err)
	a.Equal(OutcomeContinue, res.Outcome)

	res, err = r.Resolve(GuessHigher)
	a.NoError(err)
	a.Equal(OutcomeGameOver, res.Outcome)
	a.Equal(EventDeckExhausted, res.Event)
	a.Equal(ReasonDeckExhausted, res.Reason)
	a.Nil(res.Card)
	a.True(r.IsGameOver())
}

func TestRound_Drawn(t *testing.T) {
	a := assert.New(t)
	r := createTestRound(t, true, "7d,rodman1,9c,2c")

	_, _ = r.Resolve(GuessHigher)
	_, _ = r.Resolve(GuessHigher)
	a.Equal("7d,rodman1,9c", r.Drawn().String())
	a.Equal("9c", deck.CardToString(r.LastDrawn()))
}

func TestRound_terminationAndMonotonicScore(t *testing.T) {
	gen := rng.NewSeeded(2024)
	for i := 0; i < 500; i++ {
		special := i%2 == 0
		r := NewRound(logrus.StandardLogger(), deck.New(special, gen), special)
		if !assert.NoError(t, r.Start()) {
			return
		}

		resolutions := 0
		lastScore := 0
		for !r.IsGameOver() {
			guess := GuessHigher
			if gen.Intn(2) == 0 {
				guess = GuessLower
			}

			res, err := r.Resolve(guess)
			if !assert.NoError(t, err) {
				return
			}

			if r.Score() < lastScore {
				t.Fatalf("score decreased from %d to %d", lastScore, r.Score())
			}

			assert.Equal(t, lastScore+res.ScoreDelta, r.Score())
			assert.True(t, r.CardsRemaining() >= 0)
			assert.NotEqual(t, ReasonDeckExhausted, res.Reason)

			lastScore = r.Score()
			resolutions++
			if resolutions > 57 {
				t.Fatalf("game %d did not end after %d resolutions", i, resolutions)
			}
		}

		assert.True(t, r.NormalCardsDrawn() <= 52)
	}
}

func TestRound_perfectPlayer(t *testing.T) {
	gen := rng.NewSeeded(77)
	for i := 0; i < 100; i++ {
		special := i%2 == 0
		r := NewRound(logrus.StandardLogger(), deck.New(special, gen), special)
		if !assert.NoError(t, r.Start()) {
			return
		}

		var res *Result
		for !r.IsGameOver() {
			var err error
			res, err = r.Resolve(perfectGuess(r))
			if !assert.NoError(t, err) {
				return
			}
		}

		assert.Equal(t, ReasonAllCardsPlayed, res.Reason)
		assert.Equal(t, 0, r.CardsRemaining())
		if special {
			// 51 points for the guesses plus two completed bonus attempts
			assert.Equal(t, 51+2*BonusPoints, r.Score())
			// rodman cards after the last ordinary card are never drawn
			assert.Equal(t, r.Drawn().Count(func(c *deck.Card) bool {
				return c.Rank == deck.Forgiveness
			}), r.Charges())
		} else {
			assert.Equal(t, 51, r.Score())
		}
	}
}
