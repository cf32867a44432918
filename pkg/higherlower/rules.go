package higherlower

import (
	"fmt"

	"higherlower-server/pkg/deck"
)

// Rules returns the how-to-play text
func Rules(specialEdition bool) []string {
	rules := []string{
		"You are given a card and you need to guess if the next card in the deck is higher or lower. Guessing wrongly will end the game.",
		"The ascending order of card rank is: 2, 3, 4, 5, 6, 7, 8, 9, 10, J, Q, K, A.",
		"If the card rank is the same, the suit decides. The ascending order of suit is: clubs, diamonds, hearts, spades.",
		"Play through every card in the deck to win.",
	}

	if !specialEdition {
		return rules
	}

	return append(rules,
		fmt.Sprintf("The special edition adds %d MJ and %d Rodman cards to the deck.", deck.BonusCards, deck.ForgivenessCards),
		fmt.Sprintf("Drawing an MJ card starts a bonus round where the next %d guesses must follow the sequence %s. 'W' means you want to guess correctly, 'L' means you want to guess wrongly. Each matched guess is worth a point and completing the sequence wins %d bonus points.", len(BonusPattern), patternString(), BonusPoints),
		"Rodman cards drawn during a bonus round do not count towards the sequence but are still kept. As soon as a guess does not match the sequence, the bonus round ends without ending the game.",
		fmt.Sprintf("Drawing a Rodman card means the next card you get wrong will not end the game, and your next correct guess is worth %d points.", ForgivenessPoints),
	)
}

func patternString() string {
	s := "("
	for i, win := range BonusPattern {
		if i > 0 {
			s += ", "
		}

		if win {
			s += "W"
		} else {
			s += "L"
		}
	}

	return s + ")"
}
