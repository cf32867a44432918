package higherlower

// Mode is how the next ordinary card will be scored
// It is one of PlainMode, ForgivenessMode or *BonusMode.
type Mode interface {
	String() string
	isMode()
}

// PlainMode scores one point for a correct guess
type PlainMode struct{}

func (PlainMode) String() string {
	return "plain"
}

func (PlainMode) isMode() {}

// ForgivenessMode means a charge was used to survive a wrong guess
// The next correct guess is worth ForgivenessPoints.
type ForgivenessMode struct{}

func (ForgivenessMode) String() string {
	return "forgiveness"
}

func (ForgivenessMode) isMode() {}

// BonusMode is an active bonus attempt
type BonusMode struct {
	// RoundIndex is the position in BonusPattern of the next ordinary card
	RoundIndex int

	// Record holds the matched outcomes so far
	Record []bool

	// resume is the mode to return to when the attempt ends
	resume Mode
}

func (*BonusMode) String() string {
	return "bonus"
}

func (*BonusMode) isMode() {}

func newBonusMode(resume Mode) *BonusMode {
	return &BonusMode{
		RoundIndex: 0,
		Record:     make([]bool, 0, len(BonusPattern)),
		resume:     resume,
	}
}
