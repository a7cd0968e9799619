package poker

import "errors"

// Player input violations. They are returned to the caller, wrapped with
// details, and never leave the table in a modified state.
var (
	ErrNoHandInProgress     = errors.New("no hand in progress")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrNotPlayersTurn       = errors.New("not player's turn")
	ErrPlayerAlreadyFolded  = errors.New("player already folded")
	ErrPlayerAlreadyAllIn   = errors.New("player already all-in")
	ErrPlayerDisconnected   = errors.New("player disconnected, only fold is accepted")
	ErrCannotCheckFacingBet = errors.New("cannot check facing a bet")
	ErrNothingToCall        = errors.New("nothing to call")
	ErrInsufficientChips    = errors.New("insufficient chips")
	ErrBetAlreadyOpened     = errors.New("betting already opened, raise instead")
	ErrBelowMinimumBet      = errors.New("bet below minimum")
	ErrNoBetToRaise         = errors.New("no bet to raise, bet instead")
	ErrBelowMinimumRaise    = errors.New("raise below minimum")
	ErrActionNotReopened    = errors.New("action was not reopened, call or fold")
	ErrUnknownAction        = errors.New("unknown action")
)

// Setup violations, reported before any card is dealt or blind posted.
var (
	ErrInvalidConfig    = errors.New("invalid table config")
	ErrHandInProgress   = errors.New("hand in progress")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrTableFull        = errors.New("table full")
	ErrDuplicatePlayer  = errors.New("player already seated")
)
