package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/luca-patrignani/holdem/domain/poker"
)

var (
	ErrEmptyHistory     = errors.New("history is empty")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrCorruptedHistory = errors.New("history corrupted")
)

type History struct {
	mu     sync.RWMutex
	blocks []Block
	now    func() time.Time
}

// NewHistory creates a history holding only the genesis block, with index 0
// and previous hash "0".
func NewHistory() *History {
	h := &History{now: time.Now}
	genesis := Block{
		Index:     0,
		Timestamp: h.now().Unix(),
		PrevHash:  "0",
	}
	genesis.Hash = calculateHash(genesis)
	h.blocks = append(h.blocks, genesis)
	return h
}

// OnStateChange appends a block for the snapshot.
func (h *History) OnStateChange(state poker.GameState) {
	h.mu.Lock()
	defer h.mu.Unlock()

	latest := h.blocks[len(h.blocks)-1]
	b := Block{
		Index:      latest.Index + 1,
		Timestamp:  h.now().Unix(),
		PrevHash:   latest.Hash,
		HandNumber: handOf(state),
		State:      state,
	}
	if state.LastAction != nil {
		la := *state.LastAction
		b.Action = &la
	}
	b.Hash = calculateHash(b)
	h.blocks = append(h.blocks, b)
}

// GetLatest returns the most recently added block.
func (h *History) GetLatest() (Block, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.blocks) == 0 {
		return Block{}, ErrEmptyHistory
	}
	return h.blocks[len(h.blocks)-1], nil
}

// GetByIndex retrieves a block by its index in the chain. The returned
// block must not be modified.
func (h *History) GetByIndex(index int) (Block, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if index < 0 || index >= len(h.blocks) {
		return Block{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(h.blocks))
	}
	return h.blocks[index], nil
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.blocks)
}

// ForHand returns the blocks recorded during hand n, in order.
func (h *History) ForHand(n int) []Block {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var blocks []Block
	for _, b := range h.blocks[1:] {
		if b.HandNumber == n {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// Verify checks the genesis block and then every block's index continuity,
// previous hash linkage and hash.
func (h *History) Verify() error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.blocks) == 0 {
		return ErrEmptyHistory
	}
	if h.blocks[0].PrevHash != "0" || h.blocks[0].Index != 0 {
		return fmt.Errorf("%w: invalid genesis block", ErrCorruptedHistory)
	}
	for i := 1; i < len(h.blocks); i++ {
		if err := validateBlock(h.blocks[i], h.blocks[i-1]); err != nil {
			return fmt.Errorf("%w: block %d: %w", ErrCorruptedHistory, i, err)
		}
	}
	return nil
}

func validateBlock(current, previous Block) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("invalid index: expected %d, got %d", previous.Index+1, current.Index)
	}
	if current.PrevHash != previous.Hash {
		return fmt.Errorf("invalid prev hash: expected %s, got %s", previous.Hash, current.PrevHash)
	}
	if expected := calculateHash(current); current.Hash != expected {
		return fmt.Errorf("invalid hash: expected %s, got %s", expected, current.Hash)
	}
	return nil
}

// calculateHash computes the SHA256 hash of a block from its index,
// timestamp, previous hash, hand number and the JSON of its action and
// state.
func calculateHash(b Block) string {
	actionBytes, _ := json.Marshal(b.Action)
	stateBytes, _ := json.Marshal(b.State)

	data := fmt.Sprintf("%d%d%s%d%s%s",
		b.Index,
		b.Timestamp,
		b.PrevHash,
		b.HandNumber,
		string(actionBytes),
		string(stateBytes),
	)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
