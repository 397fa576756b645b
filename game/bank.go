package game

import "fmt"

// Bank is the finite supply of resource cards.
type Bank struct {
	counts ResourceCounts
}

// NewBank returns a bank holding perResource cards of every resource.
func NewBank(perResource int) *Bank {
	b := &Bank{}
	for _, r := range Resources {
		b.counts[r] = perResource
	}
	return b
}

func (b *Bank) Copy() *Bank {
	return &Bank{counts: b.counts}
}

// Remaining returns how many cards of r are left.
func (b *Bank) Remaining(r Resource) int {
	return b.counts[r]
}

// Counts returns the remaining cards of every resource.
func (b *Bank) Counts() ResourceCounts {
	return b.counts
}

// Total returns the number of cards left across all resources.
func (b *Bank) Total() int {
	return b.counts.Total()
}

// Draw removes count cards of r, or nothing if fewer remain.
func (b *Bank) Draw(count int, r Resource) error {
	if count > b.counts[r] {
		return fmt.Errorf("%w: requested %d %s, bank has %d", ErrInsufficientSupply, count, r, b.counts[r])
	}
	b.counts[r] -= count
	return nil
}

// DrawAll removes every card in cards, or nothing if any resource falls short.
func (b *Bank) DrawAll(cards ResourceCounts) error {
	for _, r := range Resources {
		if cards[r] > b.counts[r] {
			return fmt.Errorf("%w: requested %d %s, bank has %d", ErrInsufficientSupply, cards[r], r, b.counts[r])
		}
	}
	b.counts = b.counts.Sub(cards)
	return nil
}

// Replenish adds count cards of r.
func (b *Bank) Replenish(r Resource, count int) {
	b.counts[r] += count
}

// Return puts a hand's worth of cards back.
func (b *Bank) Return(cards ResourceCounts) {
	b.counts = b.counts.Add(cards)
}
