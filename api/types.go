// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations, DTOs, and constants.

package api

// BankKind enumerates the analogous hardware banks a device composes.
type BankKind int

const (
	BankUnknown BankKind = iota
	BankTiles
	BankPalettes
	BankAffine
)

func (k BankKind) String() string {
	switch k {
	case BankTiles:
		return "tiles"
	case BankPalettes:
		return "palettes"
	case BankAffine:
		return "affine"
	default:
		return "unknown"
	}
}

// CommitRange describes one pending device transfer: unitCount units of a
// bank's region starting at offsetUnits, snapshot at enqueue time.
type CommitRange struct {
	Bank        BankKind
	OffsetUnits int
	UnitCount   int
}

// TransferFunc receives drained commit ranges at the hardware sync point.
// Data aliases the bank's backing region and must not be retained.
type TransferFunc func(rng CommitRange, data []byte) error
