package rcvbp

import "fmt"

// CascadeDirection is the data-chaining direction across tiled modules.
// Unrecognized codes render with their raw value rather than being folded
// into a default meaning.
type CascadeDirection int

const (
	CascadeRightToLeft CascadeDirection = 0
	CascadeLeftToRight CascadeDirection = 1
	CascadeTopToBottom CascadeDirection = 2
	CascadeBottomToTop CascadeDirection = 3
)

func (d CascadeDirection) String() string {
	switch d {
	case CascadeRightToLeft:
		return "Right to Left"
	case CascadeLeftToRight:
		return "Left to Right"
	case CascadeTopToBottom:
		return "Top to Bottom"
	case CascadeBottomToTop:
		return "Bottom to Top"
	}
	return fmt.Sprintf("Unknown (%d)", int(d))
}

// GrayscaleMode is the receiver's grayscale engine code.
type GrayscaleMode int

const (
	GrayscaleNormal  GrayscaleMode = 0x07
	Grayscale18BitP  GrayscaleMode = 0x81
	GrayscaleInfiBit GrayscaleMode = 0x85
)

func (m GrayscaleMode) String() string {
	switch m {
	case GrayscaleNormal:
		return "Normal"
	case Grayscale18BitP:
		return "18bit+"
	case GrayscaleInfiBit:
		return "Infi-bit"
	}
	return fmt.Sprintf("Unknown (0x%02X)", int(m))
}

// ExchangeTriplet is the file's color-exchange table: the wire position
// (0=first byte, 2=last) each channel outputs to. Valid triplets are
// permutations of {0,1,2}; the triplet is validated on its own, never
// against the wire encoder's color order, since the two come from
// independent data paths.
type ExchangeTriplet struct {
	R, G, B int
}

// Valid reports whether the triplet is a permutation of {0,1,2}.
func (t ExchangeTriplet) Valid() bool {
	var seen [3]bool
	for _, pos := range [3]int{t.R, t.G, t.B} {
		if pos < 0 || pos > 2 || seen[pos] {
			return false
		}
		seen[pos] = true
	}
	return true
}

// Order names the triplet when it matches one of the six standard
// orderings; otherwise it spells out the raw mapping.
func (t ExchangeTriplet) Order() string {
	switch t {
	case ExchangeTriplet{R: 2, G: 1, B: 0}:
		return "RGB"
	case ExchangeTriplet{R: 0, G: 1, B: 2}:
		return "BGR"
	case ExchangeTriplet{R: 1, G: 0, B: 2}:
		return "GRB"
	case ExchangeTriplet{R: 1, G: 2, B: 0}:
		return "GBR"
	case ExchangeTriplet{R: 2, G: 0, B: 1}:
		return "RBG"
	case ExchangeTriplet{R: 0, G: 2, B: 1}:
		return "BRG"
	}
	return fmt.Sprintf("Custom (R>%d G>%d B>%d)", t.R, t.G, t.B)
}
