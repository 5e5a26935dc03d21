package protocol

import (
	"fmt"
	"strings"
)

// ColorOrder is a panel channel ordering. The zero value is BGR, the
// ordering most receiver cards ship with.
type ColorOrder int

const (
	OrderBGR ColorOrder = iota
	OrderRGB
	OrderRBG
	OrderGRB
	OrderGBR
	OrderBRG
)

// Position tables map each input channel to the byte it occupies in the
// transmitted 3-byte pixel: [posR, posG, posB], 0 = first wire byte.
// Every table is a permutation of {0,1,2}, and the order's name spells
// the wire byte order: BGR sends blue first and red last.
var colorTables = [...][3]int{
	OrderBGR: {2, 1, 0},
	OrderRGB: {0, 1, 2},
	OrderRBG: {0, 2, 1},
	OrderGRB: {1, 0, 2},
	OrderGBR: {2, 0, 1},
	OrderBRG: {1, 2, 0},
}

var colorNames = [...]string{
	OrderBGR: "BGR",
	OrderRGB: "RGB",
	OrderRBG: "RBG",
	OrderGRB: "GRB",
	OrderGBR: "GBR",
	OrderBRG: "BRG",
}

// ParseColorOrder resolves a color order by name, case-insensitively.
func ParseColorOrder(name string) (ColorOrder, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "BGR":
		return OrderBGR, nil
	case "RGB":
		return OrderRGB, nil
	case "RBG":
		return OrderRBG, nil
	case "GRB":
		return OrderGRB, nil
	case "GBR":
		return OrderGBR, nil
	case "BRG":
		return OrderBRG, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColorOrder, name)
}

// Table returns the [posR, posG, posB] position table.
func (o ColorOrder) Table() [3]int {
	if o < 0 || int(o) >= len(colorTables) {
		return colorTables[OrderBGR]
	}
	return colorTables[o]
}

func (o ColorOrder) String() string {
	if o < 0 || int(o) >= len(colorNames) {
		return fmt.Sprintf("ColorOrder(%d)", int(o))
	}
	return colorNames[o]
}

// ColorOrders lists every supported order name, for CLI help text.
func ColorOrders() []string {
	out := make([]string, len(colorNames))
	copy(out, colorNames[:])
	return out
}

// ValidPermutation reports whether table assigns each of the three input
// channels a distinct wire position in {0,1,2}.
func ValidPermutation(table [3]int) bool {
	var seen [3]bool
	for _, pos := range table {
		if pos < 0 || pos > 2 || seen[pos] {
			return false
		}
		seen[pos] = true
	}
	return true
}
