package protocol

import (
	"errors"
	"testing"
)

func TestParseColorOrderNames(t *testing.T) {
	for _, name := range ColorOrders() {
		order, err := ParseColorOrder(name)
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		if order.String() != name {
			t.Fatalf("round trip %q: got %q", name, order.String())
		}
	}
	if _, err := ParseColorOrder(" rgb "); err != nil {
		t.Fatalf("expected case/space tolerance, got %v", err)
	}
	if _, err := ParseColorOrder("RGBW"); !errors.Is(err, ErrUnknownColorOrder) {
		t.Fatalf("expected ErrUnknownColorOrder, got %v", err)
	}
}

func TestColorTablesArePermutations(t *testing.T) {
	for _, name := range ColorOrders() {
		order, err := ParseColorOrder(name)
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		table := order.Table()
		if !ValidPermutation(table) {
			t.Fatalf("%s table %v is not a permutation", name, table)
		}
	}
}

func TestColorOrderNameSpellsWireOrder(t *testing.T) {
	// the order's name is the wire byte order: BGR puts blue in the first
	// transmitted byte and red in the last
	channel := map[byte]byte{'R': 0x10, 'G': 0x20, 'B': 0x30}
	for _, name := range ColorOrders() {
		order, err := ParseColorOrder(name)
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		table := order.Table()

		var wire [3]byte
		wire[table[0]] = channel['R']
		wire[table[1]] = channel['G']
		wire[table[2]] = channel['B']
		for i := 0; i < 3; i++ {
			if wire[i] != channel[name[i]] {
				t.Fatalf("%s: wire byte %d is %#02x, want %c (%#02x)", name, i, wire[i], name[i], channel[name[i]])
			}
		}
	}
}

func TestColorTableInverseRecoversPixel(t *testing.T) {
	rgb := [3]byte{0xAA, 0xBB, 0xCC}
	for _, name := range ColorOrders() {
		order, _ := ParseColorOrder(name)
		table := order.Table()

		var wire [3]byte
		for ch, pos := range table {
			wire[pos] = rgb[ch]
		}
		var back [3]byte
		for ch, pos := range table {
			back[ch] = wire[pos]
		}
		if back != rgb {
			t.Fatalf("%s: applying table and inverse gives %v, want %v", name, back, rgb)
		}
	}
}

func TestValidPermutationRejectsBadTables(t *testing.T) {
	bad := [][3]int{
		{0, 0, 1},
		{0, 1, 3},
		{-1, 1, 2},
		{2, 2, 2},
	}
	for _, table := range bad {
		if ValidPermutation(table) {
			t.Fatalf("table %v accepted as permutation", table)
		}
	}
}
