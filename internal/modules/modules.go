// Package modules contains the software codec modules compiled into this
// binary. Each module registers its factory with the default loader at init
// time; importing this package for side effects makes them discoverable.
//
// Hardware-backed modules (nvenc, avcodec) are declared in the catalog but
// have no factory here, so they probe as unavailable on builds without
// their native bindings.
package modules

import "fmt"

// decl is an ordered declaration table: outer formats in declared order,
// each mapped to its inner formats. Declaration order is significant, the
// registry preserves it as discovery order.
type decl struct {
	order []string
	inner map[string][]string
}

func (d decl) outerFormats() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

func (d decl) innerFormats(outer string) []string {
	in := d.inner[outer]
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func (d decl) declares(outer, inner string) bool {
	for _, f := range d.inner[outer] {
		if f == inner {
			return true
		}
	}
	return false
}

func undeclaredPair(codecType, outer, inner string) error {
	return fmt.Errorf("%s does not declare %s/%s", codecType, outer, inner)
}
