// Package detect inspects a host application for the things the installer
// depends on. Answers come from the live panel manifest when the host has
// exported one and from a static scan of source files otherwise.
package detect

import (
	"strconv"

	"github.com/tallcms/cms-installer/internal/messages"
)

type tier int

const (
	tierUnknown tier = iota
	tierInferred
	tierConfirmed
)

// Detection is the outcome of one host probe. Confirmed answers come from the
// live manifest, Inferred answers from scanning source files. Unknown means
// neither source could answer.
type Detection struct {
	tier  tier
	found bool
}

// Confirmed returns a Detection backed by the live manifest.
func Confirmed(found bool) Detection {
	return Detection{tier: tierConfirmed, found: found}
}

// Inferred returns a Detection backed by a static scan.
func Inferred(found bool) Detection {
	return Detection{tier: tierInferred, found: found}
}

// Unknown returns a Detection with no answer.
func Unknown() Detection {
	return Detection{}
}

// Found reports a positive answer. Unknown is never found.
func (d Detection) Found() bool {
	return d.tier != tierUnknown && d.found
}

// Known reports whether any source answered.
func (d Detection) Known() bool {
	return d.tier != tierUnknown
}

// Source names where the answer came from.
func (d Detection) Source() string {
	switch d.tier {
	case tierConfirmed:
		return messages.DetectConfirmed
	case tierInferred:
		return messages.DetectInferred
	default:
		return messages.DetectUnknown
	}
}

func (d Detection) String() string {
	if !d.Known() {
		return d.Source()
	}
	return d.Source() + "(" + strconv.FormatBool(d.found) + ")"
}
