// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package engine

import (
	"fmt"
	"strings"
)

// Description summarizes an engine for capability negotiation.
type Description struct {
	Name         string
	Version      Version // level of the engine API implemented
	Library      string  // version of the underlying library, informational
	Capabilities Capabilities
}

func (d Description) String() string {
	return fmt.Sprintf("%s %v (%s) [%v]", d.Name, d.Version, d.Library, d.Capabilities)
}

// Version is the level of the engine API implemented by an engine. Minor
// increments are backward compatible, major increments are not.
type Version struct {
	Major, Minor int
}

func (v Version) String() string {
	return fmt.Sprintf("v%d.%d", v.Major, v.Minor)
}

// Less reports whether v precedes o.
func (v Version) Less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	return v.Minor < o.Minor
}

// Capabilities is a set of features offered by an engine.
type Capabilities uint

const (
	Snapshots         Capabilities = 1 << iota // snapshot, revert and reset
	CoinbaseMining                             // mining with a coinbase override
	ForkConfiguration                          // adjustable fork blocks
	HistoricalState                            // state access at past blocks
	Receipts                                   // receipts including status and gas
	KeyRegistry                                // registration of sender keys
	numCapabilities   = iota
)

// AllCapabilities is the set of all known capabilities.
const AllCapabilities = Capabilities(1<<numCapabilities - 1)

// Has reports whether all capabilities of o are contained in c.
func (c Capabilities) Has(o Capabilities) bool {
	return c&o == o
}

// Missing returns the capabilities in required that are not offered by c.
func (c Capabilities) Missing(required Capabilities) Capabilities {
	return required &^ c
}

// Names lists the names of the capabilities in the set.
func (c Capabilities) Names() []string {
	res := []string{}
	for i := 0; i < numCapabilities; i++ {
		cur := Capabilities(1 << i)
		if c.Has(cur) {
			res = append(res, capabilityName(cur))
		}
	}
	return res
}

func (c Capabilities) String() string {
	return strings.Join(c.Names(), "|")
}

func capabilityName(c Capabilities) string {
	switch c {
	case Snapshots:
		return "Snapshots"
	case CoinbaseMining:
		return "CoinbaseMining"
	case ForkConfiguration:
		return "ForkConfiguration"
	case HistoricalState:
		return "HistoricalState"
	case Receipts:
		return "Receipts"
	case KeyRegistry:
		return "KeyRegistry"
	default:
		return fmt.Sprintf("Capability(%d)", uint(c))
	}
}
