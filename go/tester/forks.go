// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package tester

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Fork is an enumeration of the protocol rule changes whose activation block
// can be configured on a Backend.
type Fork int

const (
	Homestead    Fork = iota
	DAO               // the irregular DAO state change
	AntiDOS           // EIP-150 gas repricing (Tangerine Whistle)
	StateCleanup      // EIP-158 empty account clearing (Spurious Dragon)
	numForks     int  = iota
)

// AllForks lists all forks that can be configured, in activation order on
// main-net.
func AllForks() []Fork {
	res := make([]Fork, 0, numForks)
	for i := 0; i < numForks; i++ {
		res = append(res, Fork(i))
	}
	return res
}

// IsValid reports whether the fork is a member of the fixed enumeration.
func (f Fork) IsValid() bool {
	return 0 <= f && int(f) < numForks
}

func (f Fork) String() string {
	switch f {
	case Homestead:
		return "Homestead"
	case DAO:
		return "DAO"
	case AntiDOS:
		return "AntiDOS"
	case StateCleanup:
		return "StateCleanup"
	default:
		return fmt.Sprintf("Fork(%d)", int(f))
	}
}

func (f Fork) MarshalJSON() ([]byte, error) {
	if !f.IsValid() {
		return nil, &json.UnsupportedValueError{Str: f.String()}
	}
	return json.Marshal(f.String())
}

func (f *Fork) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	fork, err := ParseFork(s)
	if err != nil {
		return err
	}
	*f = fork
	return nil
}

// ParseFork resolves a fork name (case-insensitive). Besides the names
// produced by Fork.String, the legacy FORK_* constants and their snake-case
// forms are accepted. Any other name results in an UnknownForkError.
func ParseFork(name string) (Fork, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.ToUpper(name), "FORK_"))
	switch key {
	case "homestead":
		return Homestead, nil
	case "dao":
		return DAO, nil
	case "antidos", "anti_dos":
		return AntiDOS, nil
	case "statecleanup", "state_cleanup":
		return StateCleanup, nil
	}
	return 0, &UnknownForkError{Name: name}
}
