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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBackendUnavailable is returned by backend constructors if the
	// execution engine is missing or does not offer what the backend needs.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrUnknownFork is returned for fork names or values outside the fixed
	// fork enumeration.
	ErrUnknownFork = errors.New("unknown fork")

	// ErrInvalidSnapshot is returned when reverting to a snapshot that was
	// invalidated by a reset to genesis or by reverting past it.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrTransactionNotFound is returned for transaction hashes unknown to
	// the current chain.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrBlockNotFound is returned for block numbers or hashes that do not
	// resolve to a block of the current chain.
	ErrBlockNotFound = errors.New("block not found")

	// ErrUnknownSender is returned if a transaction names a sender for which
	// no private key is registered.
	ErrUnknownSender = errors.New("unknown sender")

	// ErrTimestampNotAdvancing is returned by TimeTravel if mining a block
	// did not increase the head timestamp.
	ErrTimestampNotAdvancing = errors.New("block timestamp did not advance")

	// ErrInvalidPrivateKey is returned for byte sequences that are not a
	// valid secp256k1 private key.
	ErrInvalidPrivateKey = errors.New("invalid private key")
)

// UnknownForkError reports the name or value of an unsupported fork.
type UnknownForkError struct {
	Name string
}

func (e *UnknownForkError) Error() string {
	return fmt.Sprintf("unknown fork: %s", e.Name)
}

func (e *UnknownForkError) Unwrap() error {
	return ErrUnknownFork
}

// BackendUnavailableError describes why an execution engine was rejected
// during backend construction.
type BackendUnavailableError struct {
	Engine  string   // name of the rejected engine, empty if there is none
	Version string   // version reported by the engine, empty if unknown
	Missing []string // capabilities required but not offered by the engine
	Reason  string
}

func (e *BackendUnavailableError) Error() string {
	var b strings.Builder
	b.WriteString(ErrBackendUnavailable.Error())
	if e.Engine != "" {
		fmt.Fprintf(&b, ": engine %s", e.Engine)
		if e.Version != "" {
			fmt.Fprintf(&b, " %s", e.Version)
		}
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, " (missing: %s)", strings.Join(e.Missing, ", "))
	}
	return b.String()
}

func (e *BackendUnavailableError) Unwrap() error {
	return ErrBackendUnavailable
}
