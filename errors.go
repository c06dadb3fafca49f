package gxbridge

// --------------------------------------------------------------------------
//
//	Gurux Ltd
//
// Filename:        $HeadURL$
//
// Version:         $Revision$,
//
//	$Date$
//	$Author$
//
// # Copyright (c) Gurux Ltd
//
// ---------------------------------------------------------------------------
//
//	DESCRIPTION
//
// This file is a part of Gurux Device Framework.
//
// Gurux Device Framework is Open Source software; you can redistribute it
// and/or modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2 of the License.
// Gurux Device Framework is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU General Public License for more details.
//
// More information of Gurux products: https://www.gurux.org
//
// This code is licensed under the GNU General Public License v2.
// Full text may be retrieved at http://www.gnu.org/licenses/gpl-2.0.txt
// ---------------------------------------------------------------------------

import (
	"errors"
	"fmt"

	"github.com/Gurux/gxcommon-go"
)

var (
	// ErrFull is returned by RingBuffer.Put when every slot is occupied.
	ErrFull = errors.New("ring buffer is full")
	// ErrEmpty is returned by RingBuffer.Get when no unread byte exists.
	ErrEmpty = errors.New("ring buffer is empty")
	// ErrInvalidArgument reports missing storage or a capacity below two.
	ErrInvalidArgument = fmt.Errorf("ring buffer: %w", gxcommon.ErrInvalidArgument)
	// ErrSocketClosed is reported when the peer ends the stream.
	ErrSocketClosed = errors.New("socket closed")
)

// SocketError is a terminal network failure of one session.
// Op is either "read" or "write".
type SocketError struct {
	Op  string
	Err error
}

func (e *SocketError) Error() string {
	return fmt.Sprintf("socket %s failed: %v", e.Op, e.Err)
}

func (e *SocketError) Unwrap() error {
	return e.Err
}
