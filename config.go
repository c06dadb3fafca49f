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
	"fmt"
	"net"
	"strconv"
	"strings"
)

// AdmissionPolicy decides what happens when a client connects while another
// one is being served.
type AdmissionPolicy int

const (
	// KeepClient refuses the new connection.
	KeepClient AdmissionPolicy = iota
	// ReplaceClient closes the current connection and serves the new one.
	ReplaceClient
)

func (p AdmissionPolicy) String() string {
	switch p {
	case KeepClient:
		return "Keep"
	case ReplaceClient:
		return "Replace"
	}
	return "AdmissionPolicy(" + strconv.Itoa(int(p)) + ")"
}

// AdmissionPolicyParse converts a string to an admission policy.
func AdmissionPolicyParse(value string) (AdmissionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "keep", "keepclient":
		return KeepClient, nil
	case "replace", "replaceclient":
		return ReplaceClient, nil
	}
	return 0, fmt.Errorf("invalid admission policy %q", value)
}

// Config holds the bridge settings.
type Config struct {
	// Address is the host the listener binds to. Empty means all interfaces.
	Address string `mapstructure:"address"`
	// Port is the TCP port of the listener.
	Port int `mapstructure:"port"`
	// PrimarySize is the capacity of the primary ring buffer.
	PrimarySize int `mapstructure:"primary_size"`
	// StagingSize is the capacity of the staging ring buffer.
	StagingSize int `mapstructure:"staging_size"`
	// SendSize is the most bytes written to the client in one write.
	SendSize int `mapstructure:"send_size"`
	// ReceiveSize is the size of the buffer network reads go into.
	ReceiveSize int `mapstructure:"receive_size"`
	// KeepClient selects the KeepClient admission policy; otherwise a new
	// client replaces the current one.
	KeepClient bool `mapstructure:"keep_client"`
}

// DefaultConfig returns the default bridge settings.
func DefaultConfig() Config {
	return Config{
		Port:        9999,
		PrimarySize: 4096,
		StagingSize: 256,
		SendSize:    4096,
		ReceiveSize: 1024,
		KeepClient:  true,
	}
}

// Policy returns the admission policy selected by the configuration.
func (c Config) Policy() AdmissionPolicy {
	if c.KeepClient {
		return KeepClient
	}
	return ReplaceClient
}

// ListenAddress returns the address the listener binds to.
func (c Config) ListenAddress() string {
	return net.JoinHostPort(c.Address, strconv.Itoa(c.Port))
}

// Validate checks the settings.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.PrimarySize < 2 {
		return fmt.Errorf("primary_size %d: %w", c.PrimarySize, ErrInvalidArgument)
	}
	if c.StagingSize < 2 {
		return fmt.Errorf("staging_size %d: %w", c.StagingSize, ErrInvalidArgument)
	}
	if c.SendSize < 1 {
		return fmt.Errorf("invalid send_size %d", c.SendSize)
	}
	if c.ReceiveSize < 1 {
		return fmt.Errorf("invalid receive_size %d", c.ReceiveSize)
	}
	return nil
}
