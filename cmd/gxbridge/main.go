package main

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
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Gurux/gxbridge-go"
	"github.com/Gurux/gxbridge-go/serial"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

var (
	configPath = flag.String("c", "", "Configuration file (YAML).")
	port       = flag.String("S", "", "Serial port name.")
	baudRate   = flag.Int("b", 115200, "Baud rate.")
	dataBits   = flag.Int("d", 8, "DataBits (5, 6, 7, 8)")
	parity     = flag.String("p", "None", "Parity (None, Odd, Even, Mark, Space)")
	stopBits   = flag.Int("s", 1, "StopBits (1, 2)")
	tcpPort    = flag.Int("P", 9999, "TCP port clients connect to.")
	policy     = flag.String("a", "Keep", "Admission policy when a client is already connected (Keep, Replace).")
	metrics    = flag.String("m", "", "Serve prometheus metrics on this address, e.g. :9100.")
	lang       = flag.String("lang", "", "Used language.")
	logLevel   = flag.String("log", "info", "Log level.")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// applyFlags overrides configuration values with the flags given on the
// command line.
func applyFlags(cfg *appConfig) error {
	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "S":
			cfg.Serial.Port = *port
		case "b":
			cfg.Serial.BaudRate = *baudRate
		case "d":
			cfg.Serial.DataBits = *dataBits
		case "p":
			cfg.Serial.Parity = *parity
		case "s":
			cfg.Serial.StopBits = *stopBits
		case "P":
			cfg.Bridge.Port = *tcpPort
		case "a":
			var p gxbridge.AdmissionPolicy
			if p, err = gxbridge.AdmissionPolicyParse(*policy); err == nil {
				cfg.Bridge.KeepClient = p == gxbridge.KeepClient
			}
		case "m":
			cfg.Metrics = *metrics
		case "lang":
			cfg.Language = *lang
		case "log":
			cfg.Log.Level = *logLevel
		}
	})
	return err
}

func run() error {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(&cfg); err != nil {
		return err
	}
	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	br, par, sb, err := cfg.Serial.settings()
	if err != nil {
		return err
	}
	media := serial.NewPort(cfg.Serial.Port, br, cfg.Serial.DataBits, par, sb, log.Named("serial"))
	bridge, err := gxbridge.NewGXBridge(cfg.Bridge, media, log.Named("bridge"))
	if err != nil {
		return err
	}
	if cfg.Language != "" {
		tag, err := language.Parse(cfg.Language)
		if err != nil {
			return fmt.Errorf("error parsing language: %w", err)
		}
		media.Localize(tag)
		bridge.Localize(tag)
	}
	bridge.SetOnStateChange(func(e gxbridge.StateEventArgs) {
		log.Debug("session state changed",
			zap.Stringer("session", e.Session),
			zap.String("remote", e.Remote),
			zap.Stringer("state", e.State))
	})
	bridge.SetOnError(func(session uuid.UUID, err error) {
		log.Warn("session ended", zap.Stringer("session", session), zap.Error(err))
	})

	if err := media.Validate(); err != nil {
		return err
	}
	if err := media.Open(bridge.Receive); err != nil {
		if names, nerr := serial.PortNames(); nerr == nil {
			log.Error("available serial ports", zap.String("ports", strings.Join(names, ",")))
		}
		return err
	}
	defer func() {
		if err := media.Close(); err != nil {
			log.Warn("close failed", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	if err := bridge.RegisterMetrics(reg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bridge.ListenAndServe(ctx)
	})
	if cfg.Metrics != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.Metrics, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			log.Info("serving metrics", zap.String("address", cfg.Metrics))
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(sctx)
		})
	}
	return g.Wait()
}
