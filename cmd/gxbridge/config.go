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
	"errors"
	"fmt"
	"strings"

	"github.com/Gurux/gxbridge-go"
	"github.com/Gurux/gxcommon-go"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "GXBRIDGE"

type serialConfig struct {
	Port     string `mapstructure:"port"`
	BaudRate int    `mapstructure:"baud_rate"`
	DataBits int    `mapstructure:"data_bits"`
	Parity   string `mapstructure:"parity"`
	StopBits int    `mapstructure:"stop_bits"`
}

type logConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type appConfig struct {
	Bridge   gxbridge.Config `mapstructure:"bridge"`
	Serial   serialConfig    `mapstructure:"serial"`
	Log      logConfig       `mapstructure:"log"`
	Metrics  string          `mapstructure:"metrics"`
	Language string          `mapstructure:"language"`
}

func setDefaults(v *viper.Viper) {
	d := gxbridge.DefaultConfig()
	v.SetDefault("bridge.address", d.Address)
	v.SetDefault("bridge.port", d.Port)
	v.SetDefault("bridge.primary_size", d.PrimarySize)
	v.SetDefault("bridge.staging_size", d.StagingSize)
	v.SetDefault("bridge.send_size", d.SendSize)
	v.SetDefault("bridge.receive_size", d.ReceiveSize)
	v.SetDefault("bridge.keep_client", d.KeepClient)
	v.SetDefault("serial.port", "")
	v.SetDefault("serial.baud_rate", 115200)
	v.SetDefault("serial.data_bits", 8)
	v.SetDefault("serial.parity", "None")
	v.SetDefault("serial.stop_bits", 1)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("metrics", "")
	v.SetDefault("language", "")
}

// loadConfig reads defaults, then the optional YAML file at path, then
// GXBRIDGE_* environment variables.
func loadConfig(path string) (appConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return appConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var cfg appConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return appConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// settings converts the serial section to Gurux settings.
func (c serialConfig) settings() (gxcommon.BaudRate, gxcommon.Parity, gxcommon.StopBits, error) {
	if c.BaudRate <= 0 {
		return 0, 0, 0, fmt.Errorf("invalid baud rate %d", c.BaudRate)
	}
	parity, err := gxcommon.ParityParse(c.Parity)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("error parsing parity: %w", err)
	}
	var stopBits gxcommon.StopBits
	switch c.StopBits {
	case 1:
		stopBits = gxcommon.StopBitsOne
	case 2:
		stopBits = gxcommon.StopBitsTwo
	default:
		return 0, 0, 0, fmt.Errorf("invalid stop bits %d (use 1 or 2)", c.StopBits)
	}
	return gxcommon.BaudRate(c.BaudRate), parity, stopBits, nil
}

func newLogger(c logConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, err
	}
	var zc zap.Config
	switch strings.ToLower(c.Format) {
	case "", "json":
		zc = zap.NewProductionConfig()
	case "console":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, errors.New("log format must be json or console")
	}
	zc.Level = level
	return zc.Build()
}
