package serial

import (
	"path/filepath"
	"testing"

	"github.com/Gurux/gxcommon-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/language"
)

func newTestPort(t *testing.T, name string, dataBits int) *Port {
	return NewPort(name, gxcommon.BaudRate(9600), dataBits, gxcommon.ParityNone, gxcommon.StopBitsOne, zaptest.NewLogger(t))
}

func TestPortValidate(t *testing.T) {
	assert.NoError(t, newTestPort(t, "ttyUSB0", 8).Validate())

	err := newTestPort(t, "", 8).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No serial port selected")

	err = newTestPort(t, "ttyUSB0", 9).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "9")
}

func TestPortValidateLocalized(t *testing.T) {
	p := newTestPort(t, "", 8)
	p.Localize(language.Swedish)
	err := p.Validate()
	require.Error(t, err)
	assert.Equal(t, "Ingen seriell port vald. Välj en seriell port.", err.Error())
}

func TestPortClosed(t *testing.T) {
	p := newTestPort(t, "ttyUSB0", 8)
	assert.False(t, p.IsOpen())
	assert.Error(t, p.WriteByte('a'))
	assert.NoError(t, p.Close())
	assert.Equal(t, uint64(0), p.BytesSent())
	assert.Contains(t, p.String(), "ttyUSB0")
}

func TestPortOpenRequiresHandler(t *testing.T) {
	p := newTestPort(t, "ttyUSB0", 8)
	assert.Error(t, p.Open(nil))
	assert.False(t, p.IsOpen())
}

func TestPortOpenMissingDevice(t *testing.T) {
	name := filepath.Join(t.TempDir(), "missing")
	p := newTestPort(t, name, 8)
	assert.Error(t, p.Open(func([]byte) {}))
	assert.False(t, p.IsOpen())
}

func TestPortNames(t *testing.T) {
	_, err := PortNames()
	assert.NoError(t, err)
}
