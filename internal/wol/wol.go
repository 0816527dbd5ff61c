// Package wol sends Wake-on-LAN magic packets.
package wol

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strconv"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/AndyHazz/quickssh/internal/errors"
	"github.com/AndyHazz/quickssh/internal/logging"
)

const (
	DefaultBroadcast = "255.255.255.255"
	DefaultPort      = 9

	// PacketSize is 6 bytes of 0xFF followed by 16 copies of the MAC.
	PacketSize = 6 + 16*6
)

// MagicPacket builds the magic packet for a colon-separated MAC address.
func MagicPacket(mac string) ([]byte, error) {
	hw, err := net.ParseMAC(mac)
	if err != nil {
		return nil, errors.ValidationError(fmt.Sprintf("invalid MAC address %q", mac))
	}
	if len(hw) != 6 {
		return nil, errors.ValidationError(fmt.Sprintf("MAC address %q is not 48 bits", mac))
	}

	packet := bytes.Repeat([]byte{0xFF}, 6)
	packet = append(packet, bytes.Repeat(hw, 16)...)
	return packet, nil
}

// Sender sends magic packets to a broadcast address.
type Sender struct {
	Broadcast string
	Port      int
}

// NewSender returns a sender for the given broadcast address and port,
// using the defaults for empty values.
func NewSender(broadcast string, port int) *Sender {
	if broadcast == "" {
		broadcast = DefaultBroadcast
	}
	if port == 0 {
		port = DefaultPort
	}
	return &Sender{Broadcast: broadcast, Port: port}
}

// Wake sends one magic packet for mac.
func (s *Sender) Wake(ctx context.Context, mac string) error {
	packet, err := MagicPacket(mac)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(s.Broadcast, strconv.Itoa(s.Port))
	d := net.Dialer{Control: enableBroadcast}
	conn, err := d.DialContext(ctx, "udp4", addr)
	if err != nil {
		return errors.WakeError("failed to open socket to "+addr, err)
	}
	defer conn.Close()

	if _, err := conn.Write(packet); err != nil {
		return errors.WakeError("failed to send magic packet to "+addr, err)
	}
	logging.Debug("sent magic packet", "mac", mac, "address", addr)
	return nil
}

func enableBroadcast(network, address string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}
