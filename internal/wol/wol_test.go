package wol

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/AndyHazz/quickssh/internal/errors"
)

func TestMagicPacket(t *testing.T) {
	packet, err := MagicPacket("aa:bb:cc:dd:ee:ff")
	if err != nil {
		t.Fatalf("MagicPacket() error = %v", err)
	}
	if len(packet) != PacketSize {
		t.Fatalf("len = %d, want %d", len(packet), PacketSize)
	}
	if !bytes.Equal(packet[:6], []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Errorf("header = % x, want six 0xff", packet[:6])
	}
	mac := []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	for i := 0; i < 16; i++ {
		off := 6 + i*6
		if !bytes.Equal(packet[off:off+6], mac) {
			t.Errorf("repetition %d = % x, want % x", i, packet[off:off+6], mac)
		}
	}
}

func TestMagicPacket_Invalid(t *testing.T) {
	for _, mac := range []string{"", "not-a-mac", "aa:bb:cc:dd:ee", "00:00:5e:00:53:01:02:03"} {
		_, err := MagicPacket(mac)
		if got := errors.GetExitCode(err); got != errors.ExitValidationError {
			t.Errorf("MagicPacket(%q) exit code = %d, want %d", mac, got, errors.ExitValidationError)
		}
	}
}

func TestNewSender_Defaults(t *testing.T) {
	s := NewSender("", 0)
	if s.Broadcast != DefaultBroadcast || s.Port != DefaultPort {
		t.Errorf("NewSender(\"\", 0) = %+v", s)
	}
}

func TestWake(t *testing.T) {
	conn, err := net.ListenPacket("udp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot listen: %v", err)
	}
	defer conn.Close()

	port := conn.LocalAddr().(*net.UDPAddr).Port
	s := NewSender("127.0.0.1", port)
	if err := s.Wake(context.Background(), "01:23:45:67:89:ab"); err != nil {
		t.Fatalf("Wake() error = %v", err)
	}

	buf := make([]byte, 256)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := conn.ReadFrom(buf)
	if err != nil {
		t.Fatalf("ReadFrom() error = %v", err)
	}
	want, _ := MagicPacket("01:23:45:67:89:ab")
	if !bytes.Equal(buf[:n], want) {
		t.Errorf("received % x, want % x", buf[:n], want)
	}
}

func TestWake_InvalidMAC(t *testing.T) {
	err := NewSender("127.0.0.1", 9).Wake(context.Background(), "zz")
	if got := errors.GetExitCode(err); got != errors.ExitValidationError {
		t.Errorf("exit code = %d, want %d", got, errors.ExitValidationError)
	}
}
