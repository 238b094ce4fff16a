package ydlidar

import (
	"fmt"
	"time"

	"github.com/golang/glog"
	"go.bug.st/serial"
)

//go:generate mockgen -source=transport.go -destination=mocks/mock_transport.go -package=mocks

// Transport is the byte link to the lidar. The driver only depends on this
// interface; Read must not block once BytesAvailable has reported data.
type Transport interface {
	// BytesAvailable reports how many bytes can be read without blocking.
	BytesAvailable() (int, error)
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

// SerialTransport is a Transport over a serial port.
type SerialTransport struct {
	port    serial.Port
	pending []byte
	buf     []byte
}

// OpenSerial opens the serial port at portName with 8N1 framing. An empty
// portName selects the last port found on the system. When dtr is set the
// DTR line, which drives the motor enable on some models, is raised.
func OpenSerial(portName string, baudRate int, readTimeout time.Duration, dtr bool) (*SerialTransport, error) {
	if portName == "" {
		ports, err := serial.GetPortsList()
		if err != nil {
			return nil, fmt.Errorf("failed to list serial ports: %w", err)
		}
		if len(ports) == 0 {
			return nil, fmt.Errorf("no serial ports found")
		}
		glog.V(1).Infof("Found serial ports %v", ports)
		portName = ports[len(ports)-1]
	}

	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", portName, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout on %q: %w", portName, err)
	}
	if dtr {
		if err := port.SetDTR(true); err != nil {
			port.Close()
			return nil, fmt.Errorf("failed to set DTR on %q: %w", portName, err)
		}
	}

	glog.Infof("Connected to port %s at %d baud", portName, baudRate)
	return &SerialTransport{
		port: port,
		buf:  make([]byte, 4096),
	}, nil
}

// BytesAvailable polls the port for up to the read timeout and reports the
// number of bytes received and not yet read.
func (s *SerialTransport) BytesAvailable() (int, error) {
	n, err := s.port.Read(s.buf)
	if n > 0 {
		s.pending = append(s.pending, s.buf[:n]...)
	}
	return len(s.pending), err
}

func (s *SerialTransport) Read(p []byte) (int, error) {
	if len(s.pending) == 0 {
		return s.port.Read(p)
	}
	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

func (s *SerialTransport) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

// SetDTR sets the DTR line.
func (s *SerialTransport) SetDTR(on bool) error {
	return s.port.SetDTR(on)
}

// Close closes the serial port.
func (s *SerialTransport) Close() error {
	return s.port.Close()
}
