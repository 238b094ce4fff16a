// Package ydlidar drives YDLidar range finders over a serial link. The device
// outputs bytes in little endian format.
package ydlidar

import (
	"fmt"
	"io"
	"time"

	"github.com/golang/glog"
)

// YDLidar issues commands to a lidar and reads back its responses.
type YDLidar struct {
	port       Transport
	readTrials int
	retryDelay time.Duration
}

// NewLidar returns a YDLidar object talking over port.
func NewLidar(port Transport, cfg Config) *YDLidar {
	cfg = cfg.withDefaults()
	return &YDLidar{
		port:       port,
		readTrials: cfg.ReadTrials,
		retryDelay: cfg.ReadRetryDelay,
	}
}

// sendCommand writes a two byte command request.
func (lidar *YDLidar) sendCommand(cmd byte) error {
	if _, err := lidar.port.Write([]byte{preCommand, cmd}); err != nil {
		return fmt.Errorf("failed to send command %#x: %w", cmd, err)
	}
	return nil
}

// read returns exactly size bytes. It polls the port up to readTrials times,
// waiting retryDelay whenever fewer bytes are available.
func (lidar *YDLidar) read(size int) ([]byte, error) {
	for i := 0; i < lidar.readTrials; i++ {
		n, err := lidar.port.BytesAvailable()
		if err != nil {
			return nil, fmt.Errorf("failed to query serial: %w", err)
		}
		if n < size {
			time.Sleep(lidar.retryDelay)
			continue
		}
		data := make([]byte, size)
		if _, err := io.ReadFull(lidar.port, data); err != nil {
			return nil, fmt.Errorf("failed to read serial: %w", err)
		}
		return data, nil
	}
	return nil, ErrTimeout
}

// ValidateResponseHeader checks a command response header. A negative
// length skips the declared length check.
func ValidateResponseHeader(header []byte, length int, typeCode byte) error {
	if len(header) != responseHeaderSize {
		return &HeaderLengthError{Length: len(header)}
	}
	if header[0] != preCommand || header[1] != 0x5A {
		return &MagicNumberError{Got: [2]byte{header[0], header[1]}}
	}
	if length >= 0 && int(header[2]) != length {
		return &ResponseLengthError{Expected: length, Actual: int(header[2])}
	}
	if header[6] != typeCode {
		return &TypeCodeError{Expected: typeCode, Actual: header[6]}
	}
	return nil
}

// readResponseHeader reads and validates a response header.
func (lidar *YDLidar) readResponseHeader(length int, typeCode byte) ([]byte, error) {
	header, err := lidar.read(responseHeaderSize)
	if err != nil {
		return nil, err
	}
	glog.V(2).Infof("Response header %s", hexString(header))
	if err := ValidateResponseHeader(header, length, typeCode); err != nil {
		return nil, err
	}
	return header, nil
}

// HealthInfo returns nil if the lidar is operating optimally.
func (lidar *YDLidar) HealthInfo() error {
	if err := lidar.sendCommand(healthStatus); err != nil {
		return err
	}
	if _, err := lidar.readResponseHeader(healthResponseLength, HealthTypeCode); err != nil {
		return err
	}
	data, err := lidar.read(healthResponseLength)
	if err != nil {
		return err
	}
	if data[0] != 0 {
		return &HealthError{Status: data[0], Code: toU16(data[2], data[1])}
	}
	return nil
}

// DeviceInfo returns the version information.
func (lidar *YDLidar) DeviceInfo() (*DeviceInfo, error) {
	if err := lidar.sendCommand(deviceInfo); err != nil {
		return nil, err
	}
	if _, err := lidar.readResponseHeader(infoResponseLength, InfoTypeCode); err != nil {
		return nil, err
	}
	data, err := lidar.read(infoResponseLength)
	if err != nil {
		return nil, err
	}

	info := &DeviceInfo{
		ModelNumber:   data[0],
		FirmwareMinor: data[1],
		FirmwareMajor: data[2],
		Hardware:      data[3],
	}
	copy(info.Serial[:], data[4:20])
	return info, nil
}

// StartScan requests continuous scanning and validates the acknowledgement.
// The ack declares no fixed length since the scan stream never ends.
func (lidar *YDLidar) StartScan() error {
	if err := lidar.sendCommand(startScanning); err != nil {
		return err
	}
	header, err := lidar.readResponseHeader(-1, ScanTypeCode)
	if err != nil {
		return fmt.Errorf("start scan: %w", err)
	}
	glog.V(1).Infof("Scan started, response mode %#x", header[5]>>6)
	return nil
}

// StopScan stops the lidar scans.
func (lidar *YDLidar) StopScan() error {
	if err := lidar.sendCommand(forceStop); err != nil {
		return err
	}
	return lidar.sendCommand(stopScanning)
}

// Flush discards the bytes pending on the port.
func (lidar *YDLidar) Flush() error {
	n, err := lidar.port.BytesAvailable()
	if err != nil {
		return fmt.Errorf("failed to query serial: %w", err)
	}
	if n == 0 {
		return nil
	}
	if _, err := io.ReadFull(lidar.port, make([]byte, n)); err != nil {
		return fmt.Errorf("failed to flush serial: %w", err)
	}
	glog.V(2).Infof("Flushed %d bytes", n)
	return nil
}

// StopScanAndFlush stops scanning and drops whatever the device already sent.
func (lidar *YDLidar) StopScanAndFlush() error {
	if err := lidar.StopScan(); err != nil {
		return err
	}
	return lidar.Flush()
}

// Reboot soft reboots the lidar.
func (lidar *YDLidar) Reboot() error {
	return lidar.sendCommand(restartDevice)
}

// Close will shut down the connection.
func (lidar *YDLidar) Close() error {
	return lidar.port.Close()
}
