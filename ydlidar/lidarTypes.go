package ydlidar

import (
	"fmt"
	"math"
	"strings"
)

const (
	// preCommand is the command to send before sending any other command.
	preCommand = 0xA5

	// healthStatus is the command to get the health status.
	healthStatus = 0x92

	// deviceInfo is the command to get the device information.
	deviceInfo = 0x90

	// restartDevice is the command to soft reboot the device.
	restartDevice = 0x40

	// forceStop is sent ahead of stopScanning to interrupt a running scan.
	forceStop = 0x00

	// stopScanning is the command to stop scanning.
	stopScanning = 0x65

	// startScanning is the command to start scanning.
	startScanning = 0x60

	// HealthTypeCode is the device response Health Status type code.
	HealthTypeCode = 0x06

	// InfoTypeCode is the device response Device Information type code.
	InfoTypeCode = 0x04

	// ScanTypeCode is the device response Scan Command type code.
	ScanTypeCode = 0x81

	// responseHeaderSize is the size of every command response header.
	responseHeaderSize = 7

	healthResponseLength = 3
	infoResponseLength   = 20
)

// Scan packet layout.
const (
	// packetHeaderSize covers sync, flag, count, both angles and the check code.
	packetHeaderSize = 10
	// sampleSize is the size of a single (intensity, distance) sample.
	sampleSize = 3

	packetSync0 = 0xAA
	packetSync1 = 0x55
)

// InterferenceFlag classifies the quality of a returned signal.
type InterferenceFlag uint8

const (
	// Nothing means no interference was observed.
	Nothing InterferenceFlag = iota
	// SpecularReflection means the signal has specular reflection interference.
	SpecularReflection
	// AmbientLight means the signal is interfered by ambient light.
	AmbientLight
)

func (f InterferenceFlag) String() string {
	switch f {
	case SpecularReflection:
		return "specular_reflection"
	case AmbientLight:
		return "ambient_light"
	default:
		return "nothing"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f InterferenceFlag) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Scan holds one lap of lidar scan data. Angles, Distances, Flags and
// Intensities are parallel and always have the same length.
type Scan struct {
	// Angles in radians.
	Angles []float64 `json:"angles_radian"`
	// Distances to an object in millimeters.
	Distances []uint16 `json:"distances"`
	// Flags is the interference status of each returned signal.
	Flags []InterferenceFlag `json:"flags"`
	// Intensities is the return strength of each laser pulse.
	Intensities []uint8 `json:"intensities"`
	// ChecksumCorrect is false if any packet of the lap failed validation.
	ChecksumCorrect bool `json:"checksum_correct"`
}

// NewScan returns an empty scan with a valid checksum state.
func NewScan() *Scan {
	return &Scan{
		Angles:          []float64{},
		Distances:       []uint16{},
		Flags:           []InterferenceFlag{},
		Intensities:     []uint8{},
		ChecksumCorrect: true,
	}
}

// Len returns the number of samples in the scan.
func (s *Scan) Len() int {
	return len(s.Angles)
}

func (s *Scan) push(angle float64, dist uint16, flag InterferenceFlag, intensity uint8) {
	s.Angles = append(s.Angles, angle)
	s.Distances = append(s.Distances, dist)
	s.Flags = append(s.Flags, flag)
	s.Intensities = append(s.Intensities, intensity)
}

// PointCloud represents a single lidar reading.
type PointCloud struct {
	Angle     float64 // radians
	Dist      float64 // millimeters
	X, Y      float64 // millimeters, sensor frame with 0 rad pointing along -Y
	Intensity uint8
}

// Points converts the scan into cartesian point-cloud entries.
func (s *Scan) Points() []PointCloud {
	pts := make([]PointCloud, 0, s.Len())
	for i, w := range s.Angles {
		d := float64(s.Distances[i])
		pts = append(pts, PointCloud{
			Angle:     w,
			Dist:      d,
			X:         d * math.Cos(w-math.Pi/2),
			Y:         d * math.Sin(w-math.Pi/2),
			Intensity: s.Intensities[i],
		})
	}
	return pts
}

// DeviceInfo contains the device model, firmware, hardware, and serial number.
type DeviceInfo struct {
	ModelNumber   uint8    `json:"model_number"`
	FirmwareMajor uint8    `json:"firmware_major_version"`
	FirmwareMinor uint8    `json:"firmware_minor_version"`
	Hardware      uint8    `json:"hardware_version"`
	Serial        [16]byte `json:"serial_number"`
}

func (d DeviceInfo) String() string {
	var serial strings.Builder
	for _, b := range d.Serial {
		fmt.Fprintf(&serial, "%d", b)
	}
	return fmt.Sprintf("Model: %v Hardware Version: %v Firmware Version: %v.%v Serial Number: %s",
		d.ModelNumber, d.Hardware, d.FirmwareMajor, d.FirmwareMinor, serial.String())
}
