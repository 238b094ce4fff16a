package ydlidar

import (
	"fmt"
	"math"
	"strings"
)

// toU16 joins a high and low byte.
func toU16(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// toAngle decodes a little endian fixed point angle into degrees.
// The lowest bit is a check bit and is discarded.
func toAngle(lo, hi byte) float64 {
	return float64(toU16(hi, lo)>>1) / 64
}

// calcDistance decodes the distance in millimeters from the 2nd and 3rd byte
// of a sample. The low two bits of b1 carry the interference flag.
func calcDistance(b1, b2 byte) uint16 {
	return uint16(b2)<<6 + uint16(b1)>>2
}

func toFlag(v byte) InterferenceFlag {
	switch v & 0x03 {
	case 2:
		return SpecularReflection
	case 3:
		return AmbientLight
	default:
		return Nothing
	}
}

func degreeToRadian(deg float64) float64 {
	return deg * math.Pi / 180
}

// hexString formats bytes as space separated upper case hex for logging.
func hexString(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}
