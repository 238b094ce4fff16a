package ydlidar

import "bytes"

var (
	// Start of a lap with a single sample at 42°.
	lapStartPacket = []byte{
		0xAA, 0x55, 0xC7, 0x01, 0x01, 0x15, 0x01, 0x15, 0x1B, 0x56, 0x14, 0x62, 0x02,
	}

	// 16 samples from 45° to 90°.
	lapDataPacket = []byte{
		0xAA, 0x55, 0xB0, 0x10, 0x81, 0x16, 0x01, 0x2D, 0x57, 0x7D, 0xDD, 0x76, 0x03,
		0xD4, 0x76, 0x03, 0xC3, 0x72, 0x03, 0xB3, 0x7B, 0x03, 0x8E, 0x8A, 0x03, 0x97,
		0x6E, 0x04, 0x9C, 0x22, 0x05, 0xA7, 0x6A, 0x05, 0xAB, 0x7A, 0x05, 0x93, 0x82,
		0x05, 0x6D, 0xC2, 0x05, 0x55, 0xA6, 0x05, 0x57, 0x16, 0x05, 0x67, 0x62, 0x02,
		0x80, 0x16, 0x02, 0x9B, 0xE6, 0x01,
	}

	// Start of the following lap at 93°.
	nextLapPacket = []byte{
		0xAA, 0x55, 0xC7, 0x01, 0x81, 0x2E, 0x81, 0x2E, 0x1B, 0x56, 0x14, 0x62, 0x02,
	}

	// 16 samples from 300° across 0° to 30°.
	wrapPacket = []byte{
		0xAA, 0x55, 0xB0, 0x10, 0x01, 0x96, 0x01, 0x0F, 0xD6, 0xDF, 0xDD, 0x76, 0x03,
		0xD4, 0x76, 0x03, 0xC3, 0x72, 0x03, 0xB3, 0x7A, 0x03, 0x8E, 0x8A, 0x03, 0x97,
		0x6E, 0x04, 0x9C, 0x22, 0x05, 0xA7, 0x6A, 0x05, 0xAB, 0x7A, 0x05, 0x93, 0x82,
		0x05, 0x6D, 0xC2, 0x05, 0x55, 0xA6, 0x05, 0x57, 0x16, 0x05, 0x67, 0x62, 0x02,
		0x80, 0x16, 0x02, 0x9B, 0xE6, 0x01,
	}

	// Recorded packets with many samples each.
	nearRangePacket = []byte{
		0xAA, 0x55, 0xB0, 0x27, 0xE3, 0x28, 0xF3, 0x39, 0x0E, 0x61, 0x79, 0xB6, 0x05,
		0x6F, 0x4E, 0x06, 0x61, 0x06, 0x06, 0x7A, 0x9A, 0x02, 0x9E, 0x5E, 0x02, 0xA6,
		0x0A, 0x02, 0xA7, 0xE6, 0x01, 0xAE, 0xD6, 0x01, 0xBA, 0xD6, 0x01, 0xB8, 0xD2,
		0x01, 0xB2, 0xD6, 0x01, 0xBD, 0xD2, 0x01, 0xDF, 0xDA, 0x01, 0xE1, 0xDA, 0x01,
		0xDF, 0xDA, 0x01, 0xDC, 0xDE, 0x01, 0xDE, 0xDE, 0x01, 0xD8, 0xE2, 0x01, 0xD4,
		0xDE, 0x01, 0xBA, 0xDE, 0x01, 0x84, 0xDF, 0x01, 0x2F, 0xAB, 0x01, 0x17, 0xEE,
		0x01, 0x0F, 0x22, 0x02, 0x0C, 0x7E, 0x02, 0x0A, 0x02, 0x00, 0x0C, 0x9E, 0x02,
		0x16, 0xA6, 0x02, 0x21, 0xA2, 0x02, 0x3A, 0x32, 0x03, 0x55, 0x4E, 0x0A, 0x87,
		0x46, 0x0A, 0x85, 0x5A, 0x0A, 0x8A, 0x6E, 0x0A, 0x84, 0x9A, 0x0A, 0x7E, 0xCE,
		0x0A, 0x4E, 0x7E, 0x04, 0x51, 0x6E, 0x03, 0x66, 0xA6, 0x02,
	}

	denseRangePacket = []byte{
		0xAA, 0x55, 0x24, 0x28, 0xF5, 0x4C, 0x85, 0x5E, 0x9D, 0x70, 0xCE, 0xE2, 0x07,
		0xBC, 0xFA, 0x07, 0xCC, 0xB6, 0x07, 0xC8, 0xB6, 0x07, 0xC4, 0xBA, 0x07, 0xCB,
		0xCA, 0x07, 0xC8, 0xAE, 0x09, 0xC5, 0x9E, 0x09, 0xC7, 0x9E, 0x09, 0xC2, 0x9E,
		0x09, 0xC1, 0x92, 0x09, 0xC0, 0x8A, 0x09, 0xC1, 0x86, 0x09, 0xBE, 0x86, 0x09,
		0xC5, 0x86, 0x09, 0xC3, 0x8A, 0x09, 0xBC, 0x8A, 0x09, 0xC6, 0x8A, 0x09, 0xC6,
		0x8A, 0x09, 0xC2, 0x8E, 0x09, 0xC5, 0x8E, 0x09, 0xC3, 0x92, 0x09, 0xC4, 0xAA,
		0x09, 0xC9, 0xB2, 0x09, 0xC9, 0xBA, 0x09, 0xC5, 0xC2, 0x09, 0xC9, 0xCE, 0x09,
		0xBF, 0xCE, 0x09, 0xBE, 0xCE, 0x09, 0xBA, 0xCE, 0x09, 0xBE, 0xD6, 0x09, 0xBB,
		0xD6, 0x09, 0xBF, 0xE2, 0x09, 0xBB, 0xF2, 0x09, 0xC1, 0x0A, 0x0A, 0xBF, 0x1A,
		0x0A, 0xB9, 0x1E, 0x0A, 0xAA, 0x22, 0x0A, 0x9E, 0x2A, 0x0A, 0xCB, 0x7A, 0x15,
	}

	healthResponse = []byte{0xA5, 0x5A, 0x03, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00}

	infoResponse = []byte{
		0xA5, 0x5A, 0x14, 0x00, 0x00, 0x00, 0x04,
		0x96, 0x00, 0x01, 0x02, 0x02, 0x00, 0x02, 0x02, 0x01, 0x01,
		0x00, 0x03, 0x00, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01,
	}

	scanResponseHeader = []byte{0xA5, 0x5A, 0x05, 0x00, 0x00, 0x40, 0x81}
)

// withChecksum returns a copy of p carrying the check code cs.
func withChecksum(p []byte, cs uint16) []byte {
	c := append([]byte(nil), p...)
	c[8], c[9] = byte(cs), byte(cs>>8)
	return c
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}
