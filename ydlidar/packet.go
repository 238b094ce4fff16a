package ydlidar

import (
	"errors"

	"github.com/golang/glog"
)

// packet is a single scan packet extracted from the byte stream.
//
//	PH(2B) F&C(1B) LSN(1B) FSA(2B) LSA(2B) CS(2B) Si(3B)*LSN
type packet []byte

// isRotationStart reports whether the packet begins a new lap. Bit 0 of the
// F&C byte is set on the start packet; bits 7..1 hold the scan frequency.
func (p packet) isRotationStart() bool {
	return p[2]&0x01 == 1
}

// frequency returns the scan frequency in Hz. Only valid on start packets.
func (p packet) frequency() float64 {
	return float64(p[2]>>1) / 10
}

func (p packet) sampleCount() int {
	return int(p[3])
}

func (p packet) startAngle() float64 {
	return toAngle(p[4], p[5])
}

func (p packet) endAngle() float64 {
	return toAngle(p[6], p[7])
}

func (p packet) checkCode() uint16 {
	return toU16(p[9], p[8])
}

// sample returns the raw bytes of sample i.
func (p packet) sample(i int) (s0, s1, s2 byte) {
	idx := packetHeaderSize + i*sampleSize
	return p[idx], p[idx+1], p[idx+2]
}

func isPacketSync(b0, b1 byte) bool {
	return b0 == packetSync0 && b1 == packetSync1
}

// LocatePacket finds the first packet sync marker in buf and returns its
// offset and the full length of the packet starting there. ErrNoPacket is
// returned when buf holds no sync marker, ErrIncompletePacket when the sample
// count byte following the marker has not arrived yet. LocatePacket never
// checks that the whole packet is buffered.
func LocatePacket(buf []byte) (start, length int, err error) {
	start = -1
	for i := 0; i+1 < len(buf); i++ {
		if isPacketSync(buf[i], buf[i+1]) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, 0, ErrNoPacket
	}
	if start+3 >= len(buf) {
		return start, 0, ErrIncompletePacket
	}
	return start, packetHeaderSize + int(buf[start+3])*sampleSize, nil
}

// Checksum computes the check code of a packet. The words are XORed in the
// order the device computes them, not in byte order. p must hold a whole
// packet as located by LocatePacket.
func Checksum(p []byte) uint16 {
	pkt := packet(p)
	cs := toU16(p[1], p[0])
	cs ^= toU16(p[5], p[4])
	for i := 0; i < pkt.sampleCount(); i++ {
		s0, s1, s2 := pkt.sample(i)
		cs ^= toU16(0x00, s0)
		cs ^= toU16(s2, s1)
	}
	cs ^= toU16(p[3], p[2])
	cs ^= toU16(p[7], p[6])
	return cs
}

// ValidateChecksum compares the computed check code with the one carried in
// the packet header.
func ValidateChecksum(p []byte) error {
	calculated := Checksum(p)
	expected := packet(p).checkCode()
	if calculated != expected {
		return &ChecksumError{Expected: expected, Calculated: calculated}
	}
	return nil
}

// packetBuffer accumulates stream bytes and hands out whole packets.
type packetBuffer struct {
	data    []byte
	dropped int // garbage bytes discarded while resyncing
}

func (b *packetBuffer) Write(p []byte) {
	b.data = append(b.data, p...)
}

func (b *packetBuffer) Len() int {
	return len(b.data)
}

// Next extracts the next packet. Bytes ahead of the sync marker are dropped;
// the packet itself is only removed once all of it is buffered, otherwise
// ErrIncompletePacket is returned and the buffer is left as is. Without any
// sync marker only a trailing first sync byte is kept.
func (b *packetBuffer) Next() (packet, error) {
	start, length, err := LocatePacket(b.data)
	if errors.Is(err, ErrNoPacket) {
		b.discardNoise()
	}
	if err != nil {
		return nil, err
	}
	if start > 0 {
		glog.V(2).Infof("Dropping %d bytes ahead of packet header: %s", start, hexString(b.data[:start]))
		b.dropped += start
		b.data = b.data[start:]
	}
	if len(b.data) < length {
		return nil, ErrIncompletePacket
	}
	p := make(packet, length)
	copy(p, b.data[:length])
	b.data = b.data[length:]
	return p, nil
}

// discardNoise drops a buffer that holds no sync marker.
func (b *packetBuffer) discardNoise() {
	keep := 0
	if n := len(b.data); n > 0 && b.data[n-1] == packetSync0 {
		keep = 1
	}
	drop := len(b.data) - keep
	if drop == 0 {
		return
	}
	glog.V(2).Infof("Dropping %d bytes without packet header", drop)
	b.dropped += drop
	b.data = append(b.data[:0], b.data[drop:]...)
}
