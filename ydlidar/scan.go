package ydlidar

import (
	"math"

	"github.com/golang/glog"
)

// Constants of the X2 angle correction.
const (
	correctionBase   = 155.3
	correctionFactor = 21.8
)

// Assembler builds laps out of consecutive scan packets. It is not safe for
// concurrent use.
type Assembler struct {
	profile  Profile
	scan     *Scan
	failures int // packets with a bad check code
}

// NewAssembler returns an assembler for the given profile with an empty lap
// in progress.
func NewAssembler(profile Profile) *Assembler {
	return &Assembler{
		profile: profile,
		scan:    NewScan(),
	}
}

// Push adds the samples of one packet. When the packet starts a new rotation
// the lap in progress is returned and a new one is begun before the packet's
// own samples are added. Otherwise Push returns nil.
func (a *Assembler) Push(p []byte) *Scan {
	pkt := packet(p)

	var done *Scan
	if pkt.isRotationStart() {
		done = a.scan
		a.scan = NewScan()
		glog.V(2).Infof("New lap, scan frequency %.1fHz", pkt.frequency())
	}

	if err := ValidateChecksum(pkt); err != nil {
		glog.V(1).Infof("Packet %s: %v", hexString(pkt[:packetHeaderSize]), err)
		a.scan.ChecksumCorrect = false
		a.failures++
	}

	switch a.profile.Variant {
	case VariantReduced:
		a.pushReduced(pkt)
	default:
		a.pushFull(pkt)
	}
	return done
}

// pushFull interpolates every sample angle between start and end angle.
func (a *Assembler) pushFull(pkt packet) {
	n := pkt.sampleCount()
	if n == 0 {
		return
	}
	if n == 1 {
		if pkt[4] != pkt[6] || pkt[5] != pkt[7] {
			glog.Warningf("Single sample packet with differing angles: %s", hexString(pkt[:packetHeaderSize]))
		}
		a.pushSample(pkt, 0, pkt.startAngle())
		return
	}

	start := pkt.startAngle()
	step := angleStep(start, pkt.endAngle(), n)
	for i := 0; i < n; i++ {
		a.pushSample(pkt, i, math.Mod(start+float64(i)*step, 360))
	}
}

func (a *Assembler) pushSample(pkt packet, i int, angle float64) {
	s0, s1, s2 := pkt.sample(i)
	a.scan.push(degreeToRadian(angle), calcDistance(s1, s2), toFlag(s1), s0)
}

// pushReduced pins the first and last sample to the packet angles and
// corrects every angle by its own distance. Out of range samples are dropped.
func (a *Assembler) pushReduced(pkt packet) {
	n := pkt.sampleCount()
	if n == 0 {
		return
	}
	start, end := pkt.startAngle(), pkt.endAngle()
	var step float64
	if n > 1 {
		step = angleStep(start, end, n)
	}

	for i := 0; i < n; i++ {
		_, s1, s2 := pkt.sample(i)
		d := calcDistance(s1, s2)
		if d == 0 || d > a.profile.MaxDistance {
			continue
		}

		var angle float64
		switch {
		case i == 0:
			angle = start
		case i == n-1:
			angle = end
		default:
			angle = math.Mod(start+float64(i)*step, 360)
		}
		a.scan.push(degreeToRadian(correctAngle(angle, d)), d, Nothing, placeholderIntensity)
	}
}

// angleStep returns the angle between consecutive samples, accounting for
// packets that cross 0°.
func angleStep(start, end float64, n int) float64 {
	diff := end - start
	if start >= end {
		diff += 360
	}
	return diff / float64(n-1)
}

// correctAngle applies the distance dependent angle correction in degrees.
func correctAngle(angle float64, dist uint16) float64 {
	if dist == 0 {
		return angle
	}
	d := float64(dist)
	c := math.Atan(correctionFactor*(correctionBase-d)/(correctionBase*d)) * 180 / math.Pi
	corrected := math.Mod(angle-c, 360)
	if corrected < 0 {
		corrected += 360
	}
	return corrected
}
