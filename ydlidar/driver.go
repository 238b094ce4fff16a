package ydlidar

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
)

// terminatorQueueSize is the capacity of the stop channels.
const terminatorQueueSize = 10

// Stats counts the work done by a running driver.
type Stats struct {
	BytesRead        int64
	BytesDropped     int64
	Packets          int64
	ChecksumFailures int64
	Scans            int64
}

type driverStats struct {
	bytesRead        atomic.Int64
	bytesDropped     atomic.Int64
	packets          atomic.Int64
	checksumFailures atomic.Int64
	scans            atomic.Int64
}

// Driver owns the reader and parser goroutines of a scanning lidar. Close
// stops both and releases the transport.
type Driver struct {
	lidar   *YDLidar
	profile Profile

	readerStop chan struct{}
	parserStop chan struct{}
	wg         sync.WaitGroup

	closeOnce sync.Once
	closeErr  error
	closed    chan struct{}

	stats driverStats
}

// Start opens the serial port named in cfg and starts scanning. Completed
// laps are delivered on the returned channel, which is closed once the
// driver stops. Cancelling ctx closes the driver.
func Start(ctx context.Context, cfg Config) (*Driver, <-chan *Scan, error) {
	cfg = cfg.withDefaults()
	profile, err := ProfileFor(cfg.Model)
	if err != nil {
		return nil, nil, err
	}
	port, err := OpenSerial(cfg.Port, profile.BaudRate, cfg.ReadTimeout, cfg.SetDTR)
	if err != nil {
		return nil, nil, err
	}
	return StartTransport(ctx, port, cfg)
}

// StartTransport is like Start but scans over an already open transport. The
// transport is closed when startup fails or the driver is closed.
func StartTransport(ctx context.Context, port Transport, cfg Config) (*Driver, <-chan *Scan, error) {
	cfg = cfg.withDefaults()
	profile, err := ProfileFor(cfg.Model)
	if err != nil {
		port.Close()
		return nil, nil, err
	}

	lidar := NewLidar(port, cfg)
	if err := startup(lidar, profile, cfg); err != nil {
		port.Close()
		return nil, nil, err
	}

	d := &Driver{
		lidar:      lidar,
		profile:    profile,
		readerStop: make(chan struct{}, terminatorQueueSize),
		parserStop: make(chan struct{}, terminatorQueueSize),
		closed:     make(chan struct{}),
	}
	chunks := make(chan []byte, cfg.ChunkQueueSize)
	scans := make(chan *Scan, cfg.ScanQueueSize)

	d.wg.Add(2)
	go d.readDeviceSignal(chunks)
	go d.parsePackets(chunks, scans, NewAssembler(profile), cfg.ParserIdle)
	go d.watch(ctx)

	glog.V(1).Infof("Driver started for %v", profile.Model)
	return d, scans, nil
}

// startup brings the device from an unknown state into scanning.
func startup(lidar *YDLidar, profile Profile, cfg Config) error {
	if !cfg.SkipFlush {
		if err := lidar.StopScanAndFlush(); err != nil {
			return err
		}
		time.Sleep(cfg.SettleDelay)
		if err := lidar.StopScanAndFlush(); err != nil {
			return err
		}
	}

	if profile.Handshake {
		if err := lidar.HealthInfo(); err != nil {
			return fmt.Errorf("health check: %w", err)
		}
		info, err := lidar.DeviceInfo()
		if err != nil {
			return fmt.Errorf("device info: %w", err)
		}
		model, err := ModelForNumber(info.ModelNumber)
		if err != nil {
			return err
		}
		if model != profile.Model {
			return &UnsupportedModelError{Number: int(info.ModelNumber)}
		}
		glog.Infof("Device Info: %v", info)
	}

	return lidar.StartScan()
}

// readDeviceSignal forwards every byte the transport delivers to the parser.
func (d *Driver) readDeviceSignal(chunks chan<- []byte) {
	defer d.wg.Done()
	for {
		select {
		case <-d.readerStop:
			d.stopScan()
			return
		default:
		}

		n, err := d.lidar.port.BytesAvailable()
		if err != nil {
			glog.V(1).Infof("Failed to query serial: %v", err)
			continue
		}
		if n == 0 {
			runtime.Gosched()
			continue
		}

		data := make([]byte, n)
		if _, err := io.ReadFull(d.lidar.port, data); err != nil {
			glog.Errorf("Failed to read serial: %v", err)
			continue
		}
		d.stats.bytesRead.Add(int64(n))

		select {
		case chunks <- data:
		case <-d.readerStop:
			d.stopScan()
			return
		}
	}
}

func (d *Driver) stopScan() {
	if err := d.lidar.StopScanAndFlush(); err != nil {
		glog.Errorf("Failed to stop scan: %v", err)
	}
}

// parsePackets turns byte chunks into laps. It owns the byte buffer and the
// lap in progress, and closes scans on return.
func (d *Driver) parsePackets(chunks <-chan []byte, scans chan<- *Scan, asm *Assembler, idle time.Duration) {
	defer d.wg.Done()
	defer close(scans)

	var buf packetBuffer
	for {
		select {
		case <-d.parserStop:
			return
		default:
		}

		select {
		case data := <-chunks:
			buf.Write(data)
		default:
			time.Sleep(idle)
		}
		if buf.Len() == 0 {
			continue
		}

		pkt, err := buf.Next()
		d.stats.bytesDropped.Store(int64(buf.dropped))
		if err != nil {
			continue
		}
		d.stats.packets.Add(1)

		scan := asm.Push(pkt)
		d.stats.checksumFailures.Store(int64(asm.failures))
		if scan == nil {
			continue
		}

		select {
		case scans <- scan:
			d.stats.scans.Add(1)
		case <-d.parserStop:
			return
		}
	}
}

func (d *Driver) watch(ctx context.Context) {
	select {
	case <-ctx.Done():
		if err := d.Close(); err != nil {
			glog.Errorf("Failed to close driver: %v", err)
		}
	case <-d.closed:
	}
}

// Close signals both goroutines to stop, waits for them and closes the
// transport. It is safe to call more than once.
func (d *Driver) Close() error {
	d.closeOnce.Do(func() {
		d.readerStop <- struct{}{}
		d.parserStop <- struct{}{}
		d.wg.Wait()
		d.closeErr = d.lidar.Close()
		close(d.closed)
		glog.V(1).Infof("Driver for %v closed", d.profile.Model)
	})
	return d.closeErr
}

// Done is closed once the driver has shut down.
func (d *Driver) Done() <-chan struct{} {
	return d.closed
}

// Profile returns the profile the driver assembles laps with.
func (d *Driver) Profile() Profile {
	return d.profile
}

// Stats returns a snapshot of the driver counters.
func (d *Driver) Stats() Stats {
	return Stats{
		BytesRead:        d.stats.bytesRead.Load(),
		BytesDropped:     d.stats.bytesDropped.Load(),
		Packets:          d.stats.packets.Load(),
		ChecksumFailures: d.stats.checksumFailures.Load(),
		Scans:            d.stats.scans.Load(),
	}
}
