package ydlidar

import (
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ydscan/ydlidar/mocks"
)

func newMockLidar(t *testing.T) (*YDLidar, *mocks.MockTransport) {
	mockCtrl := gomock.NewController(t)
	mockSerial := mocks.NewMockTransport(mockCtrl)
	lidar := NewLidar(mockSerial, Config{ReadRetryDelay: time.Millisecond})
	return lidar, mockSerial
}

// expectRead queues a response of data on the mock.
func expectRead(mockSerial *mocks.MockTransport, data []byte) *gomock.Call {
	return mockSerial.EXPECT().Read(gomock.Len(len(data))).Return(len(data), nil).SetArg(0, data)
}

func TestHealthInfo(t *testing.T) {
	lidar, mockSerial := newMockLidar(t)

	header := []byte{0xA5, 0x5A, 0x3, 0, 0, 0, 0x6}
	gomock.InOrder(
		mockSerial.EXPECT().Write([]byte{0xA5, 0x92}).Return(2, nil),
		mockSerial.EXPECT().BytesAvailable().Return(10, nil),
		expectRead(mockSerial, header),
		mockSerial.EXPECT().BytesAvailable().Return(3, nil),
		expectRead(mockSerial, []byte{0, 0, 0}),
	)

	assert.NoError(t, lidar.HealthInfo())
}

func TestHealthInfoError(t *testing.T) {
	lidar, mockSerial := newMockLidar(t)

	header := []byte{0xA5, 0x5A, 0x3, 0, 0, 0, 0x6}
	gomock.InOrder(
		mockSerial.EXPECT().Write([]byte{0xA5, 0x92}).Return(2, nil),
		mockSerial.EXPECT().BytesAvailable().Return(10, nil),
		expectRead(mockSerial, header),
		mockSerial.EXPECT().BytesAvailable().Return(3, nil),
		expectRead(mockSerial, []byte{0x02, 0x12, 0x00}),
	)

	err := lidar.HealthInfo()
	var healthErr *HealthError
	require.True(t, errors.As(err, &healthErr), "got %v", err)
	assert.Equal(t, byte(0x02), healthErr.Status)
	assert.Equal(t, uint16(0x0012), healthErr.Code)
}

func TestDeviceInfo(t *testing.T) {
	lidar, mockSerial := newMockLidar(t)

	gomock.InOrder(
		mockSerial.EXPECT().Write([]byte{0xA5, 0x90}).Return(2, nil),
		mockSerial.EXPECT().BytesAvailable().Return(27, nil),
		expectRead(mockSerial, infoResponse[:7]),
		mockSerial.EXPECT().BytesAvailable().Return(20, nil),
		expectRead(mockSerial, infoResponse[7:]),
	)

	info, err := lidar.DeviceInfo()
	require.NoError(t, err)
	assert.Equal(t, uint8(150), info.ModelNumber)
	assert.Equal(t, uint8(1), info.FirmwareMajor)
	assert.Equal(t, uint8(0), info.FirmwareMinor)
	assert.Equal(t, uint8(2), info.Hardware)
	assert.Equal(t, [16]byte{2, 0, 2, 2, 1, 1, 0, 3, 0, 1, 1, 1, 1, 1, 1, 1}, info.Serial)
	assert.Equal(t, "Model: 150 Hardware Version: 2 Firmware Version: 1.0 Serial Number: 2022110301111111", info.String())
}

func TestDeviceInfoString(t *testing.T) {
	info := DeviceInfo{ModelNumber: 150, FirmwareMajor: 1, Hardware: 2}
	info.Serial[0] = 12
	info.Serial[15] = 0xFF

	assert.Equal(t, "Model: 150 Hardware Version: 2 Firmware Version: 1.0 Serial Number: 1200000000000000255", info.String())
}

func TestDeviceInfoWrongLength(t *testing.T) {
	lidar, mockSerial := newMockLidar(t)

	header := []byte{0xA5, 0x5A, 0x12, 0, 0, 0, 0x4}
	gomock.InOrder(
		mockSerial.EXPECT().Write([]byte{0xA5, 0x90}).Return(2, nil),
		mockSerial.EXPECT().BytesAvailable().Return(7, nil),
		expectRead(mockSerial, header),
	)

	_, err := lidar.DeviceInfo()
	var lenErr *ResponseLengthError
	require.True(t, errors.As(err, &lenErr), "got %v", err)
	assert.Equal(t, 20, lenErr.Expected)
	assert.Equal(t, 18, lenErr.Actual)
}

func TestStartScan(t *testing.T) {
	lidar, mockSerial := newMockLidar(t)

	gomock.InOrder(
		mockSerial.EXPECT().Write([]byte{0xA5, 0x60}).Return(2, nil),
		mockSerial.EXPECT().BytesAvailable().Return(7, nil),
		expectRead(mockSerial, scanResponseHeader),
	)

	assert.NoError(t, lidar.StartScan())
}

func TestStartScanWrongType(t *testing.T) {
	lidar, mockSerial := newMockLidar(t)

	header := []byte{0xA5, 0x5A, 0x05, 0, 0, 0x40, 0x04}
	gomock.InOrder(
		mockSerial.EXPECT().Write([]byte{0xA5, 0x60}).Return(2, nil),
		mockSerial.EXPECT().BytesAvailable().Return(7, nil),
		expectRead(mockSerial, header),
	)

	err := lidar.StartScan()
	var typeErr *TypeCodeError
	require.True(t, errors.As(err, &typeErr), "got %v", err)
	assert.Equal(t, byte(ScanTypeCode), typeErr.Expected)
	assert.Equal(t, byte(0x04), typeErr.Actual)
}

func TestStopScanAndFlush(t *testing.T) {
	lidar, mockSerial := newMockLidar(t)

	gomock.InOrder(
		mockSerial.EXPECT().Write([]byte{0xA5, 0x00}).Return(2, nil),
		mockSerial.EXPECT().Write([]byte{0xA5, 0x65}).Return(2, nil),
		mockSerial.EXPECT().BytesAvailable().Return(5, nil),
		mockSerial.EXPECT().Read(gomock.Len(5)).Return(5, nil),
	)

	assert.NoError(t, lidar.StopScanAndFlush())
}

func TestReboot(t *testing.T) {
	lidar, mockSerial := newMockLidar(t)
	mockSerial.EXPECT().Write([]byte{0xA5, 0x40}).Return(2, nil)
	assert.NoError(t, lidar.Reboot())
}

func TestSendCommandError(t *testing.T) {
	lidar, mockSerial := newMockLidar(t)
	mockSerial.EXPECT().Write([]byte{0xA5, 0x92}).Return(0, errors.New("port gone"))

	err := lidar.HealthInfo()
	assert.EqualError(t, err, "failed to send command 0x92: port gone")
}

func TestReadTimeout(t *testing.T) {
	lidar, mockSerial := newMockLidar(t)

	gomock.InOrder(
		mockSerial.EXPECT().Write([]byte{0xA5, 0x92}).Return(2, nil),
		mockSerial.EXPECT().BytesAvailable().Return(4, nil).Times(3),
	)

	assert.ErrorIs(t, lidar.HealthInfo(), ErrTimeout)
}

func TestValidateResponseHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   []byte
		length   int
		typeCode byte
		wantErr  error
	}{
		{"valid", []byte{0xA5, 0x5A, 0x14, 0x00, 0x00, 0x00, 0x04}, 0x14, 0x04, nil},
		{"any length", []byte{0xA5, 0x5A, 0x05, 0x00, 0x00, 0x40, 0x81}, -1, 0x81, nil},
		{"too long", []byte{0xA5, 0x5A, 0x14, 0x00, 0x00, 0x00, 0x04, 0x09}, 0x14, 0x04, &HeaderLengthError{Length: 8}},
		{"bad first magic", []byte{0xA6, 0x5A, 0x14, 0x00, 0x00, 0x00, 0x04}, 0x14, 0x04, &MagicNumberError{Got: [2]byte{0xA6, 0x5A}}},
		{"bad second magic", []byte{0xA5, 0x2A, 0x14, 0x00, 0x00, 0x00, 0x04}, 0x14, 0x04, &MagicNumberError{Got: [2]byte{0xA5, 0x2A}}},
		{"length", []byte{0xA5, 0x5A, 0x14, 0x00, 0x00, 0x00, 0x04}, 0x12, 0x04, &ResponseLengthError{Expected: 18, Actual: 20}},
		{"type code", []byte{0xA5, 0x5A, 0x14, 0x00, 0x00, 0x00, 0x04}, 0x14, 0x08, &TypeCodeError{Expected: 8, Actual: 4}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateResponseHeader(tc.header, tc.length, tc.typeCode)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tc.wantErr, err)
		})
	}
}
