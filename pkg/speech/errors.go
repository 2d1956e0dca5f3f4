package speech

import (
	"errors"
	"fmt"
)

// Error codes the service reports when a device cannot serve the
// request at all, as opposed to a failed recognition.
const (
	CodeDeviceUnavailable = "device_unavailable"
	CodeOutOfMemory       = "out_of_memory"
)

// DeviceError is a failed transcription attempt on one device.
type DeviceError struct {
	Device     string
	StatusCode int
	Code       string
	Message    string
}

func (e *DeviceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("transcription on %s failed: %s (%s)", e.Device, e.Message, e.Code)
	}
	return fmt.Sprintf("transcription on %s failed: status %d", e.Device, e.StatusCode)
}

// isDeviceFailure reports whether the error means the device itself
// cannot serve requests, which justifies retrying on the fallback.
// Anything else, including ErrNoSpeech, is returned to the caller.
func isDeviceFailure(err error) bool {
	var derr *DeviceError
	if !errors.As(err, &derr) {
		return false
	}
	switch derr.Code {
	case CodeDeviceUnavailable, CodeOutOfMemory:
		return true
	}
	switch derr.StatusCode {
	case 501, 507:
		return true
	}
	return false
}
