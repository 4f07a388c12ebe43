package domain

// FacingMode represents which physical camera is active
type FacingMode string

const (
	FacingFront FacingMode = "front"
	FacingRear  FacingMode = "rear"
)

// Opposite returns the other facing mode
func (f FacingMode) Opposite() FacingMode {
	if f == FacingFront {
		return FacingRear
	}
	return FacingFront
}

// ParseFacingMode converts a config or flag value into a FacingMode
func ParseFacingMode(s string) (FacingMode, bool) {
	switch FacingMode(s) {
	case FacingFront:
		return FacingFront, true
	case FacingRear:
		return FacingRear, true
	default:
		return "", false
	}
}

// CameraState is the state of the capture device adapter
type CameraState string

const (
	CameraIdle      CameraState = "idle"
	CameraStarting  CameraState = "starting"
	CameraStreaming CameraState = "streaming"
	CameraError     CameraState = "error"
)

const (
	DefaultCaptureWidth  = 1280
	DefaultCaptureHeight = 720
)

// CameraConstraints are the hints used to acquire a stream
type CameraConstraints struct {
	FacingMode FacingMode
	Width      int
	Height     int
}

// DefaultConstraints returns the ideal 1280x720 constraints for a facing mode
func DefaultConstraints(facing FacingMode) CameraConstraints {
	return CameraConstraints{
		FacingMode: facing,
		Width:      DefaultCaptureWidth,
		Height:     DefaultCaptureHeight,
	}
}

// CameraSession is a snapshot of the adapter state
type CameraSession struct {
	State       CameraState
	FacingMode  FacingMode
	IsStreaming bool
	LastError   string
	ErrorKind   Kind
	Constraints *CameraConstraints
}

// Still is an encoded single frame capture
type Still struct {
	Data     []byte
	MimeType string
	Width    int
	Height   int
}
