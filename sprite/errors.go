package sprite

import "fmt"

// FormatError reports image data that the hit tester cannot interpret.
// It indicates a corrupted asset and is raised with panic.
type FormatError struct {
	Index uint32
	Flags ElementFlags
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("sprite: image %d has unsupported format flags %#x", e.Index, uint16(e.Flags))
}
