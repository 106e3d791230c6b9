package keys

// Code is a HID keyboard usage ID (usage page 0x07).
type Code uint8

const (
	None       Code = 0x00
	Enter      Code = 0x28
	Space      Code = 0x2C
	RightArrow Code = 0x4F
	LeftArrow  Code = 0x50
	DownArrow  Code = 0x51
	UpArrow    Code = 0x52
	Mute       Code = 0x7F
	VolumeUp   Code = 0x80
	VolumeDown Code = 0x81
)

func (c Code) String() string {
	switch c {
	case None:
		return "None"
	case Enter:
		return "Enter"
	case Space:
		return "Space"
	case RightArrow:
		return "Right"
	case LeftArrow:
		return "Left"
	case DownArrow:
		return "Down"
	case UpArrow:
		return "Up"
	case Mute:
		return "Mute"
	case VolumeUp:
		return "VolUp"
	case VolumeDown:
		return "VolDown"
	default:
		return "Unknown"
	}
}
