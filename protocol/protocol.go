// Package protocol frames diagnostic events for the serial debug
// bridge. Purely observational: the firmware mirrors events here, the
// host monitor decodes them. Nothing in the core depends on it.
package protocol

type EventType uint8

const (
	EVENT_TYPE_CW EventType = iota + 1
	EVENT_TYPE_CCW
	EVENT_TYPE_PRESS
	EVENT_TYPE_LINK_UP
	EVENT_TYPE_LINK_DOWN
	EVENT_TYPE_RETRY
)

const (
	SIGNATURE uint8 = 0x5A

	frameLen = 5
)

type Event struct {
	Type    EventType
	Channel uint8
	Value   uint8
}

func Marshal(e Event) []byte {
	return []byte{SIGNATURE, SIGNATURE, uint8(e.Type), e.Channel, e.Value}
}

func Unmarshal(data []byte) (Event, bool) {
	if len(data) != frameLen {
		return Event{}, false
	}
	if data[0] != SIGNATURE || data[1] != SIGNATURE {
		return Event{}, false
	}
	return Event{Type: EventType(data[2]), Channel: data[3], Value: data[4]}, true
}

func NewEvent(t EventType, ch, v uint8) *Event {
	return &Event{Type: t, Channel: ch, Value: v}
}

// Len is the fixed frame length on the wire.
func Len() int { return frameLen }

func IsEventAtStart(data []byte) bool {
	return len(data) >= 2 && data[0] == SIGNATURE && data[1] == SIGNATURE
}

func itoh(v uint8) string {
	const digits = "0123456789ABCDEF"
	return "0x" + string(digits[v>>4]) + string(digits[v&0x0F])
}

// String avoids fmt so it stays cheap on the device side.
func (e *Event) String() string {
	ch := string(e.Channel + '0')
	val := itoh(e.Value)
	switch e.Type {
	case EVENT_TYPE_CW:
		return "CW    " + ch
	case EVENT_TYPE_CCW:
		return "CCW   " + ch
	case EVENT_TYPE_PRESS:
		return "Press " + ch + " key " + val
	case EVENT_TYPE_LINK_UP:
		return "LinkUp"
	case EVENT_TYPE_LINK_DOWN:
		return "LinkDown"
	case EVENT_TYPE_RETRY:
		return "Retry"
	default:
		return "Unknown " + ch
	}
}
