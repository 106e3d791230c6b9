// Package blehid implements the link capability as a Bluetooth-LE
// HID-over-GATT keyboard on top of tinygo.org/x/bluetooth.
//
// The stack owns pairing, report framing and link supervision; this
// binding only exposes Begin/Connected/WriteKey plus the link-state
// observer hook. After a disconnect it restarts advertising itself,
// so reconnection needs no command from the core.
package blehid

import (
	"sync/atomic"

	"tinygo.org/x/bluetooth"

	"rotary-keypad/keys"
)

// Boot-style keyboard report map: 8-byte input report with a modifier
// byte, one reserved byte and six usage slots.
var reportMap = []byte{
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x06, // Usage (Keyboard)
	0xA1, 0x01, // Collection (Application)
	0x05, 0x07, //   Usage Page (Key Codes)
	0x19, 0xE0, //   Usage Minimum (224)
	0x29, 0xE7, //   Usage Maximum (231)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x01, //   Logical Maximum (1)
	0x75, 0x01, //   Report Size (1)
	0x95, 0x08, //   Report Count (8)
	0x81, 0x02, //   Input (Data, Variable, Absolute); modifiers
	0x95, 0x01, //   Report Count (1)
	0x75, 0x08, //   Report Size (8)
	0x81, 0x01, //   Input (Constant); reserved
	0x95, 0x06, //   Report Count (6)
	0x75, 0x08, //   Report Size (8)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x65, //   Logical Maximum (101)
	0x05, 0x07, //   Usage Page (Key Codes)
	0x19, 0x00, //   Usage Minimum (0)
	0x29, 0x65, //   Usage Maximum (101)
	0x81, 0x00, //   Input (Data, Array); key slots
	0xC0, // End Collection
}

// hidInfo: bcdHID 1.11, country 0, flags: remote wake + normally
// connectable.
var hidInfo = []byte{0x11, 0x01, 0x00, 0x03}

type Keyboard struct {
	name         string
	manufacturer string

	adapter   *bluetooth.Adapter
	adv       *bluetooth.Advertisement
	reportIn  bluetooth.Characteristic
	connected atomic.Bool
	observers []func(up bool)
}

func New(name, manufacturer string) *Keyboard {
	return &Keyboard{
		name:         name,
		manufacturer: manufacturer,
		adapter:      bluetooth.DefaultAdapter,
	}
}

// OnLinkChange registers an observer for connect/disconnect. Register
// before Begin; the slice is not guarded afterwards.
func (k *Keyboard) OnLinkChange(fn func(up bool)) {
	k.observers = append(k.observers, fn)
}

// Begin enables the adapter, publishes the HID services and starts
// advertising.
func (k *Keyboard) Begin() error {
	if err := k.adapter.Enable(); err != nil {
		return err
	}

	k.adapter.SetConnectHandler(func(dev bluetooth.Device, connected bool) {
		k.connected.Store(connected)
		for _, fn := range k.observers {
			fn(connected)
		}
		if !connected && k.adv != nil {
			// Resume advertising so the host can come back on its
			// own schedule.
			k.adv.Start()
		}
	})

	if err := k.addServices(); err != nil {
		return err
	}

	k.adv = k.adapter.DefaultAdvertisement()
	if err := k.adv.Configure(bluetooth.AdvertisementOptions{
		LocalName: k.name,
		ServiceUUIDs: []bluetooth.UUID{
			bluetooth.ServiceUUIDHumanInterfaceDevice,
		},
	}); err != nil {
		return err
	}
	return k.adv.Start()
}

func (k *Keyboard) addServices() error {
	err := k.adapter.AddService(&bluetooth.Service{
		UUID: bluetooth.ServiceUUIDDeviceInformation,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				UUID:  bluetooth.CharacteristicUUIDManufacturerNameString,
				Value: []byte(k.manufacturer),
				Flags: bluetooth.CharacteristicReadPermission,
			},
			{
				UUID:  bluetooth.CharacteristicUUIDModelNumberString,
				Value: []byte(k.name),
				Flags: bluetooth.CharacteristicReadPermission,
			},
		},
	})
	if err != nil {
		return err
	}

	// Some hosts refuse HID devices without a battery service.
	err = k.adapter.AddService(&bluetooth.Service{
		UUID: bluetooth.ServiceUUIDBattery,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				UUID:  bluetooth.CharacteristicUUIDBatteryLevel,
				Value: []byte{100},
				Flags: bluetooth.CharacteristicReadPermission | bluetooth.CharacteristicNotifyPermission,
			},
		},
	})
	if err != nil {
		return err
	}

	return k.adapter.AddService(&bluetooth.Service{
		UUID: bluetooth.ServiceUUIDHumanInterfaceDevice,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				UUID:  bluetooth.CharacteristicUUIDHIDInformation,
				Value: hidInfo,
				Flags: bluetooth.CharacteristicReadPermission,
			},
			{
				UUID:  bluetooth.CharacteristicUUIDReportMap,
				Value: reportMap,
				Flags: bluetooth.CharacteristicReadPermission,
			},
			{
				Handle: &k.reportIn,
				UUID:   bluetooth.CharacteristicUUIDReport,
				Value:  make([]byte, 8),
				Flags:  bluetooth.CharacteristicReadPermission | bluetooth.CharacteristicNotifyPermission,
			},
			{
				UUID:  bluetooth.CharacteristicUUIDProtocolMode,
				Value: []byte{1}, // report protocol
				Flags: bluetooth.CharacteristicReadPermission | bluetooth.CharacteristicWriteWithoutResponsePermission,
			},
			{
				UUID:  bluetooth.CharacteristicUUIDHIDControlPoint,
				Flags: bluetooth.CharacteristicWriteWithoutResponsePermission,
			},
		},
	})
}

// Connected reports the cached link state maintained by the connect
// handler.
func (k *Keyboard) Connected() bool {
	return k.connected.Load()
}

// WriteKey notifies one press report followed by an all-zero release
// report.
func (k *Keyboard) WriteKey(c keys.Code) error {
	report := [8]byte{}
	report[2] = byte(c)
	if _, err := k.reportIn.Write(report[:]); err != nil {
		return err
	}
	report[2] = 0
	_, err := k.reportIn.Write(report[:])
	return err
}
