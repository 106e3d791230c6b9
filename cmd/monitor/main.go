// Command monitor tails the diagnostic event stream of the keypad's
// USB serial bridge and pretty-prints it. Purely observational; the
// device runs the same with or without it.
package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dikkadev/prettyslog"
	"github.com/karalabe/usb"
	"go.bug.st/serial"
	"gopkg.in/yaml.v2"

	"rotary-keypad/protocol"
)

type Config struct {
	PortName     string        `yaml:"portName"`
	BaudRate     int           `yaml:"baudRate"`
	USBVendorID  uint16        `yaml:"usbVendorID"`
	USBProductID uint16        `yaml:"usbProductID"`
	RetryPeriod  time.Duration `yaml:"retryPeriod"`
}

var config = Config{
	BaudRate:    115200,
	RetryPeriod: 2 * time.Second,
}

func loadConfig(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("error reading config file", "err", err)
		return
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		slog.Warn("error parsing config file", "err", err)
		return
	}
	slog.Info("configuration loaded", "file", path)
}

// waitForDevice blocks until the configured VID/PID shows up on the
// bus, so the monitor can be started before the device is plugged in.
func waitForDevice(shutdown <-chan struct{}) bool {
	if config.USBVendorID == 0 || !usb.Supported() {
		return true
	}
	logged := false
	for {
		devs, err := usb.Enumerate(config.USBVendorID, config.USBProductID)
		if err != nil {
			slog.Warn("usb enumeration failed", "err", err)
		} else if len(devs) > 0 {
			slog.Info("device present", "vendorID", config.USBVendorID, "productID", config.USBProductID)
			return true
		}
		if !logged {
			slog.Info("waiting for device", "vendorID", config.USBVendorID, "productID", config.USBProductID)
			logged = true
		}
		select {
		case <-shutdown:
			return false
		case <-time.After(config.RetryPeriod):
		}
	}
}

// tailPort reads frames until the port dies, resynchronizing on the
// frame signature after any garbage.
func tailPort(shutdown <-chan struct{}) error {
	port, err := serial.Open(config.PortName, &serial.Mode{BaudRate: config.BaudRate})
	if err != nil {
		return err
	}
	defer port.Close()
	slog.Info("port opened", "port", config.PortName, "baud", config.BaudRate)

	buffer := make([]byte, 0, 4*protocol.Len())
	chunk := make([]byte, 64)
	for {
		select {
		case <-shutdown:
			return nil
		default:
		}

		n, err := port.Read(chunk)
		if err != nil {
			return err
		}
		buffer = append(buffer, chunk[:n]...)

		for len(buffer) >= protocol.Len() {
			if !protocol.IsEventAtStart(buffer) {
				buffer = buffer[1:]
				continue
			}
			event, ok := protocol.Unmarshal(buffer[:protocol.Len()])
			buffer = buffer[protocol.Len():]
			if !ok {
				slog.Warn("invalid event frame")
				continue
			}
			logEvent(event)
		}
	}
}

func logEvent(e protocol.Event) {
	switch e.Type {
	case protocol.EVENT_TYPE_CW:
		slog.Info("encoder step", "channel", e.Channel, "direction", "cw", "key", e.Value)
	case protocol.EVENT_TYPE_CCW:
		slog.Info("encoder step", "channel", e.Channel, "direction", "ccw", "key", e.Value)
	case protocol.EVENT_TYPE_PRESS:
		slog.Info("button press", "channel", e.Channel, "key", e.Value)
	case protocol.EVENT_TYPE_LINK_UP:
		slog.Info("link up")
	case protocol.EVENT_TYPE_LINK_DOWN:
		slog.Info("link down")
	case protocol.EVENT_TYPE_RETRY:
		slog.Info("retry window elapsed, relabeled to connecting")
	default:
		slog.Warn("unknown event", "event", e.String())
	}
}

func main() {
	logger := slog.New(prettyslog.NewPrettyslogHandler("keypad",
		prettyslog.WithLevel(slog.LevelDebug),
	))
	slog.SetDefault(logger)

	configFile := flag.String("config", "config.yaml", "Monitor config file")
	portName := flag.String("port", "", "Serial port name (e.g. /dev/ttyACM0 or COM3)")
	flag.Parse()

	loadConfig(*configFile)
	if *portName != "" {
		config.PortName = *portName
	}
	if config.PortName == "" {
		log.Fatal("No serial port specified. Use the -port flag or the config file.")
	}

	shutdown := make(chan struct{})
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		slog.Info("interrupt received, shutting down")
		close(shutdown)
	}()

	for {
		if !waitForDevice(shutdown) {
			return
		}
		err := tailPort(shutdown)
		if err == nil {
			return
		}
		if errors.Is(err, io.EOF) {
			slog.Info("port closed", "port", config.PortName)
		} else {
			slog.Warn("port error", "port", config.PortName, "err", err)
		}
		select {
		case <-shutdown:
			return
		case <-time.After(config.RetryPeriod):
		}
	}
}
