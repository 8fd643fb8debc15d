package smartcube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"

	"github.com/SeamusWaldron/cubetrainer"
)

// Errors
var (
	ErrNotConnected     = errors.New("smartcube: not connected to device")
	ErrAlreadyConnected = errors.New("smartcube: already connected to a device")
	ErrDeviceNotFound   = errors.New("smartcube: device not found")
	ErrServiceNotFound  = errors.New("smartcube: GoCube service not found")
)

var (
	serviceUUID = mustParseUUID(ServiceUUID)
	txCharUUID  = mustParseUUID(TxCharUUID)
	rxCharUUID  = mustParseUUID(RxCharUUID)
)

func mustParseUUID(s string) bluetooth.UUID {
	u, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

// ScanResult is a discovered GoCube.
type ScanResult struct {
	Name    string
	Address bluetooth.Address
	RSSI    int16
}

// ID returns the address string used to reconnect to the device.
func (r ScanResult) ID() string {
	return r.Address.String()
}

// Client manages the BLE connection to a GoCube.
type Client struct {
	adapter *bluetooth.Adapter
	log     *logrus.Entry

	mu         sync.RWMutex
	device     bluetooth.Device
	rxChar     bluetooth.DeviceCharacteristic
	connected  bool
	deviceName string
	battery    int
	onMoves    func([]cubetrainer.Move)
}

// NewClient enables the default adapter. A nil log discards output.
func NewClient(log *logrus.Entry) (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}

	if log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		log = logrus.NewEntry(quiet)
	}

	return &Client{
		adapter: adapter,
		log:     log.WithField("component", "smartcube"),
		battery: -1,
	}, nil
}

// OnMoves sets the callback that receives the moves of every rotation
// notification. It runs on the BLE notification goroutine.
func (c *Client) OnMoves(cb func([]cubetrainer.Move)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMoves = cb
}

// Scan looks for GoCube devices until timeout or ctx is done.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var (
		mu      sync.Mutex
		results []ScanResult
		seen    = make(map[string]bool)
		done    = make(chan error, 1)
	)

	go func() {
		done <- c.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			name := result.LocalName()
			if !strings.HasPrefix(strings.ToLower(name), "gocube") {
				return
			}

			mu.Lock()
			defer mu.Unlock()
			addr := result.Address.String()
			if seen[addr] {
				return
			}
			seen[addr] = true
			results = append(results, ScanResult{Name: name, Address: result.Address, RSSI: result.RSSI})
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("failed to scan: %w", err)
		}
	}

	c.adapter.StopScan()

	mu.Lock()
	defer mu.Unlock()
	c.log.WithField("found", len(results)).Debug("scan finished")
	return results, nil
}

// ConnectFirst scans and connects to the first GoCube found.
func (c *Client) ConnectFirst(ctx context.Context, timeout time.Duration) (ScanResult, error) {
	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	found := make(chan ScanResult, 1)
	go func() {
		c.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			if strings.HasPrefix(strings.ToLower(result.LocalName()), "gocube") {
				select {
				case found <- ScanResult{Name: result.LocalName(), Address: result.Address, RSSI: result.RSSI}:
				default:
				}
			}
		})
	}()

	var target ScanResult
	select {
	case target = <-found:
		c.adapter.StopScan()
	case <-time.After(timeout):
		c.adapter.StopScan()
		return ScanResult{}, ErrDeviceNotFound
	case <-scanCtx.Done():
		c.adapter.StopScan()
		return ScanResult{}, scanCtx.Err()
	}

	return target, c.Connect(ctx, target)
}

// Connect connects to a device from a scan result and subscribes to its
// notifications.
func (c *Client) Connect(ctx context.Context, target ScanResult) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	device, err := c.adapter.Connect(target.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		device.Disconnect()
		return ErrServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var txChar, rxChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			txChar = ch
		case rxCharUUID:
			rxChar = ch
		}
	}

	if err := txChar.EnableNotifications(c.handleNotification); err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.rxChar = rxChar
	c.connected = true
	c.deviceName = target.Name
	c.mu.Unlock()

	c.log.WithField("device", target.Name).Info("connected")

	// Orientation notifications are not used; turn them off to keep the
	// notification stream to rotations.
	if err := c.SendCommand(CmdDisableOrientation); err != nil {
		c.log.WithError(err).Warn("failed to disable orientation")
	}
	if err := c.SendCommand(CmdRequestBattery); err != nil {
		c.log.WithError(err).Warn("failed to request battery")
	}

	return nil
}

// Disconnect disconnects from the current device.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""
	c.battery = -1
	c.log.Info("disconnected")

	return err
}

// IsConnected returns true if connected to a device.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// Battery returns the last known battery level (-1 if unknown).
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand sends a command to the cube.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}

	data := BuildCommand(cmd)
	// Write with response is not implemented on every platform.
	if _, err := c.rxChar.WriteWithoutResponse(data); err != nil {
		return fmt.Errorf("failed to send command 0x%02X: %w", cmd, err)
	}
	return nil
}

// ResetSolved tells the cube its current state is solved.
func (c *Client) ResetSolved() error {
	return c.SendCommand(CmdResetSolved)
}

// FlashBacklight flashes the cube backlight.
func (c *Client) FlashBacklight() error {
	return c.SendCommand(CmdFlashBacklight)
}

func (c *Client) handleNotification(data []byte) {
	moves, battery, err := decodeNotification(data)
	if err != nil {
		c.log.WithError(err).Debug("dropped notification")
		return
	}

	c.mu.Lock()
	if battery >= 0 {
		c.battery = battery
	}
	cb := c.onMoves
	c.mu.Unlock()

	if cb != nil && len(moves) > 0 {
		cb(moves)
	}
}

// decodeNotification returns the moves of a rotation frame or the level of
// a battery frame (-1 otherwise). Other frame types are ignored.
func decodeNotification(data []byte) ([]cubetrainer.Move, int, error) {
	msg, err := ParseMessage(data)
	if err != nil {
		return nil, -1, err
	}

	switch msg.Type {
	case MsgTypeRotation:
		moves, err := DecodeMoves(msg.Payload)
		return moves, -1, err
	case MsgTypeBattery:
		level, err := DecodeBattery(msg.Payload)
		if err != nil {
			return nil, -1, err
		}
		return nil, level, nil
	default:
		return nil, -1, nil
	}
}
