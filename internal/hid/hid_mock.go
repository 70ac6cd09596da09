package hid

import (
	"fmt"
	"time"
)

// MockDevice is a scripted Device for tests. Writes and feature sends are
// recorded in order; reads pop pre-queued responses.
type MockDevice struct {
	Writes   [][]byte
	Features [][]byte

	ReadQueue    [][]byte
	FeatureQueue [][]byte

	WriteErr   error
	ReadErr    error
	FeatureErr error

	Closed     bool
	CloseCount int
}

func (m *MockDevice) Write(p []byte) (int, error) {
	if m.WriteErr != nil {
		return 0, m.WriteErr
	}
	buf := make([]byte, len(p))
	copy(buf, p)
	m.Writes = append(m.Writes, buf)
	return len(p), nil
}

func (m *MockDevice) Read(p []byte) (int, error) {
	if m.ReadErr != nil {
		return 0, m.ReadErr
	}
	if len(m.ReadQueue) == 0 {
		return 0, nil
	}
	buf := m.ReadQueue[0]
	m.ReadQueue = m.ReadQueue[1:]
	return copy(p, buf), nil
}

func (m *MockDevice) ReadWithTimeout(p []byte, _ time.Duration) (int, error) {
	return m.Read(p)
}

func (m *MockDevice) SendFeatureReport(p []byte) (int, error) {
	if m.FeatureErr != nil {
		return 0, m.FeatureErr
	}
	buf := make([]byte, len(p))
	copy(buf, p)
	m.Features = append(m.Features, buf)
	return len(p), nil
}

func (m *MockDevice) GetFeatureReport(p []byte) (int, error) {
	if m.FeatureErr != nil {
		return 0, m.FeatureErr
	}
	if len(m.FeatureQueue) == 0 {
		return 0, nil
	}
	buf := m.FeatureQueue[0]
	m.FeatureQueue = m.FeatureQueue[1:]
	return copy(p, buf), nil
}

func (m *MockDevice) Close() error {
	m.Closed = true
	m.CloseCount++
	return nil
}

// QueueRead appends a response for the next Read call.
func (m *MockDevice) QueueRead(p []byte) {
	buf := make([]byte, len(p))
	copy(buf, p)
	m.ReadQueue = append(m.ReadQueue, buf)
}

// QueueFeature appends a response for the next GetFeatureReport call.
func (m *MockDevice) QueueFeature(p []byte) {
	buf := make([]byte, len(p))
	copy(buf, p)
	m.FeatureQueue = append(m.FeatureQueue, buf)
}

// MockManager is a Manager over a fixed set of endpoints. Open hands out one
// MockDevice per path so tests can script and inspect each endpoint.
type MockManager struct {
	Infos   []Info
	Handles map[string]*MockDevice
	Opens   []string

	FindErr error
	OpenErr error
}

func NewMockManager(infos ...Info) *MockManager {
	return &MockManager{
		Infos:   infos,
		Handles: make(map[string]*MockDevice),
	}
}

func (m *MockManager) List() ([]Info, error) {
	return m.Infos, nil
}

func (m *MockManager) Find(sel Selector) (Info, error) {
	if m.FindErr != nil {
		return Info{}, m.FindErr
	}
	for _, i := range m.Infos {
		if sel.Matches(i) {
			return i, nil
		}
	}
	return Info{}, fmt.Errorf("no HID endpoint for %04x:%04x interface %d",
		sel.VendorID, sel.ProductID, sel.Interface)
}

func (m *MockManager) Open(info Info) (Device, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	m.Opens = append(m.Opens, info.Path)
	return m.Device(info.Path), nil
}

// Device returns the MockDevice for path, creating it on first use.
func (m *MockManager) Device(path string) *MockDevice {
	if d, ok := m.Handles[path]; ok {
		return d
	}
	d := &MockDevice{}
	m.Handles[path] = d
	return d
}
