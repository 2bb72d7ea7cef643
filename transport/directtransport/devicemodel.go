package directtransport

import "sync"

// A DeviceModel is the register file behind the loopback link. It stands in
// for the physical device: writes land in its registers, reads report them,
// and a reset returns them to the default pattern.
//
// Addresses can be programmed to fail, which makes the device answer
// transactions on them with a Nack.
type DeviceModel struct {
	mu sync.Mutex

	registers      []byte
	defaultPattern []byte
	failing        map[uint64]string
}

func newDeviceModel(size uint64, defaultPattern []byte) *DeviceModel {
	pattern := make([]byte, size)
	copy(pattern, defaultPattern)

	registers := make([]byte, size)
	copy(registers, pattern)

	return &DeviceModel{
		registers:      registers,
		defaultPattern: pattern,
		failing:        make(map[uint64]string),
	}
}

// FailAddress programs the device to answer transactions on the address
// with a Nack carrying the reason.
func (d *DeviceModel) FailAddress(address uint64, reason string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.failing[address] = reason
}

// HealAddress removes a programmed failure.
func (d *DeviceModel) HealAddress(address uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.failing, address)
}

// Register returns the current device value at the address.
func (d *DeviceModel) Register(address uint64) byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.registers[address]
}

func (d *DeviceModel) write(address uint64, bitmask, value byte) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if reason, ok := d.failReason(address); ok {
		return reason, false
	}

	d.registers[address] = d.registers[address]&^bitmask | value&bitmask

	return "", true
}

func (d *DeviceModel) read(address uint64) (byte, string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if reason, ok := d.failReason(address); ok {
		return 0, reason, false
	}

	return d.registers[address], "", true
}

func (d *DeviceModel) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	copy(d.registers, d.defaultPattern)
}

func (d *DeviceModel) failReason(address uint64) (string, bool) {
	if address >= uint64(len(d.registers)) {
		return "address out of range", true
	}

	reason, ok := d.failing[address]

	return reason, ok
}
