package mem

import "fmt"

// A Storage keeps the data of the simulated system.
//
// The storage is managed in units, similar to pages. No memory is allocated
// for units that are never touched. Untouched bytes read as zero.
type Storage struct {
	unitSize uint64
	capacity uint64
	data     map[uint64][]byte
}

// NewStorage creates a storage object with the specified capacity.
func NewStorage(capacity uint64) *Storage {
	return NewStorageWithUnitSize(capacity, 4*KB)
}

// NewStorageWithUnitSize creates a storage object with the given capacity and
// allocation unit size.
func NewStorageWithUnitSize(capacity, unitSize uint64) *Storage {
	s := new(Storage)
	s.unitSize = unitSize
	s.capacity = capacity
	s.data = make(map[uint64][]byte)

	return s
}

// Capacity returns the number of bytes the storage can hold.
func (s *Storage) Capacity() uint64 {
	return s.capacity
}

func (s *Storage) accessMustBeInRange(address, length uint64) error {
	if address+length > s.capacity || address+length < address {
		return fmt.Errorf(
			"accessing [%#x, %#x) beyond the storage capacity %#x",
			address, address+length, s.capacity)
	}

	return nil
}

func (s *Storage) unit(baseAddr uint64) []byte {
	unit, ok := s.data[baseAddr]
	if !ok {
		unit = make([]byte, s.unitSize)
		s.data[baseAddr] = unit
	}

	return unit
}

func (s *Storage) parseAddress(addr uint64) (baseAddr, inUnitAddr uint64) {
	inUnitAddr = addr % s.unitSize
	baseAddr = addr - inUnitAddr

	return
}

// Read returns a copy of length bytes starting from the address.
func (s *Storage) Read(address uint64, length uint64) ([]byte, error) {
	if err := s.accessMustBeInRange(address, length); err != nil {
		return nil, err
	}

	res := make([]byte, length)
	offset := uint64(0)

	for offset < length {
		baseAddr, inUnitAddr := s.parseAddress(address + offset)
		n := min(length-offset, s.unitSize-inUnitAddr)

		if unit, ok := s.data[baseAddr]; ok {
			copy(res[offset:offset+n], unit[inUnitAddr:inUnitAddr+n])
		}

		offset += n
	}

	return res, nil
}

// Write copies the data into the storage starting from the address.
func (s *Storage) Write(address uint64, data []byte) error {
	length := uint64(len(data))
	if err := s.accessMustBeInRange(address, length); err != nil {
		return err
	}

	offset := uint64(0)

	for offset < length {
		baseAddr, inUnitAddr := s.parseAddress(address + offset)
		n := min(length-offset, s.unitSize-inUnitAddr)

		unit := s.unit(baseAddr)
		copy(unit[inUnitAddr:inUnitAddr+n], data[offset:offset+n])

		offset += n
	}

	return nil
}
