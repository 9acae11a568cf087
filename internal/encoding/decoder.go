package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/jobeland/hexastore/pkg/hexa"
	"github.com/jobeland/hexastore/pkg/store"
)

// DecodeTriple is the inverse of EncodeTriple.
// Any length overrunning the buffer, an unknown type tag, or an is_id byte
// outside {0, 1} fails with ErrCorruptTriple.
func (c *Codec) DecodeTriple(buf []byte) (*hexa.Triple, error) {
	subject, rest, err := readField(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: subject: %v", store.ErrCorruptTriple, err)
	}

	predicate, rest, err := readField(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: predicate: %v", store.ErrCorruptTriple, err)
	}

	isIDField, rest, err := readField(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: is_id: %v", store.ErrCorruptTriple, err)
	}
	if len(isIDField) != 1 || isIDField[0] > 1 {
		return nil, fmt.Errorf("%w: invalid is_id field", store.ErrCorruptTriple)
	}

	tagField, rest, err := readField(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: type tag: %v", store.ErrCorruptTriple, err)
	}
	if len(tagField) != 2 {
		return nil, fmt.Errorf("%w: type tag must be 2 bytes, got %d", store.ErrCorruptTriple, len(tagField))
	}
	tag := hexa.ValueType(binary.LittleEndian.Uint16(tagField))
	if !tag.IsValid() {
		return nil, fmt.Errorf("%w: unknown type tag %d", store.ErrCorruptTriple, tag)
	}

	object, rest, err := readField(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: object: %v", store.ErrCorruptTriple, err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", store.ErrCorruptTriple, len(rest))
	}

	return &hexa.Triple{
		Subject:   string(subject),
		Predicate: string(predicate),
		Object: hexa.Value{
			Raw:  string(object),
			Type: tag,
			IsID: isIDField[0] == 1,
		},
	}, nil
}

// readField consumes one 4-byte little-endian length prefix and the field
// bytes it announces
func readField(buf []byte) (field, rest []byte, err error) {
	if len(buf) < lenSize {
		return nil, nil, fmt.Errorf("truncated length prefix")
	}
	length := binary.LittleEndian.Uint32(buf[:lenSize])
	buf = buf[lenSize:]
	if uint32(len(buf)) < length {
		return nil, nil, fmt.Errorf("field length %d overruns buffer of %d", length, len(buf))
	}
	return buf[:length], buf[length:], nil
}
