package session

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// CurrentSchemaVersion is the encoding written by Encode.
const CurrentSchemaVersion uint8 = 1

var errTruncated = errors.New("truncated session blob")

// Encode serializes r using the current schema version. Strings carry a uvarint length
// prefix and the role id is a varint, so any identity the gateway accepts fits.
func Encode(r *Record) ([]byte, error) {
	if r == nil {
		return nil, errors.New("nil session record")
	}

	buf := make([]byte, 0, 64+len(r.Username)+len(r.RoleName)+len(r.FullName)+len(r.EmployeeCode)+len(r.Email))
	buf = append(buf, CurrentSchemaVersion)
	for _, field := range []string{r.Username, r.RoleName, r.FullName, r.EmployeeCode, r.Email} {
		buf = binary.AppendUvarint(buf, uint64(len(field)))
		buf = append(buf, field...)
	}
	buf = binary.AppendVarint(buf, int64(r.RoleID))
	buf = binary.BigEndian.AppendUint64(buf, uint64(r.CreatedAt))
	buf = binary.BigEndian.AppendUint64(buf, uint64(r.ExpiresAt))
	return buf, nil
}

// Decode parses a blob written by Encode.
func Decode(data []byte) (*Record, error) {
	if len(data) == 0 {
		return nil, errTruncated
	}
	if data[0] != CurrentSchemaVersion {
		return nil, fmt.Errorf("unsupported session schema version %d", data[0])
	}
	d := decoder{buf: data[1:]}

	r := &Record{SchemaVersion: data[0]}
	for _, field := range []*string{&r.Username, &r.RoleName, &r.FullName, &r.EmployeeCode, &r.Email} {
		*field = d.string()
	}
	roleID := d.varint()
	r.CreatedAt = d.int64()
	r.ExpiresAt = d.int64()
	if d.err != nil {
		return nil, d.err
	}
	if len(d.buf) != 0 {
		return nil, errors.New("trailing bytes in session blob")
	}
	if int64(int(roleID)) != roleID {
		return nil, fmt.Errorf("role id %d out of range", roleID)
	}
	r.RoleID = int(roleID)

	return r, nil
}

// decoder consumes buf front to back and keeps the first error.
type decoder struct {
	buf []byte
	err error
}

func (d *decoder) string() string {
	if d.err != nil {
		return ""
	}
	n, size := binary.Uvarint(d.buf)
	if size <= 0 || n > uint64(len(d.buf)-size) {
		d.err = errTruncated
		return ""
	}
	s := string(d.buf[size : size+int(n)])
	d.buf = d.buf[size+int(n):]
	return s
}

func (d *decoder) varint() int64 {
	if d.err != nil {
		return 0
	}
	v, size := binary.Varint(d.buf)
	if size <= 0 {
		d.err = errTruncated
		return 0
	}
	d.buf = d.buf[size:]
	return v
}

func (d *decoder) int64() int64 {
	if d.err != nil {
		return 0
	}
	if len(d.buf) < 8 {
		d.err = errTruncated
		return 0
	}
	v := int64(binary.BigEndian.Uint64(d.buf))
	d.buf = d.buf[8:]
	return v
}
