package token

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

const recordVersionV1 = 1

// ErrRecordCorrupt is an exported constant or variable used by the token engine.
var ErrRecordCorrupt = errors.New("token record corrupt")

// The refresh value is encoded first, with a single-byte length, so the
// Redis claim script can extract it without decoding the full record.
func encodeRecord(record *Record) ([]byte, error) {
	if len(record.RefreshValue) > 255 {
		return nil, errors.New("token record refresh value too long")
	}
	if len(record.Roles) > 255 {
		return nil, errors.New("token record has too many roles")
	}

	var buf bytes.Buffer

	buf.WriteByte(recordVersionV1)
	buf.WriteByte(byte(len(record.RefreshValue)))
	buf.WriteString(record.RefreshValue)

	for _, field := range []string{record.ID, record.UserID, record.Subject, record.Email, record.Nickname} {
		if err := writeString(&buf, field); err != nil {
			return nil, err
		}
	}

	buf.WriteByte(byte(len(record.Roles)))
	for _, role := range record.Roles {
		if err := writeString(&buf, role); err != nil {
			return nil, err
		}
	}

	for _, ts := range []int64{record.IssuedAt, record.ExpiresAt, record.CreatedAt, record.UpdatedAt} {
		if err := binary.Write(&buf, binary.BigEndian, ts); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func decodeRecord(data []byte) (*Record, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, ErrRecordCorrupt
	}
	if version != recordVersionV1 {
		return nil, ErrRecordCorrupt
	}

	rvLen, err := reader.ReadByte()
	if err != nil {
		return nil, ErrRecordCorrupt
	}
	rv := make([]byte, rvLen)
	if _, err := io.ReadFull(reader, rv); err != nil {
		return nil, ErrRecordCorrupt
	}

	record := &Record{RefreshValue: string(rv)}

	fields := []*string{&record.ID, &record.UserID, &record.Subject, &record.Email, &record.Nickname}
	for _, field := range fields {
		value, err := readString(reader)
		if err != nil {
			return nil, ErrRecordCorrupt
		}
		*field = value
	}

	roleCount, err := reader.ReadByte()
	if err != nil {
		return nil, ErrRecordCorrupt
	}
	if roleCount > 0 {
		record.Roles = make([]string, 0, roleCount)
		for i := 0; i < int(roleCount); i++ {
			role, err := readString(reader)
			if err != nil {
				return nil, ErrRecordCorrupt
			}
			record.Roles = append(record.Roles, role)
		}
	}

	timestamps := []*int64{&record.IssuedAt, &record.ExpiresAt, &record.CreatedAt, &record.UpdatedAt}
	for _, ts := range timestamps {
		if err := binary.Read(reader, binary.BigEndian, ts); err != nil {
			return nil, ErrRecordCorrupt
		}
	}

	return record, nil
}

func writeString(buf *bytes.Buffer, value string) error {
	if len(value) > 65535 {
		return errors.New("token record field too long")
	}
	if err := binary.Write(buf, binary.BigEndian, uint16(len(value))); err != nil {
		return err
	}
	buf.WriteString(value)
	return nil
}

func readString(reader *bytes.Reader) (string, error) {
	var length uint16
	if err := binary.Read(reader, binary.BigEndian, &length); err != nil {
		return "", err
	}
	raw := make([]byte, length)
	if _, err := io.ReadFull(reader, raw); err != nil {
		return "", err
	}
	return string(raw), nil
}
