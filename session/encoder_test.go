package session

import (
	"math"
	"strings"
	"testing"
)

func TestEncodeDecodeCurrent(t *testing.T) {
	in := &Record{
		Username:     "mlopez",
		RoleID:       4,
		RoleName:     "SUPERVISOR",
		FullName:     "María López",
		EmployeeCode: "EMP-0042",
		Email:        "mlopez@almapac.test",
		CreatedAt:    1700000000,
		ExpiresAt:    1700028800,
	}
	data, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if data[0] != CurrentSchemaVersion {
		t.Fatalf("expected version byte %d, got %d", CurrentSchemaVersion, data[0])
	}

	out, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	in.SchemaVersion = CurrentSchemaVersion
	if *out != *in {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestEncodeAcceptsLongFieldsAndLargeRoleIDs(t *testing.T) {
	cases := []*Record{
		{Username: "jperez", RoleID: 1, FullName: strings.Repeat("a", 256)},
		{Username: strings.Repeat("u", 70000), RoleID: 1, Email: strings.Repeat("e", 300) + "@almapac.test"},
		{Username: "jperez", RoleID: 70000},
		{Username: "jperez", RoleID: math.MaxInt32},
	}
	for _, in := range cases {
		data, err := Encode(in)
		if err != nil {
			t.Fatalf("encode role %d: %v", in.RoleID, err)
		}
		out, err := Decode(data)
		if err != nil {
			t.Fatalf("decode role %d: %v", in.RoleID, err)
		}
		in.SchemaVersion = CurrentSchemaVersion
		if *out != *in {
			t.Fatalf("round trip mismatch for role %d", in.RoleID)
		}
	}
}

func TestDecodeRejectsUnsupportedSchemaVersion(t *testing.T) {
	_, err := Decode([]byte{99})
	if err == nil || !strings.Contains(err.Error(), "unsupported session schema version") {
		t.Fatalf("expected unsupported schema version error, got %v", err)
	}
}

func TestDecodeRejectsTruncatedAndTrailing(t *testing.T) {
	data, err := Encode(&Record{Username: "u", RoleID: 1, CreatedAt: 1, ExpiresAt: 2})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode(data[:len(data)-3]); err == nil {
		t.Fatal("expected truncated blob to fail")
	}
	if _, err := Decode(append(append([]byte{}, data...), 0x00)); err == nil {
		t.Fatal("expected trailing byte to fail")
	}
	if _, err := Decode(nil); err == nil {
		t.Fatal("expected empty blob to fail")
	}
}

func TestDecodeRejectsOversizedLengthPrefix(t *testing.T) {
	blob := []byte{CurrentSchemaVersion, 0xff, 0xff, 0xff, 0xff, 0x0f, 'a'}
	if _, err := Decode(blob); err == nil {
		t.Fatal("expected length prefix past the end to fail")
	}
}
