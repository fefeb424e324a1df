package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/protorec/protorec/parser"
)

func parseOne(t *testing.T, src string) *parser.File {
	t.Helper()
	pf, err := parser.Parse("test.proto", []byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return pf
}

func buildOne(t *testing.T, src string) *File {
	t.Helper()
	f, err := BuildFile(parseOne(t, src), "test")
	if err != nil {
		t.Fatalf("BuildFile() error = %v", err)
	}
	return f
}

func TestBuildFile_ScalarsAndFlags(t *testing.T) {
	t.Parallel()

	f := buildOne(t, `syntax = "proto3";
package demo;
option go_package = "github.com/example/demo";

message Item {
    int32 count = 1;
    sint64 delta = 2;
    repeated fixed32 checksums = 3;
    string label = 4 [deprecated = true];
    bytes payload = 5;
}
`)

	if f.Package != "demo" || f.PackageOverride != "github.com/example/demo" || f.Bucket != "test" {
		t.Errorf("file = %+v", f)
	}

	item := f.Messages[0]
	want := []struct {
		name     string
		typ      FieldType
		repeated bool
		dep      bool
	}{
		{"count", TypeInt32, false, false},
		{"delta", TypeSint64, false, false},
		{"checksums", TypeFixed32, true, false},
		{"label", TypeString, false, true},
		{"payload", TypeBytes, false, false},
	}
	if len(item.Fields) != len(want) {
		t.Fatalf("fields = %d, want %d", len(item.Fields), len(want))
	}
	for i, w := range want {
		sf := item.Fields[i].(*SingleField)
		if sf.Name() != w.name || sf.Type != w.typ || sf.Repeated != w.repeated || sf.Deprecated() != w.dep {
			t.Errorf("field %d = %s %v repeated=%v deprecated=%v, want %+v", i, sf.Name(), sf.Type, sf.Repeated, sf.Deprecated(), w)
		}
	}
}

func TestBuildFile_WrapperOptionals(t *testing.T) {
	t.Parallel()

	f := buildOne(t, `syntax = "proto3";
message Account {
    google.protobuf.StringValue alias = 1;
    google.protobuf.Int64Value balance = 2;
    UInt32Value nonce = 3;
    optional bool active = 4;
}
`)

	account := f.Messages[0]
	checks := []struct {
		name string
		typ  FieldType
	}{
		{"alias", TypeString},
		{"balance", TypeInt64},
		{"nonce", TypeUint32},
		{"active", TypeBool},
	}
	for i, c := range checks {
		sf := account.Fields[i].(*SingleField)
		if sf.Type != c.typ {
			t.Errorf("%s type = %v, want %v", c.name, sf.Type, c.typ)
		}
		if !sf.Optional {
			t.Errorf("%s should be optional", c.name)
		}
		if sf.MessageType != "" {
			t.Errorf("%s kept message reference %q, wrappers must drop it", c.name, sf.MessageType)
		}
	}
}

func TestBuildFile_OneOf(t *testing.T) {
	t.Parallel()

	f := buildOne(t, `syntax = "proto3";
message Key {
    oneof key {
        bytes ed25519 = 1;
        google.protobuf.StringValue alias_key = 2;
        ThresholdKey threshold_key = 3;
    }
}
message ThresholdKey {
    uint32 threshold = 1;
}
`)

	key := f.Messages[0]
	of, ok := key.Fields[0].(*OneOfField)
	if !ok {
		t.Fatalf("field 0 is %T, want *OneOfField", key.Fields[0])
	}
	if of.EnumName() != "KeyOneOfType" {
		t.Errorf("EnumName() = %q", of.EnumName())
	}
	if len(of.Fields) != 3 {
		t.Fatalf("children = %d, want 3", len(of.Fields))
	}
	for _, child := range of.Fields {
		if child.Parent != of {
			t.Errorf("child %s parent pointer not set", child.Name())
		}
	}
	if of.Fields[0].UpperSnakeName() != "ED25519" {
		t.Errorf("UpperSnakeName = %q", of.Fields[0].UpperSnakeName())
	}
	if of.Fields[1].UpperSnakeName() != "ALIAS_KEY" {
		t.Errorf("UpperSnakeName = %q", of.Fields[1].UpperSnakeName())
	}
	if !of.Fields[1].Optional || of.Fields[1].Type != TypeString {
		t.Errorf("wrapper child = %+v", of.Fields[1])
	}
}

func TestBuildFile_MapRejected(t *testing.T) {
	t.Parallel()

	_, err := BuildFile(parseOne(t, `syntax = "proto3";
message Ledger {
    map<string, int64> balances = 1;
}
`), "test")
	var mapErr *UnsupportedMapError
	if !errors.As(err, &mapErr) {
		t.Fatalf("BuildFile() error = %v, want *UnsupportedMapError", err)
	}
	if !strings.Contains(err.Error(), "map fields are not supported") {
		t.Errorf("error text = %q", err.Error())
	}
}

func TestBuildFile_DuplicateFieldNumber(t *testing.T) {
	t.Parallel()

	_, err := BuildFile(parseOne(t, `syntax = "proto3";
message Pair {
    int32 a = 1;
    oneof choice {
        string b = 1;
    }
}
`), "test")
	var schemaErr *InvalidSchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("BuildFile() error = %v, want *InvalidSchemaError", err)
	}
}

func TestBuildFile_EnumRequiresZero(t *testing.T) {
	t.Parallel()

	_, err := BuildFile(parseOne(t, `syntax = "proto3";
enum Broken {
    ONE = 1;
}
`), "test")
	if err == nil || !strings.Contains(err.Error(), "0") {
		t.Fatalf("BuildFile() error = %v, want missing-zero error", err)
	}
}

func TestBuildFile_DeprecatedMessage(t *testing.T) {
	t.Parallel()

	f := buildOne(t, `syntax = "proto3";
message Old {
    option deprecated = true;
    int32 x = 1;
}
`)
	if !f.Messages[0].Deprecated {
		t.Error("message should be deprecated")
	}
}
