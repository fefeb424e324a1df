package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleProto = `syntax = "proto3";

package sample.test;

import "timestamp.proto";

option go_package = "github.com/example/sample";

// An account identifier.
//
// Composed of realm and number.
message AccountID {
    // The realm number
    int64 realm_num = 1;
    // The account number
    int64 account_num = 2;
}

/**
 * A transfer between two accounts.
 */
message Transfer {
    AccountID from = 1;
    AccountID to = 2 [deprecated = true];
    repeated int64 amounts = 3;
    optional string memo = 4;

    oneof proof {
        // Simple signature
        bytes signature = 5;
        SignatureList signature_list = 6;
    }

    reserved 7, 9 to 11;
    reserved "old_memo";

    message SignatureList {
        repeated bytes sigs = 1;
    }

    enum Status {
        UNKNOWN = 0;
        OK = 1;
        FAILED = 2 [deprecated = true];
    }
}

// Units of currency.
enum Unit {
    TINYBAR = 0;
    HBAR = 1;
}
`

func TestParse_SampleFile(t *testing.T) {
	t.Parallel()

	f, err := Parse("sample.proto", []byte(sampleProto))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if f.Syntax != "proto3" {
		t.Errorf("Syntax = %q", f.Syntax)
	}
	if f.Package != "sample.test" {
		t.Errorf("Package = %q", f.Package)
	}
	if diff := cmp.Diff([]string{"timestamp.proto"}, f.Imports); diff != "" {
		t.Errorf("Imports mismatch (-want +got):\n%s", diff)
	}
	if v, ok := f.Option("go_package"); !ok || v != "github.com/example/sample" {
		t.Errorf("go_package option = (%q, %v)", v, ok)
	}
	if len(f.Messages) != 2 || len(f.Enums) != 1 {
		t.Fatalf("top level: %d messages, %d enums", len(f.Messages), len(f.Enums))
	}
}

func TestParse_DocComments(t *testing.T) {
	t.Parallel()

	f, err := Parse("sample.proto", []byte(sampleProto))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	account := f.Messages[0]
	if want := "An account identifier.\n\nComposed of realm and number."; account.Doc != want {
		t.Errorf("AccountID doc = %q, want %q", account.Doc, want)
	}
	if account.Fields[0].Doc != "The realm number" {
		t.Errorf("realm_num doc = %q", account.Fields[0].Doc)
	}

	transfer := f.Messages[1]
	if want := "A transfer between two accounts."; transfer.Doc != want {
		t.Errorf("Transfer doc = %q, want %q", transfer.Doc, want)
	}
	if transfer.OneOfs[0].Fields[0].Doc != "Simple signature" {
		t.Errorf("signature doc = %q", transfer.OneOfs[0].Fields[0].Doc)
	}
}

func TestParse_Fields(t *testing.T) {
	t.Parallel()

	f, err := Parse("sample.proto", []byte(sampleProto))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	transfer := f.Messages[1]

	want := []Field{
		{Name: "from", Type: "AccountID", Number: 1},
		{Name: "to", Type: "AccountID", Number: 2, Options: []Option{{Name: "deprecated", Value: "true"}}},
		{Name: "amounts", Type: "int64", Number: 3, Repeated: true},
		{Name: "memo", Type: "string", Number: 4, Optional: true},
	}
	got := make([]Field, len(transfer.Fields))
	copy(got, transfer.Fields)
	for i := range got {
		got[i].Doc = ""
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if !transfer.Fields[1].Deprecated() {
		t.Error("field 'to' should be deprecated")
	}
}

func TestParse_OneOf(t *testing.T) {
	t.Parallel()

	f, err := Parse("sample.proto", []byte(sampleProto))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	transfer := f.Messages[1]

	if len(transfer.OneOfs) != 1 {
		t.Fatalf("OneOfs = %d, want 1", len(transfer.OneOfs))
	}
	proof := transfer.OneOfs[0]
	if proof.Name != "proof" {
		t.Errorf("oneof name = %q", proof.Name)
	}
	if len(proof.Fields) != 2 || proof.Fields[0].Name != "signature" || proof.Fields[1].Name != "signature_list" {
		t.Errorf("oneof fields = %+v", proof.Fields)
	}
	if proof.Fields[0].Number != 5 || proof.Fields[1].Number != 6 {
		t.Errorf("oneof numbers = %d, %d", proof.Fields[0].Number, proof.Fields[1].Number)
	}
}

func TestParse_NestedAndReserved(t *testing.T) {
	t.Parallel()

	f, err := Parse("sample.proto", []byte(sampleProto))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	transfer := f.Messages[1]

	if len(transfer.Messages) != 1 || transfer.Messages[0].Name != "SignatureList" {
		t.Errorf("nested messages = %+v", transfer.Messages)
	}
	if len(transfer.Enums) != 1 || transfer.Enums[0].Name != "Status" {
		t.Errorf("nested enums = %+v", transfer.Enums)
	}
	if diff := cmp.Diff([]ReservedRange{{Start: 7, End: 7}, {Start: 9, End: 11}}, transfer.ReservedRanges); diff != "" {
		t.Errorf("reserved ranges mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"old_memo"}, transfer.ReservedNames); diff != "" {
		t.Errorf("reserved names mismatch (-want +got):\n%s", diff)
	}

	status := transfer.Enums[0]
	if len(status.Values) != 3 || status.Values[0].Number != 0 {
		t.Fatalf("Status values = %+v", status.Values)
	}
	if !status.Values[2].Deprecated() {
		t.Error("FAILED should be deprecated")
	}
}

func TestParse_MapFieldRetained(t *testing.T) {
	t.Parallel()

	src := `syntax = "proto3";
message Ledger {
    map<string, int64> balances = 1;
}
`
	f, err := Parse("ledger.proto", []byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []MapField{{Name: "balances", KeyType: "string", ValueType: "int64", Number: 1}}
	if diff := cmp.Diff(want, f.Messages[0].MapFields); diff != "" {
		t.Errorf("map fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_UnknownElementWarns(t *testing.T) {
	t.Parallel()

	src := `syntax = "proto3";
service Greeter {
    rpc Hello (A) returns (B);
}
message A {}
message B {}
`
	f, err := Parse("svc.proto", []byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(f.Warnings) != 1 || !strings.Contains(f.Warnings[0], "service") {
		t.Errorf("Warnings = %v", f.Warnings)
	}
	if len(f.Messages) != 2 {
		t.Errorf("messages after skipped service = %d, want 2", len(f.Messages))
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "missing syntax",
			src:  `message A {}`,
			want: "expected 'proto3'",
		},
		{
			name: "proto2 syntax",
			src:  `syntax = "proto2";`,
			want: "syntax must be 'proto3'",
		},
		{
			name: "required label",
			src:  "syntax = \"proto3\";\nmessage A { required int32 x = 1; }",
			want: "proto2",
		},
		{
			name: "missing semicolon",
			src:  "syntax = \"proto3\";\nmessage A { int32 x = 1 }",
			want: "expected ';'",
		},
		{
			name: "unterminated message",
			src:  "syntax = \"proto3\";\nmessage A { int32 x = 1;",
			want: "unexpected end of file",
		},
		{
			name: "label inside oneof",
			src:  "syntax = \"proto3\";\nmessage A { oneof o { repeated int32 x = 1; } }",
			want: "not allowed on a oneof",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse("bad.proto", []byte(tt.src))
			if err == nil {
				t.Fatal("Parse() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestParse_ErrorLocation(t *testing.T) {
	t.Parallel()

	src := "syntax = \"proto3\";\nmessage A {\n    int32 x = 1\n}\n"
	_, err := Parse("loc.proto", []byte(src))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse() error = %T, want *ParseError", err)
	}
	if perr.Path != "loc.proto" {
		t.Errorf("Path = %q", perr.Path)
	}
	if perr.Line != 4 {
		t.Errorf("Line = %d, want 4", perr.Line)
	}
}

func TestMessage_DeclsPreserveOrder(t *testing.T) {
	t.Parallel()

	src := `syntax = "proto3";
message Mixed {
    int32 before = 1;
    oneof middle {
        string a = 2;
        bool b = 3;
    }
    int64 after = 4;
}
`
	f, err := Parse("mixed.proto", []byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	decls := f.Messages[0].Decls()
	if len(decls) != 3 {
		t.Fatalf("Decls() = %d entries, want 3", len(decls))
	}
	if decls[0].Field == nil || decls[0].Field.Name != "before" {
		t.Errorf("decl 0 = %+v, want field 'before'", decls[0])
	}
	if decls[1].OneOf == nil || decls[1].OneOf.Name != "middle" {
		t.Errorf("decl 1 = %+v, want oneof 'middle'", decls[1])
	}
	if decls[2].Field == nil || decls[2].Field.Name != "after" {
		t.Errorf("decl 2 = %+v, want field 'after'", decls[2])
	}
}
