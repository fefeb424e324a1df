package runtime

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBufferedData_WriteFlipRead(t *testing.T) {
	t.Parallel()

	buf := Allocate(8)
	if buf.Capacity() != 8 || buf.Position() != 0 || buf.Limit() != 8 {
		t.Fatalf("fresh buffer state = (%d, %d, %d)", buf.Capacity(), buf.Position(), buf.Limit())
	}

	if _, err := buf.WriteBytes([]byte{1, 2, 3}); err != nil {
		t.Fatalf("WriteBytes() error = %v", err)
	}
	buf.Flip()
	if buf.Position() != 0 || buf.Limit() != 3 {
		t.Fatalf("after Flip() position = %d, limit = %d", buf.Position(), buf.Limit())
	}

	dst := make([]byte, 3)
	if _, err := buf.ReadBytes(dst); err != nil {
		t.Fatalf("ReadBytes() error = %v", err)
	}
	if diff := cmp.Diff([]byte{1, 2, 3}, dst); diff != "" {
		t.Errorf("read mismatch (-want +got):\n%s", diff)
	}
	if _, err := buf.ReadByte(); err != io.EOF {
		t.Errorf("ReadByte() past limit error = %v, want io.EOF", err)
	}
}

func TestBufferedData_WritePastLimit(t *testing.T) {
	t.Parallel()

	buf := Allocate(2)
	if _, err := buf.WriteBytes([]byte{1, 2, 3}); err != ErrOutOfBounds {
		t.Errorf("WriteBytes() overflow error = %v, want ErrOutOfBounds", err)
	}
	if buf.Position() != 0 {
		t.Errorf("failed write moved position to %d", buf.Position())
	}
	if err := buf.WriteByte(1); err != nil {
		t.Fatalf("WriteByte() error = %v", err)
	}
	if err := buf.WriteByte(2); err != nil {
		t.Fatalf("WriteByte() error = %v", err)
	}
	if err := buf.WriteByte(3); err != ErrOutOfBounds {
		t.Errorf("WriteByte() at limit error = %v, want ErrOutOfBounds", err)
	}
}

func TestBufferedData_SkipClamps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"negative", -3, 0},
		{"within", 2, 2},
		{"past remaining", 100, 5},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := WrapBuffer([]byte{1, 2, 3, 4, 5})
			if got := buf.Skip(tt.n); got != tt.want {
				t.Errorf("Skip(%d) = %d, want %d", tt.n, got, tt.want)
			}
		})
	}
}

func TestBufferedData_SetLimitClamps(t *testing.T) {
	t.Parallel()

	buf := WrapBuffer([]byte{1, 2, 3, 4, 5})
	buf.Skip(2)

	buf.SetLimit(100)
	if buf.Limit() != 5 {
		t.Errorf("SetLimit(100) → limit = %d, want 5", buf.Limit())
	}
	buf.SetLimit(1)
	if buf.Limit() != 2 {
		t.Errorf("SetLimit below position → limit = %d, want 2", buf.Limit())
	}
	buf.SetLimit(4)
	if buf.Remaining() != 2 {
		t.Errorf("Remaining() = %d, want 2", buf.Remaining())
	}
}

func TestBufferedData_ReadBytesShort(t *testing.T) {
	t.Parallel()

	buf := WrapBuffer([]byte{1, 2})
	dst := make([]byte, 4)
	if _, err := buf.ReadBytes(dst); err != io.ErrUnexpectedEOF {
		t.Errorf("ReadBytes() short error = %v, want io.ErrUnexpectedEOF", err)
	}
	if buf.Position() != 0 {
		t.Errorf("failed read moved position to %d", buf.Position())
	}
}

func TestBufferedData_DirectGetBytes(t *testing.T) {
	t.Parallel()

	buf := Allocate(8)
	if _, err := buf.WriteBytes([]byte{9, 8, 7, 6}); err != nil {
		t.Fatalf("WriteBytes() error = %v", err)
	}
	buf.Flip()

	dst := make([]byte, 2)
	n, err := buf.GetBytes(1, dst, 0, 2)
	if err != nil {
		t.Fatalf("GetBytes() error = %v", err)
	}
	if n != 2 || dst[0] != 8 || dst[1] != 7 {
		t.Errorf("GetBytes() = %d, dst = %v", n, dst)
	}
	if buf.Position() != 0 {
		t.Errorf("direct GetBytes moved position to %d", buf.Position())
	}
}
