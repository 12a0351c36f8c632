package clip

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "", want: KindAuto},
		{in: "auto", want: KindAuto},
		{in: " Native ", want: KindNative},
		{in: "exec", want: KindExec},
		{in: "none", want: KindNone},
		{in: "osc52", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseKind(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewNoneFailsWrites(t *testing.T) {
	b, err := New(KindNone)
	if err != nil {
		t.Fatal(err)
	}
	if b.Name() != "headless (unavailable)" {
		t.Fatalf("Name = %q", b.Name())
	}
	if err := b.Write("hello"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Write err = %v, want ErrUnavailable", err)
	}
}

func TestNewUnknownKind(t *testing.T) {
	if _, err := New(Kind("bogus")); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestNewAutoAlwaysReturnsBackend(t *testing.T) {
	b, err := New(KindAuto)
	if err != nil {
		t.Fatalf("auto: %v", err)
	}
	if b == nil || b.Name() == "" {
		t.Fatal("auto returned no usable backend")
	}
}

func TestAutoOrder(t *testing.T) {
	tests := []struct {
		goos string
		want []Kind
	}{
		{goos: "linux", want: []Kind{KindExec, KindNative}},
		{goos: "darwin", want: []Kind{KindNative, KindExec}},
		{goos: "windows", want: []Kind{KindNative, KindExec}},
		{goos: "freebsd", want: []Kind{KindNative, KindExec}},
	}
	for _, tt := range tests {
		if got := autoOrder(tt.goos); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("autoOrder(%q) = %v, want %v", tt.goos, got, tt.want)
		}
	}
}
