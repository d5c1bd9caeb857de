package encoding

import (
	"testing"
	"unicode/utf8"
)

func TestDecodeBestEffort(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "empty", data: nil, want: ""},
		{name: "ascii", data: []byte("plain template"), want: "plain template"},
		{name: "utf8", data: []byte("шаблон BRD — サンプル"), want: "шаблон BRD — サンプル"},
		{name: "latin1 byte", data: []byte{'c', 'a', 'f', 0xE9}, want: "café"},
		{name: "latin1 word", data: []byte{0xDC, 'b', 'e', 'r', 's', 'i', 'c', 'h', 't'}, want: "Übersicht"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeBestEffort(tt.data); got != tt.want {
				t.Errorf("DecodeBestEffort(%v) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}

// Лестница декодеров не имеет отказа: любой байтовый вход дает
// корректную UTF-8 строку
func TestDecodeBestEffortNeverFails(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	got := DecodeBestEffort(data)
	if got == "" {
		t.Fatal("expected non-empty result")
	}
	if !utf8.ValidString(got) {
		t.Errorf("result is not valid UTF-8")
	}
}
