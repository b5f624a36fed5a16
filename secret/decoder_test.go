package secret

import "testing"

func TestStrategiesOrder(t *testing.T) {
	strategies := Strategies()
	want := []string{"base64", "base64-raw", "base64-url", "base64-url-raw"}

	if len(strategies) != len(want) {
		t.Fatalf("Strategies() returned %d decoders, want %d", len(strategies), len(want))
	}
	for i, name := range want {
		if strategies[i].Name() != name {
			t.Fatalf("strategy %d = %q, want %q", i, strategies[i].Name(), name)
		}
	}
}

func TestStrategiesDecode(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		want     string
		strategy string
	}{
		{name: "standard padded", value: "aGVsbG8=", want: "hello", strategy: "base64"},
		{name: "unpadded", value: "aGVsbG8", want: "hello", strategy: "base64-raw"},
		{name: "url safe", value: "_v7-_g==", want: "\xfe\xfe\xfe\xfe", strategy: "base64-url"},
		{name: "url safe unpadded", value: "_v7-_g", want: "\xfe\xfe\xfe\xfe", strategy: "base64-url-raw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, d := range Strategies() {
				got, err := d.Decode(tt.value)
				if err != nil {
					continue
				}
				if string(got) != tt.want {
					t.Fatalf("%s decoded %q to %q, want %q", d.Name(), tt.value, got, tt.want)
				}
				if d.Name() != tt.strategy {
					t.Fatalf("first successful strategy = %q, want %q", d.Name(), tt.strategy)
				}
				return
			}
			t.Fatalf("no strategy decoded %q", tt.value)
		})
	}
}

func TestStrategiesRejectGarbage(t *testing.T) {
	for _, d := range Strategies() {
		if _, err := d.Decode("!!!not-base64!!!"); err == nil {
			t.Fatalf("%s accepted garbage input", d.Name())
		}
	}
}
