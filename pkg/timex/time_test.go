package timex

import (
	"testing"
	"time"
)

func TestTime_UnixMethods(t *testing.T) {
	// Create a fixed time
	// 创建一个固定时间
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tt := Time(now)

	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() = %v, want %v", tt.Unix(), now.Unix())
	}

	if tt.UnixMilli() != now.UnixMilli() {
		t.Errorf("UnixMilli() = %v, want %v", tt.UnixMilli(), now.UnixMilli())
	}

	if tt.UnixNano() != now.UnixNano() {
		t.Errorf("UnixNano() = %v, want %v", tt.UnixNano(), now.UnixNano())
	}
}

func TestTime_JSONRoundTrip(t *testing.T) {
	orig := Time(time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local))

	data, err := orig.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2024-03-15 09:30:00"` {
		t.Errorf("MarshalJSON() = %s", data)
	}

	var back Time
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatal(err)
	}
	if !back.Time().Equal(orig.Time()) {
		t.Errorf("round trip mismatch: got %v, want %v", back, orig)
	}
}

func TestTime_ZeroValue(t *testing.T) {
	var zero Time

	data, err := zero.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `""` {
		t.Errorf("zero MarshalJSON() = %s, want \"\"", data)
	}

	v, err := zero.Value()
	if err != nil {
		t.Fatal(err)
	}
	if v != nil {
		t.Errorf("zero Value() = %v, want nil", v)
	}
}
