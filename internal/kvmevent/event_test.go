package kvmevent

import "testing"

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindPointerMove: "PointerMove",
		KindButton:      "Button",
		KindKey:         "Key",
		KindWheel:       "Wheel",
		Kind(99):        "Unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestButtonString(t *testing.T) {
	if got := (Button{Name: ButtonLeft}).String(); got != "Left" {
		t.Errorf("ButtonLeft.String() = %q", got)
	}
	if got := (Button{Name: ButtonOther, Code: 7}).String(); got != "Other(7)" {
		t.Errorf("ButtonOther.String() = %q, want Other(7)", got)
	}
}

func TestNewPointerMove(t *testing.T) {
	e := NewPointerMove(12.5, -3.25)
	if e.Kind != KindPointerMove || e.X != 12.5 || e.Y != -3.25 {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestNewButton(t *testing.T) {
	e := NewButton(Button{Name: ButtonRight}, true)
	if e.Kind != KindButton || e.Btn.Name != ButtonRight || !e.Pressed {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestNewKey(t *testing.T) {
	e := NewKey(KeyEscape, false)
	if e.Kind != KindKey || e.Code != KeyEscape || e.Pressed {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestNewWheel(t *testing.T) {
	e := NewWheel(1, -2)
	if e.Kind != KindWheel || e.DX != 1 || e.DY != -2 {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestEventString(t *testing.T) {
	cases := []struct {
		e    Event
		want string
	}{
		{NewPointerMove(1, 2), "PointerMove(1.0,2.0)"},
		{NewButton(Button{Name: ButtonLeft}, true), "Button(Left,pressed=true)"},
		{NewKey(KeyReturn, true), "Key(Return,pressed=true)"},
		{NewWheel(3, -4), "Wheel(3,-4)"},
	}
	for _, c := range cases {
		if got := c.e.String(); got != c.want {
			t.Errorf("Event.String() = %q, want %q", got, c.want)
		}
	}
}
