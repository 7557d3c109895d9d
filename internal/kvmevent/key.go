package kvmevent

// KeyCode is a closed enumeration of symbolic key names, ported from the
// mapping a rdev-style capture/synthesis library exposes for a standard
// US keyboard layout, plus KeyUnknown for anything outside that set.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyAlt
	KeyAltGr
	KeyBackspace
	KeyCapsLock
	KeyControlLeft
	KeyControlRight
	KeyDelete
	KeyDownArrow
	KeyEnd
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyHome
	KeyLeftArrow
	KeyMetaLeft
	KeyMetaRight
	KeyPageDown
	KeyPageUp
	KeyReturn
	KeyRightArrow
	KeyShiftLeft
	KeyShiftRight
	KeySpace
	KeyTab
	KeyUpArrow
	KeyPrintScreen
	KeyScrollLock
	KeyPause
	KeyNumLock
	KeyBackQuote
	KeyNum0
	KeyNum1
	KeyNum2
	KeyNum3
	KeyNum4
	KeyNum5
	KeyNum6
	KeyNum7
	KeyNum8
	KeyNum9
	KeyMinus
	KeyEqual
	KeyKeyQ
	KeyKeyW
	KeyKeyE
	KeyKeyR
	KeyKeyT
	KeyKeyY
	KeyKeyU
	KeyKeyI
	KeyKeyO
	KeyKeyP
	KeyKeyA
	KeyKeyS
	KeyKeyD
	KeyKeyF
	KeyKeyG
	KeyKeyH
	KeyKeyJ
	KeyKeyK
	KeyKeyL
	KeyKeyZ
	KeyKeyX
	KeyKeyC
	KeyKeyV
	KeyKeyB
	KeyKeyN
	KeyKeyM
	KeyLeftBracket
	KeyRightBracket
	KeySemiColon
	KeyQuote
	KeyBackSlash
	KeyIntlBackslash
	KeyComma
	KeyDot
	KeySlash
	KeyInsert
	KeyKpReturn
	KeyKpMinus
	KeyKpPlus
	KeyKpMultiply
	KeyKpDivide
	KeyKp0
	KeyKp1
	KeyKp2
	KeyKp3
	KeyKp4
	KeyKp5
	KeyKp6
	KeyKp7
	KeyKp8
	KeyKp9
	KeyKpDelete
	KeyFunction
)

var keyNames = map[KeyCode]string{
	KeyAlt:           "Alt",
	KeyAltGr:         "AltGr",
	KeyBackspace:     "Backspace",
	KeyCapsLock:      "CapsLock",
	KeyControlLeft:   "ControlLeft",
	KeyControlRight:  "ControlRight",
	KeyDelete:        "Delete",
	KeyDownArrow:     "DownArrow",
	KeyEnd:           "End",
	KeyEscape:        "Escape",
	KeyF1:            "F1",
	KeyF2:            "F2",
	KeyF3:            "F3",
	KeyF4:            "F4",
	KeyF5:            "F5",
	KeyF6:            "F6",
	KeyF7:            "F7",
	KeyF8:            "F8",
	KeyF9:            "F9",
	KeyF10:           "F10",
	KeyF11:           "F11",
	KeyF12:           "F12",
	KeyHome:          "Home",
	KeyLeftArrow:     "LeftArrow",
	KeyMetaLeft:      "MetaLeft",
	KeyMetaRight:     "MetaRight",
	KeyPageDown:      "PageDown",
	KeyPageUp:        "PageUp",
	KeyReturn:        "Return",
	KeyRightArrow:    "RightArrow",
	KeyShiftLeft:     "ShiftLeft",
	KeyShiftRight:    "ShiftRight",
	KeySpace:         "Space",
	KeyTab:           "Tab",
	KeyUpArrow:       "UpArrow",
	KeyPrintScreen:   "PrintScreen",
	KeyScrollLock:    "ScrollLock",
	KeyPause:         "Pause",
	KeyNumLock:       "NumLock",
	KeyBackQuote:     "BackQuote",
	KeyNum0:          "Num0",
	KeyNum1:          "Num1",
	KeyNum2:          "Num2",
	KeyNum3:          "Num3",
	KeyNum4:          "Num4",
	KeyNum5:          "Num5",
	KeyNum6:          "Num6",
	KeyNum7:          "Num7",
	KeyNum8:          "Num8",
	KeyNum9:          "Num9",
	KeyMinus:         "Minus",
	KeyEqual:         "Equal",
	KeyKeyQ:          "KeyQ",
	KeyKeyW:          "KeyW",
	KeyKeyE:          "KeyE",
	KeyKeyR:          "KeyR",
	KeyKeyT:          "KeyT",
	KeyKeyY:          "KeyY",
	KeyKeyU:          "KeyU",
	KeyKeyI:          "KeyI",
	KeyKeyO:          "KeyO",
	KeyKeyP:          "KeyP",
	KeyKeyA:          "KeyA",
	KeyKeyS:          "KeyS",
	KeyKeyD:          "KeyD",
	KeyKeyF:          "KeyF",
	KeyKeyG:          "KeyG",
	KeyKeyH:          "KeyH",
	KeyKeyJ:          "KeyJ",
	KeyKeyK:          "KeyK",
	KeyKeyL:          "KeyL",
	KeyKeyZ:          "KeyZ",
	KeyKeyX:          "KeyX",
	KeyKeyC:          "KeyC",
	KeyKeyV:          "KeyV",
	KeyKeyB:          "KeyB",
	KeyKeyN:          "KeyN",
	KeyKeyM:          "KeyM",
	KeyLeftBracket:   "LeftBracket",
	KeyRightBracket:  "RightBracket",
	KeySemiColon:     "SemiColon",
	KeyQuote:         "Quote",
	KeyBackSlash:     "BackSlash",
	KeyIntlBackslash: "IntlBackslash",
	KeyComma:         "Comma",
	KeyDot:           "Dot",
	KeySlash:         "Slash",
	KeyInsert:        "Insert",
	KeyKpReturn:      "KpReturn",
	KeyKpMinus:       "KpMinus",
	KeyKpPlus:        "KpPlus",
	KeyKpMultiply:    "KpMultiply",
	KeyKpDivide:      "KpDivide",
	KeyKp0:           "Kp0",
	KeyKp1:           "Kp1",
	KeyKp2:           "Kp2",
	KeyKp3:           "Kp3",
	KeyKp4:           "Kp4",
	KeyKp5:           "Kp5",
	KeyKp6:           "Kp6",
	KeyKp7:           "Kp7",
	KeyKp8:           "Kp8",
	KeyKp9:           "Kp9",
	KeyKpDelete:      "KpDelete",
	KeyFunction:      "Function",
}

var keyByName map[string]KeyCode

func init() {
	keyByName = make(map[string]KeyCode, len(keyNames))
	for code, name := range keyNames {
		keyByName[name] = code
	}
}

func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// KeyByName resolves a symbolic key name to its KeyCode, for config/CLI
// parsing and test fixtures. Returns KeyUnknown, false for unrecognized
// names.
func KeyByName(name string) (KeyCode, bool) {
	code, ok := keyByName[name]
	return code, ok
}
