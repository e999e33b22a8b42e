// Package keycode maps Android key code names to their numeric values for
// key injection on the remote control channel.
package keycode

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownKey indicates a key name with no known code.
var ErrUnknownKey = errors.New("unknown key code")

// codes maps key names (without the KEYCODE_ prefix) to Android key codes.
// Values follow android.view.KeyEvent.
var codes = map[string]int32{
	"UNKNOWN":                0,
	"SOFT_LEFT":              1,
	"SOFT_RIGHT":             2,
	"HOME":                   3,
	"BACK":                   4,
	"CALL":                   5,
	"ENDCALL":                6,
	"0":                      7,
	"1":                      8,
	"2":                      9,
	"3":                      10,
	"4":                      11,
	"5":                      12,
	"6":                      13,
	"7":                      14,
	"8":                      15,
	"9":                      16,
	"STAR":                   17,
	"POUND":                  18,
	"DPAD_UP":                19,
	"DPAD_DOWN":              20,
	"DPAD_LEFT":              21,
	"DPAD_RIGHT":             22,
	"DPAD_CENTER":            23,
	"VOLUME_UP":              24,
	"VOLUME_DOWN":            25,
	"POWER":                  26,
	"CAMERA":                 27,
	"CLEAR":                  28,
	"A":                      29,
	"B":                      30,
	"C":                      31,
	"D":                      32,
	"E":                      33,
	"F":                      34,
	"G":                      35,
	"H":                      36,
	"I":                      37,
	"J":                      38,
	"K":                      39,
	"L":                      40,
	"M":                      41,
	"N":                      42,
	"O":                      43,
	"P":                      44,
	"Q":                      45,
	"R":                      46,
	"S":                      47,
	"T":                      48,
	"U":                      49,
	"V":                      50,
	"W":                      51,
	"X":                      52,
	"Y":                      53,
	"Z":                      54,
	"COMMA":                  55,
	"PERIOD":                 56,
	"TAB":                    61,
	"SPACE":                  62,
	"ENTER":                  66,
	"DEL":                    67,
	"GRAVE":                  68,
	"MINUS":                  69,
	"EQUALS":                 70,
	"MENU":                   82,
	"SEARCH":                 84,
	"MEDIA_PLAY_PAUSE":       85,
	"MEDIA_STOP":             86,
	"MEDIA_NEXT":             87,
	"MEDIA_PREVIOUS":         88,
	"MEDIA_REWIND":           89,
	"MEDIA_FAST_FORWARD":     90,
	"MUTE":                   91,
	"PAGE_UP":                92,
	"PAGE_DOWN":              93,
	"ESCAPE":                 111,
	"FORWARD_DEL":            112,
	"CAPS_LOCK":              115,
	"MOVE_HOME":              122,
	"MOVE_END":               123,
	"INSERT":                 124,
	"MEDIA_PLAY":             126,
	"MEDIA_PAUSE":            127,
	"MEDIA_CLOSE":            128,
	"MEDIA_EJECT":            129,
	"MEDIA_RECORD":           130,
	"VOLUME_MUTE":            164,
	"INFO":                   165,
	"CHANNEL_UP":             166,
	"CHANNEL_DOWN":           167,
	"ZOOM_IN":                168,
	"ZOOM_OUT":               169,
	"TV":                     170,
	"WINDOW":                 171,
	"GUIDE":                  172,
	"DVR":                    173,
	"BOOKMARK":               174,
	"CAPTIONS":               175,
	"SETTINGS":               176,
	"TV_POWER":               177,
	"TV_INPUT":               178,
	"STB_POWER":              179,
	"STB_INPUT":              180,
	"AVR_POWER":              181,
	"AVR_INPUT":              182,
	"PROG_RED":               183,
	"PROG_GREEN":             184,
	"PROG_YELLOW":            185,
	"PROG_BLUE":              186,
	"APP_SWITCH":             187,
	"LAST_CHANNEL":           229,
	"TV_DATA_SERVICE":        230,
	"VOICE_ASSIST":           231,
	"TV_RADIO_SERVICE":       232,
	"TV_TELETEXT":            233,
	"TV_NUMBER_ENTRY":        234,
	"TV_TERRESTRIAL_ANALOG":  235,
	"TV_TERRESTRIAL_DIGITAL": 236,
	"TV_SATELLITE":           237,
	"TV_INPUT_HDMI_1":        243,
	"TV_INPUT_HDMI_2":        244,
	"TV_INPUT_HDMI_3":        245,
	"TV_INPUT_HDMI_4":        246,
	"TV_INPUT_COMPOSITE_1":   247,
	"TV_INPUT_COMPOSITE_2":   248,
	"TV_INPUT_COMPONENT_1":   249,
	"TV_INPUT_COMPONENT_2":   250,
	"TV_INPUT_VGA_1":         251,
	"TV_AUDIO_DESCRIPTION":   252,
	"HELP":                   259,
	"NAVIGATE_PREVIOUS":      260,
	"NAVIGATE_NEXT":          261,
	"NAVIGATE_IN":            262,
	"NAVIGATE_OUT":           263,
	"MEDIA_SKIP_FORWARD":     272,
	"MEDIA_SKIP_BACKWARD":    273,
	"MEDIA_STEP_FORWARD":     274,
	"MEDIA_STEP_BACKWARD":    275,
	"SOFT_SLEEP":             276,
	"CUT":                    277,
	"COPY":                   278,
	"PASTE":                  279,
	"ALL_APPS":               284,
	"REFRESH":                285,
}

// Lookup returns the Android key code for a key name. The name is case
// insensitive and may carry the KEYCODE_ prefix.
func Lookup(name string) (int32, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	normalized = strings.TrimPrefix(normalized, "KEYCODE_")

	code, ok := codes[normalized]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return code, nil
}

// Names returns all known key names, sorted, for help output and
// completion.
func Names() []string {
	names := make([]string, 0, len(codes))
	for name := range codes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
