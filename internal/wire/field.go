package wire

import "github.com/tidwall/gjson"

// StringField extracts a string value by gjson path from a single-line
// JSON object. Absent keys and non-JSON input yield "". Escape
// sequences (\" \\ \n \t \r, and the rest of JSON's repertoire) are
// decoded.
func StringField(line []byte, path string) string {
	if !gjson.ValidBytes(line) {
		return ""
	}
	return gjson.GetBytes(line, path).String()
}

// IntField extracts an integer value by gjson path. Absent keys and
// non-JSON input yield 0. Nanosecond durations fit; the wire reports
// eval_duration as int64 nanoseconds.
func IntField(line []byte, path string) int64 {
	if !gjson.ValidBytes(line) {
		return 0
	}
	return gjson.GetBytes(line, path).Int()
}
