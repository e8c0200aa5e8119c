package pager

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// EncodeCursor takes an integer offset and encodes it to a base64 string as "cursor:offset:NUMBER".
func EncodeCursor(offset int) *string {
	data := "cursor:offset:" + strconv.Itoa(offset)
	encoded := base64.URLEncoding.EncodeToString([]byte(data))
	return &encoded
}

// DecodeCursor extracts the offset from a cursor built by EncodeCursor.
// It defaults to 0 if it cannot decode.
func DecodeCursor(input *string) int {
	if input == nil {
		return 0
	}

	decoded, err := base64.URLEncoding.DecodeString(*input)
	if err != nil {
		return 0
	}

	data := strings.Split(string(decoded), ":")
	if len(data) != 3 || data[0] != "cursor" || data[1] != "offset" {
		return 0
	}

	offset, err := strconv.ParseInt(data[2], 10, 32)
	if err != nil || offset < 0 {
		return 0
	}

	return int(offset)
}

// PageForCursor returns the page containing the item at the cursor's offset.
func PageForCursor(input *string, itemsPerPage int) int {
	if itemsPerPage < 1 {
		return 1
	}
	return DecodeCursor(input)/itemsPerPage + 1
}
