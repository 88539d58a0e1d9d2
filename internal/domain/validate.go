package domain

import (
	"crypto/rand"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// RoomCodeLength is the fixed length of a room code
	RoomCodeLength = 6

	// RoomCodeChars are characters used for generated room codes (no ambiguous chars)
	RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	minNameLength = 2
	maxNameLength = 20
)

// ValidatePlayerName trims a display name and checks its length and alphabet.
func ValidatePlayerName(name string) (string, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "", ErrMissingName
	}

	n := utf8.RuneCountInString(name)
	if n < minNameLength || n > maxNameLength {
		return "", ErrInvalidName
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' {
			return "", ErrInvalidName
		}
	}
	return name, nil
}

// ValidateRoomCode normalizes a room code to upper case and checks its shape.
func ValidateRoomCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", ErrMissingRoomCode
	}
	if len(code) != RoomCodeLength {
		return "", ErrInvalidRoomCode
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", ErrInvalidRoomCode
		}
	}
	return code, nil
}

// GenerateRoomCode generates a random room code
func GenerateRoomCode() string {
	b := make([]byte, RoomCodeLength)
	rand.Read(b)

	code := make([]byte, RoomCodeLength)
	for i := range code {
		code[i] = RoomCodeChars[int(b[i])%len(RoomCodeChars)]
	}
	return string(code)
}
