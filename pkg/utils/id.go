package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID returns a short opaque identifier for caller-generated records
// such as routing rate periods and ticket references.
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}
