package model

import colorful "github.com/lucasb-eyer/go-colorful"

// RandomNoteColor picks a pleasant pastel tag for a new sticky note.
func RandomNoteColor() string {
	return colorful.FastHappyColor().Clamped().Hex()
}
