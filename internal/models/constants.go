package models

// ============================================================================
// FIELD LIMITS
// ============================================================================

const (
	TitleMinLength       = 3
	TitleMaxLength       = 50
	DescriptionMinLength = 3
	DescriptionMaxLength = 256
	PasswordMinLength    = 8
	PasswordMaxBytes     = 72 // bcrypt input limit
)

// ============================================================================
// BOARD TYPES
// ============================================================================

// BoardType controls who can see a board.
type BoardType string

const (
	BoardTypePublic  BoardType = "public"
	BoardTypePrivate BoardType = "private"
)

// Valid reports whether t is one of the known board types.
func (t BoardType) Valid() bool {
	return t == BoardTypePublic || t == BoardTypePrivate
}
