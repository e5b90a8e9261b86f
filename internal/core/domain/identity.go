package domain

// An Identity is the signed-in visitor.
type Identity struct {
	Name     string
	Email    string
	Avatar   string
	IsGoogle bool
}
