package metadomain

// Identity representa o perfil retornado pelo endpoint /me
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
