package dto

// Form payloads for the account pages. Presence and format checks live in the
// service so that every caller gets the same ValidationError.

// RegisterInput: fields of the registration form
type RegisterInput struct {
	FirstName string `form:"first_name"`
	Surname   string `form:"surname"`
	Username  string `form:"username"`
	Email     string `form:"email"`
	Password  string `form:"password"`
	Role      string `form:"role"` // "artist" or "enthusiast", empty means enthusiast
}

// LoginInput: fields of the login form
type LoginInput struct {
	Username string `form:"username"`
	Password string `form:"password"`
}
