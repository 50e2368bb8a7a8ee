package auth

type AuthServicePort interface {
	CreateUser(user AdminUser) (*AdminUser, error)
	GetUser(email string) (*AdminUser, error)
	GetUserByID(id int) (*AdminUser, error)
	GetAllUsers() ([]AdminUser, error)

	SendOTP(email string) (*AdminUser, string, error)
	ResetPassword(email, otp, newPassword string) error
}
